// Package modsource provides control-rate signal sources that can drive
// parameters through a modmatrix.Matrix.
//
// Sources advance once per processing block: the owner calls Tick with the
// block length before the processors that read them run. Every source is a
// modmatrix.SignalSource, so its own parameters can in turn be modulated.
package modsource
