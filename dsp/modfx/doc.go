// Package modfx wraps algo-dsp processors as modmatrix.Modulatable objects.
//
// Every wrapper exposes the processor's settings as named parameters. Fixed
// values reach the engine as soon as they are set; live values are sampled
// once per block at the top of ProcessInPlace. Values outside a parameter's
// range are clamped, and values the engine still rejects leave the previous
// setting in place.
package modfx
