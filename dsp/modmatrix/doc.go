// Package modmatrix provides a modulation matrix: a registry of named
// modulatable objects and the live modulation links between them.
//
// A link installs the live output of a named source as the value of a
// parameter of a named destination. At most one link exists per
// destination parameter; linking an already modulated parameter replaces
// the old link. Every link remembers the value it overrode and restores it
// when the link is removed.
//
// The matrix holds non-owning references and no lock. All operations are
// expected to run on a single control goroutine; the objects themselves
// may be read concurrently by an audio goroutine under their own contract.
package modmatrix
