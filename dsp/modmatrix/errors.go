package modmatrix

import "errors"

var (
	// ErrDuplicateName is returned by Add when the name is already registered.
	ErrDuplicateName = errors.New("modmatrix: name already in namespace")
	// ErrUnknownName is returned when an operation references an unregistered name.
	ErrUnknownName = errors.New("modmatrix: name not in namespace")
	// ErrInvalidParameter is returned when a destination has no such parameter.
	ErrInvalidParameter = errors.New("modmatrix: invalid parameter")
	// ErrEmptyName is returned by Add for an empty name.
	ErrEmptyName = errors.New("modmatrix: empty name")
	// ErrNilObject is returned by Add for a nil object.
	ErrNilObject = errors.New("modmatrix: nil object")
	// ErrNotSignalSource is returned by Link when the source produces no signal.
	ErrNotSignalSource = errors.New("modmatrix: object is not a signal source")
)
