// Package patch builds modulation patches from control scripts.
//
// A Registry turns a type name and parameters into a modulatable object; a
// Session keeps those objects in a modmatrix.Matrix together with the rack
// that ticks sources and runs processors block by block; a Script is the
// YAML description of the objects and the edits applied to them.
package patch
