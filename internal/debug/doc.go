// Package debug holds assertions that only fire when the module is built
// with the "assert" tag:
//
//	go test -tags assert ./...
//
// Without the tag every assertion compiles down to nothing.
package debug
