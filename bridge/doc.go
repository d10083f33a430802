// Package bridge implements the Arrow C Data Interface for Go.
//
// ArrowSchema and ArrowArray have the exact layout of the C structs, so a
// pointer to either can be handed to or received from any other
// implementation without copying. Ownership follows the release protocol:
// a descriptor whose release callback is set owns its children and
// dictionary and must be released exactly once with ReleaseArrowSchema or
// ReleaseArrowArray; a descriptor without one owns nothing.
//
// ClearReleaseSchema and ClearReleaseArray mark a descriptor as non-owning
// without calling its callback. They are used after the contents have been
// moved elsewhere; calling them on a descriptor that still owns its tree
// leaks the tree.
//
// With cgo the package can also produce descriptors (ExportSchema,
// ExportArray) and convert to and from arrow-go values. Without cgo the
// release callbacks of foreign descriptors are still invoked, through
// purego.
//
// Build with -tags assert to turn protocol misuse into panics.
package bridge
