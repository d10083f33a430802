//go:build !cgo
// +build !cgo

package bridge

import (
	"unsafe"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/ebitengine/purego"
	"github.com/isesword/arrow-cdata-bridge/internal/debug"
)

// ArrowSchema mirrors struct ArrowSchema from include/abi.h field for field.
// Without cgo the release callback is held as a raw code address and
// invoked through purego.
type ArrowSchema struct {
	format       *byte
	name         *byte
	metadata     *byte
	flags        int64
	n_children   int64
	children     **ArrowSchema
	dictionary   *ArrowSchema
	release      uintptr
	private_data unsafe.Pointer
}

// ArrowArray mirrors struct ArrowArray from include/abi.h.
type ArrowArray struct {
	length       int64
	null_count   int64
	offset       int64
	n_buffers    int64
	n_children   int64
	buffers      *unsafe.Pointer
	children     **ArrowArray
	dictionary   *ArrowArray
	release      uintptr
	private_data unsafe.Pointer
}

// CgoEnabled reports whether the exporter and arrow-go interop are available.
const CgoEnabled = false

// ReleaseArrowSchema calls the release callback if set.
func ReleaseArrowSchema(schema *ArrowSchema) {
	debug.Assert(schema != nil, "release of nil schema")
	debug.Assert(schema.release != 0, "release of released schema")
	if schema.release != 0 {
		purego.SyscallN(schema.release, uintptr(unsafe.Pointer(schema)))
	}
}

// ReleaseArrowArray calls the release callback if set.
func ReleaseArrowArray(array *ArrowArray) {
	debug.Assert(array != nil, "release of nil array")
	debug.Assert(array.release != 0, "release of released array")
	if array.release != 0 {
		purego.SyscallN(array.release, uintptr(unsafe.Pointer(array)))
	}
}

// ClearReleaseSchema zeroes the release slot of schema without calling it.
// A nil schema is ignored.
func ClearReleaseSchema(schema *ArrowSchema) {
	if schema != nil {
		schema.release = 0
	}
}

// ClearReleaseArray zeroes the release slot of array without calling it.
func ClearReleaseArray(array *ArrowArray) {
	if array != nil {
		array.release = 0
	}
}

// MoveArrowSchema transfers ownership of src to dst and marks src released.
func MoveArrowSchema(src, dst *ArrowSchema) {
	debug.Assert(dst.release == 0, "move into live schema")
	*dst = *src
	src.release = 0
}

// MoveArrowArray transfers ownership of src to dst and marks src released.
func MoveArrowArray(src, dst *ArrowArray) {
	debug.Assert(dst.release == 0, "move into live array")
	*dst = *src
	src.release = 0
}

func goString(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}

// IsReleased reports whether the schema carries no release callback.
func (s *ArrowSchema) IsReleased() bool { return s.release == 0 }

// Format returns the format string.
func (s *ArrowSchema) Format() string { return goString(s.format) }

// Name returns the field name, or "" when unset.
func (s *ArrowSchema) Name() string { return goString(s.name) }

// Metadata decodes the custom metadata attached to the schema.
func (s *ArrowSchema) Metadata() (arrow.Metadata, error) {
	return decodeMetadataPtr(unsafe.Pointer(s.metadata))
}

// Flags returns the field flags.
func (s *ArrowSchema) Flags() Flag { return Flag(s.flags) }

// NumChildren returns the number of child schemas.
func (s *ArrowSchema) NumChildren() int { return int(s.n_children) }

// Children returns the child schemas, or nil when there are none.
func (s *ArrowSchema) Children() []*ArrowSchema {
	if s.n_children == 0 || s.children == nil {
		return nil
	}
	return unsafe.Slice(s.children, int(s.n_children))
}

// Child returns the i-th child schema.
func (s *ArrowSchema) Child(i int) *ArrowSchema { return s.Children()[i] }

// Dictionary returns the dictionary value schema, or nil.
func (s *ArrowSchema) Dictionary() *ArrowSchema { return s.dictionary }

// IsReleased reports whether the array carries no release callback.
func (a *ArrowArray) IsReleased() bool { return a.release == 0 }

// Len returns the logical length of the array.
func (a *ArrowArray) Len() int64 { return a.length }

// NullCount returns the null count; -1 means not computed.
func (a *ArrowArray) NullCount() int64 { return a.null_count }

// Offset returns the logical offset into the buffers.
func (a *ArrowArray) Offset() int64 { return a.offset }

// NumBuffers returns the number of buffer slots.
func (a *ArrowArray) NumBuffers() int { return int(a.n_buffers) }

// Buffers returns the raw buffer pointers. Entries may be nil.
func (a *ArrowArray) Buffers() []unsafe.Pointer {
	if a.n_buffers == 0 || a.buffers == nil {
		return nil
	}
	return unsafe.Slice(a.buffers, int(a.n_buffers))
}

// Buffer returns the i-th buffer pointer, which may be nil.
func (a *ArrowArray) Buffer(i int) unsafe.Pointer { return a.Buffers()[i] }

// NumChildren returns the number of child arrays.
func (a *ArrowArray) NumChildren() int { return int(a.n_children) }

// Children returns the child arrays, or nil when there are none.
func (a *ArrowArray) Children() []*ArrowArray {
	if a.n_children == 0 || a.children == nil {
		return nil
	}
	return unsafe.Slice(a.children, int(a.n_children))
}

// Child returns the i-th child array.
func (a *ArrowArray) Child(i int) *ArrowArray { return a.Children()[i] }

// Dictionary returns the dictionary values array, or nil.
func (a *ArrowArray) Dictionary() *ArrowArray { return a.dictionary }
