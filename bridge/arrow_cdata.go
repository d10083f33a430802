//go:build cgo
// +build cgo

package bridge

// Arrow C Data Interface structures
// https://arrow.apache.org/docs/format/CDataInterface.html

/*
#cgo CFLAGS: -I${SRCDIR}/include
#include <stdlib.h>
#include "abi.h"
#include "helpers.h"
*/
import "C"
import (
	"unsafe"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/isesword/arrow-cdata-bridge/internal/debug"
)

// ArrowSchema represents Arrow schema in C
type ArrowSchema C.struct_ArrowSchema

// ArrowArray represents Arrow array data in C
type ArrowArray C.struct_ArrowArray

// CgoEnabled reports whether the exporter and arrow-go interop are available.
const CgoEnabled = true

// Flag values must stay bit-identical to abi.h.
var (
	_ [FlagDictionaryOrdered - C.ARROW_FLAG_DICTIONARY_ORDERED]struct{}
	_ [C.ARROW_FLAG_DICTIONARY_ORDERED - FlagDictionaryOrdered]struct{}
	_ [FlagNullable - C.ARROW_FLAG_NULLABLE]struct{}
	_ [C.ARROW_FLAG_NULLABLE - FlagNullable]struct{}
	_ [FlagMapKeysSorted - C.ARROW_FLAG_MAP_KEYS_SORTED]struct{}
	_ [C.ARROW_FLAG_MAP_KEYS_SORTED - FlagMapKeysSorted]struct{}
)

func (s *ArrowSchema) c() *C.struct_ArrowSchema {
	return (*C.struct_ArrowSchema)(unsafe.Pointer(s))
}

func (a *ArrowArray) c() *C.struct_ArrowArray {
	return (*C.struct_ArrowArray)(unsafe.Pointer(a))
}

// ReleaseArrowSchema calls the release callback if set
func ReleaseArrowSchema(schema *ArrowSchema) {
	debug.Assert(schema != nil, "release of nil schema")
	debug.Assert(schema.release != nil, "release of released schema")
	cSchema := schema.c()
	if cSchema.release != nil {
		C.bridge_call_arrow_schema_release(cSchema)
	}
}

// ReleaseArrowArray calls the release callback if set
func ReleaseArrowArray(array *ArrowArray) {
	debug.Assert(array != nil, "release of nil array")
	debug.Assert(array.release != nil, "release of released array")
	cArray := array.c()
	if cArray.release != nil {
		C.bridge_call_arrow_array_release(cArray)
	}
}

// ClearReleaseSchema sets the release callback of schema to NULL without
// calling it. A nil schema is ignored. Clearing a schema that still owns
// its tree leaks that tree.
func ClearReleaseSchema(schema *ArrowSchema) {
	C.bridge_clear_release_schema(schema.c())
}

// ClearReleaseArray sets the release callback of array to NULL without
// calling it. A nil array is ignored.
func ClearReleaseArray(array *ArrowArray) {
	C.bridge_clear_release_array(array.c())
}

// MoveArrowSchema transfers ownership of src to dst and marks src released.
// dst must not hold a live schema.
func MoveArrowSchema(src, dst *ArrowSchema) {
	debug.Assert(dst.release == nil, "move into live schema")
	C.bridge_move_schema(src.c(), dst.c())
}

// MoveArrowArray transfers ownership of src to dst and marks src released.
func MoveArrowArray(src, dst *ArrowArray) {
	debug.Assert(dst.release == nil, "move into live array")
	C.bridge_move_array(src.c(), dst.c())
}

// IsReleased reports whether the schema carries no release callback.
func (s *ArrowSchema) IsReleased() bool { return s.release == nil }

// Format returns the format string.
func (s *ArrowSchema) Format() string { return C.GoString(s.format) }

// Name returns the field name, or "" when unset.
func (s *ArrowSchema) Name() string {
	if s.name == nil {
		return ""
	}
	return C.GoString(s.name)
}

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
	return unsafe.Slice((**ArrowSchema)(unsafe.Pointer(s.children)), int(s.n_children))
}

// Child returns the i-th child schema.
func (s *ArrowSchema) Child(i int) *ArrowSchema { return s.Children()[i] }

// Dictionary returns the dictionary value schema, or nil.
func (s *ArrowSchema) Dictionary() *ArrowSchema {
	return (*ArrowSchema)(unsafe.Pointer(s.dictionary))
}

// IsReleased reports whether the array carries no release callback.
func (a *ArrowArray) IsReleased() bool { return a.release == nil }

// Len returns the logical length of the array.
func (a *ArrowArray) Len() int64 { return int64(a.length) }

// NullCount returns the null count; -1 means not computed.
func (a *ArrowArray) NullCount() int64 { return int64(a.null_count) }

// Offset returns the logical offset into the buffers.
func (a *ArrowArray) Offset() int64 { return int64(a.offset) }

// NumBuffers returns the number of buffer slots.
func (a *ArrowArray) NumBuffers() int { return int(a.n_buffers) }

// Buffers returns the raw buffer pointers. Entries may be nil.
func (a *ArrowArray) Buffers() []unsafe.Pointer {
	if a.n_buffers == 0 || a.buffers == nil {
		return nil
	}
	return unsafe.Slice((*unsafe.Pointer)(unsafe.Pointer(a.buffers)), int(a.n_buffers))
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
	return unsafe.Slice((**ArrowArray)(unsafe.Pointer(a.children)), int(a.n_children))
}

// Child returns the i-th child array.
func (a *ArrowArray) Child(i int) *ArrowArray { return a.Children()[i] }

// Dictionary returns the dictionary values array, or nil.
func (a *ArrowArray) Dictionary() *ArrowArray {
	return (*ArrowArray)(unsafe.Pointer(a.dictionary))
}
