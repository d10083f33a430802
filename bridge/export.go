//go:build cgo
// +build cgo

package bridge

/*
#cgo CFLAGS: -I${SRCDIR}/include
#include "abi.h"

void bridgeReleaseExportedSchema(struct ArrowSchema*);
void bridgeReleaseExportedArray(struct ArrowArray*);
*/
import "C"
import (
	"fmt"
	"runtime/cgo"
	"unsafe"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/arrow/memory/mallocator"
)

var defaultAllocator memory.Allocator = mallocator.NewMallocator()

const ptrSize = int(unsafe.Sizeof(uintptr(0)))

// exportState is the producer-private data behind one exported node.
// Everything in allocs and buffers is given back when the node is released.
type exportState struct {
	cfg     *exportConfig
	path    string
	allocs  [][]byte
	buffers []*memory.Buffer
}

func (st *exportState) alloc(n int) unsafe.Pointer {
	b := st.cfg.alloc.Allocate(n)
	for i := range b {
		b[i] = 0
	}
	st.allocs = append(st.allocs, b)
	return unsafe.Pointer(&b[0])
}

func (st *exportState) cstring(s string) *C.char {
	p := st.alloc(len(s) + 1)
	copy(unsafe.Slice((*byte)(p), len(s)), s)
	return (*C.char)(p)
}

func (st *exportState) handle() unsafe.Pointer {
	slot := st.alloc(int(unsafe.Sizeof(cgo.Handle(0))))
	*(*cgo.Handle)(slot) = cgo.NewHandle(st)
	return slot
}

func (st *exportState) free() {
	for _, b := range st.buffers {
		b.Release()
	}
	for _, b := range st.allocs {
		st.cfg.alloc.Free(b)
	}
	st.buffers, st.allocs = nil, nil
}

func (st *exportState) notify() {
	if st.cfg.onRelease != nil {
		st.cfg.onRelease(st.path)
	}
}

func takeExportState(p unsafe.Pointer) *exportState {
	h := *(*cgo.Handle)(p)
	st := h.Value().(*exportState)
	h.Delete()
	return st
}

// ExportSchema fills out with a C copy of node. out must not hold a live
// schema. On success the caller owns out and must release it exactly once,
// either itself or by handing it to a consumer.
func ExportSchema(node *SchemaNode, out *ArrowSchema, opts ...ExportOption) error {
	if out == nil {
		return fmt.Errorf("%w: nil output schema", ErrInvalidNode)
	}
	if !out.IsReleased() {
		return fmt.Errorf("%w: output schema is still live", ErrInvalidNode)
	}
	if err := validateSchemaNode(node, ""); err != nil {
		return err
	}
	cfg := newExportConfig(opts)
	if cfg.alloc == nil {
		cfg.alloc = defaultAllocator
	}
	exportSchemaNode(node, out.c(), cfg, "")
	return nil
}

// ExportArray fills out with a C view of node. The buffers are not copied.
func ExportArray(node *ArrayNode, out *ArrowArray, opts ...ExportOption) error {
	if out == nil {
		return fmt.Errorf("%w: nil output array", ErrInvalidNode)
	}
	if !out.IsReleased() {
		return fmt.Errorf("%w: output array is still live", ErrInvalidNode)
	}
	if err := validateArrayNode(node, ""); err != nil {
		return err
	}
	cfg := newExportConfig(opts)
	if cfg.alloc == nil {
		cfg.alloc = defaultAllocator
	}
	exportArrayNode(node, out.c(), cfg, "")
	return nil
}

func exportSchemaNode(n *SchemaNode, out *C.struct_ArrowSchema, cfg *exportConfig, path string) {
	st := &exportState{cfg: cfg, path: path}

	out.format = st.cstring(n.Format)
	out.name = nil
	if n.Name != "" {
		out.name = st.cstring(n.Name)
	}
	out.metadata = nil
	if md := EncodeMetadata(n.Metadata); md != nil {
		p := st.alloc(len(md))
		copy(unsafe.Slice((*byte)(p), len(md)), md)
		out.metadata = (*C.char)(p)
	}
	out.flags = C.int64_t(n.Flags)

	out.n_children = C.int64_t(len(n.Children))
	out.children = nil
	if len(n.Children) > 0 {
		ptrs := unsafe.Slice((**C.struct_ArrowSchema)(st.alloc(ptrSize*len(n.Children))), len(n.Children))
		for i, c := range n.Children {
			child := (*C.struct_ArrowSchema)(st.alloc(int(C.sizeof_struct_ArrowSchema)))
			exportSchemaNode(c, child, cfg, childPath(path, i))
			ptrs[i] = child
		}
		out.children = &ptrs[0]
	}

	out.dictionary = nil
	if n.Dictionary != nil {
		dict := (*C.struct_ArrowSchema)(st.alloc(int(C.sizeof_struct_ArrowSchema)))
		exportSchemaNode(n.Dictionary, dict, cfg, dictPath(path))
		out.dictionary = dict
	}

	out.private_data = st.handle()
	out.release = (*[0]byte)(C.bridgeReleaseExportedSchema)
}

func exportArrayNode(n *ArrayNode, out *C.struct_ArrowArray, cfg *exportConfig, path string) {
	st := &exportState{cfg: cfg, path: path}

	out.length = C.int64_t(n.Length)
	out.null_count = C.int64_t(n.NullCount)
	out.offset = C.int64_t(n.Offset)

	out.n_buffers = C.int64_t(len(n.Buffers))
	out.buffers = nil
	if len(n.Buffers) > 0 {
		ptrs := unsafe.Slice((*unsafe.Pointer)(st.alloc(ptrSize*len(n.Buffers))), len(n.Buffers))
		for i, b := range n.Buffers {
			if b == nil || b.Len() == 0 {
				ptrs[i] = nil
				continue
			}
			b.Retain()
			st.buffers = append(st.buffers, b)
			ptrs[i] = unsafe.Pointer(&b.Bytes()[0])
		}
		out.buffers = (*unsafe.Pointer)(unsafe.Pointer(&ptrs[0]))
	}

	out.n_children = C.int64_t(len(n.Children))
	out.children = nil
	if len(n.Children) > 0 {
		ptrs := unsafe.Slice((**C.struct_ArrowArray)(st.alloc(ptrSize*len(n.Children))), len(n.Children))
		for i, c := range n.Children {
			child := (*C.struct_ArrowArray)(st.alloc(int(C.sizeof_struct_ArrowArray)))
			exportArrayNode(c, child, cfg, childPath(path, i))
			ptrs[i] = child
		}
		out.children = &ptrs[0]
	}

	out.dictionary = nil
	if n.Dictionary != nil {
		dict := (*C.struct_ArrowArray)(st.alloc(int(C.sizeof_struct_ArrowArray)))
		exportArrayNode(n.Dictionary, dict, cfg, dictPath(path))
		out.dictionary = dict
	}

	out.private_data = st.handle()
	out.release = (*[0]byte)(C.bridgeReleaseExportedArray)
}
