//go:build cgo
// +build cgo

package bridge

// #cgo CFLAGS: -I${SRCDIR}/include
// #include "abi.h"
import "C"
import "unsafe"

// Release callbacks installed by ExportSchema and ExportArray. Children and
// the dictionary are released first, unless a consumer already moved them
// out and released them on its own; only then is the node's own storage
// given back and its release slot cleared. The record itself belongs to
// the parent (or, for the root, to whoever allocated it) and is not freed
// here.

//export bridgeReleaseExportedSchema
func bridgeReleaseExportedSchema(s *C.struct_ArrowSchema) {
	if s.release == nil {
		return
	}
	schema := (*ArrowSchema)(unsafe.Pointer(s))
	for _, c := range schema.Children() {
		if !c.IsReleased() {
			ReleaseArrowSchema(c)
		}
	}
	if d := schema.Dictionary(); d != nil && !d.IsReleased() {
		ReleaseArrowSchema(d)
	}

	st := takeExportState(s.private_data)
	st.free()
	s.private_data = nil
	s.release = nil
	st.notify()
}

//export bridgeReleaseExportedArray
func bridgeReleaseExportedArray(a *C.struct_ArrowArray) {
	if a.release == nil {
		return
	}
	array := (*ArrowArray)(unsafe.Pointer(a))
	for _, c := range array.Children() {
		if !c.IsReleased() {
			ReleaseArrowArray(c)
		}
	}
	if d := array.Dictionary(); d != nil && !d.IsReleased() {
		ReleaseArrowArray(d)
	}

	st := takeExportState(a.private_data)
	st.free()
	a.private_data = nil
	a.release = nil
	st.notify()
}
