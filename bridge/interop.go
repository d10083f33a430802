//go:build cgo
// +build cgo

package bridge

import (
	"fmt"
	"unsafe"

	"github.com/apache/arrow-go/v18/arrow"
	arrowcdata "github.com/apache/arrow-go/v18/arrow/cdata"
)

// arrow-go declares its own copy of the same C structs; the layouts are
// identical so the pointers convert directly.

func toCSchema(s *ArrowSchema) *arrowcdata.CArrowSchema {
	return (*arrowcdata.CArrowSchema)(unsafe.Pointer(s))
}

func toCArray(a *ArrowArray) *arrowcdata.CArrowArray {
	return (*arrowcdata.CArrowArray)(unsafe.Pointer(a))
}

// ExportArrowSchema exports an arrow-go schema as a struct-typed descriptor.
func ExportArrowSchema(schema *arrow.Schema, out *ArrowSchema) {
	arrowcdata.ExportArrowSchema(schema, toCSchema(out))
}

// ExportArrowArray exports arr and, if outSchema is non-nil, its type.
// arr is retained until the consumer releases out.
func ExportArrowArray(arr arrow.Array, out *ArrowArray, outSchema *ArrowSchema) {
	var cs *arrowcdata.CArrowSchema
	if outSchema != nil {
		cs = toCSchema(outSchema)
	}
	arrowcdata.ExportArrowArray(arr, toCArray(out), cs)
}

// ExportRecordBatch exports rec as a struct array with a matching schema.
func ExportRecordBatch(rec arrow.RecordBatch, out *ArrowArray, outSchema *ArrowSchema) {
	var cs *arrowcdata.CArrowSchema
	if outSchema != nil {
		cs = toCSchema(outSchema)
	}
	arrowcdata.ExportArrowRecordBatch(rec, toCArray(out), cs)
}

// ImportField takes ownership of schema and converts it to an arrow-go
// field. schema is released whether or not the import succeeds.
func ImportField(schema *ArrowSchema) (arrow.Field, error) {
	if schema == nil || schema.IsReleased() {
		return arrow.Field{}, ErrReleased
	}
	return arrowcdata.ImportCArrowField(toCSchema(schema))
}

// ImportSchema takes ownership of a struct-typed schema and converts it to
// an arrow-go schema.
func ImportSchema(schema *ArrowSchema) (*arrow.Schema, error) {
	if schema == nil || schema.IsReleased() {
		return nil, ErrReleased
	}
	return arrowcdata.ImportCArrowSchema(toCSchema(schema))
}

// ImportArray checks that the two trees have the same shape and then moves
// them into arrow-go. On a shape error the caller still owns both
// descriptors. Otherwise schema is released and array is owned by the
// returned arrow.Array.
func ImportArray(array *ArrowArray, schema *ArrowSchema) (arrow.Field, arrow.Array, error) {
	if err := CheckShape(schema, array); err != nil {
		return arrow.Field{}, nil, err
	}
	f, arr, err := arrowcdata.ImportCArray(toCArray(array), toCSchema(schema))
	if err != nil {
		return arrow.Field{}, nil, fmt.Errorf("bridge: import array: %w", err)
	}
	return f, arr, nil
}

// ImportRecordBatch is ImportArray for struct-typed descriptors.
func ImportRecordBatch(array *ArrowArray, schema *ArrowSchema) (arrow.RecordBatch, error) {
	if err := CheckShape(schema, array); err != nil {
		return nil, err
	}
	rec, err := arrowcdata.ImportCRecordBatch(toCArray(array), toCSchema(schema))
	if err != nil {
		return nil, fmt.Errorf("bridge: import record batch: %w", err)
	}
	return rec, nil
}
