//go:build !cgo
// +build !cgo

package bridge

import "github.com/apache/arrow-go/v18/arrow"

// ImportField requires cgo.
func ImportField(*ArrowSchema) (arrow.Field, error) { return arrow.Field{}, ErrCgoRequired }

// ImportSchema requires cgo.
func ImportSchema(*ArrowSchema) (*arrow.Schema, error) { return nil, ErrCgoRequired }

// ImportArray requires cgo.
func ImportArray(array *ArrowArray, schema *ArrowSchema) (arrow.Field, arrow.Array, error) {
	if err := CheckShape(schema, array); err != nil {
		return arrow.Field{}, nil, err
	}
	return arrow.Field{}, nil, ErrCgoRequired
}

// ImportRecordBatch requires cgo.
func ImportRecordBatch(array *ArrowArray, schema *ArrowSchema) (arrow.RecordBatch, error) {
	if err := CheckShape(schema, array); err != nil {
		return nil, err
	}
	return nil, ErrCgoRequired
}
