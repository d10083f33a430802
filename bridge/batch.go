package bridge

import (
	"log/slog"
	"runtime"
	"sync"
)

// Batch is a schema/array pair owned by Go. The descriptors live in Go
// memory; the trees they point to belong to whoever produced them.
type Batch struct {
	Schema *ArrowSchema
	Array  *ArrowArray

	once sync.Once
}

// NewBatch moves schema and array into a new Batch; both are left released.
// If the Batch becomes unreachable without Release the finalizer releases
// it and logs a warning.
func NewBatch(schema *ArrowSchema, array *ArrowArray) *Batch {
	b := &Batch{Schema: &ArrowSchema{}, Array: &ArrowArray{}}
	if schema != nil {
		MoveArrowSchema(schema, b.Schema)
	}
	if array != nil {
		MoveArrowArray(array, b.Array)
	}
	runtime.SetFinalizer(b, func(b *Batch) {
		slog.Warn("bridge: batch was not released",
			"schema_live", !b.Schema.IsReleased(), "array_live", !b.Array.IsReleased())
		b.release()
	})
	return b
}

func (b *Batch) release() {
	b.once.Do(func() {
		if !b.Array.IsReleased() {
			ReleaseArrowArray(b.Array)
		}
		if !b.Schema.IsReleased() {
			ReleaseArrowSchema(b.Schema)
		}
	})
}

// Release releases both descriptors. Further calls do nothing.
func (b *Batch) Release() {
	if b == nil {
		return
	}
	b.release()
	runtime.SetFinalizer(b, nil)
}

// Detach gives up ownership without releasing, for when the descriptors
// have been handed on by copying their contents elsewhere.
func (b *Batch) Detach() {
	if b == nil {
		return
	}
	b.once.Do(func() {
		ClearReleaseArray(b.Array)
		ClearReleaseSchema(b.Schema)
	})
	runtime.SetFinalizer(b, nil)
}
