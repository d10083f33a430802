//go:build cgo
// +build cgo

package bridge

import "testing"

func TestBatchOwnsMovedDescriptors(t *testing.T) {
	mem := newCheckedAllocator()
	defer mem.AssertSize(t, 0)

	var released []string
	hook := WithReleaseHook(func(p string) { released = append(released, p) })

	var s ArrowSchema
	var a ArrowArray
	if err := ExportSchema(nestedSchema(), &s, WithAllocator(mem), hook); err != nil {
		t.Fatalf("ExportSchema failed: %v", err)
	}
	if err := ExportArray(nestedArray(), &a, WithAllocator(mem), hook); err != nil {
		t.Fatalf("ExportArray failed: %v", err)
	}

	b := NewBatch(&s, &a)
	if !s.IsReleased() || !a.IsReleased() {
		t.Fatal("NewBatch did not move the descriptors")
	}
	if b.Schema.Format() != "+s" || b.Array.Len() != 2 {
		t.Errorf("batch holds %q / %d", b.Schema.Format(), b.Array.Len())
	}

	b.Release()
	b.Release()
	if len(released) != 2*len(nestedPaths) {
		t.Errorf("released %d nodes, want %d", len(released), 2*len(nestedPaths))
	}
	if !b.Schema.IsReleased() || !b.Array.IsReleased() {
		t.Error("batch descriptors still live after Release")
	}
}

func TestBatchDetach(t *testing.T) {
	mem := newCheckedAllocator()
	defer mem.AssertSize(t, 0)

	var s ArrowSchema
	if err := ExportSchema(nestedSchema(), &s, WithAllocator(mem)); err != nil {
		t.Fatalf("ExportSchema failed: %v", err)
	}
	b := NewBatch(&s, nil)

	// a consumer that copies the record but cannot write NULL back into it
	var taken ArrowSchema
	taken = *b.Schema
	b.Detach()

	if !b.Schema.IsReleased() {
		t.Fatal("Detach left the batch owning its schema")
	}
	if taken.IsReleased() || taken.Format() != "+s" {
		t.Fatal("copied schema lost its contents")
	}
	b.Release()
	ReleaseArrowSchema(&taken)
}
