//go:build !cgo && !assert
// +build !cgo,!assert

package bridge

import (
	"testing"

	"github.com/ebitengine/purego"
)

func TestReleaseCallbackWithoutCgo(t *testing.T) {
	var schemaCalls, arrayCalls int
	schemaRelease := purego.NewCallback(func(s *ArrowSchema) {
		schemaCalls++
		s.release = 0
	})
	arrayRelease := purego.NewCallback(func(a *ArrowArray) {
		arrayCalls++
		a.release = 0
	})

	format := []byte("i\x00")
	s := ArrowSchema{format: &format[0], release: schemaRelease}
	ReleaseArrowSchema(&s)
	ReleaseArrowSchema(&s)
	if schemaCalls != 1 {
		t.Errorf("schema release ran %d times, want 1", schemaCalls)
	}
	if !s.IsReleased() || s.Format() != "i" {
		t.Errorf("schema after release: released=%v format=%q", s.IsReleased(), s.Format())
	}

	a := ArrowArray{length: 3, null_count: 0, release: arrayRelease}
	ReleaseArrowArray(&a)
	ReleaseArrowArray(&a)
	if arrayCalls != 1 {
		t.Errorf("array release ran %d times, want 1", arrayCalls)
	}
	if !a.IsReleased() || a.Len() != 3 {
		t.Errorf("array after release: released=%v length=%d", a.IsReleased(), a.Len())
	}
}

func TestReleaseOfNonOwningDescriptorWithoutCgo(t *testing.T) {
	var s ArrowSchema
	var a ArrowArray
	ReleaseArrowSchema(&s)
	ReleaseArrowArray(&a)
	if !s.IsReleased() || !a.IsReleased() {
		t.Error("non-owning descriptors changed state")
	}
}
