//go:build !windows
// +build !windows

package bridge

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"unsafe"

	"github.com/ebitengine/purego"
)

// producerLib is testdata/producer.c built as a shared library, or "" when
// no C compiler is available.
var producerLib string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "bridge-producer")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	producerLib = buildProducer(dir)
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func buildProducer(dir string) string {
	if _, err := exec.LookPath("cc"); err != nil {
		return ""
	}
	out := filepath.Join(dir, getLibName())
	cmd := exec.Command("cc", "-shared", "-fPIC", "-Iinclude", "-o", out, filepath.Join("testdata", "producer.c"))
	if b, err := cmd.CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "building test producer: %v\n%s", err, b)
		return ""
	}
	return out
}

type testProducer struct {
	*Bridge
	setRows  func(int64)
	live     func() int32
	releases func() int32
}

func loadTestProducer(t *testing.T) *testProducer {
	t.Helper()
	if producerLib == "" {
		t.Skip("no C compiler, skipping test")
	}
	brg, err := LoadBridge(producerLib)
	if err != nil {
		t.Fatalf("Failed to load producer: %v", err)
	}
	p := &testProducer{Bridge: brg}
	for _, sym := range []struct {
		fptr any
		name string
	}{
		{&p.setRows, "producer_set_rows"},
		{&p.live, "producer_live"},
		{&p.releases, "producer_releases"},
	} {
		addr, err := purego.Dlsym(brg.lib, sym.name)
		if err != nil {
			t.Fatalf("failed to find %s: %v", sym.name, err)
		}
		purego.RegisterFunc(sym.fptr, addr)
	}
	p.setRows(3)
	t.Cleanup(func() {
		if n := p.live(); n != 0 {
			t.Errorf("%d producer nodes still live", n)
		}
	})
	return p
}

func TestProducerExportRelease(t *testing.T) {
	p := loadTestProducer(t)
	before := p.releases()

	b, err := p.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if b.Schema.Format() != "+s" || b.Schema.NumChildren() != 1 {
		t.Fatalf("exported schema %q with %d children", b.Schema.Format(), b.Schema.NumChildren())
	}
	col := b.Schema.Child(0)
	if col.Format() != "l" || col.Name() != "v" || !col.Flags().Has(FlagNullable) {
		t.Errorf("column = %q %q %s", col.Format(), col.Name(), col.Flags())
	}
	if err := CheckShape(b.Schema, b.Array); err != nil {
		t.Fatalf("CheckShape failed: %v", err)
	}
	data := b.Array.Child(0)
	if data.Buffer(0) != nil {
		t.Error("validity buffer should be NULL")
	}
	values := unsafe.Slice((*int64)(data.Buffer(1)), data.Len())
	if len(values) != 3 || values[0] != 0 || values[2] != 20 {
		t.Errorf("values = %v", values)
	}

	b.Release()
	b.Release()
	if got := p.releases() - before; got != 4 {
		t.Errorf("producer released %d nodes, want 4", got)
	}
	if !b.Schema.IsReleased() || !b.Array.IsReleased() {
		t.Error("batch still live after Release")
	}
}

func TestProducerConsumeWithoutWriteBack(t *testing.T) {
	p := loadTestProducer(t)

	b, err := p.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	before := p.releases()
	if err := p.Consume(b); err != nil {
		b.Release()
		t.Fatalf("Consume failed: %v", err)
	}
	if got := p.releases() - before; got != 4 {
		t.Errorf("producer released %d nodes while consuming, want 4", got)
	}
	if !b.Schema.IsReleased() || !b.Array.IsReleased() {
		t.Fatal("batch still owns the value after Consume")
	}

	b.Release()
	if got := p.releases() - before; got != 4 {
		t.Errorf("Release after Consume reached the producer: %d releases", got)
	}
}

func TestProducerConsumeFailure(t *testing.T) {
	p := loadTestProducer(t)
	p.setRows(0)

	b, err := p.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	err = p.Consume(b)
	if !errors.Is(err, ErrInvalidArgument) || !strings.Contains(err.Error(), "empty batch") {
		t.Errorf("Consume = %v, want invalid argument with library message", err)
	}
	if b.Schema.IsReleased() || b.Array.IsReleased() {
		t.Fatal("failed Consume took ownership")
	}
	b.Release()

	released := NewBatch(nil, nil)
	if err := p.Consume(released); !errors.Is(err, ErrReleased) {
		t.Errorf("Consume of released batch = %v, want ErrReleased", err)
	}
	released.Release()
}
