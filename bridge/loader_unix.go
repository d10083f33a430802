//go:build !windows
// +build !windows

package bridge

import (
	"fmt"
	"log/slog"

	"github.com/ebitengine/purego"
)

// Bridge is a native library that produces and consumes descriptors:
//
//	uint32_t bridge_abi_version(void);
//	int32_t  bridge_last_error(const char** ptr, uintptr_t* len);
//	int32_t  bridge_export(struct ArrowSchema*, struct ArrowArray*);
//	int32_t  bridge_consume(struct ArrowSchema*, struct ArrowArray*);
type Bridge struct {
	lib        uintptr
	path       string
	abiVersion func() uint32
	lastError  func(**byte, *uintptr) int32
	export     func(*ArrowSchema, *ArrowArray) int32
	consume    func(*ArrowSchema, *ArrowArray) int32
}

// LoadBridge loads the library at libPath, or the default one when libPath
// is empty, and checks its ABI version.
func LoadBridge(libPath string) (*Bridge, error) {
	libPath, err := resolveLibPath(libPath)
	if err != nil {
		return nil, err
	}

	lib, err := purego.Dlopen(libPath, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("failed to load library %s: %w", libPath, err)
	}

	b := &Bridge{lib: lib, path: libPath}
	for _, sym := range []struct {
		fptr any
		name string
	}{
		{&b.abiVersion, "bridge_abi_version"},
		{&b.lastError, "bridge_last_error"},
		{&b.export, "bridge_export"},
		{&b.consume, "bridge_consume"},
	} {
		addr, err := purego.Dlsym(lib, sym.name)
		if err != nil {
			return nil, fmt.Errorf("failed to find %s: %w", sym.name, err)
		}
		purego.RegisterFunc(sym.fptr, addr)
	}

	if v := b.AbiVersion(); v != abiVersion {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrAbiMismatch, abiVersion, v)
	}
	slog.Debug("bridge: loaded library", "path", libPath)
	return b, nil
}

// AbiVersion returns the library's ABI version.
func (b *Bridge) AbiVersion() uint32 {
	return b.abiVersion()
}

// Path returns the file the library was loaded from.
func (b *Bridge) Path() string { return b.path }

// Export asks the library for a value. The returned batch owns it.
func (b *Bridge) Export() (*Batch, error) {
	var schema ArrowSchema
	var array ArrowArray
	if ret := b.export(&schema, &array); ret != 0 {
		return nil, b.getLastError(ErrorCode(ret))
	}
	return NewBatch(&schema, &array), nil
}

// Consume hands the value in batch to the library. On success the library
// owns the trees and batch is left inert; on failure batch still owns them.
func (b *Bridge) Consume(batch *Batch) error {
	if err := CheckShape(batch.Schema, batch.Array); err != nil {
		return err
	}
	if ret := b.consume(batch.Schema, batch.Array); ret != 0 {
		return b.getLastError(ErrorCode(ret))
	}
	batch.Detach()
	return nil
}

func (b *Bridge) getLastError(code ErrorCode) error {
	var ptr *byte
	var length uintptr
	b.lastError(&ptr, &length)

	if ptr == nil {
		return code
	}
	return fmt.Errorf("%w: %s", code, ptrToString(ptr, int(length)))
}
