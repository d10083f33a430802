//go:build windows
// +build windows

package bridge

import (
	"fmt"
	"log/slog"
	"syscall"
	"unsafe"
)

// Bridge is a native library that produces and consumes descriptors. See
// loader_unix.go for the exported symbols it must provide.
type Bridge struct {
	lib        *syscall.DLL
	path       string
	abiVersion *syscall.Proc
	lastError  *syscall.Proc
	export     *syscall.Proc
	consume    *syscall.Proc
}

// LoadBridge loads the library at libPath, or the default one when libPath
// is empty, and checks its ABI version.
func LoadBridge(libPath string) (*Bridge, error) {
	libPath, err := resolveLibPath(libPath)
	if err != nil {
		return nil, err
	}

	lib, err := syscall.LoadDLL(libPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load library %s: %w", libPath, err)
	}

	b := &Bridge{lib: lib, path: libPath}
	if b.abiVersion, err = lib.FindProc("bridge_abi_version"); err != nil {
		return nil, fmt.Errorf("failed to find bridge_abi_version: %w", err)
	}
	if b.lastError, err = lib.FindProc("bridge_last_error"); err != nil {
		return nil, fmt.Errorf("failed to find bridge_last_error: %w", err)
	}
	if b.export, err = lib.FindProc("bridge_export"); err != nil {
		return nil, fmt.Errorf("failed to find bridge_export: %w", err)
	}
	if b.consume, err = lib.FindProc("bridge_consume"); err != nil {
		return nil, fmt.Errorf("failed to find bridge_consume: %w", err)
	}

	if v := b.AbiVersion(); v != abiVersion {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrAbiMismatch, abiVersion, v)
	}
	slog.Debug("bridge: loaded library", "path", libPath)
	return b, nil
}

// AbiVersion returns the library's ABI version.
func (b *Bridge) AbiVersion() uint32 {
	ret, _, _ := b.abiVersion.Call()
	return uint32(ret)
}

// Path returns the file the library was loaded from.
func (b *Bridge) Path() string { return b.path }

// Export asks the library for a value. The returned batch owns it.
func (b *Bridge) Export() (*Batch, error) {
	var schema ArrowSchema
	var array ArrowArray
	ret, _, _ := b.export.Call(uintptr(unsafe.Pointer(&schema)), uintptr(unsafe.Pointer(&array)))
	if int32(ret) != 0 {
		return nil, b.getLastError(ErrorCode(int32(ret)))
	}
	return NewBatch(&schema, &array), nil
}

// Consume hands the value in batch to the library. On success the library
// owns the trees and batch is left inert.
func (b *Bridge) Consume(batch *Batch) error {
	if err := CheckShape(batch.Schema, batch.Array); err != nil {
		return err
	}
	ret, _, _ := b.consume.Call(uintptr(unsafe.Pointer(batch.Schema)), uintptr(unsafe.Pointer(batch.Array)))
	if int32(ret) != 0 {
		return b.getLastError(ErrorCode(int32(ret)))
	}
	batch.Detach()
	return nil
}

func (b *Bridge) getLastError(code ErrorCode) error {
	var ptr *byte
	var length uintptr
	b.lastError.Call(uintptr(unsafe.Pointer(&ptr)), uintptr(unsafe.Pointer(&length)))

	if ptr == nil {
		return code
	}
	return fmt.Errorf("%w: %s", code, ptrToString(ptr, int(length)))
}
