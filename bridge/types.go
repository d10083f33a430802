package bridge

import (
	"errors"
	"fmt"
)

// ErrorCode is the status returned by a loaded bridge library.
type ErrorCode int32

const (
	ErrOK              ErrorCode = 0
	ErrUnknown         ErrorCode = 1
	ErrInvalidArgument ErrorCode = 2
	ErrAbiMismatch     ErrorCode = 3
	ErrArrowImport     ErrorCode = 7
	ErrArrowExport     ErrorCode = 8
	ErrUnsupported     ErrorCode = 10
	ErrOom             ErrorCode = 11
)

// String returns a short description of the code.
func (c ErrorCode) String() string {
	switch c {
	case ErrOK:
		return "ok"
	case ErrInvalidArgument:
		return "invalid argument"
	case ErrAbiMismatch:
		return "abi mismatch"
	case ErrArrowImport:
		return "arrow import failed"
	case ErrArrowExport:
		return "arrow export failed"
	case ErrUnsupported:
		return "unsupported"
	case ErrOom:
		return "out of memory"
	default:
		return fmt.Sprintf("unknown error (%d)", int32(c))
	}
}

// Error implements error so codes can be matched with errors.Is.
func (c ErrorCode) Error() string { return "bridge: " + c.String() }

var (
	// ErrCgoRequired is returned by operations that need the cgo build.
	ErrCgoRequired = errors.New("bridge: requires cgo (set CGO_ENABLED=1)")
	// ErrInvalidNode is returned when a node tree cannot be exported.
	ErrInvalidNode = errors.New("bridge: invalid node")
	// ErrShapeMismatch is returned when schema and array trees differ in shape.
	ErrShapeMismatch = errors.New("bridge: schema/array shape mismatch")
	// ErrReleased is returned when a released descriptor is passed where a
	// live one is required.
	ErrReleased = errors.New("bridge: descriptor already released")
	// ErrMalformedMetadata is returned by DecodeMetadata.
	ErrMalformedMetadata = errors.New("bridge: malformed metadata")
	// ErrLibraryNotFound is returned by LoadBridge.
	ErrLibraryNotFound = errors.New("bridge: library not found")
)

// abiVersion is the value bridge_abi_version must return.
const abiVersion = 1
