package bridge

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unsafe"
)

// LibEnvVar names the environment variable consulted by LoadBridge when no
// path is given.
const LibEnvVar = "ARROW_BRIDGE_LIB"

// resolveLibPath picks the library to load: the explicit path, then
// $ARROW_BRIDGE_LIB, then the platform library name next to the executable.
func resolveLibPath(libPath string) (string, error) {
	if libPath == "" {
		libPath = os.Getenv(LibEnvVar)
		if libPath == "" {
			exePath, err := os.Executable()
			if err != nil {
				return "", fmt.Errorf("failed to get executable path: %w", err)
			}
			libPath = filepath.Join(filepath.Dir(exePath), getLibName())
		}
	}

	if _, err := os.Stat(libPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", ErrLibraryNotFound, libPath)
	}
	return libPath, nil
}

func getLibName() string {
	switch runtime.GOOS {
	case "windows":
		return "arrow_bridge.dll"
	case "darwin":
		return "libarrow_bridge.dylib"
	default:
		return "libarrow_bridge.so"
	}
}

// ptrToString copies a library-owned string; the library may overwrite it on
// the next failing call.
func ptrToString(p *byte, length int) string {
	if p == nil || length == 0 {
		return ""
	}
	return strings.Clone(unsafe.String(p, length))
}
