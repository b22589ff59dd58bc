package repr

import (
	"runtime"
	"strconv"
)

// The VISA headers define the resolvable types on top of two C base
// types: ViUInt16/ViInt16 are unsigned/signed short, and everything
// else (ViUInt32, ViInt32, ViStatus and the handle family) is unsigned/
// signed long. Short is two bytes on every supported ABI; long is four
// bytes on Windows (LLP64) and pointer-sized elsewhere (LP64).

// hostCShortSize returns sizeof(short) for the host ABI.
func hostCShortSize() int { return 2 }

// hostCLongSize returns sizeof(long) for the host ABI.
func hostCLongSize() int {
	if runtime.GOOS == "windows" {
		return 4
	}
	return strconv.IntSize / 8
}

// NativeSize returns the host's size in bytes for the C type behind t.
func NativeSize(t TypeName) int {
	switch t {
	case ViUInt16, ViInt16:
		return hostCShortSize()
	default:
		return hostCLongSize()
	}
}

// Native measures the C type behind t on the host and returns the
// matching representation. Valid only when host and target ABIs are
// identical; cross builds must go through a config table or overrides.
func Native(t TypeName) (Representation, error) {
	return ForSize(NativeSize(t), t.Signed())
}
