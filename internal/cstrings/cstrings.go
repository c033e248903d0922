// Package cstrings converts between Go strings and NUL-terminated C strings.
package cstrings

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"
)

// ErrEmbeddedNUL is returned by CString for strings C code would truncate.
var ErrEmbeddedNUL = errors.New("string contains NUL byte")

// CStringToString copies a NUL-terminated C string into a Go string.
func CStringToString(ptr *byte) string {
	if ptr == nil {
		return ""
	}
	var length int
	for *(*byte)(unsafe.Add(unsafe.Pointer(ptr), length)) != 0 {
		length++
	}
	return string(unsafe.Slice(ptr, length))
}

// PointerToString is CStringToString for an untyped pointer.
func PointerToString(ptr unsafe.Pointer) string {
	return CStringToString((*byte)(ptr))
}

// CString returns s as a NUL-terminated byte slice. The caller keeps the slice
// alive for as long as native code may read it. A string with an embedded NUL
// is rejected with ErrEmbeddedNUL.
func CString(s string) ([]byte, error) {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return nil, fmt.Errorf("%w at offset %d", ErrEmbeddedNUL, i)
	}
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b, nil
}

// StringArray copies n C strings starting at arr.
func StringArray(arr **byte, n int) []string {
	if arr == nil || n == 0 {
		return nil
	}
	ptrs := unsafe.Slice(arr, n)
	out := make([]string, n)
	for i, p := range ptrs {
		out[i] = CStringToString(p)
	}
	return out
}
