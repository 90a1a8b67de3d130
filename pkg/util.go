package pkg

import (
	"unsafe"
)

// BytesToString converts a byte slice to a string without copying.
// The caller must not mutate buf afterwards.
func BytesToString(buf []byte) string {
	return *(*string)(unsafe.Pointer(&buf))
}
