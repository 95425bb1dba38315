package util

import "unsafe"

// Str2bytes returns the bytes of s without copying. The result must not be
// modified.
func Str2bytes(s string) []byte {
	return str2bytes(s)
}

func str2bytes(s string) []byte {
	x := (*[2]uintptr)(unsafe.Pointer(&s))
	h := [3]uintptr{x[0], x[1], x[1]}
	return *(*[]byte)(unsafe.Pointer(&h))
}

// Byte2Str views b as a string without copying. The string is only valid while
// b is neither modified nor released.
func Byte2Str(b []byte) string {
	return *(*string)(unsafe.Pointer(&b))
}
