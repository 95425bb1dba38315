//go:build !linux
// +build !linux

package fileutil

import (
	"errors"
	"os"
)

const mmapSupported = false

func Mmap(f *os.File, length int) ([]byte, error) {
	return nil, errors.New("mmap not supported")
}

func Munmap(b []byte) error { return nil }

func madviseSequential(b []byte) error { return nil }
