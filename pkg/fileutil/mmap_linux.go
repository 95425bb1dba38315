package fileutil

import (
	"os"

	"golang.org/x/sys/unix"
)

const mmapSupported = true

func Mmap(f *os.File, length int) ([]byte, error) {
	return unix.Mmap(int(f.Fd()), 0, length, unix.PROT_READ, unix.MAP_SHARED)
}

func Munmap(b []byte) (err error) {
	return unix.Munmap(b)
}

// madviseSequential hints that the mapping is read front to back once.
func madviseSequential(b []byte) error {
	return unix.Madvise(b, unix.MADV_SEQUENTIAL)
}
