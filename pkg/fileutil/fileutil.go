package fileutil

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// OpenDir opens a directory for syncing.
func OpenDir(path string) (*os.File, error) { return os.Open(path) }

// Fsync is a wrapper around file.Sync().
func Fsync(f *os.File) error {
	return f.Sync()
}

// SyncDir fsyncs the directory at path.
func SyncDir(path string) error {
	df, err := OpenDir(path)
	if err != nil {
		return err
	}
	if err = Fsync(df); err != nil {
		df.Close()
		return err
	}
	return df.Close()
}

// Rename replaces to with from and syncs the parent directory to persist it.
func Rename(from, to string) error {
	if err := os.RemoveAll(to); err != nil {
		return err
	}
	if err := os.Rename(from, to); err != nil {
		return err
	}
	return SyncDir(filepath.Dir(to))
}

// Glob returns the regular files matching pattern in sorted order.
func Glob(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "glob %s", pattern)
	}
	files := matches[:0]
	for _, m := range matches {
		fi, err := os.Stat(m)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)
	return files, nil
}
