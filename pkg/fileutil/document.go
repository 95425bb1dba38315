package fileutil

import (
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

// SnappyExt marks documents stored in the snappy framing format.
const SnappyExt = ".sz"

// Document is the raw content of one file. Bytes may be backed by a read-only
// mapping, so they must not be used after Close.
type Document struct {
	data   []byte
	mapped bool
}

func (d *Document) Bytes() []byte {
	return d.data
}

func (d *Document) Close() error {
	if !d.mapped {
		d.data = nil
		return nil
	}
	b := d.data
	d.data = nil
	d.mapped = false
	return Munmap(b)
}

// ReadDocument loads path. Snappy-framed files are decoded; plain files at or
// above mmapThreshold bytes are mapped instead of copied when the platform
// allows it. A threshold <= 0 disables mapping.
func ReadDocument(path string, mmapThreshold int64) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.HasSuffix(path, SnappyExt) {
		b, err := ioutil.ReadAll(snappy.NewReader(f))
		if err != nil {
			return nil, errors.Wrap(err, "decode snappy stream")
		}
		return &Document{data: b}, nil
	}

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := fi.Size()
	if mmapSupported && mmapThreshold > 0 && size >= mmapThreshold && size > 0 {
		b, err := Mmap(f, int(size))
		if err == nil {
			madviseSequential(b)
			return &Document{data: b, mapped: true}, nil
		}
	}
	b, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &Document{data: b}, nil
}

// WriteSnappy writes r to path in the snappy framing format.
func WriteSnappy(path string, r io.Reader) (n int64, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	w := snappy.NewBufferedWriter(f)
	n, err = io.Copy(w, r)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}
