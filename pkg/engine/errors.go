package engine

import (
	"bytes"
	"fmt"
)

// FileReadError is a per-file failure: the file could not be read or decoded.
// The file is left out of the corpus and the run goes on.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return "read " + e.Path + ": " + e.Err.Error()
}

func (e *FileReadError) Unwrap() error { return e.Err }

// The MultiError type implements the error interface, and contains the
// Errors used to construct it.
type MultiError []error

// Returns a concatenated string of the contained errors
func (es MultiError) Error() string {
	var buf bytes.Buffer

	if len(es) > 1 {
		fmt.Fprintf(&buf, "%d errors: ", len(es))
	}

	for i, err := range es {
		if i != 0 {
			buf.WriteString("; ")
		}
		buf.WriteString(err.Error())
	}

	return buf.String()
}

// Add adds the error to the error list if it is not nil.
func (es *MultiError) Add(err error) {
	if err == nil {
		return
	}
	if merr, ok := err.(MultiError); ok {
		*es = append(*es, merr...)
	} else {
		*es = append(*es, err)
	}
}

// Err returns the error list as an error or nil if it is empty.
func (es MultiError) Err() error {
	if len(es) == 0 {
		return nil
	}
	return es
}
