package lexicon

import (
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/pkg/errors"
)

const sep = '\xff'

// TermIndex assigns each scored term a slot in [0, K). Slot order is the
// column order of every per-document vector built against the index.
type TermIndex struct {
	terms []string
	slots map[string]int
}

// NewTermIndex assigns slots in the order terms are given. Duplicates keep
// their first slot.
func NewTermIndex(terms []string) (*TermIndex, error) {
	ti := &TermIndex{slots: make(map[string]int, len(terms))}
	for _, t := range terms {
		if t == "" {
			continue
		}
		if _, ok := ti.slots[t]; ok {
			continue
		}
		ti.slots[t] = len(ti.terms)
		ti.terms = append(ti.terms, t)
	}
	if len(ti.terms) == 0 {
		return nil, configErr("term index", "no terms to index")
	}
	return ti, nil
}

// Slot returns the column of term.
func (ti *TermIndex) Slot(term string) (int, bool) {
	i, ok := ti.slots[term]
	return i, ok
}

// Len is K, the width of every document vector.
func (ti *TermIndex) Len() int {
	return len(ti.terms)
}

func (ti *TermIndex) Term(slot int) string {
	return ti.terms[slot]
}

// Terms returns a copy of the terms in slot order.
func (ti *TermIndex) Terms() []string {
	out := make([]string, len(ti.terms))
	copy(out, ti.terms)
	return out
}

// Fingerprint hashes the terms in slot order. Two runs with the same
// fingerprint produce vectors with identical column layout.
func (ti *TermIndex) Fingerprint() uint64 {
	b := make([]byte, 0, 8*len(ti.terms))
	for _, t := range ti.terms {
		b = append(b, t...)
		b = append(b, sep)
	}
	return xxhash.Sum64(b)
}

// FingerprintString is Fingerprint in fixed-width hex.
func (ti *TermIndex) FingerprintString() string {
	return fmt.Sprintf("%016x", ti.Fingerprint())
}

// Source selects where scored terms come from.
type Source string

const (
	// SourceLM takes terms from the master dictionary's flag column.
	SourceLM Source = "lm"
	// SourceHarvard takes terms from a plain negative word list.
	SourceHarvard Source = "harvard"
)

// Options selects and locates the lexicon sources.
type Options struct {
	MasterDictionary string
	WordList         string
	Source           Source
	Dimension        Dimension
}

// Load reads the master dictionary and builds the term index for the selected
// source and dimension. The master dictionary always decides which tokens count
// toward document length; the source only decides which of them are scored.
func Load(opts Options) (*Lexicon, *TermIndex, error) {
	dim := opts.Dimension
	if dim == "" {
		dim = Negative
	}
	if _, ok := ParseDimension(string(dim)); !ok {
		return nil, nil, configErr("dimension", "unsupported dimension %q", dim)
	}
	if opts.MasterDictionary == "" {
		return nil, nil, configErr("master dictionary", "no path configured")
	}

	lex, err := OpenMasterDictionary(opts.MasterDictionary)
	if err != nil {
		return nil, nil, err
	}

	var terms []string
	switch opts.Source {
	case SourceLM, "":
		terms = lex.Words(dim)
		if len(terms) == 0 {
			return nil, nil, configErr("dimension", "master dictionary has no %s words", dim)
		}
	case SourceHarvard:
		if dim != Negative {
			return nil, nil, configErr("dimension", "word list source only supports %q, got %q", Negative, dim)
		}
		if opts.WordList == "" {
			return nil, nil, configErr("word list", "no path configured")
		}
		terms, err = OpenWordList(opts.WordList)
		if err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, configErr("source", "unsupported lexicon source %q", opts.Source)
	}

	index, err := NewTermIndex(terms)
	if err != nil {
		return nil, nil, errors.WithMessage(err, string(opts.Source))
	}
	return lex, index, nil
}
