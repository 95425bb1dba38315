// Package lexicon loads sentiment word lists and assigns every scored term a
// stable vector slot.
//
// A Lexicon and a TermIndex are immutable once loaded and may be shared by any
// number of goroutines.
package lexicon

import (
	"strings"

	iradix "github.com/hashicorp/go-immutable-radix"
)

// Dimension names one attribute column of the dictionary.
type Dimension string

const (
	Negative      Dimension = "negative"
	Positive      Dimension = "positive"
	Uncertainty   Dimension = "uncertainty"
	Litigious     Dimension = "litigious"
	WeakModal     Dimension = "weak_modal"
	ModerateModal Dimension = "moderate_modal"
	StrongModal   Dimension = "strong_modal"
	Constraining  Dimension = "constraining"
)

// Dimensions lists every dimension in output order.
var Dimensions = []Dimension{
	Positive, Negative, Uncertainty, Litigious,
	WeakModal, ModerateModal, StrongModal, Constraining,
}

// ParseDimension resolves a configured dimension name.
func ParseDimension(s string) (Dimension, bool) {
	d := Dimension(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Dimensions {
		if d == known {
			return d, true
		}
	}
	return "", false
}

// Entry is the attribute record of one dictionary word.
type Entry struct {
	Word          string
	Positive      bool
	Negative      bool
	Uncertainty   bool
	Litigious     bool
	WeakModal     bool
	ModerateModal bool
	StrongModal   bool
	Constraining  bool
	Syllables     int
}

// Has reports whether the entry carries the flag for d.
func (e *Entry) Has(d Dimension) bool {
	switch d {
	case Negative:
		return e.Negative
	case Positive:
		return e.Positive
	case Uncertainty:
		return e.Uncertainty
	case Litigious:
		return e.Litigious
	case WeakModal:
		return e.WeakModal
	case ModerateModal:
		return e.ModerateModal
	case StrongModal:
		return e.StrongModal
	case Constraining:
		return e.Constraining
	}
	return false
}

// Lexicon maps upper-case words to their attributes.
type Lexicon struct {
	tree *iradix.Tree
	// words keeps load order, which fixes slot order for dictionary-derived indexes.
	words []string
}

// New builds a lexicon from entries. Words are upper-cased; a repeated word
// keeps its first position and its last attributes.
func New(entries []Entry) *Lexicon {
	txn := iradix.New().Txn()
	words := make([]string, 0, len(entries))
	for i := range entries {
		e := entries[i]
		e.Word = strings.ToUpper(strings.TrimSpace(e.Word))
		if e.Word == "" {
			continue
		}
		if _, exist := txn.Get([]byte(e.Word)); !exist {
			words = append(words, e.Word)
		}
		txn.Insert([]byte(e.Word), &e)
	}
	return &Lexicon{tree: txn.Commit(), words: words}
}

// Lookup returns the entry for an upper-case word.
func (l *Lexicon) Lookup(word string) (*Entry, bool) {
	v, ok := l.tree.Get([]byte(word))
	if !ok {
		return nil, false
	}
	return v.(*Entry), true
}

// Contains reports whether word is in the lexicon.
func (l *Lexicon) Contains(word string) bool {
	_, ok := l.tree.Get([]byte(word))
	return ok
}

func (l *Lexicon) Len() int {
	return len(l.words)
}

// Words returns, in load order, every word flagged with d.
func (l *Lexicon) Words(d Dimension) []string {
	var out []string
	for _, w := range l.words {
		if e, ok := l.Lookup(w); ok && e.Has(d) {
			out = append(out, w)
		}
	}
	return out
}
