// Package analysis turns the text of one document into lexicon counts.
//
// An Analyzer holds only read-only state, so one value is shared by every
// worker of a run.
package analysis

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/szuwgh/edgarsent/pkg/lexicon"
	"github.com/szuwgh/edgarsent/pkg/tokenizer"
	"github.com/szuwgh/edgarsent/pkg/tokenizer/word"
)

// DefaultNoiseTokens are dropped before counting. "MAY" is nearly always the
// month in filings and would otherwise be read as the modal verb.
var DefaultNoiseTokens = []string{"MAY"}

type Options struct {
	Tokenizer       string
	TokenizerConfig map[string]interface{}
	// NoiseTokens are matched case-insensitively against whole tokens.
	NoiseTokens []string
}

type Analyzer struct {
	t     tokenizer.Tokenizer
	lex   *lexicon.Lexicon
	index *lexicon.TermIndex
	noise map[string]struct{}
}

func NewAnalyzer(lex *lexicon.Lexicon, index *lexicon.TermIndex, opts Options) (*Analyzer, error) {
	if lex == nil || index == nil {
		return nil, errors.New("analysis: lexicon and term index are required")
	}
	a := &Analyzer{lex: lex, index: index}
	if opts.Tokenizer == "" {
		opts.Tokenizer = word.Type
	}
	var err error
	a.t, err = tokenizer.NewRegistry().NewTokenizer(opts.Tokenizer, opts.TokenizerConfig)
	if err != nil {
		return nil, errors.Wrap(err, "analysis")
	}
	noise := opts.NoiseTokens
	if noise == nil {
		noise = DefaultNoiseTokens
	}
	a.noise = make(map[string]struct{}, len(noise))
	for _, n := range noise {
		a.noise[strings.ToUpper(n)] = struct{}{}
	}
	return a, nil
}

// K is the width of the vectors Analyze returns.
func (a *Analyzer) K() int {
	return a.index.Len()
}

func (a *Analyzer) Index() *lexicon.TermIndex {
	return a.index
}

// Vector is the per-document result of Analyze.
type Vector struct {
	// TermFreq counts occurrences of each indexed term.
	TermFreq []uint32
	// Presence is 1 where the term occurred at least once.
	Presence []uint8
	// Length counts the tokens that are in the lexicon.
	Length int
}

// NegativeCount sums TermFreq.
func (v Vector) NegativeCount() int {
	var n int
	for _, c := range v.TermFreq {
		n += int(c)
	}
	return n
}

// TermWeight is the share of recognized tokens that are indexed terms, zero for
// an empty document.
func (v Vector) TermWeight() float64 {
	if v.Length == 0 {
		return 0
	}
	return float64(v.NegativeCount()) / float64(v.Length)
}

// Analyze upper-cases text, drops noise tokens, numbers and single characters,
// and counts what is left against the lexicon and term index.
func (a *Analyzer) Analyze(text string) Vector {
	k := a.index.Len()
	v := Vector{
		TermFreq: make([]uint32, k),
		Presence: make([]uint8, k),
	}
	a.each(text, func(term string, _ *lexicon.Entry) {
		v.Length++
		if slot, ok := a.index.Slot(term); ok {
			v.TermFreq[slot]++
			v.Presence[slot] = 1
		}
	})
	return v
}

// each calls fn for every countable token of text with its lexicon entry.
func (a *Analyzer) each(text string, fn func(term string, e *lexicon.Entry)) {
	text = strings.ToUpper(text)
	a.t.Tokenize(text, func(tok tokenizer.Token) {
		term := tok.Term
		if _, ok := a.noise[term]; ok {
			return
		}
		if isNumeric(term) || utf8.RuneCountInString(term) < 2 {
			return
		}
		e, ok := a.lex.Lookup(term)
		if !ok {
			return
		}
		fn(term, e)
	})
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
