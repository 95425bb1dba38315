package analysis

import (
	"strings"
	"unicode/utf8"

	"github.com/szuwgh/edgarsent/pkg/lexicon"
)

// Profile summarizes a document against every dictionary category.
type Profile struct {
	Words      int
	Categories map[lexicon.Dimension]int
	Syllables  int
	// WordChars is the summed rune length of the counted words.
	WordChars  int
	Vocabulary int
	Alphabetic int
	Digits     int
}

// Percent is the share of counted words flagged with d, in percent.
func (p Profile) Percent(d lexicon.Dimension) float64 {
	if p.Words == 0 {
		return 0
	}
	return float64(p.Categories[d]) / float64(p.Words) * 100
}

func (p Profile) AvgSyllables() float64 {
	if p.Words == 0 {
		return 0
	}
	return float64(p.Syllables) / float64(p.Words)
}

func (p Profile) AvgWordLength() float64 {
	if p.Words == 0 {
		return 0
	}
	return float64(p.WordChars) / float64(p.Words)
}

// Profile counts the same tokens Analyze counts, split by dictionary category.
func (a *Analyzer) Profile(text string) Profile {
	p := Profile{Categories: make(map[lexicon.Dimension]int, len(lexicon.Dimensions))}
	vocab := make(map[string]struct{})
	a.each(text, func(term string, e *lexicon.Entry) {
		p.Words++
		p.WordChars += utf8.RuneCountInString(term)
		p.Syllables += e.Syllables
		vocab[term] = struct{}{}
		for _, d := range lexicon.Dimensions {
			if e.Has(d) {
				p.Categories[d]++
			}
		}
	})
	p.Vocabulary = len(vocab)

	upper := strings.ToUpper(text)
	for i := 0; i < len(upper); i++ {
		switch c := upper[i]; {
		case 'A' <= c && c <= 'Z':
			p.Alphabetic++
		case '0' <= c && c <= '9':
			p.Digits++
		}
	}
	return p
}
