// Package word splits text into runs of word characters: letters, numbers and
// the underscore. Everything else separates tokens, so "ABC-DEF" is two tokens.
package word

import (
	"unicode"
	"unicode/utf8"

	"github.com/szuwgh/edgarsent/pkg/tokenizer"
)

const Type = "word"

func init() {
	tokenizer.RegisterConstructor(Type, NewTokenizer)
}

type WordTokenizer struct{}

func NewTokenizer(config map[string]interface{}) (tokenizer.Tokenizer, error) {
	return &WordTokenizer{}, nil
}

//tokenize
func (t *WordTokenizer) Tokenize(content string, emit func(tokenizer.Token)) {
	pos := 1
	start := -1
	for i, r := range content {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			emit(tokenizer.Token{Start: start, End: i, Term: content[start:i], Position: pos})
			pos++
			start = -1
		}
	}
	if start >= 0 {
		emit(tokenizer.Token{Start: start, End: len(content), Term: content[start:], Position: pos})
	}
}

func isWordRune(r rune) bool {
	if r < utf8.RuneSelf {
		return r == '_' || ('0' <= r && r <= '9') || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
	}
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
