package word

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/szuwgh/edgarsent/pkg/tokenizer"
)

func Test_Tokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"spaces", "   \n\t", nil},
		{"hyphen splits", "ABC-DEF", []string{"ABC", "DEF"}},
		{"punctuation", "loss, (impairment); write-down.", []string{"loss", "impairment", "write", "down"}},
		{"underscore joins", "snake_case word", []string{"snake_case", "word"}},
		{"digits kept", "10-Q 2020", []string{"10", "Q", "2020"}},
		{"unicode letters", "café naïve", []string{"café", "naïve"}},
		{"trailing token", "end", []string{"end"}},
		{"invalid utf8 separates", "ab\xffcd", []string{"ab", "cd"}},
	}
	tok, err := NewTokenizer(nil)
	require.NoError(t, err)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenizer.Collect(tok, tt.input)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got.Terms())
		})
	}
}

func Test_TokenOffsets(t *testing.T) {
	tok, _ := NewTokenizer(nil)
	input := "a-bc  déf"
	got := tokenizer.Collect(tok, input)
	require.Len(t, got, 3)
	for i, tk := range got {
		assert.Equal(t, input[tk.Start:tk.End], tk.Term)
		assert.Equal(t, i+1, tk.Position)
	}
}

func Test_Registry(t *testing.T) {
	r := tokenizer.NewRegistry()
	tk, err := r.NewTokenizer(Type, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, tokenizer.Collect(tk, "A B").Terms())

	_, err = r.NewTokenizer("gojieba", nil)
	assert.Error(t, err)
	assert.Error(t, r.RegisterTokenizer(Type, NewTokenizer))
}
