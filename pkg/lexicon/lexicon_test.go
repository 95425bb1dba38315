package lexicon

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const masterCSV = `Word,Sequence Number,Word Count,Word Proportion,Average Proportion,Std Dev,Doc Count,Negative,Positive,Uncertainty,Litigious,Constraining,Superfluous,Interesting,Modal,Irr_Verb,Harvard_IV,Syllables,Source
ABANDON,1,10,0,0,0,5,2009,0,0,0,0,0,0,0,0,0,2,12of12inf
ABLE,2,10,0,0,0,5,0,2009,0,0,0,0,0,0,0,0,2,12of12inf
BAD,3,10,0,0,0,5,2009,0,0,0,0,0,0,0,0,0,1,12of12inf
COULD,4,10,0,0,0,5,0,0,2009,0,0,0,0,3,0,0,1,12of12inf
MUST,5,10,0,0,0,5,0,0,0,0,2009,0,0,1,0,0,1,12of12inf
SHOULD,6,10,0,0,0,5,0,0,0,0,0,0,0,2,0,0,1,12of12inf
LAWSUIT,7,10,0,0,0,5,-2020,0,0,2009,0,0,0,0,0,0,2,12of12inf
THIS,8,10,0,0,0,5,0,0,0,0,0,0,0,0,0,0,1,12of12inf
`

func Test_ReadMasterDictionary(t *testing.T) {
	lex, err := ReadMasterDictionary(strings.NewReader(masterCSV))
	require.NoError(t, err)
	assert.Equal(t, 8, lex.Len())

	e, ok := lex.Lookup("ABANDON")
	require.True(t, ok)
	assert.True(t, e.Negative)
	assert.False(t, e.Positive)
	assert.Equal(t, 2, e.Syllables)

	e, ok = lex.Lookup("COULD")
	require.True(t, ok)
	assert.True(t, e.WeakModal)
	assert.True(t, e.Uncertainty)

	e, _ = lex.Lookup("MUST")
	assert.True(t, e.StrongModal)
	assert.True(t, e.Constraining)

	e, _ = lex.Lookup("SHOULD")
	assert.True(t, e.ModerateModal)

	// removed from the negative list in a later year
	e, _ = lex.Lookup("LAWSUIT")
	assert.False(t, e.Negative)
	assert.True(t, e.Litigious)

	_, ok = lex.Lookup("abandon")
	assert.False(t, ok, "lookups are upper-case only")
	assert.False(t, lex.Contains("MISSING"))
}

func Test_WordsKeepLoadOrder(t *testing.T) {
	lex, err := ReadMasterDictionary(strings.NewReader(masterCSV))
	require.NoError(t, err)
	assert.Equal(t, []string{"ABANDON", "BAD"}, lex.Words(Negative))
	assert.Equal(t, []string{"ABLE"}, lex.Words(Positive))
}

func Test_ReadMasterDictionaryErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"header only", "Word,Negative\n"},
		{"no word column", "Term,Negative\nBAD,2009\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadMasterDictionary(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, IsConfigurationError(err), "got %v", err)
		})
	}
}

func Test_ReadWordList(t *testing.T) {
	words, err := ReadWordList(strings.NewReader("abandon\n\n  Bad \nABANDON\nworse\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ABANDON", "BAD", "WORSE"}, words)

	_, err = ReadWordList(strings.NewReader("\n \n"))
	assert.True(t, IsConfigurationError(err))
}

func Test_TermIndex(t *testing.T) {
	ti, err := NewTermIndex([]string{"BAD", "WORSE", "BAD", "", "WORST"})
	require.NoError(t, err)
	assert.Equal(t, 3, ti.Len())
	slot, ok := ti.Slot("WORSE")
	assert.True(t, ok)
	assert.Equal(t, 1, slot)
	assert.Equal(t, "WORST", ti.Term(2))
	_, ok = ti.Slot("GOOD")
	assert.False(t, ok)

	same, _ := NewTermIndex([]string{"BAD", "WORSE", "WORST"})
	assert.Equal(t, ti.Fingerprint(), same.Fingerprint())
	reordered, _ := NewTermIndex([]string{"WORSE", "BAD", "WORST"})
	assert.NotEqual(t, ti.Fingerprint(), reordered.Fingerprint())
	assert.Len(t, ti.FingerprintString(), 16)

	_, err = NewTermIndex(nil)
	assert.True(t, IsConfigurationError(err))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(p, []byte(content), 0644))
	return p
}

func Test_Load(t *testing.T) {
	dir := t.TempDir()
	master := writeFile(t, dir, "master.csv", masterCSV)
	list := writeFile(t, dir, "harvard.txt", "worse\nbad\nabandon\n")

	lex, ti, err := Load(Options{MasterDictionary: master, Source: SourceLM, Dimension: Negative})
	require.NoError(t, err)
	assert.Equal(t, 8, lex.Len())
	assert.Equal(t, []string{"ABANDON", "BAD"}, ti.Terms())

	_, ti, err = Load(Options{MasterDictionary: master, WordList: list, Source: SourceHarvard})
	require.NoError(t, err)
	assert.Equal(t, []string{"WORSE", "BAD", "ABANDON"}, ti.Terms())

	_, ti, err = Load(Options{MasterDictionary: master, Source: SourceLM, Dimension: Uncertainty})
	require.NoError(t, err)
	assert.Equal(t, []string{"COULD"}, ti.Terms())
}

func Test_LoadConfigurationErrors(t *testing.T) {
	dir := t.TempDir()
	master := writeFile(t, dir, "master.csv", masterCSV)
	empty := writeFile(t, dir, "empty.txt", "")

	tests := []struct {
		name string
		opts Options
	}{
		{"missing dictionary", Options{MasterDictionary: filepath.Join(dir, "nope.csv")}},
		{"no dictionary path", Options{}},
		{"unknown dimension", Options{MasterDictionary: master, Dimension: "angry"}},
		{"unknown source", Options{MasterDictionary: master, Source: "vader"}},
		{"word list with other dimension", Options{MasterDictionary: master, WordList: empty, Source: SourceHarvard, Dimension: Positive}},
		{"empty word list", Options{MasterDictionary: master, WordList: empty, Source: SourceHarvard}},
		{"dimension without words", Options{MasterDictionary: writeFile(t, dir, "plain.csv", "Word,Negative\nTHIS,0\n"), Dimension: Negative}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Load(tt.opts)
			require.Error(t, err)
			assert.True(t, IsConfigurationError(err), "got %v", err)
		})
	}
}

func Test_ParseDimension(t *testing.T) {
	d, ok := ParseDimension(" Negative ")
	assert.True(t, ok)
	assert.Equal(t, Negative, d)
	_, ok = ParseDimension("fear")
	assert.False(t, ok)
}
