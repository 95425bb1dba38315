package lexicon

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Modal column codes of the master dictionary.
const (
	modalStrong   = 1
	modalModerate = 2
	modalWeak     = 3
)

// ConfigurationError reports a lexicon setup that would leave every document
// vector degenerate. It is fatal: nothing is scored after one.
type ConfigurationError struct {
	Op  string
	Err error
}

func (e *ConfigurationError) Error() string {
	return "lexicon: " + e.Op + ": " + e.Err.Error()
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func configErr(op string, format string, args ...interface{}) error {
	return &ConfigurationError{Op: op, Err: errors.Errorf(format, args...)}
}

// IsConfigurationError reports whether err is or wraps a ConfigurationError.
func IsConfigurationError(err error) bool {
	var cerr *ConfigurationError
	return errors.As(err, &cerr)
}

// ReadMasterDictionary parses the Loughran-McDonald master dictionary CSV.
// Columns are located by header name. Polarity columns hold the year a word was
// added (positive) or removed (negative), so only values above zero set a flag.
// Both the single "Modal" code column and split "Strong_Modal"/"Weak_Modal"
// columns are understood.
func ReadMasterDictionary(r io.Reader) (*Lexicon, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, configErr("master dictionary", "source is empty")
	}
	if err != nil {
		return nil, errors.Wrap(err, "read master dictionary header")
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	wordCol, ok := cols["word"]
	if !ok {
		return nil, configErr("master dictionary", "no Word column in header %q", header)
	}

	field := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	flag := func(rec []string, name string) bool {
		n, err := strconv.Atoi(field(rec, name))
		return err == nil && n > 0
	}

	var entries []Entry
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read master dictionary")
		}
		if wordCol >= len(rec) || strings.TrimSpace(rec[wordCol]) == "" {
			continue
		}
		e := Entry{
			Word:          rec[wordCol],
			Negative:      flag(rec, "negative"),
			Positive:      flag(rec, "positive"),
			Uncertainty:   flag(rec, "uncertainty"),
			Litigious:     flag(rec, "litigious"),
			Constraining:  flag(rec, "constraining"),
			StrongModal:   flag(rec, "strong_modal"),
			ModerateModal: flag(rec, "moderate_modal"),
			WeakModal:     flag(rec, "weak_modal"),
		}
		switch modal, _ := strconv.Atoi(field(rec, "modal")); modal {
		case modalStrong:
			e.StrongModal = true
		case modalModerate:
			e.ModerateModal = true
		case modalWeak:
			e.WeakModal = true
		}
		e.Syllables, _ = strconv.Atoi(field(rec, "syllables"))
		entries = append(entries, e)
	}
	if len(entries) == 0 {
		return nil, configErr("master dictionary", "source has no words")
	}
	return New(entries), nil
}

// OpenMasterDictionary reads the master dictionary at path.
func OpenMasterDictionary(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigurationError{Op: "master dictionary", Err: errors.Wrapf(err, "open %s", path)}
	}
	defer f.Close()
	return ReadMasterDictionary(f)
}

// ReadWordList reads one word per line, upper-cased, blank lines skipped and
// duplicates dropped. File order is kept.
func ReadWordList(r io.Reader) ([]string, error) {
	seen := make(map[string]struct{})
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff")))
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read word list")
	}
	if len(words) == 0 {
		return nil, configErr("word list", "source is empty")
	}
	return words, nil
}

// OpenWordList reads the word list at path.
func OpenWordList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigurationError{Op: "word list", Err: errors.Wrapf(err, "open %s", path)}
	}
	defer f.Close()
	return ReadWordList(f)
}
