package engine

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"io"
	"io/ioutil"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/oklog/ulid"
	"github.com/pkg/errors"
	"github.com/szuwgh/edgarsent/pkg/fileutil"
	"github.com/szuwgh/edgarsent/pkg/lexicon"
)

const (
	metaFilename = "meta.json"
	metaVersion  = 1

	TFIDFFilename      = "tfidf_score.csv"
	TermWeightFilename = "term_weights.csv"
	ResultFilename     = "result.csv"
	ProfileFilename    = "profile.csv"

	DefaultPrecision = 6
)

// RunMeta describes one published run directory.
type RunMeta struct {
	// Unique identifier of the run and name of its directory.
	ULID ulid.ULID `json:"ulid"`

	Command     string `json:"command"`
	Source      string `json:"source"`
	Dimension   string `json:"dimension"`
	Terms       int    `json:"terms"`
	Fingerprint string `json:"fingerprint"`

	Considered int `json:"considered"`
	Scored     int `json:"scored"`
	Failed     int `json:"failed"`
	Warnings   int `json:"metadata_warnings"`

	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
}

type runMeta struct {
	Version int `json:"version"`

	*RunMeta
}

// NewRunMeta stamps a new run id at t.
func NewRunMeta(command string, t time.Time) *RunMeta {
	entropy := rand.New(rand.NewSource(t.UnixNano()))
	return &RunMeta{
		ULID:    ulid.MustNew(ulid.Timestamp(t), entropy),
		Command: command,
		Started: t,
	}
}

// SetSummary copies the counts of s.
func (m *RunMeta) SetSummary(s Summary) {
	m.Considered = s.Considered
	m.Scored = s.Scored
	m.Failed = s.Failed
	m.Warnings = s.Warnings
}

// SetIndex records the lexicon the run was scored against.
func (m *RunMeta) SetIndex(source lexicon.Source, dim lexicon.Dimension, ti *lexicon.TermIndex) {
	m.Source = string(source)
	m.Dimension = string(dim)
	m.Terms = ti.Len()
	m.Fingerprint = ti.FingerprintString()
}

type outputFile struct {
	name  string
	write func(w io.Writer) error
}

// RunWriter publishes a run directory all at once: files are written into
// <dest>/<ulid>.tmp, synced, and the directory is renamed into place. A
// failed commit leaves nothing under <dest>/<ulid>.
type RunWriter struct {
	dest  string
	meta  *RunMeta
	files []outputFile
}

func NewRunWriter(dest string, meta *RunMeta) *RunWriter {
	return &RunWriter{dest: dest, meta: meta}
}

// Add queues a file; write runs during Commit.
func (w *RunWriter) Add(name string, write func(w io.Writer) error) {
	w.files = append(w.files, outputFile{name: name, write: write})
}

// Commit writes every queued file and meta.json and returns the run directory.
func (w *RunWriter) Commit() (dir string, err error) {
	dir = filepath.Join(w.dest, w.meta.ULID.String())
	tmp := dir + ".tmp"
	if err = os.RemoveAll(tmp); err != nil {
		return "", err
	}
	if err = os.MkdirAll(tmp, 0777); err != nil {
		return "", errors.Wrap(err, "create temporary run dir")
	}
	defer func() {
		if err != nil {
			os.RemoveAll(tmp)
		}
	}()

	for _, f := range w.files {
		if err = writeFile(filepath.Join(tmp, f.name), f.write); err != nil {
			return "", errors.Wrapf(err, "write %s", f.name)
		}
	}
	if w.meta.Finished.IsZero() {
		w.meta.Finished = time.Now()
	}
	if err = writeMetaFile(tmp, w.meta); err != nil {
		return "", errors.Wrap(err, "write meta")
	}
	if err = fileutil.SyncDir(tmp); err != nil {
		return "", errors.Wrap(err, "sync temporary run dir")
	}
	if err = fileutil.Rename(tmp, dir); err != nil {
		return "", errors.Wrap(err, "rename run dir")
	}
	return dir, nil
}

func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	var merr MultiError
	merr.Add(write(bw))
	merr.Add(bw.Flush())
	merr.Add(fileutil.Fsync(f))
	merr.Add(f.Close())
	return merr.Err()
}

func writeMetaFile(dir string, meta *RunMeta) error {
	return writeFile(filepath.Join(dir, metaFilename), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "\t")
		return enc.Encode(&runMeta{Version: metaVersion, RunMeta: meta})
	})
}

// ReadMeta reads meta.json of a published run directory.
func ReadMeta(dir string) (*RunMeta, error) {
	b, err := ioutil.ReadFile(filepath.Join(dir, metaFilename))
	if err != nil {
		return nil, err
	}
	var m runMeta
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	if m.Version != metaVersion {
		return nil, errors.Errorf("unexpected meta file version %d", m.Version)
	}
	return m.RunMeta, nil
}

func formatFloat(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// WriteColumn writes one value per line.
func WriteColumn(w io.Writer, vals []float64, precision int) error {
	for _, v := range vals {
		if _, err := io.WriteString(w, formatFloat(v, precision)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteResults writes one CSV row per corpus row with its identity and scores.
func WriteResults(w io.Writer, c *Corpus, s Scores, precision int) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"filename", "cik", "file_date", "tfidf_score", "term_weight"})
	for i := 0; i < c.Len(); i++ {
		row := c.Row(i)
		cw.Write([]string{
			row.Name,
			row.Meta.EntityID,
			row.Meta.Date(),
			formatFloat(s.TFIDF[i], precision),
			formatFloat(s.TermWeight[i], precision),
		})
	}
	cw.Flush()
	return cw.Error()
}

// WriteProfiles writes one CSV row per profiled document.
func WriteProfiles(w io.Writer, rows []ProfileRow, precision int) error {
	cw := csv.NewWriter(w)
	header := []string{"filename", "cik", "file_date", "words"}
	for _, d := range lexicon.Dimensions {
		header = append(header, "pct_"+string(d))
	}
	header = append(header, "alphabetic", "digits", "avg_syllables", "avg_word_length", "vocabulary")
	cw.Write(header)
	for _, r := range rows {
		rec := []string{r.Name, r.Meta.EntityID, r.Meta.Date(), strconv.Itoa(r.Words)}
		for _, d := range lexicon.Dimensions {
			rec = append(rec, formatFloat(r.Percent(d), precision))
		}
		rec = append(rec,
			strconv.Itoa(r.Alphabetic),
			strconv.Itoa(r.Digits),
			formatFloat(r.AvgSyllables(), precision),
			formatFloat(r.AvgWordLength(), precision),
			strconv.Itoa(r.Vocabulary),
		)
		cw.Write(rec)
	}
	cw.Flush()
	return cw.Error()
}

// PublishScores writes the score columns, the joined result table and meta.json
// under dest and returns the run directory.
func PublishScores(dest string, meta *RunMeta, c *Corpus, s Scores, precision int) (string, error) {
	rw := NewRunWriter(dest, meta)
	rw.Add(TFIDFFilename, func(w io.Writer) error { return WriteColumn(w, s.TFIDF, precision) })
	rw.Add(TermWeightFilename, func(w io.Writer) error { return WriteColumn(w, s.TermWeight, precision) })
	rw.Add(ResultFilename, func(w io.Writer) error { return WriteResults(w, c, s, precision) })
	return rw.Commit()
}

// PublishProfiles writes profile.csv and meta.json under dest.
func PublishProfiles(dest string, meta *RunMeta, rows []ProfileRow, precision int) (string, error) {
	rw := NewRunWriter(dest, meta)
	rw.Add(ProfileFilename, func(w io.Writer) error { return WriteProfiles(w, rows, precision) })
	return rw.Commit()
}
