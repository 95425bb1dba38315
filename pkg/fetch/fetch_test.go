package fetch

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/szuwgh/edgarsent/pkg/fileutil"
	"github.com/szuwgh/edgarsent/pkg/filing"
	"github.com/szuwgh/edgarsent/pkg/metrics"
)

const masterIdx = `Description:           Master Index of EDGAR Dissemination Feed
Last Data Received:    March 31, 2020
Comments:              webmaster@sec.gov
Anonymous FTP:         ftp://ftp.sec.gov/edgar/
Cloud HTTP:            https://www.sec.gov/Archives/




CIK|Company Name|Form Type|Date Filed|Filename
--------------------------------------------------------------------------------
940944|DARDEN RESTAURANTS INC|10-Q|2020-03-31|edgar/data/940944/0000940944-20-000014.txt
940944|DARDEN RESTAURANTS INC|10-Q|2020-03-31|edgar/data/940944/0000940944-20-000015.txt
320193|APPLE INC|10-K/A|2020-02-03|edgar/data/320193/0000320193-20-000001.txt
320193|APPLE INC|8-K|2020-02-03|edgar/data/320193/0000320193-20-000002.txt
1000|BROKEN INC|10-K|2020-02-03|edgar/data/1000/0000001000-20-000404.txt
garbage line
`

func Test_ParseMasterIndex(t *testing.T) {
	recs, err := ParseMasterIndex(strings.NewReader(masterIdx))
	require.NoError(t, err)
	require.Len(t, recs, 5)
	assert.Equal(t, IndexRecord{
		CIK:  940944,
		Name: "DARDEN RESTAURANTS INC",
		Form: "10-Q",
		Date: "20200331",
		Path: "edgar/data/940944/0000940944-20-000014.txt",
	}, recs[0])
}

func Test_FileName(t *testing.T) {
	r := IndexRecord{CIK: 320193, Form: "10-K/A", Date: "20200203", Path: "edgar/data/320193/0000320193-20-000001.txt"}
	name := r.FileName(2)
	assert.Equal(t, "20200203_10-K-A_edgar_data_320193_0000320193-20-000001_2.txt", name)

	m, err := filing.Parse(name)
	require.NoError(t, err)
	assert.Equal(t, "0000320193", m.EntityID)
	assert.Equal(t, "2020-02-03", m.Date())
}

func newArchive(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		assert.Equal(t, "edgarsent test@example.com", r.Header.Get("User-Agent"))
		switch {
		case r.URL.Path == "/edgar/full-index/2020/QTR1/master.idx":
			w.Write([]byte(masterIdx))
		case strings.HasSuffix(r.URL.Path, "0000001000-20-000404.txt"):
			http.Error(w, "gone", http.StatusNotFound)
		case strings.HasPrefix(r.URL.Path, "/edgar/data/"):
			w.Write([]byte("body of " + filepath.Base(r.URL.Path)))
		default:
			http.NotFound(w, r)
		}
	}))
}

func Test_Quarter(t *testing.T) {
	var hits int32
	srv := newArchive(t, &hits)
	defer srv.Close()

	dir := t.TempDir()
	m := metrics.New()
	f := New(Options{
		BaseURL:   srv.URL,
		Path:      dir,
		Forms:     []string{"10-Q", "10-K", "10-K/A"},
		UserAgent: "edgarsent test@example.com",
	}, srv.Client(), m)

	s, err := f.Quarter(context.Background(), 2020, 1)
	require.NoError(t, err)
	assert.Equal(t, Stats{Matched: 4, Fetched: 3, Failed: 1}, s)

	qdir := filepath.Join(dir, "2020", "QTR1")
	b, err := ioutil.ReadFile(filepath.Join(qdir, "20200331_10-Q_edgar_data_940944_0000940944-20-000014_1.txt"))
	require.NoError(t, err)
	assert.Equal(t, "body of 0000940944-20-000014.txt", string(b))
	_, err = os.Stat(filepath.Join(qdir, "20200331_10-Q_edgar_data_940944_0000940944-20-000015_2.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(qdir, "20200203_10-K-A_edgar_data_320193_0000320193-20-000001_1.txt"))
	assert.NoError(t, err)

	files, err := fileutil.Glob(filepath.Join(qdir, "*"))
	require.NoError(t, err)
	assert.Len(t, files, 3, "no temporary or failed files are left behind")

	// A second pass finds everything on disk.
	before := atomic.LoadInt32(&hits)
	s, err = f.Quarter(context.Background(), 2020, 1)
	require.NoError(t, err)
	assert.Equal(t, Stats{Matched: 4, Skipped: 3, Failed: 1}, s)
	assert.Equal(t, before+2, atomic.LoadInt32(&hits), "index and the failing filing only")
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Downloads.WithLabelValues(metrics.StatusSkipped)))
}

func Test_QuarterCIKFilterAndCompress(t *testing.T) {
	var hits int32
	srv := newArchive(t, &hits)
	defer srv.Close()

	dir := t.TempDir()
	f := New(Options{
		BaseURL:   srv.URL,
		Path:      dir,
		Forms:     []string{"10-Q"},
		CIKs:      []int{940944},
		UserAgent: "edgarsent test@example.com",
		Compress:  true,
	}, srv.Client(), nil)
	s, err := f.Quarter(context.Background(), 2020, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Fetched)

	path := filepath.Join(dir, "2020", "QTR1", "20200331_10-Q_edgar_data_940944_0000940944-20-000014_1.txt.sz")
	doc, err := fileutil.ReadDocument(path, 0)
	require.NoError(t, err)
	defer doc.Close()
	assert.Equal(t, "body of 0000940944-20-000014.txt", string(doc.Bytes()))
}

func Test_QuarterErrors(t *testing.T) {
	var hits int32
	srv := newArchive(t, &hits)
	defer srv.Close()

	f := New(Options{BaseURL: srv.URL, Path: t.TempDir(), UserAgent: "edgarsent test@example.com"}, srv.Client(), nil)
	_, err := f.Quarter(context.Background(), 2020, 5)
	assert.Error(t, err)
	_, err = f.Quarter(context.Background(), 1999, 1)
	assert.Error(t, err, "missing index")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.Quarter(ctx, 2020, 1)
	assert.Error(t, err)

	s, err := f.Run(context.Background(), []int{1999, 2020}, []int{1})
	require.NoError(t, err, "a missing quarter does not stop the run")
	assert.Equal(t, 5, s.Matched)
}
