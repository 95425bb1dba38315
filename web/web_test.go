package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/szuwgh/edgarsent/pkg/analysis"
	"github.com/szuwgh/edgarsent/pkg/lexicon"
	"github.com/szuwgh/edgarsent/pkg/metrics"
)

func newHandler(t *testing.T) *Handler {
	t.Helper()
	lex := lexicon.New([]lexicon.Entry{
		{Word: "THIS"},
		{Word: "BAD", Negative: true},
		{Word: "LOSS", Negative: true},
		{Word: "GOOD", Positive: true},
	})
	index, err := lexicon.NewTermIndex(lex.Words(lexicon.Negative))
	require.NoError(t, err)
	a, err := analysis.NewAnalyzer(lex, index, analysis.Options{})
	require.NoError(t, err)
	return New(a, metrics.New())
}

func Test_Score(t *testing.T) {
	srv := httptest.NewServer(newHandler(t).Router())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/score", "text/plain", strings.NewReader("this is BAD BAD"))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var res ScoreResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, 3, res.Length)
	assert.Equal(t, 2, res.NegativeCount)
	assert.InDelta(t, 2.0/3, res.TermWeight, 1e-12)
	assert.Equal(t, map[string]uint32{"BAD": 2}, res.Terms)
}

func Test_ScoreEmpty(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler(t).Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/score", strings.NewReader("")))
	require.Equal(t, http.StatusOK, rec.Code)
	var res ScoreResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 0, res.Length)
	assert.Equal(t, 0.0, res.TermWeight)
	assert.Empty(t, res.Terms)
}

func Test_ScoreMethod(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler(t).Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/score", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	var res ErrResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, http.StatusMethodNotAllowed, res.Status)
	assert.NotEmpty(t, res.Des)
}

func Test_Metrics(t *testing.T) {
	h := newHandler(t)
	router := h.Router()
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/score", strings.NewReader("loss")))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `edgarsent_documents_total{status="scored"} 1`)
}

func Test_CORS(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/score", strings.NewReader("bad"))
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	newHandler(t).Router().ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
