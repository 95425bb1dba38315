// Package web scores single documents over HTTP with the same analyzer the
// batch commands use.
package web

import (
	"context"
	"io/ioutil"
	"log"
	"net/http"
	"time"

	"github.com/rs/cors"
	"github.com/szuwgh/edgarsent/pkg/analysis"
	"github.com/szuwgh/edgarsent/pkg/metrics"
	"github.com/szuwgh/edgarsent/util"
)

// MaxBodySize bounds a /score request body.
const MaxBodySize = 64 << 20

type Handler struct {
	a       *analysis.Analyzer
	metrics *metrics.Metrics
}

func New(a *analysis.Analyzer, m *metrics.Metrics) *Handler {
	if m == nil {
		m = metrics.New()
	}
	return &Handler{a: a, metrics: m}
}

func (h *Handler) score(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "POST a document body")
		return
	}
	b, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err != nil {
		h.metrics.Documents.WithLabelValues(metrics.StatusFailed).Inc()
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	v := h.a.Analyze(util.Byte2Str(b))
	h.metrics.Documents.WithLabelValues(metrics.StatusScored).Inc()
	h.metrics.DocumentLength.Observe(float64(v.Length))

	index := h.a.Index()
	terms := make(map[string]uint32)
	for slot, n := range v.TermFreq {
		if n > 0 {
			terms[index.Term(slot)] = n
		}
	}
	writeJSON(w, &ScoreResult{
		Length:        v.Length,
		NegativeCount: v.NegativeCount(),
		TermWeight:    v.TermWeight(),
		Terms:         terms,
	})
}

// Router returns the routes wrapped with CORS.
func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/score", h.score)
	mux.Handle("/metrics", h.metrics.Handler())
	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}).Handler(mux)
}

// Run serves until ctx is done.
func (h *Handler) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: h.Router()}
	errc := make(chan error, 1)
	go func() {
		log.Println("server start:", addr)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
