package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func Test_Counters(t *testing.T) {
	m := New()
	m.Documents.WithLabelValues(StatusScored).Add(3)
	m.Documents.WithLabelValues(StatusFailed).Inc()
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Documents.WithLabelValues(StatusScored)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Documents.WithLabelValues(StatusFailed)))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `edgarsent_documents_total{status="scored"} 3`)
}
