package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollector_Independent(t *testing.T) {
	a := NewCollector()
	b := NewCollector()
	a.CacheHits.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.CacheHits))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.CacheHits))
}

func TestObserveGraph(t *testing.T) {
	c := NewCollector()
	c.ObserveGraph(882, false, 3*time.Millisecond)
	c.ObserveGraph(4, true, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.CacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.CacheMisses))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.LastGraphNodes))
	assert.Equal(t, 1, testutil.CollectAndCount(c.GenerateDuration))
}

func TestObserveRequest(t *testing.T) {
	c := NewCollector()
	c.ObserveRequest("GET", "/api/v1/graph", "200", time.Millisecond)
	c.ObserveRequest("GET", "/api/v1/graph", "200", time.Millisecond)
	c.ObserveRequest("GET", "/health", "200", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/api/v1/graph", "200")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.HTTPRequests))
}

func TestHandler(t *testing.T) {
	c := NewCollector()
	c.ObserveGraph(10, false, time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "docgraph_last_graph_nodes 10"))
	assert.True(t, strings.Contains(string(body), "go_goroutines"))
}
