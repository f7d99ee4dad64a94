package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGiftsObserve(t *testing.T) {
	g := NewGifts()

	g.Observe(1, 0, 2, 0)
	g.Observe(0, 1, 0, 0)
	g.Fail()

	assert.Equal(t, 2.0, testutil.ToFloat64(g.Passes))
	assert.Equal(t, 1.0, testutil.ToFloat64(g.Failures))
	assert.Equal(t, 1.0, testutil.ToFloat64(g.Lines.WithLabelValues("added")))
	assert.Equal(t, 1.0, testutil.ToFloat64(g.Lines.WithLabelValues("removed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(g.Lines.WithLabelValues("skipped")))
}

func TestNilGiftsIsSafe(t *testing.T) {
	var g *Gifts
	assert.NotPanics(t, func() {
		g.Observe(1, 1, 1, 1)
		g.Fail()
	})
}

func TestHandlerExposesCounters(t *testing.T) {
	g := NewGifts()
	g.Observe(1, 0, 0, 0)

	w := httptest.NewRecorder()
	g.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "free_gift_reconcile_passes_total")
}
