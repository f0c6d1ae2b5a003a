package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/PrismCRM/pkg/metrics"
)

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	m := metrics.New("test", prometheus.NewRegistry())

	r := mux.NewRouter()
	r.Use(Metrics(m))
	r.HandleFunc("/api/bookings/{bookingId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	for _, path := range []string{"/api/bookings/1", "/api/bookings/2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("/api/bookings/{bookingId}", http.MethodGet, "404"))
	assert.Equal(t, float64(2), got)
}

func TestRouteTemplate_NoRoute(t *testing.T) {
	assert.Equal(t, unmatchedRoute, routeTemplate(httptest.NewRequest(http.MethodGet, "/x", nil)))
}
