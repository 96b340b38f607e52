package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ProphetBookingService/pkg/metrics"
)

// counterValue ищет значение счётчика по имени и набору меток
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, m := range mf.GetMetric() {
			got := make(map[string]string)
			for _, lp := range m.GetLabel() {
				got[lp.GetName()] = lp.GetValue()
			}
			for k, v := range labels {
				if got[k] != v {
					continue next
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestMetricsMiddleware_LabelsByRouteTemplate(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry("test", reg)

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/api/v1/bookings/{bookingId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+id, nil))
	}

	got := counterValue(t, reg, "http_requests_total", map[string]string{
		"method": http.MethodGet,
		"path":   "/api/v1/bookings/{bookingId}",
		"status": "404",
	})
	assert.Equal(t, float64(2), got)
}

func TestBookingResult(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry("test", reg)

	m.BookingResult("created")
	m.BookingResult("created")
	m.BookingResult("bad_request")

	assert.Equal(t, float64(2), counterValue(t, reg, "bookings_create_total", map[string]string{"result": "created"}))
	assert.Equal(t, float64(1), counterValue(t, reg, "bookings_create_total", map[string]string{"result": "bad_request"}))

	var nilMetrics *metrics.Metrics
	assert.NotPanics(t, func() { nilMetrics.BookingResult("created") })
}
