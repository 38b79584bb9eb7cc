package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-PetCareService/pkg/metrics"
)

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := metrics.NewWithRegistry("petcare", prometheus.NewRegistry())

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m, "petcare"))
	r.HandleFunc("/api/v1/records/{kind}/{recordId}/extra-services", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/records/hotel/"+id+"/extra-services", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	}

	count := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(
		"petcare", http.MethodGet, "/api/v1/records/{kind}/{recordId}/extra-services", "404"))
	assert.Equal(t, 2.0, count)
}

func TestMetricsMiddleware_NilMetrics(t *testing.T) {
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(nil, "petcare"))
	r.HandleFunc("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
