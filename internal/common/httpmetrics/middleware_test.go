package httpmetrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/AlibekovAA/notes-app/backend/internal/observability/metrics"
)

func TestNormalizePath(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"/api/notes", "/api/notes"},
		{"/api/notes/5a3d5da59070081a82a3445b", "/api/notes/{id}"},
		{"/api/notes/1b4e28ba-2fa1-11d2-883f-0016d3cca427", "/api/notes/{id}"},
		{"/api/notes/not-an-id", "/api/notes/{id}"},
		{"/api/users/42", "/api/users/{id}"},
		{"/api/testing/reset", "/api/testing/reset"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, NormalizePath(tc.in), tc.in)
	}
}

func TestCollector_Wrap(t *testing.T) {
	handler := New().Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.WriteHeader(http.StatusOK)
	}))

	before := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodDelete, "/api/notes/{id}"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/notes/5a3d5da59070081a82a3445b", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodDelete, "/api/notes/{id}")))
	assert.Zero(t, testutil.ToFloat64(metrics.HTTPRequestsInFlight))
}
