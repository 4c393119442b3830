package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecorderCountsAssessments(t *testing.T) {
	r := NewRecorder()
	r.ObserveAssessment("safe", "manual")
	r.ObserveAssessment("safe", "manual")
	r.ObserveAssessment("unsafe", "assistedActive")
	r.ObserveNoResult()

	require.Equal(t, 2.0, testutil.ToFloat64(r.assessments.WithLabelValues("safe", "manual")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.assessments.WithLabelValues("unsafe", "assistedActive")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.noResult))
}

func TestRecorderHandlerExposesMetrics(t *testing.T) {
	r := NewRecorder()
	r.ObserveRequest("/api/v1/assessments", http.MethodPost, http.StatusOK, 3*time.Millisecond)
	r.ObservePairSaved()

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `belaycheck_http_requests_total{method="POST",route="/api/v1/assessments",status="200"} 1`)
	require.Contains(t, body, "belaycheck_saved_pairs_total 1")
}

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder
	require.NotPanics(t, func() {
		r.ObserveAssessment("safe", "manual")
		r.ObserveNoResult()
		r.ObservePairSaved()
		r.ObserveRequest("", http.MethodGet, http.StatusOK, time.Millisecond)
	})
}
