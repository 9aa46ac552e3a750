package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordSideEffect(t *testing.T) {
	before := testutil.ToFloat64(sideEffectResults.WithLabelValues("Slack", "rejected"))
	RecordSideEffect("Slack", "rejected")
	after := testutil.ToFloat64(sideEffectResults.WithLabelValues("Slack", "rejected"))

	assert.Equal(t, before+1, after)
}

func TestRecordIntegrationError(t *testing.T) {
	before := testutil.ToFloat64(integrationErrors.WithLabelValues("Sheets"))
	RecordIntegrationError("Sheets")
	after := testutil.ToFloat64(integrationErrors.WithLabelValues("Sheets"))

	assert.Equal(t, before+1, after)
}

func TestRecordLeadReceived(t *testing.T) {
	before := testutil.ToFloat64(leadsReceived.WithLabelValues("Facebook", "queued"))
	RecordLeadReceived("Facebook", "queued")
	after := testutil.ToFloat64(leadsReceived.WithLabelValues("Facebook", "queued"))

	assert.Equal(t, before+1, after)
}

func TestMetricsMiddlewareCountsRequests(t *testing.T) {
	handler := Metrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/ping", "418"))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/ping", nil))
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/ping", "418"))

	assert.Equal(t, before+1, after)
}
