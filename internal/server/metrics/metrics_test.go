package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { RegisterMetrics(reg) })

	// second registration of the same collectors must fail
	assert.Panics(t, func() { RegisterMetrics(reg) })
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/api/tasks", "200"))

	RecordHTTPRequest("GET", "/api/tasks", "200", 15*time.Millisecond)

	after := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/api/tasks", "200"))
	assert.Equal(t, before+1, after)
}

func TestRecordLogin(t *testing.T) {
	before := testutil.ToFloat64(Logins.WithLabelValues(LoginInvalid))
	RecordLogin(LoginInvalid)
	assert.Equal(t, before+1, testutil.ToFloat64(Logins.WithLabelValues(LoginInvalid)))
}
