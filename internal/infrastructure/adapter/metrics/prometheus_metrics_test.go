package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
)

var (
	_ coreport.Metrics = (*PrometheusMetrics)(nil)
	_ coreport.Metrics = (*NoopMetrics)(nil)
)

func TestPrometheusMetrics_RecordOperation(t *testing.T) {
	m := NewPrometheusMetrics("ledger")

	m.RecordOperation("place_bet", coreport.ResultSuccess, 12*coreport.Millisecond)
	m.RecordOperation("place_bet", coreport.ResultSuccess, 3*coreport.Millisecond)
	m.RecordOperation("place_bet", coreport.ResultFail, coreport.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("place_bet", coreport.ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("place_bet", coreport.ResultFail)))
}

func TestPrometheusMetrics_RecordSettlement(t *testing.T) {
	m := NewPrometheusMetrics("ledger")

	m.RecordSettlement(3, 1, 600)
	m.RecordSettlement(0, 0, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.settlementsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.payoutFailures))
	assert.Equal(t, 600.0, testutil.ToFloat64(m.payoutTotal))
}

func TestPrometheusMetrics_OutboxAndPool(t *testing.T) {
	m := NewPrometheusMetrics("ledger")

	m.RecordOutboxDelivery(coreport.ResultSuccess, 4)
	m.RecordOutboxDelivery(coreport.ResultFail, 0)
	m.SetPoolStats(10, 4, 6)

	assert.Equal(t, 4.0, testutil.ToFloat64(m.outboxDeliveries.WithLabelValues(coreport.ResultSuccess)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.outboxDeliveries))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.poolOpen))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.poolInUse))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.poolIdle))
}

func TestPrometheusMetrics_Handler(t *testing.T) {
	m := NewPrometheusMetrics("ledger")
	m.RecordHTTPRequest(http.MethodGet, "/balance", http.StatusOK, 7*coreport.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `ledger_http_requests_total{method="GET",path="/balance",status="200"} 1`))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}
