package metrics

import (
	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
)

// NoopMetrics discards every measurement
type NoopMetrics struct{}

// NewNoopMetrics creates metrics that record nothing
func NewNoopMetrics() *NoopMetrics {
	return &NoopMetrics{}
}

func (NoopMetrics) RecordOperation(string, string, coreport.Duration) {}

func (NoopMetrics) RecordSettlement(int, int, int64) {}

func (NoopMetrics) RecordOutboxDelivery(string, int) {}

func (NoopMetrics) SetPoolStats(int, int, int) {}

func (NoopMetrics) RecordHTTPRequest(string, string, int, coreport.Duration) {}
