package core

// Metric results
const (
	ResultSuccess = "success"
	ResultFail    = "fail"
)

// Metrics records business measurements for ledger operations
type Metrics interface {
	// RecordOperation counts a ledger operation and observes its latency
	RecordOperation(operation, result string, elapsed Duration)
	// RecordSettlement observes the outcome of a settled round
	RecordSettlement(winners, failures int, totalPayout int64)
	// RecordOutboxDelivery counts published or failed ledger events
	RecordOutboxDelivery(result string, count int)
	// SetPoolStats exposes database connection pool usage
	SetPoolStats(open, inUse, idle int)
}
