package suggest

import (
	"errors"
	"sync/atomic"
	"time"
)

// Metrics tracks suggestion call metrics
type Metrics struct {
	calls            int64
	errors           int64
	credentialErrors int64
	latency          int64 // total latency in nanoseconds
	rejected         int64
}

var globalMetrics = &Metrics{}

// GetMetrics returns the current metrics snapshot
func GetMetrics() Metrics {
	return Metrics{
		calls:            atomic.LoadInt64(&globalMetrics.calls),
		errors:           atomic.LoadInt64(&globalMetrics.errors),
		credentialErrors: atomic.LoadInt64(&globalMetrics.credentialErrors),
		latency:          atomic.LoadInt64(&globalMetrics.latency),
		rejected:         atomic.LoadInt64(&globalMetrics.rejected),
	}
}

// ResetMetrics resets all metrics (useful for testing)
func ResetMetrics() {
	atomic.StoreInt64(&globalMetrics.calls, 0)
	atomic.StoreInt64(&globalMetrics.errors, 0)
	atomic.StoreInt64(&globalMetrics.credentialErrors, 0)
	atomic.StoreInt64(&globalMetrics.latency, 0)
	atomic.StoreInt64(&globalMetrics.rejected, 0)
}

func recordCall(duration time.Duration, err error) {
	atomic.AddInt64(&globalMetrics.calls, 1)
	atomic.AddInt64(&globalMetrics.latency, duration.Nanoseconds())
	if err != nil {
		atomic.AddInt64(&globalMetrics.errors, 1)
		if errors.Is(err, ErrInvalidCredential) {
			atomic.AddInt64(&globalMetrics.credentialErrors, 1)
		}
	}
}

// recordRejected counts calls refused before reaching the model.
func recordRejected() {
	atomic.AddInt64(&globalMetrics.rejected, 1)
}

func (m Metrics) Calls() int64            { return m.calls }
func (m Metrics) Errors() int64           { return m.errors }
func (m Metrics) CredentialErrors() int64 { return m.credentialErrors }
func (m Metrics) Rejected() int64         { return m.rejected }

// AverageLatency returns the average latency in milliseconds
func (m Metrics) AverageLatency() float64 {
	if m.calls == 0 {
		return 0
	}
	avgNs := float64(m.latency) / float64(m.calls)
	return avgNs / 1e6
}

// ErrorRate returns the error rate as a percentage
func (m Metrics) ErrorRate() float64 {
	if m.calls == 0 {
		return 0
	}
	return float64(m.errors) / float64(m.calls) * 100
}

// Snapshot is the JSON view of the metrics.
type Snapshot struct {
	Calls            int64   `json:"calls"`
	Errors           int64   `json:"errors"`
	CredentialErrors int64   `json:"credential_errors"`
	Rejected         int64   `json:"rejected"`
	AvgLatencyMs     float64 `json:"avg_latency_ms"`
	ErrorRatePct     float64 `json:"error_rate_pct"`
}

func (m Metrics) Snapshot() Snapshot {
	return Snapshot{
		Calls:            m.calls,
		Errors:           m.errors,
		CredentialErrors: m.credentialErrors,
		Rejected:         m.rejected,
		AvgLatencyMs:     m.AverageLatency(),
		ErrorRatePct:     m.ErrorRate(),
	}
}
