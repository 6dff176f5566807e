// Package metrics tracks plugin-side counters for executed GA4 reports.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks report execution counters for the plugin
type Metrics struct {
	ReportCount       uint64
	ErrorCount        uint64
	TotalReportTime   time.Duration
	AverageReportTime time.Duration
	LastReportTime    time.Time
	ConcurrentReports int32
}

var (
	metrics = &Metrics{}
	timeMu  sync.Mutex
)

// RecordReport records metrics for a completed report request
func RecordReport(duration time.Duration, err error) {
	count := atomic.AddUint64(&metrics.ReportCount, 1)
	if err != nil {
		atomic.AddUint64(&metrics.ErrorCount, 1)
	}

	timeMu.Lock()
	metrics.TotalReportTime += duration
	metrics.AverageReportTime = metrics.TotalReportTime / time.Duration(count)
	metrics.LastReportTime = time.Now()
	timeMu.Unlock()
}

// IncrementConcurrentReports increments the count of in-flight reports
func IncrementConcurrentReports() {
	atomic.AddInt32(&metrics.ConcurrentReports, 1)
}

// DecrementConcurrentReports decrements the count of in-flight reports
func DecrementConcurrentReports() {
	atomic.AddInt32(&metrics.ConcurrentReports, -1)
}

// GetMetrics returns the current metrics
func GetMetrics() *Metrics {
	return metrics
}

// ResetMetrics clears all counters. Intended for tests.
func ResetMetrics() {
	timeMu.Lock()
	defer timeMu.Unlock()
	metrics = &Metrics{}
}
