package shapejson

import (
	"reflect"
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    buildCounter    prometheus.Counter
//	    encodeHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordEncode(size int, duration time.Duration, err error) {
//	    p.encodeHistogram.Observe(duration.Seconds())
//	    // ... record error state, size, etc.
//	}
type MetricsCollector interface {
	// RecordBuild is called after each routine compilation.
	// duration is the time spent classifying and planning t, err is nil if
	// successful.
	RecordBuild(t reflect.Type, duration time.Duration, err error)

	// RecordCacheHit is called when a compiled routine is reused.
	RecordCacheHit()

	// RecordCacheMiss is called when a routine has to be compiled or waited for.
	RecordCacheMiss()

	// RecordEncode is called after each Marshal call.
	// size is the number of bytes produced, including partial output on error.
	RecordEncode(size int, duration time.Duration, err error)

	// RecordDecode is called after each Unmarshal call.
	// size is the number of input bytes consumed.
	RecordDecode(size int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(reflect.Type, time.Duration, error) {}
func (NoopMetricsCollector) RecordCacheHit()                                {}
func (NoopMetricsCollector) RecordCacheMiss()                               {}
func (NoopMetricsCollector) RecordEncode(int, time.Duration, error)         {}
func (NoopMetricsCollector) RecordDecode(int, time.Duration, error)         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount       atomic.Int64
	BuildErrors      atomic.Int64
	BuildTotalNanos  atomic.Int64
	CacheHits        atomic.Int64
	CacheMisses      atomic.Int64
	EncodeCount      atomic.Int64
	EncodeErrors     atomic.Int64
	EncodeBytes      atomic.Int64
	EncodeTotalNanos atomic.Int64
	DecodeCount      atomic.Int64
	DecodeErrors     atomic.Int64
	DecodeBytes      atomic.Int64
	DecodeTotalNanos atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(_ reflect.Type, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
	}
}

// RecordCacheHit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCacheHit() { b.CacheHits.Add(1) }

// RecordCacheMiss implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCacheMiss() { b.CacheMisses.Add(1) }

// RecordEncode implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEncode(size int, duration time.Duration, err error) {
	b.EncodeCount.Add(1)
	b.EncodeBytes.Add(int64(size))
	b.EncodeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.EncodeErrors.Add(1)
	}
}

// RecordDecode implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDecode(size int, duration time.Duration, err error) {
	b.DecodeCount.Add(1)
	b.DecodeBytes.Add(int64(size))
	b.DecodeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.DecodeErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:     b.BuildCount.Load(),
		BuildErrors:    b.BuildErrors.Load(),
		BuildAvgNanos:  avgNanos(&b.BuildTotalNanos, &b.BuildCount),
		CacheHits:      b.CacheHits.Load(),
		CacheMisses:    b.CacheMisses.Load(),
		EncodeCount:    b.EncodeCount.Load(),
		EncodeErrors:   b.EncodeErrors.Load(),
		EncodeBytes:    b.EncodeBytes.Load(),
		EncodeAvgNanos: avgNanos(&b.EncodeTotalNanos, &b.EncodeCount),
		DecodeCount:    b.DecodeCount.Load(),
		DecodeErrors:   b.DecodeErrors.Load(),
		DecodeBytes:    b.DecodeBytes.Load(),
		DecodeAvgNanos: avgNanos(&b.DecodeTotalNanos, &b.DecodeCount),
	}
}

func avgNanos(total, count *atomic.Int64) int64 {
	n := count.Load()
	if n == 0 {
		return 0
	}
	return total.Load() / n
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount     int64
	BuildErrors    int64
	BuildAvgNanos  int64
	CacheHits      int64
	CacheMisses    int64
	EncodeCount    int64
	EncodeErrors   int64
	EncodeBytes    int64
	EncodeAvgNanos int64
	DecodeCount    int64
	DecodeErrors   int64
	DecodeBytes    int64
	DecodeAvgNanos int64
}

type collectorBox struct{ MetricsCollector }

var metrics atomic.Pointer[collectorBox]

// SetMetricsCollector installs mc for all later calls. Pass nil to disable
// metrics collection.
//
// Example with BasicMetricsCollector:
//
//	m := &shapejson.BasicMetricsCollector{}
//	shapejson.SetMetricsCollector(m)
//	// ... use shapejson ...
//	stats := m.GetStats()
//	fmt.Printf("Builds: %d, Avg encode: %dns\n", stats.BuildCount, stats.EncodeAvgNanos)
func SetMetricsCollector(mc MetricsCollector) {
	if mc == nil {
		metrics.Store(nil)
		return
	}
	metrics.Store(&collectorBox{mc})
}

// currentMetrics returns the installed collector or nil. Callers skip
// timing entirely when it is nil.
func currentMetrics() MetricsCollector {
	if b := metrics.Load(); b != nil {
		return b.MetricsCollector
	}
	return nil
}
