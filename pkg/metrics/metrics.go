// Package metrics provides observability primitives for the mceliece-go
// library.
//
// The package includes:
//   - Counter and Histogram metric types for the KEM operations
//   - Prometheus-compatible metrics export
//   - OpenTelemetry tracing support
//   - Structured logging with levels
package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Collector aggregates metrics from key generation, encapsulation, and
// decapsulation call sites.
type Collector struct {
	// Key generation metrics
	keygenTotal    atomic.Uint64
	keygenFailed   atomic.Uint64
	keygenAttempts atomic.Uint64
	keygenLatency  *Histogram

	// Encapsulation metrics
	encapsTotal   atomic.Uint64
	encapsFailed  atomic.Uint64
	encapsLatency *Histogram

	// Decapsulation metrics. Rejected counts only ciphertexts refused for
	// malformed length or padding; implicit rejections are by design not
	// observable.
	decapsTotal    atomic.Uint64
	decapsRejected atomic.Uint64
	decapsLatency  *Histogram

	// Key encoding errors (parse failures of stored key material)
	keyParseErrors atomic.Uint64

	// Creation time for uptime tracking
	createdAt time.Time

	// Labels for this collector instance
	labels Labels
}

// Labels represents key-value pairs for metric labeling.
type Labels map[string]string

// NewCollector creates a new metrics collector.
func NewCollector(labels Labels) *Collector {
	if labels == nil {
		labels = make(Labels)
	}

	return &Collector{
		keygenLatency: NewHistogram(KeyGenLatencyBuckets),
		encapsLatency: NewHistogram(LatencyBuckets),
		decapsLatency: NewHistogram(LatencyBuckets),
		createdAt:     time.Now(),
		labels:        labels,
	}
}

// Default bucket configurations for histograms.
var (
	// KeyGenLatencyBuckets for key generation duration (milliseconds).
	// Goppa key generation spans two orders of magnitude across the
	// parameter sets, and retries stretch the tail.
	KeyGenLatencyBuckets = []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 25000}

	// LatencyBuckets for encapsulate/decapsulate operations (microseconds).
	LatencyBuckets = []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 25000}
)

// --- Key Generation Metrics ---

// KeyGenCompleted records a successful key generation together with the
// number of seed attempts it consumed.
func (c *Collector) KeyGenCompleted(attempts int, d time.Duration) {
	c.keygenTotal.Add(1)
	if attempts > 0 {
		c.keygenAttempts.Add(uint64(attempts))
	}
	c.keygenLatency.Observe(float64(d.Milliseconds()))
}

// KeyGenFailed records a key generation that exhausted its retry budget
// or failed on the randomness source.
func (c *Collector) KeyGenFailed() {
	c.keygenFailed.Add(1)
}

// --- Encapsulation Metrics ---

// EncapsCompleted records a successful encapsulation.
func (c *Collector) EncapsCompleted(d time.Duration) {
	c.encapsTotal.Add(1)
	c.encapsLatency.Observe(float64(d.Microseconds()))
}

// EncapsFailed records a failed encapsulation.
func (c *Collector) EncapsFailed() {
	c.encapsFailed.Add(1)
}

// --- Decapsulation Metrics ---

// DecapsCompleted records a completed decapsulation.
func (c *Collector) DecapsCompleted(d time.Duration) {
	c.decapsTotal.Add(1)
	c.decapsLatency.Observe(float64(d.Microseconds()))
}

// DecapsRejected records a ciphertext refused before decoding.
func (c *Collector) DecapsRejected() {
	c.decapsRejected.Add(1)
}

// --- Key Encoding Metrics ---

// KeyParseError records a failure to parse stored key material.
func (c *Collector) KeyParseError() {
	c.keyParseErrors.Add(1)
}

// Snapshot is a point-in-time copy of all metrics.
type Snapshot struct {
	// Timestamp of the snapshot
	Timestamp time.Time

	// Uptime since collector creation
	Uptime time.Duration

	// Key generation metrics
	KeyGenTotal    uint64
	KeyGenFailed   uint64
	KeyGenAttempts uint64

	// Encapsulation metrics
	EncapsTotal  uint64
	EncapsFailed uint64

	// Decapsulation metrics
	DecapsTotal    uint64
	DecapsRejected uint64

	// Key encoding metrics
	KeyParseErrors uint64

	// Histogram summaries
	KeyGenLatency HistogramSummary
	EncapsLatency HistogramSummary
	DecapsLatency HistogramSummary

	// Labels
	Labels Labels
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		Timestamp:      time.Now(),
		Uptime:         time.Since(c.createdAt),
		KeyGenTotal:    c.keygenTotal.Load(),
		KeyGenFailed:   c.keygenFailed.Load(),
		KeyGenAttempts: c.keygenAttempts.Load(),
		EncapsTotal:    c.encapsTotal.Load(),
		EncapsFailed:   c.encapsFailed.Load(),
		DecapsTotal:    c.decapsTotal.Load(),
		DecapsRejected: c.decapsRejected.Load(),
		KeyParseErrors: c.keyParseErrors.Load(),
		KeyGenLatency:  c.keygenLatency.Summary(),
		EncapsLatency:  c.encapsLatency.Summary(),
		DecapsLatency:  c.decapsLatency.Summary(),
		Labels:         c.labels,
	}
}

// Reset clears all metrics (useful for testing).
func (c *Collector) Reset() {
	c.keygenTotal.Store(0)
	c.keygenFailed.Store(0)
	c.keygenAttempts.Store(0)
	c.encapsTotal.Store(0)
	c.encapsFailed.Store(0)
	c.decapsTotal.Store(0)
	c.decapsRejected.Store(0)
	c.keyParseErrors.Store(0)
	c.keygenLatency.Reset()
	c.encapsLatency.Reset()
	c.decapsLatency.Reset()
	c.createdAt = time.Now()
}

// --- Global Collector ---

var (
	globalCollector     *Collector
	globalCollectorOnce sync.Once
)

// Global returns the global metrics collector.
// Creates one with default settings if not already initialized.
func Global() *Collector {
	globalCollectorOnce.Do(func() {
		globalCollector = NewCollector(Labels{"instance": "default"})
	})
	return globalCollector
}

// SetGlobal sets the global metrics collector.
// Should be called during initialization before any metrics are recorded.
func SetGlobal(c *Collector) {
	globalCollector = c
}
