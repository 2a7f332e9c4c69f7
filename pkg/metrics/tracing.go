package metrics

import (
	"context"
	"encoding/hex"
	"sync"
	"sync/atomic"
	"time"
)

// Tracer abstracts the tracing backend so the library can run with no
// tracing, with the in-memory tracer, or with OpenTelemetry, without the
// call sites changing.
type Tracer interface {
	// StartSpan starts a span. The returned SpanEnder finishes it; pass
	// nil for success or an error to mark the span failed.
	StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, SpanEnder)
}

// SpanEnder finishes a span.
type SpanEnder func(err error)

// SpanOption configures a span at start time.
type SpanOption func(*spanConfig)

type spanConfig struct {
	kind       SpanKind
	attributes map[string]interface{}
}

// SpanKind classifies a span.
type SpanKind int

const (
	SpanKindInternal SpanKind = iota
	SpanKindServer
	SpanKindClient
)

// WithSpanKind sets the span kind.
func WithSpanKind(kind SpanKind) SpanOption {
	return func(c *spanConfig) { c.kind = kind }
}

// WithAttributes sets span attributes.
func WithAttributes(attrs map[string]interface{}) SpanOption {
	return func(c *spanConfig) { c.attributes = attrs }
}

// Span names for the KEM operations.
const (
	SpanKeyGen      = "mceliece.keygen"
	SpanEncapsulate = "mceliece.encapsulate"
	SpanDecapsulate = "mceliece.decapsulate"
	SpanReconstruct = "mceliece.reconstruct_public_key"
	SpanSelfTest    = "mceliece.selftest"
)

// SpanAttributes collects the attributes the KEM operations attach to
// their spans. Zero fields are omitted from the map.
type SpanAttributes struct {
	ParameterSet string
	Attempts     int
	PublicKeyLen int64
	Ciphertext   int64
	Error        string
}

// ToMap converts the attributes to a generic map for WithAttributes.
func (a SpanAttributes) ToMap() map[string]interface{} {
	m := make(map[string]interface{})
	if a.ParameterSet != "" {
		m["kem.parameter_set"] = a.ParameterSet
	}
	if a.Attempts > 0 {
		m["kem.keygen_attempts"] = a.Attempts
	}
	if a.PublicKeyLen > 0 {
		m["kem.public_key_bytes"] = a.PublicKeyLen
	}
	if a.Ciphertext > 0 {
		m["kem.ciphertext_bytes"] = a.Ciphertext
	}
	if a.Error != "" {
		m["error.message"] = a.Error
	}
	return m
}

// NoOpTracer discards all spans. It is the default backend.
type NoOpTracer struct{}

// StartSpan returns the context unchanged and a no-op ender.
func (NoOpTracer) StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, SpanEnder) {
	return ctx, func(error) {}
}

// RecordedSpan is a completed span captured by SimpleTracer.
type RecordedSpan struct {
	Name       string
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	Kind       SpanKind
	Attributes map[string]interface{}
	Error      error
	TraceID    string
	SpanID     string
	ParentID   string
}

// SimpleTracer records spans in memory. The demo command and tests use
// it to inspect span trees without an external collector.
type SimpleTracer struct {
	mu    sync.Mutex
	spans []RecordedSpan
}

// NewSimpleTracer creates an empty in-memory tracer.
func NewSimpleTracer() *SimpleTracer {
	return &SimpleTracer{}
}

// StartSpan starts a span, inheriting trace and parent IDs from any span
// already in the context.
func (t *SimpleTracer) StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, SpanEnder) {
	cfg := &spanConfig{attributes: map[string]interface{}{}}
	for _, opt := range opts {
		opt(cfg)
	}

	span := &RecordedSpan{
		Name:       name,
		StartTime:  time.Now(),
		Kind:       cfg.kind,
		Attributes: cfg.attributes,
		TraceID:    nextSpanID(),
		SpanID:     nextSpanID(),
	}
	if parent := spanFromContext(ctx); parent != nil {
		span.TraceID = parent.TraceID
		span.ParentID = parent.SpanID
	}

	return contextWithSpan(ctx, span), func(err error) {
		span.EndTime = time.Now()
		span.Duration = span.EndTime.Sub(span.StartTime)
		span.Error = err

		t.mu.Lock()
		t.spans = append(t.spans, *span)
		t.mu.Unlock()
	}
}

// Spans returns a copy of all recorded spans.
func (t *SimpleTracer) Spans() []RecordedSpan {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]RecordedSpan(nil), t.spans...)
}

// Reset discards recorded spans.
func (t *SimpleTracer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.spans = t.spans[:0]
}

type spanContextKey struct{}

func contextWithSpan(ctx context.Context, span *RecordedSpan) context.Context {
	return context.WithValue(ctx, spanContextKey{}, span)
}

func spanFromContext(ctx context.Context) *RecordedSpan {
	span, _ := ctx.Value(spanContextKey{}).(*RecordedSpan)
	return span
}

var spanCounter atomic.Uint64

// nextSpanID produces process-unique span IDs. These are for the
// in-memory tracer only; the OpenTelemetry backend generates W3C IDs.
func nextSpanID() string {
	var b [8]byte
	v := spanCounter.Add(1)
	for i := range b {
		b[i] = byte(v >> (56 - 8*i))
	}
	return hex.EncodeToString(b[:])
}

// --- Global tracer ---

var (
	globalTracer   Tracer = NoOpTracer{}
	globalTracerMu sync.RWMutex
)

// SetTracer replaces the global tracer.
func SetTracer(t Tracer) {
	globalTracerMu.Lock()
	defer globalTracerMu.Unlock()
	globalTracer = t
}

// GetTracer returns the global tracer.
func GetTracer() Tracer {
	globalTracerMu.RLock()
	defer globalTracerMu.RUnlock()
	return globalTracer
}

// StartSpan starts a span on the global tracer.
func StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, SpanEnder) {
	return GetTracer().StartSpan(ctx, name, opts...)
}
