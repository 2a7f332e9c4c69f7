//go:build !otel
// +build !otel

package metrics

import "context"

// OTelTracer is a stub when the binary is built without the otel tag.
// It keeps call sites identical between builds.
type OTelTracer struct{}

// NewOTelTracer returns a no-op tracer in builds without OpenTelemetry.
// The serviceName is ignored.
func NewOTelTracer(serviceName string) *OTelTracer {
	return &OTelTracer{}
}

// StartSpan returns the context unchanged and a no-op ender.
func (t *OTelTracer) StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, SpanEnder) {
	return ctx, func(error) {}
}

// OTelEnabled reports whether OpenTelemetry support is built in.
func OTelEnabled() bool { return false }
