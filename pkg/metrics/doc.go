// Package metrics provides observability primitives for the mceliece-go library.
//
// # Overview
//
// The metrics package offers a complete observability solution including:
//   - Metrics collection (counters, histograms) for the KEM operations
//   - Prometheus-compatible metrics export
//   - Distributed tracing support (OpenTelemetry-compatible interface)
//   - Structured logging with levels
//
// # Quick Start
//
// Basic usage with global collector:
//
//	import "github.com/pzverkov/mceliece-go/pkg/metrics"
//
//	// Record metrics
//	metrics.Global().KeyGenCompleted(attempts, elapsed)
//	metrics.Global().EncapsCompleted(elapsed)
//	metrics.Global().DecapsCompleted(elapsed)
//
//	// Start Prometheus server
//	go metrics.ServePrometheus(":9090", metrics.Global(), "mceliece")
//
// # Metrics Collection
//
// The Collector type aggregates metrics from KEM call sites:
//
//	collector := metrics.NewCollector(metrics.Labels{
//		"instance":  "node-1",
//		"param_set": "mceliece6960119",
//	})
//
//	// Key generation metrics
//	collector.KeyGenCompleted(attempts, elapsed)
//	collector.KeyGenFailed()
//
//	// Encapsulation and decapsulation metrics
//	collector.EncapsCompleted(elapsed)
//	collector.DecapsCompleted(elapsed)
//	collector.DecapsRejected()
//
//	// Get snapshot
//	snap := collector.Snapshot()
//
// # Prometheus Export
//
// Export metrics in Prometheus format:
//
//	exporter := metrics.NewPrometheusExporter(collector, "mceliece")
//	http.Handle("/metrics", exporter.Handler())
//
// # Tracing
//
// The package provides a Tracer interface compatible with OpenTelemetry:
//
//	// Use the simple tracer for testing
//	tracer := metrics.NewSimpleTracer()
//	metrics.SetTracer(tracer)
//
//	// OpenTelemetry adapter (uses global provider)
//	otelTracer := metrics.NewOTelTracer("mceliece-go")
//	metrics.SetTracer(otelTracer)
//	// Build with -tags otel to enable the adapter.
//
//	// Start spans
//	ctx, end := metrics.StartSpan(ctx, metrics.SpanKeyGen)
//	defer end(nil) // or end(err) on error
//
// # Structured Logging
//
// The Logger provides structured logging with levels:
//
//	logger := metrics.NewLogger(
//		metrics.WithLevel(metrics.LevelInfo),
//		metrics.WithFormat(metrics.FormatJSON),
//		metrics.WithFields(metrics.Fields{"service": "mceliece-go"}),
//	)
//
//	logger.Info("key pair generated", metrics.Fields{
//		"param_set": "mceliece348864",
//		"attempts":  attempts,
//	})
//
//	// Child loggers
//	kemLog := logger.Named("kem").With(metrics.Fields{"param_set": name})
//	kemLog.Debug("encapsulating")
package metrics
