package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pzverkov/mceliece-go/pkg/mceliece"
	"github.com/pzverkov/mceliece-go/pkg/metrics"
)

func runDemo(paramSet string, verbose bool, obsAddr, logLevel, logFormat, tracing string) {
	collector, logger, err := setupObservability(logLevel, logFormat, tracing)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p, err := mceliece.ParamsByName(paramSet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown parameter set %q\n", paramSet)
		fmt.Fprintln(os.Stderr, "Available sets:")
		for _, q := range mceliece.AllParams() {
			fmt.Fprintf(os.Stderr, "  %s\n", q.Name)
		}
		os.Exit(1)
	}

	fmt.Println("╔═══════════════════════════════════════════════════════════╗")
	fmt.Println("║      Classic McEliece KEM Demo                           ║")
	fmt.Println("║      Code-based cryptography over binary Goppa codes     ║")
	fmt.Println("╚═══════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("Parameter set: %s\n", p)
	fmt.Printf("  Public key:    %d bytes\n", p.PublicKeySize())
	fmt.Printf("  Private key:   %d bytes\n", p.PrivateKeySize())
	fmt.Printf("  Ciphertext:    %d bytes\n", p.CiphertextSize())
	fmt.Printf("  Shared secret: %d bytes\n", p.SharedSecretSize())
	fmt.Println()

	if obsAddr != "" {
		go func() {
			if err := metrics.ServePrometheus(obsAddr, collector, "mceliece"); err != nil {
				logger.Error("metrics server stopped", metrics.Fields{"error": err.Error()})
			}
		}()
		fmt.Printf("Metrics: http://localhost%s/metrics\n\n", obsAddr)
	}

	ctx := context.Background()

	// Key generation
	fmt.Println("Step 1: Key Generation")
	fmt.Println(strings.Repeat("─", 60))
	_, endSpan := metrics.StartSpan(ctx, metrics.SpanKeyGen,
		metrics.WithAttributes(metrics.SpanAttributes{ParameterSet: p.Name}.ToMap()))
	start := time.Now()
	pk, sk, err := mceliece.GenerateKeyPair(p, nil)
	keygenTime := time.Since(start)
	endSpan(err)
	if err != nil {
		collector.KeyGenFailed()
		fmt.Fprintf(os.Stderr, "Error: key generation failed: %v\n", err)
		os.Exit(1)
	}
	collector.KeyGenCompleted(1, keygenTime)
	logger.Info("key pair generated", metrics.Fields{"param_set": p.Name, "elapsed": keygenTime.String()})
	fmt.Printf("✓ Key pair generated in %v\n", keygenTime.Round(time.Millisecond))
	if verbose {
		pkBytes := pk.Bytes()
		fmt.Printf("  Public key (first 16 bytes): %x...\n", pkBytes[:16])
	}
	fmt.Println()

	// Encapsulation
	fmt.Println("Step 2: Encapsulation")
	fmt.Println(strings.Repeat("─", 60))
	_, endSpan = metrics.StartSpan(ctx, metrics.SpanEncapsulate)
	start = time.Now()
	ct, ss, err := mceliece.Encapsulate(pk, nil)
	encapsTime := time.Since(start)
	endSpan(err)
	if err != nil {
		collector.EncapsFailed()
		fmt.Fprintf(os.Stderr, "Error: encapsulation failed: %v\n", err)
		os.Exit(1)
	}
	collector.EncapsCompleted(encapsTime)
	fmt.Printf("✓ Encapsulated in %v\n", encapsTime.Round(time.Microsecond))
	if verbose {
		fmt.Printf("  Ciphertext: %x...\n", ct[:16])
		fmt.Printf("  Shared secret: %x\n", ss)
	}
	fmt.Println()

	// Decapsulation
	fmt.Println("Step 3: Decapsulation")
	fmt.Println(strings.Repeat("─", 60))
	_, endSpan = metrics.StartSpan(ctx, metrics.SpanDecapsulate)
	start = time.Now()
	got, err := mceliece.Decapsulate(sk, ct)
	decapsTime := time.Since(start)
	endSpan(err)
	if err != nil {
		collector.DecapsRejected()
		fmt.Fprintf(os.Stderr, "Error: decapsulation failed: %v\n", err)
		os.Exit(1)
	}
	collector.DecapsCompleted(decapsTime)
	fmt.Printf("✓ Decapsulated in %v\n", decapsTime.Round(time.Microsecond))

	match := string(ss) == string(got)
	if !match {
		fmt.Fprintln(os.Stderr, "✗ Shared secrets DO NOT match")
		os.Exit(1)
	}
	fmt.Println("✓ Shared secrets match")
	fmt.Println()

	// Implicit rejection probe
	fmt.Println("Step 4: Implicit Rejection")
	fmt.Println(strings.Repeat("─", 60))
	corrupted := append([]byte(nil), ct...)
	corrupted[0] ^= 1
	rej, err := mceliece.Decapsulate(sk, corrupted)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: decapsulation of corrupted ciphertext failed: %v\n", err)
		os.Exit(1)
	}
	if string(rej) == string(ss) {
		fmt.Fprintln(os.Stderr, "✗ Corrupted ciphertext yielded the honest secret")
		os.Exit(1)
	}
	fmt.Println("✓ Corrupted ciphertext silently yields a different secret")
	fmt.Println()

	if verbose {
		if tr, ok := metrics.GetTracer().(*metrics.SimpleTracer); ok {
			fmt.Println("Recorded spans:")
			for _, span := range tr.Spans() {
				fmt.Printf("  %-28s %v\n", span.Name, span.Duration.Round(time.Microsecond))
			}
			fmt.Println()
		}
	}

	fmt.Println("Demo complete.")
}

func setupObservability(logLevel, logFormat, tracing string) (*metrics.Collector, *metrics.Logger, error) {
	level, err := parseLogLevel(logLevel)
	if err != nil {
		return nil, nil, err
	}

	format, err := parseLogFormat(logFormat)
	if err != nil {
		return nil, nil, err
	}

	logger := metrics.NewLogger(
		metrics.WithOutput(os.Stderr),
		metrics.WithLevel(level),
		metrics.WithFormat(format),
		metrics.WithFields(metrics.Fields{"app": "mceliece-kem"}),
	)
	metrics.SetLogger(logger)

	switch tracing {
	case "none":
		metrics.SetTracer(metrics.NoOpTracer{})
	case "simple":
		metrics.SetTracer(metrics.NewSimpleTracer())
	case "otel":
		if !metrics.OTelEnabled() {
			return nil, nil, fmt.Errorf("otel tracing not enabled (build with -tags otel)")
		}
		metrics.SetTracer(metrics.NewOTelTracer("mceliece-kem"))
	default:
		return nil, nil, fmt.Errorf("invalid tracing mode: %s (use none, simple, or otel)", tracing)
	}

	collector := metrics.NewCollector(metrics.Labels{
		"service": "mceliece-kem",
	})
	metrics.SetGlobal(collector)

	return collector, logger, nil
}

func parseLogLevel(level string) (metrics.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return metrics.LevelDebug, nil
	case "info":
		return metrics.LevelInfo, nil
	case "warn", "warning":
		return metrics.LevelWarn, nil
	case "error":
		return metrics.LevelError, nil
	case "silent", "off", "none":
		return metrics.LevelSilent, nil
	default:
		return metrics.LevelInfo, fmt.Errorf("invalid log level: %s (use debug, info, warn, error, silent)", level)
	}
}

func parseLogFormat(format string) (metrics.Format, error) {
	switch strings.ToLower(format) {
	case "text":
		return metrics.FormatText, nil
	case "json":
		return metrics.FormatJSON, nil
	default:
		return metrics.FormatText, fmt.Errorf("invalid log format: %s (use text or json)", format)
	}
}
