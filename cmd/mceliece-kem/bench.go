package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/pzverkov/mceliece-go/pkg/mceliece"
	"github.com/pzverkov/mceliece-go/pkg/metrics"
)

func runBench(paramSet string, keygens, cycles int, logLevel string) {
	collector, _, err := setupObservability(logLevel, "text", "none")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p, err := mceliece.ParamsByName(paramSet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown parameter set %q\n", paramSet)
		os.Exit(1)
	}

	fmt.Println("╔═══════════════════════════════════════════════════════════╗")
	fmt.Println("║      Classic McEliece KEM Benchmark                      ║")
	fmt.Println("╚═══════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("Parameter set: %s\n\n", p)

	if keygens == 0 && cycles == 0 {
		fmt.Println("No benchmarks specified. Use --keygens or --cycles")
		fmt.Println("Run 'mceliece-kem bench --help' for usage")
		os.Exit(1)
	}

	if keygens > 0 {
		benchKeyGen(p, keygens, collector)
		fmt.Println()
	}

	if cycles > 0 {
		benchCycles(p, cycles, collector)
	}
}

func benchKeyGen(p mceliece.Params, count int, collector *metrics.Collector) {
	fmt.Printf("Benchmarking Key Generation (%d iterations)\n", count)
	fmt.Println(strings.Repeat("─", 60))

	durations := make([]time.Duration, 0, count)
	failures := 0
	start := time.Now()
	for i := 0; i < count; i++ {
		opStart := time.Now()
		_, _, err := mceliece.GenerateKeyPair(p, nil)
		d := time.Since(opStart)
		if err != nil {
			failures++
			collector.KeyGenFailed()
			continue
		}
		collector.KeyGenCompleted(1, d)
		durations = append(durations, d)
		fmt.Printf("Progress: %d/%d\r", i+1, count)
	}
	total := time.Since(start)
	fmt.Println()

	printLatencyStats("Key generation", durations, failures, total)
}

func benchCycles(p mceliece.Params, count int, collector *metrics.Collector) {
	fmt.Printf("Benchmarking Encapsulate/Decapsulate (%d cycles)\n", count)
	fmt.Println(strings.Repeat("─", 60))

	pk, sk, err := mceliece.GenerateKeyPair(p, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: key generation failed: %v\n", err)
		os.Exit(1)
	}

	encaps := make([]time.Duration, 0, count)
	decaps := make([]time.Duration, 0, count)
	failures := 0
	start := time.Now()
	for i := 0; i < count; i++ {
		opStart := time.Now()
		ct, ss, err := mceliece.Encapsulate(pk, nil)
		encapsTime := time.Since(opStart)
		if err != nil {
			failures++
			collector.EncapsFailed()
			continue
		}
		collector.EncapsCompleted(encapsTime)
		encaps = append(encaps, encapsTime)

		opStart = time.Now()
		got, err := mceliece.Decapsulate(sk, ct)
		decapsTime := time.Since(opStart)
		if err != nil || string(got) != string(ss) {
			failures++
			continue
		}
		collector.DecapsCompleted(decapsTime)
		decaps = append(decaps, decapsTime)
	}
	total := time.Since(start)

	printLatencyStats("Encapsulate", encaps, 0, 0)
	fmt.Println()
	printLatencyStats("Decapsulate", decaps, failures, total)
}

func printLatencyStats(name string, durations []time.Duration, failures int, total time.Duration) {
	if len(durations) == 0 {
		fmt.Printf("%s: no successful operations\n", name)
		return
	}

	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum time.Duration
	for _, d := range sorted {
		sum += d
	}
	mean := sum / time.Duration(len(sorted))
	p50 := sorted[len(sorted)/2]
	p95 := sorted[len(sorted)*95/100]

	fmt.Printf("%s results:\n", name)
	fmt.Printf("  Operations: %d", len(durations))
	if failures > 0 {
		fmt.Printf(" (%d failed)", failures)
	}
	fmt.Println()
	fmt.Printf("  Mean: %v\n", mean.Round(time.Microsecond))
	fmt.Printf("  P50:  %v\n", p50.Round(time.Microsecond))
	fmt.Printf("  P95:  %v\n", p95.Round(time.Microsecond))
	fmt.Printf("  Min:  %v\n", sorted[0].Round(time.Microsecond))
	fmt.Printf("  Max:  %v\n", sorted[len(sorted)-1].Round(time.Microsecond))
	if total > 0 {
		fmt.Printf("  Rate: %.1f ops/sec\n", float64(len(durations))/total.Seconds())
	}
}
