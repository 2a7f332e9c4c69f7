package main

import (
	"flag"
	"fmt"
	"os"

	pkgversion "github.com/pzverkov/mceliece-go/pkg/version"
)

// Build-time variables (set via -ldflags)
var (
	version   = ""        // Set via -ldflags "-X main.version=x.y.z"
	buildTime = "unknown" // Set via -ldflags "-X main.buildTime=..."
	gitCommit = "unknown" // Set via -ldflags "-X main.gitCommit=..."
)

func getVersion() string {
	if version != "" {
		return version
	}
	return pkgversion.String()
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "demo":
		demoCommand()
	case "bench":
		benchCommand()
	case "gen-kat":
		genKATCommand()
	case "version":
		fmt.Printf("mceliece-kem version %s\n", getVersion())
		if buildTime != "unknown" {
			fmt.Printf("Built: %s\n", buildTime)
		}
		if gitCommit != "unknown" {
			fmt.Printf("Commit: %s\n", gitCommit)
		}
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`mceliece-kem - Classic McEliece KEM Demo & Benchmark Tool

USAGE:
    mceliece-kem <command> [options]

COMMANDS:
    demo      Run a full key generation / encapsulation / decapsulation cycle
    bench     Run performance benchmarks
    gen-kat   Generate known-answer vector files (.rsp)
    version   Print version information
    help      Show this help message

Run 'mceliece-kem <command> --help' for more information on a command.

EXAMPLES:
    # Demo with the smallest parameter set
    mceliece-kem demo --params mceliece348864

    # Benchmark 10 key generations plus 100 encapsulation cycles
    mceliece-kem bench --params mceliece348864 --keygens 10 --cycles 100

    # Generate 10 KAT vectors
    mceliece-kem gen-kat --params mceliece348864 --count 10 --out testdata

PROJECT:
    mceliece-go - Classic McEliece Key Encapsulation
    https://github.com/pzverkov/mceliece-go

    Security: code-based KEM over binary Goppa codes (NIST Round 4)`)
}

func demoCommand() {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	paramSet := fs.String("params", "mceliece348864", "Parameter set name")
	verbose := fs.Bool("verbose", false, "Verbose output")
	obsAddr := fs.String("obs-addr", "", "Prometheus metrics address (empty disables)")
	logLevel := fs.String("log-level", "warn", "Log level: debug, info, warn, error, silent")
	logFormat := fs.String("log-format", "text", "Log format: text or json")
	tracing := fs.String("tracing", "none", "Tracing mode: none, simple, otel (requires -tags otel)")

	fs.Usage = func() {
		fmt.Println(`USAGE: mceliece-kem demo [options]

Run one full KEM cycle: key generation, encapsulation, decapsulation,
pairwise consistency check, and an implicit-rejection probe.

OPTIONS:`)
		fs.PrintDefaults()
		fmt.Println(`
EXAMPLES:
    # Smallest parameter set, verbose
    mceliece-kem demo --params mceliece348864 --verbose

    # Full-size set with metrics endpoint
    mceliece-kem demo --params mceliece6960119 --obs-addr :9090`)
	}

	_ = fs.Parse(os.Args[2:])

	runDemo(*paramSet, *verbose, *obsAddr, *logLevel, *logFormat, *tracing)
}

func benchCommand() {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	paramSet := fs.String("params", "mceliece348864", "Parameter set name")
	keygens := fs.Int("keygens", 0, "Number of key generations to benchmark (0 = skip)")
	cycles := fs.Int("cycles", 0, "Number of encapsulate/decapsulate cycles (0 = skip)")
	logLevel := fs.String("log-level", "warn", "Log level: debug, info, warn, error, silent")

	fs.Usage = func() {
		fmt.Println(`USAGE: mceliece-kem bench [options]

Run performance benchmarks for key generation and the encapsulation cycle.

OPTIONS:`)
		fs.PrintDefaults()
		fmt.Println(`
EXAMPLES:
    # Benchmark 10 key generations
    mceliece-kem bench --keygens 10

    # Benchmark 1000 encapsulate/decapsulate cycles on a large set
    mceliece-kem bench --params mceliece8192128 --cycles 1000`)
	}

	_ = fs.Parse(os.Args[2:])

	runBench(*paramSet, *keygens, *cycles, *logLevel)
}

func genKATCommand() {
	fs := flag.NewFlagSet("gen-kat", flag.ExitOnError)
	paramSet := fs.String("params", "mceliece348864", "Parameter set name (or 'all')")
	count := fs.Int("count", 10, "Number of vectors per file")
	out := fs.String("out", "testdata", "Output directory")

	fs.Usage = func() {
		fmt.Println(`USAGE: mceliece-kem gen-kat [options]

Generate known-answer vector files in the NIST .rsp format. Each vector
holds a 48-byte DRBG seed and the key pair, ciphertext, and shared secret
produced from it. Files are written as <out>/<paramset>.rsp.

OPTIONS:`)
		fs.PrintDefaults()
	}

	_ = fs.Parse(os.Args[2:])

	runGenKAT(*paramSet, *count, *out)
}
