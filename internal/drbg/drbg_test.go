package drbg

import (
	"bytes"
	"testing"

	qerrors "github.com/pzverkov/mceliece-go/internal/errors"
)

func testSeed(fill byte) []byte {
	seed := make([]byte, SeedSize)
	for i := range seed {
		seed[i] = fill ^ byte(i)
	}
	return seed
}

func TestNewRejectsBadSeedLength(t *testing.T) {
	for _, n := range []int{0, 32, 47, 49, 64} {
		if _, err := New(make([]byte, n)); err != qerrors.ErrInvalidSeedLength {
			t.Errorf("seed length %d: got %v, want ErrInvalidSeedLength", n, err)
		}
	}
}

func TestDeterminism(t *testing.T) {
	g1, err := New(testSeed(0xA5))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	g2, _ := New(testSeed(0xA5))

	a := make([]byte, 4096)
	b := make([]byte, 4096)
	g1.Read(a)
	g2.Read(b)

	if !bytes.Equal(a, b) {
		t.Error("identical seeds must produce identical streams")
	}
}

func TestStreamOrderSensitivity(t *testing.T) {
	// Reading 64 bytes in one call must equal reading 64 bytes in chunks:
	// the state update happens per Read call, so chunked reads advance the
	// state differently and the harness contract is one ordered consumer.
	g1, _ := New(testSeed(0x3C))
	g2, _ := New(testSeed(0x3C))

	whole := make([]byte, 64)
	g1.Read(whole)

	chunked := make([]byte, 64)
	g2.Read(chunked[:32])
	g2.Read(chunked[32:])

	if bytes.Equal(whole, chunked) {
		t.Error("per-call state update should make chunked reads diverge")
	}
}

func TestSeedSeparation(t *testing.T) {
	g1, _ := New(testSeed(0x00))
	g2, _ := New(testSeed(0x01))

	a := make([]byte, 256)
	b := make([]byte, 256)
	g1.Read(a)
	g2.Read(b)

	if bytes.Equal(a, b) {
		t.Error("different seeds must produce different streams")
	}
}

func TestOutputNotDegenerate(t *testing.T) {
	g, _ := New(testSeed(0x77))
	out := make([]byte, 1024)
	g.Read(out)

	counts := make(map[byte]int)
	for _, c := range out {
		counts[c]++
	}
	// 1 KiB of AES-CTR output uses far more than a handful of byte values.
	if len(counts) < 64 {
		t.Errorf("output looks degenerate: only %d distinct byte values", len(counts))
	}
}
