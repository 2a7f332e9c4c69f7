package crypto_test

import (
	"bytes"
	"encoding/hex"
	"io"
	"testing"

	qerrors "github.com/pzverkov/mceliece-go/internal/errors"
	"github.com/pzverkov/mceliece-go/pkg/crypto"
)

// --- Random Tests ---

func TestSecureRandom(t *testing.T) {
	buf := make([]byte, 32)
	if err := crypto.SecureRandom(buf); err != nil {
		t.Fatalf("SecureRandom failed: %v", err)
	}

	allZeros := true
	for _, b := range buf {
		if b != 0 {
			allZeros = false
			break
		}
	}
	if allZeros {
		t.Error("SecureRandom returned all zeros")
	}
}

func TestSecureRandomBytes(t *testing.T) {
	sizes := []int{16, 32, 48, 64}
	for _, size := range sizes {
		buf, err := crypto.SecureRandomBytes(size)
		if err != nil {
			t.Fatalf("SecureRandomBytes(%d) failed: %v", size, err)
		}
		if len(buf) != size {
			t.Errorf("SecureRandomBytes(%d) returned %d bytes", size, len(buf))
		}
	}
}

func TestConstantTimeCompare(t *testing.T) {
	a := []byte("shared secret value")
	b := []byte("shared secret value")
	c := []byte("shared secret valuf")
	d := []byte("shared")

	if !crypto.ConstantTimeCompare(a, b) {
		t.Error("Equal slices should compare equal")
	}
	if crypto.ConstantTimeCompare(a, c) {
		t.Error("Different slices should not compare equal")
	}
	if crypto.ConstantTimeCompare(a, d) {
		t.Error("Different length slices should not compare equal")
	}
}

func TestConstantTimeSelect(t *testing.T) {
	a := []byte{1, 2, 3, 4}
	b := []byte{5, 6, 7, 8}
	out := make([]byte, 4)

	crypto.ConstantTimeSelect(0xFF, a, b, out)
	if !bytes.Equal(out, a) {
		t.Errorf("mask 0xFF: got %v, want %v", out, a)
	}

	crypto.ConstantTimeSelect(0x00, a, b, out)
	if !bytes.Equal(out, b) {
		t.Errorf("mask 0x00: got %v, want %v", out, b)
	}
}

func TestZeroize(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	crypto.Zeroize(buf)
	for i, b := range buf {
		if b != 0 {
			t.Errorf("Zeroize failed at index %d: got %d, want 0", i, b)
		}
	}
}

// --- XOF / KDF Tests ---

func TestSHAKE256EmptyKAT(t *testing.T) {
	// FIPS 202 SHAKE-256 empty-message vector.
	want, _ := hex.DecodeString(
		"46b9dd2b0ba88d13233b3feb743eeb243fcd52ea62b81b82b50c27646ed5762f")
	got := crypto.SHAKE256(32)
	if !bytes.Equal(got, want) {
		t.Errorf("SHAKE256(32): got %x, want %x", got, want)
	}
}

func TestSHAKE256Concatenation(t *testing.T) {
	// Splitting the input across arguments must not change the digest.
	whole := crypto.SHAKE256(64, []byte("abcdef"))
	parts := crypto.SHAKE256(64, []byte("abc"), []byte("def"))
	if !bytes.Equal(whole, parts) {
		t.Error("SHAKE256 should hash the plain concatenation of its inputs")
	}
}

func TestNewStreamDeterminism(t *testing.T) {
	seed := []byte("0123456789abcdef0123456789abcdef")

	a := make([]byte, 1024)
	b := make([]byte, 1024)
	io.ReadFull(crypto.NewStream(0x40, seed), a)
	io.ReadFull(crypto.NewStream(0x40, seed), b)
	if !bytes.Equal(a, b) {
		t.Error("stream is not deterministic")
	}

	c := make([]byte, 1024)
	io.ReadFull(crypto.NewStream(0x41, seed), c)
	if bytes.Equal(a, c) {
		t.Error("prefix byte should separate streams")
	}
}

func TestDeriveKey(t *testing.T) {
	input := []byte("input keying material")

	out, err := crypto.DeriveKey("test-domain", input, 32)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	if len(out) != 32 {
		t.Errorf("output length: got %d, want 32", len(out))
	}

	out2, _ := crypto.DeriveKey("test-domain", input, 32)
	if !bytes.Equal(out, out2) {
		t.Error("DeriveKey is not deterministic")
	}

	other, _ := crypto.DeriveKey("other-domain", input, 32)
	if bytes.Equal(out, other) {
		t.Error("domains should separate outputs")
	}
}

func TestDeriveKeyRejectsBadLength(t *testing.T) {
	for _, n := range []int{0, -1, 1<<20 + 1} {
		if _, err := crypto.DeriveKey("d", nil, n); !qerrors.Is(err, qerrors.ErrInvalidKeySize) {
			t.Errorf("outputLen %d: got %v, want ErrInvalidKeySize", n, err)
		}
	}
}

func TestDeriveKeyLengthPrefixing(t *testing.T) {
	// ("ab", "c") and ("a", "bc") must not collide.
	x, _ := crypto.DeriveKey("ab", []byte("c"), 32)
	y, _ := crypto.DeriveKey("a", []byte("bc"), 32)
	if bytes.Equal(x, y) {
		t.Error("length prefixing failed to separate domain/input boundary")
	}
}

func TestNewDeterministicReader(t *testing.T) {
	a := make([]byte, 256)
	b := make([]byte, 256)
	io.ReadFull(crypto.NewDeterministicReader("kat", []byte{1, 2, 3}), a)
	io.ReadFull(crypto.NewDeterministicReader("kat", []byte{1, 2, 3}), b)
	if !bytes.Equal(a, b) {
		t.Error("deterministic reader is not deterministic")
	}

	io.ReadFull(crypto.NewDeterministicReader("kat", []byte{1, 2, 4}), b)
	if bytes.Equal(a, b) {
		t.Error("different seeds should give different streams")
	}
}

// --- POST Tests ---

func TestPOSTPasses(t *testing.T) {
	result := crypto.RunPOST()
	if !result.Passed {
		t.Fatalf("POST failed: %v", result.Errors)
	}
	if !result.XOFPassed || !result.KDFPassed {
		t.Errorf("POST sub-results: XOF=%v KDF=%v", result.XOFPassed, result.KDFPassed)
	}
	if !crypto.POSTPassed() {
		t.Error("POSTPassed should report true after a successful run")
	}
}
