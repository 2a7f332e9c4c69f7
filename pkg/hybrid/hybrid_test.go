package hybrid_test

import (
	"bytes"
	"sync"
	"testing"

	qerrors "github.com/pzverkov/mceliece-go/internal/errors"
	"github.com/pzverkov/mceliece-go/pkg/hybrid"
	"github.com/pzverkov/mceliece-go/pkg/mceliece"
)

var (
	testKPOnce sync.Once
	testKP     *hybrid.KeyPair
)

// testKeyPair returns a shared key pair for the smallest parameter set.
// Hybrid key generation includes a full McEliece key generation, so the
// tests reuse one pair instead of regenerating per test.
func testKeyPair(t *testing.T) *hybrid.KeyPair {
	t.Helper()
	testKPOnce.Do(func() {
		kp, err := hybrid.GenerateKeyPair(mceliece.MustParams("mceliece348864"))
		if err != nil {
			t.Fatalf("GenerateKeyPair failed: %v", err)
		}
		testKP = kp
	})
	if testKP == nil {
		t.Fatal("key pair generation failed in an earlier test")
	}
	return testKP
}

func TestKeyPairGeneration(t *testing.T) {
	kp := testKeyPair(t)
	p := kp.Params()

	pk := kp.PublicKey()
	if pk == nil {
		t.Fatal("PublicKey returned nil")
	}

	pkBytes := pk.Bytes()
	if len(pkBytes) != hybrid.PublicKeySize(p) {
		t.Errorf("public key size: got %d, want %d", len(pkBytes), hybrid.PublicKeySize(p))
	}
	if hybrid.PublicKeySize(p) != 32+p.PublicKeySize() {
		t.Errorf("PublicKeySize = %d, want 32+%d", hybrid.PublicKeySize(p), p.PublicKeySize())
	}
}

func TestEncapsulationDecapsulation(t *testing.T) {
	kp := testKeyPair(t)
	p := kp.Params()

	ct, ssEnc, err := hybrid.Encapsulate(kp.PublicKey())
	if err != nil {
		t.Fatalf("Encapsulate failed: %v", err)
	}
	if len(ssEnc) != p.SharedSecretSize() {
		t.Errorf("shared secret size: got %d, want %d", len(ssEnc), p.SharedSecretSize())
	}
	if got := len(ct.Bytes()); got != hybrid.CiphertextSize(p) {
		t.Errorf("ciphertext size: got %d, want %d", got, hybrid.CiphertextSize(p))
	}

	ssDec, err := hybrid.Decapsulate(ct, kp)
	if err != nil {
		t.Fatalf("Decapsulate failed: %v", err)
	}
	if !bytes.Equal(ssEnc, ssDec) {
		t.Error("hybrid shared secrets do not match")
	}
}

func TestMultipleEncapsulations(t *testing.T) {
	kp := testKeyPair(t)

	ct1, ss1, err := hybrid.Encapsulate(kp.PublicKey())
	if err != nil {
		t.Fatalf("first Encapsulate failed: %v", err)
	}
	ct2, ss2, err := hybrid.Encapsulate(kp.PublicKey())
	if err != nil {
		t.Fatalf("second Encapsulate failed: %v", err)
	}

	if bytes.Equal(ct1.Bytes(), ct2.Bytes()) {
		t.Error("two encapsulations produced identical ciphertexts")
	}
	if bytes.Equal(ss1, ss2) {
		t.Error("two encapsulations produced identical shared secrets")
	}

	for i, tc := range []struct {
		ct *hybrid.Ciphertext
		ss []byte
	}{{ct1, ss1}, {ct2, ss2}} {
		got, err := hybrid.Decapsulate(tc.ct, kp)
		if err != nil {
			t.Fatalf("Decapsulate %d failed: %v", i, err)
		}
		if !bytes.Equal(got, tc.ss) {
			t.Errorf("Decapsulate %d: shared secret mismatch", i)
		}
	}
}

func TestTamperedCiphertext(t *testing.T) {
	kp := testKeyPair(t)
	p := kp.Params()

	ct, ssEnc, err := hybrid.Encapsulate(kp.PublicKey())
	if err != nil {
		t.Fatalf("Encapsulate failed: %v", err)
	}

	// Flip a bit in the McEliece component. Implicit rejection lets the
	// decapsulation succeed with an unrelated secret.
	raw := ct.Bytes()
	raw[len(raw)-1] ^= 0x01
	tampered, err := hybrid.ParseCiphertext(p, raw)
	if err != nil {
		t.Fatalf("ParseCiphertext failed: %v", err)
	}

	ssDec, err := hybrid.Decapsulate(tampered, kp)
	if err != nil {
		t.Fatalf("Decapsulate of tampered ciphertext failed: %v", err)
	}
	if bytes.Equal(ssEnc, ssDec) {
		t.Error("tampered ciphertext yielded the original shared secret")
	}

	// Flip a bit in the X25519 ephemeral component instead.
	raw = ct.Bytes()
	raw[0] ^= 0x01
	tampered, err = hybrid.ParseCiphertext(p, raw)
	if err != nil {
		t.Fatalf("ParseCiphertext failed: %v", err)
	}
	ssDec, err = hybrid.Decapsulate(tampered, kp)
	if err == nil && bytes.Equal(ssEnc, ssDec) {
		t.Error("tampered ephemeral key yielded the original shared secret")
	}
}

func TestPublicKeyRoundTrip(t *testing.T) {
	kp := testKeyPair(t)
	p := kp.Params()

	pk := kp.PublicKey()
	parsed, err := hybrid.ParsePublicKey(p, pk.Bytes())
	if err != nil {
		t.Fatalf("ParsePublicKey failed: %v", err)
	}
	if !bytes.Equal(pk.Bytes(), parsed.Bytes()) {
		t.Error("public key round trip mismatch")
	}

	// Encapsulating to the parsed key must decapsulate with the original pair.
	ct, ssEnc, err := hybrid.Encapsulate(parsed)
	if err != nil {
		t.Fatalf("Encapsulate to parsed key failed: %v", err)
	}
	ssDec, err := hybrid.Decapsulate(ct, kp)
	if err != nil {
		t.Fatalf("Decapsulate failed: %v", err)
	}
	if !bytes.Equal(ssEnc, ssDec) {
		t.Error("shared secret mismatch after public key round trip")
	}
}

func TestCiphertextRoundTrip(t *testing.T) {
	kp := testKeyPair(t)
	p := kp.Params()

	ct, ssEnc, err := hybrid.Encapsulate(kp.PublicKey())
	if err != nil {
		t.Fatalf("Encapsulate failed: %v", err)
	}

	parsed, err := hybrid.ParseCiphertext(p, ct.Bytes())
	if err != nil {
		t.Fatalf("ParseCiphertext failed: %v", err)
	}
	ssDec, err := hybrid.Decapsulate(parsed, kp)
	if err != nil {
		t.Fatalf("Decapsulate failed: %v", err)
	}
	if !bytes.Equal(ssEnc, ssDec) {
		t.Error("shared secret mismatch after ciphertext round trip")
	}
}

func TestParseErrors(t *testing.T) {
	p := mceliece.MustParams("mceliece348864")

	if _, err := hybrid.ParsePublicKey(p, make([]byte, 31)); !qerrors.Is(err, qerrors.ErrInvalidPublicKey) {
		t.Errorf("short public key: got %v, want ErrInvalidPublicKey", err)
	}
	if _, err := hybrid.ParsePublicKey(p, make([]byte, hybrid.PublicKeySize(p)+1)); !qerrors.Is(err, qerrors.ErrInvalidPublicKey) {
		t.Errorf("long public key: got %v, want ErrInvalidPublicKey", err)
	}
	if _, err := hybrid.ParseCiphertext(p, nil); !qerrors.Is(err, qerrors.ErrInvalidCiphertext) {
		t.Errorf("nil ciphertext: got %v, want ErrInvalidCiphertext", err)
	}
	if _, err := hybrid.ParseCiphertext(p, make([]byte, hybrid.CiphertextSize(p)-1)); !qerrors.Is(err, qerrors.ErrInvalidCiphertext) {
		t.Errorf("short ciphertext: got %v, want ErrInvalidCiphertext", err)
	}
}

func TestNilArguments(t *testing.T) {
	kp := testKeyPair(t)

	if _, _, err := hybrid.Encapsulate(nil); !qerrors.Is(err, qerrors.ErrInvalidPublicKey) {
		t.Errorf("Encapsulate(nil): got %v, want ErrInvalidPublicKey", err)
	}

	ct, _, err := hybrid.Encapsulate(kp.PublicKey())
	if err != nil {
		t.Fatalf("Encapsulate failed: %v", err)
	}
	if _, err := hybrid.Decapsulate(nil, kp); !qerrors.Is(err, qerrors.ErrInvalidCiphertext) {
		t.Errorf("Decapsulate(nil ct): got %v, want ErrInvalidCiphertext", err)
	}
	if _, err := hybrid.Decapsulate(ct, nil); !qerrors.Is(err, qerrors.ErrInvalidPrivateKey) {
		t.Errorf("Decapsulate(nil kp): got %v, want ErrInvalidPrivateKey", err)
	}
}

func TestZeroize(t *testing.T) {
	kp, err := hybrid.GenerateKeyPair(mceliece.MustParams("mceliece348864"))
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}
	ct, _, err := hybrid.Encapsulate(kp.PublicKey())
	if err != nil {
		t.Fatalf("Encapsulate failed: %v", err)
	}

	kp.Zeroize()
	if _, err := hybrid.Decapsulate(ct, kp); !qerrors.Is(err, qerrors.ErrInvalidPrivateKey) {
		t.Errorf("Decapsulate after Zeroize: got %v, want ErrInvalidPrivateKey", err)
	}
}

func TestClone(t *testing.T) {
	kp := testKeyPair(t)
	pk := kp.PublicKey()

	clone := pk.Clone()
	if !bytes.Equal(pk.Bytes(), clone.Bytes()) {
		t.Error("cloned public key differs from original")
	}
	if clone.X25519PublicKey() == nil || clone.McEliecePublicKey() == nil {
		t.Error("cloned public key is missing a component")
	}
}
