// Package integration provides end-to-end tests for the mceliece-go KEM
// library.
//
// These tests exercise the complete flow: key generation, serialization
// across a wire boundary, encapsulation, decapsulation, and the hybrid
// composition, together with the observability wiring.
package integration

import (
	"bytes"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pzverkov/mceliece-go/pkg/hybrid"
	"github.com/pzverkov/mceliece-go/pkg/mceliece"
	"github.com/pzverkov/mceliece-go/pkg/metrics"
)

// TestFullKEMFlow verifies the complete lifecycle with every artifact
// passed through its serialized form, as it would be over a wire.
func TestFullKEMFlow(t *testing.T) {
	p := mceliece.MustParams("mceliece348864")

	pk, sk, err := mceliece.GenerateKeyPair(p, nil)
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}

	// Recipient publishes the key; sender parses it from bytes.
	senderPK, err := mceliece.ParsePublicKey(p, pk.Bytes())
	if err != nil {
		t.Fatalf("ParsePublicKey failed: %v", err)
	}

	ct, ssEnc, err := mceliece.Encapsulate(senderPK, nil)
	if err != nil {
		t.Fatalf("Encapsulate failed: %v", err)
	}
	if len(ct) != p.CiphertextSize() {
		t.Fatalf("ciphertext size: got %d, want %d", len(ct), p.CiphertextSize())
	}

	// Recipient restores its key from storage and decapsulates.
	storedSK, err := mceliece.ParsePrivateKey(p, sk.Bytes())
	if err != nil {
		t.Fatalf("ParsePrivateKey failed: %v", err)
	}
	ssDec, err := mceliece.Decapsulate(storedSK, append([]byte(nil), ct...))
	if err != nil {
		t.Fatalf("Decapsulate failed: %v", err)
	}

	if !bytes.Equal(ssEnc, ssDec) {
		t.Error("shared secrets do not match across the serialization boundary")
	}
}

// TestKeyIsolation verifies that a ciphertext for one key pair does not
// decapsulate to the same secret under another key pair.
func TestKeyIsolation(t *testing.T) {
	p := mceliece.MustParams("mceliece348864")

	pk1, sk1, err := mceliece.GenerateKeyPair(p, nil)
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}
	_, sk2, err := mceliece.GenerateKeyPair(p, nil)
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}

	ct, ss, err := mceliece.Encapsulate(pk1, nil)
	if err != nil {
		t.Fatalf("Encapsulate failed: %v", err)
	}

	own, err := mceliece.Decapsulate(sk1, ct)
	if err != nil {
		t.Fatalf("Decapsulate failed: %v", err)
	}
	if !bytes.Equal(ss, own) {
		t.Fatal("owner failed to recover the shared secret")
	}

	// The wrong key decapsulates without error but, with overwhelming
	// probability, lands on the implicit-rejection secret.
	other, err := mceliece.Decapsulate(sk2, ct)
	if err != nil {
		t.Fatalf("Decapsulate with wrong key failed: %v", err)
	}
	if bytes.Equal(ss, other) {
		t.Error("wrong private key recovered the shared secret")
	}
}

// TestSchemeAdapterFlow verifies the generic KEM interface end to end,
// including marshalling both keys through the adapter.
func TestSchemeAdapterFlow(t *testing.T) {
	s := mceliece.MustScheme("mceliece348864")

	pk, sk, err := s.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}

	pkBytes, err := pk.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}
	pk2, err := s.UnmarshalBinaryPublicKey(pkBytes)
	if err != nil {
		t.Fatalf("UnmarshalBinaryPublicKey failed: %v", err)
	}

	ct, ssEnc, err := s.Encapsulate(pk2)
	if err != nil {
		t.Fatalf("Encapsulate failed: %v", err)
	}

	skBytes, err := sk.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}
	sk2, err := s.UnmarshalBinaryPrivateKey(skBytes)
	if err != nil {
		t.Fatalf("UnmarshalBinaryPrivateKey failed: %v", err)
	}

	ssDec, err := s.Decapsulate(sk2, ct)
	if err != nil {
		t.Fatalf("Decapsulate failed: %v", err)
	}
	if !bytes.Equal(ssEnc, ssDec) {
		t.Error("scheme adapter shared secrets do not match")
	}
}

// TestHybridFlow verifies the X25519+McEliece composition end to end
// with both artifacts crossing a serialization boundary.
func TestHybridFlow(t *testing.T) {
	p := mceliece.MustParams("mceliece348864")

	kp, err := hybrid.GenerateKeyPair(p)
	if err != nil {
		t.Fatalf("hybrid.GenerateKeyPair failed: %v", err)
	}

	senderPK, err := hybrid.ParsePublicKey(p, kp.PublicKey().Bytes())
	if err != nil {
		t.Fatalf("hybrid.ParsePublicKey failed: %v", err)
	}
	ct, ssEnc, err := hybrid.Encapsulate(senderPK)
	if err != nil {
		t.Fatalf("hybrid.Encapsulate failed: %v", err)
	}

	wireCT, err := hybrid.ParseCiphertext(p, ct.Bytes())
	if err != nil {
		t.Fatalf("hybrid.ParseCiphertext failed: %v", err)
	}
	ssDec, err := hybrid.Decapsulate(wireCT, kp)
	if err != nil {
		t.Fatalf("hybrid.Decapsulate failed: %v", err)
	}
	if !bytes.Equal(ssEnc, ssDec) {
		t.Error("hybrid shared secrets do not match")
	}
}

// TestSelfTestAfterRestore runs the pairwise consistency check on a key
// pair restored from its serialized form.
func TestSelfTestAfterRestore(t *testing.T) {
	p := mceliece.MustParams("mceliece348864")

	pk, sk, err := mceliece.GenerateKeyPair(p, nil)
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}

	restored, err := mceliece.ParsePrivateKey(p, sk.Bytes())
	if err != nil {
		t.Fatalf("ParsePrivateKey failed: %v", err)
	}
	if err := mceliece.PairwiseConsistencyTest(pk, restored); err != nil {
		t.Fatalf("PairwiseConsistencyTest failed: %v", err)
	}

	rebuilt, err := restored.ReconstructPublicKey()
	if err != nil {
		t.Fatalf("ReconstructPublicKey failed: %v", err)
	}
	if !pk.Equal(rebuilt) {
		t.Error("reconstructed public key differs from the original")
	}
}

// TestMetricsWiring runs KEM cycles with a collector recording each
// operation the way a service embedding the library would.
func TestMetricsWiring(t *testing.T) {
	c := metrics.NewCollector(metrics.Labels{"service": "integration"})
	p := mceliece.MustParams("mceliece348864")

	start := time.Now()
	pk, sk, err := mceliece.GenerateKeyPair(p, nil)
	if err != nil {
		c.KeyGenFailed()
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}
	c.KeyGenCompleted(1, time.Since(start))

	const cycles = 4
	for i := 0; i < cycles; i++ {
		start = time.Now()
		ct, ssEnc, err := mceliece.Encapsulate(pk, nil)
		if err != nil {
			c.EncapsFailed()
			t.Fatalf("Encapsulate failed: %v", err)
		}
		c.EncapsCompleted(time.Since(start))

		start = time.Now()
		ssDec, err := mceliece.Decapsulate(sk, ct)
		if err != nil {
			c.DecapsRejected()
			t.Fatalf("Decapsulate failed: %v", err)
		}
		c.DecapsCompleted(time.Since(start))

		if !bytes.Equal(ssEnc, ssDec) {
			t.Fatalf("cycle %d: shared secret mismatch", i)
		}
	}

	snap := c.Snapshot()
	if snap.KeyGenTotal != 1 {
		t.Errorf("KeyGenTotal = %d, want 1", snap.KeyGenTotal)
	}
	if snap.EncapsTotal != cycles {
		t.Errorf("EncapsTotal = %d, want %d", snap.EncapsTotal, cycles)
	}
	if snap.DecapsTotal != cycles {
		t.Errorf("DecapsTotal = %d, want %d", snap.DecapsTotal, cycles)
	}
	if snap.DecapsRejected != 0 {
		t.Errorf("DecapsRejected = %d, want 0", snap.DecapsRejected)
	}
}

// TestConcurrentKEMUsage verifies a single key pair is safe for
// concurrent encapsulation and decapsulation.
func TestConcurrentKEMUsage(t *testing.T) {
	p := mceliece.MustParams("mceliece348864")

	pk, sk, err := mceliece.GenerateKeyPair(p, nil)
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 4; i++ {
				ct, ssEnc, err := mceliece.Encapsulate(pk, nil)
				if err != nil {
					errs <- err
					return
				}
				ssDec, err := mceliece.Decapsulate(sk, ct)
				if err != nil {
					errs <- err
					return
				}
				if !bytes.Equal(ssEnc, ssDec) {
					errs <- fmt.Errorf("shared secret mismatch")
					return
				}
			}
		}()
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent cycle failed: %v", err)
	}
}

// TestAllParameterSetsFlow runs the serialized end-to-end flow for every
// registered parameter set. Skipped in short mode: the large sets take
// seconds per key generation.
func TestAllParameterSetsFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping all-parameter-set flow in short mode")
	}

	for _, p := range mceliece.AllParams() {
		t.Run(p.Name, func(t *testing.T) {
			pk, sk, err := mceliece.GenerateKeyPair(p, nil)
			if err != nil {
				t.Fatalf("GenerateKeyPair failed: %v", err)
			}

			parsedPK, err := mceliece.ParsePublicKey(p, pk.Bytes())
			if err != nil {
				t.Fatalf("ParsePublicKey failed: %v", err)
			}
			ct, ssEnc, err := mceliece.Encapsulate(parsedPK, nil)
			if err != nil {
				t.Fatalf("Encapsulate failed: %v", err)
			}

			parsedSK, err := mceliece.ParsePrivateKey(p, sk.Bytes())
			if err != nil {
				t.Fatalf("ParsePrivateKey failed: %v", err)
			}
			ssDec, err := mceliece.Decapsulate(parsedSK, ct)
			if err != nil {
				t.Fatalf("Decapsulate failed: %v", err)
			}
			if !bytes.Equal(ssEnc, ssDec) {
				t.Error("shared secret mismatch")
			}
		})
	}
}
