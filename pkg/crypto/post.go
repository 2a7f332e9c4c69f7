// post.go implements Power-On Self-Tests (POST) for the symmetric layer.
//
// POST is production code, not test code: it runs once when the package is
// first used and verifies that the hash primitives underneath every KEM
// operation produce expected outputs. This catches corrupted binaries and
// miscompiled or tampered code before any key material is produced.
//
// The tests verify:
//   - SHAKE-256 against the FIPS 202 empty-message known answer
//   - determinism and output-length behavior of the domain-separated KDF
//
// POST failures panic: a broken XOF would silently produce malformed keys
// and colliding session secrets, and no caller can recover from that.
package crypto

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/pzverkov/mceliece-go/internal/constants"
)

// shake256EmptyKAT is the first 32 bytes of SHAKE-256 over the empty
// message, from the FIPS 202 reference vectors.
var shake256EmptyKAT, _ = hex.DecodeString(
	"46b9dd2b0ba88d13233b3feb743eeb243fcd52ea62b81b82b50c27646ed5762f")

// POSTResult contains the results of the Power-On Self-Tests.
type POSTResult struct {
	Passed    bool
	XOFPassed bool
	KDFPassed bool
	Errors    []string
}

var (
	postResult *POSTResult
	postOnce   sync.Once
)

// RunPOST executes the Power-On Self-Tests and returns the results.
// It is safe to call multiple times; the tests run once.
func RunPOST() *POSTResult {
	postOnce.Do(func() {
		postResult = &POSTResult{Passed: true}

		if err := runXOFKAT(); err != nil {
			postResult.XOFPassed = false
			postResult.Passed = false
			postResult.Errors = append(postResult.Errors, fmt.Sprintf("XOF KAT failed: %v", err))
		} else {
			postResult.XOFPassed = true
		}

		if err := runKDFCheck(); err != nil {
			postResult.KDFPassed = false
			postResult.Passed = false
			postResult.Errors = append(postResult.Errors, fmt.Sprintf("KDF check failed: %v", err))
		} else {
			postResult.KDFPassed = true
		}

		if !postResult.Passed {
			panic(fmt.Sprintf("crypto POST failed: %v", postResult.Errors))
		}
	})

	return postResult
}

// POSTPassed returns true if POST has run and all tests passed.
func POSTPassed() bool {
	return postResult != nil && postResult.Passed
}

// runXOFKAT verifies SHAKE-256 against the published empty-message vector.
func runXOFKAT() error {
	out := SHAKE256(32)
	if !bytes.Equal(out, shake256EmptyKAT) {
		return fmt.Errorf("SHAKE-256 output mismatch: got %x, want %x", out, shake256EmptyKAT)
	}
	return nil
}

// runKDFCheck verifies that the domain-separated KDF is deterministic,
// honors the requested output length, and separates domains.
func runKDFCheck() error {
	input := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}

	a, err := DeriveKey(constants.DomainSeparatorSelfTest, input, 64)
	if err != nil {
		return fmt.Errorf("DeriveKey failed: %w", err)
	}
	if len(a) != 64 {
		return fmt.Errorf("output length mismatch: got %d, want 64", len(a))
	}

	b, err := DeriveKey(constants.DomainSeparatorSelfTest, input, 64)
	if err != nil {
		return fmt.Errorf("DeriveKey failed: %w", err)
	}
	if !bytes.Equal(a, b) {
		return fmt.Errorf("KDF is not deterministic")
	}

	c, err := DeriveKey(constants.DomainSeparatorKAT, input, 64)
	if err != nil {
		return fmt.Errorf("DeriveKey failed: %w", err)
	}
	if bytes.Equal(a, c) {
		return fmt.Errorf("domain separation failure")
	}

	return nil
}

// init runs POST automatically when the package is loaded.
func init() {
	RunPOST()
}
