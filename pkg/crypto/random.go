// random.go wraps the system CSPRNG and provides the constant-time byte
// helpers the decapsulator relies on.
//
// Security Note: all fresh randomness comes from crypto/rand. Deterministic
// streams (conformance vectors, reproducibility tests) come from
// internal/drbg or NewDeterministicReader instead and are never mixed with
// system entropy.
package crypto

import (
	"crypto/rand"
	"io"

	qerrors "github.com/pzverkov/mceliece-go/internal/errors"
)

// SecureRandom reads cryptographically secure random bytes into the provided
// slice. It uses crypto/rand which sources entropy from the OS CSPRNG.
//
// This function will only return an error if the system's random number
// generator fails, which should be treated as a critical system failure.
func SecureRandom(b []byte) error {
	_, err := io.ReadFull(rand.Reader, b)
	if err != nil {
		return qerrors.NewCryptoError("SecureRandom", err)
	}
	return nil
}

// SecureRandomBytes returns n cryptographically secure random bytes.
func SecureRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if err := SecureRandom(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Reader is an io.Reader that returns cryptographically secure random bytes.
// It is the default random source for key generation and encapsulation.
var Reader = rand.Reader

// ConstantTimeCompare compares two byte slices in constant time.
// Returns true if the slices are equal, false otherwise.
func ConstantTimeCompare(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var result byte
	for i := range a {
		result |= a[i] ^ b[i]
	}
	return result == 0
}

// ConstantTimeSelect writes a[i] to out[i] where mask is 0xFF and b[i] where
// mask is 0x00, without branching on the mask. All slices must have the same
// length. Any other mask value is a caller bug.
func ConstantTimeSelect(mask byte, a, b, out []byte) {
	for i := range out {
		out[i] = (a[i] & mask) | (b[i] &^ mask)
	}
}

// Zeroize securely erases sensitive data from memory by overwriting with
// zeros. Call it on error vectors and intermediate secrets when they are no
// longer needed.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ZeroizeMultiple securely erases multiple byte slices.
func ZeroizeMultiple(slices ...[]byte) {
	for _, s := range slices {
		Zeroize(s)
	}
}
