// Package errors defines custom error types for the mceliece-go KEM library.
// These errors provide detailed information for debugging while maintaining
// security by not leaking sensitive information in error messages.
//
// Note that a decoding failure during decapsulation is deliberately NOT an
// error anywhere in this package: invalid ciphertexts yield the
// implicit-rejection shared secret instead of a failure signal.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for parameter handling
var (
	// ErrUnknownParameterSet indicates a parameter-set name with no table entry
	ErrUnknownParameterSet = errors.New("mceliece: unknown parameter set")

	// ErrInvalidParameters indicates a parameter tuple violating n <= 2^m or
	// k = n - m*t <= 0
	ErrInvalidParameters = errors.New("mceliece: invalid parameters")
)

// Sentinel errors for key and ciphertext material
var (
	// ErrInvalidPublicKey indicates a public key buffer of the wrong length
	ErrInvalidPublicKey = errors.New("mceliece: invalid public key")

	// ErrInvalidPrivateKey indicates a private key buffer of the wrong length
	ErrInvalidPrivateKey = errors.New("mceliece: invalid private key")

	// ErrInvalidCiphertext indicates a ciphertext buffer of the wrong length
	ErrInvalidCiphertext = errors.New("mceliece: invalid ciphertext")

	// ErrInvalidKeySize indicates a KDF or seed buffer of the wrong length
	ErrInvalidKeySize = errors.New("mceliece: invalid key size")
)

// Sentinel errors for generation loops
var (
	// ErrKeyGenerationFailed indicates the bounded key-generation retry loop
	// was exhausted; this is fatal and points at a parameter or entropy defect
	ErrKeyGenerationFailed = errors.New("mceliece: key generation failed")

	// ErrEncapsulationFailed indicates the fixed-weight sampler exhausted its
	// retry budget during encapsulation
	ErrEncapsulationFailed = errors.New("mceliece: encapsulation failed")

	// ErrRandomSourceFailure indicates the supplied random source returned an
	// error or short read
	ErrRandomSourceFailure = errors.New("mceliece: random source failure")
)

// Sentinel errors for the deterministic KAT generator
var (
	// ErrInvalidSeedLength indicates a DRBG seed of the wrong length
	ErrInvalidSeedLength = errors.New("drbg: invalid seed length")
)

// CryptoError wraps a cryptographic error with the operation that failed.
type CryptoError struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *CryptoError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CryptoError) Unwrap() error {
	return e.Err
}

// NewCryptoError creates a new CryptoError.
func NewCryptoError(op string, err error) *CryptoError {
	return &CryptoError{Op: op, Err: err}
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
