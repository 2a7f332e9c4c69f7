// Package crypto provides the symmetric primitives used by the mceliece-go
// KEM: SHAKE-256 hashing and extendable-output streams, key derivation with
// domain separation, and randomness helpers.
//
// This file (kdf.go) uses SHAKE-256 (FIPS 202), an extendable-output
// function (XOF) based on the Keccak sponge construction. It provides
// 256-bit preimage and collision resistance and supports arbitrary-length
// output, which is what key generation needs: a single seed is expanded
// into the private mask, the support ordering draws, the Goppa polynomial
// coefficients and the next retry seed, all from one domain-separated
// stream consumed strictly in order.
//
// Usage in the KEM:
//
//	stream  = SHAKE-256(0x40 || delta)            key-generation expansion
//	K       = SHAKE-256(0x01 || e  || C, 256)     session key
//	K_rej   = SHAKE-256(0x00 || s  || C, 256)     implicit-rejection key
package crypto

import (
	"encoding/binary"
	"io"

	"golang.org/x/crypto/sha3"

	qerrors "github.com/pzverkov/mceliece-go/internal/errors"
)

// SHAKE256 hashes the concatenation of the inputs and returns outLen bytes
// of SHAKE-256 output.
//
// Callers are responsible for unambiguous framing: the KEM only hashes
// fixed-length fields (a one-byte tag, an n-bit vector, a ciphertext), so
// plain concatenation is injective.
func SHAKE256(outLen int, inputs ...[]byte) []byte {
	h := sha3.NewShake256()
	for _, in := range inputs {
		h.Write(in)
	}
	out := make([]byte, outLen)
	_, _ = h.Read(out) // SHAKE256.Read never fails
	return out
}

// NewStream returns an extendable pseudorandom byte stream derived from a
// one-byte domain prefix and a seed. Reads never fail and may continue for
// as long as the caller needs; the stream is deterministic in (prefix, seed).
func NewStream(prefix byte, seed []byte) io.Reader {
	h := sha3.NewShake256()
	h.Write([]byte{prefix})
	h.Write(seed)
	return h
}

// DeriveKey derives a key using SHAKE-256 with domain separation.
//
// The derivation is length-prefixed to ensure unambiguous parsing:
//
//	output = SHAKE-256(len(domain) || domain || len(input) || input, outputLen)
//
// with 4-byte big-endian length prefixes. This is the general-purpose KDF
// for callers outside the KEM core (self-tests, deterministic test streams);
// the KEM session-key hashes use the fixed-format SHAKE256 above.
func DeriveKey(domain string, input []byte, outputLen int) ([]byte, error) {
	if outputLen <= 0 || outputLen > 1<<20 { // Max 1MB
		return nil, qerrors.NewCryptoError("DeriveKey", qerrors.ErrInvalidKeySize)
	}

	h := sha3.NewShake256()

	domainBytes := []byte(domain)
	lenBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(lenBuf, uint32(len(domainBytes)))
	h.Write(lenBuf)
	h.Write(domainBytes)

	binary.BigEndian.PutUint32(lenBuf, uint32(len(input)))
	h.Write(lenBuf)
	h.Write(input)

	output := make([]byte, outputLen)
	_, _ = h.Read(output)

	return output, nil
}

// NewDeterministicReader returns an inexhaustible reader whose bytes are a
// pure function of (domain, seed). Tests and the demo CLI use it as a
// reproducible stand-in for a random source; it is NOT a CSPRNG.
func NewDeterministicReader(domain string, seed []byte) io.Reader {
	h := sha3.NewShake256()
	lenBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(lenBuf, uint32(len(domain)))
	h.Write(lenBuf)
	h.Write([]byte(domain))
	h.Write(seed)
	return h
}
