// Package drbg implements the AES-256-CTR deterministic random byte generator
// used by the NIST PQC known-answer-test harnesses.
//
// Conformance vectors pin down every byte a KEM consumes from its random
// source. The reference harness seeds this generator with the 48-byte `seed`
// field of a vector record; any implementation that consumes the resulting
// stream strictly in order reproduces the vector's keys and ciphertexts
// bit for bit.
//
// The construction is CTR_DRBG from NIST SP 800-90A with AES-256 as the block
// cipher, no derivation function and no reseeding:
//
//  1. K = 0^32, V = 0^16; Update(seed)
//  2. Generate: per 16-byte block, V = V+1, out = AES-256_K(V); then Update(nil)
//  3. Update(data): three blocks of AES-256_K(V+i) XOR data become (K', V')
//
// This generator is NOT a general-purpose CSPRNG: it exists solely to make
// key generation and encapsulation reproducible from a recorded seed.
package drbg

import (
	"crypto/aes"
	"io"

	qerrors "github.com/pzverkov/mceliece-go/internal/errors"
)

// SeedSize is the entropy input length in bytes.
const SeedSize = 48

// Generator is a deterministic AES-256-CTR byte stream. It implements
// io.Reader and never returns an error after construction.
//
// A Generator is stateful and must be exclusively owned by one key-generation
// or encapsulation call at a time.
type Generator struct {
	key [32]byte
	v   [16]byte
}

var _ io.Reader = (*Generator)(nil)

// New creates a Generator from a 48-byte seed.
func New(seed []byte) (*Generator, error) {
	if len(seed) != SeedSize {
		return nil, qerrors.ErrInvalidSeedLength
	}
	g := &Generator{}
	g.update(seed)
	return g, nil
}

// Read fills p with the next bytes of the deterministic stream.
// It always returns len(p), nil.
func (g *Generator) Read(p []byte) (int, error) {
	block, err := aes.NewCipher(g.key[:])
	if err != nil {
		// 32-byte keys are always valid for AES-256.
		panic("drbg: " + err.Error())
	}

	var out [16]byte
	n := len(p)
	for len(p) > 0 {
		g.incrementV()
		block.Encrypt(out[:], g.v[:])
		m := copy(p, out[:])
		p = p[m:]
	}

	g.update(nil)
	return n, nil
}

// update performs the CTR_DRBG state update, mixing in optional provided data.
func (g *Generator) update(provided []byte) {
	block, err := aes.NewCipher(g.key[:])
	if err != nil {
		panic("drbg: " + err.Error())
	}

	var temp [SeedSize]byte
	for i := 0; i < 3; i++ {
		g.incrementV()
		block.Encrypt(temp[16*i:16*i+16], g.v[:])
	}
	for i := range provided {
		temp[i] ^= provided[i]
	}

	copy(g.key[:], temp[:32])
	copy(g.v[:], temp[32:])
}

// incrementV treats V as a 128-bit big-endian counter.
func (g *Generator) incrementV() {
	for i := 15; i >= 0; i-- {
		g.v[i]++
		if g.v[i] != 0 {
			break
		}
	}
}
