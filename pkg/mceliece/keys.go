// keys.go defines the public/private key types and their fixed-layout byte
// encodings.
//
// Both key types are immutable after construction and safe for concurrent
// use by any number of encapsulation and decapsulation calls.
package mceliece

import (
	"encoding/binary"

	"github.com/pzverkov/mceliece-go/internal/constants"
	qerrors "github.com/pzverkov/mceliece-go/internal/errors"
	"github.com/pzverkov/mceliece-go/pkg/crypto"
	"github.com/pzverkov/mceliece-go/pkg/gf"
)

// PublicKey is the systematic part T of the parity-check matrix [I | T],
// stored row-major: (n-k) rows of ceil(k/8) bytes each.
type PublicKey struct {
	params Params
	rows   []byte
}

// Params returns the parameter set this key belongs to.
func (pk *PublicKey) Params() Params { return pk.params }

// Bytes returns a copy of the raw systematic-form encoding.
func (pk *PublicKey) Bytes() []byte {
	out := make([]byte, len(pk.rows))
	copy(out, pk.rows)
	return out
}

// Equal reports whether two public keys have the same parameters and bytes.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	if pk == nil || other == nil {
		return pk == other
	}
	return pk.params.Name == other.params.Name &&
		crypto.ConstantTimeCompare(pk.rows, other.rows)
}

// ParsePublicKey parses a public key from its raw encoding. The buffer
// length is validated before any use; the bytes are copied.
func ParsePublicKey(p Params, data []byte) (*PublicKey, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(data) != p.PublicKeySize() {
		return nil, qerrors.ErrInvalidPublicKey
	}
	rows := make([]byte, len(data))
	copy(rows, data)
	return &PublicKey{params: p, rows: rows}, nil
}

// PrivateKey holds the secret code description: the generation seed, the
// implicit-rejection mask, the pivot word from matrix reduction, the Goppa
// polynomial and the support ordering.
type PrivateKey struct {
	params  Params
	seed    []byte    // 32-byte generation seed delta
	mask    []byte    // n/8-byte rejection mask s
	pivots  uint64    // column-pivot record; 0xFFFFFFFF when pivoting is off
	goppa   []gf.Elem // t coefficients of g below the monic leading term
	support []gf.Elem // n distinct field elements
}

// Params returns the parameter set this key belongs to.
func (sk *PrivateKey) Params() Params { return sk.params }

// Seed returns a copy of the 32-byte seed the key pair was derived from.
func (sk *PrivateKey) Seed() []byte {
	out := make([]byte, len(sk.seed))
	copy(out, sk.seed)
	return out
}

// Bytes returns the fixed-layout private key encoding:
//
//	seed (32) || mask (n/8) || pivots (8, LE) || g_0..g_{t-1} (2t, LE) ||
//	alpha_0..alpha_{n-1} (2n, LE)
func (sk *PrivateKey) Bytes() []byte {
	p := sk.params
	out := make([]byte, 0, p.PrivateKeySize())
	out = append(out, sk.seed...)
	out = append(out, sk.mask...)
	out = binary.LittleEndian.AppendUint64(out, sk.pivots)
	for _, c := range sk.goppa {
		out = binary.LittleEndian.AppendUint16(out, uint16(c))
	}
	for _, a := range sk.support {
		out = binary.LittleEndian.AppendUint16(out, uint16(a))
	}
	return out
}

// ParsePrivateKey parses a private key from its fixed-layout encoding.
// Buffer length, coefficient range and support distinctness are validated
// before the key is accepted; the bytes are copied.
func ParsePrivateKey(p Params, data []byte) (*PrivateKey, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(data) != p.PrivateKeySize() {
		return nil, qerrors.ErrInvalidPrivateKey
	}

	f := p.field()
	sk := &PrivateKey{params: p}

	off := 0
	sk.seed = append([]byte(nil), data[off:off+constants.SeedSize]...)
	off += constants.SeedSize
	sk.mask = append([]byte(nil), data[off:off+p.N/8]...)
	off += p.N / 8
	sk.pivots = binary.LittleEndian.Uint64(data[off:])
	off += 8

	sk.goppa = make([]gf.Elem, p.T)
	for i := range sk.goppa {
		c := gf.Elem(binary.LittleEndian.Uint16(data[off:]))
		if c > f.Mask() {
			return nil, qerrors.ErrInvalidPrivateKey
		}
		sk.goppa[i] = c
		off += 2
	}

	sk.support = make([]gf.Elem, p.N)
	seen := make([]bool, 1<<p.M)
	for i := range sk.support {
		a := gf.Elem(binary.LittleEndian.Uint16(data[off:]))
		if a > f.Mask() || seen[a] {
			return nil, qerrors.ErrInvalidPrivateKey
		}
		seen[a] = true
		sk.support[i] = a
		off += 2
	}

	return sk, nil
}

// ReconstructPublicKey rebuilds the public key from the stored support and
// Goppa polynomial. The reduction cannot be singular for a key pair this
// package produced, since the support is stored post-pivoting.
func (sk *PrivateKey) ReconstructPublicKey() (*PublicKey, error) {
	f := sk.params.field()
	support := append([]gf.Elem(nil), sk.support...)
	mat := buildParityCheck(sk.params, f, sk.goppa, support)
	if _, outcome := reduceToSystematic(sk.params, mat, support, false); outcome != reduced {
		return nil, qerrors.NewCryptoError("ReconstructPublicKey", qerrors.ErrInvalidPrivateKey)
	}
	return &PublicKey{params: sk.params, rows: extractPublicKey(sk.params, mat)}, nil
}
