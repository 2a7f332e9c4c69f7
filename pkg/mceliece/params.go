// Package mceliece implements the Classic McEliece key-encapsulation
// mechanism: a code-based post-quantum KEM whose security rests on the
// hardness of decoding a random binary Goppa code.
//
// Mathematical Foundation:
//
// A binary Goppa code is defined by a support of n distinct elements
// alpha_0..alpha_{n-1} of GF(2^m) and an irreducible generator polynomial g
// of degree t over GF(2^m). Its parity-check matrix over GF(2^m) is
//
//	H[i][j] = alpha_j^i / g(alpha_j)    for i < t, j < n
//
// expanded bitwise to an (m*t) x n binary matrix and reduced to systematic
// form [I | T]. The public key is T; the private key is (support, g). An
// encapsulator picks a secret weight-t error vector e and publishes the
// syndrome H*e as ciphertext; recovering e from the syndrome without the
// hidden code structure is the NP-hard general decoding problem, while the
// key holder decodes with Berlekamp-Massey in O(n*t) field operations.
//
// Security Level: parameter sets range from NIST Category 1
// (mceliece348864) to Category 5 (mceliece6688128, mceliece6960119,
// mceliece8192128). The "f" variants trade a slightly more involved
// column-pivoting reduction for a much lower key-generation restart rate.
package mceliece

import (
	"fmt"
	"sort"

	"github.com/pzverkov/mceliece-go/internal/constants"
	qerrors "github.com/pzverkov/mceliece-go/internal/errors"
	"github.com/pzverkov/mceliece-go/pkg/gf"
)

// Field reduction polynomials for the two supported degrees.
const (
	// fieldPoly12 is x^12 + x^3 + 1.
	fieldPoly12 = 0x1009
	// fieldPoly13 is x^13 + x^4 + x^3 + x + 1.
	fieldPoly13 = 0x201B
)

// ExtTerm is one term of the extension polynomial F(y): Coeff * y^Exp.
type ExtTerm struct {
	Exp   int
	Coeff gf.Elem
}

// Params describes one Classic McEliece parameter set. Values are fixed at
// construction; all methods are safe for concurrent use.
type Params struct {
	// Name identifies the set, e.g. "mceliece348864f".
	Name string

	// M is the field degree: field elements live in [0, 2^M).
	M int

	// N is the code length and the error-vector length in bits.
	N int

	// T is the guaranteed error-correction capability and the exact
	// Hamming weight of sampled error vectors.
	T int

	// FieldPoly is the GF(2^M) reduction polynomial, including the x^M term.
	FieldPoly uint32

	// ExtPoly lists the non-leading terms of the monic degree-T polynomial
	// F(y) over GF(2^M) that defines the extension GF((2^M)^T) in which
	// Goppa polynomials are constructed as minimal polynomials.
	ExtPoly []ExtTerm

	// Pivots enables the column-pivoting (semi-systematic) matrix
	// reduction, which salvages most attempts that plain reduction would
	// restart.
	Pivots bool
}

// Extension polynomial tails per error weight. The y^0 coefficient for
// t = 64 is the field generator z (the element 2), matching the reference
// parameter definition; all other coefficients are 1.
var (
	extPoly64  = []ExtTerm{{3, 1}, {1, 1}, {0, 2}}          // y^64 + y^3 + y + z
	extPoly96  = []ExtTerm{{10, 1}, {9, 1}, {6, 1}, {0, 1}} // y^96 + y^10 + y^9 + y^6 + 1
	extPoly119 = []ExtTerm{{8, 1}, {0, 1}}                  // y^119 + y^8 + 1
	extPoly128 = []ExtTerm{{7, 1}, {2, 1}, {1, 1}, {0, 1}}  // y^128 + y^7 + y^2 + y + 1
)

var paramSets = map[string]Params{}

func init() {
	base := []Params{
		{Name: "mceliece348864", M: 12, N: 3488, T: 64, FieldPoly: fieldPoly12, ExtPoly: extPoly64},
		{Name: "mceliece460896", M: 13, N: 4608, T: 96, FieldPoly: fieldPoly13, ExtPoly: extPoly96},
		{Name: "mceliece6688128", M: 13, N: 6688, T: 128, FieldPoly: fieldPoly13, ExtPoly: extPoly128},
		{Name: "mceliece6960119", M: 13, N: 6960, T: 119, FieldPoly: fieldPoly13, ExtPoly: extPoly119},
		{Name: "mceliece8192128", M: 13, N: 8192, T: 128, FieldPoly: fieldPoly13, ExtPoly: extPoly128},
	}
	for _, p := range base {
		paramSets[p.Name] = p
		fast := p
		fast.Name = p.Name + "f"
		fast.Pivots = true
		paramSets[fast.Name] = fast
	}
}

// ParamsByName returns the named parameter set.
func ParamsByName(name string) (Params, error) {
	p, ok := paramSets[name]
	if !ok {
		return Params{}, qerrors.NewCryptoError("ParamsByName", qerrors.ErrUnknownParameterSet)
	}
	return p, nil
}

// MustParams returns the named parameter set or panics. Intended for tests
// and static initialization with known-good names.
func MustParams(name string) Params {
	p, err := ParamsByName(name)
	if err != nil {
		panic(fmt.Sprintf("mceliece: %s: unknown parameter set", name))
	}
	return p
}

// AllParams returns all registered parameter sets in name order.
func AllParams() []Params {
	names := make([]string, 0, len(paramSets))
	for name := range paramSets {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Params, len(names))
	for i, name := range names {
		out[i] = paramSets[name]
	}
	return out
}

// Validate checks the parameter invariants: 2 <= m, n <= 2^m, n divisible
// by 8, k = n - m*t > 0, t >= 2, and a well-formed field polynomial.
func (p Params) Validate() error {
	if p.M < 2 || p.M > 15 || p.T < 2 || p.N <= 0 {
		return qerrors.ErrInvalidParameters
	}
	if p.N > 1<<p.M || p.N%8 != 0 {
		return qerrors.ErrInvalidParameters
	}
	if p.K() <= 0 {
		return qerrors.ErrInvalidParameters
	}
	if _, err := gf.New(uint(p.M), p.FieldPoly); err != nil {
		return qerrors.ErrInvalidParameters
	}
	for _, term := range p.ExtPoly {
		if term.Exp < 0 || term.Exp >= p.T || term.Coeff == 0 {
			return qerrors.ErrInvalidParameters
		}
	}
	return nil
}

// field constructs the GF(2^m) arithmetic engine. Callers are expected to
// have validated the parameters.
func (p Params) field() gf.Field {
	f, err := gf.New(uint(p.M), p.FieldPoly)
	if err != nil {
		panic("mceliece: " + err.Error())
	}
	return f
}

// mask returns the m-bit field element mask.
func (p Params) mask() uint16 { return uint16(1<<p.M - 1) }

// Rows returns n - k = m*t, the number of parity-check rows.
func (p Params) Rows() int { return p.M * p.T }

// K returns the code dimension n - m*t.
func (p Params) K() int { return p.N - p.M*p.T }

// pkRowBytes is the packed byte length of one public-key row (k bits).
func (p Params) pkRowBytes() int { return (p.K() + 7) / 8 }

// PublicKeySize returns the public key encoding length in bytes:
// (n-k) rows of ceil(k/8) bytes.
func (p Params) PublicKeySize() int { return p.Rows() * p.pkRowBytes() }

// PrivateKeySize returns the private key encoding length in bytes:
// seed (32) || mask (n/8) || pivots (8) || goppa (2t) || support (2n).
func (p Params) PrivateKeySize() int {
	return constants.SeedSize + p.N/8 + 8 + 2*p.T + 2*p.N
}

// CiphertextSize returns the syndrome length in bytes, ceil(m*t/8).
// Unused trailing bits of the final byte are always zero.
func (p Params) CiphertextSize() int { return (p.Rows() + 7) / 8 }

// SharedSecretSize returns the shared secret length in bytes.
func (p Params) SharedSecretSize() int { return constants.SharedSecretSize }

// String implements fmt.Stringer.
func (p Params) String() string {
	return fmt.Sprintf("%s (n=%d t=%d m=%d k=%d)", p.Name, p.N, p.T, p.M, p.K())
}
