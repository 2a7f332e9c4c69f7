// Package gf implements arithmetic in the binary extension fields GF(2^m)
// underlying binary Goppa codes.
//
// Elements are m-bit polynomials over GF(2) reduced modulo a fixed
// irreducible polynomial. Addition is XOR; multiplication is a carry-less
// shift-and-mask product followed by modular reduction.
//
// Security Properties:
//   - All operations are branch-free in their operands: no secret-dependent
//     conditionals and no secret-indexed table lookups. Loop bounds depend
//     only on the public field degree m.
//   - Inversion uses Fermat's little theorem with the public exponent
//     2^m - 2, so its sequence of squarings and multiplications is fixed.
//
// The two fields used by the supported parameter sets are GF(2^12) with
// reduction polynomial x^12 + x^3 + 1 and GF(2^13) with x^13 + x^4 + x^3 +
// x + 1, but the implementation accepts any degree up to 15.
package gf

import "errors"

// Elem is a field element: an integer in [0, 2^m).
type Elem uint16

// Field describes GF(2^m) as a stateless value. The zero Field is not
// usable; construct one with New.
type Field struct {
	m    uint
	mask Elem
	poly uint32 // reduction polynomial, including the x^m term
}

// ErrBadField indicates an unusable field degree or reduction polynomial.
var ErrBadField = errors.New("gf: invalid field description")

// New constructs GF(2^m) with the given reduction polynomial. The
// polynomial must have degree exactly m, with 2 <= m <= 15.
func New(m uint, poly uint32) (Field, error) {
	if m < 2 || m > 15 || poly>>m != 1 {
		return Field{}, ErrBadField
	}
	return Field{m: m, mask: Elem(1<<m - 1), poly: poly}, nil
}

// Degree returns the field degree m.
func (f Field) Degree() uint { return f.m }

// Mask returns the m-bit element mask.
func (f Field) Mask() Elem { return f.mask }

// Add returns a + b. In characteristic 2 this is XOR and is its own inverse.
func (f Field) Add(a, b Elem) Elem { return a ^ b }

// Mul returns a * b mod the reduction polynomial.
func (f Field) Mul(a, b Elem) Elem {
	av := uint32(a & f.mask)
	bv := uint32(b & f.mask)

	var p uint32
	for i := uint(0); i < f.m; i++ {
		p ^= av * ((bv >> i) & 1) << i
	}
	return f.reduce(p)
}

// Sqr returns a^2.
func (f Field) Sqr(a Elem) Elem {
	return f.Mul(a, a)
}

// reduce folds a (2m-1)-bit carry-less product back into m bits. Each
// iteration cancels one high bit; the conditional is expressed as a 0/1
// multiplier so the operation count does not depend on the value.
func (f Field) reduce(p uint32) Elem {
	for i := 2*f.m - 2; i >= f.m; i-- {
		c := (p >> i) & 1
		p ^= c * (f.poly << (i - f.m))
	}
	return Elem(p) & f.mask
}

// Inv returns the multiplicative inverse a^(2^m - 2). Inv(0) is 0, which
// callers rely on: it lets x/g(alpha) style expressions stay branch-free.
func (f Field) Inv(a Elem) Elem {
	ret := Elem(1)
	sq := a
	for i := uint(1); i < f.m; i++ {
		sq = f.Sqr(sq)
		ret = f.Mul(ret, sq)
	}
	return ret
}

// Div returns num / den. Div(x, 0) is 0.
func (f Field) Div(num, den Elem) Elem {
	return f.Mul(num, f.Inv(den))
}

// Exp returns a^e for a public exponent e by square-and-multiply. The
// branch on exponent bits is on public data only.
func (f Field) Exp(a Elem, e uint32) Elem {
	ret := Elem(1)
	base := a
	for ; e > 0; e >>= 1 {
		if e&1 == 1 {
			ret = f.Mul(ret, base)
		}
		base = f.Sqr(base)
	}
	return ret
}
