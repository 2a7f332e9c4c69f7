// genpoly.go generates the secret Goppa polynomial.
//
// Instead of trial division, g is constructed as the minimal polynomial of
// a pseudorandom element beta of the extension field GF((2^m)^t) =
// GF(2^m)[y]/F(y): the powers beta^0..beta^t are stacked as vectors and the
// linear system sum(g_i * beta^i) = beta^t is solved by Gaussian
// elimination. When the system has full rank the solution is a monic
// degree-t polynomial that is irreducible over GF(2^m) by construction,
// which settles the irreducibility test without a separate primality-style
// check. A rank-deficient system (beta lies in a proper subfield) is a
// NeedsRetry outcome, not an error.
package mceliece

import "github.com/pzverkov/mceliece-go/pkg/gf"

// extMul multiplies two degree-<t polynomials modulo F(y), coefficients in
// GF(2^m). a and b must have length t; the result has length t.
func extMul(f gf.Field, p Params, a, b []gf.Elem) []gf.Elem {
	t := p.T
	prod := make([]gf.Elem, 2*t-1)
	for i := 0; i < t; i++ {
		for j := 0; j < t; j++ {
			prod[i+j] ^= f.Mul(a[i], b[j])
		}
	}

	// Fold y^i for i >= t using y^t = sum of the F tail terms.
	for i := 2*t - 2; i >= t; i-- {
		c := prod[i]
		prod[i] = 0
		for _, term := range p.ExtPoly {
			prod[i-t+term.Exp] ^= f.Mul(c, term.Coeff)
		}
	}
	return prod[:t]
}

// isZeroMask returns 0xFFFF if v == 0, else 0.
func isZeroMask(v gf.Elem) gf.Elem {
	bit := gf.Elem((uint32(v) - 1) >> 31)
	return -bit
}

// minimalPoly computes the minimal polynomial of beta over GF(2^m) and
// returns its t coefficients below the monic leading term. ok is false when
// the linear system is singular and the caller should retry with a fresh
// candidate.
func minimalPoly(f gf.Field, p Params, beta []gf.Elem) (coeffs []gf.Elem, ok bool) {
	t := p.T

	// pow[c] = beta^c as a coordinate vector.
	pow := make([][]gf.Elem, t+1)
	pow[0] = make([]gf.Elem, t)
	pow[0][0] = 1
	pow[1] = append([]gf.Elem(nil), beta...)
	for c := 2; c <= t; c++ {
		pow[c] = extMul(f, p, pow[c-1], beta)
	}

	// M[r][c] = coordinate r of beta^c; column t is the right-hand side.
	M := make([][]gf.Elem, t)
	for r := 0; r < t; r++ {
		M[r] = make([]gf.Elem, t+1)
		for c := 0; c <= t; c++ {
			M[r][c] = pow[c][r]
		}
	}

	// Gaussian elimination without row swaps: rows below the pivot are
	// folded in under a mask while the pivot is zero, mirroring the
	// constant-time elimination style used for the parity-check matrix.
	for r := 0; r < t; r++ {
		for r2 := r + 1; r2 < t; r2++ {
			mask := isZeroMask(M[r][r])
			for c := r; c <= t; c++ {
				M[r][c] ^= M[r2][c] & mask
			}
		}
		if M[r][r] == 0 {
			return nil, false
		}

		inv := f.Inv(M[r][r])
		for c := r; c <= t; c++ {
			M[r][c] = f.Mul(inv, M[r][c])
		}
		for r2 := 0; r2 < t; r2++ {
			if r2 == r {
				continue
			}
			z := M[r2][r]
			for c := r; c <= t; c++ {
				M[r2][c] ^= f.Mul(z, M[r][c])
			}
		}
	}

	coeffs = make([]gf.Elem, t)
	for r := 0; r < t; r++ {
		coeffs[r] = M[r][t]
	}
	return coeffs, true
}

// evalGoppa evaluates the monic Goppa polynomial g at a, with coeffs the t
// coefficients below the leading term.
func evalGoppa(f gf.Field, coeffs []gf.Elem, a gf.Elem) gf.Elem {
	acc := gf.Elem(1) // monic leading coefficient
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc = f.Mul(acc, a) ^ coeffs[i]
	}
	return acc
}

// evalPoly evaluates a polynomial given by its full coefficient slice
// (coeffs[i] is the y^i coefficient) at a.
func evalPoly(f gf.Field, coeffs []gf.Elem, a gf.Elem) gf.Elem {
	acc := coeffs[len(coeffs)-1]
	for i := len(coeffs) - 2; i >= 0; i-- {
		acc = f.Mul(acc, a) ^ coeffs[i]
	}
	return acc
}
