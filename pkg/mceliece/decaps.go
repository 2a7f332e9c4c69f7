// decaps.go implements syndrome decoding with implicit rejection.
//
// # Mathematical Foundation
//
// A ciphertext C is the mt-bit syndrome of a weight-t error e against the
// systematic parity check. Decoding works over the doubled code: with
// v = (C, 0..0) padded to n bits, the 2t syndromes
//
//	S_i = sum_j v_j * L_j^i / g(L_j)^2
//
// feed Berlekamp-Massey, which returns the error locator sigma of degree
// t. Scanning sigma over the support recovers e'. The attempt is accepted
// only if e' has weight exactly t and reproduces the same 2t syndromes;
// otherwise the shared secret is derived from the private rejection mask
// instead, without ever branching on the comparison.
package mceliece

import (
	"github.com/pzverkov/mceliece-go/internal/constants"
	qerrors "github.com/pzverkov/mceliece-go/internal/errors"
	"github.com/pzverkov/mceliece-go/pkg/crypto"
	"github.com/pzverkov/mceliece-go/pkg/gf"
)

// Decapsulate recovers the shared secret from a ciphertext. Malformed
// lengths and nonzero padding bits are rejected with an error; a
// well-formed ciphertext that fails decoding yields the implicit
// rejection secret, indistinguishable in timing from the success path.
func Decapsulate(sk *PrivateKey, ct []byte) ([]byte, error) {
	p := sk.params
	if len(ct) != p.CiphertextSize() {
		return nil, qerrors.NewCryptoError("Decapsulate", qerrors.ErrInvalidCiphertext)
	}
	if pad := p.Rows() % 8; pad != 0 {
		if ct[len(ct)-1]>>pad != 0 {
			return nil, qerrors.NewCryptoError("Decapsulate", qerrors.ErrInvalidCiphertext)
		}
	}

	f := p.field()

	// v = (C, 0, ..., 0), the received word padded to n bits.
	v := make([]byte, p.N/8)
	copy(v, ct)

	syn := doubleSyndrome(p, f, sk, v)
	locator := berlekampMassey(p, f, syn)

	// Root scan: e'_j = 1 iff sigma(L_j) = 0. The weight is accumulated
	// alongside so no second pass over e' is needed.
	e := make([]byte, p.N/8)
	defer crypto.Zeroize(e)
	w := 0
	for j := 0; j < p.N; j++ {
		z := evalPoly(f, locator, sk.support[j])
		bit := byte(isZeroMask(z)) & 1
		e[j/8] |= bit << (j % 8)
		w += int(bit)
	}

	// Re-encode: a decoding success reproduces the received syndromes.
	check := doubleSyndrome(p, f, sk, e)
	diff := gf.Elem(0)
	for i := range syn {
		diff |= syn[i] ^ check[i]
	}

	okMask := byte(isZeroMask(diff))
	okMask &= byte(isZeroMask(gf.Elem(uint16(w) ^ uint16(p.T))))

	good := sessionKey(constants.PrefixSessionOK, e, ct)
	bad := sessionKey(constants.PrefixSessionReject, sk.mask, ct)

	ss := make([]byte, constants.SharedSecretSize)
	crypto.ConstantTimeSelect(okMask, good, bad, ss)
	crypto.ZeroizeMultiple(good, bad)
	return ss, nil
}

// doubleSyndrome computes the 2t syndromes of the packed n-bit vector v
// with respect to g(y)^2: S_i = sum_j v_j * L_j^i / g(L_j)^2.
func doubleSyndrome(p Params, f gf.Field, sk *PrivateKey, v []byte) []gf.Elem {
	syn := make([]gf.Elem, 2*p.T)
	for j := 0; j < p.N; j++ {
		c := gf.Elem(v[j/8] >> (j % 8) & 1)
		gv := evalGoppa(f, sk.goppa, sk.support[j])
		einv := f.Inv(f.Mul(gv, gv))
		for i := range syn {
			syn[i] ^= f.Mul(einv, c)
			einv = f.Mul(einv, sk.support[j])
		}
	}
	return syn
}

// berlekampMassey runs the reference constant-time Berlekamp-Massey over
// the 2t syndromes and returns the reversed connection polynomial
// sigma(y) = y^t * C(1/y), stored with out[i] as the y^i coefficient.
// The reversal moves the roots from the locator inverses 1/L_j to the
// locators L_j themselves, and makes an error at the support point 0
// visible as sigma(0) = C[t] = 0.
func berlekampMassey(p Params, f gf.Field, syn []gf.Elem) []gf.Elem {
	t := p.T
	C := make([]gf.Elem, t+1)
	B := make([]gf.Elem, t+1)
	T := make([]gf.Elem, t+1)

	B[1] = 1
	C[0] = 1
	L := uint16(0)
	b := gf.Elem(1)

	for n := 0; n < 2*t; n++ {
		d := gf.Elem(0)
		for i := 0; i <= min(n, t); i++ {
			d ^= f.Mul(C[i], syn[n-i])
		}

		// mne is all-ones when the discrepancy is nonzero; mle
		// additionally requires n >= 2L and selects the length update.
		// Field elements fit 15 bits, so the sign lands in bit 15.
		mne := ^isZeroMask(d)
		mle := uint16(n) - 2*L
		mle >>= 15
		mle -= 1
		mle &= uint16(mne)

		copy(T, C)

		fr := f.Div(d, b)
		for i := 0; i <= t; i++ {
			C[i] ^= f.Mul(fr, B[i]) & mne
		}

		L = L&^mle | (uint16(n)+1-L)&mle

		for i := 0; i <= t; i++ {
			B[i] = B[i]&^gf.Elem(mle) | T[i]&gf.Elem(mle)
		}
		b = b&^gf.Elem(mle) | d&gf.Elem(mle)

		// B <- y * B
		copy(B[1:], B[:t])
		B[0] = 0
	}

	out := make([]gf.Elem, t+1)
	for i := 0; i <= t; i++ {
		out[i] = C[t-i]
	}
	clear(C)
	clear(B)
	clear(T)
	return out
}
