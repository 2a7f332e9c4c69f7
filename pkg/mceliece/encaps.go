package mceliece

import (
	"io"
	"math/bits"

	"github.com/pzverkov/mceliece-go/internal/constants"
	"github.com/pzverkov/mceliece-go/pkg/crypto"
)

// Encapsulate samples a fresh weight-t error vector, encodes it against
// the public key as a syndrome ciphertext, and derives the shared secret
// as SHAKE-256 over the session prefix, the error vector, and the
// ciphertext. rand defaults to crypto.Reader when nil.
func Encapsulate(pk *PublicKey, rand io.Reader) (ciphertext, sharedSecret []byte, err error) {
	if rand == nil {
		rand = crypto.Reader
	}

	e, err := sampleFixedWeight(pk.params, rand)
	if err != nil {
		return nil, nil, err
	}
	defer crypto.Zeroize(e)

	ct := encodeSyndrome(pk, e)
	ss := sessionKey(constants.PrefixSessionOK, e, ct)
	return ct, ss, nil
}

// encodeSyndrome computes C = H*e for the systematic parity check
// [I | T], T being the stored public key rows: syndrome bit i is the bit
// e_i folded with the dot product of row i of T and the trailing k bits
// of e.
func encodeSyndrome(pk *PublicKey, e []byte) []byte {
	p := pk.params
	rows := p.Rows()
	rowBytes := p.pkRowBytes()

	eT := shiftRightBits(e, rows, rowBytes, p.K())
	ct := make([]byte, p.CiphertextSize())

	for i := 0; i < rows; i++ {
		row := pk.rows[i*rowBytes : (i+1)*rowBytes]
		var acc byte
		for j, b := range row {
			acc ^= b & eT[j]
		}
		bit := byte(bits.OnesCount8(acc)) & 1
		bit ^= e[i/8] >> (i % 8) & 1
		ct[i/8] |= bit << (i % 8)
	}
	return ct
}

// sessionKey derives a 32-byte shared secret with domain separation over
// the outcome prefix.
func sessionKey(prefix byte, e, ct []byte) []byte {
	return crypto.SHAKE256(constants.SharedSecretSize, []byte{prefix}, e, ct)
}
