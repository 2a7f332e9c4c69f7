package mceliece

import (
	qerrors "github.com/pzverkov/mceliece-go/internal/errors"
	"github.com/pzverkov/mceliece-go/pkg/crypto"
)

// PairwiseConsistencyTest checks that a freshly generated key pair
// round-trips: an encapsulation against pk must decapsulate under sk to
// the same shared secret, and a corrupted ciphertext must yield a
// different one. Intended for callers that gate key material before
// first use; it costs one encapsulation and two decapsulations.
func PairwiseConsistencyTest(pk *PublicKey, sk *PrivateKey) error {
	ct, ss, err := Encapsulate(pk, nil)
	if err != nil {
		return err
	}
	defer crypto.ZeroizeMultiple(ss, ct)

	got, err := Decapsulate(sk, ct)
	if err != nil {
		return err
	}
	defer crypto.Zeroize(got)
	if !crypto.ConstantTimeCompare(ss, got) {
		return qerrors.NewCryptoError("PairwiseConsistencyTest", qerrors.ErrKeyGenerationFailed)
	}

	// Flipping one syndrome bit must change the derived secret.
	ct[0] ^= 1
	rej, err := Decapsulate(sk, ct)
	if err != nil {
		return err
	}
	defer crypto.Zeroize(rej)
	if crypto.ConstantTimeCompare(ss, rej) {
		return qerrors.NewCryptoError("PairwiseConsistencyTest", qerrors.ErrKeyGenerationFailed)
	}
	return nil
}
