// Package hybrid implements a cascaded hybrid KEM that combines X25519 with
// Classic McEliece.
//
// The construction pairs a classical elliptic-curve exchange with a
// code-based post-quantum KEM and binds both secrets to the full public
// transcript:
//   - X25519 (elliptic curve Diffie-Hellman, RFC 7748)
//   - Classic McEliece (code-based KEM, any supported parameter set)
//   - SHAKE-256 (key derivation, NIST FIPS 202)
//
// # Security Model
//
// The hybrid KEM is IND-CCA2 secure if EITHER X25519 OR the McEliece
// component is secure, in the random oracle model for SHAKE-256. An
// adversary must extract information about BOTH component secrets from the
// ciphertext before the derived key leaks anything.
//
// # Construction
//
// Key Generation:
//
//	(sk_x, pk_x) ← X25519.KeyGen()
//	(sk_c, pk_c) ← McEliece.KeyGen(params)
//	pk = pk_x || pk_c
//	sk = (sk_x, sk_c)
//
// Encapsulation:
//
//	(sk_e, pk_e) ← X25519.KeyGen()
//	K_x ← X25519.DH(sk_e, pk_x)
//	(ct_c, K_c) ← McEliece.Encaps(pk_c)
//	ct = pk_e || ct_c
//	transcript ← SHA3-256(pk_x || pk_c || ct)
//	K ← SHAKE-256(K_x || K_c || transcript, 256)
//
// Decapsulation mirrors the above with X25519.DH(sk_x, pk_e) and
// McEliece.Decaps(sk_c, ct_c). The McEliece implicit rejection flows
// through the combiner: an invalid code component yields a
// pseudorandom K_c, hence a pseudorandom K, without any observable
// failure signal.
package hybrid

import (
	"crypto/ecdh"

	"github.com/pzverkov/mceliece-go/internal/constants"
	qerrors "github.com/pzverkov/mceliece-go/internal/errors"
	"github.com/pzverkov/mceliece-go/pkg/crypto"
	"github.com/pzverkov/mceliece-go/pkg/mceliece"
)

// KeyPair holds the X25519 and McEliece components of a hybrid key pair.
type KeyPair struct {
	x25519Public  *ecdh.PublicKey
	x25519Private *ecdh.PrivateKey

	mcePublic  *mceliece.PublicKey
	mcePrivate *mceliece.PrivateKey
}

// PublicKey is a hybrid public key for encapsulation.
type PublicKey struct {
	x25519 *ecdh.PublicKey
	mce    *mceliece.PublicKey
}

// Ciphertext is a hybrid ciphertext.
type Ciphertext struct {
	// X25519 ephemeral public key (32 bytes)
	x25519Ephemeral []byte

	// McEliece syndrome ciphertext
	mceCiphertext []byte
}

// GenerateKeyPair generates a hybrid key pair for the given McEliece
// parameter set, drawing randomness from the system generator.
func GenerateKeyPair(p mceliece.Params) (*KeyPair, error) {
	xkp, err := crypto.GenerateX25519KeyPair()
	if err != nil {
		return nil, qerrors.NewCryptoError("hybrid.GenerateKeyPair", err)
	}

	mcePub, mcePriv, err := mceliece.GenerateKeyPair(p, nil)
	if err != nil {
		return nil, qerrors.NewCryptoError("hybrid.GenerateKeyPair", err)
	}

	return &KeyPair{
		x25519Public:  xkp.PublicKey,
		x25519Private: xkp.PrivateKey,
		mcePublic:     mcePub,
		mcePrivate:    mcePriv,
	}, nil
}

// PublicKey returns the public component of the key pair.
func (kp *KeyPair) PublicKey() *PublicKey {
	return &PublicKey{
		x25519: kp.x25519Public,
		mce:    kp.mcePublic,
	}
}

// Params returns the McEliece parameter set of the key pair.
func (kp *KeyPair) Params() mceliece.Params { return kp.mcePrivate.Params() }

// Encapsulate creates a hybrid ciphertext and shared secret for the
// recipient's public key.
//
// An ephemeral X25519 exchange and a McEliece encapsulation run
// independently; the two component secrets and the transcript hash of all
// public values feed the SHAKE-256 combiner.
func Encapsulate(recipientPublic *PublicKey) (*Ciphertext, []byte, error) {
	if recipientPublic == nil || recipientPublic.x25519 == nil || recipientPublic.mce == nil {
		return nil, nil, qerrors.ErrInvalidPublicKey
	}

	ephemeralKP, err := crypto.GenerateX25519KeyPair()
	if err != nil {
		return nil, nil, qerrors.NewCryptoError("hybrid.Encapsulate", err)
	}

	x25519Secret, err := crypto.X25519(ephemeralKP.PrivateKey, recipientPublic.x25519)
	if err != nil {
		return nil, nil, qerrors.NewCryptoError("hybrid.Encapsulate", err)
	}

	mceCiphertext, mceSecret, err := mceliece.Encapsulate(recipientPublic.mce, nil)
	if err != nil {
		return nil, nil, qerrors.NewCryptoError("hybrid.Encapsulate", err)
	}

	ct := &Ciphertext{
		x25519Ephemeral: ephemeralKP.PublicKeyBytes(),
		mceCiphertext:   mceCiphertext,
	}

	// transcript = SHA3-256(pk_x || pk_c || ct_x_eph || ct_c)
	transcriptHash := crypto.TranscriptHash(
		recipientPublic.x25519.Bytes(),
		recipientPublic.mce.Bytes(),
		ct.x25519Ephemeral,
		ct.mceCiphertext,
	)

	sharedSecret := crypto.DeriveHybridSecret(x25519Secret, mceSecret, transcriptHash)

	crypto.ZeroizeMultiple(x25519Secret, mceSecret)

	return ct, sharedSecret, nil
}

// Decapsulate recovers the shared secret from a hybrid ciphertext.
//
// A malformed McEliece component is absorbed by implicit rejection, so the
// only error paths here are structural: nil arguments or an X25519 point
// that fails validation.
func Decapsulate(ct *Ciphertext, kp *KeyPair) ([]byte, error) {
	if ct == nil || len(ct.x25519Ephemeral) == 0 || len(ct.mceCiphertext) == 0 {
		return nil, qerrors.ErrInvalidCiphertext
	}
	if kp == nil || kp.x25519Private == nil || kp.mcePrivate == nil {
		return nil, qerrors.ErrInvalidPrivateKey
	}

	ephemeralPublic, err := crypto.ParseX25519PublicKey(ct.x25519Ephemeral)
	if err != nil {
		return nil, qerrors.NewCryptoError("hybrid.Decapsulate", err)
	}

	x25519Secret, err := crypto.X25519(kp.x25519Private, ephemeralPublic)
	if err != nil {
		return nil, qerrors.NewCryptoError("hybrid.Decapsulate", err)
	}

	mceSecret, err := mceliece.Decapsulate(kp.mcePrivate, ct.mceCiphertext)
	if err != nil {
		return nil, qerrors.NewCryptoError("hybrid.Decapsulate", err)
	}

	// Must match the encapsulation-side transcript.
	transcriptHash := crypto.TranscriptHash(
		kp.x25519Public.Bytes(),
		kp.mcePublic.Bytes(),
		ct.x25519Ephemeral,
		ct.mceCiphertext,
	)

	sharedSecret := crypto.DeriveHybridSecret(x25519Secret, mceSecret, transcriptHash)

	crypto.ZeroizeMultiple(x25519Secret, mceSecret)

	return sharedSecret, nil
}

// PublicKeySize returns the serialized hybrid public key size for a
// McEliece parameter set.
func PublicKeySize(p mceliece.Params) int {
	return constants.X25519PublicKeySize + p.PublicKeySize()
}

// CiphertextSize returns the serialized hybrid ciphertext size for a
// McEliece parameter set.
func CiphertextSize(p mceliece.Params) int {
	return constants.X25519PublicKeySize + p.CiphertextSize()
}

// Bytes serializes the public key.
//
// Format: x25519_public (32 bytes) || mceliece_public
func (pk *PublicKey) Bytes() []byte {
	mceBytes := pk.mce.Bytes()
	result := make([]byte, constants.X25519PublicKeySize+len(mceBytes))
	copy(result[:constants.X25519PublicKeySize], pk.x25519.Bytes())
	copy(result[constants.X25519PublicKeySize:], mceBytes)
	return result
}

// Params returns the McEliece parameter set of the public key.
func (pk *PublicKey) Params() mceliece.Params { return pk.mce.Params() }

// ParsePublicKey parses a hybrid public key for the given parameter set.
func ParsePublicKey(p mceliece.Params, data []byte) (*PublicKey, error) {
	if len(data) != PublicKeySize(p) {
		return nil, qerrors.ErrInvalidPublicKey
	}

	x25519Public, err := crypto.ParseX25519PublicKey(data[:constants.X25519PublicKeySize])
	if err != nil {
		return nil, err
	}

	mcePublic, err := mceliece.ParsePublicKey(p, data[constants.X25519PublicKeySize:])
	if err != nil {
		return nil, err
	}

	return &PublicKey{
		x25519: x25519Public,
		mce:    mcePublic,
	}, nil
}

// Bytes serializes the ciphertext.
//
// Format: x25519_ephemeral (32 bytes) || mceliece_ciphertext
func (ct *Ciphertext) Bytes() []byte {
	result := make([]byte, constants.X25519PublicKeySize+len(ct.mceCiphertext))
	copy(result[:constants.X25519PublicKeySize], ct.x25519Ephemeral)
	copy(result[constants.X25519PublicKeySize:], ct.mceCiphertext)
	return result
}

// ParseCiphertext parses a hybrid ciphertext for the given parameter set.
func ParseCiphertext(p mceliece.Params, data []byte) (*Ciphertext, error) {
	if len(data) != CiphertextSize(p) {
		return nil, qerrors.ErrInvalidCiphertext
	}

	return &Ciphertext{
		x25519Ephemeral: data[:constants.X25519PublicKeySize],
		mceCiphertext:   data[constants.X25519PublicKeySize:],
	}, nil
}

// Zeroize drops the private key material.
func (kp *KeyPair) Zeroize() {
	kp.x25519Private = nil
	kp.x25519Public = nil
	kp.mcePrivate = nil
	kp.mcePublic = nil
}

// Clone creates a shallow copy of the public key. Both components are
// immutable after construction, so sharing them is safe.
func (pk *PublicKey) Clone() *PublicKey {
	return &PublicKey{
		x25519: pk.x25519,
		mce:    pk.mce,
	}
}

// X25519PublicKey returns the classical component of the public key.
func (pk *PublicKey) X25519PublicKey() *ecdh.PublicKey {
	return pk.x25519
}

// McEliecePublicKey returns the code-based component of the public key.
func (pk *PublicKey) McEliecePublicKey() *mceliece.PublicKey {
	return pk.mce
}
