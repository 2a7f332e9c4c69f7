package crypto

import (
	"crypto/ecdh"
	"crypto/rand"

	"golang.org/x/crypto/sha3"

	qerrors "github.com/pzverkov/mceliece-go/internal/errors"
)

// X25519KeyPair holds an X25519 key pair for the hybrid construction.
type X25519KeyPair struct {
	PublicKey  *ecdh.PublicKey
	PrivateKey *ecdh.PrivateKey
}

// GenerateX25519KeyPair generates a fresh X25519 key pair.
func GenerateX25519KeyPair() (*X25519KeyPair, error) {
	priv, err := ecdh.X25519().GenerateKey(rand.Reader)
	if err != nil {
		return nil, qerrors.NewCryptoError("GenerateX25519KeyPair", err)
	}
	return &X25519KeyPair{
		PublicKey:  priv.PublicKey(),
		PrivateKey: priv,
	}, nil
}

// PublicKeyBytes returns the 32-byte public key encoding.
func (kp *X25519KeyPair) PublicKeyBytes() []byte {
	return kp.PublicKey.Bytes()
}

// X25519 performs the Diffie-Hellman operation. The all-zero output is
// rejected by crypto/ecdh, so the result is always a valid shared point.
func X25519(priv *ecdh.PrivateKey, pub *ecdh.PublicKey) ([]byte, error) {
	secret, err := priv.ECDH(pub)
	if err != nil {
		return nil, qerrors.NewCryptoError("X25519", err)
	}
	return secret, nil
}

// ParseX25519PublicKey parses a 32-byte X25519 public key.
func ParseX25519PublicKey(data []byte) (*ecdh.PublicKey, error) {
	pub, err := ecdh.X25519().NewPublicKey(data)
	if err != nil {
		return nil, qerrors.NewCryptoError("ParseX25519PublicKey", qerrors.ErrInvalidPublicKey)
	}
	return pub, nil
}

// TranscriptHash computes SHA3-256 over the concatenated inputs. Used to
// bind a hybrid shared secret to the full public transcript.
func TranscriptHash(inputs ...[]byte) []byte {
	h := sha3.New256()
	for _, in := range inputs {
		h.Write(in)
	}
	return h.Sum(nil)
}

// DeriveHybridSecret combines two KEM secrets and a transcript hash into
// the final 32-byte shared secret with SHAKE-256.
func DeriveHybridSecret(classical, postQuantum, transcript []byte) []byte {
	return SHAKE256(32, classical, postQuantum, transcript, []byte("mceliece-go-hybrid-v1"))
}
