package mceliece

import (
	"sync"

	"github.com/cloudflare/circl/kem"

	"github.com/pzverkov/mceliece-go/internal/constants"
	qerrors "github.com/pzverkov/mceliece-go/internal/errors"
	"github.com/pzverkov/mceliece-go/pkg/crypto"
)

// Scheme adapts a parameter set to the circl kem.Scheme interface so the
// KEM can drop into code written against circl's generic KEM plumbing.
// The name must be a registered parameter set.
func Scheme(name string) (kem.Scheme, error) {
	p, err := ParamsByName(name)
	if err != nil {
		return nil, err
	}
	return scheme{p}, nil
}

// MustScheme is Scheme for known-good names; it panics otherwise.
func MustScheme(name string) kem.Scheme {
	s, err := Scheme(name)
	if err != nil {
		panic(err)
	}
	return s
}

type scheme struct {
	p Params
}

type schemePublicKey struct {
	s  scheme
	pk *PublicKey
}

type schemePrivateKey struct {
	s      scheme
	sk     *PrivateKey
	pk     *PublicKey
	pkOnce sync.Once
}

func (s scheme) Name() string               { return s.p.Name }
func (s scheme) PublicKeySize() int         { return s.p.PublicKeySize() }
func (s scheme) PrivateKeySize() int        { return s.p.PrivateKeySize() }
func (s scheme) CiphertextSize() int        { return s.p.CiphertextSize() }
func (s scheme) SharedKeySize() int         { return s.p.SharedSecretSize() }
func (s scheme) SeedSize() int              { return constants.SeedSize }
func (s scheme) EncapsulationSeedSize() int { return constants.SeedSize }

func (s scheme) GenerateKeyPair() (kem.PublicKey, kem.PrivateKey, error) {
	pk, sk, err := GenerateKeyPair(s.p, nil)
	if err != nil {
		return nil, nil, err
	}
	return schemePublicKey{s, pk}, &schemePrivateKey{s: s, sk: sk, pk: pk}, nil
}

func (s scheme) DeriveKeyPair(seed []byte) (kem.PublicKey, kem.PrivateKey) {
	pk, sk, err := DeriveKeyPair(s.p, seed)
	if err != nil {
		panic(err)
	}
	return schemePublicKey{s, pk}, &schemePrivateKey{s: s, sk: sk, pk: pk}
}

func (s scheme) Encapsulate(pk kem.PublicKey) (ct, ss []byte, err error) {
	sp, ok := pk.(schemePublicKey)
	if !ok || sp.s.p.Name != s.p.Name {
		return nil, nil, kem.ErrTypeMismatch
	}
	return Encapsulate(sp.pk, nil)
}

func (s scheme) EncapsulateDeterministically(pk kem.PublicKey, seed []byte) (ct, ss []byte, err error) {
	sp, ok := pk.(schemePublicKey)
	if !ok || sp.s.p.Name != s.p.Name {
		return nil, nil, kem.ErrTypeMismatch
	}
	if len(seed) != constants.SeedSize {
		return nil, nil, kem.ErrSeedSize
	}
	stream := crypto.NewDeterministicReader(constants.DomainSeparatorKAT, seed)
	return Encapsulate(sp.pk, stream)
}

func (s scheme) Decapsulate(sk kem.PrivateKey, ct []byte) ([]byte, error) {
	sp, ok := sk.(*schemePrivateKey)
	if !ok || sp.s.p.Name != s.p.Name {
		return nil, kem.ErrTypeMismatch
	}
	return Decapsulate(sp.sk, ct)
}

func (s scheme) UnmarshalBinaryPublicKey(data []byte) (kem.PublicKey, error) {
	pk, err := ParsePublicKey(s.p, data)
	if err != nil {
		return nil, err
	}
	return schemePublicKey{s, pk}, nil
}

func (s scheme) UnmarshalBinaryPrivateKey(data []byte) (kem.PrivateKey, error) {
	sk, err := ParsePrivateKey(s.p, data)
	if err != nil {
		return nil, err
	}
	return &schemePrivateKey{s: s, sk: sk}, nil
}

func (k schemePublicKey) Scheme() kem.Scheme { return k.s }

func (k schemePublicKey) MarshalBinary() ([]byte, error) {
	return append([]byte(nil), k.pk.Bytes()...), nil
}

func (k schemePublicKey) Equal(other kem.PublicKey) bool {
	o, ok := other.(schemePublicKey)
	return ok && k.pk.Equal(o.pk)
}

func (k *schemePrivateKey) Scheme() kem.Scheme { return k.s }

func (k *schemePrivateKey) MarshalBinary() ([]byte, error) {
	return k.sk.Bytes(), nil
}

func (k *schemePrivateKey) Equal(other kem.PrivateKey) bool {
	o, ok := other.(*schemePrivateKey)
	if !ok {
		return false
	}
	a, errA := k.MarshalBinary()
	b, errB := o.MarshalBinary()
	if errA != nil || errB != nil {
		return false
	}
	return crypto.ConstantTimeCompare(a, b)
}

// Public reconstructs the public key from the private key. The result is
// cached under a sync.Once so repeated and concurrent calls share one
// matrix reduction.
func (k *schemePrivateKey) Public() kem.PublicKey {
	k.pkOnce.Do(func() {
		if k.pk != nil {
			return
		}
		pk, err := k.sk.ReconstructPublicKey()
		if err != nil {
			panic(qerrors.NewCryptoError("Public", err))
		}
		k.pk = pk
	})
	return schemePublicKey{k.s, k.pk}
}
