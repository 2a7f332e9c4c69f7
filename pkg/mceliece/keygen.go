package mceliece

import (
	"io"

	"github.com/pzverkov/mceliece-go/internal/constants"
	qerrors "github.com/pzverkov/mceliece-go/internal/errors"
	"github.com/pzverkov/mceliece-go/pkg/crypto"
)

// GenerateKeyPair produces a fresh Goppa key pair for the parameter set,
// drawing the initial 32-byte seed from rand (crypto.Reader when nil).
//
// Each attempt expands the current seed with SHAKE-256 under the key
// generation domain prefix and reads, in order: the implicit-rejection
// mask, the support candidates, the Goppa polynomial bytes, and the next
// 32-byte seed. A failed attempt (support exhaustion, reducible
// polynomial candidate, singular matrix) always consumes its full stream
// before chaining to the next seed, so retries are reproducible from the
// initial seed alone.
func GenerateKeyPair(p Params, rand io.Reader) (*PublicKey, *PrivateKey, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	if rand == nil {
		rand = crypto.Reader
	}

	seed := make([]byte, constants.SeedSize)
	if _, err := io.ReadFull(rand, seed); err != nil {
		return nil, nil, qerrors.NewCryptoError("GenerateKeyPair", qerrors.ErrRandomSourceFailure)
	}
	return deriveKeyPair(p, seed)
}

// deriveKeyPair runs the bounded retry loop starting from seed. The seed
// slice is consumed; callers keep their own copy if needed.
func deriveKeyPair(p Params, seed []byte) (*PublicKey, *PrivateKey, error) {
	f := p.field()

	for attempt := 0; attempt < constants.MaxKeyGenAttempts; attempt++ {
		stream := crypto.NewStream(constants.PrefixKeyGen, seed)

		mask := make([]byte, p.N/8)
		if _, err := io.ReadFull(stream, mask); err != nil {
			return nil, nil, qerrors.NewCryptoError("GenerateKeyPair", err)
		}

		support, supportOK, err := drawSupport(p, stream)
		if err != nil {
			return nil, nil, qerrors.NewCryptoError("GenerateKeyPair", err)
		}

		// The polynomial bytes and the chained seed are read even when
		// the support draw failed, to keep the stream offsets fixed.
		beta, err := drawGoppaCoefficients(p, f, stream)
		if err != nil {
			return nil, nil, qerrors.NewCryptoError("GenerateKeyPair", err)
		}

		next := make([]byte, constants.SeedSize)
		if _, err := io.ReadFull(stream, next); err != nil {
			return nil, nil, qerrors.NewCryptoError("GenerateKeyPair", err)
		}

		if supportOK {
			if goppa, ok := minimalPoly(f, p, beta); ok {
				mat := buildParityCheck(p, f, goppa, support)
				pivots, outcome := reduceToSystematic(p, mat, support, p.Pivots)
				if outcome == reduced {
					if !p.Pivots {
						pivots = noPivots
					}
					pk := &PublicKey{params: p, rows: extractPublicKey(p, mat)}
					sk := &PrivateKey{
						params:  p,
						seed:    append([]byte(nil), seed...),
						mask:    mask,
						pivots:  pivots,
						goppa:   goppa,
						support: support,
					}
					crypto.Zeroize(next)
					crypto.Zeroize(seed)
					return pk, sk, nil
				}
			}
		}

		crypto.Zeroize(seed)
		seed = next
	}

	crypto.Zeroize(seed)
	return nil, nil, qerrors.NewCryptoError("GenerateKeyPair", qerrors.ErrKeyGenerationFailed)
}

// DeriveKeyPair deterministically derives a key pair from a 32-byte seed.
// The same seed and parameter set always yield the same keys.
func DeriveKeyPair(p Params, seed []byte) (*PublicKey, *PrivateKey, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	if len(seed) != constants.SeedSize {
		return nil, nil, qerrors.NewCryptoError("DeriveKeyPair", qerrors.ErrInvalidKeySize)
	}
	return deriveKeyPair(p, append([]byte(nil), seed...))
}
