// support.go draws the secret support ordering from the key-generation
// stream.
//
// The support is an ordered sequence of n distinct GF(2^m) elements,
// collected by rejection sampling over 16-bit draws: values with bits above
// the field degree set are out of range and discarded, as are duplicates.
// Rejection keeps the accepted sequence uniform over all orderings. The
// draw budget is sized so exhaustion is overwhelmingly improbable for valid
// parameter sets, including the n = 2^m sets where the tail of the
// collection behaves like a coupon collector.
package mceliece

import (
	"encoding/binary"
	"io"

	"github.com/pzverkov/mceliece-go/internal/constants"
	qerrors "github.com/pzverkov/mceliece-go/internal/errors"
	"github.com/pzverkov/mceliece-go/pkg/gf"
)

// supportBatchDraws is the number of 16-bit draws consumed from the stream
// per batch. Whole batches keep the stream position a deterministic
// function of the accepted/rejected history.
const supportBatchDraws = 1024

// drawSupport collects n distinct field elements from the stream.
// ok is false when the draw budget runs out (NeedsRetry); err is non-nil
// only for a failing stream, which for the SHAKE-backed streams used by
// key generation cannot happen.
func drawSupport(p Params, stream io.Reader) (support []gf.Elem, ok bool, err error) {
	q := 1 << p.M
	budget := constants.SupportDrawBudget << p.M

	seen := make([]bool, q)
	support = make([]gf.Elem, 0, p.N)
	buf := make([]byte, 2*supportBatchDraws)

	for budget > 0 && len(support) < p.N {
		if _, err := io.ReadFull(stream, buf); err != nil {
			return nil, false, qerrors.NewCryptoError("drawSupport", qerrors.ErrRandomSourceFailure)
		}

		for i := 0; i < supportBatchDraws && len(support) < p.N; i++ {
			v := binary.LittleEndian.Uint16(buf[2*i:])
			if int(v) >= q {
				continue // out of range
			}
			if seen[v] {
				continue // duplicate
			}
			seen[v] = true
			support = append(support, gf.Elem(v))
		}
		budget -= supportBatchDraws
	}

	return support, len(support) == p.N, nil
}

// drawGoppaCoefficients reads the 2t-byte polynomial slice of the stream
// and returns the t masked candidate coordinates of beta.
func drawGoppaCoefficients(p Params, f gf.Field, stream io.Reader) ([]gf.Elem, error) {
	buf := make([]byte, 2*p.T)
	if _, err := io.ReadFull(stream, buf); err != nil {
		return nil, qerrors.NewCryptoError("drawGoppaCoefficients", qerrors.ErrRandomSourceFailure)
	}
	beta := make([]gf.Elem, p.T)
	for i := range beta {
		beta[i] = gf.Elem(binary.LittleEndian.Uint16(buf[2*i:])) & f.Mask()
	}
	return beta, nil
}
