package mceliece

import (
	"encoding/binary"
	"io"
	"math/bits"

	"github.com/pzverkov/mceliece-go/internal/constants"
	qerrors "github.com/pzverkov/mceliece-go/internal/errors"
)

// sampleFixedWeight draws a weight-t error vector of n bits from stream.
//
// Each attempt reads 2t candidate positions as 16-bit little-endian words
// masked to m bits, keeps the first t that fall below n, and restarts when
// fewer than t survive or any two collide. The collision check and the
// final bit scatter are branch-free over the candidate data; only the
// accept/restart decision is visible, and it depends solely on rejected
// draws.
func sampleFixedWeight(p Params, stream io.Reader) ([]byte, error) {
	buf := make([]byte, 4*p.T)
	ind := make([]uint16, p.T)

	for attempt := 0; attempt < constants.MaxFixedWeightAttempts; attempt++ {
		if _, err := io.ReadFull(stream, buf); err != nil {
			return nil, qerrors.NewCryptoError("sampleFixedWeight", err)
		}

		count := 0
		for i := 0; i < 2*p.T && count < p.T; i++ {
			d := binary.LittleEndian.Uint16(buf[2*i:]) & p.mask()
			if int(d) < p.N {
				ind[count] = d
				count++
			}
		}
		if count < p.T {
			continue
		}

		collision := uint16(0)
		for i := 1; i < p.T; i++ {
			for j := 0; j < i; j++ {
				collision |= equalMask16(ind[i], ind[j])
			}
		}
		if collision != 0 {
			continue
		}

		return scatterBits(p, ind), nil
	}

	return nil, qerrors.NewCryptoError("sampleFixedWeight", qerrors.ErrEncapsulationFailed)
}

// equalMask16 returns 0xFFFF when a == b and 0 otherwise.
func equalMask16(a, b uint16) uint16 {
	d := uint32(a ^ b)
	return uint16((d - 1) >> 16)
}

// scatterBits expands t accepted positions into a packed n-bit vector
// without indexing memory by secret values: every byte of the output is
// visited for every position.
func scatterBits(p Params, ind []uint16) []byte {
	e := make([]byte, p.N/8)
	val := make([]byte, p.T)
	for j := range ind {
		val[j] = 1 << (ind[j] & 7)
	}
	for i := range e {
		var b byte
		for j := range ind {
			same := equalMask16(uint16(i), ind[j]>>3)
			b |= val[j] & byte(same)
		}
		e[i] = b
	}
	return e
}

// weight returns the number of set bits in v.
func weight(v []byte) int {
	n := 0
	for _, b := range v {
		n += bits.OnesCount8(b)
	}
	return n
}
