// matrix.go builds the binary parity-check matrix of the Goppa code and
// reduces it to systematic form.
//
// The builder evaluates 1/g(alpha_j) at every support point and expands the
// t powers alpha_j^i/g(alpha_j) into m bit-rows each, giving an (m*t) x n
// bit matrix packed 8 columns per byte, column j at bit j%8 of byte j/8.
//
// Reduction works on an owned buffer and returns a tagged outcome: Reduced
// on success, Singular when a pivot cannot be established. With pivoting
// enabled the last 32 rows get a bounded look-ahead over a 64-column
// window, swapping matrix columns and the matching support entries; this
// salvages most attempts that plain elimination would restart. Row
// combinations are mask-selected so the memory access pattern does not
// depend on the secret matrix content.
package mceliece

import (
	"encoding/binary"
	"math/bits"

	"github.com/pzverkov/mceliece-go/pkg/gf"
)

// reduceOutcome tags the result of reduceToSystematic.
type reduceOutcome int

const (
	reduced reduceOutcome = iota
	singular
)

// pivotRows and pivotCols bound the look-ahead window of the semi-
// systematic reduction: 32 pivots sought among 64 candidate columns.
const (
	pivotRows = 32
	pivotCols = 64
)

// noPivots is the pivot-word value recorded when column pivoting is off.
const noPivots uint64 = 0xFFFFFFFF

// buildParityCheck constructs the packed (m*t) x n parity-check matrix for
// the given Goppa polynomial coefficients and support.
func buildParityCheck(p Params, f gf.Field, goppa, support []gf.Elem) [][]byte {
	rowBytes := p.N / 8
	mat := make([][]byte, p.Rows())
	for i := range mat {
		mat[i] = make([]byte, rowBytes)
	}

	// acc[j] starts at 1/g(alpha_j) and picks up one factor alpha_j per
	// power row.
	acc := make([]gf.Elem, p.N)
	for j := 0; j < p.N; j++ {
		acc[j] = f.Inv(evalGoppa(f, goppa, support[j]))
	}

	for i := 0; i < p.T; i++ {
		for j := 0; j < p.N; j++ {
			c := acc[j]
			for b := 0; b < p.M; b++ {
				mat[i*p.M+b][j/8] |= byte((c>>b)&1) << (j % 8)
			}
			acc[j] = f.Mul(acc[j], support[j])
		}
	}
	return mat
}

// xorRowMasked XORs src into dst where mask is 0xFF; a 0x00 mask leaves
// dst untouched while performing the same memory traffic.
func xorRowMasked(dst, src []byte, mask byte) {
	for i := range dst {
		dst[i] ^= src[i] & mask
	}
}

// reduceToSystematic performs in-place Gaussian elimination bringing the
// left (n-k) x (n-k) block to identity. support is permuted alongside the
// matrix columns when pivoting kicks in. The returned pivot word records
// the chosen columns (noPivots when pivoting is disabled or unused).
func reduceToSystematic(p Params, mat [][]byte, support []gf.Elem, usePivots bool) (uint64, reduceOutcome) {
	rows := p.Rows()
	pivots := noPivots

	for i := 0; i < rows; i++ {
		if usePivots && i == rows-pivotRows {
			pv, ok := movColumns(mat, support, i)
			if !ok {
				return 0, singular
			}
			pivots = pv
		}

		bytePos, bitPos := i/8, uint(i%8)

		// Fold lower rows into the pivot row while its pivot bit is zero.
		for k := i + 1; k < rows; k++ {
			mask := -(mat[i][bytePos]>>bitPos&1 ^ 1)
			xorRowMasked(mat[i], mat[k], mask)
		}

		if mat[i][bytePos]>>bitPos&1 == 0 {
			return 0, singular
		}

		// Clear the pivot column everywhere else.
		for k := 0; k < rows; k++ {
			if k == i {
				continue
			}
			mask := -(mat[k][bytePos] >> bitPos & 1)
			xorRowMasked(mat[k], mat[i], mask)
		}
	}
	return pivots, reduced
}

// movColumns finds 32 usable pivot columns for the final 32 rows within a
// 64-column window starting at column rowOffset, swaps them into place
// across the whole matrix (and the support), and returns the selection as
// a bitmask over the window.
func movColumns(mat [][]byte, support []gf.Elem, rowOffset int) (uint64, bool) {
	var buf [pivotRows]uint64
	var ctzList [pivotRows]int

	for i := 0; i < pivotRows; i++ {
		buf[i] = loadWindow(mat[rowOffset+i], rowOffset)
	}

	// Select pivot columns by leading-zero scanning with masked row
	// combinations, as in the reference semi-systematic reduction.
	var pivots uint64
	for i := 0; i < pivotRows; i++ {
		t := buf[i]
		for j := i + 1; j < pivotRows; j++ {
			t |= buf[j]
		}
		if t == 0 {
			return 0, false // window has no usable pivot left
		}

		s := bits.TrailingZeros64(t)
		ctzList[i] = s
		pivots |= uint64(1) << s

		for j := i + 1; j < pivotRows; j++ {
			mask := buf[i] >> s & 1
			mask -= 1 // all-ones while bit s is still missing
			buf[i] ^= buf[j] & mask
		}
		for j := i + 1; j < pivotRows; j++ {
			mask := -(buf[j] >> s & 1)
			buf[j] ^= buf[i] & mask
		}
	}

	// Apply the column swaps to every matrix row and to the support.
	for r := range mat {
		w := loadWindow(mat[r], rowOffset)
		for j := 0; j < pivotRows; j++ {
			d := (w>>j ^ w>>ctzList[j]) & 1
			w ^= d << ctzList[j]
			w ^= d << j
		}
		storeWindow(mat[r], rowOffset, w)
	}
	for j := 0; j < pivotRows; j++ {
		a, b := rowOffset+j, rowOffset+ctzList[j]
		support[a], support[b] = support[b], support[a]
	}

	return pivots, true
}

// loadWindow reads 64 bits of a packed row starting at the given bit
// offset. The caller guarantees the window lies inside the row.
func loadWindow(row []byte, bitOff int) uint64 {
	idx, sh := bitOff/8, uint(bitOff%8)
	v := binary.LittleEndian.Uint64(row[idx : idx+8])
	if sh != 0 {
		v = v>>sh | uint64(row[idx+8])<<(64-sh)
	}
	return v
}

// storeWindow writes 64 bits of a packed row starting at the given bit
// offset, preserving neighboring bits.
func storeWindow(row []byte, bitOff int, v uint64) {
	idx, sh := bitOff/8, uint(bitOff%8)
	if sh == 0 {
		binary.LittleEndian.PutUint64(row[idx:idx+8], v)
		return
	}
	lowMask := byte(1<<sh - 1)
	row[idx] = row[idx]&lowMask | byte(v<<sh)
	for i := 1; i < 8; i++ {
		row[idx+i] = byte(v >> (8*uint(i) - sh))
	}
	row[idx+8] = row[idx+8]&^lowMask | byte(v>>(64-sh))&lowMask
}

// extractPublicKey slices columns n-k..n-1 out of the reduced matrix and
// packs each row into ceil(k/8) bytes, zeroing the trailing pad bits.
func extractPublicKey(p Params, mat [][]byte) []byte {
	rows := p.Rows()
	rowBytes := p.pkRowBytes()
	out := make([]byte, 0, p.PublicKeySize())

	for i := 0; i < rows; i++ {
		out = append(out, shiftRightBits(mat[i], rows, rowBytes, p.K())...)
	}
	return out
}

// shiftRightBits returns outLen bytes holding src's bits starting at bit
// offset off, with bits at or beyond off+width cleared.
func shiftRightBits(src []byte, off, outLen, width int) []byte {
	out := make([]byte, outLen)
	idx, sh := off/8, uint(off%8)
	tail := src[idx:]
	for i := 0; i < outLen; i++ {
		b := tail[i] >> sh
		if sh != 0 && i+1 < len(tail) {
			b |= tail[i+1] << (8 - sh)
		}
		out[i] = b
	}
	if width%8 != 0 {
		out[outLen-1] &= byte(1<<(width%8) - 1)
	}
	return out
}
