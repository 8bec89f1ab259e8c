// Copyright 2025 The qr Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestBlockStructure checks the block arithmetic on every version and
// level: short blocks first, long blocks one data byte bigger, all
// bytes accounted for.
func TestBlockStructure(t *testing.T) {
	for v := MinVersion; v <= MaxVersion; v++ {
		for l := L; l <= H; l++ {
			nblock, ndata, nshort := v.blockStructure(l)
			require.Positive(t, nblock, "%d-%s", v, l)
			require.Positive(t, ndata, "%d-%s", v, l)
			require.Greater(t, nshort, 0, "%d-%s", v, l)
			require.LessOrEqual(t, nshort, nblock, "%d-%s", v, l)
			data := nshort*ndata + (nblock-nshort)*(ndata+1)
			require.Equal(t, v.DataBytes(l), data, "%d-%s", v, l)
			require.Equal(t, vtab[v].bytes,
				data+nblock*v.checkBytes(l), "%d-%s", v, l)
		}
	}
}

// TestInterleave checks codeword ordering on 5-Q: 62 data bytes in
// four blocks of 15, 15, 16 and 16.
func TestInterleave(t *testing.T) {
	v, l := Version(5), Q
	data := make([]byte, v.DataBytes(l))
	for i := range data {
		data[i] = byte(i)
	}
	out := v.interleave(l, data)
	require.Len(t, out, vtab[v].bytes)

	// First column: first byte of each block.
	require.Equal(t, []byte{data[0], data[15], data[30], data[46]},
		out[:4])
	// Last data column: short blocks are exhausted.
	require.Equal(t, []byte{data[45], data[61]}, out[60:62])

	// Each block followed by its checksum evaluates to zero at the
	// generator roots.
	c := v.checkBytes(l)
	blocks := [][]byte{data[0:15], data[15:30], data[30:46], data[46:62]}
	for i, b := range blocks {
		cw := append([]byte{}, b...)
		for j := 0; j < c; j++ {
			cw = append(cw, out[62+j*4+i])
		}
		for e := 0; e < c; e++ {
			var sum byte
			x := Field.Exp(e)
			for _, d := range cw {
				sum = Field.Mul(sum, x) ^ d
			}
			require.EqualValues(t, 0, sum, "block %d root %d", i, e)
		}
	}
}

func TestInterleaveSingleBlock(t *testing.T) {
	// Version 1 has one block; data codewords pass through in order.
	v, l := Version(1), M
	data := make([]byte, v.DataBytes(l))
	for i := range data {
		data[i] = byte(0x80 | i)
	}
	out := v.interleave(l, data)
	require.Len(t, out, 26)
	require.Equal(t, data, out[:len(data)])
}

func TestInterleaveBadLength(t *testing.T) {
	require.Panics(t, func() {
		Version(1).interleave(L, make([]byte, 5))
	})
}
