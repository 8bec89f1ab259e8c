// Copyright 2025 The qr Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf256

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var f = NewField(0x11d, 2)

func TestFieldTables(t *testing.T) {
	seen := make(map[byte]bool)
	for i := 0; i < 255; i++ {
		x := f.Exp(i)
		require.False(t, seen[x], "α^%d repeats", i)
		seen[x] = true
		require.Equal(t, i, f.Log(x))
	}
	require.False(t, seen[0], "0 is not a power of α")
	require.EqualValues(t, 1, f.Exp(0))
	require.EqualValues(t, 2, f.Exp(1))
	require.EqualValues(t, 1, f.Exp(255), "α^255 = 1")
}

func TestMul(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			want := byte(mul(a, b, 0x11d))
			require.Equal(t, want, f.Mul(byte(a), byte(b)),
				"%#x × %#x", a, b)
		}
	}
}

func TestAdd(t *testing.T) {
	require.EqualValues(t, 0, f.Add(0x5c, 0x5c))
	require.EqualValues(t, 0x5c, f.Add(0x5c, 0))
	require.EqualValues(t, 0x14^0x92, f.Add(0x14, 0x92))
}

func TestLogZero(t *testing.T) {
	require.Panics(t, func() { f.Log(0) })
}

func TestBadField(t *testing.T) {
	require.Panics(t, func() { NewField(0xff, 2) })
	// x^8+x^4+x^3+x+1 is irreducible, but 2 has order 51 in its
	// multiplicative group and so is not a generator.
	require.Panics(t, func() { NewField(0x11b, 2) })
}

// TestGen checks the generator polynomial for 7 checksum bytes against
// the published table: exponents 87 229 146 149 238 102 21.
func TestGen(t *testing.T) {
	want := []int{87, 229, 146, 149, 238, 102, 21}
	gen := NewRSEncoder(f, 7).Gen()
	require.Len(t, gen, len(want))
	for i, e := range want {
		require.Equal(t, f.Exp(e), gen[i], "coefficient %d", i)
	}
}

// eval evaluates the polynomial with the given coefficients, highest
// degree first, at x.
func eval(p []byte, x byte) byte {
	var v byte
	for _, c := range p {
		v = f.Mul(v, x) ^ c
	}
	return v
}

// TestECC checks that data followed by its checksum is divisible by
// the generator, that is, evaluates to zero at every root α^i.
func TestECC(t *testing.T) {
	for _, tt := range []struct {
		data []byte
		c    int
	}{
		{[]byte{0x10, 0x20, 0x0c, 0x56, 0x61, 0x80, 0xec, 0x11}, 7},
		{[]byte("hello, world"), 10},
		{make([]byte, 19), 13},
		{[]byte{0xff}, 30},
	} {
		rs := NewRSEncoder(f, tt.c)
		check := make([]byte, tt.c)
		rs.ECC(tt.data, check)
		cw := append(append([]byte{}, tt.data...), check...)
		for i := 0; i < tt.c; i++ {
			require.EqualValues(t, 0, eval(cw, f.Exp(i)),
				"c=%d: root α^%d", tt.c, i)
		}
	}
}

func TestECCBadLength(t *testing.T) {
	rs := NewRSEncoder(f, 7)
	require.Panics(t, func() { rs.ECC([]byte{1}, make([]byte, 6)) })
}
