// Copyright 2025 The qr Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	c, err := Encode(1, Q, -1, Segment{"HELLO WORLD", Alphanumeric})
	require.NoError(t, err)
	require.Equal(t, Version(1), c.Version)
	require.Equal(t, Q, c.Level)
	require.Equal(t, 21, c.Size)
	require.GreaterOrEqual(t, c.Mask, 0)
	require.LessOrEqual(t, c.Mask, 7)
}

func TestEncodeForcedMask(t *testing.T) {
	for mask := 0; mask < 8; mask++ {
		c, err := Encode(1, L, mask, Segment{"MASKED", Alphanumeric})
		require.NoError(t, err)
		require.Equal(t, mask, c.Mask)
		// The format information must carry the forced mask.
		require.Equal(t, mask, int(formatDataBits(t, c)&7))
	}
}

// formatDataBits decodes the 5 data bits out of the format info:
// the level indicator and the mask number.
func formatDataBits(t *testing.T, c *Code) uint32 {
	t.Helper()
	return (formatInfo(t, c) ^ 0x5412) >> 10
}

func TestEncodeEmpty(t *testing.T) {
	// No segments produce a valid, pad-only symbol.
	c, err := Encode(1, L, -1)
	require.NoError(t, err)
	require.Equal(t, 21, c.Size)
}

func TestEncodeMultiSegment(t *testing.T) {
	c, err := Encode(2, L, -1,
		Segment{"TEL:", Alphanumeric},
		Segment{"8675309", Numeric})
	require.NoError(t, err)
	require.Equal(t, Version(2), c.Version)
}

func TestEncodeErrors(t *testing.T) {
	_, err := Encode(0, L, -1)
	require.ErrorIs(t, err, ErrVersion)
	_, err = Encode(41, L, -1)
	require.ErrorIs(t, err, ErrVersion)
	_, err = Encode(1, Level(4), -1)
	require.ErrorIs(t, err, ErrLevel)
	_, err = Encode(1, L, 8)
	require.ErrorIs(t, err, ErrInvalidConfig)
	_, err = Encode(1, H, -1, Segment{strings.Repeat("9", 36), Numeric})
	require.ErrorIs(t, err, ErrDataTooLong)
}

// TestEncodeGoldenSymbol checks a complete 1-M symbol against the
// published reference encoding of "01234567": the padded data
// codewords, the Reed-Solomon check bytes and the format information,
// read back out of the placed modules.
func TestEncodeGoldenSymbol(t *testing.T) {
	golden := []byte{
		0x10, 0x20, 0x0c, 0x56, 0x61, 0x80, 0xec, 0x11,
		0xec, 0x11, 0xec, 0x11, 0xec, 0x11, 0xec, 0x11,
		0xa5, 0x24, 0xd4, 0xc1, 0xed, 0x36, 0xc7, 0x87,
		0x2c, 0x55,
	}
	c, err := Encode(1, M, 2, Segment{"01234567", Numeric})
	require.NoError(t, err)
	require.Equal(t, 2, c.Mask)
	require.EqualValues(t, 0x5e7c, formatInfo(t, c))

	// Walk the zigzag, remove the mask and repack the codewords.
	got := make([]byte, len(golden))
	i := 0
	for right := c.Size - 1; right >= 1; right -= 2 {
		if right == 6 {
			right = 5
		}
		for vert := 0; vert < c.Size; vert++ {
			for x := right; x > right-2; x-- {
				y := vert
				if (right+1)&2 == 0 {
					y = c.Size - 1 - vert
				}
				if c.Role(x, y) != Data {
					continue
				}
				if c.Module(x, y) != (x%3 == 0) {
					got[i>>3] |= 0x80 >> (i & 7)
				}
				i++
			}
		}
	}
	require.Equal(t, len(golden)*8, i)
	require.Equal(t, golden, got)
}

// TestEncodeCapacity checks the byte mode capacity boundary of the
// largest symbol: 2953 bytes fit 40-L, 2954 do not.
func TestEncodeCapacity(t *testing.T) {
	seg := Segment{strings.Repeat("x", 2953), Byte}
	c, err := Encode(40, L, -1, seg)
	require.NoError(t, err)
	require.Equal(t, 177, c.Size)

	seg.Text += "x"
	_, err = Encode(40, L, -1, seg)
	require.ErrorIs(t, err, ErrDataTooLong)
}

func TestFits(t *testing.T) {
	require.True(t, Version(1).Fits(L, 152))
	require.False(t, Version(1).Fits(L, 153))
	require.True(t, Version(40).Fits(L, 23648))
}

func TestVersionMethods(t *testing.T) {
	require.Equal(t, 21, Version(1).Size())
	require.Equal(t, 177, Version(40).Size())
	require.Equal(t, Class0, Version(9).SizeClass())
	require.Equal(t, Class1, Version(10).SizeClass())
	require.Equal(t, Class1, Version(26).SizeClass())
	require.Equal(t, Class2, Version(27).SizeClass())

	require.Equal(t, 19, Version(1).DataBytes(L))
	require.Equal(t, 16, Version(1).DataBytes(M))
	require.Equal(t, 13, Version(1).DataBytes(Q))
	require.Equal(t, 9, Version(1).DataBytes(H))
	require.Equal(t, 2956, Version(40).DataBytes(L))

	require.Equal(t, "M", M.String())
	require.False(t, Level(4).IsValid())
}
