// Copyright 2025 The qr Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFunctionPatterns(t *testing.T) {
	c := newCode(1, L)
	require.Equal(t, 21, c.Size)

	// Finder pattern ring structure in the top left corner.
	for _, tt := range []struct {
		x, y int
		dark bool
	}{
		{0, 0, true}, {3, 3, true}, {1, 1, false}, {5, 5, false},
		{2, 2, true}, {4, 4, true}, {7, 7, false},
	} {
		require.Equal(t, tt.dark, c.Module(tt.x, tt.y),
			"(%d,%d)", tt.x, tt.y)
		require.Equal(t, Function, c.Role(tt.x, tt.y))
	}

	// Timing patterns alternate starting dark.
	for i := 8; i < 13; i++ {
		require.Equal(t, i%2 == 0, c.Module(i, 6), "timing row %d", i)
		require.Equal(t, i%2 == 0, c.Module(6, i), "timing col %d", i)
	}

	// Dark module above the bottom left finder pattern.
	require.True(t, c.Module(8, 13))
	require.Equal(t, Function, c.Role(8, 13))
}

func TestAlignmentPatterns(t *testing.T) {
	// Version 2 has a single alignment pattern centered at 18, 18.
	c := newCode(2, L)
	require.True(t, c.Module(18, 18))
	require.False(t, c.Module(17, 18))
	require.True(t, c.Module(16, 18))
	require.Equal(t, Function, c.Role(18, 18))

	// Version 7: centres at 6, 22 and 38, minus finder corners.
	c = newCode(7, L)
	require.True(t, c.Module(22, 22))
	require.True(t, c.Module(22, 6))
	require.True(t, c.Module(6, 22))
}

// TestDataModuleCount checks that the number of data modules matches
// the codeword capacity plus remainder bits on every version.
func TestDataModuleCount(t *testing.T) {
	for v := MinVersion; v <= MaxVersion; v++ {
		c := newCode(v, L)
		n := 0
		for _, role := range c.roles {
			if role == Data {
				n++
			}
		}
		require.Equal(t, vtab[v].bytes*8+vtab[v].rem, n, "version %d", v)
	}
}

// TestDrawCodewords places a full codeword sequence on every version;
// drawCodewords panics if the zigzag walk does not consume it exactly.
func TestDrawCodewords(t *testing.T) {
	for v := MinVersion; v <= MaxVersion; v++ {
		c := newCode(v, L)
		require.NotPanics(t, func() {
			c.drawCodewords(make([]byte, vtab[v].bytes))
		}, "version %d", v)
	}
}

// formatInfo extracts the 15 format bits from both copies, failing if
// they disagree.
func formatInfo(t *testing.T, c *Code) uint32 {
	t.Helper()
	var copy1, copy2 uint32
	bit := func(b bool, i int) uint32 {
		if b {
			return 1 << i
		}
		return 0
	}
	for i := 0; i <= 5; i++ {
		copy1 |= bit(c.Module(8, i), i)
	}
	copy1 |= bit(c.Module(8, 7), 6)
	copy1 |= bit(c.Module(8, 8), 7)
	copy1 |= bit(c.Module(7, 8), 8)
	for i := 9; i <= 14; i++ {
		copy1 |= bit(c.Module(14-i, 8), i)
	}
	siz := c.Size
	for i := 0; i <= 7; i++ {
		copy2 |= bit(c.Module(siz-1-i, 8), i)
	}
	for i := 8; i <= 14; i++ {
		copy2 |= bit(c.Module(8, siz-15+i), i)
	}
	require.Equal(t, copy1, copy2, "format info copies disagree")
	return copy1
}

// TestFormatInfo checks the format information of a 1-L symbol with
// mask 0 against the published value 111011111000100.
func TestFormatInfo(t *testing.T) {
	c, err := Encode(1, L, 0, Segment{"1", Numeric})
	require.NoError(t, err)
	require.Equal(t, uint32(0x77c4), formatInfo(t, c))
}

// TestVersionInfo checks the version information of a version 7
// symbol against the published value 000111110010010100.
func TestVersionInfo(t *testing.T) {
	c, err := Encode(7, L, 0, Segment{"1", Numeric})
	require.NoError(t, err)
	var bits1, bits2 uint32
	for i := 0; i < 18; i++ {
		a, b := c.Size-11+i%3, i/3
		if c.Module(a, b) {
			bits1 |= 1 << i
		}
		if c.Module(b, a) {
			bits2 |= 1 << i
		}
		require.Equal(t, VersionInfo, c.Role(a, b))
	}
	require.Equal(t, uint32(0x7c94), bits1)
	require.Equal(t, uint32(0x7c94), bits2)
}

func TestModuleOutside(t *testing.T) {
	c := newCode(1, L)
	require.False(t, c.Module(-1, 0))
	require.False(t, c.Module(0, 21))
}
