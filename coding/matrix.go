// Copyright 2025 The qr Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// A Role classifies a module of a QR code by the pattern it belongs
// to.  The zero Role is Data.
type Role byte

const (
	Data     Role = iota // data and checksum codewords, remainder bits
	Function             // finder, timing and alignment patterns
	Format               // format information
	VersionInfo          // version information
)

// A Code is a square QR code matrix.
type Code struct {
	Version Version
	Level   Level
	Mask    int // mask applied to the data modules, 0 to 7
	Size    int // number of modules on a side

	modules []bool
	roles   []Role
}

// Module reports whether the module at x, y is dark.  Modules outside
// the code are light.
func (c *Code) Module(x, y int) bool {
	if uint(x) >= uint(c.Size) || uint(y) >= uint(c.Size) {
		return false
	}
	return c.modules[y*c.Size+x]
}

// Role returns the role of the module at x, y.
func (c *Code) Role(x, y int) Role { return c.roles[y*c.Size+x] }

func (c *Code) set(x, y int, dark bool, role Role) {
	i := y*c.Size + x
	c.modules[i] = dark
	c.roles[i] = role
}

// newCode returns a Code of the given version and level with all
// function, format and version modules drawn.  Format information is
// drawn for mask 0 and redrawn when the final mask is chosen.
func newCode(v Version, l Level) *Code {
	siz := v.Size()
	c := &Code{
		Version: v,
		Level:   l,
		Size:    siz,
		modules: make([]bool, siz*siz),
		roles:   make([]Role, siz*siz),
	}
	c.drawTiming()
	c.drawFinder(3, 3)
	c.drawFinder(siz-4, 3)
	c.drawFinder(3, siz-4)
	c.drawAlignment()
	c.drawFormat(0)
	c.drawVersionInfo()
	return c
}

// drawTiming draws the horizontal and vertical timing patterns.
// The finder and alignment patterns drawn later overwrite their ends.
func (c *Code) drawTiming() {
	for i := 0; i < c.Size; i++ {
		c.set(i, 6, i%2 == 0, Function)
		c.set(6, i, i%2 == 0, Function)
	}
}

// drawFinder draws a finder pattern with its separator centered at
// x, y, clipped at the edges of the code.
func (c *Code) drawFinder(x, y int) {
	for dy := -4; dy <= 4; dy++ {
		for dx := -4; dx <= 4; dx++ {
			xx, yy := x+dx, y+dy
			if uint(xx) >= uint(c.Size) || uint(yy) >= uint(c.Size) {
				continue
			}
			d := max(abs(dx), abs(dy)) // Chebyshev distance
			c.set(xx, yy, d != 2 && d != 4, Function)
		}
	}
}

// drawAlignment draws the alignment patterns of c's version.  Centre
// coordinates come from the version table; the three corners occupied
// by finder patterns are skipped.
func (c *Code) drawAlignment() {
	align := vtab[c.Version].align
	n := len(align)
	for i, yb := range align {
		for j, xb := range align {
			// Skip the three finder corners.
			if i == 0 && (j == 0 || j == n-1) || i == n-1 && j == 0 {
				continue
			}
			x, y := int(xb), int(yb)
			for dy := -2; dy <= 2; dy++ {
				for dx := -2; dx <= 2; dx++ {
					c.set(x+dx, y+dy,
						max(abs(dx), abs(dy)) != 1, Function)
				}
			}
		}
	}
}

// drawFormat draws both copies of the format information for the given
// mask, and the dark module above the bottom left finder pattern.
func (c *Code) drawFormat(mask int) {
	data := c.Level.formatBits()<<3 | uint32(mask)
	rem := data
	for i := 0; i < 10; i++ {
		rem = rem<<1 ^ rem>>9*0x537
	}
	bits := (data<<10 | rem) ^ 0x5412
	bit := func(i int) bool { return bits>>i&1 != 0 }

	// First copy, around the top left finder pattern.
	for i := 0; i <= 5; i++ {
		c.set(8, i, bit(i), Format)
	}
	c.set(8, 7, bit(6), Format)
	c.set(8, 8, bit(7), Format)
	c.set(7, 8, bit(8), Format)
	for i := 9; i <= 14; i++ {
		c.set(14-i, 8, bit(i), Format)
	}

	// Second copy, split between the other two finder patterns.
	siz := c.Size
	for i := 0; i <= 7; i++ {
		c.set(siz-1-i, 8, bit(i), Format)
	}
	for i := 8; i <= 14; i++ {
		c.set(8, siz-15+i, bit(i), Format)
	}
	c.set(8, siz-8, true, Function) // dark module
}

// drawVersionInfo draws both copies of the version information on
// versions 7 and up.
func (c *Code) drawVersionInfo() {
	if c.Version < 7 {
		return
	}
	rem := uint32(c.Version)
	for i := 0; i < 12; i++ {
		rem = rem<<1 ^ rem>>11*0x1f25
	}
	bits := uint32(c.Version)<<12 | rem
	for i := 0; i < 18; i++ {
		bit := bits>>i&1 != 0
		a, b := c.Size-11+i%3, i/3
		c.set(a, b, bit, VersionInfo)
		c.set(b, a, bit, VersionInfo)
	}
}

// drawCodewords places the codeword sequence into the data modules in
// zigzag order: two-module wide columns from the right edge leftwards,
// alternating upward and downward, skipping the vertical timing
// pattern.  Any leftover remainder modules stay light.
func (c *Code) drawCodewords(data []byte) {
	siz := c.Size
	i := 0 // bit index into data
	for right := siz - 1; right >= 1; right -= 2 {
		if right == 6 {
			right = 5
		}
		for vert := 0; vert < siz; vert++ {
			for j := 0; j < 2; j++ {
				x := right - j
				y := vert
				if (right+1)&2 == 0 {
					y = siz - 1 - vert // upward column
				}
				if c.roles[y*siz+x] == Data && i < len(data)*8 {
					c.modules[y*siz+x] = data[i>>3]>>(7-i&7)&1 != 0
					i++
				}
			}
		}
	}
	if i != len(data)*8 {
		panic("qr: codeword placement internal error")
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
