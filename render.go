// Copyright 2025 The qr Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
)

// dark reports whether the module at x, y renders dark, honouring
// Reverse.  Modules outside the code, including the quiet zone, are
// light.
func (c *Code) dark(x, y int) bool {
	return c.Module(x, y) != c.Reverse
}

// String renders the code as text, two rows of modules per line using
// Unicode half block characters, surrounded by the quiet zone.
func (c *Code) String() string {
	siz, bord := c.Size, c.Border
	var b strings.Builder
	b.Grow((siz + 2*bord) * (siz + 2*bord + 1) / 2 * 3)
	for y := -bord; y < siz+bord; y += 2 {
		for x := -bord; x < siz+bord; x++ {
			switch top, bottom := c.dark(x, y), c.dark(x, y+1); {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Image returns an Image displaying the code.
func (c *Code) Image() image.Image { return &codeImage{c} }

// codeImage implements image.Image.
type codeImage struct {
	*Code
}

var (
	lightColor color.Color = color.Gray{0xff}
	darkColor  color.Color = color.Gray{0x00}
)

func (c *codeImage) ColorModel() color.Model { return color.GrayModel }

func (c *codeImage) Bounds() image.Rectangle {
	d := (c.Size + 2*c.Border) * c.Scale
	return image.Rect(0, 0, d, d)
}

func (c *codeImage) At(x, y int) color.Color {
	if c.dark(x/c.Scale-c.Border, y/c.Scale-c.Border) {
		return darkColor
	}
	return lightColor
}

// EncodePNG writes the code to w in PNG format.
func (c *Code) EncodePNG(w io.Writer) error {
	if !c.isValid() {
		return ErrArgs
	}
	return png.Encode(w, c.Image())
}
