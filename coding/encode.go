// Copyright 2025 The qr Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// Encode encodes the segments into a QR code of the given version and
// level.  If mask is -1 the mask is chosen by the mask evaluation
// rules; otherwise the given mask, 0 to 7, is forced.
//
// Encode returns ErrDataTooLong if the segments do not fit the
// version at the level.
func Encode(v Version, l Level, mask int, segs ...Segment) (*Code, error) {
	if !v.IsValid() {
		return nil, ErrVersion
	}
	if !l.IsValid() {
		return nil, ErrLevel
	}
	if mask < -1 || mask > 7 {
		return nil, ErrInvalidConfig
	}

	b := NewBits(v, l)
	class := v.SizeClass()
	for _, seg := range segs {
		if err := seg.Encode(b, class); err != nil {
			return nil, err
		}
	}
	n := v.DataBits(l)
	if b.Bits() > n {
		return nil, ErrDataTooLong
	}
	b.Pad(n)

	c := newCode(v, l)
	c.drawCodewords(v.interleave(l, b.Bytes()))
	if mask == -1 {
		c.chooseMask()
	} else {
		c.applyMask(mask)
		c.drawFormat(mask)
		c.Mask = mask
	}
	return c, nil
}

// Fits reports whether segments totalling n encoded bits fit a QR
// code of the given version and level.
func (v Version) Fits(l Level, n int) bool { return n <= v.DataBits(l) }
