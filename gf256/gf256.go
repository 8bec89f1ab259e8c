// Copyright 2025 The qr Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gf256 implements arithmetic over the Galois field GF(256)
// and the Reed-Solomon encoding used for QR error correction.
package gf256

// A Field represents GF(256) defined by a given polynomial.
type Field struct {
	log [256]byte // log[0] is unused
	exp [510]byte // exp[i] = α^i, doubled to avoid mod 255
}

// NewField returns a Field defined by the polynomial poly, using the
// given α as a generator of the multiplicative group.  NewField panics
// if poly is not a degree 8 polynomial over GF(2) or α does not
// generate the group.
func NewField(poly, α int) *Field {
	if poly < 0x100 || poly >= 0x200 {
		panic("gf256: invalid polynomial")
	}
	var f Field
	x := 1
	for i := 0; i < 255; i++ {
		if x == 1 && i != 0 {
			panic("gf256: generator does not generate the field")
		}
		f.exp[i] = byte(x)
		f.exp[i+255] = byte(x)
		f.log[x] = byte(i)
		x = mul(x, α, poly)
	}
	f.log[0] = 255
	return &f
}

// mul multiplies a and b in the field defined by poly,
// by straightforward carry-less multiplication and reduction.
func mul(a, b, poly int) int {
	var p int
	for ; b != 0; b >>= 1 {
		if b&1 != 0 {
			p ^= a
		}
		if a <<= 1; a&0x100 != 0 {
			a ^= poly
		}
	}
	return p
}

// Add returns the sum of a and b in the field.
func (f *Field) Add(a, b byte) byte { return a ^ b }

// Mul returns the product of a and b in the field.
func (f *Field) Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return f.exp[int(f.log[a])+int(f.log[b])]
}

// Exp returns α^e in the field.
func (f *Field) Exp(e int) byte { return f.exp[e%255] }

// Log returns the base-α logarithm of a.  It panics if a == 0.
func (f *Field) Log(a byte) int {
	if a == 0 {
		panic("gf256: log of zero")
	}
	return int(f.log[a])
}

// An RSEncoder computes Reed-Solomon error correction codewords over
// a Field.  The generator polynomial has roots α^0 .. α^(c-1).
type RSEncoder struct {
	f    *Field
	c    int
	lgen []byte // log of generator coefficients, degree c, monic
}

// NewRSEncoder returns an RSEncoder computing c check bytes.
func NewRSEncoder(f *Field, c int) *RSEncoder {
	if c < 1 || c > 255 {
		panic("gf256: invalid check byte count")
	}
	// Build the generator (x - α^0)(x - α^1)···(x - α^(c-1)).
	// gen holds coefficients from x^(c-1) down to x^0; the leading
	// x^c coefficient is 1 and implicit.
	gen := make([]byte, c)
	gen[c-1] = 1
	for i := 0; i < c; i++ {
		root := f.Exp(i)
		for j := 0; j < c; j++ {
			gen[j] = f.Mul(gen[j], root)
			if j+1 < c {
				gen[j] ^= gen[j+1]
			}
		}
	}
	lgen := make([]byte, c)
	for i, v := range gen {
		if v == 0 {
			panic("gf256: internal error: zero generator coefficient")
		}
		lgen[i] = byte(f.Log(v))
	}
	return &RSEncoder{f: f, c: c, lgen: lgen}
}

// Gen returns the generator polynomial coefficients from x^(c-1) down
// to x^0, excluding the monic leading term.
func (rs *RSEncoder) Gen() []byte {
	gen := make([]byte, rs.c)
	for i, lg := range rs.lgen {
		gen[i] = rs.f.exp[lg]
	}
	return gen
}

// ECC writes the error correction codewords for data into check,
// which must have length equal to the encoder's check byte count.
func (rs *RSEncoder) ECC(data []byte, check []byte) {
	if len(check) != rs.c {
		panic("gf256: invalid check byte length")
	}
	for i := range check {
		check[i] = 0
	}
	// Polynomial long division: check holds the running remainder.
	f := rs.f
	for _, d := range data {
		factor := d ^ check[0]
		copy(check, check[1:])
		check[rs.c-1] = 0
		if factor == 0 {
			continue
		}
		lf := int(f.log[factor])
		for j, lg := range rs.lgen {
			check[j] ^= f.exp[int(lg)+lf]
		}
	}
}
