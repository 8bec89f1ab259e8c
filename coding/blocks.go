// Copyright 2025 The qr Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "github.com/dnalor/qr/gf256"

// rsCache caches Reed-Solomon encoders by check byte count.  QR uses
// check counts up to 30; index 0 is unused.
var rsCache [31]*gf256.RSEncoder

func rsEncoder(c int) *gf256.RSEncoder {
	if rs := rsCache[c]; rs != nil {
		return rs
	}
	rs := gf256.NewRSEncoder(Field, c)
	rsCache[c] = rs
	return rs
}

// blockStructure returns the error correction block structure for the
// given version and level: the number of blocks, the number of data
// bytes in a short block, and the number of short blocks.  Short
// blocks come first; long blocks hold one extra data byte.
func (v Version) blockStructure(l Level) (nblock, ndata, nshort int) {
	vt := &vtab[v]
	lev := vt.level[l]
	nblock = lev.nblock
	dbytes := vt.bytes - lev.nblock*lev.check
	ndata = dbytes / nblock
	nshort = nblock - dbytes%nblock
	return
}

// checkBytes returns the number of checksum bytes per block at the
// given version and level.
func (v Version) checkBytes(l Level) int { return vtab[v].level[l].check }

// interleave splits data into error correction blocks, computes the
// checksum of each, and returns the final codeword sequence:
// data bytes of all blocks interleaved column by column, followed by
// checksum bytes interleaved the same way.  len(data) must equal
// v.DataBytes(l).
func (v Version) interleave(l Level, data []byte) []byte {
	if len(data) != v.DataBytes(l) {
		panic("qr: invalid data length")
	}
	nblock, ndata, nshort := v.blockStructure(l)
	c := v.checkBytes(l)
	rs := rsEncoder(c)

	// Split into blocks and compute checksums.
	blocks := make([][]byte, nblock)
	checks := make([]byte, nblock*c)
	for i, off := 0, 0; i < nblock; i++ {
		n := ndata
		if i >= nshort {
			n++
		}
		blocks[i] = data[off : off+n]
		off += n
		rs.ECC(blocks[i], checks[i*c:(i+1)*c])
	}

	out := make([]byte, 0, vtab[v].bytes)
	// Data codewords column by column; short blocks run out first.
	for j := 0; j < ndata+1; j++ {
		for _, b := range blocks {
			if j < len(b) {
				out = append(out, b[j])
			}
		}
	}
	// Checksum codewords, all blocks the same length.
	for j := 0; j < c; j++ {
		for i := 0; i < nblock; i++ {
			out = append(out, checks[i*c+j])
		}
	}
	return out
}
