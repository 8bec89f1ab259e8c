// Copyright 2025 The qr Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package split splits strings into QR code segments.

Split chooses segment modes minimising the total encoded length and
the smallest QR version fitting the result.  Greedy is a simpler
segmentation that assigns each character run its tightest mode; it
never beats Split and exists as a baseline.
*/
package split

import "github.com/dnalor/qr/coding"

// Mode indices for the span splitter, tightest first.
const (
	numMode   = iota // numeric
	alphaMode        // alphanumeric
	kanjiMode        // kanji
	byteMode         // byte
	nmode            // number of modes

	numModes   = 1<<numMode | 1<<alphaMode | 1<<byteMode
	alphaModes = 1<<alphaMode | 1<<byteMode
	kanjiModes = 1<<kanjiMode | 1<<byteMode
	byteModes  = 1 << byteMode
)

// segMode maps splitter mode indices to coding modes.
var segMode = [nmode]coding.Mode{
	numMode:   coding.Numeric,
	alphaMode: coding.Alphanumeric,
	kanjiMode: coding.Kanji,
	byteMode:  coding.Byte,
}

// classModes returns the bit field of modes in which r is encodable.
func classModes(r rune) byte {
	switch {
	case '0' <= r && r <= '9':
		return numModes
	case coding.IsAlphanumeric(r):
		return alphaModes
	case coding.IsKanji(r):
		return kanjiModes
	}
	return byteModes
}

type (
	// segment describes a segment encoded in a certain mode.
	segment struct {
		next   *segment // link to next segment in the chain
		start  int      // start of string
		slen   int      // length of string in bytes
		rlen   int      // length of string in runes
		weight int      // encoded size of all segments in the chain
		mode   byte     // encoding mode
	}

	// span describes a span of bytes encodable in the same modes.
	span struct {
		start int           // start of string
		slen  int           // length of string in bytes
		rlen  int           // length of string in runes
		modes byte          // bit field of valid encoding modes
		seg   [nmode]segment
	}
)

// classify splits text into spans of bytes encodable in the same
// modes.
func classify(text string) []span {
	if text == "" {
		return nil
	}

	// Scan the string, detect valid encoding modes for each rune.
	modes := make([]byte, len(text))
	common := ^byte(0) // modes common to all spans
	n := 0
	m := byte(0)
	for i, r := range text {
		old := m
		m = classModes(r)
		modes[i] = m
		if m != old {
			common &= m
			n++
		}
	}
	// If some mode is common to all spans, drop the modes above the
	// tightest common one: a single segment in it can't be beaten.
	mask := ^common | common&-common

	// Set spans.
	sp := make([]span, n)
	old, n := byte(0), 0
	for i, v := range modes {
		if v == 0 {
			continue
		}
		if v != old {
			if i != 0 {
				sp[n].slen = i - sp[n].start
				n++
			}
			sp[n].start = i
			sp[n].modes = v & mask
			old = v
		}
		sp[n].rlen++
	}
	sp[n].slen = len(modes) - sp[n].start
	return sp
}

const inf = 1 << 30

// weight returns the encoded length in bits of a segment of slen
// bytes and rlen runes in mode j at the given version size class.
func weight(j byte, slen, rlen, class int) int {
	return segMode[j].Length(slen, rlen, class)
}

/*
dpSplit returns the optimal split for the string described by sp at
the given QR version size class.

For the last span, for each valid mode j, a segment sp[last].seg[j]
describes the span encoded in mode j, with its weight set to the
encoded length in bits.

Then walk backwards through the rest of the spans.  For each span i,
for each valid mode j, for each mode k valid for span i+1: create a
candidate linking to sp[i+1].seg[k]; if k==j, merge by extending the
candidate over the next segment and linking past it.  Add the weight
of the chain after the candidate.  The lightest candidate becomes
sp[i].seg[j].

The segment in sp[0].seg with the smallest weight describes an
optimal split of the whole string.
*/
func dpSplit(sp []span, class int) *segment {
	i := len(sp) - 1
	if i < 0 {
		return nil
	}
	// Process the last span.  Create a segment for each valid mode.
	for j := byte(0); j < nmode; j++ {
		seg := &sp[i].seg[j]
		*seg = segment{weight: inf}
		if sp[i].modes>>j&1 != 0 {
			*seg = segment{
				start:  sp[i].start,
				slen:   sp[i].slen,
				rlen:   sp[i].rlen,
				weight: weight(j, sp[i].slen, sp[i].rlen, class),
				mode:   j,
			}
		}
	}

	// Process the rest of the spans.
	for i--; i >= 0; i-- {
		v := &sp[i]
		for j := byte(0); j < nmode; j++ {
			seg := &v.seg[j]
			*seg = segment{weight: inf}
			if v.modes>>j&1 == 0 {
				continue
			}
			for k := byte(0); k < nmode; k++ {
				next := &sp[i+1].seg[k]
				if next.weight == inf {
					continue
				}
				c := segment{
					next:  next,
					start: v.start,
					slen:  v.slen,
					rlen:  v.rlen,
					mode:  j,
				}
				if k == j {
					c.slen += next.slen
					c.rlen += next.rlen
					c.next = next.next
				}
				c.weight = weight(j, c.slen, c.rlen, class)
				if c.next != nil {
					c.weight += c.next.weight
				}
				if c.weight < seg.weight {
					*seg = c
				}
			}
		}
	}

	// Choose the segment with the smallest weight.
	seg := &sp[0].seg[0]
	for j := 1; j < nmode; j++ {
		if sp[0].seg[j].weight < seg.weight {
			seg = &sp[0].seg[j]
		}
	}
	return seg
}

// segments materialises the chain starting at seg as coding segments
// over text.
func segments(text string, seg *segment) []coding.Segment {
	n := 0
	for s := seg; s != nil; s = s.next {
		n++
	}
	cs := make([]coding.Segment, 0, n)
	for ; seg != nil; seg = seg.next {
		cs = append(cs, coding.Segment{
			Text: text[seg.start : seg.start+seg.slen],
			Mode: segMode[seg.mode],
		})
	}
	return cs
}

// Greedy returns a segmentation of text assigning each character run
// its tightest mode, merging adjacent runs of the same mode.  The
// result never encodes shorter than the one from Split.
func Greedy(text string) []coding.Segment {
	var cs []coding.Segment
	start, old := 0, coding.ModeAuto
	for i, r := range text {
		var m coding.Mode
		switch {
		case '0' <= r && r <= '9':
			m = coding.Numeric
		case coding.IsAlphanumeric(r):
			m = coding.Alphanumeric
		case coding.IsKanji(r):
			m = coding.Kanji
		default:
			m = coding.Byte
		}
		if m != old {
			if old != coding.ModeAuto {
				cs = append(cs, coding.Segment{
					Text: text[start:i],
					Mode: old,
				})
			}
			start, old = i, m
		}
	}
	if old != coding.ModeAuto {
		cs = append(cs, coding.Segment{Text: text[start:], Mode: old})
	}
	return cs
}

var sizeClass = [3]struct{ min, max coding.Version }{
	{1, 9}, {10, 26}, {27, 40},
}

/*
Split returns segments and the minimum QR version between minv and
maxv fitting text at the given error correction level.

The split minimises the total encoded length for the chosen version
size class.  If text does not fit maxv, Split returns ErrDataTooLong,
or ErrInvalidConfig when a single version was requested.
*/
func Split(text string, level coding.Level, minv, maxv coding.Version) ([]coding.Segment, coding.Version, error) {
	if !level.IsValid() {
		return nil, 0, coding.ErrLevel
	}
	if !minv.IsValid() || !maxv.IsValid() || minv > maxv {
		return nil, 0, coding.ErrVersion
	}
	limit := func(class int) int {
		return min(sizeClass[class].max, maxv).DataBits(level)
	}
	overflow := func() error {
		if minv == maxv {
			return coding.ErrInvalidConfig
		}
		return coding.ErrDataTooLong
	}

	// Estimate the size class from the numeric lower bound, which no
	// split can beat.
	class, maxClass := minv.SizeClass(), maxv.SizeClass()
	bits := coding.Numeric.Length(len(text), 0, class)
	for limit(class) < bits {
		if class++; class > maxClass {
			return nil, 0, overflow()
		}
	}

	// Split text into segments for the size class.  If the result is
	// too big for the class, move up and resplit; the count field
	// widths grow, hence the loop.
	sp := classify(text)
	seg := dpSplit(sp, class)
	bits = 0
	if seg != nil {
		bits = seg.weight
	}
	for limit(class) < bits {
		if class++; class > maxClass {
			return nil, 0, overflow()
		}
		seg = dpSplit(sp, class)
		bits = seg.weight
	}

	// Find the smallest fitting version in the size class.
	v := max(sizeClass[class].min, minv)
	for hi := min(sizeClass[class].max, maxv); v < hi; {
		if mid := (v + hi) / 2; mid.DataBits(level) < bits {
			v = mid + 1
		} else {
			hi = mid
		}
	}
	if v.DataBits(level) < bits {
		return nil, 0, overflow()
	}
	return segments(text, seg), v, nil
}
