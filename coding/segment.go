// Copyright 2025 The qr Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
)

// Encoding modes.
const (
	ModeAuto      Mode = iota // choose modes automatically
	Numeric                   // numeric mode, ASCII-compatible text
	Alphanumeric              // alphanumeric mode, ASCII-compatible text
	Byte                      // byte mode, any data
	Kanji                     // kanji mode, UTF-8 text
	ShiftJISKanji             // kanji mode, Shift JIS text
	ECI                       // eci mode, raw segment
)

// A Mode is a QR segment encoding mode.
type Mode int

// modeEncoder implements a QR segment encoding.
//
// The segment is validated using either valid or accepts.  Kanji has a
// transform function returning a ShiftJISKanji segment; the encoder
// transforms and revalidates before encoding.  enc3, enc2 and enc1
// return the encoding of 3, 2 or 1 source bytes and its length in
// bits; a non-nil encN is applied repeatedly while N bytes remain, in
// descending order of N.  If all are nil, each byte is encoded as
// 8 bits.
type modeEncoder struct {
	name      string
	indicator uint32  // 4 bit mode indicator
	countLen  [3]byte // character count field width per size class

	length    func(bytes, runes int) int // encoded data bits; nil: 8×bytes
	valid     func(string) bool          // nil: validate runes with accepts
	accepts   func(rune) bool            // nil: any rune
	cutRune   func(string) (rune, int)   // nil: utf8.DecodeRuneInString
	count     func(string) int           // nil: length in bytes
	transform func(string) (Segment, bool)

	enc3 func([3]byte) (uint32, int)
	enc2 func([2]byte) (uint32, int)
	enc1 func(byte) (uint32, int)
}

// Alphanumeric mode values for characters 0x20 to 0x5f;
// -1 marks characters outside the 45-character set.
var alnum = [64]int8{
	36, -1, -1, -1, 37, 38, -1, -1, -1, -1, 39, 40, -1, 41, 42, 43, // 0x20
	00, 01, 02, 03, 04, 05, 06, 07, 8, 9, 44, -1, -1, -1, -1, -1, // 0x30
	-1, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, // 0x40
	25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, -1, -1, -1, -1, -1, // 0x50
}

// IsAlphanumeric reports whether r belongs to the QR alphanumeric
// character set: digits, uppercase A-Z and " $%*+-./:".
func IsAlphanumeric(r rune) bool {
	return uint32(r)-0x20 < 0x40 && alnum[r-0x20] >= 0
}

// sjisKanjiValid reports whether the Shift JIS pair hi, lo is a
// double-byte character encodable in QR kanji mode.  The encodable
// range runs from 0x8140 to 0xebbf.
func sjisKanjiValid(hi, lo byte) bool {
	if lo < 0x40 || lo == 0x7f || lo > 0xfc {
		return false
	}
	switch {
	case hi >= 0x81 && hi <= 0x9f:
		return true
	case hi >= 0xe0 && hi < 0xeb:
		return true
	case hi == 0xeb:
		return lo <= 0xbf
	}
	return false
}

// IsKanji reports whether the Unicode rune r is encodable in QR kanji
// mode, that is, whether it maps to a Shift JIS double-byte character
// up to 0xebbf (JIS X 0208 ku-ten 86-33).
func IsKanji(r rune) bool {
	if r < 0x80 {
		return false
	}
	s, err := japanese.ShiftJIS.NewEncoder().String(string(r))
	return err == nil && len(s) == 2 && sjisKanjiValid(s[0], s[1])
}

var modes = [...]modeEncoder{
	Numeric: {
		name:      "numeric",
		indicator: 1,
		countLen:  [3]byte{10, 12, 14},
		length:    func(b, r int) int { return (10*b + 2) / 3 },
		accepts:   func(r rune) bool { return uint32(r-'0') < 10 },
		enc3: func(b [3]byte) (uint32, int) {
			return uint32(b[0]-'0')*100 + uint32(b[1]-'0')*10 +
				uint32(b[2]-'0'), 10
		},
		enc2: func(b [2]byte) (uint32, int) {
			return uint32(b[0]-'0')*10 + uint32(b[1]-'0'), 7
		},
		enc1: func(b byte) (uint32, int) {
			return uint32(b - '0'), 4
		},
	},
	Alphanumeric: {
		name:      "alphanumeric",
		indicator: 2,
		countLen:  [3]byte{9, 11, 13},
		length:    func(b, r int) int { return (11*b + 1) / 2 },
		accepts:   IsAlphanumeric,
		enc2: func(b [2]byte) (uint32, int) {
			return uint32(alnum[b[0]-0x20])*45 +
				uint32(alnum[b[1]-0x20]), 11
		},
		enc1: func(b byte) (uint32, int) {
			return uint32(alnum[b-0x20]), 6
		},
	},
	Byte: {
		name:      "byte",
		indicator: 4,
		countLen:  [3]byte{8, 16, 16},
	},
	Kanji: {
		name:      "kanji",
		indicator: 8,
		countLen:  [3]byte{8, 10, 12},
		length:    func(b, r int) int { return r * 13 },
		accepts:   IsKanji,
		transform: func(s string) (Segment, bool) {
			t, err := japanese.ShiftJIS.NewEncoder().String(s)
			return Segment{t, ShiftJISKanji}, err == nil
		},
	},
	ShiftJISKanji: {
		name:      "shift-jis-kanji",
		indicator: 8,
		countLen:  [3]byte{8, 10, 12},
		length:    func(b, r int) int { return b / 2 * 13 },
		count:     func(s string) int { return len(s) / 2 },
		cutRune: func(s string) (rune, int) {
			if len(s) > 1 {
				return rune(s[0])<<8 | rune(s[1]), 2
			}
			return rune(s[0]), 1
		},
		accepts: func(r rune) bool {
			return sjisKanjiValid(byte(r>>8), byte(r))
		},
		enc2: func(b [2]byte) (uint32, int) {
			// Subtract 0x8140 or 0xc140 and pack as hi*0xc0+lo.
			return uint32(b[0]&^0xc0)*0xc0 + uint32(b[1]) - 0x100, 13
		},
	},
	ECI: {
		name:      "eci",
		indicator: 7,
		accepts:   func(rune) bool { return false },
		valid: func(s string) bool {
			ok := s != "" && len(s) == max(1, int(s[0]>>6))
			if ok && len(s) == 3 {
				ok = uint32(s[0]&^0xc0)<<16|uint32(s[1])<<8|
					uint32(s[2]) < 1e6
			}
			return ok
		},
	},
}

// ECISegment returns an ECI mode segment setting the Extended Channel
// Interpretation assignment number, encoded as a 1, 2 or 3 byte
// designator.  Assignment numbers run up to 999999.
func ECISegment(eci uint32) (Segment, error) {
	var s string
	switch {
	case eci < 1<<7:
		s = string([]byte{byte(eci)})
	case eci < 1<<14:
		s = string([]byte{0x80 | byte(eci>>8), byte(eci)})
	case eci < 1e6:
		s = string([]byte{0xc0 | byte(eci>>16), byte(eci >> 8), byte(eci)})
	default:
		return Segment{}, ErrInvalidConfig
	}
	return Segment{s, ECI}, nil
}

func getMode(mode Mode) *modeEncoder {
	if Numeric <= mode && int(mode) < len(modes) {
		return &modes[mode]
	}
	return nil
}

func (mode Mode) String() string {
	if mode == ModeAuto {
		return "auto"
	}
	if m := getMode(mode); m != nil {
		return m.name
	}
	return strconv.Itoa(int(mode))
}

// Is reports whether r is encodable in mode.
func Is(r rune, mode Mode) bool {
	m := getMode(mode)
	return m != nil && (m.accepts == nil || m.accepts(r))
}

// Length returns the length in bits of a valid string of the given
// length in bytes and runes encoded in mode at the given QR version
// size class, including the header.  Length returns 0 if and only if
// mode is invalid.
func (mode Mode) Length(bytes, runes, class int) int {
	m := getMode(mode)
	if m == nil {
		return 0
	}
	return m.lenBits(bytes, runes, class)
}

func (m *modeEncoder) lenBits(bytes, runes, class int) int {
	n := 4 + int(m.countLen[class])
	if m.length != nil {
		return n + m.length(bytes, runes)
	}
	return n + bytes*8
}

// A Segment describes a QR code segment.
type Segment struct {
	Text string // data to encode
	Mode Mode   // encoding mode
}

// SegmentError represents a Segment holding a character not
// representable in its Mode.
type SegmentError Segment

func (e SegmentError) Error() string {
	if m := getMode(e.Mode); m != nil {
		return fmt.Sprintf("qr: non-%s string %#q", m.name, e.Text)
	}
	return fmt.Sprintf("qr: invalid mode %d", e.Mode)
}

// ModeError represents an invalid Mode number.
type ModeError Mode

func (e ModeError) Error() string {
	return fmt.Sprintf("qr: invalid mode %s", Mode(e))
}

// isValid reports whether seg is encodable.
func (m *modeEncoder) isValid(seg Segment) bool {
	if f := m.valid; f != nil {
		return f(seg.Text)
	}
	is := m.accepts
	if is == nil {
		return true
	}
	cut := m.cutRune
	if cut == nil {
		cut = utf8.DecodeRuneInString
	}
	for s := seg.Text; s != ""; {
		r, sz := cut(s)
		s = s[sz:]
		if !is(r) {
			return false
		}
	}
	return true
}

// IsValid reports whether seg is encodable.
func (seg Segment) IsValid() bool {
	if m := getMode(seg.Mode); m != nil {
		return m.isValid(seg)
	}
	return false
}

// EncodedLength returns the encoded length in bits of seg in the given
// QR version size class, including the header.  EncodedLength returns
// 0 if and only if the mode is invalid.  The segment is not validated.
func (seg Segment) EncodedLength(class int) int {
	m := getMode(seg.Mode)
	if m == nil {
		return 0
	}
	var runes int
	if m.length != nil {
		if cut := m.cutRune; cut != nil {
			for s := seg.Text; s != ""; runes++ {
				_, sz := cut(s)
				s = s[sz:]
			}
		} else {
			runes = utf8.RuneCountInString(seg.Text)
		}
	}
	return m.lenBits(len(seg.Text), runes, class)
}

// transform transforms seg for encoding.  The transformed segment is
// not validated.
func (seg Segment) transform() (Segment, *modeEncoder, error) {
	m := getMode(seg.Mode)
	if m == nil {
		return Segment{}, nil, ModeError(seg.Mode)
	}
	if m.transform == nil {
		return seg, m, nil
	}
	if !m.isValid(seg) {
		return Segment{}, nil, SegmentError(seg)
	}
	ts, ok := m.transform(seg.Text)
	if !ok {
		return Segment{}, nil, SegmentError(seg)
	}
	return ts, getMode(ts.Mode), nil
}

// Encode writes seg encoded for the given QR version size class to b.
func (seg Segment) Encode(b *Bits, class int) error {
	ts, m, err := seg.transform()
	if err != nil {
		return err
	}
	if !m.isValid(ts) {
		return SegmentError(seg)
	}
	// write header
	s := ts.Text
	b.Write(m.indicator, 4)
	w := len(s)
	if m.count != nil {
		w = m.count(s)
	}
	b.Write(uint32(w), int(m.countLen[class]))
	// encode the string
	if m.enc3 == nil && m.enc2 == nil && m.enc1 == nil {
		for i := 0; i < len(s); i++ {
			b.Write(uint32(s[i]), 8)
		}
		return nil
	}
	if enc := m.enc3; enc != nil {
		for len(s) >= 3 {
			b.Write(enc([3]byte{s[0], s[1], s[2]}))
			s = s[3:]
		}
	}
	if enc := m.enc2; enc != nil {
		for len(s) >= 2 {
			b.Write(enc([2]byte{s[0], s[1]}))
			s = s[2:]
		}
	}
	if enc := m.enc1; enc != nil {
		for len(s) >= 1 {
			b.Write(enc(s[0]))
			s = s[1:]
		}
	}
	if s != "" {
		panic("qr: " + m.name + " mode internal error")
	}
	return nil
}
