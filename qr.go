// Copyright 2025 The qr Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qr encodes QR codes.
*/
package qr

import (
	"errors"

	"github.com/dnalor/qr/coding"
	"github.com/dnalor/qr/split"
)

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level = coding.Level

// QR error correction levels.
const (
	L = coding.L // 20% redundant
	M = coding.M // 38% redundant
	Q = coding.Q // 55% redundant
	H = coding.H // 65% redundant
)

// ErrArgs is returned when rendering a Code with invalid parameters.
var ErrArgs = errors.New("qr: invalid arguments")

// A Code is an encoded QR code with rendering parameters.
type Code struct {
	*coding.Code

	Scale   int  // image pixels per module
	Border  int  // quiet zone width in modules
	Reverse bool // reverse colours
}

func (c *Code) isValid() bool {
	return c.Code != nil && c.Scale > 0 && c.Border >= 0
}

// Options control encoding beyond the error correction level.
// The zero value selects the version, segment modes and mask
// automatically.
type Options struct {
	// MinVersion and MaxVersion restrict the QR version.  Zero
	// values default to 1 and 40.  Setting both to the same version
	// forces it.
	MinVersion coding.Version
	MaxVersion coding.Version

	// Mode forces a single segment of the given mode instead of
	// splitting the text into segments automatically.
	Mode coding.Mode

	// BoostECC raises the error correction level beyond the
	// requested one when the text still fits the chosen version.
	BoostECC bool
}

// Encode returns an encoding of text at the given error correction
// level, at the smallest version the text fits.
func Encode(text string, level Level) (*Code, error) {
	return EncodeOptions(text, level, Options{})
}

// EncodeBinary is like Encode but encodes raw data in a single byte
// mode segment.
func EncodeBinary(data []byte, level Level) (*Code, error) {
	return EncodeOptions(string(data), level, Options{Mode: coding.Byte})
}

// EncodeOptions returns an encoding of text at the given error
// correction level, subject to opt.
func EncodeOptions(text string, level Level, opt Options) (*Code, error) {
	minv, maxv := opt.MinVersion, opt.MaxVersion
	if minv == 0 {
		minv = coding.MinVersion
	}
	if maxv == 0 {
		maxv = coding.MaxVersion
	}

	var (
		segs []coding.Segment
		v    coding.Version
		err  error
	)
	if opt.Mode == coding.ModeAuto {
		segs, v, err = split.Split(text, level, minv, maxv)
	} else {
		seg := coding.Segment{Text: text, Mode: opt.Mode}
		if v, err = fit(seg, level, minv, maxv); err == nil {
			segs = []coding.Segment{seg}
		}
	}
	if err != nil {
		return nil, err
	}

	if opt.BoostECC {
		level = boost(segs, v, level)
	}
	cc, err := coding.Encode(v, level, -1, segs...)
	if err != nil {
		return nil, err
	}
	return &Code{Code: cc, Scale: 4, Border: 4}, nil
}

// fit returns the smallest version between minv and maxv fitting seg
// at the given level.
func fit(seg coding.Segment, level Level, minv, maxv coding.Version) (coding.Version, error) {
	if !level.IsValid() {
		return 0, coding.ErrLevel
	}
	if !minv.IsValid() || !maxv.IsValid() || minv > maxv {
		return 0, coding.ErrVersion
	}
	if !seg.IsValid() {
		return 0, coding.SegmentError(seg)
	}
	for v := minv; v <= maxv; v++ {
		if v.Fits(level, seg.EncodedLength(v.SizeClass())) {
			return v, nil
		}
	}
	if minv == maxv {
		return 0, coding.ErrInvalidConfig
	}
	return 0, coding.ErrDataTooLong
}

// boost returns the highest error correction level, at least level,
// at which segs still fit version v.
func boost(segs []coding.Segment, v coding.Version, level Level) Level {
	class := v.SizeClass()
	bits := 0
	for _, seg := range segs {
		bits += seg.EncodedLength(class)
	}
	for level < coding.H && v.Fits(level+1, bits) {
		level++
	}
	return level
}
