// Copyright 2025 The qr Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// maskAt reports whether the mask inverts the module at x, y.
// Masks are applied to data modules only.
func maskAt(mask, x, y int) bool {
	switch mask {
	case 0:
		return (x+y)%2 == 0
	case 1:
		return y%2 == 0
	case 2:
		return x%3 == 0
	case 3:
		return (x+y)%3 == 0
	case 4:
		return (x/3+y/2)%2 == 0
	case 5:
		return x*y%2+x*y%3 == 0
	case 6:
		return (x*y%2+x*y%3)%2 == 0
	case 7:
		return ((x+y)%2+x*y%3)%2 == 0
	}
	panic("qr: invalid mask")
}

// applyMask inverts the data modules selected by mask.  Applying the
// same mask twice restores the original code.
func (c *Code) applyMask(mask int) {
	for y := 0; y < c.Size; y++ {
		for x := 0; x < c.Size; x++ {
			if c.roles[y*c.Size+x] == Data && maskAt(mask, x, y) {
				c.modules[y*c.Size+x] = !c.modules[y*c.Size+x]
			}
		}
	}
}

// chooseMask tries all eight masks on c, redrawing the format
// information for each, and leaves the one with the lowest penalty
// score applied.  On a tie the lowest mask number wins.  It returns
// the chosen mask.
func (c *Code) chooseMask() int {
	best, bestScore := 0, -1
	for mask := 0; mask < 8; mask++ {
		c.applyMask(mask)
		c.drawFormat(mask)
		if score := c.penalty(); bestScore < 0 || score < bestScore {
			best, bestScore = mask, score
		}
		c.applyMask(mask) // revert
	}
	c.applyMask(best)
	c.drawFormat(best)
	c.Mask = best
	return best
}

// Penalty weights from the ISO/IEC 18004 mask evaluation rules.
const (
	penaltyN1 = 3  // runs of 5 or more same-colored modules
	penaltyN2 = 3  // 2×2 blocks of same-colored modules
	penaltyN3 = 40 // patterns resembling a finder pattern
	penaltyN4 = 10 // dark module imbalance
)

// penalty returns the mask evaluation score of c; lower is better.
func (c *Code) penalty() int {
	siz := c.Size
	at := func(x, y int) bool { return c.modules[y*siz+x] }
	var score, dark int

	// Rows and columns: adjacent runs and finder-like patterns.
	for i := 0; i < siz; i++ {
		score += c.linePenalty(func(j int) bool { return at(j, i) })
		score += c.linePenalty(func(j int) bool { return at(i, j) })
	}

	// 2×2 blocks of a single color.
	for y := 0; y < siz-1; y++ {
		for x := 0; x < siz-1; x++ {
			m := at(x, y)
			if m == at(x+1, y) && m == at(x, y+1) && m == at(x+1, y+1) {
				score += penaltyN2
			}
		}
	}

	for _, m := range c.modules {
		if m {
			dark++
		}
	}
	// Deviation of the dark module proportion from 50%, in steps
	// of 5%, rounded up.
	total := siz * siz
	k := (abs(dark*20-total*10)+total-1)/total - 1
	score += k * penaltyN4
	return score
}

// linePenalty scores one row or column of c: runs of 5 or more
// same-colored modules and patterns resembling a finder pattern.
func (c *Code) linePenalty(at func(int) bool) int {
	hist := finderPenalty{siz: c.Size}
	score := 0
	color, run := false, 0
	for i := 0; i < c.Size; i++ {
		if at(i) == color {
			if run++; run == 5 {
				score += penaltyN1
			} else if run > 5 {
				score++
			}
		} else {
			hist.add(run)
			if !color {
				score += hist.countPatterns() * penaltyN3
			}
			color, run = at(i), 1
		}
	}
	return score + hist.terminate(color, run)*penaltyN3
}

// finderPenalty keeps the lengths of the last seven same-colored runs
// on a line, newest first, to detect the 1:1:3:1:1 finder pattern with
// a light border of at least 4 modules on either side.
type finderPenalty struct {
	siz int
	run [7]int
}

func (h *finderPenalty) add(n int) {
	if h.run[0] == 0 {
		// The quiet zone around the code counts as a light run.
		n += h.siz
	}
	copy(h.run[1:], h.run[:6])
	h.run[0] = n
}

// countPatterns reports how many finder-like patterns end at the
// current position.  Call after pushing a light run.
func (h *finderPenalty) countPatterns() int {
	n := h.run[1]
	core := n > 0 && h.run[2] == n && h.run[3] == n*3 &&
		h.run[4] == n && h.run[5] == n
	score := 0
	if core && h.run[0] >= n*4 && h.run[6] >= n {
		score++
	}
	if core && h.run[6] >= n*4 && h.run[0] >= n {
		score++
	}
	return score
}

// terminate pushes the final run and the trailing light border and
// returns the finder-like patterns ending at the edge of the line.
func (h *finderPenalty) terminate(color bool, run int) int {
	if color {
		h.add(run)
		run = 0
	}
	h.add(run + h.siz)
	return h.countPatterns()
}
