// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package circuit holds the read-only netlist data model consumed by
// the placement core: cells (blocks), pins, nets, fixed macros,
// placement blockages, and the placement region. The core never
// parses LEF/DEF/bookshelf itself (§6); it only reads this model.
package circuit

import "github.com/cpmech/gosl/chk"

// Region is the rectangular placement area, in integer grid units.
type Region struct {
	Left, Bottom, Right, Top int
	RowHeight                int
}

// Width returns the region's horizontal extent.
func (r *Region) Width() int { return r.Right - r.Left }

// Height returns the region's vertical extent.
func (r *Region) Height() int { return r.Top - r.Bottom }

// Area returns the region's area.
func (r *Region) Area() int64 { return int64(r.Width()) * int64(r.Height()) }

// CenterX returns the x-coordinate of the region's center.
func (r *Region) CenterX() float64 { return float64(r.Left+r.Right) / 2.0 }

// CenterY returns the y-coordinate of the region's center.
func (r *Region) CenterY() float64 { return float64(r.Bottom+r.Top) / 2.0 }

// check validates the region is well-formed; called once at circuit
// construction time (§7 precondition failure).
func (r *Region) check() {
	if r.Right <= r.Left || r.Top <= r.Bottom {
		chk.Panic("invalid placement region: (%d,%d)-(%d,%d)", r.Left, r.Bottom, r.Right, r.Top)
	}
	if r.RowHeight <= 0 {
		chk.Panic("invalid row height: %d", r.RowHeight)
	}
}

// RectI is an axis-aligned integer rectangle, used for fixed blocks,
// placement blockages, and grid-bin geometry.
type RectI struct {
	LLX, LLY, URX, URY int
}

// IsOverlap returns true if the two rectangles share positive area.
func (r RectI) IsOverlap(o RectI) bool {
	return r.LLX < o.URX && o.LLX < r.URX && r.LLY < o.URY && o.LLY < r.URY
}

// Overlap returns the intersection rectangle of r and o. Callers must
// check IsOverlap first; an empty/degenerate result is returned
// otherwise.
func (r RectI) Overlap(o RectI) RectI {
	return RectI{
		LLX: maxInt(r.LLX, o.LLX),
		LLY: maxInt(r.LLY, o.LLY),
		URX: minInt(r.URX, o.URX),
		URY: minInt(r.URY, o.URY),
	}
}

// Area returns the rectangle's area, zero if degenerate.
func (r RectI) Area() int64 {
	w := r.URX - r.LLX
	h := r.URY - r.LLY
	if w <= 0 || h <= 0 {
		return 0
	}
	return int64(w) * int64(h)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
