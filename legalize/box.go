// Package legalize implements the look-ahead rough legalizer's
// minimum-box finder, recursive bisection, and leaf placement
// (§4.G-I), grounded on
// original_source/dali/placer/global_placer/box_bin.{h,cc}.
package legalize

import (
	"math"

	"github.com/asyncvlsi/Dali-sub002/circuit"
	"github.com/asyncvlsi/Dali-sub002/grid"
)

// box is a rectangular region of the grid-bin mesh carrying its own
// cell sub-list, mirroring BoxBin. Geometry is tracked both in bin
// indices (ll/ur) and physical coordinates (left/right/bottom/top),
// since bisection cuts bins but leaf placement cuts coordinates.
type box struct {
	ll, ur Index

	left, right, bottom, top int

	totalWhiteSpace uint64
	totalCellArea   uint64

	cells []int // block indices

	fixedRects []circuit.RectI

	verticalCuts   []int
	horizontalCuts []int
}

// Index aliases grid.Index so legalize's box definitions read
// naturally without a grid. prefix on every field access.
type Index = grid.Index

// newBoxFromBins constructs a box spanning the closed bin-index
// rectangle [ll,ur], pulling cell lists and fixed content from every
// bin it covers; the bins themselves are left unchanged. bisect then
// replaces each child's cell list with its share of the parent's
// cells (assignCellsByLine), so a cell belongs to exactly one box at
// a time.
func newBoxFromBins(m *grid.Mesh, c *circuit.Circuit, ll, ur Index) *box {
	b := &box{ll: ll, ur: ur}
	b.left = m.Bins[ll.X][ll.Y].Left
	b.bottom = m.Bins[ll.X][ll.Y].Bottom
	b.right = m.Bins[ur.X][ur.Y].Right
	b.top = m.Bins[ur.X][ur.Y].Top
	b.totalWhiteSpace = m.WhiteSpace(ll, ur)

	for x := ll.X; x <= ur.X; x++ {
		for y := ll.Y; y <= ur.Y; y++ {
			bin := &m.Bins[x][y]
			b.cells = append(b.cells, bin.Cells...)
			b.totalCellArea += bin.CellArea
		}
	}

	boxRect := circuit.RectI{LLX: b.left, LLY: b.bottom, URX: b.right, URY: b.top}
	for i := range c.Blocks {
		blk := &c.Blocks[i]
		if blk.IsMovable() {
			continue
		}
		r := circuit.RectI{
			LLX: int(math.Round(blk.LLX)), LLY: int(math.Round(blk.LLY)),
			URX: int(math.Round(blk.URX())), URY: int(math.Round(blk.URY())),
		}
		if boxRect.IsOverlap(r) {
			b.fixedRects = append(b.fixedRects, r)
		}
	}
	for _, bl := range c.Blockages {
		if boxRect.IsOverlap(bl.Rect) {
			b.fixedRects = append(b.fixedRects, bl.Rect)
		}
	}
	b.updateCutlines()
	return b
}

// updateCutlines records every fixed-rectangle boundary strictly
// inside the box, sorted ascending, used to bias cut-direction choice
// (§4.H step 3) and the leaf fallback (§4.I).
func (b *box) updateCutlines() {
	b.verticalCuts = b.verticalCuts[:0]
	b.horizontalCuts = b.horizontalCuts[:0]
	for _, r := range b.fixedRects {
		if b.left < r.LLX && r.LLX < b.right {
			b.verticalCuts = append(b.verticalCuts, r.LLX)
		}
		if b.left < r.URX && r.URX < b.right {
			b.verticalCuts = append(b.verticalCuts, r.URX)
		}
		if b.bottom < r.LLY && r.LLY < b.top {
			b.horizontalCuts = append(b.horizontalCuts, r.LLY)
		}
		if b.bottom < r.URY && r.URY < b.top {
			b.horizontalCuts = append(b.horizontalCuts, r.URY)
		}
	}
	sortInts(b.verticalCuts)
	sortInts(b.horizontalCuts)
}

func (b *box) moreHorizontalCutlines() bool {
	return len(b.horizontalCuts) > len(b.verticalCuts)
}

func (b *box) width() int  { return b.right - b.left }
func (b *box) height() int { return b.top - b.bottom }

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}
