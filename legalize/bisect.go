package legalize

import (
	"math"
	"sort"

	"github.com/asyncvlsi/Dali-sub002/circuit"
	"github.com/asyncvlsi/Dali-sub002/grid"
)

// bisect drains an explicit FIFO queue of boxes (§4.H, §9
// "coroutine-free iteration... explicit FIFO queue of boxes, not
// recursive calls"), routing single-bin boxes to leaf placement and
// splitting the rest by grid-bin white space and cell area.
func bisect(m *grid.Mesh, c *circuit.Circuit, root *box) {
	queue := []*box{root}
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]

		if b.ll == b.ur || len(b.cells) <= 1 {
			placeLeaf(c, b)
			continue
		}

		cutX := chooseCutDirection(b)
		lowBin, highBin, ok := splitBins(m, b, cutX)
		if !ok {
			placeLeaf(c, b)
			continue
		}

		lowBox := newBoxFromBins(m, c, b.ll, upperOf(lowBin, cutX, b))
		highBox := newBoxFromBins(m, c, lowerOf(highBin, cutX, b), b.ur)

		cutLine := bisectCellAreaLine(c, b, cutX, lowBox.totalWhiteSpace, highBox.totalWhiteSpace)
		assignCellsByLine(c, b, lowBox, highBox, cutX, cutLine)

		queue = append(queue, lowBox, highBox)
	}
}

// chooseCutDirection prefers cutting the longer dimension; when
// fixed-block cut lines exist along only one axis, that axis wins
// instead (§4.H step 3). It returns true for a horizontal cut line
// (splitting the box's height), the cutX convention of splitBins and
// bisectCellAreaLine.
func chooseCutDirection(b *box) bool {
	if len(b.horizontalCuts) > 0 && len(b.verticalCuts) == 0 {
		return true
	}
	if len(b.verticalCuts) > 0 && len(b.horizontalCuts) == 0 {
		return false
	}
	return b.height() >= b.width()
}

// splitBins finds the bin index (along the cut axis) whose cumulative
// white space from the box's low edge is closest to half the box's
// total white space, breaking ties toward the smaller index (§4.H
// step 4). Returns the bin index marking the end of the low half.
func splitBins(m *grid.Mesh, b *box, cutX bool) (lowEnd, highStart grid.Index, ok bool) {
	if cutX {
		if b.ll.Y == b.ur.Y {
			return grid.Index{}, grid.Index{}, false
		}
		best := b.ll.Y
		bestErr := math.Inf(1)
		for y := b.ll.Y; y < b.ur.Y; y++ {
			ws := m.WhiteSpace(b.ll, grid.Index{X: b.ur.X, Y: y})
			ratio := float64(ws) / float64(b.totalWhiteSpace)
			err := math.Abs(ratio - 0.5)
			if err < bestErr {
				bestErr = err
				best = y
			}
			if ratio > 0.5 {
				break
			}
		}
		return grid.Index{X: b.ur.X, Y: best}, grid.Index{X: b.ll.X, Y: best + 1}, true
	}

	if b.ll.X == b.ur.X {
		return grid.Index{}, grid.Index{}, false
	}
	best := b.ll.X
	bestErr := math.Inf(1)
	for x := b.ll.X; x < b.ur.X; x++ {
		ws := m.WhiteSpace(b.ll, grid.Index{X: x, Y: b.ur.Y})
		ratio := float64(ws) / float64(b.totalWhiteSpace)
		err := math.Abs(ratio - 0.5)
		if err < bestErr {
			bestErr = err
			best = x
		}
		if ratio > 0.5 {
			break
		}
	}
	return grid.Index{X: best, Y: b.ur.Y}, grid.Index{X: best + 1, Y: b.ll.Y}, true
}

func upperOf(end grid.Index, cutX bool, b *box) grid.Index {
	if cutX {
		return grid.Index{X: b.ur.X, Y: end.Y}
	}
	return grid.Index{X: end.X, Y: b.ur.Y}
}

func lowerOf(start grid.Index, cutX bool, b *box) grid.Index {
	if cutX {
		return grid.Index{X: b.ll.X, Y: start.Y}
	}
	return grid.Index{X: start.X, Y: b.ll.Y}
}

// bisectCellAreaLine finds, by 20 iterations of bisection on
// continuous coordinates, the line splitting the box's cell area in
// proportion to the two children's white spaces (§4.H step 5).
func bisectCellAreaLine(c *circuit.Circuit, b *box, cutX bool, loWS, hiWS uint64) float64 {
	ratio := 1 + float64(hiWS)/float64(loWS)
	var lo, hi float64
	if cutX {
		lo, hi = float64(b.bottom), float64(b.top)
	} else {
		lo, hi = float64(b.left), float64(b.right)
	}

	areaBelow := func(line float64) uint64 {
		var a uint64
		for _, bi := range b.cells {
			blk := &c.Blocks[bi]
			var coord float64
			if cutX {
				coord = blk.CenterY()
			} else {
				coord = blk.CenterX()
			}
			if coord < line {
				a += uint64(blk.Area())
			}
		}
		return a
	}

	mid := (lo + hi) / 2
	for i := 0; i < 20; i++ {
		mid = (lo + hi) / 2
		areaLow := areaBelow(mid)
		if areaLow == 0 {
			lo = mid
			continue
		}
		tmpRatio := float64(b.totalCellArea) / float64(areaLow)
		switch {
		case ratio > tmpRatio:
			hi = mid
		case ratio < tmpRatio:
			lo = mid
		default:
			return mid
		}
	}
	return mid
}

// assignCellsByLine replaces the children's cell lists (and cell
// areas) with the parent's cells split by the cut line, so every
// parent cell lands in exactly one child.
func assignCellsByLine(c *circuit.Circuit, b, lowBox, highBox *box, cutX bool, line float64) {
	lowBox.cells, highBox.cells = nil, nil
	lowBox.totalCellArea, highBox.totalCellArea = 0, 0
	for _, bi := range b.cells {
		blk := &c.Blocks[bi]
		var coord float64
		if cutX {
			coord = blk.CenterY()
		} else {
			coord = blk.CenterX()
		}
		if coord < line {
			lowBox.cells = append(lowBox.cells, bi)
			lowBox.totalCellArea += uint64(blk.Area())
		} else {
			highBox.cells = append(highBox.cells, bi)
			highBox.totalCellArea += uint64(blk.Area())
		}
	}
}

// placeLeaf assigns final coordinates to every cell in a leaf box
// (§4.I): a single cell goes to the box center; otherwise cells are
// sorted along the longer axis and recursively halved by cumulative
// area until each sub-box holds one cell. Written as an explicit
// stack, not recursion (§9).
func placeLeaf(c *circuit.Circuit, b *box) {
	if len(b.cells) == 0 {
		return
	}
	if len(b.cells) == 1 {
		placeCellAt(c, b.cells[0], (float64(b.left)+float64(b.right))/2, (float64(b.bottom)+float64(b.top))/2)
		return
	}

	leafHoriz := chooseLeafAxis(b)

	type sub struct {
		cells                    []int
		left, right, bottom, top int
	}
	stack := []sub{{b.cells, b.left, b.right, b.bottom, b.top}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(s.cells) == 1 {
			placeCellAt(c, s.cells[0], (float64(s.left)+float64(s.right))/2, (float64(s.bottom)+float64(s.top))/2)
			continue
		}

		horiz := leafHoriz
		sorted := append([]int(nil), s.cells...)
		if horiz {
			sort.Slice(sorted, func(i, j int) bool {
				return c.Blocks[sorted[i]].CenterY() < c.Blocks[sorted[j]].CenterY()
			})
		} else {
			sort.Slice(sorted, func(i, j int) bool {
				return c.Blocks[sorted[i]].CenterX() < c.Blocks[sorted[j]].CenterX()
			})
		}

		var total float64
		for _, bi := range sorted {
			total += c.Blocks[bi].Area()
		}
		var cum float64
		cutIdx := 0
		bestErr := math.Inf(1)
		for i, bi := range sorted {
			cum += c.Blocks[bi].Area()
			err := math.Abs(cum/total - 0.5)
			if err < bestErr {
				bestErr = err
				cutIdx = i
			}
		}

		low := sorted[:cutIdx+1]
		high := sorted[cutIdx+1:]
		if len(high) == 0 {
			placeCellAt(c, sorted[len(sorted)-1], (float64(s.left)+float64(s.right))/2, (float64(s.bottom)+float64(s.top))/2)
			continue
		}

		if horiz {
			splitY := rowSnappedSplit(c, s.bottom, s.top, s.cells)
			stack = append(stack,
				sub{low, s.left, s.right, s.bottom, splitY},
				sub{high, s.left, s.right, splitY, s.top})
		} else {
			splitX := (s.left + s.right) / 2
			stack = append(stack,
				sub{low, s.left, splitX, s.bottom, s.top},
				sub{high, splitX, s.right, s.bottom, s.top})
		}
	}
}

// rowSnappedSplit finds the horizontal cut line for a leaf box whose
// height spans an integer number of standard rows (§4.I), snapping to
// the row boundary floor(rowNum/2) rows above the bottom instead of a
// raw arithmetic midpoint. Grounded on
// original_source/dali/placer/global_placer/box_bin.cc's
// update_cut_point_cell_list_low_high_leaf: row_num := box_height /
// ave_blk_height, cut := bottom + floor(row_num/2)*ave_blk_height.
// RowHeight is the row unit; when it doesn't fit inside the box (a
// macro-only leaf, say), the box's own average cell height stands in.
func rowSnappedSplit(c *circuit.Circuit, bottom, top int, cells []int) int {
	boxHeight := top - bottom
	rowH := c.Region.RowHeight
	if rowH <= 0 || rowH > boxHeight {
		rowH = int(math.Round(averageCellHeight(c, cells)))
		if rowH < 1 {
			rowH = 1
		}
	}
	rowNum := boxHeight / rowH
	if rowNum < 1 {
		rowNum = 1
	}
	return bottom + (rowNum/2)*rowH
}

// averageCellHeight returns the mean footprint height of the given
// cell indices.
func averageCellHeight(c *circuit.Circuit, cells []int) float64 {
	if len(cells) == 0 {
		return 0
	}
	var total float64
	for _, bi := range cells {
		total += c.Blocks[bi].Height()
	}
	return total / float64(len(cells))
}

// chooseLeafAxis applies the §4.I fallback: when fixed-block cut
// lines exist, split along whichever direction has more of them.
func chooseLeafAxis(b *box) bool {
	if len(b.horizontalCuts) > 0 || len(b.verticalCuts) > 0 {
		return b.moreHorizontalCutlines()
	}
	return b.height() >= b.width()
}

func placeCellAt(c *circuit.Circuit, idx int, cx, cy float64) {
	blk := &c.Blocks[idx]
	if blk.IsFixed() {
		return
	}
	blk.SetLoc(cx-blk.Width()/2, cy-blk.Height()/2)
	c.ClampToRegion(idx)
}
