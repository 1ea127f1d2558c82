package grid

import (
	"sort"

	"github.com/asyncvlsi/Dali-sub002/circuit"
)

// CoverArea returns the total area covered by the union of rects,
// merging overlaps via a sweep over x-coordinates so shared area is
// never double-counted (§4.E "computed via a coverage routine that
// merges overlapping rectangles into disjoint pieces before
// summing"). Implemented on the standard library: no pack example
// carries a 2-D rectangle-union routine, and this sweep is the
// textbook approach for the bin counts involved here (DESIGN.md).
func CoverArea(rects []circuit.RectI) uint64 {
	if len(rects) == 0 {
		return 0
	}
	if len(rects) == 1 {
		return uint64(rects[0].Area())
	}

	xs := make([]int, 0, 2*len(rects))
	for _, r := range rects {
		xs = append(xs, r.LLX, r.URX)
	}
	sort.Ints(xs)
	xs = uniqueSorted(xs)

	var total uint64
	for i := 0; i+1 < len(xs); i++ {
		x0, x1 := xs[i], xs[i+1]
		width := x1 - x0
		if width <= 0 {
			continue
		}
		var ys []int
		for _, r := range rects {
			if r.LLX <= x0 && r.URX >= x1 {
				ys = append(ys, r.LLY, r.URY)
			}
		}
		total += uint64(width) * mergedYHeight(ys)
	}
	return total
}

// mergedYHeight merges a list of [lo,hi) y-intervals (flattened as
// pairs) and returns their covered length.
func mergedYHeight(ys []int) uint64 {
	n := len(ys) / 2
	if n == 0 {
		return 0
	}
	type interval struct{ lo, hi int }
	ivs := make([]interval, n)
	for i := 0; i < n; i++ {
		ivs[i] = interval{ys[2*i], ys[2*i+1]}
	}
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].lo < ivs[j].lo })

	var height uint64
	curLo, curHi := ivs[0].lo, ivs[0].hi
	for _, iv := range ivs[1:] {
		if iv.lo > curHi {
			if curHi > curLo {
				height += uint64(curHi - curLo)
			}
			curLo, curHi = iv.lo, iv.hi
		} else if iv.hi > curHi {
			curHi = iv.hi
		}
	}
	if curHi > curLo {
		height += uint64(curHi - curLo)
	}
	return height
}

func uniqueSorted(xs []int) []int {
	out := xs[:0]
	for i, x := range xs {
		if i == 0 || x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return out
}
