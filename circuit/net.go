package circuit

import "math"

// Net is an ordered sequence of (block, pin) pairs plus a weight.
// Nets with fewer than 2 pins contribute nothing; nets with pin-count
// at or above the configured ignore-threshold are skipped entirely
// (power/clock guard, §3). Grounded on original_source/dali/circuit/net.h.
type Net struct {
	Pins   []BlockPin
	Weight float64

	// cached axis-extremal pin indices into Pins, refreshed at the
	// top of every B2B build (§9 "extreme-pin caching" — never reused
	// across axes).
	maxX, minX int
	maxY, minY int
}

// PinCount returns the number of pins on the net.
func (n *Net) PinCount() int { return len(n.Pins) }

// InvP returns the inverse-p factor w/(p-1), used to weight every
// pairwise coefficient emitted for this net (§3). Guarded against p<2.
func (n *Net) InvP() float64 {
	p := len(n.Pins)
	if p < 2 {
		return 0
	}
	return n.Weight / float64(p-1)
}

// UpdateMaxMinX recomputes the cached max/min-x pin indices using the
// blocks' current absolute pin-x positions. Touches only LLX (via
// Block.AbsPinX), never LLY, to keep the X and Y builds from racing
// on each other's axis (§5).
func (n *Net) UpdateMaxMinX(blocks []Block) {
	maxV, minV := math.Inf(-1), math.Inf(1)
	for i, bp := range n.Pins {
		v := blocks[bp.BlockIdx].AbsPinX(bp.PinIdx)
		if v > maxV {
			maxV = v
			n.maxX = i
		}
		if v < minV {
			minV = v
			n.minX = i
		}
	}
}

// UpdateMaxMinY recomputes the cached max/min-y pin indices using the
// blocks' current absolute pin-y positions. Touches only LLY, never
// LLX.
func (n *Net) UpdateMaxMinY(blocks []Block) {
	maxV, minV := math.Inf(-1), math.Inf(1)
	for i, bp := range n.Pins {
		v := blocks[bp.BlockIdx].AbsPinY(bp.PinIdx)
		if v > maxV {
			maxV = v
			n.maxY = i
		}
		if v < minV {
			minV = v
			n.minY = i
		}
	}
}

// MaxXIdx, MinXIdx, MaxYIdx, MinYIdx return the cached extremal pin
// indices (into Pins) along each axis.
func (n *Net) MaxXIdx() int { return n.maxX }
func (n *Net) MinXIdx() int { return n.minX }
func (n *Net) MaxYIdx() int { return n.maxY }
func (n *Net) MinYIdx() int { return n.minY }

// HPWLX returns w*(max_pin_abs_x - min_pin_abs_x) using the cached
// extremal indices; callers must have called UpdateMaxMinX first.
func (n *Net) HPWLX(blocks []Block) float64 {
	if len(n.Pins) < 2 {
		return 0
	}
	xMax := blocks[n.Pins[n.maxX].BlockIdx].AbsPinX(n.Pins[n.maxX].PinIdx)
	xMin := blocks[n.Pins[n.minX].BlockIdx].AbsPinX(n.Pins[n.minX].PinIdx)
	return n.Weight * (xMax - xMin)
}

// HPWLY returns w*(max_pin_abs_y - min_pin_abs_y) using the cached
// extremal indices; callers must have called UpdateMaxMinY first.
func (n *Net) HPWLY(blocks []Block) float64 {
	if len(n.Pins) < 2 {
		return 0
	}
	yMax := blocks[n.Pins[n.maxY].BlockIdx].AbsPinY(n.Pins[n.maxY].PinIdx)
	yMin := blocks[n.Pins[n.minY].BlockIdx].AbsPinY(n.Pins[n.minY].PinIdx)
	return n.Weight * (yMax - yMin)
}
