package gplace

import (
	"math"

	"github.com/asyncvlsi/Dali-sub002/circuit"
	"github.com/asyncvlsi/Dali-sub002/linsolve"
)

// axis abstracts the X/Y-specific accessors so BuildProblem (§4.B) is
// written once instead of twice, the way the original's
// BuildProblemX/BuildProblemY pair otherwise duplicates ~100 lines
// verbatim. Each axis value below is stateless and safe to reuse.
type axis struct {
	absPin       func(blk *circuit.Block, pin int) float64
	offset       func(blk *circuit.Block, pin int) float64
	ll           func(blk *circuit.Block) float64
	ur           func(blk *circuit.Block) float64
	dim          func(blk *circuit.Block) float64
	setLL        func(blk *circuit.Block, v float64)
	regionLL     func(c *circuit.Circuit) float64
	regionUR     func(c *circuit.Circuit) float64
	updateMaxMin func(n *circuit.Net, blocks []circuit.Block)
	maxIdx       func(n *circuit.Net) int
	minIdx       func(n *circuit.Net) int
}

var axisX = axis{
	absPin:       (*circuit.Block).AbsPinX,
	offset:       func(blk *circuit.Block, pin int) float64 { x, _ := blk.PinOffset(pin); return x },
	ll:           func(blk *circuit.Block) float64 { return blk.LLX },
	ur:           func(blk *circuit.Block) float64 { return blk.URX() },
	dim:          func(blk *circuit.Block) float64 { return blk.Width() },
	setLL:        func(blk *circuit.Block, v float64) { blk.SetLLX(v) },
	regionLL:     (*circuit.Circuit).RegionLLX,
	regionUR:     (*circuit.Circuit).RegionURX,
	updateMaxMin: func(n *circuit.Net, blocks []circuit.Block) { n.UpdateMaxMinX(blocks) },
	maxIdx:       (*circuit.Net).MaxXIdx,
	minIdx:       (*circuit.Net).MinXIdx,
}

var axisY = axis{
	absPin:       (*circuit.Block).AbsPinY,
	offset:       func(blk *circuit.Block, pin int) float64 { _, y := blk.PinOffset(pin); return y },
	ll:           func(blk *circuit.Block) float64 { return blk.LLY },
	ur:           func(blk *circuit.Block) float64 { return blk.URY() },
	dim:          func(blk *circuit.Block) float64 { return blk.Height() },
	setLL:        func(blk *circuit.Block, v float64) { blk.SetLLY(v) },
	regionLL:     (*circuit.Circuit).RegionLLY,
	regionUR:     (*circuit.Circuit).RegionURY,
	updateMaxMin: func(n *circuit.Net, blocks []circuit.Block) { n.UpdateMaxMinY(blocks) },
	maxIdx:       (*circuit.Net).MaxYIdx,
	minIdx:       (*circuit.Net).MinYIdx,
}

// buildB2BProblem assembles the B2B quadratic coefficients for one
// axis into asm/b, per §4.B steps 1-6. eps is the axis epsilon
// (epsilon_factor * average movable cell dimension on that axis).
func buildB2BProblem(c *circuit.Circuit, ax axis, asm *linsolve.Assembler, b []float64, eps, centerWeightFactor float64) {
	asm.Start()
	n := len(c.Blocks)
	for i := range b {
		b[i] = 0
	}

	centerWeight := centerWeightFactor / math.Sqrt(float64(n))
	weightCenter := (ax.regionLL(c) + ax.regionUR(c)) / 2.0 * centerWeight

	for ni := range c.Nets {
		net := &c.Nets[ni]
		p := net.PinCount()
		if p < 2 || p >= c.NetIgnoreThreshold {
			continue
		}
		invP := net.InvP()
		ax.updateMaxMin(net, c.Blocks)
		maxI, minI := ax.maxIdx(net), ax.minIdx(net)

		bpMax := net.Pins[maxI]
		blkMax := &c.Blocks[bpMax.BlockIdx]
		locMax := ax.absPin(blkMax, bpMax.PinIdx)
		offMax := ax.offset(blkMax, bpMax.PinIdx)

		bpMin := net.Pins[minI]
		blkMin := &c.Blocks[bpMin.BlockIdx]
		locMin := ax.absPin(blkMin, bpMin.PinIdx)
		offMin := ax.offset(blkMin, bpMin.PinIdx)

		for pi, bp := range net.Pins {
			blk := &c.Blocks[bp.BlockIdx]
			loc := ax.absPin(blk, bp.PinIdx)
			off := ax.offset(blk, bp.PinIdx)
			movable := blk.IsMovable()

			if pi != maxI {
				w := invP / (math.Abs(loc-locMax) + eps)
				pairCoeff(asm, b, bp.BlockIdx, loc, off, movable, bpMax.BlockIdx, locMax, offMax, blkMax.IsMovable(), w)
			}
			if pi != maxI && pi != minI {
				w := invP / (math.Abs(loc-locMin) + eps)
				pairCoeff(asm, b, bp.BlockIdx, loc, off, movable, bpMin.BlockIdx, locMin, offMin, blkMin.IsMovable(), w)
			}
		}
	}

	for i := range c.Blocks {
		blk := &c.Blocks[i]
		if blk.IsFixed() {
			asm.Put(i, i, 1)
			b[i] = ax.ll(blk)
			continue
		}
		if ax.ll(blk) < ax.regionLL(c) || ax.ur(blk) > ax.regionUR(c) {
			asm.Put(i, i, centerWeight)
			b[i] += weightCenter
		}
	}
}

// pairCoeff emits the coefficients for one (i, extremal) pin pair, per
// §4.B step 4: both movable mirrors +/-w symmetrically; one fixed
// eliminates the movable's unknown against the fixed pin's absolute
// location; both fixed contributes nothing.
func pairCoeff(asm *linsolve.Assembler, b []float64, i int, locI, offI float64, movI bool, j int, locJ, offJ float64, movJ bool, w float64) {
	switch {
	case !movI && movJ:
		asm.Put(j, j, w)
		b[j] += (locI - offJ) * w
	case movI && !movJ:
		asm.Put(i, i, w)
		b[i] += (locJ - offI) * w
	case movI && movJ:
		asm.PutSym(i, j, w)
		diff := (offJ - offI) * w
		b[i] += diff
		b[j] -= diff
	}
	// both fixed: no-op (§4.B step 4 "both fixed: skip")
}
