package gplace

import (
	"math"

	"github.com/asyncvlsi/Dali-sub002/circuit"
	"github.com/asyncvlsi/Dali-sub002/config"
	"github.com/asyncvlsi/Dali-sub002/linsolve"
)

// buildNetModelProblem dispatches to the configured net model (§6
// net_model, component K): the default B2B bound-to-bound builder, or
// one of the block-pair-nets decompositions.
func buildNetModelProblem(c *circuit.Circuit, ax axis, asm *linsolve.Assembler, b []float64, eps, centerWeightFactor float64, model config.NetModel) {
	if model == config.NetModelB2B {
		buildB2BProblem(c, ax, asm, b, eps, centerWeightFactor)
		return
	}
	buildPairNetProblem(c, ax, asm, b, eps, centerWeightFactor, model)
}

// buildPairNetProblem assembles the quadratic coefficients from every
// net's driver-load pin pairs instead of just its two extremal pins
// (§4.K, component K): star weights every pair uniformly (the
// clique/star approximation of a net), HPWL instead reuses B2B's
// distance-regularized weight on every pair rather than only the
// bounding pair, and star-HPWL averages the two. Region-centering and
// fixed-cell rows are shared with the B2B builder.
func buildPairNetProblem(c *circuit.Circuit, ax axis, asm *linsolve.Assembler, b []float64, eps, centerWeightFactor float64, model config.NetModel) {
	asm.Start()
	n := len(c.Blocks)
	for i := range b {
		b[i] = 0
	}

	centerWeight := centerWeightFactor / math.Sqrt(float64(n))
	weightCenter := (ax.regionLL(c) + ax.regionUR(c)) / 2.0 * centerWeight

	pairs := circuit.BuildBlockPairNets(c.Nets, c.Blocks, func(net *circuit.Net, bi, bj int) float64 {
		if net.PinCount() < 2 || net.PinCount() >= c.NetIgnoreThreshold {
			return 0
		}
		invP := net.InvP()
		posI := ax.ll(&c.Blocks[bi])
		posJ := ax.ll(&c.Blocks[bj])
		star := invP
		hpwl := invP / (math.Abs(posI-posJ) + eps)
		switch model {
		case config.NetModelStar:
			return star
		case config.NetModelHPWL:
			return hpwl
		default: // NetModelStarHPWL
			return (star + hpwl) / 2
		}
	})

	for _, rec := range pairs {
		i, j := rec.Key.I, rec.Key.J
		blkI, blkJ := &c.Blocks[i], &c.Blocks[j]
		w := -rec.E01 // e01/e10 carry -w by BuildBlockPairNets's convention
		pairCoeff(asm, b, i, ax.ll(blkI), 0, blkI.IsMovable(), j, ax.ll(blkJ), 0, blkJ.IsMovable(), w)
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
