package gplace

import (
	"math"

	"github.com/asyncvlsi/Dali-sub002/circuit"
	"github.com/asyncvlsi/Dali-sub002/config"
	"github.com/asyncvlsi/Dali-sub002/linsolve"
)

// anchorAlphaStep returns the schedule step for outer iteration iter,
// per §4.C: {0.005 for iter<5, 0.01 for iter<10, 0.02 for iter<15,
// 0.03 thereafter}.
func anchorAlphaStep(iter int) float64 {
	switch {
	case iter < 5:
		return 0.005
	case iter < 10:
		return 0.01
	case iter < 15:
		return 0.02
	default:
		return 0.03
	}
}

// buildAnchorProblem runs the configured net-model builder and then
// adds the anchor pseudo-edge for every movable cell (§4.C): weight
// alpha/(|pos-anchor|+eps), +w to the diagonal, anchor*w to b.
func buildAnchorProblem(c *circuit.Circuit, ax axis, asm *linsolve.Assembler, b []float64, eps, centerWeightFactor float64, anchor []float64, alpha float64, model config.NetModel) {
	buildNetModelProblem(c, ax, asm, b, eps, centerWeightFactor, model)
	for i := range c.Blocks {
		blk := &c.Blocks[i]
		if blk.IsFixed() {
			continue
		}
		pos := ax.ll(blk)
		w := alpha / (math.Abs(pos-anchor[i]) + eps)
		b[i] += anchor[i] * w
		asm.Put(i, i, w)
	}
}
