package gplace

import (
	"math"
	"sync"

	"github.com/asyncvlsi/Dali-sub002/circuit"
	"github.com/asyncvlsi/Dali-sub002/config"
	"github.com/asyncvlsi/Dali-sub002/linsolve"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// reserveCapacity estimates the triplet capacity of §9:
// Sigma(2(p-2)+1)*4 over nets, plus 2n extra entries for anchors and
// region-centering.
func reserveCapacity(c *circuit.Circuit) int {
	cap64 := 0
	for i := range c.Nets {
		p := c.Nets[i].PinCount()
		if p > 1 {
			cap64 += (2*(p-2) + 1) * 4
		}
	}
	cap64 += 2 * len(c.Blocks)
	return cap64
}

// Optimizer drives the B2B/anchor quadratic optimizer (components B,
// C, D), grounded on B2BHpwlOptimizer in
// original_source/dali/placer/global_placer/hpwl_optimizer.cc.
type Optimizer struct {
	c   *circuit.Circuit
	cfg *config.Config

	asmX, asmY *linsolve.Assembler
	bx, by     []float64
	vx, vy     []float64

	xAnchor, yAnchor []float64
	alpha            float64

	widthEps, heightEps float64

	curIter int

	LowerBoundHpwlX []float64
	LowerBoundHpwlY []float64
	LowerBoundHpwl  []float64
}

// NewOptimizer allocates and reserves all matrices/vectors for n
// movable-plus-fixed cells, per §4.D's "resize/reset" step.
func NewOptimizer(c *circuit.Circuit, cfg *config.Config) *Optimizer {
	n := len(c.Blocks)
	capHint := reserveCapacity(c)
	o := &Optimizer{
		c:       c,
		cfg:     cfg,
		asmX:    linsolve.NewAssembler(n, capHint),
		asmY:    linsolve.NewAssembler(n, capHint),
		bx:      make([]float64, n),
		by:      make([]float64, n),
		vx:      make([]float64, n),
		vy:      make([]float64, n),
		xAnchor: make([]float64, n),
		yAnchor: make([]float64, n),
	}
	o.updateEpsilon()
	return o
}

// updateEpsilon recomputes the axis epsilons from the average movable
// cell dimension (§4.B step 3, §9 "extreme-pin caching" companion).
func (o *Optimizer) updateEpsilon() {
	o.widthEps = o.c.AveMovBlkWidth() * o.cfg.EpsilonFactor
	o.heightEps = o.c.AveMovBlkHeight() * o.cfg.EpsilonFactor
	if o.widthEps <= 0 {
		o.widthEps = 1e-5
	}
	if o.heightEps <= 0 {
		o.heightEps = 1e-5
	}
}

// SetIteration records the current outer iteration, used by the
// anchor alpha schedule (§4.C).
func (o *Optimizer) SetIteration(iter int) { o.curIter = iter }

// optimizeAxisMetric runs the inner CG rounds for one axis until the
// evaluated-HPWL series converges or oscillates (§4.A), rebuilding the
// matrix once per call (the caller has already filled asm/b via
// build). evalAxis reads back the evaluated HPWL for this axis after
// each round. Returns the final evaluated HPWL for this axis.
func (o *Optimizer) optimizeAxisMetric(ax axis, asm *linsolve.Assembler, b, v []float64, evalAxis func() float64) float64 {
	m := asm.Build()
	maxRounds := o.cfg.CgIterationMaxNum / o.cfg.CgIteration
	if maxRounds < 1 {
		maxRounds = 1
	}
	var history []float64
	for i := 0; i < maxRounds; i++ {
		linsolve.CG(m, b, v, o.cfg.CgIteration, o.cfg.CgTolerance)
		for j := range o.c.Blocks {
			ax.setLL(&o.c.Blocks[j], v[j])
		}
		eval := evalAxis()
		history = append(history, eval)
		if len(history) >= 3 {
			if seriesConverge(history, 3, o.cfg.CgStopCriterion) {
				break
			}
			if seriesOscillate(history, 5) {
				io.Pf("gplace: CG oscillation detected\n")
				break
			}
		}
	}
	if len(history) == 0 {
		chk.Panic("gplace: CG produced no evaluated HPWL")
	}
	return history[len(history)-1]
}

// runAxisBuild drives the outer b2b_update_max_iteration loop for one
// axis: rebuild the problem, solve, check net-model-level convergence
// (§4.D step 2).
func (o *Optimizer) runAxisBuild(ax axis, asm *linsolve.Assembler, b, v []float64, build func(), evalAxis func() float64) float64 {
	var history []float64
	for it := 0; it < o.cfg.B2bUpdateMaxIteration; it++ {
		build()
		eval := o.optimizeAxisMetric(ax, asm, b, v, evalAxis)
		history = append(history, eval)
		if len(history) >= 3 {
			if seriesConverge(history, 3, o.cfg.NetModelUpdateStopCriterion) {
				break
			}
			if seriesOscillate(history, 5) {
				break
			}
		}
	}
	if len(history) == 0 {
		chk.Panic("gplace: axis build produced no evaluated HPWL")
	}
	return history[len(history)-1]
}

// clampAxis enforces containment on one axis independently (§3
// invariant, §4.A "clamp each movable cell's new position"), resolved
// per the DESIGN.md open-question decision to clamp after every axis
// solve rather than only at the outer-iteration boundary.
func clampAxis(c *circuit.Circuit, ax axis) {
	lo := ax.regionLL(c)
	for i := range c.Blocks {
		blk := &c.Blocks[i]
		if !blk.IsMovable() {
			continue
		}
		hi := ax.regionUR(c) - ax.dim(blk)
		if hi < lo {
			hi = lo
		}
		v := math.Min(math.Max(ax.ll(blk), lo), hi)
		ax.setLL(blk, v)
	}
}

// QuadraticPlacement runs the anchor-free B2B quadratic optimizer
// (§4.D without anchors), executing the X and Y axis builds as two
// goroutines joined at the "pull cells back into region" barrier
// (§5). Returns the lower-bound HPWL (X+Y).
func (o *Optimizer) QuadraticPlacement() float64 {
	o.updateEpsilon()
	for i := range o.c.Blocks {
		o.vx[i] = o.c.Blocks[i].LLX
		o.vy[i] = o.c.Blocks[i].LLY
	}

	var wg sync.WaitGroup
	var hx, hy float64
	wg.Add(2)
	go func() {
		defer wg.Done()
		hx = o.runAxisBuild(axisX, o.asmX, o.bx, o.vx, func() {
			buildNetModelProblem(o.c, axisX, o.asmX, o.bx, o.widthEps, o.cfg.CenterWeightFactor, o.cfg.NetModel)
		}, o.c.WeightedHPWLX)
		clampAxis(o.c, axisX)
	}()
	go func() {
		defer wg.Done()
		hy = o.runAxisBuild(axisY, o.asmY, o.by, o.vy, func() {
			buildNetModelProblem(o.c, axisY, o.asmY, o.by, o.heightEps, o.cfg.CenterWeightFactor, o.cfg.NetModel)
		}, o.c.WeightedHPWLY)
		clampAxis(o.c, axisY)
	}()
	wg.Wait()

	o.c.ClampAllToRegion()

	o.LowerBoundHpwlX = append(o.LowerBoundHpwlX, hx)
	o.LowerBoundHpwlY = append(o.LowerBoundHpwlY, hy)
	total := hx + hy
	o.LowerBoundHpwl = append(o.LowerBoundHpwl, total)
	o.backUpBlockLocation()
	return total
}

// updateAnchorLocation copies the current (legalized) positions into
// the anchor vectors, so the anchor holds the previous legalized
// result while positions start from it too (§4.C).
func (o *Optimizer) updateAnchorLocation() {
	for i := range o.c.Blocks {
		o.xAnchor[i] = o.c.Blocks[i].LLX
		o.yAnchor[i] = o.c.Blocks[i].LLY
	}
}

// updateAnchorAlpha grows alpha by the §4.C schedule.
func (o *Optimizer) updateAnchorAlpha() {
	o.alpha += anchorAlphaStep(o.curIter)
}

func (o *Optimizer) backUpBlockLocation() {
	for i := range o.c.Blocks {
		o.xAnchor[i] = o.c.Blocks[i].LLX
		o.yAnchor[i] = o.c.Blocks[i].LLY
	}
}

// QuadraticPlacementWithAnchor runs the anchor-augmented quadratic
// optimizer (§4.C, §4.D with anchors). Returns the lower-bound HPWL
// (X+Y).
func (o *Optimizer) QuadraticPlacementWithAnchor() float64 {
	o.updateEpsilon()
	o.updateAnchorLocation()
	o.updateAnchorAlpha()

	for i := range o.c.Blocks {
		o.vx[i] = o.c.Blocks[i].LLX
		o.vy[i] = o.c.Blocks[i].LLY
	}

	var wg sync.WaitGroup
	var hx, hy float64
	wg.Add(2)
	go func() {
		defer wg.Done()
		hx = o.runAxisBuild(axisX, o.asmX, o.bx, o.vx, func() {
			buildAnchorProblem(o.c, axisX, o.asmX, o.bx, o.widthEps, o.cfg.CenterWeightFactor, o.xAnchor, o.alpha, o.cfg.NetModel)
		}, o.c.WeightedHPWLX)
		clampAxis(o.c, axisX)
	}()
	go func() {
		defer wg.Done()
		hy = o.runAxisBuild(axisY, o.asmY, o.by, o.vy, func() {
			buildAnchorProblem(o.c, axisY, o.asmY, o.by, o.heightEps, o.cfg.CenterWeightFactor, o.yAnchor, o.alpha, o.cfg.NetModel)
		}, o.c.WeightedHPWLY)
		clampAxis(o.c, axisY)
	}()
	wg.Wait()

	o.c.ClampAllToRegion()

	o.LowerBoundHpwlX = append(o.LowerBoundHpwlX, hx)
	o.LowerBoundHpwlY = append(o.LowerBoundHpwlY, hy)
	total := hx + hy
	o.LowerBoundHpwl = append(o.LowerBoundHpwl, total)
	o.backUpBlockLocation()
	return total
}
