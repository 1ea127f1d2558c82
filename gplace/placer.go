package gplace

import (
	"github.com/asyncvlsi/Dali-sub002/circuit"
	"github.com/asyncvlsi/Dali-sub002/config"
	"github.com/asyncvlsi/Dali-sub002/legalize"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/rnd"
)

// Placer drives the top-level loop (§4.J): initial random spread,
// anchor-free quadratic placement, then alternating anchor-augmented
// quadratic placement and look-ahead legalization until the gap
// between the upper- and lower-bound HPWL series converges.
type Placer struct {
	c   *circuit.Circuit
	cfg *config.Config
	opt *Optimizer

	LowerBoundHpwl []float64
	UpperBoundHpwl []float64
}

// NewPlacer allocates a Placer bound to circuit c and configuration
// cfg.
func NewPlacer(c *circuit.Circuit, cfg *config.Config) *Placer {
	return &Placer{c: c, cfg: cfg, opt: NewOptimizer(c, cfg)}
}

// randomizeInitialPositions scatters every movable cell uniformly
// inside the region (§4.J "initialize positions uniformly at
// random"), leaving fixed cells untouched.
func (p *Placer) randomizeInitialPositions() {
	rnd.Init(0)
	for i := range p.c.Blocks {
		blk := &p.c.Blocks[i]
		if !blk.IsMovable() {
			continue
		}
		loX := p.c.RegionLLX()
		hiX := p.c.RegionURX() - blk.Width()
		loY := p.c.RegionLLY()
		hiY := p.c.RegionURY() - blk.Height()
		if hiX < loX {
			hiX = loX
		}
		if hiY < loY {
			hiY = loY
		}
		blk.SetLoc(rnd.Float64(loX, hiX), rnd.Float64(loY, hiY))
	}
}

// Run executes the full top-level loop and returns true once it
// either converges under the configured criterion or exhausts
// max_iter (§7: partial success is still reported true, with the
// histories carrying the evidence).
func (p *Placer) Run() bool {
	p.randomizeInitialPositions()

	p.LowerBoundHpwl = append(p.LowerBoundHpwl, p.opt.QuadraticPlacement())
	p.UpperBoundHpwl = append(p.UpperBoundHpwl, legalize.LookAheadLegalization(p.c, p.cfg))

	converged := false
	for iter := 1; iter <= p.cfg.MaxIter; iter++ {
		p.opt.SetIteration(iter)
		lb := p.opt.QuadraticPlacementWithAnchor()
		ub := legalize.LookAheadLegalization(p.c, p.cfg)
		p.LowerBoundHpwl = append(p.LowerBoundHpwl, lb)
		p.UpperBoundHpwl = append(p.UpperBoundHpwl, ub)

		if p.converged(iter) {
			io.Pf("gplace: converged at outer iteration %d\n", iter)
			converged = true
			break
		}
	}
	return converged || len(p.LowerBoundHpwl) > 0
}

// converged implements §4.J's two stopping criteria.
func (p *Placer) converged(iter int) bool {
	switch p.cfg.ConvergenceCriteria {
	case config.ConvergencePolar:
		return p.polarConverged()
	default:
		return p.simplConverged(iter)
	}
}

func (p *Placer) gap(iter int) float64 {
	return p.UpperBoundHpwl[iter] - p.LowerBoundHpwl[iter]
}

// simplConverged implements the SimPL-style mode (§4.J): after at
// least 10 iterations, stop if the gap has shrunk to a tenth of the
// iter-10 gap, or to a quarter while the upper-bound series itself
// meets the §4.A k=3 convergence test.
func (p *Placer) simplConverged(iter int) bool {
	if iter < 10 {
		return false
	}
	g10 := p.gap(10)
	if g10 == 0 {
		return true
	}
	ratio := p.gap(iter) / g10
	if ratio < 0.1 {
		return true
	}
	if ratio < 0.25 && seriesConverge(p.UpperBoundHpwl, 3, p.cfg.SimplLalConvergeCriterion) {
		return true
	}
	return false
}

// polarConverged implements the POLAR mode (§4.J): stop if
// ub/lb-1 < polar_converge_criterion.
func (p *Placer) polarConverged() bool {
	n := len(p.LowerBoundHpwl) - 1
	lb := p.LowerBoundHpwl[n]
	if lb == 0 {
		return true
	}
	return p.UpperBoundHpwl[n]/lb-1 < p.cfg.PolarConvergeCriterion
}
