package legalize

import (
	"github.com/asyncvlsi/Dali-sub002/circuit"
	"github.com/asyncvlsi/Dali-sub002/config"
	"github.com/asyncvlsi/Dali-sub002/grid"
)

// minClusterBins is the §4.F "too few bins to exceed a size
// threshold" drop criterion: a single over-filled bin alone is not
// worth a dedicated bisection pass.
const minClusterBins = 1

// LookAheadLegalization runs components E-I once: it rebuilds the
// grid-bin mesh and white-space LUT, finds every over-filled cluster,
// and for each (largest first) finds its minimum box and recursively
// bisects it down to single-cell leaf placements (§4.E-I, §5 "grid
// bins, clusters, and the box queue are reset at the start of every
// look-ahead call"). Returns the resulting upper-bound HPWL (X+Y).
func LookAheadLegalization(c *circuit.Circuit, cfg *config.Config) float64 {
	m := grid.NewMesh(c, cfg)
	m.AssignCells()

	clusters := m.FindClusters(minClusterBins)
	for _, cl := range clusters {
		root := findMinimumBox(m, c, cl, cfg)
		bisect(m, c, root)
		m.AssignCells()
	}

	c.ClampAllToRegion()
	return c.WeightedHPWL()
}
