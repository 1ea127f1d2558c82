// Package debugdump renders an optional inspection snapshot of a
// placement: a scatter of movable-cell centers overlaid on the
// grid-bin mesh, each bin labeled with its filling rate. It is
// plumbing, not one of the two novel subsystems, gated behind
// Config.DumpEvery and never on the solver's hot path.
//
// Grounded on tools/PlotLrm.go and tools/ResidPlot.go's plt.Plot/
// plt.Text/plt.Gll/plt.Save usage, adapted from retention-curve and
// residual-history plots to a cell/bin-occupancy plot.
package debugdump

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"

	"github.com/asyncvlsi/Dali-sub002/circuit"
	"github.com/asyncvlsi/Dali-sub002/grid"
)

// DumpPlacement writes a single figure to dir/tag.png: the grid-bin
// outlines (red where over-filled), each bin's filling rate, and a
// scatter of movable-cell centers.
func DumpPlacement(c *circuit.Circuit, m *grid.Mesh, dir, tag string) {
	plt.Reset(false, nil)

	for x := 0; x < m.CountX; x++ {
		for y := 0; y < m.CountY; y++ {
			bin := &m.Bins[x][y]
			bx := []float64{
				float64(bin.Left), float64(bin.Right), float64(bin.Right),
				float64(bin.Left), float64(bin.Left),
			}
			by := []float64{
				float64(bin.Bottom), float64(bin.Bottom), float64(bin.Top),
				float64(bin.Top), float64(bin.Bottom),
			}
			style := "'k-', lw=0.5, clip_on=0"
			if bin.OverFill {
				style = "'r-', lw=0.8, clip_on=0"
			}
			plt.Plot(bx, by, style)
			cx := float64(bin.Left+bin.Right) / 2
			cy := float64(bin.Bottom+bin.Top) / 2
			plt.Text(cx, cy, io.Sf("%.2f", bin.FillingRate), "ha='center', size=5, clip_on=0")
		}
	}

	var cx, cy []float64
	for i := range c.Blocks {
		blk := &c.Blocks[i]
		if !blk.IsMovable() {
			continue
		}
		cx = append(cx, blk.CenterX())
		cy = append(cy, blk.CenterY())
	}
	plt.Plot(cx, cy, "'b.', ms=2, clip_on=0")

	plt.Gll("x", "y", "")
	plt.SaveD(dir, io.Sf("%s.png", tag))
}
