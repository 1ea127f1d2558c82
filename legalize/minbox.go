package legalize

import (
	"github.com/asyncvlsi/Dali-sub002/circuit"
	"github.com/asyncvlsi/Dali-sub002/config"
	"github.com/asyncvlsi/Dali-sub002/grid"
)

// findMinimumBox starts from the cluster's bounding box of bin
// indices and repeatedly expands it by one bin on every side (clipped
// to grid bounds) until its white space covers the cluster's cell
// area and its aspect ratio falls in [cfg.MinBoxAspectLo,
// cfg.MinBoxAspectHi], or the full region is reached (§4.G).
func findMinimumBox(m *grid.Mesh, c *circuit.Circuit, cl grid.Cluster, cfg *config.Config) *box {
	ll, ur := cl.Bins[0], cl.Bins[0]
	for _, idx := range cl.Bins {
		if idx.X < ll.X {
			ll.X = idx.X
		}
		if idx.Y < ll.Y {
			ll.Y = idx.Y
		}
		if idx.X > ur.X {
			ur.X = idx.X
		}
		if idx.Y > ur.Y {
			ur.Y = idx.Y
		}
	}

	for {
		b := newBoxFromBins(m, c, ll, ur)
		fullRegion := ll.X == 0 && ll.Y == 0 && ur.X == m.CountX-1 && ur.Y == m.CountY-1
		aspect := float64(b.width()) / float64(b.height())
		enoughSpace := b.totalWhiteSpace >= cl.TotalCellArea
		aspectOK := aspect >= cfg.MinBoxAspectLo && aspect <= cfg.MinBoxAspectHi
		if fullRegion || (enoughSpace && aspectOK) {
			return b
		}
		if ll.X > 0 {
			ll.X--
		}
		if ll.Y > 0 {
			ll.Y--
		}
		if ur.X < m.CountX-1 {
			ur.X++
		}
		if ur.Y < m.CountY-1 {
			ur.Y++
		}
	}
}
