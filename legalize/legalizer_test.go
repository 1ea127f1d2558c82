package legalize

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/asyncvlsi/Dali-sub002/circuit"
	"github.com/asyncvlsi/Dali-sub002/config"
	"github.com/asyncvlsi/Dali-sub002/grid"
)

// clusteredFixture packs 60 small movable cells into one corner of a
// large region, guaranteeing an over-filled cluster for the legalizer
// to spread.
func clusteredFixture() (*circuit.Circuit, *config.Config) {
	types := []circuit.BlockType{
		{Name: "CELL", Width: 1, Height: 1, Pins: []circuit.PinGeom{{}}},
	}
	blocks := make([]circuit.Block, 0, 60)
	for i := 0; i < 60; i++ {
		blocks = append(blocks, circuit.Block{
			TypeIdx: 0,
			LLX:     float64(i % 8),
			LLY:     float64(i / 8),
			Stat:    circuit.Unplaced,
		})
	}
	nets := []circuit.Net{
		{Weight: 1, Pins: []circuit.BlockPin{{BlockIdx: 0}, {BlockIdx: 1}}},
	}
	region := circuit.Region{Left: 0, Bottom: 0, Right: 40, Top: 40, RowHeight: 1}
	c := circuit.New(types, blocks, nets, region, nil, 100)

	cfg := new(config.Config)
	cfg.SetDefault()
	cfg.NumberOfCellInBin = 4
	cfg.TargetDensity = 0.5
	return c, cfg
}

func Test_look_ahead_legalization_conserves_cell_count_and_containment(tst *testing.T) {
	chk.PrintTitle("look_ahead_legalization. every movable cell stays inside the region and none are lost")

	c, cfg := clusteredFixture()
	LookAheadLegalization(c, cfg)

	for i := range c.Blocks {
		blk := &c.Blocks[i]
		if !blk.IsMovable() {
			continue
		}
		if blk.LLX < c.RegionLLX()-1e-9 || blk.URX() > c.RegionURX()+1e-9 {
			tst.Errorf("block %d escaped the region on x: llx=%v urx=%v", i, blk.LLX, blk.URX())
		}
		if blk.LLY < c.RegionLLY()-1e-9 || blk.URY() > c.RegionURY()+1e-9 {
			tst.Errorf("block %d escaped the region on y: lly=%v ury=%v", i, blk.LLY, blk.URY())
		}
	}
	chk.IntAssert(len(c.Blocks), 60)
}

func Test_look_ahead_legalization_spreads_overfilled_cluster(tst *testing.T) {
	chk.PrintTitle("look_ahead_legalization. spreading reduces the worst bin's filling rate")

	c, cfg := clusteredFixture()
	before := worstFillingRate(c, cfg)
	LookAheadLegalization(c, cfg)
	after := worstFillingRate(c, cfg)

	if after >= before {
		tst.Errorf("expected legalization to reduce the worst-case bin filling rate: before=%v after=%v", before, after)
	}
}

func worstFillingRate(c *circuit.Circuit, cfg *config.Config) float64 {
	m := grid.NewMesh(c, cfg)
	m.AssignCells()
	var worst float64
	for x := 0; x < m.CountX; x++ {
		for y := 0; y < m.CountY; y++ {
			if r := m.Bins[x][y].FillingRate; r > worst {
				worst = r
			}
		}
	}
	return worst
}
