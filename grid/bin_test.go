package grid

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/asyncvlsi/Dali-sub002/circuit"
	"github.com/asyncvlsi/Dali-sub002/config"
)

func smallFixture() (*circuit.Circuit, *config.Config) {
	types := []circuit.BlockType{
		{Name: "CELL", Width: 2, Height: 2, Pins: []circuit.PinGeom{{}}},
	}
	blocks := make([]circuit.Block, 0, 40)
	for i := 0; i < 40; i++ {
		blocks = append(blocks, circuit.Block{TypeIdx: 0, LLX: float64(2 * (i % 10)), LLY: float64(2 * (i / 10)), Stat: circuit.Unplaced})
	}
	nets := []circuit.Net{
		{Weight: 1, Pins: []circuit.BlockPin{{BlockIdx: 0}, {BlockIdx: 1}}},
	}
	region := circuit.Region{Left: 0, Bottom: 0, Right: 20, Top: 20, RowHeight: 2}
	c := circuit.New(types, blocks, nets, region, nil, 100)

	cfg := new(config.Config)
	cfg.SetDefault()
	cfg.NumberOfCellInBin = 4
	cfg.TargetDensity = 0.5
	return c, cfg
}

func Test_white_space_lut_matches_brute_force(tst *testing.T) {
	chk.PrintTitle("white_space_lut. LUT rectangle query matches brute-force bin summation")
	c, cfg := smallFixture()
	m := NewMesh(c, cfg)

	var brute uint64
	for x := 0; x < m.CountX; x++ {
		for y := 0; y < m.CountY; y++ {
			brute += m.Bins[x][y].WhiteSpace
		}
	}
	got := m.WhiteSpace(Index{0, 0}, Index{m.CountX - 1, m.CountY - 1})
	chk.IntAssert(int(got), int(brute))
}

func Test_white_space_lut_subrectangle(tst *testing.T) {
	chk.PrintTitle("white_space_lut. a single-bin rectangle matches that bin's white space")
	c, cfg := smallFixture()
	m := NewMesh(c, cfg)
	if m.CountX < 2 || m.CountY < 2 {
		tst.Skip("mesh too small for this check")
	}
	got := m.WhiteSpace(Index{0, 0}, Index{0, 0})
	chk.IntAssert(int(got), int(m.Bins[0][0].WhiteSpace))
}

func Test_assign_cells_marks_overfill(tst *testing.T) {
	chk.PrintTitle("assign_cells. densely packed bins are flagged over-filled")
	c, cfg := smallFixture()
	m := NewMesh(c, cfg)
	m.AssignCells()

	var anyOverfill bool
	for x := 0; x < m.CountX; x++ {
		for y := 0; y < m.CountY; y++ {
			if m.Bins[x][y].OverFill {
				anyOverfill = true
			}
		}
	}
	if !anyOverfill {
		tst.Errorf("expected at least one over-filled bin for a densely packed fixture")
	}
}

func Test_find_clusters_drops_clusters_at_or_below_min_bins(tst *testing.T) {
	chk.PrintTitle("find_clusters. a cluster at or below minBins is dropped")
	c, cfg := smallFixture()
	m := NewMesh(c, cfg)
	m.AssignCells()

	clusters := m.FindClusters(1000000)
	chk.IntAssert(len(clusters), 0)
}

func Test_fixed_content_subtracted(tst *testing.T) {
	chk.PrintTitle("fixed_content. a fixed macro reduces a bin's white space")
	types := []circuit.BlockType{
		{Name: "MACRO", Width: 10, Height: 10, Pins: []circuit.PinGeom{{}}},
		{Name: "CELL", Width: 1, Height: 1, Pins: []circuit.PinGeom{{}}},
	}
	blocks := []circuit.Block{
		{TypeIdx: 0, LLX: 0, LLY: 0, Stat: circuit.Fixed},
		{TypeIdx: 1, LLX: 40, LLY: 40, Stat: circuit.Unplaced},
	}
	nets := []circuit.Net{{Weight: 1, Pins: []circuit.BlockPin{{BlockIdx: 0}, {BlockIdx: 1}}}}
	region := circuit.Region{Left: 0, Bottom: 0, Right: 50, Top: 50, RowHeight: 1}
	c := circuit.New(types, blocks, nets, region, nil, 100)
	cfg := new(config.Config)
	cfg.SetDefault()
	cfg.NumberOfCellInBin = 4
	m := NewMesh(c, cfg)

	if m.Bins[0][0].WhiteSpace >= m.Bins[0][0].Area() {
		tst.Errorf("expected bin (0,0) white space reduced below its full area by the fixed macro")
	}
}
