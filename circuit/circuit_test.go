package circuit

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func twoCellFixture() *Circuit {
	types := []BlockType{
		{Name: "CELL", Width: 2, Height: 2, Pins: []PinGeom{{Name: "p", OffsetX: 0, OffsetY: 0}}},
	}
	blocks := []Block{
		{TypeIdx: 0, LLX: 0, LLY: 0, Stat: Unplaced},
		{TypeIdx: 0, LLX: 10, LLY: 0, Stat: Unplaced},
	}
	nets := []Net{
		{Weight: 1, Pins: []BlockPin{{BlockIdx: 0, PinIdx: 0}, {BlockIdx: 1, PinIdx: 0}}},
	}
	region := Region{Left: 0, Bottom: 0, Right: 100, Top: 100, RowHeight: 2}
	return New(types, blocks, nets, region, nil, 100)
}

func Test_weighted_hpwl(tst *testing.T) {
	chk.PrintTitle("weighted_hpwl. two-pin net matches |dx|+|dy|")
	c := twoCellFixture()
	chk.Scalar(tst, "hpwl_x", 1e-12, c.WeightedHPWLX(), 10)
	chk.Scalar(tst, "hpwl_y", 1e-12, c.WeightedHPWLY(), 0)
	chk.Scalar(tst, "hpwl", 1e-12, c.WeightedHPWL(), 10)
}

func Test_net_ignore_threshold(tst *testing.T) {
	chk.PrintTitle("net_ignore_threshold. high pin-count nets contribute nothing")
	types := []BlockType{
		{Name: "CELL", Width: 1, Height: 1, Pins: []PinGeom{{OffsetX: 0, OffsetY: 0}}},
	}
	blocks := []Block{
		{TypeIdx: 0, LLX: 0, LLY: 0, Stat: Unplaced},
		{TypeIdx: 0, LLX: 5, LLY: 0, Stat: Unplaced},
		{TypeIdx: 0, LLX: 20, LLY: 0, Stat: Unplaced},
	}
	nets := []Net{
		{Weight: 1, Pins: []BlockPin{{BlockIdx: 0}, {BlockIdx: 1}, {BlockIdx: 2}}},
	}
	region := Region{Left: 0, Bottom: 0, Right: 50, Top: 50, RowHeight: 1}
	c := New(types, blocks, nets, region, nil, 3)
	chk.Scalar(tst, "hpwl (threshold=3 excludes the 3-pin net)", 1e-12, c.WeightedHPWL(), 0)
}

func Test_clamp_to_region(tst *testing.T) {
	chk.PrintTitle("clamp_to_region. movable blocks never leave the region")
	c := twoCellFixture()
	c.Blocks[0].SetLoc(-50, 200)
	c.ClampAllToRegion()
	if c.Blocks[0].LLX < c.RegionLLX() || c.Blocks[0].URX() > c.RegionURX() {
		tst.Errorf("block 0 x-range escaped the region: llx=%v urx=%v", c.Blocks[0].LLX, c.Blocks[0].URX())
	}
	if c.Blocks[0].LLY < c.RegionLLY() || c.Blocks[0].URY() > c.RegionURY() {
		tst.Errorf("block 0 y-range escaped the region: lly=%v ury=%v", c.Blocks[0].LLY, c.Blocks[0].URY())
	}
}

func Test_fixed_block_ignores_clamp_and_stays_fixed(tst *testing.T) {
	chk.PrintTitle("fixed_block. ClampToRegion is a no-op for fixed blocks")
	c := twoCellFixture()
	c.Blocks[1].Stat = Fixed
	c.Blocks[1].SetLoc(-1000, -1000)
	c.ClampToRegion(1)
	chk.Scalar(tst, "fixed block llx unchanged", 1e-12, c.Blocks[1].LLX, -1000)
	chk.Scalar(tst, "fixed block lly unchanged", 1e-12, c.Blocks[1].LLY, -1000)
}

func Test_average_movable_dims_exclude_fixed(tst *testing.T) {
	chk.PrintTitle("average_movable_dims. fixed cells are excluded from the average")
	c := twoCellFixture()
	c.Blocks[1].Stat = Fixed
	chk.Scalar(tst, "ave width", 1e-12, c.AveMovBlkWidth(), 2)
	chk.IntAssert(c.MovableCount(), 1)
}

func Test_invalid_region_panics(tst *testing.T) {
	chk.PrintTitle("invalid_region. degenerate region aborts construction")
	defer func() {
		if r := recover(); r == nil {
			tst.Errorf("expected panic on degenerate region")
		}
	}()
	types := []BlockType{{Width: 1, Height: 1, Pins: []PinGeom{{}}}}
	blocks := []Block{{TypeIdx: 0, Stat: Unplaced}}
	nets := []Net{{Weight: 1, Pins: []BlockPin{{BlockIdx: 0}, {BlockIdx: 0}}}}
	New(types, blocks, nets, Region{Left: 10, Right: 0, Bottom: 0, Top: 10, RowHeight: 1}, nil, 10)
}
