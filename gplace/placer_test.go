package gplace

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/asyncvlsi/Dali-sub002/circuit"
	"github.com/asyncvlsi/Dali-sub002/config"
)

// Test_two_cells_one_net_converge_to_coincident_centers implements the
// first end-to-end scenario (§8): two movable cells joined by a single
// net should have their centers coincide after the quadratic optimizer.
func Test_two_cells_one_net_converge_to_coincident_centers(tst *testing.T) {
	chk.PrintTitle("two_cells_one_net. optimizer drives both centers to coincide")

	types := []circuit.BlockType{
		{Name: "CELL", Width: 10, Height: 10, Pins: []circuit.PinGeom{{OffsetX: 5, OffsetY: 5}}},
	}
	blocks := []circuit.Block{
		{TypeIdx: 0, LLX: 10, LLY: 10, Stat: circuit.Unplaced},
		{TypeIdx: 0, LLX: 70, LLY: 60, Stat: circuit.Unplaced},
	}
	nets := []circuit.Net{
		{Weight: 1, Pins: []circuit.BlockPin{{BlockIdx: 0, PinIdx: 0}, {BlockIdx: 1, PinIdx: 0}}},
	}
	region := circuit.Region{Left: 0, Bottom: 0, Right: 100, Top: 100, RowHeight: 10}
	c := circuit.New(types, blocks, nets, region, nil, 100)

	cfg := new(config.Config)
	cfg.SetDefault()

	opt := NewOptimizer(c, cfg)
	opt.QuadraticPlacement()

	dx := math.Abs(c.Blocks[0].CenterX() - c.Blocks[1].CenterX())
	dy := math.Abs(c.Blocks[0].CenterY() - c.Blocks[1].CenterY())
	if dx > 1e-3 || dy > 1e-3 {
		tst.Errorf("expected coincident centers, got dx=%v dy=%v", dx, dy)
	}
	chk.Scalar(tst, "hpwl near zero", 1e-2, c.WeightedHPWL(), 0)
}

// Test_single_movable_between_two_fixed_anchors implements the second
// end-to-end scenario (§8): a movable cell pulled by two symmetric
// fixed anchors settles at their midpoint.
func Test_single_movable_between_two_fixed_anchors(tst *testing.T) {
	chk.PrintTitle("movable_between_fixed_anchors. settles at the anchors' midpoint")

	types := []circuit.BlockType{
		{Name: "MOV", Width: 4, Height: 4, Pins: []circuit.PinGeom{{OffsetX: 2, OffsetY: 2}}},
		{Name: "FIX", Width: 4, Height: 4, Pins: []circuit.PinGeom{{OffsetX: 2, OffsetY: 2}}},
	}
	blocks := []circuit.Block{
		{TypeIdx: 0, LLX: 40, LLY: 40, Stat: circuit.Unplaced},
		{TypeIdx: 1, LLX: 0, LLY: 0, Stat: circuit.Fixed},
		{TypeIdx: 1, LLX: 96, LLY: 96, Stat: circuit.Fixed},
	}
	nets := []circuit.Net{
		{Weight: 1, Pins: []circuit.BlockPin{{BlockIdx: 0, PinIdx: 0}, {BlockIdx: 1, PinIdx: 0}}},
		{Weight: 1, Pins: []circuit.BlockPin{{BlockIdx: 0, PinIdx: 0}, {BlockIdx: 2, PinIdx: 0}}},
	}
	region := circuit.Region{Left: 0, Bottom: 0, Right: 100, Top: 100, RowHeight: 4}
	c := circuit.New(types, blocks, nets, region, nil, 100)

	cfg := new(config.Config)
	cfg.SetDefault()

	opt := NewOptimizer(c, cfg)
	opt.QuadraticPlacement()

	chk.Scalar(tst, "movable center x", 0.5, c.Blocks[0].CenterX(), 50)
	chk.Scalar(tst, "movable center y", 0.5, c.Blocks[0].CenterY(), 50)
	chk.Scalar(tst, "fixed F1 llx unchanged", 1e-9, c.Blocks[1].LLX, 0)
	chk.Scalar(tst, "fixed F2 llx unchanged", 1e-9, c.Blocks[2].LLX, 96)
}

// Test_single_pin_net_contributes_nothing covers the boundary case of
// a net with fewer than two pins (§8).
func Test_single_pin_net_contributes_nothing(tst *testing.T) {
	chk.PrintTitle("single_pin_net. a one-pin net contributes zero HPWL")

	types := []circuit.BlockType{
		{Name: "CELL", Width: 1, Height: 1, Pins: []circuit.PinGeom{{}}},
	}
	blocks := []circuit.Block{
		{TypeIdx: 0, LLX: 5, LLY: 5, Stat: circuit.Unplaced},
		{TypeIdx: 0, LLX: 50, LLY: 50, Stat: circuit.Unplaced},
	}
	nets := []circuit.Net{
		{Weight: 1, Pins: []circuit.BlockPin{{BlockIdx: 0}}},
		{Weight: 1, Pins: []circuit.BlockPin{{BlockIdx: 1}, {BlockIdx: 1}}},
	}
	region := circuit.Region{Left: 0, Bottom: 0, Right: 100, Top: 100, RowHeight: 1}
	c := circuit.New(types, blocks, nets, region, nil, 100)

	chk.Scalar(tst, "hpwl", 1e-12, c.WeightedHPWL(), 0)
}
