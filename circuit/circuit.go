package circuit

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Circuit is the read-only (from the core's perspective) netlist: a
// cell list, a net list, a shared block-type list, the placement
// region, fixed blocks, and placement blockages. Nets and pins are
// owned by Circuit; the placer holds only index-based non-owning
// references into it (§3 Ownership).
type Circuit struct {
	Types  []BlockType
	Blocks []Block
	Nets   []Net

	Region     Region
	Blockages  []PlacementBlockage

	// NetIgnoreThreshold is the configured pin-count at or above which
	// a net is excluded from every build (power/clock guard, §3).
	NetIgnoreThreshold int
}

// New validates and returns a Circuit, wiring each Block to its
// BlockType and building the net back-reference tables. Precondition
// failures (§7) panic with a clear diagnostic before any work starts.
func New(types []BlockType, blocks []Block, nets []Net, region Region, blockages []PlacementBlockage, netIgnoreThreshold int) *Circuit {
	if len(blocks) == 0 {
		chk.Panic("circuit has no blocks")
	}
	if len(nets) == 0 {
		chk.Panic("circuit has no nets")
	}
	region.check()
	if netIgnoreThreshold < 2 {
		chk.Panic("net ignore threshold must be >= 2, got %d", netIgnoreThreshold)
	}

	c := &Circuit{
		Types:              types,
		Blocks:             blocks,
		Nets:               nets,
		Region:             region,
		Blockages:          blockages,
		NetIgnoreThreshold: netIgnoreThreshold,
	}
	for i := range c.Blocks {
		b := &c.Blocks[i]
		if b.TypeIdx < 0 || b.TypeIdx >= len(types) {
			chk.Panic("block %d references invalid type index %d", i, b.TypeIdx)
		}
		b.bind(&c.Types[b.TypeIdx])
		b.Id = i
	}
	for ni := range c.Nets {
		net := &c.Nets[ni]
		for _, bp := range net.Pins {
			if bp.BlockIdx < 0 || bp.BlockIdx >= len(c.Blocks) {
				chk.Panic("net %d references invalid block index %d", ni, bp.BlockIdx)
			}
			c.Blocks[bp.BlockIdx].NetIdx = append(c.Blocks[bp.BlockIdx].NetIdx, ni)
		}
	}
	return c
}

// RegionLLX, RegionLLY, RegionURX, RegionURY return the placement
// region's boundary in integer grid coordinates (§6 Region accessors).
func (c *Circuit) RegionLLX() float64 { return float64(c.Region.Left) }
func (c *Circuit) RegionLLY() float64 { return float64(c.Region.Bottom) }
func (c *Circuit) RegionURX() float64 { return float64(c.Region.Right) }
func (c *Circuit) RegionURY() float64 { return float64(c.Region.Top) }
func (c *Circuit) RegionWidth() int   { return c.Region.Width() }
func (c *Circuit) RegionHeight() int  { return c.Region.Height() }

// netActive reports whether net n passes the pin-count filter
// [2,threshold) used by the HPWL accessors (the B2B builder applies
// the same test inline): nets with fewer than 2 pins or at/above the
// ignore threshold contribute nothing (§3).
func (c *Circuit) netActive(n *Net) bool {
	p := n.PinCount()
	return p >= 2 && p < c.NetIgnoreThreshold
}

// WeightedHPWLX returns Sigma over active nets of w*(max_pin_abs_x -
// min_pin_abs_x) (§6 Accessor contract).
func (c *Circuit) WeightedHPWLX() float64 {
	var total float64
	for i := range c.Nets {
		n := &c.Nets[i]
		if !c.netActive(n) {
			continue
		}
		n.UpdateMaxMinX(c.Blocks)
		total += n.HPWLX(c.Blocks)
	}
	return total
}

// WeightedHPWLY returns Sigma over active nets of w*(max_pin_abs_y -
// min_pin_abs_y).
func (c *Circuit) WeightedHPWLY() float64 {
	var total float64
	for i := range c.Nets {
		n := &c.Nets[i]
		if !c.netActive(n) {
			continue
		}
		n.UpdateMaxMinY(c.Blocks)
		total += n.HPWLY(c.Blocks)
	}
	return total
}

// WeightedHPWL returns WeightedHPWLX() + WeightedHPWLY().
func (c *Circuit) WeightedHPWL() float64 {
	return c.WeightedHPWLX() + c.WeightedHPWLY()
}

// AveMovBlkWidth returns the average footprint width of movable
// blocks, used to derive the B2B epsilon (§4.B) and the leaf-placement
// row geometry.
func (c *Circuit) AveMovBlkWidth() float64 {
	return c.aveMov(func(b *Block) float64 { return b.Width() })
}

// AveMovBlkHeight returns the average footprint height of movable
// blocks.
func (c *Circuit) AveMovBlkHeight() float64 {
	return c.aveMov(func(b *Block) float64 { return b.Height() })
}

// AveMovBlkArea returns the average footprint area of movable blocks,
// used to size the grid-bin mesh (§4.E).
func (c *Circuit) AveMovBlkArea() float64 {
	return c.aveMov(func(b *Block) float64 { return b.Area() })
}

func (c *Circuit) aveMov(f func(b *Block) float64) float64 {
	var sum float64
	var n int
	for i := range c.Blocks {
		if c.Blocks[i].IsMovable() {
			sum += f(&c.Blocks[i])
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// MovableCount returns the number of movable blocks.
func (c *Circuit) MovableCount() int {
	n := 0
	for i := range c.Blocks {
		if c.Blocks[i].IsMovable() {
			n++
		}
	}
	return n
}

// ClampToRegion pulls block i's footprint back inside the region if
// it has drifted outside (§3 invariant, §4.A "clamp each movable
// cell's new position").
func (c *Circuit) ClampToRegion(i int) {
	b := &c.Blocks[i]
	if !b.IsMovable() {
		return
	}
	lo, hi := c.RegionLLX(), c.RegionURX()-b.Width()
	if hi < lo {
		hi = lo
	}
	x := math.Min(math.Max(b.LLX, lo), hi)

	lo, hi = c.RegionLLY(), c.RegionURY()-b.Height()
	if hi < lo {
		hi = lo
	}
	y := math.Min(math.Max(b.LLY, lo), hi)

	b.SetLoc(x, y)
}

// ClampAllToRegion clamps every movable block (§3 containment
// invariant, enforced after every outer iteration).
func (c *Circuit) ClampAllToRegion() {
	for i := range c.Blocks {
		c.ClampToRegion(i)
	}
}
