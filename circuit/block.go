package circuit

// Status is a block's placement status. Movable iff Unplaced or Placed.
type Status int

const (
	Unplaced Status = iota
	Placed
	Fixed
	Cover
)

// Block is a standard cell or macro: immutable identity (Id, TypeIdx)
// plus mutable placement state (LLX, LLY, Stat, Orient). Grounded on
// original_source/dali/circuit/block.h; the core holds these by index
// in Circuit.Blocks, never by pointer graph (back-references are
// index-based per the DESIGN NOTES).
type Block struct {
	Id      int
	TypeIdx int
	LLX     float64
	LLY     float64
	Stat    Status
	Orient  Orient

	// NetIdx is the set of net indices touching this block, a
	// non-owning back-reference table (flattened ownership per the
	// DESIGN NOTES, instead of a pointer graph).
	NetIdx []int

	typ *BlockType
}

// bind attaches the shared BlockType geometry; called once by Circuit
// at construction time.
func (b *Block) bind(t *BlockType) { b.typ = t }

// Type returns the block's shared geometry.
func (b *Block) Type() *BlockType { return b.typ }

// Width returns the block's footprint width.
func (b *Block) Width() float64 { return b.typ.Width }

// Height returns the block's footprint height.
func (b *Block) Height() float64 { return b.typ.Height }

// Area returns the block's footprint area.
func (b *Block) Area() float64 { return b.typ.Width * b.typ.Height }

// URX returns the block's upper-right x-coordinate.
func (b *Block) URX() float64 { return b.LLX + b.typ.Width }

// URY returns the block's upper-right y-coordinate.
func (b *Block) URY() float64 { return b.LLY + b.typ.Height }

// CenterX returns the x-coordinate of the block's center.
func (b *Block) CenterX() float64 { return b.LLX + b.typ.Width/2.0 }

// CenterY returns the y-coordinate of the block's center.
func (b *Block) CenterY() float64 { return b.LLY + b.typ.Height/2.0 }

// IsMovable reports whether the block's position may be changed by
// the quadratic optimizer or legalizer (§3 invariants).
func (b *Block) IsMovable() bool { return b.Stat == Unplaced || b.Stat == Placed }

// IsFixed reports whether the block acts as a coefficient-free
// constant in the linear system.
func (b *Block) IsFixed() bool { return !b.IsMovable() }

// SetLLX sets the lower-left x-coordinate, used by the linear solver
// write-back and the legalizer.
func (b *Block) SetLLX(x float64) { b.LLX = x }

// SetLLY sets the lower-left y-coordinate.
func (b *Block) SetLLY(y float64) { b.LLY = y }

// SetLoc sets both coordinates at once.
func (b *Block) SetLoc(x, y float64) { b.LLX, b.LLY = x, y }

// AbsPinX returns the absolute x location of pin p, honoring
// orientation. Reads only LLX, never LLY, so the X and Y optimizer
// goroutines can call it concurrently on disjoint blocks without
// racing on each other's axis (§5 "cell position writes are
// axis-partitioned").
func (b *Block) AbsPinX(p int) float64 {
	ox, _ := b.typ.PinOffset(p, b.Orient)
	return b.LLX + ox
}

// AbsPinY returns the absolute y location of pin p, honoring
// orientation. Reads only LLY, never LLX.
func (b *Block) AbsPinY(p int) float64 {
	_, oy := b.typ.PinOffset(p, b.Orient)
	return b.LLY + oy
}

// PinOffset returns pin p's offset from the block's lower-left corner.
func (b *Block) PinOffset(p int) (x, y float64) {
	return b.typ.PinOffset(p, b.Orient)
}
