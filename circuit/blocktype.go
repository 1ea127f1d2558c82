package circuit

// Orient is a cell orientation; the core only needs enough of the LEF
// orientation set to transform pin offsets. N is the identity.
type Orient int

const (
	OrientN Orient = iota
	OrientS
	OrientFN
	OrientFS
)

// PinGeom is a pin's offset from its owning BlockType's lower-left
// corner at orientation N, plus its polarity.
type PinGeom struct {
	Name     string
	OffsetX  float64
	OffsetY  float64
	IsDriver bool
}

// BlockType is the shared geometry (width, height, pin list) for all
// cells/macros of one library cell or macro type. Cells reference a
// BlockType by index; many Blocks may share one BlockType.
type BlockType struct {
	Name   string
	Width  float64
	Height float64
	Pins   []PinGeom
}

// PinOffset returns the (x,y) offset of pin index p, transformed by
// orientation o from the type's lower-left corner.
func (t *BlockType) PinOffset(p int, o Orient) (x, y float64) {
	px, py := t.Pins[p].OffsetX, t.Pins[p].OffsetY
	switch o {
	case OrientN:
		return px, py
	case OrientS:
		return t.Width - px, t.Height - py
	case OrientFN:
		return t.Width - px, py
	case OrientFS:
		return px, t.Height - py
	default:
		return px, py
	}
}
