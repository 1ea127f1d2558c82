package circuit

// PlacementBlockage is a rectangle that removes white space from the
// grid-bin mesh without carrying any cells or net connectivity, kept
// distinct from fixed Blocks per original_source/dali/circuit/placement_blockage.h
// (a blockage is not a macro: it has no pins, no area contribution
// besides subtracting white space).
type PlacementBlockage struct {
	Rect RectI
}
