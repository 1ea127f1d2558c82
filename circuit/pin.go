package circuit

// BlockPin is a (block, pin-index) back-reference, the edge endpoint
// of a Net. This is the non-owning, index-based analog of
// original_source/dali/circuit/blockpinpair.h's BlockPinPair.
type BlockPin struct {
	BlockIdx int
	PinIdx   int
}
