package circuit

// PairKey is a canonical (smaller index first) ordered pair of block
// indices, the key of the shared block-pair-nets mapping used by the
// star / HPWL / star-HPWL net models (component K). Grounded on
// original_source/dali/circuit/blkpairnets.h's BlkPairNets key.
type PairKey struct {
	I, J int
}

// canonical returns a PairKey with the smaller index first, and
// whether (i,j) was swapped to get there (write-back must invert the
// swap to protect self-pairs and keep signs consistent).
func canonical(i, j int) (PairKey, bool) {
	if i <= j {
		return PairKey{i, j}, false
	}
	return PairKey{j, i}, true
}

// BlockPairNets accumulates the quadratic coefficients contributed by
// every net edge between two blocks, canonicalized to one record per
// unordered pair. e00/e11 are the diagonal contributions for I and J;
// e01/e10 are the symmetric off-diagonal contributions.
type BlockPairNets struct {
	Key              PairKey
	E00, E01, E10, E11 float64
}

// NewDriverLoadPairs enumerates all true (driver, load) pin pairs for
// net n, using each pin's BlockType-carried polarity (blocks supplies
// the BlockType binding), and returns them as (blockIdx, blockIdx)
// pairs. Used by the star / HPWL / star-HPWL models as an alternative
// to B2B's extreme-pair selection. A net with fewer than 2 pins, or no
// driver pin, or no load pin, contributes no pairs. Grounded on
// original_source/dali/circuit/blkpairnets.h's BlkBlkEdge, whose d/l
// fields hold the driver and load block indices of one edge.
func (n *Net) NewDriverLoadPairs(blocks []Block) [][2]int {
	if len(n.Pins) < 2 {
		return nil
	}
	var drivers, loads []int
	for i, bp := range n.Pins {
		if blocks[bp.BlockIdx].Type().Pins[bp.PinIdx].IsDriver {
			drivers = append(drivers, i)
		} else {
			loads = append(loads, i)
		}
	}
	pairs := make([][2]int, 0, len(drivers)*len(loads))
	for _, d := range drivers {
		for _, l := range loads {
			pairs = append(pairs, [2]int{n.Pins[d].BlockIdx, n.Pins[l].BlockIdx})
		}
	}
	return pairs
}

// BuildBlockPairNets decomposes every net in nets into canonical
// block-pair records, accumulating the diagonal/off-diagonal
// coefficient weight into a fresh map. X/Y accumulators are always
// built fresh (§4.K "clear X/Y accumulators between builds").
//
// weight(net, bi, bj) computes the coefficient magnitude for one
// driver-load block pair (bi, bj) of a net; it is supplied by the star/HPWL/star-HPWL
// net model implementations in package gplace, which know the active
// axis and distance metric.
func BuildBlockPairNets(nets []Net, blocks []Block, weight func(net *Net, bi, bj int) float64) map[PairKey]*BlockPairNets {
	out := make(map[PairKey]*BlockPairNets)
	for ni := range nets {
		net := &nets[ni]
		for _, pr := range net.NewDriverLoadPairs(blocks) {
			bi, bj := pr[0], pr[1]
			if bi == bj {
				continue // write-back protects self-pairs
			}
			w := weight(net, bi, bj)
			if w == 0 {
				continue
			}
			key, swapped := canonical(bi, bj)
			rec, ok := out[key]
			if !ok {
				rec = &BlockPairNets{Key: key}
				out[key] = rec
			}
			if !swapped {
				rec.E00 += w
				rec.E11 += w
				rec.E01 -= w
				rec.E10 -= w
			} else {
				rec.E11 += w
				rec.E00 += w
				rec.E10 -= w
				rec.E01 -= w
			}
		}
	}
	return out
}
