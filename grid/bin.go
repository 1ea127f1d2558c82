// Package grid builds the density-accounting mesh the look-ahead
// legalizer uses to find over-filled regions (§4.E-F), grounded on
// original_source/dali/placer/global_placer/grid_bin.{h,cc} and
// rough_legalizer.cc's InitGridBins/InitWhiteSpaceLUT.
package grid

import (
	"math"
	"sort"

	"github.com/asyncvlsi/Dali-sub002/circuit"
	"github.com/asyncvlsi/Dali-sub002/config"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Index is a bin's (column, row) coordinate in the mesh.
type Index struct {
	X, Y int
}

// Bin is one rectangular accounting tile (§4.E). Cells holds the
// indices of movable blocks currently assigned to this bin; it is
// rebuilt by AssignCells on every look-ahead call.
type Bin struct {
	Index      Index
	Left, Right, Bottom, Top int
	WhiteSpace uint64
	CellArea   uint64
	FillingRate float64
	AllFixed   bool
	OverFill   bool
	Cells      []int
	Adjacent   []Index
}

func (b *Bin) Width() int  { return b.Right - b.Left }
func (b *Bin) Height() int { return b.Top - b.Bottom }
func (b *Bin) Area() uint64 {
	return uint64(b.Width()) * uint64(b.Height())
}

// Mesh is the full grid-bin matrix plus its white-space prefix-sum
// look-up table (§4.E).
type Mesh struct {
	Bins         [][]Bin // Bins[x][y]
	CountX, CountY int
	BinWidth, BinHeight int
	lut          [][]uint64 // prefix sum of Bins[x][y].WhiteSpace

	c   *circuit.Circuit
	cfg *config.Config
}

// NewMesh sizes and initializes the bin matrix for circuit c under
// cfg (§4.E "bin dimensions... cells_per_bin"), subtracts fixed-block
// and blockage coverage from every bin's white space, then builds the
// LUT. Panics if fixed content alone exceeds a bin's area (§7
// integrity violation).
func NewMesh(c *circuit.Circuit, cfg *config.Config) *Mesh {
	area := cfg.NumberOfCellInBin * intOrOne(c.AveMovBlkArea())
	binArea := float64(area) / cfg.TargetDensity
	side := int(math.Ceil(math.Sqrt(binArea)))
	if side <= 0 {
		side = 1
	}

	m := &Mesh{
		BinWidth:  side,
		BinHeight: side,
		CountX:    ceilDiv(c.RegionWidth(), side),
		CountY:    ceilDiv(c.RegionHeight(), side),
		c:         c,
		cfg:       cfg,
	}
	if m.CountX < 1 {
		m.CountX = 1
	}
	if m.CountY < 1 {
		m.CountY = 1
	}

	m.Bins = make([][]Bin, m.CountX)
	for x := range m.Bins {
		m.Bins[x] = make([]Bin, m.CountY)
		for y := range m.Bins[x] {
			bin := &m.Bins[x][y]
			bin.Index = Index{x, y}
			bin.Left = c.Region.Left + x*side
			bin.Right = c.Region.Left + (x+1)*side
			bin.Bottom = c.Region.Bottom + y*side
			bin.Top = c.Region.Bottom + (y+1)*side
			bin.createAdjacent(m.CountX, m.CountY)
		}
	}
	for x := 0; x < m.CountX; x++ {
		m.Bins[x][m.CountY-1].Top = c.Region.Top
	}
	for y := 0; y < m.CountY; y++ {
		m.Bins[m.CountX-1][y].Right = c.Region.Right
	}
	for x := range m.Bins {
		for y := range m.Bins[x] {
			m.Bins[x][y].WhiteSpace = m.Bins[x][y].Area()
		}
	}

	m.subtractFixedContent()
	m.buildLUT()
	return m
}

func (b *Bin) createAdjacent(countX, countY int) {
	b.Adjacent = b.Adjacent[:0]
	if b.Index.X > 0 {
		b.Adjacent = append(b.Adjacent, Index{b.Index.X - 1, b.Index.Y})
	}
	if b.Index.X < countX-1 {
		b.Adjacent = append(b.Adjacent, Index{b.Index.X + 1, b.Index.Y})
	}
	if b.Index.Y > 0 {
		b.Adjacent = append(b.Adjacent, Index{b.Index.X, b.Index.Y - 1})
	}
	if b.Index.Y < countY-1 {
		b.Adjacent = append(b.Adjacent, Index{b.Index.X, b.Index.Y + 1})
	}
}

// subtractFixedContent deducts the coverage area of every fixed block
// and placement blockage overlapping each bin (§4.E "White space of a
// bin").
func (m *Mesh) subtractFixedContent() {
	var obstacles []circuit.RectI
	for i := range m.c.Blocks {
		blk := &m.c.Blocks[i]
		if blk.IsMovable() {
			continue
		}
		obstacles = append(obstacles, circuit.RectI{
			LLX: int(math.Round(blk.LLX)), LLY: int(math.Round(blk.LLY)),
			URX: int(math.Round(blk.URX())), URY: int(math.Round(blk.URY())),
		})
	}
	for _, bl := range m.c.Blockages {
		obstacles = append(obstacles, bl.Rect)
	}
	if len(obstacles) == 0 {
		return
	}

	for x := range m.Bins {
		for y := range m.Bins[x] {
			bin := &m.Bins[x][y]
			binRect := circuit.RectI{LLX: bin.Left, LLY: bin.Bottom, URX: bin.Right, URY: bin.Top}
			var overlaps []circuit.RectI
			for _, o := range obstacles {
				if binRect.IsOverlap(o) {
					overlaps = append(overlaps, binRect.Overlap(o))
				}
			}
			if len(overlaps) == 0 {
				continue
			}
			used := CoverArea(overlaps)
			if used > bin.WhiteSpace {
				chk.Panic("grid: fixed content %d exceeds bin white space %d at %v", used, bin.WhiteSpace, bin.Index)
			}
			bin.WhiteSpace -= used
			if bin.WhiteSpace == 0 {
				bin.AllFixed = true
			}
		}
	}
}

// buildLUT computes the 2-D prefix sum of bin white spaces (§4.E),
// enabling WhiteSpace(ll,ur) in O(1).
func (m *Mesh) buildLUT() {
	m.lut = make([][]uint64, m.CountX)
	for x := range m.lut {
		m.lut[x] = make([]uint64, m.CountY)
	}
	for x := 0; x < m.CountX; x++ {
		for y := 0; y < m.CountY; y++ {
			v := m.Bins[x][y].WhiteSpace
			switch {
			case x == 0 && y == 0:
				m.lut[x][y] = v
			case x == 0:
				m.lut[x][y] = m.lut[x][y-1] + v
			case y == 0:
				m.lut[x][y] = m.lut[x-1][y] + v
			default:
				m.lut[x][y] = m.lut[x-1][y] + m.lut[x][y-1] - m.lut[x-1][y-1] + v
			}
		}
	}
}

// WhiteSpace returns the total white space over the closed rectangle
// of bin indices [ll,ur], read from the prefix-sum LUT.
func (m *Mesh) WhiteSpace(ll, ur Index) uint64 {
	total := m.lut[ur.X][ur.Y]
	if ll.X > 0 {
		total -= m.lut[ll.X-1][ur.Y]
	}
	if ll.Y > 0 {
		total -= m.lut[ur.X][ll.Y-1]
	}
	if ll.X > 0 && ll.Y > 0 {
		total += m.lut[ll.X-1][ll.Y-1]
	}
	return total
}

// AssignCells clears every bin's movable-cell list and reassigns each
// movable block to the bin containing its center, recomputing
// CellArea, FillingRate and OverFill (§4.F). Called fresh at the top
// of every look-ahead pass (§5 "reset at the start of every
// look-ahead call").
func (m *Mesh) AssignCells() {
	for x := range m.Bins {
		for y := range m.Bins[x] {
			bin := &m.Bins[x][y]
			bin.Cells = bin.Cells[:0]
			bin.CellArea = 0
			bin.OverFill = false
		}
	}
	for i := range m.c.Blocks {
		blk := &m.c.Blocks[i]
		if !blk.IsMovable() {
			continue
		}
		bx := clampIndex(int((blk.CenterX()-float64(m.c.Region.Left))/float64(m.BinWidth)), m.CountX)
		by := clampIndex(int((blk.CenterY()-float64(m.c.Region.Bottom))/float64(m.BinHeight)), m.CountY)
		bin := &m.Bins[bx][by]
		bin.Cells = append(bin.Cells, i)
		bin.CellArea += uint64(blk.Area())
	}
	for x := range m.Bins {
		for y := range m.Bins[x] {
			bin := &m.Bins[x][y]
			if bin.WhiteSpace > 0 {
				bin.FillingRate = float64(bin.CellArea) / float64(bin.WhiteSpace)
			} else {
				bin.FillingRate = math.Inf(1)
			}
			bin.OverFill = bin.FillingRate > m.cfg.TargetDensity || (bin.AllFixed && bin.CellArea > 0)
		}
	}
}

// Cluster is a maximal 4-connected run of over-filled bins (§4.F).
type Cluster struct {
	Bins            []Index
	TotalCellArea   uint64
	TotalWhiteSpace uint64
}

// FindClusters scans bins in row-major order, grows each cluster by
// BFS through over-filled 4-neighbors, drops clusters at or below
// minBins, and returns the rest ordered by total cell area descending
// (§4.F).
func (m *Mesh) FindClusters(minBins int) []Cluster {
	visited := make([][]bool, m.CountX)
	for x := range visited {
		visited[x] = make([]bool, m.CountY)
	}

	var clusters []Cluster
	for x := 0; x < m.CountX; x++ {
		for y := 0; y < m.CountY; y++ {
			if visited[x][y] || !m.Bins[x][y].OverFill {
				continue
			}
			queue := []Index{{x, y}}
			visited[x][y] = true
			var cl Cluster
			for len(queue) > 0 {
				idx := queue[0]
				queue = queue[1:]
				cl.Bins = append(cl.Bins, idx)
				bin := &m.Bins[idx.X][idx.Y]
				cl.TotalCellArea += bin.CellArea
				cl.TotalWhiteSpace += bin.WhiteSpace
				for _, nb := range bin.Adjacent {
					if visited[nb.X][nb.Y] || !m.Bins[nb.X][nb.Y].OverFill {
						continue
					}
					visited[nb.X][nb.Y] = true
					queue = append(queue, nb)
				}
			}
			if len(cl.Bins) > minBins {
				clusters = append(clusters, cl)
			}
		}
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].TotalCellArea > clusters[j].TotalCellArea
	})
	return clusters
}

func clampIndex(v, count int) int {
	return utl.Imax(0, utl.Imin(v, count-1))
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 1
	}
	return int(math.Ceil(float64(a) / float64(b)))
}

func intOrOne(v float64) int {
	if v <= 0 {
		return 1
	}
	return int(math.Round(v))
}
