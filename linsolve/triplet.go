// Package linsolve assembles the symmetric positive-definite sparse
// linear systems built by package gplace and solves them by
// preconditioned conjugate gradient (component A, §4.A). Assembly
// uses gosl/la's Triplet type, the same sparse-assembly object
// fem/s_linimp.go hands to its linear solver (d.Kb is a *la.Triplet
// there too).
package linsolve

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// Assembler wraps an la.Triplet with the capacity bookkeeping §9
// requires: the triplet list is reserved once per outer call to a size
// estimated from the net-edge count, and a capacity change at runtime
// is a warning, not a silent reallocation.
type Assembler struct {
	trip     la.Triplet
	n        int
	capacity int
	count    int
}

// NewAssembler reserves a Triplet of size n x n with room for
// `capacity` non-zero entries, the Sigma(2(p-2)+1)*4 + 2n estimate of
// §9.
func NewAssembler(n, capacity int) *Assembler {
	if n <= 0 {
		chk.Panic("linsolve: matrix dimension must be positive, got %d", n)
	}
	a := &Assembler{n: n, capacity: capacity}
	a.trip.Init(n, n, capacity)
	return a
}

// Start clears the triplet list for a fresh build, keeping the
// reserved capacity (§4.D "resize/reset all matrices and vectors").
func (a *Assembler) Start() {
	a.trip.Start()
	a.count = 0
}

// Put adds one (row, col, value) contribution; duplicate (i,j) entries
// are summed when the matrix is assembled, matching §4.A.
func (a *Assembler) Put(i, j int, v float64) {
	a.count++
	if a.count == a.capacity+1 {
		io.PfYel("linsolve: triplet capacity %d exceeded, reallocating\n", a.capacity)
	}
	a.trip.Put(i, j, v)
}

// PutSym adds a symmetric pair of off-diagonal entries (i,j) and
// (j,i) with the same value, plus matching positive diagonal
// contributions at (i,i) and (j,j) — the shape every B2B/anchor
// coefficient takes (§3 invariant: "every off-diagonal coefficient
// contributed to (i,j) is mirrored to (j,i) with identical sign").
func (a *Assembler) PutSym(i, j int, w float64) {
	a.Put(i, i, w)
	a.Put(j, j, w)
	a.Put(i, j, -w)
	a.Put(j, i, -w)
}

// Build finalizes the assembled CSR/compressed-column matrix from the
// accumulated triplets.
func (a *Assembler) Build() *Matrix {
	cc := new(la.CCMatrix)
	a.trip.ToMatrix(cc)
	return &Matrix{cc: cc, n: a.n}
}

// Matrix is the assembled sparse matrix, ready for CG.
type Matrix struct {
	cc *la.CCMatrix
	n  int
}

// N returns the matrix dimension.
func (m *Matrix) N() int { return m.n }

// MulAdd computes y += A*x (compressed-column matrix-vector product),
// the single hot-path primitive the CG loop needs.
func (m *Matrix) MulAdd(y, x []float64) {
	for j := 0; j < m.n; j++ {
		xj := x[j]
		if xj == 0 {
			continue
		}
		for p := m.cc.Ap[j]; p < m.cc.Ap[j+1]; p++ {
			y[m.cc.Ai[p]] += m.cc.Ax[p] * xj
		}
	}
}

// Diag returns the matrix's diagonal, used to build the Jacobi
// preconditioner (§4.A).
func (m *Matrix) Diag() []float64 {
	d := make([]float64, m.n)
	for j := 0; j < m.n; j++ {
		for p := m.cc.Ap[j]; p < m.cc.Ap[j+1]; p++ {
			if m.cc.Ai[p] == j {
				d[j] += m.cc.Ax[p]
			}
		}
	}
	return d
}
