package linsolve

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// Test_cg_solves_spd_system checks CG against a hand-solved 2x2 SPD
// system: [[4,1],[1,3]] x = [1,2] -> x = [1/11, 7/11].
func Test_cg_solves_spd_system(tst *testing.T) {
	chk.PrintTitle("cg_solves_spd_system. small SPD system matches the closed-form solution")

	asm := NewAssembler(2, 16)
	asm.Start()
	asm.Put(0, 0, 4)
	asm.Put(1, 1, 3)
	asm.Put(0, 1, 1)
	asm.Put(1, 0, 1)
	m := asm.Build()

	b := []float64{1, 2}
	x := []float64{0, 0}
	CG(m, b, x, 50, 1e-14)

	chk.Vector(tst, "x", 1e-8, x, []float64{1.0 / 11.0, 7.0 / 11.0})
}

func Test_put_sym_mirrors_off_diagonal(tst *testing.T) {
	chk.PrintTitle("put_sym. PutSym mirrors (i,j) and (j,i) with identical sign")

	asm := NewAssembler(2, 16)
	asm.Start()
	asm.PutSym(0, 1, 5)
	m := asm.Build()

	diag := m.Diag()
	chk.Vector(tst, "diag", 1e-12, diag, []float64{5, 5})

	y := []float64{0, 0}
	m.MulAdd(y, []float64{1, 0})
	chk.Vector(tst, "A*[1,0]", 1e-12, y, []float64{5, -5})
}
