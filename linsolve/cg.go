package linsolve

import (
	"math"

	"github.com/cpmech/gosl/io"
)

// degenerateDiagFloor is the diagonal-coefficient floor below which a
// row is treated as numerically degenerate (§7): the preconditioner
// entry is set to 1 and the solve proceeds, leaving that cell
// effectively unconstrained rather than aborting the whole placer.
const degenerateDiagFloor = 1e-10

// jacobiPreconditioner builds the diagonal (Jacobi) preconditioner
// from the assembled matrix, per §4.A.
func jacobiPreconditioner(diag []float64) []float64 {
	m := make([]float64, len(diag))
	for i, d := range diag {
		if math.Abs(d) < degenerateDiagFloor {
			io.PfYel("linsolve: near-zero diagonal at row %d (%.3e), using identity preconditioner entry\n", i, d)
			m[i] = 1
		} else {
			m[i] = 1.0 / d
		}
	}
	return m
}

// CG runs preconditioned conjugate gradient on A*x = b starting from
// the supplied initial guess x (modified in place), for at most
// maxIter inner iterations or until |r·x| (residual dotted with the
// current iterate) falls below tol. This is the ~40-line hand-rolled Jacobi CG the DESIGN
// NOTES sanction emitting directly (the evaluated-HPWL convergence
// test that gates the *outer* rounds lives in package gplace; this
// function only guarantees forward numerical progress on one linear
// solve).
func CG(a *Matrix, b, x []float64, maxIter int, tol float64) {
	n := a.N()
	precond := jacobiPreconditioner(a.Diag())

	r := make([]float64, n)
	ax := make([]float64, n)
	a.MulAdd(ax, x)
	for i := 0; i < n; i++ {
		r[i] = b[i] - ax[i]
	}

	z := make([]float64, n)
	for i := range z {
		z[i] = precond[i] * r[i]
	}
	p := append([]float64(nil), z...)

	rz := dot(r, z)
	if rz == 0 {
		return
	}

	ap := make([]float64, n)
	for iter := 0; iter < maxIter; iter++ {
		for i := range ap {
			ap[i] = 0
		}
		a.MulAdd(ap, p)
		pap := dot(p, ap)
		if pap == 0 {
			return
		}
		alpha := rz / pap
		for i := 0; i < n; i++ {
			x[i] += alpha * p[i]
			r[i] -= alpha * ap[i]
		}

		energy := math.Abs(dot(r, x))
		if energy < tol {
			return
		}

		for i := range z {
			z[i] = precond[i] * r[i]
		}
		rzNew := dot(r, z)
		beta := rzNew / rz
		for i := 0; i < n; i++ {
			p[i] = z[i] + beta*p[i]
		}
		rz = rzNew
	}
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
