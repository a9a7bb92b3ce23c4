package roots

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
)

// Newton is a damped Newton-Raphson search. The derivative is estimated with
// finite differences.
type Newton struct {
	MaxIter     int     // iteration limit
	MaxHalvings int     // step halvings per iteration
	XTol        float64 // relative step tolerance
	FTol        float64 // absolute residual tolerance
	Step        float64 // finite difference step, scaled by |x| above 1
}

// NewNewton returns a Newton search with tolerances suited to temperatures
// in degree C.
func NewNewton() *Newton {
	return &Newton{
		MaxIter:     100,
		MaxHalvings: 40,
		XTol:        1e-10,
		FTol:        1e-12,
		Step:        6e-6,
	}
}

/*
Find runs the damped iteration from x0.

	Args:
		f: partial function
		x0: initial guess, must lie inside the domain of f

	Returns:
		the last iterate; Converged is false whenever err is non-nil

	Notes:
		A full Newton step is halved until the trial point is inside the domain
		and |f| does not grow. Started on the convex side of a log singularity
		the iteration approaches the root monotonically.
*/
func (n *Newton) Find(f Func, x0 float64) (Result, error) {
	x := x0
	fx, ok := f(x)
	if !ok {
		return Result{X: x, F: fx}, ErrDomain
	}

	for i := 1; i <= n.MaxIter; i++ {
		if math.Abs(fx) < n.FTol {
			return Result{X: x, F: fx, Iterations: i - 1, Converged: true}, nil
		}

		d, ok := n.derivative(f, x)
		if !ok {
			return Result{X: x, F: fx, Iterations: i}, ErrDomain
		}
		if d == 0 {
			return Result{X: x, F: fx, Iterations: i}, ErrZeroDerivative
		}

		step := -fx / d
		lambda := 1.0
		accepted := false
		var xn, fn float64
		for k := 0; k < n.MaxHalvings; k++ {
			xn = x + lambda*step
			if v, ok := f(xn); ok && math.Abs(v) <= math.Abs(fx) {
				fn = v
				accepted = true
				break
			}
			lambda /= 2
		}
		if !accepted {
			return Result{X: x, F: fx, Iterations: i}, ErrStalled
		}

		x, fx = xn, fn
		if math.Abs(lambda*step) <= n.XTol*(1+math.Abs(x)) {
			return Result{X: x, F: fx, Iterations: i, Converged: true}, nil
		}
	}

	return Result{X: x, F: fx, Iterations: n.MaxIter}, ErrMaxIter
}

// derivative tries the central stencil first and falls back to one-sided
// stencils when a stencil point leaves the domain.
func (n *Newton) derivative(f Func, x float64) (float64, bool) {
	h := n.Step * math.Max(1, math.Abs(x))
	for _, formula := range []fd.Formula{fd.Central, fd.Forward, fd.Backward} {
		inside := true
		g := func(t float64) float64 {
			v, ok := f(t)
			if !ok {
				inside = false
			}
			return v
		}
		d := fd.Derivative(g, x, &fd.Settings{Formula: formula, Step: h})
		if inside && !math.IsNaN(d) && !math.IsInf(d, 0) {
			return d, true
		}
	}
	return 0, false
}
