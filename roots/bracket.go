package roots

import "math"

// bracketer widens an interval around a starting point until the function
// changes sign.
type bracketer struct {
	Step      float64 // first probe distance, in units of x
	MaxExpand int     // number of doublings
}

type bracket struct {
	a, b   float64
	fa, fb float64
}

/*
search probes x0±Step, x0±2·Step, x0±4·Step, ... alternating sides.

	Returns:
		the tightest interval [a, b] with f(a)·f(b) <= 0 found on the first
		side that changes sign

	Notes:
		At its first out-of-domain probe a side is narrowed towards the domain
		edge by halving and then abandoned, so the interval never straddles a
		pole or a hole in the domain.
*/
func (br bracketer) search(f Func, x0 float64) (bracket, error) {
	f0, ok := f(x0)
	if !ok {
		return bracket{}, ErrDomain
	}
	if f0 == 0 {
		return bracket{a: x0, b: x0, fa: f0, fb: f0}, nil
	}

	alive := [2]bool{true, true}
	dirs := [2]float64{1, -1}
	last := [2]float64{x0, x0}
	lastF := [2]float64{f0, f0}

	d := br.Step
	for i := 0; i < br.MaxExpand; i++ {
		for k, dir := range dirs {
			if !alive[k] {
				continue
			}
			x := x0 + dir*d
			fx, ok := f(x)
			if !ok {
				alive[k] = false
				if br, found := refineEdge(f, last[k], lastF[k], x); found {
					return br, nil
				}
				continue
			}
			if math.Signbit(fx) != math.Signbit(f0) || fx == 0 {
				return newBracket(last[k], lastF[k], x, fx), nil
			}
			last[k], lastF[k] = x, fx
		}
		if !alive[0] && !alive[1] {
			break
		}
		d *= 2
	}

	return bracket{}, ErrNoBracket
}

// edgeIterations bounds the halvings spent between the last in-domain probe
// and the first out-of-domain one.
const edgeIterations = 200

/*
refineEdge halves the gap between an in-domain point and an out-of-domain
probe, looking for a sign change before the domain ends.

	Args:
		f: partial function
		in: last in-domain point, with f(in) = fin
		out: first out-of-domain probe on the same side

	Returns:
		a bracket and true when f changes sign between in and the domain edge
*/
func refineEdge(f Func, in, fin, out float64) (bracket, bool) {
	for i := 0; i < edgeIterations; i++ {
		if math.Abs(out-in) <= 1e-12*(1+math.Abs(in)) {
			break
		}
		mid := in + (out-in)/2
		fm, ok := f(mid)
		if !ok {
			out = mid
			continue
		}
		if math.Signbit(fm) != math.Signbit(fin) || fm == 0 {
			return newBracket(in, fin, mid, fm), true
		}
		in, fin = mid, fm
	}
	return bracket{}, false
}

func newBracket(x, fx, y, fy float64) bracket {
	if x < y {
		return bracket{a: x, b: y, fa: fx, fb: fy}
	}
	return bracket{a: y, b: x, fa: fy, fb: fx}
}

// Bisection halves a bracketing interval.
type Bisection struct {
	bracketer
	Tol     float64
	MaxIter int
}

// NewBisection returns a bisection with a 0.01 first probe.
func NewBisection() *Bisection {
	return &Bisection{
		bracketer: bracketer{Step: 1e-2, MaxExpand: 40},
		Tol:       1e-10,
		MaxIter:   200,
	}
}

// Find brackets a sign change around x0 and halves it down to Tol.
func (bs *Bisection) Find(f Func, x0 float64) (Result, error) {
	br, err := bs.search(f, x0)
	if err != nil {
		return Result{X: x0}, err
	}
	a, b, fa := br.a, br.b, br.fa
	if br.fa == 0 {
		return Result{X: a, F: fa, Converged: true}, nil
	}
	if br.fb == 0 {
		return Result{X: b, F: br.fb, Converged: true}, nil
	}

	var c, fc float64
	for i := 1; i <= bs.MaxIter; i++ {
		c = (a + b) / 2
		var ok bool
		fc, ok = f(c)
		if !ok {
			return Result{X: c, Iterations: i}, ErrDomain
		}

		if fc == 0 || (b-a)/2 < bs.Tol {
			return Result{X: c, F: fc, Iterations: i, Converged: true}, nil
		}

		if math.Signbit(fc) == math.Signbit(fa) {
			a, fa = c, fc
		} else {
			b = c
		}
	}
	return Result{X: c, F: fc, Iterations: bs.MaxIter}, ErrMaxIter
}

// Brent is the Brent-Dekker method: inverse quadratic interpolation and
// secant steps guarded by bisection.
type Brent struct {
	bracketer
	Tol     float64
	MaxIter int
}

// NewBrent returns a Brent search with a 0.01 first probe.
func NewBrent() *Brent {
	return &Brent{
		bracketer: bracketer{Step: 1e-2, MaxExpand: 40},
		Tol:       1e-12,
		MaxIter:   100,
	}
}

// Find brackets a sign change around x0 and runs Brent-Dekker inside it.
func (bt *Brent) Find(f Func, x0 float64) (Result, error) {
	br, err := bt.search(f, x0)
	if err != nil {
		return Result{X: x0}, err
	}
	a, b, fa, fb := br.a, br.b, br.fa, br.fb
	if fa == 0 {
		return Result{X: a, F: fa, Converged: true}, nil
	}
	if fb == 0 {
		return Result{X: b, F: fb, Converged: true}, nil
	}

	const eps = 2.220446049250313e-16

	c, fc := b, fb
	var d, e float64
	for i := 1; i <= bt.MaxIter; i++ {
		if math.Signbit(fb) == math.Signbit(fc) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		tol1 := 2*eps*math.Abs(b) + 0.5*bt.Tol
		xm := 0.5 * (c - b)
		if math.Abs(xm) <= tol1 || fb == 0 {
			return Result{X: b, F: fb, Iterations: i, Converged: true}, nil
		}

		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			var p, q float64
			s := fb / fa
			if a == c {
				// secant
				p = 2 * xm * s
				q = 1 - s
			} else {
				// inverse quadratic interpolation
				q = fa / fc
				r := fb / fc
				p = s * (2*xm*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)

			if 2*p < math.Min(3*xm*q-math.Abs(tol1*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}

		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else {
			b += math.Copysign(tol1, xm)
		}
		var ok bool
		fb, ok = f(b)
		if !ok {
			return Result{X: b, Iterations: i}, ErrDomain
		}
	}
	return Result{X: b, F: fb, Iterations: bt.MaxIter}, ErrMaxIter
}
