// Package roots finds zeros of scalar functions that are only defined on part
// of the real line.
package roots

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDomain         = errors.New("roots: point outside function domain")
	ErrZeroDerivative = errors.New("roots: derivative vanished")
	ErrStalled        = errors.New("roots: no acceptable step")
	ErrMaxIter        = errors.New("roots: maximum iterations exceeded")
	ErrNoBracket      = errors.New("roots: root not bracketed")
)

// Func is a partial scalar function. ok reports whether x lies inside the
// domain; y is meaningless when ok is false.
type Func func(x float64) (y float64, ok bool)

// Total adapts an everywhere-defined function.
func Total(f func(float64) float64) Func {
	return func(x float64) (float64, bool) {
		return f(x), true
	}
}

// Result is the last iterate of a search.
type Result struct {
	X          float64
	F          float64
	Iterations int
	Converged  bool
}

// Finder searches for a zero of f starting from x0.
type Finder interface {
	Find(f Func, x0 float64) (Result, error)
}

// Method names accepted by ByName.
const (
	MethodNewton    = "newton"
	MethodBrent     = "brent"
	MethodBisection = "bisection"
)

// ByName returns a finder with default settings for the given method.
func ByName(name string) (Finder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", MethodNewton:
		return NewNewton(), nil
	case MethodBrent:
		return NewBrent(), nil
	case MethodBisection:
		return NewBisection(), nil
	default:
		return nil, fmt.Errorf("unknown root finding method %q", name)
	}
}
