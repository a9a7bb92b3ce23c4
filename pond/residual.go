package pond

import "math"

// Outcome is a residual evaluation. Valid is false when the log argument left
// its domain; Value then holds Sentinel.
type Outcome struct {
	Value float64
	Valid bool
}

func invalid() Outcome {
	return Outcome{Value: Sentinel}
}

/*
Residual evaluates the counterflow SHX relation.

	Args:
		thetaP2: pond outflow temperature, degree C

	Returns:
		ln(numerator/denominator) - L_SHX/R_SHX·|1/C_h - 1/C_p|

	Notes:
		The ratio is oriented so that its denominator is the terminal
		difference that closes first. The residual then falls from +inf at
		the asymptote and crosses zero once on the physical branch.
*/
func (m *Model) Residual(thetaP2 float64) Outcome {
	den := m.Denominator(thetaP2)
	if math.Abs(den) < denominatorGuard {
		return invalid()
	}

	arg := m.numerator(thetaP2) / den
	if !(arg > 0) {
		return invalid()
	}

	return Outcome{Value: math.Log(arg) - m.ntuTerm(), Valid: true}
}
