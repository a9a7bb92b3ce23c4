package pond

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Model holds one installation with its flows converted to SI units. All
// sub-expressions of the heat balance are methods of Model and take the pond
// outflow temperature theta_p2 as their only variable.
type Model struct {
	p Params

	vP   float64 // pond flow, m3/s
	vH   float64 // hydronic flow, m3/s
	capP float64 // pond capacity rate, W/K
	capH float64 // hydronic capacity rate, W/K

	perturbed bool
}

/*
NewModel converts the flows and applies the capacity rate guard.

	Args:
		p: installation parameters

	Returns:
		the model

	Notes:
		When both streams carry the same capacity rate the exchanger relation
		degenerates to 0/0. The pond flow is then raised by 0.1 %.
*/
func NewModel(p Params) *Model {
	m := &Model{
		p:  p,
		vP: p.FlowP / 1000.0,
		vH: p.FlowH / 60000.0,
	}

	m.capP = p.RhoP * m.vP * p.CP
	m.capH = p.RhoH * m.vH * p.CH

	if scalar.EqualWithinAbsOrRel(m.capP, m.capH, capacityMatchTol, capacityMatchTol) {
		m.vP *= capacityPerturbation
		m.capP = p.RhoP * m.vP * p.CP
		m.perturbed = true
	}

	return m
}

// Params returns the parameters the model was built from.
func (m *Model) Params() Params { return m.p }

// PondFlow returns the pond flow used by the model, m3/s.
func (m *Model) PondFlow() float64 { return m.vP }

// HydronicFlow returns the hydronic flow, m3/s.
func (m *Model) HydronicFlow() float64 { return m.vH }

// CapacityRates returns the pond and hydronic capacity rates, W/K.
func (m *Model) CapacityRates() (pond, hydronic float64) { return m.capP, m.capH }

// Perturbed reports whether the capacity rate guard changed the pond flow.
func (m *Model) Perturbed() bool { return m.perturbed }

/*
Q returns the heat extracted from the pond.

	Args:
		thetaP2: pond outflow temperature, degree C

	Returns:
		heat transfer rate, W
*/
func (m *Model) Q(thetaP2 float64) float64 {
	return m.capP * (m.p.ThetaP1 - thetaP2)
}

/*
ThetaH2 returns the hydronic return temperature (leaving the SHX, entering
the GHX).

	Args:
		thetaP2: pond outflow temperature, degree C

	Returns:
		hydronic return temperature, degree C

	Notes:
		The loop's mean temperature sits q·R_GHX/L_GHX above the ground; the
		return is half the loop temperature rise above that mean.
*/
func (m *Model) ThetaH2(thetaP2 float64) float64 {
	q := m.Q(thetaP2)
	return m.p.ThetaG + q*m.p.RGHX/m.p.LGHX + q/(2*m.capH)
}

/*
ThetaH1 returns the hydronic supply temperature (leaving the GHX, entering
the SHX).

	Args:
		thetaP2: pond outflow temperature, degree C

	Returns:
		hydronic supply temperature, degree C, never below the ground
		temperature
*/
func (m *Model) ThetaH1(thetaP2 float64) float64 {
	theta := m.ThetaH2(thetaP2) - m.Q(thetaP2)/m.capH
	return math.Max(theta, m.p.ThetaG)
}

// hydronicIsMin reports whether the hydronic loop is the stream with the
// smaller capacity rate. It then pinches at the hot end of the SHX.
func (m *Model) hydronicIsMin() bool {
	return m.capH < m.capP
}

// hotEnd is the SHX temperature difference where the pond enters, K.
func (m *Model) hotEnd(thetaP2 float64) float64 {
	return m.p.ThetaP1 - m.ThetaH2(thetaP2)
}

// coldEnd is the SHX temperature difference where the pond leaves, K.
func (m *Model) coldEnd(thetaP2 float64) float64 {
	return thetaP2 - m.ThetaH1(thetaP2)
}

// ntuTerm is L_SHX/R_SHX·|1/C_h - 1/C_p|, the log of the terminal
// difference ratio a counterflow exchanger must reach.
func (m *Model) ntuTerm() float64 {
	return m.p.LSHX / m.p.RSHX * math.Abs(1/m.capH-1/m.capP)
}

/*
Denominator returns the denominator of the residual's log argument.

	Args:
		thetaP2: pond outflow temperature, degree C

	Returns:
		terminal temperature difference at the pinching end of the SHX, K

	Notes:
		Its zero is the vertical asymptote of the residual.
*/
func (m *Model) Denominator(thetaP2 float64) float64 {
	if m.hydronicIsMin() {
		return m.hotEnd(thetaP2)
	}
	return m.coldEnd(thetaP2)
}

func (m *Model) numerator(thetaP2 float64) float64 {
	if m.hydronicIsMin() {
		return m.coldEnd(thetaP2)
	}
	return m.hotEnd(thetaP2)
}
