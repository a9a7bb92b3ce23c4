package pond

import (
	"math"

	"github.com/janssenerikw/Geothermal-SWM-Pond-Thermal-Mitigation/roots"
)

// Result is the converged state of one installation.
type Result struct {
	ThetaP2   float64 `json:"theta_p2"`  // pond outflow temperature, degree C
	ThetaH1   float64 `json:"theta_h1"`  // hydronic supply temperature, degree C
	ThetaH2   float64 `json:"theta_h2"`  // hydronic return temperature, degree C
	Q         float64 `json:"q"`         // heat transfer rate, W
	Residual  float64 `json:"residual"`  // residual at ThetaP2
	Confirmed bool    `json:"confirmed"` // residual within tolerance

	Asymptote  float64 `json:"asymptote"`  // zero of the log denominator, degree C
	Guess      float64 `json:"guess"`      // initial guess handed to the finder, degree C
	Iterations int     `json:"iterations"` // finder iterations
	Perturbed  bool    `json:"perturbed"`  // pond flow raised by the capacity rate guard
}

// Settings configures a Solver.
type Settings struct {
	Finder           roots.Finder
	Offset           float64 // guess offset from the asymptote, K
	LowFlowOffset    float64 // guess offset below LowFlowThreshold, K
	LowFlowThreshold float64 // hydronic flow, m3/s
	Tolerance        float64 // admissible |residual| of a confirmed result
}

// DefaultSettings returns the damped Newton finder with the standard guess
// offsets and tolerance.
func DefaultSettings() Settings {
	return Settings{
		Finder:           roots.NewNewton(),
		Offset:           defaultOffset,
		LowFlowOffset:    defaultLowFlowOffset,
		LowFlowThreshold: defaultLowFlowThreshold,
		Tolerance:        defaultTolerance,
	}
}

// Solver is safe for concurrent use as long as its Finder is.
type Solver struct {
	s Settings
}

// NewSolver fills the zero fields of s from DefaultSettings.
func NewSolver(s Settings) *Solver {
	d := DefaultSettings()
	if s.Finder == nil {
		s.Finder = d.Finder
	}
	if s.Offset == 0 {
		s.Offset = d.Offset
	}
	if s.LowFlowOffset == 0 {
		s.LowFlowOffset = d.LowFlowOffset
	}
	if s.LowFlowThreshold == 0 {
		s.LowFlowThreshold = d.LowFlowThreshold
	}
	if s.Tolerance == 0 {
		s.Tolerance = d.Tolerance
	}
	return &Solver{s: s}
}

// Settings returns the effective settings.
func (s *Solver) Settings() Settings { return s.s }

// Solve solves p with DefaultSettings.
func Solve(p Params) Result {
	return NewSolver(Settings{}).Solve(p)
}

/*
Solve finds the pond outflow temperature of p.

	Args:
		p: installation parameters

	Returns:
		the solution; Confirmed is false when the search failed or the
		residual at the returned temperature exceeds the tolerance. An
		unconfirmed ThetaP2 is kept between ThetaG and ThetaP1.

	Notes:
		1. locate the asymptote of the residual (zero of the log denominator)
		2. step off it by a fixed offset onto the physical branch
		3. search the residual's root from there
		4. re-evaluate the residual to confirm the root
*/
func (s *Solver) Solve(p Params) Result {
	m := NewModel(p)

	asym, err := s.Asymptote(m)
	guess := asym + s.GuessOffset(m)
	if err != nil {
		// no asymptote: nothing better than the inflow temperature
		guess = p.ThetaP1
	}

	found, ferr := s.s.Finder.Find(m.residualFunc(), guess)
	thetaP2 := found.X

	check := m.Residual(thetaP2)
	confirmed := err == nil && ferr == nil && found.Converged &&
		check.Valid && math.Abs(check.Value) <= s.s.Tolerance

	if !confirmed {
		if math.IsNaN(thetaP2) || math.IsInf(thetaP2, 0) {
			thetaP2 = p.ThetaP1
		}
		thetaP2 = m.clampOutflow(thetaP2)
		check = m.Residual(thetaP2)
	}

	return Result{
		ThetaP2:    thetaP2,
		ThetaH1:    m.ThetaH1(thetaP2),
		ThetaH2:    m.ThetaH2(thetaP2),
		Q:          m.Q(thetaP2),
		Residual:   check.Value,
		Confirmed:  confirmed,
		Asymptote:  asym,
		Guess:      guess,
		Iterations: found.Iterations,
		Perturbed:  m.Perturbed(),
	}
}

/*
Asymptote finds the pond outflow temperature at which the log denominator
vanishes.

	Args:
		m: model

	Returns:
		asymptote, degree C
*/
func (s *Solver) Asymptote(m *Model) (float64, error) {
	res, err := s.s.Finder.Find(roots.Total(m.Denominator), m.p.ThetaP1)
	return res.X, err
}

// GuessOffset picks the distance between the asymptote and the initial guess.
// Low hydronic flows sit further from the asymptote and get the larger offset.
func (s *Solver) GuessOffset(m *Model) float64 {
	if m.vH < s.s.LowFlowThreshold {
		return s.s.LowFlowOffset
	}
	return s.s.Offset
}

func (m *Model) residualFunc() roots.Func {
	return func(thetaP2 float64) (float64, bool) {
		o := m.Residual(thetaP2)
		return o.Value, o.Valid
	}
}

// clampOutflow keeps an outflow temperature between the ground and the
// upstream pond temperature.
func (m *Model) clampOutflow(thetaP2 float64) float64 {
	lo := math.Min(m.p.ThetaG, m.p.ThetaP1)
	hi := math.Max(m.p.ThetaG, m.p.ThetaP1)
	return math.Min(math.Max(thetaP2, lo), hi)
}
