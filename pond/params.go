// Package pond computes the steady-state heat balance of a stormwater pond
// cooled through a shell heat exchanger (SHX) whose hydronic loop rejects the
// heat to the ground through a ground heat exchanger (GHX).
package pond

import (
	"errors"
	"fmt"
)

// Params describes one installation. Temperatures are in degree C.
type Params struct {
	ThetaG  float64 `json:"theta_g" toml:"theta_g" csv:"theta_g"`    // ground temperature, degree C
	ThetaP1 float64 `json:"theta_p1" toml:"theta_p1" csv:"theta_p1"` // upstream pond temperature, degree C
	FlowP   float64 `json:"flow_p" toml:"flow_p" csv:"flow_p"`       // pond flow, L/s
	FlowH   float64 `json:"flow_h" toml:"flow_h" csv:"flow_h"`       // hydronic flow, L/min
	RSHX    float64 `json:"r_shx" toml:"r_shx" csv:"r_shx"`          // shell side thermal resistance, m K/W
	RGHX    float64 `json:"r_ghx" toml:"r_ghx" csv:"r_ghx"`          // ground thermal resistance, m K/W
	LSHX    float64 `json:"l_shx" toml:"l_shx" csv:"l_shx"`          // shell exchanger length, m
	LGHX    float64 `json:"l_ghx" toml:"l_ghx" csv:"l_ghx"`          // ground exchanger length, m
	RhoP    float64 `json:"rho_p" toml:"rho_p" csv:"rho_p"`          // pond water density, kg/m3
	RhoH    float64 `json:"rho_h" toml:"rho_h" csv:"rho_h"`          // hydronic fluid density, kg/m3
	CP      float64 `json:"c_p" toml:"c_p" csv:"c_p"`                // pond water specific heat, J/kg K
	CH      float64 `json:"c_h" toml:"c_h" csv:"c_h"`                // hydronic fluid specific heat, J/kg K
}

// WithWaterDefaults fills unset densities and specific heats with the
// properties of water.
func (p Params) WithWaterDefaults() Params {
	if p.RhoP == 0 {
		p.RhoP = rhoWater
	}
	if p.RhoH == 0 {
		p.RhoH = rhoWater
	}
	if p.CP == 0 {
		p.CP = cWater
	}
	if p.CH == 0 {
		p.CH = cWater
	}
	return p
}

// ErrNonPositive is returned by Validate for a flow, resistance, length or
// fluid property that is zero or negative.
var ErrNonPositive = errors.New("physical quantity must be positive")

// Validate rejects inputs that are not physical. Solve does not call it;
// outer layers use it to report bad input before solving.
func (p Params) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"flow_p", p.FlowP},
		{"flow_h", p.FlowH},
		{"r_shx", p.RSHX},
		{"r_ghx", p.RGHX},
		{"l_shx", p.LSHX},
		{"l_ghx", p.LGHX},
		{"rho_p", p.RhoP},
		{"rho_h", p.RhoH},
		{"c_p", p.CP},
		{"c_h", p.CH},
	}
	for _, c := range checks {
		if !(c.value > 0) {
			return fmt.Errorf("%s = %g: %w", c.name, c.value, ErrNonPositive)
		}
	}
	return nil
}
