package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/janssenerikw/Geothermal-SWM-Pond-Thermal-Mitigation/casefile"
	"github.com/janssenerikw/Geothermal-SWM-Pond-Thermal-Mitigation/pond"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var errNotConfirmed = errors.New("solution not confirmed")

// paramFlags binds the installation parameters to command line flags. A case
// loaded from a scenario file is overridden by the flags that were set.
type paramFlags struct {
	p         pond.Params
	caseName  string
	scenarios string
}

func (f *paramFlags) bind(fs *pflag.FlagSet) {
	fs.Float64Var(&f.p.ThetaG, "theta-g", 0, "ground temperature, degree C")
	fs.Float64Var(&f.p.ThetaP1, "theta-p1", 0, "upstream pond temperature, degree C")
	fs.Float64Var(&f.p.FlowP, "flow-p", 0, "pond flow, L/s")
	fs.Float64Var(&f.p.FlowH, "flow-h", 0, "hydronic flow, L/min")
	fs.Float64Var(&f.p.RSHX, "r-shx", 0, "shell side thermal resistance, m K/W")
	fs.Float64Var(&f.p.RGHX, "r-ghx", 0, "ground thermal resistance, m K/W")
	fs.Float64Var(&f.p.LSHX, "l-shx", 0, "shell exchanger length, m")
	fs.Float64Var(&f.p.LGHX, "l-ghx", 0, "ground exchanger length, m")
	fs.Float64Var(&f.p.RhoP, "rho-p", 0, "pond water density, kg/m3 (default water)")
	fs.Float64Var(&f.p.RhoH, "rho-h", 0, "hydronic fluid density, kg/m3 (default water)")
	fs.Float64Var(&f.p.CP, "c-p", 0, "pond water specific heat, J/kg K (default water)")
	fs.Float64Var(&f.p.CH, "c-h", 0, "hydronic fluid specific heat, J/kg K (default water)")
	fs.StringVar(&f.caseName, "case", "", "case name in the scenario file")
	fs.StringVar(&f.scenarios, "scenarios", "", "TOML scenario file")
}

func (f *paramFlags) params(fs *pflag.FlagSet) (pond.Params, error) {
	if f.caseName == "" {
		p := f.p.WithWaterDefaults()
		return p, p.Validate()
	}
	if f.scenarios == "" {
		return pond.Params{}, errors.New("--case requires --scenarios")
	}

	s, err := casefile.LoadScenarios(f.scenarios)
	if err != nil {
		return pond.Params{}, err
	}
	c, err := s.Get(f.caseName)
	if err != nil {
		return pond.Params{}, err
	}

	p := c.Params
	overrides := map[string]*float64{
		"theta-g": &p.ThetaG, "theta-p1": &p.ThetaP1,
		"flow-p": &p.FlowP, "flow-h": &p.FlowH,
		"r-shx": &p.RSHX, "r-ghx": &p.RGHX,
		"l-shx": &p.LSHX, "l-ghx": &p.LGHX,
		"rho-p": &p.RhoP, "rho-h": &p.RhoH,
		"c-p": &p.CP, "c-h": &p.CH,
	}
	for name, dst := range overrides {
		if fs.Changed(name) {
			v, err := fs.GetFloat64(name)
			if err != nil {
				return pond.Params{}, err
			}
			*dst = v
		}
	}
	return p, p.Validate()
}

func newSolveCmd(a *app) *cobra.Command {
	var (
		pf     paramFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve one installation",
		Example: "  pondcalc solve --theta-g 10 --theta-p1 30 --flow-p 0.4 --flow-h 17 \\\n" +
			"      --r-shx 0.14 --r-ghx 0.21 --l-shx 230 --l-ghx 183\n" +
			"  pondcalc solve --scenarios cases.toml --case ground-10",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := pf.params(cmd.Flags())
			if err != nil {
				return err
			}

			res := a.solver.Solve(p)
			log.WithFields(log.Fields{
				"theta_p2":   res.ThetaP2,
				"asymptote":  res.Asymptote,
				"iterations": res.Iterations,
				"perturbed":  res.Perturbed,
			}).Debug("solved")

			if asJSON {
				err = writeJSON(cmd.OutOrStdout(), res)
			} else {
				err = writeResult(cmd.OutOrStdout(), res)
			}
			if err != nil {
				return err
			}
			if !res.Confirmed {
				return fmt.Errorf("residual %g at theta_p2 = %g: %w", res.Residual, res.ThetaP2, errNotConfirmed)
			}
			return nil
		},
	}
	pf.bind(cmd.Flags())
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeResult(w io.Writer, r pond.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "theta_p2\t%.3f\tdegree C\n", r.ThetaP2)
	fmt.Fprintf(tw, "theta_h1\t%.3f\tdegree C\n", r.ThetaH1)
	fmt.Fprintf(tw, "theta_h2\t%.3f\tdegree C\n", r.ThetaH2)
	fmt.Fprintf(tw, "q\t%.1f\tW\n", r.Q)
	fmt.Fprintf(tw, "residual\t%.3g\t\n", r.Residual)
	fmt.Fprintf(tw, "confirmed\t%t\t\n", r.Confirmed)
	if r.Perturbed {
		fmt.Fprintf(tw, "perturbed\t%t\t\n", r.Perturbed)
	}
	return tw.Flush()
}
