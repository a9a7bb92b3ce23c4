package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/janssenerikw/Geothermal-SWM-Pond-Thermal-Mitigation/casefile"
	"github.com/janssenerikw/Geothermal-SWM-Pond-Thermal-Mitigation/chart"
	"github.com/janssenerikw/Geothermal-SWM-Pond-Thermal-Mitigation/pond"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newSweepCmd(a *app) *cobra.Command {
	var (
		pf             paramFlags
		from, to, step float64
		csvPath        string
		plotPath       string
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Solve an installation over a range of hydronic flows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flows, err := pond.FlowRange(from, to, step)
			if err != nil {
				return err
			}

			// the swept flow stands in for flow_h during validation
			if !cmd.Flags().Changed("flow-h") {
				pf.p.FlowH = from
			}
			p, err := pf.params(cmd.Flags())
			if err != nil {
				return err
			}

			points, err := pond.Sweep(cmd.Context(), a.solver, p, flows, a.cfg.GetInt(keySweepWorkers))
			if err != nil {
				return err
			}
			log.WithField("points", len(points)).Info("sweep solved")

			if plotPath != "" {
				if err := chart.SaveSweep(points, plotPath); err != nil {
					return fmt.Errorf("plot: %w", err)
				}
				log.WithField("file", plotPath).Info("plot saved")
			}

			switch csvPath {
			case "":
				return writeSweep(cmd.OutOrStdout(), points)
			case "-":
				return casefile.WriteSweep(cmd.OutOrStdout(), points)
			}
			w, err := os.Create(csvPath)
			if err != nil {
				return err
			}
			if err := casefile.WriteSweep(w, points); err != nil {
				w.Close()
				return err
			}
			return w.Close()
		},
	}
	pf.bind(cmd.Flags())
	cmd.Flags().Float64Var(&from, "from", 1, "first hydronic flow, L/min")
	cmd.Flags().Float64Var(&to, "to", 40, "last hydronic flow, L/min")
	cmd.Flags().Float64Var(&step, "step", 1, "hydronic flow increment, L/min")
	cmd.Flags().StringVar(&csvPath, "csv", "", "write the sweep as CSV to this file (- for stdout)")
	cmd.Flags().StringVar(&plotPath, "plot", "", "save a chart (png, svg, pdf)")
	return cmd
}

func writeSweep(w io.Writer, points []pond.SweepPoint) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "flow_h\ttheta_p2\ttheta_h1\ttheta_h2\tq\tconfirmed\t")
	for _, pt := range points {
		r := pt.Result
		fmt.Fprintf(tw, "%g\t%.3f\t%.3f\t%.3f\t%.1f\t%t\t\n", pt.FlowH, r.ThetaP2, r.ThetaH1, r.ThetaH2, r.Q, r.Confirmed)
	}
	return tw.Flush()
}
