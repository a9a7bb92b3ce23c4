package main

import (
	"fmt"
	"os"

	"github.com/janssenerikw/Geothermal-SWM-Pond-Thermal-Mitigation/casefile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newBatchCmd(a *app) *cobra.Command {
	var in, out string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Solve every row of a CSV case table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(in)
			if err != nil {
				return err
			}
			defer f.Close()

			cases, err := casefile.ReadCases(f)
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}

			rows := make([]casefile.ResultRow, len(cases))
			unconfirmed := 0
			for i, c := range cases {
				res := a.solver.Solve(c.Params)
				if !res.Confirmed {
					unconfirmed++
					log.WithFields(log.Fields{"case": c.Name, "residual": res.Residual}).Warn("solution not confirmed")
				}
				rows[i] = casefile.NewResultRow(c, res)
			}
			log.WithFields(log.Fields{"cases": len(cases), "unconfirmed": unconfirmed}).Info("batch solved")

			if out == "" {
				return casefile.WriteResults(cmd.OutOrStdout(), rows)
			}
			w, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := casefile.WriteResults(w, rows); err != nil {
				w.Close()
				return err
			}
			return w.Close()
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "CSV case table")
	cmd.Flags().StringVar(&out, "out", "", "CSV result table (default stdout)")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
