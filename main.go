package main

import (
	"os"

	"github.com/janssenerikw/Geothermal-SWM-Pond-Thermal-Mitigation/pond"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set with -ldflags "-X main.version=..."
var version = "dev"

type app struct {
	cfg    *viper.Viper
	solver *pond.Solver
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "pondcalc",
		Short: "Steady-state heat balance of a pond cooled by a ground-coupled heat exchanger",
		Long: "pondcalc solves the pond outflow temperature, hydronic loop temperatures and " +
			"heat transfer rate of a stormwater pond whose heat is rejected to the ground " +
			"through a shell heat exchanger and a ground heat exchanger.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if err := setupLog(cfg, cmd.ErrOrStderr()); err != nil {
				return err
			}
			solver, err := newSolver(cfg)
			if err != nil {
				return err
			}
			a.cfg, a.solver = cfg, solver
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default pondcalc.toml in . or $HOME/.config/pondcalc)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newSolveCmd(a),
		newBatchCmd(a),
		newSweepCmd(a),
		newServeCmd(a),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmd.OutOrStdout().Write([]byte(version + "\n"))
			return err
		},
	}
}
