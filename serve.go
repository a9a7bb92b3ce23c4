package main

import (
	"os/signal"
	"syscall"

	"github.com/janssenerikw/Geothermal-SWM-Pond-Thermal-Mitigation/server"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve solve and sweep requests over a websocket at /ws",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.GetString(keyServerAddr)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.NewServer(addr, a.solver, a.cfg.GetInt(keySweepWorkers)).Serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.addr)")
	return cmd
}
