package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/BoxFit/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve packing over HTTP",
		Long: `Serve starts an HTTP API:

  GET  /healthz        liveness
  GET  /api/presets    container presets
  POST /api/pack       pack a job (?format=png for a preview image)
  POST /api/compare    compare strategies (?format=chart for HTML)
  POST /api/optimize   genetic order search (?generations=, ?seed=)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.ListenAddr
			}
			return server.New(c.Config, log.FromContext(cmd.Context())).Run(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (default from config)")
	return cmd
}
