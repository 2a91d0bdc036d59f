// Package cli implements the boxfit command-line interface.
//
// The root command loads the configuration once (see --config) and attaches
// the logger to the command context, so every subcommand and the engine code
// it calls log through log.FromContext.
//
// # Commands
//
//   - pack: place items into one container and print or export the result
//   - compare: run every strategy and sort order on the same input
//   - optimize: search item orders with a seeded genetic algorithm
//   - serve: expose packing over HTTP
//   - presets: list, export and import container presets
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/BoxFit/internal/config"
	"github.com/piwi3910/BoxFit/internal/model"
)

const appName = "boxfit"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	Out        io.Writer
	ConfigPath string
	Config     model.AppConfig
}

// New creates a CLI writing results to out and log lines to logOut.
func New(out, logOut io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(logOut, level),
		Out:    out,
		Config: model.DefaultAppConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "BoxFit packs boxes into a container",
		Long: `BoxFit places rectangular items into one fixed container using an
extreme-point placer, and reports what fitted, where, and in which orientation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.ConfigPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(log.WithContext(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default "+config.DefaultConfigPath()+")")

	root.AddCommand(c.packCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.optimizeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.presetsCommand())

	return root
}
