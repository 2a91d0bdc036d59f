package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/BoxFit/internal/config"
)

func (c *CLI) presetsCommand() *cobra.Command {
	var exportPath, importPath string

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List, export or import container presets",
		Example: `  boxfit presets
  boxfit presets --export presets.json
  boxfit presets --import warehouse.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.FromContext(cmd.Context())

			if importPath != "" {
				cfg, err := config.ImportInventory(importPath, c.Config)
				if err != nil {
					return fmt.Errorf("import presets: %w", err)
				}
				path := c.ConfigPath
				if path == "" {
					path = config.DefaultConfigPath()
				}
				if err := config.Save(path, cfg); err != nil {
					return err
				}
				c.Config = cfg
				logger.Info("Imported presets", "file", importPath, "config", path)
			}

			inv := c.Config.Inventory()
			if exportPath != "" {
				if err := config.ExportInventory(exportPath, inv); err != nil {
					return fmt.Errorf("export presets: %w", err)
				}
				c.printSuccess("Exported %d presets to %s", len(inv.Containers), exportPath)
				return nil
			}

			width := len("Name")
			for _, p := range inv.Containers {
				width = max(width, len(p.Name))
			}
			fmt.Fprintln(c.Out, styleTitle.Render(fmt.Sprintf("%-*s  %28s  %10s", width, "Name", "W x H x D", "Max weight")))
			for _, p := range inv.Containers {
				size := fmt.Sprintf("%g x %g x %g", p.Width, p.Height, p.Depth)
				weight := "-"
				if p.MaxWeight > 0 {
					weight = fmt.Sprintf("%g", p.MaxWeight)
				}
				line := fmt.Sprintf("%-*s  %28s  %10s", width, p.Name, size, weight)
				if p.Name == c.Config.DefaultContainer {
					line = styleBest.Render(line + "  " + iconSuccess)
				}
				fmt.Fprintln(c.Out, line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&exportPath, "export", "", "write all presets to a JSON file")
	cmd.Flags().StringVar(&importPath, "import", "", "merge presets from a JSON file into the config")
	return cmd
}
