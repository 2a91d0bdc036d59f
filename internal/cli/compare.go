package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/BoxFit/internal/engine"
	"github.com/piwi3910/BoxFit/internal/export"
)

func (c *CLI) compareCommand() *cobra.Command {
	var (
		in    jobFlags
		chart string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare every strategy and sort order on the same input",
		Example: `  boxfit compare
  boxfit compare --items cargo.csv --chart compare.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.FromContext(cmd.Context())

			job, err := in.resolve(cmd, c.Config, logger)
			if err != nil {
				return err
			}

			scenarios := engine.BuildDefaultScenarios(job.Settings)
			prog := newProgress(logger)
			results, err := engine.CompareScenarios(cmd.Context(), scenarios, job.Container, job.Items)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Compared %d scenarios", len(scenarios)))

			c.printComparison(results)

			if chart != "" {
				f, err := os.Create(chart)
				if err != nil {
					return err
				}
				if err := export.ExportComparisonChart(f, results); err != nil {
					f.Close()
					return fmt.Errorf("chart: %w", err)
				}
				if err := f.Close(); err != nil {
					return err
				}
				c.printDetail("Chart: %s", chart)
			}
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().StringVar(&chart, "chart", "", "write an HTML bar chart of the comparison")
	return cmd
}
