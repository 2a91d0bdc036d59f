package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/BoxFit/internal/engine"
)

func (c *CLI) optimizeCommand() *cobra.Command {
	var (
		in          jobFlags
		out         outputFlags
		generations int
		population  int
		seed        int64
	)

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Search item orders for a fuller packing",
		Long: `Optimize runs a seeded genetic search over the order in which items are
offered to the packer. The input order and the largest-first order are always
candidates, so the result never fits fewer items than either. Interrupting the
search prints the best packing found so far.`,
		Example: `  boxfit optimize --generations 200 --seed 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.FromContext(cmd.Context())

			job, err := in.resolve(cmd, c.Config, logger)
			if err != nil {
				return err
			}

			gc := engine.DefaultGeneticConfig()
			gc.Generations = c.Config.Generations
			gc.PopulationSize = c.Config.PopulationSize
			gc.Seed = c.Config.Seed
			flags := cmd.Flags()
			if flags.Changed("generations") {
				gc.Generations = generations
			}
			if flags.Changed("population") {
				gc.PopulationSize = population
			}
			if flags.Changed("seed") {
				gc.Seed = seed
			}

			logger.Info("Optimizing", "items", len(job.Items), "generations", gc.Generations,
				"population", gc.PopulationSize, "seed", gc.Seed)
			prog := newProgress(logger)
			result, err := engine.OptimizeOrder(cmd.Context(), job.Settings, job.Container, job.Items, gc)
			interrupted := errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
			if err != nil && !interrupted {
				return err
			}
			prog.done(fmt.Sprintf("Optimized order of %d items", len(job.Items)))

			if out.json != "-" {
				c.printResult(result)
			}
			if interrupted {
				c.printWarning("search interrupted, showing the best order found")
			}
			if werr := c.writeOutputs(out, job, result); werr != nil {
				return werr
			}
			return err
		},
	}

	in.register(cmd)
	out.register(cmd)
	cmd.Flags().IntVar(&generations, "generations", 0, "number of generations (default from config)")
	cmd.Flags().IntVar(&population, "population", 0, "population size (default from config)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (default from config)")
	return cmd
}
