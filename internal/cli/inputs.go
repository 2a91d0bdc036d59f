package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/BoxFit/internal/config"
	"github.com/piwi3910/BoxFit/internal/importer"
	"github.com/piwi3910/BoxFit/internal/model"
)

// jobFlags are the input flags shared by pack, compare and optimize. The
// bin and item defaults describe the freezer-and-batteries example.
type jobFlags struct {
	binName   string
	binWidth  float64
	binHeight float64
	binDepth  float64
	binWeight float64

	numItems   int
	itemWidth  float64
	itemHeight float64
	itemDepth  float64
	itemWeight float64
	upright    bool

	itemsFile string
	preset    string
	jobFile   string

	strategy      string
	sortOrder     string
	enforceWeight bool
}

var binFlagNames = []string{"bin-name", "bin-width", "bin-height", "bin-depth", "bin-weight"}

func (f *jobFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.binName, "bin-name", "Tiefkühler", "name of the container")
	fs.Float64Var(&f.binWidth, "bin-width", 155, "width of the container")
	fs.Float64Var(&f.binHeight, "bin-height", 53.5, "height of the container")
	fs.Float64Var(&f.binDepth, "bin-depth", 58.5, "depth of the container")
	fs.Float64Var(&f.binWeight, "bin-weight", 600, "weight capacity of the container (0 = unlimited)")

	fs.IntVar(&f.numItems, "num-items", 100, "number of identical items to generate")
	fs.Float64Var(&f.itemWidth, "item-width", 48, "width of each generated item")
	fs.Float64Var(&f.itemHeight, "item-height", 28, "height of each generated item")
	fs.Float64Var(&f.itemDepth, "item-depth", 3.5, "depth of each generated item")
	fs.Float64Var(&f.itemWeight, "item-weight", 0.1, "weight of each generated item")
	fs.BoolVar(&f.upright, "upright", false, "generated items must keep their height vertical")

	fs.StringVar(&f.itemsFile, "items", "", "CSV or Excel item list (replaces generated items)")
	fs.StringVar(&f.preset, "preset", "", "container preset name (replaces --bin-* flags)")
	fs.StringVar(&f.jobFile, "job", "", "saved job file (container, items and settings)")

	fs.StringVar(&f.strategy, "strategy", "", "placement strategy: "+joinNames(model.Strategies))
	fs.StringVar(&f.sortOrder, "sort", "", "item order before packing: "+joinNames(model.SortOrders))
	fs.BoolVar(&f.enforceWeight, "enforce-weight", false, "reject items that exceed the weight capacity")
}

func joinNames[T ~string](names []T) string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return strings.Join(out, ", ")
}

// resolve builds the job described by the flags. A job file provides the
// starting point; explicit settings flags override it, and otherwise the
// configured defaults apply.
func (f *jobFlags) resolve(cmd *cobra.Command, cfg model.AppConfig, logger *log.Logger) (model.Job, error) {
	var job model.Job
	if f.jobFile != "" {
		loaded, err := config.LoadJob(f.jobFile)
		if err != nil {
			return model.Job{}, err
		}
		job = loaded
	} else {
		settings := model.DefaultSettings()
		cfg.ApplyToSettings(&settings)

		container, err := f.container(cmd, cfg)
		if err != nil {
			return model.Job{}, err
		}
		items, err := f.items(logger)
		if err != nil {
			return model.Job{}, err
		}
		job = model.NewJob(container.Name, "", container, items, settings)
	}

	flags := cmd.Flags()
	if flags.Changed("strategy") {
		st, err := model.ParseStrategy(f.strategy)
		if err != nil {
			return model.Job{}, err
		}
		job.Settings.Strategy = st
	}
	if flags.Changed("sort") {
		order, err := model.ParseSortOrder(f.sortOrder)
		if err != nil {
			return model.Job{}, err
		}
		job.Settings.SortOrder = order
	}
	if flags.Changed("enforce-weight") {
		job.Settings.EnforceWeight = f.enforceWeight
	}

	job.Normalize()
	if err := job.Validate(); err != nil {
		return model.Job{}, err
	}
	return job, nil
}

// container picks, in order: --preset, explicit --bin-* flags, the
// configured default preset, the --bin-* defaults.
func (f *jobFlags) container(cmd *cobra.Command, cfg model.AppConfig) (model.Container, error) {
	inv := cfg.Inventory()
	if f.preset != "" {
		p := inv.FindContainerByName(f.preset)
		if p == nil {
			return model.Container{}, fmt.Errorf("unknown preset %q (available: %s)", f.preset, strings.Join(inv.ContainerNames(), ", "))
		}
		return p.ToContainer(), nil
	}

	for _, name := range binFlagNames {
		if cmd.Flags().Changed(name) {
			return f.binContainer(), nil
		}
	}
	if cfg.DefaultContainer != "" {
		if p := inv.FindContainerByName(cfg.DefaultContainer); p != nil {
			return p.ToContainer(), nil
		}
	}
	return f.binContainer(), nil
}

func (f *jobFlags) binContainer() model.Container {
	return model.NewContainer(f.binName, f.binWidth, f.binHeight, f.binDepth, f.binWeight)
}

func (f *jobFlags) items(logger *log.Logger) ([]model.Item, error) {
	if f.itemsFile != "" {
		res := importer.ImportFile(f.itemsFile)
		for _, w := range res.Warnings {
			logger.Warn(w, "file", f.itemsFile)
		}
		for _, e := range res.Errors {
			logger.Error(e, "file", f.itemsFile)
		}
		if len(res.Items) == 0 {
			if len(res.Errors) > 0 {
				return nil, fmt.Errorf("import %s: %s", f.itemsFile, strings.Join(res.Errors, "; "))
			}
			return nil, fmt.Errorf("import %s: no items", f.itemsFile)
		}
		logger.Info("Imported items", "count", len(res.Items), "file", f.itemsFile)
		return res.Items, nil
	}

	if f.numItems < 0 {
		return nil, fmt.Errorf("--num-items must not be negative")
	}
	items := make([]model.Item, f.numItems)
	for i := range items {
		items[i] = model.NewItem(fmt.Sprintf("Akku%d", i+1), f.itemWidth, f.itemHeight, f.itemDepth, f.itemWeight)
		items[i].Upright = f.upright
	}
	return items, nil
}
