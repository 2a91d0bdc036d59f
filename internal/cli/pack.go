package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/BoxFit/internal/config"
	"github.com/piwi3910/BoxFit/internal/engine"
	"github.com/piwi3910/BoxFit/internal/export"
	"github.com/piwi3910/BoxFit/internal/model"
)

// outputFlags select the report files written after a run.
type outputFlags struct {
	json    string
	pdf     string
	labels  string
	xlsx    string
	png     string
	saveJob string
}

func (o *outputFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&o.json, "json", "", "write render-ready JSON to file (- for stdout)")
	fs.StringVar(&o.pdf, "pdf", "", "write a PDF report with front, top and side views")
	fs.StringVar(&o.labels, "labels", "", "write a PDF of QR-coded item labels")
	fs.StringVar(&o.xlsx, "xlsx", "", "write an Excel workbook")
	fs.StringVar(&o.png, "png", "", "write an isometric PNG preview")
	fs.StringVar(&o.saveJob, "save-job", "", "save the resolved input as a job file")
}

func (c *CLI) packCommand() *cobra.Command {
	var (
		in  jobFlags
		out outputFlags
	)

	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Pack items into one container",
		Long: `Pack places items into a single container, first-fit over extreme points
by default, and prints which items fitted (with position and orientation) and
which did not.`,
		Example: `  boxfit pack
  boxfit pack --num-items 50 --item-width 30 --item-height 20 --item-depth 10
  boxfit pack --preset "20ft container" --items cargo.csv --sort volume-desc --pdf report.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.FromContext(cmd.Context())

			job, err := in.resolve(cmd, c.Config, logger)
			if err != nil {
				return err
			}
			logger.Info("Created container", "container", job.Container.String())
			logger.Info("Created items", "count", len(job.Items))

			prog := newProgress(logger)
			result, err := engine.New(job.Settings).WithLogger(logger).Pack(job.Container, job.Items)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Packed %d items", len(job.Items)))

			if out.json != "-" {
				c.printResult(result)
			}
			return c.writeOutputs(out, job, result)
		},
	}

	in.register(cmd)
	out.register(cmd)
	return cmd
}

func (c *CLI) writeOutputs(out outputFlags, job model.Job, result model.PackingResult) error {
	if out.json != "" {
		if out.json == "-" {
			if err := export.ExportJSON(c.Out, result); err != nil {
				return err
			}
		} else {
			f, err := os.Create(out.json)
			if err != nil {
				return err
			}
			if err := export.ExportJSON(f, result); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			c.printDetail("JSON: %s", out.json)
		}
	}
	if out.pdf != "" {
		if err := export.ExportPDF(out.pdf, result); err != nil {
			return fmt.Errorf("pdf: %w", err)
		}
		c.printDetail("PDF: %s", out.pdf)
	}
	if out.labels != "" {
		if err := export.ExportLabels(out.labels, result); err != nil {
			return fmt.Errorf("labels: %w", err)
		}
		c.printDetail("Labels: %s", out.labels)
	}
	if out.xlsx != "" {
		if err := export.ExportExcel(out.xlsx, result); err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
		c.printDetail("Excel: %s", out.xlsx)
	}
	if out.png != "" {
		if err := export.ExportPNG(out.png, result, export.DefaultImageSize); err != nil {
			return fmt.Errorf("png: %w", err)
		}
		c.printDetail("Preview: %s", out.png)
	}
	if out.saveJob != "" {
		if err := config.SaveJob(out.saveJob, job); err != nil {
			return fmt.Errorf("save job: %w", err)
		}
		c.printDetail("Job: %s", out.saveJob)
	}
	return nil
}
