package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/piwi3910/BoxFit/internal/engine"
	"github.com/piwi3910/BoxFit/internal/model"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorDim    = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleBest    = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "=>"
)

func (c *CLI) printSuccess(format string, args ...any) {
	fmt.Fprintln(c.Out, styleSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func (c *CLI) printWarning(format string, args ...any) {
	fmt.Fprintln(c.Out, styleWarning.Render(iconWarning)+" "+styleWarning.Render(fmt.Sprintf(format, args...)))
}

func (c *CLI) printInfo(format string, args ...any) {
	fmt.Fprintln(c.Out, styleDim.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

func (c *CLI) printDetail(format string, args ...any) {
	fmt.Fprintln(c.Out, "  "+styleDim.Render(fmt.Sprintf(format, args...)))
}

// printResult lists fitted and unfitted items followed by a summary line.
func (c *CLI) printResult(result model.PackingResult) {
	fmt.Fprintln(c.Out, styleTitle.Render("Container: ")+result.Container.String())

	fmt.Fprintln(c.Out, styleTitle.Render("FITTED ITEMS:"))
	for _, p := range result.Fitted {
		fmt.Fprintf(c.Out, "  %s %s\n", styleSuccess.Render(iconArrow), p)
	}
	fmt.Fprintln(c.Out, styleTitle.Render("UNFITTED ITEMS:"))
	for _, it := range result.Unfitted {
		fmt.Fprintf(c.Out, "  %s %s\n", styleError.Render(iconArrow), it)
	}
	fmt.Fprintln(c.Out, styleDim.Render(strings.Repeat("*", 51)))
	c.printSummary(result)
}

func (c *CLI) printSummary(result model.PackingResult) {
	msg := fmt.Sprintf("Fitted %s of %s items, utilization %s, weight %s",
		styleNumber.Render(fmt.Sprint(len(result.Fitted))),
		styleNumber.Render(fmt.Sprint(result.Total())),
		styleNumber.Render(fmt.Sprintf("%.1f%%", result.Utilization()*100)),
		styleNumber.Render(fmt.Sprintf("%.2f", result.FittedWeight())))
	if len(result.Unfitted) > 0 {
		c.printWarning("%d items did not fit", len(result.Unfitted))
	}
	c.printSuccess("%s", msg)
}

// printComparison prints one row per scenario and marks the best one.
func (c *CLI) printComparison(results []engine.ComparisonResult) {
	best, _ := engine.BestComparison(results)

	width := len("Scenario")
	for _, r := range results {
		width = max(width, len(r.Scenario.Name))
	}

	header := fmt.Sprintf("%-*s  %8s  %8s  %11s", width, "Scenario", "Fitted", "Unfitted", "Utilization")
	fmt.Fprintln(c.Out, styleTitle.Render(header))
	for _, r := range results {
		row := fmt.Sprintf("%-*s  %8d  %8d  %10.1f%%", width, r.Scenario.Name,
			r.FittedCount, r.UnfittedCount, r.Utilization*100)
		if r.Scenario.Name == best.Scenario.Name {
			row = styleBest.Render(row + "  " + iconSuccess)
		}
		fmt.Fprintln(c.Out, row)
	}
}
