package export

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/piwi3910/BoxFit/internal/engine"
)

// ExportComparisonChart renders an HTML bar chart of utilisation and fitted
// count per scenario.
func ExportComparisonChart(w io.Writer, results []engine.ComparisonResult) error {
	names := make([]string, len(results))
	utilization := make([]opts.BarData, len(results))
	fitted := make([]opts.BarData, len(results))
	for i, r := range results {
		names[i] = r.Scenario.Name
		utilization[i] = opts.BarData{Value: r.Utilization * 100}
		fitted[i] = opts.BarData{Value: r.FittedCount}
	}

	subtitle := ""
	if len(results) > 0 {
		c := results[0].Result.Container
		subtitle = c.Name + " " + c.Dimension.String()
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Packing comparison", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "Packing comparison", Subtitle: subtitle}),
		charts.WithYAxisOpts(opts.YAxis{Name: "value"}),
		charts.WithLegendOpts(opts.Legend{Top: "5%"}),
	)
	bar.SetXAxis(names).
		AddSeries("Utilization %", utilization).
		AddSeries("Fitted items", fitted)

	return bar.Render(w)
}
