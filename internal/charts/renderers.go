package charts

import (
	"math"
	"sort"

	"netzero-nexus/internal/models"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Section headings, in page order
const (
	HeadingKeyMetrics  = "Key Metrics"
	HeadingScenario    = "Scenario Analysis"
	HeadingAlignment   = "Alignment with Government Target"
	HeadingInitiative  = "Initiative-wise Analysis"
	HeadingGHGvsCost   = "GHG Mitigated vs. Cost Saving"
	HeadingLocationGHG = "GHG Mitigated by Location"
)

// Scatter bubbles are area-scaled to at most maxSymbolSize pixels across.
const (
	maxSymbolSize = 20
	minSymbolSize = 4
)

// KeyMetrics is the pair of headline indicators.
type KeyMetrics struct {
	Heading string
	GHG     models.Indicator
	Cost    models.Indicator
}

// NewKeyMetrics renders the two indicators of the Key Metrics section.
func NewKeyMetrics(ghg, cost models.Indicator) KeyMetrics {
	return KeyMetrics{Heading: HeadingKeyMetrics, GHG: ghg, Cost: cost}
}

func baseOptions(title, subtitle string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "100%",
			Height: "420px",
		}),
	}
}

// ScenarioBar is a vertical bar chart of scenario frequencies.
func ScenarioBar(freqs []models.Frequency) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(baseOptions(HeadingScenario, "Scenario Analysis"),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Scenario", Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Frequency", Type: "value"}),
	)...)

	labels, data := frequencyBars(freqs)
	bar.SetXAxis(labels)
	bar.AddSeries("Frequency", data)
	return bar
}

// AlignmentPie is a pie chart of alignment categories.
func AlignmentPie(counts map[string]int) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(append(baseOptions(HeadingAlignment, "Alignment with Government Target"),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)...)

	slices := PieSlices(counts)
	data := make([]opts.PieData, 0, len(slices))
	for _, sl := range slices {
		data = append(data, opts.PieData{Name: sl.Category, Value: sl.Count})
	}
	pie.AddSeries("Alignment", data)
	return pie
}

// PieSlices orders a category count map by count, then name.
func PieSlices(counts map[string]int) []models.Frequency {
	out := make([]models.Frequency, 0, len(counts))
	for name, n := range counts {
		out = append(out, models.Frequency{Category: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// InitiativeBar is a horizontal bar chart of initiative frequencies.
func InitiativeBar(freqs []models.Frequency) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(baseOptions(HeadingInitiative, "Initiatives by Frequency"),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Frequency", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Initiative", Type: "category"}),
	)...)

	labels, data := frequencyBars(freqs)
	bar.SetXAxis(labels)
	bar.AddSeries("Frequency", data)
	bar.XYReversal()
	return bar
}

// GHGCostScatter plots GHG mitigated against cost saving with one series per
// scenario. Bubble size follows MIRR and the hover name is the initiative.
func GHGCostScatter(points []models.ScatterPoint) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(append(baseOptions(HeadingGHGvsCost, "GHG Mitigated vs. Cost Saving (Size: MIRR)"),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "GHG Mitigated", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Cost Saving", Type: "value"}),
	)...)

	maxSize := 0.0
	for _, p := range points {
		maxSize = math.Max(maxSize, p.Size)
	}

	var order []string
	series := make(map[string][]opts.ScatterData)
	for _, p := range points {
		if _, ok := series[p.Color]; !ok {
			order = append(order, p.Color)
		}
		series[p.Color] = append(series[p.Color], opts.ScatterData{
			Name:       p.Label,
			Value:      []interface{}{p.X, p.Y, p.Size},
			SymbolSize: symbolSize(p.Size, maxSize),
		})
	}

	for _, name := range order {
		scatter.AddSeries(name, series[name])
	}
	return scatter
}

// LocationBar is a vertical bar chart of total GHG mitigated per location.
func LocationBar(totals []models.GroupTotal) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(baseOptions(HeadingLocationGHG, "Total GHG Mitigated by Location"),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Location", Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Total GHG Mitigated", Type: "value"}),
	)...)

	labels := make([]string, len(totals))
	data := make([]opts.BarData, len(totals))
	for i, t := range totals {
		labels[i] = t.Group
		data[i] = opts.BarData{Value: t.Total}
	}
	bar.SetXAxis(labels)
	bar.AddSeries("Total GHG Mitigated", data)
	return bar
}

func frequencyBars(freqs []models.Frequency) ([]string, []opts.BarData) {
	labels := make([]string, len(freqs))
	data := make([]opts.BarData, len(freqs))
	for i, f := range freqs {
		labels[i] = f.Category
		data[i] = opts.BarData{Value: f.Count}
	}
	return labels, data
}

// symbolSize scales a bubble so its area is proportional to v.
func symbolSize(v, largest float64) int {
	if v <= 0 || largest <= 0 {
		return minSymbolSize
	}
	size := int(math.Round(maxSymbolSize * math.Sqrt(v/largest)))
	if size < minSymbolSize {
		return minSymbolSize
	}
	return size
}
