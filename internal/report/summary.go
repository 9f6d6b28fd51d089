// Package report prints a RenderOutput as plain terminal tables.
package report

import (
	"fmt"
	"io"
	"strconv"

	"netzero-nexus/internal/charts"
	"netzero-nexus/internal/models"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	headingColor = color.New(color.FgYellow)
	emptyColor   = color.New(color.FgRed)
)

// Summary writes every dashboard section as a table.
func Summary(w io.Writer, out models.RenderOutput) {
	titleColor.Fprintf(w, "\n=== %s ===\n", charts.PageTitle)
	fmt.Fprintf(w, "%d initiatives match the current filters\n", out.Rows)

	headingColor.Fprintf(w, "\n%s\n", charts.HeadingKeyMetrics)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Total", "Mean", "Delta"})
	for _, ind := range []models.Indicator{out.TotalGHG, out.TotalCost} {
		table.Append([]string{ind.Title, number(ind.Value), number(ind.Mean), number(ind.Delta)})
	}
	table.Render()

	if out.Rows == 0 {
		emptyColor.Fprintln(w, "\nNo initiatives match the current filters.")
		return
	}

	headingColor.Fprintf(w, "\n%s\n", charts.HeadingScenario)
	frequencyTable(w, models.ColScenario, out.Scenarios)

	headingColor.Fprintf(w, "\n%s\n", charts.HeadingAlignment)
	frequencyTable(w, models.ColAlignment, charts.PieSlices(out.Alignment))

	headingColor.Fprintf(w, "\n%s\n", charts.HeadingInitiative)
	frequencyTable(w, models.ColInitiative, out.Initiatives)

	headingColor.Fprintf(w, "\n%s\n", charts.HeadingLocationGHG)
	table = tablewriter.NewWriter(w)
	table.SetHeader([]string{models.ColLocation, models.ColGHGMitigated})
	for _, g := range out.LocationGHG {
		table.Append([]string{g.Group, number(g.Total)})
	}
	table.Render()

	headingColor.Fprintf(w, "\nFiltered Dataset Sample (first %d rows)\n", out.PreviewLimit)
	Preview(w, out.Preview)
}

// Preview writes records as a table with the canonical header.
func Preview(w io.Writer, records []models.Record) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(models.RequiredColumns)
	for _, r := range records {
		table.Append([]string{
			r.Location,
			r.Scenario,
			r.Initiative,
			number(r.CostSaving),
			number(r.GHGMitigated),
			number(r.MIRR),
			r.Alignment,
			r.Customization,
			r.Sellable,
		})
	}
	table.Render()
}

// Quality writes the per-column load profile.
func Quality(w io.Writer, profiles []models.ColumnProfile) {
	headingColor.Fprintln(w, "\nData Quality")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Column", "Rows", "Blank", "Invalid", "Distinct", "Null Rate", "Entropy"})
	for _, p := range profiles {
		table.Append([]string{
			p.Column,
			strconv.Itoa(p.Rows),
			strconv.Itoa(p.Blank),
			strconv.Itoa(p.Invalid),
			strconv.Itoa(p.Distinct),
			strconv.FormatFloat(p.NullRate, 'f', 2, 64),
			strconv.FormatFloat(p.Entropy, 'f', 2, 64),
		})
	}
	table.Render()
}

func frequencyTable(w io.Writer, category string, rows []models.Frequency) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{category, "Count"})
	for _, f := range rows {
		table.Append([]string{f.Category, strconv.Itoa(f.Count)})
	}
	table.Render()
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
