package main

import (
	"fmt"
	"os"

	"netzero-nexus/internal/analysis"
	"netzero-nexus/internal/charts"
	"netzero-nexus/internal/dataset"
	"netzero-nexus/internal/models"
	"netzero-nexus/internal/report"

	"github.com/spf13/cobra"
)

var (
	filtersPath string
	renderOut   string
	exportOut   string
	showQuality bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write the dashboard as a static HTML page",
	Args:  cobra.NoArgs,
	RunE:  runRender,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered initiatives to an xlsx workbook",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the dashboard sections as tables",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	for _, c := range []*cobra.Command{renderCmd, exportCmd, summaryCmd} {
		c.Flags().StringVarP(&filtersPath, "filters", "f", "", "YAML filter file (default: select everything)")
	}
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "dashboard.html", "output HTML file")
	summaryCmd.Flags().BoolVar(&showQuality, "quality", false, "also print per-column data quality")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "filtered_initiatives.xlsx", "output xlsx file")
}

// prepare loads the dataset and resolves the filters shared by the
// non-interactive commands.
func prepare(cmd *cobra.Command) (*models.Dataset, models.FilterSpec, error) {
	ds, err := loadDataset(cmd.Context(), cfg)
	if err != nil {
		return nil, models.FilterSpec{}, err
	}
	spec, err := resolveSpec(ds, filtersPath)
	if err != nil {
		return nil, models.FilterSpec{}, err
	}
	return ds, spec, nil
}

func runRender(cmd *cobra.Command, _ []string) error {
	ds, spec, err := prepare(cmd)
	if err != nil {
		return err
	}

	out, err := analysis.Render(ds, spec, cfg.PreviewRows)
	if err != nil {
		return err
	}

	f, err := os.Create(renderOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", renderOut, err)
	}
	defer f.Close()

	err = charts.RenderPage(f, charts.PageData{
		Options: dataset.Options(ds),
		Spec:    spec,
		Output:  out,
	})
	if err != nil {
		return fmt.Errorf("render %s: %w", renderOut, err)
	}

	logger.Info().Str("out", renderOut).Int("rows", out.Rows).Msg("dashboard written")
	return nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	ds, spec, err := prepare(cmd)
	if err != nil {
		return err
	}

	view := analysis.Filter(ds, spec)

	f, err := os.Create(exportOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", exportOut, err)
	}
	defer f.Close()

	if err := dataset.WriteXLSX(f, view.Records); err != nil {
		return fmt.Errorf("export %s: %w", exportOut, err)
	}

	logger.Info().Str("out", exportOut).Int("rows", view.Len()).Msg("filtered initiatives exported")
	return nil
}

func runSummary(cmd *cobra.Command, _ []string) error {
	ds, spec, err := prepare(cmd)
	if err != nil {
		return err
	}

	out, err := analysis.Render(ds, spec, cfg.PreviewRows)
	if err != nil {
		return err
	}

	report.Summary(cmd.OutOrStdout(), out)
	if showQuality {
		report.Quality(cmd.OutOrStdout(), ds.Quality)
	}
	return nil
}
