package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"netzero-nexus/internal/config"
	"netzero-nexus/internal/models"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeDataset(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"Location", "Scenario_Analysis", "Initiative_Name", "Cost_Saving", "GHG_Mitigated", "MIRR",
			"Alignment_with_Government_Target", "Customization_Required", "Sellable_to_Other_Companies"},
		{"A", "S1", "Solar", 10, 5, 0.1, "Yes", "No", "Yes"},
		{"B", "S2", "Wind", 30, 12, 0.2, "No", "Yes", "No"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "initiatives.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadDataset_File(t *testing.T) {
	c := &config.Config{DatasetSource: config.SourceFile, DatasetPath: writeDataset(t)}

	ds, err := loadDataset(context.Background(), c)

	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, "Wind", ds.Records[1].Initiative)
}

func TestLoadDataset_UnknownSource(t *testing.T) {
	_, err := loadDataset(context.Background(), &config.Config{DatasetSource: "ftp"})

	assert.Error(t, err)
}

func TestResolveSpec_NoFiltersSelectsEverything(t *testing.T) {
	ds, err := loadDataset(context.Background(), &config.Config{DatasetSource: config.SourceFile, DatasetPath: writeDataset(t)})
	require.NoError(t, err)

	spec, err := resolveSpec(ds, "")

	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, spec.Locations)
	assert.Equal(t, 0.0, spec.CostMin)
	assert.Equal(t, 30.0, spec.CostMax)
}

func TestResolveSpec_FilterFile(t *testing.T) {
	ds, err := loadDataset(context.Background(), &config.Config{DatasetSource: config.SourceFile, DatasetPath: writeDataset(t)})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "filters.yaml")
	require.NoError(t, os.WriteFile(path, []byte("location: [B]\ncost_max: 50\n"), 0o644))

	spec, err := resolveSpec(ds, path)

	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, spec.Locations)
	assert.Equal(t, []string{"S1", "S2"}, spec.Scenarios)
	assert.Equal(t, 50.0, spec.CostMax)
}

func TestResolveSpec_MissingFilterFile(t *testing.T) {
	_, err := resolveSpec(&models.Dataset{}, filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
}

func TestApplyFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&flagDataset, "dataset", "", "")
	cmd.Flags().StringVar(&flagSource, "source", "", "")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "", "")
	require.NoError(t, cmd.Flags().Parse([]string{"--dataset", "other.csv", "--log-level", "debug"}))

	c := &config.Config{DatasetSource: config.SourcePostgres, DatasetPath: "data.xlsx", LogLevel: "info", LogFormat: "json"}
	applyFlags(cmd, c)

	assert.Equal(t, "other.csv", c.DatasetPath)
	assert.Equal(t, config.SourceFile, c.DatasetSource)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, "json", c.LogFormat)
}

func TestRootCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"serve", "render", "export", "summary"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
	assert.NotNil(t, rootCmd.Flags().Lookup("port"))
	assert.NotNil(t, renderCmd.Flags().Lookup("filters"))
}
