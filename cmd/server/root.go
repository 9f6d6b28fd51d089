package main

import (
	"context"
	"fmt"
	"os"

	"netzero-nexus/internal/analysis"
	"netzero-nexus/internal/config"
	"netzero-nexus/internal/dataset"
	"netzero-nexus/internal/logging"
	"netzero-nexus/internal/models"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Set by PersistentPreRunE before any subcommand runs.
var (
	cfg    *config.Config
	logger zerolog.Logger
)

// Global flag values. Flags that are not set leave the environment value in place.
var (
	flagDataset   string
	flagSheet     string
	flagSource    string
	flagDSN       string
	flagTable     string
	flagLogLevel  string
	flagLogFormat string
)

var rootCmd = &cobra.Command{
	Use:   "netzero-nexus",
	Short: "NetZero Nexus sustainability initiatives dashboard",
	Long: `NetZero Nexus loads a spreadsheet of sustainability initiatives and serves
an interactive dashboard of their GHG mitigation and cost savings. Without a
subcommand it runs the web server.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runServe,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagDataset, "dataset", "", "dataset file (.xlsx or .csv), overrides DATASET_PATH")
	pf.StringVar(&flagSheet, "sheet", "", "worksheet name, overrides DATASET_SHEET")
	pf.StringVar(&flagSource, "source", "", "dataset source: file or postgres, overrides DATASET_SOURCE")
	pf.StringVar(&flagDSN, "postgres-dsn", "", "postgres connection string, overrides POSTGRES_DSN")
	pf.StringVar(&flagTable, "table", "", "postgres table, overrides POSTGRES_TABLE")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level, overrides LOG_LEVEL")
	pf.StringVar(&flagLogFormat, "log-format", "", "console or json, overrides LOG_FORMAT")

	// serve is also the default command
	rootCmd.Flags().StringVarP(&servePort, "port", "p", "", "listen port, overrides PORT")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(summaryCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load()
	if err != nil {
		return err
	}
	applyFlags(cmd, c)
	if err := c.Validate(); err != nil {
		return err
	}

	cfg = c
	logger = logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	return nil
}

func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	override := func(name string, dst *string, val string) {
		if flags.Changed(name) {
			*dst = val
		}
	}
	override("dataset", &c.DatasetPath, flagDataset)
	override("sheet", &c.DatasetSheet, flagSheet)
	override("source", &c.DatasetSource, flagSource)
	override("postgres-dsn", &c.PostgresDSN, flagDSN)
	override("table", &c.PostgresTable, flagTable)
	override("log-level", &c.LogLevel, flagLogLevel)
	override("log-format", &c.LogFormat, flagLogFormat)

	// A dataset path on the command line implies the file source.
	if flags.Changed("dataset") && !flags.Changed("source") {
		c.DatasetSource = config.SourceFile
	}
}

// loadDataset reads the Dataset from the configured source.
func loadDataset(ctx context.Context, c *config.Config) (*models.Dataset, error) {
	switch c.DatasetSource {
	case config.SourcePostgres:
		src, err := dataset.OpenPostgres(ctx, c.PostgresDSN)
		if err != nil {
			return nil, err
		}
		defer src.Close()
		return src.Load(ctx, c.PostgresTable)
	case config.SourceFile:
		return dataset.LoadFile(c.DatasetPath, c.DatasetSheet)
	default:
		return nil, fmt.Errorf("unknown dataset source %q", c.DatasetSource)
	}
}

// resolveSpec builds the FilterSpec for the non-interactive commands.
// Without a filter file every option is selected.
func resolveSpec(ds *models.Dataset, filtersPath string) (models.FilterSpec, error) {
	opts := dataset.Options(ds)
	if filtersPath == "" {
		return analysis.SelectAll(opts), nil
	}

	ff, err := config.LoadFilterFile(filtersPath)
	if err != nil {
		return models.FilterSpec{}, err
	}
	return ff.Resolve(opts), nil
}
