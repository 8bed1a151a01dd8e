// Root command for the rainforest CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/internal/ctxlog"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/internal/layers"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/internal/paths"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/dataframe"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/etl"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/lakestore"
)

const version = "0.1.0"

// Global flag values.
var (
	flagConfigDir    string
	flagWarehouseDir string
	flagRawDir       string
	flagLogLevel     string
	flagLogFormat    string
	flagMemoize      bool
)

// runtimeCfg holds the settings resolved by PersistentPreRunE for all
// subcommands: directory locations, the logger, and the memoization switch.
var runtimeCfg struct {
	warehouseDir string
	rawDir       string
	database     string
	format       string
	memoize      bool
	logger       *slog.Logger
}

// registry is the warehouse table graph.
var registry = layers.Registry()

var rootCmd = &cobra.Command{
	Use:     "rainforest",
	Short:   "Rainforest runs a bronze/silver/gold e-commerce warehouse",
	Version: version,
	Long: `Rainforest is a batch pipeline over an e-commerce lake: bronze units
ingest raw JSONL landings, silver units conform them into dimensions and
facts, and gold units publish wide reporting tables and daily metrics.
Running a table runs its upstream chain first, validates primary keys, and
appends a fresh ingestion-timestamp partition to the warehouse.`,
	PersistentPreRunE: initRuntimeConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config", "", "config directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagWarehouseDir, "warehouse-dir", "", "warehouse root (default: $(CWD)/.rainforest/warehouse)")
	rootCmd.PersistentFlags().StringVar(&flagRawDir, "raw-dir", "", "raw-zone root (default: $(CWD)/.rainforest/raw)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "log format: text or json")
	rootCmd.PersistentFlags().BoolVar(&flagMemoize, "memoize", false, "cache resolved tables for the duration of one run")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(seedCmd)
}

// initRuntimeConfig loads the config file and resolves every setting with
// flag > config > environment > default precedence.
func initRuntimeConfig(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(flagConfigDir)
	if err != nil {
		return fmt.Errorf("resolving config dir: %w", err)
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}

	runtimeCfg.warehouseDir, err = paths.ResolveWarehouseDir(flagWarehouseDir, cfg.GetString(cfgKeyWarehouseDir))
	if err != nil {
		return fmt.Errorf("resolving warehouse dir: %w", err)
	}
	runtimeCfg.rawDir, err = paths.ResolveRawDir(flagRawDir, cfg.GetString(cfgKeyRawDir))
	if err != nil {
		return fmt.Errorf("resolving raw dir: %w", err)
	}
	runtimeCfg.database = cfg.GetString(cfgKeyDatabase)
	runtimeCfg.format = cfg.GetString(cfgKeyFormat)

	runtimeCfg.memoize = cfg.GetBool(cfgKeyMemoize)
	if cmd.Flags().Changed("memoize") {
		runtimeCfg.memoize = flagMemoize
	}

	logLevel := cfg.GetString(cfgKeyLogLevel)
	if cmd.Flags().Changed("log-level") {
		logLevel = flagLogLevel
	}
	logFormat := cfg.GetString(cfgKeyLogFormat)
	if cmd.Flags().Changed("log-format") {
		logFormat = flagLogFormat
	}
	runtimeCfg.logger, err = buildLogger(logLevel, logFormat)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	runtimeCfg.logger = runtimeCfg.logger.With("run_id", uuid.NewString())
	return nil
}

// buildLogger constructs the process logger writing to stderr, keeping
// stdout free for command output.
func buildLogger(level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}

// commandContext returns the command's context with the process logger
// attached.
func commandContext(cmd *cobra.Command) context.Context {
	return ctxlog.WithLogger(cmd.Context(), runtimeCfg.logger)
}

// buildRuntime assembles the execution context the data commands share: an
// in-memory engine session, the warehouse store with its catalog, and the
// raw-zone source. The caller must call the returned cleanup.
func buildRuntime() (*etl.Runtime, func(), error) {
	sess, err := dataframe.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("opening engine session: %w", err)
	}
	store := lakestore.NewStore(
		lakestore.WithCatalogDir(filepath.Join(runtimeCfg.warehouseDir, "_catalog")))
	src := lakestore.NewSourceStore(runtimeCfg.rawDir)

	opts := []etl.RuntimeOption{
		etl.WithWarehouseDir(runtimeCfg.warehouseDir),
		etl.WithDatabase(runtimeCfg.database),
		etl.WithFormat(runtimeCfg.format),
	}
	if runtimeCfg.memoize {
		opts = append(opts, etl.WithMemoization())
	}
	rt := etl.NewRuntime(sess, store, src, opts...)
	return rt, func() { sess.Close() }, nil
}
