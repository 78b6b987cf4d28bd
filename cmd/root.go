package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gnames/gn"
	"github.com/medbase/meddb/internal/ioconfig"
	"github.com/medbase/meddb/internal/iofs"
	"github.com/medbase/meddb/internal/iologger"
	app "github.com/medbase/meddb/pkg"
	"github.com/medbase/meddb/pkg/config"
	"github.com/spf13/cobra"
)

var (
	homeDir string
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
	Use:     "meddb",
	Short:   "meddb normalizes pharmaceutical catalogs for fast search",
	Long: `meddb manages a pharmaceutical catalog store: it loads institution
drug catalogs, canonicalizes every record's active ingredient from its
free-text description, and maintains a compact ingredient grouping table
that turns full-catalog scans into indexed lookups.

Typical workflow:
  meddb init        create or update the store schema
  meddb load        load institution catalog records
  meddb normalize   canonicalize ingredients and rebuild groups
  meddb search      find records by ingredient substring
  meddb status      quick readiness probe

Configuration precedence (highest to lowest):
  1. Environment variables (MEDDB_*)
  2. Config file (./meddb.yaml or ~/.config/meddb/meddb.yaml)
  3. Built-in defaults

Environment variables use underscores for nested fields, e.g.
database.path becomes MEDDB_DATABASE_PATH.`,
	PersistentPreRunE: bootstrap,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults.
	// Will be reconfigured with the user's settings after config load.
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if cfgFile == "" && !ioconfig.ConfigFileExists(homeDir) {
		path, err := ioconfig.GenerateDefaultConfig(homeDir)
		if err != nil {
			gn.Warn("Cannot generate config file: %v", err)
		} else {
			gn.Info("Generated default config at <em>%s</em>", path)
		}
	}

	res, err := ioconfig.Load(cfgFile)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	cfg = res.Config

	if err = iologger.Init(config.LogDir(homeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"source", res.Source, "config_file", res.SourcePath)

	return nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V
	rootCmd.Flags().BoolP("version", "V", false, "version for meddb")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./meddb.yaml or ~/.config/meddb/meddb.yaml)")

	rootCmd.AddCommand(getInitCmd())
	rootCmd.AddCommand(getLoadCmd())
	rootCmd.AddCommand(getNormalizeCmd())
	rootCmd.AddCommand(getSearchCmd())
	rootCmd.AddCommand(getInspectCmd())
	rootCmd.AddCommand(getStatusCmd())
	rootCmd.AddCommand(getBenchCmd())
}
