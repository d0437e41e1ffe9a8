// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cds-lookup CLI. It answers
// CDS view / DDIC table lookups against a local SQLite knowledge base and
// prints the result as JSON on stdout.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cds-lookup/internal/cds"
	"github.com/pdiddy/cds-lookup/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// errReported signals that an error object was already printed and the
// process should exit 1 without further output.
var errReported = errors.New("error reported")

var validate = validator.New(validator.WithRequiredStructEnabled())

// newRootCmd builds the cds-lookup command tree. Each call returns an
// independent tree with its own viper instance.
func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "cds-lookup",
		Short: "Look up CDS view and DDIC table mappings",
		Long: `cds-lookup answers four lookups against a local SQLite knowledge base
that maps CDS views onto DDIC tables and fields:

  fuzzy_search           views and tables whose name or description contains --query
  get_cds_from_table     views built on --table
  get_cds_fields         mapped fields of the view --cds
  get_cds_field_mapping  view fields exposing --table / --field

Results are printed as JSON on stdout. Failures are printed as
{"error": "<message>"} on stdout as well.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, v)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cds-lookup.yaml or ~/.config/cds-lookup/cds-lookup.yaml)")

	rootCmd.Flags().String("action", "", "lookup to run: "+actionList())
	rootCmd.Flags().String("query", "", "search term for fuzzy_search")
	rootCmd.Flags().String("table", "", "DDIC table name")
	rootCmd.Flags().String("cds", "", "CDS view name")
	rootCmd.Flags().String("field", "", "DDIC field name")
	rootCmd.Flags().String("db", "", "knowledge base file (default: data/cds_knowledge.db next to the executable)")
	rootCmd.Flags().String("format", string(types.OutputJSON), "output format: json, yaml, or table")
	rootCmd.Flags().BoolP("verbose", "v", false, "write diagnostics to stderr")
	rootCmd.Flags().Bool("fail-on-error", false, "exit with status 1 when an error object is printed")

	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// configFlags maps viper keys to the flags that override them.
var configFlags = map[string]string{
	"db_path":       "db",
	"format":        "format",
	"verbose":       "verbose",
	"fail_on_error": "fail-on-error",
}

// readConfigSources wires flags, .env, environment, the optional config
// file, and defaults into v, in that order of precedence. It does not
// decode or validate; callers can read single keys from v even when it
// returns an error, since flags and environment are bound first.
func readConfigSources(cmd *cobra.Command, v *viper.Viper) error {
	for key, flag := range configFlags {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("binding flag --%s: %w", flag, err)
		}
	}

	// A missing .env is fine.
	_ = godotenv.Load()

	v.SetEnvPrefix("CDS_LOOKUP")
	v.AutomaticEnv()

	v.SetDefault("db_path", cds.DefaultDBPath())
	v.SetDefault("format", string(types.OutputJSON))

	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("cds-lookup")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "cds-lookup"))
		}
	}

	if err := v.ReadInConfig(); err == nil {
		verbosef(cmd, v.GetBool("verbose"), "Using config file: %s\n", v.ConfigFileUsed())
	} else if cfgFile != "" {
		return fmt.Errorf("reading config file %s: %w", cfgFile, err)
	}
	return nil
}

// decodeConfig builds and validates the lookup settings from v.
func decodeConfig(v *viper.Viper) (types.LookupConfig, error) {
	var cfg types.LookupConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// verbosef writes a diagnostic line to stderr when enabled.
func verbosef(cmd *cobra.Command, enabled bool, format string, args ...any) {
	if enabled {
		fmt.Fprintf(cmd.ErrOrStderr(), format, args...)
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
