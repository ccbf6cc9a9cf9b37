// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	configPath string
	catalog    string
	format     string
	reader     string
	logLevel   string

	cfg *config.Config
}

// NewRootCmd builds the command tree. A fresh tree per call keeps flag state
// out of package globals.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "cinematch",
		Short: "Content-based movie recommendations",
		Long: `Cinematch recommends movies similar to a given title using TF-IDF
features built from genres, directors, writers, era, rating and runtime.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd.ErrOrStderr())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (YAML)")
	flags.StringVarP(&opts.catalog, "catalog", "c", "", "catalog file, overrides CATALOG_PATH")
	flags.StringVar(&opts.format, "format", "", "catalog format: csv, tsv, parquet (default: from extension)")
	flags.StringVar(&opts.reader, "reader", "", "catalog reader: builtin, duckdb")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level")

	root.AddCommand(newRecommendCmd(opts))
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newPopularCmd(opts))

	return root
}

// load resolves configuration and configures logging to w.
func (o *rootOptions) load(w io.Writer) error {
	cfg, err := config.LoadWith(o.configPath, func(c *config.Config) {
		if o.catalog != "" {
			c.Catalog.Path = o.catalog
		}
		if o.format != "" {
			c.Catalog.Format = o.format
		}
		if o.reader != "" {
			c.Catalog.Reader = o.reader
		}
		c.Logging.Level = o.logLevel
		c.Logging.Format = "console"
	})
	if err != nil {
		return err
	}

	logOpts := cfg.LoggingOptions()
	logOpts.Output = w
	logging.Init(logOpts)

	o.cfg = cfg
	return nil
}

// loadCatalog reads and cleans the configured catalog.
func (o *rootOptions) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	src, err := catalog.OpenSource(o.cfg.SourceConfig())
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return ExitCode(err)
}
