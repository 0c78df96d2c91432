// Package main provides the wcg binary entry point.
// wcg loads a wiki page export and its category links and answers taxonomy
// queries over the resulting category graph.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	internal "github.com/ZanzyTHEbar/wikigraph/wcg"
	"github.com/ZanzyTHEbar/wikigraph/wcg/config"
	"github.com/ZanzyTHEbar/wikigraph/wcg/taxonomy"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the persistent flags and the lazily opened taxonomy.
type app struct {
	configPath string
	pages      string
	links      string
	root       string
	logLevel   string

	cfg    *config.Config
	logger zerolog.Logger
	tx     *taxonomy.Taxonomy
}

func rootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   internal.DefaultAppName,
		Short: "Query a wiki category graph as a taxonomy",
		Long: `wcg loads a page export and a category-link export (tab separated,
optionally gzip compressed) and answers taxonomy queries:

- ancestor categories of a page, up to the configured root
- instance pages under a category
- direct parents, cycle diagnostics and title prefix search`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Config file path (YAML)")
	flags.StringVar(&a.pages, "pages", "", "Page export (overrides sources.pages)")
	flags.StringVar(&a.links, "links", "", "Category-link export (overrides sources.categoryLinks)")
	flags.StringVar(&a.root, "root", "", "Root category label (overrides taxonomy.root)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	cmd.AddCommand(
		descendantsCmd(a),
		ancestorsCmd(a),
		parentsCmd(a),
		countCmd(a),
		titlesCmd(a),
		cyclesCmd(a),
		statsCmd(a),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", internal.DefaultAppName, Version, BuildTime)
			},
		},
	)

	return cmd
}

// open loads configuration, applies flag overrides and builds the taxonomy once.
func (a *app) open() (*taxonomy.Taxonomy, error) {
	if a.tx != nil {
		return a.tx, nil
	}

	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return nil, err
	}
	if a.pages != "" {
		cfg.Sources.Pages = a.pages
	}
	if a.links != "" {
		cfg.Sources.CategoryLinks = a.links
	}
	if a.root != "" {
		cfg.Taxonomy.Root = a.root
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	a.cfg = cfg
	a.logger = internal.NewLogger(cfg.Log.Level)

	tx, err := taxonomy.FromConfig(cfg, a.logger)
	if err != nil {
		return nil, err
	}
	a.tx = tx
	return tx, nil
}
