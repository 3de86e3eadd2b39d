package main

import (
	"fmt"
	"os"

	"github.com/agusespa/pysilent/internal/analyzer"
	"github.com/agusespa/pysilent/internal/report"
	"github.com/agusespa/pysilent/pkg/config"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	exitCode := 0
	cmd := newRootCmd(&exitCode)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}

func newRootCmd(exitCode *int) *cobra.Command {
	var (
		configFile  string
		noSnippets  bool
		excludes    []string
		jsonOutput  bool
		filesOnly   bool
		parallelFix bool
		workers     int
	)

	cmd := &cobra.Command{
		Use:           "pysilent <path>",
		Short:         "Detect silent exception handling patterns in Python code",
		Args:          cobra.ExactArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configFile != "" {
				loaded, err := config.LoadConfig(configFile)
				if err != nil {
					return fmt.Errorf("failed to load config from %s: %w", configFile, err)
				}
				cfg = loaded
			}
			cfg.ExcludePatterns = append(cfg.ExcludePatterns, excludes...)
			if noSnippets {
				cfg.ShowSnippets = false
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}

			path := args[0]
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("path %s does not exist", path)
			}

			a, err := analyzer.New(analyzer.Options{
				ExcludePatterns: cfg.ExcludePatterns,
				Workers:         cfg.Workers,
				Diagnostics:     os.Stderr,
			})
			if err != nil {
				return err
			}

			agg, err := a.AnalyzePath(path)
			if err != nil {
				return err
			}

			var renderer report.Renderer
			switch {
			case jsonOutput:
				renderer = &report.JSONRenderer{}
			case filesOnly:
				renderer = &report.FilesOnlyRenderer{}
			case parallelFix:
				renderer = &report.FixPlanRenderer{}
			default:
				renderer = &report.TextRenderer{ShowSnippets: cfg.ShowSnippets}
			}

			if err := renderer.Render(os.Stdout, agg); err != nil {
				return err
			}

			// The process exit status carries the issue count; zero
			// means clean.
			*exitCode = agg.Total()
			return nil
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "Path to JSON configuration file")
	cmd.Flags().BoolVar(&noSnippets, "no-snippets", false, "Don't show code snippets in output")
	cmd.Flags().StringArrayVar(&excludes, "exclude", nil, "Additional path patterns to exclude (repeatable)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")
	cmd.Flags().BoolVar(&filesOnly, "files-only", false, "Output only the list of files with issues (one per line)")
	cmd.Flags().BoolVar(&parallelFix, "parallel-fix", false, "Output a fix plan for files with issues")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of parallel analysis workers (0 = number of CPUs)")
	cmd.MarkFlagsMutuallyExclusive("json", "files-only", "parallel-fix")

	return cmd
}
