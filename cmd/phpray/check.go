package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phpray/phpray/internal/check"
	"github.com/phpray/phpray/internal/diag"
	"github.com/phpray/phpray/internal/diagfmt"
	"github.com/phpray/phpray/internal/engine"
	"github.com/phpray/phpray/internal/observ"
	"github.com/phpray/phpray/internal/source"
)

var (
	checkFormat string
	checkWidth  int
)

func init() {
	checkCmd.Flags().StringVar(&checkFormat, "format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().IntVar(&checkWidth, "preview-width", 120, "max grapheme-cluster width for a previewed source line, 0 for unlimited")
}

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Run strictness-level checks over a PHP source tree",
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := loadEngineConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ignoreFilter, err := loadIgnoreFilter(cfg)
	if err != nil {
		return fmt.Errorf("loading baseline: %w", err)
	}

	timer := observ.NewTimer()
	discoverPhase := timer.Begin("discover")
	fset, ids, err := loadFileSet(args, cfg)
	timer.End(discoverPhase, fmt.Sprintf("%d files", len(ids)))
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	checks := selectedChecks(newCheckRegistry(), cfg)

	jobs, _ := cmd.Root().PersistentFlags().GetInt("jobs")
	maxDiag, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")

	analyzePhase := timer.Begin("analyze")
	results, err := engine.Run(context.Background(), ids, fset, nil, checks, engine.Options{
		Jobs:           jobs,
		MaxDiagnostics: maxDiag,
		Level:          check.Level(cfg.Checks.Level),
		IgnoreFilter:   ignoreFilter,
	})
	timer.End(analyzePhase, fmt.Sprintf("%d checks", len(checks)))
	if err != nil {
		return fmt.Errorf("running analysis: %w", err)
	}

	all := collectDiagnostics(results)
	if err := renderDiagnostics(cmd, all, fset, checkFormat, checkWidth); err != nil {
		return err
	}

	if showTimings, _ := cmd.Root().PersistentFlags().GetBool("timings"); showTimings {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}

	if len(all) > 0 {
		exitCode = 1
	}
	return nil
}

func collectDiagnostics(results []engine.FileResult) []diag.Diagnostic {
	var all []diag.Diagnostic
	for _, r := range results {
		all = append(all, r.Diagnostics...)
	}
	return all
}

func renderDiagnostics(cmd *cobra.Command, diags []diag.Diagnostic, fset *source.FileSet, format string, previewWidth int) error {
	color, _ := cmd.Root().PersistentFlags().GetString("color")
	switch format {
	case "json":
		return diagfmt.JSON(cmd.OutOrStdout(), diags, nil, fset, diagfmt.JSONOpts{PathMode: diagfmt.PathModeAuto})
	case "pretty", "":
		diagfmt.Pretty(cmd.OutOrStdout(), diags, fset, diagfmt.PrettyOpts{
			Color:    color != "off",
			PathMode: diagfmt.PathModeAuto,
			Width:    previewWidth,
		})
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}
