package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phpray/phpray/internal/engine"
	"github.com/phpray/phpray/internal/fixsafety"
	"github.com/phpray/phpray/internal/observ"
)

var fixFormat string

func init() {
	fixCmd.Flags().StringVar(&fixFormat, "format", "pretty", "output format for any remaining diagnostics (pretty|json)")
}

var fixCmd = &cobra.Command{
	Use:   "fix [paths...]",
	Short: "Apply safe edit rules to a PHP source tree",
	RunE:  runFix,
}

func runFix(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := loadEngineConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	timer := observ.NewTimer()
	discoverPhase := timer.Begin("discover")
	fset, ids, err := loadFileSet(args, cfg)
	timer.End(discoverPhase, fmt.Sprintf("%d files", len(ids)))
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	rules := selectedRules(newRuleRegistry(), cfg)

	jobs, _ := cmd.Root().PersistentFlags().GetInt("jobs")

	applyPhase := timer.Begin("apply")
	results, err := engine.Run(context.Background(), ids, fset, rules, nil, engine.Options{
		Jobs:        jobs,
		Apply:       true,
		VerifyParse: true, // spec §6.5 step 3: always re-parse before accepting an edit
	})
	timer.End(applyPhase, fmt.Sprintf("%d rules", len(rules)))
	if err != nil {
		return fmt.Errorf("applying rules: %w", err)
	}

	committed, failures := fixsafety.Commit(results, fixsafety.Options{BackupDir: cfg.Fix.BackupDir})
	for _, c := range committed {
		fmt.Fprintf(cmd.OutOrStdout(), "fixed %s (%d edit(s))\n", c.Path, c.EditCount)
	}

	remaining := collectDiagnostics(results)
	remaining = append(remaining, failures...)
	if len(remaining) > 0 {
		if err := renderDiagnostics(cmd, remaining, fset, fixFormat, 120); err != nil {
			return err
		}
	}
	if showTimings, _ := cmd.Root().PersistentFlags().GetBool("timings"); showTimings {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}

	if len(committed) > 0 || len(remaining) > 0 {
		exitCode = 1
	}
	if len(failures) > 0 {
		exitCode = 2
	}
	return nil
}
