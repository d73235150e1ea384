// Command phpray is a static analyzer and refactoring tool for PHP: it
// runs strictness-level checks (spec §4.6) and safe-edit rules (spec
// §4.3) over a source tree and reports or fixes what it finds.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phpray/phpray/internal/logging"
	"github.com/phpray/phpray/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "phpray",
	Short: "phpray is a static analyzer and refactoring tool for PHP",
	Long:  `phpray finds bugs PHP's type system can't by walking the CST with a strictness-level check hierarchy, and rewrites patterns a human would rewrite by hand with safe edit rules.`,
}

func main() {
	rootCmd.Version = version.VersionString()
	rootCmd.PersistentPreRunE = setupLogger
	rootCmd.PersistentPostRun = teardownLogger

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug-level logging")
	rootCmd.PersistentFlags().Bool("timings", false, "print phase timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum diagnostics per file (0=unbounded)")
	rootCmd.PersistentFlags().Int("jobs", 0, "max parallel workers (0=auto)")
	rootCmd.PersistentFlags().String("config", "", "path to phpray.toml (default: auto-discovered from cwd upward)")

	if err := rootCmd.Execute(); err != nil {
		// spec §6.6: configuration/I/O errors that abort the run exit 2.
		os.Exit(2)
	}
	os.Exit(exitCode)
}

// exitCode is set by a subcommand's RunE before returning nil to report
// "diagnostics found or edits pending" (exit 1) without cobra treating it
// as a command error (which would print usage and force exit 2).
var exitCode int

var processLogger *zap.Logger

func setupLogger(cmd *cobra.Command, _ []string) error {
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	logger, err := logging.New(verbose)
	if err != nil {
		return err
	}
	processLogger = logger
	return nil
}

func teardownLogger(*cobra.Command, []string) {
	logging.Sync(processLogger)
}
