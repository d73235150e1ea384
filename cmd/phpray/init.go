package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default phpray.toml in the target directory",
	Long:  `Creates phpray.toml with a sensible starting configuration: the recommended rule preset, check level 1, and no baseline. If [path] is omitted, the current directory is used.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

const defaultManifest = `# phpray configuration.
# Describe a rule or diagnostic identifier: phpray explain <identifier>

[rules]
preset = "recommended"

[checks]
level = 1

[paths]
include = ["."]
exclude = ["vendor/*"]
`

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}

	if err := os.MkdirAll(target, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}

	manifestPath := filepath.Join(target, "phpray.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := os.WriteFile(manifestPath, []byte(defaultManifest), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", manifestPath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", manifestPath)
	return nil
}
