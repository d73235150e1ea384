package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phpray/phpray/internal/check"
)

var explainCmd = &cobra.Command{
	Use:   "explain <identifier>",
	Short: "Describe a diagnostic identifier or rule id",
	Args:  cobra.ExactArgs(1),
	RunE:  runExplain,
}

func runExplain(cmd *cobra.Command, args []string) error {
	target := args[0]

	for _, c := range newCheckRegistry().Active(check.Level10) {
		m := c.Metadata()
		if string(m.ID) == target {
			fmt.Fprintf(cmd.OutOrStdout(), "%s (level %d)\n  %s\n", m.ID, m.Level, m.Title)
			return nil
		}
	}
	for _, r := range newRuleRegistry().All() {
		m := r.Metadata()
		if m.ID == target {
			fmt.Fprintf(cmd.OutOrStdout(), "%s (rule, %s)\n  %s\n  presets: %v  categories: %v\n",
				m.ID, m.Applicability, m.Summary, m.Presets, m.Categories)
			return nil
		}
	}

	return fmt.Errorf("unknown identifier or rule id: %s", target)
}
