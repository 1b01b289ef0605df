package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireInputPaths validates that at least one input path argument is provided.
// Returns a helpful error message with usage and examples if missing.
func RequireInputPaths(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <path>

Usage: %s

Example:
  %s ./dumps -o result.json`, cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}
