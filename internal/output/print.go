package output

import (
	"fmt"
	"os"
)

// Print outputs any result in the specified format to stdout.
// This is a convenience function for CLI commands.
func Print(result any, format string) error {
	if err := Write(os.Stdout, format, result); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	return nil
}
