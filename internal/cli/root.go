package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "loadwatch",
	Short: "Deterministic decision support for personal life load",
	Long:  "Evaluates load signals into a state, derives what downstream layers may do, and gates planning advice on that authority. Rule-based and reproducible: same inputs, same output, always.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
