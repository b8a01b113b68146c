package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/loadwatch/internal/config"
	"github.com/ppiankov/loadwatch/internal/scenario"
)

var (
	runFile   string
	runName   string
	runConfig string
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runFile, "file", "", "Path to a scenario file (required)")
	runCmd.Flags().StringVar(&runName, "name", "", "Run only the named scenario (optional)")
	runCmd.Flags().StringVar(&runConfig, "config", "", "Path to config YAML (optional)")
	runCmd.MarkFlagRequired("file")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Print the full decision output for scenarios in a file",
	Long: "Runs one or all scenarios from a file through the pipeline and prints\n" +
		"the strict scenario output: state, authority, mode, active rules, and\n" +
		"the advisory or blocked reason when tasks are present.",
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(runConfig)
	if err != nil {
		return err
	}

	scenarios, err := scenario.Load(runFile)
	if err != nil {
		return err
	}

	if runName != "" {
		s, err := scenario.Find(scenarios, runName)
		if err != nil {
			return err
		}
		scenarios = []scenario.Scenario{s}
	}

	for i, s := range scenarios {
		result, err := scenario.Run(s, cfg)
		if err != nil {
			return fmt.Errorf("scenario %q: %w", s.Name, err)
		}
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(scenario.FormatResult(result))
	}

	return nil
}
