package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ppiankov/loadwatch/internal/config"
	"github.com/ppiankov/loadwatch/internal/scenario"
)

var (
	checkScenario string
	checkConfig   string
	checkFormat   string
)

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkScenario, "scenario", "", "Glob pattern for scenario files (required)")
	checkCmd.Flags().StringVar(&checkConfig, "config", "", "Path to config YAML (optional)")
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "text", "Output format (text|json)")
	checkCmd.MarkFlagRequired("scenario")
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run scenario assertions through the pipeline",
	Long: "Loads scenario files matching a glob pattern, runs each through the\n" +
		"full pipeline, and validates every expected field against the result.\n\n" +
		"Exit code 0 if all scenarios pass, 1 if any fail.\n" +
		"Use in CI to gate config changes on decision correctness.",
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(checkConfig)
	if err != nil {
		return err
	}

	matches, err := filepath.Glob(checkScenario)
	if err != nil {
		return fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no scenario files match pattern: %s", checkScenario)
	}

	var reports []*scenario.Report
	for _, path := range matches {
		r, err := scenario.RunAll(path, cfg)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		reports = append(reports, r)
	}

	switch checkFormat {
	case "json":
		out, err := scenario.FormatReportsJSON(reports)
		if err != nil {
			return err
		}
		fmt.Println(out)
	default:
		fmt.Print(scenario.FormatReports(reports))
	}

	for _, r := range reports {
		if r.Failed > 0 {
			os.Exit(1)
		}
	}

	return nil
}
