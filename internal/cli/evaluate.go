package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/loadwatch/internal/config"
	"github.com/ppiankov/loadwatch/internal/model"
	"github.com/ppiankov/loadwatch/internal/pipeline"
	"github.com/ppiankov/loadwatch/internal/planning"
)

var (
	evalDeadlines int
	evalDomains   int
	evalEnergy    string
	evalTasks     string
	evalConfig    string
)

func init() {
	rootCmd.AddCommand(evaluateCmd)
	evaluateCmd.Flags().IntVar(&evalDeadlines, "deadlines", 0, "Fixed deadlines in the next 14 days (required)")
	evaluateCmd.Flags().IntVar(&evalDomains, "domains", 0, "Active high-load domains (required)")
	evaluateCmd.Flags().StringVar(&evalEnergy, "energy", "", "Energy scores for the last 3 days, comma-separated (required)")
	evaluateCmd.Flags().StringVar(&evalTasks, "tasks", "", "Path to a YAML task list for a planning advisory (optional)")
	evaluateCmd.Flags().StringVar(&evalConfig, "config", "", "Path to config YAML (optional)")
	evaluateCmd.MarkFlagRequired("deadlines")
	evaluateCmd.MarkFlagRequired("domains")
	evaluateCmd.MarkFlagRequired("energy")
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Run the decision pipeline on current load inputs",
	Long: "Evaluates the three load signals into a state, looks up active rules,\n" +
		"derives authority, and checks recovery readiness. With --tasks, also\n" +
		"requests a planning advisory — which the derived authority may refuse.",
	RunE: runEvaluate,
}

// taskFile is the YAML shape accepted by --tasks.
type taskFile struct {
	Tasks       []model.Task     `yaml:"tasks"`
	Constraints model.Constraint `yaml:"constraints"`
}

func parseEnergy(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	scores := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid energy score %q: expected an integer", strings.TrimSpace(p))
		}
		scores = append(scores, n)
	}
	return scores, nil
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(evalConfig)
	if err != nil {
		return err
	}

	scores, err := parseEnergy(evalEnergy)
	if err != nil {
		return err
	}

	inputs := model.StateInputs{
		FixedDeadlines14d:     evalDeadlines,
		ActiveHighLoadDomains: evalDomains,
		EnergyScoresLast3Days: scores,
	}

	result, err := pipeline.Run(inputs, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println(pipeline.FormatText(result))

	if evalTasks == "" {
		return nil
	}

	data, err := os.ReadFile(evalTasks)
	if err != nil {
		return fmt.Errorf("failed to read task file: %w", err)
	}
	var tf taskFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return fmt.Errorf("failed to parse task file: %w", err)
	}

	plan := planning.Propose(model.PlanRequest{
		Tasks:         tf.Tasks,
		Constraints:   tf.Constraints,
		DecisionState: result.Authority,
	})

	fmt.Println()
	if plan.Advisory == nil {
		fmt.Println(plan.Reason)
		return nil
	}
	fmt.Println(planning.FormatAdvisory(*plan.Advisory))
	return nil
}
