package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/loadwatch/internal/config"
	"github.com/ppiankov/loadwatch/internal/issue"
	"github.com/ppiankov/loadwatch/internal/model"
	"github.com/ppiankov/loadwatch/internal/pipeline"
	"github.com/ppiankov/loadwatch/internal/planning"
)

var (
	issueBody   string
	issueConfig string
)

func init() {
	rootCmd.AddCommand(issueCmd)
	issueCmd.Flags().StringVar(&issueBody, "body", "", "Path to a file holding the GitHub issue form body (required)")
	issueCmd.Flags().StringVar(&issueConfig, "config", "", "Path to config YAML (optional)")
	issueCmd.MarkFlagRequired("body")
}

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Evaluate a GitHub issue form body",
	Long: "Parses the markdown body of a GitHub issue form into pipeline inputs and\n" +
		"optional tasks, runs the full pipeline, and prints a fenced code block\n" +
		"ready to post back as an issue comment.",
	RunE: runIssue,
}

func runIssue(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(issueConfig)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(issueBody)
	if err != nil {
		return fmt.Errorf("failed to read body file: %w", err)
	}

	inputs, tasksText, err := issue.ParseBody(string(data))
	if err != nil {
		fmt.Println(issue.FormatForGitHub(err.Error()))
		os.Exit(1)
	}

	result, err := pipeline.Run(inputs, cfg)
	if err != nil {
		fmt.Println(issue.FormatForGitHub(err.Error()))
		os.Exit(1)
	}

	sections := []string{pipeline.FormatText(result)}

	if tasks := issue.ParseTasks(tasksText); len(tasks) > 0 {
		plan := planning.Propose(model.PlanRequest{
			Tasks:         tasks,
			DecisionState: result.Authority,
		})
		if plan.Advisory == nil {
			sections = append(sections, plan.Reason)
		} else {
			sections = append(sections, planning.FormatAdvisory(*plan.Advisory))
		}
	}

	fmt.Println(issue.FormatForGitHub(strings.Join(sections, "\n\n")))
	return nil
}
