package scenario

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ppiankov/loadwatch/internal/config"
	"github.com/ppiankov/loadwatch/internal/model"
	"github.com/ppiankov/loadwatch/internal/pipeline"
	"github.com/ppiankov/loadwatch/internal/planning"
)

// Run executes one scenario through the full pipeline. The Planning
// Advisor is invoked only when the scenario carries tasks; the advisor
// consumes the derived authority, never the raw state.
func Run(s Scenario, cfg *config.Config) (*Result, error) {
	pipelineResult, err := pipeline.Run(s.Inputs.StateInputs(), cfg)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}

	result := &Result{
		Name:     s.Name,
		Pipeline: pipelineResult,
	}

	if s.Inputs.Tasks != nil {
		constraints := model.Constraint{}
		if s.Inputs.Constraints != nil {
			constraints = *s.Inputs.Constraints
		}
		planResult := planning.Propose(model.PlanRequest{
			Tasks:         s.Inputs.Tasks,
			Constraints:   constraints,
			DecisionState: pipelineResult.Authority,
		})
		result.Plan = &planResult
	}

	return result, nil
}

// Validate compares a scenario's result against its expected output,
// reporting every mismatched field.
func Validate(s Scenario, result *Result) ValidationResult {
	if s.Expected == nil {
		return ValidationResult{Passed: true, Mismatches: []string{}}
	}

	expected := *s.Expected
	if expected.advisory() {
		// Advisory scenarios may omit execution and mode.
		if expected.Execution == "" {
			expected.Execution = model.Denied
		}
		if expected.Mode == "" {
			if expected.State == model.StateNormal {
				expected.Mode = model.ModeNormal
			} else {
				expected.Mode = model.ModeContainment
			}
		}
	}

	auth := result.Pipeline.Authority
	mismatches := []string{}

	if auth.State != expected.State {
		mismatches = append(mismatches, fmt.Sprintf(
			"State mismatch: expected '%s', got '%s'", expected.State, auth.State))
	}
	if auth.Planning != expected.Planning {
		mismatches = append(mismatches, fmt.Sprintf(
			"Planning permission mismatch: expected '%s', got '%s'", expected.Planning, auth.Planning))
	}
	if auth.Execution != expected.Execution {
		mismatches = append(mismatches, fmt.Sprintf(
			"Execution permission mismatch: expected '%s', got '%s'", expected.Execution, auth.Execution))
	}
	if auth.Mode != expected.Mode {
		mismatches = append(mismatches, fmt.Sprintf(
			"Mode mismatch: expected '%s', got '%s'", expected.Mode, auth.Mode))
	}

	mismatches = append(mismatches, validateAdvisory(expected, result)...)

	return ValidationResult{Passed: len(mismatches) == 0, Mismatches: mismatches}
}

func validateAdvisory(expected Expected, result *Result) []string {
	var mismatches []string

	if expected.AdvisoryBlocked != nil {
		blocked := result.Plan != nil && result.Plan.Advisory == nil && result.Plan.BlockedBy != ""
		if blocked != *expected.AdvisoryBlocked {
			mismatches = append(mismatches, fmt.Sprintf(
				"Advisory blocked mismatch: expected %t, got %t", *expected.AdvisoryBlocked, blocked))
		}
	}

	if len(expected.AdvisoryContains) > 0 {
		if result.Plan == nil || result.Plan.Advisory == nil {
			mismatches = append(mismatches, "Advisory content mismatch: no advisory was produced")
			return mismatches
		}
		text := planning.FormatAdvisory(*result.Plan.Advisory)
		for _, want := range expected.AdvisoryContains {
			if !strings.Contains(text, want) {
				mismatches = append(mismatches, fmt.Sprintf(
					"Advisory content mismatch: missing %q", want))
			}
		}
	}

	return mismatches
}

// RunAll runs and validates every scenario in a file.
func RunAll(path string, cfg *config.Config) (*Report, error) {
	scenarios, err := Load(path)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID: uuid.NewString(),
		File:  path,
		Total: len(scenarios),
	}

	for i, s := range scenarios {
		result, err := Run(s, cfg)
		if err != nil {
			report.Failed++
			report.Outcomes = append(report.Outcomes, Outcome{
				Index:      i + 1,
				Name:       s.Name,
				Mismatches: []string{err.Error()},
			})
			continue
		}

		validation := Validate(s, result)
		outcome := Outcome{
			Index:      i + 1,
			Name:       s.Name,
			Passed:     validation.Passed,
			Mismatches: validation.Mismatches,
		}
		if validation.Passed {
			report.Passed++
		} else {
			report.Failed++
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	return report, nil
}
