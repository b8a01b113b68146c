package scenario

import (
	"github.com/ppiankov/loadwatch/internal/model"
	"github.com/ppiankov/loadwatch/internal/pipeline"
)

// Inputs is the scenario-file shape of one evaluation: the three load
// signals plus optional planning material nested alongside them.
type Inputs struct {
	FixedDeadlines14d     int               `yaml:"fixed_deadlines_14d" json:"fixed_deadlines_14d"`
	ActiveHighLoadDomains int               `yaml:"active_high_load_domains" json:"active_high_load_domains"`
	EnergyScoresLast3Days []int             `yaml:"energy_scores_last_3_days" json:"energy_scores_last_3_days"`
	Tasks                 []model.Task      `yaml:"tasks,omitempty" json:"tasks,omitempty"`
	Constraints           *model.Constraint `yaml:"constraints,omitempty" json:"constraints,omitempty"`
}

// StateInputs extracts the core evaluation inputs.
func (in Inputs) StateInputs() model.StateInputs {
	return model.StateInputs{
		FixedDeadlines14d:     in.FixedDeadlines14d,
		ActiveHighLoadDomains: in.ActiveHighLoadDomains,
		EnergyScoresLast3Days: in.EnergyScoresLast3Days,
	}
}

// Expected describes the outputs a scenario asserts. Advisory scenarios
// may assert substrings of the formatted advisory or that planning was
// blocked; for those, execution defaults to DENIED and mode defaults from
// the expected state.
type Expected struct {
	State            model.State      `yaml:"state" json:"state"`
	Planning         model.Permission `yaml:"planning" json:"planning"`
	Execution        model.Permission `yaml:"execution,omitempty" json:"execution,omitempty"`
	Mode             model.Mode       `yaml:"mode,omitempty" json:"mode,omitempty"`
	AdvisoryContains []string         `yaml:"advisory_contains,omitempty" json:"advisory_contains,omitempty"`
	AdvisoryBlocked  *bool            `yaml:"advisory_blocked,omitempty" json:"advisory_blocked,omitempty"`
}

// advisory reports whether this is an advisory-style expectation.
func (e *Expected) advisory() bool {
	return len(e.AdvisoryContains) > 0 || e.AdvisoryBlocked != nil
}

// Scenario is one named test case for the full pipeline.
type Scenario struct {
	Name     string    `yaml:"name" json:"name"`
	Inputs   Inputs    `yaml:"inputs" json:"inputs"`
	Expected *Expected `yaml:"expected,omitempty" json:"expected,omitempty"`
}

// File is the root of a scenario document. Both keys may be present.
type File struct {
	Scenarios         []Scenario `yaml:"scenarios" json:"scenarios"`
	AdvisoryScenarios []Scenario `yaml:"advisory_scenarios" json:"advisory_scenarios"`
}

// Result is the full pipeline output for one scenario.
type Result struct {
	Name     string            `json:"name"`
	Pipeline pipeline.Result   `json:"pipeline"`
	Plan     *model.PlanResult `json:"plan,omitempty"`
}

// ValidationResult reports how a scenario's output compared to its
// expected values. Every mismatched field is listed — validation never
// stops at the first difference.
type ValidationResult struct {
	Passed     bool     `json:"passed"`
	Mismatches []string `json:"mismatches"`
}

// Outcome is the validated result of one scenario within a report.
type Outcome struct {
	Index      int      `json:"index"`
	Name       string   `json:"name"`
	Passed     bool     `json:"passed"`
	Mismatches []string `json:"mismatches,omitempty"`
}

// Report aggregates one scenario file run.
type Report struct {
	RunID    string    `json:"run_id"`
	File     string    `json:"file"`
	Total    int       `json:"total"`
	Passed   int       `json:"passed"`
	Failed   int       `json:"failed"`
	Outcomes []Outcome `json:"outcomes"`
}
