package model

// Task is an immutable (name, ISO date, type) triple.
type Task struct {
	Name     string `json:"name" yaml:"name"`
	Deadline string `json:"deadline" yaml:"deadline"` // ISO format: YYYY-MM-DD
	Type     string `json:"type" yaml:"type"`
}

// Constraint holds user-defined planning constraints.
// NoWorkAfter (HH:MM) is stored but not yet enforced by any analysis pass.
type Constraint struct {
	MaxParallelFocus *int   `json:"max_parallel_focus,omitempty" yaml:"max_parallel_focus,omitempty"`
	NoWorkAfter      string `json:"no_work_after,omitempty" yaml:"no_work_after,omitempty"`
}

// AdvisoryOutput holds descriptive, non-prescriptive planning suggestions.
// It never contains clock times or scheduling commitments.
type AdvisoryOutput struct {
	Observations    []string `json:"observations"`
	Recommendations []string `json:"recommendations"`
	Warnings        []string `json:"warnings"`
}

// PlanRequest bundles tasks, constraints, and the authority to check.
type PlanRequest struct {
	Tasks         []Task          `json:"tasks"`
	Constraints   Constraint      `json:"constraints"`
	DecisionState GlobalAuthority `json:"decision_state"`
}

// PlanResult is either an advisory or a blocked/error outcome, never both.
// Advisory nil with BlockedBy set means the authority gate refused the
// request; Advisory nil with BlockedBy empty means a task-level data error.
type PlanResult struct {
	Advisory  *AdvisoryOutput `json:"advisory"`
	Reason    string          `json:"reason"`
	BlockedBy string          `json:"blocked_by,omitempty"`
}
