package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/loadwatch/internal/model"
	"github.com/ppiankov/loadwatch/internal/pipeline"
	"github.com/ppiankov/loadwatch/internal/planning"
	"github.com/ppiankov/loadwatch/internal/recovery"
)

// --- Input/Output types ---

// EvaluateInput defines parameters for the loadwatch_evaluate tool.
type EvaluateInput struct {
	FixedDeadlines14d     int   `json:"fixed_deadlines_14d" jsonschema:"count of fixed deadlines in the next 14 days"`
	ActiveHighLoadDomains int   `json:"active_high_load_domains" jsonschema:"count of concurrently active high-load domains"`
	EnergyScoresLast3Days []int `json:"energy_scores_last_3_days" jsonschema:"exactly three energy scores, each 1-5"`
}

// EvaluateOutput contains the full pipeline result.
type EvaluateOutput struct {
	State              string   `json:"state"`
	Explanation        string   `json:"explanation"`
	ConditionsMet      []string `json:"conditions_met"`
	ActiveRules        []string `json:"active_rules"`
	Planning           string   `json:"planning"`
	Execution          string   `json:"execution"`
	Mode               string   `json:"mode"`
	CanRecover         bool     `json:"can_recover"`
	RecoveryDetail     string   `json:"recovery_detail"`
	BlockingConditions []string `json:"blocking_conditions"`
}

// RecoveryInput defines parameters for the loadwatch_recovery tool.
type RecoveryInput struct {
	FixedDeadlines14d     int   `json:"fixed_deadlines_14d" jsonschema:"count of fixed deadlines in the next 14 days"`
	ActiveHighLoadDomains int   `json:"active_high_load_domains" jsonschema:"count of concurrently active high-load domains"`
	EnergyScoresLast3Days []int `json:"energy_scores_last_3_days" jsonschema:"exactly three energy scores, each 1-5"`
}

// RecoveryOutput contains the recovery verdict.
type RecoveryOutput struct {
	CanRecover         bool     `json:"can_recover"`
	Explanation        string   `json:"explanation"`
	BlockingConditions []string `json:"blocking_conditions"`
}

// PlanTask mirrors a single task in a planning request.
type PlanTask struct {
	Name     string `json:"name" jsonschema:"task name"`
	Deadline string `json:"deadline" jsonschema:"deadline in YYYY-MM-DD format"`
	Type     string `json:"type" jsonschema:"task type (coursework/work/admin/general)"`
}

// PlanInput defines parameters for the loadwatch_plan tool.
type PlanInput struct {
	FixedDeadlines14d     int        `json:"fixed_deadlines_14d" jsonschema:"count of fixed deadlines in the next 14 days"`
	ActiveHighLoadDomains int        `json:"active_high_load_domains" jsonschema:"count of concurrently active high-load domains"`
	EnergyScoresLast3Days []int      `json:"energy_scores_last_3_days" jsonschema:"exactly three energy scores, each 1-5"`
	Tasks                 []PlanTask `json:"tasks" jsonschema:"tasks to analyze"`
	MaxParallelFocus      *int       `json:"max_parallel_focus,omitempty" jsonschema:"optional cap on parallel focus tasks"`
}

// PlanOutput contains the advisory or block details.
type PlanOutput struct {
	State           string   `json:"state"`
	Observations    []string `json:"observations,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`
	Blocked         bool     `json:"blocked,omitempty"`
	Reason          string   `json:"reason,omitempty"`
	BlockedBy       string   `json:"blocked_by,omitempty"`
}

// --- Handlers ---

func (s *Server) handleEvaluate(ctx context.Context, req *mcpsdk.CallToolRequest, input EvaluateInput) (*mcpsdk.CallToolResult, EvaluateOutput, error) {
	inputs := model.StateInputs{
		FixedDeadlines14d:     input.FixedDeadlines14d,
		ActiveHighLoadDomains: input.ActiveHighLoadDomains,
		EnergyScoresLast3Days: input.EnergyScoresLast3Days,
	}

	result, err := pipeline.Run(inputs, s.cfg)
	if err != nil {
		return nil, EvaluateOutput{}, err
	}

	return nil, EvaluateOutput{
		State:              string(result.State.State),
		Explanation:        result.State.Explanation,
		ConditionsMet:      result.State.ConditionsMet,
		ActiveRules:        result.Authority.ActiveRules,
		Planning:           string(result.Authority.Planning),
		Execution:          string(result.Authority.Execution),
		Mode:               string(result.Authority.Mode),
		CanRecover:         result.Recovery.CanRecover,
		RecoveryDetail:     result.Recovery.Explanation,
		BlockingConditions: result.Recovery.BlockingConditions,
	}, nil
}

func (s *Server) handleRecovery(ctx context.Context, req *mcpsdk.CallToolRequest, input RecoveryInput) (*mcpsdk.CallToolResult, RecoveryOutput, error) {
	inputs := model.StateInputs{
		FixedDeadlines14d:     input.FixedDeadlines14d,
		ActiveHighLoadDomains: input.ActiveHighLoadDomains,
		EnergyScoresLast3Days: input.EnergyScoresLast3Days,
	}

	stateResult, err := pipeline.Run(inputs, s.cfg)
	if err != nil {
		return nil, RecoveryOutput{}, err
	}

	rec := recovery.Check(inputs, stateResult.State.State, s.cfg)
	return nil, RecoveryOutput{
		CanRecover:         rec.CanRecover,
		Explanation:        rec.Explanation,
		BlockingConditions: rec.BlockingConditions,
	}, nil
}

func (s *Server) handlePlan(ctx context.Context, req *mcpsdk.CallToolRequest, input PlanInput) (*mcpsdk.CallToolResult, PlanOutput, error) {
	inputs := model.StateInputs{
		FixedDeadlines14d:     input.FixedDeadlines14d,
		ActiveHighLoadDomains: input.ActiveHighLoadDomains,
		EnergyScoresLast3Days: input.EnergyScoresLast3Days,
	}

	result, err := pipeline.Run(inputs, s.cfg)
	if err != nil {
		return nil, PlanOutput{}, err
	}

	tasks := make([]model.Task, 0, len(input.Tasks))
	for _, t := range input.Tasks {
		tasks = append(tasks, model.Task{Name: t.Name, Deadline: t.Deadline, Type: t.Type})
	}

	plan := planning.Propose(model.PlanRequest{
		Tasks:         tasks,
		Constraints:   model.Constraint{MaxParallelFocus: input.MaxParallelFocus},
		DecisionState: result.Authority,
	})

	if plan.Advisory == nil {
		// BlockedBy set means the authority gate refused; empty means a
		// task data error. Only the former is a block.
		out := PlanOutput{
			State:     string(result.State.State),
			Blocked:   plan.BlockedBy != "",
			Reason:    plan.Reason,
			BlockedBy: plan.BlockedBy,
		}
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}

	return nil, PlanOutput{
		State:           string(result.State.State),
		Observations:    plan.Advisory.Observations,
		Recommendations: plan.Advisory.Recommendations,
		Warnings:        plan.Advisory.Warnings,
	}, nil
}
