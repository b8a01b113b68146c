// Package planning is the advisory layer gated by Global Authority.
// It produces descriptive observations, recommendations, and warnings —
// never schedules, clock times, or calendar writes. When planning is
// denied the gate short-circuits before any validation or analysis runs.
package planning

import (
	"fmt"
	"sort"
	"time"

	"github.com/ppiankov/loadwatch/internal/model"
)

const (
	// BlockedBy value when the authority gate refuses a request.
	BlockedByDecisionCore = "Decision Core"

	blockedReason  = "ADVICE BLOCKED\nReason: Planning forbidden by Decision Core"
	completeReason = "Advisory analysis complete"
)

// ValidateTask checks that all task fields are present and the deadline is
// a valid ISO date. Returns an empty string when the task is valid.
func ValidateTask(task model.Task) string {
	if task.Name == "" {
		return "Invalid task: missing name"
	}
	if task.Deadline == "" {
		return "Invalid task: missing deadline"
	}
	if task.Type == "" {
		return "Invalid task: missing type"
	}

	if _, err := time.Parse("2006-01-02", task.Deadline); err != nil {
		return fmt.Sprintf("Invalid deadline format: expected YYYY-MM-DD, got '%s'", task.Deadline)
	}

	return ""
}

// analyzeDeadlineClustering scans sorted deadlines for the first run of 3+
// dates within a 3-calendar-day window (pairwise span from the run's start
// is at most 2 days). Only the first qualifying cluster is reported.
func analyzeDeadlineClustering(tasks []model.Task) []string {
	var observations []string

	if len(tasks) < 3 {
		return observations
	}

	var dates []time.Time
	for _, task := range tasks {
		d, err := time.Parse("2006-01-02", task.Deadline)
		if err != nil {
			continue
		}
		dates = append(dates, d)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	for i := 0; i+2 < len(dates); i++ {
		start := dates[i]
		count := 1
		end := start

		for j := i + 1; j < len(dates); j++ {
			days := int(dates[j].Sub(start).Hours() / 24)
			if days <= 2 {
				count++
				end = dates[j]
			} else {
				break
			}
		}

		if count >= 3 {
			observations = append(observations, fmt.Sprintf(
				"%d deadlines fall within a 3-day window (%s-%s)",
				count, start.Format("Jan 02"), end.Format("Jan 02")))
			break
		}
	}

	return observations
}

// assessCognitiveLoad compares the task count to the max_parallel_focus
// constraint, when one is set.
func assessCognitiveLoad(tasks []model.Task, constraints model.Constraint) []string {
	var observations []string

	if constraints.MaxParallelFocus == nil {
		return observations
	}

	if len(tasks) > *constraints.MaxParallelFocus {
		observations = append(observations,
			"Cognitive load likely exceeds safe threshold",
			"This week exceeds your usual load")
	}

	return observations
}

// detectConflicts warns about constraint violations and shared deadline
// dates. The overlap warning is emitted at most once regardless of how
// many collisions exist.
func detectConflicts(tasks []model.Task, constraints model.Constraint) []string {
	var warnings []string

	if len(tasks) == 0 {
		return warnings
	}

	if constraints.MaxParallelFocus != nil && len(tasks) > *constraints.MaxParallelFocus {
		warnings = append(warnings, "Task load exceeds max_parallel_focus constraint")
	}

	seen := make(map[string]int, len(tasks))
	for _, task := range tasks {
		seen[task.Deadline]++
		if seen[task.Deadline] == 2 {
			warnings = append(warnings, "Multiple high-priority tasks overlap")
			break
		}
	}

	return warnings
}

// suggestPrioritization counts tasks by type and emits focus and scope
// recommendations. Frequency ties break by first-seen input order, which
// keeps the output deterministic regardless of map iteration.
func suggestPrioritization(tasks []model.Task) []string {
	var recommendations []string

	if len(tasks) == 0 {
		return recommendations
	}

	counts := make(map[string]int, len(tasks))
	var order []string
	for _, task := range tasks {
		if _, ok := counts[task.Type]; !ok {
			order = append(order, task.Type)
		}
		counts[task.Type]++
	}

	primary := order[0]
	for _, typ := range order[1:] {
		if counts[typ] > counts[primary] {
			primary = typ
		}
	}

	switch primary {
	case "coursework":
		recommendations = append(recommendations, "Treat coursework as primary focus")
	case "work":
		recommendations = append(recommendations, "Treat work tasks as primary focus")
	}

	if _, ok := counts["admin"]; ok {
		recommendations = append(recommendations, "Minimize administrative scope")
	}

	if len(tasks) > 2 {
		recommendations = append(recommendations, "Avoid adding optional tasks this week")
	}

	return recommendations
}

// Propose runs the Planning Advisor on one request. The authority gate is
// checked before anything else: a DENIED planning permission returns the
// blocked result without validating or analyzing a single task. On the
// allowed path the first invalid task aborts with a data error (BlockedBy
// empty — a data error, not a permission error); otherwise all three
// analysis passes run and accumulate into one advisory.
func Propose(request model.PlanRequest) model.PlanResult {
	if request.DecisionState.Planning == model.Denied {
		return model.PlanResult{
			Advisory:  nil,
			Reason:    blockedReason,
			BlockedBy: BlockedByDecisionCore,
		}
	}

	for _, task := range request.Tasks {
		if msg := ValidateTask(task); msg != "" {
			return model.PlanResult{
				Advisory: nil,
				Reason:   msg,
			}
		}
	}

	observations := []string{}
	recommendations := []string{}
	warnings := []string{}

	observations = append(observations, analyzeDeadlineClustering(request.Tasks)...)
	observations = append(observations, assessCognitiveLoad(request.Tasks, request.Constraints)...)
	warnings = append(warnings, detectConflicts(request.Tasks, request.Constraints)...)
	recommendations = append(recommendations, suggestPrioritization(request.Tasks)...)

	return model.PlanResult{
		Advisory: &model.AdvisoryOutput{
			Observations:    observations,
			Recommendations: recommendations,
			Warnings:        warnings,
		},
		Reason: completeReason,
	}
}
