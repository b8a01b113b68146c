// Package evaluate classifies life-load state from three raw signals
// against configured overload thresholds. Pure computation — the only
// failure mode is input validation.
package evaluate

import (
	"fmt"
	"strings"

	"github.com/ppiankov/loadwatch/internal/config"
	"github.com/ppiankov/loadwatch/internal/model"
)

// ValidationError reports an input that violates a shape or range
// invariant. It always names the field, the actual value, and the
// expected constraint.
type ValidationError struct {
	Field    string
	Details  string
	Expected string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("ERROR: Invalid %s\nDetails: %s\nExpected: %s", e.Field, e.Details, e.Expected)
}

const (
	energyExpected    = "Energy scores must be 3 integers between 1 and 5"
	deadlinesExpected = "Fixed deadlines must be a non-negative integer"
	domainsExpected   = "Active high-load domains must be a non-negative integer"
)

// ValidateInputs checks all shape invariants in fixed order: energy
// scores first, then deadlines, then domains. The first violation aborts.
func ValidateInputs(inputs model.StateInputs) error {
	scores := inputs.EnergyScoresLast3Days
	if len(scores) != 3 {
		return &ValidationError{
			Field:    "energy scores count",
			Details:  fmt.Sprintf("Received %d values", len(scores)),
			Expected: energyExpected,
		}
	}
	for i, score := range scores {
		if score < 1 || score > 5 {
			return &ValidationError{
				Field:    "energy score range",
				Details:  fmt.Sprintf("Score at position %d is %d", i, score),
				Expected: energyExpected,
			}
		}
	}

	if inputs.FixedDeadlines14d < 0 {
		return &ValidationError{
			Field:    "fixed deadlines value",
			Details:  fmt.Sprintf("Received %d", inputs.FixedDeadlines14d),
			Expected: deadlinesExpected,
		}
	}

	if inputs.ActiveHighLoadDomains < 0 {
		return &ValidationError{
			Field:    "active high-load domains value",
			Details:  fmt.Sprintf("Received %d", inputs.ActiveHighLoadDomains),
			Expected: domainsExpected,
		}
	}

	return nil
}

// AverageEnergy computes the arithmetic mean of the energy scores.
// The mean is compared as a float — never rounded before comparison.
// An empty slice yields 0, the lowest possible energy, so callers that
// skip validation still fail toward the cautious side.
func AverageEnergy(scores []int) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return float64(sum) / float64(len(scores))
}

// countConditions checks the three overload conditions in fixed order and
// returns the descriptions of those that held.
func countConditions(inputs model.StateInputs, overload config.Thresholds) []string {
	var met []string

	if inputs.FixedDeadlines14d >= overload.FixedDeadlines14d {
		met = append(met, fmt.Sprintf("Fixed deadlines (%d) >= threshold (%d)",
			inputs.FixedDeadlines14d, overload.FixedDeadlines14d))
	}

	if inputs.ActiveHighLoadDomains >= overload.ActiveHighLoadDomains {
		met = append(met, fmt.Sprintf("High-load domains (%d) >= threshold (%d)",
			inputs.ActiveHighLoadDomains, overload.ActiveHighLoadDomains))
	}

	avg := AverageEnergy(inputs.EnergyScoresLast3Days)
	if avg <= float64(overload.AvgEnergyScore) {
		met = append(met, fmt.Sprintf("Average energy (%.1f) <= threshold (%d)",
			avg, overload.AvgEnergyScore))
	}

	return met
}

// determineState maps the condition count to a state. Any single risk
// factor is tolerated; compounding factors are not.
func determineState(count int) model.State {
	switch {
	case count >= 2:
		return model.StateOverloaded
	case count == 1:
		return model.StateStressed
	default:
		return model.StateNormal
	}
}

func explain(count int, met []string) string {
	switch count {
	case 0:
		return "No overload conditions met"
	case 1:
		return fmt.Sprintf("1 condition met:\n  • %s", met[0])
	default:
		return fmt.Sprintf("%d conditions met:\n  • %s", count, strings.Join(met, "\n  • "))
	}
}

// Evaluate validates inputs and classifies the load state against the
// overload thresholds. Deterministic: identical inputs and config always
// produce an identical result, explanation text included.
func Evaluate(inputs model.StateInputs, cfg *config.Config) (model.StateResult, error) {
	if err := ValidateInputs(inputs); err != nil {
		return model.StateResult{}, err
	}

	met := countConditions(inputs, cfg.Thresholds.Overload)
	state := determineState(len(met))

	return model.StateResult{
		State:         state,
		Explanation:   explain(len(met), met),
		ConditionsMet: met,
	}, nil
}
