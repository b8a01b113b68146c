// Package recovery independently evaluates whether conditions allow a
// return to baseline. It uses the same inputs as state evaluation but its
// own threshold set — recovery eligibility does not depend on how the
// current state was reached.
package recovery

import (
	"fmt"
	"strings"

	"github.com/ppiankov/loadwatch/internal/config"
	"github.com/ppiankov/loadwatch/internal/evaluate"
	"github.com/ppiankov/loadwatch/internal/model"
)

// Check determines whether recovery to NORMAL is possible. All three
// conditions must hold: deadlines at or below the recovery threshold,
// domains at or below, and average energy at or above. currentState is
// accepted for interface symmetry but does not influence the result.
func Check(inputs model.StateInputs, currentState model.State, cfg *config.Config) model.RecoveryResult {
	_ = currentState
	thresholds := cfg.Thresholds.Recovery
	var blocking []string

	if inputs.FixedDeadlines14d > thresholds.FixedDeadlines14d {
		blocking = append(blocking, fmt.Sprintf("Fixed deadlines (%d) > recovery threshold (%d)",
			inputs.FixedDeadlines14d, thresholds.FixedDeadlines14d))
	}

	if inputs.ActiveHighLoadDomains > thresholds.ActiveHighLoadDomains {
		blocking = append(blocking, fmt.Sprintf("High-load domains (%d) > recovery threshold (%d)",
			inputs.ActiveHighLoadDomains, thresholds.ActiveHighLoadDomains))
	}

	avg := evaluate.AverageEnergy(inputs.EnergyScoresLast3Days)
	if avg < float64(thresholds.AvgEnergyScore) {
		blocking = append(blocking, fmt.Sprintf("Average energy (%.1f) < recovery threshold (%d)",
			avg, thresholds.AvgEnergyScore))
	}

	canRecover := len(blocking) == 0

	var explanation string
	if canRecover {
		explanation = "All recovery conditions met. Safe to return to NORMAL mode."
		if len(cfg.RecoveryAdvice) > 0 {
			explanation += "\n  • " + strings.Join(cfg.RecoveryAdvice, "\n  • ")
		}
		blocking = []string{}
	} else {
		explanation = "Recovery not ready. Blocking conditions:\n  • " + strings.Join(blocking, "\n  • ")
	}

	return model.RecoveryResult{
		CanRecover:         canRecover,
		Explanation:        explanation,
		BlockingConditions: blocking,
	}
}
