// Package authority derives the global permission tuple from Decision
// Core output. All downstream capability flows through this derivation —
// the Planning Advisor consults the result, never the raw state.
package authority

import "github.com/ppiankov/loadwatch/internal/model"

// Derive maps a state classification to the global authority tuple.
// OVERLOADED and STRESSED both deny planning and enter CONTAINMENT;
// NORMAL allows planning in NORMAL mode. Execution is DENIED
// unconditionally in this system phase — a standing invariant, never a
// configuration lookup. An unknown state falls back to DENIED/CONTAINMENT.
func Derive(stateResult model.StateResult, ruleResult model.RuleResult) model.GlobalAuthority {
	var planning model.Permission
	var mode model.Mode

	switch stateResult.State {
	case model.StateOverloaded, model.StateStressed:
		planning = model.Denied
		mode = model.ModeContainment
	case model.StateNormal:
		planning = model.Allowed
		mode = model.ModeNormal
	default:
		// Unreachable with valid Decision Core output — fail closed.
		planning = model.Denied
		mode = model.ModeContainment
	}

	return model.GlobalAuthority{
		Planning:    planning,
		Execution:   model.Denied,
		Mode:        mode,
		State:       stateResult.State,
		ActiveRules: ruleResult.ActiveRules,
	}
}
