// Package rules looks up the downgrade rules active for a classified state.
package rules

import (
	"github.com/ppiankov/loadwatch/internal/config"
	"github.com/ppiankov/loadwatch/internal/model"
)

// ActiveRules returns the configured downgrade rules for the given state,
// verbatim and in stored order. NORMAL never has downgrade rules — the
// empty list is hard-coded, not a config lookup. A missing state key
// yields an empty list rather than an error.
func ActiveRules(state model.State, cfg *config.Config) model.RuleResult {
	if state == model.StateNormal {
		return model.RuleResult{State: state, ActiveRules: []string{}}
	}

	rules, ok := cfg.DowngradeRules[state]
	if !ok {
		return model.RuleResult{State: state, ActiveRules: []string{}}
	}

	return model.RuleResult{State: state, ActiveRules: rules}
}
