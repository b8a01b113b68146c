// Package pipeline composes the decision stages in their fixed order:
// state evaluation, rule lookup, authority derivation, recovery check.
package pipeline

import (
	"github.com/ppiankov/loadwatch/internal/authority"
	"github.com/ppiankov/loadwatch/internal/config"
	"github.com/ppiankov/loadwatch/internal/evaluate"
	"github.com/ppiankov/loadwatch/internal/model"
	"github.com/ppiankov/loadwatch/internal/recovery"
	"github.com/ppiankov/loadwatch/internal/rules"
)

// Result bundles the outputs of one full pipeline run.
type Result struct {
	State     model.StateResult     `json:"state_result"`
	Rules     model.RuleResult      `json:"rule_result"`
	Authority model.GlobalAuthority `json:"authority"`
	Recovery  model.RecoveryResult  `json:"recovery"`
}

// Run executes the full pipeline over one set of inputs. The only failure
// mode is input validation from the evaluator; everything downstream is
// total.
func Run(inputs model.StateInputs, cfg *config.Config) (Result, error) {
	stateResult, err := evaluate.Evaluate(inputs, cfg)
	if err != nil {
		return Result{}, err
	}

	ruleResult := rules.ActiveRules(stateResult.State, cfg)
	auth := authority.Derive(stateResult, ruleResult)
	recoveryResult := recovery.Check(inputs, stateResult.State, cfg)

	return Result{
		State:     stateResult,
		Rules:     ruleResult,
		Authority: auth,
		Recovery:  recoveryResult,
	}, nil
}
