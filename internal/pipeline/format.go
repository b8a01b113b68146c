package pipeline

import (
	"fmt"
	"strings"

	"github.com/ppiankov/loadwatch/internal/model"
)

// FormatText renders a pipeline result as the plain-text report shown by
// the evaluate command.
func FormatText(result Result) string {
	var sections []string

	sections = append(sections, "=== Personal Decision-Support System ===")
	sections = append(sections, formatState(result.State))

	if rulesBlock := formatActiveRules(result.Rules); rulesBlock != "" {
		sections = append(sections, rulesBlock)
	}

	sections = append(sections, formatAuthority(result.Authority))
	sections = append(sections, formatRecovery(result.Recovery))

	return strings.Join(sections, "\n\n")
}

func formatState(state model.StateResult) string {
	return fmt.Sprintf("Current State: %s\nReason: %s", state.State, state.Explanation)
}

func formatActiveRules(rules model.RuleResult) string {
	if len(rules.ActiveRules) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Active Rules:")
	for _, rule := range rules.ActiveRules {
		b.WriteString("\n  • ")
		b.WriteString(rule)
	}
	return b.String()
}

func formatAuthority(auth model.GlobalAuthority) string {
	return fmt.Sprintf("Authority:\n- planning: %s\n- execution: %s\nMode: %s",
		auth.Planning, auth.Execution, auth.Mode)
}

func formatRecovery(rec model.RecoveryResult) string {
	status := "Not ready"
	if rec.CanRecover {
		status = "Ready"
	}
	return fmt.Sprintf("Recovery Status: %s\n%s", status, rec.Explanation)
}
