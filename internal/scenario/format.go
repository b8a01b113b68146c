package scenario

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ppiankov/loadwatch/internal/planning"
)

// FormatResult renders one scenario result in the strict output format:
// SCENARIO, STATE, AUTHORITY, MODE, ACTIVE RULES, then the advisory block
// or the blocked reason when a plan was requested.
func FormatResult(result *Result) string {
	auth := result.Pipeline.Authority
	lines := []string{
		fmt.Sprintf("SCENARIO: %s", result.Name),
		fmt.Sprintf("STATE: %s", auth.State),
		"AUTHORITY:",
		fmt.Sprintf("- planning: %s", auth.Planning),
		fmt.Sprintf("- execution: %s", auth.Execution),
		fmt.Sprintf("MODE: %s", auth.Mode),
		"ACTIVE RULES:",
	}

	if len(auth.ActiveRules) > 0 {
		for _, rule := range auth.ActiveRules {
			lines = append(lines, "- "+rule)
		}
	} else {
		lines = append(lines, "(none)")
	}

	if result.Plan != nil {
		lines = append(lines, "")
		if result.Plan.Advisory != nil {
			lines = append(lines, planning.FormatAdvisory(*result.Plan.Advisory))
		} else {
			lines = append(lines, result.Plan.Reason)
		}
	}

	return strings.Join(lines, "\n")
}

// FormatReports renders validation reports as human-readable text.
func FormatReports(reports []*Report) string {
	var b strings.Builder

	totalFiles := len(reports)
	fmt.Fprintf(&b, "Checking %d scenario file", totalFiles)
	if totalFiles != 1 {
		b.WriteString("s")
	}
	b.WriteString("...\n\n")

	totalCases := 0
	totalPassed := 0
	failedFiles := 0

	for _, r := range reports {
		totalCases += r.Total
		totalPassed += r.Passed

		if r.Failed == 0 {
			fmt.Fprintf(&b, "  PASS  %s (%d/%d)\n", r.File, r.Passed, r.Total)
			continue
		}

		failedFiles++
		fmt.Fprintf(&b, "  FAIL  %s (%d/%d)\n", r.File, r.Passed, r.Total)
		for _, o := range r.Outcomes {
			if o.Passed {
				continue
			}
			fmt.Fprintf(&b, "    FAIL  scenario %d: %s\n", o.Index, o.Name)
			for _, m := range o.Mismatches {
				fmt.Fprintf(&b, "          %s\n", m)
			}
		}
	}

	fmt.Fprintf(&b, "\n%d of %d scenarios passed.", totalPassed, totalCases)
	if failedFiles > 0 {
		fmt.Fprintf(&b, " %d of %d files failed.", failedFiles, totalFiles)
	}
	b.WriteString("\n")

	return b.String()
}

// FormatReportsJSON renders validation reports as JSON.
func FormatReportsJSON(reports []*Report) (string, error) {
	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal reports: %w", err)
	}
	return string(data), nil
}
