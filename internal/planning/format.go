package planning

import (
	"strings"

	"github.com/ppiankov/loadwatch/internal/model"
)

// FormatAdvisory renders an advisory as structured plain text: a header,
// single-dash bullets for observations and warnings, and a nested
// "• " list of recommendations only when any exist.
func FormatAdvisory(advisory model.AdvisoryOutput) string {
	lines := []string{"PLANNING ADVISORY:"}

	for _, obs := range advisory.Observations {
		lines = append(lines, "- "+obs)
	}
	for _, warning := range advisory.Warnings {
		lines = append(lines, "- "+warning)
	}

	if len(advisory.Recommendations) > 0 {
		lines = append(lines, "- Recommendation:")
		for _, rec := range advisory.Recommendations {
			lines = append(lines, "  • "+rec)
		}
	}

	return strings.Join(lines, "\n")
}
