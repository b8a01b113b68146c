// Package issue bridges GitHub issue-form bodies to the decision
// pipeline. It extracts the three load signals (and optional task lines)
// from the `### `-sectioned template format, tolerating whitespace and
// heading variations.
package issue

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ppiankov/loadwatch/internal/model"
)

// ParseError reports a missing or malformed issue field. The text names
// the problem, the offending value, and the action the author should take.
type ParseError struct {
	Summary string
	Details string
	Action  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ERROR: %s\n\nDetails: %s\n\nAction: %s", e.Summary, e.Details, e.Action)
}

var (
	sectionRe = regexp.MustCompile(`###\s+`)
	dateRe    = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	typeRe    = regexp.MustCompile(`\[([^\]]+)\]`)
	sepRe     = regexp.MustCompile(`(?i)\b(due|by|-)\b`)
)

// ParseBody extracts StateInputs and the optional tasks text from an
// issue body. Section headings are matched fuzzily: any heading containing
// "deadline", "domain"/"high-load", or "energy" binds the respective field.
func ParseBody(body string) (model.StateInputs, string, error) {
	if strings.TrimSpace(body) == "" {
		return model.StateInputs{}, "", &ParseError{
			Summary: "Empty Issue body",
			Details: "Issue body is empty or contains only whitespace",
			Action:  "Please fill in all required fields in the Issue template",
		}
	}

	sections := parseSections(body)

	deadlines, found, err := intSection(sections, "deadline", "deadlines")
	if err != nil {
		return model.StateInputs{}, "", err
	}
	if !found {
		return model.StateInputs{}, "", &ParseError{
			Summary: "Missing required field",
			Details: "Could not find 'Non-movable deadlines' field in Issue body",
			Action:  "Please ensure the Issue template includes the deadlines field",
		}
	}

	domains, found, err := intSection(sections, "domain", "domains")
	if err != nil {
		return model.StateInputs{}, "", err
	}
	if !found {
		domains, found, err = intSection(sections, "high-load", "domains")
		if err != nil {
			return model.StateInputs{}, "", err
		}
	}
	if !found {
		return model.StateInputs{}, "", &ParseError{
			Summary: "Missing required field",
			Details: "Could not find 'Active high-load domains' field in Issue body",
			Action:  "Please ensure the Issue template includes the domains field",
		}
	}

	energy, err := energySection(sections)
	if err != nil {
		return model.StateInputs{}, "", err
	}

	tasksText := ""
	for _, sec := range sections {
		if strings.Contains(sec.title, "task") {
			tasksText = sec.content
			break
		}
	}

	inputs := model.StateInputs{
		FixedDeadlines14d:     deadlines,
		ActiveHighLoadDomains: domains,
		EnergyScoresLast3Days: energy,
	}
	return inputs, tasksText, nil
}

// section is one ### heading with its body text, in document order.
// When two headings match the same fuzzy key, the first one binds.
type section struct {
	title   string
	content string
}

// parseSections splits the body on ### headers into ordered title/content
// pairs. Titles are lower-cased for fuzzy matching.
func parseSections(body string) []section {
	var sections []section
	for _, chunk := range sectionRe.Split(body, -1) {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		title, content, ok := strings.Cut(chunk, "\n")
		if !ok {
			continue
		}
		sections = append(sections, section{
			title:   strings.ToLower(strings.TrimSpace(title)),
			content: strings.TrimSpace(content),
		})
	}
	return sections
}

func intSection(sections []section, key, fieldName string) (int, bool, error) {
	for _, sec := range sections {
		if !strings.Contains(sec.title, key) {
			continue
		}
		value := strings.TrimSpace(sec.content)
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, false, &ParseError{
				Summary: fmt.Sprintf("Invalid %s format", fieldName),
				Details: fmt.Sprintf("Could not parse '%s' as an integer", value),
				Action:  fmt.Sprintf("Please provide a valid integer for %s (e.g., 4)", fieldName),
			}
		}
		return n, true, nil
	}
	return 0, false, nil
}

func energySection(sections []section) ([]int, error) {
	for _, sec := range sections {
		if !strings.Contains(sec.title, "energy") {
			continue
		}
		value := strings.TrimSpace(sec.content)
		var scores []int
		for _, part := range strings.Split(value, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil, &ParseError{
					Summary: "Invalid energy format",
					Details: fmt.Sprintf("Could not parse '%s' as comma-separated integers", value),
					Action:  "Please provide exactly 3 energy scores separated by commas (e.g., 2,3,2)",
				}
			}
			scores = append(scores, n)
		}
		if len(scores) != 3 {
			return nil, &ParseError{
				Summary: "Invalid energy format",
				Details: fmt.Sprintf("Energy must be 3 comma-separated integers, got %d values", len(scores)),
				Action:  "Please provide exactly 3 energy scores separated by commas (e.g., 2,3,2)",
			}
		}
		return scores, nil
	}
	return nil, &ParseError{
		Summary: "Missing required field",
		Details: "Could not find 'Energy' field in Issue body",
		Action:  "Please ensure the Issue template includes the energy field",
	}
}

// ParseTasks extracts structured tasks from free-form task lines such as
// "ML Homework 3 due 2026-02-12 [coursework]". Lines without an ISO date
// are skipped; a missing [type] tag defaults to "general".
func ParseTasks(text string) []model.Task {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var tasks []model.Task
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		dateMatch := dateRe.FindString(line)
		if dateMatch == "" {
			continue
		}

		taskType := "general"
		typeMatch := typeRe.FindStringSubmatch(line)
		if typeMatch != nil {
			taskType = typeMatch[1]
		}

		name := strings.Replace(line, dateMatch, "", 1)
		if typeMatch != nil {
			name = strings.Replace(name, typeMatch[0], "", 1)
		}
		name = sepRe.ReplaceAllString(name, "")
		name = strings.Join(strings.Fields(name), " ")

		if name != "" {
			tasks = append(tasks, model.Task{Name: name, Deadline: dateMatch, Type: taskType})
		}
	}

	return tasks
}

// FormatForGitHub wraps pipeline output in a fenced code block so GitHub
// renders it verbatim as an issue comment.
func FormatForGitHub(output string) string {
	return "```\n" + output + "\n```"
}
