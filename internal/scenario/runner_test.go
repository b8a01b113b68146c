package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/loadwatch/internal/config"
	"github.com/ppiankov/loadwatch/internal/model"
)

const scenarioYAML = `
scenarios:
  - name: "Sudden Load Spike"
    inputs:
      fixed_deadlines_14d: 4
      active_high_load_domains: 3
      energy_scores_last_3_days: [2, 2, 2]
    expected:
      state: OVERLOADED
      planning: DENIED
      execution: DENIED
      mode: CONTAINMENT
  - name: "Calm Week"
    inputs:
      fixed_deadlines_14d: 1
      active_high_load_domains: 1
      energy_scores_last_3_days: [4, 4, 5]
    expected:
      state: NORMAL
      planning: ALLOWED
      execution: DENIED
      mode: NORMAL

advisory_scenarios:
  - name: "Blocked Advisory"
    inputs:
      fixed_deadlines_14d: 4
      active_high_load_domains: 3
      energy_scores_last_3_days: [2, 2, 2]
      tasks:
        - name: "Essay"
          deadline: "2026-03-01"
          type: "coursework"
    expected:
      state: OVERLOADED
      planning: DENIED
      advisory_blocked: true
`

const scenarioJSON = `{
  "scenarios": [
    {
      "name": "From JSON",
      "inputs": {
        "fixed_deadlines_14d": 3,
        "active_high_load_domains": 0,
        "energy_scores_last_3_days": [4, 4, 4]
      },
      "expected": {
        "state": "STRESSED",
        "planning": "DENIED",
        "execution": "DENIED",
        "mode": "CONTAINMENT"
      }
    }
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	scenarios, err := Load(writeFile(t, "scenarios.yaml", scenarioYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scenarios) != 3 {
		t.Fatalf("expected 3 scenarios (2 regular + 1 advisory), got %d", len(scenarios))
	}
	if scenarios[0].Name != "Sudden Load Spike" {
		t.Errorf("name = %q", scenarios[0].Name)
	}
	if scenarios[2].Inputs.Tasks[0].Type != "coursework" {
		t.Errorf("task not parsed: %+v", scenarios[2].Inputs.Tasks)
	}
}

func TestLoadJSON(t *testing.T) {
	scenarios, err := Load(writeFile(t, "scenarios.json", scenarioJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scenarios) != 1 || scenarios[0].Expected.State != model.StateStressed {
		t.Errorf("JSON scenario not parsed: %+v", scenarios)
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	if _, err := Load(writeFile(t, "scenarios.toml", "x = 1")); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestLoadRejectsEmptyFile(t *testing.T) {
	if _, err := Load(writeFile(t, "empty.yaml", "")); err == nil {
		t.Fatal("expected error for file without scenarios")
	}
}

func TestRunOverloadedScenario(t *testing.T) {
	scenarios, err := Load(writeFile(t, "scenarios.yaml", scenarioYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := Run(scenarios[0], config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Pipeline.Authority.State != model.StateOverloaded {
		t.Errorf("state = %s", result.Pipeline.Authority.State)
	}
	if result.Plan != nil {
		t.Error("no tasks given, plan must be nil")
	}

	validation := Validate(scenarios[0], result)
	if !validation.Passed {
		t.Errorf("expected pass, mismatches: %v", validation.Mismatches)
	}
}

func TestRunAdvisoryScenarioBlocked(t *testing.T) {
	scenarios, err := Load(writeFile(t, "scenarios.yaml", scenarioYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := Run(scenarios[2], config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Plan == nil {
		t.Fatal("tasks present, plan must be set")
	}
	if result.Plan.Advisory != nil || result.Plan.BlockedBy != "Decision Core" {
		t.Errorf("OVERLOADED scenario must block the advisory: %+v", result.Plan)
	}

	validation := Validate(scenarios[2], result)
	if !validation.Passed {
		t.Errorf("advisory_blocked expectation should pass, mismatches: %v", validation.Mismatches)
	}
}

func TestValidateReportsEveryMismatch(t *testing.T) {
	s := Scenario{
		Name: "wrong expectations",
		Inputs: Inputs{
			FixedDeadlines14d:     4,
			ActiveHighLoadDomains: 3,
			EnergyScoresLast3Days: []int{2, 2, 2},
		},
		Expected: &Expected{
			State:     model.StateNormal,
			Planning:  model.Allowed,
			Execution: model.Allowed,
			Mode:      model.ModeNormal,
		},
	}

	result, err := Run(s, config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	validation := Validate(s, result)
	if validation.Passed {
		t.Fatal("expected validation to fail")
	}
	if len(validation.Mismatches) != 4 {
		t.Errorf("all 4 fields must be reported, got %d: %v", len(validation.Mismatches), validation.Mismatches)
	}
	joined := strings.Join(validation.Mismatches, "\n")
	for _, want := range []string{"State mismatch", "Planning permission mismatch", "Execution permission mismatch", "Mode mismatch"} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing %q in %v", want, validation.Mismatches)
		}
	}
}

func TestValidateNoExpectedPasses(t *testing.T) {
	s := Scenario{
		Name:   "no expectations",
		Inputs: Inputs{FixedDeadlines14d: 0, ActiveHighLoadDomains: 0, EnergyScoresLast3Days: []int{5, 5, 5}},
	}
	result, err := Run(s, config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v := Validate(s, result); !v.Passed {
		t.Errorf("scenario without expectations must pass: %v", v.Mismatches)
	}
}

func TestRunAll(t *testing.T) {
	report, err := RunAll(writeFile(t, "scenarios.yaml", scenarioYAML), config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Total != 3 || report.Passed != 3 || report.Failed != 0 {
		t.Errorf("report = %+v", report)
	}
	if report.RunID == "" {
		t.Error("report must carry a run ID")
	}
}

func TestFind(t *testing.T) {
	scenarios, err := Load(writeFile(t, "scenarios.yaml", scenarioYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := Find(scenarios, "Calm Week"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := Find(scenarios, "No Such Scenario"); err == nil {
		t.Error("expected error for unknown name")
	}
}

func TestFormatResultStrictFormat(t *testing.T) {
	scenarios, err := Load(writeFile(t, "scenarios.yaml", scenarioYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := Run(scenarios[0], config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := FormatResult(result)
	for _, want := range []string{
		"SCENARIO: Sudden Load Spike",
		"STATE: OVERLOADED",
		"AUTHORITY:",
		"- planning: DENIED",
		"- execution: DENIED",
		"MODE: CONTAINMENT",
		"ACTIVE RULES:",
		"- No new commitments",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatResultNoRules(t *testing.T) {
	s := Scenario{
		Name:   "calm",
		Inputs: Inputs{EnergyScoresLast3Days: []int{5, 5, 5}},
	}
	result, err := Run(s, config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(FormatResult(result), "ACTIVE RULES:\n(none)") {
		t.Errorf("empty rules must render (none):\n%s", FormatResult(result))
	}
}

func TestFormatReports(t *testing.T) {
	report, err := RunAll(writeFile(t, "scenarios.yaml", scenarioYAML), config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := FormatReports([]*Report{report})
	if !strings.Contains(out, "PASS") {
		t.Errorf("output = %s", out)
	}
	if !strings.Contains(out, "3 of 3 scenarios passed.") {
		t.Errorf("output = %s", out)
	}
}
