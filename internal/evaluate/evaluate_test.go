package evaluate

import (
	"errors"
	"strings"
	"testing"

	"github.com/ppiankov/loadwatch/internal/config"
	"github.com/ppiankov/loadwatch/internal/model"
)

func inputs(deadlines, domains int, energy ...int) model.StateInputs {
	return model.StateInputs{
		FixedDeadlines14d:     deadlines,
		ActiveHighLoadDomains: domains,
		EnergyScoresLast3Days: energy,
	}
}

func TestOverloadedAllConditions(t *testing.T) {
	result, err := Evaluate(inputs(4, 3, 2, 2, 2), config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.State != model.StateOverloaded {
		t.Errorf("state = %s, want OVERLOADED", result.State)
	}
	if len(result.ConditionsMet) != 3 {
		t.Errorf("expected 3 conditions met, got %d: %v", len(result.ConditionsMet), result.ConditionsMet)
	}
	if !strings.HasPrefix(result.Explanation, "3 conditions met:") {
		t.Errorf("explanation = %q", result.Explanation)
	}
	if result.ConditionsMet[0] != "Fixed deadlines (4) >= threshold (3)" {
		t.Errorf("deadline condition text = %q", result.ConditionsMet[0])
	}
	if result.ConditionsMet[2] != "Average energy (2.0) <= threshold (2)" {
		t.Errorf("energy condition text = %q", result.ConditionsMet[2])
	}
}

func TestNormalNoConditions(t *testing.T) {
	result, err := Evaluate(inputs(1, 1, 4, 4, 5), config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.State != model.StateNormal {
		t.Errorf("state = %s, want NORMAL", result.State)
	}
	if len(result.ConditionsMet) != 0 {
		t.Errorf("expected no conditions met, got %v", result.ConditionsMet)
	}
	if result.Explanation != "No overload conditions met" {
		t.Errorf("explanation = %q", result.Explanation)
	}
}

func TestStressedSingleCondition(t *testing.T) {
	result, err := Evaluate(inputs(3, 0, 4, 4, 4), config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.State != model.StateStressed {
		t.Errorf("state = %s, want STRESSED", result.State)
	}
	if len(result.ConditionsMet) != 1 {
		t.Errorf("expected exactly 1 condition met, got %v", result.ConditionsMet)
	}
	if !strings.HasPrefix(result.Explanation, "1 condition met:") {
		t.Errorf("explanation = %q", result.Explanation)
	}
}

func TestOverloadedTwoConditions(t *testing.T) {
	// Deadlines and domains over threshold, energy fine.
	result, err := Evaluate(inputs(3, 3, 5, 5, 5), config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.State != model.StateOverloaded {
		t.Errorf("two conditions must classify OVERLOADED, got %s", result.State)
	}
}

func TestAverageNotRoundedBeforeComparison(t *testing.T) {
	// avg([2,2,3]) = 2.33 > threshold 2 — must NOT count as met.
	result, err := Evaluate(inputs(0, 0, 2, 2, 3), config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.State != model.StateNormal {
		t.Errorf("avg 2.33 must not meet threshold 2, got state %s (%v)", result.State, result.ConditionsMet)
	}
}

func TestAverageEnergyEmptySlice(t *testing.T) {
	if avg := AverageEnergy(nil); avg != 0 {
		t.Errorf("empty slice must average to 0, got %v", avg)
	}
}

func TestEnergyScoreOutOfRange(t *testing.T) {
	_, err := Evaluate(inputs(1, 1, 0, 3, 3), config.Default())
	if err == nil {
		t.Fatal("expected validation error for score 0")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if !strings.Contains(err.Error(), "position 0") {
		t.Errorf("error must name the position: %q", err.Error())
	}
	if !strings.Contains(err.Error(), "is 0") {
		t.Errorf("error must include the actual value: %q", err.Error())
	}
	if !strings.Contains(err.Error(), "between 1 and 5") {
		t.Errorf("error must state the constraint: %q", err.Error())
	}
}

func TestEnergyScoreCount(t *testing.T) {
	_, err := Evaluate(inputs(1, 1, 3, 3), config.Default())
	if err == nil {
		t.Fatal("expected validation error for 2 scores")
	}
	if !strings.Contains(err.Error(), "Received 2 values") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestNegativeDeadlines(t *testing.T) {
	_, err := Evaluate(inputs(-1, 1, 3, 3, 3), config.Default())
	if err == nil {
		t.Fatal("expected validation error for negative deadlines")
	}
	if !strings.Contains(err.Error(), "non-negative") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestNegativeDomains(t *testing.T) {
	_, err := Evaluate(inputs(1, -2, 3, 3, 3), config.Default())
	if err == nil {
		t.Fatal("expected validation error for negative domains")
	}
}

func TestValidationOrderEnergyFirst(t *testing.T) {
	// Both energy and deadlines invalid — energy must be reported first.
	_, err := Evaluate(inputs(-1, 0, 9, 9, 9), config.Default())
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "energy score") {
		t.Errorf("energy must be validated before deadlines: %q", err.Error())
	}
}

func TestDeterminism(t *testing.T) {
	in := inputs(3, 2, 2, 3, 2)
	cfg := config.Default()

	first, err := Evaluate(in, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 2; i++ {
		again, err := Evaluate(in, cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again.State != first.State || again.Explanation != first.Explanation {
			t.Fatalf("evaluation not deterministic: %+v vs %+v", first, again)
		}
		if len(again.ConditionsMet) != len(first.ConditionsMet) {
			t.Fatalf("condition list not deterministic")
		}
		for j := range again.ConditionsMet {
			if again.ConditionsMet[j] != first.ConditionsMet[j] {
				t.Fatalf("condition order not deterministic")
			}
		}
	}
}

func TestThresholdMonotonicity(t *testing.T) {
	cfg := config.Default()

	base, err := Evaluate(inputs(2, 2, 3, 3, 3), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Increasing deadlines or domains, or lowering energy, must never
	// move the state toward NORMAL.
	worse := []model.StateInputs{
		inputs(3, 2, 3, 3, 3),
		inputs(2, 3, 3, 3, 3),
		inputs(2, 2, 2, 2, 2),
		inputs(5, 5, 1, 1, 1),
	}
	for _, w := range worse {
		result, err := Evaluate(w, cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if model.StateRank[result.State] < model.StateRank[base.State] {
			t.Errorf("worse inputs %+v moved state from %s to %s", w, base.State, result.State)
		}
	}
}

func BenchmarkEvaluate(b *testing.B) {
	cfg := config.Default()
	in := inputs(4, 3, 2, 2, 2)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Evaluate(in, cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEvaluateNormal(b *testing.B) {
	cfg := config.Default()
	in := inputs(0, 0, 5, 5, 5)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Evaluate(in, cfg); err != nil {
			b.Fatal(err)
		}
	}
}
