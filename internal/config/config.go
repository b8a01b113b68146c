package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/loadwatch/internal/model"
)

// Thresholds is one threshold set matching the StateInputs shape.
// AvgEnergyScore is compared against the arithmetic mean of the last
// three energy scores.
type Thresholds struct {
	FixedDeadlines14d     int `yaml:"fixed_deadlines_14d"`
	ActiveHighLoadDomains int `yaml:"active_high_load_domains"`
	AvgEnergyScore        int `yaml:"avg_energy_score"`
}

// ThresholdConfig holds both threshold sets.
type ThresholdConfig struct {
	Overload Thresholds `yaml:"overload"`
	Recovery Thresholds `yaml:"recovery"`
}

// AuthorityRule is the configured permission tuple for one state.
type AuthorityRule struct {
	Planning  model.Permission `yaml:"planning"`
	Execution model.Permission `yaml:"execution"`
	Mode      model.Mode       `yaml:"mode"`
}

// Config is the complete validated system configuration. Loaded once per
// process and treated as read-only afterwards.
type Config struct {
	Thresholds          ThresholdConfig               `yaml:"thresholds"`
	DowngradeRules      map[model.State][]string      `yaml:"downgrade_rules"`
	RecoveryAdvice      []string                      `yaml:"recovery_advice"`
	AuthorityDerivation map[model.State]AuthorityRule `yaml:"authority_derivation"`
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	return &Config{
		Thresholds: ThresholdConfig{
			Overload: Thresholds{
				FixedDeadlines14d:     3,
				ActiveHighLoadDomains: 3,
				AvgEnergyScore:        2,
			},
			Recovery: Thresholds{
				FixedDeadlines14d:     1,
				ActiveHighLoadDomains: 2,
				AvgEnergyScore:        4,
			},
		},
		DowngradeRules: map[model.State][]string{
			model.StateOverloaded: {
				"No new commitments",
				"Pause technical tool development",
			},
			model.StateStressed: {
				"Warning: approaching overload",
				"Discourage new projects",
			},
		},
		RecoveryAdvice: []string{
			"Deadlines have cleared",
			"High-load domains have reduced",
		},
		AuthorityDerivation: map[model.State]AuthorityRule{
			model.StateOverloaded: {Planning: model.Denied, Execution: model.Denied, Mode: model.ModeContainment},
			model.StateStressed:   {Planning: model.Denied, Execution: model.Denied, Mode: model.ModeContainment},
			model.StateNormal:     {Planning: model.Allowed, Execution: model.Denied, Mode: model.ModeNormal},
		},
	}
}

// Load reads and validates configuration from a YAML file.
// Empty path falls back to ~/.loadwatch/config.yaml; a missing file at the
// fallback location returns defaults. An explicitly named file must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return Default(), nil
		}
		path = filepath.Join(home, ".loadwatch", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

// Validate checks structural invariants: both downgrade-rule states are
// present, all three states have authority tuples, and every enum value is
// drawn from its closed set. The core packages assume a Config that passed
// this check.
func (c *Config) Validate() error {
	for _, state := range []model.State{model.StateOverloaded, model.StateStressed} {
		if _, ok := c.DowngradeRules[state]; !ok {
			return fmt.Errorf("downgrade_rules missing required state %s", state)
		}
	}

	for _, state := range []model.State{model.StateOverloaded, model.StateStressed, model.StateNormal} {
		rule, ok := c.AuthorityDerivation[state]
		if !ok {
			return fmt.Errorf("authority_derivation missing required state %s", state)
		}
		if !model.ValidPermission(rule.Planning) {
			return fmt.Errorf("authority_derivation.%s.planning: invalid value %q (expected ALLOWED or DENIED)", state, rule.Planning)
		}
		if !model.ValidPermission(rule.Execution) {
			return fmt.Errorf("authority_derivation.%s.execution: invalid value %q (expected ALLOWED or DENIED)", state, rule.Execution)
		}
		if !model.ValidMode(rule.Mode) {
			return fmt.Errorf("authority_derivation.%s.mode: invalid value %q (expected NORMAL, CONTAINMENT, or RECOVERY)", state, rule.Mode)
		}
	}

	for state := range c.DowngradeRules {
		if !model.ValidState(state) {
			return fmt.Errorf("downgrade_rules: unknown state %q", state)
		}
	}
	for state := range c.AuthorityDerivation {
		if !model.ValidState(state) {
			return fmt.Errorf("authority_derivation: unknown state %q", state)
		}
	}

	return nil
}

// DefaultYAML returns a commented YAML template for the init command.
func DefaultYAML() string {
	return `# loadwatch configuration
# Generated by: loadwatch init
#
# Decision pipeline (order is fixed):
#   1. State evaluation against overload thresholds
#   2. Downgrade rule lookup for the classified state
#   3. Authority derivation (execution is ALWAYS denied in this phase)
#   4. Recovery check against recovery thresholds (independent of state)

# A state condition counts as met when:
#   fixed_deadlines_14d     >= overload.fixed_deadlines_14d
#   active_high_load_domains >= overload.active_high_load_domains
#   avg(energy last 3 days) <= overload.avg_energy_score
# 2+ conditions -> OVERLOADED, 1 -> STRESSED, 0 -> NORMAL.
thresholds:
  overload:
    fixed_deadlines_14d: 3
    active_high_load_domains: 3
    avg_energy_score: 2
  recovery:
    fixed_deadlines_14d: 1
    active_high_load_domains: 2
    avg_energy_score: 4

# Advisory strings surfaced verbatim for elevated states.
# NORMAL never has downgrade rules, even if listed here.
downgrade_rules:
  OVERLOADED:
    - "No new commitments"
    - "Pause technical tool development"
  STRESSED:
    - "Warning: approaching overload"
    - "Discourage new projects"

# Shown when all recovery conditions are met.
recovery_advice:
  - "Deadlines have cleared"
  - "High-load domains have reduced"

# Permission tuples per state. All three states are required.
# execution is structurally DENIED regardless of what is written here.
authority_derivation:
  OVERLOADED:
    planning: DENIED
    execution: DENIED
    mode: CONTAINMENT
  STRESSED:
    planning: DENIED
    execution: DENIED
    mode: CONTAINMENT
  NORMAL:
    planning: ALLOWED
    execution: DENIED
    mode: NORMAL
`
}
