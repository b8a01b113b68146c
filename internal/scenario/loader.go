package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads scenarios from a YAML or JSON file; the format is chosen by
// extension. A file must define at least one scenario under `scenarios`
// or `advisory_scenarios`.
func Load(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file %s: %w", path, err)
	}

	var file File
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse scenario YAML %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse scenario JSON %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported scenario format %q (expected .yaml, .yml, or .json)", ext)
	}

	scenarios := append(file.Scenarios, file.AdvisoryScenarios...)
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios found in %s (expected 'scenarios' or 'advisory_scenarios')", path)
	}

	for i, s := range scenarios {
		if s.Name == "" {
			return nil, fmt.Errorf("scenario %d in %s: missing name", i, path)
		}
	}

	return scenarios, nil
}

// Find returns the scenario with the given name.
func Find(scenarios []Scenario, name string) (Scenario, error) {
	for _, s := range scenarios {
		if s.Name == name {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("scenario %q not found", name)
}
