package importer

import (
	"fmt"
	"os"

	yaml "go.yaml.in/yaml/v3"
)

// ImportSchema is the top-level YAML structure for bulk plan import.
type ImportSchema struct {
	Defaults *DefaultsImport `yaml:"defaults,omitempty"`
	Plans    []PlanImport    `yaml:"plans"`
}

// DefaultsImport defines file-wide defaults that cascade to every plan that
// leaves the field unset.
type DefaultsImport struct {
	Frequency   string  `yaml:"frequency,omitempty"`
	Workshop    string  `yaml:"workshop,omitempty"`
	CrewSize    int     `yaml:"crew_size,omitempty"`
	PersonHours float64 `yaml:"person_hours,omitempty"`
	Condition   string  `yaml:"condition,omitempty"`
	SiteRef     string  `yaml:"site_ref,omitempty"`
}

// PlanImport defines one maintenance plan in the import file.
type PlanImport struct {
	Code        string  `yaml:"code"`
	Description string  `yaml:"description"`
	Frequency   string  `yaml:"frequency,omitempty"`
	StartDate   string  `yaml:"start_date,omitempty"`
	EndDate     *string `yaml:"end_date,omitempty"`
	Workshop    string  `yaml:"workshop,omitempty"`
	CrewSize    int     `yaml:"crew_size,omitempty"`
	PersonHours float64 `yaml:"person_hours,omitempty"`
	Condition   string  `yaml:"condition,omitempty"`
	SiteRef     string  `yaml:"site_ref,omitempty"`
	Inactive    bool    `yaml:"inactive,omitempty"`
}

// LoadImportSchema reads and parses an import file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}

	var schema ImportSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
