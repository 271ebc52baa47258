package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lifecomm/commission-calculator/internal/domain"
)

// EarliestDelegationYear is the oldest delegation year the form accepts.
const EarliestDelegationYear = 1989

// InputParser handles parsing of scenario input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a calculation scenario from a YAML file, validates the
// delegation month and clamps every scalar input into the range the engine
// assumes. Entries are not checked against the product master here: a stale
// combination resolves to zero rates at calculation time.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse parses and validates scenario YAML.
func (ip *InputParser) Parse(data []byte) (*domain.Scenario, error) {
	var scenario domain.Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.Validate(&scenario, time.Now()); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}
	scenario.Clamp()
	for i := range scenario.Entries {
		if scenario.Entries[i].Premium < 0 {
			scenario.Entries[i].Premium = 0
		}
	}
	return &scenario, nil
}

// Validate checks the parts of a scenario that cannot be clamped into shape.
func (ip *InputParser) Validate(s *domain.Scenario, now time.Time) error {
	if s.CommissionYear < EarliestDelegationYear || s.CommissionYear > now.Year() {
		return fmt.Errorf("commission_year must be between %d and %d, got %d",
			EarliestDelegationYear, now.Year(), s.CommissionYear)
	}
	if s.CommissionMonth < 1 || s.CommissionMonth > 12 {
		return fmt.Errorf("commission_month must be between 1 and 12, got %d", s.CommissionMonth)
	}
	for i, e := range s.Entries {
		if e.Product == "" {
			return fmt.Errorf("entry %d: product is required", i+1)
		}
	}
	return nil
}
