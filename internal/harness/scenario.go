package harness

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/gildedrose/internal/inventory"
)

//go:embed schema.cue
var scenarioSchema string

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names the golden file.
	Name string `yaml:"name" json:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description" json:"description"`

	// Days is the number of simulated days. Zero checks the starting state.
	Days int `yaml:"days" json:"days"`

	// Items is the starting inventory, in report order.
	Items []inventory.Item `yaml:"items" json:"items"`

	// Expect lists per-item checks.
	Expect []Expectation `yaml:"expect,omitempty" json:"expect,omitempty"`
}

// Expectation checks one item on one day. Nil fields are not checked.
type Expectation struct {
	// Index is the item's position in Items.
	Index int `yaml:"index" json:"index"`

	// Day defaults to the scenario's final day.
	Day *int `yaml:"day,omitempty" json:"day,omitempty"`

	// Name, when set, must equal the item's name.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	SellIn  *int `yaml:"sell_in,omitempty" json:"sell_in,omitempty"`
	Quality *int `yaml:"quality,omitempty" json:"quality,omitempty"`
}

// DayOr returns the expectation's day, or final when unset.
func (e Expectation) DayOr(final int) int {
	if e.Day == nil {
		return final
	}
	return *e.Day
}

// Supported scenario file extensions.
const (
	ExtYAML = ".yaml"
	ExtYML  = ".yml"
	ExtCUE  = ".cue"
)

// IsScenarioFile reports whether path has a scenario extension.
func IsScenarioFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtYAML, ExtYML, ExtCUE:
		return true
	}
	return false
}

// LoadScenario reads and parses a scenario file, choosing the decoder by
// extension. Unknown fields, malformed input and missing required fields
// are all errors.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario *Scenario
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ExtYAML, ExtYML:
		scenario, err = ParseYAML(data)
	case ExtCUE:
		scenario, err = ParseCUE(data, path)
	default:
		return nil, fmt.Errorf("unsupported scenario extension %q", ext)
	}
	if err != nil {
		return nil, err
	}

	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return scenario, nil
}

// ParseYAML decodes a YAML scenario with strict field checking.
// The result is not validated.
func ParseYAML(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject typos like "item:" vs "items:"
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &scenario, nil
}

// ParseCUE compiles a CUE scenario and unifies it with the #Scenario schema.
// Definitions are closed, so unknown fields fail unification.
// The result is not validated beyond the schema.
func ParseCUE(data []byte, filename string) (*Scenario, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(scenarioSchema, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile scenario schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse CUE: %s", cueerrors.Details(err, nil))
	}

	unified := schema.LookupPath(cue.ParsePath("#Scenario")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("scenario does not match schema: %s", cueerrors.Details(err, nil))
	}

	var scenario Scenario
	if err := unified.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to decode CUE scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks required fields and expectation bounds.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Days < 0 {
		return fmt.Errorf("days must be non-negative, got %d", s.Days)
	}

	if len(s.Items) == 0 {
		return fmt.Errorf("items list is required and must be non-empty")
	}

	for i, e := range s.Expect {
		if e.Index < 0 || e.Index >= len(s.Items) {
			return fmt.Errorf("expect[%d]: index %d out of range [0, %d)", i, e.Index, len(s.Items))
		}
		if day := e.DayOr(s.Days); day < 0 || day > s.Days {
			return fmt.Errorf("expect[%d]: day %d out of range [0, %d]", i, day, s.Days)
		}
		if e.SellIn == nil && e.Quality == nil {
			return fmt.Errorf("expect[%d]: at least one of sell_in or quality is required", i)
		}
	}

	return nil
}
