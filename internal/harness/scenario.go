package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultMaxSteps is the default per-scenario step quota.
// It prevents a script that never drains the stack from hanging the run.
const DefaultMaxSteps = 1000

// DefaultRunToken is the run token used when a scenario does not set
// one. A fixed default keeps golden traces and stored runs deterministic.
const DefaultRunToken = "test-run-default"

// Scenario defines a conformance test scenario: a scripted state
// graph plus assertions over the resulting hook trace.
type Scenario struct {
	// Name uniquely identifies this scenario; golden files are keyed by it.
	Name string `yaml:"name" json:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Initial names the state seeded on the stack. Per the engine
	// contract it is pre-started and receives no OnStart.
	Initial string `yaml:"initial" json:"initial"`

	// States maps state names to their scripted behavior.
	States map[string]StateDef `yaml:"states" json:"states"`

	// MaxSteps caps the number of engine steps. Zero means DefaultMaxSteps.
	MaxSteps int `yaml:"max_steps,omitempty" json:"max_steps,omitempty"`

	// RunToken fixes the engine run token. Empty means DefaultRunToken.
	RunToken string `yaml:"run_token,omitempty" json:"run_token,omitempty"`

	// Assertions validate the final trace and shared data.
	// Supported types: trace_count, trace_order, final_updates, stack_empty.
	Assertions []Assertion `yaml:"assertions,omitempty" json:"assertions,omitempty"`
}

// StateDef is the scripted behavior of one named state. Each update
// consumes the next instruction; an exhausted script keeps returning
// none, i.e. the state runs forever until something above it acts.
type StateDef struct {
	Script []string `yaml:"script" json:"script"`
}

// Assertion validates the trace or the final shared data.
type Assertion struct {
	// Type selects the assertion:
	//   - "trace_count":   Op (and optionally State) appears exactly Count times
	//   - "trace_order":   Events appear as a subsequence of the trace
	//   - "final_updates": per-state update counters match Updates exactly
	//   - "stack_empty":   the run ended with an empty stack
	Type string `yaml:"type" json:"type"`

	// Op is the machine operation for trace_count (update, start,
	// stop, pause, resume).
	Op string `yaml:"op,omitempty" json:"op,omitempty"`

	// State optionally narrows trace_count to one state label.
	State string `yaml:"state,omitempty" json:"state,omitempty"`

	// Count is the expected occurrence count for trace_count.
	Count int `yaml:"count,omitempty" json:"count,omitempty"`

	// Events lists "op state" pairs for trace_order.
	Events []string `yaml:"events,omitempty" json:"events,omitempty"`

	// Updates holds expected per-state update counts for final_updates.
	Updates map[string]int `yaml:"updates,omitempty" json:"updates,omitempty"`
}

// LoadScenario reads and validates a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := Validate(&sc); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &sc, nil
}

// maxSteps returns the effective step quota.
func (s *Scenario) maxSteps() int {
	if s.MaxSteps > 0 {
		return s.MaxSteps
	}
	return DefaultMaxSteps
}

// runToken returns the effective run token.
func (s *Scenario) runToken() string {
	if s.RunToken != "" {
		return s.RunToken
	}
	return DefaultRunToken
}
