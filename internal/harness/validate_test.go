package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validScenario() *Scenario {
	return &Scenario{
		Name:    "valid",
		Initial: "root",
		States: map[string]StateDef{
			"root": {Script: []string{"quit"}},
		},
	}
}

func TestValidate_Accepts(t *testing.T) {
	assert.NoError(t, Validate(validScenario()))
}

func TestValidate_EmptyName(t *testing.T) {
	sc := validScenario()
	sc.Name = ""
	assert.ErrorContains(t, Validate(sc), "schema validation")
}

func TestValidate_BadAssertionType(t *testing.T) {
	sc := validScenario()
	sc.Assertions = []Assertion{{Type: "bogus"}}
	assert.ErrorContains(t, Validate(sc), "schema validation")
}

func TestValidate_BadAssertionOp(t *testing.T) {
	sc := validScenario()
	sc.Assertions = []Assertion{{Type: "trace_count", Op: "explode", Count: 1}}
	assert.ErrorContains(t, Validate(sc), "schema validation")
}

func TestValidate_NegativeMaxSteps(t *testing.T) {
	sc := validScenario()
	sc.MaxSteps = -5
	assert.ErrorContains(t, Validate(sc), "schema validation")
}

func TestValidate_NoStates(t *testing.T) {
	sc := validScenario()
	sc.States = map[string]StateDef{}
	assert.ErrorContains(t, Validate(sc), "scenario defines no states")
}

func TestValidate_UndefinedInitial(t *testing.T) {
	sc := validScenario()
	sc.Initial = "elsewhere"
	assert.ErrorContains(t, Validate(sc), `initial state "elsewhere" is not defined`)
}

func TestValidate_UndefinedSwitchTarget(t *testing.T) {
	sc := validScenario()
	sc.States["root"] = StateDef{Script: []string{"switch:ghost"}}
	assert.ErrorContains(t, Validate(sc), `target state "ghost" is not defined`)
}

func TestValidate_UnparsableInstruction(t *testing.T) {
	sc := validScenario()
	sc.States["root"] = StateDef{Script: []string{"warp:somewhere"}}
	assert.ErrorContains(t, Validate(sc), "unknown instruction")
}
