package harness

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// scenarioSchema is the CUE schema every scenario must satisfy before
// the harness will run it. Structural validation lives here; semantic
// rules that need cross-references (instruction targets, initial
// state) are checked in Go afterwards.
const scenarioSchema = `
#Scenario: {
	name:         string & !=""
	description?: string
	initial:      string & !=""
	states: {[string]: #StateDef}
	max_steps?:  int & >0
	run_token?:  string & !=""
	assertions?: [...#Assertion]
}

#StateDef: {
	script: [...string]
}

#Assertion: {
	type:    "trace_count" | "trace_order" | "final_updates" | "stack_empty"
	op?:     "update" | "start" | "stop" | "pause" | "resume"
	state?:  string
	count?:  int & >=0
	events?: [...string]
	updates?: {[string]: int & >=0}
}
`

// Validate checks a scenario against the CUE schema, then applies the
// semantic rules the schema cannot express: the initial state and all
// push/switch targets must be defined, and every script entry must
// parse.
func Validate(sc *Scenario) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(scenarioSchema)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile scenario schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Scenario"))

	val := ctx.Encode(sc)
	if err := val.Err(); err != nil {
		return fmt.Errorf("encode scenario: %w", err)
	}

	if err := def.Unify(val).Validate(); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}

	return validateSemantics(sc)
}

func validateSemantics(sc *Scenario) error {
	if len(sc.States) == 0 {
		return fmt.Errorf("scenario defines no states")
	}
	if _, ok := sc.States[sc.Initial]; !ok {
		return fmt.Errorf("initial state %q is not defined", sc.Initial)
	}

	for name, def := range sc.States {
		for i, raw := range def.Script {
			ins, err := parseInstruction(raw)
			if err != nil {
				return fmt.Errorf("state %q script[%d]: %w", name, i, err)
			}
			if ins.target != "" {
				if _, ok := sc.States[ins.target]; !ok {
					return fmt.Errorf("state %q script[%d]: target state %q is not defined", name, i, ins.target)
				}
			}
		}
	}
	return nil
}
