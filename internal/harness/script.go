package harness

import (
	"fmt"
	"strings"

	"github.com/AnneKitsune/game-engine-core/statestack"
)

// RunData is the shared data threaded through scenario runs. Scripted
// states count their own updates; the frame hook counts frames.
type RunData struct {
	Updates map[string]int `json:"updates"`
	Frames  int            `json:"frames"`
}

// instruction is one parsed script entry.
type instruction struct {
	kind   statestack.Kind
	target string // state name for push/switch
}

// parseInstruction parses a script entry: "none", "pop", "quit",
// "push:<state>", or "switch:<state>".
func parseInstruction(raw string) (instruction, error) {
	switch {
	case raw == "none":
		return instruction{kind: statestack.KindNone}, nil
	case raw == "pop":
		return instruction{kind: statestack.KindPop}, nil
	case raw == "quit":
		return instruction{kind: statestack.KindQuit}, nil
	case strings.HasPrefix(raw, "push:"):
		target := strings.TrimPrefix(raw, "push:")
		if target == "" {
			return instruction{}, fmt.Errorf("push instruction missing target state")
		}
		return instruction{kind: statestack.KindPush, target: target}, nil
	case strings.HasPrefix(raw, "switch:"):
		target := strings.TrimPrefix(raw, "switch:")
		if target == "" {
			return instruction{}, fmt.Errorf("switch instruction missing target state")
		}
		return instruction{kind: statestack.KindSwitch, target: target}, nil
	default:
		return instruction{}, fmt.Errorf("unknown instruction %q", raw)
	}
}

// scriptedState replays a parsed script, one instruction per update.
// Push and switch targets are constructed fresh from the scenario's
// state definitions each time, since the stack exclusively owns each
// state instance it holds.
type scriptedState struct {
	statestack.Base[RunData]
	name   string
	script []instruction
	defs   map[string]StateDef
	pos    int
}

// newScriptedState builds a state from its scenario definition.
// The definition must have been validated first.
func newScriptedState(name string, defs map[string]StateDef) (*scriptedState, error) {
	def, ok := defs[name]
	if !ok {
		return nil, fmt.Errorf("undefined state %q", name)
	}
	script := make([]instruction, len(def.Script))
	for i, raw := range def.Script {
		ins, err := parseInstruction(raw)
		if err != nil {
			return nil, fmt.Errorf("state %q script[%d]: %w", name, i, err)
		}
		script[i] = ins
	}
	return &scriptedState{name: name, script: script, defs: defs}, nil
}

func (s *scriptedState) StateName() string { return s.name }

func (s *scriptedState) Update(d *RunData) statestack.Transition[RunData] {
	if d.Updates == nil {
		d.Updates = make(map[string]int)
	}
	d.Updates[s.name]++

	if s.pos >= len(s.script) {
		return statestack.None[RunData]()
	}
	ins := s.script[s.pos]
	s.pos++

	switch ins.kind {
	case statestack.KindPush:
		next, err := newScriptedState(ins.target, s.defs)
		if err != nil {
			// Validation guarantees targets exist; a miss here is a bug.
			panic(fmt.Sprintf("harness: %v", err))
		}
		return statestack.Push[RunData](next)
	case statestack.KindSwitch:
		next, err := newScriptedState(ins.target, s.defs)
		if err != nil {
			panic(fmt.Sprintf("harness: %v", err))
		}
		return statestack.Switch[RunData](next)
	case statestack.KindPop:
		return statestack.Pop[RunData]()
	case statestack.KindQuit:
		return statestack.Quit[RunData]()
	default:
		return statestack.None[RunData]()
	}
}
