package statestack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// journal is the shared data type for machine tests. States append
// "<name>.<hook>" entries so tests can assert exact hook ordering.
type journal struct {
	entries []string
}

func (j *journal) add(entry string) {
	j.entries = append(j.entries, entry)
}

// recState is a scripted test state. Each Update consumes the next
// transition from the script; an exhausted script returns None.
type recState struct {
	name   string
	script []Transition[journal]
	pos    int
}

func newRecState(name string, script ...Transition[journal]) *recState {
	return &recState{name: name, script: script}
}

func (s *recState) StateName() string { return s.name }

func (s *recState) OnStart(j *journal)  { j.add(s.name + ".start") }
func (s *recState) OnStop(j *journal)   { j.add(s.name + ".stop") }
func (s *recState) OnPause(j *journal)  { j.add(s.name + ".pause") }
func (s *recState) OnResume(j *journal) { j.add(s.name + ".resume") }

func (s *recState) Update(j *journal) Transition[journal] {
	j.add(s.name + ".update")
	if s.pos >= len(s.script) {
		return None[journal]()
	}
	t := s.script[s.pos]
	s.pos++
	return t
}

func TestMachine_New(t *testing.T) {
	var j journal
	m := New[journal](newRecState("a"))

	assert.Equal(t, 1, m.Len())
	assert.True(t, m.IsRunning())
	// The initial state is pre-started: no OnStart fires at construction.
	assert.Empty(t, j.entries)
}

func TestMachine_UpdateNone(t *testing.T) {
	var j journal
	m := New[journal](newRecState("a"))

	m.Update(&j)
	m.Update(&j)

	assert.Equal(t, []string{"a.update", "a.update"}, j.entries)
	assert.Equal(t, 1, m.Len())
}

func TestMachine_PushOrdering(t *testing.T) {
	var j journal
	b := newRecState("b")
	a := newRecState("a", Push[journal](b))
	m := New[journal](a)

	m.Update(&j)

	require.Equal(t, []string{"a.update", "a.pause", "b.start"}, j.entries)
	assert.Equal(t, 2, m.Len())

	// Next tick updates the new top only.
	m.Update(&j)
	assert.Equal(t, "b.update", j.entries[len(j.entries)-1])
}

func TestMachine_PopWithRemainder(t *testing.T) {
	var j journal
	b := newRecState("b", Pop[journal]())
	a := newRecState("a", Push[journal](b))
	m := New[journal](a)

	m.Update(&j) // a pushes b
	m.Update(&j) // b pops itself

	require.Equal(t, []string{
		"a.update", "a.pause", "b.start",
		"b.update", "b.stop", "a.resume",
	}, j.entries)
	assert.Equal(t, 1, m.Len())
	assert.True(t, m.IsRunning())
}

func TestMachine_PopLastEndsRun(t *testing.T) {
	var j journal
	m := New[journal](newRecState("a", Pop[journal]()))

	m.Update(&j)

	assert.Equal(t, []string{"a.update", "a.stop"}, j.entries)
	assert.Equal(t, 0, m.Len())
	assert.False(t, m.IsRunning())
}

func TestMachine_SwitchPreservesLowerStack(t *testing.T) {
	var j journal
	c := newRecState("c")
	b := newRecState("b", Switch[journal](c))
	a := newRecState("a", Push[journal](b))
	m := New[journal](a)

	m.Update(&j) // a pushes b
	j.entries = nil

	m.Update(&j) // b switches to c

	require.Equal(t, []string{"b.update", "b.stop", "c.start"}, j.entries)
	assert.Equal(t, 2, m.Len())

	// a stays paused beneath c: popping c resumes a.
	m.Pop(&j)
	assert.Equal(t, "a.resume", j.entries[len(j.entries)-1])
}

func TestMachine_QuitDrainsWithoutResuming(t *testing.T) {
	var j journal
	c := newRecState("c", Quit[journal]())
	b := newRecState("b", Push[journal](c))
	a := newRecState("a", Push[journal](b))
	m := New[journal](a)

	m.Update(&j) // a pushes b
	m.Update(&j) // b pushes c
	require.Equal(t, 3, m.Len())
	j.entries = nil

	m.Update(&j) // c quits

	// Only the top state is stopped; a and b are dropped silently.
	assert.Equal(t, []string{"c.update", "c.stop"}, j.entries)
	assert.Equal(t, 0, m.Len())
	assert.False(t, m.IsRunning())
}

func TestMachine_EmptyStackIsInert(t *testing.T) {
	var j journal
	m := New[journal](newRecState("a", Quit[journal]()))
	m.Update(&j)
	require.False(t, m.IsRunning())
	j.entries = nil

	m.Update(&j)
	m.Pop(&j)
	m.Quit(&j)

	assert.Empty(t, j.entries)
	assert.Equal(t, 0, m.Len())
}

func TestMachine_SwitchOnEmptyPushes(t *testing.T) {
	var j journal
	m := New[journal](newRecState("a", Quit[journal]()))
	m.Update(&j)
	require.Equal(t, 0, m.Len())

	m.Switch(newRecState("b"), &j)

	assert.Equal(t, "b.start", j.entries[len(j.entries)-1])
	assert.Equal(t, 1, m.Len())
}

func TestMachine_StackNeverUnderflows(t *testing.T) {
	var j journal
	m := New[journal](newRecState("a", Pop[journal]()))

	for i := 0; i < 10; i++ {
		m.Update(&j)
		m.Pop(&j)
		m.Quit(&j)
		require.GreaterOrEqual(t, m.Len(), 0)
	}

	// Exactly one state ever lived on the stack, so exactly one stop.
	stops := 0
	for _, e := range j.entries {
		if e == "a.stop" {
			stops++
		}
	}
	assert.Equal(t, 1, stops)
}

func TestMachine_Observer(t *testing.T) {
	type obsEvent struct {
		op    Op
		state string
		depth int
	}
	var events []obsEvent
	var j journal

	b := newRecState("b", Pop[journal]())
	a := newRecState("a", Push[journal](b), Quit[journal]())
	m := New[journal](a, WithObserver[journal](func(op Op, state string, depth int) {
		events = append(events, obsEvent{op, state, depth})
	}))

	m.Update(&j) // a pushes b
	m.Update(&j) // b pops, a resumes
	m.Update(&j) // a quits

	assert.Equal(t, []obsEvent{
		{OpUpdate, "a", 1},
		{OpPause, "a", 1},
		{OpStart, "b", 2},
		{OpUpdate, "b", 2},
		{OpStop, "b", 1},
		{OpResume, "a", 1},
		{OpUpdate, "a", 1},
		{OpStop, "a", 0},
	}, events)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "a", Label[journal](newRecState("a")))

	// Unnamed states fall back to their Go type.
	assert.Equal(t, "*statestack.anonState", Label[journal](&anonState{}))
}

// anonState has no StateName and exercises the %T fallback.
type anonState struct {
	Base[journal]
}

func (s *anonState) Update(*journal) Transition[journal] {
	return None[journal]()
}
