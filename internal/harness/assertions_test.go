package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnneKitsune/game-engine-core/internal/trace"
)

func sampleTrace() []trace.Event {
	return []trace.Event{
		{Seq: 1, Op: "update", State: "root", Depth: 1},
		{Seq: 2, Op: "pause", State: "root", Depth: 1},
		{Seq: 3, Op: "start", State: "child", Depth: 2},
		{Seq: 4, Op: "update", State: "child", Depth: 2},
		{Seq: 5, Op: "stop", State: "child", Depth: 1},
		{Seq: 6, Op: "resume", State: "root", Depth: 1},
	}
}

func TestAssertTraceCount(t *testing.T) {
	events := sampleTrace()

	assert.NoError(t, assertTraceCount(events, Assertion{Op: "update", Count: 2}))
	assert.NoError(t, assertTraceCount(events, Assertion{Op: "update", State: "child", Count: 1}))
	assert.NoError(t, assertTraceCount(events, Assertion{Op: "quit", Count: 0}))

	err := assertTraceCount(events, Assertion{Op: "stop", Count: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stop appears 3 times")
	assert.Contains(t, err.Error(), "appears 1 times")
}

func TestAssertTraceOrder(t *testing.T) {
	events := sampleTrace()

	// Subsequence match: intervening events are allowed.
	assert.NoError(t, assertTraceOrder(events, Assertion{
		Events: []string{"pause root", "stop child", "resume root"},
	}))

	err := assertTraceOrder(events, Assertion{
		Events: []string{"stop child", "pause root"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `next missing: "pause root"`)
}

func TestAssertFinalUpdates(t *testing.T) {
	result := &Result{
		Pass:  true,
		Data:  RunData{Updates: map[string]int{"root": 2, "child": 1}},
		Trace: sampleTrace(),
	}

	assert.NoError(t, assertFinalUpdates(result, Assertion{
		Updates: map[string]int{"root": 2, "child": 1},
	}))
	assert.Error(t, assertFinalUpdates(result, Assertion{
		Updates: map[string]int{"root": 5},
	}))
	// A state that never updated counts as zero.
	assert.NoError(t, assertFinalUpdates(result, Assertion{
		Updates: map[string]int{"ghost": 0},
	}))
}

func TestAssertStackEmpty(t *testing.T) {
	assert.NoError(t, assertStackEmpty(&Result{StackLen: 0}))

	err := assertStackEmpty(&Result{StackLen: 2, Trace: sampleTrace()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 states remain")
}

func TestApplyAssertions_RecordsFailures(t *testing.T) {
	sc := validScenario()
	sc.Assertions = []Assertion{
		{Type: "trace_count", Op: "update", Count: 99},
		{Type: "stack_empty"},
	}
	result := &Result{Pass: true, Trace: sampleTrace(), StackLen: 0}

	applyAssertions(result, sc)

	assert.False(t, result.Pass)
	assert.Len(t, result.Errors, 1)
}
