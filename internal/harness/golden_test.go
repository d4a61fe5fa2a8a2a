package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runGolden(t *testing.T, name string) *Result {
	t.Helper()
	sc, err := LoadScenario("testdata/scenarios/" + name + ".yaml")
	require.NoError(t, err)

	result, err := RunWithGolden(t, sc)
	require.NoError(t, err)
	return result
}

func TestGolden_PushPopDrain(t *testing.T) {
	result := runGolden(t, "push-pop-drain")
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestGolden_SwitchPreservesBase(t *testing.T) {
	result := runGolden(t, "switch-preserves-base")
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestGolden_QuitHardExit(t *testing.T) {
	result := runGolden(t, "quit-hard-exit")
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}
