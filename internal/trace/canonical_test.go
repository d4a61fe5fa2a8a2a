package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

func TestMarshalCanonical_Empty(t *testing.T) {
	out, err := MarshalCanonical(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))
}

func TestMarshalCanonical_FixedKeyOrder(t *testing.T) {
	out, err := MarshalCanonical([]Event{
		{Seq: 1, Op: "update", State: "menu", Depth: 1},
		{Seq: 2, Op: "stop", State: "menu", Depth: 0},
	})
	require.NoError(t, err)

	assert.Equal(t,
		`[{"seq":1,"op":"update","state":"menu","depth":1},`+
			`{"seq":2,"op":"stop","state":"menu","depth":0}]`,
		string(out))
}

func TestMarshalCanonical_NoHTMLEscaping(t *testing.T) {
	out, err := MarshalCanonical([]Event{
		{Seq: 1, Op: "start", State: "<menu>", Depth: 1},
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"<menu>"`)
}

func TestMarshalCanonical_NFCNormalizesLabels(t *testing.T) {
	// "é" composed from 'e' + combining acute accent.
	decomposed := "café"
	composed := norm.NFC.String(decomposed)
	require.NotEqual(t, decomposed, composed)

	a, err := MarshalCanonical([]Event{{Seq: 1, Op: "start", State: decomposed, Depth: 1}})
	require.NoError(t, err)
	b, err := MarshalCanonical([]Event{{Seq: 1, Op: "start", State: composed, Depth: 1}})
	require.NoError(t, err)

	assert.Equal(t, string(b), string(a))
}
