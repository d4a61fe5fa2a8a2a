package trace

import (
	"bytes"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces the canonical JSON form of a trace, used
// for golden file comparison.
//
// Key differences from standard json.Marshal:
//  1. Fixed key order per event: seq, op, state, depth
//  2. No HTML escaping (< > & are NOT escaped)
//  3. State labels are NFC normalized
//
// State labels come from caller-supplied scenarios, so normalization
// keeps byte-identical golden output regardless of how the label was
// composed.
func MarshalCanonical(events []Event) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, ev := range events {
		if i > 0 {
			buf.WriteByte(',')
		}
		state, err := marshalString(norm.NFC.String(ev.State))
		if err != nil {
			return nil, fmt.Errorf("marshal state label %q: %w", ev.State, err)
		}
		fmt.Fprintf(&buf, `{"seq":%d,"op":%q,"state":%s,"depth":%d}`,
			ev.Seq, ev.Op, state, ev.Depth)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// marshalString JSON-encodes a string without HTML escaping.
func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	// Encode appends a trailing newline.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
