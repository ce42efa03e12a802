package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
)

var objectBoundary = []byte("}{")

// Framer reassembles discrete JSON messages from a stream of arbitrary byte
// chunks. Messages arrive concatenated with no delimiter, so chunk edges can
// fall anywhere; an incomplete trailing fragment is carried over to the next
// push.
//
// The boundary detection splits on the literal "}{" and therefore misfires
// when a string value legitimately contains that substring. The behavior is
// kept for wire compatibility with existing engine plugins.
type Framer struct {
	partial []byte
}

// Push feeds one raw chunk and returns every message completed by it, in
// arrival order. A fragment that fails to parse anywhere but the tail of the
// chunk is an ErrParse; messages decoded before the failure are still
// returned.
func (f *Framer) Push(chunk []byte) ([]Message, error) {
	var whole Message
	if err := json.Unmarshal(chunk, &whole); err == nil {
		return []Message{whole}, nil
	}

	raw := chunk
	if len(f.partial) > 0 {
		merged := make([]byte, 0, len(f.partial)+len(chunk))
		merged = append(merged, f.partial...)
		merged = append(merged, chunk...)
		raw = merged
		f.partial = nil
	}

	fragments := splitConcatenated(raw)
	msgs := make([]Message, 0, len(fragments))
	for i, fragment := range fragments {
		var m Message
		if err := json.Unmarshal(fragment, &m); err != nil {
			if i == len(fragments)-1 {
				f.partial = append([]byte(nil), fragment...)
				break
			}
			return msgs, fmt.Errorf("%w: %q", ErrParse, truncateForError(fragment))
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

// splitConcatenated cuts a run of concatenated JSON objects on adjacent
// object boundaries and restores the braces consumed by the cut.
func splitConcatenated(raw []byte) [][]byte {
	parts := bytes.Split(raw, objectBoundary)
	if len(parts) == 1 {
		return [][]byte{raw}
	}
	out := make([][]byte, len(parts))
	for i, part := range parts {
		fragment := make([]byte, 0, len(part)+2)
		if i > 0 {
			fragment = append(fragment, '{')
		}
		fragment = append(fragment, part...)
		if i < len(parts)-1 {
			fragment = append(fragment, '}')
		}
		out[i] = fragment
	}
	return out
}

func truncateForError(fragment []byte) string {
	const max = 64
	if len(fragment) <= max {
		return string(fragment)
	}
	return string(fragment[:max]) + "..."
}
