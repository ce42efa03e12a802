package protocol

import (
	"encoding/json"
	"errors"
	"testing"
)

func encodeAll(t *testing.T, msgs ...Message) []byte {
	t.Helper()
	var out []byte
	for _, m := range msgs {
		data, err := m.Encode()
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		out = append(out, data...)
	}
	return out
}

func TestFramerWholeChunk(t *testing.T) {
	var f Framer
	msgs, err := f.Push(encodeAll(t, NewConnect()))
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Type() != TypeConnect {
		t.Fatalf("got %v, want one connect message", msgs)
	}
}

func TestFramerConcatenatedChunk(t *testing.T) {
	var f Framer
	msgs, err := f.Push(encodeAll(t, NewConnect(), NewStop(), NewDisconnected()))
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	types := []string{TypeConnect, TypeStop, TypeDisconnected}
	if len(msgs) != len(types) {
		t.Fatalf("got %d messages, want %d", len(msgs), len(types))
	}
	for i, want := range types {
		if msgs[i].Type() != want {
			t.Fatalf("message %d: got %q, want %q", i, msgs[i].Type(), want)
		}
	}
}

// Chunk edges can fall anywhere in the byte stream; every split of the same
// stream must decode to the same messages.
func TestFramerArbitraryChunking(t *testing.T) {
	original := []Message{
		NewConnect(),
		NewStart(2, map[string]any{"level": "hard"}),
		NewAction([]any{1.0, 2.0}),
		NewStop(),
	}
	stream := encodeAll(t, original...)

	for size := 1; size <= len(stream); size++ {
		var f Framer
		var got []Message
		for start := 0; start < len(stream); start += size {
			end := start + size
			if end > len(stream) {
				end = len(stream)
			}
			msgs, err := f.Push(stream[start:end])
			if err != nil {
				t.Fatalf("chunk size %d: push: %v", size, err)
			}
			got = append(got, msgs...)
		}
		if len(got) != len(original) {
			t.Fatalf("chunk size %d: got %d messages, want %d", size, len(got), len(original))
		}
		for i := range got {
			if got[i].Type() != original[i].Type() {
				t.Fatalf("chunk size %d: message %d type %q, want %q",
					size, i, got[i].Type(), original[i].Type())
			}
		}
	}
}

func TestFramerCarriesResidualAcrossPushes(t *testing.T) {
	var f Framer
	stream := encodeAll(t, NewStart(1, nil))
	cut := len(stream) / 2

	msgs, err := f.Push(stream[:cut])
	if err != nil {
		t.Fatalf("first push: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("first push decoded %d messages, want 0", len(msgs))
	}

	msgs, err = f.Push(stream[cut:])
	if err != nil {
		t.Fatalf("second push: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Type() != TypeStart {
		t.Fatalf("got %v, want one start message", msgs)
	}
	if players, ok := msgs[0][AttrPlayers].(float64); !ok || players != 1 {
		t.Fatalf("players attribute: got %v", msgs[0][AttrPlayers])
	}
}

func TestFramerMalformedMiddleFragment(t *testing.T) {
	var f Framer
	chunk := []byte(`{"type":"connect"}{"type":`)
	chunk = append(chunk, []byte(`!garbage!}{"type":"stop"}`)...)

	msgs, err := f.Push(chunk)
	if !errors.Is(err, ErrParse) {
		t.Fatalf("got err %v, want ErrParse", err)
	}
	if len(msgs) != 1 || msgs[0].Type() != TypeConnect {
		t.Fatalf("messages before failure: got %v, want the connect message", msgs)
	}
}

func TestFramerTrailingFragmentIsNotAnError(t *testing.T) {
	var f Framer
	msgs, err := f.Push([]byte(`{"type":"connect"}{"type":"sto`))
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}

	msgs, err = f.Push([]byte(`p"}`))
	if err != nil {
		t.Fatalf("push tail: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Type() != TypeStop {
		t.Fatalf("got %v, want one stop message", msgs)
	}
}

func TestFramerPreservesPayload(t *testing.T) {
	var f Framer
	sent := NewAction([]any{3.0, true, []any{1.0, 2.0}})
	msgs, err := f.Push(encodeAll(t, sent))
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	want, _ := json.Marshal(sent)
	got, _ := json.Marshal(msgs[0])
	if string(got) != string(want) {
		t.Fatalf("payload changed: got %s, want %s", got, want)
	}
}
