package protocol

import "testing"

func TestMessageType(t *testing.T) {
	if got := NewStart(3, nil).Type(); got != TypeStart {
		t.Fatalf("got %q, want %q", got, TypeStart)
	}
	if got := (Message{}).Type(); got != "" {
		t.Fatalf("typeless message: got %q, want empty", got)
	}
	if got := (Message{AttrType: 7}).Type(); got != "" {
		t.Fatalf("non-string type: got %q, want empty", got)
	}
}

func TestNewStartCarriesOptions(t *testing.T) {
	m := NewStart(2, map[string]any{"difficulty": "hard"})
	opts, ok := m[AttrOptions].(map[string]any)
	if !ok || opts["difficulty"] != "hard" {
		t.Fatalf("options not carried: %v", m[AttrOptions])
	}
	if m[AttrPlayers] != 2 {
		t.Fatalf("players: got %v, want 2", m[AttrPlayers])
	}
}
