package remote

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ezcoach/ezcoach-go/internal/protocol"
	"github.com/ezcoach/ezcoach-go/internal/protocol/schema"
)

// Manifest is the game's self-description announced on connect: what it is
// called, the shape of its actions and states, the player counts it supports
// and the per-episode metrics it reports.
type Manifest struct {
	name            string
	description     string
	actions         schema.Value
	states          schema.Value
	possiblePlayers []int
	metricsNames    []string
}

func (m *Manifest) Name() string           { return m.name }
func (m *Manifest) Description() string    { return m.description }
func (m *Manifest) Actions() schema.Value  { return m.actions }
func (m *Manifest) States() schema.Value   { return m.states }
func (m *Manifest) PossiblePlayers() []int { return m.possiblePlayers }
func (m *Manifest) MetricsNames() []string { return m.metricsNames }

func (m *Manifest) SupportsPlayers(n int) bool {
	for _, p := range m.possiblePlayers {
		if p == n {
			return true
		}
	}
	return false
}

// String renders a multi-line summary suitable for a terminal.
func (m *Manifest) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "game:        %s\n", m.name)
	if m.description != "" {
		fmt.Fprintf(&b, "description: %s\n", m.description)
	}
	fmt.Fprintf(&b, "players:     %v\n", m.possiblePlayers)
	fmt.Fprintf(&b, "actions:     %s (%d components)\n", m.actions.Description(), m.actions.Size())
	fmt.Fprintf(&b, "states:      %s (%d components)\n", m.states.Description(), m.states.Size())
	if len(m.metricsNames) > 0 {
		fmt.Fprintf(&b, "metrics:     %s\n", strings.Join(m.metricsNames, ", "))
	}
	return b.String()
}

// ParseManifest decodes a manifest message. The schema sub-documents pass
// through the type-tag registries.
func ParseManifest(msg protocol.Message) (*Manifest, error) {
	name, _ := msg[protocol.AttrName].(string)
	description, _ := msg[protocol.AttrDescription].(string)

	actions, err := valueAttr(msg, protocol.AttrActions)
	if err != nil {
		return nil, err
	}
	states, err := valueAttr(msg, protocol.AttrStates)
	if err != nil {
		return nil, err
	}

	players, err := intSliceAttr(msg, protocol.AttrPlayers)
	if err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("manifest: no supported player counts")
	}

	var metricsNames []string
	if raw, ok := msg[protocol.AttrMetricsNames].([]any); ok {
		for i, v := range raw {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("manifest: metrics name %d is %T, want string", i, v)
			}
			metricsNames = append(metricsNames, s)
		}
	}

	return &Manifest{
		name:            name,
		description:     description,
		actions:         actions,
		states:          states,
		possiblePlayers: players,
		metricsNames:    metricsNames,
	}, nil
}

func valueAttr(msg protocol.Message, attr string) (schema.Value, error) {
	v, ok := msg[attr]
	if !ok {
		return nil, fmt.Errorf("manifest: missing %q", attr)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("manifest: re-encode %q: %w", attr, err)
	}
	def, err := schema.ValueFromJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("manifest: %q: %w", attr, err)
	}
	return def, nil
}

func intSliceAttr(msg protocol.Message, attr string) ([]int, error) {
	raw, ok := msg[attr].([]any)
	if !ok {
		return nil, fmt.Errorf("manifest: %q is %T, want array", attr, msg[attr])
	}
	out := make([]int, len(raw))
	for i, v := range raw {
		f, ok := v.(float64)
		if !ok || f != float64(int(f)) {
			return nil, fmt.Errorf("manifest: %q element %d is not an integer", attr, i)
		}
		out[i] = int(f)
	}
	return out, nil
}
