package protocol

import "encoding/json"

// Message attribute keys from the wire contract.
const (
	AttrType         = "type"
	AttrName         = "name"
	AttrDescription  = "description"
	AttrPlayers      = "players"
	AttrMetricsNames = "metrics_names"
	AttrActions      = "actions"
	AttrStates       = "states"
	AttrAccRewards   = "acc_rewards"
	AttrRunning      = "running"
	AttrMetrics      = "metrics"
	AttrOptions      = "options"
)

// Message types sent to the game engine plugin.
const (
	TypeConnect = "connect"
	TypeStart   = "start"
	TypeStop    = "stop"
	TypeAction  = "action"
)

// Message types received from the game engine plugin. TypeDisconnected is
// also synthesized locally on transport loss.
const (
	TypeManifest     = "manifest"
	TypeState        = "state"
	TypeStopped      = "stopped"
	TypeDisconnected = "disconnected"
)

// Message is one decoded protocol message. Messages are transient and never
// persisted.
type Message map[string]any

func (m Message) Type() string {
	t, _ := m[AttrType].(string)
	return t
}

func (m Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

func NewConnect() Message {
	return Message{AttrType: TypeConnect}
}

func NewStart(players int, options map[string]any) Message {
	return Message{
		AttrType:    TypeStart,
		AttrPlayers: players,
		AttrOptions: options,
	}
}

func NewStop() Message {
	return Message{AttrType: TypeStop}
}

func NewAction(actions []any) Message {
	return Message{
		AttrType:    TypeAction,
		AttrActions: actions,
	}
}

func NewDisconnected() Message {
	return Message{AttrType: TypeDisconnected}
}
