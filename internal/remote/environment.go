package remote

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ezcoach/ezcoach-go/internal/comms"
	"github.com/ezcoach/ezcoach-go/internal/protocol"
	"github.com/ezcoach/ezcoach-go/internal/transport"
)

// ValidationError reports a request the connected game cannot satisfy, such
// as an unsupported player count or an action outside the declared schema.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// Environment is the client-side state machine of one game session. It is
// not safe for concurrent use; the runner drives it from a single goroutine.
type Environment struct {
	comm *comms.Communicator
	log  zerolog.Logger

	manifest    *Manifest
	connected   bool
	running     bool
	states      *StatesInfo
	statesReady bool
}

func New(comm *comms.Communicator, logger zerolog.Logger) *Environment {
	return &Environment{
		comm: comm,
		log:  logger.With().Str("component", "environment").Logger(),
	}
}

// NewTCP builds an environment over a TCP session to the game engine plugin.
func NewTCP(addr string, bufferSize int, logger zerolog.Logger) *Environment {
	return New(comms.NewTCP(addr, bufferSize, logger), logger)
}

// Connect establishes the session and blocks until the game announces its
// manifest. A no-op when already connected.
func (e *Environment) Connect() error {
	e.comm.Start()
	if e.connected {
		return nil
	}
	if err := e.comm.Connect(); err != nil {
		return err
	}
	e.connected = true
	for e.manifest == nil {
		if err := e.update(); err != nil {
			return err
		}
	}
	e.log.Info().Str("game", e.manifest.Name()).Msg("connected")
	return nil
}

// Reset starts a fresh episode and blocks until the first tick arrives.
// players == 0 selects the game's first supported count.
func (e *Environment) Reset(players int, options map[string]any) error {
	if e.manifest == nil {
		return fmt.Errorf("%w: reset before connect", transport.ErrNotConnected)
	}
	if players == 0 {
		players = e.manifest.PossiblePlayers()[0]
	}
	if !e.manifest.SupportsPlayers(players) {
		return &ValidationError{Reason: fmt.Sprintf(
			"game %q does not support %d players (supported: %v)",
			e.manifest.Name(), players, e.manifest.PossiblePlayers())}
	}
	e.statesReady = false
	if err := e.comm.SendStart(players, options); err != nil {
		return e.fail(err)
	}
	for !e.statesReady {
		if err := e.update(); err != nil {
			return err
		}
	}
	e.running = true
	return nil
}

// Act submits one action per agent and blocks until the next tick. A nil
// action is permitted for an agent that has finished.
func (e *Environment) Act(actions []any) error {
	if e.manifest == nil {
		return fmt.Errorf("%w: act before connect", transport.ErrNotConnected)
	}
	if err := e.checkActions(actions); err != nil {
		return err
	}
	e.statesReady = false
	if err := e.comm.SendActions(actions); err != nil {
		return e.fail(err)
	}
	for !e.statesReady {
		if err := e.update(); err != nil {
			return err
		}
	}
	return nil
}

func (e *Environment) checkActions(actions []any) error {
	def := e.manifest.Actions()
	for i, action := range actions {
		if action == nil {
			continue
		}
		if !def.Contains(action) {
			return &ValidationError{Reason: fmt.Sprintf(
				"action %v for player %d does not match the game's schema (%s)",
				action, i, def.Description())}
		}
	}
	return nil
}

// Stop ends the running episode and blocks until the game confirms.
func (e *Environment) Stop() error {
	if !e.running {
		return nil
	}
	if err := e.comm.SendStop(); err != nil {
		return e.fail(err)
	}
	for e.running {
		if err := e.update(); err != nil {
			return err
		}
	}
	return nil
}

// Disconnect tears down the session.
func (e *Environment) Disconnect() {
	e.connected = false
	e.running = false
	e.comm.Disconnect()
}

// ObtainStates returns the latest tick and marks it consumed.
func (e *Environment) ObtainStates() *StatesInfo {
	e.statesReady = false
	return e.states
}

func (e *Environment) StatesReady() bool   { return e.statesReady }
func (e *Environment) Connected() bool     { return e.connected }
func (e *Environment) Running() bool       { return e.running }
func (e *Environment) Manifest() *Manifest { return e.manifest }

// fail folds a session-level send failure into the state machine.
func (e *Environment) fail(err error) error {
	if errors.Is(err, transport.ErrDisconnected) {
		e.connected = false
		e.running = false
	}
	return err
}

// update drains one batch of incoming messages and dispatches each.
func (e *Environment) update() error {
	msgs, err := e.comm.GetMessages()
	if err != nil {
		return e.fail(err)
	}
	states := 0
	lastState := -1
	for i, msg := range msgs {
		if msg.Type() == protocol.TypeState {
			states++
			lastState = i
		}
	}
	if states > 1 {
		e.log.Warn().Int("count", states).Msg("multiple state messages in one batch, keeping the last")
	}
	for i, msg := range msgs {
		// superseded ticks are dropped unparsed
		if msg.Type() == protocol.TypeState && i != lastState {
			continue
		}
		if err := e.dispatch(msg); err != nil {
			return err
		}
	}
	return nil
}

func (e *Environment) dispatch(msg protocol.Message) error {
	switch msg.Type() {
	case protocol.TypeManifest:
		return e.handleManifest(msg)
	case protocol.TypeState:
		return e.handleStates(msg)
	case protocol.TypeStopped:
		e.running = false
		return nil
	case protocol.TypeDisconnected:
		e.connected = false
		e.running = false
		return transport.ErrDisconnected
	default:
		return fmt.Errorf("%w: %q", protocol.ErrUnknownMessageType, msg.Type())
	}
}

func (e *Environment) handleManifest(msg protocol.Message) error {
	manifest, err := ParseManifest(msg)
	if err != nil {
		return err
	}
	e.manifest = manifest
	return nil
}

func (e *Environment) handleStates(msg protocol.Message) error {
	raw, err := json.Marshal(msg[protocol.AttrStates])
	if err != nil {
		return fmt.Errorf("state: re-encode states: %w", err)
	}
	states, err := e.manifest.States().Parse(raw)
	if err != nil {
		return fmt.Errorf("state: %w", err)
	}

	rewards, err := toFloatSlice(msg[protocol.AttrAccRewards])
	if err != nil {
		return fmt.Errorf("state: acc_rewards: %w", err)
	}
	running, err := toBoolSlice(msg[protocol.AttrRunning])
	if err != nil {
		return fmt.Errorf("state: running: %w", err)
	}
	if len(rewards) != len(states) || len(running) != len(states) {
		return fmt.Errorf("state: mismatched agent counts: %d states, %d rewards, %d running flags",
			len(states), len(rewards), len(running))
	}

	var gameMetrics []float64
	if v, ok := msg[protocol.AttrMetrics]; ok && v != nil {
		gameMetrics, err = toFloatSlice(v)
		if err != nil {
			return fmt.Errorf("state: metrics: %w", err)
		}
	}

	e.states = &StatesInfo{
		States:             states,
		AccumulatedRewards: rewards,
		Running:            running,
		GameMetrics:        gameMetrics,
	}
	e.statesReady = true
	if !e.states.AnyRunning() {
		e.running = false
	}
	return nil
}

func toFloatSlice(v any) ([]float64, error) {
	raw, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("got %T, want array", v)
	}
	out := make([]float64, len(raw))
	for i, e := range raw {
		f, ok := e.(float64)
		if !ok {
			return nil, fmt.Errorf("element %d is %T, want number", i, e)
		}
		out[i] = f
	}
	return out, nil
}

func toBoolSlice(v any) ([]bool, error) {
	raw, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("got %T, want array", v)
	}
	out := make([]bool, len(raw))
	for i, e := range raw {
		b, ok := e.(bool)
		if !ok {
			return nil, fmt.Errorf("element %d is %T, want bool", i, e)
		}
		out[i] = b
	}
	return out, nil
}
