package distributor

import (
	"github.com/rs/zerolog"

	"github.com/ezcoach/ezcoach-go/internal/adapter"
	"github.com/ezcoach/ezcoach-go/internal/agent"
	"github.com/ezcoach/ezcoach-go/internal/remote"
)

// base carries the adapter chains and the per-tick routing shared by every
// distribution strategy.
type base struct {
	opts Options
	log  zerolog.Logger
}

func newBase(opts Options, logger zerolog.Logger) base {
	return base{opts: opts, log: logger}
}

// reactToState routes one player's tick: deliver the reward delta to a
// learner, ask the agent for the next action while the player is still in
// play, and track episode end. Returns nil when the player takes no action
// this tick.
func (b *base) reactToState(training bool, ag agent.Player, si remote.StateInfo, rs *runningState) any {
	if !rs.running {
		return nil
	}

	state := adapter.ApplyState(si.State, b.opts.StateAdapters)

	if training && rs.hasPrev {
		if learner, ok := ag.(agent.Learner); ok {
			delta := si.AccumulatedReward - rs.accumulated
			delta = adapter.ApplyReward(delta, b.opts.RewardAdapters)
			learner.ReceiveReward(rs.state, rs.action, delta, si.AccumulatedReward, state)
		}
	}

	var action any
	if si.Running {
		action = ag.Act(state)
	}
	rs.update(state, action, si.AccumulatedReward)
	if !si.Running {
		rs.ended()
	}

	if action == nil {
		return nil
	}
	return adapter.ApplyAction(action, b.opts.ActionAdapters)
}

// episodeRow builds the built-in metrics row of one player.
func episodeRow(rs *runningState) []float64 {
	return []float64{
		rs.episodeTime.Seconds(),
		float64(rs.numActions),
		rs.accumulated,
	}
}
