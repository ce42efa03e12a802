package distributor

import (
	"github.com/rs/zerolog"

	"github.com/ezcoach/ezcoach-go/internal/agent"
	"github.com/ezcoach/ezcoach-go/internal/metrics"
	"github.com/ezcoach/ezcoach-go/internal/remote"
)

// AgentList drives a multiplayer game with one agent per player, assigned by
// index. Players can finish at different ticks; a finished player keeps
// receiving nil actions until the whole episode ends, and episode results
// flush once, when the last player finishes.
type AgentList struct {
	base

	agents   []agent.Player
	learners []agent.Learner

	rss []runningState
	rec *metrics.MultiRecorder
}

func NewAgentList(agents []agent.Player, opts Options, logger zerolog.Logger) *AgentList {
	learners := make([]agent.Learner, len(agents))
	for i, ag := range agents {
		learners[i], _ = ag.(agent.Learner)
	}
	return &AgentList{
		base:     newBase(opts, logger.With().Str("distributor", "agent_list").Logger()),
		agents:   agents,
		learners: learners,
		rss:      make([]runningState, len(agents)),
	}
}

// TrainingSupported requires every agent to be a Learner.
func (d *AgentList) TrainingSupported() bool {
	for _, l := range d.learners {
		if l == nil {
			return false
		}
	}
	return len(d.learners) > 0
}

func (d *AgentList) InitializePlayers(manifest *remote.Manifest) {
	for _, ag := range d.agents {
		ag.Initialize(manifest)
	}
	d.rec = metrics.NewMultiRecorder(len(d.agents), manifest.MetricsNames())
}

func (d *AgentList) SelectPlayersNum(requested int) (int, error) {
	if requested == 0 {
		return len(d.agents), nil
	}
	if requested != len(d.agents) {
		return 0, &remote.ValidationError{Reason: "player count must match the number of agents"}
	}
	return requested, nil
}

func (d *AgentList) InitializeEpisode(episode int, training bool) {
	for i := range d.rss {
		d.rss[i].start()
	}
	if training {
		for _, l := range d.learners {
			l.EpisodeStarted(episode)
		}
	}
}

// DoStartEpisode keeps training while any learner still agrees to continue.
func (d *AgentList) DoStartEpisode(episode int) bool {
	for _, l := range d.learners {
		if l != nil && l.DoStartEpisode(episode) {
			return true
		}
	}
	return false
}

func (d *AgentList) IsEpisodeRunning() bool {
	for i := range d.rss {
		if d.rss[i].running {
			return true
		}
	}
	return false
}

func (d *AgentList) ReactToStates(states *remote.StatesInfo) ([]any, error) {
	return d.route(false, states)
}

func (d *AgentList) LearnFromStates(states *remote.StatesInfo) ([]any, error) {
	if !d.TrainingSupported() {
		return nil, ErrTrainingUnsupported
	}
	return d.route(true, states)
}

func (d *AgentList) route(training bool, states *remote.StatesInfo) ([]any, error) {
	actions := make([]any, len(d.agents))
	for i := range d.agents {
		actions[i] = d.reactToState(training, d.agents[i], states.At(i), &d.rss[i])
	}
	if d.IsEpisodeRunning() {
		return actions, nil
	}
	return nil, d.finishEpisode(training, states)
}

func (d *AgentList) finishEpisode(training bool, states *remote.StatesInfo) error {
	rows := make([][]float64, len(d.agents))
	for i := range d.agents {
		rs := &d.rss[i]
		if training {
			d.learners[i].EpisodeEnded(rs.state, rs.accumulated)
		}
		rows[i] = episodeRow(rs)
		metrics.RecordEpisode(i, rs.episodeTime, rs.numActions, rs.accumulated)
	}
	if err := d.rec.Add(rows, states.GameMetrics); err != nil {
		return err
	}
	d.log.Debug().Int("players", len(d.agents)).Msg("episode finished")
	return nil
}

func (d *AgentList) Metrics() metrics.Source { return d.rec }
