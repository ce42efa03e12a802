package distributor

import (
	"github.com/rs/zerolog"

	"github.com/ezcoach/ezcoach-go/internal/agent"
	"github.com/ezcoach/ezcoach-go/internal/metrics"
	"github.com/ezcoach/ezcoach-go/internal/remote"
)

// Single drives a one-player game with a single agent. Training is available
// when the agent is a Learner.
type Single struct {
	base

	player  agent.Player
	learner agent.Learner

	rs  runningState
	rec *metrics.Recorder
}

func NewSingle(player agent.Player, opts Options, logger zerolog.Logger) *Single {
	learner, _ := player.(agent.Learner)
	return &Single{
		base:    newBase(opts, logger.With().Str("distributor", "single").Logger()),
		player:  player,
		learner: learner,
	}
}

func (d *Single) TrainingSupported() bool { return d.learner != nil }

func (d *Single) InitializePlayers(manifest *remote.Manifest) {
	d.player.Initialize(manifest)
	d.rec = metrics.NewRecorder(manifest.MetricsNames())
}

func (d *Single) SelectPlayersNum(requested int) (int, error) {
	if requested == 0 {
		return 1, nil
	}
	if requested != 1 {
		return 0, &remote.ValidationError{Reason: "a single-agent distributor drives exactly one player"}
	}
	return requested, nil
}

func (d *Single) InitializeEpisode(episode int, training bool) {
	d.rs.start()
	if training && d.learner != nil {
		d.learner.EpisodeStarted(episode)
	}
}

func (d *Single) DoStartEpisode(episode int) bool {
	if d.learner == nil {
		return false
	}
	return d.learner.DoStartEpisode(episode)
}

func (d *Single) IsEpisodeRunning() bool { return d.rs.running }

func (d *Single) ReactToStates(states *remote.StatesInfo) ([]any, error) {
	return d.route(false, states)
}

func (d *Single) LearnFromStates(states *remote.StatesInfo) ([]any, error) {
	if d.learner == nil {
		return nil, ErrTrainingUnsupported
	}
	return d.route(true, states)
}

func (d *Single) route(training bool, states *remote.StatesInfo) ([]any, error) {
	si := states.At(0)
	action := d.reactToState(training, d.player, si, &d.rs)
	if d.rs.running {
		return []any{action}, nil
	}
	return nil, d.finishEpisode(training, states)
}

func (d *Single) finishEpisode(training bool, states *remote.StatesInfo) error {
	if training && d.learner != nil {
		d.learner.EpisodeEnded(d.rs.state, d.rs.accumulated)
	}
	row := append(episodeRow(&d.rs), states.GameMetrics...)
	if err := d.rec.Add(row); err != nil {
		return err
	}
	metrics.RecordEpisode(0, d.rs.episodeTime, d.rs.numActions, d.rs.accumulated)
	d.log.Debug().
		Dur("episode_time", d.rs.episodeTime).
		Int("actions", d.rs.numActions).
		Float64("reward", d.rs.accumulated).
		Msg("episode finished")
	return nil
}

func (d *Single) Metrics() metrics.Source { return d.rec }
