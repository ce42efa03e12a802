package distributor

import (
	"github.com/rs/zerolog"

	"github.com/ezcoach/ezcoach-go/internal/agent"
	"github.com/ezcoach/ezcoach-go/internal/metrics"
	"github.com/ezcoach/ezcoach-go/internal/remote"
)

// Multi drives every player of a multiplayer game with one shared learner.
// Before each per-player call the learner is told which player the call
// concerns via SetActingPlayer.
type Multi struct {
	base

	learner agent.MultiLearner

	players int
	rss     []runningState
	rec     *metrics.MultiRecorder

	metricsNames    []string
	possiblePlayers []int
}

func NewMulti(learner agent.MultiLearner, opts Options, logger zerolog.Logger) *Multi {
	return &Multi{
		base:    newBase(opts, logger.With().Str("distributor", "multi_learner").Logger()),
		learner: learner,
	}
}

func (d *Multi) TrainingSupported() bool { return true }

func (d *Multi) InitializePlayers(manifest *remote.Manifest) {
	d.learner.Initialize(manifest)
	d.metricsNames = manifest.MetricsNames()
	d.possiblePlayers = manifest.PossiblePlayers()
}

// SelectPlayersNum defaults to the largest player count the game supports,
// giving the shared learner the richest episodes.
func (d *Multi) SelectPlayersNum(requested int) (int, error) {
	if requested < 0 {
		return 0, &remote.ValidationError{Reason: "player count must not be negative"}
	}
	if requested == 0 {
		for _, p := range d.possiblePlayers {
			if p > requested {
				requested = p
			}
		}
	}
	d.players = requested
	d.rss = make([]runningState, requested)
	d.rec = metrics.NewMultiRecorder(requested, d.metricsNames)
	return requested, nil
}

func (d *Multi) InitializeEpisode(episode int, training bool) {
	ids := make([]int, d.players)
	for i := range ids {
		ids[i] = i
	}
	d.learner.SetPlayers(ids)
	for i := range d.rss {
		d.rss[i].start()
	}
	if training {
		d.learner.EpisodeStarted(episode)
	}
}

func (d *Multi) DoStartEpisode(episode int) bool {
	return d.learner.DoStartEpisode(episode)
}

func (d *Multi) IsEpisodeRunning() bool {
	for i := range d.rss {
		if d.rss[i].running {
			return true
		}
	}
	return false
}

func (d *Multi) ReactToStates(states *remote.StatesInfo) ([]any, error) {
	return d.route(false, states)
}

func (d *Multi) LearnFromStates(states *remote.StatesInfo) ([]any, error) {
	return d.route(true, states)
}

func (d *Multi) route(training bool, states *remote.StatesInfo) ([]any, error) {
	actions := make([]any, d.players)
	for i := 0; i < d.players; i++ {
		d.learner.SetActingPlayer(i)
		actions[i] = d.reactToState(training, d.learner, states.At(i), &d.rss[i])
	}
	if d.IsEpisodeRunning() {
		return actions, nil
	}
	return nil, d.finishEpisode(training, states)
}

func (d *Multi) finishEpisode(training bool, states *remote.StatesInfo) error {
	rows := make([][]float64, d.players)
	for i := 0; i < d.players; i++ {
		rs := &d.rss[i]
		if training {
			d.learner.SetActingPlayer(i)
			d.learner.EpisodeEnded(rs.state, rs.accumulated)
		}
		rows[i] = episodeRow(rs)
		metrics.RecordEpisode(i, rs.episodeTime, rs.numActions, rs.accumulated)
	}
	if err := d.rec.Add(rows, states.GameMetrics); err != nil {
		return err
	}
	d.log.Debug().Int("players", d.players).Msg("episode finished")
	return nil
}

func (d *Multi) Metrics() metrics.Source { return d.rec }
