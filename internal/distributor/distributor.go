package distributor

import (
	"errors"

	"github.com/ezcoach/ezcoach-go/internal/adapter"
	"github.com/ezcoach/ezcoach-go/internal/metrics"
	"github.com/ezcoach/ezcoach-go/internal/remote"
)

var ErrTrainingUnsupported = errors.New("distributor: agents do not support training")

// Distributor routes states to agents and collects their actions. The runner
// calls ReactToStates when playing and LearnFromStates when training; both
// return one action per player, nil for players that have finished, and a
// nil slice once the episode is over.
type Distributor interface {
	TrainingSupported() bool
	InitializePlayers(manifest *remote.Manifest)

	// SelectPlayersNum resolves the requested player count; 0 picks the
	// strategy's default.
	SelectPlayersNum(requested int) (int, error)

	InitializeEpisode(episode int, training bool)
	DoStartEpisode(episode int) bool
	IsEpisodeRunning() bool

	ReactToStates(states *remote.StatesInfo) ([]any, error)
	LearnFromStates(states *remote.StatesInfo) ([]any, error)

	Metrics() metrics.Source
}

// Options carries the adapter chains applied between the game and the
// agents.
type Options struct {
	StateAdapters  []adapter.State
	ActionAdapters []adapter.Action
	RewardAdapters []adapter.Reward
}
