// Package agent defines the contracts a decision-maker implements to be
// driven against a game, from pure policies to learners that consume rewards.
package agent

import "github.com/ezcoach/ezcoach-go/internal/remote"

// Player is the minimal contract: see a state, pick an action. Initialize is
// called once with the game's manifest before the first episode.
type Player interface {
	Initialize(manifest *remote.Manifest)
	Act(state []float64) any
}

// Learner extends Player with the training lifecycle. Reward deltas are
// delivered between consecutive ticks, and each episode is bracketed by
// EpisodeStarted and EpisodeEnded.
type Learner interface {
	Player

	// DoStartEpisode lets the learner end training early; returning false
	// stops before the given 1-based episode.
	DoStartEpisode(episode int) bool
	EpisodeStarted(episode int)
	ReceiveReward(prevState []float64, prevAction any, reward, accumulated float64, nextState []float64)
	EpisodeEnded(terminalState []float64, accumulated float64)
}

// MultiLearner is a Learner controlling several players at once. The
// distributor announces which player the next call concerns via
// SetActingPlayer.
type MultiLearner interface {
	Learner

	SetPlayers(players []int)
	SetActingPlayer(player int)
}
