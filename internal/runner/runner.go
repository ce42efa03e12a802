// Package runner drives play and training sessions: it owns the episode
// loop connecting a game environment to a distributor.
package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ezcoach/ezcoach-go/internal/distributor"
	"github.com/ezcoach/ezcoach-go/internal/metrics"
	"github.com/ezcoach/ezcoach-go/internal/remote"
	"github.com/ezcoach/ezcoach-go/internal/transport"
)

// Environment is the slice of the remote session the runner drives.
type Environment interface {
	Connect() error
	Reset(players int, options map[string]any) error
	Act(actions []any) error
	Stop() error
	Disconnect()
	ObtainStates() *remote.StatesInfo
	Manifest() *remote.Manifest
}

// Mode selects whether agents learn from rewards or only act.
type Mode int

const (
	ModePlaying Mode = iota
	ModeTraining
)

func (m Mode) String() string {
	if m == ModeTraining {
		return "training"
	}
	return "playing"
}

// Runner executes episodes against one environment with one distributor.
type Runner struct {
	dist distributor.Distributor
	env  Environment
	log  zerolog.Logger
	id   string
}

func New(dist distributor.Distributor, env Environment, logger zerolog.Logger) *Runner {
	id := uuid.NewString()
	return &Runner{
		dist: dist,
		env:  env,
		log:  logger.With().Str("run", id).Logger(),
		id:   id,
	}
}

func (r *Runner) ID() string { return r.id }

// Play runs the given number of episodes without learning. players == 0
// selects the distributor's default count.
func (r *Runner) Play(ctx context.Context, episodes, players int, options map[string]any) error {
	return r.report(r.run(ctx, ModePlaying, episodes, players, options))
}

// Train runs episodes with reward delivery until the learner declines the
// next episode or the context is canceled.
func (r *Runner) Train(ctx context.Context, players int, options map[string]any) error {
	if !r.dist.TrainingSupported() {
		return distributor.ErrTrainingUnsupported
	}
	return r.report(r.run(ctx, ModeTraining, 0, players, options))
}

func (r *Runner) run(ctx context.Context, mode Mode, episodes, players int, options map[string]any) error {
	if err := r.env.Connect(); err != nil {
		return err
	}
	r.dist.InitializePlayers(r.env.Manifest())

	players, err := r.dist.SelectPlayersNum(players)
	if err != nil {
		return err
	}
	if !r.env.Manifest().SupportsPlayers(players) {
		return &remote.ValidationError{Reason: fmt.Sprintf(
			"game %q does not support %d players (supported: %v)",
			r.env.Manifest().Name(), players, r.env.Manifest().PossiblePlayers())}
	}

	r.log.Info().
		Stringer("mode", mode).
		Str("game", r.env.Manifest().Name()).
		Int("players", players).
		Msg("session starting")

	for episode := 1; ; episode++ {
		if mode == ModePlaying && episode > episodes {
			break
		}
		if mode == ModeTraining && !r.dist.DoStartEpisode(episode) {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.runEpisode(ctx, mode, episode, players, options); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runEpisode(ctx context.Context, mode Mode, episode, players int, options map[string]any) error {
	if err := r.env.Reset(players, options); err != nil {
		return err
	}
	r.dist.InitializeEpisode(episode, mode == ModeTraining)

	for r.dist.IsEpisodeRunning() {
		if err := ctx.Err(); err != nil {
			return err
		}
		states := r.env.ObtainStates()

		var actions []any
		var err error
		if mode == ModeTraining {
			actions, err = r.dist.LearnFromStates(states)
		} else {
			actions, err = r.dist.ReactToStates(states)
		}
		if err != nil {
			return err
		}
		if actions == nil {
			break
		}
		if err := r.env.Act(actions); err != nil {
			return err
		}
	}
	r.log.Debug().Int("episode", episode).Msg("episode done")
	return nil
}

// report translates expected session boundaries into log lines instead of
// failures: an interrupt stops the episode cleanly, and losing the game
// process is an operational condition, not a bug.
func (r *Runner) report(err error) error {
	switch {
	case err == nil:
		r.log.Info().Msg("session finished")
		return nil
	case errors.Is(err, context.Canceled):
		r.log.Warn().Msg("interrupted, stopping episode")
		if stopErr := r.env.Stop(); stopErr != nil {
			r.log.Debug().Err(stopErr).Msg("stop after interrupt")
		}
		return nil
	case errors.Is(err, transport.ErrDisconnected):
		r.log.Warn().Msg("game disconnected")
		return nil
	case errors.Is(err, transport.ErrConnectionRefused):
		r.log.Error().Msg("cannot connect to the game process; make sure it is running")
		return nil
	default:
		return err
	}
}

// Metrics exposes the distributor's episode results.
func (r *Runner) Metrics() metrics.Source { return r.dist.Metrics() }
