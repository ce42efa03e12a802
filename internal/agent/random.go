package agent

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/ezcoach/ezcoach-go/internal/protocol/schema"
	"github.com/ezcoach/ezcoach-go/internal/remote"
)

// RandomPlayer samples a uniformly random action from the game's action
// schema every tick. Useful as a smoke-test policy and as a baseline.
type RandomPlayer struct {
	id      string
	actions schema.Value
	rng     *rand.Rand
}

// NewRandomPlayer builds a random policy from the given seed. Equal seeds
// replay the same action sequence.
func NewRandomPlayer(seed int64) *RandomPlayer {
	return &RandomPlayer{
		id:  uuid.NewString(),
		rng: rand.New(rand.NewSource(seed)),
	}
}

func (p *RandomPlayer) ID() string { return p.id }

func (p *RandomPlayer) Initialize(manifest *remote.Manifest) {
	p.actions = manifest.Actions()
}

func (p *RandomPlayer) Act(state []float64) any {
	return schema.RandomAction(p.actions, p.rng)
}
