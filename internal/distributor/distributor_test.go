package distributor

import (
	"testing"

	"github.com/ezcoach/ezcoach-go/internal/protocol"
	"github.com/ezcoach/ezcoach-go/internal/remote"
)

func testManifest(t *testing.T) *remote.Manifest {
	t.Helper()
	m, err := remote.ParseManifest(protocol.Message{
		protocol.AttrType:         protocol.TypeManifest,
		protocol.AttrName:         "pong",
		protocol.AttrPlayers:      []any{1.0, 2.0, 3.0},
		protocol.AttrMetricsNames: []any{"hits"},
		protocol.AttrActions: map[string]any{
			"type":        "IntValue",
			"range":       map[string]any{"type": "Range", "min": 0.0, "max": 4.0},
			"description": "paddle",
		},
		protocol.AttrStates: map[string]any{
			"type": "FloatList",
			"ranges": []any{
				map[string]any{"type": "Range", "min": 0.0, "max": 1.0},
				map[string]any{"type": "Range", "min": 0.0, "max": 1.0},
			},
			"description": "ball",
		},
	})
	if err != nil {
		t.Fatalf("build manifest: %v", err)
	}
	return m
}

func tick(rewards []float64, running []bool, gameMetrics ...float64) *remote.StatesInfo {
	states := make([][]float64, len(rewards))
	for i, r := range rewards {
		states[i] = []float64{r / 10, 0.5}
	}
	return &remote.StatesInfo{
		States:             states,
		AccumulatedRewards: rewards,
		Running:            running,
		GameMetrics:        gameMetrics,
	}
}

// fakeLearner records every lifecycle call.
type fakeLearner struct {
	started  []int
	rewards  []float64
	acts     int
	ended    int
	endState []float64
	endAcc   float64
	maxEp    int
}

func (f *fakeLearner) Initialize(*remote.Manifest) {}

func (f *fakeLearner) Act(state []float64) any {
	f.acts++
	return 1.0
}

func (f *fakeLearner) DoStartEpisode(episode int) bool {
	return f.maxEp == 0 || episode <= f.maxEp
}

func (f *fakeLearner) EpisodeStarted(episode int) {
	f.started = append(f.started, episode)
}

func (f *fakeLearner) ReceiveReward(prevState []float64, prevAction any, reward, accumulated float64, nextState []float64) {
	f.rewards = append(f.rewards, reward)
}

func (f *fakeLearner) EpisodeEnded(terminalState []float64, accumulated float64) {
	f.ended++
	f.endState = terminalState
	f.endAcc = accumulated
}

// actOnly is a pure policy without the training lifecycle.
type actOnly struct{ acts int }

func (a *actOnly) Initialize(*remote.Manifest) {}

func (a *actOnly) Act(state []float64) any {
	a.acts++
	return 0.0
}
