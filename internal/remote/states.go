package remote

// StateInfo is one agent's view of the current tick.
type StateInfo struct {
	State             []float64
	AccumulatedReward float64
	Running           bool
}

// StatesInfo holds the per-agent tick data reported by the game, indexed by
// player. GameMetrics is populated only on the final tick of an episode.
type StatesInfo struct {
	States             [][]float64
	AccumulatedRewards []float64
	Running            []bool
	GameMetrics        []float64
}

func (s *StatesInfo) Players() int { return len(s.States) }

func (s *StatesInfo) At(i int) StateInfo {
	return StateInfo{
		State:             s.States[i],
		AccumulatedReward: s.AccumulatedRewards[i],
		Running:           s.Running[i],
	}
}

// AnyRunning reports whether at least one agent is still in play.
func (s *StatesInfo) AnyRunning() bool {
	for _, r := range s.Running {
		if r {
			return true
		}
	}
	return false
}
