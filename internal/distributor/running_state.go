package distributor

import "time"

// runningState tracks one player's progress through the current episode: the
// previous tick (needed to compute reward deltas), accumulated reward, and
// episode timing.
type runningState struct {
	running     bool
	hasPrev     bool
	state       []float64
	action      any
	accumulated float64
	numActions  int
	startTime   time.Time
	episodeTime time.Duration
}

func (rs *runningState) start() {
	*rs = runningState{running: true, startTime: time.Now()}
}

// update records the tick the player just reacted to.
func (rs *runningState) update(state []float64, action any, accumulated float64) {
	rs.hasPrev = true
	rs.state = state
	rs.action = action
	rs.accumulated = accumulated
	if action != nil {
		rs.numActions++
	}
}

func (rs *runningState) ended() {
	if !rs.running {
		return
	}
	rs.running = false
	rs.episodeTime = time.Since(rs.startTime)
}
