// Package distributor routes per-tick states and rewards between a game and
// the agents playing it.
//
// Ownership boundary:
// - the per-player running state (previous tick, accumulated reward, timing)
// - reward-delta computation between consecutive ticks
// - the three distribution strategies: one agent, one agent per player, and
//   one learner controlling every player
package distributor
