// Package remote owns the client-side model of a running game environment.
//
// Ownership boundary:
// - the manifest a game announces on connect
// - the lifecycle state machine (connect, reset, act, stop, disconnect)
// - per-tick state bookkeeping for every agent
package remote
