// Package comms owns the communication session with a game engine plugin.
//
// Ownership boundary:
// - the background receive worker and its unbounded chunk queue
// - connect/disconnect bookkeeping over a transport
// - message framing on the consumer side via protocol.Framer
package comms
