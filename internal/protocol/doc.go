// Package protocol owns the wire contract shared with the game engine
// plugin.
//
// Ownership boundary:
// - message attribute and type-tag constants
// - outgoing message builders
// - reassembly of discrete JSON messages from a raw byte stream
package protocol
