package protocol

import "errors"

var (
	ErrParse              = errors.New("protocol: malformed message")
	ErrUnknownMessageType = errors.New("protocol: unknown message type")
)
