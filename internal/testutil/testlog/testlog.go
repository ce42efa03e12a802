package testlog

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/ezcoach/ezcoach-go/internal/logging"
)

// Start configures test logging and returns a logger components under test
// can be constructed with.
func Start(t *testing.T) zerolog.Logger {
	t.Helper()
	logger := logging.Init("test", logging.ProfileTest)
	logger.Info().Str("test", t.Name()).Msg("start")
	return logger
}
