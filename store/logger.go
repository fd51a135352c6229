package store

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// badgerLogger routes badger's internal logging into zerolog. Badger info
// output is chatty so it is demoted to debug.
type badgerLogger struct {
	logger zerolog.Logger
}

func newBadgerLogger(path string) *badgerLogger {
	return &badgerLogger{logger: log.With().Str("component", "badger").Str("path", path).Logger()}
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error().Msgf(strings.TrimSpace(format), args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn().Msgf(strings.TrimSpace(format), args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug().Msgf(strings.TrimSpace(format), args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug().Msgf(strings.TrimSpace(format), args...)
}
