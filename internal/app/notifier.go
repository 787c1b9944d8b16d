package app

import (
	"github.com/rs/zerolog"

	"github.com/consultation-platform/intake-client/internal/api/metrics"
)

// LogNotifier reports operation outcomes as structured log lines, the
// terminal client's toast analogue.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Success(title, detail string) {
	metrics.NotificationsTotal.WithLabelValues("success").Inc()
	n.log.Info().Str("detail", detail).Msg(title)
}

func (n *LogNotifier) Failure(title, detail string) {
	metrics.NotificationsTotal.WithLabelValues("failure").Inc()
	n.log.Warn().Str("detail", detail).Msg(title)
}
