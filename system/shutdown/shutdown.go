package shutdown

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/icom-clocksync/internal/notifications"
)

// ExitFunc is overridden in tests.
var ExitFunc = os.Exit

func Shutdown() {
	log.Info().Msg("Clock sync finished")
	ExitFunc(0)
}

// ShutdownWithError logs err, pushes a notification when n is set, and
// exits non-zero.
func ShutdownWithError(err error, msg string, n *notifications.Notifier) {
	log.Error().Err(err).Msg(msg)
	if n != nil {
		if nerr := n.Send("Radio clock sync failed", msg+": "+err.Error()); nerr != nil {
			log.Warn().Err(nerr).Msg("Failed to send failure notification")
		}
	}
	ExitFunc(1)
}
