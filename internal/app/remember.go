package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/deskremote/internal/prefs"
	"github.com/five82/deskremote/internal/state"
)

const defaultWatchInterval = 500 * time.Millisecond

// RememberServer watches store until the connection is online, then saves
// serverURL to the preferences file and returns. It gives up when ctx is
// cancelled.
func RememberServer(ctx context.Context, store *state.Store, prefsPath, serverURL string, interval time.Duration, logger zerolog.Logger) {
	if interval <= 0 {
		interval = defaultWatchInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if store.Snapshot().IsOnline() {
			err := prefs.Update(prefsPath, func(p *prefs.Prefs) { p.ServerURL = serverURL })
			if err != nil {
				logger.Warn().Err(err).Msg("save server address")
				return
			}
			logger.Debug().Str("server", serverURL).Msg("server address saved")
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
