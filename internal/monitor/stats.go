// internal/monitor/stats.go
package monitor

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ddelgado/simtempctl/internal/attr"
)

// WatchStats re-reads the driver's diagnostic text on a fixed interval and
// pushes each refresh to out. Read failures are logged and the next tick
// tries again. Returns when ctx is cancelled.
func WatchStats(ctx context.Context, store attr.Store, interval time.Duration, out chan<- string) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			text, err := store.Get(attr.AttrStats)
			if err != nil {
				log.WithError(err).Warn("stats refresh failed")
				continue
			}

			select {
			case out <- text:
			case <-ctx.Done():
				return
			}
		}
	}
}
