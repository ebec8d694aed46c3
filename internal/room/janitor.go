package room

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultSweepInterval     = time.Second
	defaultStatusLogInterval = 30 * time.Second
)

// StartJanitor removes empty rooms every sweepInterval and logs the online
// and room counts every statusInterval until ctx is done.
func (r *Registry) StartJanitor(ctx context.Context, sweepInterval, statusInterval time.Duration) {
	if sweepInterval <= 0 {
		sweepInterval = defaultSweepInterval
	}
	if statusInterval <= 0 {
		statusInterval = defaultStatusLogInterval
	}
	sweepTicker := time.NewTicker(sweepInterval)
	statusTicker := time.NewTicker(statusInterval)
	go func() {
		defer sweepTicker.Stop()
		defer statusTicker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-sweepTicker.C:
				r.Sweep()
			case <-statusTicker.C:
				r.logStatus()
			}
		}
	}()
}

func (r *Registry) logStatus() {
	log.Info().
		Int("online", r.names.Count()).
		Int("rooms", r.Count()).
		Msg("server_status")
}
