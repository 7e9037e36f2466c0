package orchestrator

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/thirdweb-dev/walletbridge/internal/metrics"
	"github.com/thirdweb-dev/walletbridge/internal/provider"
)

const DEFAULT_PROVIDER_TRACKER_POLL_INTERVAL = 60000 // 1 minute

// ProviderTracker periodically reads the provider state and exports it as metrics.
type ProviderTracker struct {
	api               *provider.Api
	triggerIntervalMs int
}

func NewProviderTracker(api *provider.Api, intervalMs int) *ProviderTracker {
	if intervalMs <= 0 {
		intervalMs = DEFAULT_PROVIDER_TRACKER_POLL_INTERVAL
	}
	return &ProviderTracker{
		api:               api,
		triggerIntervalMs: intervalMs,
	}
}

// Start polls until ctx is cancelled.
func (pt *ProviderTracker) Start(ctx context.Context) {
	ticker := time.NewTicker(time.Duration(pt.triggerIntervalMs) * time.Millisecond)
	defer ticker.Stop()

	log.Debug().Msgf("Provider tracker running")
	pt.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Provider tracker shutting down")
			return
		case <-ticker.C:
			pt.poll(ctx)
		}
	}
}

func (pt *ProviderTracker) poll(ctx context.Context) {
	state, err := pt.api.GetProviderState(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Error().Err(err).Msg("Error getting provider state")
		}
		return
	}
	metrics.ProviderSubscriptions.Set(float64(len(state.Subscriptions)))
	log.Trace().Str("connection", state.SelectedConnection).Int("subscriptions", len(state.Subscriptions)).Msg("Provider state")
}
