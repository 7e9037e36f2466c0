package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	config "github.com/thirdweb-dev/walletbridge/configs"
	"github.com/thirdweb-dev/walletbridge/internal/common"
	"github.com/thirdweb-dev/walletbridge/internal/handlers"
	"github.com/thirdweb-dev/walletbridge/internal/history"
	customLogger "github.com/thirdweb-dev/walletbridge/internal/log"
	"github.com/thirdweb-dev/walletbridge/internal/metrics"
	"github.com/thirdweb-dev/walletbridge/internal/provider"
	"github.com/thirdweb-dev/walletbridge/internal/storage"
	"github.com/thirdweb-dev/walletbridge/internal/subscription"
	"github.com/thirdweb-dev/walletbridge/internal/worker"
)

const shutdownTimeout = 10 * time.Second

// Orchestrator wires the provider, the subscription manager, history
// trackers and the API server together for the configured addresses.
type Orchestrator struct {
	pc        *provider.Context
	storage   storage.ITransactionStorage
	addresses []common.Address
	cfg       config.Config
	logger    zerolog.Logger

	manager  *subscription.Manager
	trackers []*history.Tracker
	watchers []*subscription.Subscription
	cancel   context.CancelFunc
}

func NewOrchestrator(pc *provider.Context, store storage.ITransactionStorage) (*Orchestrator, error) {
	cfg := config.Cfg
	if !cfg.Watch.State && !cfg.Watch.Transactions && len(cfg.Watch.Addresses) > 0 {
		return nil, fmt.Errorf("addresses are watched but neither state nor transactions are enabled")
	}

	addresses := common.NewSet[common.Address]()
	for _, raw := range cfg.Watch.Addresses {
		address := common.NewAddress(raw)
		if address.IsZero() {
			return nil, fmt.Errorf("empty address in watch list")
		}
		addresses.Add(address)
	}

	return &Orchestrator{
		pc:        pc,
		storage:   store,
		addresses: addresses.List(),
		cfg:       cfg,
		logger:    customLogger.NewLogger("orchestrator"),
	}, nil
}

func (o *Orchestrator) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			o.logger.Info().Msgf("Received signal %v, initiating graceful shutdown", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := o.Run(ctx); err != nil {
		o.logger.Error().Err(err).Msg("Orchestrator stopped with error")
	}
}

// Run blocks until ctx is cancelled, then tears everything down.
func (o *Orchestrator) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	o.cancel = cancel

	o.manager = subscription.NewManager(ctx, o.pc)
	handlers.Configure(o.storage, o.manager.Api())

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		NewProviderTracker(o.manager.Api(), o.cfg.Provider.StatePollInterval).Start(ctx)
	}()

	server := o.newServer()
	wg.Add(1)
	go func() {
		defer wg.Done()
		o.logger.Info().Str("addr", server.Addr).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			o.logger.Error().Err(err).Msg("API server failed")
			o.cancel()
		}
	}()

	err := o.watch(ctx)
	if err != nil {
		o.logger.Error().Err(err).Msg("Failed to watch addresses")
		o.cancel()
	}

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		o.logger.Error().Err(shutdownErr).Msg("API server shutdown failed")
	}
	o.unwatch(shutdownCtx)
	o.manager.Close()
	wg.Wait()

	if closeErr := o.storage.Close(); closeErr != nil {
		o.logger.Error().Err(closeErr).Msg("Failed to close storage")
	}
	o.pc.Close()
	o.logger.Info().Msg("Orchestrator shutdown complete")
	return err
}

func (o *Orchestrator) newServer() *http.Server {
	r := gin.New()
	handlers.Handler(r, o.cfg.API)

	port := o.cfg.API.Port
	if port == 0 {
		port = 3000
	}
	return &http.Server{
		Addr:              o.cfg.API.Host + ":" + strconv.Itoa(port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (o *Orchestrator) watch(ctx context.Context) error {
	err := o.subscribe(ctx, provider.EventDisconnected, func(event provider.Event) {
		metrics.ProviderDisconnects.Inc()
		o.logger.Warn().Interface("event", event).Msg("Provider disconnected")
	})
	if err != nil {
		return err
	}

	for _, address := range o.addresses {
		if o.cfg.Watch.State {
			err := o.subscribe(ctx, provider.EventContractStateChanged, recordState, provider.SubscriptionParams{Address: address})
			if err != nil {
				return fmt.Errorf("failed to watch state of %s: %w", address, err)
			}
		}

		if o.cfg.Watch.Transactions {
			tracker := history.NewTracker(o.manager, o.storage, address)
			if err := tracker.Start(ctx); err != nil {
				return err
			}
			o.trackers = append(o.trackers, tracker)
		}
	}
	o.preload(ctx)
	o.logger.Info().Int("addresses", len(o.addresses)).Msg("Watching addresses")
	return nil
}

// subscribe attaches handler before subscribing so no event is missed.
func (o *Orchestrator) subscribe(ctx context.Context, event provider.EventName, handler func(provider.Event), params ...provider.SubscriptionParams) error {
	sub, err := o.manager.NewSubscription(event, params...)
	if err != nil {
		return err
	}
	sub.OnData(handler)
	if err := sub.Subscribe(ctx); err != nil {
		return err
	}
	o.watchers = append(o.watchers, sub)
	return nil
}

func (o *Orchestrator) preload(ctx context.Context) {
	if o.cfg.Watch.PreloadLimit <= 0 || len(o.trackers) == 0 {
		return
	}
	targets := make([]worker.Preloader, len(o.trackers))
	for i, tracker := range o.trackers {
		targets[i] = tracker
	}
	for _, result := range worker.NewWorker(o.cfg.Watch.PreloadLimit).Run(ctx, targets) {
		if result.Error != nil {
			o.logger.Warn().Err(result.Error).Str("address", result.Address.String()).Msg("Failed to preload transactions")
			continue
		}
		o.logger.Debug().Str("address", result.Address.String()).Int("count", result.Count).Msg("Preloaded transactions")
	}
}

func (o *Orchestrator) unwatch(ctx context.Context) {
	for _, tracker := range o.trackers {
		if err := tracker.Stop(ctx); err != nil {
			o.logger.Warn().Err(err).Str("address", tracker.Address().String()).Msg("Failed to stop tracker")
		}
	}
	for _, sub := range o.watchers {
		if err := sub.Unsubscribe(ctx); err != nil {
			o.logger.Warn().Err(err).Str("event", string(sub.Event())).Msg("Failed to unsubscribe")
		}
	}
	o.trackers = nil
	o.watchers = nil
}

func recordState(event provider.Event) {
	changed, ok := event.(provider.ContractStateChangedEvent)
	if !ok {
		return
	}
	address := changed.Address.String()
	metrics.ContractStateChanges.WithLabelValues(address).Inc()
	if balance, err := strconv.ParseFloat(changed.State.Balance, 64); err == nil {
		metrics.ContractBalance.WithLabelValues(address).Set(balance)
	}
}
