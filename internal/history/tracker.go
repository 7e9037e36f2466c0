package history

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/thirdweb-dev/walletbridge/internal/common"
	"github.com/thirdweb-dev/walletbridge/internal/metrics"
	"github.com/thirdweb-dev/walletbridge/internal/provider"
	"github.com/thirdweb-dev/walletbridge/internal/storage"
	"github.com/thirdweb-dev/walletbridge/internal/subscription"
)

// Tracker keeps the transaction history of one address up to date by merging
// every transactionsFound batch into the stored history.
type Tracker struct {
	manager *subscription.Manager
	storage storage.ITransactionStorage
	address common.Address

	mu    sync.Mutex
	known []common.Transaction
	sub   *subscription.Subscription
}

func NewTracker(manager *subscription.Manager, store storage.ITransactionStorage, address common.Address) *Tracker {
	return &Tracker{
		manager: manager,
		storage: store,
		address: address,
	}
}

func (t *Tracker) Address() common.Address {
	return t.address
}

// Start loads the stored history and subscribes to new transactions.
func (t *Tracker) Start(ctx context.Context) error {
	known, err := t.storage.GetTransactions(t.address)
	if err != nil {
		return fmt.Errorf("failed to load history of %s: %w", t.address, err)
	}
	t.mu.Lock()
	t.known = known
	t.mu.Unlock()
	metrics.CachedTransactions.WithLabelValues(t.address.String()).Set(float64(len(known)))

	sub, err := t.manager.NewSubscription(provider.EventTransactionsFound, provider.SubscriptionParams{Address: t.address})
	if err != nil {
		return err
	}
	sub.OnData(func(event provider.Event) {
		found, ok := event.(provider.TransactionsFoundEvent)
		if !ok {
			return
		}
		if err := t.Merge(found.Transactions, found.Info); err != nil {
			log.Error().Err(err).Str("address", t.address.String()).Msg("Failed to merge transactions")
		}
	})
	if err := sub.Subscribe(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to transactions of %s: %w", t.address, err)
	}

	t.mu.Lock()
	t.sub = sub
	t.mu.Unlock()

	log.Info().Str("address", t.address.String()).Int("known", len(known)).Msg("Tracking transactions")
	return nil
}

// Stop unsubscribes the tracker. The stored history is kept.
func (t *Tracker) Stop(ctx context.Context) error {
	t.mu.Lock()
	sub := t.sub
	t.sub = nil
	t.mu.Unlock()

	if sub == nil {
		return nil
	}
	return sub.Unsubscribe(ctx)
}

// Merge splices a batch into the history and persists the result.
func (t *Tracker) Merge(incoming []common.Transaction, info common.TransactionsBatchInfo) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	// merge into a copy so a failed save leaves the known history intact
	merged := common.MergeTransactions(slices.Clone(t.known), incoming, info)
	if err := t.storage.SaveTransactions(t.address, merged); err != nil {
		return err
	}
	t.known = merged

	metrics.MergedTransactions.Add(float64(len(incoming)))
	metrics.CachedTransactions.WithLabelValues(t.address.String()).Set(float64(len(merged)))
	log.Debug().
		Str("address", t.address.String()).
		Str("batch", string(info.BatchType)).
		Int("incoming", len(incoming)).
		Int("total", len(merged)).
		Msg("Merged transactions")
	return nil
}

// Preload fetches up to limit transactions older than the oldest known one
// and appends them as an old batch.
func (t *Tracker) Preload(ctx context.Context, limit int) (int, error) {
	params := provider.GetTransactionsParams{Address: t.address, Limit: &limit}

	t.mu.Lock()
	if n := len(t.known); n > 0 {
		params.Continuation = t.known[n-1].PrevTransactionID
		if params.Continuation == nil {
			// the oldest known transaction is the first one of the account
			t.mu.Unlock()
			return 0, nil
		}
	}
	t.mu.Unlock()

	result, err := t.manager.Api().GetTransactions(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("failed to preload transactions of %s: %w", t.address, err)
	}
	if len(result.Transactions) == 0 {
		return 0, nil
	}

	info := common.TransactionsBatchInfo{
		MinLt:     result.Transactions[len(result.Transactions)-1].ID.Lt,
		MaxLt:     result.Transactions[0].ID.Lt,
		BatchType: common.BatchTypeOld,
	}
	if result.Info != nil {
		info = *result.Info
	}
	if err := t.Merge(result.Transactions, info); err != nil {
		return 0, err
	}
	return len(result.Transactions), nil
}

// Transactions returns a copy of the known history, newest first.
func (t *Tracker) Transactions() []common.Transaction {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.known)
}
