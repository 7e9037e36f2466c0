package worker

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/thirdweb-dev/walletbridge/internal/common"
)

// Preloader fetches older history for one address.
type Preloader interface {
	Address() common.Address
	Preload(ctx context.Context, limit int) (int, error)
}

type PreloadResult struct {
	Address common.Address
	Count   int
	Error   error
}

type Worker struct {
	limit int
}

func NewWorker(limit int) *Worker {
	return &Worker{
		limit: limit,
	}
}

// Run preloads every target concurrently. Results come back in target order.
func (w *Worker) Run(ctx context.Context, targets []Preloader) []PreloadResult {
	var wg sync.WaitGroup
	results := make([]PreloadResult, len(targets))
	for i, target := range targets {
		wg.Add(1)

		go func(i int, p Preloader) {
			defer wg.Done()
			results[i] = w.preload(ctx, p)
		}(i, target)
	}
	wg.Wait()

	return results
}

func (w *Worker) preload(ctx context.Context, p Preloader) PreloadResult {
	address := p.Address()
	log.Debug().Str("address", address.String()).Msgf("Preloading up to %d transactions", w.limit)
	count, err := p.Preload(ctx, w.limit)
	if err != nil {
		return PreloadResult{Address: address, Error: fmt.Errorf("error preloading transactions of %s: %w", address, err)}
	}
	return PreloadResult{Address: address, Count: count}
}
