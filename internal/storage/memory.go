package storage

import (
	"fmt"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"
	config "github.com/thirdweb-dev/walletbridge/configs"
	"github.com/thirdweb-dev/walletbridge/internal/common"
)

// MemoryConnector keeps histories in an LRU cache. The least recently used
// address is evicted once more than MaxItems addresses are stored.
type MemoryConnector struct {
	cache *lru.Cache[string, []common.Transaction]
}

func NewMemoryConnector(cfg *config.MemoryConfig) (*MemoryConnector, error) {
	maxItems := 1000
	if cfg.MaxItems > 0 {
		maxItems = cfg.MaxItems
	}

	cache, err := lru.New[string, []common.Transaction](maxItems)
	if err != nil {
		return nil, fmt.Errorf("failed to create LRU cache: %w", err)
	}

	return &MemoryConnector{
		cache: cache,
	}, nil
}

func (m *MemoryConnector) GetTransactions(address common.Address) ([]common.Transaction, error) {
	txs, ok := m.cache.Get(transactionsKey(address))
	if !ok {
		return []common.Transaction{}, nil
	}
	return slices.Clone(txs), nil
}

func (m *MemoryConnector) SaveTransactions(address common.Address, txs []common.Transaction) error {
	m.cache.Add(transactionsKey(address), slices.Clone(txs))
	return nil
}

func (m *MemoryConnector) Close() error {
	m.cache.Purge()
	return nil
}
