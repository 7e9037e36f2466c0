package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/pebble"
	config "github.com/thirdweb-dev/walletbridge/configs"
	"github.com/thirdweb-dev/walletbridge/internal/common"
)

type PebbleConnector struct {
	db *pebble.DB
}

func NewPebbleConnector(cfg *config.PebbleConfig) (*PebbleConnector, error) {
	path := cfg.Path
	if path == "" {
		path = filepath.Join(os.TempDir(), "walletbridge-history-pebble")
	}

	cache := pebble.NewCache(64 << 20)
	defer cache.Unref()

	opts := &pebble.Options{
		MemTableSize:                32 << 20,
		MemTableStopWritesThreshold: 4,
		L0CompactionThreshold:       4,
		L0StopWritesThreshold:       12,
		Cache:                       cache,
		Levels:                      make([]pebble.LevelOptions, 7),
	}
	for i := range opts.Levels {
		opts.Levels[i] = pebble.LevelOptions{
			BlockSize:      32 << 10,
			IndexBlockSize: 64 << 10,
		}
		if i == 0 {
			opts.Levels[i].TargetFileSize = 16 << 20
			opts.Levels[i].Compression = pebble.SnappyCompression
		} else {
			opts.Levels[i].TargetFileSize = opts.Levels[i-1].TargetFileSize * 2
			opts.Levels[i].Compression = pebble.ZstdCompression
		}
	}

	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open pebble db: %w", err)
	}
	return &PebbleConnector{db: db}, nil
}

func (pc *PebbleConnector) GetTransactions(address common.Address) ([]common.Transaction, error) {
	value, closer, err := pc.db.Get([]byte(transactionsKey(address)))
	if errors.Is(err, pebble.ErrNotFound) {
		return []common.Transaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read transactions of %s: %w", address, err)
	}
	defer closer.Close()

	return decodeTransactions(value)
}

func (pc *PebbleConnector) SaveTransactions(address common.Address, txs []common.Transaction) error {
	data, err := encodeTransactions(txs)
	if err != nil {
		return err
	}
	if err := pc.db.Set([]byte(transactionsKey(address)), data, pebble.Sync); err != nil {
		return fmt.Errorf("failed to save transactions of %s: %w", address, err)
	}
	return nil
}

func (pc *PebbleConnector) Close() error {
	return pc.db.Close()
}
