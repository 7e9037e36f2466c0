package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/rs/zerolog/log"
	config "github.com/thirdweb-dev/walletbridge/configs"
	"github.com/thirdweb-dev/walletbridge/internal/common"
)

type BadgerConnector struct {
	db       *badger.DB
	gcTicker *time.Ticker
	stopGC   chan struct{}
	gcDone   chan struct{}
	once     sync.Once
}

func NewBadgerConnector(cfg *config.BadgerConfig) (*BadgerConnector, error) {
	path := cfg.Path
	if path == "" {
		path = filepath.Join(os.TempDir(), "walletbridge-history")
	}
	opts := badger.DefaultOptions(path)

	opts.ValueLogFileSize = 64 << 20
	opts.MemTableSize = 32 << 20
	opts.NumCompactors = 2
	opts.CompactL0OnClose = true
	opts.ValueThreshold = 1024
	opts.Compression = options.Snappy

	opts.Logger = nil // badger logs through its own logger otherwise

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	bc := &BadgerConnector{
		db:       db,
		gcTicker: time.NewTicker(time.Minute),
		stopGC:   make(chan struct{}),
		gcDone:   make(chan struct{}),
	}
	go bc.runGC()

	return bc, nil
}

func (bc *BadgerConnector) runGC() {
	defer close(bc.gcDone)
	for {
		select {
		case <-bc.gcTicker.C:
			err := bc.db.RunValueLogGC(0.5)
			if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
				log.Debug().Err(err).Msg("BadgerDB GC error")
			}
		case <-bc.stopGC:
			return
		}
	}
}

func (bc *BadgerConnector) GetTransactions(address common.Address) ([]common.Transaction, error) {
	var txs []common.Transaction
	err := bc.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(transactionsKey(address)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			txs, err = decodeTransactions(val)
			return err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read transactions of %s: %w", address, err)
	}
	if txs == nil {
		txs = []common.Transaction{}
	}
	return txs, nil
}

func (bc *BadgerConnector) SaveTransactions(address common.Address, txs []common.Transaction) error {
	data, err := encodeTransactions(txs)
	if err != nil {
		return err
	}
	err = bc.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(transactionsKey(address)), data)
	})
	if err != nil {
		return fmt.Errorf("failed to save transactions of %s: %w", address, err)
	}
	return nil
}

func (bc *BadgerConnector) Close() error {
	var err error
	bc.once.Do(func() {
		bc.gcTicker.Stop()
		close(bc.stopGC)
		<-bc.gcDone
		err = bc.db.Close()
	})
	return err
}
