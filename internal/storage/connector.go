package storage

import (
	"encoding/json"
	"fmt"

	config "github.com/thirdweb-dev/walletbridge/configs"
	"github.com/thirdweb-dev/walletbridge/internal/common"
)

// ITransactionStorage persists the known transaction history of each
// watched address, newest first.
type ITransactionStorage interface {
	GetTransactions(address common.Address) ([]common.Transaction, error)
	SaveTransactions(address common.Address, txs []common.Transaction) error
	Close() error
}

func NewConnector(cfg *config.StorageConfig) (ITransactionStorage, error) {
	var conn ITransactionStorage
	var err error
	switch config.StorageType(cfg.Type) {
	case config.StorageTypeMemory, "":
		memoryCfg := cfg.Memory
		if memoryCfg == nil {
			memoryCfg = &config.MemoryConfig{}
		}
		conn, err = NewMemoryConnector(memoryCfg)
	case config.StorageTypeBadger:
		if cfg.Badger == nil {
			return nil, fmt.Errorf("badger storage selected but not configured")
		}
		conn, err = NewBadgerConnector(cfg.Badger)
	case config.StorageTypePebble:
		if cfg.Pebble == nil {
			return nil, fmt.Errorf("pebble storage selected but not configured")
		}
		conn, err = NewPebbleConnector(cfg.Pebble)
	case config.StorageTypeRedis:
		if cfg.Redis == nil {
			return nil, fmt.Errorf("redis storage selected but not configured")
		}
		conn, err = NewRedisConnector(cfg.Redis)
	default:
		return nil, fmt.Errorf("unknown storage type '%s'", cfg.Type)
	}
	if err != nil {
		return nil, err
	}
	return conn, nil
}

func transactionsKey(address common.Address) string {
	return fmt.Sprintf("transactions:%s", address.String())
}

func encodeTransactions(txs []common.Transaction) ([]byte, error) {
	data, err := json.Marshal(txs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transactions: %w", err)
	}
	return data, nil
}

func decodeTransactions(data []byte) ([]common.Transaction, error) {
	var txs []common.Transaction
	if err := json.Unmarshal(data, &txs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transactions: %w", err)
	}
	return txs, nil
}
