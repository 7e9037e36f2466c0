package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	config "github.com/thirdweb-dev/walletbridge/configs"
	"github.com/thirdweb-dev/walletbridge/internal/common"
)

type RedisConnector struct {
	client *redis.Client
	cfg    *config.RedisConfig
}

var DEFAULT_REDIS_POOL_SIZE = 20

func NewRedisConnector(cfg *config.RedisConfig) (*RedisConnector, error) {
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = DEFAULT_REDIS_POOL_SIZE
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: poolSize,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info().Str("addr", cfg.Addr).Msg("Connected to Redis")
	return &RedisConnector{
		client: client,
		cfg:    cfg,
	}, nil
}

func (r *RedisConnector) GetTransactions(address common.Address) ([]common.Transaction, error) {
	value, err := r.client.Get(context.Background(), transactionsKey(address)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []common.Transaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read transactions of %s: %w", address, err)
	}
	return decodeTransactions(value)
}

func (r *RedisConnector) SaveTransactions(address common.Address, txs []common.Transaction) error {
	data, err := encodeTransactions(txs)
	if err != nil {
		return err
	}
	if err := r.client.Set(context.Background(), transactionsKey(address), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save transactions of %s: %w", address, err)
	}
	return nil
}

func (r *RedisConnector) Close() error {
	return r.client.Close()
}
