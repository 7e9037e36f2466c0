package handlers

import (
	"errors"
	"sync"

	"github.com/thirdweb-dev/walletbridge/internal/provider"
	"github.com/thirdweb-dev/walletbridge/internal/storage"
)

var errNotConfigured = errors.New("handlers are not configured")

// package-level dependencies shared across all handlers
var (
	mu             sync.RWMutex
	historyStorage storage.ITransactionStorage
	providerApi    *provider.Api
)

// Configure sets the storage and provider api the handlers read from.
func Configure(store storage.ITransactionStorage, api *provider.Api) {
	mu.Lock()
	defer mu.Unlock()
	historyStorage = store
	providerApi = api
}

func getHistoryStorage() (storage.ITransactionStorage, error) {
	mu.RLock()
	defer mu.RUnlock()
	if historyStorage == nil {
		return nil, errNotConfigured
	}
	return historyStorage, nil
}

func getProviderApi() (*provider.Api, error) {
	mu.RLock()
	defer mu.RUnlock()
	if providerApi == nil {
		return nil, errNotConfigured
	}
	return providerApi, nil
}
