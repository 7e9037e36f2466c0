package provider_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirdweb-dev/walletbridge/internal/provider"
	"github.com/thirdweb-dev/walletbridge/test/mocks"
)

func TestContext_ReadyAfterInitialized(t *testing.T) {
	pc := provider.NewContext()
	assert.Equal(t, provider.StateUninitialized, pc.State())

	mockProvider := &mocks.MockProvider{}
	go func() {
		time.Sleep(10 * time.Millisecond)
		pc.Initialized(mockProvider)
	}()

	p, err := pc.Ready(context.Background())
	require.NoError(t, err)
	assert.Same(t, mockProvider, p)
	assert.Equal(t, provider.StateReady, pc.State())
}

func TestContext_NeverReady(t *testing.T) {
	pc := provider.NewContext()
	pc.Await()
	assert.Equal(t, provider.StateAwaitingReadiness, pc.State())

	pc.ContentLoaded()
	assert.Equal(t, provider.StateNeverReady, pc.State())

	_, err := pc.Ready(context.Background())
	assert.ErrorIs(t, err, provider.ErrProviderNotFound)

	// late initialization does not revive the context
	pc.Initialized(&mocks.MockProvider{})
	_, err = pc.Ready(context.Background())
	assert.ErrorIs(t, err, provider.ErrProviderNotFound)
}

func TestContext_ContentLoadedAfterReadyIsIgnored(t *testing.T) {
	mockProvider := &mocks.MockProvider{}
	pc := provider.NewReadyContext(mockProvider)
	pc.ContentLoaded()

	p, err := pc.Ready(context.Background())
	require.NoError(t, err)
	assert.Same(t, mockProvider, p)
}

func TestContext_ReadyHonoursCancellation(t *testing.T) {
	pc := provider.NewContext()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := pc.Ready(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, provider.StateAwaitingReadiness, pc.State())
}
