package provider_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thirdweb-dev/walletbridge/internal/common"
	"github.com/thirdweb-dev/walletbridge/internal/provider"
	"github.com/thirdweb-dev/walletbridge/test/mocks"
)

func TestApi_DispatchesEveryCatalogMethod(t *testing.T) {
	mockProvider := mocks.NewMockProvider(t)
	for _, method := range provider.Methods {
		mockProvider.On("Request", mock.Anything, string(method), nil, nil).Return(nil).Once()
	}

	api := provider.NewApi(provider.NewReadyContext(mockProvider))
	for _, method := range provider.Methods {
		assert.NoError(t, api.Call(context.Background(), method, nil, nil))
	}
}

func TestApi_UnknownMethod(t *testing.T) {
	api := provider.NewApi(provider.NewReadyContext(&mocks.MockProvider{}))
	err := api.Call(context.Background(), provider.Method("mintEverything"), nil, nil)
	assert.ErrorIs(t, err, provider.ErrUnknownMethod)
}

func TestApi_ProviderNotFound(t *testing.T) {
	pc := provider.NewContext()
	pc.ContentLoaded()

	_, err := provider.NewApi(pc).GetProviderState(context.Background())
	assert.ErrorIs(t, err, provider.ErrProviderNotFound)
}

func TestApi_TypedCalls(t *testing.T) {
	mockProvider := mocks.NewMockProvider(t)
	address := common.NewAddress("0:aa")

	mockProvider.On("Request", mock.Anything, "subscribe", provider.SubscribeParams{
		Address:       address,
		Subscriptions: provider.ContractUpdatesSubscription{State: true},
	}, nil).Return(nil)
	mockProvider.On("Request", mock.Anything, "getProviderState", nil, mock.AnythingOfType("*provider.ProviderState")).
		Run(func(args mock.Arguments) {
			args.Get(3).(*provider.ProviderState).SelectedConnection = "mainnet"
		}).Return(nil)
	mockProvider.On("Request", mock.Anything, "unsubscribe", provider.UnsubscribeParams{Address: address}, nil).
		Return(errors.New("boom"))

	api := provider.NewApi(provider.NewReadyContext(mockProvider))
	ctx := context.Background()

	require.NoError(t, api.SubscribeContract(ctx, address, provider.ContractUpdatesSubscription{State: true}))

	state, err := api.GetProviderState(ctx)
	require.NoError(t, err)
	assert.Equal(t, "mainnet", state.SelectedConnection)

	err = api.UnsubscribeContract(ctx, address)
	assert.EqualError(t, err, "unsubscribe: boom")
}
