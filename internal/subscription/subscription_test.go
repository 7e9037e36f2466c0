package subscription

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thirdweb-dev/walletbridge/internal/provider"
)

func TestSubscription_Lifecycle(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.expectSubscribe(addressA, stateOnly, nil).Twice()
	sub, err := h.manager.Subscribe(ctx, provider.EventContractStateChanged, provider.SubscriptionParams{Address: addressA})
	require.NoError(t, err)
	assert.Equal(t, StateActive, sub.State())
	assert.Equal(t, addressA, sub.Address())

	var events []string
	sub.OnSubscribed(func() { events = append(events, "subscribed") }).
		OnUnsubscribed(func() { events = append(events, "unsubscribed") })

	// subscribing again repeats the provider call without a second registration
	require.NoError(t, sub.Subscribe(ctx))
	assert.Equal(t, []int{sub.ID()}, h.contractIDs(addressA))
	assert.Equal(t, []int{sub.ID()}, h.listenerIDs(provider.EventContractStateChanged))

	h.expectUnsubscribe(addressA, nil).Once()
	require.NoError(t, sub.Unsubscribe(ctx))
	assert.Equal(t, StateInactive, sub.State())

	// unsubscribing twice is a no-op
	require.NoError(t, sub.Unsubscribe(ctx))
	assert.Equal(t, []string{"subscribed", "unsubscribed"}, events)
	h.provider.AssertNumberOfCalls(t, "Request", 3)
}

func TestSubscription_DataOnlyWhileActive(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	payload := `{"address": "` + addressA.String() + `", "state": {"balance": "1", "isDeployed": true}}`

	h.expectSubscribe(addressA, stateOnly, nil).Once()
	sub, err := h.manager.Subscribe(ctx, provider.EventContractStateChanged, provider.SubscriptionParams{Address: addressA})
	require.NoError(t, err)

	var balances []string
	sub.OnData(func(event provider.Event) {
		balances = append(balances, event.(provider.ContractStateChangedEvent).State.Balance)
	})

	h.fire(provider.EventContractStateChanged, payload)

	h.expectUnsubscribe(addressA, nil).Once()
	require.NoError(t, sub.Unsubscribe(ctx))
	h.fire(provider.EventContractStateChanged, payload)

	assert.Equal(t, []string{"1"}, balances)
}

func TestSubscription_EventsWhileSubscribingAreDeliveredOnActivation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	payload := `{"address": "` + addressA.String() + `", "state": {"balance": "7", "isDeployed": true}}`

	sub, err := h.manager.NewSubscription(provider.EventContractStateChanged, provider.SubscriptionParams{Address: addressA})
	require.NoError(t, err)
	assert.Equal(t, StateCreated, sub.State())

	var balances []string
	sub.OnData(func(event provider.Event) {
		assert.Equal(t, StateSubscribing, sub.State())
		balances = append(balances, event.(provider.ContractStateChangedEvent).State.Balance)
	})

	h.expectSubscribe(addressA, stateOnly, nil).
		Run(func(mock.Arguments) { h.fire(provider.EventContractStateChanged, payload) }).
		Once()
	require.NoError(t, sub.Subscribe(ctx))

	assert.Equal(t, []string{"7"}, balances)
	assert.Equal(t, StateActive, sub.State())
}

func TestSubscription_EventsWhileSubscribingAreDroppedOnFailure(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	payload := `{"address": "` + addressA.String() + `", "state": {"balance": "7", "isDeployed": true}}`

	sub, err := h.manager.NewSubscription(provider.EventContractStateChanged, provider.SubscriptionParams{Address: addressA})
	require.NoError(t, err)

	var received int
	sub.OnData(func(provider.Event) { received++ })

	h.expectSubscribe(addressA, stateOnly, errors.New("rejected")).
		Run(func(mock.Arguments) { h.fire(provider.EventContractStateChanged, payload) }).
		Once()
	require.Error(t, sub.Subscribe(ctx))
	assert.Equal(t, StateCreated, sub.State())

	h.expectSubscribe(addressA, stateOnly, nil).Once()
	require.NoError(t, sub.Subscribe(ctx))
	assert.Zero(t, received)
}

func TestSubscription_FailedResubscribeRestoresState(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.expectSubscribe(addressA, txOnly, nil).Once()
	sub, err := h.manager.Subscribe(ctx, provider.EventTransactionsFound, provider.SubscriptionParams{Address: addressA})
	require.NoError(t, err)

	h.expectUnsubscribe(addressA, nil).Once()
	require.NoError(t, sub.Unsubscribe(ctx))

	h.expectSubscribe(addressA, txOnly, errors.New("offline")).Once()
	require.Error(t, sub.Subscribe(ctx))
	assert.Equal(t, StateInactive, sub.State())
	assert.Empty(t, h.contractIDs(addressA))
}

func TestSubscription_FailedUnsubscribeStillDeactivates(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.expectSubscribe(addressA, txOnly, nil).Once()
	sub, err := h.manager.Subscribe(ctx, provider.EventTransactionsFound, provider.SubscriptionParams{Address: addressA})
	require.NoError(t, err)

	unsubscribed := false
	sub.OnUnsubscribed(func() { unsubscribed = true })

	h.expectUnsubscribe(addressA, errors.New("offline")).Once()
	assert.Error(t, sub.Unsubscribe(ctx))
	assert.Equal(t, StateInactive, sub.State())
	assert.False(t, unsubscribed)
	assert.Empty(t, h.contractIDs(addressA))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "unsubscribing", StateUnsubscribing.String())
	assert.Equal(t, "unknown", State(99).String())
}
