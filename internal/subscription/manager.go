package subscription

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/thirdweb-dev/walletbridge/internal/common"
	"github.com/thirdweb-dev/walletbridge/internal/metrics"
	"github.com/thirdweb-dev/walletbridge/internal/provider"
)

var (
	ErrUnknownEvent   = provider.ErrUnknownEvent
	ErrMissingAddress = errors.New("contract events require an address")
)

type listenerEntry struct {
	id      int
	address common.Address
	deliver func(provider.Event)
}

// Manager maps logical subscriptions onto the smallest set of provider
// subscriptions and fans provider events out to them.
type Manager struct {
	api *provider.Api

	// mu guards nextID, listeners, contracts and addressLocks. Provider calls
	// are made without holding it.
	mu           sync.Mutex
	nextID       int
	listeners    map[provider.EventName][]listenerEntry
	contracts    map[common.Address][]contractEntry
	addressLocks map[common.Address]*sync.Mutex

	cancel  context.CancelFunc
	started chan struct{}
}

// NewManager creates a manager and registers its event listeners on the
// provider as soon as the provider context becomes ready.
func NewManager(ctx context.Context, pc *provider.Context) *Manager {
	listenCtx, cancel := context.WithCancel(ctx)
	m := &Manager{
		api:          provider.NewApi(pc),
		listeners:    make(map[provider.EventName][]listenerEntry),
		contracts:    make(map[common.Address][]contractEntry),
		addressLocks: make(map[common.Address]*sync.Mutex),
		cancel:       cancel,
		started:      make(chan struct{}),
	}
	go m.listen(listenCtx)
	return m
}

func (m *Manager) Api() *provider.Api {
	return m.api
}

// Started is closed once event listeners are registered, or registration gave up.
func (m *Manager) Started() <-chan struct{} {
	return m.started
}

func (m *Manager) Close() {
	m.cancel()
	<-m.started
}

func (m *Manager) listen(ctx context.Context) {
	defer close(m.started)

	p, err := m.api.Context().Ready(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("Provider unavailable, events will not be delivered")
		}
		return
	}

	for _, name := range provider.Events {
		err := p.AddListener(ctx, name, func(raw json.RawMessage) {
			m.handle(name, raw)
		})
		if err != nil {
			log.Error().Err(err).Str("event", string(name)).Msg("Failed to add provider listener")
			continue
		}
		log.Debug().Str("event", string(name)).Msg("Listening for provider event")
	}
}

// Subscribe creates a logical subscription and subscribes it. Contract
// events need an address in params.
func (m *Manager) Subscribe(ctx context.Context, event provider.EventName, params ...provider.SubscriptionParams) (*Subscription, error) {
	s, err := m.NewSubscription(event, params...)
	if err != nil {
		return nil, err
	}
	if err := s.Subscribe(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// NewSubscription creates a logical subscription without subscribing it, so
// handlers can be attached before the first event can arrive.
func (m *Manager) NewSubscription(event provider.EventName, params ...provider.SubscriptionParams) (*Subscription, error) {
	if !event.IsKnown() {
		return nil, fmt.Errorf("%w '%s'", ErrUnknownEvent, event)
	}

	var address common.Address
	if event.IsAddressScoped() {
		if len(params) == 0 || params[0].Address.IsZero() {
			return nil, fmt.Errorf("%w: %s", ErrMissingAddress, event)
		}
		address = params[0].Address
	}

	return newSubscription(m, m.allocateID(), event, address), nil
}

func (m *Manager) allocateID() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	return m.nextID
}

// lockAddress serializes map changes and provider calls for one address, so
// the provider sees calls in the order the maps changed.
func (m *Manager) lockAddress(address common.Address) func() {
	m.mu.Lock()
	lock, ok := m.addressLocks[address]
	if !ok {
		lock = &sync.Mutex{}
		m.addressLocks[address] = lock
	}
	m.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func (m *Manager) register(ctx context.Context, id int, event provider.EventName, address common.Address, deliver func(provider.Event)) error {
	if event.IsAddressScoped() {
		defer m.lockAddress(address)()
	}

	m.mu.Lock()
	listenerAdded := m.addListener(event, listenerEntry{id: id, address: address, deliver: deliver})
	if !event.IsAddressScoped() {
		m.mu.Unlock()
		if listenerAdded {
			metrics.ActiveSubscriptions.Inc()
		}
		return nil
	}

	entryAdded := m.addContractEntry(address, contractEntry{id: id, flags: event.Interest()})
	withEntry, withoutEntry := foldEntries(m.contracts[address], id)
	m.mu.Unlock()

	if withEntry != withoutEntry {
		metrics.UnderlyingSubscribeCalls.Inc()
		if err := m.api.SubscribeContract(ctx, address, withEntry); err != nil {
			m.mu.Lock()
			if listenerAdded {
				m.removeListener(event, id)
			}
			if entryAdded {
				m.removeContractEntry(address, id)
			}
			m.mu.Unlock()
			metrics.SubscriptionRollbacks.Inc()
			log.Debug().Err(err).Str("address", address.String()).Str("event", string(event)).Msg("Rolled back subscription")
			return err
		}
	}

	if listenerAdded {
		metrics.ActiveSubscriptions.Inc()
	}
	return nil
}

func (m *Manager) unregister(ctx context.Context, id int, event provider.EventName, address common.Address) error {
	if event.IsAddressScoped() {
		defer m.lockAddress(address)()
	}

	m.mu.Lock()
	listenerRemoved := m.removeListener(event, id)
	if !event.IsAddressScoped() {
		m.mu.Unlock()
		if listenerRemoved {
			metrics.ActiveSubscriptions.Dec()
		}
		return nil
	}

	withEntry, withoutEntry := foldEntries(m.contracts[address], id)
	entryRemoved := m.removeContractEntry(address, id)
	m.mu.Unlock()

	if listenerRemoved {
		metrics.ActiveSubscriptions.Dec()
	}
	if !entryRemoved {
		return nil
	}

	switch {
	case withoutEntry.IsEmpty():
		metrics.UnderlyingUnsubscribeCalls.Inc()
		return m.api.UnsubscribeContract(ctx, address)
	case withEntry != withoutEntry:
		metrics.UnderlyingSubscribeCalls.Inc()
		return m.api.SubscribeContract(ctx, address, withoutEntry)
	}
	return nil
}

// addListener reports false when the id is already registered for event.
func (m *Manager) addListener(event provider.EventName, entry listenerEntry) bool {
	for _, existing := range m.listeners[event] {
		if existing.id == entry.id {
			return false
		}
	}
	m.listeners[event] = append(m.listeners[event], entry)
	return true
}

func (m *Manager) removeListener(event provider.EventName, id int) bool {
	entries := m.listeners[event]
	for i, entry := range entries {
		if entry.id != id {
			continue
		}
		// never mutate in place, snapshots taken for fan-out share the array
		m.listeners[event] = slices.Concat(entries[:i], entries[i+1:])
		if len(m.listeners[event]) == 0 {
			delete(m.listeners, event)
		}
		return true
	}
	return false
}

func (m *Manager) addContractEntry(address common.Address, entry contractEntry) bool {
	for _, existing := range m.contracts[address] {
		if existing.id == entry.id {
			return false
		}
	}
	m.contracts[address] = append(m.contracts[address], entry)
	return true
}

func (m *Manager) removeContractEntry(address common.Address, id int) bool {
	entries := m.contracts[address]
	for i, entry := range entries {
		if entry.id != id {
			continue
		}
		m.contracts[address] = slices.Concat(entries[:i], entries[i+1:])
		if len(m.contracts[address]) == 0 {
			delete(m.contracts, address)
		}
		return true
	}
	return false
}

// Interest returns the aggregate interest currently held in address.
func (m *Manager) Interest(address common.Address) provider.ContractUpdatesSubscription {
	m.mu.Lock()
	defer m.mu.Unlock()
	interest, _ := foldEntries(m.contracts[address], 0)
	return interest
}

func (m *Manager) handle(name provider.EventName, raw json.RawMessage) {
	event, err := provider.DecodeEvent(name, raw)
	if err != nil {
		log.Warn().Err(err).Str("event", string(name)).Msg("Dropping undecodable provider event")
		return
	}
	m.Dispatch(event)
}

// Dispatch fans an event out to every listener registered for its name, in
// registration order. Contract events only reach listeners on their address.
func (m *Manager) Dispatch(event provider.Event) {
	m.mu.Lock()
	snapshot := m.listeners[event.Name()]
	m.mu.Unlock()

	addressed, isAddressed := event.(provider.AddressedEvent)
	for _, entry := range snapshot {
		if isAddressed && !entry.address.Equals(addressed.EventAddress()) {
			continue
		}
		entry.deliver(event)
	}
	metrics.EventsDispatched.WithLabelValues(string(event.Name())).Inc()
}
