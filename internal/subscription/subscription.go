package subscription

import (
	"context"
	"slices"
	"sync"

	"github.com/thirdweb-dev/walletbridge/internal/common"
	"github.com/thirdweb-dev/walletbridge/internal/provider"
)

type State int

const (
	StateCreated State = iota
	StateSubscribing
	StateActive
	StateUnsubscribing
	StateInactive
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateSubscribing:
		return "subscribing"
	case StateActive:
		return "active"
	case StateUnsubscribing:
		return "unsubscribing"
	case StateInactive:
		return "inactive"
	}
	return "unknown"
}

// Subscription is an application facing handle for one event name and, for
// contract events, one address. It only holds ids, the manager owns the maps.
type Subscription struct {
	manager *Manager
	id      int
	event   provider.EventName
	address common.Address

	mu             sync.Mutex
	state          State
	pending        []provider.Event
	onData         []func(provider.Event)
	onSubscribed   []func()
	onUnsubscribed []func()
}

func newSubscription(manager *Manager, id int, event provider.EventName, address common.Address) *Subscription {
	return &Subscription{
		manager: manager,
		id:      id,
		event:   event,
		address: address,
		state:   StateCreated,
	}
}

func (s *Subscription) ID() int {
	return s.id
}

func (s *Subscription) Event() provider.EventName {
	return s.event
}

func (s *Subscription) Address() common.Address {
	return s.address
}

func (s *Subscription) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// OnData registers a handler for events delivered while the subscription is active.
func (s *Subscription) OnData(handler func(provider.Event)) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onData = append(s.onData, handler)
	return s
}

func (s *Subscription) OnSubscribed(handler func()) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSubscribed = append(s.onSubscribed, handler)
	return s
}

func (s *Subscription) OnUnsubscribed(handler func()) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUnsubscribed = append(s.onUnsubscribed, handler)
	return s
}

// Subscribe (re)registers the subscription with the manager. On failure the
// previous state is restored.
func (s *Subscription) Subscribe(ctx context.Context) error {
	s.mu.Lock()
	previous := s.state
	s.state = StateSubscribing
	s.mu.Unlock()

	if err := s.manager.register(ctx, s.id, s.event, s.address, s.deliver); err != nil {
		s.mu.Lock()
		s.state = previous
		s.pending = nil
		s.mu.Unlock()
		return err
	}

	s.activate()
	return nil
}

// activate delivers events that arrived while subscribing, then switches to
// active. New events keep queueing until the queue is drained.
func (s *Subscription) activate() {
	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.state = StateActive
			onSubscribed := slices.Clone(s.onSubscribed)
			s.mu.Unlock()

			for _, handler := range onSubscribed {
				handler()
			}
			return
		}
		pending := s.pending
		s.pending = nil
		handlers := slices.Clone(s.onData)
		s.mu.Unlock()

		for _, event := range pending {
			for _, handler := range handlers {
				handler(event)
			}
		}
	}
}

// Unsubscribe removes the subscription from the manager. The subscription is
// inactive afterwards even when the provider call fails.
func (s *Subscription) Unsubscribe(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateCreated || s.state == StateInactive {
		s.mu.Unlock()
		return nil
	}
	s.state = StateUnsubscribing
	s.mu.Unlock()

	err := s.manager.unregister(ctx, s.id, s.event, s.address)

	s.mu.Lock()
	s.state = StateInactive
	handlers := slices.Clone(s.onUnsubscribed)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	for _, handler := range handlers {
		handler()
	}
	return nil
}

func (s *Subscription) deliver(event provider.Event) {
	s.mu.Lock()
	if s.state == StateSubscribing {
		s.pending = append(s.pending, event)
		s.mu.Unlock()
		return
	}
	if s.state != StateActive {
		s.mu.Unlock()
		return
	}
	handlers := slices.Clone(s.onData)
	s.mu.Unlock()

	for _, handler := range handlers {
		handler(event)
	}
}
