package provider

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/thirdweb-dev/walletbridge/internal/common"
)

var ErrUnknownEvent = errors.New("unknown event")

type EventName string

const (
	EventDisconnected         EventName = "disconnected"
	EventNetworkChanged       EventName = "networkChanged"
	EventPermissionsChanged   EventName = "permissionsChanged"
	EventLoggedOut            EventName = "loggedOut"
	EventContractStateChanged EventName = "contractStateChanged"
	EventTransactionsFound    EventName = "transactionsFound"
)

// Events lists every event the adapter understands, in the order listeners are registered.
var Events = []EventName{
	EventDisconnected,
	EventNetworkChanged,
	EventPermissionsChanged,
	EventLoggedOut,
	EventContractStateChanged,
	EventTransactionsFound,
}

func (e EventName) IsKnown() bool {
	for _, known := range Events {
		if e == known {
			return true
		}
	}
	return false
}

// IsAddressScoped reports whether the event is delivered per contract address
// and needs an underlying provider subscription.
func (e EventName) IsAddressScoped() bool {
	return e == EventContractStateChanged || e == EventTransactionsFound
}

// Interest is the notification kind an address scoped event needs.
func (e EventName) Interest() ContractUpdatesSubscription {
	switch e {
	case EventContractStateChanged:
		return ContractUpdatesSubscription{State: true}
	case EventTransactionsFound:
		return ContractUpdatesSubscription{Transactions: true}
	}
	return ContractUpdatesSubscription{}
}

// Event is one of the payload types below.
type Event interface {
	Name() EventName
}

// AddressedEvent is implemented by events that belong to one contract.
type AddressedEvent interface {
	Event
	EventAddress() common.Address
}

type DisconnectedEvent struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type NetworkChangedEvent struct {
	SelectedConnection string `json:"selectedConnection"`
	NetworkID          uint32 `json:"networkId,omitempty"`
}

type PermissionsChangedEvent struct {
	Permissions Permissions `json:"permissions"`
}

type LoggedOutEvent struct{}

type ContractStateChangedEvent struct {
	Address common.Address `json:"address"`
	State   ContractState  `json:"state"`
}

type TransactionsFoundEvent struct {
	Address      common.Address               `json:"address"`
	Transactions []common.Transaction         `json:"transactions"`
	Info         common.TransactionsBatchInfo `json:"info"`
}

func (DisconnectedEvent) Name() EventName         { return EventDisconnected }
func (NetworkChangedEvent) Name() EventName       { return EventNetworkChanged }
func (PermissionsChangedEvent) Name() EventName   { return EventPermissionsChanged }
func (LoggedOutEvent) Name() EventName            { return EventLoggedOut }
func (ContractStateChangedEvent) Name() EventName { return EventContractStateChanged }
func (TransactionsFoundEvent) Name() EventName    { return EventTransactionsFound }

func (e ContractStateChangedEvent) EventAddress() common.Address { return e.Address }
func (e TransactionsFoundEvent) EventAddress() common.Address    { return e.Address }

// DecodeEvent decodes a raw provider payload into the variant named by name.
func DecodeEvent(name EventName, raw json.RawMessage) (Event, error) {
	var event Event
	switch name {
	case EventDisconnected:
		event = &DisconnectedEvent{}
	case EventNetworkChanged:
		event = &NetworkChangedEvent{}
	case EventPermissionsChanged:
		event = &PermissionsChangedEvent{}
	case EventLoggedOut:
		return LoggedOutEvent{}, nil
	case EventContractStateChanged:
		event = &ContractStateChangedEvent{}
	case EventTransactionsFound:
		event = &TransactionsFoundEvent{}
	default:
		return nil, fmt.Errorf("%w '%s'", ErrUnknownEvent, name)
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, event); err != nil {
			return nil, fmt.Errorf("failed to decode %s event: %w", name, err)
		}
	}

	switch e := event.(type) {
	case *DisconnectedEvent:
		return *e, nil
	case *NetworkChangedEvent:
		return *e, nil
	case *PermissionsChangedEvent:
		return *e, nil
	case *ContractStateChangedEvent:
		return *e, nil
	case *TransactionsFoundEvent:
		return *e, nil
	}
	return event, nil
}
