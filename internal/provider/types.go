package provider

import (
	"encoding/json"

	"github.com/thirdweb-dev/walletbridge/internal/common"
)

// ContractUpdatesSubscription is the interest of one listener in one address.
type ContractUpdatesSubscription struct {
	State        bool `json:"state"`
	Transactions bool `json:"transactions"`
}

func (s ContractUpdatesSubscription) IsEmpty() bool {
	return !s.State && !s.Transactions
}

type SubscriptionParams struct {
	Address common.Address `json:"address"`
}

type SubscribeParams struct {
	Address       common.Address              `json:"address"`
	Subscriptions ContractUpdatesSubscription `json:"subscriptions"`
}

type UnsubscribeParams struct {
	Address common.Address `json:"address"`
}

type AccountInteraction struct {
	Address      common.Address `json:"address"`
	PublicKey    string         `json:"publicKey"`
	ContractType string         `json:"contractType"`
}

type Permissions struct {
	Basic              bool                `json:"basic,omitempty"`
	AccountInteraction *AccountInteraction `json:"accountInteraction,omitempty"`
}

type Permission string

const (
	PermissionBasic              Permission = "basic"
	PermissionAccountInteraction Permission = "accountInteraction"
)

type RequestPermissionsParams struct {
	Permissions []Permission `json:"permissions"`
}

type ProviderState struct {
	Version            string                                 `json:"version"`
	NumericVersion     uint32                                 `json:"numericVersion"`
	SelectedConnection string                                 `json:"selectedConnection"`
	NetworkID          uint32                                 `json:"networkId,omitempty"`
	Permissions        Permissions                            `json:"permissions"`
	Subscriptions      map[string]ContractUpdatesSubscription `json:"subscriptions"`
}

type GenTimings struct {
	GenLt    string `json:"genLt"`
	GenUtime uint32 `json:"genUtime"`
}

type ContractState struct {
	Balance           string                `json:"balance"`
	GenTimings        GenTimings            `json:"genTimings"`
	LastTransactionID *common.TransactionID `json:"lastTransactionId,omitempty"`
	IsDeployed        bool                  `json:"isDeployed"`
	CodeHash          string                `json:"codeHash,omitempty"`
}

type FullContractState struct {
	ContractState
	Boc string `json:"boc"`
}

type GetFullContractStateParams struct {
	Address common.Address `json:"address"`
}

type GetFullContractStateResult struct {
	State *FullContractState `json:"state,omitempty"`
}

type GetTransactionsParams struct {
	Address      common.Address        `json:"address"`
	Continuation *common.TransactionID `json:"continuation,omitempty"`
	Limit        *int                  `json:"limit,omitempty"`
}

type GetTransactionsResult struct {
	Transactions []common.Transaction          `json:"transactions"`
	Continuation *common.TransactionID         `json:"continuation,omitempty"`
	Info         *common.TransactionsBatchInfo `json:"info,omitempty"`
}

// FunctionCall carries already serialized tokens.
type FunctionCall struct {
	Abi    string         `json:"abi"`
	Method string         `json:"method"`
	Params map[string]any `json:"params"`
}

type RunLocalParams struct {
	Address      common.Address     `json:"address"`
	CachedState  *FullContractState `json:"cachedState,omitempty"`
	Responsible  bool               `json:"responsible,omitempty"`
	FunctionCall FunctionCall       `json:"functionCall"`
}

type RunLocalResult struct {
	Output json.RawMessage `json:"output,omitempty"`
	Code   int32           `json:"code"`
}

type SendMessageParams struct {
	Sender    common.Address `json:"sender"`
	Recipient common.Address `json:"recipient"`
	Amount    string         `json:"amount"`
	Bounce    bool           `json:"bounce"`
	Payload   *FunctionCall  `json:"payload,omitempty"`
}

type SendMessageResult struct {
	Transaction common.Transaction `json:"transaction"`
}

type EstimateFeesResult struct {
	Fees string `json:"fees"`
}
