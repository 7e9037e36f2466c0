package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/thirdweb-dev/walletbridge/internal/common"
	"github.com/thirdweb-dev/walletbridge/internal/metrics"
)

var ErrUnknownMethod = errors.New("unknown method")

type Method string

const (
	MethodRequestPermissions   Method = "requestPermissions"
	MethodDisconnect           Method = "disconnect"
	MethodSubscribe            Method = "subscribe"
	MethodUnsubscribe          Method = "unsubscribe"
	MethodUnsubscribeAll       Method = "unsubscribeAll"
	MethodGetProviderState     Method = "getProviderState"
	MethodGetFullContractState Method = "getFullContractState"
	MethodGetTransactions      Method = "getTransactions"
	MethodRunLocal             Method = "runLocal"
	MethodGetExpectedAddress   Method = "getExpectedAddress"
	MethodPackIntoCell         Method = "packIntoCell"
	MethodUnpackFromCell       Method = "unpackFromCell"
	MethodExtractPublicKey     Method = "extractPublicKey"
	MethodEncodeInternalInput  Method = "encodeInternalInput"
	MethodDecodeInput          Method = "decodeInput"
	MethodDecodeOutput         Method = "decodeOutput"
	MethodDecodeEvent          Method = "decodeEvent"
	MethodDecodeTransaction    Method = "decodeTransaction"
	MethodEstimateFees         Method = "estimateFees"
	MethodSendMessage          Method = "sendMessage"
	MethodSendExternalMessage  Method = "sendExternalMessage"
)

// Methods is the fixed method catalog the dispatch table is built from.
var Methods = []Method{
	MethodRequestPermissions,
	MethodDisconnect,
	MethodSubscribe,
	MethodUnsubscribe,
	MethodUnsubscribeAll,
	MethodGetProviderState,
	MethodGetFullContractState,
	MethodGetTransactions,
	MethodRunLocal,
	MethodGetExpectedAddress,
	MethodPackIntoCell,
	MethodUnpackFromCell,
	MethodExtractPublicKey,
	MethodEncodeInternalInput,
	MethodDecodeInput,
	MethodDecodeOutput,
	MethodDecodeEvent,
	MethodDecodeTransaction,
	MethodEstimateFees,
	MethodSendMessage,
	MethodSendExternalMessage,
}

type CallFunc func(ctx context.Context, params any, result any) error

// Api dispatches typed calls to the provider held by a Context.
type Api struct {
	pc    *Context
	calls map[Method]CallFunc
}

func NewApi(pc *Context) *Api {
	api := &Api{
		pc:    pc,
		calls: make(map[Method]CallFunc, len(Methods)),
	}
	for _, method := range Methods {
		api.calls[method] = api.forward(method)
	}
	return api
}

func (a *Api) Context() *Context {
	return a.pc
}

func (a *Api) forward(method Method) CallFunc {
	return func(ctx context.Context, params any, result any) error {
		p, err := a.pc.Ready(ctx)
		if err != nil {
			return err
		}
		metrics.ProviderRequests.WithLabelValues(string(method)).Inc()
		if err := p.Request(ctx, string(method), params, result); err != nil {
			metrics.ProviderRequestErrors.WithLabelValues(string(method)).Inc()
			log.Debug().Err(err).Str("method", string(method)).Msg("Provider request failed")
			return fmt.Errorf("%s: %w", method, err)
		}
		return nil
	}
}

// Call invokes a method from the catalog.
func (a *Api) Call(ctx context.Context, method Method, params any, result any) error {
	call, ok := a.calls[method]
	if !ok {
		return fmt.Errorf("%w '%s'", ErrUnknownMethod, method)
	}
	return call(ctx, params, result)
}

func (a *Api) RequestPermissions(ctx context.Context, permissions ...Permission) (Permissions, error) {
	var result Permissions
	err := a.Call(ctx, MethodRequestPermissions, RequestPermissionsParams{Permissions: permissions}, &result)
	return result, err
}

func (a *Api) Disconnect(ctx context.Context) error {
	return a.Call(ctx, MethodDisconnect, nil, nil)
}

func (a *Api) GetProviderState(ctx context.Context) (ProviderState, error) {
	var result ProviderState
	err := a.Call(ctx, MethodGetProviderState, nil, &result)
	return result, err
}

func (a *Api) GetFullContractState(ctx context.Context, address common.Address) (*FullContractState, error) {
	var result GetFullContractStateResult
	if err := a.Call(ctx, MethodGetFullContractState, GetFullContractStateParams{Address: address}, &result); err != nil {
		return nil, err
	}
	return result.State, nil
}

func (a *Api) GetTransactions(ctx context.Context, params GetTransactionsParams) (GetTransactionsResult, error) {
	var result GetTransactionsResult
	err := a.Call(ctx, MethodGetTransactions, params, &result)
	return result, err
}

func (a *Api) RunLocal(ctx context.Context, params RunLocalParams) (RunLocalResult, error) {
	var result RunLocalResult
	err := a.Call(ctx, MethodRunLocal, params, &result)
	return result, err
}

func (a *Api) EstimateFees(ctx context.Context, params SendMessageParams) (string, error) {
	var result EstimateFeesResult
	if err := a.Call(ctx, MethodEstimateFees, params, &result); err != nil {
		return "", err
	}
	return result.Fees, nil
}

func (a *Api) SendMessage(ctx context.Context, params SendMessageParams) (SendMessageResult, error) {
	var result SendMessageResult
	err := a.Call(ctx, MethodSendMessage, params, &result)
	return result, err
}

// SubscribeContract sets the net interest of the adapter in one address.
func (a *Api) SubscribeContract(ctx context.Context, address common.Address, subscriptions ContractUpdatesSubscription) error {
	return a.Call(ctx, MethodSubscribe, SubscribeParams{Address: address, Subscriptions: subscriptions}, nil)
}

func (a *Api) UnsubscribeContract(ctx context.Context, address common.Address) error {
	return a.Call(ctx, MethodUnsubscribe, UnsubscribeParams{Address: address}, nil)
}

func (a *Api) UnsubscribeAll(ctx context.Context) error {
	return a.Call(ctx, MethodUnsubscribeAll, nil, nil)
}
