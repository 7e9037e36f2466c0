package contract

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/thirdweb-dev/walletbridge/internal/abi"
	"github.com/thirdweb-dev/walletbridge/internal/common"
	"github.com/thirdweb-dev/walletbridge/internal/provider"
)

var (
	ErrUnknownFunction = errors.New("unknown contract function")
	ErrExecutionFailed = errors.New("local execution failed")
)

// Contract binds an ABI to a deployed address and calls it through the provider.
type Contract struct {
	api     *provider.Api
	abi     *abi.ContractAbi
	address common.Address
}

type SendOptions struct {
	From   common.Address
	Amount string
	Bounce bool
}

func New(api *provider.Api, contractAbi *abi.ContractAbi, address common.Address) *Contract {
	return &Contract{
		api:     api,
		abi:     contractAbi,
		address: address,
	}
}

func (c *Contract) Address() common.Address {
	return c.address
}

func (c *Contract) Abi() *abi.ContractAbi {
	return c.abi
}

// Call runs a getter locally and parses its outputs. Outputs the contract did
// not return are Undefined.
func (c *Contract) Call(ctx context.Context, method string, inputs abi.Tuple) (abi.Tuple, error) {
	function, err := c.function(method)
	if err != nil {
		return nil, err
	}

	result, err := c.api.RunLocal(ctx, provider.RunLocalParams{
		Address:      c.address,
		FunctionCall: c.functionCall(method, inputs),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call '%s' on %s: %w", method, c.address, err)
	}
	if result.Code != 0 {
		return nil, fmt.Errorf("%w: '%s' exited with code %d", ErrExecutionFailed, method, result.Code)
	}

	outputs, err := abi.ParseJSON(function.Outputs, result.Output)
	if err != nil {
		return nil, fmt.Errorf("failed to parse '%s' outputs: %w", method, err)
	}
	log.Trace().Str("address", c.address.String()).Str("method", method).Msg("Contract call completed")
	return outputs, nil
}

// Send submits an external message invoking method and returns the resulting transaction.
func (c *Contract) Send(ctx context.Context, method string, inputs abi.Tuple, opts SendOptions) (*common.Transaction, error) {
	params, err := c.sendParams(method, inputs, opts)
	if err != nil {
		return nil, err
	}
	result, err := c.api.SendMessage(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to send '%s' to %s: %w", method, c.address, err)
	}
	log.Debug().Str("address", c.address.String()).Str("method", method).Str("lt", result.Transaction.ID.Lt).Msg("Message sent")
	return &result.Transaction, nil
}

func (c *Contract) EstimateFees(ctx context.Context, method string, inputs abi.Tuple, opts SendOptions) (string, error) {
	params, err := c.sendParams(method, inputs, opts)
	if err != nil {
		return "", err
	}
	fees, err := c.api.EstimateFees(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to estimate fees for '%s': %w", method, err)
	}
	return fees, nil
}

func (c *Contract) sendParams(method string, inputs abi.Tuple, opts SendOptions) (provider.SendMessageParams, error) {
	if _, err := c.function(method); err != nil {
		return provider.SendMessageParams{}, err
	}
	call := c.functionCall(method, inputs)
	return provider.SendMessageParams{
		Sender:    opts.From,
		Recipient: c.address,
		Amount:    opts.Amount,
		Bounce:    opts.Bounce,
		Payload:   &call,
	}, nil
}

func (c *Contract) function(method string) (*abi.Function, error) {
	function, ok := c.abi.Function(method)
	if !ok {
		return nil, fmt.Errorf("%w '%s'", ErrUnknownFunction, method)
	}
	return function, nil
}

func (c *Contract) functionCall(method string, inputs abi.Tuple) provider.FunctionCall {
	return provider.FunctionCall{
		Abi:    c.abi.Raw,
		Method: method,
		Params: abi.SerializeTokens(inputs),
	}
}
