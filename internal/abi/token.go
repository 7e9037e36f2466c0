package abi

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
	"github.com/thirdweb-dev/walletbridge/internal/common"
)

// Token is the typed runtime form of a single ABI value.
type Token interface {
	isToken()
}

type Bool bool

type String string

// Number keeps the textual form of a numeric value, as it travels on the wire.
type Number string

type AddressToken struct {
	common.Address
}

type Field struct {
	Name  string
	Value Token
}

// Tuple is an ordered mapping from names to tokens.
type Tuple []Field

type Array []Token

type Pair struct {
	Key   Token
	Value Token
}

// Map keeps pairs in order and never deduplicates keys.
type Map []Pair

// Undefined marks an output field the provider did not return.
type Undefined struct{}

func (Bool) isToken()         {}
func (String) isToken()       {}
func (Number) isToken()       {}
func (AddressToken) isToken() {}
func (Tuple) isToken()        {}
func (Array) isToken()        {}
func (Map) isToken()          {}
func (Undefined) isToken()    {}

func NewAddressToken(value string) AddressToken {
	return AddressToken{Address: common.NewAddress(value)}
}

// Get returns the first field with the given name.
func (t Tuple) Get(name string) (Token, bool) {
	for _, field := range t {
		if field.Name == name {
			return field.Value, true
		}
	}
	return nil, false
}

func (t Tuple) Names() []string {
	names := make([]string, 0, len(t))
	for _, field := range t {
		names = append(names, field.Name)
	}
	return names
}

func (n Number) String() string {
	return string(n)
}

func (n Number) BigInt() (*big.Int, error) {
	value, ok := new(big.Int).SetString(string(n), 0)
	if !ok {
		return nil, fmt.Errorf("invalid number '%s'", n)
	}
	return value, nil
}

func (n Number) Uint256() (*uint256.Int, error) {
	s := string(n)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return uint256.FromHex(s)
	}
	return uint256.FromDecimal(s)
}
