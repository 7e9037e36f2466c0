package abi

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirdweb-dev/walletbridge/internal/common"
)

var walletSchema = []Param{
	{Name: "amount", Type: "uint128"},
	{Name: "bounce", Type: "bool"},
	{Name: "payload", Type: "cell"},
	{Name: "ids", Type: "uint32[]"},
	{Name: "limits", Type: "map(uint32,bool)"},
	{Name: "info", Type: "tuple", Components: []Param{
		{Name: "createdAt", Type: "time"},
		{Name: "flags", Type: "uint8[]"},
	}},
	{Name: "empty", Type: "tuple"},
}

func TestParseSerializeRoundTrip(t *testing.T) {
	value := Tuple{
		{Name: "amount", Value: Number("1000000000")},
		{Name: "bounce", Value: Bool(true)},
		{Name: "payload", Value: String("te6ccgEBAQEAAgAAAA==")},
		{Name: "ids", Value: Array{Number("1"), Number("2")}},
		{Name: "limits", Value: Map{
			{Key: Number("1"), Value: Bool(true)},
			{Key: Number("1"), Value: Bool(false)},
		}},
		{Name: "info", Value: Tuple{
			{Name: "createdAt", Value: Number("1700000000")},
			{Name: "flags", Value: Array{}},
		}},
		{Name: "empty", Value: Tuple{}},
	}

	parsed, err := Parse(walletSchema, SerializeTokens(value))
	require.NoError(t, err)
	assert.Equal(t, value, parsed)
}

func TestSerializeAddress(t *testing.T) {
	addr := NewAddressToken("0:b5e9240fc2d2f1ff8cbb1d1dee7fb7cae155e5f6320e585fcc685698994a19a5")
	assert.Equal(t, addr.String(), Serialize(addr))

	nested := Serialize(Tuple{
		{Name: "owners", Value: Array{addr}},
		{Name: "balances", Value: Map{{Key: addr, Value: Number("5")}}},
	})
	assert.Equal(t, map[string]any{
		"owners":   []any{addr.String()},
		"balances": []any{[]any{addr.String(), json.Number("5")}},
	}, nested)
}

func TestParseAddressRoundTrip(t *testing.T) {
	addr := NewAddressToken("0:1111111111111111111111111111111111111111111111111111111111111111")
	schema := []Param{{Name: "recipient", Type: "address"}}

	parsed, err := Parse(schema, SerializeTokens(Tuple{{Name: "recipient", Value: addr}}))
	require.NoError(t, err)

	recipient, ok := parsed.Get("recipient")
	require.True(t, ok)
	parsedAddr, ok := recipient.(AddressToken)
	require.True(t, ok)
	assert.True(t, addr.Address.Equals(parsedAddr.Address))
}

func TestParseWireJSON(t *testing.T) {
	wire := []byte(`{
		"owner": "0:aa",
		"holders": [{"wallet": "0:bb", "balance": "10"}],
		"allowances": [["0:cc", "1"], ["0:cc", "2"]]
	}`)
	decoder := json.NewDecoder(bytes.NewReader(wire))
	decoder.UseNumber()
	var raw map[string]any
	require.NoError(t, decoder.Decode(&raw))

	schema := []Param{
		{Name: "owner", Type: "address"},
		{Name: "holders", Type: "tuple[]", Components: []Param{
			{Name: "wallet", Type: "address"},
			{Name: "balance", Type: "uint128"},
		}},
		{Name: "allowances", Type: "map(address,uint128)"},
		{Name: "missing", Type: "uint32"},
	}

	parsed, err := Parse(schema, raw)
	require.NoError(t, err)

	assert.Equal(t, Tuple{
		{Name: "owner", Value: NewAddressToken("0:aa")},
		{Name: "holders", Value: Array{
			Tuple{
				{Name: "wallet", Value: NewAddressToken("0:bb")},
				{Name: "balance", Value: String("10")},
			},
		}},
		{Name: "allowances", Value: Map{
			{Key: NewAddressToken("0:cc"), Value: String("1")},
			{Key: NewAddressToken("0:cc"), Value: String("2")},
		}},
		{Name: "missing", Value: Undefined{}},
	}, parsed)
}

func TestParseJSONKeepsLargeNumbers(t *testing.T) {
	schema := []Param{
		{Name: "supply", Type: "uint256"},
		{Name: "balances", Type: "map(address,uint128)"},
	}

	parsed, err := ParseJSON(schema, []byte(`{"supply": 115792089237316195423570985008687907853269984665640564039457584007913129639935, "balances": [["0:aa", 18446744073709551617]]}`))
	require.NoError(t, err)
	assert.Equal(t, Tuple{
		{Name: "supply", Value: Number("115792089237316195423570985008687907853269984665640564039457584007913129639935")},
		{Name: "balances", Value: Map{{Key: NewAddressToken("0:aa"), Value: Number("18446744073709551617")}}},
	}, parsed)

	empty, err := ParseJSON(schema, nil)
	require.NoError(t, err)
	assert.Equal(t, Tuple{{Name: "supply", Value: Undefined{}}, {Name: "balances", Value: Undefined{}}}, empty)

	_, err = ParseJSON(schema, []byte(`[1, 2]`))
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestParseMalformedMapType(t *testing.T) {
	for _, typ := range []string{"map(uint32)", "map(uint32,bool", "map(uint32,(bool)", "map(uint32,bool,cell)"} {
		_, err := Parse([]Param{{Name: "m", Type: typ}}, map[string]any{"m": []any{}})
		assert.ErrorIs(t, err, ErrMalformedType, typ)
	}
}

func TestParseTypeMismatch(t *testing.T) {
	_, err := Parse([]Param{{Name: "ids", Type: "uint32[]"}}, map[string]any{"ids": "1"})
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = Parse([]Param{{Name: "m", Type: "map(uint32,bool)"}}, map[string]any{"m": []any{[]any{"1"}}})
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestSerializeTokensDropsUndefined(t *testing.T) {
	raw := SerializeTokens(Tuple{
		{Name: "a", Value: Bool(false)},
		{Name: "b", Value: Undefined{}},
	})
	assert.Equal(t, map[string]any{"a": false}, raw)
}

func TestFromNative(t *testing.T) {
	token, err := FromNative(map[string]any{
		"to":     common.NewAddress("0:dd"),
		"amount": 42,
		"flags":  []any{true, "x"},
	})
	require.NoError(t, err)
	assert.Equal(t, Tuple{
		{Name: "amount", Value: Number("42")},
		{Name: "flags", Value: Array{Bool(true), String("x")}},
		{Name: "to", Value: NewAddressToken("0:dd")},
	}, token)

	_, err = FromNative(3.5)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestNumberAccessors(t *testing.T) {
	n := Number("340282366920938463463374607431768211455")
	u, err := n.Uint256()
	require.NoError(t, err)
	assert.Equal(t, string(n), u.Dec())

	b, err := Number("0x10").BigInt()
	require.NoError(t, err)
	assert.Equal(t, int64(16), b.Int64())

	_, err = Number("abc").BigInt()
	assert.Error(t, err)
}
