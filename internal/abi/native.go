package abi

import (
	"fmt"
	"math/big"
	"sort"
	"strconv"

	"github.com/holiman/uint256"
	"github.com/thirdweb-dev/walletbridge/internal/common"
)

// FromNative builds a token from plain Go values. Object keys are sorted
// since Go maps carry no order; build a Tuple directly when order matters.
func FromNative(value any) (Token, error) {
	switch v := value.(type) {
	case Token:
		return v, nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case int:
		return Number(strconv.Itoa(v)), nil
	case int32:
		return Number(strconv.FormatInt(int64(v), 10)), nil
	case int64:
		return Number(strconv.FormatInt(v, 10)), nil
	case uint32:
		return Number(strconv.FormatUint(uint64(v), 10)), nil
	case uint64:
		return Number(strconv.FormatUint(v, 10)), nil
	case *big.Int:
		if v == nil {
			return nil, fmt.Errorf("nil big.Int")
		}
		return Number(v.String()), nil
	case *uint256.Int:
		if v == nil {
			return nil, fmt.Errorf("nil uint256")
		}
		return Number(v.Dec()), nil
	case common.Address:
		return AddressToken{Address: v}, nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		tuple := make(Tuple, 0, len(keys))
		for _, key := range keys {
			token, err := FromNative(v[key])
			if err != nil {
				return nil, fmt.Errorf("field '%s': %w", key, err)
			}
			tuple = append(tuple, Field{Name: key, Value: token})
		}
		return tuple, nil
	case []any:
		array := make(Array, 0, len(v))
		for i, item := range v {
			token, err := FromNative(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			array = append(array, token)
		}
		return array, nil
	}
	return nil, fmt.Errorf("%w: unsupported native value %T", ErrTypeMismatch, value)
}
