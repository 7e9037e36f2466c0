package abi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Serialize converts a token into its wire form. Addresses become plain
// strings, tuples become objects, maps become a list of [key, value] pairs.
func Serialize(value Token) any {
	switch v := value.(type) {
	case nil, Undefined:
		return nil
	case Bool:
		return bool(v)
	case String:
		return string(v)
	case Number:
		return json.Number(v)
	case AddressToken:
		return v.String()
	case Tuple:
		return SerializeTokens(v)
	case Array:
		result := make([]any, 0, len(v))
		for _, item := range v {
			result = append(result, Serialize(item))
		}
		return result
	case Map:
		result := make([]any, 0, len(v))
		for _, pair := range v {
			result = append(result, []any{Serialize(pair.Key), Serialize(pair.Value)})
		}
		return result
	}
	return value
}

// SerializeTokens converts a tokens object into a raw object. Undefined fields are dropped.
func SerializeTokens(tokens Tuple) map[string]any {
	result := make(map[string]any, len(tokens))
	for _, field := range tokens {
		if _, ok := field.Value.(Undefined); ok {
			continue
		}
		result[field.Name] = Serialize(field.Value)
	}
	return result
}

// Parse reads the raw fields named by schema. A field missing from raw is
// Undefined rather than an error.
func Parse(schema []Param, raw map[string]any) (Tuple, error) {
	result := make(Tuple, 0, len(schema))
	for _, param := range schema {
		rawValue, ok := raw[param.Name]
		if !ok {
			result = append(result, Field{Name: param.Name, Value: Undefined{}})
			continue
		}
		value, err := ParseValue(param, rawValue)
		if err != nil {
			return nil, fmt.Errorf("failed to parse '%s': %w", param.Name, err)
		}
		result = append(result, Field{Name: param.Name, Value: value})
	}
	return result, nil
}

// ParseJSON decodes a wire object keeping numbers as json.Number and parses
// it against schema. Empty or null data parses as an object with no fields.
func ParseJSON(schema []Param, data []byte) (Tuple, error) {
	var raw map[string]any
	if len(bytes.TrimSpace(data)) > 0 {
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		if err := decoder.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
	}
	return Parse(schema, raw)
}

// ParseValue parses a single raw value, driven by the param type.
func ParseValue(param Param, raw any) (Token, error) {
	desc, err := ParseType(param.Type)
	if err != nil {
		return nil, err
	}
	return parseToken(desc, param.Components, raw)
}

func parseToken(desc TypeDesc, components []Param, raw any) (Token, error) {
	switch desc.Kind {
	case KindArray:
		items, ok := raw.([]any)
		if !ok {
			return nil, mismatch(desc, raw)
		}
		result := make(Array, 0, len(items))
		for i, item := range items {
			value, err := parseToken(*desc.Elem, components, item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			result = append(result, value)
		}
		return result, nil

	case KindTuple:
		if len(components) == 0 {
			return Tuple{}, nil
		}
		object, ok := raw.(map[string]any)
		if !ok {
			return nil, mismatch(desc, raw)
		}
		return Parse(components, object)

	case KindAddress:
		s, ok := raw.(string)
		if !ok {
			return nil, mismatch(desc, raw)
		}
		return NewAddressToken(s), nil

	case KindMap:
		items, ok := raw.([]any)
		if !ok {
			return nil, mismatch(desc, raw)
		}
		// value components only matter when the map holds tuples
		var valueComponents []Param
		if desc.Value.Base().Kind == KindTuple {
			valueComponents = components
		}
		result := make(Map, 0, len(items))
		for i, item := range items {
			key, value, err := pairOf(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			keyToken, err := parseToken(*desc.Key, nil, key)
			if err != nil {
				return nil, fmt.Errorf("[%d] key: %w", i, err)
			}
			valueToken, err := parseToken(*desc.Value, valueComponents, value)
			if err != nil {
				return nil, fmt.Errorf("[%d] value: %w", i, err)
			}
			result = append(result, Pair{Key: keyToken, Value: valueToken})
		}
		return result, nil
	}

	return scalar(desc, raw)
}

func pairOf(item any) (any, any, error) {
	switch pair := item.(type) {
	case []any:
		if len(pair) == 2 {
			return pair[0], pair[1], nil
		}
	case [2]any:
		return pair[0], pair[1], nil
	}
	return nil, nil, fmt.Errorf("%w: map entry must be a [key, value] pair", ErrTypeMismatch)
}

func scalar(desc TypeDesc, raw any) (Token, error) {
	switch v := raw.(type) {
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case json.Number:
		return Number(v), nil
	case float64:
		return Number(strconv.FormatFloat(v, 'f', -1, 64)), nil
	case int:
		return Number(strconv.Itoa(v)), nil
	case int64:
		return Number(strconv.FormatInt(v, 10)), nil
	case uint64:
		return Number(strconv.FormatUint(v, 10)), nil
	case Token:
		return v, nil
	}
	return nil, mismatch(desc, raw)
}

func mismatch(desc TypeDesc, raw any) error {
	return fmt.Errorf("%w: expected %s, got %T", ErrTypeMismatch, desc.Raw, raw)
}
