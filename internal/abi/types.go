package abi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrMalformedType = errors.New("malformed ABI type")
	ErrTypeMismatch  = errors.New("value does not match ABI type")
)

// Param describes one typed ABI value. Components are only meaningful for tuples.
type Param struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Components []Param `json:"components,omitempty"`
}

type Kind int

const (
	KindInvalid Kind = iota
	KindUint
	KindInt
	KindVarUint
	KindVarInt
	KindBool
	KindTuple
	KindCell
	KindAddress
	KindBytes
	KindString
	KindGram
	KindTime
	KindExpire
	KindPubkey
	KindArray
	KindMap
)

var kindNames = map[Kind]string{
	KindUint:    "uint",
	KindInt:     "int",
	KindVarUint: "varuint",
	KindVarInt:  "varint",
	KindBool:    "bool",
	KindTuple:   "tuple",
	KindCell:    "cell",
	KindAddress: "address",
	KindBytes:   "bytes",
	KindString:  "string",
	KindGram:    "gram",
	KindTime:    "time",
	KindExpire:  "expire",
	KindPubkey:  "pubkey",
	KindArray:   "array",
	KindMap:     "map",
}

var simpleKinds = map[string]Kind{
	"bool":    KindBool,
	"tuple":   KindTuple,
	"cell":    KindCell,
	"address": KindAddress,
	"bytes":   KindBytes,
	"string":  KindString,
	"gram":    KindGram,
	"time":    KindTime,
	"expire":  KindExpire,
	"pubkey":  KindPubkey,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

// TypeDesc is the parsed form of an ABI type string.
type TypeDesc struct {
	Raw  string
	Kind Kind
	// Bits is the width of (var)integer kinds
	Bits  int
	Elem  *TypeDesc
	Key   *TypeDesc
	Value *TypeDesc
}

// IsScalar reports whether values of this type pass through the codec unchanged.
func (t TypeDesc) IsScalar() bool {
	switch t.Kind {
	case KindTuple, KindAddress, KindArray, KindMap:
		return false
	}
	return true
}

// Base strips every array modifier.
func (t TypeDesc) Base() TypeDesc {
	for t.Kind == KindArray {
		t = *t.Elem
	}
	return t
}

// ParseType validates an ABI type string such as "uint128", "tuple[]" or
// "map(address,uint256[])".
func ParseType(typ string) (TypeDesc, error) {
	desc, err := parseType(strings.TrimSpace(typ))
	if err != nil {
		return TypeDesc{}, fmt.Errorf("%w '%s': %v", ErrMalformedType, typ, err)
	}
	return desc, nil
}

func parseType(typ string) (TypeDesc, error) {
	if typ == "" {
		return TypeDesc{}, fmt.Errorf("empty type")
	}

	if strings.HasSuffix(typ, "[]") {
		elem, err := parseType(typ[:len(typ)-2])
		if err != nil {
			return TypeDesc{}, err
		}
		return TypeDesc{Raw: typ, Kind: KindArray, Elem: &elem}, nil
	}

	if strings.HasPrefix(typ, "map(") {
		if !strings.HasSuffix(typ, ")") {
			return TypeDesc{}, fmt.Errorf("map type is not closed")
		}
		inner := typ[len("map(") : len(typ)-1]
		if !balanced(inner) {
			return TypeDesc{}, fmt.Errorf("unbalanced parentheses in map type")
		}
		parts := splitParams(inner)
		if len(parts) != 2 {
			return TypeDesc{}, fmt.Errorf("map type needs exactly a key and a value type, got %d", len(parts))
		}
		key, err := parseType(parts[0])
		if err != nil {
			return TypeDesc{}, fmt.Errorf("map key: %v", err)
		}
		value, err := parseType(parts[1])
		if err != nil {
			return TypeDesc{}, fmt.Errorf("map value: %v", err)
		}
		return TypeDesc{Raw: typ, Kind: KindMap, Key: &key, Value: &value}, nil
	}

	if kind, ok := simpleKinds[typ]; ok {
		return TypeDesc{Raw: typ, Kind: kind}, nil
	}

	for _, prefix := range []struct {
		name    string
		kind    Kind
		maxBits int
	}{
		{"varuint", KindVarUint, 32},
		{"varint", KindVarInt, 32},
		{"uint", KindUint, 256},
		{"int", KindInt, 256},
	} {
		if !strings.HasPrefix(typ, prefix.name) {
			continue
		}
		bits, err := strconv.Atoi(typ[len(prefix.name):])
		if err != nil || bits <= 0 || bits > prefix.maxBits {
			return TypeDesc{}, fmt.Errorf("invalid %s width", prefix.name)
		}
		return TypeDesc{Raw: typ, Kind: prefix.kind, Bits: bits}, nil
	}

	return TypeDesc{}, fmt.Errorf("unknown kind")
}

func balanced(s string) bool {
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// Validate checks the type string of the param and of all its components.
func (p Param) Validate() error {
	desc, err := ParseType(p.Type)
	if err != nil {
		return err
	}
	if len(p.Components) > 0 && !containsTuple(desc) {
		return fmt.Errorf("%w '%s': components declared on a non tuple type", ErrMalformedType, p.Type)
	}
	for _, component := range p.Components {
		if err := component.Validate(); err != nil {
			return fmt.Errorf("component '%s': %w", component.Name, err)
		}
	}
	return nil
}

func containsTuple(desc TypeDesc) bool {
	switch desc.Kind {
	case KindTuple:
		return true
	case KindArray:
		return containsTuple(*desc.Elem)
	case KindMap:
		return containsTuple(*desc.Value)
	}
	return false
}
