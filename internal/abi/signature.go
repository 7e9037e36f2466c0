package abi

import (
	"fmt"
	"regexp"
	"strings"
)

var signatureRegex = regexp.MustCompile(`^(\w+)\((.*)\)$`)

// ParseFunctionSignature builds a function description from a signature like
// "transfer(address to, uint128 amount, (uint32 a, bool b) opts)".
func ParseFunctionSignature(signature string) (*Function, error) {
	matches := signatureRegex.FindStringSubmatch(strings.TrimSpace(signature))
	if len(matches) != 3 {
		return nil, fmt.Errorf("invalid function signature format")
	}

	inputs, err := ParseParams(matches[2])
	if err != nil {
		return nil, fmt.Errorf("failed to parse params '%s': %w", matches[2], err)
	}

	return &Function{Name: matches[1], Inputs: inputs}, nil
}

// ParseParams parses a comma separated parameter list. Unnamed params are
// named after their position.
func ParseParams(params string) ([]Param, error) {
	paramList := splitParams(strings.TrimSpace(params))
	result := make([]Param, 0, len(paramList))
	for idx, param := range paramList {
		parsed, err := parseParam(param, fmt.Sprintf("value%d", idx))
		if err != nil {
			return nil, fmt.Errorf("failed to parse param '%s': %w", param, err)
		}
		result = append(result, parsed)
	}
	return result, nil
}

/**
 * Splits a string of parameters into a list of parameters
 */
func splitParams(params string) []string {
	var result []string
	depth := 0
	current := ""
	for _, r := range params {
		switch r {
		case ',':
			if depth == 0 {
				result = append(result, strings.TrimSpace(current))
				current = ""
				continue
			}
		case '(':
			depth++
		case ')':
			depth--
		}
		current += string(r)
	}
	if strings.TrimSpace(current) != "" {
		result = append(result, strings.TrimSpace(current))
	}
	return result
}

func parseParam(param string, fallbackName string) (Param, error) {
	name, paramType, err := getParamNameAndType(param, fallbackName)
	if err != nil {
		return Param{}, err
	}
	if !isTuple(paramType) {
		if _, err := ParseType(paramType); err != nil {
			return Param{}, err
		}
		return Param{Name: name, Type: paramType}, nil
	}

	typ := "tuple"
	inner := strings.TrimPrefix(paramType, "(")
	if strings.HasSuffix(inner, "[]") {
		inner = strings.TrimSuffix(inner, "[]")
		typ = "tuple[]"
	}
	inner = strings.TrimSuffix(inner, ")")

	components, err := ParseParams(inner)
	if err != nil {
		return Param{}, fmt.Errorf("failed to parse tuple: %w", err)
	}
	return Param{Name: name, Type: typ, Components: components}, nil
}

func getParamNameAndType(param string, fallbackName string) (name string, paramType string, err error) {
	if isTuple(param) {
		lastParenIndex := strings.LastIndex(param, ")")
		if lastParenIndex == -1 {
			return "", "", fmt.Errorf("%w: invalid tuple format", ErrMalformedType)
		}
		if len(param)-1 == lastParenIndex {
			return fallbackName, param, nil
		}
		paramsEndIdx := lastParenIndex + 1
		if strings.HasPrefix(param[paramsEndIdx:], "[]") {
			paramsEndIdx = lastParenIndex + 3
		}
		name := strings.TrimSpace(param[paramsEndIdx:])
		if name == "" {
			name = fallbackName
		}
		return name, param[:paramsEndIdx], nil
	}
	tokens := strings.Fields(param)
	if len(tokens) == 0 {
		return "", "", fmt.Errorf("%w: empty param", ErrMalformedType)
	}
	if len(tokens) == 1 {
		return fallbackName, tokens[0], nil
	}
	return tokens[len(tokens)-1], strings.Join(tokens[:len(tokens)-1], ""), nil
}

func isTuple(param string) bool {
	return strings.HasPrefix(param, "(")
}
