package abi

import (
	"encoding/json"
	"fmt"
)

type Function struct {
	Name    string  `json:"name"`
	Inputs  []Param `json:"inputs"`
	Outputs []Param `json:"outputs"`
}

type Event struct {
	Name   string  `json:"name"`
	Inputs []Param `json:"inputs"`
}

// ContractAbi is the subset of a contract ABI needed to encode calls and
// decode their results. The rest of the document is kept untouched in Raw.
type ContractAbi struct {
	Version   string     `json:"version,omitempty"`
	Functions []Function `json:"functions"`
	Events    []Event    `json:"events"`
	Raw       string     `json:"-"`
}

func LoadContractAbi(data []byte) (*ContractAbi, error) {
	var contractAbi ContractAbi
	if err := json.Unmarshal(data, &contractAbi); err != nil {
		return nil, fmt.Errorf("failed to unmarshal contract abi: %w", err)
	}
	for _, function := range contractAbi.Functions {
		if err := validateParams(function.Inputs); err != nil {
			return nil, fmt.Errorf("function '%s' inputs: %w", function.Name, err)
		}
		if err := validateParams(function.Outputs); err != nil {
			return nil, fmt.Errorf("function '%s' outputs: %w", function.Name, err)
		}
	}
	for _, event := range contractAbi.Events {
		if err := validateParams(event.Inputs); err != nil {
			return nil, fmt.Errorf("event '%s': %w", event.Name, err)
		}
	}
	contractAbi.Raw = string(data)
	return &contractAbi, nil
}

func validateParams(params []Param) error {
	for _, param := range params {
		if err := param.Validate(); err != nil {
			return fmt.Errorf("param '%s': %w", param.Name, err)
		}
	}
	return nil
}

func (c *ContractAbi) Function(name string) (*Function, bool) {
	for i := range c.Functions {
		if c.Functions[i].Name == name {
			return &c.Functions[i], true
		}
	}
	return nil, false
}

func (c *ContractAbi) Event(name string) (*Event, bool) {
	for i := range c.Events {
		if c.Events[i].Name == name {
			return &c.Events[i], true
		}
	}
	return nil, false
}
