package common

import (
	"encoding/json"
)

// Address identifies an account. It is an immutable value: two addresses are
// equal iff their canonical strings are equal.
type Address struct {
	value string
}

func NewAddress(value string) Address {
	return Address{value: value}
}

func (a Address) String() string {
	return a.value
}

func (a Address) Equals(other Address) bool {
	return a.value == other.value
}

func (a Address) IsZero() bool {
	return a.value == ""
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.value)
}

func (a *Address) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	a.value = value
	return nil
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.value), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	a.value = string(text)
	return nil
}
