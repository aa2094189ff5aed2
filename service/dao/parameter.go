package dao

import "github.com/viant/custard/model/record"

// Parameter narrows a List call; see criteria.Match for supported names.
type Parameter struct {
	Name  string
	Value interface{}
}

func NewParameter(name string, values ...string) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}

// WithState filters records by any of the supplied states.
func WithState(states ...record.State) *Parameter {
	values := make([]string, len(states))
	for i, state := range states {
		values[i] = string(state)
	}
	return &Parameter{Name: "State", Value: values}
}

// WithCrate filters records by crate.
func WithCrate(crate string) *Parameter {
	return NewParameter("Crate", crate)
}
