package criteria

import (
	"github.com/viant/custard/model/record"
	"github.com/viant/custard/service/dao"
)

// Match reports whether aRecord satisfies every parameter. Supported names are
// State, Crate and Type; values may be a string or a []string.
func Match(aRecord *record.Record, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		var actual string
		switch parameter.Name {
		case "State":
			actual = string(aRecord.State)
		case "Crate":
			actual = aRecord.Crate
		case "Type":
			actual = aRecord.Type
		default:
			continue
		}
		if !matches(actual, parameter.Value) {
			return false
		}
	}
	return true
}

func matches(actual string, value interface{}) bool {
	switch expected := value.(type) {
	case string:
		return actual == expected
	case []string:
		for _, candidate := range expected {
			if actual == candidate {
				return true
			}
		}
		return false
	}
	return true
}
