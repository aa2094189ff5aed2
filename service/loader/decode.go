package loader

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// decode fills record from config. YAML input is decoded strictly so unknown
// fields fail construction instead of being dropped; anything else goes
// through the structology converter.
func (r *Registry) decode(config any, record any) error {
	switch actual := config.(type) {
	case nil:
		return nil
	case *yaml.Node:
		if actual.Kind == 0 {
			return nil
		}
		data, err := yaml.Marshal(actual)
		if err != nil {
			return err
		}
		return decodeYAML(data, record)
	case yaml.Node:
		return r.decode(&actual, record)
	case []byte:
		return decodeYAML(actual, record)
	case string:
		return decodeYAML([]byte(actual), record)
	}
	return r.converter.Convert(config, record)
}

func decodeYAML(data []byte, record any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(record); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
