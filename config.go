package custard

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	RecordsMemory = "memory"
	RecordsFs     = "fs"
)

// Config is the serialisable host configuration. It is usually supplied by
// the config section of a manifest.
type Config struct {
	Supervisor SupervisorConfig `json:"supervisor" yaml:"supervisor"`
	Records    RecordsConfig    `json:"records" yaml:"records"`
	Tracing    TracingConfig    `json:"tracing" yaml:"tracing"`
}

type SupervisorConfig struct {
	Dispatchers     int           `json:"dispatchers" yaml:"dispatchers"`
	CycleInterval   time.Duration `json:"cycleInterval" yaml:"cycleInterval"`
	CycleTimeout    time.Duration `json:"cycleTimeout" yaml:"cycleTimeout"`
	ShutdownTimeout time.Duration `json:"shutdownTimeout" yaml:"shutdownTimeout"`
}

// RecordsConfig selects where task records are kept.
type RecordsConfig struct {
	Vendor  string `json:"vendor" yaml:"vendor"`
	BaseURL string `json:"baseURL,omitempty" yaml:"baseURL,omitempty"`
}

type TracingConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	Service    string `json:"service" yaml:"service"`
	Version    string `json:"version" yaml:"version"`
	OutputFile string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"`
}

// DefaultConfig returns the host defaults. Callers may modify the result
// before passing it to WithConfig.
func DefaultConfig() *Config {
	return &Config{
		Supervisor: SupervisorConfig{
			Dispatchers:     1,
			CycleInterval:   100 * time.Millisecond,
			ShutdownTimeout: 5 * time.Second,
		},
		Records: RecordsConfig{Vendor: RecordsMemory},
		Tracing: TracingConfig{Service: "custard", Version: Version},
	}
}

// Validate returns an aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Supervisor.Dispatchers <= 0 {
		errs = append(errs, fmt.Errorf("supervisor.dispatchers must be > 0"))
	}
	if c.Supervisor.CycleInterval < 0 || c.Supervisor.CycleTimeout < 0 || c.Supervisor.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("supervisor durations must not be negative"))
	}
	switch c.Records.Vendor {
	case RecordsMemory:
	case RecordsFs:
		if c.Records.BaseURL == "" {
			errs = append(errs, fmt.Errorf("records.baseURL is required for %v records", RecordsFs))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported records.vendor: %q", c.Records.Vendor))
	}
	return errors.Join(errs...)
}

// merge decodes node strictly over c; fields absent from node keep their
// current values.
func (c *Config) merge(node *yaml.Node) error {
	if node == nil || node.Kind == 0 {
		return nil
	}
	data, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err = decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
