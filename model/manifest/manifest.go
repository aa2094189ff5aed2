package manifest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/viant/afs"
	"github.com/viant/custard/model/identity"
	"gopkg.in/yaml.v3"
)

var ErrInvalidManifest = errors.New("invalid manifest")

// Manifest describes the crates a host brings up: their datachunks and
// tasks, each with a type name and a raw config record.
type Manifest struct {
	// Config is host configuration, decoded by the host itself.
	Config yaml.Node `yaml:"config,omitempty"`
	Crates []*Crate  `yaml:"crates"`
}

type Crate struct {
	Name       identity.CrateName `yaml:"name"`
	Datachunks []*Datachunk       `yaml:"datachunks,omitempty"`
	Tasks      []*Task            `yaml:"tasks,omitempty"`
}

type Datachunk struct {
	Name   identity.DatachunkName `yaml:"name"`
	Type   string                 `yaml:"type"`
	Config yaml.Node              `yaml:"config,omitempty"`
}

type Task struct {
	Name       identity.TaskName `yaml:"name"`
	Type       string            `yaml:"type"`
	Datachunks bool              `yaml:"datachunks,omitempty"`
	Config     yaml.Node         `yaml:"config,omitempty"`
}

// FullName returns the task address within crate.
func (t *Task) FullName(crate identity.CrateName) identity.FullTaskName {
	return identity.FullTaskName{Crate: crate, Task: t.Name}
}

// FullName returns the datachunk address within crate.
func (d *Datachunk) FullName(crate identity.CrateName) identity.FullDatachunkName {
	return identity.FullDatachunkName{Crate: crate, Datachunk: d.Name}
}

// Validate checks names and uniqueness.
func (m *Manifest) Validate() error {
	crates := map[identity.CrateName]bool{}
	for i, crate := range m.Crates {
		if crate == nil {
			return fmt.Errorf("%w: crates[%d] is empty", ErrInvalidManifest, i)
		}
		if _, err := identity.NewCrateName(string(crate.Name)); err != nil {
			return fmt.Errorf("%w: crates[%d]: %v", ErrInvalidManifest, i, err)
		}
		if crates[crate.Name] {
			return fmt.Errorf("%w: duplicate crate %q", ErrInvalidManifest, crate.Name)
		}
		crates[crate.Name] = true
		if err := crate.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Crate) validate() error {
	chunks := map[identity.DatachunkName]bool{}
	for i, chunk := range c.Datachunks {
		if chunk == nil {
			return fmt.Errorf("%w: %v: datachunks[%d] is empty", ErrInvalidManifest, c.Name, i)
		}
		if _, err := identity.NewDatachunkName(string(chunk.Name)); err != nil {
			return fmt.Errorf("%w: %v: datachunks[%d]: %v", ErrInvalidManifest, c.Name, i, err)
		}
		if chunk.Type == "" {
			return fmt.Errorf("%w: %v: datachunk type is required", ErrInvalidManifest, chunk.FullName(c.Name))
		}
		if chunks[chunk.Name] {
			return fmt.Errorf("%w: duplicate datachunk %v", ErrInvalidManifest, chunk.FullName(c.Name))
		}
		chunks[chunk.Name] = true
	}
	tasks := map[identity.TaskName]bool{}
	for i, aTask := range c.Tasks {
		if aTask == nil {
			return fmt.Errorf("%w: %v: tasks[%d] is empty", ErrInvalidManifest, c.Name, i)
		}
		if _, err := identity.NewTaskName(string(aTask.Name)); err != nil {
			return fmt.Errorf("%w: %v: tasks[%d]: %v", ErrInvalidManifest, c.Name, i, err)
		}
		if aTask.Type == "" {
			return fmt.Errorf("%w: %v: task type is required", ErrInvalidManifest, aTask.FullName(c.Name))
		}
		if tasks[aTask.Name] {
			return fmt.Errorf("%w: duplicate task %v", ErrInvalidManifest, aTask.FullName(c.Name))
		}
		tasks[aTask.Name] = true
	}
	return nil
}

// Parse expands ${env.KEY} references, strictly decodes data and validates
// the result.
func Parse(data []byte) (*Manifest, error) {
	decoder := yaml.NewDecoder(bytes.NewReader([]byte(ExpandEnv(string(data)))))
	decoder.KnownFields(true)
	ret := &Manifest{}
	if err := decoder.Decode(ret); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

// Service loads manifests from any afs supported URL.
type Service struct {
	fs afs.Service
}

func New(fs afs.Service) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs}
}

// Load downloads and parses the manifest at URL.
func (s *Service) Load(ctx context.Context, URL string) (*Manifest, error) {
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest %v: %w", URL, err)
	}
	ret, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("manifest %v: %w", URL, err)
	}
	return ret, nil
}
