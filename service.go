package custard

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/viant/afs"
	"github.com/viant/custard/model/manifest"
	"github.com/viant/custard/pkg/log"
	"github.com/viant/custard/service/dao"
	recfs "github.com/viant/custard/service/dao/record/fs"
	recmemory "github.com/viant/custard/service/dao/record/memory"
	"github.com/viant/custard/service/event"
	"github.com/viant/custard/service/loader"
	"github.com/viant/custard/service/messaging/memory"
	"github.com/viant/custard/service/supervisor"
	"github.com/viant/custard/tracing"
)

// Version of the host.
const Version = "0.1.0"

// Service is the host facade: it owns the loader registry crates attach to
// and builds runtimes from configuration.
type Service struct {
	config    *Config
	registry  *loader.Registry
	records   dao.Records
	events    *event.Service
	fs        afs.Service
	output    io.Writer
	manifests *manifest.Service
}

func New(options ...Option) *Service {
	ret := &Service{config: DefaultConfig()}
	for _, option := range options {
		option(ret)
	}
	if ret.registry == nil {
		ret.registry = loader.New()
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	ret.manifests = manifest.New(ret.fs)
	return ret
}

// Registry returns the registry crates attach their types to.
func (s *Service) Registry() *loader.Registry { return s.registry }

// Config returns the active configuration.
func (s *Service) Config() *Config { return s.config }

// LoadManifest loads the manifest at URL and merges its config section over
// the active configuration.
func (s *Service) LoadManifest(ctx context.Context, URL string) (*manifest.Manifest, error) {
	ret, err := s.manifests.Load(ctx, URL)
	if err != nil {
		return nil, err
	}
	if err = s.config.merge(&ret.Config); err != nil {
		return nil, fmt.Errorf("manifest %v: invalid config: %w", URL, err)
	}
	if err = s.config.Validate(); err != nil {
		return nil, fmt.Errorf("manifest %v: %w", URL, err)
	}
	return ret, nil
}

// NewRuntime builds a runtime from the active configuration.
func (s *Service) NewRuntime(ctx context.Context) (*Runtime, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	if s.config.Tracing.Enabled {
		if err := tracing.Init(s.config.Tracing.Service, s.config.Tracing.Version, s.config.Tracing.OutputFile); err != nil {
			return nil, fmt.Errorf("failed to init tracing: %w", err)
		}
	}
	records, err := s.recordDAO(ctx)
	if err != nil {
		return nil, err
	}
	events := s.events
	if events == nil && s.output != nil {
		if events, err = event.New(memory.Vendor); err != nil {
			return nil, err
		}
	}
	if events != nil && s.output != nil {
		out := s.output
		if err = event.SetListenerOf[supervisor.Transition](events, func(e *event.Event[supervisor.Transition]) {
			printTransition(out, e)
		}); err != nil {
			return nil, err
		}
	}

	cfg := s.config.Supervisor
	options := []supervisor.Option{
		supervisor.WithDispatchers(cfg.Dispatchers),
		supervisor.WithCycleInterval(cfg.CycleInterval),
		supervisor.WithCycleTimeout(cfg.CycleTimeout),
		supervisor.WithShutdownTimeout(cfg.ShutdownTimeout),
		supervisor.WithRecords(records),
	}
	if events != nil {
		options = append(options, supervisor.WithEvents(events))
	}
	return &Runtime{
		registry:   s.registry,
		supervisor: supervisor.New(s.registry, options...),
		events:     events,
	}, nil
}

func (s *Service) recordDAO(ctx context.Context) (dao.Records, error) {
	if s.records != nil {
		return s.records, nil
	}
	switch s.config.Records.Vendor {
	case RecordsFs:
		ret, err := recfs.New(ctx, s.fs, s.config.Records.BaseURL)
		if err != nil {
			return nil, err
		}
		return ret, nil
	}
	return recmemory.New(), nil
}

func printTransition(w io.Writer, e *event.Event[supervisor.Transition]) {
	from := e.Data.From
	if from == "" {
		from = "new"
	}
	line := fmt.Sprintf("%v/%v: %v -> %v", e.Context.Crate, e.Context.Task, from, e.Data.To)
	if e.Data.Error != "" {
		line += " (" + e.Data.Error + ")"
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		slog.Warn("Failed to print transition", log.Error(err))
	}
}
