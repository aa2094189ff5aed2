package custard

import (
	"io"

	"github.com/viant/afs"
	"github.com/viant/custard/service/dao"
	"github.com/viant/custard/service/event"
	"github.com/viant/custard/service/loader"
	"github.com/viant/custard/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type Option func(s *Service)

// WithConfig replaces the default configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithRegistry sets the loader registry crates attach their types to.
func WithRegistry(registry *loader.Registry) Option {
	return func(s *Service) {
		s.registry = registry
	}
}

// WithRecordDAO sets the task record store, overriding config.records.
func WithRecordDAO(records dao.Records) Option {
	return func(s *Service) {
		s.records = records
	}
}

func WithEventService(service *event.Service) Option {
	return func(s *Service) {
		s.events = service
	}
}

// WithFs sets the storage service used for manifests and fs records.
func WithFs(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithOutput prints one line per task transition to w.
func WithOutput(w io.Writer) Option {
	return func(s *Service) {
		s.output = w
	}
}

// WithTracing installs the stdout span exporter, writing to outputFile when
// it is not empty. The first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		s.config.Tracing = TracingConfig{Enabled: true, Service: serviceName, Version: serviceVersion, OutputFile: outputFile}
	}
}

// WithTracingExporter installs a custom span exporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
