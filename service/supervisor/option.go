package supervisor

import (
	"time"

	"github.com/viant/custard/progress"
	"github.com/viant/custard/service/dao"
	"github.com/viant/custard/service/datachunk"
	"github.com/viant/custard/service/event"
)

type Option func(s *Service)

// WithDispatchers sets the number of outcome dispatcher workers.
func WithDispatchers(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.dispatcherCount = count
		}
	}
}

// WithCycleTimeout cancels the context of any cycle running longer than
// timeout. Zero disables it.
func WithCycleTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		s.cycleTimeout = timeout
	}
}

// WithCycleInterval pauses a runner between continuing cycles.
func WithCycleInterval(interval time.Duration) Option {
	return func(s *Service) {
		s.cycleInterval = interval
	}
}

// WithShutdownTimeout bounds Shutdown.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		s.shutdownTimeout = timeout
	}
}

func WithStore(store *datachunk.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

func WithRecords(records dao.Records) Option {
	return func(s *Service) {
		s.records = records
	}
}

func WithEvents(events *event.Service) Option {
	return func(s *Service) {
		s.events = events
	}
}

func WithProgress(p *progress.Progress) Option {
	return func(s *Service) {
		s.progress = p
	}
}
