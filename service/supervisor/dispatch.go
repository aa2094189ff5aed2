package supervisor

import (
	"context"
	"log/slog"

	"github.com/viant/custard/model/flow"
	"github.com/viant/custard/model/record"
	"github.com/viant/custard/pkg/log"
	"github.com/viant/custard/tracing"
)

func (s *Service) dispatch(ctx context.Context) {
	defer s.workers.Done()
	for {
		msg, err := s.queue.Consume(ctx)
		if err != nil {
			return
		}
		outcome := msg.T()
		s.handle(ctx, outcome)
		_ = msg.Ack()
		if outcome.done != nil {
			close(outcome.done)
		}
	}
}

// handle records the outcome, schedules the actions in its scope and queues
// a notice for every other live task. Tasks answering a notice with true
// schedule the follow-up action themselves, so a task blocked in a long
// cycle never holds up dispatch.
func (s *Service) handle(ctx context.Context, outcome *Outcome) {
	origin, cf := outcome.Origin, outcome.ControlFlow
	_, span := tracing.StartTaskSpan(ctx, "supervisor.dispatch", origin)
	span.WithAttributes(map[string]string{"outcome": cf.String()})
	slog.Info("Task outcome", log.Task(origin), log.Outcome(cf))

	if e := s.entry(origin); e != nil {
		e.update(func(r *record.Record) { r.Outcome = cf.String() })
		if cf.Kind == flow.KindErr {
			err := &TaskError{Name: origin, Err: cf.Err}
			s.fault(err)
			e.fail(err)
		}
	}
	for _, e := range s.live() {
		e.schedule(cf.Scope(origin, e.name()))
		if e.name() != origin {
			e.deliver(notice{origin: origin, outcome: cf})
		}
	}
	if cf.Kind == flow.KindStopAll {
		s.halt()
	}
	tracing.EndSpan(span, cf.Err)
}
