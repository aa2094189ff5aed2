package supervisor

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/viant/custard/internal/idgen"
	"github.com/viant/custard/internal/lock"
	"github.com/viant/custard/model/flow"
	"github.com/viant/custard/model/record"
	"github.com/viant/custard/model/task"
	"github.com/viant/custard/pkg/log"
	"github.com/viant/custard/progress"
	"github.com/viant/custard/tracing"
)

// runTask is the per-task loop. Notices and pending actions are handled only
// between cycles; an outcome blocks the loop until dispatchers scheduled its
// effects.
func (s *Service) runTask(ctx context.Context, e *entry) {
	defer s.runners.Done()
	defer close(e.exited)
	for {
		if ctx.Err() != nil {
			s.apply(context.Background(), e, flow.ActionStop)
			return
		}
		s.relay(e)
		if action := e.takePending(); action != flow.ActionNone {
			if s.apply(ctx, e, action) {
				return
			}
			continue
		}
		outcome := s.runCycle(ctx, e)
		if outcome.IsContinue() {
			s.pause(ctx, e)
			continue
		}
		done := make(chan struct{})
		msg := &Outcome{Origin: e.name(), RunID: e.snapshot().RunID, ControlFlow: outcome, done: done}
		if err := s.queue.Publish(ctx, msg); err != nil {
			if ctx.Err() == nil {
				slog.Error("Failed to publish outcome", log.Task(e.name()), log.Outcome(outcome), log.Error(err))
				e.schedule(flow.ActionStop)
			}
			continue
		}
		select {
		case <-done:
		case <-ctx.Done():
		}
	}
}

// relay hands queued outcomes of other tasks to the instance and schedules
// the follow-up action of every one it answers true to.
func (s *Service) relay(e *entry) {
	for _, n := range e.takeNotices() {
		if e.notify(n.origin, n.outcome) {
			action := n.outcome.Follow()
			slog.Debug("Task follows outcome", log.Task(e.name()), slog.String("origin", n.origin.String()), log.Action(action))
			e.schedule(action)
		}
	}
}

func (s *Service) runCycle(ctx context.Context, e *entry) (outcome flow.ControlFlow) {
	e.run.Lock()
	defer e.run.Unlock()
	if s.cycleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cycleTimeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			outcome = flow.Err(&lock.Fault{Value: r, Stack: debug.Stack()})
		}
		e.update(func(r *record.Record) { r.Cycles++ })
		s.progress.Update(progress.Delta{Cycles: 1})
	}()
	return e.currentCycle()(ctx)
}

func (s *Service) pause(ctx context.Context, e *entry) {
	if s.cycleInterval <= 0 {
		return
	}
	timer := time.NewTimer(s.cycleInterval)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-e.wake:
	case <-ctx.Done():
	}
}

// apply performs action under the task's run lock and reports whether the
// task left the supervisor.
func (s *Service) apply(ctx context.Context, e *entry, action flow.Action) bool {
	e.run.Lock()
	defer e.run.Unlock()
	switch action {
	case flow.ActionReload:
		return !s.reload(ctx, e)
	case flow.ActionStop:
		s.stop(ctx, e)
		return true
	}
	return false
}

// reload retires the instance and rebuilds it from its spec. A task that
// cannot be rebuilt is faulted and removed; its teardown has already run.
func (s *Service) reload(ctx context.Context, e *entry) bool {
	ctx, span := tracing.StartTaskSpan(ctx, "supervisor.reload", e.name())
	span.WithAttributes(map[string]string{"type": e.spec.Type})

	e.retire()
	reloading := e.update(func(r *record.Record) { r.State = record.StateReloading })
	s.persist(ctx, reloading)
	s.publish(ctx, reloading, record.StateRunning)

	instance, err := s.constructor.ConstructTask(e.spec.Type, e.spec.Config)
	if err == nil {
		var cycle task.Cycle
		if cycle, err = start(instance, s.access(e.spec)); err == nil {
			e.replace(instance, cycle)
		} else {
			instance.Retire(e.name())
		}
	}
	if err != nil {
		err = &TaskError{Name: e.name(), Err: fmt.Errorf("failed to reconstruct: %w", err)}
		s.fault(err)
		e.fail(err)
		tracing.EndSpan(span, err)
		s.stop(ctx, e)
		return false
	}

	running := e.update(func(r *record.Record) {
		r.State = record.StateRunning
		r.RunID = idgen.New()
		r.Reloads++
	})
	s.progress.Update(progress.Delta{Reloads: 1})
	s.persist(ctx, running)
	s.publish(ctx, running, record.StateReloading)
	tracing.EndSpan(span, nil)
	slog.Info("Task reloaded", log.Task(e.name()), slog.Int("reloads", running.Reloads))
	return true
}

// stop retires the instance and removes the task.
func (s *Service) stop(ctx context.Context, e *entry) {
	from := e.snapshot().State
	e.retire()
	s.remove(e)

	cause := e.failure()
	delta := progress.Delta{Live: -1, Stopped: 1}
	final := e.update(func(r *record.Record) {
		r.State = record.StateStopped
		if cause != nil {
			r.State = record.StateFaulted
			r.Error = cause.Error()
		}
	})
	if cause != nil {
		delta = progress.Delta{Live: -1, Faulted: 1}
	}
	s.progress.Update(delta)
	s.persist(ctx, final)
	s.publish(ctx, final, from)
	if cause != nil {
		slog.Error("Task faulted", log.Task(e.name()), log.Error(cause))
		return
	}
	slog.Info("Task stopped", log.Task(e.name()))
}
