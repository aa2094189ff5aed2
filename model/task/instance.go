package task

import (
	"context"
	"log/slog"
	"sync"

	"github.com/viant/custard/internal/lock"
	"github.com/viant/custard/model/flow"
	"github.com/viant/custard/model/identity"
	"github.com/viant/custard/pkg/log"
)

// Split adapts split-style behaviour and one instance's data.
func Split[D any](impl Impl[D], data D) Instance {
	return &split[D]{impl: impl, state: lock.New(data)}
}

// Merged adapts a merged-style task.
func Merged(t Taskable) Instance {
	return &merged{state: lock.New(t)}
}

type split[D any] struct {
	impl   Impl[D]
	state  *lock.Lock[D]
	retire sync.Once
}

func (s *split[D]) Start(access Access) Cycle {
	cycle := s.impl.Run(access)
	return func(ctx context.Context) flow.ControlFlow {
		var ret flow.ControlFlow
		err := s.state.Update(func(data *D) {
			ret = cycle(ctx, data)
		})
		if err != nil {
			return flow.Err(err)
		}
		return ret
	}
}

func (s *split[D]) Notify(this, other identity.FullTaskName, outcome flow.ControlFlow) bool {
	var ret bool
	if err := s.state.Update(func(data *D) {
		ret = s.impl.HandleControlFlowUpdate(data, this, other, outcome)
	}); err != nil {
		return false
	}
	return ret
}

func (s *split[D]) Retire(name identity.FullTaskName) {
	s.retire.Do(func() {
		if err := s.state.Update(func(data *D) {
			s.impl.Retire(data, name)
		}); err != nil {
			slog.Warn("Failed to retire task", log.Task(name), log.Error(err))
		}
	})
}

func (s *split[D]) Faults() int { return s.state.Faults() }

type merged struct {
	state  *lock.Lock[Taskable]
	retire sync.Once
}

func (m *merged) Start(access Access) Cycle {
	var cycle func(ctx context.Context) flow.ControlFlow
	if err := m.state.Update(func(t *Taskable) {
		cycle = (*t).Run(access)
	}); err != nil {
		return func(context.Context) flow.ControlFlow { return flow.Err(err) }
	}
	return func(ctx context.Context) flow.ControlFlow {
		var ret flow.ControlFlow
		err := m.state.Update(func(*Taskable) {
			ret = cycle(ctx)
		})
		if err != nil {
			return flow.Err(err)
		}
		return ret
	}
}

func (m *merged) Notify(this, other identity.FullTaskName, outcome flow.ControlFlow) bool {
	var ret bool
	if err := m.state.Update(func(t *Taskable) {
		ret = (*t).HandleControlFlowUpdate(this, other, outcome)
	}); err != nil {
		return false
	}
	return ret
}

func (m *merged) Retire(name identity.FullTaskName) {
	m.retire.Do(func() {
		if err := m.state.Update(func(t *Taskable) {
			(*t).Retire(name)
		}); err != nil {
			slog.Warn("Failed to retire task", log.Task(name), log.Error(err))
		}
	})
}

func (m *merged) Faults() int { return m.state.Faults() }
