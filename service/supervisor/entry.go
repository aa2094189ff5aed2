package supervisor

import (
	"sync"

	"github.com/viant/custard/internal/clock"
	"github.com/viant/custard/model/flow"
	"github.com/viant/custard/model/identity"
	"github.com/viant/custard/model/record"
	"github.com/viant/custard/model/task"
)

// notice is another task's outcome awaiting delivery to this task.
type notice struct {
	origin  identity.FullTaskName
	outcome flow.ControlFlow
}

// entry is one registered task. run serialises cycles and lifecycle changes;
// mux guards the remaining fields.
type entry struct {
	spec     TaskSpec
	run      sync.Mutex
	mux      sync.Mutex
	instance task.Instance
	cycle    task.Cycle
	record   *record.Record
	pending  flow.Action
	inbox    []notice
	cause    error
	retired  bool
	wake     chan struct{}
	exited   chan struct{}
}

func newEntry(spec TaskSpec, instance task.Instance, cycle task.Cycle, runID string) *entry {
	aRecord := record.New(spec.Name, spec.Type, clock.Now())
	aRecord.RunID = runID
	return &entry{
		spec:     spec,
		instance: instance,
		cycle:    cycle,
		record:   aRecord,
		wake:     make(chan struct{}, 1),
		exited:   make(chan struct{}),
	}
}

func (e *entry) name() identity.FullTaskName { return e.spec.Name }

// schedule merges action into the pending action and wakes an idle runner.
func (e *entry) schedule(action flow.Action) {
	if action == flow.ActionNone {
		return
	}
	e.mux.Lock()
	e.pending = e.pending.Merge(action)
	e.mux.Unlock()
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// deliver queues a notice for the runner to relay at the next boundary.
func (e *entry) deliver(n notice) {
	e.mux.Lock()
	e.inbox = append(e.inbox, n)
	e.mux.Unlock()
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

func (e *entry) takeNotices() []notice {
	e.mux.Lock()
	defer e.mux.Unlock()
	ret := e.inbox
	e.inbox = nil
	return ret
}

func (e *entry) takePending() flow.Action {
	e.mux.Lock()
	defer e.mux.Unlock()
	ret := e.pending
	e.pending = flow.ActionNone
	return ret
}

// fail keeps the first fault cause.
func (e *entry) fail(err error) {
	e.mux.Lock()
	if e.cause == nil {
		e.cause = err
	}
	e.mux.Unlock()
}

func (e *entry) failure() error {
	e.mux.Lock()
	defer e.mux.Unlock()
	return e.cause
}

func (e *entry) currentCycle() task.Cycle {
	e.mux.Lock()
	defer e.mux.Unlock()
	return e.cycle
}

func (e *entry) notify(other identity.FullTaskName, outcome flow.ControlFlow) bool {
	e.mux.Lock()
	instance, retired := e.instance, e.retired
	e.mux.Unlock()
	if retired {
		return false
	}
	return instance.Notify(e.spec.Name, other, outcome)
}

// retire runs the instance teardown once per instance.
func (e *entry) retire() {
	e.mux.Lock()
	if e.retired {
		e.mux.Unlock()
		return
	}
	e.retired = true
	instance := e.instance
	e.mux.Unlock()
	instance.Retire(e.spec.Name)
}

func (e *entry) replace(instance task.Instance, cycle task.Cycle) {
	e.mux.Lock()
	e.instance = instance
	e.cycle = cycle
	e.retired = false
	e.mux.Unlock()
}

func (e *entry) snapshot() *record.Record {
	e.mux.Lock()
	defer e.mux.Unlock()
	return e.record.Clone()
}

func (e *entry) update(fn func(r *record.Record)) *record.Record {
	e.mux.Lock()
	defer e.mux.Unlock()
	fn(e.record)
	e.record.UpdatedAt = clock.Now()
	return e.record.Clone()
}
