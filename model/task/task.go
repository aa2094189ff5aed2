package task

import (
	"context"

	"github.com/viant/custard/model/flow"
	"github.com/viant/custard/model/identity"
	"github.com/viant/custard/service/datachunk"
)

// Cycle is one re-invocable execution step as seen by the supervisor.
type Cycle func(ctx context.Context) flow.ControlFlow

// Access is handed to a task when it (re)starts.
type Access struct {
	Name identity.FullTaskName
	// Store is nil unless the task opted into datachunk access when it was
	// registered.
	Store *datachunk.Store
}

// Instance is the unified task abstraction driven by the supervisor. Use
// Split or Merged to build one.
type Instance interface {
	// Start returns the cycle closure; it is called once per (re)start.
	Start(access Access) Cycle

	// Notify relays another task's non-continue outcome and reports whether
	// this task wants to follow it.
	Notify(this, other identity.FullTaskName, outcome flow.ControlFlow) bool

	// Retire runs the teardown hook. Implementations run it at most once.
	Retire(name identity.FullTaskName)

	// Faults reports how many cycles of this instance panicked.
	Faults() int
}

// CycleFunc is a split-style cycle receiving the task's data exclusively.
type CycleFunc[D any] func(ctx context.Context, data *D) flow.ControlFlow

// Impl is stateless split-style task behaviour shared by all instances of a
// task type.
type Impl[D any] interface {
	Run(access Access) CycleFunc[D]
	HandleControlFlowUpdate(data *D, this, other identity.FullTaskName, outcome flow.ControlFlow) bool
	Retire(data *D, name identity.FullTaskName)
}

// Taskable is a merged-style task: behaviour and data in one value mutated
// directly by each cycle.
type Taskable interface {
	Run(access Access) func(ctx context.Context) flow.ControlFlow
	HandleControlFlowUpdate(this, other identity.FullTaskName, outcome flow.ControlFlow) bool
	Retire(name identity.FullTaskName)
}
