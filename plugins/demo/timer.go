package demo

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/viant/custard/internal/clock"
	"github.com/viant/custard/model/flow"
	"github.com/viant/custard/model/identity"
	"github.com/viant/custard/model/task"
)

// Timer reports how long it lived when retired.
type Timer struct {
	Started time.Time `yaml:"started"`
	Ticks   int       `yaml:"-"`
	out     io.Writer
}

// Defaults starts the timer now unless configured otherwise.
func (t *Timer) Defaults() {
	t.Started = clock.Now()
}

func (t *Timer) Run(task.Access) func(ctx context.Context) flow.ControlFlow {
	return func(context.Context) flow.ControlFlow {
		t.Ticks++
		return flow.Continue()
	}
}

func (t *Timer) HandleControlFlowUpdate(identity.FullTaskName, identity.FullTaskName, flow.ControlFlow) bool {
	return false
}

func (t *Timer) Retire(name identity.FullTaskName) {
	if t.out == nil {
		return
	}
	elapsed := clock.Now().Sub(t.Started).Round(time.Millisecond)
	fmt.Fprintf(t.out, "%v: ran for %v over %d ticks\n", name, elapsed, t.Ticks)
}
