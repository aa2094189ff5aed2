package demo

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/viant/custard/model/flow"
	"github.com/viant/custard/model/identity"
	"github.com/viant/custard/model/task"
)

// CounterData is the per-instance state of a counter. A zero Limit counts
// forever.
type CounterData struct {
	Limit int `yaml:"limit"`
	Count int `yaml:"-"`
}

func (d *CounterData) Validate() error {
	if d.Limit < 0 {
		return errors.New("limit must not be negative")
	}
	return nil
}

// counter stops its task once the limit is reached and follows reloads
// of its own crate.
type counter struct {
	out io.Writer
}

func (c *counter) Run(task.Access) task.CycleFunc[CounterData] {
	return func(_ context.Context, data *CounterData) flow.ControlFlow {
		data.Count++
		if data.Limit > 0 && data.Count >= data.Limit {
			return flow.StopThis()
		}
		return flow.Continue()
	}
}

func (c *counter) HandleControlFlowUpdate(_ *CounterData, this, other identity.FullTaskName, outcome flow.ControlFlow) bool {
	return other.Crate == this.Crate && outcome.IsReload()
}

func (c *counter) Retire(data *CounterData, name identity.FullTaskName) {
	fmt.Fprintf(c.out, "%v: counted %d cycles\n", name, data.Count)
}
