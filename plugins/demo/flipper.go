package demo

import (
	"context"
	"errors"

	"github.com/viant/custard/model/flow"
	"github.com/viant/custard/model/identity"
	"github.com/viant/custard/model/task"
	"github.com/viant/custard/service/datachunk"
)

// Flipper flips field_a and doubles field_b of a chunk in its own crate,
// once per instance. When Owner is set only the task of that name touches
// the chunk.
type Flipper struct {
	Chunk   identity.DatachunkName `yaml:"chunk"`
	Owner   identity.TaskName      `yaml:"owner"`
	Flipped bool                   `yaml:"-"`
}

func (f *Flipper) Validate() error {
	if f.Chunk == "" {
		return errors.New("chunk is required")
	}
	return nil
}

func (f *Flipper) Run(access task.Access) func(ctx context.Context) flow.ControlFlow {
	if access.Store == nil || (f.Owner != "" && access.Name.Task != f.Owner) {
		return func(context.Context) flow.ControlFlow { return flow.Continue() }
	}
	store := access.Store
	name := identity.FullDatachunkName{Crate: access.Name.Crate, Datachunk: f.Chunk}
	return func(context.Context) flow.ControlFlow {
		if f.Flipped {
			return flow.Continue()
		}
		datachunk.MustGetMut[TestDatachunkA](store, name, func(chunk *TestDatachunkA) {
			chunk.FieldA = !chunk.FieldA
			chunk.FieldB *= 2
		})
		f.Flipped = true
		return flow.Continue()
	}
}

func (f *Flipper) HandleControlFlowUpdate(identity.FullTaskName, identity.FullTaskName, flow.ControlFlow) bool {
	return false
}

func (f *Flipper) Retire(identity.FullTaskName) {}
