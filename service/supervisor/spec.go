package supervisor

import (
	"fmt"

	"github.com/viant/custard/model/flow"
	"github.com/viant/custard/model/identity"
	"github.com/viant/custard/model/record"
	"github.com/viant/custard/model/task"
)

// TaskSpec is the recipe a task is constructed from, kept so the task can be
// rebuilt on reload.
type TaskSpec struct {
	Name identity.FullTaskName
	// Type is the attached task type name.
	Type   string
	Config any
	// Datachunks opts the task into datachunk store access.
	Datachunks bool
}

func (s *TaskSpec) Validate() error {
	if s.Name.IsZero() {
		return fmt.Errorf("%w: name is required", ErrInvalidSpec)
	}
	if err := s.Name.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSpec, err)
	}
	if s.Type == "" {
		return fmt.Errorf("%w: %v: type is required", ErrInvalidSpec, s.Name)
	}
	return nil
}

// Constructor builds task instances by attached type name.
type Constructor interface {
	ConstructTask(typeName string, config any) (task.Instance, error)
}

// Outcome is a non-continue cycle result travelling from a task runner to a
// dispatcher. done is closed once every resulting action is scheduled.
type Outcome struct {
	Origin      identity.FullTaskName
	RunID       string
	ControlFlow flow.ControlFlow
	done        chan struct{}
}

// Transition is published whenever a task changes state.
type Transition struct {
	From    record.State `json:"from,omitempty"`
	To      record.State `json:"to"`
	Outcome string       `json:"outcome,omitempty"`
	Error   string       `json:"error,omitempty"`
}
