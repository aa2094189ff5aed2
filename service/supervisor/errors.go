package supervisor

import (
	"errors"
	"fmt"

	"github.com/viant/custard/model/identity"
)

var (
	ErrTaskExists      = errors.New("task already registered")
	ErrTaskNotFound    = errors.New("task not found")
	ErrHalted          = errors.New("supervisor halted")
	ErrShutdownTimeout = errors.New("shutdown timed out")
	ErrInvalidSpec     = errors.New("invalid task spec")
)

// TaskError is a fault attributed to one task: an Err outcome, a panicking
// cycle or a failed reconstruction.
type TaskError struct {
	Name identity.FullTaskName
	Err  error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %v: %v", e.Name, e.Err)
}

func (e *TaskError) Unwrap() error { return e.Err }
