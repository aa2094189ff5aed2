package record

import (
	"time"

	"github.com/viant/custard/model/identity"
)

// State is the supervisory state of a task as last recorded.
type State string

const (
	StateRunning   State = "running"
	StateReloading State = "reloading"
	StateStopped   State = "stopped"
	StateFaulted   State = "faulted"
)

// IsTerminal reports whether the task will never cycle again.
func (s State) IsTerminal() bool {
	return s == StateStopped || s == StateFaulted
}

// Record is the book-keeping kept for one registered task.
type Record struct {
	ID        string    `json:"id"`
	Crate     string    `json:"crate"`
	Task      string    `json:"task"`
	Type      string    `json:"type,omitempty"`
	RunID     string    `json:"runId,omitempty"`
	State     State     `json:"state"`
	Cycles    int       `json:"cycles"`
	Reloads   int       `json:"reloads"`
	Outcome   string    `json:"outcome,omitempty"`
	Error     string    `json:"error,omitempty"`
	StartedAt time.Time `json:"startedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// New creates a running record for name.
func New(name identity.FullTaskName, typeName string, now time.Time) *Record {
	return &Record{
		ID:        name.String(),
		Crate:     string(name.Crate),
		Task:      string(name.Task),
		Type:      typeName,
		State:     StateRunning,
		StartedAt: now,
		UpdatedAt: now,
	}
}

// Name returns the task address the record belongs to.
func (r *Record) Name() identity.FullTaskName {
	return identity.FullTaskName{Crate: identity.CrateName(r.Crate), Task: identity.TaskName(r.Task)}
}

// Clone returns a copy safe to hand out to callers.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	ret := *r
	return &ret
}
