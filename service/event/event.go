package event

import (
	"time"

	"github.com/viant/custard/internal/clock"
)

// Context identifies the task an event originates from.
type Context struct {
	Crate     string `json:"crate"`
	Task      string `json:"task"`
	RunID     string `json:"runID,omitempty"`
	EventType string `json:"eventType"`
}

type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Data      T                      `json:"data"`
}

func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: clock.Now(),
		Data:      data,
	}
}
