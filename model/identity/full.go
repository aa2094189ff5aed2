package identity

import "strings"

const separator = "/"

// FullTaskName addresses a task across the whole host.
type FullTaskName struct {
	Crate CrateName `json:"crate" yaml:"crate"`
	Task  TaskName  `json:"task" yaml:"task"`
}

// FullDatachunkName addresses a datachunk across the whole host.
type FullDatachunkName struct {
	Crate     CrateName     `json:"crate" yaml:"crate"`
	Datachunk DatachunkName `json:"datachunk" yaml:"datachunk"`
}

// NewFullTaskName validates both parts.
func NewFullTaskName(crate, task string) (FullTaskName, error) {
	crateName, err := NewCrateName(crate)
	if err != nil {
		return FullTaskName{}, err
	}
	taskName, err := NewTaskName(task)
	if err != nil {
		return FullTaskName{}, err
	}
	return FullTaskName{Crate: crateName, Task: taskName}, nil
}

// NewFullDatachunkName validates both parts.
func NewFullDatachunkName(crate, datachunk string) (FullDatachunkName, error) {
	crateName, err := NewCrateName(crate)
	if err != nil {
		return FullDatachunkName{}, err
	}
	chunkName, err := NewDatachunkName(datachunk)
	if err != nil {
		return FullDatachunkName{}, err
	}
	return FullDatachunkName{Crate: crateName, Datachunk: chunkName}, nil
}

// Validate checks both parts the way NewFullTaskName does.
func (n FullTaskName) Validate() error {
	_, err := NewFullTaskName(string(n.Crate), string(n.Task))
	return err
}

func (n FullTaskName) String() string {
	return string(n.Crate) + separator + string(n.Task)
}

// Compare orders by crate first, then by task.
func (n FullTaskName) Compare(other FullTaskName) int {
	if c := strings.Compare(string(n.Crate), string(other.Crate)); c != 0 {
		return c
	}
	return strings.Compare(string(n.Task), string(other.Task))
}

// IsZero reports whether the name was never set.
func (n FullTaskName) IsZero() bool {
	return n.Crate == "" && n.Task == ""
}

// Validate checks both parts the way NewFullDatachunkName does.
func (n FullDatachunkName) Validate() error {
	_, err := NewFullDatachunkName(string(n.Crate), string(n.Datachunk))
	return err
}

func (n FullDatachunkName) String() string {
	return string(n.Crate) + separator + string(n.Datachunk)
}

// Compare orders by crate first, then by datachunk.
func (n FullDatachunkName) Compare(other FullDatachunkName) int {
	if c := strings.Compare(string(n.Crate), string(other.Crate)); c != 0 {
		return c
	}
	return strings.Compare(string(n.Datachunk), string(other.Datachunk))
}
