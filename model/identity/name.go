package identity

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrEmptyName is returned when a name has no characters.
	ErrEmptyName = errors.New("identity: empty name")

	// ErrInvalidName is returned when a name holds characters outside the
	// allowed set (letters, digits, '_', '-', '.') or starts with '.'.
	ErrInvalidName = errors.New("identity: invalid name")
)

// CrateName identifies a loaded plugin module. Unique within a host.
type CrateName string

// TaskName identifies a task within its crate.
type TaskName string

// DatachunkName identifies a datachunk within its crate.
type DatachunkName string

// NewCrateName validates and returns a crate name.
func NewCrateName(value string) (CrateName, error) {
	if err := validate(value); err != nil {
		return "", fmt.Errorf("crate %q: %w", value, err)
	}
	return CrateName(value), nil
}

// NewTaskName validates and returns a task name.
func NewTaskName(value string) (TaskName, error) {
	if err := validate(value); err != nil {
		return "", fmt.Errorf("task %q: %w", value, err)
	}
	return TaskName(value), nil
}

// NewDatachunkName validates and returns a datachunk name.
func NewDatachunkName(value string) (DatachunkName, error) {
	if err := validate(value); err != nil {
		return "", fmt.Errorf("datachunk %q: %w", value, err)
	}
	return DatachunkName(value), nil
}

// MustCrateName is NewCrateName for static tables; it panics on invalid input.
func MustCrateName(value string) CrateName {
	ret, err := NewCrateName(value)
	if err != nil {
		panic(err)
	}
	return ret
}

// MustTaskName panics on invalid input.
func MustTaskName(value string) TaskName {
	ret, err := NewTaskName(value)
	if err != nil {
		panic(err)
	}
	return ret
}

// MustDatachunkName panics on invalid input.
func MustDatachunkName(value string) DatachunkName {
	ret, err := NewDatachunkName(value)
	if err != nil {
		panic(err)
	}
	return ret
}

func validate(value string) error {
	if value == "" {
		return ErrEmptyName
	}
	if value[0] == '.' {
		return ErrInvalidName
	}
	for _, r := range value {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		if !strings.ContainsRune("_-.", r) {
			return ErrInvalidName
		}
	}
	return nil
}
