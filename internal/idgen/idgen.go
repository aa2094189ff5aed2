// Package idgen issues the opaque identifiers used for task runs and queued
// messages.
package idgen

import "github.com/google/uuid"

// New returns a random UUID in its canonical string form.
func New() string {
	return uuid.NewString()
}

// Valid reports whether id has the form New produces.
func Valid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
