// Package datachunk implements the shared-state store: named, typed values
// each guarded by its own poison-tolerant lock. Tasks borrow a value for the
// duration of a callback only, so no guard outlives a cycle.
package datachunk
