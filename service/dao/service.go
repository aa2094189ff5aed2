// Package dao defines the persistence contract used for supervisor
// book-keeping. Implementations live in sub-packages (memory, fs).
package dao

import (
	"context"

	"github.com/viant/custard/model/record"
)

// Service persists entities of type T keyed by K.
type Service[K comparable, T any] interface {
	Save(ctx context.Context, t *T) error

	Load(ctx context.Context, id K) (*T, error)

	Delete(ctx context.Context, id K) error

	List(ctx context.Context, parameters ...*Parameter) ([]*T, error)
}

// Records stores one record per registered task, keyed by the rendered
// FullTaskName.
type Records = Service[string, record.Record]
