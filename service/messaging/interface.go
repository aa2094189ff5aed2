package messaging

import (
	"context"
	"errors"
)

// ErrClosed is returned by queues that no longer accept or deliver messages.
var ErrClosed = errors.New("queue closed")

// Vendor names a queue implementation.
type Vendor string

// Queue is an abstract message queue for any payload type.
type Queue[T any] interface {
	// Publish enqueues payload.
	Publish(ctx context.Context, t *T) error

	// Consume blocks until a message is available, ctx is done or the queue
	// is closed.
	Consume(ctx context.Context) (Message[T], error)
}

// Message is a delivered payload awaiting acknowledgement.
type Message[T any] interface {
	T() *T

	// Ack marks the message processed.
	Ack() error

	// Nack marks the message failed; the queue decides whether to redeliver.
	Nack(err error) error
}
