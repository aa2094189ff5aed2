package event

import (
	"context"
	"sync/atomic"

	"github.com/viant/custard/internal/clock"
	"github.com/viant/custard/service/messaging"
)

// Publisher delivers typed events. Events published while no listener is
// attached are dropped.
type Publisher[T any] struct {
	queue     messaging.Queue[Event[T]]
	listening atomic.Bool
	anyQueue  messaging.Queue[Event[any]]
	anyActive *atomic.Bool
}

func NewPublisher[T any](queue messaging.Queue[Event[T]]) *Publisher[T] {
	return &Publisher[T]{queue: queue}
}

func (p *Publisher[T]) Publish(ctx context.Context, event *Event[T]) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = clock.Now()
	}
	if p.anyQueue != nil && p.anyActive != nil && p.anyActive.Load() {
		if err := p.anyQueue.Publish(ctx, &Event[any]{
			Context:   event.Context,
			CreatedAt: event.CreatedAt,
			Metadata:  event.Metadata,
			Data:      event.Data,
		}); err != nil {
			return err
		}
	}
	if !p.listening.Load() {
		return nil
	}
	return p.queue.Publish(ctx, event)
}

func (p *Publisher[T]) mute() { p.listening.Store(false) }
