package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/viant/custard/pkg/log"
	"github.com/viant/custard/service/messaging"
)

type Listener[T any] struct {
	publisher *Publisher[T]
	handler   func(*Event[T])
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	stopping  sync.Once
}

func NewListener[T any](publisher *Publisher[T], handler func(*Event[T])) *Listener[T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &Listener[T]{
		publisher: publisher,
		handler:   handler,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
}

// Stop cancels consumption and waits for the handler loop to exit.
func (l *Listener[T]) Stop() {
	l.stopping.Do(func() {
		l.cancel()
		<-l.done
	})
}

func (l *Listener[T]) Start() {
	go func() {
		defer close(l.done)
		for {
			msg, err := l.publisher.queue.Consume(l.ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, messaging.ErrClosed) {
					return
				}
				slog.Warn("Failed to consume event", log.Error(err))
				continue
			}
			if err = l.handle(msg.T()); err != nil {
				slog.Warn("Event handler failed", log.Error(err))
				_ = msg.Nack(err)
				continue
			}
			_ = msg.Ack()
		}
	}()
}

// handle runs the handler, turning a panic into an error so the message can
// be redelivered.
func (l *Listener[T]) handle(event *Event[T]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("event handler panicked: %v", r)
		}
	}()
	l.handler(event)
	return nil
}
