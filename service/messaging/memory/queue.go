package memory

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/viant/custard/internal/idgen"
	"github.com/viant/custard/pkg/log"
	"github.com/viant/custard/service/messaging"
)

// Vendor identifies the in-process queue.
const Vendor messaging.Vendor = "memory"

var errProcessed = errors.New("message already processed")

// Config for the in-process queue. A nacked message is redelivered up to
// MaxRetries times after RetryDelay, then dropped.
type Config struct {
	MaxRetries  int
	RetryDelay  time.Duration
	QueueBuffer int
}

// DefaultConfig returns the queue defaults.
func DefaultConfig() Config {
	return Config{
		MaxRetries:  0,
		RetryDelay:  10 * time.Millisecond,
		QueueBuffer: 64,
	}
}

// Message is an in-process queue delivery.
type Message[T any] struct {
	ID        string
	payload   T
	queue     *Queue[T]
	attempt   int
	processed bool
	mu        sync.Mutex
}

func (m *Message[T]) T() *T { return &m.payload }

func (m *Message[T]) Ack() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return errProcessed
	}
	m.processed = true
	return nil
}

func (m *Message[T]) Nack(err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return errProcessed
	}
	m.processed = true
	m.queue.failed(m, err)
	return nil
}

// Queue is a buffered in-process messaging.Queue.
type Queue[T any] struct {
	config   Config
	messages chan *Message[T]
	done     chan struct{}
	closing  sync.Once
	dropped  atomic.Int64
}

// NewQueue creates an in-process queue.
func NewQueue[T any](config Config) *Queue[T] {
	if config.QueueBuffer <= 0 {
		config.QueueBuffer = DefaultConfig().QueueBuffer
	}
	return &Queue[T]{
		config:   config,
		messages: make(chan *Message[T], config.QueueBuffer),
		done:     make(chan struct{}),
	}
}

// Publish enqueues a copy of t; it blocks while the buffer is full.
func (q *Queue[T]) Publish(ctx context.Context, t *T) error {
	msg := &Message[T]{ID: idgen.New(), payload: *t, queue: q}
	return q.enqueue(ctx, msg)
}

func (q *Queue[T]) enqueue(ctx context.Context, msg *Message[T]) error {
	select {
	case <-q.done:
		return messaging.ErrClosed
	default:
	}
	select {
	case q.messages <- msg:
		return nil
	case <-q.done:
		return messaging.ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume returns the next message.
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	select {
	case msg := <-q.messages:
		return msg, nil
	case <-q.done:
		return nil, messaging.ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops delivery; messages still buffered are dropped.
func (q *Queue[T]) Close() {
	q.closing.Do(func() { close(q.done) })
}

// Size returns the number of buffered messages.
func (q *Queue[T]) Size() int { return len(q.messages) }

func (q *Queue[T]) failed(m *Message[T], err error) {
	if m.attempt < q.config.MaxRetries {
		retry := &Message[T]{ID: m.ID, payload: m.payload, queue: q, attempt: m.attempt + 1}
		go func() {
			time.Sleep(q.config.RetryDelay)
			_ = q.enqueue(context.Background(), retry)
		}()
		return
	}
	q.dropped.Add(1)
	slog.Warn("Message dropped", slog.String("id", m.ID), slog.Int("attempts", m.attempt+1), log.Error(err))
}

var _ messaging.Queue[any] = (*Queue[any])(nil)
