package event

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/custard/service/messaging/memory"
)

type transition struct {
	From string
	To   string
}

func TestService_TypedListener(t *testing.T) {
	srv, err := New(memory.Vendor)
	require.NoError(t, err)
	defer srv.Close()

	received := make(chan *Event[transition], 1)
	require.NoError(t, SetListenerOf[transition](srv, func(e *Event[transition]) { received <- e }))

	publisher, err := PublisherOf[transition](srv)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, publisher.Publish(ctx, NewEvent(&Context{Crate: "demo", Task: "counter", EventType: "transition"}, transition{From: "running", To: "stopped"})))

	select {
	case e := <-received:
		assert.Equal(t, "stopped", e.Data.To)
		assert.Equal(t, "counter", e.Context.Task)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestService_AnyListener(t *testing.T) {
	srv, err := New(memory.Vendor)
	require.NoError(t, err)
	defer srv.Close()

	received := make(chan *Event[any], 1)
	srv.SetListener(func(e *Event[any]) { received <- e })

	publisher, err := PublisherOf[transition](srv)
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(context.Background(), NewEvent(&Context{EventType: "transition"}, transition{To: "faulted"})))

	select {
	case e := <-received:
		assert.Equal(t, transition{To: "faulted"}, e.Data)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestService_DropsWithoutListener(t *testing.T) {
	srv, err := New(memory.Vendor, WithNewMemoryQueueConfig(func(string) memory.Config {
		config := memory.DefaultConfig()
		config.QueueBuffer = 1
		return config
	}))
	require.NoError(t, err)
	publisher, err := PublisherOf[transition](srv)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		assert.NoError(t, publisher.Publish(context.Background(), NewEvent(&Context{}, transition{})))
	}
}

func TestService_UnsupportedVendor(t *testing.T) {
	_, err := New("kafka")
	assert.Error(t, err)
}

func TestService_DropsAfterClose(t *testing.T) {
	srv, err := New(memory.Vendor, WithNewMemoryQueueConfig(func(string) memory.Config {
		config := memory.DefaultConfig()
		config.QueueBuffer = 1
		return config
	}))
	require.NoError(t, err)
	require.NoError(t, SetListenerOf[transition](srv, func(*Event[transition]) {}))
	srv.Close()

	publisher, err := PublisherOf[transition](srv)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		assert.NoError(t, publisher.Publish(context.Background(), NewEvent(&Context{}, transition{})))
	}
}

func TestService_RedeliversAfterHandlerPanic(t *testing.T) {
	srv, err := New(memory.Vendor)
	require.NoError(t, err)
	defer srv.Close()

	calls := 0
	received := make(chan *Event[transition], 1)
	require.NoError(t, SetListenerOf[transition](srv, func(e *Event[transition]) {
		calls++
		if calls == 1 {
			panic("listener not ready")
		}
		received <- e
	}))
	publisher, err := PublisherOf[transition](srv)
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(context.Background(), NewEvent(&Context{Task: "counter"}, transition{To: "stopped"})))

	select {
	case e := <-received:
		assert.Equal(t, "stopped", e.Data.To)
		assert.Equal(t, 2, calls)
	case <-time.After(time.Second):
		t.Fatal("event not redelivered")
	}
}
