package event

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/viant/custard/service/messaging"
	"github.com/viant/custard/service/messaging/memory"
)

// Service hands out typed publishers and attaches listeners to them. Every
// typed event is mirrored to the untyped stream when a listener is set on it.
type Service struct {
	publisher         *Publisher[any]
	listener          *Listener[any]
	anyActive         atomic.Bool
	typedPublishers   map[reflect.Type]any
	typedListeners    map[reflect.Type]any
	mux               sync.RWMutex
	queueVendor       messaging.Vendor
	memNewQueueConfig func(name string) memory.Config
}

// SetListener replaces the untyped listener receiving every event.
func (s *Service) SetListener(handler func(*Event[any])) {
	s.mux.Lock()
	previous := s.listener
	s.listener = NewListener[any](s.publisher, handler)
	s.publisher.listening.Store(true)
	s.anyActive.Store(true)
	s.listener.Start()
	s.mux.Unlock()
	if previous != nil {
		previous.Stop()
	}
}

// Close stops every listener; later events are dropped.
func (s *Service) Close() {
	s.mux.Lock()
	var listeners []interface{ Stop() }
	if s.listener != nil {
		listeners = append(listeners, s.listener)
		s.listener = nil
	}
	for key, listener := range s.typedListeners {
		listeners = append(listeners, listener.(interface{ Stop() }))
		delete(s.typedListeners, key)
	}
	s.anyActive.Store(false)
	s.publisher.mute()
	for _, publisher := range s.typedPublishers {
		publisher.(interface{ mute() }).mute()
	}
	s.mux.Unlock()
	for _, listener := range listeners {
		listener.Stop()
	}
}

func New(queueVendor messaging.Vendor, opts ...Option) (*Service, error) {
	ret := &Service{
		queueVendor:     queueVendor,
		typedPublishers: make(map[reflect.Type]any),
		typedListeners:  make(map[reflect.Type]any),
	}
	for _, opt := range opts {
		opt(ret)
	}
	switch queueVendor {
	case memory.Vendor:
		if ret.memNewQueueConfig == nil {
			ret.memNewQueueConfig = func(string) memory.Config {
				config := memory.DefaultConfig()
				config.MaxRetries = 1
				return config
			}
		}
	default:
		return nil, fmt.Errorf("unsupported queue vendor: %s", queueVendor)
	}
	queue, err := QueueOf[Event[any]](ret, "any")
	if err != nil {
		return nil, err
	}
	ret.publisher = NewPublisher[any](queue)
	return ret, nil
}

func QueueOf[T any](s *Service, name string) (messaging.Queue[T], error) {
	switch s.queueVendor {
	case memory.Vendor:
		return memory.NewQueue[T](s.memNewQueueConfig(name)), nil
	}
	return nil, fmt.Errorf("unsupported queue vendor: %s", s.queueVendor)
}

func keyOf[T any]() reflect.Type {
	rType := reflect.TypeOf((*T)(nil)).Elem()
	if rType.Kind() == reflect.Ptr {
		rType = rType.Elem()
	}
	return rType
}

// SetListenerOf attaches handler to events of type T, replacing any previous
// typed listener.
func SetListenerOf[T any](s *Service, handler func(*Event[T])) error {
	publisher, err := PublisherOf[T](s)
	if err != nil {
		return err
	}
	key := keyOf[T]()
	listener := NewListener[T](publisher, handler)
	s.mux.Lock()
	previous, ok := s.typedListeners[key]
	s.typedListeners[key] = listener
	publisher.listening.Store(true)
	listener.Start()
	s.mux.Unlock()
	if ok {
		previous.(*Listener[T]).Stop()
	}
	return nil
}

// PublisherOf returns the publisher for type T.
func PublisherOf[T any](s *Service) (*Publisher[T], error) {
	key := keyOf[T]()
	s.mux.Lock()
	defer s.mux.Unlock()
	if ret, ok := s.typedPublishers[key]; ok {
		return ret.(*Publisher[T]), nil
	}
	queue, err := QueueOf[Event[T]](s, key.String())
	if err != nil {
		return nil, err
	}
	publisher := NewPublisher[T](queue)
	publisher.anyQueue = s.publisher.queue
	publisher.anyActive = &s.anyActive
	s.typedPublishers[key] = publisher
	return publisher, nil
}
