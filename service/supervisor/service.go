package supervisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"
	"sync"
	"time"

	"github.com/viant/custard/internal/idgen"
	"github.com/viant/custard/internal/lock"
	"github.com/viant/custard/model/flow"
	"github.com/viant/custard/model/identity"
	"github.com/viant/custard/model/record"
	"github.com/viant/custard/model/task"
	"github.com/viant/custard/pkg/log"
	"github.com/viant/custard/progress"
	"github.com/viant/custard/service/dao"
	recmemory "github.com/viant/custard/service/dao/record/memory"
	"github.com/viant/custard/service/datachunk"
	"github.com/viant/custard/service/event"
	"github.com/viant/custard/service/messaging/memory"
)

// Service drives registered tasks: one runner goroutine per task executes
// cycles sequentially, and dispatchers turn non-continue outcomes into
// reload and stop actions applied at each affected task's next cycle
// boundary.
type Service struct {
	constructor     Constructor
	store           *datachunk.Store
	records         dao.Records
	events          *event.Service
	publisher       *event.Publisher[Transition]
	progress        *progress.Progress
	queue           *memory.Queue[Outcome]
	dispatcherCount int
	cycleTimeout    time.Duration
	cycleInterval   time.Duration
	shutdownTimeout time.Duration

	mux      sync.RWMutex
	entries  map[identity.FullTaskName]*entry
	started  bool
	halted   bool
	ctx      context.Context
	cancel   context.CancelFunc
	runners  sync.WaitGroup
	workers  sync.WaitGroup
	haltOnce sync.Once
	done     chan struct{}

	faultMux sync.Mutex
	faults   []error
}

// New creates a supervisor constructing tasks through constructor.
func New(constructor Constructor, opts ...Option) *Service {
	ret := &Service{
		constructor:     constructor,
		dispatcherCount: 1,
		entries:         map[identity.FullTaskName]*entry{},
		done:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.store == nil {
		ret.store = datachunk.New()
	}
	if ret.records == nil {
		ret.records = recmemory.New()
	}
	if ret.progress == nil {
		ret.progress = progress.New(nil)
	}
	if ret.events != nil {
		if publisher, err := event.PublisherOf[Transition](ret.events); err == nil {
			ret.publisher = publisher
		} else {
			slog.Warn("Failed to create transition publisher", log.Error(err))
		}
	}
	ret.queue = memory.NewQueue[Outcome](memory.DefaultConfig())
	return ret
}

// Store returns the datachunk store handed to tasks that opted in.
func (s *Service) Store() *datachunk.Store { return s.store }

// Progress returns the supervisor counters.
func (s *Service) Progress() *progress.Progress { return s.progress }

// Done is closed once the supervisor halted and every task retired.
func (s *Service) Done() <-chan struct{} { return s.done }

// Start launches dispatchers and the runners of every registered task.
// Cancelling ctx stops all tasks and halts the supervisor.
func (s *Service) Start(ctx context.Context) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.halted {
		return ErrHalted
	}
	if s.started {
		return nil
	}
	s.started = true
	s.ctx, s.cancel = context.WithCancel(ctx)
	for i := 0; i < s.dispatcherCount; i++ {
		s.workers.Add(1)
		go s.dispatch(s.ctx)
	}
	for _, e := range s.entries {
		s.launch(e)
	}
	go func(ctx context.Context) {
		<-ctx.Done()
		s.halt()
	}(s.ctx)
	return nil
}

// Register constructs and starts a task.
func (s *Service) Register(ctx context.Context, spec TaskSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	if err := s.admit(spec.Name); err != nil {
		return err
	}
	instance, err := s.constructor.ConstructTask(spec.Type, spec.Config)
	if err != nil {
		slog.Error("Failed to construct task", log.Task(spec.Name), log.Type(spec.Type), log.Error(err))
		return fmt.Errorf("failed to construct task %v: %w", spec.Name, err)
	}
	cycle, err := start(instance, s.access(spec))
	if err != nil {
		instance.Retire(spec.Name)
		return fmt.Errorf("failed to start task %v: %w", spec.Name, err)
	}
	e := newEntry(spec, instance, cycle, idgen.New())

	s.mux.Lock()
	if err = s.admitLocked(spec.Name); err != nil {
		s.mux.Unlock()
		instance.Retire(spec.Name)
		return err
	}
	s.entries[spec.Name] = e
	if s.started {
		s.launch(e)
	}
	s.mux.Unlock()

	s.progress.Update(progress.Delta{Registered: 1, Live: 1})
	s.persist(ctx, e.snapshot())
	s.publish(ctx, e.snapshot(), "")
	slog.Info("Task registered", log.Task(spec.Name), log.Type(spec.Type))
	return nil
}

func (s *Service) admit(name identity.FullTaskName) error {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.admitLocked(name)
}

func (s *Service) admitLocked(name identity.FullTaskName) error {
	if s.halted {
		return ErrHalted
	}
	if _, ok := s.entries[name]; ok {
		return fmt.Errorf("%v: %w", name, ErrTaskExists)
	}
	return nil
}

// Tasks returns the names of live tasks in ascending order.
func (s *Service) Tasks() []identity.FullTaskName {
	live := s.live()
	ret := make([]identity.FullTaskName, len(live))
	for i, e := range live {
		ret[i] = e.name()
	}
	return ret
}

// Lookup returns the current record of a live task, or the last persisted
// record of a retired one.
func (s *Service) Lookup(ctx context.Context, name identity.FullTaskName) (*record.Record, error) {
	if e := s.entry(name); e != nil {
		return e.snapshot(), nil
	}
	ret, err := s.records.Load(ctx, name.String())
	if errors.Is(err, dao.ErrNotFound) {
		return nil, fmt.Errorf("%v: %w", name, ErrTaskNotFound)
	}
	return ret, err
}

// Records lists persisted task records.
func (s *Service) Records(ctx context.Context, parameters ...*dao.Parameter) ([]*record.Record, error) {
	return s.records.List(ctx, parameters...)
}

// Faults returns every fault recorded so far.
func (s *Service) Faults() []error {
	s.faultMux.Lock()
	defer s.faultMux.Unlock()
	return slices.Clone(s.faults)
}

// Wait blocks until the supervisor halts and returns the joined faults.
func (s *Service) Wait(ctx context.Context) error {
	select {
	case <-s.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return errors.Join(s.Faults()...)
}

// Shutdown stops every task at its next cycle boundary and halts. Cycles
// still running when the timeout expires have their context cancelled.
func (s *Service) Shutdown(ctx context.Context) error {
	if s.shutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.shutdownTimeout)
		defer cancel()
	}
	for _, e := range s.live() {
		e.schedule(flow.ActionStop)
	}
	s.halt()
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		s.mux.RLock()
		cancel := s.cancel
		s.mux.RUnlock()
		if cancel != nil {
			cancel()
		}
		return ErrShutdownTimeout
	}
}

// halt rejects further registrations and closes Done once all runners
// exited.
func (s *Service) halt() {
	s.haltOnce.Do(func() {
		s.mux.Lock()
		s.halted = true
		var idle []*entry
		if !s.started {
			for _, e := range s.entries {
				idle = append(idle, e)
			}
		}
		s.mux.Unlock()
		for _, e := range idle {
			s.stop(context.Background(), e)
		}
		slog.Info("Supervisor halting")
		go func() {
			s.runners.Wait()
			s.queue.Close()
			s.workers.Wait()
			s.mux.RLock()
			cancel := s.cancel
			s.mux.RUnlock()
			if cancel != nil {
				cancel()
			}
			close(s.done)
		}()
	})
}

func (s *Service) launch(e *entry) {
	s.runners.Add(1)
	go s.runTask(s.ctx, e)
}

func (s *Service) live() []*entry {
	s.mux.RLock()
	ret := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		ret = append(ret, e)
	}
	s.mux.RUnlock()
	slices.SortFunc(ret, func(a, b *entry) int { return a.name().Compare(b.name()) })
	return ret
}

func (s *Service) entry(name identity.FullTaskName) *entry {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.entries[name]
}

func (s *Service) remove(e *entry) {
	s.mux.Lock()
	if s.entries[e.name()] == e {
		delete(s.entries, e.name())
	}
	s.mux.Unlock()
}

func (s *Service) fault(err error) {
	s.faultMux.Lock()
	s.faults = append(s.faults, err)
	s.faultMux.Unlock()
}

func (s *Service) access(spec TaskSpec) task.Access {
	ret := task.Access{Name: spec.Name}
	if spec.Datachunks {
		ret.Store = s.store
	}
	return ret
}

func (s *Service) persist(ctx context.Context, aRecord *record.Record) {
	if err := s.records.Save(ctx, aRecord); err != nil {
		slog.Warn("Failed to save task record", slog.String("task", aRecord.ID), log.Error(err))
	}
}

func (s *Service) publish(ctx context.Context, aRecord *record.Record, from record.State) {
	if s.publisher == nil {
		return
	}
	anEvent := event.NewEvent(&event.Context{
		Crate:     aRecord.Crate,
		Task:      aRecord.Task,
		RunID:     aRecord.RunID,
		EventType: "transition",
	}, Transition{From: from, To: aRecord.State, Outcome: aRecord.Outcome, Error: aRecord.Error})
	if err := s.publisher.Publish(ctx, anEvent); err != nil {
		slog.Warn("Failed to publish transition", slog.String("task", aRecord.ID), log.Error(err))
	}
}

// start runs instance.Start, turning a panic into an error.
func start(instance task.Instance, access task.Access) (cycle task.Cycle, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &lock.Fault{Value: r, Stack: debug.Stack()}
		}
	}()
	return instance.Start(access), nil
}
