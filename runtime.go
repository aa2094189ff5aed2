package custard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/viant/custard/model/identity"
	"github.com/viant/custard/model/manifest"
	"github.com/viant/custard/model/record"
	"github.com/viant/custard/pkg/log"
	"github.com/viant/custard/progress"
	"github.com/viant/custard/service/dao"
	"github.com/viant/custard/service/datachunk"
	"github.com/viant/custard/service/event"
	"github.com/viant/custard/service/loader"
	"github.com/viant/custard/service/supervisor"
)

// Runtime is one supervised set of tasks and the datachunks they share.
type Runtime struct {
	registry   *loader.Registry
	supervisor *supervisor.Service
	events     *event.Service
}

// Deploy registers every datachunk of the manifest first, then every task.
func (r *Runtime) Deploy(ctx context.Context, m *manifest.Manifest) error {
	for _, crate := range m.Crates {
		for _, chunk := range crate.Datachunks {
			if err := r.RegisterDatachunk(chunk.FullName(crate.Name), chunk.Type, &chunk.Config); err != nil {
				return err
			}
		}
	}
	for _, crate := range m.Crates {
		for _, aTask := range crate.Tasks {
			spec := supervisor.TaskSpec{
				Name:       aTask.FullName(crate.Name),
				Type:       aTask.Type,
				Config:     &aTask.Config,
				Datachunks: aTask.Datachunks,
			}
			if err := r.Register(ctx, spec); err != nil {
				return err
			}
		}
	}
	return nil
}

// RegisterDatachunk constructs a datachunk from config and adds it to the
// store. Construction errors are configuration errors.
func (r *Runtime) RegisterDatachunk(name identity.FullDatachunkName, typeName string, config any) error {
	value, err := r.registry.ConstructDatachunk(typeName, config)
	if err != nil {
		slog.Error("Failed to construct datachunk", log.Datachunk(name), log.Type(typeName), log.Error(err))
		return &datachunk.ConfigError{Name: name, Err: err}
	}
	if err = r.supervisor.Store().Register(name, value); err != nil {
		return err
	}
	slog.Info("Datachunk registered", log.Datachunk(name), log.Type(typeName))
	return nil
}

// Register constructs and registers one task.
func (r *Runtime) Register(ctx context.Context, spec supervisor.TaskSpec) error {
	return r.supervisor.Register(ctx, spec)
}

// Start starts every registered task.
func (r *Runtime) Start(ctx context.Context) error {
	return r.supervisor.Start(ctx)
}

// Done is closed once every task retired.
func (r *Runtime) Done() <-chan struct{} { return r.supervisor.Done() }

// Wait blocks until all tasks retired and returns their joined faults.
func (r *Runtime) Wait(ctx context.Context) error {
	return r.supervisor.Wait(ctx)
}

// Shutdown stops every task and releases event listeners.
func (r *Runtime) Shutdown(ctx context.Context) error {
	err := r.supervisor.Shutdown(ctx)
	if r.events != nil {
		r.events.Close()
	}
	if err != nil {
		return fmt.Errorf("failed to shut down runtime: %w", err)
	}
	return nil
}

// Store returns the datachunk store.
func (r *Runtime) Store() *datachunk.Store { return r.supervisor.Store() }

// Tasks returns the live task names.
func (r *Runtime) Tasks() []identity.FullTaskName { return r.supervisor.Tasks() }

// Task returns the record of a live or retired task.
func (r *Runtime) Task(ctx context.Context, name identity.FullTaskName) (*record.Record, error) {
	return r.supervisor.Lookup(ctx, name)
}

// Records lists task records.
func (r *Runtime) Records(ctx context.Context, parameters ...*dao.Parameter) ([]*record.Record, error) {
	return r.supervisor.Records(ctx, parameters...)
}

// Faults returns every fault recorded so far.
func (r *Runtime) Faults() []error { return r.supervisor.Faults() }

// Progress returns a snapshot of the supervisor counters.
func (r *Runtime) Progress() progress.Progress { return r.supervisor.Progress().Snapshot() }
