package loader

import (
	"reflect"

	"github.com/viant/custard/model/task"
)

// AttachTask attaches a split-style task: D is both the config record and
// the per-instance data handed to impl.
func AttachTask[D any](r *Registry, name string, impl task.Impl[D]) error {
	return r.Attach(name, KindTask, reflect.TypeOf((*D)(nil)).Elem(), func(record any) (any, error) {
		return task.Split(impl, *record.(*D)), nil
	})
}

// AttachTaskable attaches a merged-style task whose pointer type implements
// task.Taskable.
func AttachTaskable[T any, P interface {
	*T
	task.Taskable
}](r *Registry, name string) error {
	return r.Attach(name, KindTask, reflect.TypeOf((*T)(nil)).Elem(), func(record any) (any, error) {
		return task.Merged(P(record.(*T))), nil
	})
}

// AttachDatachunk attaches a datachunk type; the decoded record is the value.
func AttachDatachunk[T any](r *Registry, name string) error {
	return r.Attach(name, KindDatachunk, reflect.TypeOf((*T)(nil)).Elem(), func(record any) (any, error) {
		return record.(*T), nil
	})
}
