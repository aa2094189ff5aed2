// Package lock provides a mutual-exclusion wrapper that stays usable after a
// critical section panics. The panic is recovered and returned to the caller
// as a *Fault; later lockers are handed the value as-is.
package lock

import (
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// Fault describes a critical section that terminated abnormally.
type Fault struct {
	Value any
	Stack []byte
}

func (f *Fault) Error() string {
	if err, ok := f.Value.(error); ok {
		return fmt.Sprintf("critical section panicked: %v", err)
	}
	return fmt.Sprintf("critical section panicked: %v", f.Value)
}

// Unwrap exposes a panic value that was itself an error.
func (f *Fault) Unwrap() error {
	if err, ok := f.Value.(error); ok {
		return err
	}
	return nil
}

// Lock guards a value of type V.
type Lock[V any] struct {
	mux    sync.RWMutex
	value  V
	faults atomic.Int64
}

// New returns a lock guarding value.
func New[V any](value V) *Lock[V] {
	return &Lock[V]{value: value}
}

// Update runs fn with exclusive access to the value.
func (l *Lock[V]) Update(fn func(value *V)) (err error) {
	l.mux.Lock()
	defer l.mux.Unlock()
	defer l.recover(&err)
	fn(&l.value)
	return nil
}

// View runs fn with shared access to the value. fn must not mutate it.
func (l *Lock[V]) View(fn func(value *V)) (err error) {
	l.mux.RLock()
	defer l.mux.RUnlock()
	defer l.recover(&err)
	fn(&l.value)
	return nil
}

// Faults returns how many critical sections panicked so far. The value is
// still granted to later lockers regardless of this count.
func (l *Lock[V]) Faults() int {
	return int(l.faults.Load())
}

func (l *Lock[V]) recover(err *error) {
	r := recover()
	if r == nil {
		return
	}
	l.faults.Add(1)
	*err = &Fault{Value: r, Stack: debug.Stack()}
}
