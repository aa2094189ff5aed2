package datachunk

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/viant/custard/internal/lock"
	"github.com/viant/custard/model/identity"
)

var (
	ErrDatachunkExists   = errors.New("datachunk already registered")
	ErrDatachunkNotFound = errors.New("datachunk not found")
	ErrTypeMismatch      = errors.New("datachunk type mismatch")
	ErrNotPointer        = errors.New("datachunk value must be a non-nil pointer")
)

// ConfigError is the unrecoverable failure raised by the Must helpers.
type ConfigError struct {
	Name identity.FullDatachunkName
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("datachunk %v: %v", e.Name, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

type slot struct {
	rType reflect.Type
	lock  *lock.Lock[any]
}

// Store is a name-indexed registry of independently locked values.
type Store struct {
	slots map[identity.FullDatachunkName]*slot
	mux   sync.RWMutex
}

// New creates an empty store.
func New() *Store {
	return &Store{slots: map[identity.FullDatachunkName]*slot{}}
}

// Register inserts value under name. value must be a non-nil pointer; the
// pointee type becomes the declared type of the slot.
func (s *Store) Register(name identity.FullDatachunkName, value any) error {
	if err := name.Validate(); err != nil {
		return &ConfigError{Name: name, Err: err}
	}
	rValue := reflect.ValueOf(value)
	if rValue.Kind() != reflect.Ptr || rValue.IsNil() {
		return &ConfigError{Name: name, Err: ErrNotPointer}
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, ok := s.slots[name]; ok {
		return &ConfigError{Name: name, Err: ErrDatachunkExists}
	}
	s.slots[name] = &slot{rType: rValue.Type().Elem(), lock: lock.New[any](value)}
	return nil
}

// Has reports whether name is registered.
func (s *Store) Has(name identity.FullDatachunkName) bool {
	_, err := s.slot(name)
	return err == nil
}

// TypeOf returns the declared type of name or nil.
func (s *Store) TypeOf(name identity.FullDatachunkName) reflect.Type {
	aSlot, err := s.slot(name)
	if err != nil {
		return nil
	}
	return aSlot.rType
}

// Names returns registered names in ascending order.
func (s *Store) Names() []identity.FullDatachunkName {
	s.mux.RLock()
	defer s.mux.RUnlock()
	ret := make([]identity.FullDatachunkName, 0, len(s.slots))
	for name := range s.slots {
		ret = append(ret, name)
	}
	slices.SortFunc(ret, identity.FullDatachunkName.Compare)
	return ret
}

// Faults returns how many guarded accesses to name panicked.
func (s *Store) Faults(name identity.FullDatachunkName) int {
	aSlot, err := s.slot(name)
	if err != nil {
		return 0
	}
	return aSlot.lock.Faults()
}

func (s *Store) slot(name identity.FullDatachunkName) (*slot, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	ret, ok := s.slots[name]
	if !ok {
		return nil, &ConfigError{Name: name, Err: ErrDatachunkNotFound}
	}
	return ret, nil
}

// Get runs fn with shared access to the datachunk downcast to T.
func Get[T any](s *Store, name identity.FullDatachunkName, fn func(value *T)) error {
	return access[T](s, name, false, fn)
}

// GetMut runs fn with exclusive access to the datachunk downcast to T.
func GetMut[T any](s *Store, name identity.FullDatachunkName, fn func(value *T)) error {
	return access[T](s, name, true, fn)
}

// MustGet is Get that never returns on failure: lookup and type errors panic
// with *ConfigError. A panic raised by fn itself is re-raised.
func MustGet[T any](s *Store, name identity.FullDatachunkName, fn func(value *T)) {
	abort(Get[T](s, name, fn))
}

// MustGetMut is the exclusive counterpart of MustGet.
func MustGetMut[T any](s *Store, name identity.FullDatachunkName, fn func(value *T)) {
	abort(GetMut[T](s, name, fn))
}

func access[T any](s *Store, name identity.FullDatachunkName, exclusive bool, fn func(value *T)) error {
	aSlot, err := s.slot(name)
	if err != nil {
		return err
	}
	if expected := reflect.TypeOf((*T)(nil)).Elem(); aSlot.rType != expected {
		return &ConfigError{Name: name, Err: fmt.Errorf("%w: declared %v, requested %v", ErrTypeMismatch, aSlot.rType, expected)}
	}
	critical := func(value *any) {
		fn((*value).(*T))
	}
	if exclusive {
		return aSlot.lock.Update(critical)
	}
	return aSlot.lock.View(critical)
}

func abort(err error) {
	if err == nil {
		return
	}
	var fault *lock.Fault
	if errors.As(err, &fault) {
		panic(fault.Value)
	}
	panic(err)
}
