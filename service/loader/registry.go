package loader

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/viant/custard/model/task"
	"github.com/viant/structology/conv"
	"github.com/viant/x"
)

var (
	ErrTypeNotAttached = errors.New("type not attached")
	ErrTypeAttached    = errors.New("type already attached")
	ErrKindMismatch    = errors.New("attached type kind mismatch")
	ErrInvalidConfig   = errors.New("invalid config")
)

// Kind tags what an attached type constructs.
type Kind int

const (
	KindTask Kind = iota + 1
	KindDatachunk
)

func (k Kind) String() string {
	switch k {
	case KindTask:
		return "task"
	case KindDatachunk:
		return "datachunk"
	}
	return "unknown"
}

// Constructor turns a decoded config record (a pointer to the attached type)
// into an instance.
type Constructor func(record any) (any, error)

// Defaulter is implemented by config records that provide defaults for
// fields missing from configuration. Defaults runs before decoding.
type Defaulter interface {
	Defaults()
}

// Validator is implemented by config records that check themselves after
// decoding.
type Validator interface {
	Validate() error
}

// Attachment describes one attached type.
type Attachment struct {
	Name      string
	Kind      Kind
	Type      *x.Type
	construct Constructor
}

// Registry holds attached task and datachunk types keyed by a stable name.
type Registry struct {
	types       *x.Registry
	attachments map[string]*Attachment
	byType      map[reflect.Type]*Attachment
	converter   *conv.Converter
	mux         sync.RWMutex
}

// New creates an empty registry.
func New() *Registry {
	options := conv.DefaultOptions()
	options.ClonePointerData = true
	return &Registry{
		types:       x.NewRegistry(),
		attachments: map[string]*Attachment{},
		byType:      map[reflect.Type]*Attachment{},
		converter:   conv.NewConverter(options),
	}
}

// Attach registers record under name. record is the config record type the
// constructor receives a pointer to.
func (r *Registry) Attach(name string, kind Kind, record reflect.Type, construct Constructor) error {
	if name == "" {
		return fmt.Errorf("attach %v: empty name", kind)
	}
	if record.Kind() == reflect.Ptr {
		record = record.Elem()
	}
	aType := x.NewType(record)
	r.mux.Lock()
	defer r.mux.Unlock()
	if _, ok := r.attachments[name]; ok {
		return fmt.Errorf("attach %v %q: %w", kind, name, ErrTypeAttached)
	}
	attachment := &Attachment{Name: name, Kind: kind, Type: aType, construct: construct}
	r.types.Register(aType)
	r.attachments[name] = attachment
	if _, ok := r.byType[record]; !ok {
		r.byType[record] = attachment
	}
	return nil
}

// Lookup returns the attachment registered under name. The fully qualified
// Go type name ("pkg/path.Type") is accepted as a fallback.
func (r *Registry) Lookup(name string) (*Attachment, error) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	if ret, ok := r.attachments[name]; ok {
		return ret, nil
	}
	if aType := r.types.Lookup(name); aType != nil && aType.Type != nil {
		if ret, ok := r.byType[aType.Type]; ok {
			return ret, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, ErrTypeNotAttached)
}

// Names returns attached names of the given kind in ascending order.
func (r *Registry) Names(kind Kind) []string {
	r.mux.RLock()
	defer r.mux.RUnlock()
	var ret []string
	for name, attachment := range r.attachments {
		if attachment.Kind == kind {
			ret = append(ret, name)
		}
	}
	slices.Sort(ret)
	return ret
}

// Construct decodes config into a fresh record of the named type and builds
// the instance.
func (r *Registry) Construct(name string, config any) (Kind, any, error) {
	attachment, err := r.Lookup(name)
	if err != nil {
		return 0, nil, err
	}
	record := reflect.New(attachment.Type.Type).Interface()
	if defaulter, ok := record.(Defaulter); ok {
		defaulter.Defaults()
	}
	if err = r.decode(config, record); err != nil {
		return attachment.Kind, nil, fmt.Errorf("%v %q: %w: %v", attachment.Kind, name, ErrInvalidConfig, err)
	}
	if validator, ok := record.(Validator); ok {
		if err = validator.Validate(); err != nil {
			return attachment.Kind, nil, fmt.Errorf("%v %q: %w: %v", attachment.Kind, name, ErrInvalidConfig, err)
		}
	}
	instance, err := attachment.construct(record)
	if err != nil {
		return attachment.Kind, nil, fmt.Errorf("%v %q: %w", attachment.Kind, name, err)
	}
	return attachment.Kind, instance, nil
}

// ConstructTask constructs a task instance.
func (r *Registry) ConstructTask(name string, config any) (task.Instance, error) {
	kind, instance, err := r.Construct(name, config)
	if err != nil {
		return nil, err
	}
	if kind != KindTask {
		return nil, fmt.Errorf("%q is a %v: %w", name, kind, ErrKindMismatch)
	}
	return instance.(task.Instance), nil
}

// ConstructDatachunk constructs a datachunk value; the result is a pointer
// ready for datachunk.Store.Register.
func (r *Registry) ConstructDatachunk(name string, config any) (any, error) {
	kind, instance, err := r.Construct(name, config)
	if err != nil {
		return nil, err
	}
	if kind != KindDatachunk {
		return nil, fmt.Errorf("%q is a %v: %w", name, kind, ErrKindMismatch)
	}
	return instance, nil
}
