package demo

import (
	"io"
	"os"
	"reflect"

	"github.com/viant/custard/model/task"
	"github.com/viant/custard/service/console"
	"github.com/viant/custard/service/loader"
)

const (
	DatachunkType = "TestDatachunkA"
	CounterType   = "Counter"
	TimerType     = "Timer"
	FlipperType   = "Flipper"
	PromptType    = "Prompt"
)

type options struct {
	out     io.Writer
	console *console.Console
}

type Option func(o *options)

// WithOutput sets where tasks write their reports.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithConsole sets the console the prompt task reads from.
func WithConsole(c *console.Console) Option {
	return func(o *options) { o.console = c }
}

// Attach registers every demo type with r.
func Attach(r *loader.Registry, opts ...Option) error {
	o := &options{out: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}
	if o.console == nil {
		o.console = console.NewWithIO(os.Stdin, o.out)
	}
	if err := loader.AttachDatachunk[TestDatachunkA](r, DatachunkType); err != nil {
		return err
	}
	if err := loader.AttachTask[CounterData](r, CounterType, &counter{out: o.out}); err != nil {
		return err
	}
	if err := r.Attach(TimerType, loader.KindTask, reflect.TypeOf(Timer{}), func(record any) (any, error) {
		timer := record.(*Timer)
		timer.out = o.out
		return task.Merged(timer), nil
	}); err != nil {
		return err
	}
	if err := loader.AttachTaskable[Flipper](r, FlipperType); err != nil {
		return err
	}
	return r.Attach(PromptType, loader.KindTask, reflect.TypeOf(Prompt{}), func(record any) (any, error) {
		prompt := record.(*Prompt)
		prompt.console = o.console
		return task.Merged(prompt), nil
	})
}
