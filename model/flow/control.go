package flow

import (
	"errors"
	"fmt"

	"github.com/viant/custard/model/identity"
)

var (
	// ErrNotInCycle signals a task claiming to be outside the execution cycle
	// it was expected to belong to.
	ErrNotInCycle = errors.New("task not in expected execution cycle")

	// ErrUnknownInput is returned by interactive tasks that received an
	// answer they cannot map to an outcome.
	ErrUnknownInput = errors.New("unknown input")
)

// Kind enumerates the supervisory outcomes of one execution cycle.
type Kind int

const (
	KindContinue Kind = iota
	KindReload
	KindFullReload
	KindPartialReload
	KindStopThis
	KindStopAll
	KindErr
)

func (k Kind) String() string {
	switch k {
	case KindContinue:
		return "continue"
	case KindReload:
		return "reload"
	case KindFullReload:
		return "fullReload"
	case KindPartialReload:
		return "partialReload"
	case KindStopThis:
		return "stopThis"
	case KindStopAll:
		return "stopAll"
	case KindErr:
		return "err"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ControlFlow is the result of one execution cycle.
type ControlFlow struct {
	Kind Kind
	// Crates is only meaningful for KindPartialReload.
	Crates identity.CrateSet
	// Err is only meaningful for KindErr.
	Err error
}

// Continue requests no supervisory action.
func Continue() ControlFlow { return ControlFlow{Kind: KindContinue} }

// Reload rebuilds this task's private state.
func Reload() ControlFlow { return ControlFlow{Kind: KindReload} }

// FullReload rebuilds every task of the originating crate.
func FullReload() ControlFlow { return ControlFlow{Kind: KindFullReload} }

// PartialReload rebuilds every task belonging to any of the crates. An empty
// set is a valid request that reloads nothing.
func PartialReload(crates ...identity.CrateName) ControlFlow {
	return ControlFlow{Kind: KindPartialReload, Crates: identity.NewCrateSet(crates...)}
}

// StopThis tears down only the originating task.
func StopThis() ControlFlow { return ControlFlow{Kind: KindStopThis} }

// StopAll tears down every task and halts execution.
func StopAll() ControlFlow { return ControlFlow{Kind: KindStopAll} }

// Err reports a failed cycle. A nil err is replaced with ErrNotInCycle so the
// outcome always carries a cause.
func Err(err error) ControlFlow {
	if err == nil {
		err = ErrNotInCycle
	}
	return ControlFlow{Kind: KindErr, Err: err}
}

// IsContinue reports whether no action is required.
func (c ControlFlow) IsContinue() bool { return c.Kind == KindContinue }

// IsMultiTask reports whether the outcome can affect tasks other than the
// originating one.
func (c ControlFlow) IsMultiTask() bool {
	switch c.Kind {
	case KindFullReload, KindPartialReload, KindStopAll:
		return true
	}
	return false
}

// IsReload reports a reload-class outcome.
func (c ControlFlow) IsReload() bool {
	switch c.Kind {
	case KindReload, KindFullReload, KindPartialReload:
		return true
	}
	return false
}

// IsStop reports a stop-class outcome; Err counts as one for scheduling.
func (c ControlFlow) IsStop() bool {
	switch c.Kind {
	case KindStopThis, KindStopAll, KindErr:
		return true
	}
	return false
}

func (c ControlFlow) String() string {
	switch c.Kind {
	case KindPartialReload:
		return c.Kind.String() + c.Crates.String()
	case KindErr:
		return fmt.Sprintf("%s(%v)", c.Kind, c.Err)
	}
	return c.Kind.String()
}
