package task

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/custard/internal/lock"
	"github.com/viant/custard/model/flow"
	"github.com/viant/custard/model/identity"
)

type counterData struct {
	Count   int
	Limit   int
	Retired int
}

type counterImpl struct{}

func (counterImpl) Run(Access) CycleFunc[counterData] {
	return func(_ context.Context, data *counterData) flow.ControlFlow {
		data.Count++
		if data.Count == data.Limit {
			panic("limit reached")
		}
		return flow.Continue()
	}
}

func (counterImpl) HandleControlFlowUpdate(data *counterData, this, other identity.FullTaskName, outcome flow.ControlFlow) bool {
	return this.Crate == other.Crate && outcome.IsReload()
}

func (counterImpl) Retire(data *counterData, _ identity.FullTaskName) {
	data.Retired++
}

type echo struct {
	answers []flow.ControlFlow
	seen    []identity.FullTaskName
	retired int
}

func (e *echo) Run(access Access) func(ctx context.Context) flow.ControlFlow {
	e.seen = append(e.seen, access.Name)
	return func(context.Context) flow.ControlFlow {
		ret := e.answers[0]
		e.answers = e.answers[1:]
		return ret
	}
}

func (e *echo) HandleControlFlowUpdate(_, _ identity.FullTaskName, outcome flow.ControlFlow) bool {
	return outcome.Kind == flow.KindStopAll
}

func (e *echo) Retire(identity.FullTaskName) { e.retired++ }

func TestSplit(t *testing.T) {
	name := identity.FullTaskName{Crate: "a", Task: "counter"}
	data := &counterData{}
	impl := counterImpl{}
	instance := &split[counterData]{impl: impl, state: lock.New(counterData{Limit: 3})}
	cycle := instance.Start(Access{Name: name})

	ctx := context.Background()
	assert.True(t, cycle(ctx).IsContinue())
	assert.True(t, cycle(ctx).IsContinue())

	outcome := cycle(ctx)
	assert.Equal(t, flow.KindErr, outcome.Kind)
	var fault *lock.Fault
	assert.True(t, errors.As(outcome.Err, &fault))
	assert.Equal(t, 1, instance.Faults())

	assert.True(t, cycle(ctx).IsContinue(), "instance stays usable after a fault")

	sibling := identity.FullTaskName{Crate: "a", Task: "other"}
	assert.True(t, instance.Notify(name, sibling, flow.FullReload()))
	assert.False(t, instance.Notify(name, identity.FullTaskName{Crate: "b", Task: "x"}, flow.FullReload()))

	instance.Retire(name)
	instance.Retire(name)
	_ = instance.state.View(func(value *counterData) { *data = *value })
	assert.Equal(t, 1, data.Retired)
	assert.Equal(t, 4, data.Count)
}

func TestMerged(t *testing.T) {
	name := identity.FullTaskName{Crate: "a", Task: "echo"}
	target := &echo{answers: []flow.ControlFlow{flow.Continue(), flow.StopThis()}}
	instance := Merged(target)
	cycle := instance.Start(Access{Name: name})

	ctx := context.Background()
	assert.True(t, cycle(ctx).IsContinue())
	assert.Equal(t, flow.KindStopThis, cycle(ctx).Kind)
	assert.Equal(t, []identity.FullTaskName{name}, target.seen)

	assert.True(t, instance.Notify(name, name, flow.StopAll()))
	assert.False(t, instance.Notify(name, name, flow.Reload()))

	instance.Retire(name)
	instance.Retire(name)
	assert.Equal(t, 1, target.retired)
}

type brokenTeardown struct{ echo }

func (b *brokenTeardown) Retire(identity.FullTaskName) { panic("teardown failed") }

func TestMerged_RetirePanicIsLogged(t *testing.T) {
	out := &bytes.Buffer{}
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(out, nil)))
	defer slog.SetDefault(previous)

	name := identity.FullTaskName{Crate: "a", Task: "broken"}
	instance := Merged(&brokenTeardown{})
	instance.Retire(name)
	instance.Retire(name)

	assert.Equal(t, 1, bytes.Count(out.Bytes(), []byte("Failed to retire task")))
	assert.Contains(t, out.String(), "a/broken")
	assert.Contains(t, out.String(), "teardown failed")
}
