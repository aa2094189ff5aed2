package demo

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/custard/internal/clock"
	"github.com/viant/custard/model/flow"
	"github.com/viant/custard/model/identity"
	"github.com/viant/custard/model/task"
	"github.com/viant/custard/service/console"
	"github.com/viant/custard/service/datachunk"
	"github.com/viant/custard/service/loader"
)

func newRegistry(t *testing.T, opts ...Option) *loader.Registry {
	r := loader.New()
	require.NoError(t, Attach(r, opts...))
	return r
}

func TestAttach(t *testing.T) {
	r := newRegistry(t, WithOutput(io.Discard))
	assert.Equal(t, []string{CounterType, FlipperType, PromptType, TimerType}, r.Names(loader.KindTask))
	assert.Equal(t, []string{DatachunkType}, r.Names(loader.KindDatachunk))
}

func TestCounter(t *testing.T) {
	out := &bytes.Buffer{}
	r := newRegistry(t, WithOutput(out))
	instance, err := r.ConstructTask(CounterType, "limit: 3")
	require.NoError(t, err)

	name := identity.FullTaskName{Crate: "demo", Task: "counter"}
	cycle := instance.Start(task.Access{Name: name})
	ctx := context.Background()
	assert.True(t, cycle(ctx).IsContinue())
	assert.True(t, cycle(ctx).IsContinue())
	assert.Equal(t, flow.KindStopThis, cycle(ctx).Kind)

	assert.True(t, instance.Notify(name, identity.FullTaskName{Crate: "demo", Task: "other"}, flow.FullReload()))
	assert.False(t, instance.Notify(name, identity.FullTaskName{Crate: "other", Task: "t"}, flow.Reload()))
	assert.False(t, instance.Notify(name, identity.FullTaskName{Crate: "demo", Task: "other"}, flow.StopThis()))

	instance.Retire(name)
	instance.Retire(name)
	assert.Equal(t, "demo/counter: counted 3 cycles\n", out.String())

	_, err = r.ConstructTask(CounterType, "limit: -1")
	assert.ErrorIs(t, err, loader.ErrInvalidConfig)
}

func TestTimer(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	defer clock.Set(func() time.Time { return now })()

	out := &bytes.Buffer{}
	r := newRegistry(t, WithOutput(out))
	name := identity.FullTaskName{Crate: "demo", Task: "timer"}

	instance, err := r.ConstructTask(TimerType, nil)
	require.NoError(t, err)
	cycle := instance.Start(task.Access{Name: name})
	cycle(context.Background())
	cycle(context.Background())
	now = now.Add(1500 * time.Millisecond)
	instance.Retire(name)
	assert.Equal(t, "demo/timer: ran for 1.5s over 2 ticks\n", out.String())

	out.Reset()
	instance, err = r.ConstructTask(TimerType, "started: 2024-01-02T03:04:00Z")
	require.NoError(t, err)
	instance.Retire(name)
	assert.Equal(t, "demo/timer: ran for 6.5s over 0 ticks\n", out.String())

	_, err = r.ConstructTask(TimerType, "started: yesterday")
	assert.ErrorIs(t, err, loader.ErrInvalidConfig)
}

func TestFlipper(t *testing.T) {
	r := newRegistry(t, WithOutput(io.Discard))
	store := datachunk.New()
	chunkName := identity.FullDatachunkName{Crate: "demo", Datachunk: "chunk_a"}
	value, err := r.ConstructDatachunk(DatachunkType, "field_a: false\nfield_b: 1\nfield_c: x\n")
	require.NoError(t, err)
	require.NoError(t, store.Register(chunkName, value))

	testCases := []struct {
		name     string
		task     identity.TaskName
		store    *datachunk.Store
		expected TestDatachunkA
	}{
		{name: "owner flips once", task: "t2", store: store, expected: TestDatachunkA{FieldA: true, FieldB: 2, FieldC: "x"}},
		{name: "other task leaves chunk alone", task: "t4", store: store, expected: TestDatachunkA{FieldA: true, FieldB: 2, FieldC: "x"}},
		{name: "no store access", task: "t2", expected: TestDatachunkA{FieldA: true, FieldB: 2, FieldC: "x"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			instance, err := r.ConstructTask(FlipperType, "chunk: chunk_a\nowner: t2\n")
			require.NoError(t, err)
			cycle := instance.Start(task.Access{Name: identity.FullTaskName{Crate: "demo", Task: tc.task}, Store: tc.store})
			for i := 0; i < 3; i++ {
				assert.True(t, cycle(context.Background()).IsContinue())
			}
			var actual TestDatachunkA
			require.NoError(t, datachunk.Get[TestDatachunkA](store, chunkName, func(v *TestDatachunkA) { actual = *v }))
			assert.Equal(t, tc.expected, actual)
		})
	}

	_, err = r.ConstructTask(FlipperType, nil)
	assert.ErrorIs(t, err, loader.ErrInvalidConfig)
}

func TestPrompt(t *testing.T) {
	input := strings.Join([]string{
		"c", "huh", "R", "f",
		"p", "B, C, bad/name", "maybe", "y",
		"p", "B", "no",
		"s", "a", "e",
	}, "\n") + "\n"
	out := &bytes.Buffer{}
	r := newRegistry(t, WithConsole(console.NewWithIO(strings.NewReader(input), out)))
	instance, err := r.ConstructTask(PromptType, nil)
	require.NoError(t, err)
	name := identity.FullTaskName{Crate: "A", Task: "prompt"}
	cycle := instance.Start(task.Access{Name: name})

	expected := []flow.ControlFlow{
		flow.Continue(),
		flow.Continue(),
		flow.Reload(),
		flow.FullReload(),
		flow.PartialReload("B", "C"),
		flow.PartialReload(),
		flow.StopThis(),
		flow.StopAll(),
		flow.Err(flow.ErrNotInCycle),
		flow.StopThis(),
	}
	for i, want := range expected {
		assert.Equal(t, want.String(), cycle(context.Background()).String(), i)
	}
	assert.Contains(t, out.String(), "A/prompt next [c/r/f/p/s/a/e]?")
	assert.Contains(t, out.String(), `unknown input: "huh"`)
	assert.Contains(t, out.String(), "reload {B, C}? [y/n]")

	instance.Retire(name)
	assert.Contains(t, out.String(), "A/prompt: retired")
}

func TestPrompt_ChooseCrate(t *testing.T) {
	input := strings.Join([]string{"p", "3", "2", "y", "p", "a", "y", "p", "b"}, "\n") + "\n"
	out := &bytes.Buffer{}
	r := newRegistry(t, WithConsole(console.NewWithIO(strings.NewReader(input), out)))
	instance, err := r.ConstructTask(PromptType, "crates: [A, B]")
	require.NoError(t, err)
	name := identity.FullTaskName{Crate: "A", Task: "prompt"}
	cycle := instance.Start(task.Access{Name: name})

	expected := []flow.ControlFlow{
		flow.PartialReload("B"),
		flow.PartialReload("A"),
		flow.PartialReload(),
	}
	for i, want := range expected {
		assert.Equal(t, want.String(), cycle(context.Background()).String(), i)
	}
	assert.Contains(t, out.String(), "crate to reload? (1:A, 2:B)")

	_, err = r.ConstructTask(PromptType, "crates: [a/b]")
	assert.ErrorIs(t, err, loader.ErrInvalidConfig)
}
