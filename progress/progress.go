package progress

import (
	"context"
	"sync"
	"time"

	"github.com/viant/custard/internal/clock"
)

// Delta is an incremental counter change; fields may be negative.
type Delta struct {
	Registered int
	Live       int
	Cycles     int
	Reloads    int
	Stopped    int
	Faulted    int
}

// Progress aggregates counters for one supervisor. It is safe for
// concurrent use.
type Progress struct {
	StartedAt time.Time

	RegisteredTasks int
	LiveTasks       int
	Cycles          int
	Reloads         int
	StoppedTasks    int
	FaultedTasks    int

	sync.Mutex
	onChange func(Progress)
}

// New creates a tracker stamped with the current time.
func New(onChange func(Progress)) *Progress {
	return &Progress{StartedAt: clock.Now(), onChange: onChange}
}

// Update applies d. The change callback runs outside the lock with a copy.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.Lock()
	p.RegisteredTasks += d.Registered
	p.LiveTasks += d.Live
	p.Cycles += d.Cycles
	p.Reloads += d.Reloads
	p.StoppedTasks += d.Stopped
	p.FaultedTasks += d.Faulted
	snapshot := p.copy()
	cb := p.onChange
	p.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a read-only copy.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	defer p.Unlock()
	return p.copy()
}

// OnChange replaces the change callback; nil disables it.
func (p *Progress) OnChange(cb func(Progress)) {
	if p == nil {
		return
	}
	p.Lock()
	p.onChange = cb
	p.Unlock()
}

func (p *Progress) copy() Progress {
	return Progress{
		StartedAt:       p.StartedAt,
		RegisteredTasks: p.RegisteredTasks,
		LiveTasks:       p.LiveTasks,
		Cycles:          p.Cycles,
		Reloads:         p.Reloads,
		StoppedTasks:    p.StoppedTasks,
		FaultedTasks:    p.FaultedTasks,
	}
}

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithTracker embeds p in a derived context.
func WithTracker(ctx context.Context, p *Progress) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, trackerKey, p)
}

// FromContext extracts the tracker from ctx.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// UpdateCtx applies d to the tracker carried by ctx, if any.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
