package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/membrane/component"
	"github.com/zjrosen/membrane/internal/log"
	"github.com/zjrosen/membrane/pubsub"
	"github.com/zjrosen/membrane/tracing"
)

// Status is the lifecycle state of a component. There are exactly two
// states; no partial or paused states exist.
type Status string

const (
	// StatusStopped is the initial state.
	StatusStopped Status = "stopped"
	// StatusStarted is entered after a successful start cascade.
	StatusStarted Status = "started"
)

// String returns the string representation of the Status.
func (s Status) String() string {
	return string(s)
}

// StatusChange describes one committed lifecycle transition, delivered to
// Watch subscribers.
type StatusChange struct {
	ComponentID   component.ID
	ComponentName string // empty when the component has no NameController
	Old           Status
	New           Status
	At            time.Time
}

// LifecycleController is a two-state machine governing a component's
// operation. Starting or stopping cascades to every component-shaped
// (Runnable) interface value of the owning component, so operating on a
// container operates on its whole subtree.
type LifecycleController struct {
	base

	mu     sync.RWMutex
	status Status
	broker *pubsub.Broker[StatusChange]
}

// NewLifecycle attaches a LifecycleController to owner in StatusStopped,
// registering it under TagLifecycle.
func NewLifecycle(owner *component.Component) *LifecycleController {
	ctl := &LifecycleController{
		base:   base{owner: owner},
		status: StatusStopped,
		broker: pubsub.NewBroker[StatusChange](),
	}
	owner.AddInterface(component.TagLifecycle.String(), ctl)
	return ctl
}

// Tag returns TagLifecycle.
func (l *LifecycleController) Tag() component.Tag {
	return component.TagLifecycle
}

// Status returns the current lifecycle state.
func (l *LifecycleController) Status() Status {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.status
}

// Start cascades a start to every Runnable interface value of the owning
// component (except this controller), then commits StatusStarted.
//
// Start is idempotent: calling it on an already-started component
// re-cascades without error, so callers can retry to converge a
// partially-started subtree. If any child fails, the controller's own state
// is left as it was and the error propagates; lifecycle changes are not
// atomic across a tree.
func (l *LifecycleController) Start(ctx context.Context) error {
	ctx, span := tracing.StartSpan(ctx, tracing.SpanStart,
		attribute.String(tracing.AttrComponentID, l.owner.ID().String()),
		attribute.String(tracing.AttrComponentName, l.ownerName()))

	err := l.cascade(ctx, true)
	tracing.EndSpan(span, err)
	if err != nil {
		return err
	}

	l.transition(StatusStarted)
	return nil
}

// Stop cascades a stop to every Runnable interface value of the owning
// component, then commits StatusStopped. Idempotent, with the same failure
// semantics as Start.
func (l *LifecycleController) Stop(ctx context.Context) error {
	ctx, span := tracing.StartSpan(ctx, tracing.SpanStop,
		attribute.String(tracing.AttrComponentID, l.owner.ID().String()),
		attribute.String(tracing.AttrComponentName, l.ownerName()))

	err := l.cascade(ctx, false)
	tracing.EndSpan(span, err)
	if err != nil {
		return err
	}

	l.transition(StatusStopped)
	return nil
}

// Watch subscribes to committed lifecycle transitions of the owning
// component. The channel closes when ctx is cancelled. Transitions are
// delivered best-effort: a slow subscriber misses events rather than
// blocking the cascade.
func (l *LifecycleController) Watch(ctx context.Context) <-chan StatusChange {
	return l.broker.Subscribe(ctx)
}

// cascade invokes Start or Stop on every Runnable interface value of the
// owning component, skipping this controller itself. The first failure
// aborts the remainder.
func (l *LifecycleController) cascade(ctx context.Context, start bool) error {
	self := component.Runnable(l)

	for name, value := range l.owner.Interfaces() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("cascade on %s interrupted: %w", l.owner.ID(), err)
		}

		r, ok := value.(component.Runnable)
		if !ok || r == self {
			continue
		}

		var err error
		if start {
			err = r.Start(ctx)
		} else {
			err = r.Stop(ctx)
		}
		if err != nil {
			return fmt.Errorf("cascading to interface %q of %s: %w", name, l.owner.ID(), err)
		}
	}
	return nil
}

// transition commits the new status and publishes a StatusChange when the
// status actually changed.
func (l *LifecycleController) transition(to Status) {
	l.mu.Lock()
	old := l.status
	l.status = to
	l.mu.Unlock()

	if old == to {
		return
	}

	log.Debug(log.CatLife, "lifecycle transition",
		"component", l.owner.ID(), "from", old, "to", to)
	l.broker.Publish(StatusChange{
		ComponentID:   l.owner.ID(),
		ComponentName: l.ownerName(),
		Old:           old,
		New:           to,
		At:            time.Now(),
	})
}

// ownerName resolves the owning component's name, empty when unnamed.
func (l *LifecycleController) ownerName() string {
	nc, err := Resolve[*NameController](l.owner, component.TagName)
	if err != nil {
		return ""
	}
	return nc.Name()
}
