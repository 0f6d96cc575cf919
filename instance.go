package hxhoc

import (
	"context"
	"log/slog"
)

// State is the lifecycle state of an Instance.
type State int

const (
	// StateCreated is the initial, not yet mounted state.
	StateCreated State = iota
	// StateMounted is entered once on Mount.
	StateMounted
	// StateUnmounted is terminal. A new instance is needed to mount again.
	StateUnmounted
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateMounted:
		return "mounted"
	case StateUnmounted:
		return "unmounted"
	}
	return "unknown"
}

// Instance is a live HOC driven by a host.
//
// The host calls Mount once, Render any number of times, then Unmount once.
// Render is also accepted before Mount since some hosts render first. Every
// other ordering fails with a *LifecycleError.
//
// An Instance owns two prop channels: the caller's props (SetProps) and the
// injected props (SetHocProps). Both are snapshotted once at the start of each
// Render, merged with the HOC's defaults, and passed to the wrapped component.
//
// Instances are not safe for concurrent use; hosts drive them from a single
// goroutine.
type Instance struct {
	hoc      *HOC
	id       string
	state    State
	props    Props
	hocProps Props
	logger   *slog.Logger
}

// ID returns the instance's unique identifier.
func (i *Instance) ID() string {
	return i.id
}

// HOC returns the component type this instance was created from.
func (i *Instance) HOC() *HOC {
	return i.hoc
}

// State returns the current lifecycle state.
func (i *Instance) State() State {
	return i.state
}

// Props returns a copy of the caller's props.
func (i *Instance) Props() Props {
	return i.props.Clone()
}

// SetProps replaces the caller's props. The bag is copied.
func (i *Instance) SetProps(props Props) {
	i.props = props.Clone()
}

// HocProps returns a copy of the injected props.
func (i *Instance) HocProps() Props {
	return i.hocProps.Clone()
}

// SetHocProps replaces the injected props. The bag is copied. Injected props
// win over both the caller's props and the HOC's defaults.
func (i *Instance) SetHocProps(props Props) {
	i.hocProps = props.Clone()
}

// Mount moves the instance from StateCreated to StateMounted and emits the
// "mounted" diagnostic.
func (i *Instance) Mount(ctx context.Context) error {
	if i.state != StateCreated {
		return i.violation("mount")
	}
	i.state = StateMounted
	i.logger.InfoContext(ctx, EventMounted)
	return nil
}

// Unmount moves the instance from StateMounted to StateUnmounted and emits
// the "unmounted" diagnostic. Injected props are released.
func (i *Instance) Unmount(ctx context.Context) error {
	if i.state != StateMounted {
		return i.violation("unmount")
	}
	i.state = StateUnmounted
	i.hocProps = nil
	i.logger.InfoContext(ctx, EventUnmounted)
	return nil
}

// Render renders the wrapped component with the merged props and returns its
// tree unmodified. Rendering after Unmount is a lifecycle violation.
func (i *Instance) Render(ctx context.Context) (*Node, error) {
	if i.state == StateUnmounted {
		return nil, i.violation("render")
	}
	return i.hoc.render(ctx, i.props, i.hocProps)
}

func (i *Instance) violation(op string) error {
	return &LifecycleError{Component: i.hoc.name, Op: op, State: i.state}
}
