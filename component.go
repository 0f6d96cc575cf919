package hxhoc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"reflect"
	"runtime"

	"github.com/google/uuid"
)

// HOC is a higher-order component: a Component type produced by Wrap that
// renders the component it wraps with augmented props.
//
// An HOC is itself a Component, so wrappers nest:
//
//	inner, _ := hxhoc.Wrap(base, hxhoc.WithDefaults(hxhoc.Props{"age": "28"}))
//	outer, _ := hxhoc.Wrap(inner, hxhoc.WithName("Audited"))
//
// Rendering an HOC directly (via Render) behaves like an instance whose
// injected props are empty. Hosts that drive lifecycle create an Instance
// with New.
//
// Each HOC receives a deterministic URL prefix based on its name and the
// source location of the Wrap call, which the Registry uses for routing.
type HOC struct {
	name      string
	prefix    string
	wrapped   Component
	defaults  Props
	logger    *slog.Logger
	sensitive bool
}

// Option configures Wrap.
type Option func(*options)

type options struct {
	name     string
	defaults Props
	logger   *slog.Logger
}

// WithName sets the HOC's type name. Defaults to "hoc(<wrapped name>)".
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithDefaults sets the fixed augmentation values the HOC overlays on the
// caller's props. Injected props can still override them.
//
// The bag is copied; later changes to defaults do not affect the HOC.
func WithDefaults(defaults Props) Option {
	return func(o *options) {
		o.defaults = Merge(o.defaults, defaults)
	}
}

// WithLogger sets the diagnostic sink for instance lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSink writes lifecycle diagnostics as text to w.
func WithSink(w io.Writer) Option {
	return func(o *options) {
		o.logger = NewSinkLogger(w)
	}
}

// Wrap returns a new component type that renders c with augmented props.
//
// c must implement Component. Anything else - including nil and typed nil
// pointers - is rejected with a *ContractError before any instance exists:
//
//	hoc, err := hxhoc.Wrap(base, hxhoc.WithDefaults(hxhoc.Props{"age": "28"}))
//	if hxhoc.IsContractViolation(err) { ... }
func Wrap(c any, opts ...Option) (*HOC, error) {
	return wrap(c, callSite(1), opts)
}

// MustWrap is like Wrap but panics on error. Use it for package-level
// component definitions.
func MustWrap(c any, opts ...Option) *HOC {
	h, err := wrap(c, callSite(1), opts)
	if err != nil {
		panic(err)
	}
	return h
}

// wrap builds the HOC. site is the source location of the call that asked
// for it and feeds the prefix hash.
func wrap(c any, site string, opts []Option) (*HOC, error) {
	comp, err := asComponent(c)
	if err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	name := o.name
	if name == "" {
		name = "hoc(" + NameOf(comp) + ")"
	}
	logger := o.logger
	if logger == nil {
		logger = discardLogger()
	}

	return &HOC{
		name:     name,
		prefix:   "/_c/" + elementName(name) + "-" + componentHash(name, site),
		wrapped:  comp,
		defaults: o.defaults.Clone(),
		logger:   logger,
	}, nil
}

// asComponent checks the render capability of c.
func asComponent(c any) (Component, error) {
	if c == nil {
		return nil, &ContractError{Value: "<nil>", Reason: "nil component"}
	}
	v := reflect.ValueOf(c)
	switch v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map:
		if v.IsNil() {
			return nil, &ContractError{Value: fmt.Sprintf("%T", c), Reason: "nil component"}
		}
	}
	comp, ok := c.(Component)
	if !ok {
		return nil, &ContractError{
			Value:  fmt.Sprintf("%T", c),
			Reason: "missing Render(context.Context, hxhoc.Props) (*hxhoc.Node, error)",
		}
	}
	return comp, nil
}

// Name returns the HOC's type name.
func (h *HOC) Name() string {
	return h.name
}

// Prefix returns the HOC's URL prefix.
func (h *HOC) Prefix() string {
	return h.prefix
}

// Wrapped returns the component this HOC renders.
func (h *HOC) Wrapped() Component {
	return h.wrapped
}

// Defaults returns a copy of the fixed augmentation values.
func (h *HOC) Defaults() Props {
	return h.defaults.Clone()
}

// Sensitive marks the HOC as sensitive so hosts encrypt its props in URLs
// instead of only signing them.
func (h *HOC) Sensitive() *HOC {
	h.sensitive = true
	return h
}

// IsSensitive returns whether the HOC's props are encrypted in URLs.
func (h *HOC) IsSensitive() bool {
	return h.sensitive
}

// Render renders the wrapped component with props overlaid by the HOC's
// defaults. It implements Component so HOCs can be wrapped again.
func (h *HOC) Render(ctx context.Context, props Props) (*Node, error) {
	return h.render(ctx, props, nil)
}

// New instantiates the HOC with the caller's props. The instance starts in
// StateCreated; the host drives it from there.
func (h *HOC) New(props Props) *Instance {
	id := uuid.NewString()
	return &Instance{
		hoc:    h,
		id:     id,
		state:  StateCreated,
		props:  props.Clone(),
		logger: h.logger.With(AttrComponent, h.name, AttrInstance, id),
	}
}

// render merges props, defaults and injected props (right-most wins) and
// hands the result to the wrapped component. The tree is returned untouched.
func (h *HOC) render(ctx context.Context, props, hocProps Props) (*Node, error) {
	merged := Merge(props, h.defaults, hocProps)
	node, err := h.wrapped.Render(ctx, merged)
	if err != nil {
		return nil, fmt.Errorf("%s: render %s: %w", h.name, NameOf(h.wrapped), err)
	}
	return node, nil
}

// callSite returns "file:line" of the caller skip frames above the function
// calling callSite, or "" if it is unknown.
func callSite(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return ""
	}
	// Use base filename only for portability across environments
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

// componentHash generates a deterministic hash based on component name and source location.
func componentHash(name, site string) string {
	input := name
	if site != "" {
		input = site + ":" + name
	}
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:4]) // 8 hex chars
}

var _ Component = (*HOC)(nil)
