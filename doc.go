// Package hxhoc provides higher-order components for server-rendered Go UIs.
//
// A higher-order component (HOC) wraps an existing component and returns a
// new one that renders the original with augmented props and reports its own
// lifecycle, without the wrapped component knowing it is wrapped.
//
// # Core Concepts
//
// A Component turns a Props bag into a UI tree:
//
//	type Component interface {
//	    Render(ctx context.Context, props Props) (*Node, error)
//	}
//
// Wrap checks the render capability up front and returns an *HOC, which is
// itself a Component:
//
//	base := hxhoc.Func("Base", func(ctx context.Context, p hxhoc.Props) (*hxhoc.Node, error) {
//	    return hxhoc.El("Base", p), nil
//	})
//	hoc, err := hxhoc.Wrap(base,
//	    hxhoc.WithDefaults(hxhoc.Props{"age": "28"}),
//	    hxhoc.WithLogger(logger),
//	)
//
// Values without a Render method are rejected with a ContractError at wrap
// time rather than at first render.
//
// # Property Merging
//
// Every render merges three sources, right-most wins:
//
//	Merge(props, defaults, hocProps)
//
// The caller's props are the base, the HOC's fixed defaults override them,
// and the instance's injected props override both.
//
// # Lifecycle
//
// A host instantiates an HOC with New and drives the instance:
//
//	inst := hoc.New(hxhoc.Props{"name": "x"})
//	inst.Mount(ctx)                 // logs "mounted"
//	node, err := inst.Render(ctx)   // {Base {name:x age:28}}
//	inst.SetHocProps(hxhoc.Props{"age": "30"})
//	node, err = inst.Render(ctx)    // {Base {name:x age:30}}
//	inst.Unmount(ctx)               // logs "unmounted"
//
// Instances move from created to mounted to unmounted exactly once. Rendering
// after unmount, mounting twice, or unmounting an instance that was never
// mounted returns a LifecycleError.
//
// # Hosting over HTTP
//
// Registry is a reference host that serves HOCs over HTTP, carrying props in
// signed (or, for Sensitive HOCs, encrypted) URL parameters:
//
//	reg := hxhoc.NewRegistry(key, hxhoc.WithMetrics(hxhoc.NewMetrics(prometheus.DefaultRegisterer)))
//	reg.Add(hoc)
//	http.Handle("/_c/", reg.Handler())
//
// Each request gets its own instance, driven through mount, render and
// unmount.
package hxhoc
