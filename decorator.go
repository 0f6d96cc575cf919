package hxhoc

// Decorator transforms one Component into another.
type Decorator func(Component) (Component, error)

// Decorate returns a Decorator that wraps its input with the given options.
// The HOC's prefix is derived from the Decorate call, so each Decorate
// expression yields its own route however the decorator is later invoked.
//
//	withAge := hxhoc.Decorate(hxhoc.WithDefaults(hxhoc.Props{"age": "28"}))
func Decorate(opts ...Option) Decorator {
	site := callSite(1)
	return func(c Component) (Component, error) {
		h, err := wrap(c, site, opts)
		if err != nil {
			return nil, err
		}
		return h, nil
	}
}

// Chain applies decorators to c so that the first decorator is the outermost:
//
//	Chain(c, a, b) == a(b(c))
//
// The first error aborts the chain. A decorator that returns no usable
// component fails with a *ContractError.
func Chain(c Component, decorators ...Decorator) (Component, error) {
	if _, err := asComponent(c); err != nil {
		return nil, err
	}
	for i := len(decorators) - 1; i >= 0; i-- {
		next, err := decorators[i](c)
		if err != nil {
			return nil, err
		}
		if c, err = asComponent(next); err != nil {
			return nil, err
		}
	}
	return c, nil
}
