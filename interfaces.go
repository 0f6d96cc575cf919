package hxhoc

import (
	"context"
	"reflect"
)

// Component is a renderable unit: it turns a Props bag into a UI tree.
//
// Render should be pure - it reads props and produces a tree without side
// effects, so rendering the same props twice yields equal trees.
//
// Example:
//
//	type Greeting struct{}
//
//	func (Greeting) Render(ctx context.Context, props hxhoc.Props) (*hxhoc.Node, error) {
//	    return hxhoc.El("p", nil, hxhoc.Text("Hello, "+props.String("name"))), nil
//	}
type Component interface {
	Render(ctx context.Context, props Props) (*Node, error)
}

// Named is implemented by components that report their own type name.
// Components without it are named after their Go type.
type Named interface {
	Name() string
}

// RenderFunc adapts an ordinary function into a Component.
type RenderFunc func(ctx context.Context, props Props) (*Node, error)

// Render calls f(ctx, props).
func (f RenderFunc) Render(ctx context.Context, props Props) (*Node, error) {
	return f(ctx, props)
}

type funcComponent struct {
	name string
	fn   RenderFunc
}

// Func returns a named Component backed by fn.
//
//	base := hxhoc.Func("Base", func(ctx context.Context, p hxhoc.Props) (*hxhoc.Node, error) {
//	    return hxhoc.El("Base", p), nil
//	})
func Func(name string, fn RenderFunc) Component {
	return &funcComponent{name: name, fn: fn}
}

func (c *funcComponent) Name() string { return c.name }

func (c *funcComponent) Render(ctx context.Context, props Props) (*Node, error) {
	return c.fn(ctx, props)
}

// NameOf returns the type name of c.
func NameOf(c Component) string {
	if n, ok := c.(Named); ok {
		if name := n.Name(); name != "" {
			return name
		}
	}
	t := reflect.TypeOf(c)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Name() == "" {
		return "Component"
	}
	return t.Name()
}
