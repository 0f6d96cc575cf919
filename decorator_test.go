package hxhoc

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestChain_Order(t *testing.T) {
	tag := func(name string) Decorator {
		return func(c Component) (Component, error) {
			return Func(name, func(ctx context.Context, p Props) (*Node, error) {
				n, err := c.Render(ctx, p)
				if err != nil {
					return nil, err
				}
				return El(name, nil, n), nil
			}), nil
		}
	}

	c, err := Chain(baseComponent{}, tag("outer"), tag("inner"))
	if err != nil {
		t.Fatalf("Chain() error = %v", err)
	}

	node, err := c.Render(context.Background(), Props{"name": "x"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if node.Type != "outer" || node.Children[0].Type != "inner" || node.Children[0].Children[0].Type != "Base" {
		t.Errorf("unexpected nesting: %+v", node)
	}
}

func TestChain_Decorate(t *testing.T) {
	c, err := Chain(baseComponent{},
		Decorate(WithName("Outer"), WithDefaults(Props{"age": "40", "team": "core"})),
		Decorate(WithName("Inner"), WithDefaults(Props{"age": "28"})),
	)
	if err != nil {
		t.Fatalf("Chain() error = %v", err)
	}

	outer, ok := c.(*HOC)
	if !ok || outer.Name() != "Outer" {
		t.Fatalf("outermost component = %T %v, want HOC named Outer", c, NameOf(c))
	}

	node, err := c.Render(context.Background(), Props{"name": "x"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := Props{"name": "x", "age": "28", "team": "core"}
	if !reflect.DeepEqual(node.Props, want) {
		t.Errorf("props = %v, want %v", node.Props, want)
	}
}

func TestChain_NoDecorators(t *testing.T) {
	base := baseComponent{}
	c, err := Chain(base)
	if err != nil {
		t.Fatalf("Chain() error = %v", err)
	}
	if c != Component(base) {
		t.Error("Chain() without decorators should return its input")
	}
}

func TestChain_Errors(t *testing.T) {
	if _, err := Chain(nil, Decorate()); !IsContractViolation(err) {
		t.Errorf("Chain(nil) error = %v, want contract violation", err)
	}

	boom := errors.New("boom")
	calledOuter := false
	_, err := Chain(baseComponent{},
		func(c Component) (Component, error) { calledOuter = true; return c, nil },
		func(c Component) (Component, error) { return nil, boom },
	)
	if !errors.Is(err, boom) {
		t.Errorf("Chain() error = %v, want %v", err, boom)
	}
	if calledOuter {
		t.Error("Chain() should stop at the first error")
	}
}

func TestChain_DecoratorReturningNothing(t *testing.T) {
	var nilSpy *SpyComponent

	tests := []struct {
		name      string
		decorator Decorator
	}{
		{"nil component", func(Component) (Component, error) { return nil, nil }},
		{"typed nil pointer", func(Component) (Component, error) { return nilSpy, nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Chain(baseComponent{}, Decorate(), tt.decorator)
			if !IsContractViolation(err) {
				t.Errorf("Chain() error = %v, want contract violation", err)
			}
			if c != nil {
				t.Errorf("Chain() = %v, want nil", c)
			}
		})
	}
}

func TestDecorate_ErrorReturnsNilComponent(t *testing.T) {
	c, err := Decorate(WithName("Audited"))(nil)
	if !IsContractViolation(err) {
		t.Fatalf("error = %v, want contract violation", err)
	}
	if c != nil {
		t.Errorf("Decorate()(nil) = %#v, want a nil Component", c)
	}
}

func TestDecorate_PrefixFollowsDecorateCall(t *testing.T) {
	first := Decorate(WithName("Audited"))
	second := Decorate(WithName("Audited"))

	a, err := first(baseComponent{})
	if err != nil {
		t.Fatalf("first() error = %v", err)
	}
	b, err := second(baseComponent{})
	if err != nil {
		t.Fatalf("second() error = %v", err)
	}
	again, err := first(Func("Other", func(ctx context.Context, p Props) (*Node, error) { return nil, nil }))
	if err != nil {
		t.Fatalf("first() error = %v", err)
	}

	ha, hb, hagain := a.(*HOC), b.(*HOC), again.(*HOC)
	if ha.Prefix() == hb.Prefix() {
		t.Errorf("separate Decorate calls share prefix %q", ha.Prefix())
	}
	if ha.Prefix() != hagain.Prefix() {
		t.Errorf("one Decorate call gave prefixes %q and %q", ha.Prefix(), hagain.Prefix())
	}

	reg := NewRegistry([]byte("decorate-key"))
	reg.Add(ha, hb)
	if len(reg.Prefixes()) != 2 {
		t.Errorf("Prefixes() = %v, want 2 entries", reg.Prefixes())
	}
}
