package hxhoc

import (
	"maps"
	"slices"
)

// Props is a named value bag supplied to a component.
//
// A component treats the Props it receives as a read-only snapshot. Code that
// needs to change a bag should Clone it first.
type Props map[string]any

// Clone returns a shallow copy of p. A nil bag clones to an empty one.
func (p Props) Clone() Props {
	out := make(Props, len(p))
	maps.Copy(out, p)
	return out
}

// Get returns the value stored at key and whether it was present.
func (p Props) Get(key string) (any, bool) {
	v, ok := p[key]
	return v, ok
}

// String returns the value at key if it is a string.
func (p Props) String(key string) string {
	s, _ := p[key].(string)
	return s
}

// Keys returns the keys of p in sorted order.
func (p Props) Keys() []string {
	return slices.Sorted(maps.Keys(p))
}

// Merge overlays the given bags from left to right into a new Props.
//
// When a key appears in more than one layer the right-most layer wins, so
//
//	Merge(props, defaults, injected)
//
// yields the caller's props as the base, defaults on top of them, and
// injected values on top of everything. None of the inputs are modified and
// nil layers are skipped.
func Merge(layers ...Props) Props {
	n := 0
	for _, l := range layers {
		n += len(l)
	}
	out := make(Props, n)
	for _, l := range layers {
		maps.Copy(out, l)
	}
	return out
}
