package hxhoc

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// TextType is the Node type used for plain text leaves.
const TextType = "#text"

// Node is a rendered UI tree.
//
// Type names the component or element that produced the node and Props holds
// the properties it was rendered with. Text is only set on text leaves.
//
// A Node is also a templ.Component, so a tree can be written straight into a
// templ layout or an HTTP response.
type Node struct {
	Type     string  `json:"type"`
	Props    Props   `json:"props,omitempty"`
	Children []*Node `json:"children,omitempty"`
	Text     string  `json:"text,omitempty"`
}

// El builds a node of the given type. props is stored as-is; callers that
// keep mutating their bag should pass a Clone.
func El(typ string, props Props, children ...*Node) *Node {
	return &Node{Type: typ, Props: props, Children: children}
}

// Text builds a text leaf.
func Text(s string) *Node {
	return &Node{Type: TextType, Text: s}
}

// Render writes the tree as HTML.
//
// Each node becomes an element named after its Type with its props written as
// attributes in sorted key order through templ.RenderAttributes. Nil and
// false values are omitted, true becomes a bare attribute, and keys that are
// not valid attribute names are skipped.
func (n *Node) Render(ctx context.Context, w io.Writer) error {
	if n == nil {
		return nil
	}
	if n.Type == TextType {
		_, err := io.WriteString(w, templ.EscapeString(n.Text))
		return err
	}

	tag := elementName(n.Type)
	if _, err := io.WriteString(w, "<"+tag); err != nil {
		return err
	}
	if err := templ.RenderAttributes(ctx, w, n.attributes()); err != nil {
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	if n.Text != "" {
		if _, err := io.WriteString(w, templ.EscapeString(n.Text)); err != nil {
			return err
		}
	}
	for _, child := range n.Children {
		if err := child.Render(ctx, w); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</"+tag+">")
	return err
}

// attributes converts props into templ attributes in sorted key order.
// Keys that are not valid attribute names are dropped, as are nil values and
// nested trees. Values templ does not know are formatted with fmt.
func (n *Node) attributes() templ.OrderedAttributes {
	attrs := make(templ.OrderedAttributes, 0, len(n.Props))
	for _, k := range n.Props.Keys() {
		if !validAttrName(k) {
			continue
		}
		var value any
		switch v := n.Props[k].(type) {
		case nil, *Node, []*Node:
			continue
		case string, bool,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64:
			value = v
		default:
			value = fmt.Sprint(v)
		}
		attrs = append(attrs, templ.KV(k, value))
	}
	return attrs
}

// validAttrName reports whether name can be written as an HTML attribute
// name without changing the meaning of the tag.
func validAttrName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r <= ' ', r == 0x7f:
			return false
		case r == '"', r == '\'', r == '>', r == '<', r == '/', r == '=', r == '`':
			return false
		}
	}
	return true
}

// elementName lowercases a component type into something a browser will
// accept as a custom element name.
func elementName(typ string) string {
	name := strings.ToLower(typ)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		}
		return '-'
	}, name)
	if name == "" {
		return "div"
	}
	return name
}

var _ templ.Component = (*Node)(nil)
