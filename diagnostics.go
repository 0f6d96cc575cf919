package hxhoc

import (
	"io"
	"log/slog"
)

// Diagnostic messages emitted by an Instance. Each record carries the
// component name and the instance ID as attributes.
const (
	EventMounted   = "mounted"
	EventUnmounted = "unmounted"
)

// Attribute keys attached to diagnostic records.
const (
	AttrComponent = "component"
	AttrInstance  = "instance"
)

// discardLogger is used when no sink is configured.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewSinkLogger returns a text logger writing to w. A nil writer discards.
func NewSinkLogger(w io.Writer) *slog.Logger {
	if w == nil {
		return discardLogger()
	}
	return slog.New(slog.NewTextHandler(w, nil))
}
