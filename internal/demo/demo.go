// Package demo provides the sample component served by the hxhoc CLI.
package demo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pthm/hxhoc"
)

// Base renders a profile card from its props.
type Base struct{}

func (Base) Name() string { return "Base" }

func (Base) Render(ctx context.Context, props hxhoc.Props) (*hxhoc.Node, error) {
	rows := make([]*hxhoc.Node, 0, len(props))
	for _, k := range props.Keys() {
		rows = append(rows, hxhoc.El("li", hxhoc.Props{"data-prop": k},
			hxhoc.Text(fmt.Sprintf("%s: %v", k, props[k])),
		))
	}
	return hxhoc.El("div", hxhoc.Props{"class": "base"},
		hxhoc.El("ul", nil, rows...),
	), nil
}

// New wraps Base with the given augmentation defaults, logging lifecycle
// events to logger.
func New(defaults hxhoc.Props, logger *slog.Logger) (*hxhoc.HOC, error) {
	return hxhoc.Wrap(Base{},
		hxhoc.WithName("Hoc2"),
		hxhoc.WithDefaults(defaults),
		hxhoc.WithLogger(logger),
	)
}
