package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	var props, hocProps []string

	c := &cobra.Command{
		Use:   "render",
		Short: "Render the demo component once",
		Long: `Creates an instance of the demo component, mounts it, renders it with the
given props and unmounts it. The tree is printed as HTML; lifecycle
diagnostics go to stderr.`,
		Example: `  hxhoc render --prop name=x
  hxhoc render --prop name=x --hoc age=30`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			p, err := parseProps("prop", props)
			if err != nil {
				return err
			}
			hp, err := parseProps("hoc", hocProps)
			if err != nil {
				return err
			}

			e, err := setup(c.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx := c.Context()
			inst := e.hoc.New(p)
			inst.SetHocProps(hp)
			if err := inst.Mount(ctx); err != nil {
				return err
			}
			node, renderErr := inst.Render(ctx)
			if err := inst.Unmount(ctx); err != nil {
				return err
			}
			if renderErr != nil {
				return renderErr
			}

			out := c.OutOrStdout()
			if err := node.Render(ctx, out); err != nil {
				return err
			}
			_, err = fmt.Fprintln(out)
			return err
		},
	}

	c.Flags().StringArrayVar(&props, "prop", nil, "caller prop as key=value (repeatable)")
	c.Flags().StringArrayVar(&hocProps, "hoc", nil, "injected prop as key=value (repeatable)")
	return c
}
