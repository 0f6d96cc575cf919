package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm/hxhoc"
)

func newURLCmd() *cobra.Command {
	var props []string
	var sensitive bool

	c := &cobra.Command{
		Use:   "url",
		Short: "Print the request URL for the demo component",
		Long: `Encodes the given props with HXHOC_KEY and prints the path that serve
answers for them.`,
		Example: `  hxhoc url --prop name=x`,
		Args:    cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			p, err := parseProps("prop", props)
			if err != nil {
				return err
			}
			e, err := setup(c.ErrOrStderr())
			if err != nil {
				return err
			}
			if sensitive {
				e.hoc.Sensitive()
			}

			reg := hxhoc.NewRegistry([]byte(e.cfg.Key))
			reg.Add(e.hoc)
			target, err := reg.URL(e.hoc, p)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.OutOrStdout(), target)
			return err
		},
	}

	c.Flags().StringArrayVar(&props, "prop", nil, "caller prop as key=value (repeatable)")
	c.Flags().BoolVar(&sensitive, "sensitive", false, "encrypt props instead of signing them")
	return c
}
