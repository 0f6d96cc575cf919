// Package cmd implements the hxhoc command line.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pthm/hxhoc"
	"github.com/pthm/hxhoc/internal/config"
	"github.com/pthm/hxhoc/internal/demo"
)

const version = "0.1.0"

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the hxhoc command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hxhoc",
		Short: "Higher-order components for HTMX",
		Long: `hxhoc wraps a component with fixed augmentation props and drives its
mount, render and unmount lifecycle, either once on the command line or over
HTTP.

Configuration is read from HXHOC_ADDR, HXHOC_KEY, HXHOC_LOG_LEVEL,
HXHOC_LOG_FORMAT and HXHOC_DEFAULTS_FILE.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRenderCmd(),
		newURLCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
	return root
}

// env is the state every command starts from.
type env struct {
	cfg    config.Config
	logger *slog.Logger
	hoc    *hxhoc.HOC
}

// setup loads configuration and builds the demo HOC. Logs go to logOut.
func setup(logOut io.Writer) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := config.NewLogger(cfg, logOut)
	if err != nil {
		return nil, err
	}
	defaults, err := config.LoadDefaults(cfg.DefaultsFile)
	if err != nil {
		return nil, err
	}
	hoc, err := demo.New(defaults, logger)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger, hoc: hoc}, nil
}

// parsePairs splits ["k=v", ...] into a map. Later keys win.
func parsePairs(flag string, pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("--%s %q: expected key=value", flag, pair)
		}
		out[k] = v
	}
	return out, nil
}

// parseProps is parsePairs for prop flags.
func parseProps(flag string, pairs []string) (hxhoc.Props, error) {
	kv, err := parsePairs(flag, pairs)
	if err != nil {
		return nil, err
	}
	out := make(hxhoc.Props, len(kv))
	for k, v := range kv {
		out[k] = v
	}
	return out, nil
}
