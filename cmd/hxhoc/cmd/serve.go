package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/pthm/hxhoc"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	var props, headers []string
	var sensitive bool

	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo component over HTTP",
		Long: `Starts an HTTP server on HXHOC_ADDR. Each request to the component route
drives one instance through mount, render and unmount. The index page loads
the component with HTMX; Prometheus metrics are served at /metrics.`,
		Example: `  hxhoc serve --prop name=x --inject-header X-User-Age=age`,
		Args:    cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			p, err := parseProps("prop", props)
			if err != nil {
				return err
			}
			inject, err := parsePairs("inject-header", headers)
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

			handler, err := newServer(e, p, inject)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return listen(ctx, e, handler)
		},
	}

	c.Flags().StringArrayVar(&props, "prop", nil, "caller prop for the index page as key=value (repeatable)")
	c.Flags().StringArrayVar(&headers, "inject-header", nil, "inject a request header as a prop, Header=key (repeatable)")
	c.Flags().BoolVar(&sensitive, "sensitive", false, "encrypt props instead of signing them")
	return c
}

// newServer wires the registry, metrics and index page.
func newServer(e *env, props hxhoc.Props, inject map[string]string) (http.Handler, error) {
	pr := prometheus.NewRegistry()
	pr.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	opts := []hxhoc.RegistryOption{
		hxhoc.WithRegistryLogger(e.logger),
		hxhoc.WithMetrics(hxhoc.NewMetrics(pr)),
	}
	if len(inject) > 0 {
		opts = append(opts, hxhoc.WithHocSource(hxhoc.HeaderSource(inject)))
	}

	reg := hxhoc.NewRegistry([]byte(e.cfg.Key), opts...)
	reg.Add(e.hoc)

	target, err := reg.URL(e.hoc, props)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/_c/", reg.Handler())
	mux.Handle("GET /metrics", promhttp.HandlerFor(pr, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		if err := hxhoc.Render(w, r, indexPage(e.hoc.Name(), target)); err != nil {
			e.logger.ErrorContext(r.Context(), "index render failed", "error", err)
		}
	})
	return mux, nil
}

func indexPage(title, target string) *hxhoc.Node {
	return hxhoc.El("html", nil,
		hxhoc.El("head", nil,
			hxhoc.El("title", nil, hxhoc.Text(title)),
			hxhoc.El("script", hxhoc.Props{"src": "https://unpkg.com/htmx.org@2.0.4"}),
		),
		hxhoc.El("body", nil,
			hxhoc.El("main", hxhoc.Props{
				"id":         "component",
				"hx-get":     target,
				"hx-trigger": "load",
			}, hxhoc.Text("Loading...")),
		),
	)
}

func listen(ctx context.Context, e *env, handler http.Handler) error {
	srv := &http.Server{
		Addr:              e.cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		e.logger.Info("listening", "addr", e.cfg.Addr, "component", e.hoc.Name(), "prefix", e.hoc.Prefix())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	e.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
