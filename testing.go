package hxhoc

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
)

// TestResult holds the result of rendering a component for testing.
//
// Provides convenience methods for asserting on HTML content, headers,
// status codes and emitted diagnostics.
type TestResult struct {
	Node        *Node
	HTML        string
	StatusCode  int
	Headers     http.Header
	Diagnostics []string
}

// TestRender renders a component and returns testable output.
//
// Use this for pure unit tests of rendering logic when you control props
// directly and don't need lifecycle or HTTP mechanics:
//
//	result, err := hxhoc.TestRender(comp, hxhoc.Props{"name": "x"})
//	if !result.HTMLContains(`name="x"`) {
//	    t.Fatal("missing expected content")
//	}
func TestRender(comp Component, props Props) (*TestResult, error) {
	return TestRenderWithContext(context.Background(), comp, props)
}

// TestRenderWithContext renders a component with a custom context.
func TestRenderWithContext(ctx context.Context, comp Component, props Props) (*TestResult, error) {
	node, err := comp.Render(ctx, props)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := node.Render(ctx, &buf); err != nil {
		return nil, err
	}

	return &TestResult{
		Node:       node,
		HTML:       buf.String(),
		StatusCode: http.StatusOK,
		Headers:    make(http.Header),
	}, nil
}

// TestMount drives a fresh instance of h through Mount, Render and Unmount
// and returns the rendered output together with the diagnostics emitted.
//
// The HOC's own sink is left untouched; diagnostics are captured from a copy
// of h that logs into a DiagnosticRecorder.
func TestMount(h *HOC, props, hocProps Props) (*TestResult, error) {
	ctx := context.Background()
	rec := NewDiagnosticRecorder()

	probe := *h
	probe.logger = slog.New(rec)

	inst := probe.New(props)
	inst.SetHocProps(hocProps)
	if err := inst.Mount(ctx); err != nil {
		return nil, err
	}
	node, err := inst.Render(ctx)
	if err != nil {
		return nil, err
	}
	if err := inst.Unmount(ctx); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := node.Render(ctx, &buf); err != nil {
		return nil, err
	}

	return &TestResult{
		Node:        node,
		HTML:        buf.String(),
		StatusCode:  http.StatusOK,
		Headers:     make(http.Header),
		Diagnostics: rec.Messages(),
	}, nil
}

// TestGet simulates a GET request against a handler such as Registry.Handler().
func TestGet(h http.Handler, target string) (*TestResult, error) {
	return NewTestRequest(http.MethodGet, target).Execute(h)
}

// HTMLContains checks if the HTML contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains all the given substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// DiagnosticCount reports how many times msg was emitted.
func (r *TestResult) DiagnosticCount(msg string) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d == msg {
			n++
		}
	}
	return n
}

// IsOK checks if the status code is 200.
func (r *TestResult) IsOK() bool {
	return r.StatusCode == http.StatusOK
}

// HasStatus checks if the status code matches.
func (r *TestResult) HasStatus(code int) bool {
	return r.StatusCode == code
}

// HasHeader checks if a header is set with the given value.
func (r *TestResult) HasHeader(key, value string) bool {
	return r.Headers.Get(key) == value
}

// TestRequestBuilder provides a fluent interface for building test requests.
//
//	result, err := hxhoc.NewTestRequest("POST", target).
//	    WithFormData("p", encoded).
//	    WithHeader("X-User-Age", "30").
//	    Execute(reg.Handler())
type TestRequestBuilder struct {
	method   string
	url      string
	formData map[string]string
	headers  map[string]string
	ctx      context.Context
	htmx     bool
}

// NewTestRequest creates a new test request builder. Requests carry the
// HX-Request header unless WithoutHTMX is called.
func NewTestRequest(method, url string) *TestRequestBuilder {
	return &TestRequestBuilder{
		method:   method,
		url:      url,
		formData: make(map[string]string),
		headers:  make(map[string]string),
		ctx:      context.Background(),
		htmx:     true,
	}
}

// WithFormData adds form data to the request.
func (b *TestRequestBuilder) WithFormData(key, value string) *TestRequestBuilder {
	b.formData[key] = value
	return b
}

// WithHeader adds a header to the request.
func (b *TestRequestBuilder) WithHeader(key, value string) *TestRequestBuilder {
	b.headers[key] = value
	return b
}

// WithContext sets the context for the request.
func (b *TestRequestBuilder) WithContext(ctx context.Context) *TestRequestBuilder {
	b.ctx = ctx
	return b
}

// WithoutHTMX drops the default HX-Request header.
func (b *TestRequestBuilder) WithoutHTMX() *TestRequestBuilder {
	b.htmx = false
	return b
}

// Execute executes the request against h.
func (b *TestRequestBuilder) Execute(h http.Handler) (*TestResult, error) {
	form := url.Values{}
	for k, v := range b.formData {
		form.Set(k, v)
	}

	req := httptest.NewRequest(b.method, b.url, strings.NewReader(form.Encode()))
	req = req.WithContext(b.ctx)
	if b.htmx {
		req.Header.Set("HX-Request", "true")
	}
	if len(b.formData) > 0 {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range b.headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return &TestResult{
		HTML:       rec.Body.String(),
		StatusCode: rec.Code,
		Headers:    rec.Header(),
	}, nil
}

// DiagnosticRecorder is an slog.Handler that keeps every record it sees.
// Use it as a sink to assert on lifecycle diagnostics:
//
//	rec := hxhoc.NewDiagnosticRecorder()
//	hoc, _ := hxhoc.Wrap(base, hxhoc.WithLogger(slog.New(rec)))
type DiagnosticRecorder struct {
	mu      *sync.Mutex
	records *[]slog.Record
	attrs   []slog.Attr
}

// NewDiagnosticRecorder returns an empty recorder.
func NewDiagnosticRecorder() *DiagnosticRecorder {
	return &DiagnosticRecorder{mu: &sync.Mutex{}, records: &[]slog.Record{}}
}

func (d *DiagnosticRecorder) Enabled(context.Context, slog.Level) bool { return true }

func (d *DiagnosticRecorder) Handle(_ context.Context, rec slog.Record) error {
	rec = rec.Clone()
	rec.AddAttrs(d.attrs...)
	d.mu.Lock()
	defer d.mu.Unlock()
	*d.records = append(*d.records, rec)
	return nil
}

func (d *DiagnosticRecorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &DiagnosticRecorder{
		mu:      d.mu,
		records: d.records,
		attrs:   append(append([]slog.Attr{}, d.attrs...), attrs...),
	}
}

// WithGroup is a no-op; diagnostics are flat.
func (d *DiagnosticRecorder) WithGroup(string) slog.Handler { return d }

// Records returns a copy of the captured records.
func (d *DiagnosticRecorder) Records() []slog.Record {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]slog.Record(nil), *d.records...)
}

// Messages returns the messages of the captured records in order.
func (d *DiagnosticRecorder) Messages() []string {
	recs := d.Records()
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Message
	}
	return out
}

// Attr returns the value of key on the i-th record.
func (d *DiagnosticRecorder) Attr(i int, key string) (slog.Value, bool) {
	recs := d.Records()
	if i < 0 || i >= len(recs) {
		return slog.Value{}, false
	}
	var (
		val   slog.Value
		found bool
	)
	recs[i].Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			val, found = a.Value, true
			return false
		}
		return true
	})
	return val, found
}

// SpyComponent records the props of every render and delegates to Render.
// A nil RenderFn produces El(Type, props).
type SpyComponent struct {
	Type     string
	RenderFn RenderFunc
	Calls    []Props
}

// Name returns the spy's component type.
func (s *SpyComponent) Name() string { return s.Type }

// Render records props and renders them.
func (s *SpyComponent) Render(ctx context.Context, props Props) (*Node, error) {
	s.Calls = append(s.Calls, props)
	if s.RenderFn != nil {
		return s.RenderFn(ctx, props)
	}
	return El(s.Type, props), nil
}

// LastProps returns the props of the most recent render, or nil.
func (s *SpyComponent) LastProps() Props {
	if len(s.Calls) == 0 {
		return nil
	}
	return s.Calls[len(s.Calls)-1]
}
