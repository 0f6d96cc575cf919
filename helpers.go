package hxhoc

import (
	"net/http"

	"github.com/a-h/templ"
)

// Render writes a templ component to the HTTP response.
//
// Sets Content-Type to text/html and renders the component using the
// request's context. A *Node is a templ.Component, so rendered trees can be
// written directly:
//
//	node, err := inst.Render(r.Context())
//	if err != nil { ... }
//	hxhoc.Render(w, r, node)
func Render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}

// IsHTMX reports whether HTMX sent r.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// IsBoosted reports an hx-boost navigation.
func IsBoosted(r *http.Request) bool {
	return r.Header.Get("HX-Boosted") == "true"
}

// CurrentURL is the browser location HTMX reports, or "".
func CurrentURL(r *http.Request) string {
	return r.Header.Get("HX-Current-URL")
}

// TargetID is the id of the element the response will swap into.
func TargetID(r *http.Request) string {
	return r.Header.Get("HX-Target")
}

// HeaderSource returns a HocSource that injects the named request headers
// as props. Each entry maps a header to the prop key it fills; absent
// headers are skipped so they do not shadow defaults.
//
//	reg := hxhoc.NewRegistry(key, hxhoc.WithHocSource(hxhoc.HeaderSource(map[string]string{
//	    "X-User-Age": "age",
//	})))
func HeaderSource(headers map[string]string) func(*http.Request) Props {
	return func(r *http.Request) Props {
		out := Props{}
		for header, key := range headers {
			if v := r.Header.Get(header); v != "" {
				out[key] = v
			}
		}
		return out
	}
}
