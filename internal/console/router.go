// Package console holds the admin console screens independent of how they are
// drawn: the route table with its authentication gate, route resolution, and
// the list, detail, edit and delete views shared by every entity.
package console

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	NotFoundRoute     = "404"
	LoginRoute        = "login"
	AccessDeniedRoute = "accessdenied"
	HomeRoute         = ""
)

type ConsoleLogHook struct{}

func (h *ConsoleLogHook) Fire(entry *logrus.Entry) error {
	entry.Message = "Console: " + entry.Message
	return nil
}

func (h *ConsoleLogHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// View is whatever a route renders. Controllers and the static pages
// implement it.
type View interface {
	Title() string
}

// Navigator moves between routes. Paths are relative, without leading slash,
// and may carry a query string.
type Navigator interface {
	Navigate(ctx context.Context, path string) error
	Back(ctx context.Context) error
}

// Gate tells the router who is signed in.
type Gate interface {
	Authenticated() bool
	HasAnyAuthority(authorities ...string) bool
}

// Request is what a route receives when it is opened.
type Request struct {
	Params url.Values
	Query  url.Values
	Data   map[string]string
}

// Param returns a path parameter such as "id".
func (r Request) Param(name string) string {
	return r.Params.Get(name)
}

// OpenFunc builds the view of a route. Returning a nil view without error
// means the route already navigated elsewhere.
type OpenFunc func(ctx context.Context, nav *Router, req Request) (View, error)

type Route struct {
	Path        string
	Data        map[string]string
	Guarded     bool
	Authorities []string
	Open        OpenFunc
}

type entry struct {
	url  string
	view View
}

// Router resolves paths to views, applies the authentication gate and keeps a
// history for Back.
type Router struct {
	gate Gate
	log  *logrus.Entry

	mu       sync.Mutex
	routes   []Route
	current  *entry
	history  []entry
	redirect string
	listener func(View)
}

var (
	ErrNoHistory     = errors.New("no previous view")
	errRouteNotFound = errors.New("route not found")
)

func NewRouter(gate Gate, log *logrus.Entry) *Router {
	r := &Router{
		gate: gate,
		log:  log,
	}

	r.Handle(Route{Path: NotFoundRoute, Open: staticPage(NotFoundPage{})})
	r.Handle(Route{Path: AccessDeniedRoute, Open: staticPage(AccessDeniedPage{})})

	return r
}

// Handle adds a route. A later route with the same path replaces the earlier
// one.
func (r *Router) Handle(route Route) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.routes {
		if r.routes[i].Path == route.Path {
			r.routes[i] = route
			return
		}
	}
	r.routes = append(r.routes, route)
}

// OnChange registers the function called with every newly shown view.
func (r *Router) OnChange(fn func(View)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listener = fn
}

func (r *Router) Current() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return nil
	}
	return r.current.view
}

func (r *Router) CurrentURL() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return ""
	}
	return r.current.url
}

func (r *Router) Navigate(ctx context.Context, path string) error {
	return r.open(ctx, path, true)
}

// Back reopens the previous view, or the home view when there is none.
func (r *Router) Back(ctx context.Context) error {
	r.mu.Lock()
	if len(r.history) == 0 {
		r.mu.Unlock()
		return r.open(ctx, HomeRoute, false)
	}
	prev := r.history[len(r.history)-1]
	r.history = r.history[:len(r.history)-1]
	r.mu.Unlock()

	return r.open(ctx, prev.url, false)
}

// ReplaceQuery rewrites the query of the current url without reopening it.
func (r *Router) ReplaceQuery(query url.Values) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return
	}
	path, _, _ := strings.Cut(r.current.url, "?")
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	r.current.url = path
}

// LoginSucceeded continues to the url the gate stopped, or home.
func (r *Router) LoginSucceeded(ctx context.Context) error {
	r.mu.Lock()
	target := r.redirect
	r.redirect = ""
	r.mu.Unlock()

	return r.open(ctx, target, false)
}

// RedirectURL is the url waiting for a successful login.
func (r *Router) RedirectURL() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.redirect
}

func (r *Router) open(ctx context.Context, rawURL string, push bool) error {
	rawURL = strings.TrimLeft(rawURL, "/")
	path, rawQuery, _ := strings.Cut(rawURL, "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}

	route, params, err := r.match(path)
	if err != nil {
		r.log.Debugf("no route for %q", rawURL)
		if path == NotFoundRoute {
			return err
		}
		return r.open(ctx, NotFoundRoute, push)
	}

	if route.Guarded {
		if r.gate == nil || !r.gate.Authenticated() {
			r.mu.Lock()
			r.redirect = rawURL
			r.mu.Unlock()
			r.log.Debugf("%q requires authentication", rawURL)
			return r.open(ctx, LoginRoute, push)
		}
		if len(route.Authorities) > 0 && !r.gate.HasAnyAuthority(route.Authorities...) {
			return r.open(ctx, AccessDeniedRoute, push)
		}
	}

	view, err := route.Open(ctx, r, Request{Params: params, Query: query, Data: route.Data})
	if err != nil {
		r.log.Errorf("open %q: %v", rawURL, err)
		return err
	}
	if view == nil {
		return nil
	}

	r.show(entry{url: rawURL, view: view}, push)
	return nil
}

func (r *Router) show(e entry, push bool) {
	r.mu.Lock()
	if push && r.current != nil {
		r.history = append(r.history, *r.current)
	}
	r.current = &e
	listener := r.listener
	r.mu.Unlock()

	if listener != nil {
		listener(e.view)
	}
}

func (r *Router) match(path string) (Route, url.Values, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	segments := splitPath(path)
	for _, route := range r.routes {
		if params, ok := matchSegments(splitPath(route.Path), segments); ok {
			return route, params, nil
		}
	}
	return Route{}, nil, errRouteNotFound
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func matchSegments(pattern, segments []string) (url.Values, bool) {
	if len(pattern) != len(segments) {
		return nil, false
	}
	params := url.Values{}
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			params.Set(p[1:], segments[i])
			continue
		}
		if p != segments[i] {
			return nil, false
		}
	}
	return params, true
}

func staticPage(v View) OpenFunc {
	return func(context.Context, *Router, Request) (View, error) {
		return v, nil
	}
}

type NotFoundPage struct{}

func (NotFoundPage) Title() string { return "Page not found" }

type AccessDeniedPage struct{}

func (AccessDeniedPage) Title() string { return "Access denied" }
