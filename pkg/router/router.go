package router

import (
	"context"
	"net/url"
	"strings"

	"github.com/vango-dev/roster/internal/errors"
	"github.com/vango-dev/roster/pkg/urlparam"
)

// Router holds the static route table.
type Router struct {
	root       *routeNode
	routes     []*Route
	byName     map[string]*Route
	middleware []Middleware
}

// New builds a router from routes. Every route needs a non-empty path and
// name, and both must be unique across the table.
func New(routes ...Route) (*Router, error) {
	r := &Router{
		root:   newRouteNode(""),
		byName: make(map[string]*Route, len(routes)),
	}
	for _, route := range routes {
		if err := r.add(route); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustNew is like New but panics on an invalid table.
func MustNew(routes ...Route) *Router {
	r, err := New(routes...)
	if err != nil {
		panic(err)
	}
	return r
}

// add registers one route.
func (r *Router) add(route Route) error {
	if route.Path == "" {
		return errors.New("E100").
			WithDetailf("route %q has no path", route.Name)
	}
	if route.Name == "" {
		return errors.New("E103").
			WithDetailf("route for %q has no name", route.Path)
	}
	if existing, ok := r.byName[route.Name]; ok {
		return errors.New("E102").
			WithDetailf("name %q is used by %q and %q", route.Name, existing.Path, route.Path).
			WithSuggestion("Give every route a distinct name")
	}

	node := r.root.insertRoute(route.Path)
	if node.route != nil {
		return errors.New("E101").
			WithDetailf("path %q is registered by %q and %q", normalizePath(route.Path), node.route.Name, route.Name).
			WithSuggestion("Give every route a distinct path")
	}

	stored := route
	node.route = &stored
	r.routes = append(r.routes, &stored)
	r.byName[route.Name] = &stored
	return nil
}

// Use adds middleware that wraps every Navigate call.
func (r *Router) Use(mw ...Middleware) {
	r.middleware = append(r.middleware, mw...)
}

// Routes returns the route table in registration order.
func (r *Router) Routes() []Route {
	out := make([]Route, len(r.routes))
	for i, route := range r.routes {
		out[i] = *route
	}
	return out
}

// ByName looks up a route by its name.
func (r *Router) ByName(name string) (Route, bool) {
	route, ok := r.byName[name]
	if !ok {
		return Route{}, false
	}
	return *route, true
}

// Href builds a link to the named route carrying params as its query
// string. Empty params are left out.
func (r *Router) Href(name string, params map[string]string) (string, bool) {
	route, ok := r.byName[name]
	if !ok {
		return "", false
	}
	href := normalizePath(route.Path)
	if qs := urlparam.Encode(params); qs != "" {
		href += "?" + qs
	}
	return href, true
}

// Resolve matches path exactly against the table and derives the view's
// props from rawQuery. The second result is false when no route matches.
func (r *Router) Resolve(path, rawQuery string) (*Match, bool) {
	route, ok := r.root.match(splitPath(path))
	if !ok {
		return nil, false
	}

	// ParseQuery keeps every well-formed pair even when it reports an error.
	query, _ := url.ParseQuery(rawQuery)

	loc := &Location{
		Name:  route.Name,
		Path:  normalizePath(path),
		Query: query,
	}
	loc.FullPath = loc.Path
	if rawQuery != "" {
		loc.FullPath += "?" + rawQuery
	}

	props := Props{}
	if route.Props != nil {
		if mapped := route.Props(loc); mapped != nil {
			props = mapped
		}
	}

	return &Match{
		Route:    route,
		Location: loc,
		Props:    props,
	}, true
}

// Navigate resolves rawURL through the middleware chain. Only the path and
// query of rawURL are used. Unmatched paths return an E110 error.
func (r *Router) Navigate(ctx context.Context, rawURL string) (*Match, error) {
	u, err := parseTarget(rawURL)
	if err != nil {
		return nil, errors.New("E111").
			WithDetailf("cannot parse %q", rawURL).
			Wrap(err)
	}

	nav := &Navigation{
		ctx:      ctx,
		URL:      rawURL,
		Path:     u.Path,
		RawQuery: u.RawQuery,
	}

	err = ComposeMiddleware(nav, r.middleware, func() error {
		match, ok := r.Resolve(u.Path, u.RawQuery)
		if !ok {
			return errors.New("E110").
				WithDetailf("no route matches %q", normalizePath(u.Path))
		}
		nav.Match = match
		return nil
	})
	if err != nil {
		return nil, err
	}
	return nav.Match, nil
}

// parseTarget parses a navigation target. Rooted targets are parsed as
// request URIs so that a leading "//" stays part of the path instead of
// naming a host. The fragment is dropped.
func parseTarget(rawURL string) (*url.URL, error) {
	if strings.HasPrefix(rawURL, "/") {
		target, _, _ := strings.Cut(rawURL, "#")
		return url.ParseRequestURI(target)
	}
	return url.Parse(rawURL)
}
