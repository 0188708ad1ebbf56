package router

import (
	"context"
	"net/url"
)

// View identifies the view a route activates.
type View string

// Props are the input properties handed to a routed view.
type Props map[string]any

// PropsMapper derives a view's props from the navigation's Location.
type PropsMapper func(loc *Location) Props

// Route is one entry of the static route table.
type Route struct {
	// Path is the URL path the route answers to (e.g., "/characters").
	Path string

	// Name is the unique route name used to build links.
	Name string

	// View is the view activated by the route.
	View View

	// Props derives the view's props. Nil means the view gets empty props.
	Props PropsMapper
}

// Location describes the navigation target handed to a PropsMapper.
type Location struct {
	// Name is the matched route's name.
	Name string

	// Path is the normalized request path (e.g., "/characters").
	Path string

	// FullPath is Path plus the raw query string, if any.
	FullPath string

	// Query holds the parsed query parameters. Duplicate keys keep every
	// value; readers use Query.Get, so the first one wins.
	Query url.Values
}

// Match is the result of resolving a navigation against the route table.
type Match struct {
	// Route is the matched route definition.
	Route *Route

	// Location is the descriptor the props were derived from.
	Location *Location

	// Props are the derived view props, never nil.
	Props Props
}

// Name returns the matched route name.
func (m *Match) Name() string {
	return m.Route.Name
}

// View returns the matched view.
func (m *Match) View() View {
	return m.Route.View
}

// Navigation carries a single Navigate call through the middleware chain.
type Navigation struct {
	ctx context.Context

	// URL is the raw navigation target.
	URL string

	// Path is the requested path, before matching.
	Path string

	// RawQuery is the requested query string, without the leading '?'.
	RawQuery string

	// Match is set once resolution succeeds.
	Match *Match
}

// Context returns the navigation's context.
func (n *Navigation) Context() context.Context {
	if n.ctx == nil {
		return context.Background()
	}
	return n.ctx
}

// SetContext replaces the navigation's context, e.g. to carry a span to
// later middleware.
func (n *Navigation) SetContext(ctx context.Context) {
	n.ctx = ctx
}

// Middleware processes navigations before they reach the resolver.
type Middleware interface {
	// Handle processes the navigation and optionally calls next.
	// Return an error to stop the chain and report an error.
	Handle(nav *Navigation, next func() error) error
}

// MiddlewareFunc is a function adapter for Middleware.
type MiddlewareFunc func(nav *Navigation, next func() error) error

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(nav *Navigation, next func() error) error {
	return f(nav, next)
}
