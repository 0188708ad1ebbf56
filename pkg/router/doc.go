// Package router implements the static route table that maps a navigation
// (path plus query string) to a view and that view's input props.
//
// Routes are registered once, at startup, and never change afterwards:
//
//	r, err := router.New(
//	    router.Route{Path: "/", Name: "home", View: "HomeView"},
//	    router.Route{
//	        Path: "/characters",
//	        Name: "characters",
//	        View: "CharacterView",
//	        Props: func(loc *router.Location) router.Props {
//	            return router.Props{"page": urlparam.Page(loc.Query)}
//	        },
//	    },
//	)
//
// # Matching
//
// Paths match exactly, segment by segment; leading and trailing slashes are
// ignored, so "/characters/" resolves like "/characters". There are no
// parameter or catch-all segments.
//
// # Props
//
// A route's PropsMapper receives the full Location and its result becomes
// the view's props. Routes without a mapper get an empty Props. Mappers are
// pure: they run before the Match is returned and see nothing but the
// Location.
//
// # Middleware
//
// Navigate runs the registered Middleware chain around resolution, which is
// where metrics, tracing and logging hook in (see pkg/middleware).
package router
