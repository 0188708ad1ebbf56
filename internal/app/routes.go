package app

import (
	"github.com/vango-dev/roster/pkg/router"
	"github.com/vango-dev/roster/pkg/urlparam"
)

// Views rendered by the application.
const (
	HomeView      router.View = "HomeView"
	AboutView     router.View = "AboutView"
	UserView      router.View = "UserView"
	CharacterView router.View = "CharacterView"
)

// Routes returns the application's route table.
func Routes() []router.Route {
	return []router.Route{
		{Path: "/", Name: "home", View: HomeView},
		{Path: "/about", Name: "about", View: AboutView, Props: pageAndQuery},
		{Path: "/users", Name: "users", View: UserView, Props: pageOnly},
		{Path: "/characters", Name: "characters", View: CharacterView, Props: pageOnly},
	}
}

func pageOnly(loc *router.Location) router.Props {
	return router.Props{"page": urlparam.Page(loc.Query)}
}

func pageAndQuery(loc *router.Location) router.Props {
	return router.Props{
		"page":  urlparam.Page(loc.Query),
		"query": urlparam.Query(loc.Query),
	}
}

// NewRouter builds the route table with mw installed.
func NewRouter(mw ...router.Middleware) (*router.Router, error) {
	r, err := router.New(Routes()...)
	if err != nil {
		return nil, err
	}
	r.Use(mw...)
	return r, nil
}
