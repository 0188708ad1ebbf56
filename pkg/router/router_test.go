package router

import (
	"context"
	"reflect"
	"testing"

	"github.com/vango-dev/roster/internal/errors"
	"github.com/vango-dev/roster/pkg/urlparam"
)

func pageProps(loc *Location) Props {
	return Props{"page": urlparam.Page(loc.Query)}
}

func testRouter(t *testing.T) *Router {
	t.Helper()
	r, err := New(
		Route{Path: "/", Name: "home", View: "HomeView"},
		Route{Path: "/about", Name: "about", View: "AboutView", Props: func(loc *Location) Props {
			return Props{
				"page":  urlparam.Page(loc.Query),
				"query": urlparam.Query(loc.Query),
			}
		}},
		Route{Path: "/users", Name: "users", View: "UserView", Props: pageProps},
		Route{Path: "/characters", Name: "characters", View: "CharacterView", Props: pageProps},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestRouterResolve(t *testing.T) {
	r := testRouter(t)

	tests := []struct {
		name      string
		path      string
		query     string
		wantView  View
		wantProps Props
	}{
		{"characters page 2", "/characters", "page=2", "CharacterView", Props{"page": 2}},
		{"characters default page", "/characters", "", "CharacterView", Props{"page": 1}},
		{"characters bad page", "/characters", "page=abc", "CharacterView", Props{"page": 1}},
		{"users", "/users", "page=7", "UserView", Props{"page": 7}},
		{"about with query", "/about", "page=3&q=rick", "AboutView", Props{"page": 3, "query": "rick"}},
		{"about defaults", "/about", "", "AboutView", Props{"page": 1, "query": ""}},
		{"home has empty props", "/", "page=4", "HomeView", Props{}},
		{"trailing slash", "/characters/", "page=5", "CharacterView", Props{"page": 5}},
		{"empty path is home", "", "", "HomeView", Props{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := r.Resolve(tt.path, tt.query)
			if !ok {
				t.Fatalf("Resolve(%q, %q) did not match", tt.path, tt.query)
			}
			if m.View() != tt.wantView {
				t.Errorf("View = %q, want %q", m.View(), tt.wantView)
			}
			if !reflect.DeepEqual(m.Props, tt.wantProps) {
				t.Errorf("Props = %#v, want %#v", m.Props, tt.wantProps)
			}
		})
	}
}

func TestRouterResolveLocation(t *testing.T) {
	r := testRouter(t)

	m, ok := r.Resolve("characters/", "page=2&name=Rick")
	if !ok {
		t.Fatal("expected match")
	}
	if m.Location.Path != "/characters" {
		t.Errorf("Path = %q", m.Location.Path)
	}
	if m.Location.FullPath != "/characters?page=2&name=Rick" {
		t.Errorf("FullPath = %q", m.Location.FullPath)
	}
	if m.Location.Name != "characters" || m.Name() != "characters" {
		t.Errorf("Name = %q", m.Location.Name)
	}
	if m.Location.Query.Get("name") != "Rick" {
		t.Errorf("Query[name] = %q", m.Location.Query.Get("name"))
	}
}

func TestRouterResolveNoMatch(t *testing.T) {
	r := testRouter(t)

	for _, path := range []string{"/projects", "/characters/1", "/user", "/about/team"} {
		if _, ok := r.Resolve(path, ""); ok {
			t.Errorf("Resolve(%q) should not match", path)
		}
	}
}

func TestRouterMapperReturningNil(t *testing.T) {
	r := MustNew(Route{Path: "/x", Name: "x", View: "X", Props: func(*Location) Props { return nil }})
	m, ok := r.Resolve("/x", "")
	if !ok {
		t.Fatal("expected match")
	}
	if m.Props == nil || len(m.Props) != 0 {
		t.Errorf("Props = %#v, want empty non-nil", m.Props)
	}
}

func TestNewRejectsInvalidTables(t *testing.T) {
	tests := []struct {
		name   string
		routes []Route
		code   string
	}{
		{"empty path", []Route{{Name: "x"}}, "E100"},
		{"empty name", []Route{{Path: "/x"}}, "E103"},
		{"duplicate path", []Route{{Path: "/x", Name: "a"}, {Path: "/x", Name: "b"}}, "E101"},
		{"duplicate path after normalization", []Route{{Path: "/x", Name: "a"}, {Path: "x/", Name: "b"}}, "E101"},
		{"duplicate name", []Route{{Path: "/x", Name: "a"}, {Path: "/y", Name: "a"}}, "E102"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.routes...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.HasCode(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew should panic on duplicate names")
		}
	}()
	MustNew(Route{Path: "/a", Name: "a"}, Route{Path: "/b", Name: "a"})
}

func TestRouterRoutesAndByName(t *testing.T) {
	r := testRouter(t)

	routes := r.Routes()
	names := make([]string, len(routes))
	for i, route := range routes {
		names[i] = route.Name
	}
	want := []string{"home", "about", "users", "characters"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Routes() names = %v, want %v", names, want)
	}

	route, ok := r.ByName("users")
	if !ok || route.Path != "/users" || route.View != "UserView" {
		t.Errorf("ByName(users) = %+v, %v", route, ok)
	}
	if _, ok := r.ByName("nope"); ok {
		t.Error("ByName(nope) should miss")
	}
}

func TestRouterHref(t *testing.T) {
	r := testRouter(t)

	tests := []struct {
		name   string
		route  string
		params map[string]string
		want   string
	}{
		{"no params", "characters", nil, "/characters"},
		{"with params", "characters", map[string]string{"page": "2", "name": "Rick"}, "/characters?name=Rick&page=2"},
		{"drops empty", "about", map[string]string{"q": ""}, "/about"},
		{"root", "home", nil, "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Href(tt.route, tt.params)
			if !ok {
				t.Fatalf("Href(%q) missed", tt.route)
			}
			if got != tt.want {
				t.Errorf("Href = %q, want %q", got, tt.want)
			}
		})
	}

	if _, ok := r.Href("missing", nil); ok {
		t.Error("Href(missing) should miss")
	}
}

func TestRouterNavigate(t *testing.T) {
	r := testRouter(t)

	m, err := r.Navigate(context.Background(), "/characters?page=2")
	if err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if m.View() != "CharacterView" || m.Props["page"] != 2 {
		t.Errorf("Navigate = %q %#v", m.View(), m.Props)
	}

	abs, err := r.Navigate(context.Background(), "https://example.com/about?q=morty")
	if err != nil {
		t.Fatalf("Navigate absolute: %v", err)
	}
	if abs.Props["query"] != "morty" {
		t.Errorf("query = %v", abs.Props["query"])
	}
}

func TestRouterNavigateRootedTargets(t *testing.T) {
	r := testRouter(t)

	tests := []struct {
		target   string
		wantName string
		wantPage any
	}{
		{"//characters?page=2", "characters", 2},
		{"///characters", "characters", 1},
		{"/characters#top", "characters", 1},
		{"/characters?page=3#results", "characters", 3},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			m, err := r.Navigate(context.Background(), tt.target)
			if err != nil {
				t.Fatalf("Navigate: %v", err)
			}
			if m.Name() != tt.wantName {
				t.Errorf("name = %q, want %q", m.Name(), tt.wantName)
			}
			if m.Props["page"] != tt.wantPage {
				t.Errorf("page = %v, want %v", m.Props["page"], tt.wantPage)
			}
		})
	}
}

func TestRouterNavigateErrors(t *testing.T) {
	r := testRouter(t)

	_, err := r.Navigate(context.Background(), "/nowhere")
	if !errors.HasCode(err, "E110") {
		t.Errorf("unmatched err = %v, want E110", err)
	}

	_, err = r.Navigate(context.Background(), "http://[::1")
	if !errors.HasCode(err, "E111") {
		t.Errorf("bad URL err = %v, want E111", err)
	}

	_, err = r.Navigate(context.Background(), "/%zz")
	if !errors.HasCode(err, "E111") {
		t.Errorf("bad escape err = %v, want E111", err)
	}
}

func TestRouterNavigateMiddleware(t *testing.T) {
	r := testRouter(t)

	var order []string
	var seen *Match
	r.Use(
		MiddlewareFunc(func(nav *Navigation, next func() error) error {
			order = append(order, "outer")
			err := next()
			seen = nav.Match
			return err
		}),
		MiddlewareFunc(func(nav *Navigation, next func() error) error {
			order = append(order, "inner:"+nav.Path)
			return next()
		}),
	)

	if _, err := r.Navigate(context.Background(), "/users?page=3"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if !reflect.DeepEqual(order, []string{"outer", "inner:/users"}) {
		t.Errorf("order = %v", order)
	}
	if seen == nil || seen.Props["page"] != 3 {
		t.Errorf("middleware saw match %+v", seen)
	}
}
