package router

import (
	"reflect"
	"testing"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"/", nil},
		{"", nil},
		{"/users", []string{"users"}},
		{"/users/", []string{"users"}},
		{"users/list", []string{"users", "list"}},
	}
	for _, tt := range tests {
		if got := splitPath(tt.path); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"":             "/",
		"/":            "/",
		"about":        "/about",
		"/about/":      "/about",
		"/a/b/":        "/a/b",
		"//characters": "/characters",
	}
	for in, want := range tests {
		if got := normalizePath(in); got != want {
			t.Errorf("normalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRouteNodeMatch(t *testing.T) {
	root := newRouteNode("")
	users := &Route{Name: "users"}
	list := &Route{Name: "list"}
	root.insertRoute("/users").route = users
	root.insertRoute("/users/list").route = list

	if got, ok := root.match([]string{"users"}); !ok || got != users {
		t.Errorf("match users = %v, %v", got, ok)
	}
	if got, ok := root.match([]string{"users", "list"}); !ok || got != list {
		t.Errorf("match users/list = %v, %v", got, ok)
	}
	if _, ok := root.match(nil); ok {
		t.Error("root has no route and should not match")
	}
	if _, ok := root.match([]string{"users", "other"}); ok {
		t.Error("users/other should not match")
	}

	// Intermediate nodes without a route never match.
	root.insertRoute("/a/b").route = &Route{Name: "ab"}
	if _, ok := root.match([]string{"a"}); ok {
		t.Error("intermediate node should not match")
	}
}
