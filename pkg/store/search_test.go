package store

import (
	"net/url"
	"testing"
)

func TestSearchStore(t *testing.T) {
	s := NewSearchStore(nil)
	if s.SearchQuery() != "" {
		t.Errorf("Expected empty query, got %q", s.SearchQuery())
	}

	s.SetSearchQuery("portal gun")
	if s.SearchQuery() != "portal gun" {
		t.Errorf("Expected 'portal gun', got %q", s.SearchQuery())
	}
	if got, want := s.Encode(), "q=portal+gun"; got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}

	s.ClearSearchQuery()
	if s.SearchQuery() != "" || s.Encode() != "" {
		t.Errorf("after clear: query %q, encoded %q", s.SearchQuery(), s.Encode())
	}
}

func TestSearchStoreLoadQuery(t *testing.T) {
	s := NewSearchStore(nil)
	s.SetSearchQuery("kept")

	q, _ := url.ParseQuery("page=2")
	s.LoadQuery(q)
	if s.SearchQuery() != "kept" {
		t.Errorf("absent q should keep value, got %q", s.SearchQuery())
	}

	q, _ = url.ParseQuery("q=squanch")
	s.LoadQuery(q)
	if s.SearchQuery() != "squanch" {
		t.Errorf("Expected 'squanch', got %q", s.SearchQuery())
	}
}

func TestSearchStoreApplyAndWatch(t *testing.T) {
	s := NewSearchStore(nil)

	changes := 0
	s.Watch(func() { changes++ })

	s.Apply(map[string]*string{"searchQuery": String("x"), "other": String("y")})
	s.Apply(map[string]*string{"searchQuery": nil})

	if s.SearchQuery() != "x" {
		t.Errorf("Expected 'x', got %q", s.SearchQuery())
	}
	if changes != 1 {
		t.Errorf("changes = %d, want 1", changes)
	}
	if got := s.Snapshot()["searchQuery"]; got != "x" {
		t.Errorf("Snapshot = %q", got)
	}
}
