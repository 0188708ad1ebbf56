package store

import (
	"log/slog"
	"net/url"

	"github.com/vango-dev/roster/pkg/urlparam"
)

const searchQueryKey = "searchQuery"

// SearchStore keeps the global free-text search box.
type SearchStore struct {
	query  *Signal[string]
	logger *slog.Logger
}

// NewSearchStore creates an empty search store.
func NewSearchStore(logger *slog.Logger) *SearchStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchStore{
		query:  NewSignal(""),
		logger: logger.With("store", SearchID),
	}
}

// ID implements Store.
func (s *SearchStore) ID() string { return SearchID }

// SearchQuery returns the current search text.
func (s *SearchStore) SearchQuery() string {
	return s.query.Get()
}

// SetSearchQuery replaces the search text.
func (s *SearchStore) SetSearchQuery(q string) {
	s.query.Set(q)
	s.logger.Debug("setting search query", "query", q)
}

// ClearSearchQuery resets the search text to the empty string.
func (s *SearchStore) ClearSearchQuery() {
	s.query.Set("")
}

// LoadQuery takes the search text from the q parameter when present.
func (s *SearchStore) LoadQuery(q url.Values) {
	if _, ok := q[urlparam.QueryKey]; ok {
		s.SetSearchQuery(urlparam.Query(q))
	}
}

// Subscribe calls fn with the new text after every change.
func (s *SearchStore) Subscribe(fn func(string)) (unsubscribe func()) {
	return s.query.Subscribe(fn)
}

// Snapshot implements Store.
func (s *SearchStore) Snapshot() map[string]string {
	return map[string]string{searchQueryKey: s.query.Get()}
}

// Apply implements Store.
func (s *SearchStore) Apply(patch map[string]*string) {
	if val, ok := patch[searchQueryKey]; ok && val != nil {
		s.SetSearchQuery(*val)
	}
}

// Clear implements Store.
func (s *SearchStore) Clear() {
	s.ClearSearchQuery()
}

// Encode implements Store.
func (s *SearchStore) Encode() string {
	return urlparam.Encode(map[string]string{urlparam.QueryKey: s.query.Get()})
}

// Watch implements Store.
func (s *SearchStore) Watch(fn func()) (unsubscribe func()) {
	return s.query.Subscribe(func(string) { fn() })
}
