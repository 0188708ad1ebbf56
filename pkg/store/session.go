package store

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/vango-dev/roster/internal/errors"
)

// Session bundles one instance of every store. It is created per browser
// session and owns its stores for the session's lifetime.
type Session struct {
	Search         *SearchStore
	Character      *CharacterStore
	CharacterCells *CharacterCellStore
	User           *UserStore

	byID map[string]Store
}

// NewSession creates a session with empty stores.
func NewSession(logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		Search:         NewSearchStore(logger),
		Character:      NewCharacterStore(logger),
		CharacterCells: NewCharacterCellStore(logger),
		User:           NewUserStore(logger),
	}
	s.byID = map[string]Store{
		SearchID:         s.Search,
		CharacterID:      s.Character,
		CharacterCellsID: s.CharacterCells,
		UserID:           s.User,
	}
	return s
}

// Store looks up a store by ID.
func (s *Session) Store(id string) (Store, error) {
	st, ok := s.byID[id]
	if !ok {
		return nil, errors.New("E300").
			WithDetailf("no store is registered as %q", id).
			WithSuggestion("Use one of: " + strings.Join(s.IDs(), ", "))
	}
	return st, nil
}

// IDs returns the store IDs in sorted order.
func (s *Session) IDs() []string {
	ids := make([]string, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clear resets every store.
func (s *Session) Clear() {
	for _, st := range s.byID {
		st.Clear()
	}
}
