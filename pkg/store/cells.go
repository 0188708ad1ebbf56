package store

import (
	"log/slog"
	"net/url"

	"github.com/vango-dev/roster/pkg/urlparam"
)

// CharacterCellStore keeps the character criteria as four independent cells.
// Views may subscribe to a single cell (e.g. only Name) instead of the whole
// record.
type CharacterCellStore struct {
	Name    *Signal[string]
	Status  *Signal[string]
	Species *Signal[string]
	Gender  *Signal[string]

	logger *slog.Logger
}

// NewCharacterCellStore creates an empty cell-based character store.
func NewCharacterCellStore(logger *slog.Logger) *CharacterCellStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &CharacterCellStore{
		Name:    NewSignal(""),
		Status:  NewSignal(""),
		Species: NewSignal(""),
		Gender:  NewSignal(""),
		logger:  logger.With("store", CharacterCellsID),
	}
}

// cellRef binds a serialized key to one cell.
type cellRef struct {
	key  string
	cell *Signal[string]
}

// cells returns the cells keyed like characterFields, in the same order.
func (s *CharacterCellStore) cells() []cellRef {
	return []cellRef{
		{"name", s.Name},
		{"status", s.Status},
		{"species", s.Species},
		{"gender", s.Gender},
	}
}

// ID implements Store.
func (s *CharacterCellStore) ID() string { return CharacterCellsID }

// SearchCriteria assembles the current cell values.
func (s *CharacterCellStore) SearchCriteria() CharacterCriteria {
	return CharacterCriteria{
		Name:    s.Name.Get(),
		Status:  s.Status.Get(),
		Species: s.Species.Get(),
		Gender:  s.Gender.Get(),
	}
}

// SetSearchCriteria writes every non-nil field of patch into its cell.
func (s *CharacterCellStore) SetSearchCriteria(patch CharacterPatch) {
	s.Apply(patch.fields())
}

// ClearSearchCriteria resets every cell to the empty string.
func (s *CharacterCellStore) ClearSearchCriteria() {
	for _, c := range s.cells() {
		c.cell.Set("")
	}
}

// SearchParams returns the non-empty cells keyed by field name.
func (s *CharacterCellStore) SearchParams() map[string]string {
	return characterFields.nonEmpty(s.SearchCriteria())
}

// LoadQuery copies the character fields present in q into their cells.
func (s *CharacterCellStore) LoadQuery(q url.Values) {
	s.Apply(characterQuery(q))
}

// Snapshot implements Store.
func (s *CharacterCellStore) Snapshot() map[string]string {
	return characterFields.all(s.SearchCriteria())
}

// Apply implements Store.
func (s *CharacterCellStore) Apply(patch map[string]*string) {
	for _, c := range s.cells() {
		if val, ok := patch[c.key]; ok && val != nil {
			c.cell.Set(*val)
		}
	}
	s.logger.Debug("setting search criteria", "criteria", s.SearchCriteria())
}

// Clear implements Store.
func (s *CharacterCellStore) Clear() {
	s.ClearSearchCriteria()
}

// Encode implements Store.
func (s *CharacterCellStore) Encode() string {
	return urlparam.Encode(s.SearchParams())
}

// Watch implements Store. fn runs once per changed cell.
func (s *CharacterCellStore) Watch(fn func()) (unsubscribe func()) {
	cells := s.cells()
	unsubs := make([]func(), 0, len(cells))
	for _, c := range cells {
		unsubs = append(unsubs, c.cell.Subscribe(func(string) { fn() }))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
