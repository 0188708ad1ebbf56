package store

import (
	"log/slog"
	"net/url"

	"github.com/vango-dev/roster/pkg/urlparam"
)

// CharacterCriteria is the character search form.
type CharacterCriteria struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Species string `json:"species"`
	Gender  string `json:"gender"`
}

// CharacterPatch is a partial CharacterCriteria; nil fields are left as-is.
type CharacterPatch struct {
	Name    *string
	Status  *string
	Species *string
	Gender  *string
}

func (p CharacterPatch) fields() map[string]*string {
	return map[string]*string{
		"name":    p.Name,
		"status":  p.Status,
		"species": p.Species,
		"gender":  p.Gender,
	}
}

var characterFields = fields[CharacterCriteria]{
	{"name", func(c *CharacterCriteria) *string { return &c.Name }},
	{"status", func(c *CharacterCriteria) *string { return &c.Status }},
	{"species", func(c *CharacterCriteria) *string { return &c.Species }},
	{"gender", func(c *CharacterCriteria) *string { return &c.Gender }},
}

// characterQuery picks the character fields present in q.
func characterQuery(q url.Values) map[string]*string {
	patch := make(map[string]*string, len(characterFields))
	for _, f := range characterFields {
		if _, ok := q[f.key]; ok {
			patch[f.key] = String(q.Get(f.key))
		}
	}
	return patch
}

// CharacterStore keeps the character criteria as one aggregate record.
type CharacterStore struct {
	criteria *Signal[CharacterCriteria]
	logger   *slog.Logger
}

// NewCharacterStore creates an empty character store.
func NewCharacterStore(logger *slog.Logger) *CharacterStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &CharacterStore{
		criteria: NewSignal(CharacterCriteria{}),
		logger:   logger.With("store", CharacterID),
	}
}

// ID implements Store.
func (s *CharacterStore) ID() string { return CharacterID }

// SearchCriteria returns a copy of the current criteria.
func (s *CharacterStore) SearchCriteria() CharacterCriteria {
	return s.criteria.Get()
}

// SetSearchCriteria merges the non-nil fields of patch into the criteria.
func (s *CharacterStore) SetSearchCriteria(patch CharacterPatch) {
	s.Apply(patch.fields())
}

// ClearSearchCriteria resets every field to the empty string.
func (s *CharacterStore) ClearSearchCriteria() {
	s.criteria.Set(CharacterCriteria{})
}

// SearchParams returns the non-empty fields keyed by field name.
func (s *CharacterStore) SearchParams() map[string]string {
	return characterFields.nonEmpty(s.criteria.Get())
}

// LoadQuery copies the character fields present in q into the store.
// Fields missing from q keep their value.
func (s *CharacterStore) LoadQuery(q url.Values) {
	s.Apply(characterQuery(q))
}

// Subscribe calls fn with the new criteria after every change.
func (s *CharacterStore) Subscribe(fn func(CharacterCriteria)) (unsubscribe func()) {
	return s.criteria.Subscribe(fn)
}

// Snapshot implements Store.
func (s *CharacterStore) Snapshot() map[string]string {
	return characterFields.all(s.criteria.Get())
}

// Apply implements Store.
func (s *CharacterStore) Apply(patch map[string]*string) {
	s.criteria.Update(func(c CharacterCriteria) CharacterCriteria {
		return characterFields.merge(c, patch)
	})
	s.logger.Debug("setting search criteria", "criteria", s.criteria.Get())
}

// Clear implements Store.
func (s *CharacterStore) Clear() {
	s.ClearSearchCriteria()
}

// Encode implements Store.
func (s *CharacterStore) Encode() string {
	return urlparam.Encode(s.SearchParams())
}

// Watch implements Store.
func (s *CharacterStore) Watch(fn func()) (unsubscribe func()) {
	return s.criteria.Subscribe(func(CharacterCriteria) { fn() })
}
