package store

import (
	"log/slog"
	"strings"

	"github.com/vango-dev/roster/pkg/urlparam"
)

// UserCriteria is the user (person) search form.
type UserCriteria struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// UserPatch is a partial UserCriteria; nil fields are left as-is.
type UserPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
}

func (p UserPatch) fields() map[string]*string {
	return map[string]*string{
		"firstName": p.FirstName,
		"lastName":  p.LastName,
		"email":     p.Email,
	}
}

// userFields order is the order SearchQuery joins values in.
var userFields = fields[UserCriteria]{
	{"firstName", func(c *UserCriteria) *string { return &c.FirstName }},
	{"lastName", func(c *UserCriteria) *string { return &c.LastName }},
	{"email", func(c *UserCriteria) *string { return &c.Email }},
}

// UserStore keeps the user criteria and renders them as one free-text query.
type UserStore struct {
	criteria *Signal[UserCriteria]
	logger   *slog.Logger
}

// NewUserStore creates an empty user store.
func NewUserStore(logger *slog.Logger) *UserStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{
		criteria: NewSignal(UserCriteria{}),
		logger:   logger.With("store", UserID),
	}
}

// ID implements Store.
func (s *UserStore) ID() string { return UserID }

// SearchCriteria returns a copy of the current criteria.
func (s *UserStore) SearchCriteria() UserCriteria {
	return s.criteria.Get()
}

// SetSearchCriteria merges the non-nil fields of patch into the criteria.
func (s *UserStore) SetSearchCriteria(patch UserPatch) {
	s.Apply(patch.fields())
}

// ClearSearchCriteria resets every field to the empty string.
func (s *UserStore) ClearSearchCriteria() {
	s.criteria.Set(UserCriteria{})
}

// SearchQuery joins the non-empty fields (first name, last name, email)
// with single spaces.
func (s *UserStore) SearchQuery() string {
	return strings.TrimSpace(strings.Join(userFields.ordered(s.criteria.Get()), " "))
}

// Subscribe calls fn with the new criteria after every change.
func (s *UserStore) Subscribe(fn func(UserCriteria)) (unsubscribe func()) {
	return s.criteria.Subscribe(fn)
}

// Snapshot implements Store.
func (s *UserStore) Snapshot() map[string]string {
	return userFields.all(s.criteria.Get())
}

// Apply implements Store.
func (s *UserStore) Apply(patch map[string]*string) {
	s.criteria.Update(func(c UserCriteria) UserCriteria {
		return userFields.merge(c, patch)
	})
	s.logger.Debug("setting search criteria", "criteria", s.criteria.Get())
}

// Clear implements Store.
func (s *UserStore) Clear() {
	s.ClearSearchCriteria()
}

// Encode implements Store. The combined query travels as the q parameter.
func (s *UserStore) Encode() string {
	return urlparam.Encode(map[string]string{urlparam.QueryKey: s.SearchQuery()})
}

// Watch implements Store.
func (s *UserStore) Watch(fn func()) (unsubscribe func()) {
	return s.criteria.Subscribe(func(UserCriteria) { fn() })
}
