package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vango-dev/roster/internal/errors"
	"github.com/vango-dev/roster/pkg/store"
)

type ctxKey int

const (
	sessionKey ctxKey = iota
	sessionIDKey
	storeKey
)

// storeResponse is the wire form of a store, shared by the REST and
// WebSocket endpoints.
type storeResponse struct {
	ID      string            `json:"id"`
	Fields  map[string]string `json:"fields"`
	Encoded string            `json:"encoded"`
}

func snapshot(st store.Store) storeResponse {
	return storeResponse{
		ID:      st.ID(),
		Fields:  st.Snapshot(),
		Encoded: st.Encode(),
	}
}

// withSession attaches the caller's store.Session, creating one and setting
// the cookie when the request has no live session.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(SessionCookieName); err == nil {
			id = c.Value
		}

		id, sess, created := s.sessions.GetOrCreate(id)
		if created {
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				Secure:   s.config.SecureCookies,
			})
		}

		ctx := context.WithValue(r.Context(), sessionKey, sess)
		ctx = context.WithValue(ctx, sessionIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withStore resolves the {id} URL parameter against the session.
func (s *Server) withStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st, err := sessionFrom(r).Store(chi.URLParam(r, "id"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), storeKey, st)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(r *http.Request) *store.Session {
	return r.Context().Value(sessionKey).(*store.Session)
}

func sessionIDFrom(r *http.Request) string {
	return r.Context().Value(sessionIDKey).(string)
}

func storeFrom(r *http.Request) store.Store {
	return r.Context().Value(storeKey).(store.Store)
}

func (s *Server) handleListStores(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r).IDs())
}

// handleClearStores resets every store of the session.
func (s *Server) handleClearStores(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r).Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetStore(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, snapshot(storeFrom(r)))
}

// handlePatchStore merges a JSON object of string fields. Absent keys and
// null values leave the field unchanged.
func (s *Server) handlePatchStore(w http.ResponseWriter, r *http.Request) {
	st := storeFrom(r)

	var patch map[string]*string
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPatchBytes)).Decode(&patch); err != nil {
		s.writeError(w, r, errors.New("E301").
			WithDetailf("store %q expects a JSON object of string fields", st.ID()).
			Wrap(err))
		return
	}

	st.Apply(patch)
	writeJSON(w, http.StatusOK, snapshot(st))
}

func (s *Server) handleClearStore(w http.ResponseWriter, r *http.Request) {
	st := storeFrom(r)
	st.Clear()
	writeJSON(w, http.StatusOK, snapshot(st))
}

const maxPatchBytes = 64 << 10
