package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vango-dev/roster/pkg/router"
)

type routeInfo struct {
	Name string      `json:"name"`
	Path string      `json:"path"`
	View router.View `json:"view"`
}

type navigateResponse struct {
	Name  string       `json:"name"`
	View  router.View  `json:"view"`
	Path  string       `json:"path"`
	Props router.Props `json:"props"`
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	routes := s.router.Routes()
	out := make([]routeInfo, 0, len(routes))
	for _, route := range routes {
		out = append(out, routeInfo{Name: route.Name, Path: route.Path, View: route.View})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleNavigate resolves the path after /api/navigate, with the request's
// query string, against the route table.
func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	target := "/" + chi.URLParam(r, "*")
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	match, err := s.router.Navigate(r.Context(), target)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, navigateResponse{
		Name:  match.Name(),
		View:  match.View(),
		Path:  match.Location.Path,
		Props: match.Props,
	})
}
