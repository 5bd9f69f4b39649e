package web

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"larder/internal/domain"
)

type dislikeRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleSuggestRecipes(w http.ResponseWriter, r *http.Request) {
	suggestions, err := s.recipes.SuggestRecipes(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

func (s *Server) handleSearchRecipes(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.recipes.SearchByIngredient(r.Context(), r.URL.Query().Get("ingredient"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	recipe, err := s.recipes.GetRecipe(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, recipe)
}

func (s *Server) handleListDislikes(w http.ResponseWriter, r *http.Request) {
	names, err := s.recipes.ListDislikes(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleAddDislike(w http.ResponseWriter, r *http.Request) {
	var req dislikeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.recipes.Dislike(r.Context(), req.Name); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, nil)
}

// handleRemoveDislike takes the recipe name as a path segment; chi keeps it
// percent-encoded, so decode before lookup.
func (s *Server) handleRemoveDislike(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, domain.Validationf("invalid recipe name"))
		return
	}
	if err := s.recipes.Undislike(r.Context(), name); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}
