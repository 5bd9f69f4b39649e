package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type createAreaRequest struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type updateAreaRequest struct {
	Name  *string `json:"name"`
	Icon  *string `json:"icon"`
	Color *string `json:"color"`
}

type reorderAreasRequest struct {
	AreaIDs []string `json:"areaIds"`
}

func (s *Server) handleListAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := s.areas.ListAreas(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toAreaDTOs(areas))
}

func (s *Server) handleCreateArea(w http.ResponseWriter, r *http.Request) {
	var req createAreaRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	area, err := s.areas.CreateArea(r.Context(), req.Name, req.Icon, req.Color)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toAreaDTO(area))
}

func (s *Server) handleGetArea(w http.ResponseWriter, r *http.Request) {
	area, err := s.areas.GetArea(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toAreaDTO(area))
}

func (s *Server) handleUpdateArea(w http.ResponseWriter, r *http.Request) {
	var req updateAreaRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	area, err := s.areas.UpdateArea(r.Context(), chi.URLParam(r, "id"), req.Name, req.Icon, req.Color)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toAreaDTO(area))
}

func (s *Server) handleDeleteArea(w http.ResponseWriter, r *http.Request) {
	if err := s.areas.DeleteArea(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleReorderAreas(w http.ResponseWriter, r *http.Request) {
	var req reorderAreasRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	areas, err := s.areas.ReorderAreas(r.Context(), req.AreaIDs)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toAreaDTOs(areas))
}

func (s *Server) handleListAreaItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.items.ListByArea(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toItemDTOs(items))
}
