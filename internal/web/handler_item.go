package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"larder/internal/domain"
)

type createItemRequest struct {
	StorageAreaID string  `json:"storageAreaId"`
	Name          string  `json:"name"`
	Quantity      int     `json:"quantity"`
	ExpiryDate    *string `json:"expiryDate"`
}

type adjustQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type openItemRequest struct {
	Quantity int `json:"quantity"`
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.items.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toItemDTOs(items))
}

// handleCreateItem adds stock. A matching unopened item absorbs the quantity
// and comes back with its original id; the caller cannot tell a merge from a
// fresh insert except by that id.
func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	var expiry *time.Time
	if req.ExpiryDate != nil {
		parsed, err := time.Parse(domain.DateLayout, *req.ExpiryDate)
		if err != nil {
			s.writeError(w, domain.Validationf("invalid expiry date %q, want YYYY-MM-DD", *req.ExpiryDate))
			return
		}
		expiry = &parsed
	}

	item, err := s.items.CreateOrMerge(r.Context(), req.StorageAreaID, req.Name, req.Quantity, expiry)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toItemDTO(item))
}

// handleAdjustQuantity overwrites the item's quantity. A value below 1
// deletes the record and answers 204.
func (s *Server) handleAdjustQuantity(w http.ResponseWriter, r *http.Request) {
	var req adjustQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	item, deleted, err := s.items.AdjustQuantity(r.Context(), chi.URLParam(r, "id"), req.Quantity)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if deleted {
		s.writeJSON(w, http.StatusNoContent, nil)
		return
	}
	s.writeJSON(w, http.StatusOK, toItemDTO(item))
}

func (s *Server) handleOpenItem(w http.ResponseWriter, r *http.Request) {
	var req openItemRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	items, err := s.items.Open(r.Context(), chi.URLParam(r, "id"), req.Quantity)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"items": toItemDTOs(items)})
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.items.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusNoContent, nil)
}
