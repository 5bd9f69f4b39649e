package web

import (
	"time"

	"larder/internal/domain"
)

type areaDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type itemDTO struct {
	ID            string     `json:"id"`
	StorageAreaID string     `json:"storageAreaId"`
	Name          string     `json:"name"`
	Quantity      int        `json:"quantity"`
	IsOpened      bool       `json:"isOpened"`
	OpenedAt      *time.Time `json:"openedAt,omitempty"`
	ExpiryDate    *string    `json:"expiryDate,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func toAreaDTO(a *domain.StorageArea) areaDTO {
	return areaDTO{
		ID:        a.ID,
		Name:      a.Name,
		Icon:      a.Icon,
		Color:     a.Color,
		Position:  a.Position,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toAreaDTOs(areas []*domain.StorageArea) []areaDTO {
	out := make([]areaDTO, 0, len(areas))
	for _, a := range areas {
		out = append(out, toAreaDTO(a))
	}
	return out
}

func toItemDTO(it *domain.PantryItem) itemDTO {
	dto := itemDTO{
		ID:            it.ID,
		StorageAreaID: it.StorageAreaID,
		Name:          it.Name,
		Quantity:      it.Quantity,
		IsOpened:      it.IsOpened,
		OpenedAt:      it.OpenedAt,
		CreatedAt:     it.CreatedAt,
	}
	if it.ExpiryDate != nil {
		formatted := it.ExpiryDate.Format(domain.DateLayout)
		dto.ExpiryDate = &formatted
	}
	return dto
}

func toItemDTOs(items []*domain.PantryItem) []itemDTO {
	out := make([]itemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, toItemDTO(it))
	}
	return out
}
