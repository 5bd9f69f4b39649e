package service

import (
	"context"
	"log/slog"
	"strings"

	"larder/internal/domain"
)

// areaRepository is the subset of store.AreaStore that AreaService requires.
type areaRepository interface {
	EnsureDefaults(ctx context.Context) error
	Create(ctx context.Context, name, icon, color string) (*domain.StorageArea, error)
	GetByID(ctx context.Context, id string) (*domain.StorageArea, error)
	List(ctx context.Context) ([]*domain.StorageArea, error)
	Update(ctx context.Context, id string, name, icon, color *string) error
	DeleteCascade(ctx context.Context, id string) error
	Reorder(ctx context.Context, ids []string) error
}

// AreaService manages storage areas and their display order.
type AreaService struct {
	areas  areaRepository
	logger *slog.Logger
}

func NewAreaService(areas areaRepository, logger *slog.Logger) *AreaService {
	return &AreaService{areas: areas, logger: logger}
}

// EnsureDefaults seeds fridge/freezer/pantry on an empty install.
func (s *AreaService) EnsureDefaults(ctx context.Context) error {
	return s.areas.EnsureDefaults(ctx)
}

func (s *AreaService) CreateArea(ctx context.Context, name, icon, color string) (*domain.StorageArea, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validationf("area name must not be empty")
	}
	if icon == "" {
		icon = "box"
	}
	if color == "" {
		color = "slate"
	}
	if !domain.ValidIcon(icon) {
		return nil, domain.Validationf("unknown icon %q", icon)
	}
	if !domain.ValidColor(color) {
		return nil, domain.Validationf("unknown color %q", color)
	}

	area, err := s.areas.Create(ctx, name, icon, color)
	if err != nil {
		return nil, err
	}
	s.logger.Info("area created", "area_id", area.ID, "name", area.Name, "position", area.Position)
	return area, nil
}

func (s *AreaService) GetArea(ctx context.Context, id string) (*domain.StorageArea, error) {
	return s.areas.GetByID(ctx, id)
}

func (s *AreaService) ListAreas(ctx context.Context) ([]*domain.StorageArea, error) {
	return s.areas.List(ctx)
}

// UpdateArea applies the provided fields; nil keeps the current value. An
// empty trimmed name keeps the old name (same as omitting it) rather than
// failing the whole update.
func (s *AreaService) UpdateArea(ctx context.Context, id string, name, icon, color *string) (*domain.StorageArea, error) {
	if icon != nil && !domain.ValidIcon(*icon) {
		return nil, domain.Validationf("unknown icon %q", *icon)
	}
	if color != nil && !domain.ValidColor(*color) {
		return nil, domain.Validationf("unknown color %q", *color)
	}

	if err := s.areas.Update(ctx, id, name, icon, color); err != nil {
		return nil, err
	}
	return s.areas.GetByID(ctx, id)
}

// DeleteArea removes the area, every item inside it, and re-packs the
// survivors' positions — atomically, so the 0..N-1 position invariant is
// never observed broken.
func (s *AreaService) DeleteArea(ctx context.Context, id string) error {
	if err := s.areas.DeleteCascade(ctx, id); err != nil {
		return err
	}
	s.logger.Info("area deleted", "area_id", id)
	return nil
}

// ReorderAreas applies the requested display order and returns the full
// re-packed list. Areas missing from the request keep their relative order
// after the requested ones.
func (s *AreaService) ReorderAreas(ctx context.Context, ids []string) ([]*domain.StorageArea, error) {
	if len(ids) == 0 {
		return nil, domain.Validationf("reorder requires at least one area id")
	}
	if err := s.areas.Reorder(ctx, ids); err != nil {
		return nil, err
	}
	return s.areas.List(ctx)
}
