package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"larder/internal/domain"
)

// itemRepository is the subset of store.ItemStore that ItemService requires.
type itemRepository interface {
	CreateOrMerge(ctx context.Context, areaID, name string, quantity int, expiry *time.Time) (*domain.PantryItem, error)
	GetByID(ctx context.Context, id string) (*domain.PantryItem, error)
	ListByArea(ctx context.Context, areaID string) ([]*domain.PantryItem, error)
	List(ctx context.Context) ([]*domain.PantryItem, error)
	SetQuantity(ctx context.Context, id string, quantity int) error
	Open(ctx context.Context, id string, quantityToOpen int, now time.Time) ([]*domain.PantryItem, error)
	Delete(ctx context.Context, id string) error
}

// areaLookup is the subset of store.AreaStore that ItemService requires.
type areaLookup interface {
	GetByID(ctx context.Context, id string) (*domain.StorageArea, error)
}

// ItemService is the item lifecycle engine: creation-with-merge, absolute
// quantity adjustment, open/split and deletion. All validation happens
// before any store mutation.
type ItemService struct {
	items  itemRepository
	areas  areaLookup
	logger *slog.Logger
}

func NewItemService(items itemRepository, areas areaLookup, logger *slog.Logger) *ItemService {
	return &ItemService{items: items, areas: areas, logger: logger}
}

// CreateOrMerge adds quantity units of the named item to the area. When an
// unopened item with the same case-insensitive name and the same expiry
// already exists there, the quantity folds into it silently; the merge is
// the expected path, not a conflict.
func (s *ItemService) CreateOrMerge(ctx context.Context, areaID, name string, quantity int, expiry *time.Time) (*domain.PantryItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validationf("item name must not be empty")
	}
	if quantity < 1 {
		return nil, domain.Validationf("quantity must be at least 1, got %d", quantity)
	}

	if _, err := s.areas.GetByID(ctx, areaID); err != nil {
		return nil, err
	}

	if expiry != nil {
		d := domain.DateOnly(*expiry)
		expiry = &d
	}

	item, err := s.items.CreateOrMerge(ctx, areaID, name, quantity, expiry)
	if err != nil {
		return nil, err
	}
	s.logger.Info("item stored", "item_id", item.ID, "name", item.Name, "quantity", item.Quantity, "area_id", areaID)
	return item, nil
}

// AdjustQuantity overwrites the item's quantity. A new quantity below 1
// deletes the record instead; deleted reports which path was taken.
func (s *ItemService) AdjustQuantity(ctx context.Context, id string, newQuantity int) (item *domain.PantryItem, deleted bool, err error) {
	if newQuantity < 1 {
		if err := s.items.Delete(ctx, id); err != nil {
			return nil, false, err
		}
		s.logger.Info("item consumed", "item_id", id)
		return nil, true, nil
	}

	if err := s.items.SetQuantity(ctx, id, newQuantity); err != nil {
		return nil, false, err
	}
	item, err = s.items.GetByID(ctx, id)
	return item, false, err
}

// Open marks quantityToOpen units of the item as in use. Partial opens
// split the record in two (unopened remainder first, opened part second);
// full opens mutate in place. Either way total quantity is conserved and
// the opened units get a halved shelf life.
func (s *ItemService) Open(ctx context.Context, id string, quantityToOpen int) ([]*domain.PantryItem, error) {
	if quantityToOpen < 1 {
		return nil, domain.Validationf("quantity to open must be at least 1, got %d", quantityToOpen)
	}

	items, err := s.items.Open(ctx, id, quantityToOpen, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	s.logger.Info("item opened", "item_id", id, "quantity_opened", quantityToOpen, "records", len(items))
	return items, nil
}

func (s *ItemService) Delete(ctx context.Context, id string) error {
	return s.items.Delete(ctx, id)
}

func (s *ItemService) Get(ctx context.Context, id string) (*domain.PantryItem, error) {
	return s.items.GetByID(ctx, id)
}

// ListByArea returns the area's items; the area must exist.
func (s *ItemService) ListByArea(ctx context.Context, areaID string) ([]*domain.PantryItem, error) {
	if _, err := s.areas.GetByID(ctx, areaID); err != nil {
		return nil, err
	}
	return s.items.ListByArea(ctx, areaID)
}

func (s *ItemService) List(ctx context.Context) ([]*domain.PantryItem, error) {
	return s.items.List(ctx)
}
