package service

import (
	"context"

	"go.uber.org/zap"

	"vintagecoffee/internal/apperr"
	"vintagecoffee/internal/model"
	"vintagecoffee/internal/policy"
	"vintagecoffee/internal/store"
)

// CatalogService owns the menu: the item list and its availability flags.
type CatalogService struct {
	store store.Store
	log   *zap.Logger
}

func NewCatalogService(st store.Store, log *zap.Logger) *CatalogService {
	return &CatalogService{store: st, log: log}
}

// Seed writes the default menu if the catalog has never been populated.
func (s *CatalogService) Seed(ctx context.Context) error {
	_, err := store.Mutate(ctx, s.store, store.Catalog, func(cat *model.Catalog) error {
		if cat.Empty() {
			*cat = model.DefaultCatalog()
			s.log.Info("seeded default catalog")
		}
		return nil
	})
	return err
}

// List returns the full catalog. No authorization required.
func (s *CatalogService) List(ctx context.Context) (model.Catalog, error) {
	return store.View[model.Catalog](ctx, s.store, store.Catalog)
}

// SetAvailability toggles one item's orderable flag and returns the whole
// catalog as persisted. Staff only. Setting the same flag twice is a no-op.
func (s *CatalogService) SetAvailability(ctx context.Context, actor *model.Actor, itemID string, available bool) (model.Catalog, error) {
	if err := policy.Authorize(actor, model.RoleStaff, ""); err != nil {
		return model.Catalog{}, err
	}
	cat, err := store.Mutate(ctx, s.store, store.Catalog, func(cat *model.Catalog) error {
		item := cat.Find(itemID)
		if item == nil {
			return apperr.New(apperr.NotFound, "menu item %s not found", itemID)
		}
		item.Available = available
		return nil
	})
	if err != nil {
		return model.Catalog{}, err
	}
	s.log.Info("availability updated",
		zap.String("item_id", itemID),
		zap.Bool("available", available),
		zap.String("actor_id", actor.ID))
	return cat, nil
}
