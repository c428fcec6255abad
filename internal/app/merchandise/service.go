package merchandise

import (
	"context"
	"errors"

	"backstage/internal/models"
	"backstage/internal/store"
)

// Store captures the persistence needs for merchandise workflows.
type Store interface {
	CreateMerchandise(ctx context.Context, item models.Merchandise) (models.Merchandise, error)
	ListMerchandise(ctx context.Context) ([]models.Merchandise, error)
	GetMerchandise(ctx context.Context, id int64) (models.Merchandise, error)
	UpdateMerchandise(ctx context.Context, item models.Merchandise) (models.Merchandise, error)
	DeleteMerchandise(ctx context.Context, id int64) error
	SearchMerchandise(ctx context.Context, query string) ([]models.Merchandise, error)
	GetConcert(ctx context.Context, id int64) (models.Concert, error)
}

// Service coordinates merchandise operations.
type Service interface {
	Create(ctx context.Context, input models.MerchandiseInput) (models.Merchandise, error)
	List(ctx context.Context) ([]models.Merchandise, error)
	Get(ctx context.Context, id int64) (models.MerchandiseDetails, error)
	Update(ctx context.Context, id int64, patch models.MerchandisePatch) (models.Merchandise, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]models.Merchandise, error)
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, input models.MerchandiseInput) (models.Merchandise, error) {
	if err := ctx.Err(); err != nil {
		return models.Merchandise{}, err
	}
	if err := models.Validate(input); err != nil {
		return models.Merchandise{}, err
	}
	return s.store.CreateMerchandise(ctx, input.Merchandise())
}

func (s *service) List(ctx context.Context) ([]models.Merchandise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListMerchandise(ctx)
}

func (s *service) Get(ctx context.Context, id int64) (models.MerchandiseDetails, error) {
	if err := ctx.Err(); err != nil {
		return models.MerchandiseDetails{}, err
	}

	item, err := s.store.GetMerchandise(ctx, id)
	if err != nil {
		return models.MerchandiseDetails{}, err
	}
	details := models.MerchandiseDetails{Merchandise: item}

	if item.ConcertID != nil {
		concert, err := s.store.GetConcert(ctx, *item.ConcertID)
		switch {
		case err == nil:
			details.Concert = &concert
		case !errors.Is(err, store.ErrNotFound):
			return models.MerchandiseDetails{}, err
		}
	}
	return details, nil
}

// Update merges the patch into the stored item. The sold-out flag follows
// the resulting stock.
func (s *service) Update(ctx context.Context, id int64, patch models.MerchandisePatch) (models.Merchandise, error) {
	if err := ctx.Err(); err != nil {
		return models.Merchandise{}, err
	}
	if err := models.Validate(patch); err != nil {
		return models.Merchandise{}, err
	}

	item, err := s.store.GetMerchandise(ctx, id)
	if err != nil {
		return models.Merchandise{}, err
	}
	item.Apply(patch)
	if err := models.Validate(item); err != nil {
		return models.Merchandise{}, err
	}
	return s.store.UpdateMerchandise(ctx, item)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteMerchandise(ctx, id)
}

func (s *service) Search(ctx context.Context, query string) ([]models.Merchandise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := models.ValidateQuery(query); err != nil {
		return nil, err
	}
	return s.store.SearchMerchandise(ctx, query)
}
