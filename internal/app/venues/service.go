package venues

import (
	"context"

	"backstage/internal/models"
)

// Store captures the persistence needs for venue workflows.
type Store interface {
	CreateVenue(ctx context.Context, venue models.Venue) (models.Venue, error)
	ListVenues(ctx context.Context) ([]models.Venue, error)
	GetVenue(ctx context.Context, id int64) (models.Venue, error)
	UpdateVenue(ctx context.Context, venue models.Venue) (models.Venue, error)
	DeleteVenue(ctx context.Context, id int64) error
	SearchVenues(ctx context.Context, query string) ([]models.Venue, error)
	ListConcertsByVenue(ctx context.Context, venueID int64) ([]models.Concert, error)
}

// Service coordinates venue-related operations.
type Service interface {
	Create(ctx context.Context, input models.VenueInput) (models.Venue, error)
	List(ctx context.Context) ([]models.Venue, error)
	Get(ctx context.Context, id int64) (models.VenueDetails, error)
	Update(ctx context.Context, id int64, patch models.VenuePatch) (models.Venue, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]models.Venue, error)
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, input models.VenueInput) (models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return models.Venue{}, err
	}
	if err := models.Validate(input); err != nil {
		return models.Venue{}, err
	}
	return s.store.CreateVenue(ctx, input.Venue())
}

func (s *service) List(ctx context.Context) ([]models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListVenues(ctx)
}

func (s *service) Get(ctx context.Context, id int64) (models.VenueDetails, error) {
	if err := ctx.Err(); err != nil {
		return models.VenueDetails{}, err
	}

	venue, err := s.store.GetVenue(ctx, id)
	if err != nil {
		return models.VenueDetails{}, err
	}
	concerts, err := s.store.ListConcertsByVenue(ctx, id)
	if err != nil {
		return models.VenueDetails{}, err
	}
	return models.VenueDetails{Venue: venue, Concerts: concerts}, nil
}

func (s *service) Update(ctx context.Context, id int64, patch models.VenuePatch) (models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return models.Venue{}, err
	}
	if err := models.Validate(patch); err != nil {
		return models.Venue{}, err
	}

	venue, err := s.store.GetVenue(ctx, id)
	if err != nil {
		return models.Venue{}, err
	}
	venue.Apply(patch)
	if err := models.Validate(venue); err != nil {
		return models.Venue{}, err
	}
	return s.store.UpdateVenue(ctx, venue)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteVenue(ctx, id)
}

func (s *service) Search(ctx context.Context, query string) ([]models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := models.ValidateQuery(query); err != nil {
		return nil, err
	}
	return s.store.SearchVenues(ctx, query)
}
