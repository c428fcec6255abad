package artists

import (
	"context"

	"backstage/internal/models"
)

// Store captures the persistence needs for artist workflows.
type Store interface {
	CreateArtist(ctx context.Context, artist models.Artist) (models.Artist, error)
	ListArtists(ctx context.Context) ([]models.Artist, error)
	GetArtist(ctx context.Context, id int64) (models.Artist, error)
	UpdateArtist(ctx context.Context, artist models.Artist) (models.Artist, error)
	DeleteArtist(ctx context.Context, id int64) error
	SearchArtists(ctx context.Context, query string) ([]models.Artist, error)
	ListConcertsByArtist(ctx context.Context, artistID int64) ([]models.Concert, error)
}

// Service coordinates artist-related operations.
type Service interface {
	Create(ctx context.Context, input models.ArtistInput) (models.Artist, error)
	List(ctx context.Context) ([]models.Artist, error)
	Get(ctx context.Context, id int64) (models.ArtistDetails, error)
	Update(ctx context.Context, id int64, patch models.ArtistPatch) (models.Artist, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]models.Artist, error)
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, input models.ArtistInput) (models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return models.Artist{}, err
	}
	if err := models.Validate(input); err != nil {
		return models.Artist{}, err
	}
	return s.store.CreateArtist(ctx, input.Artist())
}

func (s *service) List(ctx context.Context) ([]models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListArtists(ctx)
}

func (s *service) Get(ctx context.Context, id int64) (models.ArtistDetails, error) {
	if err := ctx.Err(); err != nil {
		return models.ArtistDetails{}, err
	}

	artist, err := s.store.GetArtist(ctx, id)
	if err != nil {
		return models.ArtistDetails{}, err
	}
	concerts, err := s.store.ListConcertsByArtist(ctx, id)
	if err != nil {
		return models.ArtistDetails{}, err
	}
	return models.ArtistDetails{Artist: artist, Concerts: concerts}, nil
}

func (s *service) Update(ctx context.Context, id int64, patch models.ArtistPatch) (models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return models.Artist{}, err
	}
	if err := models.Validate(patch); err != nil {
		return models.Artist{}, err
	}

	artist, err := s.store.GetArtist(ctx, id)
	if err != nil {
		return models.Artist{}, err
	}
	artist.Apply(patch)
	if err := models.Validate(artist); err != nil {
		return models.Artist{}, err
	}
	return s.store.UpdateArtist(ctx, artist)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteArtist(ctx, id)
}

func (s *service) Search(ctx context.Context, query string) ([]models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := models.ValidateQuery(query); err != nil {
		return nil, err
	}
	return s.store.SearchArtists(ctx, query)
}
