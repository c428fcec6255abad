package sponsors

import (
	"context"

	"backstage/internal/models"
)

// Store captures the persistence needs for sponsor workflows.
type Store interface {
	CreateSponsor(ctx context.Context, sponsor models.Sponsor) (models.Sponsor, error)
	ListSponsors(ctx context.Context) ([]models.Sponsor, error)
	GetSponsor(ctx context.Context, id int64) (models.Sponsor, error)
	UpdateSponsor(ctx context.Context, sponsor models.Sponsor) (models.Sponsor, error)
	DeleteSponsor(ctx context.Context, id int64) error
	SearchSponsors(ctx context.Context, query string) ([]models.Sponsor, error)
	ListConcertsBySponsor(ctx context.Context, sponsorID int64) ([]models.Concert, error)
}

// Service coordinates sponsor-related operations.
type Service interface {
	Create(ctx context.Context, input models.SponsorInput) (models.Sponsor, error)
	List(ctx context.Context) ([]models.Sponsor, error)
	Get(ctx context.Context, id int64) (models.SponsorDetails, error)
	Update(ctx context.Context, id int64, patch models.SponsorPatch) (models.Sponsor, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]models.Sponsor, error)
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, input models.SponsorInput) (models.Sponsor, error) {
	if err := ctx.Err(); err != nil {
		return models.Sponsor{}, err
	}
	if err := models.Validate(input); err != nil {
		return models.Sponsor{}, err
	}
	return s.store.CreateSponsor(ctx, input.Sponsor())
}

func (s *service) List(ctx context.Context) ([]models.Sponsor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListSponsors(ctx)
}

func (s *service) Get(ctx context.Context, id int64) (models.SponsorDetails, error) {
	if err := ctx.Err(); err != nil {
		return models.SponsorDetails{}, err
	}

	sponsor, err := s.store.GetSponsor(ctx, id)
	if err != nil {
		return models.SponsorDetails{}, err
	}
	concerts, err := s.store.ListConcertsBySponsor(ctx, id)
	if err != nil {
		return models.SponsorDetails{}, err
	}
	return models.SponsorDetails{Sponsor: sponsor, Concerts: concerts}, nil
}

func (s *service) Update(ctx context.Context, id int64, patch models.SponsorPatch) (models.Sponsor, error) {
	if err := ctx.Err(); err != nil {
		return models.Sponsor{}, err
	}
	if err := models.Validate(patch); err != nil {
		return models.Sponsor{}, err
	}

	sponsor, err := s.store.GetSponsor(ctx, id)
	if err != nil {
		return models.Sponsor{}, err
	}
	sponsor.Apply(patch)
	if err := models.Validate(sponsor); err != nil {
		return models.Sponsor{}, err
	}
	return s.store.UpdateSponsor(ctx, sponsor)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteSponsor(ctx, id)
}

func (s *service) Search(ctx context.Context, query string) ([]models.Sponsor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := models.ValidateQuery(query); err != nil {
		return nil, err
	}
	return s.store.SearchSponsors(ctx, query)
}
