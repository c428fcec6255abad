package concerts

import (
	"context"
	"errors"

	"backstage/internal/models"
	"backstage/internal/store"
)

// Store captures the persistence needs for concert workflows.
type Store interface {
	CreateConcert(ctx context.Context, concert models.Concert) (models.Concert, error)
	ListConcerts(ctx context.Context) ([]models.Concert, error)
	GetConcert(ctx context.Context, id int64) (models.Concert, error)
	UpdateConcert(ctx context.Context, id int64, mutate func(*models.Concert) error) (models.Concert, error)
	DeleteConcert(ctx context.Context, id int64) error
	SearchConcerts(ctx context.Context, query string) ([]models.Concert, error)

	AddConcertArtist(ctx context.Context, concertID, artistID int64) error
	AddConcertSponsor(ctx context.Context, concertID, sponsorID int64) error
	AddConcertSong(ctx context.Context, concertID, songID int64) error
	ListCollaborations(ctx context.Context, concertID int64) ([]models.Collaboration, error)

	GetVenue(ctx context.Context, id int64) (models.Venue, error)
	ListConcertArtists(ctx context.Context, concertID int64) ([]models.Artist, error)
	ListConcertSponsors(ctx context.Context, concertID int64) ([]models.Sponsor, error)
	ListConcertSongs(ctx context.Context, concertID int64) ([]models.Song, error)

	HighAttendanceConcerts(ctx context.Context, threshold int) ([]models.AttendanceRow, error)
}

// Service coordinates concert operations, including line-up management.
type Service interface {
	Create(ctx context.Context, input models.ConcertInput) (models.Concert, error)
	List(ctx context.Context) ([]models.ConcertDetails, error)
	Get(ctx context.Context, id int64) (models.ConcertDetails, error)
	Update(ctx context.Context, id int64, patch models.ConcertPatch) (models.Concert, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]models.Concert, error)

	AddArtist(ctx context.Context, concertID, artistID int64) (models.Concert, error)
	AddSponsor(ctx context.Context, concertID, sponsorID int64) (models.Concert, error)
	AddSong(ctx context.Context, concertID, songID int64) (models.Concert, error)
	Collaborations(ctx context.Context, concertID int64) (models.ConcertCollaborations, error)
	AttendeesMoreThan(ctx context.Context, threshold int) ([]models.AttendanceRow, error)
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, input models.ConcertInput) (models.Concert, error) {
	if err := ctx.Err(); err != nil {
		return models.Concert{}, err
	}
	if err := models.Validate(input); err != nil {
		return models.Concert{}, err
	}
	return s.store.CreateConcert(ctx, input.Concert())
}

func (s *service) List(ctx context.Context) ([]models.ConcertDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	concerts, err := s.store.ListConcerts(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.ConcertDetails, 0, len(concerts))
	for _, c := range concerts {
		details, err := s.resolve(ctx, c)
		if err != nil {
			return nil, err
		}
		out = append(out, details)
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id int64) (models.ConcertDetails, error) {
	if err := ctx.Err(); err != nil {
		return models.ConcertDetails{}, err
	}

	concert, err := s.store.GetConcert(ctx, id)
	if err != nil {
		return models.ConcertDetails{}, err
	}
	return s.resolve(ctx, concert)
}

// resolve expands the venue and the three reference lists of c. A venue
// removed since the concert was written resolves to nil.
func (s *service) resolve(ctx context.Context, c models.Concert) (models.ConcertDetails, error) {
	details := models.ConcertDetails{Concert: c}

	if c.VenueID != nil {
		venue, err := s.store.GetVenue(ctx, *c.VenueID)
		switch {
		case err == nil:
			details.Venue = &venue
		case !errors.Is(err, store.ErrNotFound):
			return models.ConcertDetails{}, err
		}
	}

	var err error
	if details.Artists, err = s.store.ListConcertArtists(ctx, c.ID); err != nil {
		return models.ConcertDetails{}, err
	}
	if details.Sponsors, err = s.store.ListConcertSponsors(ctx, c.ID); err != nil {
		return models.ConcertDetails{}, err
	}
	if details.Playlist, err = s.store.ListConcertSongs(ctx, c.ID); err != nil {
		return models.ConcertDetails{}, err
	}
	return details, nil
}

func (s *service) Update(ctx context.Context, id int64, patch models.ConcertPatch) (models.Concert, error) {
	if err := ctx.Err(); err != nil {
		return models.Concert{}, err
	}
	if err := models.Validate(patch); err != nil {
		return models.Concert{}, err
	}

	return s.store.UpdateConcert(ctx, id, func(c *models.Concert) error {
		c.Apply(patch)
		return models.Validate(*c)
	})
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteConcert(ctx, id)
}

func (s *service) Search(ctx context.Context, query string) ([]models.Concert, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := models.ValidateQuery(query); err != nil {
		return nil, err
	}
	return s.store.SearchConcerts(ctx, query)
}

func (s *service) AddArtist(ctx context.Context, concertID, artistID int64) (models.Concert, error) {
	return s.appendRef(ctx, concertID, "artistId", artistID, s.store.AddConcertArtist)
}

func (s *service) AddSponsor(ctx context.Context, concertID, sponsorID int64) (models.Concert, error) {
	return s.appendRef(ctx, concertID, "sponsorId", sponsorID, s.store.AddConcertSponsor)
}

func (s *service) AddSong(ctx context.Context, concertID, songID int64) (models.Concert, error) {
	return s.appendRef(ctx, concertID, "songId", songID, s.store.AddConcertSong)
}

// appendRef appends refID through add and returns the updated concert.
func (s *service) appendRef(
	ctx context.Context,
	concertID int64,
	field string,
	refID int64,
	add func(ctx context.Context, concertID, refID int64) error,
) (models.Concert, error) {
	if err := ctx.Err(); err != nil {
		return models.Concert{}, err
	}

	verr := &models.ValidationError{Fields: map[string]string{}}
	if concertID <= 0 {
		verr.Fields["concertId"] = "is required"
	}
	if refID <= 0 {
		verr.Fields[field] = "is required"
	}
	if len(verr.Fields) > 0 {
		return models.Concert{}, verr
	}

	if err := add(ctx, concertID, refID); err != nil {
		return models.Concert{}, err
	}
	return s.store.GetConcert(ctx, concertID)
}

// Collaborations returns the artists and collaboration records of a
// concert. Both lists are empty when fewer than two artists are booked.
func (s *service) Collaborations(ctx context.Context, concertID int64) (models.ConcertCollaborations, error) {
	if err := ctx.Err(); err != nil {
		return models.ConcertCollaborations{}, err
	}

	concert, err := s.store.GetConcert(ctx, concertID)
	if err != nil {
		return models.ConcertCollaborations{}, err
	}

	out := models.ConcertCollaborations{
		ConcertID:      concert.ID,
		Artists:        []models.Artist{},
		Collaborations: []models.Collaboration{},
	}
	if len(concert.ArtistIDs) < 2 {
		return out, nil
	}

	if out.Artists, err = s.store.ListConcertArtists(ctx, concert.ID); err != nil {
		return models.ConcertCollaborations{}, err
	}
	if out.Collaborations, err = s.store.ListCollaborations(ctx, concert.ID); err != nil {
		return models.ConcertCollaborations{}, err
	}
	return out, nil
}

func (s *service) AttendeesMoreThan(ctx context.Context, threshold int) ([]models.AttendanceRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if threshold < 0 {
		return nil, models.NewValidationError("threshold", "must be greater than or equal to 0")
	}
	return s.store.HighAttendanceConcerts(ctx, threshold)
}
