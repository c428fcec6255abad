package songs

import (
	"context"
	"errors"

	"backstage/internal/models"
	"backstage/internal/store"
)

// Store captures the persistence needs for song workflows.
type Store interface {
	CreateSong(ctx context.Context, song models.Song) (models.Song, error)
	ListSongs(ctx context.Context) ([]models.Song, error)
	GetSong(ctx context.Context, id int64) (models.Song, error)
	UpdateSong(ctx context.Context, song models.Song) (models.Song, error)
	DeleteSong(ctx context.Context, id int64) error
	SearchSongs(ctx context.Context, query string) ([]models.Song, error)
	GetArtist(ctx context.Context, id int64) (models.Artist, error)
	ListConcertsBySong(ctx context.Context, songID int64) ([]models.Concert, error)
}

// Service coordinates song-related operations.
type Service interface {
	Create(ctx context.Context, input models.SongInput) (models.Song, error)
	List(ctx context.Context) ([]models.Song, error)
	Get(ctx context.Context, id int64) (models.SongDetails, error)
	Update(ctx context.Context, id int64, patch models.SongPatch) (models.Song, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]models.Song, error)
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, input models.SongInput) (models.Song, error) {
	if err := ctx.Err(); err != nil {
		return models.Song{}, err
	}
	if err := models.Validate(input); err != nil {
		return models.Song{}, err
	}
	return s.store.CreateSong(ctx, input.Song())
}

func (s *service) List(ctx context.Context) ([]models.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListSongs(ctx)
}

// Get returns the song with its performer and the concerts that play it.
// A performer deleted after the song was written resolves to nil.
func (s *service) Get(ctx context.Context, id int64) (models.SongDetails, error) {
	if err := ctx.Err(); err != nil {
		return models.SongDetails{}, err
	}

	song, err := s.store.GetSong(ctx, id)
	if err != nil {
		return models.SongDetails{}, err
	}
	details := models.SongDetails{Song: song}

	if song.ArtistID != nil {
		artist, err := s.store.GetArtist(ctx, *song.ArtistID)
		switch {
		case err == nil:
			details.Artist = &artist
		case !errors.Is(err, store.ErrNotFound):
			return models.SongDetails{}, err
		}
	}

	if details.Concerts, err = s.store.ListConcertsBySong(ctx, id); err != nil {
		return models.SongDetails{}, err
	}
	return details, nil
}

func (s *service) Update(ctx context.Context, id int64, patch models.SongPatch) (models.Song, error) {
	if err := ctx.Err(); err != nil {
		return models.Song{}, err
	}
	if err := models.Validate(patch); err != nil {
		return models.Song{}, err
	}

	song, err := s.store.GetSong(ctx, id)
	if err != nil {
		return models.Song{}, err
	}
	song.Apply(patch)
	if err := models.Validate(song); err != nil {
		return models.Song{}, err
	}
	return s.store.UpdateSong(ctx, song)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteSong(ctx, id)
}

func (s *service) Search(ctx context.Context, query string) ([]models.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := models.ValidateQuery(query); err != nil {
		return nil, err
	}
	return s.store.SearchSongs(ctx, query)
}
