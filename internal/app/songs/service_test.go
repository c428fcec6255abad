package songs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backstage/internal/models"
	"backstage/internal/store"
)

type memoryStore struct {
	songs   map[int64]models.Song
	artists map[int64]models.Artist
	nextID  int64
	failGet error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{songs: map[int64]models.Song{}, artists: map[int64]models.Artist{}}
}

func (m *memoryStore) CreateSong(_ context.Context, s models.Song) (models.Song, error) {
	m.nextID++
	s.ID = m.nextID
	m.songs[s.ID] = s
	return s, nil
}

func (m *memoryStore) ListSongs(context.Context) ([]models.Song, error) { return nil, nil }

func (m *memoryStore) GetSong(_ context.Context, id int64) (models.Song, error) {
	s, ok := m.songs[id]
	if !ok {
		return models.Song{}, store.ErrSongNotFound
	}
	return s, nil
}

func (m *memoryStore) UpdateSong(_ context.Context, s models.Song) (models.Song, error) {
	m.songs[s.ID] = s
	return s, nil
}

func (m *memoryStore) DeleteSong(context.Context, int64) error { return nil }

func (m *memoryStore) SearchSongs(context.Context, string) ([]models.Song, error) { return nil, nil }

func (m *memoryStore) GetArtist(_ context.Context, id int64) (models.Artist, error) {
	if m.failGet != nil {
		return models.Artist{}, m.failGet
	}
	a, ok := m.artists[id]
	if !ok {
		return models.Artist{}, store.ErrArtistNotFound
	}
	return a, nil
}

func (m *memoryStore) ListConcertsBySong(context.Context, int64) ([]models.Concert, error) {
	return []models.Concert{}, nil
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc := New(newMemoryStore())

	song, err := svc.Create(context.Background(), models.SongInput{Title: "Intro"})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSongGenre, song.Genre)
	assert.Zero(t, song.PlayCount)
	assert.Nil(t, song.ArtistID)
}

func TestGetResolvesArtist(t *testing.T) {
	mem := newMemoryStore()
	mem.artists[5] = models.Artist{ID: 5, Name: "Composer"}
	svc := New(mem)
	ctx := context.Background()

	withArtist := int64(5)
	gone := int64(6)
	a, err := svc.Create(ctx, models.SongInput{Title: "One", ArtistID: &withArtist})
	require.NoError(t, err)
	b, err := svc.Create(ctx, models.SongInput{Title: "Two", ArtistID: &gone})
	require.NoError(t, err)

	details, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, details.Artist)
	assert.Equal(t, "Composer", details.Artist.Name)

	details, err = svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, details.Artist)

	mem.failGet = errors.New("connection reset")
	_, err = svc.Get(ctx, a.ID)
	assert.EqualError(t, err, "connection reset")
}

func TestUpdateRejectsBlankTitle(t *testing.T) {
	svc := New(newMemoryStore())
	ctx := context.Background()

	song, err := svc.Create(ctx, models.SongInput{Title: "Keep"})
	require.NoError(t, err)

	blank := ""
	_, err = svc.Update(ctx, song.ID, models.SongPatch{Title: &blank})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
}

func TestUpdateClearsArtist(t *testing.T) {
	mem := newMemoryStore()
	svc := New(mem)
	ctx := context.Background()

	artistID := int64(3)
	song, err := svc.Create(ctx, models.SongInput{Title: "Encore", ArtistID: &artistID})
	require.NoError(t, err)
	require.NotNil(t, song.ArtistID)

	updated, err := svc.Update(ctx, song.ID, models.SongPatch{ArtistID: models.ClearID()})
	require.NoError(t, err)
	assert.Nil(t, updated.ArtistID)
	assert.Nil(t, mem.songs[song.ID].ArtistID)
	assert.Equal(t, "Encore", updated.Title)
}
