package concerts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backstage/internal/models"
	"backstage/internal/store"
)

type memoryStore struct {
	concerts       map[int64]models.Concert
	venues         map[int64]models.Venue
	collaborations map[int64][]models.Collaboration
	nextID         int64
	threshold      int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		concerts:       map[int64]models.Concert{},
		venues:         map[int64]models.Venue{},
		collaborations: map[int64][]models.Collaboration{},
	}
}

func (m *memoryStore) CreateConcert(_ context.Context, c models.Concert) (models.Concert, error) {
	m.nextID++
	c.ID = m.nextID
	m.concerts[c.ID] = c
	if len(c.ArtistIDs) > 1 {
		m.collaborations[c.ID] = append(m.collaborations[c.ID], models.Collaboration{ID: 1, ConcertID: c.ID, ArtistIDs: c.ArtistIDs})
	}
	return c, nil
}

func (m *memoryStore) ListConcerts(context.Context) ([]models.Concert, error) {
	out := []models.Concert{}
	for id := int64(1); id <= m.nextID; id++ {
		if c, ok := m.concerts[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memoryStore) GetConcert(_ context.Context, id int64) (models.Concert, error) {
	c, ok := m.concerts[id]
	if !ok {
		return models.Concert{}, store.ErrConcertNotFound
	}
	return c, nil
}

func (m *memoryStore) UpdateConcert(_ context.Context, id int64, mutate func(*models.Concert) error) (models.Concert, error) {
	c, ok := m.concerts[id]
	if !ok {
		return models.Concert{}, store.ErrConcertNotFound
	}
	if err := mutate(&c); err != nil {
		return models.Concert{}, err
	}
	m.concerts[id] = c
	return c, nil
}

func (m *memoryStore) DeleteConcert(context.Context, int64) error { return nil }

func (m *memoryStore) SearchConcerts(context.Context, string) ([]models.Concert, error) {
	return []models.Concert{}, nil
}

func (m *memoryStore) appendTo(concertID int64, apply func(c *models.Concert)) error {
	c, ok := m.concerts[concertID]
	if !ok {
		return store.ErrConcertNotFound
	}
	apply(&c)
	m.concerts[concertID] = c
	return nil
}

func (m *memoryStore) AddConcertArtist(_ context.Context, concertID, artistID int64) error {
	if artistID == 404 {
		return store.ErrArtistNotFound
	}
	return m.appendTo(concertID, func(c *models.Concert) { c.ArtistIDs = append(c.ArtistIDs, artistID) })
}

func (m *memoryStore) AddConcertSponsor(_ context.Context, concertID, sponsorID int64) error {
	return m.appendTo(concertID, func(c *models.Concert) { c.SponsorIDs = append(c.SponsorIDs, sponsorID) })
}

func (m *memoryStore) AddConcertSong(_ context.Context, concertID, songID int64) error {
	return m.appendTo(concertID, func(c *models.Concert) { c.SongIDs = append(c.SongIDs, songID) })
}

func (m *memoryStore) ListCollaborations(_ context.Context, concertID int64) ([]models.Collaboration, error) {
	return m.collaborations[concertID], nil
}

func (m *memoryStore) GetVenue(_ context.Context, id int64) (models.Venue, error) {
	v, ok := m.venues[id]
	if !ok {
		return models.Venue{}, store.ErrVenueNotFound
	}
	return v, nil
}

func (m *memoryStore) ListConcertArtists(_ context.Context, concertID int64) ([]models.Artist, error) {
	out := []models.Artist{}
	for _, id := range m.concerts[concertID].ArtistIDs {
		out = append(out, models.Artist{ID: id})
	}
	return out, nil
}

func (m *memoryStore) ListConcertSponsors(_ context.Context, concertID int64) ([]models.Sponsor, error) {
	out := []models.Sponsor{}
	for _, id := range m.concerts[concertID].SponsorIDs {
		out = append(out, models.Sponsor{ID: id})
	}
	return out, nil
}

func (m *memoryStore) ListConcertSongs(_ context.Context, concertID int64) ([]models.Song, error) {
	out := []models.Song{}
	for _, id := range m.concerts[concertID].SongIDs {
		out = append(out, models.Song{ID: id})
	}
	return out, nil
}

func (m *memoryStore) HighAttendanceConcerts(_ context.Context, threshold int) ([]models.AttendanceRow, error) {
	m.threshold = threshold
	return []models.AttendanceRow{}, nil
}

func validInput(artists ...int64) models.ConcertInput {
	venueID := int64(1)
	price := 30.0
	capacity := 500
	return models.ConcertInput{
		Name:        "Night Shift",
		VenueID:     &venueID,
		ConcertDate: models.NewDate(2025, time.October, 3),
		ConcertTime: "21:00",
		ArtistIDs:   artists,
		TicketPrice: &price,
		Capacity:    &capacity,
	}
}

func TestCreateValidates(t *testing.T) {
	svc := New(newMemoryStore())

	_, err := svc.Create(context.Background(), models.ConcertInput{ConcertTime: "9pm"})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	for _, field := range []string{"venueId", "concertDate", "concertTime", "ticketPrice", "capacity"} {
		assert.Contains(t, verr.Fields, field)
	}
}

func TestGetResolvesReferences(t *testing.T) {
	mem := newMemoryStore()
	mem.venues[1] = models.Venue{ID: 1, Name: "Warehouse"}
	svc := New(mem)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(4, 5, 4))
	require.NoError(t, err)

	details, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, details.Venue)
	assert.Equal(t, "Warehouse", details.Venue.Name)
	require.Len(t, details.Artists, 3)
	assert.Equal(t, int64(4), details.Artists[2].ID)
	assert.Empty(t, details.Sponsors)
	assert.Empty(t, details.Playlist)
}

func TestGetWithDeletedVenue(t *testing.T) {
	svc := New(newMemoryStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	details, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, details.Venue)
}

func TestCollaborations(t *testing.T) {
	svc := New(newMemoryStore())
	ctx := context.Background()

	solo, err := svc.Create(ctx, validInput(1))
	require.NoError(t, err)
	duo, err := svc.Create(ctx, validInput(1, 2))
	require.NoError(t, err)

	got, err := svc.Collaborations(ctx, solo.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Artists)
	assert.Empty(t, got.Collaborations)

	got, err = svc.Collaborations(ctx, duo.ID)
	require.NoError(t, err)
	assert.Len(t, got.Artists, 2)
	require.Len(t, got.Collaborations, 1)
	assert.Equal(t, []int64{1, 2}, got.Collaborations[0].ArtistIDs)

	_, err = svc.Collaborations(ctx, 99)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAddArtistKeepsDuplicates(t *testing.T) {
	svc := New(newMemoryStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(7))
	require.NoError(t, err)

	updated, err := svc.AddArtist(ctx, created.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 7}, updated.ArtistIDs)
}

func TestAddRefErrors(t *testing.T) {
	svc := New(newMemoryStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	_, err = svc.AddSong(ctx, 0, 0)
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "concertId")
	assert.Contains(t, verr.Fields, "songId")

	_, err = svc.AddSponsor(ctx, 77, 1)
	assert.ErrorIs(t, err, store.ErrConcertNotFound)

	_, err = svc.AddArtist(ctx, created.ID, 404)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateReplacesList(t *testing.T) {
	svc := New(newMemoryStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(1, 2))
	require.NoError(t, err)

	songs := []int64{10, 11}
	updated, err := svc.Update(ctx, created.ID, models.ConcertPatch{SongIDs: &songs})
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11}, updated.SongIDs)
	assert.Equal(t, []int64{1, 2}, updated.ArtistIDs)
	assert.Equal(t, "Night Shift", updated.Name)
}

func TestAttendeesMoreThan(t *testing.T) {
	mem := newMemoryStore()
	svc := New(mem)

	_, err := svc.AttendeesMoreThan(context.Background(), 250)
	require.NoError(t, err)
	assert.Equal(t, 250, mem.threshold)

	_, err = svc.AttendeesMoreThan(context.Background(), -1)
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestUpdateRejectsInvalidMergeWithoutWriting(t *testing.T) {
	mem := newMemoryStore()
	svc := New(mem)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput(1, 2))
	require.NoError(t, err)

	name, blank := "Late Show", ""
	_, err = svc.Update(ctx, created.ID, models.ConcertPatch{Name: &name, ConcertTime: &blank})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Night Shift", mem.concerts[created.ID].Name)
	assert.Equal(t, "21:00", mem.concerts[created.ID].ConcertTime)

	_, err = svc.Update(ctx, 404, models.ConcertPatch{Name: &name})
	assert.ErrorIs(t, err, store.ErrConcertNotFound)
}
