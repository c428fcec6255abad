package venues

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backstage/internal/models"
	"backstage/internal/store"
)

type memoryStore struct {
	venues map[int64]models.Venue
}

func (m *memoryStore) CreateVenue(_ context.Context, v models.Venue) (models.Venue, error) {
	v.ID = int64(len(m.venues) + 1)
	m.venues[v.ID] = v
	return v, nil
}

func (m *memoryStore) ListVenues(context.Context) ([]models.Venue, error) { return nil, nil }

func (m *memoryStore) GetVenue(_ context.Context, id int64) (models.Venue, error) {
	v, ok := m.venues[id]
	if !ok {
		return models.Venue{}, store.ErrVenueNotFound
	}
	return v, nil
}

func (m *memoryStore) UpdateVenue(_ context.Context, v models.Venue) (models.Venue, error) {
	m.venues[v.ID] = v
	return v, nil
}

func (m *memoryStore) DeleteVenue(_ context.Context, id int64) error {
	if _, ok := m.venues[id]; !ok {
		return store.ErrVenueNotFound
	}
	delete(m.venues, id)
	return nil
}

func (m *memoryStore) SearchVenues(context.Context, string) ([]models.Venue, error) { return nil, nil }

func (m *memoryStore) ListConcertsByVenue(context.Context, int64) ([]models.Concert, error) {
	return []models.Concert{}, nil
}

func TestUpdateMergesAddress(t *testing.T) {
	svc := New(&memoryStore{venues: map[int64]models.Venue{}})
	ctx := context.Background()

	capacity := 1200
	venue, err := svc.Create(ctx, models.VenueInput{
		Name:     "Riverside",
		Capacity: &capacity,
		Address:  models.Address{City: "Portland", State: "OR", PostalCode: "97201"},
	})
	require.NoError(t, err)

	city := "Salem"
	updated, err := svc.Update(ctx, venue.ID, models.VenuePatch{Address: &models.AddressPatch{City: &city}})
	require.NoError(t, err)
	assert.Equal(t, models.Address{City: "Salem", State: "OR", PostalCode: "97201"}, updated.Address)
	assert.Equal(t, 1200, updated.Capacity)
}

func TestCreateRequiresCapacity(t *testing.T) {
	svc := New(&memoryStore{venues: map[int64]models.Venue{}})

	_, err := svc.Create(context.Background(), models.VenueInput{Name: "No Capacity"})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "capacity")
}

func TestDeleteMissingVenue(t *testing.T) {
	svc := New(&memoryStore{venues: map[int64]models.Venue{}})

	err := svc.Delete(context.Background(), 3)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
