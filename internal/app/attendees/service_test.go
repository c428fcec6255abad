package attendees

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
	tickets      []models.Ticket
	concerts     map[int64]models.Concert
	venues       map[int64]models.Venue
	concertReads int
	venueReads   int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{concerts: map[int64]models.Concert{}, venues: map[int64]models.Venue{}}
}

func (m *memoryStore) CreateTicket(_ context.Context, t models.Ticket) (models.Ticket, error) {
	t.ID = int64(len(m.tickets) + 1)
	m.tickets = append(m.tickets, t)
	return t, nil
}

func (m *memoryStore) ListTickets(context.Context) ([]models.Ticket, error) {
	return m.tickets, nil
}

func (m *memoryStore) ListTicketsByConcert(_ context.Context, concertID int64) ([]models.Ticket, error) {
	out := []models.Ticket{}
	for _, t := range m.tickets {
		if t.ConcertID != nil && *t.ConcertID == concertID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memoryStore) GetConcert(_ context.Context, id int64) (models.Concert, error) {
	m.concertReads++
	c, ok := m.concerts[id]
	if !ok {
		return models.Concert{}, store.ErrConcertNotFound
	}
	return c, nil
}

func (m *memoryStore) GetVenue(_ context.Context, id int64) (models.Venue, error) {
	m.venueReads++
	v, ok := m.venues[id]
	if !ok {
		return models.Venue{}, store.ErrVenueNotFound
	}
	return v, nil
}

func registration(concertID int64) models.RegistrationInput {
	venueID := int64(1)
	price := 40.0
	return models.RegistrationInput{
		AttendeeName:  "Ada",
		AttendeeEmail: "ada@example.com",
		AttendeePhone: "555-0100",
		VenueID:       &venueID,
		ConcertID:     &concertID,
		Price:         &price,
	}
}

func TestRegisterStampsTicketDate(t *testing.T) {
	fixed := time.Date(2025, time.May, 4, 18, 0, 0, 0, time.UTC)
	svc := &service{store: newMemoryStore(), now: func() time.Time { return fixed }}

	ticket, err := svc.Register(context.Background(), registration(2))
	require.NoError(t, err)
	assert.Equal(t, fixed, ticket.TicketDate)
	assert.Equal(t, 40.0, ticket.Price)
}

func TestRegisterValidates(t *testing.T) {
	svc := New(newMemoryStore())

	input := registration(2)
	input.AttendeeEmail = "not-an-email"
	input.Price = nil

	_, err := svc.Register(context.Background(), input)
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "attendeeEmail")
	assert.Contains(t, verr.Fields, "price")
}

func TestListByConcertResolvesReferences(t *testing.T) {
	mem := newMemoryStore()
	mem.concerts[2] = models.Concert{ID: 2, Name: "Late Show"}
	mem.venues[1] = models.Venue{ID: 1, Name: "Basement"}
	svc := New(mem)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.Register(ctx, registration(2))
		require.NoError(t, err)
	}
	_, err := svc.Register(ctx, registration(3))
	require.NoError(t, err)

	got, err := svc.ListByConcert(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, d := range got {
		require.NotNil(t, d.Concert)
		require.NotNil(t, d.Venue)
		assert.Equal(t, "Late Show", d.Concert.Name)
		assert.Equal(t, "Basement", d.Venue.Name)
	}
	assert.Equal(t, 1, mem.concertReads)
	assert.Equal(t, 1, mem.venueReads)
}

func TestListAllToleratesMissingReferences(t *testing.T) {
	mem := newMemoryStore()
	svc := New(mem)

	_, err := svc.Register(context.Background(), registration(8))
	require.NoError(t, err)

	got, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Concert)
	assert.Nil(t, got[0].Venue)
}
