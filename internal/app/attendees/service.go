package attendees

import (
	"context"
	"errors"
	"time"

	"backstage/internal/models"
	"backstage/internal/store"
)

// Store captures the persistence needs for attendee registration.
type Store interface {
	CreateTicket(ctx context.Context, ticket models.Ticket) (models.Ticket, error)
	ListTickets(ctx context.Context) ([]models.Ticket, error)
	ListTicketsByConcert(ctx context.Context, concertID int64) ([]models.Ticket, error)
	GetConcert(ctx context.Context, id int64) (models.Concert, error)
	GetVenue(ctx context.Context, id int64) (models.Venue, error)
}

// Service registers attendees and lists their tickets.
type Service interface {
	Register(ctx context.Context, input models.RegistrationInput) (models.Ticket, error)
	ListAll(ctx context.Context) ([]models.TicketDetails, error)
	ListByConcert(ctx context.Context, concertID int64) ([]models.TicketDetails, error)
}

type service struct {
	store Store
	now   func() time.Time
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store, now: time.Now}
}

// Register records a ticket. Registrations are accepted regardless of the
// concert's capacity.
func (s *service) Register(ctx context.Context, input models.RegistrationInput) (models.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return models.Ticket{}, err
	}
	if err := models.Validate(input); err != nil {
		return models.Ticket{}, err
	}
	return s.store.CreateTicket(ctx, input.Ticket(s.now().UTC()))
}

func (s *service) ListAll(ctx context.Context) ([]models.TicketDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tickets, err := s.store.ListTickets(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, tickets)
}

func (s *service) ListByConcert(ctx context.Context, concertID int64) ([]models.TicketDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tickets, err := s.store.ListTicketsByConcert(ctx, concertID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, tickets)
}

// resolve attaches the concert and venue of every ticket. Each referenced
// row is loaded once per call.
func (s *service) resolve(ctx context.Context, tickets []models.Ticket) ([]models.TicketDetails, error) {
	concerts := map[int64]*models.Concert{}
	venues := map[int64]*models.Venue{}

	out := make([]models.TicketDetails, 0, len(tickets))
	for _, t := range tickets {
		details := models.TicketDetails{Ticket: t}

		if t.ConcertID != nil {
			c, ok := concerts[*t.ConcertID]
			if !ok {
				concert, err := s.store.GetConcert(ctx, *t.ConcertID)
				switch {
				case err == nil:
					c = &concert
				case !errors.Is(err, store.ErrNotFound):
					return nil, err
				}
				concerts[*t.ConcertID] = c
			}
			details.Concert = c
		}

		if t.VenueID != nil {
			v, ok := venues[*t.VenueID]
			if !ok {
				venue, err := s.store.GetVenue(ctx, *t.VenueID)
				switch {
				case err == nil:
					v = &venue
				case !errors.Is(err, store.ErrNotFound):
					return nil, err
				}
				venues[*t.VenueID] = v
			}
			details.Venue = v
		}

		out = append(out, details)
	}
	return out, nil
}
