package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"backstage/internal/models"
)

const ticketColumns = `t.id, t.attendee_name, t.attendee_email, t.attendee_phone, t.ticket_date,
	t.venue_id, t.concert_id, t.price, t.created_at, t.updated_at`

func scanTicket(row rowScanner) (models.Ticket, error) {
	var (
		t                  models.Ticket
		venueID, concertID sql.NullInt64
	)
	err := row.Scan(
		&t.ID, &t.AttendeeName, &t.AttendeeEmail, &t.AttendeePhone, &t.TicketDate,
		&venueID, &concertID, &t.Price, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return models.Ticket{}, err
	}
	t.VenueID = nullableID(venueID)
	t.ConcertID = nullableID(concertID)
	return t, nil
}

func (s *Store) queryTickets(ctx context.Context, query string, args ...any) ([]models.Ticket, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select tickets: %w", err)
	}
	defer rows.Close()

	tickets := []models.Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tickets: %w", err)
	}
	return tickets, nil
}

// CreateTicket records an attendee registration.
func (s *Store) CreateTicket(ctx context.Context, ticket models.Ticket) (models.Ticket, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO tickets (attendee_name, attendee_email, attendee_phone, ticket_date,
		                     venue_id, concert_id, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, ticket.AttendeeName, ticket.AttendeeEmail, ticket.AttendeePhone, ticket.TicketDate,
		ticket.VenueID, ticket.ConcertID, ticket.Price,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return models.Ticket{}, fmt.Errorf("venue or concert: %w", ErrInvalidReference)
		}
		return models.Ticket{}, fmt.Errorf("insert ticket: %w", err)
	}
	return ticket, nil
}

// GetTicket retrieves a single registration.
func (s *Store) GetTicket(ctx context.Context, id int64) (models.Ticket, error) {
	t, err := scanTicket(s.db.QueryRowContext(ctx, `
		SELECT `+ticketColumns+`
		FROM tickets t
		WHERE t.id = $1
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Ticket{}, ErrTicketNotFound
		}
		return models.Ticket{}, fmt.Errorf("select ticket: %w", err)
	}
	return t, nil
}

// ListTickets returns every registration, newest first.
func (s *Store) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	return s.queryTickets(ctx, `
		SELECT `+ticketColumns+`
		FROM tickets t
		ORDER BY t.ticket_date DESC, t.id DESC
	`)
}

// ListTicketsByConcert returns the registrations for one concert.
func (s *Store) ListTicketsByConcert(ctx context.Context, concertID int64) ([]models.Ticket, error) {
	return s.queryTickets(ctx, `
		SELECT `+ticketColumns+`
		FROM tickets t
		WHERE t.concert_id = $1
		ORDER BY t.ticket_date DESC, t.id DESC
	`, concertID)
}
