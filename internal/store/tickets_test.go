package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"backstage/internal/models"
)

var ticketRowColumns = []string{
	"id", "attendee_name", "attendee_email", "attendee_phone", "ticket_date",
	"venue_id", "concert_id", "price", "created_at", "updated_at",
}

func testTicket(at time.Time) models.Ticket {
	venueID, concertID := int64(2), int64(5)
	return models.Ticket{
		AttendeeName:  "Avid Fan",
		AttendeeEmail: "fan@example.com",
		AttendeePhone: "555-0100",
		TicketDate:    at,
		VenueID:       &venueID,
		ConcertID:     &concertID,
		Price:         45,
	}
}

func TestCreateTicket(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery(q(`INSERT INTO tickets`)).
		WithArgs("Avid Fan", "fan@example.com", "555-0100", now, int64(2), int64(5), 45.0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(31), now, now))

	got, err := s.CreateTicket(context.Background(), testTicket(now))
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	if got.ID != 31 || got.CreatedAt.IsZero() {
		t.Fatalf("unexpected ticket: %+v", got)
	}
	expectMet(t, mock)
}

func TestCreateTicketUnknownConcert(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(q(`INSERT INTO tickets`)).
		WillReturnError(foreignKeyViolation)

	_, err := s.CreateTicket(context.Background(), testTicket(time.Now()))
	if !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got %v", err)
	}
	expectMet(t, mock)
}

func TestListTicketsByConcertDecodesNullableIDs(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery(q(`WHERE t.concert_id = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(ticketRowColumns).
			AddRow(int64(1), "Avid Fan", "fan@example.com", "555-0100", now, int64(2), int64(5), 45.0, now, now).
			AddRow(int64(2), "Late Fan", "late@example.com", "555-0101", now, nil, int64(5), 50.0, now, now))

	got, err := s.ListTicketsByConcert(context.Background(), 5)
	if err != nil {
		t.Fatalf("ListTicketsByConcert: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 tickets, got %d", len(got))
	}
	if got[0].VenueID == nil || *got[0].VenueID != 2 || got[0].ConcertID == nil || *got[0].ConcertID != 5 {
		t.Fatalf("unexpected first ticket: %+v", got[0])
	}
	if got[1].VenueID != nil {
		t.Fatalf("expected detached venue, got %d", *got[1].VenueID)
	}
	expectMet(t, mock)
}

func TestGetTicketNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(q(`WHERE t.id = $1`)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(ticketRowColumns))

	if _, err := s.GetTicket(context.Background(), 99); !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
	expectMet(t, mock)
}
