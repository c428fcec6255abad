package models

import "time"

// Ticket is an attendee registration for a concert.
type Ticket struct {
	ID            int64     `json:"id"`
	AttendeeName  string    `json:"attendeeName"`
	AttendeeEmail string    `json:"attendeeEmail"`
	AttendeePhone string    `json:"attendeePhone"`
	TicketDate    time.Time `json:"ticketDate"`
	VenueID       *int64    `json:"venueId"`
	ConcertID     *int64    `json:"concertId"`
	Price         float64   `json:"price"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// RegistrationInput is the payload accepted when registering an attendee.
type RegistrationInput struct {
	AttendeeName  string     `json:"attendeeName" validate:"required"`
	AttendeeEmail string     `json:"attendeeEmail" validate:"required,email"`
	AttendeePhone string     `json:"attendeePhone" validate:"required"`
	TicketDate    *Timestamp `json:"ticketDate"`
	VenueID       *int64     `json:"venueId" validate:"required,gt=0"`
	ConcertID     *int64     `json:"concertId" validate:"required,gt=0"`
	Price         *float64   `json:"price" validate:"required,gte=0"`
}

// Ticket converts the input into a new record stamped at now unless the
// caller supplied a registration date.
func (in RegistrationInput) Ticket(now time.Time) Ticket {
	t := Ticket{
		AttendeeName:  in.AttendeeName,
		AttendeeEmail: in.AttendeeEmail,
		AttendeePhone: in.AttendeePhone,
		TicketDate:    now,
		VenueID:       in.VenueID,
		ConcertID:     in.ConcertID,
	}
	if in.TicketDate != nil && !in.TicketDate.IsZero() {
		t.TicketDate = in.TicketDate.Time
	}
	if in.Price != nil {
		t.Price = *in.Price
	}
	return t
}

// TicketDetails is a ticket with its concert and venue resolved.
type TicketDetails struct {
	Ticket
	Concert *Concert `json:"concert"`
	Venue   *Venue   `json:"venue"`
}
