package models

import "time"

// Concert is a scheduled performance at a venue.
type Concert struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	VenueID     *int64    `json:"venueId"` // nil once the venue has been deleted
	ConcertDate Date      `json:"concertDate" validate:"required"`
	ConcertTime string    `json:"concertTime" validate:"required,datetime=15:04"`
	Description string    `json:"description"`
	ArtistIDs   []int64   `json:"artistIds"`
	SponsorIDs  []int64   `json:"sponsorIds"`
	SongIDs     []int64   `json:"playlistIds"`
	TicketPrice float64   `json:"ticketPrice" validate:"gte=0"`
	Capacity    int       `json:"capacity" validate:"gte=0"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ConcertInput is the payload accepted when creating a concert.
type ConcertInput struct {
	Name        string   `json:"name"`
	VenueID     *int64   `json:"venueId" validate:"required,gt=0"`
	ConcertDate Date     `json:"concertDate" validate:"required"`
	ConcertTime string   `json:"concertTime" validate:"required,datetime=15:04"`
	Description string   `json:"description"`
	ArtistIDs   []int64  `json:"artistIds" validate:"dive,gt=0"`
	SponsorIDs  []int64  `json:"sponsorIds" validate:"dive,gt=0"`
	SongIDs     []int64  `json:"playlistIds" validate:"dive,gt=0"`
	TicketPrice *float64 `json:"ticketPrice" validate:"required,gte=0"`
	Capacity    *int     `json:"capacity" validate:"required,gte=0"`
}

// Concert converts the input into a new record.
func (in ConcertInput) Concert() Concert {
	c := Concert{
		Name:        in.Name,
		VenueID:     in.VenueID,
		ConcertDate: in.ConcertDate,
		ConcertTime: in.ConcertTime,
		Description: in.Description,
		ArtistIDs:   nonNilIDs(in.ArtistIDs),
		SponsorIDs:  nonNilIDs(in.SponsorIDs),
		SongIDs:     nonNilIDs(in.SongIDs),
	}
	if in.TicketPrice != nil {
		c.TicketPrice = *in.TicketPrice
	}
	if in.Capacity != nil {
		c.Capacity = *in.Capacity
	}
	return c
}

// ConcertPatch carries the fields of a partial concert update. Reference
// lists, when present, replace the stored list.
type ConcertPatch struct {
	Name        *string  `json:"name"`
	VenueID     *int64   `json:"venueId" validate:"omitempty,gt=0"`
	ConcertDate *Date    `json:"concertDate"`
	ConcertTime *string  `json:"concertTime" validate:"omitempty,datetime=15:04"`
	Description *string  `json:"description"`
	ArtistIDs   *[]int64 `json:"artistIds" validate:"omitempty,dive,gt=0"`
	SponsorIDs  *[]int64 `json:"sponsorIds" validate:"omitempty,dive,gt=0"`
	SongIDs     *[]int64 `json:"playlistIds" validate:"omitempty,dive,gt=0"`
	TicketPrice *float64 `json:"ticketPrice" validate:"omitempty,gte=0"`
	Capacity    *int     `json:"capacity" validate:"omitempty,gte=0"`
}

// Apply merges the provided fields into c.
func (c *Concert) Apply(p ConcertPatch) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.VenueID != nil {
		id := *p.VenueID
		c.VenueID = &id
	}
	if p.ConcertDate != nil {
		c.ConcertDate = *p.ConcertDate
	}
	if p.ConcertTime != nil {
		c.ConcertTime = *p.ConcertTime
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.ArtistIDs != nil {
		c.ArtistIDs = nonNilIDs(*p.ArtistIDs)
	}
	if p.SponsorIDs != nil {
		c.SponsorIDs = nonNilIDs(*p.SponsorIDs)
	}
	if p.SongIDs != nil {
		c.SongIDs = nonNilIDs(*p.SongIDs)
	}
	if p.TicketPrice != nil {
		c.TicketPrice = *p.TicketPrice
	}
	if p.Capacity != nil {
		c.Capacity = *p.Capacity
	}
}

// ConcertDetails is a concert with every reference resolved.
type ConcertDetails struct {
	Concert
	Venue    *Venue    `json:"venue"`
	Artists  []Artist  `json:"artists"`
	Sponsors []Sponsor `json:"sponsors"`
	Playlist []Song    `json:"playlist"`
}

// Collaboration records that several artists shared a concert.
type Collaboration struct {
	ID        int64     `json:"id"`
	ConcertID int64     `json:"concertId"`
	ArtistIDs []int64   `json:"artistIds"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ConcertCollaborations lists the artists of a concert and its collaboration
// records. Both are empty when fewer than two artists are booked.
type ConcertCollaborations struct {
	ConcertID      int64           `json:"concertId"`
	Artists        []Artist        `json:"artists"`
	Collaborations []Collaboration `json:"collaborations"`
}

func nonNilIDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
