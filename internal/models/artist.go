package models

import "time"

// PerformanceType describes how an artist appears on a bill.
type PerformanceType string

const (
	PerformanceSolo  PerformanceType = "solo"
	PerformanceBand  PerformanceType = "band"
	PerformanceGuest PerformanceType = "guest"
)

// Artist is a performer that can be booked on concerts and credited on songs.
type Artist struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name" validate:"required"`
	Type      PerformanceType `json:"type" validate:"required,oneof=solo band guest"`
	Genres    []string        `json:"genres"`
	Bio       string          `json:"bio"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ArtistInput is the payload accepted when creating an artist.
type ArtistInput struct {
	Name   string   `json:"name" validate:"required"`
	Type   string   `json:"type" validate:"omitempty,oneof=solo band guest"`
	Genres []string `json:"genres"`
	Bio    string   `json:"bio"`
}

// Artist converts the input into a new record with defaults applied.
func (in ArtistInput) Artist() Artist {
	artist := Artist{
		Name:   in.Name,
		Type:   PerformanceType(in.Type),
		Genres: in.Genres,
		Bio:    in.Bio,
	}
	if artist.Type == "" {
		artist.Type = PerformanceSolo
	}
	if artist.Genres == nil {
		artist.Genres = []string{}
	}
	return artist
}

// ArtistPatch carries the fields of a partial artist update.
type ArtistPatch struct {
	Name   *string   `json:"name" validate:"omitempty,min=1"`
	Type   *string   `json:"type" validate:"omitempty,oneof=solo band guest"`
	Genres *[]string `json:"genres"`
	Bio    *string   `json:"bio"`
}

// Apply merges the provided fields into a.
func (a *Artist) Apply(p ArtistPatch) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Type != nil {
		a.Type = PerformanceType(*p.Type)
	}
	if p.Genres != nil {
		a.Genres = *p.Genres
	}
	if p.Bio != nil {
		a.Bio = *p.Bio
	}
}

// ArtistDetails is an artist together with the concerts it is booked on.
type ArtistDetails struct {
	Artist
	Concerts []Concert `json:"concerts"`
}
