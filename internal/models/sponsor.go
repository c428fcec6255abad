package models

import "time"

// DefaultSponsorCategory is assigned when a sponsor is created without one.
const DefaultSponsorCategory = "general"

// Sponsor is a company backing one or more concerts.
type Sponsor struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Category  string    `json:"category"`
	Website   string    `json:"website" validate:"omitempty,url"`
	Logo      string    `json:"logo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SponsorInput is the payload accepted when creating a sponsor.
type SponsorInput struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category"`
	Website  string `json:"website" validate:"omitempty,url"`
	Logo     string `json:"logo"`
}

// Sponsor converts the input into a new record with defaults applied.
func (in SponsorInput) Sponsor() Sponsor {
	s := Sponsor{
		Name:     in.Name,
		Category: in.Category,
		Website:  in.Website,
		Logo:     in.Logo,
	}
	if s.Category == "" {
		s.Category = DefaultSponsorCategory
	}
	return s
}

// SponsorPatch carries the fields of a partial sponsor update.
type SponsorPatch struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Category *string `json:"category"`
	Website  *string `json:"website"`
	Logo     *string `json:"logo"`
}

// Apply merges the provided fields into s.
func (s *Sponsor) Apply(p SponsorPatch) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Category != nil {
		s.Category = *p.Category
	}
	if p.Website != nil {
		s.Website = *p.Website
	}
	if p.Logo != nil {
		s.Logo = *p.Logo
	}
}

// SponsorDetails is a sponsor together with the concerts it supports.
type SponsorDetails struct {
	Sponsor
	Concerts []Concert `json:"concerts"`
}
