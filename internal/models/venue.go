package models

import "time"

// Address is the postal location of a venue.
type Address struct {
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
}

// Venue represents a place that hosts concerts.
type Venue struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Capacity  int       `json:"capacity" validate:"gte=0"`
	Address   Address   `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VenueInput is the payload accepted when creating a venue.
type VenueInput struct {
	Name     string  `json:"name" validate:"required"`
	Capacity *int    `json:"capacity" validate:"required,gte=0"`
	Address  Address `json:"address"`
}

// Venue converts the input into a new record.
func (in VenueInput) Venue() Venue {
	v := Venue{Name: in.Name, Address: in.Address}
	if in.Capacity != nil {
		v.Capacity = *in.Capacity
	}
	return v
}

// VenuePatch carries the fields of a partial venue update.
type VenuePatch struct {
	Name     *string       `json:"name" validate:"omitempty,min=1"`
	Capacity *int          `json:"capacity" validate:"omitempty,gte=0"`
	Address  *AddressPatch `json:"address"`
}

// AddressPatch updates individual address components.
type AddressPatch struct {
	City       *string `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postalCode"`
}

// Apply merges the provided fields into v.
func (v *Venue) Apply(p VenuePatch) {
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.Capacity != nil {
		v.Capacity = *p.Capacity
	}
	if p.Address != nil {
		if p.Address.City != nil {
			v.Address.City = *p.Address.City
		}
		if p.Address.State != nil {
			v.Address.State = *p.Address.State
		}
		if p.Address.PostalCode != nil {
			v.Address.PostalCode = *p.Address.PostalCode
		}
	}
}

// VenueDetails is a venue together with the concerts it hosts.
type VenueDetails struct {
	Venue
	Concerts []Concert `json:"concerts"`
}
