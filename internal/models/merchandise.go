package models

import "time"

// Merchandise is an item sold at, or for, a concert.
type Merchandise struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name" validate:"required"`
	Price         float64   `json:"price" validate:"gte=0"`
	StockQuantity int       `json:"stockQuantity"`
	ItemsSold     int       `json:"itemsSold" validate:"gte=0"`
	IsSoldOut     bool      `json:"isSoldOut"`
	ConcertID     *int64    `json:"concertId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// RefreshSoldOut keeps IsSoldOut in step with the remaining stock.
func (m *Merchandise) RefreshSoldOut() {
	m.IsSoldOut = m.StockQuantity <= 0
}

// MerchandiseInput is the payload accepted when creating merchandise.
type MerchandiseInput struct {
	Name          string   `json:"name" validate:"required"`
	Price         *float64 `json:"price" validate:"required,gte=0"`
	StockQuantity *int     `json:"stockQuantity" validate:"required"`
	ItemsSold     int      `json:"itemsSold" validate:"gte=0"`
	ConcertID     *int64   `json:"concertId" validate:"omitempty,gt=0"`
}

// Merchandise converts the input into a new record.
func (in MerchandiseInput) Merchandise() Merchandise {
	m := Merchandise{
		Name:      in.Name,
		ItemsSold: in.ItemsSold,
		ConcertID: in.ConcertID,
	}
	if in.Price != nil {
		m.Price = *in.Price
	}
	if in.StockQuantity != nil {
		m.StockQuantity = *in.StockQuantity
	}
	m.RefreshSoldOut()
	return m
}

// MerchandisePatch carries the fields of a partial merchandise update.
// IsSoldOut is derived and cannot be patched. An explicit null concertId
// detaches the item from its concert.
type MerchandisePatch struct {
	Name          *string    `json:"name" validate:"omitempty,min=1"`
	Price         *float64   `json:"price" validate:"omitempty,gte=0"`
	StockQuantity *int       `json:"stockQuantity"`
	ItemsSold     *int       `json:"itemsSold" validate:"omitempty,gte=0"`
	ConcertID     OptionalID `json:"concertId" validate:"omitempty,gt=0"`
}

// Apply merges the provided fields into m and recomputes IsSoldOut.
func (m *Merchandise) Apply(p MerchandisePatch) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Price != nil {
		m.Price = *p.Price
	}
	if p.StockQuantity != nil {
		m.StockQuantity = *p.StockQuantity
	}
	if p.ItemsSold != nil {
		m.ItemsSold = *p.ItemsSold
	}
	p.ConcertID.applyTo(&m.ConcertID)
	m.RefreshSoldOut()
}

// MerchandiseDetails is a merchandise item with its concert resolved.
type MerchandiseDetails struct {
	Merchandise
	Concert *Concert `json:"concert"`
}
