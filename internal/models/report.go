package models

// VenueRef is the compact venue shape embedded in report rows.
type VenueRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ConcertRef is the compact concert shape embedded in report rows.
type ConcertRef struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ConcertDate Date   `json:"concertDate"`
}

// ArtistRef is the compact artist shape embedded in report rows.
type ArtistRef struct {
	ID   int64           `json:"id"`
	Name string          `json:"name"`
	Type PerformanceType `json:"type"`
}

// MerchandiseLine is one item of a merchandise revenue breakdown.
type MerchandiseLine struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ItemsSold int     `json:"itemsSold"`
}

// AttendanceRow is a concert with its registered attendee count.
type AttendanceRow struct {
	ConcertID     int64  `json:"concertId"`
	Name          string `json:"name"`
	ConcertDate   Date   `json:"concertDate"`
	ConcertTime   string `json:"concertTime"`
	AttendeeCount int    `json:"attendeeCount"`
	Venue         *Venue `json:"venue"`
}

// ArtistSales sums the tickets sold across an artist's concerts.
type ArtistSales struct {
	ArtistID         int64   `json:"artistId"`
	ArtistName       string  `json:"artistName"`
	TotalTicketsSold int     `json:"totalTicketsSold"`
	TotalRevenue     float64 `json:"totalRevenue"`
}

// VenueActivity is a venue with the concerts it hosted.
type VenueActivity struct {
	VenueID      int64        `json:"venueId"`
	Name         string       `json:"name"`
	Capacity     int          `json:"capacity"`
	Address      Address      `json:"address"`
	ConcertCount int          `json:"concertCount"`
	Concerts     []ConcertRef `json:"concerts"`
}

// SoldOutItem is a sold-out merchandise item with its concert.
type SoldOutItem struct {
	Merchandise
	Concert *ConcertRef `json:"concert"`
}

// ArtistConcertCount is an artist with the concerts they appeared in.
type ArtistConcertCount struct {
	ArtistID     int64           `json:"artistId"`
	ArtistName   string          `json:"artistName"`
	Type         PerformanceType `json:"type"`
	ConcertCount int             `json:"concertCount"`
	Concerts     []string        `json:"concerts"`
}

// VenueTicketAverages aggregates ticket sales per venue.
type VenueTicketAverages struct {
	VenueID                  int64   `json:"venueId"`
	VenueName                string  `json:"venueName"`
	TotalConcerts            int     `json:"totalConcerts"`
	TotalTickets             int     `json:"totalTickets"`
	TotalRevenue             float64 `json:"totalRevenue"`
	AverageTicketsPerConcert float64 `json:"averageTicketsPerConcert"`
	AverageRevenuePerConcert float64 `json:"averageRevenuePerConcert"`
}

// ComputeAverages fills the per-concert averages, yielding zero for venues
// without concerts.
func (v *VenueTicketAverages) ComputeAverages() {
	if v.TotalConcerts == 0 {
		v.AverageTicketsPerConcert = 0
		v.AverageRevenuePerConcert = 0
		return
	}
	v.AverageTicketsPerConcert = float64(v.TotalTickets) / float64(v.TotalConcerts)
	v.AverageRevenuePerConcert = v.TotalRevenue / float64(v.TotalConcerts)
}

// CollaborationConcert is a concert that booked two or more artists.
type CollaborationConcert struct {
	ConcertID   int64       `json:"concertId"`
	Name        string      `json:"name"`
	ConcertDate Date        `json:"concertDate"`
	ConcertTime string      `json:"concertTime"`
	ArtistCount int         `json:"artistCount"`
	Artists     []ArtistRef `json:"artists"`
	Venue       *Venue      `json:"venue"`
}

// SponsorCoverage is a sponsor with the concerts it supported.
type SponsorCoverage struct {
	SponsorID    int64        `json:"sponsorId"`
	Name         string       `json:"name"`
	Category     string       `json:"category"`
	Website      string       `json:"website"`
	ConcertCount int          `json:"concertCount"`
	Concerts     []ConcertRef `json:"concerts"`
}

// LoyalFan is an attendee grouped by email across registrations.
type LoyalFan struct {
	AttendeeEmail string       `json:"attendeeEmail"`
	AttendeeName  string       `json:"attendeeName"`
	AttendeePhone string       `json:"attendeePhone"`
	ConcertCount  int          `json:"concertCount"`
	TotalSpent    float64      `json:"totalSpent"`
	Concerts      []ConcertRef `json:"concerts"`
}

// SongPopularity counts how many concert playlists include a song.
type SongPopularity struct {
	Song
	ConcertCount int `json:"concertCount"`
}

// MerchandiseRevenue is the merchandise revenue of a single concert.
type MerchandiseRevenue struct {
	ConcertID               int64             `json:"concertId"`
	ConcertName             string            `json:"concertName"`
	ConcertDate             Date              `json:"concertDate"`
	TotalMerchandiseRevenue float64           `json:"totalMerchandiseRevenue"`
	Items                   []MerchandiseLine `json:"merchandiseItems"`
}

// ArtistVenueSpread is an artist with the distinct venues they played.
type ArtistVenueSpread struct {
	ArtistID         int64      `json:"artistId"`
	ArtistName       string     `json:"artistName"`
	UniqueVenueCount int        `json:"uniqueVenueCount"`
	Venues           []VenueRef `json:"venues"`
	Concerts         []string   `json:"concerts"`
}
