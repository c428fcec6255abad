package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"backstage/internal/models"
)

const venueJSON = `
	CASE WHEN v.id IS NULL THEN NULL ELSE json_build_object(
		'id', v.id, 'name', v.name, 'capacity', v.capacity,
		'address', json_build_object('city', v.city, 'state', v.state, 'postalCode', v.postal_code),
		'createdAt', v.created_at, 'updatedAt', v.updated_at
	) END`

const concertRefJSON = `json_build_object('id', c.id, 'name', c.name, 'concertDate', c.concert_date)`

// decodeJSON unmarshals an aggregated JSON column, leaving dst untouched for
// SQL NULL.
func decodeJSON(raw []byte, dst any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

// HighAttendanceConcerts lists concerts with more than threshold tickets.
func (s *Store) HighAttendanceConcerts(ctx context.Context, threshold int) ([]models.AttendanceRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.concert_date, c.concert_time, COUNT(t.id) AS attendee_count,
		       `+venueJSON+`
		FROM concerts c
		INNER JOIN tickets t ON t.concert_id = c.id
		LEFT JOIN venues v ON v.id = c.venue_id
		GROUP BY c.id, v.id
		HAVING COUNT(t.id) > $1
		ORDER BY attendee_count DESC, c.id
	`, threshold)
	if err != nil {
		return nil, fmt.Errorf("high attendance report: %w", err)
	}
	defer rows.Close()

	result := []models.AttendanceRow{}
	for rows.Next() {
		var (
			r     models.AttendanceRow
			venue []byte
		)
		if err := rows.Scan(&r.ConcertID, &r.Name, &r.ConcertDate, &r.ConcertTime, &r.AttendeeCount, &venue); err != nil {
			return nil, fmt.Errorf("scan attendance row: %w", err)
		}
		if err := decodeJSON(venue, &r.Venue); err != nil {
			return nil, fmt.Errorf("decode venue: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// TopArtistBySales returns the artist whose concerts sold the most tickets,
// or nil when no artist is booked anywhere. Ties resolve in whatever order
// Postgres yields.
func (s *Store) TopArtistBySales(ctx context.Context) (*models.ArtistSales, error) {
	var r models.ArtistSales
	err := s.db.QueryRowContext(ctx, `
		WITH ticket_totals AS (
			SELECT concert_id, COUNT(*) AS tickets, COALESCE(SUM(price), 0) AS revenue
			FROM tickets
			WHERE concert_id IS NOT NULL
			GROUP BY concert_id
		)
		SELECT a.id, a.name,
		       COALESCE(SUM(tt.tickets), 0)::bigint AS total_tickets,
		       COALESCE(SUM(tt.revenue), 0) AS total_revenue
		FROM concert_artists ca
		INNER JOIN artists a ON a.id = ca.artist_id
		LEFT JOIN ticket_totals tt ON tt.concert_id = ca.concert_id
		GROUP BY a.id, a.name
		ORDER BY total_tickets DESC
		LIMIT 1
	`).Scan(&r.ArtistID, &r.ArtistName, &r.TotalTicketsSold, &r.TotalRevenue)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("top artist report: %w", err)
	}
	return &r, nil
}

// BusyVenues lists venues that hosted more than minConcerts concerts.
func (s *Store) BusyVenues(ctx context.Context, minConcerts int) ([]models.VenueActivity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT v.id, v.name, v.capacity, v.city, v.state, v.postal_code,
		       COUNT(c.id) AS concert_count,
		       json_agg(`+concertRefJSON+` ORDER BY c.concert_date, c.id)
		FROM venues v
		INNER JOIN concerts c ON c.venue_id = v.id
		GROUP BY v.id
		HAVING COUNT(c.id) > $1
		ORDER BY concert_count DESC, v.id
	`, minConcerts)
	if err != nil {
		return nil, fmt.Errorf("busy venues report: %w", err)
	}
	defer rows.Close()

	result := []models.VenueActivity{}
	for rows.Next() {
		var (
			r        models.VenueActivity
			concerts []byte
		)
		if err := rows.Scan(
			&r.VenueID, &r.Name, &r.Capacity,
			&r.Address.City, &r.Address.State, &r.Address.PostalCode,
			&r.ConcertCount, &concerts,
		); err != nil {
			return nil, fmt.Errorf("scan venue activity: %w", err)
		}
		r.Concerts = []models.ConcertRef{}
		if err := decodeJSON(concerts, &r.Concerts); err != nil {
			return nil, fmt.Errorf("decode concerts: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// SoldOutMerchandise lists sold-out items with their concert.
func (s *Store) SoldOutMerchandise(ctx context.Context) ([]models.SoldOutItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+merchandiseColumns+`,
		       CASE WHEN c.id IS NULL THEN NULL ELSE `+concertRefJSON+` END
		FROM merchandise m
		LEFT JOIN concerts c ON c.id = m.concert_id
		WHERE m.is_sold_out
		ORDER BY m.id
	`)
	if err != nil {
		return nil, fmt.Errorf("sold out report: %w", err)
	}
	defer rows.Close()

	result := []models.SoldOutItem{}
	for rows.Next() {
		var (
			r         models.SoldOutItem
			concertID sql.NullInt64
			concert   []byte
		)
		if err := rows.Scan(
			&r.ID, &r.Name, &r.Price, &r.StockQuantity, &r.ItemsSold, &r.IsSoldOut,
			&concertID, &r.CreatedAt, &r.UpdatedAt, &concert,
		); err != nil {
			return nil, fmt.Errorf("scan sold out item: %w", err)
		}
		r.ConcertID = nullableID(concertID)
		if err := decodeJSON(concert, &r.Concert); err != nil {
			return nil, fmt.Errorf("decode concert: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// ArtistsInManyConcerts lists artists booked on more than minConcerts
// distinct concerts. An empty performanceType matches every artist.
func (s *Store) ArtistsInManyConcerts(ctx context.Context, minConcerts int, performanceType string) ([]models.ArtistConcertCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.name, a.performance_type, x.concert_count, x.concerts
		FROM artists a
		INNER JOIN LATERAL (
			SELECT COUNT(*) AS concert_count,
			       json_agg(c.name ORDER BY c.concert_date, c.id) AS concerts
			FROM concerts c
			WHERE c.id IN (SELECT concert_id FROM concert_artists WHERE artist_id = a.id)
		) x ON TRUE
		WHERE x.concert_count > $1
		  AND ($2::text = '' OR a.performance_type = $2::text)
		ORDER BY x.concert_count DESC, a.id
	`, minConcerts, performanceType)
	if err != nil {
		return nil, fmt.Errorf("multi concert artists report: %w", err)
	}
	defer rows.Close()

	result := []models.ArtistConcertCount{}
	for rows.Next() {
		var (
			r        models.ArtistConcertCount
			concerts []byte
		)
		if err := rows.Scan(&r.ArtistID, &r.ArtistName, &r.Type, &r.ConcertCount, &concerts); err != nil {
			return nil, fmt.Errorf("scan artist concert count: %w", err)
		}
		r.Concerts = []string{}
		if err := decodeJSON(concerts, &r.Concerts); err != nil {
			return nil, fmt.Errorf("decode concert names: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// VenueTicketTotals sums concerts, tickets and revenue per venue. Averages
// are left for the caller to compute.
func (s *Store) VenueTicketTotals(ctx context.Context) ([]models.VenueTicketAverages, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT v.id, v.name,
		       COUNT(DISTINCT c.id) AS total_concerts,
		       COUNT(t.id) AS total_tickets,
		       COALESCE(SUM(t.price), 0) AS total_revenue
		FROM venues v
		LEFT JOIN concerts c ON c.venue_id = v.id
		LEFT JOIN tickets t ON t.concert_id = c.id
		GROUP BY v.id, v.name
		ORDER BY v.id
	`)
	if err != nil {
		return nil, fmt.Errorf("venue ticket report: %w", err)
	}
	defer rows.Close()

	result := []models.VenueTicketAverages{}
	for rows.Next() {
		var r models.VenueTicketAverages
		if err := rows.Scan(&r.VenueID, &r.VenueName, &r.TotalConcerts, &r.TotalTickets, &r.TotalRevenue); err != nil {
			return nil, fmt.Errorf("scan venue totals: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// CollaborationConcerts lists concerts with at least minArtists artists.
func (s *Store) CollaborationConcerts(ctx context.Context, minArtists int) ([]models.CollaborationConcert, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.concert_date, c.concert_time,
		       COUNT(ca.position) AS artist_count,
		       json_agg(json_build_object('id', a.id, 'name', a.name, 'type', a.performance_type) ORDER BY ca.position),
		       `+venueJSON+`
		FROM concerts c
		INNER JOIN concert_artists ca ON ca.concert_id = c.id
		INNER JOIN artists a ON a.id = ca.artist_id
		LEFT JOIN venues v ON v.id = c.venue_id
		GROUP BY c.id, v.id
		HAVING COUNT(ca.position) >= $1
		ORDER BY c.concert_date, c.id
	`, minArtists)
	if err != nil {
		return nil, fmt.Errorf("collaboration report: %w", err)
	}
	defer rows.Close()

	result := []models.CollaborationConcert{}
	for rows.Next() {
		var (
			r              models.CollaborationConcert
			artists, venue []byte
		)
		if err := rows.Scan(&r.ConcertID, &r.Name, &r.ConcertDate, &r.ConcertTime, &r.ArtistCount, &artists, &venue); err != nil {
			return nil, fmt.Errorf("scan collaboration concert: %w", err)
		}
		r.Artists = []models.ArtistRef{}
		if err := decodeJSON(artists, &r.Artists); err != nil {
			return nil, fmt.Errorf("decode artists: %w", err)
		}
		if err := decodeJSON(venue, &r.Venue); err != nil {
			return nil, fmt.Errorf("decode venue: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// SponsorCoverage lists sponsors attached to more than minConcerts concerts.
func (s *Store) SponsorCoverage(ctx context.Context, minConcerts int) ([]models.SponsorCoverage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sp.id, sp.name, sp.category, sp.website, x.concert_count, x.concerts
		FROM sponsors sp
		INNER JOIN LATERAL (
			SELECT COUNT(*) AS concert_count,
			       json_agg(`+concertRefJSON+` ORDER BY c.concert_date, c.id) AS concerts
			FROM concerts c
			WHERE c.id IN (SELECT concert_id FROM concert_sponsors WHERE sponsor_id = sp.id)
		) x ON TRUE
		WHERE x.concert_count > $1
		ORDER BY x.concert_count DESC, sp.id
	`, minConcerts)
	if err != nil {
		return nil, fmt.Errorf("sponsor coverage report: %w", err)
	}
	defer rows.Close()

	result := []models.SponsorCoverage{}
	for rows.Next() {
		var (
			r        models.SponsorCoverage
			concerts []byte
		)
		if err := rows.Scan(&r.SponsorID, &r.Name, &r.Category, &r.Website, &r.ConcertCount, &concerts); err != nil {
			return nil, fmt.Errorf("scan sponsor coverage: %w", err)
		}
		r.Concerts = []models.ConcertRef{}
		if err := decodeJSON(concerts, &r.Concerts); err != nil {
			return nil, fmt.Errorf("decode concerts: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// LoyalFans groups registrations by email and keeps attendees with at least
// minTickets of them.
func (s *Store) LoyalFans(ctx context.Context, minTickets int) ([]models.LoyalFan, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.attendee_email, MIN(t.attendee_name), MIN(t.attendee_phone),
		       COUNT(*) AS concert_count,
		       COALESCE(SUM(t.price), 0) AS total_spent,
		       COALESCE(json_agg(`+concertRefJSON+` ORDER BY c.concert_date, c.id)
		                FILTER (WHERE c.id IS NOT NULL), '[]')
		FROM tickets t
		LEFT JOIN concerts c ON c.id = t.concert_id
		GROUP BY t.attendee_email
		HAVING COUNT(*) >= $1
		ORDER BY concert_count DESC, t.attendee_email
	`, minTickets)
	if err != nil {
		return nil, fmt.Errorf("loyal fans report: %w", err)
	}
	defer rows.Close()

	result := []models.LoyalFan{}
	for rows.Next() {
		var (
			r        models.LoyalFan
			concerts []byte
		)
		if err := rows.Scan(&r.AttendeeEmail, &r.AttendeeName, &r.AttendeePhone, &r.ConcertCount, &r.TotalSpent, &concerts); err != nil {
			return nil, fmt.Errorf("scan loyal fan: %w", err)
		}
		r.Concerts = []models.ConcertRef{}
		if err := decodeJSON(concerts, &r.Concerts); err != nil {
			return nil, fmt.Errorf("decode concerts: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// PopularSong returns the song found on the most concert playlists, counting
// every playlist entry, or nil when no playlist has songs.
func (s *Store) PopularSong(ctx context.Context) (*models.SongPopularity, error) {
	var (
		r        models.SongPopularity
		artistID sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT `+songColumns+`, COUNT(*) AS concert_count
		FROM concert_songs cg
		INNER JOIN songs sg ON sg.id = cg.song_id
		GROUP BY sg.id
		ORDER BY concert_count DESC, sg.id
		LIMIT 1
	`).Scan(
		&r.ID, &r.Title, &artistID, &r.Duration, &r.Genre, &r.PlayCount, &r.CreatedAt, &r.UpdatedAt,
		&r.ConcertCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("popular song report: %w", err)
	}
	r.ArtistID = nullableID(artistID)
	return &r, nil
}

// MerchandiseRevenueByConcert sums itemsSold × price per concert, highest
// revenue first. Items without a concert are left out.
func (s *Store) MerchandiseRevenueByConcert(ctx context.Context) ([]models.MerchandiseRevenue, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.concert_date,
		       COALESCE(SUM(m.items_sold * m.price), 0) AS revenue,
		       json_agg(json_build_object('name', m.name, 'price', m.price, 'itemsSold', m.items_sold) ORDER BY m.id)
		FROM merchandise m
		INNER JOIN concerts c ON c.id = m.concert_id
		GROUP BY c.id
		ORDER BY revenue DESC, c.id
	`)
	if err != nil {
		return nil, fmt.Errorf("merchandise revenue report: %w", err)
	}
	defer rows.Close()

	result := []models.MerchandiseRevenue{}
	for rows.Next() {
		var (
			r     models.MerchandiseRevenue
			items []byte
		)
		if err := rows.Scan(&r.ConcertID, &r.ConcertName, &r.ConcertDate, &r.TotalMerchandiseRevenue, &items); err != nil {
			return nil, fmt.Errorf("scan merchandise revenue: %w", err)
		}
		r.Items = []models.MerchandiseLine{}
		if err := decodeJSON(items, &r.Items); err != nil {
			return nil, fmt.Errorf("decode merchandise items: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// MultiVenueArtists lists artists who played more than minVenues distinct
// venues.
func (s *Store) MultiVenueArtists(ctx context.Context, minVenues int) ([]models.ArtistVenueSpread, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.name, x.venue_count, x.venues, y.concerts
		FROM artists a
		INNER JOIN LATERAL (
			SELECT COUNT(*) AS venue_count,
			       json_agg(json_build_object('id', v.id, 'name', v.name) ORDER BY v.id) AS venues
			FROM venues v
			WHERE v.id IN (
				SELECT c.venue_id
				FROM concerts c
				INNER JOIN concert_artists ca ON ca.concert_id = c.id
				WHERE ca.artist_id = a.id
			)
		) x ON TRUE
		INNER JOIN LATERAL (
			SELECT json_agg(c.name ORDER BY c.concert_date, c.id) AS concerts
			FROM concerts c
			WHERE c.id IN (SELECT concert_id FROM concert_artists WHERE artist_id = a.id)
		) y ON TRUE
		WHERE x.venue_count > $1
		ORDER BY x.venue_count DESC, a.id
	`, minVenues)
	if err != nil {
		return nil, fmt.Errorf("multi venue artists report: %w", err)
	}
	defer rows.Close()

	result := []models.ArtistVenueSpread{}
	for rows.Next() {
		var (
			r                models.ArtistVenueSpread
			venues, concerts []byte
		)
		if err := rows.Scan(&r.ArtistID, &r.ArtistName, &r.UniqueVenueCount, &venues, &concerts); err != nil {
			return nil, fmt.Errorf("scan artist venue spread: %w", err)
		}
		r.Venues = []models.VenueRef{}
		if err := decodeJSON(venues, &r.Venues); err != nil {
			return nil, fmt.Errorf("decode venues: %w", err)
		}
		r.Concerts = []string{}
		if err := decodeJSON(concerts, &r.Concerts); err != nil {
			return nil, fmt.Errorf("decode concert names: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
