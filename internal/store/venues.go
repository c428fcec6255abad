package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"backstage/internal/models"
)

const venueColumns = `v.id, v.name, v.capacity, v.city, v.state, v.postal_code, v.created_at, v.updated_at`

func scanVenue(row rowScanner) (models.Venue, error) {
	var v models.Venue
	err := row.Scan(
		&v.ID, &v.Name, &v.Capacity,
		&v.Address.City, &v.Address.State, &v.Address.PostalCode,
		&v.CreatedAt, &v.UpdatedAt,
	)
	return v, err
}

func (s *Store) queryVenues(ctx context.Context, query string, args ...any) ([]models.Venue, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select venues: %w", err)
	}
	defer rows.Close()

	venues := []models.Venue{}
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

// CreateVenue persists a new venue.
func (s *Store) CreateVenue(ctx context.Context, venue models.Venue) (models.Venue, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO venues (name, capacity, city, state, postal_code)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, venue.Name, venue.Capacity, venue.Address.City, venue.Address.State, venue.Address.PostalCode,
	).Scan(&venue.ID, &venue.CreatedAt, &venue.UpdatedAt)
	if err != nil {
		return models.Venue{}, fmt.Errorf("insert venue: %w", err)
	}
	return venue, nil
}

// ListVenues returns every venue.
func (s *Store) ListVenues(ctx context.Context) ([]models.Venue, error) {
	return s.queryVenues(ctx, `
		SELECT `+venueColumns+`
		FROM venues v
		ORDER BY v.id
	`)
}

// GetVenue retrieves a single venue by ID.
func (s *Store) GetVenue(ctx context.Context, id int64) (models.Venue, error) {
	v, err := scanVenue(s.db.QueryRowContext(ctx, `
		SELECT `+venueColumns+`
		FROM venues v
		WHERE v.id = $1
	`, id))
	if err == sql.ErrNoRows {
		return models.Venue{}, ErrVenueNotFound
	}
	if err != nil {
		return models.Venue{}, fmt.Errorf("select venue: %w", err)
	}
	return v, nil
}

// UpdateVenue overwrites the stored venue with the given record.
func (s *Store) UpdateVenue(ctx context.Context, venue models.Venue) (models.Venue, error) {
	err := s.db.QueryRowContext(ctx, `
		UPDATE venues
		SET name = $1, capacity = $2, city = $3, state = $4, postal_code = $5,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
		RETURNING created_at, updated_at
	`, venue.Name, venue.Capacity, venue.Address.City, venue.Address.State, venue.Address.PostalCode, venue.ID,
	).Scan(&venue.CreatedAt, &venue.UpdatedAt)
	if err == sql.ErrNoRows {
		return models.Venue{}, ErrVenueNotFound
	}
	if err != nil {
		return models.Venue{}, fmt.Errorf("update venue: %w", err)
	}
	return venue, nil
}

// DeleteVenue removes a venue and unsets it on the concerts and tickets that
// referenced it.
func (s *Store) DeleteVenue(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			UPDATE concerts
			SET venue_id = NULL, updated_at = CURRENT_TIMESTAMP
			WHERE venue_id = $1
		`, id); err != nil {
			return fmt.Errorf("unset concert venue: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE tickets
			SET venue_id = NULL, updated_at = CURRENT_TIMESTAMP
			WHERE venue_id = $1
		`, id); err != nil {
			return fmt.Errorf("unset ticket venue: %w", err)
		}

		if err := execDelete(ctx, tx, `DELETE FROM venues WHERE id = $1`, id, ErrVenueNotFound); err != nil {
			if errors.Is(err, ErrNotFound) {
				return err
			}
			return fmt.Errorf("delete venue: %w", err)
		}
		return nil
	})
}

// SearchVenues matches the query against the name and address.
func (s *Store) SearchVenues(ctx context.Context, query string) ([]models.Venue, error) {
	return s.queryVenues(ctx, `
		SELECT `+venueColumns+`
		FROM venues v
		WHERE v.name ILIKE $1 OR v.city ILIKE $1 OR v.state ILIKE $1 OR v.postal_code ILIKE $1
		ORDER BY v.id
	`, containsPattern(query))
}
