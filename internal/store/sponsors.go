package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"backstage/internal/models"
)

const sponsorColumns = `sp.id, sp.name, sp.category, sp.website, sp.logo, sp.created_at, sp.updated_at`

func scanSponsor(row rowScanner) (models.Sponsor, error) {
	var sp models.Sponsor
	err := row.Scan(&sp.ID, &sp.Name, &sp.Category, &sp.Website, &sp.Logo, &sp.CreatedAt, &sp.UpdatedAt)
	return sp, err
}

func (s *Store) querySponsors(ctx context.Context, query string, args ...any) ([]models.Sponsor, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select sponsors: %w", err)
	}
	defer rows.Close()

	sponsors := []models.Sponsor{}
	for rows.Next() {
		sp, err := scanSponsor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sponsor: %w", err)
		}
		sponsors = append(sponsors, sp)
	}
	return sponsors, rows.Err()
}

// CreateSponsor persists a new sponsor. Names are unique.
func (s *Store) CreateSponsor(ctx context.Context, sponsor models.Sponsor) (models.Sponsor, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO sponsors (name, category, website, logo)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, sponsor.Name, sponsor.Category, sponsor.Website, sponsor.Logo).Scan(&sponsor.ID, &sponsor.CreatedAt, &sponsor.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Sponsor{}, ErrSponsorExists
		}
		return models.Sponsor{}, fmt.Errorf("insert sponsor: %w", err)
	}
	return sponsor, nil
}

// ListSponsors returns every sponsor.
func (s *Store) ListSponsors(ctx context.Context) ([]models.Sponsor, error) {
	return s.querySponsors(ctx, `
		SELECT `+sponsorColumns+`
		FROM sponsors sp
		ORDER BY sp.id
	`)
}

// GetSponsor retrieves a single sponsor.
func (s *Store) GetSponsor(ctx context.Context, id int64) (models.Sponsor, error) {
	sp, err := scanSponsor(s.db.QueryRowContext(ctx, `
		SELECT `+sponsorColumns+`
		FROM sponsors sp
		WHERE sp.id = $1
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Sponsor{}, ErrSponsorNotFound
		}
		return models.Sponsor{}, fmt.Errorf("select sponsor: %w", err)
	}
	return sp, nil
}

// UpdateSponsor overwrites the stored sponsor with the given record.
func (s *Store) UpdateSponsor(ctx context.Context, sponsor models.Sponsor) (models.Sponsor, error) {
	err := s.db.QueryRowContext(ctx, `
		UPDATE sponsors
		SET name = $1, category = $2, website = $3, logo = $4,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $5
		RETURNING created_at, updated_at
	`, sponsor.Name, sponsor.Category, sponsor.Website, sponsor.Logo, sponsor.ID).Scan(&sponsor.CreatedAt, &sponsor.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return models.Sponsor{}, ErrSponsorNotFound
		case isUniqueViolation(err):
			return models.Sponsor{}, ErrSponsorExists
		}
		return models.Sponsor{}, fmt.Errorf("update sponsor: %w", err)
	}
	return sponsor, nil
}

// DeleteSponsor removes the sponsor and drops it from every concert.
func (s *Store) DeleteSponsor(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM concert_sponsors
			WHERE sponsor_id = $1
		`, id); err != nil {
			return fmt.Errorf("unlink sponsor from concerts: %w", err)
		}

		if err := execDelete(ctx, tx, `DELETE FROM sponsors WHERE id = $1`, id, ErrSponsorNotFound); err != nil {
			if errors.Is(err, ErrNotFound) {
				return err
			}
			return fmt.Errorf("delete sponsor: %w", err)
		}
		return nil
	})
}

// SearchSponsors matches the query against name and category.
func (s *Store) SearchSponsors(ctx context.Context, query string) ([]models.Sponsor, error) {
	return s.querySponsors(ctx, `
		SELECT `+sponsorColumns+`
		FROM sponsors sp
		WHERE sp.name ILIKE $1 OR sp.category ILIKE $1
		ORDER BY sp.id
	`, containsPattern(query))
}

// ListConcertSponsors returns the sponsors of a concert in the order they
// were attached.
func (s *Store) ListConcertSponsors(ctx context.Context, concertID int64) ([]models.Sponsor, error) {
	return s.querySponsors(ctx, `
		SELECT `+sponsorColumns+`
		FROM concert_sponsors cs
		INNER JOIN sponsors sp ON sp.id = cs.sponsor_id
		WHERE cs.concert_id = $1
		ORDER BY cs.position
	`, concertID)
}
