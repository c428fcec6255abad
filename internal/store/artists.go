package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"backstage/internal/models"
)

const artistColumns = `a.id, a.name, a.performance_type, a.genres, a.bio, a.created_at, a.updated_at`

func scanArtist(row rowScanner) (models.Artist, error) {
	var (
		a      models.Artist
		genres []byte
	)
	if err := row.Scan(&a.ID, &a.Name, &a.Type, &genres, &a.Bio, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return models.Artist{}, err
	}
	a.Genres = []string{}
	if len(genres) > 0 {
		if err := json.Unmarshal(genres, &a.Genres); err != nil {
			return models.Artist{}, fmt.Errorf("decode genres: %w", err)
		}
	}
	return a, nil
}

func (s *Store) queryArtists(ctx context.Context, query string, args ...any) ([]models.Artist, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select artists: %w", err)
	}
	defer rows.Close()

	artists := []models.Artist{}
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		artists = append(artists, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artists: %w", err)
	}
	return artists, nil
}

func encodeGenres(genres []string) (string, error) {
	if genres == nil {
		genres = []string{}
	}
	b, err := json.Marshal(genres)
	if err != nil {
		return "", fmt.Errorf("encode genres: %w", err)
	}
	return string(b), nil
}

// CreateArtist persists a new artist.
func (s *Store) CreateArtist(ctx context.Context, artist models.Artist) (models.Artist, error) {
	genres, err := encodeGenres(artist.Genres)
	if err != nil {
		return models.Artist{}, err
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO artists (name, performance_type, genres, bio)
		VALUES ($1, $2, $3::jsonb, $4)
		RETURNING id, created_at, updated_at
	`, artist.Name, string(artist.Type), genres, artist.Bio).Scan(&artist.ID, &artist.CreatedAt, &artist.UpdatedAt)
	if err != nil {
		return models.Artist{}, fmt.Errorf("insert artist: %w", err)
	}

	if artist.Genres == nil {
		artist.Genres = []string{}
	}
	return artist, nil
}

// ListArtists returns every artist.
func (s *Store) ListArtists(ctx context.Context) ([]models.Artist, error) {
	return s.queryArtists(ctx, `
		SELECT `+artistColumns+`
		FROM artists a
		ORDER BY a.id
	`)
}

// GetArtist retrieves a single artist.
func (s *Store) GetArtist(ctx context.Context, id int64) (models.Artist, error) {
	a, err := scanArtist(s.db.QueryRowContext(ctx, `
		SELECT `+artistColumns+`
		FROM artists a
		WHERE a.id = $1
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Artist{}, ErrArtistNotFound
		}
		return models.Artist{}, fmt.Errorf("select artist: %w", err)
	}
	return a, nil
}

// UpdateArtist overwrites the stored artist with the given record.
func (s *Store) UpdateArtist(ctx context.Context, artist models.Artist) (models.Artist, error) {
	genres, err := encodeGenres(artist.Genres)
	if err != nil {
		return models.Artist{}, err
	}

	err = s.db.QueryRowContext(ctx, `
		UPDATE artists
		SET name = $1, performance_type = $2, genres = $3::jsonb, bio = $4,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $5
		RETURNING created_at, updated_at
	`, artist.Name, string(artist.Type), genres, artist.Bio, artist.ID).Scan(&artist.CreatedAt, &artist.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Artist{}, ErrArtistNotFound
		}
		return models.Artist{}, fmt.Errorf("update artist: %w", err)
	}
	return artist, nil
}

// DeleteArtist removes the artist, drops it from every concert line-up and
// clears it as performer of its songs.
func (s *Store) DeleteArtist(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM concert_artists
			WHERE artist_id = $1
		`, id); err != nil {
			return fmt.Errorf("unlink artist from concerts: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE songs
			SET artist_id = NULL, updated_at = CURRENT_TIMESTAMP
			WHERE artist_id = $1
		`, id); err != nil {
			return fmt.Errorf("unlink artist from songs: %w", err)
		}

		if err := execDelete(ctx, tx, `DELETE FROM artists WHERE id = $1`, id, ErrArtistNotFound); err != nil {
			if errors.Is(err, ErrNotFound) {
				return err
			}
			return fmt.Errorf("delete artist: %w", err)
		}
		return nil
	})
}

// SearchArtists matches the query against name, genres and bio.
func (s *Store) SearchArtists(ctx context.Context, query string) ([]models.Artist, error) {
	return s.queryArtists(ctx, `
		SELECT `+artistColumns+`
		FROM artists a
		WHERE a.name ILIKE $1 OR a.genres::text ILIKE $1 OR a.bio ILIKE $1
		ORDER BY a.id
	`, containsPattern(query))
}

// ListConcertArtists returns the line-up of a concert in booking order.
// Artists booked twice appear twice.
func (s *Store) ListConcertArtists(ctx context.Context, concertID int64) ([]models.Artist, error) {
	return s.queryArtists(ctx, `
		SELECT `+artistColumns+`
		FROM concert_artists ca
		INNER JOIN artists a ON a.id = ca.artist_id
		WHERE ca.concert_id = $1
		ORDER BY ca.position
	`, concertID)
}
