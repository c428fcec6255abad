package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"backstage/internal/models"
)

const songColumns = `sg.id, sg.title, sg.artist_id, sg.duration, sg.genre, sg.play_count, sg.created_at, sg.updated_at`

func scanSong(row rowScanner) (models.Song, error) {
	var (
		sg       models.Song
		artistID sql.NullInt64
	)
	err := row.Scan(&sg.ID, &sg.Title, &artistID, &sg.Duration, &sg.Genre, &sg.PlayCount, &sg.CreatedAt, &sg.UpdatedAt)
	if err != nil {
		return models.Song{}, err
	}
	sg.ArtistID = nullableID(artistID)
	return sg, nil
}

func (s *Store) querySongs(ctx context.Context, query string, args ...any) ([]models.Song, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select songs: %w", err)
	}
	defer rows.Close()

	songs := []models.Song{}
	for rows.Next() {
		sg, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, sg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}
	return songs, nil
}

// CreateSong persists a new song.
func (s *Store) CreateSong(ctx context.Context, song models.Song) (models.Song, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO songs (title, artist_id, duration, genre, play_count)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, song.Title, song.ArtistID, song.Duration, song.Genre, song.PlayCount).Scan(&song.ID, &song.CreatedAt, &song.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return models.Song{}, fmt.Errorf("artist %d: %w", derefID(song.ArtistID), ErrInvalidReference)
		}
		return models.Song{}, fmt.Errorf("insert song: %w", err)
	}
	return song, nil
}

// ListSongs returns every song.
func (s *Store) ListSongs(ctx context.Context) ([]models.Song, error) {
	return s.querySongs(ctx, `
		SELECT `+songColumns+`
		FROM songs sg
		ORDER BY sg.id
	`)
}

// GetSong retrieves a single song.
func (s *Store) GetSong(ctx context.Context, id int64) (models.Song, error) {
	sg, err := scanSong(s.db.QueryRowContext(ctx, `
		SELECT `+songColumns+`
		FROM songs sg
		WHERE sg.id = $1
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Song{}, ErrSongNotFound
		}
		return models.Song{}, fmt.Errorf("select song: %w", err)
	}
	return sg, nil
}

// UpdateSong overwrites the stored song with the given record.
func (s *Store) UpdateSong(ctx context.Context, song models.Song) (models.Song, error) {
	err := s.db.QueryRowContext(ctx, `
		UPDATE songs
		SET title = $1, artist_id = $2, duration = $3, genre = $4, play_count = $5,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
		RETURNING created_at, updated_at
	`, song.Title, song.ArtistID, song.Duration, song.Genre, song.PlayCount, song.ID).Scan(&song.CreatedAt, &song.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return models.Song{}, ErrSongNotFound
		case isForeignKeyViolation(err):
			return models.Song{}, fmt.Errorf("artist %d: %w", derefID(song.ArtistID), ErrInvalidReference)
		}
		return models.Song{}, fmt.Errorf("update song: %w", err)
	}
	return song, nil
}

// DeleteSong removes the song and drops it from every concert playlist.
func (s *Store) DeleteSong(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM concert_songs
			WHERE song_id = $1
		`, id); err != nil {
			return fmt.Errorf("unlink song from playlists: %w", err)
		}

		if err := execDelete(ctx, tx, `DELETE FROM songs WHERE id = $1`, id, ErrSongNotFound); err != nil {
			if errors.Is(err, ErrNotFound) {
				return err
			}
			return fmt.Errorf("delete song: %w", err)
		}
		return nil
	})
}

// SearchSongs matches the query against title and genre.
func (s *Store) SearchSongs(ctx context.Context, query string) ([]models.Song, error) {
	return s.querySongs(ctx, `
		SELECT `+songColumns+`
		FROM songs sg
		WHERE sg.title ILIKE $1 OR sg.genre ILIKE $1
		ORDER BY sg.id
	`, containsPattern(query))
}

// ListConcertSongs returns the playlist of a concert in play order.
func (s *Store) ListConcertSongs(ctx context.Context, concertID int64) ([]models.Song, error) {
	return s.querySongs(ctx, `
		SELECT `+songColumns+`
		FROM concert_songs cg
		INNER JOIN songs sg ON sg.id = cg.song_id
		WHERE cg.concert_id = $1
		ORDER BY cg.position
	`, concertID)
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
