package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"backstage/internal/models"
)

// linkTable describes one of the ordered concert reference lists.
type linkTable struct {
	table   string
	column  string
	entity  string
	missing error
}

var (
	artistLinks  = linkTable{table: "concert_artists", column: "artist_id", entity: "artist", missing: ErrArtistNotFound}
	sponsorLinks = linkTable{table: "concert_sponsors", column: "sponsor_id", entity: "sponsor", missing: ErrSponsorNotFound}
	songLinks    = linkTable{table: "concert_songs", column: "song_id", entity: "song", missing: ErrSongNotFound}
)

const concertSelect = `
	SELECT
		c.id, c.name, c.venue_id, c.concert_date, c.concert_time, c.description,
		c.ticket_price, c.capacity, c.created_at, c.updated_at,
		COALESCE((SELECT json_agg(ca.artist_id ORDER BY ca.position) FROM concert_artists ca WHERE ca.concert_id = c.id), '[]'),
		COALESCE((SELECT json_agg(cs.sponsor_id ORDER BY cs.position) FROM concert_sponsors cs WHERE cs.concert_id = c.id), '[]'),
		COALESCE((SELECT json_agg(cg.song_id ORDER BY cg.position) FROM concert_songs cg WHERE cg.concert_id = c.id), '[]')
	FROM concerts c`

func scanConcert(row rowScanner) (models.Concert, error) {
	var (
		c                        models.Concert
		venueID                  sql.NullInt64
		artists, sponsors, songs []byte
	)
	err := row.Scan(
		&c.ID, &c.Name, &venueID, &c.ConcertDate, &c.ConcertTime, &c.Description,
		&c.TicketPrice, &c.Capacity, &c.CreatedAt, &c.UpdatedAt,
		&artists, &sponsors, &songs,
	)
	if err != nil {
		return models.Concert{}, err
	}
	c.VenueID = nullableID(venueID)

	if c.ArtistIDs, err = decodeIDs(artists); err != nil {
		return models.Concert{}, fmt.Errorf("decode artist ids: %w", err)
	}
	if c.SponsorIDs, err = decodeIDs(sponsors); err != nil {
		return models.Concert{}, fmt.Errorf("decode sponsor ids: %w", err)
	}
	if c.SongIDs, err = decodeIDs(songs); err != nil {
		return models.Concert{}, fmt.Errorf("decode song ids: %w", err)
	}
	return c, nil
}

func decodeIDs(raw []byte) ([]int64, error) {
	ids := []int64{}
	if len(raw) == 0 {
		return ids, nil
	}
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

func (s *Store) queryConcerts(ctx context.Context, query string, args ...any) ([]models.Concert, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select concerts: %w", err)
	}
	defer rows.Close()

	concerts := []models.Concert{}
	for rows.Next() {
		c, err := scanConcert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan concert: %w", err)
		}
		concerts = append(concerts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate concerts: %w", err)
	}
	return concerts, nil
}

// CreateConcert inserts the concert with its reference lists. When more than
// one artist is booked a collaboration record is written in the same
// transaction.
func (s *Store) CreateConcert(ctx context.Context, concert models.Concert) (models.Concert, error) {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO concerts (name, venue_id, concert_date, concert_time, description,
			                      ticket_price, capacity)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at
		`, concert.Name, concert.VenueID, concert.ConcertDate, concert.ConcertTime, concert.Description,
			concert.TicketPrice, concert.Capacity,
		).Scan(&concert.ID, &concert.CreatedAt, &concert.UpdatedAt)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("venue %d: %w", derefID(concert.VenueID), ErrInvalidReference)
			}
			return fmt.Errorf("insert concert: %w", err)
		}

		if err := insertLinks(ctx, tx, artistLinks, concert.ID, concert.ArtistIDs); err != nil {
			return err
		}
		if err := insertLinks(ctx, tx, sponsorLinks, concert.ID, concert.SponsorIDs); err != nil {
			return err
		}
		if err := insertLinks(ctx, tx, songLinks, concert.ID, concert.SongIDs); err != nil {
			return err
		}

		if len(concert.ArtistIDs) > 1 {
			if _, err := insertCollaboration(ctx, tx, concert.ID, concert.ArtistIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.Concert{}, err
	}
	return concert, nil
}

func insertLinks(ctx context.Context, tx *sql.Tx, link linkTable, concertID int64, ids []int64) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (concert_id, position, %s)
		VALUES ($1, $2, $3)
	`, link.table, link.column)

	for i, id := range ids {
		if _, err := tx.ExecContext(ctx, query, concertID, i, id); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%s %d: %w", link.entity, id, ErrInvalidReference)
			}
			return fmt.Errorf("insert %s: %w", link.table, err)
		}
	}
	return nil
}

func insertCollaboration(ctx context.Context, tx *sql.Tx, concertID int64, artistIDs []int64) (int64, error) {
	raw, err := json.Marshal(artistIDs)
	if err != nil {
		return 0, fmt.Errorf("encode collaboration artists: %w", err)
	}

	var id int64
	if err := tx.QueryRowContext(ctx, `
		INSERT INTO collaborations (concert_id, artist_ids)
		VALUES ($1, $2::jsonb)
		RETURNING id
	`, concertID, string(raw)).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert collaboration: %w", err)
	}
	return id, nil
}

// ListConcerts returns every concert ordered by date.
func (s *Store) ListConcerts(ctx context.Context) ([]models.Concert, error) {
	return s.queryConcerts(ctx, concertSelect+`
		ORDER BY c.concert_date, c.id
	`)
}

// GetConcert retrieves a single concert by ID.
func (s *Store) GetConcert(ctx context.Context, id int64) (models.Concert, error) {
	c, err := scanConcert(s.db.QueryRowContext(ctx, concertSelect+`
		WHERE c.id = $1
	`, id))
	if err == sql.ErrNoRows {
		return models.Concert{}, ErrConcertNotFound
	}
	if err != nil {
		return models.Concert{}, fmt.Errorf("select concert: %w", err)
	}
	return c, nil
}

// UpdateConcert locks the concert row, lets mutate edit the stored copy and
// writes the result back. A reference list is rewritten only when mutate
// changed it.
func (s *Store) UpdateConcert(ctx context.Context, id int64, mutate func(*models.Concert) error) (models.Concert, error) {
	var concert models.Concert
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		current, err := scanConcert(tx.QueryRowContext(ctx, concertSelect+`
			WHERE c.id = $1
			FOR UPDATE OF c
		`, id))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrConcertNotFound
			}
			return fmt.Errorf("lock concert: %w", err)
		}

		concert = current
		concert.ArtistIDs = slices.Clone(current.ArtistIDs)
		concert.SponsorIDs = slices.Clone(current.SponsorIDs)
		concert.SongIDs = slices.Clone(current.SongIDs)
		if err := mutate(&concert); err != nil {
			return err
		}
		concert.ID = id

		err = tx.QueryRowContext(ctx, `
			UPDATE concerts
			SET name = $1, venue_id = $2, concert_date = $3, concert_time = $4,
			    description = $5, ticket_price = $6, capacity = $7,
			    updated_at = CURRENT_TIMESTAMP
			WHERE id = $8
			RETURNING created_at, updated_at
		`, concert.Name, concert.VenueID, concert.ConcertDate, concert.ConcertTime,
			concert.Description, concert.TicketPrice, concert.Capacity, concert.ID,
		).Scan(&concert.CreatedAt, &concert.UpdatedAt)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				return ErrConcertNotFound
			case isForeignKeyViolation(err):
				return fmt.Errorf("venue %d: %w", derefID(concert.VenueID), ErrInvalidReference)
			}
			return fmt.Errorf("update concert: %w", err)
		}

		for _, replace := range []struct {
			link     linkTable
			old, ids []int64
		}{
			{artistLinks, current.ArtistIDs, concert.ArtistIDs},
			{sponsorLinks, current.SponsorIDs, concert.SponsorIDs},
			{songLinks, current.SongIDs, concert.SongIDs},
		} {
			if slices.Equal(replace.old, replace.ids) {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				fmt.Sprintf(`DELETE FROM %s WHERE concert_id = $1`, replace.link.table),
				concert.ID,
			); err != nil {
				return fmt.Errorf("clear %s: %w", replace.link.table, err)
			}
			if err := insertLinks(ctx, tx, replace.link, concert.ID, replace.ids); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.Concert{}, err
	}
	return concert, nil
}

// DeleteConcert removes the concert together with its collaborations and
// reference lists, and detaches its tickets and merchandise.
func (s *Store) DeleteConcert(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM collaborations
			WHERE concert_id = $1
		`, id); err != nil {
			return fmt.Errorf("delete collaborations: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE tickets
			SET concert_id = NULL, updated_at = CURRENT_TIMESTAMP
			WHERE concert_id = $1
		`, id); err != nil {
			return fmt.Errorf("detach tickets: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE merchandise
			SET concert_id = NULL, updated_at = CURRENT_TIMESTAMP
			WHERE concert_id = $1
		`, id); err != nil {
			return fmt.Errorf("detach merchandise: %w", err)
		}

		// concert_artists, concert_sponsors and concert_songs cascade.
		if err := execDelete(ctx, tx, `DELETE FROM concerts WHERE id = $1`, id, ErrConcertNotFound); err != nil {
			if errors.Is(err, ErrNotFound) {
				return err
			}
			return fmt.Errorf("delete concert: %w", err)
		}
		return nil
	})
}

// SearchConcerts matches the query against name and description.
func (s *Store) SearchConcerts(ctx context.Context, query string) ([]models.Concert, error) {
	return s.queryConcerts(ctx, concertSelect+`
		WHERE c.name ILIKE $1 OR c.description ILIKE $1
		ORDER BY c.concert_date, c.id
	`, containsPattern(query))
}

// AddConcertArtist appends an artist to the concert line-up.
func (s *Store) AddConcertArtist(ctx context.Context, concertID, artistID int64) error {
	return s.appendLink(ctx, artistLinks, concertID, artistID)
}

// AddConcertSponsor appends a sponsor to the concert.
func (s *Store) AddConcertSponsor(ctx context.Context, concertID, sponsorID int64) error {
	return s.appendLink(ctx, sponsorLinks, concertID, sponsorID)
}

// AddConcertSong appends a song to the concert playlist.
func (s *Store) AddConcertSong(ctx context.Context, concertID, songID int64) error {
	return s.appendLink(ctx, songLinks, concertID, songID)
}

// appendLink adds refID at the end of a concert list. The concert row is
// locked so concurrent appends get distinct positions. Duplicates are kept.
func (s *Store) appendLink(ctx context.Context, link linkTable, concertID, refID int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var locked int64
		err := tx.QueryRowContext(ctx, `
			SELECT id
			FROM concerts
			WHERE id = $1
			FOR UPDATE
		`, concertID).Scan(&locked)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrConcertNotFound
			}
			return fmt.Errorf("lock concert: %w", err)
		}

		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`
			INSERT INTO %[1]s (concert_id, position, %[2]s)
			SELECT $1, COALESCE(MAX(position) + 1, 0), $2
			FROM %[1]s
			WHERE concert_id = $1
		`, link.table, link.column), concertID, refID); err != nil {
			if isForeignKeyViolation(err) {
				return link.missing
			}
			return fmt.Errorf("append %s: %w", link.entity, err)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE concerts
			SET updated_at = CURRENT_TIMESTAMP
			WHERE id = $1
		`, concertID); err != nil {
			return fmt.Errorf("touch concert: %w", err)
		}
		return nil
	})
}

// ListCollaborations returns the collaboration records of a concert.
func (s *Store) ListCollaborations(ctx context.Context, concertID int64) ([]models.Collaboration, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, concert_id, artist_ids, created_at, updated_at
		FROM collaborations
		WHERE concert_id = $1
		ORDER BY id
	`, concertID)
	if err != nil {
		return nil, fmt.Errorf("select collaborations: %w", err)
	}
	defer rows.Close()

	collaborations := []models.Collaboration{}
	for rows.Next() {
		var (
			c   models.Collaboration
			raw []byte
		)
		if err := rows.Scan(&c.ID, &c.ConcertID, &raw, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan collaboration: %w", err)
		}
		if c.ArtistIDs, err = decodeIDs(raw); err != nil {
			return nil, fmt.Errorf("decode collaboration artists: %w", err)
		}
		collaborations = append(collaborations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collaborations: %w", err)
	}
	return collaborations, nil
}

// ListConcertsByArtist returns the concerts an artist is booked on.
func (s *Store) ListConcertsByArtist(ctx context.Context, artistID int64) ([]models.Concert, error) {
	return s.queryConcerts(ctx, concertSelect+`
		WHERE c.id IN (SELECT concert_id FROM concert_artists WHERE artist_id = $1)
		ORDER BY c.concert_date, c.id
	`, artistID)
}

// ListConcertsBySponsor returns the concerts a sponsor supports.
func (s *Store) ListConcertsBySponsor(ctx context.Context, sponsorID int64) ([]models.Concert, error) {
	return s.queryConcerts(ctx, concertSelect+`
		WHERE c.id IN (SELECT concert_id FROM concert_sponsors WHERE sponsor_id = $1)
		ORDER BY c.concert_date, c.id
	`, sponsorID)
}

// ListConcertsBySong returns the concerts whose playlist contains the song.
func (s *Store) ListConcertsBySong(ctx context.Context, songID int64) ([]models.Concert, error) {
	return s.queryConcerts(ctx, concertSelect+`
		WHERE c.id IN (SELECT concert_id FROM concert_songs WHERE song_id = $1)
		ORDER BY c.concert_date, c.id
	`, songID)
}

// ListConcertsByVenue returns the concerts hosted at a venue.
func (s *Store) ListConcertsByVenue(ctx context.Context, venueID int64) ([]models.Concert, error) {
	return s.queryConcerts(ctx, concertSelect+`
		WHERE c.venue_id = $1
		ORDER BY c.concert_date, c.id
	`, venueID)
}
