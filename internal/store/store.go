package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is wrapped by every "record is absent" error.
	ErrNotFound = errors.New("not found")
	// ErrConflict is wrapped when a unique field is already taken.
	ErrConflict = errors.New("already exists")
	// ErrInvalidReference signals a write pointing at a row that does not exist.
	ErrInvalidReference = errors.New("referenced record does not exist")

	ErrAdminNotFound       = fmt.Errorf("admin %w", ErrNotFound)
	ErrAdminExists         = fmt.Errorf("admin %w", ErrConflict)
	ErrArtistNotFound      = fmt.Errorf("artist %w", ErrNotFound)
	ErrVenueNotFound       = fmt.Errorf("venue %w", ErrNotFound)
	ErrSponsorNotFound     = fmt.Errorf("sponsor %w", ErrNotFound)
	ErrSponsorExists       = fmt.Errorf("sponsor %w", ErrConflict)
	ErrSongNotFound        = fmt.Errorf("song %w", ErrNotFound)
	ErrConcertNotFound     = fmt.Errorf("concert %w", ErrNotFound)
	ErrTicketNotFound      = fmt.Errorf("ticket %w", ErrNotFound)
	ErrMerchandiseNotFound = fmt.Errorf("merchandise %w", ErrNotFound)
)

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// withTx runs fn inside a transaction that is rolled back unless fn succeeds.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return nil
}

// execDelete runs a DELETE and maps zero affected rows to notFound.
func execDelete(ctx context.Context, tx *sql.Tx, query string, id int64, notFound error) error {
	res, err := tx.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching query anywhere in a value.
func containsPattern(query string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(query)) + "%"
}

func nullableID(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	id := n.Int64
	return &id
}
