package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"backstage/internal/models"
)

const merchandiseColumns = `m.id, m.name, m.price, m.stock_quantity, m.items_sold, m.is_sold_out,
	m.concert_id, m.created_at, m.updated_at`

func scanMerchandise(row rowScanner) (models.Merchandise, error) {
	var (
		m         models.Merchandise
		concertID sql.NullInt64
	)
	err := row.Scan(
		&m.ID, &m.Name, &m.Price, &m.StockQuantity, &m.ItemsSold, &m.IsSoldOut,
		&concertID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return models.Merchandise{}, err
	}
	m.ConcertID = nullableID(concertID)
	return m, nil
}

func (s *Store) queryMerchandise(ctx context.Context, query string, args ...any) ([]models.Merchandise, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select merchandise: %w", err)
	}
	defer rows.Close()

	items := []models.Merchandise{}
	for rows.Next() {
		m, err := scanMerchandise(rows)
		if err != nil {
			return nil, fmt.Errorf("scan merchandise: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate merchandise: %w", err)
	}
	return items, nil
}

// CreateMerchandise persists a new merchandise item. The sold-out flag is
// derived from the stock before writing.
func (s *Store) CreateMerchandise(ctx context.Context, item models.Merchandise) (models.Merchandise, error) {
	item.RefreshSoldOut()

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO merchandise (name, price, stock_quantity, items_sold, is_sold_out, concert_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, item.Name, item.Price, item.StockQuantity, item.ItemsSold, item.IsSoldOut, item.ConcertID,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return models.Merchandise{}, fmt.Errorf("concert %d: %w", derefID(item.ConcertID), ErrInvalidReference)
		}
		return models.Merchandise{}, fmt.Errorf("insert merchandise: %w", err)
	}
	return item, nil
}

// ListMerchandise returns every merchandise item.
func (s *Store) ListMerchandise(ctx context.Context) ([]models.Merchandise, error) {
	return s.queryMerchandise(ctx, `
		SELECT `+merchandiseColumns+`
		FROM merchandise m
		ORDER BY m.id
	`)
}

// GetMerchandise retrieves a single merchandise item.
func (s *Store) GetMerchandise(ctx context.Context, id int64) (models.Merchandise, error) {
	m, err := scanMerchandise(s.db.QueryRowContext(ctx, `
		SELECT `+merchandiseColumns+`
		FROM merchandise m
		WHERE m.id = $1
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Merchandise{}, ErrMerchandiseNotFound
		}
		return models.Merchandise{}, fmt.Errorf("select merchandise: %w", err)
	}
	return m, nil
}

// UpdateMerchandise overwrites the stored item, recomputing the sold-out flag.
func (s *Store) UpdateMerchandise(ctx context.Context, item models.Merchandise) (models.Merchandise, error) {
	item.RefreshSoldOut()

	err := s.db.QueryRowContext(ctx, `
		UPDATE merchandise
		SET name = $1, price = $2, stock_quantity = $3, items_sold = $4,
		    is_sold_out = $5, concert_id = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $7
		RETURNING created_at, updated_at
	`, item.Name, item.Price, item.StockQuantity, item.ItemsSold, item.IsSoldOut, item.ConcertID, item.ID,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return models.Merchandise{}, ErrMerchandiseNotFound
		case isForeignKeyViolation(err):
			return models.Merchandise{}, fmt.Errorf("concert %d: %w", derefID(item.ConcertID), ErrInvalidReference)
		}
		return models.Merchandise{}, fmt.Errorf("update merchandise: %w", err)
	}
	return item, nil
}

// DeleteMerchandise removes a merchandise item.
func (s *Store) DeleteMerchandise(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM merchandise WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete merchandise: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete merchandise: %w", err)
	}
	if rows == 0 {
		return ErrMerchandiseNotFound
	}
	return nil
}

// SearchMerchandise matches the query against the item name.
func (s *Store) SearchMerchandise(ctx context.Context, query string) ([]models.Merchandise, error) {
	return s.queryMerchandise(ctx, `
		SELECT `+merchandiseColumns+`
		FROM merchandise m
		WHERE m.name ILIKE $1
		ORDER BY m.id
	`, containsPattern(query))
}
