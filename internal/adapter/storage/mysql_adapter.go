package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rl1809/gilded-rose/internal/core/domain"
)

var ErrEmptyCatalog = errors.New("item catalog is empty")

const selectSeedsQuery = `
	SELECT name, sell_in, quality
	FROM shop_items
	WHERE shop = ?
	ORDER BY position, id`

// MySQLAdapter reads a shop's starting stock. It never writes: simulated
// state lives only in memory.
type MySQLAdapter struct {
	db   *sql.DB
	shop string
}

func NewMySQLAdapter(db *sql.DB, shop string) *MySQLAdapter {
	return &MySQLAdapter{db: db, shop: shop}
}

func (m *MySQLAdapter) LoadSeeds(ctx context.Context) ([]domain.Seed, error) {
	rows, err := m.db.QueryContext(ctx, selectSeedsQuery, m.shop)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var seeds []domain.Seed
	for rows.Next() {
		var s domain.Seed
		if err := rows.Scan(&s.Name, &s.SellIn, &s.Quality); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		seeds = append(seeds, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}

	if len(seeds) == 0 {
		return nil, fmt.Errorf("%w: shop %q", ErrEmptyCatalog, m.shop)
	}
	return seeds, nil
}
