package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/rl1809/gilded-rose/internal/adapter/storage"
	"github.com/rl1809/gilded-rose/internal/config"
	"github.com/rl1809/gilded-rose/internal/port"
)

// NewItemSource opens the configured seed source. close releases any
// connection it holds and is never nil.
func NewItemSource(ctx context.Context, cfg config.SourceConfig) (port.ItemSource, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Kind {
	case config.SourceFixture, "":
		return storage.FixtureSource{}, noop, nil
	case config.SourceYAML:
		return storage.NewYAMLSource(cfg.File), noop, nil
	case config.SourceMySQL:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, noop, fmt.Errorf("open mysql: %w", err)
		}
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, noop, fmt.Errorf("ping mysql: %w", err)
		}
		return storage.NewMySQLAdapter(db, cfg.Shop), db.Close, nil
	}
	return nil, noop, fmt.Errorf("%w: unknown source %q", config.ErrInvalidConfig, cfg.Kind)
}
