package storage

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/gilded-rose/internal/core/domain"
)

func getMySQLDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/gildedrose?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("MySQL not available: %v", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS shop_items (
			id       BIGINT AUTO_INCREMENT PRIMARY KEY,
			shop     VARCHAR(64)  NOT NULL,
			position INT          NOT NULL,
			name     VARCHAR(255) NOT NULL,
			sell_in  INT          NOT NULL,
			quality  INT          NOT NULL
		)`)
	require.NoError(t, err)
	return db
}

func TestLoadSeeds_Ordered(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	shop := "test-shop-ordered"
	db.ExecContext(ctx, `DELETE FROM shop_items WHERE shop = ?`, shop)
	defer db.ExecContext(ctx, `DELETE FROM shop_items WHERE shop = ?`, shop)

	// inserted out of shelf order on purpose
	_, err := db.ExecContext(ctx, `
		INSERT INTO shop_items (shop, position, name, sell_in, quality) VALUES
		(?, 2, ?, 0, 80),
		(?, 1, ?, 2, 0),
		(?, 3, 'Elixir of the Mongoose', 5, 7)`,
		shop, domain.LegendaryArtifactName, shop, domain.AgedCheeseName, shop)
	require.NoError(t, err)

	seeds, err := NewMySQLAdapter(db, shop).LoadSeeds(ctx)
	require.NoError(t, err)

	assert.Equal(t, []domain.Seed{
		{Name: domain.AgedCheeseName, SellIn: 2, Quality: 0},
		{Name: domain.LegendaryArtifactName, SellIn: 0, Quality: 80},
		{Name: "Elixir of the Mongoose", SellIn: 5, Quality: 7},
	}, seeds)
}

func TestLoadSeeds_EmptyShop(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	_, err := NewMySQLAdapter(db, "no-such-shop").LoadSeeds(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}
