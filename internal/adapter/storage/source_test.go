package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/gilded-rose/internal/core/domain"
)

func TestFixtureSource(t *testing.T) {
	seeds, err := FixtureSource{}.LoadSeeds(context.Background())
	require.NoError(t, err)
	require.Len(t, seeds, 9)
	assert.Equal(t, "+5 Dexterity Vest", seeds[0].Name)

	// callers get their own slice
	seeds[0].Name = "changed"
	assert.Equal(t, "+5 Dexterity Vest", DefaultSeeds()[0].Name)
}

func TestYAMLSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.yaml")
	content := `items:
  - name: Aged Brie
    sell_in: 2
    quality: 0
  - name: "Sulfuras, Hand of Ragnaros"
    sell_in: -1
    quality: 80
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	seeds, err := NewYAMLSource(path).LoadSeeds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Seed{
		{Name: domain.AgedCheeseName, SellIn: 2, Quality: 0},
		{Name: domain.LegendaryArtifactName, SellIn: -1, Quality: 80},
	}, seeds)
}

func TestYAMLSource_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewYAMLSource(filepath.Join(dir, "missing.yaml")).LoadSeeds(context.Background())
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("items: []\n"), 0o600))
	_, err = NewYAMLSource(empty).LoadSeeds(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("items: [name: \n"), 0o600))
	_, err = NewYAMLSource(broken).LoadSeeds(context.Background())
	assert.Error(t, err)
}
