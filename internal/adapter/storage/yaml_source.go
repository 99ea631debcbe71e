package storage

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rl1809/gilded-rose/internal/core/domain"
)

type yamlCatalog struct {
	Items []domain.Seed `yaml:"items"`
}

// YAMLSource reads seeds from a file of the form:
//
//	items:
//	  - name: Aged Brie
//	    sell_in: 2
//	    quality: 0
type YAMLSource struct {
	path string
}

func NewYAMLSource(path string) *YAMLSource {
	return &YAMLSource{path: path}
}

func (y *YAMLSource) LoadSeeds(ctx context.Context) ([]domain.Seed, error) {
	data, err := os.ReadFile(y.path)
	if err != nil {
		return nil, fmt.Errorf("read item file: %w", err)
	}

	var catalog yamlCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse item file %s: %w", y.path, err)
	}
	if len(catalog.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCatalog, y.path)
	}
	return catalog.Items, nil
}
