package catalog

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"coffee-kart/internal/model"

	"github.com/rs/zerolog"
)

// Loader reads a catalogue seed document.
type Loader interface {
	// Load reads the document at path and returns a validated catalogue.
	Load(ctx context.Context, path string) (*model.Catalog, error)
}

// fileLoader implements Loader for catalogue files on the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based catalogue loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "catalog-loader").Logger(),
	}
}

// Load reads a JSON catalogue file. Files ending in .gz are decompressed first.
func (l *fileLoader) Load(ctx context.Context, path string) (*model.Catalog, error) {
	l.logger.Info().Str("file", path).Msg("loading catalog file")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open catalog file")
		return nil, fmt.Errorf("failed to open catalog file %s: %w", path, err)
	}
	defer file.Close()

	c, err := decode(ctx, file, path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to decode catalog file")
		return nil, err
	}

	l.logger.Info().
		Str("file", path).
		Int("products", len(c.Products)).
		Int("categories", len(c.Categories)).
		Msg("catalog file loaded successfully")

	return c, nil
}

// decode parses and validates a catalogue document from r.
func decode(ctx context.Context, r io.Reader, name string) (*model.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strings.HasSuffix(name, ".gz") {
		gzipReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", name, err)
		}
		defer gzipReader.Close()
		r = gzipReader
	}

	var c model.Catalog
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", name, err)
	}

	if err := Validate(&c); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", name, err)
	}

	return &c, nil
}

// Validate checks the referential integrity of a catalogue.
func Validate(c *model.Catalog) error {
	categories := make(map[string]struct{}, len(c.Categories))
	for _, cat := range c.Categories {
		if cat.ID == "" {
			return fmt.Errorf("category with empty id")
		}
		if _, dup := categories[cat.ID]; dup {
			return fmt.Errorf("duplicate category id %s", cat.ID)
		}
		categories[cat.ID] = struct{}{}
	}

	products := make(map[string]struct{}, len(c.Products))
	for _, p := range c.Products {
		if p.ID == "" {
			return fmt.Errorf("product with empty id")
		}
		if _, dup := products[p.ID]; dup {
			return fmt.Errorf("duplicate product id %s", p.ID)
		}
		products[p.ID] = struct{}{}

		if p.BasePrice < 0 {
			return fmt.Errorf("product %s has negative base price", p.ID)
		}
		if _, ok := categories[p.CategoryID]; !ok {
			return fmt.Errorf("product %s references unknown category %s", p.ID, p.CategoryID)
		}
	}

	if len(c.Sizes) == 0 {
		return fmt.Errorf("catalog must define at least one size")
	}

	sizes := make(map[string]struct{}, len(c.Sizes))
	for _, s := range c.Sizes {
		if _, dup := sizes[s.ID]; dup {
			return fmt.Errorf("duplicate size id %s", s.ID)
		}
		sizes[s.ID] = struct{}{}
		if s.Surcharge < 0 {
			return fmt.Errorf("size %s has negative surcharge", s.ID)
		}
	}

	toppings := make(map[string]struct{}, len(c.Toppings))
	for _, t := range c.Toppings {
		if _, dup := toppings[t.ID]; dup {
			return fmt.Errorf("duplicate topping id %s", t.ID)
		}
		toppings[t.ID] = struct{}{}
		if t.Surcharge < 0 {
			return fmt.Errorf("topping %s has negative surcharge", t.ID)
		}
	}

	return nil
}
