// Package seed imports food items from gzipped NDJSON files at startup.
package seed

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"food-fridge/internal/model"
	"food-fridge/internal/service"

	"github.com/rs/zerolog"
)

// Loader reads a seed file of food items.
type Loader interface {
	// Load reads the file at path. Each non-blank line is one JSON object.
	Load(ctx context.Context, path string) ([]model.FoodItem, error)
}

// decode reads gzipped NDJSON from r.
func decode(ctx context.Context, r io.Reader) ([]model.FoodItem, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var items []model.FoodItem
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%10_000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var item model.FoodItem
		if err := json.Unmarshal(line, &item); err != nil || item == nil {
			return nil, fmt.Errorf("line %d: not a JSON object", lineNo)
		}
		items = append(items, item)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read seed data: %w", err)
	}

	return items, nil
}

// Importer creates seed items through the food service so every seeded item
// is stamped with an owner like any other.
type Importer struct {
	loader  Loader
	service service.FoodService
	logger  zerolog.Logger
}

// NewImporter creates a new seed importer.
func NewImporter(loader Loader, service service.FoodService, logger zerolog.Logger) *Importer {
	return &Importer{
		loader:  loader,
		service: service,
		logger:  logger.With().Str("component", "seed-importer").Logger(),
	}
}

// Import loads path and creates each item as owner. It stops at the first
// failure and returns the number of items created so far. Nothing is
// imported when owner already has items, so restarts do not duplicate seeds.
func (i *Importer) Import(ctx context.Context, path, owner string) (int, error) {
	existing, err := i.service.ListOwned(ctx, owner)
	if err != nil {
		return 0, fmt.Errorf("failed to check existing seed items: %w", err)
	}
	if len(existing) > 0 {
		i.logger.Info().
			Str("owner", owner).
			Int("existing_items", len(existing)).
			Msg("seed owner already has items, skipping import")
		return 0, nil
	}

	items, err := i.loader.Load(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("failed to load seed file %s: %w", path, err)
	}

	created := 0
	for _, item := range items {
		if _, err := i.service.Create(ctx, item, owner); err != nil {
			return created, fmt.Errorf("failed to import item %d: %w", created+1, err)
		}
		created++
	}

	i.logger.Info().
		Str("file", path).
		Str("owner", owner).
		Int("items_imported", created).
		Msg("seed import complete")

	return created, nil
}
