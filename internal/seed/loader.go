package seed

import (
	"context"
	"fmt"
	"os"

	"food-fridge/internal/model"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for gzipped seed files on local disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based seed loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "seed-loader").Logger(),
	}
}

// Load reads a gzipped NDJSON file from disk.
func (l *fileLoader) Load(ctx context.Context, filePath string) ([]model.FoodItem, error) {
	l.logger.Info().Str("file", filePath).Msg("loading seed file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open seed file")
		return nil, fmt.Errorf("failed to open seed file %s: %w", filePath, err)
	}
	defer file.Close()

	items, err := decode(ctx, file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to decode seed file")
		return nil, fmt.Errorf("seed file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("items_loaded", len(items)).
		Msg("seed file loaded")

	return items, nil
}
