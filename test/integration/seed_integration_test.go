package integration

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"food-fridge/internal/repository"
	"food-fridge/internal/seed"
	"food-fridge/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeedFile(t *testing.T, lines []string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "foods.ndjson.gz")
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	for _, line := range lines {
		_, err := gzipWriter.Write([]byte(line + "\n"))
		require.NoError(t, err)
	}
	require.NoError(t, gzipWriter.Close())

	return path
}

func TestSeedImport_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	logger := zerolog.Nop()

	testDB := SetupTestDB(t)
	foodService := service.NewFoodService(repository.NewPostgresFoodRepository(testDB.Pool, logger), logger)

	path := writeSeedFile(t, []string{
		`{"name":"Milk","qty":1}`,
		`{"name":"Eggs","qty":12,"addedBy":"someone@else.com"}`,
	})

	loader := seed.NewFallbackLoader(nil, seed.NewFileLoader(logger), "seeds/", false, logger)
	n, err := seed.NewImporter(loader, foodService, logger).Import(ctx, path, "seed@x.com")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	owned, err := foodService.ListOwned(ctx, "seed@x.com")
	require.NoError(t, err)
	assert.Len(t, owned, 2)

	all, err := foodService.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// a restart with the same seed file adds nothing
	n, err = seed.NewImporter(loader, foodService, logger).Import(ctx, path, "seed@x.com")
	require.NoError(t, err)
	assert.Zero(t, n)

	all, err = foodService.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
