package seed

import (
	"context"
	"errors"
	"testing"

	"food-fridge/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingService is a FoodService that records Create calls.
type recordingService struct {
	created  []model.FoodItem
	owners   []string
	failAt   int
	existing []model.FoodItem
	listErr  error
}

func (s *recordingService) Create(_ context.Context, item model.FoodItem, owner string) (*model.InsertResult, error) {
	if s.failAt > 0 && len(s.created)+1 == s.failAt {
		return nil, errors.New("database error")
	}
	s.created = append(s.created, item)
	s.owners = append(s.owners, owner)
	return &model.InsertResult{Acknowledged: true, InsertedID: "id"}, nil
}

func (s *recordingService) ListAll(context.Context) ([]model.FoodItem, error) { return nil, nil }

func (s *recordingService) ListOwned(context.Context, string) ([]model.FoodItem, error) {
	return s.existing, s.listErr
}

func (s *recordingService) GetByID(context.Context, string) (model.FoodItem, error) {
	return nil, nil
}

func (s *recordingService) Delete(context.Context, string, string) (*model.DeleteResult, error) {
	return nil, nil
}

func (s *recordingService) Update(context.Context, string, string, model.FoodItem) error {
	return nil
}

func (s *recordingService) Ready(context.Context) error { return nil }

func TestImporter_Import(t *testing.T) {
	items := []model.FoodItem{{"name": "Milk"}, {"name": "Eggs"}, {"name": "Butter"}}
	loader := &mockLoader{loadFunc: func(context.Context, string) ([]model.FoodItem, error) {
		return items, nil
	}}

	t.Run("Success", func(t *testing.T) {
		svc := &recordingService{}
		n, err := NewImporter(loader, svc, zerolog.Nop()).Import(context.Background(), "foods.gz", "seed@x.com")

		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, items, svc.created)
		assert.Equal(t, []string{"seed@x.com", "seed@x.com", "seed@x.com"}, svc.owners)
	})

	t.Run("Stops at first failure", func(t *testing.T) {
		svc := &recordingService{failAt: 2}
		n, err := NewImporter(loader, svc, zerolog.Nop()).Import(context.Background(), "foods.gz", "seed@x.com")

		require.Error(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("Owner already seeded", func(t *testing.T) {
		svc := &recordingService{existing: []model.FoodItem{{"name": "Milk"}}}
		n, err := NewImporter(loader, svc, zerolog.Nop()).Import(context.Background(), "foods.gz", "seed@x.com")

		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Empty(t, svc.created)
	})

	t.Run("Existing items check fails", func(t *testing.T) {
		svc := &recordingService{listErr: errors.New("database error")}
		n, err := NewImporter(loader, svc, zerolog.Nop()).Import(context.Background(), "foods.gz", "seed@x.com")

		require.Error(t, err)
		assert.Zero(t, n)
		assert.Empty(t, svc.created)
	})

	t.Run("Load failure", func(t *testing.T) {
		failing := &mockLoader{}
		n, err := NewImporter(failing, &recordingService{}, zerolog.Nop()).Import(context.Background(), "foods.gz", "seed@x.com")

		require.Error(t, err)
		assert.Zero(t, n)
	})
}
