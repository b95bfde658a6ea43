package service

import (
	"context"
	"errors"
	"testing"

	"food-fridge/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// invalidID is the one identifier MockFoodRepository treats as malformed.
const invalidID = "not-an-id"

// MockFoodRepository is a mock implementation of FoodRepository.
type MockFoodRepository struct {
	mock.Mock
}

func (m *MockFoodRepository) ValidID(id string) bool {
	return id != invalidID
}

func (m *MockFoodRepository) Insert(ctx context.Context, item model.FoodItem) (string, error) {
	args := m.Called(ctx, item)
	return args.String(0), args.Error(1)
}

func (m *MockFoodRepository) FindAll(ctx context.Context) ([]model.FoodItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FoodItem), args.Error(1)
}

func (m *MockFoodRepository) FindByOwner(ctx context.Context, owner string) ([]model.FoodItem, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FoodItem), args.Error(1)
}

func (m *MockFoodRepository) FindByID(ctx context.Context, id string) (model.FoodItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.FoodItem), args.Error(1)
}

func (m *MockFoodRepository) DeleteOwned(ctx context.Context, id, owner string) (int64, error) {
	args := m.Called(ctx, id, owner)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFoodRepository) UpdateOwned(ctx context.Context, id, owner string, patch model.FoodItem) (int64, error) {
	args := m.Called(ctx, id, owner, patch)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFoodRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestFoodService_Create(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	tests := []struct {
		name        string
		item        model.FoodItem
		owner       string
		stored      model.FoodItem
		mockID      string
		mockError   error
		expectRepo  bool
		expectedErr error
		expectError bool
	}{
		{
			name:       "Success stamps owner",
			item:       model.FoodItem{"name": "Milk"},
			owner:      "a@x.com",
			stored:     model.FoodItem{"name": "Milk", "addedBy": "a@x.com"},
			mockID:     "id-1",
			expectRepo: true,
		},
		{
			name:       "Client addedBy and _id are overwritten",
			item:       model.FoodItem{"name": "Milk", "addedBy": "mallory@x.com", "_id": "forged"},
			owner:      "a@x.com",
			stored:     model.FoodItem{"name": "Milk", "addedBy": "a@x.com"},
			mockID:     "id-2",
			expectRepo: true,
		},
		{
			name:        "Missing identity email",
			item:        model.FoodItem{"name": "Milk", "addedBy": "mallory@x.com"},
			owner:       "",
			expectedErr: model.ErrMissingOwner,
			expectError: true,
		},
		{
			name:        "Repository error",
			item:        model.FoodItem{"name": "Milk"},
			owner:       "a@x.com",
			stored:      model.FoodItem{"name": "Milk", "addedBy": "a@x.com"},
			mockError:   errors.New("database error"),
			expectRepo:  true,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockFoodRepository)
			svc := NewFoodService(mockRepo, logger)

			if tt.expectRepo {
				mockRepo.On("Insert", ctx, tt.stored).Return(tt.mockID, tt.mockError)
			}

			result, err := svc.Create(ctx, tt.item, tt.owner)

			if tt.expectError {
				require.Error(t, err)
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
				}
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, &model.InsertResult{Acknowledged: true, InsertedID: tt.mockID}, result)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestFoodService_ListAll(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockFoodRepository)
		items := []model.FoodItem{{"_id": "1"}, {"_id": "2"}}
		mockRepo.On("FindAll", ctx).Return(items, nil)

		got, err := NewFoodService(mockRepo, logger).ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, items, got)
	})

	t.Run("Empty store returns empty slice", func(t *testing.T) {
		mockRepo := new(MockFoodRepository)
		mockRepo.On("FindAll", ctx).Return(nil, nil)

		got, err := NewFoodService(mockRepo, logger).ListAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("Repository error", func(t *testing.T) {
		mockRepo := new(MockFoodRepository)
		mockRepo.On("FindAll", ctx).Return(nil, errors.New("database error"))

		got, err := NewFoodService(mockRepo, logger).ListAll(ctx)
		assert.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestFoodService_ListOwned(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockFoodRepository)
	items := []model.FoodItem{{"_id": "1", "addedBy": "a@x.com"}}
	mockRepo.On("FindByOwner", ctx, "a@x.com").Return(items, nil)
	mockRepo.On("FindByOwner", ctx, "b@x.com").Return(nil, errors.New("database error"))

	svc := NewFoodService(mockRepo, logger)

	got, err := svc.ListOwned(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, items, got)

	_, err = svc.ListOwned(ctx, "b@x.com")
	assert.Error(t, err)

	mockRepo.AssertExpectations(t)
}

func TestFoodService_GetByID(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	milk := model.FoodItem{"_id": "id-1", "name": "Milk", "addedBy": "a@x.com"}

	tests := []struct {
		name        string
		id          string
		mockReturn  model.FoodItem
		mockError   error
		expectRepo  bool
		expectedErr error
		expectError bool
	}{
		{
			name:       "Success",
			id:         "id-1",
			mockReturn: milk,
			expectRepo: true,
		},
		{
			name:        "Invalid ID never reaches repository",
			id:          invalidID,
			expectedErr: model.ErrInvalidID,
			expectError: true,
		},
		{
			name:        "Not found",
			id:          "id-9",
			expectRepo:  true,
			expectedErr: model.ErrFoodNotFound,
			expectError: true,
		},
		{
			name:        "Repository error",
			id:          "id-1",
			mockError:   errors.New("database error"),
			expectRepo:  true,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockFoodRepository)
			svc := NewFoodService(mockRepo, logger)

			if tt.expectRepo {
				if tt.mockReturn != nil {
					mockRepo.On("FindByID", ctx, tt.id).Return(tt.mockReturn, tt.mockError)
				} else {
					mockRepo.On("FindByID", ctx, tt.id).Return(nil, tt.mockError)
				}
			}

			item, err := svc.GetByID(ctx, tt.id)

			if tt.expectError {
				require.Error(t, err)
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
				} else {
					assert.NotErrorIs(t, err, model.ErrFoodNotFound)
				}
				assert.Nil(t, item)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.mockReturn, item)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestFoodService_Delete(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	tests := []struct {
		name        string
		id          string
		owner       string
		deleted     int64
		mockError   error
		expectRepo  bool
		expectedErr error
		expectError bool
	}{
		{
			name:       "Owner deletes",
			id:         "id-1",
			owner:      "a@x.com",
			deleted:    1,
			expectRepo: true,
		},
		{
			name:        "Non-owner or missing",
			id:          "id-1",
			owner:       "b@x.com",
			deleted:     0,
			expectRepo:  true,
			expectedErr: model.ErrNotDeleted,
			expectError: true,
		},
		{
			name:        "Invalid ID",
			id:          invalidID,
			owner:       "a@x.com",
			expectedErr: model.ErrInvalidID,
			expectError: true,
		},
		{
			name:        "Repository error",
			id:          "id-1",
			owner:       "a@x.com",
			mockError:   errors.New("database error"),
			expectRepo:  true,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockFoodRepository)
			svc := NewFoodService(mockRepo, logger)

			if tt.expectRepo {
				mockRepo.On("DeleteOwned", ctx, tt.id, tt.owner).Return(tt.deleted, tt.mockError)
			}

			result, err := svc.Delete(ctx, tt.id, tt.owner)

			if tt.expectError {
				require.Error(t, err)
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
				}
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, &model.DeleteResult{Success: true, Message: "Food deleted", DeletedCount: 1}, result)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestFoodService_Update(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	tests := []struct {
		name        string
		id          string
		patch       model.FoodItem
		sent        model.FoodItem
		modified    int64
		mockError   error
		expectRepo  bool
		expectedErr error
		expectError bool
	}{
		{
			name:       "Owner updates",
			id:         "id-1",
			patch:      model.FoodItem{"qty": 2.0},
			sent:       model.FoodItem{"qty": 2.0},
			modified:   1,
			expectRepo: true,
		},
		{
			name:       "Immutable fields stripped",
			id:         "id-1",
			patch:      model.FoodItem{"qty": 2.0, "_id": "other", "addedBy": "mallory@x.com"},
			sent:       model.FoodItem{"qty": 2.0},
			modified:   1,
			expectRepo: true,
		},
		{
			name:        "Nothing changed",
			id:          "id-1",
			patch:       model.FoodItem{"qty": 2.0},
			sent:        model.FoodItem{"qty": 2.0},
			modified:    0,
			expectRepo:  true,
			expectedErr: model.ErrNotModified,
			expectError: true,
		},
		{
			name:        "Patch of only immutable fields",
			id:          "id-1",
			patch:       model.FoodItem{"addedBy": "mallory@x.com"},
			expectedErr: model.ErrNotModified,
			expectError: true,
		},
		{
			name:        "Invalid ID",
			id:          invalidID,
			patch:       model.FoodItem{"qty": 2.0},
			expectedErr: model.ErrInvalidID,
			expectError: true,
		},
		{
			name:        "Repository error",
			id:          "id-1",
			patch:       model.FoodItem{"qty": 2.0},
			sent:        model.FoodItem{"qty": 2.0},
			mockError:   errors.New("database error"),
			expectRepo:  true,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockFoodRepository)
			svc := NewFoodService(mockRepo, logger)

			if tt.expectRepo {
				mockRepo.On("UpdateOwned", ctx, tt.id, "a@x.com", tt.sent).Return(tt.modified, tt.mockError)
			}

			err := svc.Update(ctx, tt.id, "a@x.com", tt.patch)

			if tt.expectError {
				require.Error(t, err)
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
				}
			} else {
				require.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestFoodService_Ready(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockFoodRepository)
	mockRepo.On("Ping", ctx).Return(nil).Once()
	mockRepo.On("Ping", ctx).Return(errors.New("connection refused")).Once()

	svc := NewFoodService(mockRepo, zerolog.Nop())

	assert.NoError(t, svc.Ready(ctx))
	assert.Error(t, svc.Ready(ctx))

	mockRepo.AssertExpectations(t)
}
