package handler

import (
	"context"

	"food-fridge/internal/auth"
	"food-fridge/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockFoodService is a mock implementation of FoodService.
type MockFoodService struct {
	mock.Mock
}

func (m *MockFoodService) Create(ctx context.Context, item model.FoodItem, owner string) (*model.InsertResult, error) {
	args := m.Called(ctx, item, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InsertResult), args.Error(1)
}

func (m *MockFoodService) ListAll(ctx context.Context) ([]model.FoodItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FoodItem), args.Error(1)
}

func (m *MockFoodService) ListOwned(ctx context.Context, owner string) ([]model.FoodItem, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FoodItem), args.Error(1)
}

func (m *MockFoodService) GetByID(ctx context.Context, id string) (model.FoodItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.FoodItem), args.Error(1)
}

func (m *MockFoodService) Delete(ctx context.Context, id, owner string) (*model.DeleteResult, error) {
	args := m.Called(ctx, id, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeleteResult), args.Error(1)
}

func (m *MockFoodService) Update(ctx context.Context, id, owner string, patch model.FoodItem) error {
	args := m.Called(ctx, id, owner, patch)
	return args.Error(0)
}

func (m *MockFoodService) Ready(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockAuthService is a mock implementation of AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, token string) (*auth.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Identity), args.Error(1)
}
