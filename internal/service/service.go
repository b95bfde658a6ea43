package service

import (
	"context"

	"food-fridge/internal/auth"
	"food-fridge/internal/model"
)

// FoodService defines the ownership-scoped operations on food items.
type FoodService interface {
	// Create stamps item with owner and stores it.
	Create(ctx context.Context, item model.FoodItem, owner string) (*model.InsertResult, error)

	// ListAll retrieves every item regardless of owner.
	ListAll(ctx context.Context) ([]model.FoodItem, error)

	// ListOwned retrieves the items created by owner.
	ListOwned(ctx context.Context, owner string) ([]model.FoodItem, error)

	// GetByID retrieves a single item by ID.
	GetByID(ctx context.Context, id string) (model.FoodItem, error)

	// Delete removes an item owned by owner.
	Delete(ctx context.Context, id, owner string) (*model.DeleteResult, error)

	// Update merges patch into an item owned by owner.
	Update(ctx context.Context, id, owner string, patch model.FoodItem) error

	// Ready reports whether the backing store is reachable.
	Ready(ctx context.Context) error
}

// AuthService defines session issuance operations.
type AuthService interface {
	// Login verifies a raw credential and returns the identity it proves.
	Login(ctx context.Context, token string) (*auth.Identity, error)
}
