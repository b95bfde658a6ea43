package repository

import (
	"context"

	"food-fridge/internal/model"
)

// FoodRepository defines the interface for food item data access operations.
// Implementations must be safe for concurrent use.
type FoodRepository interface {
	// ValidID reports whether id is syntactically valid for this store.
	ValidID(id string) bool

	// Insert stores a new item and returns the identifier assigned to it.
	Insert(ctx context.Context, item model.FoodItem) (string, error)

	// FindAll retrieves every stored item.
	FindAll(ctx context.Context) ([]model.FoodItem, error)

	// FindByOwner retrieves the items whose addedBy equals owner.
	FindByOwner(ctx context.Context, owner string) ([]model.FoodItem, error)

	// FindByID retrieves a single item. Returns nil, nil when absent.
	FindByID(ctx context.Context, id string) (model.FoodItem, error)

	// DeleteOwned removes the item matching both id and owner in a single
	// atomic operation and returns the number of removed documents.
	DeleteOwned(ctx context.Context, id, owner string) (int64, error)

	// UpdateOwned merges patch into the item matching both id and owner in a
	// single atomic operation. It returns the number of documents that
	// actually changed, so a no-op patch yields zero.
	UpdateOwned(ctx context.Context, id, owner string, patch model.FoodItem) (int64, error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}
