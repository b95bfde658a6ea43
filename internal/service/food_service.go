package service

import (
	"context"
	"fmt"

	"food-fridge/internal/model"
	"food-fridge/internal/repository"

	"github.com/rs/zerolog"
)

// foodService implements FoodService.
type foodService struct {
	foodRepo repository.FoodRepository
	logger   zerolog.Logger
}

// NewFoodService creates a new food service.
func NewFoodService(foodRepo repository.FoodRepository, logger zerolog.Logger) FoodService {
	return &foodService{
		foodRepo: foodRepo,
		logger:   logger.With().Str("service", "food").Logger(),
	}
}

// Create stamps item with owner, overwriting any client-supplied addedBy,
// and stores it.
func (s *foodService) Create(ctx context.Context, item model.FoodItem, owner string) (*model.InsertResult, error) {
	if owner == "" {
		s.logger.Warn().Msg("create rejected: identity has no email")
		return nil, model.ErrMissingOwner
	}

	id, err := s.foodRepo.Insert(ctx, item.ForInsert(owner))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create food")
		return nil, fmt.Errorf("failed to create food: %w", err)
	}

	s.logger.Debug().Str("food_id", id).Msg("food created")

	return &model.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// ListAll retrieves every item regardless of owner.
func (s *foodService) ListAll(ctx context.Context) ([]model.FoodItem, error) {
	items, err := s.foodRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list foods")
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}

	s.logger.Debug().Int("count", len(items)).Msg("retrieved foods")

	return nonNil(items), nil
}

// ListOwned retrieves the items created by owner.
func (s *foodService) ListOwned(ctx context.Context, owner string) ([]model.FoodItem, error) {
	items, err := s.foodRepo.FindByOwner(ctx, owner)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list owned foods")
		return nil, fmt.Errorf("failed to list owned foods: %w", err)
	}

	s.logger.Debug().Int("count", len(items)).Msg("retrieved owned foods")

	return nonNil(items), nil
}

// GetByID retrieves a single item by ID. Any caller may read any item.
func (s *foodService) GetByID(ctx context.Context, id string) (model.FoodItem, error) {
	if !s.foodRepo.ValidID(id) {
		return nil, model.ErrInvalidID
	}

	item, err := s.foodRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("food_id", id).Msg("failed to get food by ID")
		return nil, fmt.Errorf("failed to get food: %w", err)
	}

	if item == nil {
		s.logger.Debug().Str("food_id", id).Msg("food not found")
		return nil, model.ErrFoodNotFound
	}

	return item, nil
}

// Delete removes the item only when owner created it. A missing item and an
// item owned by someone else both yield ErrNotDeleted.
func (s *foodService) Delete(ctx context.Context, id, owner string) (*model.DeleteResult, error) {
	if !s.foodRepo.ValidID(id) {
		return nil, model.ErrInvalidID
	}

	deleted, err := s.foodRepo.DeleteOwned(ctx, id, owner)
	if err != nil {
		s.logger.Error().Err(err).Str("food_id", id).Msg("failed to delete food")
		return nil, fmt.Errorf("failed to delete food: %w", err)
	}

	if deleted != 1 {
		s.logger.Debug().Str("food_id", id).Int64("deleted", deleted).Msg("nothing deleted: missing or not owned")
		return nil, model.ErrNotDeleted
	}

	return &model.DeleteResult{Success: true, Message: "Food deleted", DeletedCount: deleted}, nil
}

// Update merges patch into the item only when owner created it. _id and
// addedBy are never patched. Missing, not owned and no-op all yield
// ErrNotModified.
func (s *foodService) Update(ctx context.Context, id, owner string, patch model.FoodItem) error {
	if !s.foodRepo.ValidID(id) {
		return model.ErrInvalidID
	}

	fields := patch.Patch()
	if len(fields) == 0 {
		s.logger.Debug().Str("food_id", id).Msg("nothing updated: empty patch")
		return model.ErrNotModified
	}

	modified, err := s.foodRepo.UpdateOwned(ctx, id, owner, fields)
	if err != nil {
		s.logger.Error().Err(err).Str("food_id", id).Msg("failed to update food")
		return fmt.Errorf("failed to update food: %w", err)
	}

	if modified == 0 {
		s.logger.Debug().Str("food_id", id).Msg("nothing updated: missing, not owned, or unchanged")
		return model.ErrNotModified
	}

	return nil
}

// Ready reports whether the backing store is reachable.
func (s *foodService) Ready(ctx context.Context) error {
	if err := s.foodRepo.Ping(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("store not reachable")
		return fmt.Errorf("store not reachable: %w", err)
	}
	return nil
}

func nonNil(items []model.FoodItem) []model.FoodItem {
	if items == nil {
		return []model.FoodItem{}
	}
	return items
}
