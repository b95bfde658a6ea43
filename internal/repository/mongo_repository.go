package repository

import (
	"context"
	"errors"
	"fmt"

	"food-fridge/internal/model"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// mongoFoodRepository implements FoodRepository on a MongoDB collection.
type mongoFoodRepository struct {
	coll   *mongo.Collection
	logger zerolog.Logger
}

// NewMongoFoodRepository creates a new MongoDB-backed food repository.
func NewMongoFoodRepository(coll *mongo.Collection, logger zerolog.Logger) FoodRepository {
	return &mongoFoodRepository{
		coll:   coll,
		logger: logger.With().Str("repository", "food").Str("store", "mongo").Logger(),
	}
}

// ValidID accepts 24 character hex ObjectIDs.
func (r *mongoFoodRepository) ValidID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}

// Insert stores a new item and returns its ObjectID in hex form.
func (r *mongoFoodRepository) Insert(ctx context.Context, item model.FoodItem) (string, error) {
	doc := bson.M{}
	for k, v := range item {
		if k == model.FieldID {
			continue
		}
		doc[k] = v
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to insert food")
		return "", fmt.Errorf("failed to insert food: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}

	r.logger.Debug().Str("food_id", oid.Hex()).Msg("food inserted")

	return oid.Hex(), nil
}

// FindAll retrieves every stored item.
func (r *mongoFoodRepository) FindAll(ctx context.Context) ([]model.FoodItem, error) {
	return r.find(ctx, bson.M{})
}

// FindByOwner retrieves the items whose addedBy equals owner.
func (r *mongoFoodRepository) FindByOwner(ctx context.Context, owner string) ([]model.FoodItem, error) {
	return r.find(ctx, bson.M{model.FieldAddedBy: owner})
}

func (r *mongoFoodRepository) find(ctx context.Context, filter bson.M) ([]model.FoodItem, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query foods")
		return nil, fmt.Errorf("failed to query foods: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode foods")
		return nil, fmt.Errorf("failed to decode foods: %w", err)
	}

	items := make([]model.FoodItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, fromBSON(doc))
	}

	return items, nil
}

// FindByID retrieves a single item. Returns nil, nil when absent.
func (r *mongoFoodRepository) FindByID(ctx context.Context, id string) (model.FoodItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrInvalidID
	}

	var doc bson.M
	err = r.coll.FindOne(ctx, bson.M{model.FieldID: oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug().Str("food_id", id).Msg("food not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("food_id", id).Msg("failed to query food")
		return nil, fmt.Errorf("failed to query food: %w", err)
	}

	return fromBSON(doc), nil
}

// DeleteOwned removes the item matching both id and owner.
func (r *mongoFoodRepository) DeleteOwned(ctx context.Context, id, owner string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, model.ErrInvalidID
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{model.FieldID: oid, model.FieldAddedBy: owner})
	if err != nil {
		r.logger.Error().Err(err).Str("food_id", id).Msg("failed to delete food")
		return 0, fmt.Errorf("failed to delete food: %w", err)
	}

	return res.DeletedCount, nil
}

// UpdateOwned applies patch with $set to the item matching both id and owner.
func (r *mongoFoodRepository) UpdateOwned(ctx context.Context, id, owner string, patch model.FoodItem) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, model.ErrInvalidID
	}

	set := bson.M{}
	for k, v := range patch.Patch() {
		set[k] = v
	}
	if len(set) == 0 {
		return 0, nil
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{model.FieldID: oid, model.FieldAddedBy: owner},
		bson.M{"$set": set},
	)
	if err != nil {
		r.logger.Error().Err(err).Str("food_id", id).Msg("failed to update food")
		return 0, fmt.Errorf("failed to update food: %w", err)
	}

	r.logger.Debug().
		Str("food_id", id).
		Int64("matched", res.MatchedCount).
		Int64("modified", res.ModifiedCount).
		Msg("food update applied")

	return res.ModifiedCount, nil
}

// Ping verifies the primary is reachable.
func (r *mongoFoodRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}

// fromBSON converts a stored document into a FoodItem with a hex string _id.
func fromBSON(doc bson.M) model.FoodItem {
	item := make(model.FoodItem, len(doc))
	for k, v := range doc {
		item[k] = v
	}
	if oid, ok := doc[model.FieldID].(primitive.ObjectID); ok {
		item[model.FieldID] = oid.Hex()
	}
	return item
}
