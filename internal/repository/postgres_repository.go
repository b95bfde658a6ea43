package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"food-fridge/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// postgresFoodRepository implements FoodRepository using a JSONB column for
// the free-form fields and a dedicated added_by column for ownership.
type postgresFoodRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresFoodRepository creates a new PostgreSQL-backed food repository.
// The foods table is created by database.Migrate.
func NewPostgresFoodRepository(pool *pgxpool.Pool, logger zerolog.Logger) FoodRepository {
	return &postgresFoodRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "food").Str("store", "postgres").Logger(),
	}
}

// ValidID accepts UUIDs in the canonical 36-character form only. uuid.Parse
// also takes urn, brace and bare-hex forms the uuid column does not.
func (r *postgresFoodRepository) ValidID(id string) bool {
	u, err := uuid.Parse(id)
	return err == nil && strings.EqualFold(u.String(), id)
}

// Insert stores a new item under a freshly generated UUID.
func (r *postgresFoodRepository) Insert(ctx context.Context, item model.FoodItem) (string, error) {
	data, err := json.Marshal(item.Patch())
	if err != nil {
		return "", fmt.Errorf("failed to encode food: %w", err)
	}

	id := uuid.New()
	query := `
		INSERT INTO foods (id, added_by, data)
		VALUES ($1, $2, $3::jsonb)
	`

	if _, err := r.pool.Exec(ctx, query, id.String(), item.AddedBy(), string(data)); err != nil {
		r.logger.Error().Err(err).Msg("failed to insert food")
		return "", fmt.Errorf("failed to insert food: %w", err)
	}

	r.logger.Debug().Str("food_id", id.String()).Msg("food inserted")

	return id.String(), nil
}

// FindAll retrieves every stored item in creation order.
func (r *postgresFoodRepository) FindAll(ctx context.Context) ([]model.FoodItem, error) {
	query := `
		SELECT id::text, added_by, data
		FROM foods
		ORDER BY created_at, id
	`
	return r.query(ctx, query)
}

// FindByOwner retrieves the items whose addedBy equals owner.
func (r *postgresFoodRepository) FindByOwner(ctx context.Context, owner string) ([]model.FoodItem, error) {
	query := `
		SELECT id::text, added_by, data
		FROM foods
		WHERE added_by = $1
		ORDER BY created_at, id
	`
	return r.query(ctx, query, owner)
}

func (r *postgresFoodRepository) query(ctx context.Context, query string, args ...any) ([]model.FoodItem, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query foods")
		return nil, fmt.Errorf("failed to query foods: %w", err)
	}
	defer rows.Close()

	items := []model.FoodItem{}
	for rows.Next() {
		item, err := scanFood(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan food row")
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating food rows")
		return nil, fmt.Errorf("error iterating foods: %w", err)
	}

	return items, nil
}

// FindByID retrieves a single item. Returns nil, nil when absent.
func (r *postgresFoodRepository) FindByID(ctx context.Context, id string) (model.FoodItem, error) {
	if !r.ValidID(id) {
		return nil, model.ErrInvalidID
	}

	query := `
		SELECT id::text, added_by, data
		FROM foods
		WHERE id = $1
	`

	item, err := scanFood(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("food_id", id).Msg("food not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("food_id", id).Msg("failed to query food")
		return nil, fmt.Errorf("failed to query food: %w", err)
	}

	return item, nil
}

// DeleteOwned removes the row matching both id and owner.
func (r *postgresFoodRepository) DeleteOwned(ctx context.Context, id, owner string) (int64, error) {
	if !r.ValidID(id) {
		return 0, model.ErrInvalidID
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM foods WHERE id = $1 AND added_by = $2`, id, owner)
	if err != nil {
		r.logger.Error().Err(err).Str("food_id", id).Msg("failed to delete food")
		return 0, fmt.Errorf("failed to delete food: %w", err)
	}

	return tag.RowsAffected(), nil
}

// UpdateOwned merges patch into the row matching both id and owner. Rows
// where the merge would leave data unchanged are excluded by the WHERE
// clause, so RowsAffected counts real modifications only.
func (r *postgresFoodRepository) UpdateOwned(ctx context.Context, id, owner string, patch model.FoodItem) (int64, error) {
	if !r.ValidID(id) {
		return 0, model.ErrInvalidID
	}

	fields := patch.Patch()
	if len(fields) == 0 {
		return 0, nil
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return 0, fmt.Errorf("failed to encode patch: %w", err)
	}

	query := `
		UPDATE foods
		SET data = data || $3::jsonb
		WHERE id = $1
		  AND added_by = $2
		  AND (data || $3::jsonb) IS DISTINCT FROM data
	`

	tag, err := r.pool.Exec(ctx, query, id, owner, string(data))
	if err != nil {
		r.logger.Error().Err(err).Str("food_id", id).Msg("failed to update food")
		return 0, fmt.Errorf("failed to update food: %w", err)
	}

	r.logger.Debug().
		Str("food_id", id).
		Int64("modified", tag.RowsAffected()).
		Msg("food update applied")

	return tag.RowsAffected(), nil
}

// Ping verifies the database is reachable.
func (r *postgresFoodRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// scanFood rebuilds a FoodItem from a row of (id, added_by, data).
func scanFood(row pgx.Row) (model.FoodItem, error) {
	var (
		id      string
		addedBy string
		data    []byte
	)
	if err := row.Scan(&id, &addedBy, &data); err != nil {
		return nil, err
	}

	item := model.FoodItem{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &item); err != nil {
			return nil, fmt.Errorf("failed to decode food data: %w", err)
		}
	}
	item[model.FieldID] = id
	item[model.FieldAddedBy] = addedBy

	return item, nil
}
