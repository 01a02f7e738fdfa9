package postgresql

import (
	"context"
	"fmt"

	"github.com/geoshift-hq/attendance-backend-go/internal/domain/business"
	"github.com/geoshift-hq/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type businessRepository struct {
	db *database.DB
}

func NewBusinessRepository(db *database.DB) business.BusinessRepository {
	return &businessRepository{db: db}
}

// Create implements business.BusinessRepository.
func (r *businessRepository) Create(ctx context.Context, b business.Business) (business.Business, error) {
	q := GetQuerier(ctx, r.db)

	if b.ID == "" {
		b.ID = uuid.New().String()
	}

	query := `
		INSERT INTO businesses (id, name, timezone)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, b.ID, b.Name, b.Timezone).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return business.Business{}, fmt.Errorf("failed to create business: %w", err)
	}

	return b, nil
}

// GetByID implements business.BusinessRepository.
func (r *businessRepository) GetByID(ctx context.Context, id string) (business.Business, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, timezone, created_at, updated_at, deleted_at
		FROM businesses
		WHERE id = $1
		  AND deleted_at IS NULL
	`

	var b business.Business
	err := q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Name, &b.Timezone, &b.CreatedAt, &b.UpdatedAt, &b.DeletedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return business.Business{}, business.ErrBusinessNotFound
		}
		return business.Business{}, fmt.Errorf("failed to get business: %w", err)
	}

	return b, nil
}
