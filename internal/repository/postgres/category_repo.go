package postgres

import (
	"context"
	"errors"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create inserts a new category
func (r *CategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (id, user_id, name, type, icon, color, is_essential)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, name, type, icon, color, is_essential, created_at, updated_at`,
		category.ID, category.UserID, category.Name, string(category.Type), category.Icon, category.Color, category.IsEssential,
	)

	created, err := scanCategory(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrCategoryNameTaken
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(id uuid.UUID) (*domain.Category, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, name, type, icon, color, is_essential, created_at, updated_at
		FROM categories WHERE id = $1`, id,
	)

	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// GetAllByUser retrieves a user's categories, optionally filtered by type
func (r *CategoryRepository) GetAllByUser(userID uuid.UUID, categoryType *domain.CategoryType) ([]*domain.Category, error) {
	ctx := context.Background()

	query := `
		SELECT id, user_id, name, type, icon, color, is_essential, created_at, updated_at
		FROM categories WHERE user_id = $1`
	args := []interface{}{userID}
	if categoryType != nil {
		query += ` AND type = $2`
		args = append(args, string(*categoryType))
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// ExistsByUserNameAndType reports whether the user already has a category
// with this name and type
func (r *CategoryRepository) ExistsByUserNameAndType(userID uuid.UUID, name string, categoryType domain.CategoryType) (bool, error) {
	ctx := context.Background()
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM categories WHERE user_id = $1 AND name = $2 AND type = $3)`,
		userID, name, string(categoryType),
	).Scan(&exists)
	return exists, err
}

// Update persists category changes
func (r *CategoryRepository) Update(category *domain.Category) (*domain.Category, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE categories
		SET name = $2, icon = $3, color = $4, is_essential = $5, updated_at = now()
		WHERE id = $1
		RETURNING id, user_id, name, type, icon, color, is_essential, created_at, updated_at`,
		category.ID, category.Name, category.Icon, category.Color, category.IsEssential,
	)

	updated, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrCategoryNameTaken
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a category
func (r *CategoryRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var (
		category     domain.Category
		categoryType string
	)
	err := row.Scan(&category.ID, &category.UserID, &category.Name, &categoryType, &category.Icon, &category.Color, &category.IsEssential, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return nil, err
	}
	category.Type = domain.CategoryType(categoryType)
	return &category, nil
}
