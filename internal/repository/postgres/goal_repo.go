package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GoalRepository implements domain.GoalRepository using PostgreSQL
type GoalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{pool: pool}
}

const goalColumns = `id, user_id, name, description, target_value, current_value, target_date, status, created_at, updated_at`

// Create inserts a new goal
func (r *GoalRepository) Create(goal *domain.Goal) (*domain.Goal, error) {
	ctx := context.Background()
	targetValue, err := decimalToPgNumeric(goal.TargetValue)
	if err != nil {
		return nil, fmt.Errorf("invalid target value: %w", err)
	}
	currentValue, err := decimalToPgNumeric(goal.CurrentValue)
	if err != nil {
		return nil, fmt.Errorf("invalid current value: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO goals (id, user_id, name, description, target_value, current_value, target_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+goalColumns,
		goal.ID, goal.UserID, goal.Name, goal.Description, targetValue, currentValue, goal.TargetDate, string(goal.Status),
	)

	return scanGoal(row)
}

// GetByID retrieves a goal by ID
func (r *GoalRepository) GetByID(id uuid.UUID) (*domain.Goal, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = $1`, id)

	goal, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return goal, nil
}

// GetAllByUser retrieves a user's goals, optionally filtered by status
func (r *GoalRepository) GetAllByUser(userID uuid.UUID, status *domain.GoalStatus) ([]*domain.Goal, error) {
	ctx := context.Background()

	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1`
	args := []interface{}{userID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, string(*status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectGoals(rows)
}

// GetActiveByUser retrieves the user's most recent in-progress goals
func (r *GoalRepository) GetActiveByUser(userID uuid.UUID, limit int32) ([]*domain.Goal, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+goalColumns+` FROM goals
		WHERE user_id = $1 AND status = 'IN_PROGRESS'
		ORDER BY created_at DESC
		LIMIT $2`, userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectGoals(rows)
}

// Update persists goal changes
func (r *GoalRepository) Update(goal *domain.Goal) (*domain.Goal, error) {
	ctx := context.Background()
	targetValue, err := decimalToPgNumeric(goal.TargetValue)
	if err != nil {
		return nil, fmt.Errorf("invalid target value: %w", err)
	}
	currentValue, err := decimalToPgNumeric(goal.CurrentValue)
	if err != nil {
		return nil, fmt.Errorf("invalid current value: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE goals
		SET name = $2, description = $3, target_value = $4, current_value = $5, target_date = $6, status = $7, updated_at = now()
		WHERE id = $1
		RETURNING `+goalColumns,
		goal.ID, goal.Name, goal.Description, targetValue, currentValue, goal.TargetDate, string(goal.Status),
	)

	updated, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a goal
func (r *GoalRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

func collectGoals(rows pgx.Rows) ([]*domain.Goal, error) {
	var goals []*domain.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

func scanGoal(row pgx.Row) (*domain.Goal, error) {
	var (
		goal         domain.Goal
		status       string
		targetValue  pgtype.Numeric
		currentValue pgtype.Numeric
	)
	err := row.Scan(&goal.ID, &goal.UserID, &goal.Name, &goal.Description, &targetValue, &currentValue, &goal.TargetDate, &status, &goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		return nil, err
	}
	goal.Status = domain.GoalStatus(status)
	goal.TargetValue = pgNumericToDecimal(targetValue)
	goal.CurrentValue = pgNumericToDecimal(currentValue)
	return &goal, nil
}
