package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type GoalStatus string

const (
	GoalStatusInProgress GoalStatus = "IN_PROGRESS"
	GoalStatusCompleted  GoalStatus = "COMPLETED"
	GoalStatusCancelled  GoalStatus = "CANCELLED"
)

var hundred = decimal.NewFromInt(100)

type Goal struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"userId"`
	Name         string          `json:"name"`
	Description  *string         `json:"description,omitempty"`
	TargetValue  decimal.Decimal `json:"targetValue"`
	CurrentValue decimal.Decimal `json:"currentValue"`
	TargetDate   *time.Time      `json:"targetDate,omitempty"`
	Status       GoalStatus      `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// NewGoal validates the fields and builds an IN_PROGRESS Goal.
func NewGoal(userID uuid.UUID, name string, description *string, targetValue, currentValue decimal.Decimal, targetDate *time.Time) (*Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if !targetValue.IsPositive() {
		return nil, ErrTargetNotPositive
	}
	if currentValue.IsNegative() {
		return nil, ErrNegativeProgress
	}

	return &Goal{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         name,
		Description:  description,
		TargetValue:  targetValue,
		CurrentValue: currentValue,
		TargetDate:   targetDate,
		Status:       GoalStatusInProgress,
	}, nil
}

// ProgressPercentage returns current/target as a percentage clamped to [0, 100].
func (g *Goal) ProgressPercentage() decimal.Decimal {
	if g.TargetValue.IsZero() {
		return hundred
	}
	pct := g.CurrentValue.Div(g.TargetValue).Mul(hundred)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}

// RemainingAmount returns target minus current, floored at zero.
func (g *Goal) RemainingAmount() decimal.Decimal {
	remaining := g.TargetValue.Sub(g.CurrentValue)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// IsAchieved reports whether the current value has reached the target.
func (g *Goal) IsAchieved() bool {
	return g.CurrentValue.GreaterThanOrEqual(g.TargetValue)
}

// UpdateProgress sets the current value. An IN_PROGRESS goal that reaches
// its target auto-transitions to COMPLETED.
func (g *Goal) UpdateProgress(value decimal.Decimal) error {
	if value.IsNegative() {
		return ErrNegativeProgress
	}
	g.CurrentValue = value
	if g.IsAchieved() && g.Status == GoalStatusInProgress {
		g.Status = GoalStatusCompleted
	}
	return nil
}

// AddProgress increments the current value by amount.
func (g *Goal) AddProgress(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeProgress
	}
	return g.UpdateProgress(g.CurrentValue.Add(amount))
}

// Complete marks the goal COMPLETED. A cancelled goal cannot be completed.
func (g *Goal) Complete() error {
	if g.Status == GoalStatusCancelled {
		return ErrGoalAlreadyCancelled
	}
	g.Status = GoalStatusCompleted
	return nil
}

// Cancel marks the goal CANCELLED. A completed goal cannot be cancelled.
func (g *Goal) Cancel() error {
	if g.Status == GoalStatusCompleted {
		return ErrGoalAlreadyCompleted
	}
	g.Status = GoalStatusCancelled
	return nil
}

// Reactivate moves a cancelled goal back to IN_PROGRESS.
func (g *Goal) Reactivate() error {
	if g.Status != GoalStatusCancelled {
		return ErrGoalNotCancelled
	}
	g.Status = GoalStatusInProgress
	return nil
}

// Rename changes the goal name.
func (g *Goal) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	g.Name = name
	return nil
}

// SetTargetValue replaces the target, re-validating positivity.
func (g *Goal) SetTargetValue(target decimal.Decimal) error {
	if !target.IsPositive() {
		return ErrTargetNotPositive
	}
	g.TargetValue = target
	return nil
}

// GoalRepository defines the interface for goal persistence operations
type GoalRepository interface {
	Create(goal *Goal) (*Goal, error)
	GetByID(id uuid.UUID) (*Goal, error)
	GetAllByUser(userID uuid.UUID, status *GoalStatus) ([]*Goal, error)
	GetActiveByUser(userID uuid.UUID, limit int32) ([]*Goal, error)
	Update(goal *Goal) (*Goal, error)
	Delete(id uuid.UUID) error
}
