package service

import (
	"fmt"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// forecastWindowMonths is how many trailing months feed the surplus average
const forecastWindowMonths = 6

// GoalService handles savings goal business logic
type GoalService struct {
	goalRepo        domain.GoalRepository
	accountRepo     domain.AccountRepository
	transactionRepo domain.TransactionRepository
}

// NewGoalService creates a new GoalService
func NewGoalService(goalRepo domain.GoalRepository, accountRepo domain.AccountRepository, transactionRepo domain.TransactionRepository) *GoalService {
	return &GoalService{
		goalRepo:        goalRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

// CreateGoalInput holds the input for creating a goal
type CreateGoalInput struct {
	Name         string
	Description  *string
	TargetValue  decimal.Decimal
	CurrentValue decimal.Decimal
	TargetDate   *time.Time
}

// UpdateGoalInput holds the input for updating a goal.
// Nil fields are left unchanged.
type UpdateGoalInput struct {
	Name        *string
	Description *string
	TargetValue *decimal.Decimal
	TargetDate  *time.Time
}

// ProgressInput sets or increments the goal's current value.
// Exactly one of Set or Add should be provided.
type ProgressInput struct {
	Set *decimal.Decimal
	Add *decimal.Decimal
}

// GoalForecast estimates when a goal will be reached based on the
// user's average monthly surplus
type GoalForecast struct {
	GoalID          uuid.UUID         `json:"goalId"`
	Status          domain.GoalStatus `json:"status"`
	RemainingAmount decimal.Decimal   `json:"remainingAmount"`
	MonthlySurplus  decimal.Decimal   `json:"monthlySurplus"`
	MonthsAnalyzed  int               `json:"monthsAnalyzed"`
	Achievable      bool              `json:"achievable"`
	MonthsNeeded    *int              `json:"monthsNeeded,omitempty"`
	EstimatedDate   *time.Time        `json:"estimatedDate,omitempty"`
	Message         string            `json:"message"`
}

// Create creates a new goal for the user
func (s *GoalService) Create(userID uuid.UUID, input CreateGoalInput) (*domain.Goal, error) {
	goal, err := domain.NewGoal(userID, input.Name, input.Description, input.TargetValue, input.CurrentValue, input.TargetDate)
	if err != nil {
		return nil, err
	}
	return s.goalRepo.Create(goal)
}

// Get returns a goal owned by the user
func (s *GoalService) Get(userID, goalID uuid.UUID) (*domain.Goal, error) {
	goal, err := s.goalRepo.GetByID(goalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return goal, nil
}

// List returns the user's goals, optionally filtered by status
func (s *GoalService) List(userID uuid.UUID, status *domain.GoalStatus) ([]*domain.Goal, error) {
	return s.goalRepo.GetAllByUser(userID, status)
}

// Update applies a partial update to a goal owned by the user
func (s *GoalService) Update(userID, goalID uuid.UUID, input UpdateGoalInput) (*domain.Goal, error) {
	goal, err := s.Get(userID, goalID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := goal.Rename(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		goal.Description = input.Description
	}
	if input.TargetValue != nil {
		if err := goal.SetTargetValue(*input.TargetValue); err != nil {
			return nil, err
		}
	}
	if input.TargetDate != nil {
		goal.TargetDate = input.TargetDate
	}

	return s.goalRepo.Update(goal)
}

// Delete removes a goal owned by the user
func (s *GoalService) Delete(userID, goalID uuid.UUID) error {
	if _, err := s.Get(userID, goalID); err != nil {
		return err
	}
	return s.goalRepo.Delete(goalID)
}

// UpdateProgress sets or increments the goal's saved amount. A goal that
// reaches its target is automatically completed.
func (s *GoalService) UpdateProgress(userID, goalID uuid.UUID, input ProgressInput) (*domain.Goal, error) {
	goal, err := s.Get(userID, goalID)
	if err != nil {
		return nil, err
	}

	switch {
	case input.Set != nil:
		err = goal.UpdateProgress(*input.Set)
	case input.Add != nil:
		err = goal.AddProgress(*input.Add)
	default:
		err = domain.ErrNegativeProgress
	}
	if err != nil {
		return nil, err
	}

	return s.goalRepo.Update(goal)
}

// Complete marks a goal as completed
func (s *GoalService) Complete(userID, goalID uuid.UUID) (*domain.Goal, error) {
	goal, err := s.Get(userID, goalID)
	if err != nil {
		return nil, err
	}
	if err := goal.Complete(); err != nil {
		return nil, err
	}
	return s.goalRepo.Update(goal)
}

// Cancel marks a goal as cancelled
func (s *GoalService) Cancel(userID, goalID uuid.UUID) (*domain.Goal, error) {
	goal, err := s.Get(userID, goalID)
	if err != nil {
		return nil, err
	}
	if err := goal.Cancel(); err != nil {
		return nil, err
	}
	return s.goalRepo.Update(goal)
}

// Reactivate moves a cancelled goal back to in progress
func (s *GoalService) Reactivate(userID, goalID uuid.UUID) (*domain.Goal, error) {
	goal, err := s.Get(userID, goalID)
	if err != nil {
		return nil, err
	}
	if err := goal.Reactivate(); err != nil {
		return nil, err
	}
	return s.goalRepo.Update(goal)
}

// Forecast estimates when the goal will be reached. The average monthly
// surplus is computed from paid transactions over the trailing 6 months.
func (s *GoalService) Forecast(userID, goalID uuid.UUID) (*GoalForecast, error) {
	goal, err := s.Get(userID, goalID)
	if err != nil {
		return nil, err
	}

	forecast := &GoalForecast{
		GoalID:          goal.ID,
		Status:          goal.Status,
		RemainingAmount: goal.RemainingAmount(),
		MonthlySurplus:  decimal.Zero,
	}

	if goal.Status != domain.GoalStatusInProgress {
		forecast.Achievable = goal.Status == domain.GoalStatusCompleted
		if forecast.Achievable {
			forecast.Message = "Goal has been achieved"
		} else {
			forecast.Message = "Goal has been cancelled"
		}
		return forecast, nil
	}

	if forecast.RemainingAmount.IsZero() {
		months := 0
		forecast.Achievable = true
		forecast.MonthsNeeded = &months
		forecast.Message = "Goal already achieved"
		return forecast, nil
	}

	accounts, err := s.accountRepo.GetAllByUser(userID, false)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		forecast.Message = "No accounts found, cannot estimate savings rate"
		return forecast, nil
	}

	now := time.Now()
	start := now.AddDate(0, -forecastWindowMonths, 0)
	income, expenses, err := s.transactionRepo.SumPaidByUserInRange(userID, start, now)
	if err != nil {
		return nil, err
	}

	if income.IsZero() && expenses.IsZero() {
		forecast.Message = "Not enough transaction data to forecast"
		return forecast, nil
	}

	forecast.MonthsAnalyzed = forecastWindowMonths
	surplus := income.Sub(expenses).Div(decimal.NewFromInt(forecastWindowMonths)).Round(2)
	forecast.MonthlySurplus = surplus

	if !surplus.IsPositive() {
		forecast.Message = "Current spending exceeds income, goal is not achievable at the current savings rate"
		return forecast, nil
	}

	months := int(forecast.RemainingAmount.Div(surplus).Ceil().IntPart())
	estimated := now.AddDate(0, months, 0)

	forecast.Achievable = true
	forecast.MonthsNeeded = &months
	forecast.EstimatedDate = &estimated

	if goal.TargetDate != nil {
		diff := monthsBetween(estimated, *goal.TargetDate)
		switch {
		case diff >= 0:
			forecast.Message = fmt.Sprintf("On track to reach the goal %d month(s) before the target date", diff)
		default:
			forecast.Message = fmt.Sprintf("Estimated to reach the goal %d month(s) after the target date", -diff)
		}
	} else {
		forecast.Message = fmt.Sprintf("Estimated to reach the goal in %d month(s)", months)
	}

	return forecast, nil
}

// monthsBetween returns the whole months from a to b, negative when a is
// after b.
func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}
