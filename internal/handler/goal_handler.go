package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/middleware"
	"github.com/centavo/centavo-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// GoalHandler handles savings goal HTTP requests
type GoalHandler struct {
	goalService *service.GoalService
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// CreateGoalRequest represents the create goal request body
type CreateGoalRequest struct {
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	TargetValue  string  `json:"targetValue"`
	CurrentValue string  `json:"currentValue,omitempty"`
	TargetDate   *string `json:"targetDate,omitempty"`
}

// UpdateGoalRequest represents the update goal request body
type UpdateGoalRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	TargetValue *string `json:"targetValue,omitempty"`
	TargetDate  *string `json:"targetDate,omitempty"`
}

// GoalProgressRequest sets or increments the saved amount
type GoalProgressRequest struct {
	CurrentValue *string `json:"currentValue,omitempty"`
	Amount       *string `json:"amount,omitempty"`
}

// GoalResponse represents a goal in API responses
type GoalResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Description        *string `json:"description,omitempty"`
	TargetValue        string  `json:"targetValue"`
	CurrentValue       string  `json:"currentValue"`
	ProgressPercentage string  `json:"progressPercentage"`
	RemainingAmount    string  `json:"remainingAmount"`
	TargetDate         *string `json:"targetDate,omitempty"`
	Status             string  `json:"status"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

// ForecastResponse represents a goal forecast in API responses
type ForecastResponse struct {
	GoalID          string  `json:"goalId"`
	Status          string  `json:"status"`
	RemainingAmount string  `json:"remainingAmount"`
	MonthlySurplus  string  `json:"monthlySurplus"`
	MonthsAnalyzed  int     `json:"monthsAnalyzed"`
	Achievable      bool    `json:"achievable"`
	MonthsNeeded    *int    `json:"monthsNeeded,omitempty"`
	EstimatedDate   *string `json:"estimatedDate,omitempty"`
	Message         string  `json:"message"`
}

// CreateGoal handles POST /api/v1/goals
func (h *GoalHandler) CreateGoal(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	targetValue, err := decimal.NewFromString(req.TargetValue)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "targetValue", Message: "Must be a valid decimal number"},
		})
	}
	currentValue := decimal.Zero
	if req.CurrentValue != "" {
		currentValue, err = decimal.NewFromString(req.CurrentValue)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "currentValue", Message: "Must be a valid decimal number"},
			})
		}
	}
	targetDate, err := parseOptionalDate(req.TargetDate)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "targetDate", Message: "Must be an RFC 3339 timestamp"},
		})
	}

	goal, err := h.goalService.Create(userID, service.CreateGoalInput{
		Name:         req.Name,
		Description:  req.Description,
		TargetValue:  targetValue,
		CurrentValue: currentValue,
		TargetDate:   targetDate,
	})
	if err != nil {
		if validationErr := goalValidationError(c, err); validationErr != nil {
			return validationErr
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create goal")
		return NewInternalError(c, "Failed to create goal")
	}

	log.Info().Str("user_id", userID.String()).Str("goal_id", goal.ID.String()).Str("name", goal.Name).Msg("Goal created")

	return c.JSON(http.StatusCreated, toGoalResponse(goal))
}

// GetGoals handles GET /api/v1/goals
func (h *GoalHandler) GetGoals(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var status *domain.GoalStatus
	if v := c.QueryParam("status"); v != "" {
		s := domain.GoalStatus(v)
		if s != domain.GoalStatusInProgress && s != domain.GoalStatusCompleted && s != domain.GoalStatusCancelled {
			return NewValidationError(c, "Invalid goal status", []ValidationError{
				{Field: "status", Message: "Status must be IN_PROGRESS, COMPLETED or CANCELLED"},
			})
		}
		status = &s
	}

	goals, err := h.goalService.List(userID, status)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get goals")
		return NewInternalError(c, "Failed to get goals")
	}

	response := make([]GoalResponse, len(goals))
	for i, goal := range goals {
		response[i] = toGoalResponse(goal)
	}

	return c.JSON(http.StatusOK, response)
}

// GetGoal handles GET /api/v1/goals/:id
func (h *GoalHandler) GetGoal(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	goal, err := h.goalService.Get(userID, id)
	if err != nil {
		return goalLookupError(c, err, userID, id)
	}

	return c.JSON(http.StatusOK, toGoalResponse(goal))
}

// UpdateGoal handles PATCH /api/v1/goals/:id
func (h *GoalHandler) UpdateGoal(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	var req UpdateGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.UpdateGoalInput{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.TargetValue != nil {
		target, err := decimal.NewFromString(*req.TargetValue)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "targetValue", Message: "Must be a valid decimal number"},
			})
		}
		input.TargetValue = &target
	}
	if req.TargetDate != nil {
		targetDate, err := parseOptionalDate(req.TargetDate)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "targetDate", Message: "Must be an RFC 3339 timestamp"},
			})
		}
		input.TargetDate = targetDate
	}

	goal, err := h.goalService.Update(userID, id, input)
	if err != nil {
		if validationErr := goalValidationError(c, err); validationErr != nil {
			return validationErr
		}
		return goalLookupError(c, err, userID, id)
	}

	log.Info().Str("user_id", userID.String()).Str("goal_id", goal.ID.String()).Msg("Goal updated")
	return c.JSON(http.StatusOK, toGoalResponse(goal))
}

// DeleteGoal handles DELETE /api/v1/goals/:id
func (h *GoalHandler) DeleteGoal(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	if err := h.goalService.Delete(userID, id); err != nil {
		return goalLookupError(c, err, userID, id)
	}

	log.Info().Str("user_id", userID.String()).Str("goal_id", id.String()).Msg("Goal deleted")
	return c.NoContent(http.StatusNoContent)
}

// UpdateProgress handles PATCH /api/v1/goals/:id/progress
func (h *GoalHandler) UpdateProgress(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	var req GoalProgressRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.CurrentValue == nil && req.Amount == nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "currentValue", Message: "Either currentValue or amount is required"},
		})
	}

	var input service.ProgressInput
	if req.CurrentValue != nil {
		value, err := decimal.NewFromString(*req.CurrentValue)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "currentValue", Message: "Must be a valid decimal number"},
			})
		}
		input.Set = &value
	} else {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Must be a valid decimal number"},
			})
		}
		input.Add = &amount
	}

	goal, err := h.goalService.UpdateProgress(userID, id, input)
	if err != nil {
		if validationErr := goalValidationError(c, err); validationErr != nil {
			return validationErr
		}
		return goalLookupError(c, err, userID, id)
	}

	log.Info().Str("user_id", userID.String()).Str("goal_id", goal.ID.String()).Str("status", string(goal.Status)).Msg("Goal progress updated")
	return c.JSON(http.StatusOK, toGoalResponse(goal))
}

// CompleteGoal handles POST /api/v1/goals/:id/complete
func (h *GoalHandler) CompleteGoal(c echo.Context) error {
	return h.transition(c, "complete", h.goalService.Complete)
}

// CancelGoal handles POST /api/v1/goals/:id/cancel
func (h *GoalHandler) CancelGoal(c echo.Context) error {
	return h.transition(c, "cancel", h.goalService.Cancel)
}

// ReactivateGoal handles POST /api/v1/goals/:id/reactivate
func (h *GoalHandler) ReactivateGoal(c echo.Context) error {
	return h.transition(c, "reactivate", h.goalService.Reactivate)
}

func (h *GoalHandler) transition(c echo.Context, action string, fn func(userID, goalID uuid.UUID) (*domain.Goal, error)) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	goal, err := fn(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrGoalAlreadyCancelled) {
			return NewForbiddenError(c, "Cannot complete a cancelled goal")
		}
		if errors.Is(err, domain.ErrGoalAlreadyCompleted) {
			return NewForbiddenError(c, "Cannot cancel a completed goal")
		}
		if errors.Is(err, domain.ErrGoalNotCancelled) {
			return NewForbiddenError(c, "Only cancelled goals can be reactivated")
		}
		return goalLookupError(c, err, userID, id)
	}

	log.Info().Str("user_id", userID.String()).Str("goal_id", goal.ID.String()).Str("action", action).Str("status", string(goal.Status)).Msg("Goal status changed")
	return c.JSON(http.StatusOK, toGoalResponse(goal))
}

// GetForecast handles GET /api/v1/goals/:id/forecast
func (h *GoalHandler) GetForecast(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	forecast, err := h.goalService.Forecast(userID, id)
	if err != nil {
		return goalLookupError(c, err, userID, id)
	}

	response := ForecastResponse{
		GoalID:          forecast.GoalID.String(),
		Status:          string(forecast.Status),
		RemainingAmount: forecast.RemainingAmount.StringFixed(2),
		MonthlySurplus:  forecast.MonthlySurplus.StringFixed(2),
		MonthsAnalyzed:  forecast.MonthsAnalyzed,
		Achievable:      forecast.Achievable,
		MonthsNeeded:    forecast.MonthsNeeded,
		Message:         forecast.Message,
	}
	if forecast.EstimatedDate != nil {
		estimated := forecast.EstimatedDate.Format(time.RFC3339)
		response.EstimatedDate = &estimated
	}

	return c.JSON(http.StatusOK, response)
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// goalValidationError maps domain validation errors to 400 responses.
// Returns nil for errors it does not recognize.
func goalValidationError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrNameRequired) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is required"},
		})
	}
	if errors.Is(err, domain.ErrTargetNotPositive) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "targetValue", Message: "Target value must be greater than zero"},
		})
	}
	if errors.Is(err, domain.ErrNegativeProgress) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "currentValue", Message: "Current value cannot be negative"},
		})
	}
	return nil
}

// goalLookupError maps not-found/forbidden errors from a goal fetch
func goalLookupError(c echo.Context, err error, userID, goalID uuid.UUID) error {
	if errors.Is(err, domain.ErrGoalNotFound) {
		return NewNotFoundError(c, "Goal not found")
	}
	if errors.Is(err, domain.ErrForbidden) {
		return NewForbiddenError(c, "Goal belongs to another user")
	}
	log.Error().Err(err).Str("user_id", userID.String()).Str("goal_id", goalID.String()).Msg("Goal operation failed")
	return NewInternalError(c, "Goal operation failed")
}

func toGoalResponse(goal *domain.Goal) GoalResponse {
	resp := GoalResponse{
		ID:                 goal.ID.String(),
		Name:               goal.Name,
		Description:        goal.Description,
		TargetValue:        goal.TargetValue.StringFixed(2),
		CurrentValue:       goal.CurrentValue.StringFixed(2),
		ProgressPercentage: goal.ProgressPercentage().Round(2).StringFixed(2),
		RemainingAmount:    goal.RemainingAmount().StringFixed(2),
		Status:             string(goal.Status),
		CreatedAt:          goal.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          goal.UpdatedAt.Format(time.RFC3339),
	}
	if goal.TargetDate != nil {
		targetDate := goal.TargetDate.Format(time.RFC3339)
		resp.TargetDate = &targetDate
	}
	return resp
}
