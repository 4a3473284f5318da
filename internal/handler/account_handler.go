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

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CreateAccountRequest represents the create account request body
type CreateAccountRequest struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	InitialBalance string `json:"initialBalance,omitempty"`
	Currency       string `json:"currency,omitempty"`
}

// UpdateAccountRequest represents the update account request body
type UpdateAccountRequest struct {
	Name           *string `json:"name,omitempty"`
	Type           *string `json:"type,omitempty"`
	InitialBalance *string `json:"initialBalance,omitempty"`
	IsActive       *bool   `json:"isActive,omitempty"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	InitialBalance string `json:"initialBalance"`
	Currency       string `json:"currency"`
	IsActive       bool   `json:"isActive"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

// BalanceResponse represents a computed account balance
type BalanceResponse struct {
	AccountID      string `json:"accountId"`
	Currency       string `json:"currency"`
	InitialBalance string `json:"initialBalance"`
	TotalIncome    string `json:"totalIncome"`
	TotalExpenses  string `json:"totalExpenses"`
	Balance        string `json:"balance"`
}

// CreateAccount handles POST /api/v1/accounts
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateAccountRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	// Parse initial balance (default to 0)
	initialBalance := decimal.Zero
	if req.InitialBalance != "" {
		var err error
		initialBalance, err = decimal.NewFromString(req.InitialBalance)
		if err != nil {
			return NewValidationError(c, "Invalid initial balance", []ValidationError{
				{Field: "initialBalance", Message: "Must be a valid decimal number"},
			})
		}
	}

	account, err := h.accountService.Create(userID, service.CreateAccountInput{
		Name:           req.Name,
		Type:           domain.AccountType(req.Type),
		InitialBalance: initialBalance,
		Currency:       domain.Currency(req.Currency),
	})
	if err != nil {
		if errors.Is(err, domain.ErrAccountNameTaken) {
			return NewConflictError(c, "An account with this name already exists")
		}
		if validationErr := accountValidationError(c, err); validationErr != nil {
			return validationErr
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create account")
		return NewInternalError(c, "Failed to create account")
	}

	log.Info().Str("user_id", userID.String()).Str("account_id", account.ID.String()).Str("name", account.Name).Msg("Account created")

	return c.JSON(http.StatusCreated, toAccountResponse(account))
}

// GetAccounts handles GET /api/v1/accounts
func (h *AccountHandler) GetAccounts(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	includeInactive := c.QueryParam("includeInactive") == "true"

	accounts, err := h.accountService.List(userID, includeInactive)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get accounts")
		return NewInternalError(c, "Failed to get accounts")
	}

	response := make([]AccountResponse, len(accounts))
	for i, account := range accounts {
		response[i] = toAccountResponse(account)
	}

	return c.JSON(http.StatusOK, response)
}

// GetAccount handles GET /api/v1/accounts/:id
func (h *AccountHandler) GetAccount(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid account ID", nil)
	}

	account, err := h.accountService.Get(userID, id)
	if err != nil {
		return accountLookupError(c, err, userID, id)
	}

	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// UpdateAccount handles PATCH /api/v1/accounts/:id
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid account ID", nil)
	}

	var req UpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.UpdateAccountInput{
		Name:     req.Name,
		IsActive: req.IsActive,
	}
	if req.Type != nil {
		accountType := domain.AccountType(*req.Type)
		input.Type = &accountType
	}
	if req.InitialBalance != nil {
		balance, err := decimal.NewFromString(*req.InitialBalance)
		if err != nil {
			return NewValidationError(c, "Invalid initial balance", []ValidationError{
				{Field: "initialBalance", Message: "Must be a valid decimal number"},
			})
		}
		input.InitialBalance = &balance
	}

	account, err := h.accountService.Update(userID, id, input)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNameTaken) {
			return NewConflictError(c, "An account with this name already exists")
		}
		if validationErr := accountValidationError(c, err); validationErr != nil {
			return validationErr
		}
		return accountLookupError(c, err, userID, id)
	}

	log.Info().Str("user_id", userID.String()).Str("account_id", account.ID.String()).Msg("Account updated")
	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// DeleteAccount handles DELETE /api/v1/accounts/:id
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid account ID", nil)
	}

	if err := h.accountService.Delete(userID, id); err != nil {
		if errors.Is(err, domain.ErrAccountHasTransactions) {
			return NewConflictError(c, "Account has transactions and cannot be deleted")
		}
		return accountLookupError(c, err, userID, id)
	}

	log.Info().Str("user_id", userID.String()).Str("account_id", id.String()).Msg("Account deleted")
	return c.NoContent(http.StatusNoContent)
}

// GetBalance handles GET /api/v1/accounts/:id/balance
func (h *AccountHandler) GetBalance(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid account ID", nil)
	}

	balance, err := h.accountService.GetBalance(userID, id)
	if err != nil {
		return accountLookupError(c, err, userID, id)
	}

	return c.JSON(http.StatusOK, BalanceResponse{
		AccountID:      balance.AccountID.String(),
		Currency:       string(balance.Currency),
		InitialBalance: balance.InitialBalance.StringFixed(2),
		TotalIncome:    balance.TotalIncome.StringFixed(2),
		TotalExpenses:  balance.TotalExpenses.StringFixed(2),
		Balance:        balance.Balance.StringFixed(2),
	})
}

// accountValidationError maps domain validation errors to 400 responses.
// Returns nil for errors it does not recognize.
func accountValidationError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrNameTooShort) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name must be at least 2 characters"},
		})
	}
	if errors.Is(err, domain.ErrInvalidAccountType) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "type", Message: "Type must be one of: CHECKING, SAVINGS, CASH, INVESTMENT"},
		})
	}
	if errors.Is(err, domain.ErrInvalidCurrency) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "currency", Message: "Currency must be one of: BRL, USD, EUR"},
		})
	}
	if errors.Is(err, domain.ErrNegativeBalance) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "initialBalance", Message: "Initial balance cannot be negative"},
		})
	}
	return nil
}

// accountLookupError maps not-found/forbidden errors from an account fetch
func accountLookupError(c echo.Context, err error, userID, accountID uuid.UUID) error {
	if errors.Is(err, domain.ErrAccountNotFound) {
		return NewNotFoundError(c, "Account not found")
	}
	if errors.Is(err, domain.ErrForbidden) {
		return NewForbiddenError(c, "Account belongs to another user")
	}
	log.Error().Err(err).Str("user_id", userID.String()).Str("account_id", accountID.String()).Msg("Account operation failed")
	return NewInternalError(c, "Account operation failed")
}

func toAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:             account.ID.String(),
		Name:           account.Name,
		Type:           string(account.Type),
		InitialBalance: account.InitialBalance.StringFixed(2),
		Currency:       string(account.Currency),
		IsActive:       account.IsActive,
		CreatedAt:      account.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      account.UpdatedAt.Format(time.RFC3339),
	}
}
