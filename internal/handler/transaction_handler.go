package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/middleware"
	"github.com/centavo/centavo-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the create transaction request body
type CreateTransactionRequest struct {
	AccountID   string  `json:"accountId"`
	CategoryID  string  `json:"categoryId"`
	Type        string  `json:"type"`
	Amount      string  `json:"amount"`
	Currency    string  `json:"currency,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        string  `json:"date,omitempty"`
	IsPaid      *bool   `json:"isPaid,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// UpdateTransactionRequest represents the update transaction request body
type UpdateTransactionRequest struct {
	Amount      *string `json:"amount,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
	IsPaid      *bool   `json:"isPaid,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID          string  `json:"id"`
	AccountID   string  `json:"accountId"`
	CategoryID  string  `json:"categoryId"`
	Type        string  `json:"type"`
	Amount      string  `json:"amount"`
	Currency    string  `json:"currency"`
	Description *string `json:"description,omitempty"`
	Date        string  `json:"date"`
	IsPaid      bool    `json:"isPaid"`
	Notes       *string `json:"notes,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// PaginatedTransactionsResponse represents a page of transactions
type PaginatedTransactionsResponse struct {
	Data       []TransactionResponse `json:"data"`
	Page       int32                 `json:"page"`
	PageSize   int32                 `json:"pageSize"`
	TotalItems int64                 `json:"totalItems"`
	TotalPages int32                 `json:"totalPages"`
}

// CreateTransaction handles POST /api/v1/transactions
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "accountId", Message: "Must be a valid UUID"},
		})
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "categoryId", Message: "Must be a valid UUID"},
		})
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	var date time.Time
	if req.Date != "" {
		date, err = time.Parse(time.RFC3339, req.Date)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "date", Message: "Must be an RFC 3339 timestamp"},
			})
		}
	}

	tx, err := h.transactionService.Create(userID, service.CreateTransactionInput{
		AccountID:   accountID,
		CategoryID:  categoryID,
		Type:        domain.TransactionType(req.Type),
		Amount:      amount,
		Currency:    req.Currency,
		Description: req.Description,
		Date:        date,
		IsPaid:      req.IsPaid,
		Notes:       req.Notes,
	})
	if err != nil {
		if validationErr := transactionValidationError(c, err); validationErr != nil {
			return validationErr
		}
		if errors.Is(err, domain.ErrAccountNotFound) {
			return NewNotFoundError(c, "Account not found")
		}
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		if errors.Is(err, domain.ErrForbidden) {
			return NewForbiddenError(c, "Account or category belongs to another user")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create transaction")
		return NewInternalError(c, "Failed to create transaction")
	}

	log.Info().Str("user_id", userID.String()).Str("transaction_id", tx.ID.String()).Str("type", string(tx.Type)).Msg("Transaction created")

	return c.JSON(http.StatusCreated, toTransactionResponse(tx))
}

// GetTransactions handles GET /api/v1/transactions
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	filters, err := parseTransactionFilters(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	page, err := h.transactionService.List(userID, filters)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransactionType) {
			return NewValidationError(c, "Invalid transaction type", []ValidationError{
				{Field: "type", Message: "Type must be INCOME or EXPENSE"},
			})
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get transactions")
		return NewInternalError(c, "Failed to get transactions")
	}

	data := make([]TransactionResponse, len(page.Data))
	for i, tx := range page.Data {
		data[i] = toTransactionResponse(tx)
	}

	return c.JSON(http.StatusOK, PaginatedTransactionsResponse{
		Data:       data,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	})
}

// GetTransaction handles GET /api/v1/transactions/:id
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	tx, err := h.transactionService.Get(userID, id)
	if err != nil {
		return transactionLookupError(c, err, userID, id)
	}

	return c.JSON(http.StatusOK, toTransactionResponse(tx))
}

// UpdateTransaction handles PATCH /api/v1/transactions/:id
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	var req UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.UpdateTransactionInput{
		Description: req.Description,
		IsPaid:      req.IsPaid,
		Notes:       req.Notes,
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Must be a valid decimal number"},
			})
		}
		input.Amount = &amount
	}
	if req.Date != nil {
		date, err := time.Parse(time.RFC3339, *req.Date)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "date", Message: "Must be an RFC 3339 timestamp"},
			})
		}
		input.Date = &date
	}

	tx, err := h.transactionService.Update(userID, id, input)
	if err != nil {
		if validationErr := transactionValidationError(c, err); validationErr != nil {
			return validationErr
		}
		return transactionLookupError(c, err, userID, id)
	}

	log.Info().Str("user_id", userID.String()).Str("transaction_id", tx.ID.String()).Msg("Transaction updated")
	return c.JSON(http.StatusOK, toTransactionResponse(tx))
}

// DeleteTransaction handles DELETE /api/v1/transactions/:id
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	if err := h.transactionService.Delete(userID, id); err != nil {
		return transactionLookupError(c, err, userID, id)
	}

	log.Info().Str("user_id", userID.String()).Str("transaction_id", id.String()).Msg("Transaction deleted")
	return c.NoContent(http.StatusNoContent)
}

// parseTransactionFilters reads list filters from query parameters
func parseTransactionFilters(c echo.Context) (*domain.TransactionFilters, error) {
	filters := &domain.TransactionFilters{}

	if v := c.QueryParam("accountId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, errors.New("invalid accountId filter")
		}
		filters.AccountID = &id
	}
	if v := c.QueryParam("categoryId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, errors.New("invalid categoryId filter")
		}
		filters.CategoryID = &id
	}
	if v := c.QueryParam("type"); v != "" {
		t := domain.TransactionType(v)
		filters.Type = &t
	}
	if v := c.QueryParam("startDate"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, errors.New("invalid startDate filter")
		}
		filters.StartDate = &t
	}
	if v := c.QueryParam("endDate"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, errors.New("invalid endDate filter")
		}
		filters.EndDate = &t
	}
	if v := c.QueryParam("isPaid"); v != "" {
		paid, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("invalid isPaid filter")
		}
		filters.IsPaid = &paid
	}
	if v := c.QueryParam("page"); v != "" {
		page, err := strconv.ParseInt(v, 10, 32)
		if err != nil || page < 1 {
			return nil, errors.New("invalid page parameter")
		}
		filters.Page = int32(page)
	}
	if v := c.QueryParam("pageSize"); v != "" {
		size, err := strconv.ParseInt(v, 10, 32)
		if err != nil || size < 1 {
			return nil, errors.New("invalid pageSize parameter")
		}
		filters.PageSize = int32(size)
	}

	return filters, nil
}

// transactionValidationError maps domain validation errors to 400 responses.
// Returns nil for errors it does not recognize.
func transactionValidationError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrInvalidTransactionType) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "type", Message: "Type must be INCOME or EXPENSE"},
		})
	}
	if errors.Is(err, domain.ErrAmountNotPositive) || errors.Is(err, domain.ErrNegativeAmount) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be greater than zero"},
		})
	}
	if errors.Is(err, domain.ErrInvalidCurrencyCode) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "currency", Message: "Currency code must be 3 letters"},
		})
	}
	if errors.Is(err, domain.ErrDateTooFarInFuture) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "date", Message: "Date cannot be more than 1 day in the future"},
		})
	}
	return nil
}

// transactionLookupError maps not-found/forbidden errors from a transaction fetch
func transactionLookupError(c echo.Context, err error, userID, transactionID uuid.UUID) error {
	if errors.Is(err, domain.ErrTransactionNotFound) {
		return NewNotFoundError(c, "Transaction not found")
	}
	if errors.Is(err, domain.ErrAccountNotFound) {
		return NewNotFoundError(c, "Transaction not found")
	}
	if errors.Is(err, domain.ErrForbidden) {
		return NewForbiddenError(c, "Transaction belongs to another user")
	}
	log.Error().Err(err).Str("user_id", userID.String()).Str("transaction_id", transactionID.String()).Msg("Transaction operation failed")
	return NewInternalError(c, "Transaction operation failed")
}

func toTransactionResponse(tx *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID.String(),
		AccountID:   tx.AccountID.String(),
		CategoryID:  tx.CategoryID.String(),
		Type:        string(tx.Type),
		Amount:      tx.Amount.Amount.StringFixed(2),
		Currency:    tx.Amount.Currency,
		Description: tx.Description,
		Date:        tx.Date.Format(time.RFC3339),
		IsPaid:      tx.IsPaid,
		Notes:       tx.Notes,
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   tx.UpdatedAt.Format(time.RFC3339),
	}
}
