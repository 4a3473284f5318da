package service

import (
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionService handles transaction business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	accountRepo     domain.AccountRepository
	categoryRepo    domain.CategoryRepository
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository, accountRepo domain.AccountRepository, categoryRepo domain.CategoryRepository) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
	}
}

// CreateTransactionInput holds the input for creating a transaction
type CreateTransactionInput struct {
	AccountID   uuid.UUID
	CategoryID  uuid.UUID
	Type        domain.TransactionType
	Amount      decimal.Decimal
	Currency    string
	Description *string
	Date        time.Time
	IsPaid      *bool
	Notes       *string
}

// UpdateTransactionInput holds the input for updating a transaction.
// Nil fields are left unchanged.
type UpdateTransactionInput struct {
	Amount      *decimal.Decimal
	Description *string
	Date        *time.Time
	IsPaid      *bool
	Notes       *string
}

// Create records a transaction against an account and category owned by
// the user. The amount currency defaults to the account currency.
func (s *TransactionService) Create(userID uuid.UUID, input CreateTransactionInput) (*domain.Transaction, error) {
	account, err := s.accountRepo.GetByID(input.AccountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, domain.ErrForbidden
	}

	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category.UserID != userID {
		return nil, domain.ErrForbidden
	}

	currency := input.Currency
	if currency == "" {
		currency = string(account.Currency)
	}
	amount, err := domain.NewMoney(input.Amount, currency)
	if err != nil {
		return nil, err
	}

	isPaid := true
	if input.IsPaid != nil {
		isPaid = *input.IsPaid
	}
	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	tx, err := domain.NewTransaction(account.ID, category.ID, input.Type, amount, date, isPaid, input.Description, input.Notes)
	if err != nil {
		return nil, err
	}

	return s.transactionRepo.Create(tx)
}

// Get returns a transaction whose account is owned by the user
func (s *TransactionService) Get(userID, transactionID uuid.UUID) (*domain.Transaction, error) {
	tx, err := s.transactionRepo.GetByID(transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(userID, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// List returns the user's transactions with filters and pagination
func (s *TransactionService) List(userID uuid.UUID, filters *domain.TransactionFilters) (*domain.PaginatedTransactions, error) {
	if filters == nil {
		filters = &domain.TransactionFilters{}
	}
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = domain.DefaultPageSize
	}
	if filters.PageSize > domain.MaxPageSize {
		filters.PageSize = domain.MaxPageSize
	}
	if filters.Type != nil && !domain.ValidTransactionTypes[*filters.Type] {
		return nil, domain.ErrInvalidTransactionType
	}
	return s.transactionRepo.GetByUser(userID, filters)
}

// Update applies a partial update to a transaction owned by the user
func (s *TransactionService) Update(userID, transactionID uuid.UUID, input UpdateTransactionInput) (*domain.Transaction, error) {
	tx, err := s.Get(userID, transactionID)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		amount, err := domain.NewMoney(*input.Amount, tx.Amount.Currency)
		if err != nil {
			return nil, err
		}
		if err := tx.UpdateAmount(amount); err != nil {
			return nil, err
		}
	}
	if input.Date != nil {
		if err := tx.UpdateDate(*input.Date); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		tx.Description = input.Description
	}
	if input.Notes != nil {
		tx.Notes = input.Notes
	}
	if input.IsPaid != nil && *input.IsPaid != tx.IsPaid {
		if *input.IsPaid {
			if err := tx.MarkPaid(); err != nil {
				return nil, err
			}
		} else {
			if err := tx.MarkPending(); err != nil {
				return nil, err
			}
		}
	}

	return s.transactionRepo.Update(tx)
}

// Delete removes a transaction owned by the user
func (s *TransactionService) Delete(userID, transactionID uuid.UUID) error {
	if _, err := s.Get(userID, transactionID); err != nil {
		return err
	}
	return s.transactionRepo.Delete(transactionID)
}

// checkOwnership verifies the transaction's account belongs to the user
func (s *TransactionService) checkOwnership(userID uuid.UUID, tx *domain.Transaction) error {
	account, err := s.accountRepo.GetByID(tx.AccountID)
	if err != nil {
		return err
	}
	if account.UserID != userID {
		return domain.ErrForbidden
	}
	return nil
}
