package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// ValidTransactionTypes is the set of supported transaction types
var ValidTransactionTypes = map[TransactionType]bool{
	TransactionTypeIncome:  true,
	TransactionTypeExpense: true,
}

// maxFutureDate is how far ahead a transaction may be dated
const maxFutureDate = 24 * time.Hour

type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	AccountID   uuid.UUID       `json:"accountId"`
	CategoryID  uuid.UUID       `json:"categoryId"`
	Type        TransactionType `json:"type"`
	Amount      Money           `json:"amount"`
	Description *string         `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
	IsPaid      bool            `json:"isPaid"`
	Notes       *string         `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// NewTransaction validates the business rules and builds a Transaction.
// The amount must be strictly positive and the date must not be more than
// one day in the future.
func NewTransaction(accountID, categoryID uuid.UUID, txType TransactionType, amount Money, date time.Time, isPaid bool, description, notes *string) (*Transaction, error) {
	if !ValidTransactionTypes[txType] {
		return nil, ErrInvalidTransactionType
	}
	if !amount.Amount.IsPositive() {
		return nil, ErrAmountNotPositive
	}
	if date.After(time.Now().Add(maxFutureDate)) {
		return nil, ErrDateTooFarInFuture
	}

	return &Transaction{
		ID:          uuid.New(),
		AccountID:   accountID,
		CategoryID:  categoryID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		Date:        date,
		IsPaid:      isPaid,
		Notes:       notes,
	}, nil
}

// MarkPaid settles the transaction. Errors if already paid.
func (t *Transaction) MarkPaid() error {
	if t.IsPaid {
		return ErrAlreadyPaid
	}
	t.IsPaid = true
	return nil
}

// MarkPending reverts a settled transaction. Errors if already pending.
func (t *Transaction) MarkPending() error {
	if !t.IsPaid {
		return ErrAlreadyPending
	}
	t.IsPaid = false
	return nil
}

// UpdateAmount replaces the amount, re-validating positivity.
func (t *Transaction) UpdateAmount(amount Money) error {
	if !amount.Amount.IsPositive() {
		return ErrAmountNotPositive
	}
	t.Amount = amount
	return nil
}

// UpdateDate replaces the date, re-validating the future-date rule.
func (t *Transaction) UpdateDate(date time.Time) error {
	if date.After(time.Now().Add(maxFutureDate)) {
		return ErrDateTooFarInFuture
	}
	t.Date = date
	return nil
}

// AffectsBalance reports whether this transaction counts toward the
// owning account's balance. Only paid transactions do.
func (t *Transaction) AffectsBalance() bool {
	return t.IsPaid
}

type TransactionFilters struct {
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	Type       *TransactionType
	StartDate  *time.Time
	EndDate    *time.Time
	IsPaid     *bool
	Page       int32
	PageSize   int32
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PaginatedTransactions struct {
	Data       []*Transaction `json:"data"`
	Page       int32          `json:"page"`
	PageSize   int32          `json:"pageSize"`
	TotalItems int64          `json:"totalItems"`
	TotalPages int32          `json:"totalPages"`
}

// AccountSums holds paid income/expense totals for a single account
type AccountSums struct {
	AccountID uuid.UUID
	Income    decimal.Decimal
	Expenses  decimal.Decimal
}

// MonthlySums holds paid income/expense totals for one calendar month
type MonthlySums struct {
	Year     int
	Month    int
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// CategorySums holds paid expense totals grouped by category
type CategorySums struct {
	CategoryID   uuid.UUID
	CategoryName string
	Icon         *string
	Color        *string
	Total        decimal.Decimal
	Count        int64
}

// TransactionDetail is a transaction joined with its category and account names
type TransactionDetail struct {
	Transaction  *Transaction
	CategoryName string
	CategoryIcon *string
	AccountName  string
}

// TransactionRepository defines the interface for transaction persistence
// operations, including the aggregate queries used by balance, forecast and
// dashboard calculations. Aggregates only consider paid transactions.
type TransactionRepository interface {
	Create(transaction *Transaction) (*Transaction, error)
	GetByID(id uuid.UUID) (*Transaction, error)
	GetByUser(userID uuid.UUID, filters *TransactionFilters) (*PaginatedTransactions, error)
	Update(transaction *Transaction) (*Transaction, error)
	Delete(id uuid.UUID) error

	CountByAccount(accountID uuid.UUID) (int64, error)
	CountByCategory(categoryID uuid.UUID) (int64, error)
	CountUnpaidByUser(userID uuid.UUID) (int64, error)

	SumPaidByAccount(accountID uuid.UUID) (*AccountSums, error)
	SumPaidByUserInRange(userID uuid.UUID, start, end time.Time) (income, expenses decimal.Decimal, err error)
	MonthlySumsByUser(userID uuid.UUID, from time.Time) ([]*MonthlySums, error)
	ExpenseSumsByCategory(userID uuid.UUID, start, end time.Time) ([]*CategorySums, error)
	RecentByUser(userID uuid.UUID, limit int32) ([]*TransactionDetail, error)
}
