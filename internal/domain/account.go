package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AccountType string
type Currency string

const (
	AccountTypeChecking   AccountType = "CHECKING"
	AccountTypeSavings    AccountType = "SAVINGS"
	AccountTypeCash       AccountType = "CASH"
	AccountTypeInvestment AccountType = "INVESTMENT"
)

const (
	CurrencyBRL Currency = "BRL"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// DefaultCurrency is used when an account is created without one
const DefaultCurrency = CurrencyBRL

// ValidAccountTypes is the set of supported account types
var ValidAccountTypes = map[AccountType]bool{
	AccountTypeChecking:   true,
	AccountTypeSavings:    true,
	AccountTypeCash:       true,
	AccountTypeInvestment: true,
}

// ValidCurrencies is the set of supported account currencies
var ValidCurrencies = map[Currency]bool{
	CurrencyBRL: true,
	CurrencyUSD: true,
	CurrencyEUR: true,
}

type Account struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"userId"`
	Name           string          `json:"name"`
	Type           AccountType     `json:"type"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	Currency       Currency        `json:"currency"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// NewAccount validates the fields and builds an Account owned by userID.
func NewAccount(userID uuid.UUID, name string, accountType AccountType, initialBalance decimal.Decimal, currency Currency) (*Account, error) {
	name = strings.TrimSpace(name)
	if len(name) < MinNameLength {
		return nil, ErrNameTooShort
	}
	if !ValidAccountTypes[accountType] {
		return nil, ErrInvalidAccountType
	}
	if initialBalance.IsNegative() {
		return nil, ErrNegativeBalance
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	if !ValidCurrencies[currency] {
		return nil, ErrInvalidCurrency
	}

	return &Account{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           name,
		Type:           accountType,
		InitialBalance: initialBalance,
		Currency:       currency,
		IsActive:       true,
	}, nil
}

// Rename changes the account name, re-validating the length rule.
func (a *Account) Rename(name string) error {
	name = strings.TrimSpace(name)
	if len(name) < MinNameLength {
		return ErrNameTooShort
	}
	a.Name = name
	return nil
}

// ChangeType switches the account to a different type.
func (a *Account) ChangeType(accountType AccountType) error {
	if !ValidAccountTypes[accountType] {
		return ErrInvalidAccountType
	}
	a.Type = accountType
	return nil
}

// SetInitialBalance replaces the initial balance.
func (a *Account) SetInitialBalance(balance decimal.Decimal) error {
	if balance.IsNegative() {
		return ErrNegativeBalance
	}
	a.InitialBalance = balance
	return nil
}

func (a *Account) Activate()   { a.IsActive = true }
func (a *Account) Deactivate() { a.IsActive = false }

// AccountRepository defines the interface for account persistence operations
type AccountRepository interface {
	Create(account *Account) (*Account, error)
	GetByID(id uuid.UUID) (*Account, error)
	GetAllByUser(userID uuid.UUID, includeInactive bool) ([]*Account, error)
	ExistsByUserAndName(userID uuid.UUID, name string) (bool, error)
	Update(account *Account) (*Account, error)
	Delete(id uuid.UUID) error
}
