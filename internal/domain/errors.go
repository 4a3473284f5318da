package domain

import "errors"

// Domain errors
var (
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUserNotFound        = errors.New("user not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrGoalNotFound        = errors.New("goal not found")

	ErrEmailTaken              = errors.New("email already registered")
	ErrAccountNameTaken        = errors.New("account name already in use")
	ErrCategoryNameTaken       = errors.New("category name already in use for this type")
	ErrAccountHasTransactions  = errors.New("account has transactions and cannot be deleted")
	ErrCategoryHasTransactions = errors.New("category has transactions and cannot be deleted")

	ErrNameRequired           = errors.New("name is required")
	ErrNameTooShort           = errors.New("name must be at least 2 characters long")
	ErrInvalidEmail           = errors.New("invalid email address")
	ErrPasswordTooShort       = errors.New("password must be at least 8 characters long")
	ErrInvalidAccountType     = errors.New("invalid account type")
	ErrInvalidCurrency        = errors.New("invalid currency")
	ErrInvalidCategoryType    = errors.New("invalid category type")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidColor           = errors.New("color must be a hex value like #RGB or #RRGGBB")

	ErrNegativeAmount       = errors.New("amount cannot be negative")
	ErrAmountNotPositive    = errors.New("amount must be greater than zero")
	ErrInvalidCurrencyCode  = errors.New("currency code must be 3 letters")
	ErrCurrencyMismatch     = errors.New("cannot operate on different currencies")
	ErrNegativeBalance      = errors.New("initial balance cannot be negative")
	ErrDateTooFarInFuture   = errors.New("transaction date cannot be more than 1 day in the future")
	ErrAlreadyPaid          = errors.New("transaction is already paid")
	ErrAlreadyPending       = errors.New("transaction is already pending")

	ErrTargetNotPositive    = errors.New("target value must be greater than zero")
	ErrNegativeProgress     = errors.New("current value cannot be negative")
	ErrGoalAlreadyCancelled = errors.New("cannot complete a cancelled goal")
	ErrGoalAlreadyCompleted = errors.New("cannot cancel a completed goal")
	ErrGoalNotCancelled     = errors.New("can only reactivate cancelled goals")
)

// Validation constants
const (
	MinNameLength     = 2
	MinPasswordLength = 8
)
