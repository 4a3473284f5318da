package service

import (
	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountService handles account business logic
type AccountService struct {
	accountRepo     domain.AccountRepository
	transactionRepo domain.TransactionRepository
}

// NewAccountService creates a new AccountService
func NewAccountService(accountRepo domain.AccountRepository, transactionRepo domain.TransactionRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo, transactionRepo: transactionRepo}
}

// CreateAccountInput holds the input for creating an account
type CreateAccountInput struct {
	Name           string
	Type           domain.AccountType
	InitialBalance decimal.Decimal
	Currency       domain.Currency
}

// UpdateAccountInput holds the input for updating an account.
// Nil fields are left unchanged.
type UpdateAccountInput struct {
	Name           *string
	Type           *domain.AccountType
	InitialBalance *decimal.Decimal
	IsActive       *bool
}

// AccountBalance is the computed balance of an account
type AccountBalance struct {
	AccountID      uuid.UUID       `json:"accountId"`
	Currency       domain.Currency `json:"currency"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalExpenses  decimal.Decimal `json:"totalExpenses"`
	Balance        decimal.Decimal `json:"balance"`
}

// Create creates a new account for the user. The account name must be
// unique within the user's accounts.
func (s *AccountService) Create(userID uuid.UUID, input CreateAccountInput) (*domain.Account, error) {
	account, err := domain.NewAccount(userID, input.Name, input.Type, input.InitialBalance, input.Currency)
	if err != nil {
		return nil, err
	}

	taken, err := s.accountRepo.ExistsByUserAndName(userID, account.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrAccountNameTaken
	}

	return s.accountRepo.Create(account)
}

// Get returns an account owned by the user
func (s *AccountService) Get(userID, accountID uuid.UUID) (*domain.Account, error) {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return account, nil
}

// List returns the user's accounts, active only unless includeInactive is set
func (s *AccountService) List(userID uuid.UUID, includeInactive bool) ([]*domain.Account, error) {
	return s.accountRepo.GetAllByUser(userID, includeInactive)
}

// Update applies a partial update to an account owned by the user
func (s *AccountService) Update(userID, accountID uuid.UUID, input UpdateAccountInput) (*domain.Account, error) {
	account, err := s.Get(userID, accountID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != account.Name {
		if err := account.Rename(*input.Name); err != nil {
			return nil, err
		}
		taken, err := s.accountRepo.ExistsByUserAndName(userID, account.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrAccountNameTaken
		}
	}
	if input.Type != nil {
		if err := account.ChangeType(*input.Type); err != nil {
			return nil, err
		}
	}
	if input.InitialBalance != nil {
		if err := account.SetInitialBalance(*input.InitialBalance); err != nil {
			return nil, err
		}
	}
	if input.IsActive != nil {
		if *input.IsActive {
			account.Activate()
		} else {
			account.Deactivate()
		}
	}

	return s.accountRepo.Update(account)
}

// Delete removes an account owned by the user. Accounts with transactions
// cannot be deleted.
func (s *AccountService) Delete(userID, accountID uuid.UUID) error {
	if _, err := s.Get(userID, accountID); err != nil {
		return err
	}

	count, err := s.transactionRepo.CountByAccount(accountID)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrAccountHasTransactions
	}

	return s.accountRepo.Delete(accountID)
}

// GetBalance computes the current balance of an account as the initial
// balance plus paid income minus paid expenses.
func (s *AccountService) GetBalance(userID, accountID uuid.UUID) (*AccountBalance, error) {
	account, err := s.Get(userID, accountID)
	if err != nil {
		return nil, err
	}

	sums, err := s.transactionRepo.SumPaidByAccount(accountID)
	if err != nil {
		return nil, err
	}

	return &AccountBalance{
		AccountID:      account.ID,
		Currency:       account.Currency,
		InitialBalance: account.InitialBalance,
		TotalIncome:    sums.Income,
		TotalExpenses:  sums.Expenses,
		Balance:        account.InitialBalance.Add(sums.Income).Sub(sums.Expenses),
	}, nil
}
