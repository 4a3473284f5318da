package service

import (
	"testing"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type transactionFixture struct {
	svc      *TransactionService
	userID   uuid.UUID
	account  *domain.Account
	category *domain.Category
	txRepo   *testutil.MockTransactionRepository
}

func newTransactionFixture(t *testing.T) *transactionFixture {
	t.Helper()
	accountRepo := testutil.NewMockAccountRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	txRepo := testutil.NewMockTransactionRepository(accountRepo, categoryRepo)
	svc := NewTransactionService(txRepo, accountRepo, categoryRepo)

	userID := uuid.New()
	account, err := domain.NewAccount(userID, "Nubank", domain.AccountTypeChecking, decimal.Zero, domain.CurrencyBRL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	accountRepo.AddAccount(account)

	category, err := domain.NewCategory(userID, "Groceries", domain.CategoryTypeExpense, nil, nil, false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	categoryRepo.AddCategory(category)

	return &transactionFixture{svc: svc, userID: userID, account: account, category: category, txRepo: txRepo}
}

func TestCreateTransaction_DefaultsToAccountCurrencyAndPaid(t *testing.T) {
	f := newTransactionFixture(t)

	tx, err := f.svc.Create(f.userID, CreateTransactionInput{
		AccountID:  f.account.ID,
		CategoryID: f.category.ID,
		Type:       domain.TransactionTypeExpense,
		Amount:     decimal.NewFromFloat(99.90),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if tx.Amount.Currency != "BRL" {
		t.Errorf("Expected currency BRL from account, got %s", tx.Amount.Currency)
	}
	if !tx.IsPaid {
		t.Error("Expected transaction to default to paid")
	}
	if tx.Date.IsZero() {
		t.Error("Expected date to default to now")
	}
}

func TestCreateTransaction_AccountOfAnotherUser(t *testing.T) {
	f := newTransactionFixture(t)

	_, err := f.svc.Create(uuid.New(), CreateTransactionInput{
		AccountID:  f.account.ID,
		CategoryID: f.category.ID,
		Type:       domain.TransactionTypeExpense,
		Amount:     decimal.NewFromInt(10),
	})
	if err != domain.ErrForbidden {
		t.Errorf("Expected ErrForbidden, got %v", err)
	}
}

func TestCreateTransaction_UnknownCategory(t *testing.T) {
	f := newTransactionFixture(t)

	_, err := f.svc.Create(f.userID, CreateTransactionInput{
		AccountID:  f.account.ID,
		CategoryID: uuid.New(),
		Type:       domain.TransactionTypeExpense,
		Amount:     decimal.NewFromInt(10),
	})
	if err != domain.ErrCategoryNotFound {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCreateTransaction_ZeroAmount(t *testing.T) {
	f := newTransactionFixture(t)

	_, err := f.svc.Create(f.userID, CreateTransactionInput{
		AccountID:  f.account.ID,
		CategoryID: f.category.ID,
		Type:       domain.TransactionTypeExpense,
		Amount:     decimal.Zero,
	})
	if err != domain.ErrAmountNotPositive {
		t.Errorf("Expected ErrAmountNotPositive, got %v", err)
	}
}

func TestListTransactions_PaginationDefaults(t *testing.T) {
	f := newTransactionFixture(t)

	for i := 0; i < 25; i++ {
		_, err := f.svc.Create(f.userID, CreateTransactionInput{
			AccountID:  f.account.ID,
			CategoryID: f.category.ID,
			Type:       domain.TransactionTypeExpense,
			Amount:     decimal.NewFromInt(int64(i + 1)),
			Date:       time.Now().Add(-time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	page, err := f.svc.List(f.userID, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if page.Page != 1 {
		t.Errorf("Expected page 1, got %d", page.Page)
	}
	if page.PageSize != domain.DefaultPageSize {
		t.Errorf("Expected page size %d, got %d", domain.DefaultPageSize, page.PageSize)
	}
	if len(page.Data) != domain.DefaultPageSize {
		t.Errorf("Expected %d rows, got %d", domain.DefaultPageSize, len(page.Data))
	}
	if page.TotalItems != 25 {
		t.Errorf("Expected 25 total items, got %d", page.TotalItems)
	}
	if page.TotalPages != 2 {
		t.Errorf("Expected 2 total pages, got %d", page.TotalPages)
	}
}

func TestListTransactions_PageSizeCapped(t *testing.T) {
	f := newTransactionFixture(t)

	page, err := f.svc.List(f.userID, &domain.TransactionFilters{Page: 1, PageSize: 500})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if page.PageSize != domain.MaxPageSize {
		t.Errorf("Expected page size capped at %d, got %d", domain.MaxPageSize, page.PageSize)
	}
}

func TestUpdateTransaction_TogglePaid(t *testing.T) {
	f := newTransactionFixture(t)

	tx, err := f.svc.Create(f.userID, CreateTransactionInput{
		AccountID:  f.account.ID,
		CategoryID: f.category.ID,
		Type:       domain.TransactionTypeExpense,
		Amount:     decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	pending := false
	updated, err := f.svc.Update(f.userID, tx.ID, UpdateTransactionInput{IsPaid: &pending})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.IsPaid {
		t.Error("Expected transaction to be pending")
	}
}

func TestUpdateTransaction_KeepsCurrency(t *testing.T) {
	f := newTransactionFixture(t)

	tx, err := f.svc.Create(f.userID, CreateTransactionInput{
		AccountID:  f.account.ID,
		CategoryID: f.category.ID,
		Type:       domain.TransactionTypeExpense,
		Amount:     decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	amount := decimal.NewFromFloat(25.50)
	updated, err := f.svc.Update(f.userID, tx.ID, UpdateTransactionInput{Amount: &amount})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.Amount.Currency != "BRL" {
		t.Errorf("Expected currency BRL, got %s", updated.Amount.Currency)
	}
	if !updated.Amount.Amount.Equal(amount) {
		t.Errorf("Expected amount 25.50, got %s", updated.Amount.Amount.String())
	}
}

func TestDeleteTransaction_Forbidden(t *testing.T) {
	f := newTransactionFixture(t)

	tx, err := f.svc.Create(f.userID, CreateTransactionInput{
		AccountID:  f.account.ID,
		CategoryID: f.category.ID,
		Type:       domain.TransactionTypeExpense,
		Amount:     decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := f.svc.Delete(uuid.New(), tx.ID); err != domain.ErrForbidden {
		t.Errorf("Expected ErrForbidden, got %v", err)
	}
}
