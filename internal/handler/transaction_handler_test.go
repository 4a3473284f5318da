package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/service"
	"github.com/centavo/centavo-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type transactionHandlerFixture struct {
	handler  *TransactionHandler
	userID   uuid.UUID
	account  *domain.Account
	category *domain.Category
}

func newTransactionHandlerFixture(t *testing.T) *transactionHandlerFixture {
	t.Helper()
	accountRepo := testutil.NewMockAccountRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	txRepo := testutil.NewMockTransactionRepository(accountRepo, categoryRepo)
	svc := service.NewTransactionService(txRepo, accountRepo, categoryRepo)

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

	return &transactionHandlerFixture{
		handler:  NewTransactionHandler(svc),
		userID:   userID,
		account:  account,
		category: category,
	}
}

func (f *transactionHandlerFixture) createBody(amount string) string {
	return `{"accountId":"` + f.account.ID.String() + `","categoryId":"` + f.category.ID.String() +
		`","type":"EXPENSE","amount":"` + amount + `"}`
}

func TestCreateTransaction_Created(t *testing.T) {
	e := echo.New()
	f := newTransactionHandlerFixture(t)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/transactions", f.createBody("99.90"))
	setupAuthContext(c, f.userID, "ana@example.com", "Ana")

	if err := f.handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var response TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Amount != "99.90" {
		t.Errorf("Expected amount '99.90', got %s", response.Amount)
	}
	if response.Currency != "BRL" {
		t.Errorf("Expected currency 'BRL' from account, got %s", response.Currency)
	}
	if !response.IsPaid {
		t.Error("Expected transaction to default to paid")
	}
}

func TestCreateTransaction_InvalidAmount(t *testing.T) {
	e := echo.New()
	f := newTransactionHandlerFixture(t)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/transactions", f.createBody("abc"))
	setupAuthContext(c, f.userID, "ana@example.com", "Ana")

	if err := f.handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateTransaction_UnknownAccount(t *testing.T) {
	e := echo.New()
	f := newTransactionHandlerFixture(t)

	body := `{"accountId":"` + uuid.New().String() + `","categoryId":"` + f.category.ID.String() +
		`","type":"EXPENSE","amount":"10"}`
	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/transactions", body)
	setupAuthContext(c, f.userID, "ana@example.com", "Ana")

	if err := f.handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestCreateTransaction_ForeignAccount(t *testing.T) {
	e := echo.New()
	f := newTransactionHandlerFixture(t)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/transactions", f.createBody("10"))
	setupAuthContext(c, uuid.New(), "other@example.com", "Other")

	if err := f.handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", rec.Code)
	}
}

func TestGetTransactions_Paginated(t *testing.T) {
	e := echo.New()
	f := newTransactionHandlerFixture(t)

	for i := 0; i < 3; i++ {
		c, _ := newJSONContext(e, http.MethodPost, "/api/v1/transactions", f.createBody("10"))
		setupAuthContext(c, f.userID, "ana@example.com", "Ana")
		if err := f.handler.CreateTransaction(c); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions?page=1&pageSize=2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, f.userID, "ana@example.com", "Ana")

	if err := f.handler.GetTransactions(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var page PaginatedTransactionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(page.Data) != 2 {
		t.Errorf("Expected 2 rows, got %d", len(page.Data))
	}
	if page.TotalItems != 3 {
		t.Errorf("Expected 3 total items, got %d", page.TotalItems)
	}
	if page.TotalPages != 2 {
		t.Errorf("Expected 2 total pages, got %d", page.TotalPages)
	}
}

func TestGetTransactions_InvalidFilter(t *testing.T) {
	e := echo.New()
	f := newTransactionHandlerFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions?accountId=not-a-uuid", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, f.userID, "ana@example.com", "Ana")

	if err := f.handler.GetTransactions(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestUpdateTransaction_MarkPending(t *testing.T) {
	e := echo.New()
	f := newTransactionHandlerFixture(t)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/transactions", f.createBody("10"))
	setupAuthContext(c, f.userID, "ana@example.com", "Ana")
	if err := f.handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var created TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	c, rec = newJSONContext(e, http.MethodPatch, "/", `{"isPaid":false}`)
	c.SetPath("/api/v1/transactions/:id")
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	setupAuthContext(c, f.userID, "ana@example.com", "Ana")

	if err := f.handler.UpdateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var updated TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if updated.IsPaid {
		t.Error("Expected transaction to be pending")
	}
}

func TestDeleteTransaction_NoContent(t *testing.T) {
	e := echo.New()
	f := newTransactionHandlerFixture(t)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/transactions", f.createBody("10"))
	setupAuthContext(c, f.userID, "ana@example.com", "Ana")
	if err := f.handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var created TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetPath("/api/v1/transactions/:id")
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	setupAuthContext(c, f.userID, "ana@example.com", "Ana")

	if err := f.handler.DeleteTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
}
