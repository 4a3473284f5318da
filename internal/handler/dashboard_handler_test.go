package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/service"
	"github.com/centavo/centavo-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func TestGetDashboard_OK(t *testing.T) {
	e := echo.New()
	accountRepo := testutil.NewMockAccountRepository()
	goalRepo := testutil.NewMockGoalRepository()
	txRepo := testutil.NewMockTransactionRepository(accountRepo, nil)
	handler := NewDashboardHandler(service.NewDashboardService(accountRepo, goalRepo, txRepo))

	userID := uuid.New()
	account, err := domain.NewAccount(userID, "Nubank", domain.AccountTypeChecking, decimal.NewFromInt(100), domain.CurrencyBRL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	accountRepo.AddAccount(account)

	money, err := domain.NewMoney(decimal.NewFromInt(3000), "BRL")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	tx, err := domain.NewTransaction(account.ID, uuid.New(), domain.TransactionTypeIncome, money, time.Now(), true, nil, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	txRepo.AddTransaction(tx)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, userID, "ana@example.com", "Ana")

	if err := handler.GetDashboard(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var data struct {
		Summary struct {
			TotalIncome          string `json:"totalIncome"`
			TotalAccountsBalance string `json:"totalAccountsBalance"`
			ActiveAccounts       int    `json:"activeAccounts"`
		} `json:"summary"`
		MonthlyData []json.RawMessage `json:"monthlyData"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &data); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if data.Summary.TotalIncome != "3000" {
		t.Errorf("Expected month income '3000', got %s", data.Summary.TotalIncome)
	}
	if data.Summary.TotalAccountsBalance != "3100" {
		t.Errorf("Expected accounts balance '3100', got %s", data.Summary.TotalAccountsBalance)
	}
	if data.Summary.ActiveAccounts != 1 {
		t.Errorf("Expected 1 active account, got %d", data.Summary.ActiveAccounts)
	}
	if len(data.MonthlyData) != 6 {
		t.Errorf("Expected 6 monthly entries, got %d", len(data.MonthlyData))
	}
}

func TestGetDashboard_MissingAuth(t *testing.T) {
	e := echo.New()
	accountRepo := testutil.NewMockAccountRepository()
	goalRepo := testutil.NewMockGoalRepository()
	txRepo := testutil.NewMockTransactionRepository(accountRepo, nil)
	handler := NewDashboardHandler(service.NewDashboardService(accountRepo, goalRepo, txRepo))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetDashboard(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}
