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

type goalHandlerFixture struct {
	handler     *GoalHandler
	userID      uuid.UUID
	accountRepo *testutil.MockAccountRepository
	txRepo      *testutil.MockTransactionRepository
}

func newGoalHandlerFixture() *goalHandlerFixture {
	goalRepo := testutil.NewMockGoalRepository()
	accountRepo := testutil.NewMockAccountRepository()
	txRepo := testutil.NewMockTransactionRepository(accountRepo, nil)
	svc := service.NewGoalService(goalRepo, accountRepo, txRepo)
	return &goalHandlerFixture{
		handler:     NewGoalHandler(svc),
		userID:      uuid.New(),
		accountRepo: accountRepo,
		txRepo:      txRepo,
	}
}

func (f *goalHandlerFixture) createGoal(t *testing.T, e *echo.Echo, body string) GoalResponse {
	t.Helper()
	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/goals", body)
	setupAuthContext(c, f.userID, "ana@example.com", "Ana")
	if err := f.handler.CreateGoal(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var response GoalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	return response
}

func (f *goalHandlerFixture) goalContext(e *echo.Echo, method, path, goalID, body string) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := newJSONContext(e, method, "/", body)
	c.SetPath(path)
	c.SetParamNames("id")
	c.SetParamValues(goalID)
	setupAuthContext(c, f.userID, "ana@example.com", "Ana")
	return c, rec
}

func TestCreateGoal_Created(t *testing.T) {
	e := echo.New()
	f := newGoalHandlerFixture()

	response := f.createGoal(t, e, `{"name":"Emergency fund","targetValue":"10000","currentValue":"2500"}`)

	if response.TargetValue != "10000.00" {
		t.Errorf("Expected target '10000.00', got %s", response.TargetValue)
	}
	if response.ProgressPercentage != "25.00" {
		t.Errorf("Expected progress '25.00', got %s", response.ProgressPercentage)
	}
	if response.RemainingAmount != "7500.00" {
		t.Errorf("Expected remaining '7500.00', got %s", response.RemainingAmount)
	}
	if response.Status != "IN_PROGRESS" {
		t.Errorf("Expected status IN_PROGRESS, got %s", response.Status)
	}
}

func TestCreateGoal_InvalidTargetValue(t *testing.T) {
	e := echo.New()
	f := newGoalHandlerFixture()

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/goals",
		`{"name":"Trip","targetValue":"not-a-number"}`)
	setupAuthContext(c, f.userID, "ana@example.com", "Ana")

	if err := f.handler.CreateGoal(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestUpdateProgress_Amount(t *testing.T) {
	e := echo.New()
	f := newGoalHandlerFixture()
	goal := f.createGoal(t, e, `{"name":"Trip","targetValue":"4000","currentValue":"1000"}`)

	c, rec := f.goalContext(e, http.MethodPatch, "/api/v1/goals/:id/progress", goal.ID, `{"amount":"500"}`)
	if err := f.handler.UpdateProgress(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var updated GoalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if updated.CurrentValue != "1500.00" {
		t.Errorf("Expected current '1500.00', got %s", updated.CurrentValue)
	}
}

func TestUpdateProgress_AutoCompletes(t *testing.T) {
	e := echo.New()
	f := newGoalHandlerFixture()
	goal := f.createGoal(t, e, `{"name":"Trip","targetValue":"4000"}`)

	c, rec := f.goalContext(e, http.MethodPatch, "/api/v1/goals/:id/progress", goal.ID, `{"currentValue":"4000"}`)
	if err := f.handler.UpdateProgress(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var updated GoalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if updated.Status != "COMPLETED" {
		t.Errorf("Expected status COMPLETED, got %s", updated.Status)
	}
}

func TestUpdateProgress_MissingFields(t *testing.T) {
	e := echo.New()
	f := newGoalHandlerFixture()
	goal := f.createGoal(t, e, `{"name":"Trip","targetValue":"4000"}`)

	c, rec := f.goalContext(e, http.MethodPatch, "/api/v1/goals/:id/progress", goal.ID, `{}`)
	if err := f.handler.UpdateProgress(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCompleteGoal_AfterCancelForbidden(t *testing.T) {
	e := echo.New()
	f := newGoalHandlerFixture()
	goal := f.createGoal(t, e, `{"name":"Trip","targetValue":"4000"}`)

	c, rec := f.goalContext(e, http.MethodPost, "/api/v1/goals/:id/cancel", goal.ID, "")
	if err := f.handler.CancelGoal(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	c, rec = f.goalContext(e, http.MethodPost, "/api/v1/goals/:id/complete", goal.ID, "")
	if err := f.handler.CompleteGoal(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", rec.Code)
	}

	c, rec = f.goalContext(e, http.MethodPost, "/api/v1/goals/:id/reactivate", goal.ID, "")
	if err := f.handler.ReactivateGoal(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
}

func TestGetGoal_Forbidden(t *testing.T) {
	e := echo.New()
	f := newGoalHandlerFixture()
	goal := f.createGoal(t, e, `{"name":"Trip","targetValue":"4000"}`)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/goals/:id")
	c.SetParamNames("id")
	c.SetParamValues(goal.ID)
	setupAuthContext(c, uuid.New(), "other@example.com", "Other")

	if err := f.handler.GetGoal(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", rec.Code)
	}
}

func TestGetForecast(t *testing.T) {
	e := echo.New()
	f := newGoalHandlerFixture()

	account, err := domain.NewAccount(f.userID, "Nubank", domain.AccountTypeChecking, decimal.Zero, domain.CurrencyBRL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	f.accountRepo.AddAccount(account)

	money, err := domain.NewMoney(decimal.NewFromInt(12000), "BRL")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	tx, err := domain.NewTransaction(account.ID, uuid.New(), domain.TransactionTypeIncome, money, time.Now(), true, nil, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	f.txRepo.AddTransaction(tx)

	goal := f.createGoal(t, e, `{"name":"Trip","targetValue":"4000"}`)

	c, rec := f.goalContext(e, http.MethodGet, "/api/v1/goals/:id/forecast", goal.ID, "")
	if err := f.handler.GetForecast(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var forecast ForecastResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &forecast); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if !forecast.Achievable {
		t.Error("Expected goal to be achievable")
	}
	// 12000 over 6 months gives a 2000 surplus against 4000 remaining
	if forecast.MonthlySurplus != "2000.00" {
		t.Errorf("Expected surplus '2000.00', got %s", forecast.MonthlySurplus)
	}
	if forecast.MonthsNeeded == nil || *forecast.MonthsNeeded != 2 {
		t.Fatalf("Expected 2 months needed, got %v", forecast.MonthsNeeded)
	}
	if forecast.EstimatedDate == nil {
		t.Error("Expected an estimated date")
	}
}
