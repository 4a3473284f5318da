package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardSummary holds the headline numbers for the current month
type DashboardSummary struct {
	TotalIncome          decimal.Decimal `json:"totalIncome"`
	TotalExpenses        decimal.Decimal `json:"totalExpenses"`
	Balance              decimal.Decimal `json:"balance"`
	TotalAccountsBalance decimal.Decimal `json:"totalAccountsBalance"`
	ActiveAccounts       int             `json:"activeAccounts"`
	ActiveGoals          int             `json:"activeGoals"`
	PendingTransactions  int64           `json:"pendingTransactions"`
}

// MonthlyDatum is one point of the 6-month income/expense series
type MonthlyDatum struct {
	Month     int             `json:"month"`
	Year      int             `json:"year"`
	MonthName string          `json:"monthName"`
	Income    decimal.Decimal `json:"income"`
	Expenses  decimal.Decimal `json:"expenses"`
	Balance   decimal.Decimal `json:"balance"`
}

// CategoryBreakdown is one slice of the expenses-by-category chart
type CategoryBreakdown struct {
	CategoryID       uuid.UUID       `json:"categoryId"`
	CategoryName     string          `json:"categoryName"`
	Icon             *string         `json:"icon,omitempty"`
	Color            *string         `json:"color,omitempty"`
	Total            decimal.Decimal `json:"total"`
	Percentage       decimal.Decimal `json:"percentage"`
	TransactionCount int64           `json:"transactionCount"`
}

// RecentTransaction is a transaction row for the dashboard widget
type RecentTransaction struct {
	ID           uuid.UUID       `json:"id"`
	Type         TransactionType `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Description  *string         `json:"description,omitempty"`
	Date         time.Time       `json:"date"`
	IsPaid       bool            `json:"isPaid"`
	CategoryName string          `json:"categoryName"`
	CategoryIcon *string         `json:"categoryIcon,omitempty"`
	AccountName  string          `json:"accountName"`
}

// GoalProgress is a goal row for the dashboard widget
type GoalProgress struct {
	ID                 uuid.UUID       `json:"id"`
	Name               string          `json:"name"`
	TargetValue        decimal.Decimal `json:"targetValue"`
	CurrentValue       decimal.Decimal `json:"currentValue"`
	ProgressPercentage decimal.Decimal `json:"progressPercentage"`
	TargetDate         *time.Time      `json:"targetDate,omitempty"`
}

// DashboardData is the full dashboard response
type DashboardData struct {
	Summary            *DashboardSummary    `json:"summary"`
	MonthlyData        []*MonthlyDatum      `json:"monthlyData"`
	ExpensesByCategory []*CategoryBreakdown `json:"expensesByCategory"`
	RecentTransactions []*RecentTransaction `json:"recentTransactions"`
	ActiveGoals        []*GoalProgress      `json:"activeGoals"`
}
