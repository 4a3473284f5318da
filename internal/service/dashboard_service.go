package service

import (
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	dashboardMonths      = 6
	dashboardCategories  = 10
	dashboardRecentCount = 10
	dashboardGoalsCount  = 5
)

var monthNames = [...]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// DashboardService aggregates the data behind the dashboard endpoint
type DashboardService struct {
	accountRepo     domain.AccountRepository
	goalRepo        domain.GoalRepository
	transactionRepo domain.TransactionRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(accountRepo domain.AccountRepository, goalRepo domain.GoalRepository, transactionRepo domain.TransactionRepository) *DashboardService {
	return &DashboardService{
		accountRepo:     accountRepo,
		goalRepo:        goalRepo,
		transactionRepo: transactionRepo,
	}
}

// GetDashboard assembles the dashboard for the user. The independent
// queries run concurrently.
func (s *DashboardService) GetDashboard(userID uuid.UUID) (*domain.DashboardData, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)
	seriesStart := monthStart.AddDate(0, -(dashboardMonths - 1), 0)

	var (
		monthIncome   decimal.Decimal
		monthExpenses decimal.Decimal
		accounts      []*domain.Account
		accountSums   = make(map[uuid.UUID]*domain.AccountSums)
		activeGoals   []*domain.Goal
		topGoals      []*domain.Goal
		monthlySums   []*domain.MonthlySums
		categorySums  []*domain.CategorySums
		recent        []*domain.TransactionDetail
		pendingCount  int64
	)

	var g errgroup.Group

	g.Go(func() error {
		var err error
		monthIncome, monthExpenses, err = s.transactionRepo.SumPaidByUserInRange(userID, monthStart, monthEnd)
		return err
	})
	g.Go(func() error {
		var err error
		accounts, err = s.accountRepo.GetAllByUser(userID, false)
		if err != nil {
			return err
		}
		for _, account := range accounts {
			sums, err := s.transactionRepo.SumPaidByAccount(account.ID)
			if err != nil {
				return err
			}
			accountSums[account.ID] = sums
		}
		return nil
	})
	g.Go(func() error {
		var err error
		status := domain.GoalStatusInProgress
		activeGoals, err = s.goalRepo.GetAllByUser(userID, &status)
		return err
	})
	g.Go(func() error {
		var err error
		topGoals, err = s.goalRepo.GetActiveByUser(userID, dashboardGoalsCount)
		return err
	})
	g.Go(func() error {
		var err error
		monthlySums, err = s.transactionRepo.MonthlySumsByUser(userID, seriesStart)
		return err
	})
	g.Go(func() error {
		var err error
		categorySums, err = s.transactionRepo.ExpenseSumsByCategory(userID, monthStart, monthEnd)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.transactionRepo.RecentByUser(userID, dashboardRecentCount)
		return err
	})
	g.Go(func() error {
		var err error
		pendingCount, err = s.transactionRepo.CountUnpaidByUser(userID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	totalAccountsBalance := decimal.Zero
	for _, account := range accounts {
		balance := account.InitialBalance
		if sums, ok := accountSums[account.ID]; ok {
			balance = balance.Add(sums.Income).Sub(sums.Expenses)
		}
		totalAccountsBalance = totalAccountsBalance.Add(balance)
	}

	summary := &domain.DashboardSummary{
		TotalIncome:          monthIncome,
		TotalExpenses:        monthExpenses,
		Balance:              monthIncome.Sub(monthExpenses),
		TotalAccountsBalance: totalAccountsBalance,
		ActiveAccounts:       len(accounts),
		ActiveGoals:          len(activeGoals),
		PendingTransactions:  pendingCount,
	}

	return &domain.DashboardData{
		Summary:            summary,
		MonthlyData:        buildMonthlySeries(seriesStart, now, monthlySums),
		ExpensesByCategory: buildCategoryBreakdown(categorySums),
		RecentTransactions: buildRecentTransactions(recent),
		ActiveGoals:        buildGoalProgress(topGoals),
	}, nil
}

// buildMonthlySeries fills the trailing window month by month so months
// without transactions still appear with zero values.
func buildMonthlySeries(start, end time.Time, sums []*domain.MonthlySums) []*domain.MonthlyDatum {
	type yearMonth struct {
		year  int
		month int
	}
	byMonth := make(map[yearMonth]*domain.MonthlySums, len(sums))
	for _, s := range sums {
		byMonth[yearMonth{s.Year, s.Month}] = s
	}

	series := make([]*domain.MonthlyDatum, 0, dashboardMonths)
	for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 1, 0) {
		datum := &domain.MonthlyDatum{
			Month:     int(cursor.Month()),
			Year:      cursor.Year(),
			MonthName: monthNames[cursor.Month()-1],
			Income:    decimal.Zero,
			Expenses:  decimal.Zero,
			Balance:   decimal.Zero,
		}
		if s, ok := byMonth[yearMonth{cursor.Year(), int(cursor.Month())}]; ok {
			datum.Income = s.Income
			datum.Expenses = s.Expenses
			datum.Balance = s.Income.Sub(s.Expenses)
		}
		series = append(series, datum)
	}
	return series
}

// buildCategoryBreakdown keeps the top categories by spend and attaches
// each one's share of the total.
func buildCategoryBreakdown(sums []*domain.CategorySums) []*domain.CategoryBreakdown {
	total := decimal.Zero
	for _, s := range sums {
		total = total.Add(s.Total)
	}

	if len(sums) > dashboardCategories {
		sums = sums[:dashboardCategories]
	}

	breakdown := make([]*domain.CategoryBreakdown, 0, len(sums))
	for _, s := range sums {
		pct := decimal.Zero
		if total.IsPositive() {
			pct = s.Total.Div(total).Mul(decimal.NewFromInt(100)).Round(2)
		}
		breakdown = append(breakdown, &domain.CategoryBreakdown{
			CategoryID:       s.CategoryID,
			CategoryName:     s.CategoryName,
			Icon:             s.Icon,
			Color:            s.Color,
			Total:            s.Total,
			Percentage:       pct,
			TransactionCount: s.Count,
		})
	}
	return breakdown
}

func buildRecentTransactions(details []*domain.TransactionDetail) []*domain.RecentTransaction {
	recent := make([]*domain.RecentTransaction, 0, len(details))
	for _, d := range details {
		recent = append(recent, &domain.RecentTransaction{
			ID:           d.Transaction.ID,
			Type:         d.Transaction.Type,
			Amount:       d.Transaction.Amount.Amount,
			Currency:     d.Transaction.Amount.Currency,
			Description:  d.Transaction.Description,
			Date:         d.Transaction.Date,
			IsPaid:       d.Transaction.IsPaid,
			CategoryName: d.CategoryName,
			CategoryIcon: d.CategoryIcon,
			AccountName:  d.AccountName,
		})
	}
	return recent
}

func buildGoalProgress(goals []*domain.Goal) []*domain.GoalProgress {
	progress := make([]*domain.GoalProgress, 0, len(goals))
	for _, goal := range goals {
		progress = append(progress, &domain.GoalProgress{
			ID:                 goal.ID,
			Name:               goal.Name,
			TargetValue:        goal.TargetValue,
			CurrentValue:       goal.CurrentValue,
			ProgressPercentage: goal.ProgressPercentage().Round(2),
			TargetDate:         goal.TargetDate,
		})
	}
	return progress
}
