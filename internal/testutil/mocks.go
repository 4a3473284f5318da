package testutil

import (
	"sort"
	"strings"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	ByID    map[uuid.UUID]*domain.User
	ByEmail map[string]*domain.User
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		ByID:    make(map[uuid.UUID]*domain.User),
		ByEmail: make(map[string]*domain.User),
	}
}

// Create creates a new user
func (m *MockUserRepository) Create(user *domain.User) (*domain.User, error) {
	if _, ok := m.ByEmail[user.Email]; ok {
		return nil, domain.ErrEmailTaken
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.ByID[user.ID] = user
	m.ByEmail[user.Email] = user
	return user, nil
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByEmail retrieves a user by email
func (m *MockUserRepository) GetByEmail(email string) (*domain.User, error) {
	if user, ok := m.ByEmail[strings.ToLower(email)]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.ByID[user.ID] = user
	m.ByEmail[user.Email] = user
}

// MockAccountRepository is a mock implementation of domain.AccountRepository
type MockAccountRepository struct {
	Accounts map[uuid.UUID]*domain.Account
	UpdateFn func(account *domain.Account) (*domain.Account, error)
}

// NewMockAccountRepository creates a new MockAccountRepository
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{Accounts: make(map[uuid.UUID]*domain.Account)}
}

// Create creates a new account
func (m *MockAccountRepository) Create(account *domain.Account) (*domain.Account, error) {
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	m.Accounts[account.ID] = account
	return account, nil
}

// GetByID retrieves an account by ID
func (m *MockAccountRepository) GetByID(id uuid.UUID) (*domain.Account, error) {
	if account, ok := m.Accounts[id]; ok {
		return account, nil
	}
	return nil, domain.ErrAccountNotFound
}

// GetAllByUser retrieves a user's accounts
func (m *MockAccountRepository) GetAllByUser(userID uuid.UUID, includeInactive bool) ([]*domain.Account, error) {
	var accounts []*domain.Account
	for _, account := range m.Accounts {
		if account.UserID != userID {
			continue
		}
		if !includeInactive && !account.IsActive {
			continue
		}
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Name < accounts[j].Name })
	return accounts, nil
}

// ExistsByUserAndName reports whether the user has an account with this name
func (m *MockAccountRepository) ExistsByUserAndName(userID uuid.UUID, name string) (bool, error) {
	for _, account := range m.Accounts {
		if account.UserID == userID && account.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// Update updates an existing account
func (m *MockAccountRepository) Update(account *domain.Account) (*domain.Account, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(account)
	}
	if _, ok := m.Accounts[account.ID]; !ok {
		return nil, domain.ErrAccountNotFound
	}
	account.UpdatedAt = time.Now()
	m.Accounts[account.ID] = account
	return account, nil
}

// Delete removes an account
func (m *MockAccountRepository) Delete(id uuid.UUID) error {
	if _, ok := m.Accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(m.Accounts, id)
	return nil
}

// AddAccount adds an account to the mock repository (helper for tests)
func (m *MockAccountRepository) AddAccount(account *domain.Account) {
	m.Accounts[account.ID] = account
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[uuid.UUID]*domain.Category
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{Categories: make(map[uuid.UUID]*domain.Category)}
}

// Create creates a new category
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	m.Categories[category.ID] = category
	return category, nil
}

// GetByID retrieves a category by ID
func (m *MockCategoryRepository) GetByID(id uuid.UUID) (*domain.Category, error) {
	if category, ok := m.Categories[id]; ok {
		return category, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// GetAllByUser retrieves a user's categories, optionally filtered by type
func (m *MockCategoryRepository) GetAllByUser(userID uuid.UUID, categoryType *domain.CategoryType) ([]*domain.Category, error) {
	var categories []*domain.Category
	for _, category := range m.Categories {
		if category.UserID != userID {
			continue
		}
		if categoryType != nil && category.Type != *categoryType {
			continue
		}
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

// ExistsByUserNameAndType reports whether the user has a category with
// this name and type
func (m *MockCategoryRepository) ExistsByUserNameAndType(userID uuid.UUID, name string, categoryType domain.CategoryType) (bool, error) {
	for _, category := range m.Categories {
		if category.UserID == userID && category.Name == name && category.Type == categoryType {
			return true, nil
		}
	}
	return false, nil
}

// Update updates an existing category
func (m *MockCategoryRepository) Update(category *domain.Category) (*domain.Category, error) {
	if _, ok := m.Categories[category.ID]; !ok {
		return nil, domain.ErrCategoryNotFound
	}
	category.UpdatedAt = time.Now()
	m.Categories[category.ID] = category
	return category, nil
}

// Delete removes a category
func (m *MockCategoryRepository) Delete(id uuid.UUID) error {
	if _, ok := m.Categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	return nil
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockCategoryRepository) AddCategory(category *domain.Category) {
	m.Categories[category.ID] = category
}

// MockTransactionRepository is a mock implementation of
// domain.TransactionRepository. Aggregate queries are computed in memory
// from the stored transactions; account ownership is resolved through
// the Accounts map.
type MockTransactionRepository struct {
	Transactions map[uuid.UUID]*domain.Transaction
	Accounts     *MockAccountRepository
	Categories   *MockCategoryRepository
}

// NewMockTransactionRepository creates a new MockTransactionRepository
// wired to the given account and category mocks
func NewMockTransactionRepository(accounts *MockAccountRepository, categories *MockCategoryRepository) *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[uuid.UUID]*domain.Transaction),
		Accounts:     accounts,
		Categories:   categories,
	}
}

// Create creates a new transaction
func (m *MockTransactionRepository) Create(tx *domain.Transaction) (*domain.Transaction, error) {
	tx.CreatedAt = time.Now()
	tx.UpdatedAt = tx.CreatedAt
	m.Transactions[tx.ID] = tx
	return tx, nil
}

// GetByID retrieves a transaction by ID
func (m *MockTransactionRepository) GetByID(id uuid.UUID) (*domain.Transaction, error) {
	if tx, ok := m.Transactions[id]; ok {
		return tx, nil
	}
	return nil, domain.ErrTransactionNotFound
}

// GetByUser retrieves a page of the user's transactions, newest first
func (m *MockTransactionRepository) GetByUser(userID uuid.UUID, filters *domain.TransactionFilters) (*domain.PaginatedTransactions, error) {
	var matched []*domain.Transaction
	for _, tx := range m.Transactions {
		if !m.ownedBy(tx, userID) {
			continue
		}
		if filters.AccountID != nil && tx.AccountID != *filters.AccountID {
			continue
		}
		if filters.CategoryID != nil && tx.CategoryID != *filters.CategoryID {
			continue
		}
		if filters.Type != nil && tx.Type != *filters.Type {
			continue
		}
		if filters.StartDate != nil && tx.Date.Before(*filters.StartDate) {
			continue
		}
		if filters.EndDate != nil && tx.Date.After(*filters.EndDate) {
			continue
		}
		if filters.IsPaid != nil && tx.IsPaid != *filters.IsPaid {
			continue
		}
		matched = append(matched, tx)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Date.After(matched[j].Date) })

	totalItems := int64(len(matched))
	totalPages := int32((totalItems + int64(filters.PageSize) - 1) / int64(filters.PageSize))

	start := int((filters.Page - 1) * filters.PageSize)
	if start > len(matched) {
		start = len(matched)
	}
	end := start + int(filters.PageSize)
	if end > len(matched) {
		end = len(matched)
	}

	return &domain.PaginatedTransactions{
		Data:       matched[start:end],
		Page:       filters.Page,
		PageSize:   filters.PageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}, nil
}

// Update updates an existing transaction
func (m *MockTransactionRepository) Update(tx *domain.Transaction) (*domain.Transaction, error) {
	if _, ok := m.Transactions[tx.ID]; !ok {
		return nil, domain.ErrTransactionNotFound
	}
	tx.UpdatedAt = time.Now()
	m.Transactions[tx.ID] = tx
	return tx, nil
}

// Delete removes a transaction
func (m *MockTransactionRepository) Delete(id uuid.UUID) error {
	if _, ok := m.Transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(m.Transactions, id)
	return nil
}

// CountByAccount returns how many transactions reference the account
func (m *MockTransactionRepository) CountByAccount(accountID uuid.UUID) (int64, error) {
	var count int64
	for _, tx := range m.Transactions {
		if tx.AccountID == accountID {
			count++
		}
	}
	return count, nil
}

// CountByCategory returns how many transactions reference the category
func (m *MockTransactionRepository) CountByCategory(categoryID uuid.UUID) (int64, error) {
	var count int64
	for _, tx := range m.Transactions {
		if tx.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

// CountUnpaidByUser returns the user's pending transaction count
func (m *MockTransactionRepository) CountUnpaidByUser(userID uuid.UUID) (int64, error) {
	var count int64
	for _, tx := range m.Transactions {
		if m.ownedBy(tx, userID) && !tx.IsPaid {
			count++
		}
	}
	return count, nil
}

// SumPaidByAccount returns the account's paid income and expense totals
func (m *MockTransactionRepository) SumPaidByAccount(accountID uuid.UUID) (*domain.AccountSums, error) {
	sums := &domain.AccountSums{
		AccountID: accountID,
		Income:    decimal.Zero,
		Expenses:  decimal.Zero,
	}
	for _, tx := range m.Transactions {
		if tx.AccountID != accountID || !tx.IsPaid {
			continue
		}
		if tx.Type == domain.TransactionTypeIncome {
			sums.Income = sums.Income.Add(tx.Amount.Amount)
		} else {
			sums.Expenses = sums.Expenses.Add(tx.Amount.Amount)
		}
	}
	return sums, nil
}

// SumPaidByUserInRange returns paid income and expense totals within
// [start, end)
func (m *MockTransactionRepository) SumPaidByUserInRange(userID uuid.UUID, start, end time.Time) (decimal.Decimal, decimal.Decimal, error) {
	income, expenses := decimal.Zero, decimal.Zero
	for _, tx := range m.Transactions {
		if !m.ownedBy(tx, userID) || !tx.IsPaid {
			continue
		}
		if tx.Date.Before(start) || !tx.Date.Before(end) {
			continue
		}
		if tx.Type == domain.TransactionTypeIncome {
			income = income.Add(tx.Amount.Amount)
		} else {
			expenses = expenses.Add(tx.Amount.Amount)
		}
	}
	return income, expenses, nil
}

// MonthlySumsByUser returns paid totals grouped by calendar month
func (m *MockTransactionRepository) MonthlySumsByUser(userID uuid.UUID, from time.Time) ([]*domain.MonthlySums, error) {
	type yearMonth struct {
		year  int
		month int
	}
	byMonth := make(map[yearMonth]*domain.MonthlySums)
	for _, tx := range m.Transactions {
		if !m.ownedBy(tx, userID) || !tx.IsPaid || tx.Date.Before(from) {
			continue
		}
		key := yearMonth{tx.Date.Year(), int(tx.Date.Month())}
		sums, ok := byMonth[key]
		if !ok {
			sums = &domain.MonthlySums{
				Year:     key.year,
				Month:    key.month,
				Income:   decimal.Zero,
				Expenses: decimal.Zero,
			}
			byMonth[key] = sums
		}
		if tx.Type == domain.TransactionTypeIncome {
			sums.Income = sums.Income.Add(tx.Amount.Amount)
		} else {
			sums.Expenses = sums.Expenses.Add(tx.Amount.Amount)
		}
	}

	result := make([]*domain.MonthlySums, 0, len(byMonth))
	for _, sums := range byMonth {
		result = append(result, sums)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Year != result[j].Year {
			return result[i].Year < result[j].Year
		}
		return result[i].Month < result[j].Month
	})
	return result, nil
}

// ExpenseSumsByCategory returns paid expense totals grouped by category,
// largest first
func (m *MockTransactionRepository) ExpenseSumsByCategory(userID uuid.UUID, start, end time.Time) ([]*domain.CategorySums, error) {
	byCategory := make(map[uuid.UUID]*domain.CategorySums)
	for _, tx := range m.Transactions {
		if !m.ownedBy(tx, userID) || !tx.IsPaid || tx.Type != domain.TransactionTypeExpense {
			continue
		}
		if tx.Date.Before(start) || !tx.Date.Before(end) {
			continue
		}
		sums, ok := byCategory[tx.CategoryID]
		if !ok {
			sums = &domain.CategorySums{CategoryID: tx.CategoryID, Total: decimal.Zero}
			if m.Categories != nil {
				if category, err := m.Categories.GetByID(tx.CategoryID); err == nil {
					sums.CategoryName = category.Name
					sums.Icon = category.Icon
					sums.Color = category.Color
				}
			}
			byCategory[tx.CategoryID] = sums
		}
		sums.Total = sums.Total.Add(tx.Amount.Amount)
		sums.Count++
	}

	result := make([]*domain.CategorySums, 0, len(byCategory))
	for _, sums := range byCategory {
		result = append(result, sums)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Total.GreaterThan(result[j].Total) })
	return result, nil
}

// RecentByUser returns the user's most recent transactions with category
// and account names attached
func (m *MockTransactionRepository) RecentByUser(userID uuid.UUID, limit int32) ([]*domain.TransactionDetail, error) {
	var owned []*domain.Transaction
	for _, tx := range m.Transactions {
		if m.ownedBy(tx, userID) {
			owned = append(owned, tx)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].Date.After(owned[j].Date) })
	if int32(len(owned)) > limit {
		owned = owned[:limit]
	}

	details := make([]*domain.TransactionDetail, 0, len(owned))
	for _, tx := range owned {
		detail := &domain.TransactionDetail{Transaction: tx}
		if m.Categories != nil {
			if category, err := m.Categories.GetByID(tx.CategoryID); err == nil {
				detail.CategoryName = category.Name
				detail.CategoryIcon = category.Icon
			}
		}
		if m.Accounts != nil {
			if account, err := m.Accounts.GetByID(tx.AccountID); err == nil {
				detail.AccountName = account.Name
			}
		}
		details = append(details, detail)
	}
	return details, nil
}

// AddTransaction adds a transaction to the mock repository (helper for tests)
func (m *MockTransactionRepository) AddTransaction(tx *domain.Transaction) {
	m.Transactions[tx.ID] = tx
}

func (m *MockTransactionRepository) ownedBy(tx *domain.Transaction, userID uuid.UUID) bool {
	if m.Accounts == nil {
		return true
	}
	account, err := m.Accounts.GetByID(tx.AccountID)
	if err != nil {
		return false
	}
	return account.UserID == userID
}

// MockGoalRepository is a mock implementation of domain.GoalRepository
type MockGoalRepository struct {
	Goals map[uuid.UUID]*domain.Goal
}

// NewMockGoalRepository creates a new MockGoalRepository
func NewMockGoalRepository() *MockGoalRepository {
	return &MockGoalRepository{Goals: make(map[uuid.UUID]*domain.Goal)}
}

// Create creates a new goal
func (m *MockGoalRepository) Create(goal *domain.Goal) (*domain.Goal, error) {
	goal.CreatedAt = time.Now()
	goal.UpdatedAt = goal.CreatedAt
	m.Goals[goal.ID] = goal
	return goal, nil
}

// GetByID retrieves a goal by ID
func (m *MockGoalRepository) GetByID(id uuid.UUID) (*domain.Goal, error) {
	if goal, ok := m.Goals[id]; ok {
		return goal, nil
	}
	return nil, domain.ErrGoalNotFound
}

// GetAllByUser retrieves a user's goals, optionally filtered by status
func (m *MockGoalRepository) GetAllByUser(userID uuid.UUID, status *domain.GoalStatus) ([]*domain.Goal, error) {
	var goals []*domain.Goal
	for _, goal := range m.Goals {
		if goal.UserID != userID {
			continue
		}
		if status != nil && goal.Status != *status {
			continue
		}
		goals = append(goals, goal)
	}
	sort.Slice(goals, func(i, j int) bool { return goals[i].CreatedAt.After(goals[j].CreatedAt) })
	return goals, nil
}

// GetActiveByUser retrieves the user's most recent in-progress goals
func (m *MockGoalRepository) GetActiveByUser(userID uuid.UUID, limit int32) ([]*domain.Goal, error) {
	status := domain.GoalStatusInProgress
	goals, err := m.GetAllByUser(userID, &status)
	if err != nil {
		return nil, err
	}
	if int32(len(goals)) > limit {
		goals = goals[:limit]
	}
	return goals, nil
}

// Update updates an existing goal
func (m *MockGoalRepository) Update(goal *domain.Goal) (*domain.Goal, error) {
	if _, ok := m.Goals[goal.ID]; !ok {
		return nil, domain.ErrGoalNotFound
	}
	goal.UpdatedAt = time.Now()
	m.Goals[goal.ID] = goal
	return goal, nil
}

// Delete removes a goal
func (m *MockGoalRepository) Delete(id uuid.UUID) error {
	if _, ok := m.Goals[id]; !ok {
		return domain.ErrGoalNotFound
	}
	delete(m.Goals, id)
	return nil
}

// AddGoal adds a goal to the mock repository (helper for tests)
func (m *MockGoalRepository) AddGoal(goal *domain.Goal) {
	m.Goals[goal.ID] = goal
}
