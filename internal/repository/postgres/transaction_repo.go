package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, account_id, category_id, type, amount, currency, description, date, is_paid, notes, created_at, updated_at`

// Create inserts a new transaction
func (r *TransactionRepository) Create(tx *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()
	amount, err := decimalToPgNumeric(tx.Amount.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO transactions (id, account_id, category_id, type, amount, currency, description, date, is_paid, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+transactionColumns,
		tx.ID, tx.AccountID, tx.CategoryID, string(tx.Type), amount, tx.Amount.Currency, tx.Description, tx.Date, tx.IsPaid, tx.Notes,
	)

	return scanTransaction(row)
}

// GetByID retrieves a transaction by ID
func (r *TransactionRepository) GetByID(id uuid.UUID) (*domain.Transaction, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id,
	)

	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return tx, nil
}

// GetByUser retrieves a page of the user's transactions, newest first
func (r *TransactionRepository) GetByUser(userID uuid.UUID, filters *domain.TransactionFilters) (*domain.PaginatedTransactions, error) {
	ctx := context.Background()

	where := ` FROM transactions t JOIN accounts a ON a.id = t.account_id WHERE a.user_id = $1`
	args := []interface{}{userID}

	if filters.AccountID != nil {
		args = append(args, *filters.AccountID)
		where += fmt.Sprintf(" AND t.account_id = $%d", len(args))
	}
	if filters.CategoryID != nil {
		args = append(args, *filters.CategoryID)
		where += fmt.Sprintf(" AND t.category_id = $%d", len(args))
	}
	if filters.Type != nil {
		args = append(args, string(*filters.Type))
		where += fmt.Sprintf(" AND t.type = $%d", len(args))
	}
	if filters.StartDate != nil {
		args = append(args, *filters.StartDate)
		where += fmt.Sprintf(" AND t.date >= $%d", len(args))
	}
	if filters.EndDate != nil {
		args = append(args, *filters.EndDate)
		where += fmt.Sprintf(" AND t.date <= $%d", len(args))
	}
	if filters.IsPaid != nil {
		args = append(args, *filters.IsPaid)
		where += fmt.Sprintf(" AND t.is_paid = $%d", len(args))
	}

	var totalItems int64
	if err := r.pool.QueryRow(ctx, "SELECT count(*)"+where, args...).Scan(&totalItems); err != nil {
		return nil, err
	}

	offset := (filters.Page - 1) * filters.PageSize
	args = append(args, filters.PageSize, offset)
	query := fmt.Sprintf(
		"SELECT t.id, t.account_id, t.category_id, t.type, t.amount, t.currency, t.description, t.date, t.is_paid, t.notes, t.created_at, t.updated_at%s ORDER BY t.date DESC, t.created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args),
	)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]*domain.Transaction, 0, filters.PageSize)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	totalPages := int32((totalItems + int64(filters.PageSize) - 1) / int64(filters.PageSize))

	return &domain.PaginatedTransactions{
		Data:       transactions,
		Page:       filters.Page,
		PageSize:   filters.PageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}, nil
}

// Update persists transaction changes
func (r *TransactionRepository) Update(tx *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()
	amount, err := decimalToPgNumeric(tx.Amount.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE transactions
		SET amount = $2, currency = $3, description = $4, date = $5, is_paid = $6, notes = $7, updated_at = now()
		WHERE id = $1
		RETURNING `+transactionColumns,
		tx.ID, amount, tx.Amount.Currency, tx.Description, tx.Date, tx.IsPaid, tx.Notes,
	)

	updated, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a transaction
func (r *TransactionRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// CountByAccount returns how many transactions reference the account
func (r *TransactionRepository) CountByAccount(accountID uuid.UUID) (int64, error) {
	ctx := context.Background()
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM transactions WHERE account_id = $1`, accountID).Scan(&count)
	return count, err
}

// CountByCategory returns how many transactions reference the category
func (r *TransactionRepository) CountByCategory(categoryID uuid.UUID) (int64, error) {
	ctx := context.Background()
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM transactions WHERE category_id = $1`, categoryID).Scan(&count)
	return count, err
}

// CountUnpaidByUser returns the user's pending transaction count
func (r *TransactionRepository) CountUnpaidByUser(userID uuid.UUID) (int64, error) {
	ctx := context.Background()
	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT count(*)
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE a.user_id = $1 AND t.is_paid = FALSE`, userID,
	).Scan(&count)
	return count, err
}

// SumPaidByAccount returns the account's paid income and expense totals
func (r *TransactionRepository) SumPaidByAccount(accountID uuid.UUID) (*domain.AccountSums, error) {
	ctx := context.Background()
	var income, expenses pgtype.Numeric
	err := r.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'INCOME'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'EXPENSE'), 0)
		FROM transactions
		WHERE account_id = $1 AND is_paid = TRUE`, accountID,
	).Scan(&income, &expenses)
	if err != nil {
		return nil, err
	}

	return &domain.AccountSums{
		AccountID: accountID,
		Income:    pgNumericToDecimal(income),
		Expenses:  pgNumericToDecimal(expenses),
	}, nil
}

// SumPaidByUserInRange returns paid income and expense totals for the user
// across all accounts within [start, end)
func (r *TransactionRepository) SumPaidByUserInRange(userID uuid.UUID, start, end time.Time) (decimal.Decimal, decimal.Decimal, error) {
	ctx := context.Background()
	var income, expenses pgtype.Numeric
	err := r.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'INCOME'), 0),
			COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'EXPENSE'), 0)
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE a.user_id = $1 AND t.is_paid = TRUE AND t.date >= $2 AND t.date < $3`,
		userID, start, end,
	).Scan(&income, &expenses)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return pgNumericToDecimal(income), pgNumericToDecimal(expenses), nil
}

// MonthlySumsByUser returns paid income and expense totals grouped by
// calendar month from the given date onward
func (r *TransactionRepository) MonthlySumsByUser(userID uuid.UUID, from time.Time) ([]*domain.MonthlySums, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT
			EXTRACT(YEAR FROM t.date)::int,
			EXTRACT(MONTH FROM t.date)::int,
			COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'INCOME'), 0),
			COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'EXPENSE'), 0)
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE a.user_id = $1 AND t.is_paid = TRUE AND t.date >= $2
		GROUP BY 1, 2
		ORDER BY 1, 2`, userID, from,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sums []*domain.MonthlySums
	for rows.Next() {
		var (
			year, month      int
			income, expenses pgtype.Numeric
		)
		if err := rows.Scan(&year, &month, &income, &expenses); err != nil {
			return nil, err
		}
		sums = append(sums, &domain.MonthlySums{
			Year:     year,
			Month:    month,
			Income:   pgNumericToDecimal(income),
			Expenses: pgNumericToDecimal(expenses),
		})
	}
	return sums, rows.Err()
}

// ExpenseSumsByCategory returns paid expense totals grouped by category
// within [start, end), largest first
func (r *TransactionRepository) ExpenseSumsByCategory(userID uuid.UUID, start, end time.Time) ([]*domain.CategorySums, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.name, c.icon, c.color, COALESCE(SUM(t.amount), 0), count(*)
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		JOIN categories c ON c.id = t.category_id
		WHERE a.user_id = $1 AND t.is_paid = TRUE AND t.type = 'EXPENSE' AND t.date >= $2 AND t.date < $3
		GROUP BY c.id, c.name, c.icon, c.color
		ORDER BY 5 DESC`, userID, start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sums []*domain.CategorySums
	for rows.Next() {
		var (
			s     domain.CategorySums
			total pgtype.Numeric
		)
		if err := rows.Scan(&s.CategoryID, &s.CategoryName, &s.Icon, &s.Color, &total, &s.Count); err != nil {
			return nil, err
		}
		s.Total = pgNumericToDecimal(total)
		sums = append(sums, &s)
	}
	return sums, rows.Err()
}

// RecentByUser returns the user's most recent transactions joined with
// their category and account names
func (r *TransactionRepository) RecentByUser(userID uuid.UUID, limit int32) ([]*domain.TransactionDetail, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.account_id, t.category_id, t.type, t.amount, t.currency, t.description, t.date, t.is_paid, t.notes, t.created_at, t.updated_at,
			c.name, c.icon, a.name
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		JOIN categories c ON c.id = t.category_id
		WHERE a.user_id = $1
		ORDER BY t.date DESC, t.created_at DESC
		LIMIT $2`, userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []*domain.TransactionDetail
	for rows.Next() {
		var (
			tx       domain.Transaction
			txType   string
			amount   pgtype.Numeric
			currency string
			detail   domain.TransactionDetail
		)
		err := rows.Scan(&tx.ID, &tx.AccountID, &tx.CategoryID, &txType, &amount, &currency, &tx.Description, &tx.Date, &tx.IsPaid, &tx.Notes, &tx.CreatedAt, &tx.UpdatedAt,
			&detail.CategoryName, &detail.CategoryIcon, &detail.AccountName)
		if err != nil {
			return nil, err
		}
		tx.Type = domain.TransactionType(txType)
		tx.Amount = domain.Money{Amount: pgNumericToDecimal(amount), Currency: currency}
		detail.Transaction = &tx
		details = append(details, &detail)
	}
	return details, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		tx       domain.Transaction
		txType   string
		amount   pgtype.Numeric
		currency string
	)
	err := row.Scan(&tx.ID, &tx.AccountID, &tx.CategoryID, &txType, &amount, &currency, &tx.Description, &tx.Date, &tx.IsPaid, &tx.Notes, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return nil, err
	}
	tx.Type = domain.TransactionType(txType)
	tx.Amount = domain.Money{Amount: pgNumericToDecimal(amount), Currency: currency}
	return &tx, nil
}
