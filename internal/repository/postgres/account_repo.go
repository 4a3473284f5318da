package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountRepository implements domain.AccountRepository using PostgreSQL
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts a new account
func (r *AccountRepository) Create(account *domain.Account) (*domain.Account, error) {
	ctx := context.Background()
	initialBalance, err := decimalToPgNumeric(account.InitialBalance)
	if err != nil {
		return nil, fmt.Errorf("invalid initial balance: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (id, user_id, name, type, initial_balance, currency, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, name, type, initial_balance, currency, is_active, created_at, updated_at`,
		account.ID, account.UserID, account.Name, string(account.Type), initialBalance, string(account.Currency), account.IsActive,
	)

	created, err := scanAccount(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrAccountNameTaken
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(id uuid.UUID) (*domain.Account, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, name, type, initial_balance, currency, is_active, created_at, updated_at
		FROM accounts WHERE id = $1`, id,
	)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// GetAllByUser retrieves a user's accounts, active only unless
// includeInactive is set
func (r *AccountRepository) GetAllByUser(userID uuid.UUID, includeInactive bool) ([]*domain.Account, error) {
	ctx := context.Background()

	query := `
		SELECT id, user_id, name, type, initial_balance, currency, is_active, created_at, updated_at
		FROM accounts WHERE user_id = $1`
	if !includeInactive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// ExistsByUserAndName reports whether the user already has an account
// with this name
func (r *AccountRepository) ExistsByUserAndName(userID uuid.UUID, name string) (bool, error) {
	ctx := context.Background()
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM accounts WHERE user_id = $1 AND name = $2)`,
		userID, name,
	).Scan(&exists)
	return exists, err
}

// Update persists account changes
func (r *AccountRepository) Update(account *domain.Account) (*domain.Account, error) {
	ctx := context.Background()
	initialBalance, err := decimalToPgNumeric(account.InitialBalance)
	if err != nil {
		return nil, fmt.Errorf("invalid initial balance: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE accounts
		SET name = $2, type = $3, initial_balance = $4, is_active = $5, updated_at = now()
		WHERE id = $1
		RETURNING id, user_id, name, type, initial_balance, currency, is_active, created_at, updated_at`,
		account.ID, account.Name, string(account.Type), initialBalance, account.IsActive,
	)

	updated, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrAccountNameTaken
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes an account
func (r *AccountRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account        domain.Account
		accountType    string
		currency       string
		initialBalance pgtype.Numeric
	)
	err := row.Scan(&account.ID, &account.UserID, &account.Name, &accountType, &initialBalance, &currency, &account.IsActive, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return nil, err
	}
	account.Type = domain.AccountType(accountType)
	account.Currency = domain.Currency(currency)
	account.InitialBalance = pgNumericToDecimal(initialBalance)
	return &account, nil
}
