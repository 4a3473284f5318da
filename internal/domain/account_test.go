package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestNewAccount_Defaults(t *testing.T) {
	account, err := NewAccount(uuid.New(), "Nubank", AccountTypeChecking, decimal.Zero, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if account.Currency != CurrencyBRL {
		t.Errorf("Expected default currency BRL, got %s", account.Currency)
	}
	if !account.IsActive {
		t.Error("Expected new account to be active")
	}
}

func TestNewAccount_NameTooShort(t *testing.T) {
	_, err := NewAccount(uuid.New(), " a ", AccountTypeChecking, decimal.Zero, CurrencyBRL)
	if err != ErrNameTooShort {
		t.Errorf("Expected ErrNameTooShort, got %v", err)
	}
}

func TestNewAccount_InvalidType(t *testing.T) {
	_, err := NewAccount(uuid.New(), "Wallet", "CRYPTO", decimal.Zero, CurrencyBRL)
	if err != ErrInvalidAccountType {
		t.Errorf("Expected ErrInvalidAccountType, got %v", err)
	}
}

func TestNewAccount_NegativeBalance(t *testing.T) {
	_, err := NewAccount(uuid.New(), "Wallet", AccountTypeCash, decimal.NewFromInt(-10), CurrencyBRL)
	if err != ErrNegativeBalance {
		t.Errorf("Expected ErrNegativeBalance, got %v", err)
	}
}

func TestNewAccount_InvalidCurrency(t *testing.T) {
	_, err := NewAccount(uuid.New(), "Wallet", AccountTypeCash, decimal.Zero, "GBP")
	if err != ErrInvalidCurrency {
		t.Errorf("Expected ErrInvalidCurrency, got %v", err)
	}
}

func TestAccountActivateDeactivate(t *testing.T) {
	account, _ := NewAccount(uuid.New(), "Savings", AccountTypeSavings, decimal.Zero, CurrencyBRL)
	account.Deactivate()
	if account.IsActive {
		t.Error("Expected account to be inactive")
	}
	account.Activate()
	if !account.IsActive {
		t.Error("Expected account to be active")
	}
}
