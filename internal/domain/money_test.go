package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewMoney_RoundsToTwoDecimals(t *testing.T) {
	m, err := NewMoney(decimal.NewFromFloat(10.005), "BRL")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if m.Amount.String() != "10.01" {
		t.Errorf("Expected amount 10.01, got %s", m.Amount.String())
	}
}

func TestNewMoney_UppercasesCurrency(t *testing.T) {
	m, err := NewMoney(decimal.NewFromInt(5), "brl")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if m.Currency != "BRL" {
		t.Errorf("Expected currency BRL, got %s", m.Currency)
	}
}

func TestNewMoney_NegativeAmount(t *testing.T) {
	_, err := NewMoney(decimal.NewFromInt(-1), "BRL")
	if err != ErrNegativeAmount {
		t.Errorf("Expected ErrNegativeAmount, got %v", err)
	}
}

func TestNewMoney_InvalidCurrencyCode(t *testing.T) {
	for _, code := range []string{"", "BR", "BRLX", "B1L"} {
		if _, err := NewMoney(decimal.NewFromInt(1), code); err != ErrInvalidCurrencyCode {
			t.Errorf("Expected ErrInvalidCurrencyCode for %q, got %v", code, err)
		}
	}
}

func TestMoneyAdd_SameCurrency(t *testing.T) {
	a, _ := NewMoney(decimal.NewFromFloat(10.50), "BRL")
	b, _ := NewMoney(decimal.NewFromFloat(4.25), "BRL")

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if sum.Amount.String() != "14.75" {
		t.Errorf("Expected 14.75, got %s", sum.Amount.String())
	}
}

func TestMoneyAdd_CurrencyMismatch(t *testing.T) {
	a, _ := NewMoney(decimal.NewFromInt(10), "BRL")
	b, _ := NewMoney(decimal.NewFromInt(5), "USD")

	if _, err := a.Add(b); err != ErrCurrencyMismatch {
		t.Errorf("Expected ErrCurrencyMismatch, got %v", err)
	}
}

func TestMoneySub_ResultWouldBeNegative(t *testing.T) {
	a, _ := NewMoney(decimal.NewFromInt(5), "BRL")
	b, _ := NewMoney(decimal.NewFromInt(10), "BRL")

	if _, err := a.Sub(b); err != ErrNegativeAmount {
		t.Errorf("Expected ErrNegativeAmount, got %v", err)
	}
}

func TestMoneyGreaterThan(t *testing.T) {
	a, _ := NewMoney(decimal.NewFromInt(10), "BRL")
	b, _ := NewMoney(decimal.NewFromInt(5), "BRL")

	gt, err := a.GreaterThan(b)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !gt {
		t.Error("Expected 10 BRL > 5 BRL")
	}
}

func TestMoneyString(t *testing.T) {
	m, _ := NewMoney(decimal.NewFromFloat(10.5), "USD")
	if m.String() != "USD 10.50" {
		t.Errorf("Expected 'USD 10.50', got %q", m.String())
	}
}
