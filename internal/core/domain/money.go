package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finbooks/general_ledger_app/internal/apperrors"
)

// Money is a non-negative arbitrary-precision amount. Journal entry lines and
// pattern amounts always carry Money; derived report figures (running balances,
// differences) use raw decimal.Decimal because they may go negative.
type Money struct {
	amount decimal.Decimal
}

// NewMoney validates that value is not negative and wraps it.
func NewMoney(value decimal.Decimal) (Money, error) {
	if value.IsNegative() {
		return Money{}, fmt.Errorf("%w: amount must not be negative, got %s", apperrors.ErrValidation, value.String())
	}
	return Money{amount: value}, nil
}

// MustMoney wraps value, panicking when it is negative. Reserved for constants
// and tests where a negative value is a programmer error.
func MustMoney(value decimal.Decimal) Money {
	m, err := NewMoney(value)
	if err != nil {
		panic(err)
	}
	return m
}

// ZeroMoney returns a zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Equal reports whether two amounts are numerically equal.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.String()
}

// MarshalJSON renders the amount as a JSON string, matching decimal.Decimal.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.amount.MarshalJSON()
}

// UnmarshalJSON parses the amount and rejects negative values.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	parsed, err := NewMoney(d)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
