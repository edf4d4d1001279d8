package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned by ParseAmount for input that is not a number.
var ErrInvalidAmount = errors.New("invalid amount")

// Money value object - an amount in BRL
// The zero value is R$ 0,00.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates a Money from a decimal
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// MoneyFromFloat creates a Money from a float such as a catalog price
func MoneyFromFloat(f float64) Money {
	return Money{amount: decimal.NewFromFloat(f)}
}

// MustParseMoney parses s with ParseAmount and panics on failure. Only for
// literals in seed data and tests.
func MustParseMoney(s string) Money {
	d, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return Money{amount: d}
}

// Decimal returns the underlying amount
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Float64 returns the amount as a float
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// Add returns m + other
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Mul returns m multiplied by a quantity
func (m Money) Mul(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Equals compares amounts numerically, so 12.5 equals 12.50
func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String returns the amount with two decimals and a dot separator.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// FormatBRL renders the amount for display, e.g. "R$ 12,50".
func (m Money) FormatBRL() string {
	return "R$ " + strings.Replace(m.amount.StringFixed(2), ".", ",", 1)
}

// MarshalJSON writes a plain JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.amount.String()), nil
}

// UnmarshalJSON accepts a JSON number, a locale formatted string ("12,50")
// or null.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = Money{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			*m = Money{}
			return nil
		}
		d, err := ParseAmount(s)
		if err != nil {
			return err
		}
		*m = Money{amount: d}
		return nil
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return ErrInvalidAmount
	}
	*m = Money{amount: d}
	return nil
}

// ParseAmount parses a user or server supplied amount. It strips the "R$"
// symbol and whitespace and accepts either a comma or a dot as the decimal
// separator. When both appear the last one is the decimal separator and the
// other one groups thousands; a separator repeated more than once groups
// thousands as well.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "R$"), "r$")
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\u00a0':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case lastDot >= 0:
		if strings.Count(s, ".") > 1 {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != '-' && r != '+' {
			return decimal.Zero, ErrInvalidAmount
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParseFee parses a delivery fee typed by the user. Empty, non-numeric and
// negative input yield zero.
func ParseFee(s string) Money {
	d, err := ParseAmount(s)
	if err != nil || d.IsNegative() {
		return Money{}
	}
	return Money{amount: d}
}
