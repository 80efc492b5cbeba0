package domain

import (
	"fmt"

	"github.com/shokoko2010/Elhamd-sub014/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Money is an amount in integer cents. All ledger arithmetic happens on Money.
type Money int64

// centsExp is the decimal exponent of one cent.
const centsExp = -2

// MoneyFromDecimal converts a decimal amount into cents.
// Amounts with more than two fractional digits are rejected rather than rounded.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	if !d.Equal(d.Truncate(2)) {
		return 0, fmt.Errorf("%w: amount %s has more than two decimal places", apperrors.ErrValidation, d.String())
	}
	cents := d.Shift(2)
	if !cents.IsInteger() || cents.Abs().GreaterThan(decimal.NewFromInt(maxMoney)) {
		return 0, fmt.Errorf("%w: amount %s is out of range", apperrors.ErrValidation, d.String())
	}
	return Money(cents.IntPart()), nil
}

// 2^53, far beyond any dealership amount and safe for JSON consumers.
const maxMoney = int64(1) << 53

// Decimal renders the amount back as a two-place decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), centsExp)
}

func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

func (m Money) IsZero() bool     { return m == 0 }
func (m Money) IsNegative() bool { return m < 0 }
