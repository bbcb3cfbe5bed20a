package ledger

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ToCents maps a 2-decimal money amount onto the integer-cent representation
// used by storage. Amounts with finer precision are rejected.
func ToCents(d decimal.Decimal) (int64, error) {
	cents := d.Mul(hundred)
	if !cents.IsInteger() {
		return 0, ErrInvalidAmount
	}
	return cents.IntPart(), nil
}

func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
