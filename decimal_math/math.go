package decimal_math

import (
	"github.com/shopspring/decimal"
)

// Pow10 returns an exact 10^n, n may be negative.
func Pow10(n int) decimal.Decimal {
	return decimal.New(1, int32(n))
}
