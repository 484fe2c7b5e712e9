package decimal_math

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Sqrt computes sqrt(x) with a big.Float of prec mantissa bits. The input is
// parsed at the same precision so large Q64 values keep their low digits.
func Sqrt(x decimal.Decimal, prec uint) decimal.Decimal {
	if x.Sign() < 0 {
		panic("sqrt on negative decimal")
	}
	if x.IsZero() {
		return decimal.Zero
	}

	f, ok := new(big.Float).SetPrec(prec).SetString(x.String())
	if !ok {
		panic("sqrt on malformed decimal")
	}
	out, _ := decimal.NewFromString(
		new(big.Float).SetPrec(prec).Sqrt(f).Text('f', -1),
	)
	return out
}
