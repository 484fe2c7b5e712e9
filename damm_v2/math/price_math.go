package math

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	"github.com/krazyTry/cpamm-quote/damm_v2/shared"
	"github.com/krazyTry/cpamm-quote/decimal_math"
)

const sqrtPrecision = 256

// CalculateInitSqrtPrice finds the sqrt price at which tokenAAmount and
// tokenBAmount are consumed in the same ratio over [minSqrtPrice, maxSqrtPrice].
//
//	a = L * (1/s - 1/pb)
//	b = L * (s - pa)
//	with x = 1/pb and y = b/a: s^2 + s*(pa - x*y) - y = 0
//	s = [(pa - xy) + sqrt((xy - pa)^2 + 4y)] / 2
func CalculateInitSqrtPrice(tokenAAmount, tokenBAmount, minSqrtPrice, maxSqrtPrice *uint256.Int) (*uint256.Int, error) {
	if tokenAAmount.IsZero() || tokenBAmount.IsZero() {
		return nil, fmt.Errorf("%w: amount cannot be zero", shared.ErrInvalidAmount)
	}
	if maxSqrtPrice.IsZero() {
		return nil, fmt.Errorf("%w: max sqrt price cannot be zero", shared.ErrInvalidAmount)
	}

	amountA := ToDecimal(tokenAAmount)
	amountB := ToDecimal(tokenBAmount)
	minSqrt := ToDecimal(minSqrtPrice).Div(q64Decimal())
	maxSqrt := ToDecimal(maxSqrtPrice).Div(q64Decimal())

	x := decimal.NewFromInt(1).Div(maxSqrt)
	y := amountB.Div(amountA)
	xy := x.Mul(y)

	paMinusXY := minSqrt.Sub(xy)
	xyMinusPa := xy.Sub(minSqrt)
	discriminant := xyMinusPa.Mul(xyMinusPa).Add(decimal.NewFromInt(4).Mul(y))
	sqrtDiscriminant := decimal_math.Sqrt(discriminant, sqrtPrecision)

	return DecimalToQ64(paMinusXY.Add(sqrtDiscriminant).Div(decimal.NewFromInt(2)))
}

// GetPriceFromSqrtPrice returns sqrtPrice^2 * 10^(decimalA - decimalB) / 2^128.
func GetPriceFromSqrtPrice(sqrtPrice *uint256.Int, tokenADecimal, tokenBDecimal uint8) decimal.Decimal {
	s := ToDecimal(sqrtPrice)
	return s.Mul(s).
		Mul(decimal_math.Pow10(int(tokenADecimal) - int(tokenBDecimal))).
		Div(ToDecimal(shared.OneQ128))
}

// GetSqrtPriceFromPrice returns sqrt(price / 10^(decimalA - decimalB)) * 2^64, floored.
func GetSqrtPriceFromPrice(price decimal.Decimal, tokenADecimal, tokenBDecimal uint8) (*uint256.Int, error) {
	if price.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative price %s", shared.ErrInvalidAmount, price.String())
	}
	adjusted := price.Div(decimal_math.Pow10(int(tokenADecimal) - int(tokenBDecimal)))
	return DecimalToQ64(decimal_math.Sqrt(adjusted, sqrtPrecision))
}

// GetPriceImpact returns |next^2 - current^2| / current^2 * 100.
// Display only; never fed back into amounts.
func GetPriceImpact(nextSqrtPrice, currentSqrtPrice *uint256.Int) decimal.Decimal {
	if currentSqrtPrice.IsZero() {
		return decimal.Zero
	}
	next := ToDecimal(nextSqrtPrice)
	current := ToDecimal(currentSqrtPrice)
	nextSquared := next.Mul(next)
	currentSquared := current.Mul(current)
	return nextSquared.Sub(currentSquared).Abs().
		Div(currentSquared).
		Mul(decimal.NewFromInt(100))
}
