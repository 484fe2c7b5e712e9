package math

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/krazyTry/cpamm-quote/damm_v2/shared"
)

// √P' = √P + Δb / L
func GetNextSqrtPriceFromAmountInBRoundingDown(sqrtPrice, liquidity, amount *uint256.Int) (*uint256.Int, error) {
	shifted, err := CheckedLsh(amount, shared.ScaleOffset*2)
	if err != nil {
		return nil, err
	}
	quotient := new(uint256.Int).Div(shifted, liquidity)
	return CheckedAdd(sqrtPrice, quotient)
}

// √P' = √P - Δb / L, rounded so the price moves at least as far as needed.
func GetNextSqrtPriceFromAmountOutBRoundingDown(sqrtPrice, liquidity, amount *uint256.Int) (*uint256.Int, error) {
	shifted, err := CheckedLsh(amount, shared.ScaleOffset*2)
	if err != nil {
		return nil, err
	}
	quotient, err := MulDiv(shifted, uint256.NewInt(1), liquidity, shared.RoundingUp)
	if err != nil {
		return nil, err
	}
	if quotient.Gt(sqrtPrice) {
		return nil, fmt.Errorf("%w: sqrt price cannot be negative", shared.ErrArithmeticOverflow)
	}
	return new(uint256.Int).Sub(sqrtPrice, quotient), nil
}

// √P' = √P * L / (L + Δa * √P)
func GetNextSqrtPriceFromAmountInARoundingUp(sqrtPrice, liquidity, amount *uint256.Int) (*uint256.Int, error) {
	if amount.IsZero() {
		return new(uint256.Int).Set(sqrtPrice), nil
	}
	product, err := CheckedMul(amount, sqrtPrice)
	if err != nil {
		return nil, err
	}
	denominator, err := CheckedAdd(liquidity, product)
	if err != nil {
		return nil, err
	}
	return MulDiv(liquidity, sqrtPrice, denominator, shared.RoundingUp)
}

// √P' = √P * L / (L - Δa * √P)
func GetNextSqrtPriceFromAmountOutARoundingUp(sqrtPrice, liquidity, amount *uint256.Int) (*uint256.Int, error) {
	if amount.IsZero() {
		return new(uint256.Int).Set(sqrtPrice), nil
	}
	product, err := CheckedMul(amount, sqrtPrice)
	if err != nil {
		return nil, err
	}
	if !liquidity.Gt(product) {
		return nil, fmt.Errorf("%w: denominator is zero or negative", shared.ErrArithmeticOverflow)
	}
	denominator := new(uint256.Int).Sub(liquidity, product)
	return MulDiv(liquidity, sqrtPrice, denominator, shared.RoundingUp)
}

func checkCurveState(sqrtPrice, liquidity *uint256.Int) error {
	if sqrtPrice.IsZero() {
		return fmt.Errorf("%w: sqrtPrice must be greater than 0", shared.ErrInvalidAmount)
	}
	if liquidity.IsZero() {
		return fmt.Errorf("%w: liquidity must be greater than 0", shared.ErrInvalidAmount)
	}
	return nil
}

// GetNextSqrtPriceFromInput moves the price by an exact input amount.
// A to B rounds up and B to A rounds down, so the pool never gives away price.
func GetNextSqrtPriceFromInput(sqrtPrice, liquidity, amountIn *uint256.Int, aToB bool) (*uint256.Int, error) {
	if err := checkCurveState(sqrtPrice, liquidity); err != nil {
		return nil, err
	}
	if aToB {
		return GetNextSqrtPriceFromAmountInARoundingUp(sqrtPrice, liquidity, amountIn)
	}
	return GetNextSqrtPriceFromAmountInBRoundingDown(sqrtPrice, liquidity, amountIn)
}

// GetNextSqrtPriceFromOutput moves the price by an exact output amount.
func GetNextSqrtPriceFromOutput(sqrtPrice, liquidity, amountOut *uint256.Int, aToB bool) (*uint256.Int, error) {
	if err := checkCurveState(sqrtPrice, liquidity); err != nil {
		return nil, err
	}
	if aToB {
		return GetNextSqrtPriceFromAmountOutBRoundingDown(sqrtPrice, liquidity, amountOut)
	}
	return GetNextSqrtPriceFromAmountOutARoundingUp(sqrtPrice, liquidity, amountOut)
}

// Δb = L * (√P_upper - √P_lower)
func GetAmountBFromLiquidityDelta(liquidity, lowerSqrtPrice, upperSqrtPrice *uint256.Int, rounding shared.Rounding) (*uint256.Int, error) {
	deltaSqrtPrice, err := CheckedSub(upperSqrtPrice, lowerSqrtPrice)
	if err != nil {
		return nil, err
	}
	return MulShr(liquidity, deltaSqrtPrice, shared.ScaleOffset*2, rounding)
}

// Δa = L * (√P_upper - √P_lower) / (√P_upper * √P_lower)
func GetAmountAFromLiquidityDelta(liquidity, lowerSqrtPrice, upperSqrtPrice *uint256.Int, rounding shared.Rounding) (*uint256.Int, error) {
	deltaSqrtPrice, err := CheckedSub(upperSqrtPrice, lowerSqrtPrice)
	if err != nil {
		return nil, err
	}
	denominator, err := CheckedMul(lowerSqrtPrice, upperSqrtPrice)
	if err != nil {
		return nil, err
	}
	return MulDiv(liquidity, deltaSqrtPrice, denominator, rounding)
}

func priceRange(lowerSqrtPrice, upperSqrtPrice *uint256.Int) (*uint256.Int, error) {
	if !upperSqrtPrice.Gt(lowerSqrtPrice) {
		return nil, fmt.Errorf("%w: empty sqrt price range", shared.ErrInvalidAmount)
	}
	return new(uint256.Int).Sub(upperSqrtPrice, lowerSqrtPrice), nil
}

// L = Δa * √P_upper * √P_lower / (√P_upper - √P_lower)
func GetLiquidityDeltaFromAmountA(amountA, lowerSqrtPrice, upperSqrtPrice *uint256.Int) (*uint256.Int, error) {
	denominator, err := priceRange(lowerSqrtPrice, upperSqrtPrice)
	if err != nil {
		return nil, err
	}
	product, err := CheckedMul(amountA, lowerSqrtPrice)
	if err != nil {
		return nil, err
	}
	return MulDiv(product, upperSqrtPrice, denominator, shared.RoundingDown)
}

// L = Δb << 128 / (√P_upper - √P_lower)
func GetLiquidityDeltaFromAmountB(amountB, lowerSqrtPrice, upperSqrtPrice *uint256.Int) (*uint256.Int, error) {
	denominator, err := priceRange(lowerSqrtPrice, upperSqrtPrice)
	if err != nil {
		return nil, err
	}
	product, err := CheckedLsh(amountB, shared.LiquidityScale)
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).Div(product, denominator), nil
}
