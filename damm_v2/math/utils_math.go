package math

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	"github.com/krazyTry/cpamm-quote/damm_v2/shared"
)

// MulDiv returns x*y/denominator rounded in the given direction. The product
// is computed at 512 bits; a quotient wider than 256 bits is an overflow.
func MulDiv(x, y, denominator *uint256.Int, rounding shared.Rounding) (*uint256.Int, error) {
	if denominator.IsZero() {
		return nil, shared.ErrDivideByZero
	}
	div, overflow := new(uint256.Int).MulDivOverflow(x, y, denominator)
	if overflow {
		return nil, fmt.Errorf("%w: mul div", shared.ErrArithmeticOverflow)
	}
	if rounding == shared.RoundingUp {
		mod := new(uint256.Int).MulMod(x, y, denominator)
		if !mod.IsZero() {
			if _, carry := div.AddOverflow(div, uint256.NewInt(1)); carry {
				return nil, fmt.Errorf("%w: mul div round up", shared.ErrArithmeticOverflow)
			}
		}
	}
	return div, nil
}

// MulShr returns x*y >> offset rounded in the given direction.
func MulShr(x, y *uint256.Int, offset uint, rounding shared.Rounding) (*uint256.Int, error) {
	denominator := new(uint256.Int).Lsh(uint256.NewInt(1), offset)
	return MulDiv(x, y, denominator, rounding)
}

// CheckedMul multiplies without wrapping.
func CheckedMul(x, y *uint256.Int) (*uint256.Int, error) {
	out, overflow := new(uint256.Int).MulOverflow(x, y)
	if overflow {
		return nil, fmt.Errorf("%w: mul", shared.ErrArithmeticOverflow)
	}
	return out, nil
}

// CheckedAdd adds without wrapping.
func CheckedAdd(x, y *uint256.Int) (*uint256.Int, error) {
	out, overflow := new(uint256.Int).AddOverflow(x, y)
	if overflow {
		return nil, fmt.Errorf("%w: add", shared.ErrArithmeticOverflow)
	}
	return out, nil
}

// CheckedSub subtracts and rejects a negative result.
func CheckedSub(x, y *uint256.Int) (*uint256.Int, error) {
	out, underflow := new(uint256.Int).SubOverflow(x, y)
	if underflow {
		return nil, fmt.Errorf("%w: sub", shared.ErrArithmeticOverflow)
	}
	return out, nil
}

// CheckedLsh shifts left and rejects lost high bits.
func CheckedLsh(x *uint256.Int, n uint) (*uint256.Int, error) {
	if !x.IsZero() && x.BitLen()+int(n) > 256 {
		return nil, fmt.Errorf("%w: shift", shared.ErrArithmeticOverflow)
	}
	return new(uint256.Int).Lsh(x, n), nil
}

func Min(a, b *uint256.Int) *uint256.Int {
	if a.Lt(b) {
		return new(uint256.Int).Set(a)
	}
	return new(uint256.Int).Set(b)
}

// Pow raises a Q64.64 base to an integer exponent by repeated squaring.
// Results that underflow to zero, or exponents beyond MaxExponential, yield 0.
func Pow(base *uint256.Int, exp int64) *uint256.Int {
	if exp == 0 {
		return new(uint256.Int).Set(shared.OneQ64)
	}
	invert := exp < 0
	absExp := uint64(exp)
	if invert {
		absExp = uint64(-exp)
	}
	if absExp > shared.MaxExponential {
		return new(uint256.Int)
	}
	if base.IsZero() {
		return new(uint256.Int)
	}

	squaredBase := new(uint256.Int).Set(base)
	result := new(uint256.Int).Set(shared.OneQ64)
	if squaredBase.Cmp(result) >= 0 {
		squaredBase = new(uint256.Int).Div(shared.U128Max, squaredBase)
		invert = !invert
	}

	for bit := uint(0); bit <= 18; bit++ {
		if absExp&(1<<bit) != 0 {
			result.Mul(result, squaredBase)
			result.Rsh(result, shared.ScaleOffset)
		}
		squaredBase.Mul(squaredBase, squaredBase)
		squaredBase.Rsh(squaredBase, shared.ScaleOffset)
	}

	if result.IsZero() {
		return new(uint256.Int)
	}
	if invert {
		result = new(uint256.Int).Div(shared.U128Max, result)
	}
	return result
}

func ToDecimal(num *uint256.Int) decimal.Decimal {
	if num == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(num.ToBig(), 0)
}

// FromDecimal floors a non-negative decimal into a uint256.
func FromDecimal(num decimal.Decimal) (*uint256.Int, error) {
	if num.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative value %s", shared.ErrInvalidAmount, num.String())
	}
	out, overflow := uint256.FromBig(num.Floor().BigInt())
	if overflow {
		return nil, fmt.Errorf("%w: %s", shared.ErrArithmeticOverflow, num.String())
	}
	return out, nil
}

func q64Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).Lsh(big.NewInt(1), shared.ScaleOffset), 0)
}

func Q64ToDecimal(num *uint256.Int, decimalPlaces int32) decimal.Decimal {
	if num == nil {
		return decimal.Zero
	}
	out := ToDecimal(num).Div(q64Decimal())
	if decimalPlaces >= 0 {
		return out.Round(decimalPlaces)
	}
	return out
}

func DecimalToQ64(num decimal.Decimal) (*uint256.Int, error) {
	return FromDecimal(num.Mul(q64Decimal()))
}
