package math

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/cpamm-quote/damm_v2/shared"
)

func TestPriceConversions(t *testing.T) {
	assert.True(t, GetPriceFromSqrtPrice(shared.OneQ64, 6, 6).Equal(decimal.NewFromInt(1)))
	assert.True(t, GetPriceFromSqrtPrice(shared.OneQ64, 9, 6).Equal(decimal.NewFromInt(1000)))
	assert.True(t, GetPriceFromSqrtPrice(q64(3), 6, 6).Equal(decimal.NewFromInt(9)))

	sqrtPrice, err := GetSqrtPriceFromPrice(decimal.NewFromInt(4), 6, 6)
	require.NoError(t, err)
	assert.Equal(t, q64(2), sqrtPrice)

	sqrtPrice, err = GetSqrtPriceFromPrice(decimal.NewFromInt(1000), 9, 6)
	require.NoError(t, err)
	assert.Equal(t, shared.OneQ64, sqrtPrice)

	_, err = GetSqrtPriceFromPrice(decimal.NewFromInt(-1), 6, 6)
	assert.ErrorIs(t, err, shared.ErrInvalidAmount)
}

func TestGetPriceImpact(t *testing.T) {
	assert.True(t, GetPriceImpact(q64(2), shared.OneQ64).Equal(decimal.NewFromInt(300)))
	assert.True(t, GetPriceImpact(shared.OneQ64, shared.OneQ64).IsZero())
	assert.True(t, GetPriceImpact(shared.OneQ64, new(uint256.Int)).IsZero())
}

func TestCalculateInitSqrtPrice(t *testing.T) {
	amount := uint256.NewInt(1_000_000_000)
	got, err := CalculateInitSqrtPrice(amount, amount, shared.MinSqrtPrice, shared.MaxSqrtPrice)
	require.NoError(t, err)

	// equal amounts over a near-infinite range settle at price one
	price := Q64ToDecimal(got, -1)
	assert.True(t, price.Sub(decimal.NewFromInt(1)).Abs().LessThan(decimal.New(1, -6)), "price %s", price)

	// both sides are consumed in the same ratio at the computed price
	liquidityA, err := GetLiquidityDeltaFromAmountA(amount, got, shared.MaxSqrtPrice)
	require.NoError(t, err)
	liquidityB, err := GetLiquidityDeltaFromAmountB(amount, shared.MinSqrtPrice, got)
	require.NoError(t, err)
	ratio := ToDecimal(liquidityA).Div(ToDecimal(liquidityB))
	assert.True(t, ratio.Sub(decimal.NewFromInt(1)).Abs().LessThan(decimal.New(1, -6)), "ratio %s", ratio)

	_, err = CalculateInitSqrtPrice(new(uint256.Int), amount, shared.MinSqrtPrice, shared.MaxSqrtPrice)
	assert.ErrorIs(t, err, shared.ErrInvalidAmount)
}
