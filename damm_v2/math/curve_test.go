package math

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/cpamm-quote/damm_v2/shared"
)

func q64(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), shared.OneQ64)
}

func TestNextSqrtPriceFromInput(t *testing.T) {
	liquidity := new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	amount := new(uint256.Int).Lsh(uint256.NewInt(1), 64)

	// B in: 2^64 + (2^64 << 128) / 2^128
	next, err := GetNextSqrtPriceFromInput(shared.OneQ64, liquidity, amount, false)
	require.NoError(t, err)
	assert.Equal(t, q64(2), next)

	// A in: 2^128 * 2^64 / (2^128 + 2^64 * 2^64)
	next, err = GetNextSqrtPriceFromInput(shared.OneQ64, liquidity, amount, true)
	require.NoError(t, err)
	assert.Equal(t, new(uint256.Int).Rsh(shared.OneQ64, 1), next)

	next, err = GetNextSqrtPriceFromInput(shared.OneQ64, liquidity, new(uint256.Int), true)
	require.NoError(t, err)
	assert.Equal(t, shared.OneQ64, next)

	_, err = GetNextSqrtPriceFromInput(shared.OneQ64, new(uint256.Int), amount, true)
	assert.ErrorIs(t, err, shared.ErrInvalidAmount)
	_, err = GetNextSqrtPriceFromInput(new(uint256.Int), liquidity, amount, false)
	assert.ErrorIs(t, err, shared.ErrInvalidAmount)
}

func TestNextSqrtPriceFromOutput(t *testing.T) {
	liquidity := new(uint256.Int).Lsh(uint256.NewInt(1), 128)

	// B out of 2^63 halves the price from 1.0 to 0.5
	next, err := GetNextSqrtPriceFromOutput(shared.OneQ64, liquidity, new(uint256.Int).Lsh(uint256.NewInt(1), 63), true)
	require.NoError(t, err)
	assert.Equal(t, new(uint256.Int).Rsh(shared.OneQ64, 1), next)

	// draining more B than the curve holds
	_, err = GetNextSqrtPriceFromOutput(shared.OneQ64, liquidity, new(uint256.Int).Lsh(uint256.NewInt(1), 65), true)
	assert.ErrorIs(t, err, shared.ErrArithmeticOverflow)

	// A out with Δa * √P >= L has no finite price
	_, err = GetNextSqrtPriceFromOutput(shared.OneQ64, liquidity, new(uint256.Int).Lsh(uint256.NewInt(1), 64), false)
	assert.ErrorIs(t, err, shared.ErrArithmeticOverflow)
}

func TestLiquidityRoundTrip(t *testing.T) {
	lower, upper := q64(1), q64(2)

	tests := []struct {
		name      string
		amount    uint64
		liquidity func(amount, lower, upper *uint256.Int) (*uint256.Int, error)
		back      func(liquidity, lower, upper *uint256.Int, rounding shared.Rounding) (*uint256.Int, error)
	}{
		{"token A", 1000, GetLiquidityDeltaFromAmountA, GetAmountAFromLiquidityDelta},
		{"token B", 1000, GetLiquidityDeltaFromAmountB, GetAmountBFromLiquidityDelta},
		{"token A odd amount", 123_456_789, GetLiquidityDeltaFromAmountA, GetAmountAFromLiquidityDelta},
		{"token B odd amount", 987_654_321, GetLiquidityDeltaFromAmountB, GetAmountBFromLiquidityDelta},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := uint256.NewInt(tt.amount)
			liquidity, err := tt.liquidity(amount, lower, upper)
			require.NoError(t, err)
			require.False(t, liquidity.IsZero())

			down, err := tt.back(liquidity, lower, upper, shared.RoundingDown)
			require.NoError(t, err)
			up, err := tt.back(liquidity, lower, upper, shared.RoundingUp)
			require.NoError(t, err)

			assert.True(t, down.Cmp(amount) <= 0, "down %s > %d", down.Dec(), tt.amount)
			assert.True(t, up.Cmp(down) >= 0)
			assert.Equal(t, tt.amount, down.Uint64())
		})
	}
}

func TestLiquidityEmptyRange(t *testing.T) {
	_, err := GetLiquidityDeltaFromAmountA(uint256.NewInt(1), q64(2), q64(2))
	assert.ErrorIs(t, err, shared.ErrInvalidAmount)
	_, err = GetLiquidityDeltaFromAmountB(uint256.NewInt(1), q64(3), q64(2))
	assert.ErrorIs(t, err, shared.ErrInvalidAmount)

	amount, err := GetAmountBFromLiquidityDelta(uint256.NewInt(1_000_000), q64(2), q64(2), shared.RoundingUp)
	require.NoError(t, err)
	assert.True(t, amount.IsZero())
}
