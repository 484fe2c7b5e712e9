package dammv2

import (
	"encoding/base64"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/cpamm-quote/damm_v2/helpers"
	"github.com/krazyTry/cpamm-quote/damm_v2/shared"
)

const poolSnapshot = `{
  "tokenAMint": "So11111111111111111111111111111111111111112",
  "tokenBMint": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
  "sqrtPrice": "18446744073709551616",
  "liquidity": "100000000000000000000000000000000000",
  "sqrtMinPrice": "4295048016",
  "sqrtMaxPrice": "79226673521066979257578248091",
  "activationType": 1,
  "activationPoint": 1700000000,
  "collectFeeMode": 1,
  "version": 1,
  "feeAPerLiquidity": "1020847100762815390390123822295304634368",
  "poolFees": {
    "baseFee": {
      "cliffFeeNumerator": 400000000,
      "numberOfPeriod": 120,
      "periodFrequency": 10,
      "reductionFactor": 3250000,
      "feeSchedulerMode": 0
    },
    "protocolFeePercent": 20,
    "partnerFeePercent": 0,
    "referralFeePercent": 20,
    "dynamicFee": {
      "initialized": true,
      "maxVolatilityAccumulator": 14460000,
      "variableFeeControl": 3826,
      "binStep": 1,
      "filterPeriod": 10,
      "decayPeriod": 120,
      "reductionFactor": 5000,
      "lastUpdateTimestamp": 1700000500,
      "binStepU128": "1844674407370955",
      "volatilityAccumulator": "14460000"
    }
  }
}`

func TestParsePoolState(t *testing.T) {
	pool, err := ParsePoolState([]byte(poolSnapshot))
	if err != nil {
		t.Fatal("ParsePoolState() fail", err)
	}

	assert.True(t, pool.TokenAMint.Equals(mintA))
	assert.True(t, pool.TokenBMint.Equals(mintB))
	assert.Equal(t, shared.OneQ64, pool.SqrtPrice)
	assert.Equal(t, "100000000000000000000000000000000000", pool.Liquidity.Dec())
	assert.Equal(t, shared.MinSqrtPrice, pool.SqrtMinPrice)
	assert.Equal(t, shared.MaxSqrtPrice, pool.SqrtMaxPrice)
	assert.Equal(t, ActivationTypeTimestamp, pool.ActivationType)
	assert.Equal(t, uint64(1_700_000_000), pool.ActivationPoint)
	assert.Equal(t, CollectFeeModeOnlyB, pool.CollectFeeMode)
	assert.Equal(t, shared.PoolVersionV1, pool.Version)
	assert.Equal(t, new(uint256.Int).Mul(uint256.NewInt(3), shared.OneQ128), pool.FeeAPerLiquidity)
	assert.True(t, pool.FeeBPerLiquidity.IsZero())

	fees := pool.PoolFees
	assert.Equal(t, BaseFeeState{
		CliffFeeNumerator: 400_000_000,
		NumberOfPeriod:    120,
		PeriodFrequency:   10,
		ReductionFactor:   3_250_000,
		FeeSchedulerMode:  FeeSchedulerModeLinear,
	}, fees.BaseFee)
	assert.Equal(t, uint8(20), fees.ProtocolFeePercent)
	assert.Equal(t, uint8(20), fees.ReferralFeePercent)

	dynamic := fees.DynamicFee
	assert.True(t, dynamic.Initialized)
	assert.Equal(t, uint32(14_460_000), dynamic.MaxVolatilityAccumulator)
	assert.Equal(t, uint32(3826), dynamic.VariableFeeControl)
	assert.Equal(t, uint16(120), dynamic.DecayPeriod)
	assert.Equal(t, shared.BinStepBpsU128Default, dynamic.BinStepU128)
	assert.Equal(t, uint64(14_460_000), dynamic.VolatilityAccumulator.Uint64())
	assert.True(t, dynamic.VolatilityReference.IsZero())

	// a snapshot feeds straight into the quote engine
	quote, err := NewCpAmm().GetQuote(GetQuoteParams{
		InAmount:       uint256.NewInt(1_000_000),
		InputTokenMint: mintA,
		PoolState:      pool,
		CurrentTime:    1_700_000_010,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(396_750_000+7_999_845), quote.FeeNumerator.Uint64())
}

func TestParsePoolStateErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"tokenAMint": `},
		{"missing mint", `{"tokenBMint": "So11111111111111111111111111111111111111112"}`},
		{"bad mint", `{"tokenAMint": "not-base58!", "tokenBMint": "So11111111111111111111111111111111111111112"}`},
		{"u128 overflow", `{"tokenAMint": "So11111111111111111111111111111111111111112", "tokenBMint": "So11111111111111111111111111111111111111112", "sqrtPrice": "340282366920938463463374607431768211456"}`},
		{"negative u128", `{"tokenAMint": "So11111111111111111111111111111111111111112", "tokenBMint": "So11111111111111111111111111111111111111112", "sqrtPrice": "-1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePoolState([]byte(tt.data))
			assert.ErrorIs(t, err, shared.ErrInvalidAccountData)
		})
	}
}

func TestParsePositionAndVesting(t *testing.T) {
	position, err := ParsePositionState([]byte(`{
  "pool": "So11111111111111111111111111111111111111112",
  "unlockedLiquidity": "600",
  "vestedLiquidity": "300",
  "permanentLockedLiquidity": "100",
  "feeAPerTokenCheckpoint": "340282366920938463463374607431768211456",
  "feeAPending": 5,
  "rewardInfos": [{"rewardPendings": 7}, {"rewardPendings": 9}]
}`))
	require.NoError(t, err)
	assert.True(t, position.Pool.Equals(mintA))
	assert.True(t, position.NftMint.IsZero())
	assert.Equal(t, uint64(600), position.UnlockedLiquidity.Uint64())
	assert.Equal(t, shared.OneQ128, position.FeeAPerTokenCheckpoint)
	assert.Equal(t, uint64(5), position.FeeAPending)
	require.Len(t, position.RewardInfos, 2)
	assert.Equal(t, uint64(9), position.RewardInfos[1].RewardPendings)

	vesting, err := ParseVestingState([]byte(`{
  "position": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
  "cliffPoint": 100,
  "periodFrequency": 10,
  "numberOfPeriod": 5,
  "cliffUnlockLiquidity": "50",
  "liquidityPerPeriod": "10"
}`))
	require.NoError(t, err)
	assert.Equal(t, testVestingState().Vesting, vesting.Vesting)

	ok, reason := CanUnlockPosition(position, []VestingWithAccount{{VestingState: vesting}}, 149)
	assert.False(t, ok)
	assert.Equal(t, ReasonPermanentlyLocked, reason)
}

func TestParseTokenInfo(t *testing.T) {
	t.Run("explicit config", func(t *testing.T) {
		info, err := ParseTokenInfo([]byte(`{
  "mint": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
  "decimals": 6,
  "currentEpoch": 700,
  "transferFeeConfig": {
    "olderTransferFee": {"epoch": 0, "maximumFee": 1000, "transferFeeBasisPoints": 50},
    "newerTransferFee": {"epoch": 650, "maximumFee": 2000, "transferFeeBasisPoints": 100}
  }
}`))
		require.NoError(t, err)
		assert.Equal(t, uint8(6), info.Decimals)
		fee, ok := info.EpochFee()
		require.True(t, ok)
		assert.Equal(t, helpers.TransferFee{Epoch: 650, MaximumFee: 2000, BasisPoints: 100}, fee)
	})

	t.Run("plain mint", func(t *testing.T) {
		info, err := ParseTokenInfo([]byte(`{"mint": "So11111111111111111111111111111111111111112", "decimals": 9}`))
		require.NoError(t, err)
		assert.False(t, info.HasTransferFee())
	})

	t.Run("raw account data", func(t *testing.T) {
		data := make([]byte, helpers.MintBaseSize)
		data[44] = 9
		info, err := ParseTokenInfo([]byte(`{"mint": "So11111111111111111111111111111111111111112", "data": "` + base64.StdEncoding.EncodeToString(data) + `"}`))
		require.NoError(t, err)
		assert.Equal(t, uint8(9), info.Decimals)
	})

	t.Run("basis points above 100%", func(t *testing.T) {
		_, err := ParseTokenInfo([]byte(`{
  "mint": "So11111111111111111111111111111111111111112",
  "transferFeeConfig": {"newerTransferFee": {"transferFeeBasisPoints": 10001}}
}`))
		assert.ErrorIs(t, err, shared.ErrInvalidAccountData)
	})
}
