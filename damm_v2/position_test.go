package dammv2

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/cpamm-quote/damm_v2/helpers"
	"github.com/krazyTry/cpamm-quote/damm_v2/shared"
)

func testVestingState() *VestingState {
	return &VestingState{
		Position: mintA,
		Vesting: helpers.Vesting{
			CliffPoint:             100,
			PeriodFrequency:        10,
			NumberOfPeriod:         5,
			CliffUnlockLiquidity:   uint256.NewInt(50),
			LiquidityPerPeriod:     uint256.NewInt(10),
			TotalReleasedLiquidity: new(uint256.Int),
		},
	}
}

func TestCanUnlockPosition(t *testing.T) {
	vested := &PositionState{VestedLiquidity: uint256.NewInt(100)}
	permanent := &PositionState{PermanentLockedLiquidity: uint256.NewInt(1)}
	vestings := []VestingWithAccount{{Account: mintB, VestingState: testVestingState()}}

	tests := []struct {
		name       string
		position   *PositionState
		vestings   []VestingWithAccount
		point      uint64
		want       bool
		wantReason string
	}{
		{"no vestings", vested, nil, 0, true, ""},
		{"vesting in progress", vested, vestings, 149, false, ReasonIncompleteVesting},
		{"vesting done", vested, vestings, 150, true, ""},
		{"permanent lock", permanent, vestings, 150, false, ReasonPermanentlyLocked},
		{"missing vesting state", vested, []VestingWithAccount{{Account: mintB}}, 1_000, false, ReasonIncompleteVesting},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := CanUnlockPosition(tt.position, tt.vestings, tt.point)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestLockedPosition(t *testing.T) {
	assert.False(t, IsLockedPosition(&PositionState{UnlockedLiquidity: uint256.NewInt(5)}))
	assert.True(t, IsLockedPosition(&PositionState{VestedLiquidity: uint256.NewInt(5)}))
	assert.True(t, IsLockedPosition(&PositionState{PermanentLockedLiquidity: uint256.NewInt(5)}))
	assert.False(t, IsPermanentLockedPosition(&PositionState{VestedLiquidity: uint256.NewInt(5)}))
	assert.True(t, IsPermanentLockedPosition(&PositionState{PermanentLockedLiquidity: uint256.NewInt(5)}))
}

func TestGetUnClaimReward(t *testing.T) {
	pool := testPool(t)
	pool.FeeAPerLiquidity = new(uint256.Int).Mul(uint256.NewInt(3), shared.OneQ128)

	position := &PositionState{
		UnlockedLiquidity:        uint256.NewInt(600),
		VestedLiquidity:          uint256.NewInt(300),
		PermanentLockedLiquidity: uint256.NewInt(100),
		FeeAPerTokenCheckpoint:   shared.OneQ128.Clone(),
		FeeAPending:              5,
		FeeBPending:              1,
		RewardInfos: []UserRewardInfo{
			{RewardPendings: 7},
			{RewardPendings: 9},
		},
	}

	reward, err := GetUnClaimReward(pool, position)
	require.NoError(t, err)
	assert.Equal(t, uint64(2_005), reward.FeeTokenA.Uint64())
	assert.Equal(t, uint64(1), reward.FeeTokenB.Uint64())
	assert.Equal(t, []uint64{7, 9}, reward.Rewards)

	position.FeeAPerTokenCheckpoint = new(uint256.Int).Mul(uint256.NewInt(4), shared.OneQ128)
	_, err = GetUnClaimReward(pool, position)
	assert.ErrorIs(t, err, shared.ErrArithmeticOverflow)
}
