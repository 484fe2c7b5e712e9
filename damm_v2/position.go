package dammv2

import (
	"github.com/holiman/uint256"

	"github.com/krazyTry/cpamm-quote/damm_v2/helpers"
	"github.com/krazyTry/cpamm-quote/damm_v2/math"
	"github.com/krazyTry/cpamm-quote/damm_v2/shared"
)

const (
	ReasonPermanentlyLocked = "Position is permanently locked"
	ReasonIncompleteVesting = "Position has incomplete vesting schedule"
)

func IsLockedPosition(position *PositionState) bool {
	totalLocked := new(uint256.Int).Add(orZero(position.VestedLiquidity), orZero(position.PermanentLockedLiquidity))
	return !totalLocked.IsZero()
}

func IsPermanentLockedPosition(position *PositionState) bool {
	return !isZero(position.PermanentLockedLiquidity)
}

// CanUnlockPosition reports whether every lock on the position has expired.
// Positions without vestings are always unlockable.
func CanUnlockPosition(position *PositionState, vestings []VestingWithAccount, currentPoint uint64) (bool, string) {
	if len(vestings) > 0 {
		if IsPermanentLockedPosition(position) {
			return false, ReasonPermanentlyLocked
		}
		for _, v := range vestings {
			if v.VestingState == nil || !helpers.IsVestingComplete(&v.VestingState.Vesting, currentPoint) {
				return false, ReasonIncompleteVesting
			}
		}
	}
	return true, ""
}

func totalPositionLiquidity(position *PositionState) *uint256.Int {
	out := new(uint256.Int).Add(orZero(position.VestedLiquidity), orZero(position.PermanentLockedLiquidity))
	return out.Add(out, orZero(position.UnlockedLiquidity))
}

// (liquidity * (feePerLiquidity - checkpoint)) >> 128
func accruedFee(liquidity, feePerLiquidity, checkpoint *uint256.Int) (*uint256.Int, error) {
	delta, err := math.CheckedSub(orZero(feePerLiquidity), orZero(checkpoint))
	if err != nil {
		return nil, err
	}
	return math.MulShr(liquidity, delta, shared.LiquidityScale, RoundingDown)
}

// GetUnClaimReward returns the fees and rewards a position can claim.
func GetUnClaimReward(poolState *PoolState, position *PositionState) (*UnClaimReward, error) {
	liquidity := totalPositionLiquidity(position)

	feeA, err := accruedFee(liquidity, poolState.FeeAPerLiquidity, position.FeeAPerTokenCheckpoint)
	if err != nil {
		return nil, err
	}
	feeB, err := accruedFee(liquidity, poolState.FeeBPerLiquidity, position.FeeBPerTokenCheckpoint)
	if err != nil {
		return nil, err
	}

	rewards := make([]uint64, 0, len(position.RewardInfos))
	for _, item := range position.RewardInfos {
		rewards = append(rewards, item.RewardPendings)
	}
	return &UnClaimReward{
		FeeTokenA: feeA.Add(feeA, uint256.NewInt(position.FeeAPending)),
		FeeTokenB: feeB.Add(feeB, uint256.NewInt(position.FeeBPending)),
		Rewards:   rewards,
	}, nil
}
