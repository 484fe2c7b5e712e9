package helpers

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/krazyTry/cpamm-quote/damm_v2/shared"
)

// Vesting is the release schedule of a locked position.
type Vesting struct {
	CliffPoint             uint64
	PeriodFrequency        uint64
	CliffUnlockLiquidity   *uint256.Int
	LiquidityPerPeriod     *uint256.Int
	TotalReleasedLiquidity *uint256.Int
	NumberOfPeriod         uint16
}

type VestingPhase uint8

const (
	VestingPhaseLocked VestingPhase = iota
	VestingPhaseCliffReleased
	VestingPhasePeriodic
	VestingPhaseComplete
)

func (p VestingPhase) String() string {
	switch p {
	case VestingPhaseLocked:
		return "locked"
	case VestingPhaseCliffReleased:
		return "cliff_released"
	case VestingPhasePeriodic:
		return "periodic"
	case VestingPhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

func orZero(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return v
}

func vestingEndPoint(v *Vesting) *uint256.Int {
	end := new(uint256.Int).Mul(uint256.NewInt(v.PeriodFrequency), uint256.NewInt(uint64(v.NumberOfPeriod)))
	return end.Add(end, uint256.NewInt(v.CliffPoint))
}

func IsVestingComplete(v *Vesting, currentPoint uint64) bool {
	return uint256.NewInt(currentPoint).Cmp(vestingEndPoint(v)) >= 0
}

// cliffUnlockLiquidity + liquidityPerPeriod * numberOfPeriod
func GetTotalLockedLiquidity(v *Vesting) *uint256.Int {
	total := new(uint256.Int).Mul(orZero(v.LiquidityPerPeriod), uint256.NewInt(uint64(v.NumberOfPeriod)))
	return total.Add(total, orZero(v.CliffUnlockLiquidity))
}

func passedPeriods(v *Vesting, currentPoint uint64) uint64 {
	if currentPoint < v.CliffPoint || v.PeriodFrequency == 0 {
		return 0
	}
	passed := (currentPoint - v.CliffPoint) / v.PeriodFrequency
	if passed > uint64(v.NumberOfPeriod) {
		passed = uint64(v.NumberOfPeriod)
	}
	return passed
}

// GetAvailableVestingLiquidity returns what can be released at currentPoint
// and has not been released yet.
func GetAvailableVestingLiquidity(v *Vesting, currentPoint uint64) (*uint256.Int, error) {
	if currentPoint < v.CliffPoint {
		return new(uint256.Int), nil
	}

	unlocked := new(uint256.Int).Set(orZero(v.CliffUnlockLiquidity))
	if v.PeriodFrequency != 0 {
		periodic := new(uint256.Int).Mul(uint256.NewInt(passedPeriods(v, currentPoint)), orZero(v.LiquidityPerPeriod))
		unlocked.Add(unlocked, periodic)
	}

	released := orZero(v.TotalReleasedLiquidity)
	if released.Gt(unlocked) {
		return nil, fmt.Errorf("%w: released liquidity %s exceeds unlocked %s", shared.ErrInvalidAmount, released.Dec(), unlocked.Dec())
	}
	return new(uint256.Int).Sub(unlocked, released), nil
}

func GetVestingPhase(v *Vesting, currentPoint uint64) VestingPhase {
	switch {
	case currentPoint < v.CliffPoint:
		return VestingPhaseLocked
	case IsVestingComplete(v, currentPoint):
		return VestingPhaseComplete
	case passedPeriods(v, currentPoint) == 0:
		return VestingPhaseCliffReleased
	default:
		return VestingPhasePeriodic
	}
}
