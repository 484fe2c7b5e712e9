package pool_fees

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/krazyTry/cpamm-quote/damm_v2/math"
	"github.com/krazyTry/cpamm-quote/damm_v2/shared"
)

// cliffFeeNumerator - period * reductionFactor
func GetFeeNumeratorOnLinearFeeScheduler(cliffFeeNumerator, reductionFactor uint64, period uint16) (*uint256.Int, error) {
	reduction := new(uint256.Int).Mul(uint256.NewInt(uint64(period)), uint256.NewInt(reductionFactor))
	fee, err := math.CheckedSub(uint256.NewInt(cliffFeeNumerator), reduction)
	if err != nil {
		return nil, fmt.Errorf("linear fee below zero at period %d: %w", period, err)
	}
	return fee, nil
}

// cliffFeeNumerator * (1 - reductionFactor/BASIS_POINT_MAX)^period
func GetFeeNumeratorOnExponentialFeeScheduler(cliffFeeNumerator, reductionFactor uint64, period uint16) (*uint256.Int, error) {
	if period == 0 {
		return uint256.NewInt(cliffFeeNumerator), nil
	}
	if reductionFactor > shared.BasisPointMax {
		return nil, fmt.Errorf("%w: reduction factor %d exceeds %d", shared.ErrConfiguration, reductionFactor, shared.BasisPointMax)
	}
	bps := new(uint256.Int).Lsh(uint256.NewInt(reductionFactor), shared.ScaleOffset)
	bps.Div(bps, uint256.NewInt(shared.BasisPointMax))
	base := new(uint256.Int).Sub(shared.OneQ64, bps)
	result := math.Pow(base, int64(period))
	return math.MulShr(uint256.NewInt(cliffFeeNumerator), result, shared.ScaleOffset, shared.RoundingDown)
}

// GetFeeNumeratorByPeriod evaluates the schedule at an elapsed period, capped at numberOfPeriod.
func GetFeeNumeratorByPeriod(cliffFeeNumerator uint64, numberOfPeriod uint16, period uint64, reductionFactor uint64, mode shared.FeeSchedulerMode) (*uint256.Int, error) {
	if period > uint64(numberOfPeriod) {
		period = uint64(numberOfPeriod)
	}
	switch mode {
	case shared.FeeSchedulerModeLinear:
		return GetFeeNumeratorOnLinearFeeScheduler(cliffFeeNumerator, reductionFactor, uint16(period))
	case shared.FeeSchedulerModeExponential:
		return GetFeeNumeratorOnExponentialFeeScheduler(cliffFeeNumerator, reductionFactor, uint16(period))
	default:
		return nil, fmt.Errorf("%w: invalid fee scheduler mode %d", shared.ErrConfiguration, mode)
	}
}

// GetBaseFeeNumerator returns the cliff fee until the schedule is active,
// then decays it by the number of whole periods elapsed since activation.
func GetBaseFeeNumerator(cliffFeeNumerator uint64, numberOfPeriod uint16, periodFrequency, reductionFactor uint64, mode shared.FeeSchedulerMode, currentPoint, activationPoint uint64) (*uint256.Int, error) {
	if periodFrequency == 0 || currentPoint < activationPoint {
		return uint256.NewInt(cliffFeeNumerator), nil
	}
	period := (currentPoint - activationPoint) / periodFrequency
	return GetFeeNumeratorByPeriod(cliffFeeNumerator, numberOfPeriod, period, reductionFactor, mode)
}

func GetMinBaseFeeNumerator(cliffFeeNumerator uint64, numberOfPeriod uint16, reductionFactor uint64, mode shared.FeeSchedulerMode) (*uint256.Int, error) {
	return GetFeeNumeratorByPeriod(cliffFeeNumerator, numberOfPeriod, uint64(numberOfPeriod), reductionFactor, mode)
}
