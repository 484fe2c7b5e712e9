package pool_fees

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/krazyTry/cpamm-quote/damm_v2/shared"
)

func GetMaxFeeNumerator(poolVersion shared.PoolVersion) uint64 {
	switch poolVersion {
	case shared.PoolVersionV0:
		return shared.MaxFeeNumerator
	case shared.PoolVersionV1:
		return shared.MaxFeeNumeratorV1
	default:
		return 0
	}
}

func GetMaxFeeBps(poolVersion shared.PoolVersion) uint64 {
	switch poolVersion {
	case shared.PoolVersionV0:
		return shared.MaxFeeBps
	case shared.PoolVersionV1:
		return shared.MaxFeeBpsV1
	default:
		return 0
	}
}

// ValidateFeeScheduler rejects partial schedules and fees outside [MinFeeNumerator, max].
func ValidateFeeScheduler(numberOfPeriod uint16, periodFrequency, reductionFactor, cliffFeeNumerator uint64, mode shared.FeeSchedulerMode, poolVersion shared.PoolVersion) error {
	if periodFrequency != 0 || numberOfPeriod != 0 || reductionFactor != 0 {
		if numberOfPeriod == 0 || periodFrequency == 0 || reductionFactor == 0 {
			return fmt.Errorf("%w: numberOfPeriod, periodFrequency and reductionFactor must all be set", shared.ErrConfiguration)
		}
	}
	minFeeNumerator, err := GetMinBaseFeeNumerator(cliffFeeNumerator, numberOfPeriod, reductionFactor, mode)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrConfiguration, err)
	}
	maxFeeNumerator := uint256.NewInt(cliffFeeNumerator)
	if err := ValidateFeeFraction(minFeeNumerator, uint256.NewInt(shared.FeeDenominator)); err != nil {
		return err
	}
	if err := ValidateFeeFraction(maxFeeNumerator, uint256.NewInt(shared.FeeDenominator)); err != nil {
		return err
	}
	if minFeeNumerator.Lt(uint256.NewInt(shared.MinFeeNumerator)) {
		return fmt.Errorf("%w: min fee numerator %s below %d", shared.ErrConfiguration, minFeeNumerator.Dec(), shared.MinFeeNumerator)
	}
	if maxFeeNumerator.Gt(uint256.NewInt(GetMaxFeeNumerator(poolVersion))) {
		return fmt.Errorf("%w: max fee numerator %d above %d", shared.ErrConfiguration, cliffFeeNumerator, GetMaxFeeNumerator(poolVersion))
	}
	return nil
}

// ValidateFeeSchedulerBaseFeeIsStatic reports whether the schedule has fully decayed.
func ValidateFeeSchedulerBaseFeeIsStatic(currentPoint, activationPoint uint64, numberOfPeriod uint16, periodFrequency uint64) bool {
	schedulerExpirationPoint := new(uint256.Int).Mul(uint256.NewInt(uint64(numberOfPeriod)), uint256.NewInt(periodFrequency))
	schedulerExpirationPoint.Add(schedulerExpirationPoint, uint256.NewInt(activationPoint))
	return uint256.NewInt(currentPoint).Gt(schedulerExpirationPoint)
}

func ValidateFeeFraction(numerator, denominator *uint256.Int) error {
	if denominator.IsZero() || numerator.Cmp(denominator) >= 0 {
		return fmt.Errorf("%w: numerator must be less than denominator and denominator must be non-zero", shared.ErrConfiguration)
	}
	return nil
}

// ValidateDynamicFee checks the config-level dynamic fee parameters.
func ValidateDynamicFee(cfg DynamicFeeParams) error {
	if cfg.BinStep == 0 {
		return fmt.Errorf("%w: bin step must be greater than zero", shared.ErrConfiguration)
	}
	if cfg.FilterPeriod >= cfg.DecayPeriod {
		return fmt.Errorf("%w: filter period must be less than decay period", shared.ErrConfiguration)
	}
	if cfg.ReductionFactor > shared.BasisPointMax {
		return fmt.Errorf("%w: reduction factor %d exceeds %d", shared.ErrConfiguration, cfg.ReductionFactor, shared.BasisPointMax)
	}
	return nil
}
