package pool_fees

import (
	"github.com/holiman/uint256"

	"github.com/krazyTry/cpamm-quote/damm_v2/shared"
)

// FeeScheduler implements BaseFeeHandler.
type FeeScheduler struct {
	CliffFeeNumerator uint64                  `json:"cliffFeeNumerator"`
	NumberOfPeriod    uint16                  `json:"numberOfPeriod"`
	PeriodFrequency   uint64                  `json:"periodFrequency"`
	ReductionFactor   uint64                  `json:"reductionFactor"`
	FeeSchedulerMode  shared.FeeSchedulerMode `json:"feeSchedulerMode"`
}

var _ shared.BaseFeeHandler = FeeScheduler{}

func (f FeeScheduler) Validate(poolVersion shared.PoolVersion) error {
	return ValidateFeeScheduler(f.NumberOfPeriod, f.PeriodFrequency, f.ReductionFactor, f.CliffFeeNumerator, f.FeeSchedulerMode, poolVersion)
}

func (f FeeScheduler) GetBaseFeeNumerator(currentPoint, activationPoint uint64) (*uint256.Int, error) {
	return GetBaseFeeNumerator(f.CliffFeeNumerator, f.NumberOfPeriod, f.PeriodFrequency, f.ReductionFactor, f.FeeSchedulerMode, currentPoint, activationPoint)
}

func (f FeeScheduler) ValidateBaseFeeIsStatic(currentPoint, activationPoint uint64) bool {
	return ValidateFeeSchedulerBaseFeeIsStatic(currentPoint, activationPoint, f.NumberOfPeriod, f.PeriodFrequency)
}

func (f FeeScheduler) GetMinFeeNumerator() (*uint256.Int, error) {
	return GetMinBaseFeeNumerator(f.CliffFeeNumerator, f.NumberOfPeriod, f.ReductionFactor, f.FeeSchedulerMode)
}

func (f FeeScheduler) GetMaxFeeNumerator() *uint256.Int {
	return uint256.NewInt(f.CliffFeeNumerator)
}
