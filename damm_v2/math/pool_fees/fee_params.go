package pool_fees

import (
	"fmt"
	fmath "math"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	"github.com/krazyTry/cpamm-quote/damm_v2/shared"
	"github.com/krazyTry/cpamm-quote/decimal_math"
)

// DynamicFeeParams is the config-level dynamic fee a pool is created with.
type DynamicFeeParams struct {
	BinStep                  uint16       `json:"binStep"`
	BinStepU128              *uint256.Int `json:"binStepU128"`
	FilterPeriod             uint16       `json:"filterPeriod"`
	DecayPeriod              uint16       `json:"decayPeriod"`
	ReductionFactor          uint16       `json:"reductionFactor"`
	MaxVolatilityAccumulator uint32       `json:"maxVolatilityAccumulator"`
	VariableFeeControl       uint32       `json:"variableFeeControl"`
}

func BpsToFeeNumerator(bps uint64) uint64 {
	return bps * shared.FeeDenominator / shared.BasisPointMax
}

func FeeNumeratorToBps(feeNumerator uint64) uint64 {
	return feeNumerator * shared.BasisPointMax / shared.FeeDenominator
}

// GetBaseFeeParams fits a fee schedule that decays from maxBaseFeeBps to
// minBaseFeeBps over numberOfPeriod periods spanning totalDuration points.
func GetBaseFeeParams(maxBaseFeeBps, minBaseFeeBps uint64, mode shared.FeeSchedulerMode, numberOfPeriod uint16, totalDuration uint64) (FeeScheduler, error) {
	if maxBaseFeeBps == minBaseFeeBps {
		if numberOfPeriod != 0 || totalDuration != 0 {
			return FeeScheduler{}, fmt.Errorf("%w: numberOfPeriod and totalDuration must both be zero", shared.ErrConfiguration)
		}
		return FeeScheduler{CliffFeeNumerator: BpsToFeeNumerator(maxBaseFeeBps)}, nil
	}

	if numberOfPeriod == 0 {
		return FeeScheduler{}, fmt.Errorf("%w: total periods must be greater than zero", shared.ErrConfiguration)
	}
	if maxBaseFeeBps > FeeNumeratorToBps(shared.MaxFeeNumerator) {
		return FeeScheduler{}, fmt.Errorf("%w: maxBaseFeeBps (%d bps) exceeds maximum allowed value of %d bps", shared.ErrConfiguration, maxBaseFeeBps, FeeNumeratorToBps(shared.MaxFeeNumerator))
	}
	if minBaseFeeBps > maxBaseFeeBps {
		return FeeScheduler{}, fmt.Errorf("%w: minBaseFee bps must be less than or equal to maxBaseFee bps", shared.ErrConfiguration)
	}
	if totalDuration == 0 {
		return FeeScheduler{}, fmt.Errorf("%w: numberOfPeriod and totalDuration must both greater than zero", shared.ErrConfiguration)
	}

	maxBaseFeeNumerator := BpsToFeeNumerator(maxBaseFeeBps)
	minBaseFeeNumerator := BpsToFeeNumerator(minBaseFeeBps)

	var reductionFactor uint64
	switch mode {
	case shared.FeeSchedulerModeLinear:
		reductionFactor = (maxBaseFeeNumerator - minBaseFeeNumerator) / uint64(numberOfPeriod)
	case shared.FeeSchedulerModeExponential:
		ratio := float64(minBaseFeeNumerator) / float64(maxBaseFeeNumerator)
		decayBase := fmath.Pow(ratio, 1/float64(numberOfPeriod))
		reductionFactor = uint64(fmath.Floor(shared.BasisPointMax * (1 - decayBase)))
	default:
		return FeeScheduler{}, fmt.Errorf("%w: invalid fee scheduler mode %d", shared.ErrConfiguration, mode)
	}

	return FeeScheduler{
		CliffFeeNumerator: maxBaseFeeNumerator,
		NumberOfPeriod:    numberOfPeriod,
		PeriodFrequency:   totalDuration / uint64(numberOfPeriod),
		ReductionFactor:   reductionFactor,
		FeeSchedulerMode:  mode,
	}, nil
}

// GetDynamicFeeParams sizes the variable fee control so that a price move of
// maxPriceChangeBps yields a dynamic fee of 20% of the base fee.
func GetDynamicFeeParams(baseFeeBps, maxPriceChangeBps uint64) (DynamicFeeParams, error) {
	if maxPriceChangeBps > shared.MaxPriceChangeBpsDefault {
		return DynamicFeeParams{}, fmt.Errorf("%w: maxPriceChangeBps (%d bps) must be less than or equal to %d", shared.ErrConfiguration, maxPriceChangeBps, shared.MaxPriceChangeBpsDefault)
	}

	priceRatio := decimal.NewFromInt(int64(maxPriceChangeBps)).
		Div(decimal.NewFromInt(shared.BasisPointMax)).
		Add(decimal.NewFromInt(1))
	sqrtPriceRatioQ64, overflow := uint256.FromBig(
		decimal_math.Sqrt(priceRatio, 256).
			Mul(decimal.NewFromBigInt(shared.OneQ64.ToBig(), 0)).
			Floor().
			BigInt(),
	)
	if overflow {
		return DynamicFeeParams{}, shared.ErrArithmeticOverflow
	}

	deltaBinId := new(uint256.Int).Sub(sqrtPriceRatioQ64, shared.OneQ64)
	deltaBinId.Div(deltaBinId, shared.BinStepBpsU128Default)
	deltaBinId.Mul(deltaBinId, uint256.NewInt(2))

	maxVolatilityAccumulator := new(uint256.Int).Mul(deltaBinId, uint256.NewInt(shared.BasisPointMax))
	if !maxVolatilityAccumulator.IsUint64() || maxVolatilityAccumulator.Uint64() > fmath.MaxUint32 {
		return DynamicFeeParams{}, fmt.Errorf("%w: max volatility accumulator %s", shared.ErrArithmeticOverflow, maxVolatilityAccumulator.Dec())
	}

	squareVfaBin := new(uint256.Int).Mul(maxVolatilityAccumulator, uint256.NewInt(shared.BinStepBpsDefault))
	squareVfaBin.Mul(squareVfaBin, squareVfaBin)

	maxDynamicFeeNumerator := BpsToFeeNumerator(baseFeeBps) * 20 / 100
	vFee := new(uint256.Int).Mul(uint256.NewInt(maxDynamicFeeNumerator), shared.DynamicFeeScalingFactor)
	if vFee.Lt(shared.DynamicFeeRoundingOffset) {
		return DynamicFeeParams{}, fmt.Errorf("%w: base fee too small for a dynamic fee", shared.ErrConfiguration)
	}
	vFee.Sub(vFee, shared.DynamicFeeRoundingOffset)
	variableFeeControl := vFee.Div(vFee, squareVfaBin)
	if !variableFeeControl.IsUint64() || variableFeeControl.Uint64() > fmath.MaxUint32 {
		return DynamicFeeParams{}, fmt.Errorf("%w: variable fee control %s", shared.ErrArithmeticOverflow, variableFeeControl.Dec())
	}

	return DynamicFeeParams{
		BinStep:                  shared.BinStepBpsDefault,
		BinStepU128:              new(uint256.Int).Set(shared.BinStepBpsU128Default),
		FilterPeriod:             shared.DynamicFeeFilterPeriodDefault,
		DecayPeriod:              shared.DynamicFeeDecayPeriodDefault,
		ReductionFactor:          shared.DynamicFeeReductionFactorDefault,
		MaxVolatilityAccumulator: uint32(maxVolatilityAccumulator.Uint64()),
		VariableFeeControl:       uint32(variableFeeControl.Uint64()),
	}, nil
}
