package pool_fees

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/krazyTry/cpamm-quote/damm_v2/math"
	"github.com/krazyTry/cpamm-quote/damm_v2/shared"
)

// DynamicFee is the volatility state a pool exposes to the fee model.
// The accumulator is tracked on chain and is only read here.
type DynamicFee struct {
	VolatilityAccumulator *uint256.Int
	BinStep               uint16
	VariableFeeControl    uint32
}

// GetDynamicFeeNumerator returns ceil(variableFeeControl * (volatilityAccumulator * binStep)^2 / 1e11).
func GetDynamicFeeNumerator(volatilityAccumulator *uint256.Int, binStep uint16, variableFeeControl uint32) (*uint256.Int, error) {
	if variableFeeControl == 0 || volatilityAccumulator == nil {
		return new(uint256.Int), nil
	}
	vaBin, err := math.CheckedMul(volatilityAccumulator, uint256.NewInt(uint64(binStep)))
	if err != nil {
		return nil, err
	}
	squareVfaBin, err := math.CheckedMul(vaBin, vaBin)
	if err != nil {
		return nil, err
	}
	vFee, err := math.CheckedMul(uint256.NewInt(uint64(variableFeeControl)), squareVfaBin)
	if err != nil {
		return nil, err
	}
	vFee, err = math.CheckedAdd(vFee, shared.DynamicFeeRoundingOffset)
	if err != nil {
		return nil, err
	}
	// every intermediate is at most vFee, and the program computes them in u128
	if vFee.BitLen() > 128 {
		return nil, fmt.Errorf("%w: dynamic fee exceeds u128", shared.ErrArithmeticOverflow)
	}
	return vFee.Div(vFee, shared.DynamicFeeScalingFactor), nil
}

func (d *DynamicFee) FeeNumerator() (*uint256.Int, error) {
	if d == nil {
		return new(uint256.Int), nil
	}
	return GetDynamicFeeNumerator(d.VolatilityAccumulator, d.BinStep, d.VariableFeeControl)
}

// GetFeeNumerator combines the base schedule with the optional dynamic fee,
// capped at MaxFeeNumerator.
func GetFeeNumerator(currentPoint, activationPoint uint64, baseFee shared.BaseFeeHandler, dynamicFee *DynamicFee) (*uint256.Int, error) {
	feeNumerator, err := baseFee.GetBaseFeeNumerator(currentPoint, activationPoint)
	if err != nil {
		return nil, err
	}
	dynamicFeeNumerator, err := dynamicFee.FeeNumerator()
	if err != nil {
		return nil, err
	}
	feeNumerator, err = math.CheckedAdd(feeNumerator, dynamicFeeNumerator)
	if err != nil {
		return nil, err
	}
	maxFeeNumerator := uint256.NewInt(shared.MaxFeeNumerator)
	if feeNumerator.Gt(maxFeeNumerator) {
		return maxFeeNumerator, nil
	}
	return feeNumerator, nil
}
