package shared

import (
	"github.com/holiman/uint256"
)

const (
	LiquidityScale = 128
	ScaleOffset    = 64

	BasisPointMax  = 10_000
	FeeDenominator = 1_000_000_000

	MinFeeBps       = 1       // 0.01%
	MinFeeNumerator = 100_000 // 0.01%

	MaxFeeBps       = 5000        // 50%
	MaxFeeNumerator = 500_000_000 // 50%

	MaxFeeBpsV1       = 9900        // 99%
	MaxFeeNumeratorV1 = 990_000_000 // 99%

	DynamicFeeFilterPeriodDefault    = 10
	DynamicFeeDecayPeriodDefault     = 120
	DynamicFeeReductionFactorDefault = 5000 // 50%
	BinStepBpsDefault                = 1
	MaxPriceChangeBpsDefault         = 1500 // 15%

	MaxExponential = 0x80000

	U16Max = 65535
)

// The values below are shared pointers. Read them, pass them as operands or
// Clone them, but never use one as the receiver of a uint256 method.
var (
	OneQ64 = new(uint256.Int).Lsh(uint256.NewInt(1), ScaleOffset)
	// OneQ128 is 1.0 at liquidity scale.
	OneQ128 = new(uint256.Int).Lsh(uint256.NewInt(1), LiquidityScale)

	MinSqrtPrice = uint256.MustFromDecimal("4295048016")
	MaxSqrtPrice = uint256.MustFromDecimal("79226673521066979257578248091")

	DynamicFeeScalingFactor  = uint256.NewInt(100_000_000_000)
	DynamicFeeRoundingOffset = uint256.NewInt(99_999_999_999)

	// bin_step << 64 / BASIS_POINT_MAX
	BinStepBpsU128Default = uint256.MustFromDecimal("1844674407370955")

	U128Max = uint256.MustFromDecimal("340282366920938463463374607431768211455")
)
