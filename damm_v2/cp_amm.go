package dammv2

import (
	"fmt"

	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/krazyTry/cpamm-quote/damm_v2/math/pool_fees"
	"github.com/krazyTry/cpamm-quote/damm_v2/shared"
)

// CpAmm quotes swaps, deposits and withdrawals against DAMM-V2 pool snapshots.
// It holds no pool state and is safe for concurrent use.
type CpAmm struct {
	logger *zap.Logger
}

type Option func(*CpAmm)

func WithLogger(logger *zap.Logger) Option {
	return func(c *CpAmm) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func NewCpAmm(opts ...Option) *CpAmm {
	c := &CpAmm{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsDynamicFeeEnabled reports whether the pool charges a volatility fee.
func IsDynamicFeeEnabled(poolState *PoolState) bool {
	return poolState.PoolFees.DynamicFee.Initialized
}

// HasPartner reports whether a partner shares the protocol fee.
func HasPartner(poolState *PoolState) bool {
	return !poolState.Partner.IsZero()
}

// GetCurrentPoint picks the clock the pool activates on.
func GetCurrentPoint(activationType ActivationType, currentTime, currentSlot uint64) uint64 {
	if activationType == ActivationTypeTimestamp {
		return currentTime
	}
	return currentSlot
}

func dynamicFeeOf(poolState *PoolState) *pool_fees.DynamicFee {
	if !IsDynamicFeeEnabled(poolState) {
		return nil
	}
	d := poolState.PoolFees.DynamicFee
	return &pool_fees.DynamicFee{
		VolatilityAccumulator: d.VolatilityAccumulator,
		BinStep:               d.BinStep,
		VariableFeeControl:    d.VariableFeeControl,
	}
}

// GetTradeFeeNumerator returns base plus dynamic fee at currentPoint, capped.
func GetTradeFeeNumerator(poolState *PoolState, currentPoint uint64) (*uint256.Int, error) {
	return pool_fees.GetFeeNumerator(
		currentPoint,
		poolState.ActivationPoint,
		poolState.PoolFees.BaseFee.Scheduler(),
		dynamicFeeOf(poolState),
	)
}

func validatePoolState(poolState *PoolState) error {
	if poolState == nil {
		return fmt.Errorf("%w: pool state is required", shared.ErrInvalidAmount)
	}
	if poolState.Liquidity == nil {
		return fmt.Errorf("%w: pool state is missing liquidity", shared.ErrInvalidAmount)
	}
	return validatePriceRange(poolState.SqrtPrice, poolState.SqrtMinPrice, poolState.SqrtMaxPrice)
}

func validatePriceRange(sqrtPrice, sqrtMinPrice, sqrtMaxPrice *uint256.Int) error {
	if sqrtPrice == nil || sqrtMinPrice == nil || sqrtMaxPrice == nil {
		return fmt.Errorf("%w: sqrt price range is incomplete", shared.ErrInvalidAmount)
	}
	if sqrtPrice.Lt(sqrtMinPrice) || sqrtPrice.Gt(sqrtMaxPrice) {
		return fmt.Errorf("%w: sqrt price %s outside [%s, %s]", shared.ErrPriceOutOfRange,
			sqrtPrice.Dec(), sqrtMinPrice.Dec(), sqrtMaxPrice.Dec())
	}
	return nil
}

func isZero(v *uint256.Int) bool {
	return v == nil || v.IsZero()
}

func orZero(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return v
}
