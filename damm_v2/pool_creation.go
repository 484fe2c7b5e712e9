package dammv2

import (
	"fmt"

	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/krazyTry/cpamm-quote/damm_v2/math"
	"github.com/krazyTry/cpamm-quote/damm_v2/shared"
)

// amountAfterTransferFee is what reaches the vault when amount is sent.
func amountAfterTransferFee(amount *uint256.Int, tokenInfo *TokenInfo) (*uint256.Int, error) {
	included := math.CalculateTransferFeeIncludedAmount(amount, tokenInfo)
	return math.CheckedSub(amount, included.TransferFee)
}

// PreparePoolCreationSingleSide calculates liquidity for single-sided creation.
func (c *CpAmm) PreparePoolCreationSingleSide(params PreparePoolCreationSingleSide) (*uint256.Int, error) {
	if params.InitSqrtPrice == nil || params.MinSqrtPrice == nil || !params.InitSqrtPrice.Eq(params.MinSqrtPrice) {
		return nil, shared.ErrInvalidSingleSidedBootstrap
	}
	if isZero(params.TokenAAmount) {
		return nil, fmt.Errorf("%w: token A amount must be greater than 0", shared.ErrInvalidAmount)
	}
	if err := validatePriceRange(params.InitSqrtPrice, params.MinSqrtPrice, params.MaxSqrtPrice); err != nil {
		return nil, err
	}
	actualAmountIn, err := amountAfterTransferFee(params.TokenAAmount, params.TokenAInfo)
	if err != nil {
		return nil, err
	}
	return math.GetLiquidityDeltaFromAmountA(actualAmountIn, params.InitSqrtPrice, params.MaxSqrtPrice)
}

// PreparePoolCreationParams computes the initial sqrt price and liquidity of
// a pool seeded with both tokens.
func (c *CpAmm) PreparePoolCreationParams(params PreparePoolCreationParams) (*PreparedPoolCreation, error) {
	if isZero(params.TokenAAmount) && isZero(params.TokenBAmount) {
		return nil, fmt.Errorf("%w: invalid input amount", shared.ErrInvalidAmount)
	}
	if isZero(params.TokenAAmount) || isZero(params.TokenBAmount) {
		return nil, fmt.Errorf("%w: both amounts are required, use single-sided creation for token A only", shared.ErrInvalidAmount)
	}
	if err := validatePriceRange(params.MinSqrtPrice, params.MinSqrtPrice, params.MaxSqrtPrice); err != nil {
		return nil, err
	}

	actualAmountA, err := amountAfterTransferFee(params.TokenAAmount, params.TokenAInfo)
	if err != nil {
		return nil, err
	}
	actualAmountB, err := amountAfterTransferFee(params.TokenBAmount, params.TokenBInfo)
	if err != nil {
		return nil, err
	}

	initSqrtPrice, err := math.CalculateInitSqrtPrice(params.TokenAAmount, params.TokenBAmount, params.MinSqrtPrice, params.MaxSqrtPrice)
	if err != nil {
		return nil, err
	}
	if initSqrtPrice.Lt(params.MinSqrtPrice) || initSqrtPrice.Gt(params.MaxSqrtPrice) {
		return nil, fmt.Errorf("%w: init sqrt price %s", shared.ErrPriceOutOfRange, initSqrtPrice.Dec())
	}

	liquidityFromA, err := math.GetLiquidityDeltaFromAmountA(actualAmountA, initSqrtPrice, params.MaxSqrtPrice)
	if err != nil {
		return nil, err
	}
	liquidityFromB, err := math.GetLiquidityDeltaFromAmountB(actualAmountB, params.MinSqrtPrice, initSqrtPrice)
	if err != nil {
		return nil, err
	}

	liquidityDelta := math.Min(liquidityFromA, liquidityFromB)
	c.logger.Debug("pool creation",
		zap.Stringer("initSqrtPrice", initSqrtPrice),
		zap.Stringer("liquidityDelta", liquidityDelta),
	)
	return &PreparedPoolCreation{
		InitSqrtPrice:  initSqrtPrice,
		LiquidityDelta: liquidityDelta,
	}, nil
}
