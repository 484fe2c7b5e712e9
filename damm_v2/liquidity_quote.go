package dammv2

import (
	"fmt"

	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/krazyTry/cpamm-quote/damm_v2/math"
	"github.com/krazyTry/cpamm-quote/damm_v2/shared"
)

// GetLiquidityDelta returns the largest liquidity both max amounts can fund.
func (c *CpAmm) GetLiquidityDelta(params LiquidityDeltaParams) (*uint256.Int, error) {
	if err := validatePriceRange(params.SqrtPrice, params.SqrtMinPrice, params.SqrtMaxPrice); err != nil {
		return nil, err
	}
	liquidityFromA, err := math.GetLiquidityDeltaFromAmountA(orZero(params.MaxAmountTokenA), params.SqrtPrice, params.SqrtMaxPrice)
	if err != nil {
		return nil, err
	}
	liquidityFromB, err := math.GetLiquidityDeltaFromAmountB(orZero(params.MaxAmountTokenB), params.SqrtMinPrice, params.SqrtPrice)
	if err != nil {
		return nil, err
	}
	return math.Min(liquidityFromA, liquidityFromB), nil
}

// GetDepositQuote quotes a one-sided deposit: the liquidity the input buys and
// the paired amount the depositor must also send, rounded up.
func (c *CpAmm) GetDepositQuote(params GetDepositQuoteParams) (*DepositQuote, error) {
	if isZero(params.InAmount) {
		return nil, fmt.Errorf("%w: deposit amount must be greater than 0", shared.ErrInvalidAmount)
	}
	if err := validatePriceRange(params.SqrtPrice, params.MinSqrtPrice, params.MaxSqrtPrice); err != nil {
		return nil, err
	}
	actualAmountIn := math.CalculateTransferFeeExcludedAmount(params.InAmount, params.InputTokenInfo).Amount

	var (
		liquidityDelta  *uint256.Int
		rawOutputAmount *uint256.Int
		err             error
	)
	if params.IsTokenA {
		liquidityDelta, err = math.GetLiquidityDeltaFromAmountA(actualAmountIn, params.SqrtPrice, params.MaxSqrtPrice)
		if err != nil {
			return nil, err
		}
		rawOutputAmount, err = math.GetAmountBFromLiquidityDelta(liquidityDelta, params.MinSqrtPrice, params.SqrtPrice, RoundingUp)
	} else {
		liquidityDelta, err = math.GetLiquidityDeltaFromAmountB(actualAmountIn, params.MinSqrtPrice, params.SqrtPrice)
		if err != nil {
			return nil, err
		}
		rawOutputAmount, err = math.GetAmountAFromLiquidityDelta(liquidityDelta, params.SqrtPrice, params.MaxSqrtPrice, RoundingUp)
	}
	if err != nil {
		return nil, err
	}

	outputAmount := math.CalculateTransferFeeIncludedAmount(rawOutputAmount, params.OutputTokenInfo).Amount

	c.logger.Debug("deposit quote",
		zap.Bool("isTokenA", params.IsTokenA),
		zap.Stringer("liquidityDelta", liquidityDelta),
		zap.Stringer("outputAmount", outputAmount),
	)
	return &DepositQuote{
		ActualInputAmount:   actualAmountIn,
		ConsumedInputAmount: params.InAmount.Clone(),
		LiquidityDelta:      liquidityDelta,
		OutputAmount:        outputAmount,
	}, nil
}

// GetWithdrawQuote quotes the token amounts a liquidity delta redeems for,
// rounded down and net of transfer fees.
func (c *CpAmm) GetWithdrawQuote(params GetWithdrawQuoteParams) (*WithdrawQuote, error) {
	if isZero(params.LiquidityDelta) {
		return nil, fmt.Errorf("%w: liquidity delta must be greater than 0", shared.ErrInvalidAmount)
	}
	if err := validatePriceRange(params.SqrtPrice, params.MinSqrtPrice, params.MaxSqrtPrice); err != nil {
		return nil, err
	}
	amountA, err := math.GetAmountAFromLiquidityDelta(params.LiquidityDelta, params.SqrtPrice, params.MaxSqrtPrice, RoundingDown)
	if err != nil {
		return nil, err
	}
	amountB, err := math.GetAmountBFromLiquidityDelta(params.LiquidityDelta, params.MinSqrtPrice, params.SqrtPrice, RoundingDown)
	if err != nil {
		return nil, err
	}

	outA := math.CalculateTransferFeeExcludedAmount(amountA, params.TokenATokenInfo).Amount
	outB := math.CalculateTransferFeeExcludedAmount(amountB, params.TokenBTokenInfo).Amount

	c.logger.Debug("withdraw quote",
		zap.Stringer("liquidityDelta", params.LiquidityDelta),
		zap.Stringer("outAmountA", outA),
		zap.Stringer("outAmountB", outB),
	)
	return &WithdrawQuote{
		LiquidityDelta: params.LiquidityDelta.Clone(),
		OutAmountA:     outA,
		OutAmountB:     outB,
	}, nil
}
