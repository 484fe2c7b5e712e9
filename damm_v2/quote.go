package dammv2

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/krazyTry/cpamm-quote/damm_v2/helpers"
	"github.com/krazyTry/cpamm-quote/damm_v2/math"
	"github.com/krazyTry/cpamm-quote/damm_v2/shared"
)

// GetQuote calculates an exact-in swap quote against a pool snapshot.
func (c *CpAmm) GetQuote(params GetQuoteParams) (*GetQuoteResult, error) {
	if isZero(params.InAmount) {
		return nil, fmt.Errorf("%w: swap amount must be greater than 0", shared.ErrInvalidAmount)
	}
	if params.SlippageBps > shared.BasisPointMax {
		return nil, fmt.Errorf("%w: got %d", shared.ErrInvalidSlippage, params.SlippageBps)
	}
	poolState := params.PoolState
	if err := validatePoolState(poolState); err != nil {
		return nil, err
	}

	var aToB bool
	switch {
	case poolState.TokenAMint.Equals(params.InputTokenMint):
		aToB = true
	case poolState.TokenBMint.Equals(params.InputTokenMint):
		aToB = false
	default:
		return nil, fmt.Errorf("%w: %s", shared.ErrInvalidMint, params.InputTokenMint)
	}

	actualAmountIn := math.CalculateTransferFeeExcludedAmount(params.InAmount, params.InputTokenInfo).Amount

	currentPoint := GetCurrentPoint(poolState.ActivationType, params.CurrentTime, params.CurrentSlot)
	tradeFeeNumerator, err := GetTradeFeeNumerator(poolState, currentPoint)
	if err != nil {
		return nil, err
	}

	swap, err := math.GetSwapAmount(actualAmountIn, poolState.SqrtPrice, poolState.Liquidity, tradeFeeNumerator, aToB, poolState.CollectFeeMode)
	if err != nil {
		return nil, err
	}
	if swap.NextSqrtPrice.Lt(poolState.SqrtMinPrice) || swap.NextSqrtPrice.Gt(poolState.SqrtMaxPrice) {
		return nil, fmt.Errorf("%w: next sqrt price %s", shared.ErrPriceOutOfRange, swap.NextSqrtPrice.Dec())
	}

	actualAmountOut := math.CalculateTransferFeeExcludedAmount(swap.AmountOut, params.OutputTokenInfo).Amount
	minSwapOutAmount, err := helpers.GetMinAmountWithSlippage(actualAmountOut, params.SlippageBps)
	if err != nil {
		return nil, err
	}

	fees := math.SplitFees(
		swap.TotalFee,
		poolState.PoolFees.ProtocolFeePercent,
		poolState.PoolFees.ReferralFeePercent,
		poolState.PoolFees.PartnerFeePercent,
		params.HasReferral,
		HasPartner(poolState),
	)

	result := &GetQuoteResult{
		SwapInAmount:     params.InAmount.Clone(),
		ConsumedInAmount: actualAmountIn,
		SwapOutAmount:    actualAmountOut,
		MinSwapOutAmount: minSwapOutAmount,
		TotalFee:         swap.TotalFee,
		Fees:             fees,
		FeeNumerator:     tradeFeeNumerator,
		NextSqrtPrice:    swap.NextSqrtPrice,
		PriceImpact:      math.GetPriceImpact(swap.NextSqrtPrice, poolState.SqrtPrice),
	}

	c.logger.Debug("swap quote",
		zap.Bool("aToB", aToB),
		zap.Uint64("currentPoint", currentPoint),
		zap.Stringer("feeNumerator", tradeFeeNumerator),
		zap.Stringer("amountIn", actualAmountIn),
		zap.Stringer("amountOut", actualAmountOut),
		zap.Stringer("totalFee", swap.TotalFee),
		zap.Stringer("nextSqrtPrice", swap.NextSqrtPrice),
	)
	return result, nil
}
