package math

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/krazyTry/cpamm-quote/damm_v2/shared"
)

// SwapAmount is the raw curve result of an exact-in swap, before any
// transfer fee or slippage is applied.
type SwapAmount struct {
	AmountOut     *uint256.Int
	TotalFee      *uint256.Int
	NextSqrtPrice *uint256.Int
}

// GetFeeMode picks the side a swap pays its trading fee on. OnlyB pools take
// B-denominated fees, so a B to A swap pays on its input.
func GetFeeMode(collectFeeMode shared.CollectFeeMode, tradeDirection shared.TradeDirection) shared.FeeMode {
	bToA := tradeDirection == shared.TradeDirectionBtoA
	return shared.FeeMode{
		FeeOnInput:   bToA && collectFeeMode == shared.CollectFeeModeOnlyB,
		FeesOnTokenA: bToA && collectFeeMode == shared.CollectFeeModeBothToken,
	}
}

// GetTotalFeeOnAmount rounds the trading fee up.
func GetTotalFeeOnAmount(amount, tradeFeeNumerator *uint256.Int) (*uint256.Int, error) {
	return MulDiv(amount, tradeFeeNumerator, uint256.NewInt(shared.FeeDenominator), shared.RoundingUp)
}

// GetExcludedFeeAmount splits an amount into (amount - fee, fee).
func GetExcludedFeeAmount(tradeFeeNumerator, includedFeeAmount *uint256.Int) (*uint256.Int, *uint256.Int, error) {
	tradingFee, err := GetTotalFeeOnAmount(includedFeeAmount, tradeFeeNumerator)
	if err != nil {
		return nil, nil, err
	}
	excluded, err := CheckedSub(includedFeeAmount, tradingFee)
	if err != nil {
		return nil, nil, err
	}
	return excluded, tradingFee, nil
}

// GetIncludedFeeAmount is the inverse of GetExcludedFeeAmount: the smallest
// gross amount whose post-fee value covers excludedFeeAmount.
func GetIncludedFeeAmount(tradeFeeNumerator, excludedFeeAmount *uint256.Int) (*uint256.Int, *uint256.Int, error) {
	feeDenominator := uint256.NewInt(shared.FeeDenominator)
	if tradeFeeNumerator.Cmp(feeDenominator) >= 0 {
		return nil, nil, fmt.Errorf("%w: fee numerator %s", shared.ErrConfiguration, tradeFeeNumerator.Dec())
	}
	denominator := new(uint256.Int).Sub(feeDenominator, tradeFeeNumerator)
	included, err := MulDiv(excludedFeeAmount, feeDenominator, denominator, shared.RoundingUp)
	if err != nil {
		return nil, nil, err
	}
	return included, new(uint256.Int).Sub(included, excludedFeeAmount), nil
}

// SplitFees divides a trading fee between LPs, the protocol, a referrer and
// the pool partner. Percents are whole numbers out of 100.
func SplitFees(feeAmount *uint256.Int, protocolFeePercent, referralFeePercent, partnerFeePercent uint8, hasReferral, hasPartner bool) shared.SplitFees {
	hundred := uint256.NewInt(100)

	protocolFee := new(uint256.Int).Mul(feeAmount, uint256.NewInt(uint64(protocolFeePercent)))
	protocolFee.Div(protocolFee, hundred)
	tradingFee := new(uint256.Int).Sub(feeAmount, protocolFee)

	referralFee := new(uint256.Int)
	if hasReferral {
		referralFee.Mul(protocolFee, uint256.NewInt(uint64(referralFeePercent)))
		referralFee.Div(referralFee, hundred)
	}
	protocolFeeAfterReferral := new(uint256.Int).Sub(protocolFee, referralFee)

	partnerFee := new(uint256.Int)
	if hasPartner && partnerFeePercent > 0 {
		partnerFee.Mul(protocolFeeAfterReferral, uint256.NewInt(uint64(partnerFeePercent)))
		partnerFee.Div(partnerFee, hundred)
	}

	return shared.SplitFees{
		TradingFee:  tradingFee,
		ProtocolFee: new(uint256.Int).Sub(protocolFeeAfterReferral, partnerFee),
		ReferralFee: referralFee,
		PartnerFee:  partnerFee,
	}
}

// GetSwapAmount runs an exact-in swap along the curve. The trading fee is
// taken from the input or the output depending on the pool's collect fee mode.
func GetSwapAmount(inAmount, sqrtPrice, liquidity, tradeFeeNumerator *uint256.Int, aToB bool, collectFeeMode shared.CollectFeeMode) (SwapAmount, error) {
	tradeDirection := shared.TradeDirectionAtoB
	if !aToB {
		tradeDirection = shared.TradeDirectionBtoA
	}
	feeMode := GetFeeMode(collectFeeMode, tradeDirection)

	actualInAmount := new(uint256.Int).Set(inAmount)
	totalFee := new(uint256.Int)
	var err error
	if feeMode.FeeOnInput {
		actualInAmount, totalFee, err = GetExcludedFeeAmount(tradeFeeNumerator, inAmount)
		if err != nil {
			return SwapAmount{}, err
		}
	}

	nextSqrtPrice, err := GetNextSqrtPriceFromInput(sqrtPrice, liquidity, actualInAmount, aToB)
	if err != nil {
		return SwapAmount{}, err
	}

	var outAmount *uint256.Int
	if aToB {
		outAmount, err = GetAmountBFromLiquidityDelta(liquidity, nextSqrtPrice, sqrtPrice, shared.RoundingDown)
	} else {
		outAmount, err = GetAmountAFromLiquidityDelta(liquidity, sqrtPrice, nextSqrtPrice, shared.RoundingDown)
	}
	if err != nil {
		return SwapAmount{}, err
	}

	if !feeMode.FeeOnInput {
		outAmount, totalFee, err = GetExcludedFeeAmount(tradeFeeNumerator, outAmount)
		if err != nil {
			return SwapAmount{}, err
		}
	}

	return SwapAmount{
		AmountOut:     outAmount,
		TotalFee:      totalFee,
		NextSqrtPrice: nextSqrtPrice,
	}, nil
}
