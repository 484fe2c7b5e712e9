package math

import (
	"github.com/holiman/uint256"

	"github.com/krazyTry/cpamm-quote/damm_v2/helpers"
)

type TransferFeeIncludedAmount struct {
	Amount      *uint256.Int
	TransferFee *uint256.Int
}

type TransferFeeExcludedAmount struct {
	Amount      *uint256.Int
	TransferFee *uint256.Int
}

func calculatePreFeeAmount(transferFee helpers.TransferFee, postFeeAmount *uint256.Int) *uint256.Int {
	if postFeeAmount.IsZero() {
		return new(uint256.Int)
	}
	if transferFee.BasisPoints == 0 {
		return new(uint256.Int).Set(postFeeAmount)
	}
	maximumFee := uint256.NewInt(transferFee.MaximumFee)
	if transferFee.BasisPoints == helpers.MaxFeeBasisPoints {
		return new(uint256.Int).Add(postFeeAmount, maximumFee)
	}
	oneInBps := uint256.NewInt(helpers.MaxFeeBasisPoints)
	numerator := new(uint256.Int).Mul(postFeeAmount, oneInBps)
	denominator := new(uint256.Int).Sub(oneInBps, uint256.NewInt(uint64(transferFee.BasisPoints)))
	rawPreFee := new(uint256.Int).Add(numerator, denominator)
	rawPreFee.Sub(rawPreFee, uint256.NewInt(1))
	rawPreFee.Div(rawPreFee, denominator)

	if new(uint256.Int).Sub(rawPreFee, postFeeAmount).Cmp(maximumFee) >= 0 {
		return new(uint256.Int).Add(postFeeAmount, maximumFee)
	}
	return rawPreFee
}

func calculateInverseFee(transferFee helpers.TransferFee, postFeeAmount *uint256.Int) *uint256.Int {
	preFeeAmount := calculatePreFeeAmount(transferFee, postFeeAmount)
	return CalculateTransferFee(transferFee, preFeeAmount)
}

// CalculateTransferFee is the Token-2022 fee: ceil(amount*bps/10000) capped at the maximum fee.
func CalculateTransferFee(transferFee helpers.TransferFee, amount *uint256.Int) *uint256.Int {
	if transferFee.BasisPoints == 0 || amount.IsZero() {
		return new(uint256.Int)
	}
	maximumFee := uint256.NewInt(transferFee.MaximumFee)
	fee := new(uint256.Int).Mul(amount, uint256.NewInt(uint64(transferFee.BasisPoints)))
	fee.Add(fee, uint256.NewInt(helpers.MaxFeeBasisPoints-1))
	fee.Div(fee, uint256.NewInt(helpers.MaxFeeBasisPoints))
	if fee.Gt(maximumFee) {
		return maximumFee
	}
	return fee
}

// CalculateTransferFeeIncludedAmount returns the gross amount a sender must
// transfer so the receiver gets transferFeeExcludedAmount.
func CalculateTransferFeeIncludedAmount(transferFeeExcludedAmount *uint256.Int, tokenInfo *helpers.TokenInfo) TransferFeeIncludedAmount {
	if transferFeeExcludedAmount.IsZero() {
		return TransferFeeIncludedAmount{Amount: new(uint256.Int), TransferFee: new(uint256.Int)}
	}
	epochFee, ok := tokenInfo.EpochFee()
	if !ok {
		return TransferFeeIncludedAmount{Amount: new(uint256.Int).Set(transferFeeExcludedAmount), TransferFee: new(uint256.Int)}
	}
	var transferFee *uint256.Int
	if epochFee.BasisPoints == helpers.MaxFeeBasisPoints {
		transferFee = uint256.NewInt(epochFee.MaximumFee)
	} else {
		transferFee = calculateInverseFee(epochFee, transferFeeExcludedAmount)
	}
	return TransferFeeIncludedAmount{
		Amount:      new(uint256.Int).Add(transferFeeExcludedAmount, transferFee),
		TransferFee: transferFee,
	}
}

// CalculateTransferFeeExcludedAmount returns what the receiver gets when
// transferFeeIncludedAmount is sent.
func CalculateTransferFeeExcludedAmount(transferFeeIncludedAmount *uint256.Int, tokenInfo *helpers.TokenInfo) TransferFeeExcludedAmount {
	epochFee, ok := tokenInfo.EpochFee()
	if !ok {
		return TransferFeeExcludedAmount{Amount: new(uint256.Int).Set(transferFeeIncludedAmount), TransferFee: new(uint256.Int)}
	}
	fee := CalculateTransferFee(epochFee, transferFeeIncludedAmount)
	if fee.Gt(transferFeeIncludedAmount) {
		fee = new(uint256.Int).Set(transferFeeIncludedAmount)
	}
	return TransferFeeExcludedAmount{
		Amount:      new(uint256.Int).Sub(transferFeeIncludedAmount, fee),
		TransferFee: fee,
	}
}
