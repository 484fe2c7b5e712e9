package shared

import "github.com/holiman/uint256"

// Enums and common types shared by math/pool_fees, helpers and dammv2.
type Rounding uint8

const (
	RoundingUp   Rounding = 0
	RoundingDown Rounding = 1
)

func (r Rounding) String() string {
	if r == RoundingUp {
		return "up"
	}
	return "down"
}

type FeeSchedulerMode uint8

const (
	FeeSchedulerModeLinear      FeeSchedulerMode = 0
	FeeSchedulerModeExponential FeeSchedulerMode = 1
)

func (m FeeSchedulerMode) String() string {
	switch m {
	case FeeSchedulerModeLinear:
		return "linear"
	case FeeSchedulerModeExponential:
		return "exponential"
	default:
		return "unknown"
	}
}

type CollectFeeMode uint8

const (
	CollectFeeModeBothToken CollectFeeMode = 0
	CollectFeeModeOnlyB     CollectFeeMode = 1
)

type TradeDirection uint8

const (
	TradeDirectionAtoB TradeDirection = 0
	TradeDirectionBtoA TradeDirection = 1
)

type ActivationType uint8

const (
	ActivationTypeSlot      ActivationType = 0
	ActivationTypeTimestamp ActivationType = 1
)

type PoolVersion uint8

const (
	PoolVersionV0 PoolVersion = 0
	PoolVersionV1 PoolVersion = 1
)

// FeeMode tells which side of a swap the trading fee is taken from.
type FeeMode struct {
	FeeOnInput   bool
	FeesOnTokenA bool
}

type SplitFees struct {
	TradingFee  *uint256.Int `json:"tradingFee"`
	ProtocolFee *uint256.Int `json:"protocolFee"`
	ReferralFee *uint256.Int `json:"referralFee"`
	PartnerFee  *uint256.Int `json:"partnerFee"`
}

// BaseFeeHandler is implemented by base fee schedules.
type BaseFeeHandler interface {
	Validate(poolVersion PoolVersion) error
	GetBaseFeeNumerator(currentPoint, activationPoint uint64) (*uint256.Int, error)
	ValidateBaseFeeIsStatic(currentPoint, activationPoint uint64) bool
	GetMinFeeNumerator() (*uint256.Int, error)
	GetMaxFeeNumerator() *uint256.Int
}
