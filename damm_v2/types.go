package dammv2

import (
	solanago "github.com/gagliardetto/solana-go"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	"github.com/krazyTry/cpamm-quote/damm_v2/helpers"
	"github.com/krazyTry/cpamm-quote/damm_v2/math/pool_fees"
	"github.com/krazyTry/cpamm-quote/damm_v2/shared"
)

// Enums.
type Rounding = shared.Rounding

const (
	RoundingUp   = shared.RoundingUp
	RoundingDown = shared.RoundingDown
)

type CollectFeeMode = shared.CollectFeeMode

const (
	CollectFeeModeBothToken = shared.CollectFeeModeBothToken
	CollectFeeModeOnlyB     = shared.CollectFeeModeOnlyB
)

type ActivationType = shared.ActivationType

const (
	ActivationTypeSlot      = shared.ActivationTypeSlot
	ActivationTypeTimestamp = shared.ActivationTypeTimestamp
)

type FeeSchedulerMode = shared.FeeSchedulerMode

const (
	FeeSchedulerModeLinear      = shared.FeeSchedulerModeLinear
	FeeSchedulerModeExponential = shared.FeeSchedulerModeExponential
)

type PoolVersion = shared.PoolVersion

type SplitFees = shared.SplitFees

// TokenInfo carries the Token-2022 data needed for transfer fee calculations.
type TokenInfo = helpers.TokenInfo

type BaseFeeState struct {
	CliffFeeNumerator uint64
	NumberOfPeriod    uint16
	PeriodFrequency   uint64
	ReductionFactor   uint64
	FeeSchedulerMode  FeeSchedulerMode
}

// Scheduler returns the base fee handler for this state.
func (b BaseFeeState) Scheduler() pool_fees.FeeScheduler {
	return pool_fees.FeeScheduler{
		CliffFeeNumerator: b.CliffFeeNumerator,
		NumberOfPeriod:    b.NumberOfPeriod,
		PeriodFrequency:   b.PeriodFrequency,
		ReductionFactor:   b.ReductionFactor,
		FeeSchedulerMode:  b.FeeSchedulerMode,
	}
}

// DynamicFeeState is the volatility tracker stored on the pool. Only
// VolatilityAccumulator, BinStep and VariableFeeControl affect a quote.
type DynamicFeeState struct {
	Initialized              bool
	MaxVolatilityAccumulator uint32
	VariableFeeControl       uint32
	BinStep                  uint16
	FilterPeriod             uint16
	DecayPeriod              uint16
	ReductionFactor          uint16
	LastUpdateTimestamp      uint64
	BinStepU128              *uint256.Int
	SqrtPriceReference       *uint256.Int
	VolatilityAccumulator    *uint256.Int
	VolatilityReference      *uint256.Int
}

type PoolFeesState struct {
	BaseFee            BaseFeeState
	DynamicFee         DynamicFeeState
	ProtocolFeePercent uint8
	PartnerFeePercent  uint8
	ReferralFeePercent uint8
}

// PoolState is a read-only snapshot of a pool account.
type PoolState struct {
	TokenAMint       solanago.PublicKey
	TokenBMint       solanago.PublicKey
	Partner          solanago.PublicKey
	SqrtPrice        *uint256.Int
	Liquidity        *uint256.Int
	SqrtMinPrice     *uint256.Int
	SqrtMaxPrice     *uint256.Int
	ActivationType   ActivationType
	ActivationPoint  uint64
	CollectFeeMode   CollectFeeMode
	Version          PoolVersion
	PoolFees         PoolFeesState
	FeeAPerLiquidity *uint256.Int
	FeeBPerLiquidity *uint256.Int
}

type UserRewardInfo struct {
	RewardPerTokenCheckpoint *uint256.Int
	RewardPendings           uint64
	TotalClaimedRewards      uint64
}

// PositionState is a read-only snapshot of a position account.
type PositionState struct {
	Pool                     solanago.PublicKey
	NftMint                  solanago.PublicKey
	FeeAPerTokenCheckpoint   *uint256.Int
	FeeBPerTokenCheckpoint   *uint256.Int
	FeeAPending              uint64
	FeeBPending              uint64
	UnlockedLiquidity        *uint256.Int
	VestedLiquidity          *uint256.Int
	PermanentLockedLiquidity *uint256.Int
	RewardInfos              []UserRewardInfo
}

// VestingState is a vesting account: the position it locks and its schedule.
type VestingState struct {
	Position solanago.PublicKey
	helpers.Vesting
}

type VestingWithAccount struct {
	Account      solanago.PublicKey
	VestingState *VestingState
}

type GetQuoteParams struct {
	InAmount        *uint256.Int
	InputTokenMint  solanago.PublicKey
	SlippageBps     uint16
	HasReferral     bool
	PoolState       *PoolState
	CurrentTime     uint64
	CurrentSlot     uint64
	InputTokenInfo  *TokenInfo
	OutputTokenInfo *TokenInfo
}

type GetQuoteResult struct {
	SwapInAmount     *uint256.Int    `json:"swapInAmount"`
	ConsumedInAmount *uint256.Int    `json:"consumedInAmount"`
	SwapOutAmount    *uint256.Int    `json:"swapOutAmount"`
	MinSwapOutAmount *uint256.Int    `json:"minSwapOutAmount"`
	TotalFee         *uint256.Int    `json:"totalFee"`
	Fees             SplitFees       `json:"fees"`
	FeeNumerator     *uint256.Int    `json:"feeNumerator"`
	NextSqrtPrice    *uint256.Int    `json:"nextSqrtPrice"`
	PriceImpact      decimal.Decimal `json:"priceImpact"`
}

type LiquidityDeltaParams struct {
	MaxAmountTokenA *uint256.Int
	MaxAmountTokenB *uint256.Int
	SqrtPrice       *uint256.Int
	SqrtMinPrice    *uint256.Int
	SqrtMaxPrice    *uint256.Int
}

type GetDepositQuoteParams struct {
	InAmount        *uint256.Int
	IsTokenA        bool
	SqrtPrice       *uint256.Int
	MinSqrtPrice    *uint256.Int
	MaxSqrtPrice    *uint256.Int
	InputTokenInfo  *TokenInfo
	OutputTokenInfo *TokenInfo
}

type DepositQuote struct {
	ActualInputAmount   *uint256.Int `json:"actualInputAmount"`
	ConsumedInputAmount *uint256.Int `json:"consumedInputAmount"`
	LiquidityDelta      *uint256.Int `json:"liquidityDelta"`
	OutputAmount        *uint256.Int `json:"outputAmount"`
}

type GetWithdrawQuoteParams struct {
	LiquidityDelta  *uint256.Int
	SqrtPrice       *uint256.Int
	MinSqrtPrice    *uint256.Int
	MaxSqrtPrice    *uint256.Int
	TokenATokenInfo *TokenInfo
	TokenBTokenInfo *TokenInfo
}

type WithdrawQuote struct {
	LiquidityDelta *uint256.Int `json:"liquidityDelta"`
	OutAmountA     *uint256.Int `json:"outAmountA"`
	OutAmountB     *uint256.Int `json:"outAmountB"`
}

type PreparePoolCreationParams struct {
	TokenAAmount *uint256.Int
	TokenBAmount *uint256.Int
	MinSqrtPrice *uint256.Int
	MaxSqrtPrice *uint256.Int
	TokenAInfo   *TokenInfo
	TokenBInfo   *TokenInfo
}

type PreparedPoolCreation struct {
	InitSqrtPrice  *uint256.Int `json:"initSqrtPrice"`
	LiquidityDelta *uint256.Int `json:"liquidityDelta"`
}

type PreparePoolCreationSingleSide struct {
	TokenAAmount  *uint256.Int
	MinSqrtPrice  *uint256.Int
	MaxSqrtPrice  *uint256.Int
	InitSqrtPrice *uint256.Int
	TokenAInfo    *TokenInfo
}

type UnClaimReward struct {
	FeeTokenA *uint256.Int `json:"feeTokenA"`
	FeeTokenB *uint256.Int `json:"feeTokenB"`
	Rewards   []uint64     `json:"rewards"`
}
