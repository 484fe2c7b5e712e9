package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/holiman/uint256"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	dammv2 "github.com/krazyTry/cpamm-quote/damm_v2"
	"github.com/krazyTry/cpamm-quote/damm_v2/helpers"
	"github.com/krazyTry/cpamm-quote/damm_v2/math/pool_fees"
	"github.com/krazyTry/cpamm-quote/damm_v2/shared"
	"github.com/krazyTry/cpamm-quote/internal/config"
)

type env struct {
	cfg    config.Config
	logger *zap.Logger
	amm    *dammv2.CpAmm
}

func setup(cmd *cobra.Command) (*env, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return &env{
		cfg:    cfg,
		logger: logger,
		amm:    dammv2.NewCpAmm(dammv2.WithLogger(logger)),
	}, nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	// stdout carries the quote
	cfg.OutputPaths = []string{"stderr"}

	return cfg.Build()
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}

func readSnapshot(cmd *cobra.Command, flag string) ([]byte, error) {
	path, _ := cmd.Flags().GetString(flag)
	if path == "" {
		return nil, fmt.Errorf("--%s is required", flag)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", flag, err)
	}
	return data, nil
}

func loadPool(cmd *cobra.Command) (*dammv2.PoolState, error) {
	data, err := readSnapshot(cmd, "pool")
	if err != nil {
		return nil, err
	}
	return dammv2.ParsePoolState(data)
}

func loadPosition(cmd *cobra.Command) (*dammv2.PositionState, error) {
	data, err := readSnapshot(cmd, "position")
	if err != nil {
		return nil, err
	}
	return dammv2.ParsePositionState(data)
}

// loadTokenInfo returns nil when the flag is unset, meaning a plain SPL mint.
func loadTokenInfo(cmd *cobra.Command, flag string, epoch uint64) (*dammv2.TokenInfo, error) {
	if path, _ := cmd.Flags().GetString(flag); path == "" {
		return nil, nil
	}
	data, err := readSnapshot(cmd, flag)
	if err != nil {
		return nil, err
	}
	info, err := dammv2.ParseTokenInfo(data)
	if err != nil {
		return nil, err
	}
	if epoch != 0 {
		info.CurrentEpoch = epoch
	}
	return info, nil
}

func amountFlag(cmd *cobra.Command, flag string, required bool) (*uint256.Int, error) {
	raw, _ := cmd.Flags().GetString(flag)
	if raw == "" {
		if required {
			return nil, fmt.Errorf("--%s is required", flag)
		}
		return new(uint256.Int), nil
	}
	v, err := uint256.FromDecimal(raw)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", flag, err)
	}
	return v, nil
}

func runSwap(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	pool, err := loadPool(cmd)
	if err != nil {
		return err
	}
	amount, err := amountFlag(cmd, "amount", true)
	if err != nil {
		return err
	}
	mintRaw, _ := cmd.Flags().GetString("input-mint")
	inputMint, err := solanago.PublicKeyFromBase58(mintRaw)
	if err != nil {
		return fmt.Errorf("--input-mint: %w", err)
	}
	inputInfo, err := loadTokenInfo(cmd, "input-token", e.cfg.CurrentEpoch)
	if err != nil {
		return err
	}
	outputInfo, err := loadTokenInfo(cmd, "output-token", e.cfg.CurrentEpoch)
	if err != nil {
		return err
	}
	hasReferral, _ := cmd.Flags().GetBool("referral")

	quote, err := e.amm.GetQuote(dammv2.GetQuoteParams{
		InAmount:        amount,
		InputTokenMint:  inputMint,
		SlippageBps:     e.cfg.SlippageBps,
		HasReferral:     hasReferral,
		PoolState:       pool,
		CurrentTime:     e.cfg.CurrentTime,
		CurrentSlot:     e.cfg.CurrentSlot,
		InputTokenInfo:  inputInfo,
		OutputTokenInfo: outputInfo,
	})
	if err != nil {
		return err
	}
	return printJSON(cmd, quote)
}

func runDeposit(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	pool, err := loadPool(cmd)
	if err != nil {
		return err
	}
	amount, err := amountFlag(cmd, "amount", true)
	if err != nil {
		return err
	}
	isTokenA, _ := cmd.Flags().GetBool("token-a")
	inputInfo, err := loadTokenInfo(cmd, "input-token", e.cfg.CurrentEpoch)
	if err != nil {
		return err
	}
	outputInfo, err := loadTokenInfo(cmd, "output-token", e.cfg.CurrentEpoch)
	if err != nil {
		return err
	}

	quote, err := e.amm.GetDepositQuote(dammv2.GetDepositQuoteParams{
		InAmount:        amount,
		IsTokenA:        isTokenA,
		SqrtPrice:       pool.SqrtPrice,
		MinSqrtPrice:    pool.SqrtMinPrice,
		MaxSqrtPrice:    pool.SqrtMaxPrice,
		InputTokenInfo:  inputInfo,
		OutputTokenInfo: outputInfo,
	})
	if err != nil {
		return err
	}
	return printJSON(cmd, quote)
}

func runWithdraw(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	pool, err := loadPool(cmd)
	if err != nil {
		return err
	}
	liquidity, err := amountFlag(cmd, "liquidity", true)
	if err != nil {
		return err
	}
	tokenAInfo, err := loadTokenInfo(cmd, "token-a-info", e.cfg.CurrentEpoch)
	if err != nil {
		return err
	}
	tokenBInfo, err := loadTokenInfo(cmd, "token-b-info", e.cfg.CurrentEpoch)
	if err != nil {
		return err
	}

	quote, err := e.amm.GetWithdrawQuote(dammv2.GetWithdrawQuoteParams{
		LiquidityDelta:  liquidity,
		SqrtPrice:       pool.SqrtPrice,
		MinSqrtPrice:    pool.SqrtMinPrice,
		MaxSqrtPrice:    pool.SqrtMaxPrice,
		TokenATokenInfo: tokenAInfo,
		TokenBTokenInfo: tokenBInfo,
	})
	if err != nil {
		return err
	}
	return printJSON(cmd, quote)
}

func runCreatePool(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	amountA, err := amountFlag(cmd, "amount-a", true)
	if err != nil {
		return err
	}
	amountB, err := amountFlag(cmd, "amount-b", false)
	if err != nil {
		return err
	}
	minSqrtPrice, err := amountFlag(cmd, "min-sqrt-price", true)
	if err != nil {
		return err
	}
	maxSqrtPrice, err := amountFlag(cmd, "max-sqrt-price", true)
	if err != nil {
		return err
	}
	tokenAInfo, err := loadTokenInfo(cmd, "token-a-info", e.cfg.CurrentEpoch)
	if err != nil {
		return err
	}

	if amountB.IsZero() {
		liquidity, err := e.amm.PreparePoolCreationSingleSide(dammv2.PreparePoolCreationSingleSide{
			TokenAAmount:  amountA,
			MinSqrtPrice:  minSqrtPrice,
			MaxSqrtPrice:  maxSqrtPrice,
			InitSqrtPrice: minSqrtPrice,
			TokenAInfo:    tokenAInfo,
		})
		if err != nil {
			return err
		}
		return printJSON(cmd, dammv2.PreparedPoolCreation{
			InitSqrtPrice:  minSqrtPrice,
			LiquidityDelta: liquidity,
		})
	}

	tokenBInfo, err := loadTokenInfo(cmd, "token-b-info", e.cfg.CurrentEpoch)
	if err != nil {
		return err
	}
	prepared, err := e.amm.PreparePoolCreationParams(dammv2.PreparePoolCreationParams{
		TokenAAmount: amountA,
		TokenBAmount: amountB,
		MinSqrtPrice: minSqrtPrice,
		MaxSqrtPrice: maxSqrtPrice,
		TokenAInfo:   tokenAInfo,
		TokenBInfo:   tokenBInfo,
	})
	if err != nil {
		return err
	}
	return printJSON(cmd, prepared)
}

type vestingReport struct {
	Account            string       `json:"account,omitempty"`
	Phase              string       `json:"phase"`
	Complete           bool         `json:"complete"`
	TotalLocked        *uint256.Int `json:"totalLocked"`
	AvailableToRelease *uint256.Int `json:"availableToRelease"`
}

type unlockReport struct {
	Vestings  []vestingReport `json:"vestings"`
	CanUnlock *bool           `json:"canUnlock,omitempty"`
	Reason    string          `json:"reason,omitempty"`
}

func runVesting(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	currentPoint, _ := cmd.Flags().GetUint64("current-point")
	paths, _ := cmd.Flags().GetStringSlice("vesting")
	rawAccounts, _ := cmd.Flags().GetStringSlice("vesting-account")

	var vestings []dammv2.VestingWithAccount
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read vesting: %w", err)
		}
		v, err := dammv2.ParseVestingState(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		vestings = append(vestings, dammv2.VestingWithAccount{VestingState: v})
	}
	for _, raw := range rawAccounts {
		data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("--vesting-account: %w", err)
		}
		v, err := dammv2.DecodeVestingAccount(data)
		if err != nil {
			return err
		}
		vestings = append(vestings, dammv2.VestingWithAccount{VestingState: v})
	}

	report := unlockReport{Vestings: make([]vestingReport, 0, len(vestings))}
	for _, v := range vestings {
		available, err := helpers.GetAvailableVestingLiquidity(&v.VestingState.Vesting, currentPoint)
		if err != nil {
			return err
		}
		item := vestingReport{
			Phase:              helpers.GetVestingPhase(&v.VestingState.Vesting, currentPoint).String(),
			Complete:           helpers.IsVestingComplete(&v.VestingState.Vesting, currentPoint),
			TotalLocked:        helpers.GetTotalLockedLiquidity(&v.VestingState.Vesting),
			AvailableToRelease: available,
		}
		if !v.Account.IsZero() {
			item.Account = v.Account.String()
		}
		report.Vestings = append(report.Vestings, item)
	}

	if path, _ := cmd.Flags().GetString("position"); path != "" {
		position, err := loadPosition(cmd)
		if err != nil {
			return err
		}
		ok, reason := dammv2.CanUnlockPosition(position, vestings, currentPoint)
		report.CanUnlock = &ok
		report.Reason = reason
	}
	return printJSON(cmd, report)
}

func runUnclaimed(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	pool, err := loadPool(cmd)
	if err != nil {
		return err
	}
	position, err := loadPosition(cmd)
	if err != nil {
		return err
	}
	reward, err := dammv2.GetUnClaimReward(pool, position)
	if err != nil {
		return err
	}
	return printJSON(cmd, reward)
}

type feeParamsReport struct {
	BaseFee       pool_fees.FeeScheduler      `json:"baseFee"`
	MinFeeBps     uint64                      `json:"minFeeBps"`
	DynamicFee    *pool_fees.DynamicFeeParams `json:"dynamicFee,omitempty"`
	MaxFeeBps     uint64                      `json:"maxFeeBps"`
	PoolVersionV1 bool                        `json:"poolVersionV1"`
}

func parseSchedulerMode(raw string) (shared.FeeSchedulerMode, error) {
	switch strings.ToLower(raw) {
	case "linear", "0":
		return shared.FeeSchedulerModeLinear, nil
	case "exponential", "1":
		return shared.FeeSchedulerModeExponential, nil
	default:
		return 0, fmt.Errorf("unknown scheduler mode %q", raw)
	}
}

func runFeeParams(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	maxBps, _ := cmd.Flags().GetUint64("max-bps")
	minBps, _ := cmd.Flags().GetUint64("min-bps")
	modeRaw, _ := cmd.Flags().GetString("mode")
	periods, _ := cmd.Flags().GetUint16("periods")
	duration, _ := cmd.Flags().GetUint64("duration")
	withDynamic, _ := cmd.Flags().GetBool("dynamic")
	maxPriceChangeBps, _ := cmd.Flags().GetUint64("max-price-change-bps")

	mode, err := parseSchedulerMode(modeRaw)
	if err != nil {
		return err
	}
	scheduler, err := pool_fees.GetBaseFeeParams(maxBps, minBps, mode, periods, duration)
	if err != nil {
		return err
	}
	// only a flat fee gets past GetBaseFeeParams above the V0 cap
	version := shared.PoolVersionV0
	if maxBps > pool_fees.GetMaxFeeBps(shared.PoolVersionV0) {
		version = shared.PoolVersionV1
	}
	if err := scheduler.Validate(version); err != nil {
		return err
	}
	minFee, err := scheduler.GetMinFeeNumerator()
	if err != nil {
		return err
	}

	report := feeParamsReport{
		BaseFee:       scheduler,
		MinFeeBps:     pool_fees.FeeNumeratorToBps(minFee.Uint64()),
		MaxFeeBps:     pool_fees.GetMaxFeeBps(version),
		PoolVersionV1: version == shared.PoolVersionV1,
	}
	if withDynamic {
		dynamic, err := pool_fees.GetDynamicFeeParams(minBps, maxPriceChangeBps)
		if err != nil {
			return err
		}
		if err := pool_fees.ValidateDynamicFee(dynamic); err != nil {
			return err
		}
		report.DynamicFee = &dynamic
	}
	e.logger.Debug("fee params", zap.Uint64("cliffFeeNumerator", scheduler.CliffFeeNumerator), zap.Uint8("poolVersion", uint8(version)))
	return printJSON(cmd, report)
}
