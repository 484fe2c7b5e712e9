package dammv2

import (
	"encoding/base64"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/holiman/uint256"
	"github.com/tidwall/gjson"

	"github.com/krazyTry/cpamm-quote/damm_v2/helpers"
	"github.com/krazyTry/cpamm-quote/damm_v2/math"
	"github.com/krazyTry/cpamm-quote/damm_v2/shared"
	"github.com/krazyTry/cpamm-quote/u128"
)

// Snapshots are JSON documents with camelCase keys. Mints are base58, u128
// and u256 values are decimal strings, everything narrower is a JSON number.

func parseRoot(data []byte, kind string) (gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("%w: %s snapshot is not valid JSON", shared.ErrInvalidAccountData, kind)
	}
	return gjson.ParseBytes(data), nil
}

func required(r gjson.Result, path string) (gjson.Result, error) {
	v := r.Get(path)
	if !v.Exists() {
		return gjson.Result{}, fmt.Errorf("%w: missing field %q", shared.ErrInvalidAccountData, path)
	}
	return v, nil
}

func parsePubkey(r gjson.Result, path string) (solanago.PublicKey, error) {
	v, err := required(r, path)
	if err != nil {
		return solanago.PublicKey{}, err
	}
	pk, err := solanago.PublicKeyFromBase58(v.String())
	if err != nil {
		return solanago.PublicKey{}, fmt.Errorf("%w: %s: %v", shared.ErrInvalidAccountData, path, err)
	}
	return pk, nil
}

func parseU128(r gjson.Result, path string) (*uint256.Int, error) {
	v, err := required(r, path)
	if err != nil {
		return nil, err
	}
	n, err := u128.ParseUint128(v.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrInvalidAccountData, path, err)
	}
	return math.FromUint128(n), nil
}

// parseU128Or returns zero when the field is absent.
func parseU128Or(r gjson.Result, path string) (*uint256.Int, error) {
	if !r.Get(path).Exists() {
		return new(uint256.Int), nil
	}
	return parseU128(r, path)
}

func parseU256Or(r gjson.Result, path string) (*uint256.Int, error) {
	v := r.Get(path)
	if !v.Exists() {
		return new(uint256.Int), nil
	}
	n, err := uint256.FromDecimal(v.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrInvalidAccountData, path, err)
	}
	return n, nil
}

func parseUint(r gjson.Result, path string, max uint64) (uint64, error) {
	v := r.Get(path)
	if !v.Exists() {
		return 0, nil
	}
	n := v.Uint()
	if n > max {
		return 0, fmt.Errorf("%w: %s=%d exceeds %d", shared.ErrInvalidAccountData, path, n, max)
	}
	return n, nil
}

// ParsePoolState decodes a pool snapshot.
func ParsePoolState(data []byte) (*PoolState, error) {
	root, err := parseRoot(data, "pool")
	if err != nil {
		return nil, err
	}
	p := &PoolState{}
	if p.TokenAMint, err = parsePubkey(root, "tokenAMint"); err != nil {
		return nil, err
	}
	if p.TokenBMint, err = parsePubkey(root, "tokenBMint"); err != nil {
		return nil, err
	}
	if root.Get("partner").Exists() {
		if p.Partner, err = parsePubkey(root, "partner"); err != nil {
			return nil, err
		}
	}
	if p.SqrtPrice, err = parseU128(root, "sqrtPrice"); err != nil {
		return nil, err
	}
	if p.Liquidity, err = parseU128(root, "liquidity"); err != nil {
		return nil, err
	}
	if p.SqrtMinPrice, err = parseU128(root, "sqrtMinPrice"); err != nil {
		return nil, err
	}
	if p.SqrtMaxPrice, err = parseU128(root, "sqrtMaxPrice"); err != nil {
		return nil, err
	}
	if p.FeeAPerLiquidity, err = parseU256Or(root, "feeAPerLiquidity"); err != nil {
		return nil, err
	}
	if p.FeeBPerLiquidity, err = parseU256Or(root, "feeBPerLiquidity"); err != nil {
		return nil, err
	}

	activationType, err := parseUint(root, "activationType", uint64(ActivationTypeTimestamp))
	if err != nil {
		return nil, err
	}
	collectFeeMode, err := parseUint(root, "collectFeeMode", uint64(CollectFeeModeOnlyB))
	if err != nil {
		return nil, err
	}
	version, err := parseUint(root, "version", uint64(shared.PoolVersionV1))
	if err != nil {
		return nil, err
	}
	p.ActivationType = ActivationType(activationType)
	p.CollectFeeMode = CollectFeeMode(collectFeeMode)
	p.Version = PoolVersion(version)
	p.ActivationPoint = root.Get("activationPoint").Uint()

	if p.PoolFees, err = parsePoolFees(root.Get("poolFees")); err != nil {
		return nil, err
	}
	return p, nil
}

func parsePoolFees(r gjson.Result) (PoolFeesState, error) {
	var fees PoolFeesState
	if !r.Exists() {
		return fees, fmt.Errorf("%w: missing field %q", shared.ErrInvalidAccountData, "poolFees")
	}

	baseFee := r.Get("baseFee")
	numberOfPeriod, err := parseUint(baseFee, "numberOfPeriod", shared.U16Max)
	if err != nil {
		return fees, err
	}
	mode, err := parseUint(baseFee, "feeSchedulerMode", uint64(FeeSchedulerModeExponential))
	if err != nil {
		return fees, err
	}
	fees.BaseFee = BaseFeeState{
		CliffFeeNumerator: baseFee.Get("cliffFeeNumerator").Uint(),
		NumberOfPeriod:    uint16(numberOfPeriod),
		PeriodFrequency:   baseFee.Get("periodFrequency").Uint(),
		ReductionFactor:   baseFee.Get("reductionFactor").Uint(),
		FeeSchedulerMode:  FeeSchedulerMode(mode),
	}

	percents := [3]uint64{}
	for i, path := range []string{"protocolFeePercent", "partnerFeePercent", "referralFeePercent"} {
		if percents[i], err = parseUint(r, path, 100); err != nil {
			return fees, err
		}
	}
	fees.ProtocolFeePercent = uint8(percents[0])
	fees.PartnerFeePercent = uint8(percents[1])
	fees.ReferralFeePercent = uint8(percents[2])

	if fees.DynamicFee, err = parseDynamicFee(r.Get("dynamicFee")); err != nil {
		return fees, err
	}
	return fees, nil
}

func parseDynamicFee(r gjson.Result) (DynamicFeeState, error) {
	var d DynamicFeeState
	var err error
	if !r.Exists() {
		return d, nil
	}
	d.Initialized = r.Get("initialized").Bool()

	small := map[string]uint64{
		"binStep":         shared.U16Max,
		"filterPeriod":    shared.U16Max,
		"decayPeriod":     shared.U16Max,
		"reductionFactor": shared.U16Max,
	}
	vals := make(map[string]uint64, len(small))
	for path, max := range small {
		if vals[path], err = parseUint(r, path, max); err != nil {
			return d, err
		}
	}
	d.BinStep = uint16(vals["binStep"])
	d.FilterPeriod = uint16(vals["filterPeriod"])
	d.DecayPeriod = uint16(vals["decayPeriod"])
	d.ReductionFactor = uint16(vals["reductionFactor"])

	maxVA, err := parseUint(r, "maxVolatilityAccumulator", 1<<32-1)
	if err != nil {
		return d, err
	}
	vfc, err := parseUint(r, "variableFeeControl", 1<<32-1)
	if err != nil {
		return d, err
	}
	d.MaxVolatilityAccumulator = uint32(maxVA)
	d.VariableFeeControl = uint32(vfc)
	d.LastUpdateTimestamp = r.Get("lastUpdateTimestamp").Uint()

	if d.BinStepU128, err = parseU128Or(r, "binStepU128"); err != nil {
		return d, err
	}
	if d.SqrtPriceReference, err = parseU128Or(r, "sqrtPriceReference"); err != nil {
		return d, err
	}
	if d.VolatilityAccumulator, err = parseU128Or(r, "volatilityAccumulator"); err != nil {
		return d, err
	}
	if d.VolatilityReference, err = parseU128Or(r, "volatilityReference"); err != nil {
		return d, err
	}
	return d, nil
}

// ParsePositionState decodes a position snapshot.
func ParsePositionState(data []byte) (*PositionState, error) {
	root, err := parseRoot(data, "position")
	if err != nil {
		return nil, err
	}
	p := &PositionState{
		FeeAPending: root.Get("feeAPending").Uint(),
		FeeBPending: root.Get("feeBPending").Uint(),
	}
	if p.Pool, err = parsePubkey(root, "pool"); err != nil {
		return nil, err
	}
	if root.Get("nftMint").Exists() {
		if p.NftMint, err = parsePubkey(root, "nftMint"); err != nil {
			return nil, err
		}
	}
	if p.UnlockedLiquidity, err = parseU128Or(root, "unlockedLiquidity"); err != nil {
		return nil, err
	}
	if p.VestedLiquidity, err = parseU128Or(root, "vestedLiquidity"); err != nil {
		return nil, err
	}
	if p.PermanentLockedLiquidity, err = parseU128Or(root, "permanentLockedLiquidity"); err != nil {
		return nil, err
	}
	if p.FeeAPerTokenCheckpoint, err = parseU256Or(root, "feeAPerTokenCheckpoint"); err != nil {
		return nil, err
	}
	if p.FeeBPerTokenCheckpoint, err = parseU256Or(root, "feeBPerTokenCheckpoint"); err != nil {
		return nil, err
	}

	for _, item := range root.Get("rewardInfos").Array() {
		checkpoint, err := parseU256Or(item, "rewardPerTokenCheckpoint")
		if err != nil {
			return nil, err
		}
		p.RewardInfos = append(p.RewardInfos, UserRewardInfo{
			RewardPerTokenCheckpoint: checkpoint,
			RewardPendings:           item.Get("rewardPendings").Uint(),
			TotalClaimedRewards:      item.Get("totalClaimedRewards").Uint(),
		})
	}
	return p, nil
}

// ParseVestingState decodes a vesting snapshot.
func ParseVestingState(data []byte) (*VestingState, error) {
	root, err := parseRoot(data, "vesting")
	if err != nil {
		return nil, err
	}
	v := &VestingState{}
	if v.Position, err = parsePubkey(root, "position"); err != nil {
		return nil, err
	}
	numberOfPeriod, err := parseUint(root, "numberOfPeriod", shared.U16Max)
	if err != nil {
		return nil, err
	}
	v.CliffPoint = root.Get("cliffPoint").Uint()
	v.PeriodFrequency = root.Get("periodFrequency").Uint()
	v.NumberOfPeriod = uint16(numberOfPeriod)
	if v.CliffUnlockLiquidity, err = parseU128Or(root, "cliffUnlockLiquidity"); err != nil {
		return nil, err
	}
	if v.LiquidityPerPeriod, err = parseU128Or(root, "liquidityPerPeriod"); err != nil {
		return nil, err
	}
	if v.TotalReleasedLiquidity, err = parseU128Or(root, "totalReleasedLiquidity"); err != nil {
		return nil, err
	}
	return v, nil
}

// ParseTokenInfo decodes a token snapshot. It accepts either the raw mint
// account ("data", base64) or an explicit "transferFeeConfig" object.
func ParseTokenInfo(data []byte) (*TokenInfo, error) {
	root, err := parseRoot(data, "token")
	if err != nil {
		return nil, err
	}
	mint, err := parsePubkey(root, "mint")
	if err != nil {
		return nil, err
	}
	currentEpoch := root.Get("currentEpoch").Uint()

	if raw := root.Get("data"); raw.Exists() {
		accountData, err := base64.StdEncoding.DecodeString(raw.String())
		if err != nil {
			return nil, fmt.Errorf("%w: data: %v", shared.ErrInvalidAccountData, err)
		}
		return helpers.ParseMintTokenInfo(mint, accountData, currentEpoch)
	}

	decimals, err := parseUint(root, "decimals", 255)
	if err != nil {
		return nil, err
	}
	info := &TokenInfo{
		Mint:            mint,
		CurrentEpoch:    currentEpoch,
		Decimals:        uint8(decimals),
		HasTransferHook: root.Get("hasTransferHook").Bool(),
	}
	if cfg := root.Get("transferFeeConfig"); cfg.Exists() {
		older, err := parseTransferFee(cfg.Get("olderTransferFee"))
		if err != nil {
			return nil, err
		}
		newer, err := parseTransferFee(cfg.Get("newerTransferFee"))
		if err != nil {
			return nil, err
		}
		info.TransferFeeConfig = &helpers.TransferFeeConfig{
			WithheldAmount:   cfg.Get("withheldAmount").Uint(),
			OlderTransferFee: older,
			NewerTransferFee: newer,
		}
	}
	return info, nil
}

func parseTransferFee(r gjson.Result) (helpers.TransferFee, error) {
	bps, err := parseUint(r, "transferFeeBasisPoints", helpers.MaxFeeBasisPoints)
	if err != nil {
		return helpers.TransferFee{}, err
	}
	return helpers.TransferFee{
		Epoch:       r.Get("epoch").Uint(),
		MaximumFee:  r.Get("maximumFee").Uint(),
		BasisPoints: uint16(bps),
	}, nil
}
