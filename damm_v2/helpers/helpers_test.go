package helpers

import (
	"bytes"
	"testing"

	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/cpamm-quote/damm_v2/shared"
)

func TestAccountDiscriminator(t *testing.T) {
	tests := []struct {
		name string
		want [DiscriminatorSize]byte
	}{
		{AccountKeyPool, [DiscriminatorSize]byte{241, 154, 109, 4, 17, 177, 109, 188}},
		{AccountKeyPosition, [DiscriminatorSize]byte{170, 188, 143, 228, 122, 64, 247, 208}},
		{AccountKeyVesting, [DiscriminatorSize]byte{100, 149, 66, 138, 95, 200, 128, 241}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AccountDiscriminator(tt.name))
		})
	}
}

func TestSlippage(t *testing.T) {
	minOut, err := GetMinAmountWithSlippage(uint256.NewInt(10_000), 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(9_900), minOut.Uint64())

	maxOut, err := GetMaxAmountWithSlippage(uint256.NewInt(10_000), 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(10_100), maxOut.Uint64())

	minOut, err = GetMinAmountWithSlippage(uint256.NewInt(999), 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(999), minOut.Uint64())

	minOut, err = GetMinAmountWithSlippage(uint256.NewInt(999), 10_000)
	require.NoError(t, err)
	assert.True(t, minOut.IsZero())

	_, err = GetMinAmountWithSlippage(uint256.NewInt(1), 10_001)
	assert.ErrorIs(t, err, shared.ErrInvalidSlippage)
	_, err = GetMaxAmountWithSlippage(uint256.NewInt(1), 10_001)
	assert.ErrorIs(t, err, shared.ErrInvalidSlippage)
}

func testVesting() *Vesting {
	return &Vesting{
		CliffPoint:             100,
		PeriodFrequency:        10,
		NumberOfPeriod:         5,
		CliffUnlockLiquidity:   uint256.NewInt(50),
		LiquidityPerPeriod:     uint256.NewInt(10),
		TotalReleasedLiquidity: new(uint256.Int),
	}
}

func TestVestingSchedule(t *testing.T) {
	tests := []struct {
		name      string
		point     uint64
		complete  bool
		available uint64
		phase     VestingPhase
	}{
		{"before cliff", 99, false, 0, VestingPhaseLocked},
		{"at cliff", 100, false, 50, VestingPhaseCliffReleased},
		{"end of cliff period", 109, false, 50, VestingPhaseCliffReleased},
		{"first period", 110, false, 60, VestingPhasePeriodic},
		{"last period", 149, false, 90, VestingPhasePeriodic},
		{"fully vested", 150, true, 100, VestingPhaseComplete},
		{"long after vesting", 10_000, true, 100, VestingPhaseComplete},
	}
	v := testVesting()
	assert.Equal(t, uint64(100), GetTotalLockedLiquidity(v).Uint64())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.complete, IsVestingComplete(v, tt.point))
			assert.Equal(t, tt.phase, GetVestingPhase(v, tt.point))

			available, err := GetAvailableVestingLiquidity(v, tt.point)
			require.NoError(t, err)
			assert.Equal(t, tt.available, available.Uint64())
		})
	}
}

func TestVestingReleased(t *testing.T) {
	v := testVesting()
	v.TotalReleasedLiquidity = uint256.NewInt(60)

	available, err := GetAvailableVestingLiquidity(v, 110)
	require.NoError(t, err)
	assert.True(t, available.IsZero())

	available, err = GetAvailableVestingLiquidity(v, 130)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), available.Uint64())

	v.TotalReleasedLiquidity = uint256.NewInt(70)
	_, err = GetAvailableVestingLiquidity(v, 110)
	assert.ErrorIs(t, err, shared.ErrInvalidAmount)
}

func TestVestingCliffOnly(t *testing.T) {
	v := &Vesting{CliffPoint: 5, CliffUnlockLiquidity: uint256.NewInt(42)}

	assert.False(t, IsVestingComplete(v, 4))
	assert.True(t, IsVestingComplete(v, 5))

	available, err := GetAvailableVestingLiquidity(v, 5)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), available.Uint64())
}

type mintExtension struct {
	typ  uint16
	body []byte
}

func encodeMint(t *testing.T, decimals uint8, exts ...mintExtension) []byte {
	t.Helper()
	if len(exts) == 0 {
		data := make([]byte, MintBaseSize)
		data[mintDecimalsOffset] = decimals
		return data
	}

	buf := new(bytes.Buffer)
	enc := bin.NewBinEncoder(buf)
	base := make([]byte, AccountBaseSize)
	base[mintDecimalsOffset] = decimals
	require.NoError(t, enc.WriteBytes(base, false))
	require.NoError(t, enc.WriteBytes([]byte{AccountTypeMint}, false))
	for _, ext := range exts {
		require.NoError(t, enc.WriteUint16(ext.typ, bin.LE))
		require.NoError(t, enc.WriteUint16(uint16(len(ext.body)), bin.LE))
		require.NoError(t, enc.WriteBytes(ext.body, false))
	}
	return buf.Bytes()
}

func encodeTransferFeeConfig(t *testing.T, authority solanago.PublicKey, older, newer TransferFee) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	enc := bin.NewBinEncoder(buf)
	require.NoError(t, enc.WriteBytes(authority.Bytes(), false))
	require.NoError(t, enc.WriteBytes(make([]byte, solanago.PublicKeyLength), false))
	require.NoError(t, enc.WriteUint64(77, bin.LE))
	for _, fee := range []TransferFee{older, newer} {
		require.NoError(t, enc.WriteUint64(fee.Epoch, bin.LE))
		require.NoError(t, enc.WriteUint64(fee.MaximumFee, bin.LE))
		require.NoError(t, enc.WriteUint16(fee.BasisPoints, bin.LE))
	}
	return buf.Bytes()
}

func TestParseMintTokenInfo(t *testing.T) {
	mint := solanago.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
	authority := solanago.MustPublicKeyFromBase58("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb")
	older := TransferFee{Epoch: 0, MaximumFee: 1_000, BasisPoints: 50}
	newer := TransferFee{Epoch: 600, MaximumFee: 2_000, BasisPoints: 100}

	t.Run("legacy mint", func(t *testing.T) {
		info, err := ParseMintTokenInfo(mint, encodeMint(t, 9), 0)
		require.NoError(t, err)
		assert.Equal(t, uint8(9), info.Decimals)
		assert.False(t, info.HasTransferFee())
		assert.False(t, info.HasTransferHook)
	})

	t.Run("transfer fee and hook", func(t *testing.T) {
		data := encodeMint(t, 6,
			mintExtension{ExtTransferFeeConfig, encodeTransferFeeConfig(t, authority, older, newer)},
			mintExtension{ExtTransferHook, make([]byte, 64)},
		)
		info, err := ParseMintTokenInfo(mint, data, 599)
		require.NoError(t, err)
		assert.Equal(t, uint8(6), info.Decimals)
		assert.True(t, info.HasTransferHook)
		require.True(t, info.HasTransferFee())

		cfg := info.TransferFeeConfig
		require.NotNil(t, cfg.TransferFeeConfigAuthority)
		assert.True(t, cfg.TransferFeeConfigAuthority.Equals(authority))
		assert.Nil(t, cfg.WithdrawWithheldAuthority)
		assert.Equal(t, uint64(77), cfg.WithheldAmount)

		fee, ok := info.EpochFee()
		require.True(t, ok)
		assert.Equal(t, older, fee)

		info.CurrentEpoch = 600
		fee, _ = info.EpochFee()
		assert.Equal(t, newer, fee)
	})

	t.Run("truncated base", func(t *testing.T) {
		_, err := ParseMintTokenInfo(mint, make([]byte, MintBaseSize-1), 0)
		assert.ErrorIs(t, err, shared.ErrInvalidAccountData)
	})

	t.Run("not a mint", func(t *testing.T) {
		data := encodeMint(t, 6, mintExtension{ExtTransferHook, make([]byte, 64)})
		data[AccountBaseSize] = 2
		_, err := ParseMintTokenInfo(mint, data, 0)
		assert.ErrorIs(t, err, shared.ErrInvalidAccountData)
	})

	t.Run("bad tlv length", func(t *testing.T) {
		data := encodeMint(t, 6, mintExtension{ExtTransferHook, make([]byte, 64)})
		_, err := ParseMintTokenInfo(mint, data[:len(data)-10], 0)
		assert.ErrorIs(t, err, shared.ErrInvalidAccountData)
	})
}
