package dammv2

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
	"github.com/holiman/uint256"

	"github.com/krazyTry/cpamm-quote/damm_v2/helpers"
	"github.com/krazyTry/cpamm-quote/damm_v2/math"
	"github.com/krazyTry/cpamm-quote/damm_v2/shared"
)

const (
	vestingPaddingSize  = 14
	vestingPadding2Size = 4 * 16

	// VestingAccountSize is the on-chain size of a vesting account, discriminator included.
	VestingAccountSize = helpers.DiscriminatorSize + solanago.PublicKeyLength + 8 + 8 + 16*3 + 2 + vestingPaddingSize + vestingPadding2Size
)

var vestingDiscriminator = bin.TypeID(helpers.AccountDiscriminator(helpers.AccountKeyVesting))

// DecodeVestingAccount decodes the raw data of a vesting account.
func DecodeVestingAccount(data []byte) (*VestingState, error) {
	if len(data) < VestingAccountSize {
		return nil, fmt.Errorf("%w: vesting account too short: got=%d want>=%d", shared.ErrInvalidAccountData, len(data), VestingAccountSize)
	}
	dec := bin.NewBorshDecoder(data)

	disc, err := dec.ReadDiscriminator()
	if err != nil {
		return nil, err
	}
	if !disc.Equal(vestingDiscriminator[:]) {
		return nil, fmt.Errorf("%w: not a vesting account: discriminator %v", shared.ErrInvalidAccountData, disc[:])
	}

	raw, err := dec.ReadBytes(solanago.PublicKeyLength)
	if err != nil {
		return nil, err
	}
	out := &VestingState{Position: solanago.PublicKeyFromBytes(raw)}

	if out.CliffPoint, err = dec.ReadUint64(bin.LE); err != nil {
		return nil, err
	}
	if out.PeriodFrequency, err = dec.ReadUint64(bin.LE); err != nil {
		return nil, err
	}
	for _, dst := range []**uint256.Int{&out.CliffUnlockLiquidity, &out.LiquidityPerPeriod, &out.TotalReleasedLiquidity} {
		v, err := dec.ReadUint128(bin.LE)
		if err != nil {
			return nil, err
		}
		*dst = math.FromUint128(v)
	}
	if out.NumberOfPeriod, err = dec.ReadUint16(bin.LE); err != nil {
		return nil, err
	}
	if err = dec.SkipBytes(vestingPaddingSize + vestingPadding2Size); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeVestingAccount is the inverse of DecodeVestingAccount. Padding is zeroed.
func EncodeVestingAccount(v *VestingState) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil vesting", shared.ErrInvalidAccountData)
	}
	buf := new(bytes.Buffer)
	buf.Grow(VestingAccountSize)
	enc := bin.NewBorshEncoder(buf)

	if err := enc.WriteBytes(vestingDiscriminator[:], false); err != nil {
		return nil, err
	}
	if err := enc.WriteBytes(v.Position.Bytes(), false); err != nil {
		return nil, err
	}
	if err := enc.WriteUint64(v.CliffPoint, bin.LE); err != nil {
		return nil, err
	}
	if err := enc.WriteUint64(v.PeriodFrequency, bin.LE); err != nil {
		return nil, err
	}
	for _, src := range []*uint256.Int{v.CliffUnlockLiquidity, v.LiquidityPerPeriod, v.TotalReleasedLiquidity} {
		n, err := math.ToUint128(src)
		if err != nil {
			return nil, err
		}
		if err := enc.WriteUint128(n, bin.LE); err != nil {
			return nil, err
		}
	}
	if err := enc.WriteUint16(v.NumberOfPeriod, bin.LE); err != nil {
		return nil, err
	}
	if err := enc.WriteBytes(make([]byte, vestingPaddingSize+vestingPadding2Size), false); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
