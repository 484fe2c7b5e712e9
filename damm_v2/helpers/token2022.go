package helpers

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"

	"github.com/krazyTry/cpamm-quote/damm_v2/shared"
)

const (
	// MaxFeeBasisPoints is 100% in Token-2022 transfer fee terms.
	MaxFeeBasisPoints = 10_000

	// Token mint base size (Token-2020 compatible header)
	MintBaseSize = 82
	// Extended mints are padded to the token account size before the account type byte.
	AccountBaseSize    = 165
	AccountTypeMint    = 1
	mintDecimalsOffset = 44
	tlvHeaderSize      = 4
	transferFeeSize    = 18
	transferFeeCfgSize = 32 + 32 + 8 + transferFeeSize*2

	// Token-2022 extension types
	ExtUninitialized     uint16 = 0
	ExtTransferFeeConfig uint16 = 1
	ExtTransferHook      uint16 = 14
)

type TransferFee struct {
	Epoch       uint64
	MaximumFee  uint64
	BasisPoints uint16
}

type TransferFeeConfig struct {
	// nil means the authority is unset
	TransferFeeConfigAuthority *solanago.PublicKey
	WithdrawWithheldAuthority  *solanago.PublicKey

	WithheldAmount uint64

	OlderTransferFee TransferFee
	NewerTransferFee TransferFee
}

// GetEpochFee picks the fee in force: older until the newer epoch is reached.
func (c *TransferFeeConfig) GetEpochFee(currentEpoch uint64) TransferFee {
	if currentEpoch < c.NewerTransferFee.Epoch {
		return c.OlderTransferFee
	}
	return c.NewerTransferFee
}

// TokenInfo carries the mint data needed for Token-2022 fee calculations.
type TokenInfo struct {
	Mint              solanago.PublicKey
	CurrentEpoch      uint64
	Decimals          uint8
	TransferFeeConfig *TransferFeeConfig
	HasTransferHook   bool
}

func (t *TokenInfo) HasTransferFee() bool {
	return t != nil && t.TransferFeeConfig != nil
}

// EpochFee returns the transfer fee in force, or false when the mint has none.
func (t *TokenInfo) EpochFee() (TransferFee, bool) {
	if !t.HasTransferFee() {
		return TransferFee{}, false
	}
	return t.TransferFeeConfig.GetEpochFee(t.CurrentEpoch), true
}

// ParseMintTokenInfo decodes a mint account and its Token-2022 extensions.
func ParseMintTokenInfo(mint solanago.PublicKey, data []byte, currentEpoch uint64) (*TokenInfo, error) {
	if len(data) < MintBaseSize {
		return nil, fmt.Errorf("%w: data too short for mint base: got=%d want>=%d", shared.ErrInvalidAccountData, len(data), MintBaseSize)
	}
	info := &TokenInfo{
		Mint:         mint,
		CurrentEpoch: currentEpoch,
		Decimals:     data[mintDecimalsOffset],
	}
	if len(data) <= AccountBaseSize {
		return info, nil
	}
	if data[AccountBaseSize] != AccountTypeMint {
		return nil, fmt.Errorf("%w: account type %d is not a mint", shared.ErrInvalidAccountData, data[AccountBaseSize])
	}

	dec := bin.NewBinDecoder(data[AccountBaseSize+1:])
	for dec.Remaining() >= tlvHeaderSize {
		typ, err := dec.ReadUint16(bin.LE)
		if err != nil {
			return nil, err
		}
		l, err := dec.ReadUint16(bin.LE)
		if err != nil {
			return nil, err
		}
		// trailing zero padding
		if typ == ExtUninitialized && l == 0 {
			break
		}
		if int(l) > dec.Remaining() {
			return nil, fmt.Errorf("%w: invalid TLV length: type=%d len=%d remaining=%d", shared.ErrInvalidAccountData, typ, l, dec.Remaining())
		}
		val, err := dec.ReadBytes(int(l))
		if err != nil {
			return nil, err
		}
		switch typ {
		case ExtTransferFeeConfig:
			cfg, err := parseTransferFeeConfig(val)
			if err != nil {
				return nil, fmt.Errorf("parse TransferFeeConfig failed: %w", err)
			}
			info.TransferFeeConfig = cfg
		case ExtTransferHook:
			info.HasTransferHook = true
		}
	}
	return info, nil
}

func parseTransferFeeConfig(b []byte) (*TransferFeeConfig, error) {
	if len(b) < transferFeeCfgSize {
		return nil, fmt.Errorf("%w: transfer fee config truncated: got=%d want=%d", shared.ErrInvalidAccountData, len(b), transferFeeCfgSize)
	}
	dec := bin.NewBinDecoder(b)

	auth1, err := readOptionalNonZeroPubkey(dec)
	if err != nil {
		return nil, err
	}
	auth2, err := readOptionalNonZeroPubkey(dec)
	if err != nil {
		return nil, err
	}
	withheld, err := dec.ReadUint64(bin.LE)
	if err != nil {
		return nil, err
	}
	older, err := readTransferFee(dec)
	if err != nil {
		return nil, err
	}
	newer, err := readTransferFee(dec)
	if err != nil {
		return nil, err
	}
	return &TransferFeeConfig{
		TransferFeeConfigAuthority: auth1,
		WithdrawWithheldAuthority:  auth2,
		WithheldAmount:             withheld,
		OlderTransferFee:           older,
		NewerTransferFee:           newer,
	}, nil
}

func readOptionalNonZeroPubkey(dec *bin.Decoder) (*solanago.PublicKey, error) {
	raw, err := dec.ReadBytes(solanago.PublicKeyLength)
	if err != nil {
		return nil, err
	}
	pk := solanago.PublicKeyFromBytes(raw)
	if pk.IsZero() {
		return nil, nil
	}
	return &pk, nil
}

func readTransferFee(dec *bin.Decoder) (TransferFee, error) {
	epoch, err := dec.ReadUint64(bin.LE)
	if err != nil {
		return TransferFee{}, err
	}
	maxFee, err := dec.ReadUint64(bin.LE)
	if err != nil {
		return TransferFee{}, err
	}
	bps, err := dec.ReadUint16(bin.LE)
	if err != nil {
		return TransferFee{}, err
	}
	return TransferFee{Epoch: epoch, MaximumFee: maxFee, BasisPoints: bps}, nil
}
