package u128

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	binary "github.com/gagliardetto/binary"
)

var (
	ErrNegative = errors.New("value cannot be negative")
	ErrOverflow = errors.New("value overflows Uint128")
)

type Uint128 binary.Uint128

func (u *Uint128) Scan(s fmt.ScanState, ch rune) error {
	i := new(big.Int)
	if err := i.Scan(s, ch); err != nil {
		return err
	} else if i.Sign() < 0 {
		return ErrNegative
	} else if i.BitLen() > 128 {
		return ErrOverflow
	}
	u.Lo = i.Uint64()
	u.Hi = i.Rsh(i, 64).Uint64()
	return nil
}

// ParseUint128 reads a base-10 u128 such as a liquidity or fee checkpoint
// field of a JSON snapshot.
func ParseUint128(num string) (binary.Uint128, error) {
	num = strings.TrimSpace(num)
	if num == "" {
		return binary.Uint128{}, errors.New("empty u128 string")
	}
	u128 := binary.NewUint128LittleEndian()
	if _, err := fmt.Sscan(num, (*Uint128)(u128)); err != nil {
		return binary.Uint128{}, fmt.Errorf("parse u128 %q: %w", num, err)
	}
	return *u128, nil
}
