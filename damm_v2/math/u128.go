package math

import (
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/holiman/uint256"

	"github.com/krazyTry/cpamm-quote/damm_v2/shared"
)

// FromUint128 widens an on-chain u128 into a uint256.
func FromUint128(v binary.Uint128) *uint256.Int {
	out := new(uint256.Int).SetUint64(v.Hi)
	out.Lsh(out, 64)
	return out.Or(out, uint256.NewInt(v.Lo))
}

// ToUint128 narrows a uint256 into the on-chain u128 layout.
func ToUint128(v *uint256.Int) (binary.Uint128, error) {
	if v == nil {
		return binary.Uint128{}, nil
	}
	if v.BitLen() > 128 {
		return binary.Uint128{}, fmt.Errorf("%w: value exceeds u128", shared.ErrArithmeticOverflow)
	}
	hi := new(uint256.Int).Rsh(v, 64)
	return binary.Uint128{Lo: v.Uint64(), Hi: hi.Uint64(), Endianness: binary.LE}, nil
}
