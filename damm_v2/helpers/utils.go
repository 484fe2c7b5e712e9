package helpers

import (
	"crypto/sha256"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/krazyTry/cpamm-quote/damm_v2/shared"
)

// AccountDiscriminator returns sha256("account:<name>")[:8], the prefix anchor
// writes in front of every account of that type.
func AccountDiscriminator(name string) [DiscriminatorSize]byte {
	hash := sha256.Sum256([]byte("account:" + name))
	var out [DiscriminatorSize]byte
	copy(out[:], hash[:DiscriminatorSize])
	return out
}

func validateSlippage(slippageBps uint16) error {
	if slippageBps > shared.BasisPointMax {
		return fmt.Errorf("%w: got %d", shared.ErrInvalidSlippage, slippageBps)
	}
	return nil
}

// GetMinAmountWithSlippage returns amount * (10000 - slippageBps) / 10000, floored.
func GetMinAmountWithSlippage(amount *uint256.Int, slippageBps uint16) (*uint256.Int, error) {
	if err := validateSlippage(slippageBps); err != nil {
		return nil, err
	}
	out := new(uint256.Int).Mul(amount, uint256.NewInt(uint64(shared.BasisPointMax-slippageBps)))
	return out.Div(out, uint256.NewInt(shared.BasisPointMax)), nil
}

// GetMaxAmountWithSlippage returns amount * (10000 + slippageBps) / 10000, floored.
func GetMaxAmountWithSlippage(amount *uint256.Int, slippageBps uint16) (*uint256.Int, error) {
	if err := validateSlippage(slippageBps); err != nil {
		return nil, err
	}
	out, overflow := new(uint256.Int).MulOverflow(amount, uint256.NewInt(uint64(shared.BasisPointMax)+uint64(slippageBps)))
	if overflow {
		return nil, shared.ErrArithmeticOverflow
	}
	return out.Div(out, uint256.NewInt(shared.BasisPointMax)), nil
}
