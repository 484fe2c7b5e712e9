package shared

import "errors"

var (
	ErrInvalidAmount               = errors.New("invalid amount")
	ErrInvalidSingleSidedBootstrap = errors.New("only support single side for base token")
	ErrConfiguration               = errors.New("invalid fee configuration")
	ErrArithmeticOverflow          = errors.New("math overflow")
	ErrDivideByZero                = errors.New("division by zero")
	ErrPriceOutOfRange             = errors.New("sqrt price out of range")
	ErrInvalidSlippage             = errors.New("slippage must be within 0..10000 bps")
	ErrInvalidMint                 = errors.New("mint does not belong to pool")
	ErrInvalidAccountData          = errors.New("invalid account data")
)
