package types

import (
	"cosmossdk.io/errors"
)

// Swap module sentinel errors
var (
	ErrNoLiquidity           = errors.Register(ModuleName, 2, "no liquidity in pool")
	ErrInsufficientFunds     = errors.Register(ModuleName, 3, "insufficient funds")
	ErrIncorrectDenom        = errors.Register(ModuleName, 4, "incorrect native denom")
	ErrMaxSecondaryExceeded  = errors.Register(ModuleName, 5, "secondary amount required exceeds maximum")
	ErrMinSharesNotMet       = errors.Register(ModuleName, 6, "shares minted below minimum")
	ErrSwapMinNotMet         = errors.Register(ModuleName, 7, "swap output below minimum")
	ErrMinPrimaryNotMet      = errors.Register(ModuleName, 8, "primary asset returned below minimum")
	ErrMinSecondaryNotMet    = errors.Register(ModuleName, 9, "secondary asset returned below minimum")
	ErrInsufficientShares    = errors.Register(ModuleName, 10, "insufficient liquidity shares")
	ErrFeesTooHigh           = errors.Register(ModuleName, 11, "total fee percent is higher than max")
	ErrUnauthorized          = errors.Register(ModuleName, 12, "unauthorized")
	ErrExpired               = errors.Register(ModuleName, 13, "message expired")
	ErrInvalidOutputPool     = errors.Register(ModuleName, 14, "the output pool provided is invalid")
	ErrUnknownReplyID        = errors.Register(ModuleName, 15, "unknown reply id")
	ErrOverflow              = errors.Register(ModuleName, 16, "arithmetic overflow")
	ErrDivideByZero          = errors.Register(ModuleName, 17, "division by zero")
	ErrShareTokenNotBound    = errors.Register(ModuleName, 18, "share token not yet bound")
	ErrInvalidAsset          = errors.Register(ModuleName, 19, "invalid asset")
	ErrInvalidAmount         = errors.Register(ModuleName, 20, "invalid amount")
	ErrInvalidAddress        = errors.Register(ModuleName, 21, "invalid address")
	ErrZeroOutput            = errors.Register(ModuleName, 22, "swap output rounds to zero")
	ErrInvariantViolation    = errors.Register(ModuleName, 23, "pool invariant violated")
	ErrInvalidState          = errors.Register(ModuleName, 24, "invalid pool state")
	ErrShareTokenInstantiate = errors.Register(ModuleName, 25, "failed to instantiate share token")
	ErrAlreadyInstantiated   = errors.Register(ModuleName, 26, "pool already instantiated")
	ErrNotInstantiated       = errors.Register(ModuleName, 27, "pool not instantiated")
	ErrInvalidParams         = errors.Register(ModuleName, 28, "invalid params")
)
