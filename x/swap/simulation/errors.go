package simulation

import (
	"cosmossdk.io/errors"
)

// Codespace of errors raised by the simulated chain rather than a pool.
const Codespace = "swapsim"

var (
	ErrInsufficientBalance   = errors.Register(Codespace, 2, "insufficient balance")
	ErrInsufficientAllowance = errors.Register(Codespace, 3, "insufficient allowance")
	ErrUnknownPool           = errors.Register(Codespace, 4, "unknown pool")
	ErrUnauthorizedMinter    = errors.Register(Codespace, 5, "sender is not the token minter")
	ErrTokenExists           = errors.Register(Codespace, 6, "token already registered")
	ErrMaxDepth              = errors.Register(Codespace, 7, "nested dispatch too deep")
	ErrUnsupportedMsg        = errors.Register(Codespace, 8, "unsupported message")
	ErrUnsupportedEffect     = errors.Register(Codespace, 9, "unsupported effect")
	ErrDuplicatePool         = errors.Register(Codespace, 10, "duplicate pool name")
	ErrInvalidPoolName       = errors.Register(Codespace, 11, "invalid pool name")
)
