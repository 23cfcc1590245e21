package types

import (
	errorsmod "cosmossdk.io/errors"
)

const (
	DefaultMaxSnapshots      uint32 = 1024
	DefaultTwapWindowSeconds uint64 = 3600
	maxSnapshotsCeiling      uint32 = 1 << 20
)

// Params tunes the price oracle of a pool.
type Params struct {
	// MaxSnapshots caps the stored snapshot series; the oldest entries are
	// pruned once the cap is reached.
	MaxSnapshots uint32 `json:"max_snapshots"`
	// DefaultTwapWindowSeconds is used by TWAP queries that give no window.
	DefaultTwapWindowSeconds uint64 `json:"default_twap_window_seconds"`
}

// DefaultParams returns a default set of parameters
func DefaultParams() Params {
	return Params{
		MaxSnapshots:             DefaultMaxSnapshots,
		DefaultTwapWindowSeconds: DefaultTwapWindowSeconds,
	}
}

// Validate validates the set of params
func (p Params) Validate() error {
	if p.MaxSnapshots < 2 {
		return errorsmod.Wrapf(ErrInvalidParams, "max snapshots must be at least 2, got %d", p.MaxSnapshots)
	}
	if p.MaxSnapshots > maxSnapshotsCeiling {
		return errorsmod.Wrapf(ErrInvalidParams, "max snapshots %d exceeds %d", p.MaxSnapshots, maxSnapshotsCeiling)
	}
	if p.DefaultTwapWindowSeconds == 0 {
		return errorsmod.Wrap(ErrInvalidParams, "default twap window must be positive")
	}
	return nil
}
