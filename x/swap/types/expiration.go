package types

import (
	"fmt"
	"time"

	errorsmod "cosmossdk.io/errors"
)

// Expiration bounds how late a request may execute. At most one of the
// fields is set; a nil *Expiration never expires.
type Expiration struct {
	AtHeight *uint64    `json:"at_height,omitempty"`
	AtTime   *time.Time `json:"at_time,omitempty"`
}

// AtHeight expires once the block height reaches h.
func AtHeight(h uint64) *Expiration {
	return &Expiration{AtHeight: &h}
}

// AtTime expires once the block time reaches t.
func AtTime(t time.Time) *Expiration {
	return &Expiration{AtTime: &t}
}

// IsExpired reports whether the block at height/blockTime is past e.
func (e *Expiration) IsExpired(height int64, blockTime time.Time) bool {
	if e == nil {
		return false
	}
	switch {
	case e.AtHeight != nil:
		return height >= 0 && uint64(height) >= *e.AtHeight
	case e.AtTime != nil:
		return !blockTime.Before(*e.AtTime)
	default:
		return false
	}
}

// Validate rejects expirations that set both bounds.
func (e *Expiration) Validate() error {
	if e != nil && e.AtHeight != nil && e.AtTime != nil {
		return errorsmod.Wrap(ErrInvalidAmount, "expiration cannot set both height and time")
	}
	return nil
}

func (e *Expiration) String() string {
	switch {
	case e == nil:
		return "never"
	case e.AtHeight != nil:
		return fmt.Sprintf("height(%d)", *e.AtHeight)
	case e.AtTime != nil:
		return fmt.Sprintf("time(%s)", e.AtTime.UTC().Format(time.RFC3339))
	default:
		return "never"
	}
}

// CheckExpiration returns ErrExpired when e has passed.
func CheckExpiration(e *Expiration, height int64, blockTime time.Time) error {
	if e.IsExpired(height, blockTime) {
		return errorsmod.Wrapf(ErrExpired, "expiration %s reached at height %d", e, height)
	}
	return nil
}
