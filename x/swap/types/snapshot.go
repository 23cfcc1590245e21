package types

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// PriceSnapshot is the spot price of the pool right after a reserve change.
// Price1 is asset1 priced in asset2, Price2 is asset2 priced in asset1.
type PriceSnapshot struct {
	Price1    math.LegacyDec `json:"price1"`
	Price2    math.LegacyDec `json:"price2"`
	Timestamp int64          `json:"timestamp"`
}

// SpotSnapshot prices pool at timestamp. ok is false while either reserve is
// zero since no price exists then.
func SpotSnapshot(pool Pool, timestamp int64) (snap PriceSnapshot, ok bool) {
	if pool.IsEmpty() {
		return PriceSnapshot{}, false
	}
	r1 := math.LegacyNewDecFromBigInt(pool.Asset1.Amount.BigInt())
	r2 := math.LegacyNewDecFromBigInt(pool.Asset2.Amount.BigInt())
	return PriceSnapshot{
		Price1:    r2.Quo(r1),
		Price2:    r1.Quo(r2),
		Timestamp: timestamp,
	}, true
}

// TWAP is a time-weighted average over a snapshot series.
type TWAP struct {
	Price1  math.LegacyDec `json:"price1"`
	Price2  math.LegacyDec `json:"price2"`
	Start   int64          `json:"start"`
	End     int64          `json:"end"`
	Elapsed int64          `json:"elapsed"`
}

// ComputeTWAP averages the series as Σ(price_i * Δt_i) / Σ(Δt_i), where Δt_i is
// the gap between snapshot i and i+1. A series spanning no time averages to zero.
func ComputeTWAP(snaps []PriceSnapshot) (TWAP, error) {
	res := TWAP{Price1: math.LegacyZeroDec(), Price2: math.LegacyZeroDec()}
	if len(snaps) == 0 {
		return res, nil
	}
	res.Start = snaps[0].Timestamp
	res.End = snaps[len(snaps)-1].Timestamp

	sum1 := math.LegacyZeroDec()
	sum2 := math.LegacyZeroDec()
	var elapsed int64
	for i := 0; i+1 < len(snaps); i++ {
		dt := snaps[i+1].Timestamp - snaps[i].Timestamp
		if dt < 0 {
			return res, errorsmod.Wrapf(ErrInvalidState, "snapshot %d at %d precedes %d", i+1, snaps[i+1].Timestamp, snaps[i].Timestamp)
		}
		if dt == 0 {
			continue
		}
		sum1 = sum1.Add(snaps[i].Price1.MulInt64(dt))
		sum2 = sum2.Add(snaps[i].Price2.MulInt64(dt))
		elapsed += dt
	}
	res.Elapsed = elapsed
	if elapsed == 0 {
		return res, nil
	}
	res.Price1 = sum1.QuoInt64(elapsed)
	res.Price2 = sum2.QuoInt64(elapsed)
	return res, nil
}

// Validate checks the prices are set and non-negative.
func (s PriceSnapshot) Validate() error {
	if s.Price1.IsNil() || s.Price2.IsNil() || s.Price1.IsNegative() || s.Price2.IsNegative() {
		return errorsmod.Wrapf(ErrInvalidState, "snapshot at %d has an invalid price", s.Timestamp)
	}
	return nil
}

// SnapshotCursor tracks the live window of the snapshot series: sequence
// numbers [First, Next) are stored.
type SnapshotCursor struct {
	First uint64 `json:"first"`
	Next  uint64 `json:"next"`
}

// Len returns the number of stored snapshots.
func (c SnapshotCursor) Len() uint64 { return c.Next - c.First }
