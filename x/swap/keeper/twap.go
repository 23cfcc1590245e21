package keeper

import (
	"context"
	"encoding/json"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/swap/types"
)

func snapshotKey(seq uint64) []byte {
	return append(append([]byte{}, types.SnapshotKeyPrefix...), sdk.Uint64ToBigEndian(seq)...)
}

func (k Keeper) getCursor(ctx context.Context) (types.SnapshotCursor, error) {
	var cursor types.SnapshotCursor
	if _, err := k.getJSON(ctx, types.SnapshotCursorKey, &cursor); err != nil {
		return types.SnapshotCursor{}, err
	}
	return cursor, nil
}

func (k Keeper) setCursor(ctx context.Context, cursor types.SnapshotCursor) error {
	return k.setJSON(ctx, types.SnapshotCursorKey, cursor)
}

func (k Keeper) getSnapshot(ctx context.Context, seq uint64) (types.PriceSnapshot, bool, error) {
	var snap types.PriceSnapshot
	found, err := k.getJSON(ctx, snapshotKey(seq), &snap)
	return snap, found, err
}

// RecordSnapshot appends the spot price of pool at the current block time.
// Nothing is recorded while either reserve is zero.
func (k Keeper) RecordSnapshot(ctx context.Context, pool types.Pool) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	snap, ok := types.SpotSnapshot(pool, sdkCtx.BlockTime().Unix())
	if !ok {
		return nil
	}
	if err := k.AppendSnapshot(ctx, snap); err != nil {
		return err
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePriceSnapshot,
			sdk.NewAttribute(types.AttributeKeyPrice1, snap.Price1.String()),
			sdk.NewAttribute(types.AttributeKeyPrice2, snap.Price2.String()),
			sdk.NewAttribute(types.AttributeKeyTimestamp, strconv.FormatInt(snap.Timestamp, 10)),
		),
	)
	k.metrics.SpotPrice.WithLabelValues(k.address, "1").Set(decFloat(snap.Price1))
	k.metrics.SpotPrice.WithLabelValues(k.address, "2").Set(decFloat(snap.Price2))
	return nil
}

// AppendSnapshot adds snap to the end of the series and prunes the oldest
// entries beyond Params.MaxSnapshots. Timestamps must not go backwards.
func (k Keeper) AppendSnapshot(ctx context.Context, snap types.PriceSnapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	cursor, err := k.getCursor(ctx)
	if err != nil {
		return err
	}
	if cursor.Len() > 0 {
		last, found, err := k.getSnapshot(ctx, cursor.Next-1)
		if err != nil {
			return err
		}
		if found && snap.Timestamp < last.Timestamp {
			return errorsmod.Wrapf(types.ErrInvalidState, "snapshot at %d precedes latest at %d", snap.Timestamp, last.Timestamp)
		}
	}

	bz, err := json.Marshal(snap)
	if err != nil {
		return errorsmod.Wrapf(types.ErrInvalidState, "encode snapshot: %s", err)
	}
	store := k.getStore(ctx)
	store.Set(snapshotKey(cursor.Next), bz)
	cursor.Next++

	var pruned int
	for cursor.Len() > uint64(params.MaxSnapshots) {
		store.Delete(snapshotKey(cursor.First))
		cursor.First++
		pruned++
	}
	if err := k.setCursor(ctx, cursor); err != nil {
		return err
	}

	k.metrics.SnapshotsRecorded.WithLabelValues(k.address).Inc()
	if pruned > 0 {
		k.metrics.SnapshotsPruned.WithLabelValues(k.address).Add(float64(pruned))
	}
	return nil
}

// GetSnapshots returns the stored series, oldest first.
func (k Keeper) GetSnapshots(ctx context.Context) ([]types.PriceSnapshot, error) {
	iter := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.SnapshotKeyPrefix)
	defer iter.Close()

	var snaps []types.PriceSnapshot
	for ; iter.Valid(); iter.Next() {
		var snap types.PriceSnapshot
		if err := json.Unmarshal(iter.Value(), &snap); err != nil {
			return nil, errorsmod.Wrapf(types.ErrInvalidState, "decode snapshot: %s", err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

// LatestSnapshots returns up to limit of the newest snapshots, oldest first.
// A zero limit returns the whole series.
func (k Keeper) LatestSnapshots(ctx context.Context, limit uint32) ([]types.PriceSnapshot, error) {
	if limit == 0 {
		return k.GetSnapshots(ctx)
	}
	cursor, err := k.getCursor(ctx)
	if err != nil {
		return nil, err
	}
	if stored := cursor.Len(); stored < uint64(limit) {
		limit = uint32(stored)
	}

	iter := storetypes.KVStoreReversePrefixIterator(k.getStore(ctx), types.SnapshotKeyPrefix)
	defer iter.Close()

	snaps := make([]types.PriceSnapshot, 0, limit)
	for ; iter.Valid() && uint32(len(snaps)) < limit; iter.Next() {
		var snap types.PriceSnapshot
		if err := json.Unmarshal(iter.Value(), &snap); err != nil {
			return nil, errorsmod.Wrapf(types.ErrInvalidState, "decode snapshot: %s", err)
		}
		snaps = append(snaps, snap)
	}
	reverse(snaps)
	return snaps, nil
}

// TWAP averages the spot price over the last windowSeconds ending at the
// current block time. The snapshot in effect at the window start is clipped
// to the start and the latest snapshot is held until now, so a price that
// only lived within one block carries no weight. A zero window uses
// Params.DefaultTwapWindowSeconds.
func (k Keeper) TWAP(ctx context.Context, windowSeconds uint64) (types.TWAP, error) {
	if windowSeconds == 0 {
		params, err := k.GetParams(ctx)
		if err != nil {
			return types.TWAP{}, err
		}
		windowSeconds = params.DefaultTwapWindowSeconds
	}
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := sdkCtx.BlockTime().Unix()
	start := now - int64(windowSeconds)
	if windowSeconds > uint64(now) {
		start = 0
	}

	iter := storetypes.KVStoreReversePrefixIterator(k.getStore(ctx), types.SnapshotKeyPrefix)
	defer iter.Close()

	var window []types.PriceSnapshot
	for ; iter.Valid(); iter.Next() {
		var snap types.PriceSnapshot
		if err := json.Unmarshal(iter.Value(), &snap); err != nil {
			return types.TWAP{}, errorsmod.Wrapf(types.ErrInvalidState, "decode snapshot: %s", err)
		}
		if snap.Timestamp > now {
			continue
		}
		if snap.Timestamp <= start {
			snap.Timestamp = start
			window = append(window, snap)
			break
		}
		window = append(window, snap)
	}
	if len(window) == 0 {
		return types.ComputeTWAP(nil)
	}
	reverse(window)

	latest := window[len(window)-1]
	latest.Timestamp = now
	window = append(window, latest)
	return types.ComputeTWAP(window)
}

func reverse(snaps []types.PriceSnapshot) {
	for i, j := 0, len(snaps)-1; i < j; i, j = i+1, j-1 {
		snaps[i], snaps[j] = snaps[j], snaps[i]
	}
}
