package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/swap/types"
)

// BalanceReader reports what an account actually holds of an asset.
type BalanceReader interface {
	BalanceOf(ctx context.Context, asset types.AssetInfo, owner string) math.Uint
}

// AllInvariants runs every invariant of the pool instance
func AllInvariants(k Keeper, bank BalanceReader) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := ReservesBackedInvariant(k, bank)(ctx)
		if stop {
			return res, stop
		}

		res, stop = ShareSupplyInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		return SnapshotOrderInvariant(k)(ctx)
	}
}

// ReservesBackedInvariant checks that the pool account holds at least its
// recorded reserves.
func ReservesBackedInvariant(k Keeper, bank BalanceReader) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		if !k.HasPool(ctx) {
			return "", false
		}
		pool, err := k.GetPool(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "reserves-backed", err.Error()), true
		}

		var (
			msg   string
			count int
		)
		for _, r := range []types.Reserve{pool.Asset1, pool.Asset2} {
			bal := bank.BalanceOf(ctx, r.Info, k.address)
			if bal.LT(r.Amount) {
				count++
				msg += fmt.Sprintf("pool %s: balance of %s (%s) < reserve (%s)\n",
					k.address, r.Info, bal, r.Amount)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "reserves-backed",
			fmt.Sprintf("found %d reserves above the pool balance\n%s", count, msg),
		), broken
	}
}

// ShareSupplyInvariant checks that outstanding shares and reserves are
// either all zero or all positive.
func ShareSupplyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		if !k.HasPool(ctx) {
			return "", false
		}
		info, err := k.Info(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "share-supply", err.Error()), true
		}

		empty := info.Asset1Reserve.IsZero() && info.Asset2Reserve.IsZero()
		funded := !info.Asset1Reserve.IsZero() && !info.Asset2Reserve.IsZero()
		var msg string
		switch {
		case info.ShareSupply.IsZero() && !empty:
			msg = fmt.Sprintf("pool %s: reserves %s/%s with no shares outstanding\n",
				k.address, info.Asset1Reserve, info.Asset2Reserve)
		case !info.ShareSupply.IsZero() && !funded:
			msg = fmt.Sprintf("pool %s: %s shares backed by reserves %s/%s\n",
				k.address, info.ShareSupply, info.Asset1Reserve, info.Asset2Reserve)
		}

		return sdk.FormatInvariant(types.ModuleName, "share-supply", msg), msg != ""
	}
}

// SnapshotOrderInvariant checks that the snapshot series never goes back in
// time and stays within MaxSnapshots.
func SnapshotOrderInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		params, err := k.GetParams(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "snapshot-order", err.Error()), true
		}
		snaps, err := k.GetSnapshots(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "snapshot-order", err.Error()), true
		}

		var msg string
		if uint64(len(snaps)) > uint64(params.MaxSnapshots) {
			msg += fmt.Sprintf("pool %s: %d snapshots stored, cap %d\n", k.address, len(snaps), params.MaxSnapshots)
		}
		for i := 1; i < len(snaps); i++ {
			if snaps[i].Timestamp < snaps[i-1].Timestamp {
				msg += fmt.Sprintf("pool %s: snapshot %d at %d precedes %d\n",
					k.address, i, snaps[i].Timestamp, snaps[i-1].Timestamp)
			}
		}

		return sdk.FormatInvariant(types.ModuleName, "snapshot-order", msg), msg != ""
	}
}
