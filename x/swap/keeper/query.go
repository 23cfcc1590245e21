package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/swap/types"
)

// Info describes the pool. Share supply reads zero until the share token is
// bound.
func (k Keeper) Info(ctx context.Context) (types.InfoResponse, error) {
	pool, err := k.GetPool(ctx)
	if err != nil {
		return types.InfoResponse{}, err
	}
	fees, err := k.GetFeeConfig(ctx)
	if err != nil {
		return types.InfoResponse{}, err
	}
	binding, err := k.GetBinding(ctx)
	if err != nil {
		return types.InfoResponse{}, err
	}

	supply := math.ZeroUint()
	shareToken, err := binding.ShareToken()
	if err == nil {
		if supply, err = k.shareLedger.TotalSupply(ctx, shareToken); err != nil {
			return types.InfoResponse{}, err
		}
	}

	return types.InfoResponse{
		Asset1Reserve:        pool.Asset1.Amount,
		Asset1:               pool.Asset1.Info,
		Asset2Reserve:        pool.Asset2.Amount,
		Asset2:               pool.Asset2.Info,
		ShareSupply:          supply,
		ShareToken:           shareToken,
		Owner:                k.GetOwner(ctx),
		LpFeePercent:         fees.LpFeePercent,
		ProtocolFeePercent:   fees.ProtocolFeePercent,
		ProtocolFeeRecipient: fees.ProtocolFeeRecipient,
	}, nil
}

// Asset1ForAsset2Price quotes selling amount of asset1 at the total fee.
func (k Keeper) Asset1ForAsset2Price(ctx context.Context, amount math.Uint) (types.PriceResponse, error) {
	return k.price(ctx, types.Asset1, amount)
}

// Asset2ForAsset1Price quotes selling amount of asset2 at the total fee.
func (k Keeper) Asset2ForAsset1Price(ctx context.Context, amount math.Uint) (types.PriceResponse, error) {
	return k.price(ctx, types.Asset2, amount)
}

func (k Keeper) price(ctx context.Context, sel types.TokenSelect, amount math.Uint) (types.PriceResponse, error) {
	if amount.IsNil() {
		return types.PriceResponse{}, errorsmod.Wrap(types.ErrInvalidAmount, "amount must be set")
	}
	pool, err := k.GetPool(ctx)
	if err != nil {
		return types.PriceResponse{}, err
	}
	fees, err := k.GetFeeConfig(ctx)
	if err != nil {
		return types.PriceResponse{}, err
	}
	in, out := pool.Sides(sel)
	output, err := GetInputPrice(amount, in.Amount, out.Amount, fees.TotalFeePercent())
	if err != nil {
		return types.PriceResponse{}, err
	}
	return types.PriceResponse{InputAmount: amount, OutputAmount: output}, nil
}

// Snapshots returns up to limit of the newest price snapshots, oldest first.
// A zero limit or one above Params.MaxSnapshots is clamped to MaxSnapshots.
func (k Keeper) Snapshots(ctx context.Context, limit uint32) (types.SnapshotsResponse, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return types.SnapshotsResponse{}, err
	}
	if limit == 0 || limit > params.MaxSnapshots {
		limit = params.MaxSnapshots
	}

	snaps, err := k.LatestSnapshots(ctx, limit)
	if err != nil {
		return types.SnapshotsResponse{}, err
	}
	if snaps == nil {
		snaps = []types.PriceSnapshot{}
	}
	return types.SnapshotsResponse{Snapshots: snaps}, nil
}
