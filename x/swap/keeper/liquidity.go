package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/swap/types"
)

// CalcLiquidityMinted returns the shares minted for depositing primary. The
// first deposit mints 1:1.
func CalcLiquidityMinted(primary, totalShares, primaryReserve math.Uint) (math.Uint, error) {
	if totalShares.IsZero() {
		return primary, nil
	}
	return SafeMulDiv(primary, totalShares, primaryReserve)
}

// CalcSecondaryRequired returns the secondary amount that must accompany a
// deposit of primary. It rounds up by one unit so the pool is never
// under-collateralized; the first deposit takes maxSecondary and sets the price.
func CalcSecondaryRequired(maxSecondary, primary, totalShares, secondaryReserve, primaryReserve math.Uint) (math.Uint, error) {
	if totalShares.IsZero() {
		return maxSecondary, nil
	}
	q, err := SafeMulDiv(primary, secondaryReserve, primaryReserve)
	if err != nil {
		return math.Uint{}, err
	}
	return SafeAdd(q, math.OneUint())
}

// AddLiquidity deposits asset1 and the matching amount of asset2 and mints
// shares to the sender. Native asset2 sent above the required amount is
// refunded.
func (k Keeper) AddLiquidity(goCtx context.Context, msg *types.MsgAddLiquidity) (*types.MsgAddLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	var resp *types.MsgAddLiquidityResponse
	err := k.atomically(goCtx, func(ctx sdk.Context) error {
		if err := types.CheckExpiration(msg.Expiration, ctx.BlockHeight(), ctx.BlockTime()); err != nil {
			return err
		}
		pool, err := k.GetPool(ctx)
		if err != nil {
			return err
		}
		shareToken, err := k.GetShareToken(ctx)
		if err != nil {
			return err
		}
		if err := validateNativeInput(msg.Funds, pool.Asset1.Info, msg.Asset1Amount); err != nil {
			return err
		}
		if err := validateNativeInput(msg.Funds, pool.Asset2.Info, msg.MaxAsset2); err != nil {
			return err
		}

		supply, err := k.shareLedger.TotalSupply(ctx, shareToken)
		if err != nil {
			return err
		}
		minted, err := CalcLiquidityMinted(msg.Asset1Amount, supply, pool.Asset1.Amount)
		if err != nil {
			return err
		}
		required, err := CalcSecondaryRequired(msg.MaxAsset2, msg.Asset1Amount, supply, pool.Asset2.Amount, pool.Asset1.Amount)
		if err != nil {
			return err
		}
		if minted.LT(msg.MinLiquidity) || minted.IsZero() {
			return errorsmod.Wrapf(types.ErrMinSharesNotMet, "min_liquidity: %s, liquidity_available: %s", msg.MinLiquidity, minted)
		}
		if required.GT(msg.MaxAsset2) {
			return errorsmod.Wrapf(types.ErrMaxSecondaryExceeded, "max_token: %s, tokens_required: %s", msg.MaxAsset2, required)
		}

		if pool.Asset1.Amount, err = SafeAdd(pool.Asset1.Amount, msg.Asset1Amount); err != nil {
			return err
		}
		if pool.Asset2.Amount, err = SafeAdd(pool.Asset2.Amount, required); err != nil {
			return err
		}

		var effects effectList
		effects.pull(pool.Asset1.Info, msg.Sender, k.address, msg.Asset1Amount)
		effects.pull(pool.Asset2.Info, msg.Sender, k.address, required)
		effects.add(types.MintSharesEffect{ShareToken: shareToken, Recipient: msg.Sender, Amount: minted})
		if pool.Asset2.Info.IsNative() {
			effects.transfer(pool.Asset2.Info, msg.Sender, msg.MaxAsset2.Sub(required))
		}

		if err := k.SetPool(ctx, pool); err != nil {
			return err
		}
		if err := k.RecordSnapshot(ctx, pool); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeAddLiquidity,
				sdk.NewAttribute(types.AttributeKeySender, msg.Sender),
				sdk.NewAttribute(types.AttributeKeyAsset1Amount, msg.Asset1Amount.String()),
				sdk.NewAttribute(types.AttributeKeyAsset2Amount, required.String()),
				sdk.NewAttribute(types.AttributeKeySharesMinted, minted.String()),
			),
		)
		k.metrics.LiquidityAdded.WithLabelValues(k.address, pool.Asset1.Info.String()).Add(amountFloat(msg.Asset1Amount))
		k.metrics.LiquidityAdded.WithLabelValues(k.address, pool.Asset2.Info.String()).Add(amountFloat(required))
		k.recordReserves(pool)

		k.Logger(ctx).Debug("liquidity added",
			"sender", msg.Sender,
			"asset1_amount", msg.Asset1Amount.String(),
			"asset2_amount", required.String(),
			"shares", minted.String(),
		)

		resp = &types.MsgAddLiquidityResponse{
			SharesMinted:   minted,
			Asset2Required: required,
			Effects:        effects,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// RemoveLiquidity burns shares for a pro-rata slice of both reserves.
func (k Keeper) RemoveLiquidity(goCtx context.Context, msg *types.MsgRemoveLiquidity) (*types.MsgRemoveLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	var resp *types.MsgRemoveLiquidityResponse
	err := k.atomically(goCtx, func(ctx sdk.Context) error {
		if err := types.CheckExpiration(msg.Expiration, ctx.BlockHeight(), ctx.BlockTime()); err != nil {
			return err
		}
		pool, err := k.GetPool(ctx)
		if err != nil {
			return err
		}
		shareToken, err := k.GetShareToken(ctx)
		if err != nil {
			return err
		}
		balance, err := k.shareLedger.Balance(ctx, shareToken, msg.Sender)
		if err != nil {
			return err
		}
		if msg.Amount.GT(balance) {
			return errorsmod.Wrapf(types.ErrInsufficientShares, "requested: %s, available: %s", msg.Amount, balance)
		}
		supply, err := k.shareLedger.TotalSupply(ctx, shareToken)
		if err != nil {
			return err
		}

		asset1Out, err := SafeMulDiv(msg.Amount, pool.Asset1.Amount, supply)
		if err != nil {
			return err
		}
		if asset1Out.LT(msg.MinAsset1) {
			return errorsmod.Wrapf(types.ErrMinPrimaryNotMet, "requested: %s, available: %s", msg.MinAsset1, asset1Out)
		}
		asset2Out, err := SafeMulDiv(msg.Amount, pool.Asset2.Amount, supply)
		if err != nil {
			return err
		}
		if asset2Out.LT(msg.MinAsset2) {
			return errorsmod.Wrapf(types.ErrMinSecondaryNotMet, "requested: %s, available: %s", msg.MinAsset2, asset2Out)
		}

		if pool.Asset1.Amount, err = SafeSub(pool.Asset1.Amount, asset1Out); err != nil {
			return err
		}
		if pool.Asset2.Amount, err = SafeSub(pool.Asset2.Amount, asset2Out); err != nil {
			return err
		}

		var effects effectList
		effects.add(types.BurnSharesEffect{ShareToken: shareToken, Owner: msg.Sender, Amount: msg.Amount})
		effects.transfer(pool.Asset1.Info, msg.Sender, asset1Out)
		effects.transfer(pool.Asset2.Info, msg.Sender, asset2Out)

		if err := k.SetPool(ctx, pool); err != nil {
			return err
		}
		if err := k.RecordSnapshot(ctx, pool); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeRemoveLiquidity,
				sdk.NewAttribute(types.AttributeKeySender, msg.Sender),
				sdk.NewAttribute(types.AttributeKeySharesBurned, msg.Amount.String()),
				sdk.NewAttribute(types.AttributeKeyAsset1Amount, asset1Out.String()),
				sdk.NewAttribute(types.AttributeKeyAsset2Amount, asset2Out.String()),
			),
		)
		k.metrics.LiquidityRemoved.WithLabelValues(k.address, pool.Asset1.Info.String()).Add(amountFloat(asset1Out))
		k.metrics.LiquidityRemoved.WithLabelValues(k.address, pool.Asset2.Info.String()).Add(amountFloat(asset2Out))
		k.recordReserves(pool)

		k.Logger(ctx).Debug("liquidity removed",
			"sender", msg.Sender,
			"shares", msg.Amount.String(),
			"asset1_amount", asset1Out.String(),
			"asset2_amount", asset2Out.String(),
		)

		resp = &types.MsgRemoveLiquidityResponse{
			Asset1Returned: asset1Out,
			Asset2Returned: asset2Out,
			Effects:        effects,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (k Keeper) recordReserves(pool types.Pool) {
	k.metrics.PoolReserves.WithLabelValues(k.address, pool.Asset1.Info.String()).Set(amountFloat(pool.Asset1.Amount))
	k.metrics.PoolReserves.WithLabelValues(k.address, pool.Asset2.Info.String()).Set(amountFloat(pool.Asset2.Amount))
}
