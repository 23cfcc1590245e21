package keeper

import (
	"context"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/swap/types"
)

const (
	shareTokenName     = "PawSwap_Liquidity_Token"
	shareTokenSymbol   = "PSLP"
	shareTokenDecimals = 6
)

// Instantiate creates the pool with empty reserves and requests creation of
// its share token. The pool stays unbound until ConfirmBinding arrives with
// the same reply id.
func (k Keeper) Instantiate(goCtx context.Context, msg *types.MsgInstantiate) (*types.MsgInstantiateResponse, error) {
	if err := types.ValidateFees(msg.LpFeePercent, msg.ProtocolFeePercent); err != nil {
		return nil, err
	}
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	var resp *types.MsgInstantiateResponse
	err := k.atomically(goCtx, func(ctx sdk.Context) error {
		if k.HasPool(ctx) {
			return errorsmod.Wrapf(types.ErrAlreadyInstantiated, "pool %s", k.address)
		}
		pool := types.NewPool(msg.Asset1, msg.Asset2)
		if err := k.SetPool(ctx, pool); err != nil {
			return err
		}
		if err := k.SetFeeConfig(ctx, msg.Fees()); err != nil {
			return err
		}
		k.SetOwner(ctx, msg.Owner)
		if err := k.SetBinding(ctx, types.AwaitingBinding(types.InstantiateShareTokenReplyID)); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeInstantiate,
				sdk.NewAttribute(types.AttributeKeySender, msg.Sender),
				sdk.NewAttribute(types.AttributeKeyAsset1, msg.Asset1.String()),
				sdk.NewAttribute(types.AttributeKeyAsset2, msg.Asset2.String()),
				sdk.NewAttribute(types.AttributeKeyOwner, msg.Owner),
				sdk.NewAttribute(types.AttributeKeyReplyID, strconv.FormatUint(types.InstantiateShareTokenReplyID, 10)),
			),
		)
		k.Logger(ctx).Info("pool instantiated",
			"asset1", msg.Asset1.String(),
			"asset2", msg.Asset2.String(),
			"owner", msg.Owner,
		)

		resp = &types.MsgInstantiateResponse{
			Effects: []types.Effect{
				types.InstantiateShareTokenEffect{
					ReplyID:  types.InstantiateShareTokenReplyID,
					CodeID:   msg.ShareTokenCodeID,
					Label:    "lp_token",
					Name:     shareTokenName,
					Symbol:   shareTokenSymbol,
					Decimals: shareTokenDecimals,
					Minter:   k.address,
				},
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ConfirmBinding consumes the reply to the share token creation request.
func (k Keeper) ConfirmBinding(goCtx context.Context, msg *types.MsgConfirmBinding) (*types.MsgConfirmBindingResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	var resp *types.MsgConfirmBindingResponse
	err := k.atomically(goCtx, func(ctx sdk.Context) error {
		binding, err := k.GetBinding(ctx)
		if err != nil {
			return errorsmod.Wrapf(types.ErrUnknownReplyID, "id: %d", msg.ReplyID)
		}
		bound, err := binding.Accept(msg.ReplyID, msg.ShareTokenAddress)
		if err != nil {
			return err
		}
		if err := k.SetBinding(ctx, bound); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeBindShareToken,
				sdk.NewAttribute(types.AttributeKeyReplyID, strconv.FormatUint(msg.ReplyID, 10)),
				sdk.NewAttribute(types.AttributeKeyShareToken, bound.Address),
			),
		)
		k.Logger(ctx).Info("share token bound", "share_token", bound.Address)

		resp = &types.MsgConfirmBindingResponse{ShareToken: bound.Address}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
