package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/swap/types"
)

// UpdateConfig replaces the fee configuration and optionally hands the pool
// to a new owner. The fee ceiling is enforced before the caller is checked.
func (k Keeper) UpdateConfig(goCtx context.Context, msg *types.MsgUpdateConfig) (*types.MsgUpdateConfigResponse, error) {
	if err := types.ValidateFees(msg.LpFeePercent, msg.ProtocolFeePercent); err != nil {
		return nil, err
	}
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	err := k.atomically(goCtx, func(ctx sdk.Context) error {
		if !k.HasPool(ctx) {
			return errorsmod.Wrap(types.ErrNotInstantiated, "pool not found")
		}
		owner := k.GetOwner(ctx)
		if owner == "" || owner != msg.Sender {
			return errorsmod.Wrapf(types.ErrUnauthorized, "%s is not the pool owner", msg.Sender)
		}
		if err := k.SetFeeConfig(ctx, msg.Fees()); err != nil {
			return err
		}
		newOwner := owner
		if msg.Owner != "" {
			newOwner = msg.Owner
			k.SetOwner(ctx, newOwner)
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeUpdateConfig,
				sdk.NewAttribute(types.AttributeKeySender, msg.Sender),
				sdk.NewAttribute(types.AttributeKeyOwner, newOwner),
				sdk.NewAttribute(types.AttributeKeyLpFeePercent, msg.LpFeePercent.String()),
				sdk.NewAttribute(types.AttributeKeyProtocolFeePercent, msg.ProtocolFeePercent.String()),
				sdk.NewAttribute(types.AttributeKeyRecipient, msg.ProtocolFeeRecipient),
			),
		)
		k.metrics.ConfigUpdates.WithLabelValues(k.address).Inc()
		k.Logger(ctx).Info("pool config updated",
			"owner", newOwner,
			"lp_fee_percent", msg.LpFeePercent.String(),
			"protocol_fee_percent", msg.ProtocolFeePercent.String(),
			"protocol_fee_recipient", msg.ProtocolFeeRecipient,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &types.MsgUpdateConfigResponse{}, nil
}
