package keeper

import (
	"context"
	"time"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/swap/types"
)

// PassThroughSwap swaps the input into the other local asset and forwards the
// proceeds to another pool instance, which pays its output to the sender.
//
// The output pool is checked to trade the intermediate asset before anything
// is written. The second leg is only emitted as a PoolSwapEffect; unwinding
// the first leg when the second fails is up to the dispatcher.
func (k Keeper) PassThroughSwap(goCtx context.Context, msg *types.MsgPassThroughSwap) (*types.MsgPassThroughSwapResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() {
		k.metrics.SwapLatency.Observe(time.Since(start).Seconds())
	}()

	var resp *types.MsgPassThroughSwapResponse
	err := k.atomically(goCtx, func(ctx sdk.Context) error {
		if err := types.CheckExpiration(msg.Expiration, ctx.BlockHeight(), ctx.BlockTime()); err != nil {
			return err
		}
		pool, err := k.GetPool(ctx)
		if err != nil {
			return err
		}
		fees, err := k.GetFeeConfig(ctx)
		if err != nil {
			return err
		}
		in, out := pool.Sides(msg.InputToken)
		inInfo, intermediate := in.Info, out.Info
		if err := validateNativeInput(msg.Funds, inInfo, msg.InputTokenAmount); err != nil {
			return err
		}

		nextInput, err := k.resolveOutputPool(ctx, msg.OutputPoolAddress, intermediate)
		if err != nil {
			return err
		}

		quote, err := quoteSwap(&pool, msg.InputToken, msg.InputTokenAmount, fees)
		if err != nil {
			return err
		}

		var effects effectList
		effects.pull(inInfo, msg.Sender, k.address, msg.InputTokenAmount)
		effects.transfer(inInfo, fees.ProtocolFeeRecipient, quote.protocolFee)

		var funds sdk.Coins
		if intermediate.IsToken() {
			effects.add(types.TokenIncreaseAllowanceEffect{
				Token:   intermediate.Address(),
				Spender: msg.OutputPoolAddress,
				Amount:  quote.output,
				Expires: types.AtHeight(uint64(ctx.BlockHeight()) + 1),
			})
		} else {
			funds = sdk.NewCoins(intermediate.Coin(quote.output))
		}
		effects.add(types.PoolSwapEffect{
			Pool: msg.OutputPoolAddress,
			Msg: types.MsgSwapAndSendTo{
				Sender:      k.address,
				Funds:       funds,
				InputToken:  nextInput,
				InputAmount: quote.output,
				Recipient:   msg.Sender,
				MinToken:    msg.OutputMinToken,
				Expiration:  msg.Expiration,
			},
			Funds: funds,
		})

		if err := k.SetPool(ctx, pool); err != nil {
			return err
		}
		if err := k.RecordSnapshot(ctx, pool); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypePassThroughSwap,
				sdk.NewAttribute(types.AttributeKeySender, msg.Sender),
				sdk.NewAttribute(types.AttributeKeyOutputPool, msg.OutputPoolAddress),
				sdk.NewAttribute(types.AttributeKeyInputToken, msg.InputToken.String()),
				sdk.NewAttribute(types.AttributeKeyInputAmount, msg.InputTokenAmount.String()),
				sdk.NewAttribute(types.AttributeKeyOutputAmount, quote.output.String()),
				sdk.NewAttribute(types.AttributeKeyProtocolFee, quote.protocolFee.String()),
			),
		)
		k.recordSwap(pool, inInfo, quote)
		k.metrics.PassThroughSwaps.WithLabelValues(k.address, msg.OutputPoolAddress).Inc()

		k.Logger(ctx).Debug("pass-through swap forwarded",
			"sender", msg.Sender,
			"output_pool", msg.OutputPoolAddress,
			"intermediate", intermediate.String(),
			"intermediate_amount", quote.output.String(),
		)

		resp = &types.MsgPassThroughSwapResponse{
			IntermediateAmount: quote.output,
			ProtocolFee:        quote.protocolFee,
			Effects:            effects,
		}
		return nil
	})
	if err != nil {
		k.metrics.SwapsTotal.WithLabelValues(k.address, msg.InputToken.String(), "failed").Inc()
		return nil, err
	}
	return resp, nil
}

// resolveOutputPool returns the side of the output pool that trades asset.
func (k Keeper) resolveOutputPool(ctx context.Context, addr string, asset types.AssetInfo) (types.TokenSelect, error) {
	if addr == k.address {
		return 0, errorsmod.Wrap(types.ErrInvalidOutputPool, "output pool cannot be the input pool")
	}
	if k.poolQuerier == nil {
		return 0, errorsmod.Wrap(types.ErrInvalidOutputPool, "no pool querier configured")
	}
	info, err := k.poolQuerier.PoolInfo(ctx, addr)
	if err != nil {
		return 0, errorsmod.Wrapf(types.ErrInvalidOutputPool, "query %s: %s", addr, err)
	}
	switch {
	case info.Asset1.Equal(asset):
		return types.Asset1, nil
	case info.Asset2.Equal(asset):
		return types.Asset2, nil
	default:
		return 0, errorsmod.Wrapf(types.ErrInvalidOutputPool, "pool %s trades %s/%s, not %s", addr, info.Asset1, info.Asset2, asset)
	}
}
