package keeper

import (
	"context"
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/hashicorp/go-metrics"

	"github.com/paw-chain/pawswap/x/swap/types"
)

// Swap sells the selected input asset and pays the output to the sender.
func (k Keeper) Swap(goCtx context.Context, msg *types.MsgSwap) (*types.MsgSwapResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	return k.executeSwap(goCtx, swapRequest{
		sender:     msg.Sender,
		funds:      msg.Funds,
		input:      msg.InputToken,
		amount:     msg.InputAmount,
		recipient:  msg.Sender,
		minOutput:  msg.MinOutput,
		expiration: msg.Expiration,
	})
}

// SwapAndSendTo sells the selected input asset and pays the output to the
// given recipient. It is also the entry point of the second leg of a
// pass-through swap.
func (k Keeper) SwapAndSendTo(goCtx context.Context, msg *types.MsgSwapAndSendTo) (*types.MsgSwapResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	return k.executeSwap(goCtx, swapRequest{
		sender:     msg.Sender,
		funds:      msg.Funds,
		input:      msg.InputToken,
		amount:     msg.InputAmount,
		recipient:  msg.Recipient,
		minOutput:  msg.MinToken,
		expiration: msg.Expiration,
	})
}

type swapRequest struct {
	sender     string
	funds      sdk.Coins
	input      types.TokenSelect
	amount     math.Uint
	recipient  string
	minOutput  math.Uint
	expiration *types.Expiration
}

func (k Keeper) executeSwap(goCtx context.Context, req swapRequest) (*types.MsgSwapResponse, error) {
	start := time.Now()
	defer func() {
		k.metrics.SwapLatency.Observe(time.Since(start).Seconds())
	}()

	var resp *types.MsgSwapResponse
	err := k.atomically(goCtx, func(ctx sdk.Context) error {
		if err := types.CheckExpiration(req.expiration, ctx.BlockHeight(), ctx.BlockTime()); err != nil {
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
		in, out := pool.Sides(req.input)
		inInfo, outInfo := in.Info, out.Info
		if err := validateNativeInput(req.funds, inInfo, req.amount); err != nil {
			return err
		}

		quote, err := quoteSwap(&pool, req.input, req.amount, fees)
		if err != nil {
			return err
		}
		if quote.output.LT(req.minOutput) {
			return errorsmod.Wrapf(types.ErrSwapMinNotMet, "min: %s, available: %s", req.minOutput, quote.output)
		}

		var effects effectList
		effects.pull(inInfo, req.sender, k.address, req.amount)
		effects.transfer(outInfo, req.recipient, quote.output)
		effects.transfer(inInfo, fees.ProtocolFeeRecipient, quote.protocolFee)

		if err := k.SetPool(ctx, pool); err != nil {
			return err
		}
		if err := k.RecordSnapshot(ctx, pool); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeSwap,
				sdk.NewAttribute(types.AttributeKeySender, req.sender),
				sdk.NewAttribute(types.AttributeKeyRecipient, req.recipient),
				sdk.NewAttribute(types.AttributeKeyInputToken, req.input.String()),
				sdk.NewAttribute(types.AttributeKeyInputAmount, req.amount.String()),
				sdk.NewAttribute(types.AttributeKeyOutputAmount, quote.output.String()),
				sdk.NewAttribute(types.AttributeKeyProtocolFee, quote.protocolFee.String()),
			),
		)
		k.recordSwap(pool, inInfo, quote)

		k.Logger(ctx).Debug("swap executed",
			"sender", req.sender,
			"recipient", req.recipient,
			"input", inInfo.String(),
			"amount_in", req.amount.String(),
			"amount_out", quote.output.String(),
			"protocol_fee", quote.protocolFee.String(),
		)

		resp = &types.MsgSwapResponse{
			AmountOut:   quote.output,
			ProtocolFee: quote.protocolFee,
			Effects:     effects,
		}
		return nil
	})
	if err != nil {
		k.metrics.SwapsTotal.WithLabelValues(k.address, req.input.String(), "failed").Inc()
		return nil, err
	}
	return resp, nil
}

func (k Keeper) recordSwap(pool types.Pool, input types.AssetInfo, quote swapQuote) {
	sel, _ := pool.SideOf(input)
	k.metrics.SwapsTotal.WithLabelValues(k.address, sel.String(), "success").Inc()
	telemetry.IncrCounterWithLabels(
		[]string{types.ModuleName, "swap"},
		1,
		[]metrics.Label{
			telemetry.NewLabel("pool", k.address),
			telemetry.NewLabel("input", sel.String()),
		},
	)
	k.metrics.SwapVolume.WithLabelValues(k.address, input.String()).Add(amountFloat(quote.input))
	if !quote.protocolFee.IsZero() {
		k.metrics.SwapFeesCollected.WithLabelValues(k.address, input.String()).Add(amountFloat(quote.protocolFee))
	}
	k.recordReserves(pool)
}
