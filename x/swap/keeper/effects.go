package keeper

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/swap/types"
)

// validateNativeInput checks that funds carries exactly amount of asset. Token
// assets are pulled with an allowance instead and are not checked here.
func validateNativeInput(funds sdk.Coins, asset types.AssetInfo, amount math.Uint) error {
	if !asset.IsNative() {
		return nil
	}
	got := funds.AmountOf(asset.Denom())
	if got.IsZero() && !funds.Empty() && !amount.IsZero() {
		return errorsmod.Wrapf(types.ErrIncorrectDenom, "provided %s, required %s", funds, asset.Denom())
	}
	if !got.Equal(math.NewIntFromBigInt(amount.BigInt())) {
		return errorsmod.Wrapf(types.ErrInsufficientFunds, "sent %s%s, expected %s%s", got, asset.Denom(), amount, asset.Denom())
	}
	return nil
}

// effectList accumulates outbound effects in emission order.
type effectList []types.Effect

// pull requests amount of a token asset from owner into the pool.
func (l *effectList) pull(asset types.AssetInfo, owner, pool string, amount math.Uint) {
	if amount.IsZero() {
		return
	}
	if e, ok := asset.PullEffect(owner, pool, amount); ok {
		*l = append(*l, e)
	}
}

// transfer sends amount of asset from the pool to recipient.
func (l *effectList) transfer(asset types.AssetInfo, recipient string, amount math.Uint) {
	if amount.IsZero() {
		return
	}
	*l = append(*l, asset.TransferEffect(recipient, amount))
}

func (l *effectList) add(e types.Effect) {
	*l = append(*l, e)
}
