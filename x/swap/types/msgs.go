package types

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Msg is a validated request handled by the swap keeper.
type Msg interface {
	Route() string
	Type() string
	ValidateBasic() error
}

var (
	_ Msg = &MsgInstantiate{}
	_ Msg = &MsgAddLiquidity{}
	_ Msg = &MsgRemoveLiquidity{}
	_ Msg = &MsgSwap{}
	_ Msg = &MsgSwapAndSendTo{}
	_ Msg = &MsgPassThroughSwap{}
	_ Msg = &MsgUpdateConfig{}
	_ Msg = &MsgConfirmBinding{}
)

// MsgInstantiate creates the pool and requests its share token.
type MsgInstantiate struct {
	Sender               string         `json:"sender"`
	Asset1               AssetInfo      `json:"asset1"`
	Asset2               AssetInfo      `json:"asset2"`
	ShareTokenCodeID     uint64         `json:"share_token_code_id"`
	Owner                string         `json:"owner,omitempty"`
	ProtocolFeeRecipient string         `json:"protocol_fee_recipient"`
	LpFeePercent         math.LegacyDec `json:"lp_fee_percent"`
	ProtocolFeePercent   math.LegacyDec `json:"protocol_fee_percent"`
}

func (msg MsgInstantiate) Route() string { return RouterKey }
func (msg MsgInstantiate) Type() string  { return "instantiate" }

func (msg MsgInstantiate) ValidateBasic() error {
	if err := validateAddress("sender", msg.Sender); err != nil {
		return err
	}
	if msg.Owner != "" {
		if err := validateAddress("owner", msg.Owner); err != nil {
			return err
		}
	}
	pool := NewPool(msg.Asset1, msg.Asset2)
	if err := pool.Validate(); err != nil {
		return err
	}
	return msg.Fees().Validate()
}

// Fees returns the fee configuration requested by msg.
func (msg MsgInstantiate) Fees() FeeConfig {
	return FeeConfig{
		LpFeePercent:         msg.LpFeePercent,
		ProtocolFeePercent:   msg.ProtocolFeePercent,
		ProtocolFeeRecipient: msg.ProtocolFeeRecipient,
	}
}

// MsgAddLiquidity deposits Asset1Amount of asset1 and up to MaxAsset2 of asset2.
type MsgAddLiquidity struct {
	Sender       string      `json:"sender"`
	Funds        sdk.Coins   `json:"funds,omitempty"`
	Asset1Amount math.Uint   `json:"asset1_amount"`
	MinLiquidity math.Uint   `json:"min_liquidity"`
	MaxAsset2    math.Uint   `json:"max_asset2"`
	Expiration   *Expiration `json:"expiration,omitempty"`
}

func (msg MsgAddLiquidity) Route() string { return RouterKey }
func (msg MsgAddLiquidity) Type() string  { return "add_liquidity" }

func (msg MsgAddLiquidity) ValidateBasic() error {
	if err := validateAddress("sender", msg.Sender); err != nil {
		return err
	}
	if err := validateFunds(msg.Funds); err != nil {
		return err
	}
	if err := validatePositive("asset1 amount", msg.Asset1Amount); err != nil {
		return err
	}
	if err := validatePositive("max asset2", msg.MaxAsset2); err != nil {
		return err
	}
	if err := validateBound("min liquidity", msg.MinLiquidity); err != nil {
		return err
	}
	return msg.Expiration.Validate()
}

// MsgRemoveLiquidity burns Amount shares for a pro-rata slice of both reserves.
type MsgRemoveLiquidity struct {
	Sender     string      `json:"sender"`
	Amount     math.Uint   `json:"amount"`
	MinAsset1  math.Uint   `json:"min_asset1"`
	MinAsset2  math.Uint   `json:"min_asset2"`
	Expiration *Expiration `json:"expiration,omitempty"`
}

func (msg MsgRemoveLiquidity) Route() string { return RouterKey }
func (msg MsgRemoveLiquidity) Type() string  { return "remove_liquidity" }

func (msg MsgRemoveLiquidity) ValidateBasic() error {
	if err := validateAddress("sender", msg.Sender); err != nil {
		return err
	}
	if err := validatePositive("amount", msg.Amount); err != nil {
		return err
	}
	if err := validateBound("min asset1", msg.MinAsset1); err != nil {
		return err
	}
	if err := validateBound("min asset2", msg.MinAsset2); err != nil {
		return err
	}
	return msg.Expiration.Validate()
}

// MsgSwap sells InputAmount of InputToken to the sender.
type MsgSwap struct {
	Sender      string      `json:"sender"`
	Funds       sdk.Coins   `json:"funds,omitempty"`
	InputToken  TokenSelect `json:"input_token"`
	InputAmount math.Uint   `json:"input_amount"`
	MinOutput   math.Uint   `json:"min_output"`
	Expiration  *Expiration `json:"expiration,omitempty"`
}

func (msg MsgSwap) Route() string { return RouterKey }
func (msg MsgSwap) Type() string  { return "swap" }

func (msg MsgSwap) ValidateBasic() error {
	return validateSwap(msg.Sender, msg.Funds, msg.InputToken, msg.InputAmount, msg.MinOutput, msg.Expiration)
}

// MsgSwapAndSendTo is MsgSwap with the output delivered to Recipient.
type MsgSwapAndSendTo struct {
	Sender      string      `json:"sender"`
	Funds       sdk.Coins   `json:"funds,omitempty"`
	InputToken  TokenSelect `json:"input_token"`
	InputAmount math.Uint   `json:"input_amount"`
	Recipient   string      `json:"recipient"`
	MinToken    math.Uint   `json:"min_token"`
	Expiration  *Expiration `json:"expiration,omitempty"`
}

func (msg MsgSwapAndSendTo) Route() string { return RouterKey }
func (msg MsgSwapAndSendTo) Type() string  { return "swap_and_send_to" }

func (msg MsgSwapAndSendTo) ValidateBasic() error {
	if err := validateAddress("recipient", msg.Recipient); err != nil {
		return err
	}
	return validateSwap(msg.Sender, msg.Funds, msg.InputToken, msg.InputAmount, msg.MinToken, msg.Expiration)
}

// MsgPassThroughSwap swaps InputToken into the other local asset and forwards
// the proceeds to OutputPoolAddress, which pays the sender out.
type MsgPassThroughSwap struct {
	Sender            string      `json:"sender"`
	Funds             sdk.Coins   `json:"funds,omitempty"`
	OutputPoolAddress string      `json:"output_pool_address"`
	InputToken        TokenSelect `json:"input_token"`
	InputTokenAmount  math.Uint   `json:"input_token_amount"`
	OutputMinToken    math.Uint   `json:"output_min_token"`
	Expiration        *Expiration `json:"expiration,omitempty"`
}

func (msg MsgPassThroughSwap) Route() string { return RouterKey }
func (msg MsgPassThroughSwap) Type() string  { return "pass_through_swap" }

func (msg MsgPassThroughSwap) ValidateBasic() error {
	if err := validateAddress("output pool", msg.OutputPoolAddress); err != nil {
		return err
	}
	return validateSwap(msg.Sender, msg.Funds, msg.InputToken, msg.InputTokenAmount, msg.OutputMinToken, msg.Expiration)
}

// MsgUpdateConfig replaces the fee configuration and, when Owner is set, the owner.
type MsgUpdateConfig struct {
	Sender               string         `json:"sender"`
	Owner                string         `json:"owner,omitempty"`
	LpFeePercent         math.LegacyDec `json:"lp_fee_percent"`
	ProtocolFeePercent   math.LegacyDec `json:"protocol_fee_percent"`
	ProtocolFeeRecipient string         `json:"protocol_fee_recipient"`
}

func (msg MsgUpdateConfig) Route() string { return RouterKey }
func (msg MsgUpdateConfig) Type() string  { return "update_config" }

// ValidateBasic deliberately leaves the fee ceiling to the keeper, which must
// report ErrFeesTooHigh regardless of the caller.
func (msg MsgUpdateConfig) ValidateBasic() error {
	if err := validateAddress("sender", msg.Sender); err != nil {
		return err
	}
	if msg.Owner != "" {
		if err := validateAddress("owner", msg.Owner); err != nil {
			return err
		}
	}
	return validateAddress("protocol fee recipient", msg.ProtocolFeeRecipient)
}

// Fees returns the fee configuration requested by msg.
func (msg MsgUpdateConfig) Fees() FeeConfig {
	return FeeConfig{
		LpFeePercent:         msg.LpFeePercent,
		ProtocolFeePercent:   msg.ProtocolFeePercent,
		ProtocolFeeRecipient: msg.ProtocolFeeRecipient,
	}
}

// MsgConfirmBinding is the reply to the share token instantiation.
type MsgConfirmBinding struct {
	ReplyID           uint64 `json:"reply_id"`
	ShareTokenAddress string `json:"share_token_address"`
}

func (msg MsgConfirmBinding) Route() string { return RouterKey }
func (msg MsgConfirmBinding) Type() string  { return "confirm_binding" }

func (msg MsgConfirmBinding) ValidateBasic() error {
	return nil
}

func validateSwap(sender string, funds sdk.Coins, input TokenSelect, amount, minOut math.Uint, exp *Expiration) error {
	if err := validateAddress("sender", sender); err != nil {
		return err
	}
	if err := validateFunds(funds); err != nil {
		return err
	}
	if err := input.Validate(); err != nil {
		return err
	}
	if err := validatePositive("input amount", amount); err != nil {
		return err
	}
	if err := validateBound("min output", minOut); err != nil {
		return err
	}
	return exp.Validate()
}

func validateAddress(field, addr string) error {
	if _, err := sdk.AccAddressFromBech32(addr); err != nil {
		return errorsmod.Wrapf(ErrInvalidAddress, "invalid %s address %q: %s", field, addr, err)
	}
	return nil
}

func validateFunds(funds sdk.Coins) error {
	if err := funds.Validate(); err != nil {
		return errorsmod.Wrapf(ErrInsufficientFunds, "invalid funds: %s", err)
	}
	return nil
}

func validatePositive(field string, amount math.Uint) error {
	if amount.IsNil() || amount.IsZero() {
		return errorsmod.Wrapf(ErrInvalidAmount, "%s must be positive", field)
	}
	return validateBound(field, amount)
}

func validateBound(field string, amount math.Uint) error {
	if amount.IsNil() {
		return errorsmod.Wrapf(ErrInvalidAmount, "%s must be set", field)
	}
	if amount.GT(MaxAmount) {
		return errorsmod.Wrapf(ErrOverflow, "%s %s exceeds 128 bits", field, amount)
	}
	return nil
}
