package types

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MaxFeePercent caps lp + protocol fee. Fractions are expressed so that 1 is 100%.
var MaxFeePercent = math.LegacyOneDec()

// FeeConfig holds the trading fee split of a pool.
type FeeConfig struct {
	LpFeePercent         math.LegacyDec `json:"lp_fee_percent"`
	ProtocolFeePercent   math.LegacyDec `json:"protocol_fee_percent"`
	ProtocolFeeRecipient string         `json:"protocol_fee_recipient"`
}

// DefaultFeeConfig returns the reference 0.3% fee, split 0.25% to liquidity
// providers and 0.05% to recipient.
func DefaultFeeConfig(recipient string) FeeConfig {
	return FeeConfig{
		LpFeePercent:         math.LegacyNewDecWithPrec(25, 4),
		ProtocolFeePercent:   math.LegacyNewDecWithPrec(5, 4),
		ProtocolFeeRecipient: recipient,
	}
}

// TotalFeePercent returns lp + protocol.
func (f FeeConfig) TotalFeePercent() math.LegacyDec {
	return f.LpFeePercent.Add(f.ProtocolFeePercent)
}

// ValidateFees checks the fee ceiling. It is split from Validate so the
// ceiling can be enforced before the caller is authorized.
func ValidateFees(lpFee, protocolFee math.LegacyDec) error {
	if lpFee.IsNil() || protocolFee.IsNil() {
		return errorsmod.Wrap(ErrInvalidAmount, "fee percent must be set")
	}
	if lpFee.IsNegative() || protocolFee.IsNegative() {
		return errorsmod.Wrapf(ErrInvalidAmount, "fee percent must be non-negative: lp %s, protocol %s", lpFee, protocolFee)
	}
	total := lpFee.Add(protocolFee)
	if total.GT(MaxFeePercent) {
		return errorsmod.Wrapf(ErrFeesTooHigh, "total fee (%s) is higher than max (%s)", total, MaxFeePercent)
	}
	return nil
}

// Validate checks the fee ceiling and the recipient address.
func (f FeeConfig) Validate() error {
	if err := ValidateFees(f.LpFeePercent, f.ProtocolFeePercent); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(f.ProtocolFeeRecipient); err != nil {
		return errorsmod.Wrapf(ErrInvalidAddress, "protocol fee recipient: %s", err)
	}
	return nil
}
