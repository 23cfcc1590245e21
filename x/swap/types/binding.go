package types

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BindingStatus is the state of the share token binding.
type BindingStatus string

const (
	BindingAwaiting BindingStatus = "awaiting"
	BindingBound    BindingStatus = "bound"
)

// ShareTokenBinding tracks the two-phase creation of the share token: the pool
// starts out awaiting a reply carrying ReplyID and ends bound to Address.
type ShareTokenBinding struct {
	Status  BindingStatus `json:"status"`
	ReplyID uint64        `json:"reply_id,omitempty"`
	Address string        `json:"address,omitempty"`
}

// AwaitingBinding returns the pending marker for replyID.
func AwaitingBinding(replyID uint64) ShareTokenBinding {
	return ShareTokenBinding{Status: BindingAwaiting, ReplyID: replyID}
}

// Bound returns the terminal state for the share token at addr.
func Bound(addr string) ShareTokenBinding {
	return ShareTokenBinding{Status: BindingBound, Address: addr}
}

// ShareToken returns the bound address, or ErrShareTokenNotBound while the
// pool is still awaiting its reply.
func (b ShareTokenBinding) ShareToken() (string, error) {
	if b.Status != BindingBound {
		return "", errorsmod.Wrapf(ErrShareTokenNotBound, "awaiting reply %d", b.ReplyID)
	}
	return b.Address, nil
}

// Accept consumes the pending marker with a confirmation.
func (b ShareTokenBinding) Accept(replyID uint64, addr string) (ShareTokenBinding, error) {
	if b.Status != BindingAwaiting || b.ReplyID != replyID {
		return b, errorsmod.Wrapf(ErrUnknownReplyID, "id: %d", replyID)
	}
	if addr == "" {
		return b, errorsmod.Wrap(ErrShareTokenInstantiate, "empty share token address")
	}
	if _, err := sdk.AccAddressFromBech32(addr); err != nil {
		return b, errorsmod.Wrapf(ErrShareTokenInstantiate, "share token address: %s", err)
	}
	return Bound(addr), nil
}

func (b ShareTokenBinding) Validate() error {
	switch b.Status {
	case BindingAwaiting:
		if b.Address != "" {
			return errorsmod.Wrap(ErrInvalidState, "awaiting binding must not carry an address")
		}
	case BindingBound:
		if _, err := sdk.AccAddressFromBech32(b.Address); err != nil {
			return errorsmod.Wrapf(ErrInvalidState, "bound share token: %s", err)
		}
	default:
		return errorsmod.Wrapf(ErrInvalidState, "unknown binding status %q", b.Status)
	}
	return nil
}
