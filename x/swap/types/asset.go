package types

import (
	"encoding/json"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// AssetKind tags the variant held by an AssetInfo.
type AssetKind uint8

const (
	AssetKindUnspecified AssetKind = iota
	// AssetKindNative is a bank denomination held by the chain ledger.
	AssetKindNative
	// AssetKindToken is an externally issued token identified by its contract address.
	AssetKindToken
)

func (k AssetKind) String() string {
	switch k {
	case AssetKindNative:
		return "native"
	case AssetKindToken:
		return "token"
	default:
		return "unspecified"
	}
}

// AssetInfo identifies one side of a pool. It is either a native denom or a
// token contract address, never both.
type AssetInfo struct {
	kind  AssetKind
	value string
}

// NativeAsset returns the native variant for denom.
func NativeAsset(denom string) AssetInfo {
	return AssetInfo{kind: AssetKindNative, value: denom}
}

// TokenAsset returns the token variant for the contract at addr.
func TokenAsset(addr string) AssetInfo {
	return AssetInfo{kind: AssetKindToken, value: addr}
}

func (a AssetInfo) Kind() AssetKind { return a.kind }
func (a AssetInfo) IsNative() bool  { return a.kind == AssetKindNative }
func (a AssetInfo) IsToken() bool   { return a.kind == AssetKindToken }

// Denom returns the native denom, or "" for tokens.
func (a AssetInfo) Denom() string {
	if a.kind != AssetKindNative {
		return ""
	}
	return a.value
}

// Address returns the token contract address, or "" for native assets.
func (a AssetInfo) Address() string {
	if a.kind != AssetKindToken {
		return ""
	}
	return a.value
}

// Equal reports whether both identifiers name the same asset.
func (a AssetInfo) Equal(other AssetInfo) bool {
	return a.kind == other.kind && a.value == other.value
}

func (a AssetInfo) String() string {
	return fmt.Sprintf("%s:%s", a.kind, a.value)
}

// Validate checks the variant is set and its payload well-formed.
func (a AssetInfo) Validate() error {
	switch a.kind {
	case AssetKindNative:
		if err := sdk.ValidateDenom(a.value); err != nil {
			return errorsmod.Wrapf(ErrInvalidAsset, "native denom %q: %s", a.value, err)
		}
	case AssetKindToken:
		if _, err := sdk.AccAddressFromBech32(a.value); err != nil {
			return errorsmod.Wrapf(ErrInvalidAsset, "token address %q: %s", a.value, err)
		}
	default:
		return errorsmod.Wrap(ErrInvalidAsset, "asset kind not set")
	}
	return nil
}

// TransferEffect builds the effect that moves amount of this asset from the
// pool to recipient.
func (a AssetInfo) TransferEffect(recipient string, amount math.Uint) Effect {
	if a.IsToken() {
		return TokenTransferEffect{Token: a.value, Recipient: recipient, Amount: amount}
	}
	return BankSendEffect{ToAddress: recipient, Amount: sdk.NewCoins(sdk.NewCoin(a.value, math.NewIntFromBigInt(amount.BigInt())))}
}

// PullEffect builds the effect that moves amount of this asset from owner into
// the pool. Native assets arrive with the request funds, so there is nothing
// to pull and ok is false.
func (a AssetInfo) PullEffect(owner, pool string, amount math.Uint) (effect Effect, ok bool) {
	if !a.IsToken() {
		return nil, false
	}
	return TokenTransferFromEffect{Token: a.value, Owner: owner, Recipient: pool, Amount: amount}, true
}

// Coin returns the native coin for amount. It panics for token assets.
func (a AssetInfo) Coin(amount math.Uint) sdk.Coin {
	if !a.IsNative() {
		panic(fmt.Sprintf("asset %s has no coin representation", a))
	}
	return sdk.NewCoin(a.value, math.NewIntFromBigInt(amount.BigInt()))
}

type assetInfoJSON struct {
	Native *string `json:"native,omitempty"`
	Token  *string `json:"token,omitempty"`
}

func (a AssetInfo) MarshalJSON() ([]byte, error) {
	var aux assetInfoJSON
	switch a.kind {
	case AssetKindNative:
		aux.Native = &a.value
	case AssetKindToken:
		aux.Token = &a.value
	}
	return json.Marshal(aux)
}

func (a *AssetInfo) UnmarshalJSON(bz []byte) error {
	var aux assetInfoJSON
	if err := json.Unmarshal(bz, &aux); err != nil {
		return err
	}
	switch {
	case aux.Native != nil && aux.Token != nil:
		return errorsmod.Wrap(ErrInvalidAsset, "asset cannot be both native and token")
	case aux.Native != nil:
		*a = NativeAsset(*aux.Native)
	case aux.Token != nil:
		*a = TokenAsset(*aux.Token)
	default:
		*a = AssetInfo{}
	}
	return nil
}
