package types

import (
	"encoding/json"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Effect is an outbound instruction returned by a handler. The pool never
// performs effects itself; the dispatch layer executes them in order after
// the handler returns.
type Effect interface {
	EffectType() string
}

// BankSendEffect sends native coins held by the pool.
type BankSendEffect struct {
	ToAddress string    `json:"to_address"`
	Amount    sdk.Coins `json:"amount"`
}

// TokenTransferEffect transfers pool-held tokens to Recipient.
type TokenTransferEffect struct {
	Token     string    `json:"token"`
	Recipient string    `json:"recipient"`
	Amount    math.Uint `json:"amount"`
}

// TokenTransferFromEffect pulls tokens from Owner under an allowance granted to the pool.
type TokenTransferFromEffect struct {
	Token     string    `json:"token"`
	Owner     string    `json:"owner"`
	Recipient string    `json:"recipient"`
	Amount    math.Uint `json:"amount"`
}

// TokenIncreaseAllowanceEffect lets Spender pull Amount of pool-held tokens.
type TokenIncreaseAllowanceEffect struct {
	Token   string      `json:"token"`
	Spender string      `json:"spender"`
	Amount  math.Uint   `json:"amount"`
	Expires *Expiration `json:"expires,omitempty"`
}

// MintSharesEffect mints liquidity shares to Recipient.
type MintSharesEffect struct {
	ShareToken string    `json:"share_token"`
	Recipient  string    `json:"recipient"`
	Amount     math.Uint `json:"amount"`
}

// BurnSharesEffect burns liquidity shares held by Owner.
type BurnSharesEffect struct {
	ShareToken string    `json:"share_token"`
	Owner      string    `json:"owner"`
	Amount     math.Uint `json:"amount"`
}

// PoolSwapEffect executes Msg against another pool instance, attaching Funds.
type PoolSwapEffect struct {
	Pool  string           `json:"pool"`
	Msg   MsgSwapAndSendTo `json:"msg"`
	Funds sdk.Coins        `json:"funds,omitempty"`
}

// InstantiateShareTokenEffect requests creation of the share token. The
// dispatch layer answers with MsgConfirmBinding carrying ReplyID.
type InstantiateShareTokenEffect struct {
	ReplyID  uint64 `json:"reply_id"`
	CodeID   uint64 `json:"code_id"`
	Label    string `json:"label"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint32 `json:"decimals"`
	Minter   string `json:"minter"`
}

func (BankSendEffect) EffectType() string               { return "bank_send" }
func (TokenTransferEffect) EffectType() string          { return "token_transfer" }
func (TokenTransferFromEffect) EffectType() string      { return "token_transfer_from" }
func (TokenIncreaseAllowanceEffect) EffectType() string { return "token_increase_allowance" }
func (MintSharesEffect) EffectType() string             { return "mint_shares" }
func (BurnSharesEffect) EffectType() string             { return "burn_shares" }
func (PoolSwapEffect) EffectType() string               { return "pool_swap" }
func (InstantiateShareTokenEffect) EffectType() string  { return "instantiate_share_token" }

type effectEnvelope struct {
	Type  string `json:"type"`
	Value Effect `json:"value"`
}

// MarshalEffects renders effects as a JSON list of {type, value} objects.
func MarshalEffects(effects []Effect) ([]byte, error) {
	envs := make([]effectEnvelope, 0, len(effects))
	for _, e := range effects {
		envs = append(envs, effectEnvelope{Type: e.EffectType(), Value: e})
	}
	return json.Marshal(envs)
}
