package types

import (
	"cosmossdk.io/math"
)

type MsgInstantiateResponse struct {
	Effects []Effect `json:"-"`
}

type MsgAddLiquidityResponse struct {
	SharesMinted   math.Uint `json:"shares_minted"`
	Asset2Required math.Uint `json:"asset2_required"`
	Effects        []Effect  `json:"-"`
}

type MsgRemoveLiquidityResponse struct {
	Asset1Returned math.Uint `json:"asset1_returned"`
	Asset2Returned math.Uint `json:"asset2_returned"`
	Effects        []Effect  `json:"-"`
}

type MsgSwapResponse struct {
	AmountOut   math.Uint `json:"amount_out"`
	ProtocolFee math.Uint `json:"protocol_fee"`
	Effects     []Effect  `json:"-"`
}

type MsgPassThroughSwapResponse struct {
	IntermediateAmount math.Uint `json:"intermediate_amount"`
	ProtocolFee        math.Uint `json:"protocol_fee"`
	Effects            []Effect  `json:"-"`
}

type MsgUpdateConfigResponse struct{}

type MsgConfirmBindingResponse struct {
	ShareToken string `json:"share_token"`
}

// InfoResponse describes the pool instance.
type InfoResponse struct {
	Asset1Reserve        math.Uint      `json:"asset1_reserve"`
	Asset1               AssetInfo      `json:"asset1"`
	Asset2Reserve        math.Uint      `json:"asset2_reserve"`
	Asset2               AssetInfo      `json:"asset2"`
	ShareSupply          math.Uint      `json:"share_supply"`
	ShareToken           string         `json:"share_token,omitempty"`
	Owner                string         `json:"owner,omitempty"`
	LpFeePercent         math.LegacyDec `json:"lp_fee_percent"`
	ProtocolFeePercent   math.LegacyDec `json:"protocol_fee_percent"`
	ProtocolFeeRecipient string         `json:"protocol_fee_recipient"`
}

// PriceResponse is a quote for a hypothetical swap.
type PriceResponse struct {
	InputAmount  math.Uint `json:"input_amount"`
	OutputAmount math.Uint `json:"output_amount"`
}

// SnapshotsResponse lists recorded snapshots, oldest first.
type SnapshotsResponse struct {
	Snapshots []PriceSnapshot `json:"snapshots"`
}
