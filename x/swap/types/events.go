package types

// Event types for the swap module
const (
	EventTypeInstantiate     = "swap_instantiate"
	EventTypeAddLiquidity    = "swap_add_liquidity"
	EventTypeRemoveLiquidity = "swap_remove_liquidity"
	EventTypeSwap            = "swap_swap"
	EventTypePassThroughSwap = "swap_pass_through"
	EventTypeUpdateConfig    = "swap_update_config"
	EventTypeBindShareToken  = "swap_bind_share_token"
	EventTypePriceSnapshot   = "swap_price_snapshot"
)

// Event attribute keys
const (
	AttributeKeySender             = "sender"
	AttributeKeyRecipient          = "recipient"
	AttributeKeyAsset1             = "asset1"
	AttributeKeyAsset2             = "asset2"
	AttributeKeyInputToken         = "input_token"
	AttributeKeyInputAmount        = "input_amount"
	AttributeKeyOutputAmount       = "output_amount"
	AttributeKeyProtocolFee        = "protocol_fee"
	AttributeKeyAsset1Amount       = "asset1_amount"
	AttributeKeyAsset2Amount       = "asset2_amount"
	AttributeKeySharesMinted       = "liquidity_received"
	AttributeKeySharesBurned       = "liquidity_burned"
	AttributeKeyOutputPool         = "output_pool"
	AttributeKeyOwner              = "owner"
	AttributeKeyLpFeePercent       = "lp_fee_percent"
	AttributeKeyProtocolFeePercent = "protocol_fee_percent"
	AttributeKeyShareToken         = "share_token"
	AttributeKeyReplyID            = "reply_id"
	AttributeKeyPrice1             = "price1"
	AttributeKeyPrice2             = "price2"
	AttributeKeyTimestamp          = "timestamp"
)
