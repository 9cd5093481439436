package types

// Event types for the pricefeed module
// All event types use lowercase with underscore separator (module_action format)
const (
	EventTypePriceUpdated         = "pricefeed_price_updated"
	EventTypeParamsUpdated        = "pricefeed_params_updated"
	EventTypeOwnershipTransferred = "pricefeed_ownership_transferred"
	EventTypeFeeCharged           = "pricefeed_fee_charged"
)

// Event attribute keys for the pricefeed module
const (
	AttributeKeyFeedId        = "feed_id"
	AttributeKeyOldPrice      = "old_price"
	AttributeKeyNewPrice      = "new_price"
	AttributeKeyTimestamp     = "timestamp"
	AttributeKeySlot          = "slot"
	AttributeKeySender        = "sender"
	AttributeKeyFee           = "fee"
	AttributeKeyRefund        = "refund"
	AttributeKeyMaxPriceAge   = "max_price_age"
	AttributeKeyMaxDeviation  = "max_deviation_bps"
	AttributeKeyPreviousOwner = "previous_owner"
	AttributeKeyNewOwner      = "new_owner"
)
