package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// Pricefeed module sentinel errors
var (
	// Feed and record errors
	ErrInvalidFeed    = sdkerrors.Register(ModuleName, 2, "invalid feed id")
	ErrInvalidPrice   = sdkerrors.Register(ModuleName, 3, "invalid price value")
	ErrInvalidPayload = sdkerrors.Register(ModuleName, 4, "invalid update payload")
	ErrPriceNotFound  = sdkerrors.Register(ModuleName, 5, "price not found")
	ErrPriceTooOld    = sdkerrors.Register(ModuleName, 6, "price data too old")

	// Update validation errors
	ErrPriceDeviationTooHigh = sdkerrors.Register(ModuleName, 7, "price deviation too high")
	ErrInsufficientFee       = sdkerrors.Register(ModuleName, 8, "insufficient update fee")
	ErrFeedNotInUpdate       = sdkerrors.Register(ModuleName, 9, "feed not present in verified update")
	ErrStaleUpdate           = sdkerrors.Register(ModuleName, 10, "update older than stored record")

	// Configuration errors
	ErrUnauthorized  = sdkerrors.Register(ModuleName, 11, "unauthorized")
	ErrInvalidConfig = sdkerrors.Register(ModuleName, 12, "invalid module configuration")
)
