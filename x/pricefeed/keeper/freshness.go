package keeper

import (
	"math"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// InfiniteAge is the sentinel returned by AgeOf for feeds without a stored
// record.
const InfiniteAge = time.Duration(math.MaxInt64)

// IsFresh reports whether the stored price for a feed is within the allowed
// age window. Feeds without a record are never fresh. Pure read, measured
// against the current block time.
func (k Keeper) IsFresh(ctx sdk.Context, feedID string) bool {
	record, err := k.GetPriceRecord(ctx, feedID)
	if err != nil {
		return false
	}

	params := k.GetParams(ctx)
	return !record.IsStale(ctx.BlockTime(), params.MaxPriceAge)
}

// AgeOf returns the age of the stored price for a feed, or InfiniteAge if
// the feed has no record.
func (k Keeper) AgeOf(ctx sdk.Context, feedID string) time.Duration {
	record, err := k.GetPriceRecord(ctx, feedID)
	if err != nil {
		return InfiniteAge
	}
	return record.Age(ctx.BlockTime())
}
