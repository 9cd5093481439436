package keeper

import (
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/feedgate-labs/feedgate/x/pricefeed/types"
)

// SetPriceRecord writes a price record to the store. Deviation and ordering
// checks happen in SubmitPriceUpdate, not here.
func (k Keeper) SetPriceRecord(ctx sdk.Context, record types.PriceRecord) error {
	if err := record.Validate(); err != nil {
		return types.ErrInvalidPrice.Wrap(err.Error())
	}

	store := ctx.KVStore(k.storeKey)
	bz, err := k.cdc.Marshal(&record)
	if err != nil {
		return err
	}
	store.Set(types.GetPriceRecordKey(record.FeedId), bz)

	return nil
}

// GetPriceRecord retrieves the stored price record for a feed
func (k Keeper) GetPriceRecord(ctx sdk.Context, feedID string) (types.PriceRecord, error) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.GetPriceRecordKey(feedID))
	if bz == nil {
		return types.PriceRecord{}, types.ErrPriceNotFound.Wrapf("feed %s", feedID)
	}

	var record types.PriceRecord
	if err := k.cdc.Unmarshal(bz, &record); err != nil {
		return types.PriceRecord{}, err
	}
	return record, nil
}

// HasPriceRecord reports whether a feed has a stored price record
func (k Keeper) HasPriceRecord(ctx sdk.Context, feedID string) bool {
	store := ctx.KVStore(k.storeKey)
	return store.Has(types.GetPriceRecordKey(feedID))
}

// IteratePriceRecords iterates over all price records in the store
func (k Keeper) IteratePriceRecords(ctx sdk.Context, cb func(record types.PriceRecord) (stop bool)) {
	store := ctx.KVStore(k.storeKey)
	iterator := storetypes.KVStorePrefixIterator(store, types.PriceRecordKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var record types.PriceRecord
		if err := k.cdc.Unmarshal(iterator.Value(), &record); err != nil {
			continue
		}
		if cb(record) {
			break
		}
	}
}

// GetAllPriceRecords returns all stored price records
func (k Keeper) GetAllPriceRecords(ctx sdk.Context) []types.PriceRecord {
	records := make([]types.PriceRecord, 0, 50)
	k.IteratePriceRecords(ctx, func(record types.PriceRecord) bool {
		records = append(records, record)
		return false
	})
	return records
}
