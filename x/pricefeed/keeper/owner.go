package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/feedgate-labs/feedgate/x/pricefeed/types"
)

// GetOwner returns the current configuration owner. An empty string means no
// owner is set and the configuration is frozen.
func (k Keeper) GetOwner(ctx sdk.Context) string {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.OwnerKey)
	if bz == nil {
		return ""
	}
	return string(bz)
}

// SetOwner stores the configuration owner address
func (k Keeper) SetOwner(ctx sdk.Context, owner string) {
	store := ctx.KVStore(k.storeKey)
	store.Set(types.OwnerKey, []byte(owner))
}

// assertOwner checks that the given address is the current owner.
func (k Keeper) assertOwner(ctx sdk.Context, addr string) error {
	owner := k.GetOwner(ctx)
	if owner == "" {
		return types.ErrUnauthorized.Wrap("no configuration owner is set")
	}
	if addr != owner {
		return types.ErrUnauthorized.Wrapf("expected owner %s, got %s", owner, addr)
	}
	return nil
}
