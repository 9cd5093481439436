package keeper

import (
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/feedgate-labs/feedgate/x/pricefeed/types"
)

// Keeper maintains the state of the pricefeed module: the price store, the
// module configuration and the configuration owner. Payload authentication
// is delegated to the injected QuoteVerifier and never happens here.
type Keeper struct {
	cdc        *codec.LegacyAmino
	storeKey   storetypes.StoreKey
	bankKeeper types.BankKeeper
	verifier   types.QuoteVerifier
	metrics    *Metrics
}

// NewKeeper creates a new pricefeed Keeper instance. metrics may be nil.
func NewKeeper(
	cdc *codec.LegacyAmino,
	storeKey storetypes.StoreKey,
	bankKeeper types.BankKeeper,
	verifier types.QuoteVerifier,
	metrics *Metrics,
) Keeper {
	return Keeper{
		cdc:        cdc,
		storeKey:   storeKey,
		bankKeeper: bankKeeper,
		verifier:   verifier,
		metrics:    metrics,
	}
}

// Logger returns a module-specific logger
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// InitGenesis initializes the module's state from a provided genesis state.
func (k Keeper) InitGenesis(ctx sdk.Context, genState types.GenesisState) {
	if err := k.SetParams(ctx, genState.Params); err != nil {
		panic(fmt.Sprintf("failed to set params: %s", err))
	}

	if genState.Owner != "" {
		k.SetOwner(ctx, genState.Owner)
	}

	for _, record := range genState.Records {
		if err := k.SetPriceRecord(ctx, record); err != nil {
			panic(fmt.Sprintf("failed to set price record for feed %s: %s", record.FeedId, err))
		}
	}

	k.Logger(ctx).Info("pricefeed module genesis initialized", "records", len(genState.Records))
}

// ExportGenesis returns the module's exported genesis state.
func (k Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	return types.NewGenesisState(
		k.GetParams(ctx),
		k.GetOwner(ctx),
		k.GetAllPriceRecords(ctx),
	)
}
