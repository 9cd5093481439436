package keeper

import (
	"fmt"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/feedgate-labs/feedgate/x/pricefeed/types"
)

// RegisterInvariants registers all pricefeed module invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "record-validity",
		RecordValidityInvariant(k))
	ir.RegisterRoute(types.ModuleName, "params-validity",
		ParamsValidityInvariant(k))
}

// AllInvariants runs all invariants of the pricefeed module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := RecordValidityInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		return ParamsValidityInvariant(k)(ctx)
	}
}

// RecordValidityInvariant checks that every stored price record is
// well-formed
func RecordValidityInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var issues []string

		k.IteratePriceRecords(ctx, func(record types.PriceRecord) bool {
			if err := record.Validate(); err != nil {
				issues = append(issues, fmt.Sprintf("feed %q: %s", record.FeedId, err))
			}
			return false
		})

		broken := len(issues) > 0
		msg := sdk.FormatInvariant(types.ModuleName, "record-validity",
			fmt.Sprintf("%d malformed price records\n%s", len(issues), strings.Join(issues, "\n")))
		return msg, broken
	}
}

// ParamsValidityInvariant checks that the stored configuration is valid
func ParamsValidityInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		err := k.GetParams(ctx).Validate()
		broken := err != nil
		msg := sdk.FormatInvariant(types.ModuleName, "params-validity",
			fmt.Sprintf("invalid module parameters: %v", err))
		return msg, broken
	}
}
