package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/feedgate-labs/feedgate/x/pricefeed/types"
)

var (
	unitScale = math.NewIntWithDecimal(1, types.UnitScaleDecimals)
	bpsScale  = math.NewInt(types.BpsDenominator)
)

// CollateralRatioBps computes the collateral-to-debt ratio in basis points
// using the stored price for the feed. Collateral and debt are expressed in
// whole units, the price carries the 10^18 fixed-point scale.
//
// The feed must have a fresh price: a missing record fails with
// ErrPriceNotFound, a stale one with ErrPriceTooOld. Integer division,
// truncating.
func (k Keeper) CollateralRatioBps(ctx sdk.Context, feedID string, collateral, debt math.Int) (math.Int, error) {
	if collateral.IsNil() || collateral.IsNegative() {
		return math.Int{}, sdkerrors.ErrInvalidRequest.Wrap("collateral cannot be negative")
	}
	if debt.IsNil() || !debt.IsPositive() {
		return math.Int{}, sdkerrors.ErrInvalidRequest.Wrap("debt must be positive")
	}

	record, err := k.GetPriceRecord(ctx, feedID)
	if err != nil {
		return math.Int{}, err
	}

	params := k.GetParams(ctx)
	if record.IsStale(ctx.BlockTime(), params.MaxPriceAge) {
		return math.Int{}, types.ErrPriceTooOld.Wrapf(
			"feed %s: age %s exceeds maximum %ds",
			feedID, record.Age(ctx.BlockTime()), params.MaxPriceAge,
		)
	}

	ratio := collateral.Mul(record.Value).Quo(unitScale).Mul(bpsScale).Quo(debt)
	return ratio, nil
}

// ShouldLiquidate reports whether the position's collateral ratio has fallen
// below the threshold. Unlike CollateralRatioBps it fails closed on stale or
// missing price data: a monitoring loop polling this must keep running, so
// freshness problems yield false instead of an error.
func (k Keeper) ShouldLiquidate(ctx sdk.Context, feedID string, collateral, debt math.Int, thresholdBps uint64) (bool, error) {
	if collateral.IsNil() || collateral.IsNegative() {
		return false, sdkerrors.ErrInvalidRequest.Wrap("collateral cannot be negative")
	}
	if debt.IsNil() || !debt.IsPositive() {
		return false, sdkerrors.ErrInvalidRequest.Wrap("debt must be positive")
	}

	if !k.IsFresh(ctx, feedID) {
		return false, nil
	}

	ratio, err := k.CollateralRatioBps(ctx, feedID, collateral, debt)
	if err != nil {
		return false, err
	}

	return ratio.LT(math.NewIntFromUint64(thresholdBps)), nil
}
