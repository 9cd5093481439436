package keeper

import (
	"fmt"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/feedgate-labs/feedgate/x/pricefeed/types"
)

// SubmitPriceUpdate authenticates an oracle update payload through the
// injected verifier and applies it to the price store for the requested
// feeds, in the caller-supplied order.
//
// The batch is all-or-nothing: records and their price_updated events are
// staged on a cache context and written only after every feed passes the
// deviation and ordering checks. The first failing feed aborts the whole
// call. The fee moves only on the success path, so a failed call leaves
// both the price store and the fee channel untouched.
//
// Returns the excess payment refunded to the sender.
func (k Keeper) SubmitPriceUpdate(
	ctx sdk.Context,
	sender sdk.AccAddress,
	payload []byte,
	feedIDs []string,
	payment sdk.Coin,
) (sdk.Coin, error) {
	start := time.Now()
	defer func() {
		if k.metrics != nil {
			k.metrics.UpdateLatency.Observe(time.Since(start).Seconds())
		}
	}()

	values, requiredFee, err := k.verifier.VerifyUpdate(ctx, payload)
	if err != nil {
		k.countRejection("verification")
		return sdk.Coin{}, types.ErrInvalidPayload.Wrapf("payload verification failed: %s", err)
	}

	if payment.Denom != requiredFee.Denom {
		k.countRejection("fee")
		return sdk.Coin{}, types.ErrInsufficientFee.Wrapf("expected %s, received %s", requiredFee, payment)
	}
	if payment.IsLT(requiredFee) {
		k.countRejection("fee")
		return sdk.Coin{}, types.ErrInsufficientFee.Wrapf("expected %s, received %s", requiredFee, payment)
	}

	byFeed := make(map[string]types.VerifiedFeedValue, len(values))
	for _, value := range values {
		if err := value.Validate(); err != nil {
			k.countRejection("verification")
			return sdk.Coin{}, types.ErrInvalidPayload.Wrap(err.Error())
		}
		if _, dup := byFeed[value.FeedId]; dup {
			k.countRejection("verification")
			return sdk.Coin{}, types.ErrInvalidPayload.Wrapf("duplicate feed %s in update", value.FeedId)
		}
		byFeed[value.FeedId] = value
	}

	params := k.GetParams(ctx)
	cacheCtx, write := ctx.CacheContext()

	for _, feedID := range feedIDs {
		value, ok := byFeed[feedID]
		if !ok {
			k.countRejection("missing_feed")
			return sdk.Coin{}, types.ErrFeedNotInUpdate.Wrapf("feed %s", feedID)
		}

		if err := k.applyFeedValue(cacheCtx, params, value); err != nil {
			return sdk.Coin{}, err
		}
	}

	refund, err := k.chargeFee(ctx, sender, payment, requiredFee)
	if err != nil {
		return sdk.Coin{}, err
	}

	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeFeeCharged,
			sdk.NewAttribute(types.AttributeKeySender, sender.String()),
			sdk.NewAttribute(types.AttributeKeyFee, requiredFee.String()),
			sdk.NewAttribute(types.AttributeKeyRefund, refund.String()),
		),
	)

	if k.metrics != nil {
		k.metrics.UpdatesAccepted.Add(float64(len(feedIDs)))
	}

	k.Logger(ctx).Info("price update accepted",
		"sender", sender.String(),
		"feeds", len(feedIDs),
		"fee", requiredFee.String(),
	)

	return refund, nil
}

// applyFeedValue validates one verified feed tuple against the stored record
// and stages the new record on the given (cache) context.
func (k Keeper) applyFeedValue(ctx sdk.Context, params types.Params, value types.VerifiedFeedValue) error {
	attrs := make([]sdk.Attribute, 0, 5)
	attrs = append(attrs, sdk.NewAttribute(types.AttributeKeyFeedId, value.FeedId))

	old, err := k.GetPriceRecord(ctx, value.FeedId)
	if err == nil {
		if value.Timestamp < old.Timestamp {
			k.countRejection("stale_update")
			return types.ErrStaleUpdate.Wrapf(
				"feed %s: update timestamp %d older than stored %d",
				value.FeedId, value.Timestamp, old.Timestamp,
			)
		}

		// First update for a feed is exempt, afterwards every new value must
		// stay within the configured deviation budget relative to the stored
		// one. Sign changes never pass.
		deviation, exceeded := types.ExceedsDeviation(old.Value, value.Value, params.MaxDeviationBps)
		if exceeded {
			k.countRejection("deviation")
			if k.metrics != nil {
				k.metrics.DeviationRejected.WithLabelValues(value.FeedId).Inc()
			}
			return types.ErrPriceDeviationTooHigh.Wrapf(
				"feed %s: deviation %s bps exceeds maximum %d bps",
				value.FeedId, deviation.String(), params.MaxDeviationBps,
			)
		}

		attrs = append(attrs, sdk.NewAttribute(types.AttributeKeyOldPrice, old.Value.String()))
	}

	record := types.NewPriceRecord(value.FeedId, value.Value, value.Timestamp, value.Slot)
	if err := k.SetPriceRecord(ctx, record); err != nil {
		return err
	}

	attrs = append(attrs,
		sdk.NewAttribute(types.AttributeKeyNewPrice, record.Value.String()),
		sdk.NewAttribute(types.AttributeKeyTimestamp, fmt.Sprintf("%d", record.Timestamp)),
		sdk.NewAttribute(types.AttributeKeySlot, fmt.Sprintf("%d", record.Slot)),
	)

	ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypePriceUpdated, attrs...))

	if k.metrics != nil {
		// Strip the 10^18 fixed-point scale so the gauge carries the real price.
		unscaled := math.LegacyNewDecFromIntWithPrec(record.Value, types.UnitScaleDecimals)
		if f, err := unscaled.Float64(); err == nil {
			k.metrics.LastPrice.WithLabelValues(record.FeedId).Set(f)
		}
	}

	return nil
}

// chargeFee collects the full payment into the module account and refunds
// the excess over the required fee. A refund failure fails the whole call,
// refunds are not best-effort.
func (k Keeper) chargeFee(ctx sdk.Context, sender sdk.AccAddress, payment, requiredFee sdk.Coin) (sdk.Coin, error) {
	refund := sdk.NewCoin(payment.Denom, payment.Amount.Sub(requiredFee.Amount))

	if payment.IsPositive() {
		if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, sender, types.ModuleName, sdk.NewCoins(payment)); err != nil {
			return sdk.Coin{}, types.ErrInsufficientFee.Wrapf("fee collection failed: %s", err)
		}
	}

	if refund.IsPositive() {
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, sender, sdk.NewCoins(refund)); err != nil {
			return sdk.Coin{}, fmt.Errorf("refund of %s failed: %w", refund, err)
		}
	}

	if k.metrics != nil {
		if f, err := requiredFee.Amount.ToLegacyDec().Float64(); err == nil {
			k.metrics.FeesCollected.Add(f)
		}
	}

	return refund, nil
}

func (k Keeper) countRejection(reason string) {
	if k.metrics != nil {
		k.metrics.UpdatesRejected.WithLabelValues(reason).Inc()
	}
}
