package keeper_test

import (
	"errors"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	testkeeper "github.com/feedgate-labs/feedgate/testutil/keeper"
	"github.com/feedgate-labs/feedgate/x/pricefeed/types"
)

var updateSender = sdk.AccAddress([]byte("update_test_sender__"))

func fund(bank *testkeeper.MockBankKeeper, amount int64) {
	bank.Fund(updateSender, sdk.NewCoins(sdk.NewInt64Coin("ufeed", amount)))
}

func TestSubmitPriceUpdateSingleFeed(t *testing.T) {
	k, bank, qv, ctx := testkeeper.PricefeedKeeper(t)
	now := testkeeper.TestBlockTime.Unix()

	fund(bank, 100)
	qv.Fee = sdk.NewInt64Coin("ufeed", 10)
	qv.Values = []types.VerifiedFeedValue{
		{FeedId: "BTC/USD", Value: scaled(45000), Timestamp: now, Slot: 42},
	}

	refund, err := k.SubmitPriceUpdate(ctx, updateSender, []byte("payload"), []string{"BTC/USD"}, sdk.NewInt64Coin("ufeed", 10))
	require.NoError(t, err)
	require.True(t, refund.IsZero())

	record, err := k.GetPriceRecord(ctx, "BTC/USD")
	require.NoError(t, err)
	require.Equal(t, scaled(45000), record.Value)
	require.Equal(t, now, record.Timestamp)
	require.Equal(t, uint64(42), record.Slot)

	// Fee landed in the module account.
	require.Equal(t, sdk.NewCoins(sdk.NewInt64Coin("ufeed", 90)), bank.BalanceOf(updateSender.String()))
	require.Equal(t, sdk.NewCoins(sdk.NewInt64Coin("ufeed", 10)), bank.BalanceOf(types.ModuleName))

	updated := findEvents(ctx, types.EventTypePriceUpdated)
	require.Len(t, updated, 1)
	require.Equal(t, "BTC/USD", attribute(t, updated[0], types.AttributeKeyFeedId))
	require.Equal(t, scaled(45000).String(), attribute(t, updated[0], types.AttributeKeyNewPrice))

	charged := findEvents(ctx, types.EventTypeFeeCharged)
	require.Len(t, charged, 1)
	require.Equal(t, "10ufeed", attribute(t, charged[0], types.AttributeKeyFee))
}

func TestSubmitPriceUpdateRefundsExcess(t *testing.T) {
	k, bank, qv, ctx := testkeeper.PricefeedKeeper(t)
	now := testkeeper.TestBlockTime.Unix()

	fund(bank, 100)
	qv.Fee = sdk.NewInt64Coin("ufeed", 10)
	qv.Values = []types.VerifiedFeedValue{
		{FeedId: "BTC/USD", Value: scaled(45000), Timestamp: now, Slot: 1},
	}

	refund, err := k.SubmitPriceUpdate(ctx, updateSender, []byte("payload"), []string{"BTC/USD"}, sdk.NewInt64Coin("ufeed", 25))
	require.NoError(t, err)
	require.Equal(t, sdk.NewInt64Coin("ufeed", 15), refund)

	// Only the required fee is kept.
	require.Equal(t, sdk.NewCoins(sdk.NewInt64Coin("ufeed", 90)), bank.BalanceOf(updateSender.String()))
	require.Equal(t, sdk.NewCoins(sdk.NewInt64Coin("ufeed", 10)), bank.BalanceOf(types.ModuleName))

	charged := findEvents(ctx, types.EventTypeFeeCharged)
	require.Len(t, charged, 1)
	require.Equal(t, "15ufeed", attribute(t, charged[0], types.AttributeKeyRefund))
}

func TestSubmitPriceUpdateInsufficientFee(t *testing.T) {
	k, bank, qv, ctx := testkeeper.PricefeedKeeper(t)
	now := testkeeper.TestBlockTime.Unix()

	fund(bank, 100)
	qv.Fee = sdk.NewInt64Coin("ufeed", 10)
	qv.Values = []types.VerifiedFeedValue{
		{FeedId: "BTC/USD", Value: scaled(45000), Timestamp: now, Slot: 1},
	}

	_, err := k.SubmitPriceUpdate(ctx, updateSender, []byte("payload"), []string{"BTC/USD"}, sdk.NewInt64Coin("ufeed", 5))
	require.ErrorIs(t, err, types.ErrInsufficientFee)

	// Nothing moved, nothing stored.
	require.False(t, k.HasPriceRecord(ctx, "BTC/USD"))
	require.Equal(t, sdk.NewCoins(sdk.NewInt64Coin("ufeed", 100)), bank.BalanceOf(updateSender.String()))
	require.Empty(t, bank.BalanceOf(types.ModuleName))
	require.Empty(t, findEvents(ctx, types.EventTypePriceUpdated))
}

func TestSubmitPriceUpdateWrongFeeDenom(t *testing.T) {
	k, bank, qv, ctx := testkeeper.PricefeedKeeper(t)
	now := testkeeper.TestBlockTime.Unix()

	fund(bank, 100)
	qv.Fee = sdk.NewInt64Coin("ufeed", 10)
	qv.Values = []types.VerifiedFeedValue{
		{FeedId: "BTC/USD", Value: scaled(45000), Timestamp: now, Slot: 1},
	}

	_, err := k.SubmitPriceUpdate(ctx, updateSender, []byte("payload"), []string{"BTC/USD"}, sdk.NewInt64Coin("uother", 50))
	require.ErrorIs(t, err, types.ErrInsufficientFee)
	require.False(t, k.HasPriceRecord(ctx, "BTC/USD"))
}

func TestSubmitPriceUpdateVerifierFailure(t *testing.T) {
	k, _, qv, ctx := testkeeper.PricefeedKeeper(t)

	qv.Err = errors.New("quorum not reached")

	_, err := k.SubmitPriceUpdate(ctx, updateSender, []byte("payload"), []string{"BTC/USD"}, sdk.NewInt64Coin("ufeed", 10))
	require.ErrorIs(t, err, types.ErrInvalidPayload)
	require.Contains(t, err.Error(), "quorum not reached")
	require.False(t, k.HasPriceRecord(ctx, "BTC/USD"))
}

func TestSubmitPriceUpdateBatchIsAtomic(t *testing.T) {
	k, bank, qv, ctx := testkeeper.PricefeedKeeper(t)
	now := testkeeper.TestBlockTime.Unix()

	require.NoError(t, k.SetPriceRecord(ctx, types.NewPriceRecord("BTC/USD", scaled(100), now-10, 1)))
	require.NoError(t, k.SetPriceRecord(ctx, types.NewPriceRecord("ETH/USD", scaled(100), now-10, 1)))

	fund(bank, 100)
	qv.Fee = sdk.NewInt64Coin("ufeed", 10)
	qv.Values = []types.VerifiedFeedValue{
		// 500 bps, within the 1000 bps default.
		{FeedId: "BTC/USD", Value: scaled(105), Timestamp: now, Slot: 2},
		// 10000 bps, far over.
		{FeedId: "ETH/USD", Value: scaled(200), Timestamp: now, Slot: 2},
	}

	_, err := k.SubmitPriceUpdate(ctx, updateSender, []byte("payload"), []string{"BTC/USD", "ETH/USD"}, sdk.NewInt64Coin("ufeed", 10))
	require.ErrorIs(t, err, types.ErrPriceDeviationTooHigh)

	// The passing feed is rolled back along with the failing one.
	btc, err := k.GetPriceRecord(ctx, "BTC/USD")
	require.NoError(t, err)
	require.Equal(t, scaled(100), btc.Value)
	eth, err := k.GetPriceRecord(ctx, "ETH/USD")
	require.NoError(t, err)
	require.Equal(t, scaled(100), eth.Value)

	require.Equal(t, sdk.NewCoins(sdk.NewInt64Coin("ufeed", 100)), bank.BalanceOf(updateSender.String()))
	require.Empty(t, findEvents(ctx, types.EventTypePriceUpdated))
}

func TestSubmitPriceUpdateFirstUpdateSkipsDeviationCheck(t *testing.T) {
	k, bank, qv, ctx := testkeeper.PricefeedKeeper(t)
	now := testkeeper.TestBlockTime.Unix()

	fund(bank, 100)
	qv.Fee = sdk.NewInt64Coin("ufeed", 10)
	qv.Values = []types.VerifiedFeedValue{
		{FeedId: "BTC/USD", Value: scaled(1_000_000), Timestamp: now, Slot: 1},
	}

	_, err := k.SubmitPriceUpdate(ctx, updateSender, []byte("payload"), []string{"BTC/USD"}, sdk.NewInt64Coin("ufeed", 10))
	require.NoError(t, err)

	// No old_price attribute when there was no prior record.
	updated := findEvents(ctx, types.EventTypePriceUpdated)
	require.Len(t, updated, 1)
	for _, attr := range updated[0].Attributes {
		require.NotEqual(t, types.AttributeKeyOldPrice, attr.Key)
	}
}

func TestSubmitPriceUpdateDeviationBoundary(t *testing.T) {
	// 100 -> 109 is 900 bps: inside a 1000 bps budget, outside a 500 bps one.
	tests := []struct {
		name            string
		maxDeviationBps uint64
		wantErr         bool
	}{
		{"900 bps within 1000", 1000, false},
		{"900 bps exceeds 500", 500, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, bank, qv, ctx := testkeeper.PricefeedKeeper(t)
			now := testkeeper.TestBlockTime.Unix()

			require.NoError(t, k.SetParams(ctx, types.NewParams(300, tt.maxDeviationBps)))
			require.NoError(t, k.SetPriceRecord(ctx, types.NewPriceRecord("BTC/USD", scaled(100), now-10, 1)))

			fund(bank, 100)
			qv.Fee = sdk.NewInt64Coin("ufeed", 10)
			qv.Values = []types.VerifiedFeedValue{
				{FeedId: "BTC/USD", Value: scaled(109), Timestamp: now, Slot: 2},
			}

			_, err := k.SubmitPriceUpdate(ctx, updateSender, []byte("payload"), []string{"BTC/USD"}, sdk.NewInt64Coin("ufeed", 10))
			if tt.wantErr {
				require.ErrorIs(t, err, types.ErrPriceDeviationTooHigh)
				record, getErr := k.GetPriceRecord(ctx, "BTC/USD")
				require.NoError(t, getErr)
				require.Equal(t, scaled(100), record.Value)
			} else {
				require.NoError(t, err)
				record, getErr := k.GetPriceRecord(ctx, "BTC/USD")
				require.NoError(t, getErr)
				require.Equal(t, scaled(109), record.Value)
			}
		})
	}
}

func TestSubmitPriceUpdateRejectsOlderTimestamp(t *testing.T) {
	k, bank, qv, ctx := testkeeper.PricefeedKeeper(t)
	now := testkeeper.TestBlockTime.Unix()

	require.NoError(t, k.SetPriceRecord(ctx, types.NewPriceRecord("BTC/USD", scaled(100), now, 5)))

	fund(bank, 100)
	qv.Fee = sdk.NewInt64Coin("ufeed", 10)
	qv.Values = []types.VerifiedFeedValue{
		{FeedId: "BTC/USD", Value: scaled(101), Timestamp: now - 30, Slot: 4},
	}

	_, err := k.SubmitPriceUpdate(ctx, updateSender, []byte("payload"), []string{"BTC/USD"}, sdk.NewInt64Coin("ufeed", 10))
	require.ErrorIs(t, err, types.ErrStaleUpdate)

	record, err := k.GetPriceRecord(ctx, "BTC/USD")
	require.NoError(t, err)
	require.Equal(t, scaled(100), record.Value)

	// Equal timestamps are allowed, only strictly older ones are rejected.
	qv.Values[0].Timestamp = now
	_, err = k.SubmitPriceUpdate(ctx, updateSender, []byte("payload"), []string{"BTC/USD"}, sdk.NewInt64Coin("ufeed", 10))
	require.NoError(t, err)
}

func TestSubmitPriceUpdateFeedMissingFromPayload(t *testing.T) {
	k, bank, qv, ctx := testkeeper.PricefeedKeeper(t)
	now := testkeeper.TestBlockTime.Unix()

	fund(bank, 100)
	qv.Fee = sdk.NewInt64Coin("ufeed", 10)
	qv.Values = []types.VerifiedFeedValue{
		{FeedId: "BTC/USD", Value: scaled(45000), Timestamp: now, Slot: 1},
	}

	_, err := k.SubmitPriceUpdate(ctx, updateSender, []byte("payload"), []string{"BTC/USD", "XRP/USD"}, sdk.NewInt64Coin("ufeed", 10))
	require.ErrorIs(t, err, types.ErrFeedNotInUpdate)
	require.False(t, k.HasPriceRecord(ctx, "BTC/USD"))
}

func TestSubmitPriceUpdateDuplicateFeedInPayload(t *testing.T) {
	k, bank, qv, ctx := testkeeper.PricefeedKeeper(t)
	now := testkeeper.TestBlockTime.Unix()

	fund(bank, 100)
	qv.Fee = sdk.NewInt64Coin("ufeed", 10)
	qv.Values = []types.VerifiedFeedValue{
		{FeedId: "BTC/USD", Value: scaled(45000), Timestamp: now, Slot: 1},
		{FeedId: "BTC/USD", Value: scaled(46000), Timestamp: now, Slot: 2},
	}

	_, err := k.SubmitPriceUpdate(ctx, updateSender, []byte("payload"), []string{"BTC/USD"}, sdk.NewInt64Coin("ufeed", 10))
	require.ErrorIs(t, err, types.ErrInvalidPayload)
	require.Contains(t, err.Error(), "duplicate feed")
}

func TestSubmitPriceUpdateRefundFailureFailsCall(t *testing.T) {
	k, bank, qv, ctx := testkeeper.PricefeedKeeper(t)
	now := testkeeper.TestBlockTime.Unix()

	fund(bank, 100)
	bank.FailRefunds = true
	qv.Fee = sdk.NewInt64Coin("ufeed", 10)
	qv.Values = []types.VerifiedFeedValue{
		{FeedId: "BTC/USD", Value: scaled(45000), Timestamp: now, Slot: 1},
	}

	_, err := k.SubmitPriceUpdate(ctx, updateSender, []byte("payload"), []string{"BTC/USD"}, sdk.NewInt64Coin("ufeed", 25))
	require.Error(t, err)
	require.Contains(t, err.Error(), "refund")

	// Staged records never hit the store when the fee step fails.
	require.False(t, k.HasPriceRecord(ctx, "BTC/USD"))
	require.Empty(t, findEvents(ctx, types.EventTypePriceUpdated))

	// An exact payment needs no refund and still goes through.
	bank.FailRefunds = true
	_, err = k.SubmitPriceUpdate(ctx, updateSender, []byte("payload"), []string{"BTC/USD"}, sdk.NewInt64Coin("ufeed", 10))
	require.NoError(t, err)
	require.True(t, k.HasPriceRecord(ctx, "BTC/USD"))
}

func TestSubmitPriceUpdatePayloadMayCarryExtraFeeds(t *testing.T) {
	k, bank, qv, ctx := testkeeper.PricefeedKeeper(t)
	now := testkeeper.TestBlockTime.Unix()

	fund(bank, 100)
	qv.Fee = sdk.NewInt64Coin("ufeed", 20)
	qv.Values = []types.VerifiedFeedValue{
		{FeedId: "BTC/USD", Value: scaled(45000), Timestamp: now, Slot: 1},
		{FeedId: "ETH/USD", Value: scaled(2500), Timestamp: now, Slot: 1},
	}

	// Only the requested feed is applied.
	_, err := k.SubmitPriceUpdate(ctx, updateSender, []byte("payload"), []string{"ETH/USD"}, sdk.NewInt64Coin("ufeed", 20))
	require.NoError(t, err)
	require.True(t, k.HasPriceRecord(ctx, "ETH/USD"))
	require.False(t, k.HasPriceRecord(ctx, "BTC/USD"))
}
