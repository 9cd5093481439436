package keeper

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/feedgate-labs/feedgate/x/pricefeed/keeper"
	"github.com/feedgate-labs/feedgate/x/pricefeed/types"
)

// TestBlockTime is the block time of the context returned by
// PricefeedKeeper. Tests shift it with ctx.WithBlockTime.
var TestBlockTime = time.Unix(1_700_000_000, 0).UTC()

// TestOwner is the configuration owner seeded into the test keeper.
var TestOwner = sdk.AccAddress([]byte("pricefeed_test_owner")).String()

// MockBankKeeper is an in-memory types.BankKeeper recording transfers
// between accounts and module accounts. FailRefunds makes every
// module-to-account send fail, for refund failure tests.
type MockBankKeeper struct {
	Balances    map[string]sdk.Coins
	FailRefunds bool
}

// NewMockBankKeeper creates an empty mock bank
func NewMockBankKeeper() *MockBankKeeper {
	return &MockBankKeeper{Balances: make(map[string]sdk.Coins)}
}

// Fund credits an account balance
func (m *MockBankKeeper) Fund(addr sdk.AccAddress, coins sdk.Coins) {
	m.Balances[addr.String()] = m.Balances[addr.String()].Add(coins...)
}

// BalanceOf returns an account's balance
func (m *MockBankKeeper) BalanceOf(holder string) sdk.Coins {
	return m.Balances[holder]
}

// SendCoinsFromAccountToModule implements types.BankKeeper
func (m *MockBankKeeper) SendCoinsFromAccountToModule(_ context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	return m.send(senderAddr.String(), recipientModule, amt)
}

// SendCoinsFromModuleToAccount implements types.BankKeeper
func (m *MockBankKeeper) SendCoinsFromModuleToAccount(_ context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	if m.FailRefunds {
		return fmt.Errorf("refunds disabled")
	}
	return m.send(senderModule, recipientAddr.String(), amt)
}

func (m *MockBankKeeper) send(from, to string, amt sdk.Coins) error {
	balance := m.Balances[from]
	if !amt.IsAllLTE(balance) {
		return fmt.Errorf("insufficient funds: %s has %s, needs %s", from, balance, amt)
	}
	m.Balances[from] = balance.Sub(amt...)
	m.Balances[to] = m.Balances[to].Add(amt...)
	return nil
}

// MockQuoteVerifier is a types.QuoteVerifier returning canned results, the
// payload bytes are ignored.
type MockQuoteVerifier struct {
	Values []types.VerifiedFeedValue
	Fee    sdk.Coin
	Err    error
}

// VerifyUpdate implements types.QuoteVerifier
func (m *MockQuoteVerifier) VerifyUpdate(_ context.Context, _ []byte) ([]types.VerifiedFeedValue, sdk.Coin, error) {
	if m.Err != nil {
		return nil, sdk.Coin{}, m.Err
	}
	return m.Values, m.Fee, nil
}

// PricefeedKeeper creates a test keeper for the pricefeed module backed by
// an in-memory store, with mock bank and verifier collaborators. The store
// is seeded with default params and TestOwner.
func PricefeedKeeper(t testing.TB) (keeper.Keeper, *MockBankKeeper, *MockQuoteVerifier, sdk.Context) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	bankKeeper := NewMockBankKeeper()
	quoteVerifier := &MockQuoteVerifier{}

	k := keeper.NewKeeper(types.ModuleCdc, storeKey, bankKeeper, quoteVerifier, keeper.NewMetrics())

	ctx := sdk.NewContext(stateStore, cmtproto.Header{
		ChainID: "feedgate-test",
		Height:  1,
		Time:    TestBlockTime,
	}, false, log.NewNopLogger())

	genesis := types.DefaultGenesis()
	genesis.Owner = TestOwner
	k.InitGenesis(ctx, *genesis)

	return k, bankKeeper, quoteVerifier, ctx
}
