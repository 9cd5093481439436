// feedsim replays a price update scenario against an in-memory pricefeed
// keeper. It runs the full path a chain would: envelopes are signed by a
// generated oracle set, authenticated by the reference verifier, and applied
// through the update validator, so deviation and fee behavior can be
// explored without a running network.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/feedgate-labs/feedgate/x/pricefeed/keeper"
	"github.com/feedgate-labs/feedgate/x/pricefeed/types"
	"github.com/feedgate-labs/feedgate/x/pricefeed/verifier"
)

type scenario struct {
	Steps []step `json:"steps"`
}

type step struct {
	// FeedIds are the feeds to extract from the update, in order.
	FeedIds []string `json:"feed_ids"`
	// Values are the feed tuples the oracle set signs for this step.
	Values []types.VerifiedFeedValue `json:"values"`
	// Payment is the fee payment attached to the call, e.g. "50ufeed".
	Payment string `json:"payment"`
	// AdvanceSeconds moves block time forward before the step runs.
	AdvanceSeconds int64 `json:"advance_seconds"`
}

// simBank is an in-memory fee channel: the sender starts with a large
// balance and fees accumulate in the module account.
type simBank struct {
	balances map[string]sdk.Coins
}

func (b *simBank) SendCoinsFromAccountToModule(_ context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	return b.send(senderAddr.String(), recipientModule, amt)
}

func (b *simBank) SendCoinsFromModuleToAccount(_ context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	return b.send(senderModule, recipientAddr.String(), amt)
}

func (b *simBank) send(from, to string, amt sdk.Coins) error {
	balance := b.balances[from]
	if !amt.IsAllLTE(balance) {
		return fmt.Errorf("insufficient funds: %s has %s, needs %s", from, balance, amt)
	}
	b.balances[from] = balance.Sub(amt...)
	b.balances[to] = b.balances[to].Add(amt...)
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedsim [scenario-file]",
		Short: "Replay a price update scenario against an in-memory pricefeed keeper",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			return run(args[0], configFile)
		},
	}

	cmd.Flags().String("config", "", "optional config file (yaml)")
	return cmd
}

func loadConfig(configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("fee_denom", "ufeed")
	v.SetDefault("fee_per_feed", int64(10))
	v.SetDefault("max_price_age", uint64(300))
	v.SetDefault("max_deviation_bps", uint64(1000))
	v.SetDefault("oracles", 3)
	v.SetDefault("min_signatures", 2)
	v.SetEnvPrefix("feedsim")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return v, nil
}

func run(scenarioFile, configFile string) error {
	logger := log.NewLogger(os.Stderr)

	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}

	bz, err := os.ReadFile(scenarioFile)
	if err != nil {
		return fmt.Errorf("failed to read scenario: %w", err)
	}
	var scn scenario
	if err := json.Unmarshal(bz, &scn); err != nil {
		return fmt.Errorf("malformed scenario: %w", err)
	}

	// Oracle set and verifier.
	numOracles := cfg.GetInt("oracles")
	privs := make([]cryptotypes.PrivKey, 0, numOracles)
	pubs := make([]cryptotypes.PubKey, 0, numOracles)
	for i := 0; i < numOracles; i++ {
		priv := secp256k1.GenPrivKey()
		privs = append(privs, priv)
		pubs = append(pubs, priv.PubKey())
	}

	feeDenom := cfg.GetString("fee_denom")
	quoteVerifier, err := verifier.New(pubs, cfg.GetInt("min_signatures"), sdk.NewInt64Coin(feeDenom, cfg.GetInt64("fee_per_feed")))
	if err != nil {
		return err
	}

	// In-memory store and keeper.
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	if err := stateStore.LoadLatestVersion(); err != nil {
		return err
	}

	sender := sdk.AccAddress([]byte("feedsim_update_payer"))
	bank := &simBank{balances: map[string]sdk.Coins{
		sender.String(): sdk.NewCoins(sdk.NewInt64Coin(feeDenom, 1_000_000_000)),
	}}

	k := keeper.NewKeeper(types.ModuleCdc, storeKey, bank, quoteVerifier, keeper.NewMetrics())

	blockTime := time.Now().UTC()
	ctx := sdk.NewContext(stateStore, cmtproto.Header{ChainID: "feedsim", Height: 1, Time: blockTime}, false, logger)

	genesis := types.DefaultGenesis()
	genesis.Params = types.NewParams(cfg.GetUint64("max_price_age"), cfg.GetUint64("max_deviation_bps"))
	k.InitGenesis(ctx, *genesis)

	for i, st := range scn.Steps {
		if st.AdvanceSeconds > 0 {
			blockTime = blockTime.Add(time.Duration(st.AdvanceSeconds) * time.Second)
		}
		ctx = ctx.WithBlockHeight(ctx.BlockHeight() + 1).WithBlockTime(blockTime)

		payment, err := sdk.ParseCoinNormalized(st.Payment)
		if err != nil {
			return fmt.Errorf("step %d: invalid payment: %w", i, err)
		}

		payload, err := verifier.Seal(st.Values, privs)
		if err != nil {
			return fmt.Errorf("step %d: failed to seal envelope: %w", i, err)
		}

		refund, err := k.SubmitPriceUpdate(ctx, sender, payload, st.FeedIds, payment)
		if err != nil {
			logger.Error("update rejected", "step", i, "error", err)
			continue
		}
		logger.Info("update accepted", "step", i, "feeds", len(st.FeedIds), "refund", refund.String())
	}

	// Final state dump.
	for _, record := range k.GetAllPriceRecords(ctx) {
		fresh := k.IsFresh(ctx, record.FeedId)
		fmt.Printf("%-12s value=%s timestamp=%d slot=%d fresh=%t\n",
			record.FeedId, record.Value, record.Timestamp, record.Slot, fresh)
	}
	fmt.Printf("fees collected: %s\n", bank.balances[types.ModuleName])

	return nil
}
