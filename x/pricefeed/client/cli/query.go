package cli

import (
	"fmt"
	"time"

	abci "github.com/cometbft/cometbft/abci/types"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/spf13/cobra"

	"github.com/feedgate-labs/feedgate/x/pricefeed/types"
)

// GetQueryCmd returns the cli query commands for the pricefeed module
func GetQueryCmd() *cobra.Command {
	pricefeedQueryCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Querying commands for the pricefeed module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	pricefeedQueryCmd.AddCommand(
		GetCmdQueryParams(),
		GetCmdQueryOwner(),
		GetCmdQueryPrice(),
		GetCmdQueryAge(),
	)

	return pricefeedQueryCmd
}

// GetCmdQueryParams returns the command to query module parameters
func GetCmdQueryParams() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Query the current pricefeed module parameters",
		Long: `Query the current parameters of the pricefeed module: the maximum
price age and the maximum deviation budget.

Example:
  $ feedgated query pricefeed params`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			bz, err := queryStore(clientCtx, types.ParamsKey)
			if err != nil {
				return err
			}

			params := types.DefaultParams()
			if bz != nil {
				if err := types.ModuleCdc.Unmarshal(bz, &params); err != nil {
					return err
				}
			}

			return printJSON(clientCtx, params)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryOwner returns the command to query the configuration owner
func GetCmdQueryOwner() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "owner",
		Short: "Query the pricefeed configuration owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			bz, err := queryStore(clientCtx, types.OwnerKey)
			if err != nil {
				return err
			}
			if bz == nil {
				return clientCtx.PrintString("no owner set\n")
			}

			return clientCtx.PrintString(string(bz) + "\n")
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryPrice returns the command to query the stored price record for
// a feed
func GetCmdQueryPrice() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price [feed-id]",
		Short: "Query the stored price record for a feed",
		Long: `Query the last accepted price record for a feed.

Example:
  $ feedgated query pricefeed price BTC/USD`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			record, err := queryPriceRecord(clientCtx, args[0])
			if err != nil {
				return err
			}

			return printJSON(clientCtx, record)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryAge returns the command to display the approximate age of a
// stored price
func GetCmdQueryAge() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "age [feed-id]",
		Short: "Show the approximate age of the stored price for a feed",
		Long: `Show how old the stored price for a feed is, measured against the
local clock. On-chain freshness is decided against block time, so treat the
output as an estimate.

Example:
  $ feedgated query pricefeed age BTC/USD`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			record, err := queryPriceRecord(clientCtx, args[0])
			if err != nil {
				return err
			}

			age := time.Since(time.Unix(record.Timestamp, 0))
			if age < 0 {
				age = 0
			}

			return clientCtx.PrintString(fmt.Sprintf("%s: %s\n", args[0], age.Truncate(time.Second)))
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

func queryPriceRecord(clientCtx client.Context, feedID string) (types.PriceRecord, error) {
	bz, err := queryStore(clientCtx, types.GetPriceRecordKey(feedID))
	if err != nil {
		return types.PriceRecord{}, err
	}
	if bz == nil {
		return types.PriceRecord{}, fmt.Errorf("no price record for feed %s", feedID)
	}

	var record types.PriceRecord
	if err := types.ModuleCdc.Unmarshal(bz, &record); err != nil {
		return types.PriceRecord{}, err
	}
	return record, nil
}

// queryStore reads a raw key from the module's KV store.
func queryStore(clientCtx client.Context, key []byte) ([]byte, error) {
	res, err := clientCtx.QueryABCI(abci.RequestQuery{
		Path: fmt.Sprintf("store/%s/key", types.StoreKey),
		Data: key,
	})
	if err != nil {
		return nil, err
	}
	return res.Value, nil
}

func printJSON(clientCtx client.Context, obj interface{}) error {
	bz, err := types.ModuleCdc.MarshalJSON(obj)
	if err != nil {
		return err
	}
	return clientCtx.PrintRaw(bz)
}
