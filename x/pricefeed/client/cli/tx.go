package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/feedgate-labs/feedgate/x/pricefeed/types"
)

// GetTxCmd returns the transaction commands for the pricefeed module
func GetTxCmd() *cobra.Command {
	pricefeedTxCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Pricefeed transaction subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	pricefeedTxCmd.AddCommand(
		GetCmdSubmitUpdate(),
		GetCmdUpdateParams(),
		GetCmdTransferOwnership(),
	)

	return pricefeedTxCmd
}

// GetCmdSubmitUpdate returns the command to submit an oracle price update
func GetCmdSubmitUpdate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit-update [payload-file] [feed-ids]",
		Short: "Submit a signed oracle update payload",
		Long: `Submit a signed oracle update payload and apply it to the given
comma-separated feeds. The attached payment must cover the verifier's
required fee, any excess is refunded.

Example:
  $ feedgated tx pricefeed submit-update ./update.json BTC/USD,ETH/USD --payment 50ufeed --from mykey`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			payload, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read payload file: %w", err)
			}

			feedIDs := strings.Split(args[1], ",")

			paymentStr, err := cmd.Flags().GetString(FlagPayment)
			if err != nil {
				return err
			}
			payment, err := sdk.ParseCoinNormalized(paymentStr)
			if err != nil {
				return fmt.Errorf("invalid payment: %w", err)
			}

			msg := types.NewMsgSubmitPriceUpdate(clientCtx.GetFromAddress().String(), payload, feedIDs, payment)
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String(FlagPayment, "", "fee payment attached to the update (e.g. 50ufeed)")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// GetCmdUpdateParams returns the command to update the module configuration
func GetCmdUpdateParams() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-params [max-price-age-seconds] [max-deviation-bps]",
		Short: "Update the pricefeed configuration (owner only)",
		Long: `Update the maximum price age and the maximum deviation budget. Both
values must be nonzero. The signer must be the configuration owner.

Example:
  $ feedgated tx pricefeed update-params 300 1000 --from owner`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			maxPriceAge, err := cast.ToUint64E(args[0])
			if err != nil {
				return fmt.Errorf("invalid max price age: %w", err)
			}

			maxDeviationBps, err := cast.ToUint64E(args[1])
			if err != nil {
				return fmt.Errorf("invalid max deviation: %w", err)
			}

			msg := types.NewMsgUpdateParams(
				clientCtx.GetFromAddress().String(),
				types.NewParams(maxPriceAge, maxDeviationBps),
			)
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// GetCmdTransferOwnership returns the command to transfer configuration
// ownership
func GetCmdTransferOwnership() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer-ownership [new-owner]",
		Short: "Transfer pricefeed configuration ownership (owner only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := types.NewMsgTransferOwnership(clientCtx.GetFromAddress().String(), args[0])
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
