package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/krazyTry/cpamm-quote/damm_v2/shared"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "cpamm-quote",
		Short:        "Offline DAMM-V2 quote engine",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().Uint64("current-epoch", 0, "epoch used for Token-2022 transfer fees")

	swapCmd := &cobra.Command{
		Use:   "swap",
		Short: "Quote an exact-in swap",
		RunE:  runSwap,
	}
	swapCmd.Flags().String("pool", "", "pool snapshot JSON")
	swapCmd.Flags().String("input-mint", "", "input token mint (base58)")
	swapCmd.Flags().String("amount", "", "input amount")
	swapCmd.Flags().String("input-token", "", "input token snapshot JSON")
	swapCmd.Flags().String("output-token", "", "output token snapshot JSON")
	swapCmd.Flags().Uint16("slippage-bps", 100, "slippage tolerance in basis points")
	swapCmd.Flags().Bool("referral", false, "the swap carries a referral token account")
	swapCmd.Flags().Uint64("current-time", 0, "unix timestamp for timestamp-activated pools")
	swapCmd.Flags().Uint64("current-slot", 0, "slot for slot-activated pools")
	root.AddCommand(swapCmd)

	depositCmd := &cobra.Command{
		Use:   "deposit",
		Short: "Quote a deposit from one token amount",
		RunE:  runDeposit,
	}
	depositCmd.Flags().String("pool", "", "pool snapshot JSON")
	depositCmd.Flags().String("amount", "", "deposit amount")
	depositCmd.Flags().Bool("token-a", false, "the amount is token A")
	depositCmd.Flags().String("input-token", "", "input token snapshot JSON")
	depositCmd.Flags().String("output-token", "", "paired token snapshot JSON")
	root.AddCommand(depositCmd)

	withdrawCmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Quote the tokens a liquidity delta redeems for",
		RunE:  runWithdraw,
	}
	withdrawCmd.Flags().String("pool", "", "pool snapshot JSON")
	withdrawCmd.Flags().String("liquidity", "", "liquidity delta")
	withdrawCmd.Flags().String("token-a-info", "", "token A snapshot JSON")
	withdrawCmd.Flags().String("token-b-info", "", "token B snapshot JSON")
	root.AddCommand(withdrawCmd)

	createCmd := &cobra.Command{
		Use:   "create-pool",
		Short: "Compute the initial sqrt price and liquidity of a new pool",
		RunE:  runCreatePool,
	}
	createCmd.Flags().String("amount-a", "", "token A amount")
	createCmd.Flags().String("amount-b", "", "token B amount, omit for single-sided creation")
	createCmd.Flags().String("min-sqrt-price", shared.MinSqrtPrice.Dec(), "lower sqrt price bound (Q64.64)")
	createCmd.Flags().String("max-sqrt-price", shared.MaxSqrtPrice.Dec(), "upper sqrt price bound (Q64.64)")
	createCmd.Flags().String("token-a-info", "", "token A snapshot JSON")
	createCmd.Flags().String("token-b-info", "", "token B snapshot JSON")
	root.AddCommand(createCmd)

	vestingCmd := &cobra.Command{
		Use:   "vesting",
		Short: "Report vesting progress and whether a position can unlock",
		RunE:  runVesting,
	}
	vestingCmd.Flags().String("position", "", "position snapshot JSON")
	vestingCmd.Flags().StringSlice("vesting", nil, "vesting snapshot JSON files")
	vestingCmd.Flags().StringSlice("vesting-account", nil, "raw vesting account data (base64)")
	vestingCmd.Flags().Uint64("current-point", 0, "current slot or timestamp")
	root.AddCommand(vestingCmd)

	rewardCmd := &cobra.Command{
		Use:   "unclaimed",
		Short: "Report fees and rewards a position can claim",
		RunE:  runUnclaimed,
	}
	rewardCmd.Flags().String("pool", "", "pool snapshot JSON")
	rewardCmd.Flags().String("position", "", "position snapshot JSON")
	root.AddCommand(rewardCmd)

	feeCmd := &cobra.Command{
		Use:   "fee-params",
		Short: "Derive fee scheduler parameters",
		RunE:  runFeeParams,
	}
	feeCmd.Flags().Uint64("max-bps", 0, "starting base fee in basis points")
	feeCmd.Flags().Uint64("min-bps", 0, "final base fee in basis points")
	feeCmd.Flags().String("mode", "linear", "scheduler mode (linear, exponential)")
	feeCmd.Flags().Uint16("periods", 0, "number of periods")
	feeCmd.Flags().Uint64("duration", 0, "total duration in points")
	feeCmd.Flags().Bool("dynamic", false, "also derive dynamic fee parameters")
	feeCmd.Flags().Uint64("max-price-change-bps", shared.MaxPriceChangeBpsDefault, "max price change for the dynamic fee")
	root.AddCommand(feeCmd)

	return root
}
