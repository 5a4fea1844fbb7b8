package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/slice-arcade/internal/wallet"
)

var flagHistoryLimit int

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Inspect and fund wallets",
	Long: `Manage the credit ledger behind entry fees and rewards.

Examples:
  slice wallet balance alice
  slice wallet fund alice 10
  slice wallet history alice
  slice wallet fund-house 100000`,
}

var walletBalanceCmd = &cobra.Command{
	Use:   "balance <player>",
	Short: "Show a player's credits",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		withBackend(func(ctx context.Context, b *backend) {
			bal, err := b.gate.Balance(ctx, args[0])
			if errors.Is(err, wallet.ErrUnauthorized) {
				fail("%s has no wallet yet", args[0])
			}
			if err != nil {
				fail("reading balance: %v", err)
			}
			fmt.Printf("%s: %s credits\n", args[0], bal)
		})
	},
}

var walletFundCmd = &cobra.Command{
	Use:   "fund <player> <amount>",
	Short: "Add credits to a player",
	Args:  cobra.ExactArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		amount := parseAmount(args[1])
		withBackend(func(ctx context.Context, b *backend) {
			bal, err := b.gate.Fund(ctx, args[0], amount)
			if err != nil {
				fail("funding: %v", err)
			}
			fmt.Printf("%s: %s credits\n", args[0], bal)
		})
	},
}

var walletHouseCmd = &cobra.Command{
	Use:   "fund-house <amount>",
	Short: "Add credits to the house account that pays rewards",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		amount := parseAmount(args[0])
		withBackend(func(ctx context.Context, b *backend) {
			house := b.rcfg.HouseAccount
			bal, err := b.gate.Fund(ctx, house, amount)
			if err != nil {
				fail("funding house: %v", err)
			}
			fmt.Printf("%s: %s credits\n", house, bal)
		})
	},
}

var walletHistoryCmd = &cobra.Command{
	Use:   "history <account>",
	Short: "Show recent ledger transfers of an account",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		withBackend(func(ctx context.Context, b *backend) {
			transfers, err := b.store.Transfers(ctx, args[0], flagHistoryLimit)
			if err != nil {
				fail("reading transfers: %v", err)
			}
			if len(transfers) == 0 {
				fmt.Println("No transfers.")
				return
			}
			fmt.Printf("  %-16s  %-7s  %-20s  %-20s  %s\n", "Date", "Kind", "From", "To", "Amount")
			fmt.Printf("  %-16s  %-7s  %-20s  %-20s  %s\n", "----", "----", "----", "--", "------")
			for _, t := range transfers {
				fmt.Printf("  %-16s  %-7s  %-20s  %-20s  %s\n",
					t.CreatedAt.Format("2006-01-02 15:04"), t.Kind,
					shorten(t.From, 20), shorten(t.To, 20), t.Amount)
			}
		})
	},
}

func init() {
	walletHistoryCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of transfers to show")

	walletCmd.AddCommand(walletBalanceCmd)
	walletCmd.AddCommand(walletFundCmd)
	walletCmd.AddCommand(walletHouseCmd)
	walletCmd.AddCommand(walletHistoryCmd)
}

// withBackend opens the backend for a one-shot command.
func withBackend(fn func(ctx context.Context, b *backend)) {
	logger, closeLog := newLogger(false)
	defer closeLog()

	b, err := openBackend(logger)
	if err != nil {
		fail("opening database: %v", err)
	}
	defer b.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	fn(ctx, b)
}

func parseAmount(s string) decimal.Decimal {
	amount, err := decimal.NewFromString(s)
	if err != nil || !amount.IsPositive() {
		fail("invalid amount %q", s)
	}
	return amount
}
