package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "brokerpnl",
	Short: "Broker-branch trading analysis: volume summaries and day-trade P&L",
	Long: `brokerpnl turns a raw per-order broker transaction table for one listed
instrument into realized profit-and-loss per brokerage, two ways.

It provides tools for:
  - Flattening the exchange's raw CSV layouts (dual-column, Big5 or UTF-8)
  - Canonicalizing branch offices under their parent broker
  - Volume summaries in board lots with weighted average prices
  - Average-cost and FIFO lot-matched realized P&L with carried positions
  - Top-10 leaderboards by profit, loss, net buy and net sell
  - Journaling runs to SQLite for later comparison`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
