package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"brokerpnl/pnl"
)

var fifoCmd = &cobra.Command{
	Use:   "fifo <input.csv>",
	Short: "Print per-broker FIFO matched P&L with carried positions",
	Long: `Fifo replays each parent broker's buy and sell flow in sequence order,
matching sells against the oldest open longs and buys against the oldest
open shorts, and prints one ledger row per broker sorted by realized net.`,
	Args: cobra.ExactArgs(1),
	RunE: runFifo,
}

var fifoWorkers int

func init() {
	rootCmd.AddCommand(fifoCmd)
	fifoCmd.Flags().IntVarP(&fifoWorkers, "workers", "w", 0, "matching pool size (0 = one per CPU)")
}

func runFifo(cmd *cobra.Command, args []string) error {
	tables, _, err := analyzeFile(args[0], fifoWorkers)
	if err != nil {
		return err
	}
	printLedgerTable(tables.Ledgers)

	var net float64
	for _, l := range tables.Ledgers {
		net += l.RealizedNet()
	}
	fmt.Printf("\n%d brokers, total realized net %.0f\n", len(tables.Ledgers), pnl.Round(net))
	return nil
}
