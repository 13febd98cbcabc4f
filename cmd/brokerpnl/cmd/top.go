package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"brokerpnl/pnl"
)

var topCmd = &cobra.Command{
	Use:   "top <input.csv>",
	Short: "Print the top-10 leaderboards",
	Long: `Top prints the four leaderboards for one session: largest FIFO
profits, largest FIFO losses, and the heaviest net buyers and net sellers
by share flow.`,
	Args: cobra.ExactArgs(1),
	RunE: runTop,
}

var topBoard string

func init() {
	rootCmd.AddCommand(topCmd)
	topCmd.Flags().StringVarP(&topBoard, "board", "b", "all", "board to print: profit, loss, netbuy, netsell or all")
}

func runTop(cmd *cobra.Command, args []string) error {
	tables, _, err := analyzeFile(args[0], 0)
	if err != nil {
		return err
	}

	boards := []struct {
		name    string
		title   string
		ledgers []pnl.Ledger
	}{
		{"profit", "Top profit (FIFO realized net)", tables.TopProfit},
		{"loss", "Top loss (FIFO realized net)", tables.TopLoss},
		{"netbuy", "Top net buyers (shares)", tables.TopNetBuy},
		{"netsell", "Top net sellers (shares)", tables.TopNetSell},
	}

	found := false
	for _, b := range boards {
		if topBoard != "all" && topBoard != b.name {
			continue
		}
		found = true
		fmt.Printf("%s:\n", b.title)
		printLedgerTable(b.ledgers)
		fmt.Println()
	}
	if !found {
		return fmt.Errorf("unknown board %q", topBoard)
	}
	return nil
}
