package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"brokerpnl/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect journaled analysis runs",
	Long: `Journal queries the SQLite run journal written by "run --journal-db".
Each journaled run keeps its source, fee parameters and the full FIFO
ledger table so sessions can be compared after the fact.`,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journaled runs, newest first",
	RunE:  runJournalList,
}

var journalShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run's metadata and full ledger table",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalShow,
}

var journalTopCmd = &cobra.Command{
	Use:   "top <run-id>",
	Short: "Show a run's top ledgers by realized net",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalTop,
}

var (
	journalDBPath string
	journalTopN   int
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalShowCmd)
	journalCmd.AddCommand(journalTopCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./brokerpnl.sqlite", "path to journal database")
	journalTopCmd.Flags().IntVarP(&journalTopN, "limit", "n", 10, "number of ledgers to show")
}

func runJournalList(cmd *cobra.Command, args []string) error {
	db, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.ListRuns()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No journaled runs.")
		return nil
	}

	fmt.Printf("%-26s %-20s %-9s %8s %8s %s\n", "run_id", "created", "encoding", "records", "brokers", "source")
	for _, r := range runs {
		fmt.Printf("%-26s %-20s %-9s %8d %8d %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Encoding,
			r.Records, r.Brokers, r.Source)
	}
	return nil
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	db, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	run, err := db.GetRun(args[0])
	if err != nil {
		return err
	}
	ledgers, err := db.ListLedgersByRun(args[0])
	if err != nil {
		return err
	}

	rates := run.Rates()
	fmt.Printf("Run:      %s\n", run.ID)
	fmt.Printf("Created:  %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Source:   %s (%s)\n", run.Source, run.Encoding)
	fmt.Printf("Records:  %d across %d brokers\n", run.Records, run.Brokers)
	fmt.Printf("Fees:     %.6f x %.2f, day-trade tax %.4f\n\n",
		rates.FeeRateBase, rates.FeeDiscount, rates.DayTradeTax)
	printLedgerTable(ledgers)
	return nil
}

func runJournalTop(cmd *cobra.Command, args []string) error {
	db, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	ledgers, err := db.TopByRealizedNet(args[0], journalTopN)
	if err != nil {
		return err
	}
	printLedgerTable(ledgers)
	return nil
}
