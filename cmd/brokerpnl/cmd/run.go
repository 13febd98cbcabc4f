package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"brokerpnl/config"
	"brokerpnl/pipeline"
	"brokerpnl/pnl"
)

var runCmd = &cobra.Command{
	Use:   "run <input.csv>",
	Short: "Run the full analysis pipeline over a raw transaction CSV",
	Long: `Run reads one session's raw broker transaction table, computes both
summary levels, average-cost and FIFO P&L with carried positions, and the
four top-10 leaderboards, then writes every table into a per-input output
directory.

Example:
  brokerpnl run data/2330.csv --outdir output --fee-discount 0.28`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

var (
	runConfigPath  string
	runOutDir      string
	runFeeDiscount float64
	runDayTradeTax float64
	runWorkers     int
	runJournalDB   string
	runNoExcel     bool
	runVerbose     bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON)")
	runCmd.Flags().StringVarP(&runOutDir, "outdir", "o", "", "output root directory (default from config)")
	runCmd.Flags().Float64Var(&runFeeDiscount, "fee-discount", -1, "commission discount multiplier (default from config)")
	runCmd.Flags().Float64Var(&runDayTradeTax, "day-trade-tax", -1, "day-trade tax rate (default from config)")
	runCmd.Flags().IntVarP(&runWorkers, "workers", "w", 0, "matching pool size (0 = one per CPU)")
	runCmd.Flags().StringVar(&runJournalDB, "journal-db", "", "journal the run into this SQLite DB")
	runCmd.Flags().BoolVar(&runNoExcel, "no-excel", false, "skip the xlsx workbook")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "verbose progress logging")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(runVerbose)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	res, err := pipeline.Run(cfg, args[0], log)
	if err != nil {
		return err
	}

	fmt.Printf("\nAnalysis complete in %s\n", res.Elapsed.Round(time.Millisecond))
	fmt.Printf("  Records: %d (%d brokers, %d branches)\n", len(res.Flattened), len(res.Ledgers), len(res.Branch))
	fmt.Printf("  Output: %s\n", res.OutputDir)
	if cfg.Journal.Enabled {
		fmt.Printf("  Run ID: %s\n", res.RunID)
	}

	if len(res.TopProfit) > 0 {
		fmt.Println("\nTop FIFO profit:")
		printLedgers(res.TopProfit)
	}
	if len(res.TopLoss) > 0 {
		fmt.Println("\nTop FIFO loss:")
		printLedgers(res.TopLoss)
	}
	return nil
}

// loadRunConfig merges the config file (or defaults) with flag overrides.
func loadRunConfig() (*config.Config, error) {
	cfg := config.Default()
	if runConfigPath != "" {
		loaded, err := config.LoadFromFile(runConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if runOutDir != "" {
		cfg.Output.Dir = runOutDir
	}
	if runFeeDiscount >= 0 {
		cfg.Fees.Discount = runFeeDiscount
	}
	if runDayTradeTax >= 0 {
		cfg.Fees.DayTradeTax = runDayTradeTax
	}
	if runWorkers > 0 {
		cfg.Workers = runWorkers
	}
	if runJournalDB != "" {
		cfg.Journal.Enabled = true
		cfg.Journal.DBPath = runJournalDB
	}
	if runNoExcel {
		cfg.Output.Excel = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func printLedgers(ledgers []pnl.Ledger) {
	for i, l := range ledgers {
		fmt.Printf("  %2d. %-12s net %12.0f (matched %d lots, carry %s)\n",
			i+1, l.Broker, pnl.Round(l.RealizedNet()), l.MatchedLots(), l.NetSide())
	}
}
