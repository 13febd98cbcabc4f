package cmd

import (
	"fmt"
	"math"
	"runtime"

	"brokerpnl/broker"
	"brokerpnl/pipeline"
	"brokerpnl/pnl"
	"brokerpnl/reader"
	"brokerpnl/summary"
)

// analyzeFile runs the in-memory analysis with default rates. The stdout
// commands share it so they stay consistent with what `run` writes to disk.
func analyzeFile(path string, workers int) (*pipeline.Tables, *reader.Table, error) {
	tbl, err := reader.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	tables := pipeline.Analyze(tbl.Records, broker.New(nil), pnl.DefaultRates(), workers)
	return tables, tbl, nil
}

func printSummaryRows(rows []summary.Row) {
	fmt.Printf("%-14s %10s %10s %8s %8s %8s %10s %10s\n",
		"broker", "buy_sh", "sell_sh", "buy_lot", "sell_lot", "net_lot", "avg_buy", "avg_sell")
	for _, r := range rows {
		fmt.Printf("%-14s %10d %10d %8d %8d %8d %10s %10s\n",
			r.Key, r.BuyShares, r.SellShares,
			r.BuyLots, r.SellLots, r.NetLots,
			fmtPrice(r.AvgBuy), fmtPrice(r.AvgSell))
	}
}

func printLedgerTable(ledgers []pnl.Ledger) {
	fmt.Printf("%-14s %8s %12s %10s %10s %10s %6s\n",
		"broker", "matched", "net", "gross", "fees", "tax", "carry")
	for _, l := range ledgers {
		fmt.Printf("%-14s %8d %12.0f %10.0f %10.0f %10.0f %6s\n",
			l.Broker, l.MatchedLots(),
			pnl.Round(l.RealizedNet()), pnl.Round(l.RealizedGross),
			pnl.Round(l.Fee), pnl.Round(l.Tax),
			l.NetSide())
	}
}

func fmtPrice(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}
