// Package report serializes the pipeline's result tables to CSV files and
// an Excel workbook. CSV files get a UTF-8 BOM so spreadsheet tools detect
// the encoding; undefined averages serialize as empty cells, never zero.
// The artifact names keep the pipeline's step numbering so a run's output
// directory reads in processing order.
package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"brokerpnl/pnl"
	"brokerpnl/summary"
	"brokerpnl/trade"
)

// Artifact file names, in pipeline order.
const (
	FlattenedCSV     = "step1_flattened.csv"
	BranchSummaryCSV = "step2_branch_summary.csv"
	ParentSummaryCSV = "step3_parent_summary.csv"
	AvgCostCSV       = "step4_avgcost_pnl.csv"
	LedgerCSV        = "step5_fifo_ledger.csv"
	TopProfitCSV     = "step6_top10_profit.csv"
	TopLossCSV       = "step6_top10_loss.csv"
	TopNetBuyCSV     = "step7_top10_netbuy.csv"
	TopNetSellCSV    = "step7_top10_netsell.csv"
	Workbook         = "analysis.xlsx"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// Writer emits artifacts into one output directory.
type Writer struct {
	dir string
}

// NewWriter creates the output directory if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Writer{dir: dir}, nil
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(w.dir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(bom); err != nil {
		return err
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFlattened writes the normalized record table.
func (w *Writer) WriteFlattened(recs []trade.Record) error {
	header := []string{"seq", "broker", "price", "buy_qty", "sell_qty"}
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []string{
			strconv.FormatInt(r.Seq, 10),
			r.Broker,
			num(r.Price),
			num(r.BuyQty),
			num(r.SellQty),
		})
	}
	return w.writeCSV(FlattenedCSV, header, rows)
}

// WriteSummary writes a volume rollup (branch or parent level).
func (w *Writer) WriteSummary(name string, rows []summary.Row) error {
	header := []string{"broker", "buy_shares", "sell_shares", "buy_lots", "sell_lots", "net_lots", "avg_buy", "avg_sell"}
	return w.writeCSV(name, header, summaryRows(rows))
}

// WriteAvgCost writes the blended average-cost P&L table.
func (w *Writer) WriteAvgCost(rows []pnl.AvgCostRow) error {
	header := []string{"broker", "matched_shares", "avg_buy", "avg_sell", "spread", "gross", "fee_buy", "fee_sell", "tax", "net"}
	return w.writeCSV(AvgCostCSV, header, avgCostRows(rows))
}

// WriteLedgers writes the full FIFO ledger table.
func (w *Writer) WriteLedgers(ledgers []pnl.Ledger) error {
	return w.writeCSV(LedgerCSV, ledgerHeader, ledgerRows(ledgers))
}

// WriteRankings writes the four top-10 tables.
func (w *Writer) WriteRankings(profit, loss, netBuy, netSell []pnl.Ledger) error {
	if err := w.writeCSV(TopProfitCSV, ledgerHeader, ledgerRows(profit)); err != nil {
		return err
	}
	if err := w.writeCSV(TopLossCSV, ledgerHeader, ledgerRows(loss)); err != nil {
		return err
	}
	if err := w.writeCSV(TopNetBuyCSV, netFlowHeader, netFlowRows(netBuy)); err != nil {
		return err
	}
	return w.writeCSV(TopNetSellCSV, netFlowHeader, netFlowRows(netSell))
}

var ledgerHeader = []string{
	"broker", "matched_shares", "matched_lots",
	"realized_gross", "fee", "tax", "realized_net",
	"buy_shares", "sell_shares", "avg_buy", "avg_sell",
	"remaining_long_qty", "remaining_long_lots", "remaining_long_avg",
	"remaining_short_qty", "remaining_short_lots", "remaining_short_avg",
	"net_position", "net_side", "net_avg",
}

func ledgerRows(ledgers []pnl.Ledger) [][]string {
	rows := make([][]string, 0, len(ledgers))
	for _, l := range ledgers {
		rows = append(rows, []string{
			l.Broker,
			strconv.FormatInt(l.MatchedShares, 10),
			strconv.FormatInt(l.MatchedLots(), 10),
			money(l.RealizedGross),
			money(l.Fee),
			money(l.Tax),
			money(l.RealizedNet()),
			strconv.FormatInt(l.BuyShares, 10),
			strconv.FormatInt(l.SellShares, 10),
			price(l.AvgBuy),
			price(l.AvgSell),
			strconv.FormatInt(l.RemainingLongQty, 10),
			strconv.FormatInt(summary.Lots(l.RemainingLongQty), 10),
			price(l.RemainingLongAvg),
			strconv.FormatInt(l.RemainingShortQty, 10),
			strconv.FormatInt(summary.Lots(l.RemainingShortQty), 10),
			price(l.RemainingShortAvg),
			strconv.FormatInt(l.NetPosition(), 10),
			l.NetSide(),
			price(l.NetAvg()),
		})
	}
	return rows
}

var netFlowHeader = []string{
	"broker", "buy_shares", "sell_shares", "net_flow_shares", "net_flow_lots",
	"matched_lots", "realized_gross", "fee", "tax", "realized_net",
	"net_position", "net_side", "avg_buy", "avg_sell",
}

func netFlowRows(ledgers []pnl.Ledger) [][]string {
	rows := make([][]string, 0, len(ledgers))
	for _, l := range ledgers {
		rows = append(rows, []string{
			l.Broker,
			strconv.FormatInt(l.BuyShares, 10),
			strconv.FormatInt(l.SellShares, 10),
			strconv.FormatInt(l.NetFlow(), 10),
			strconv.FormatInt(summary.Lots(l.NetFlow()), 10),
			strconv.FormatInt(l.MatchedLots(), 10),
			money(l.RealizedGross),
			money(l.Fee),
			money(l.Tax),
			money(l.RealizedNet()),
			strconv.FormatInt(l.NetPosition(), 10),
			l.NetSide(),
			price(l.AvgBuy),
			price(l.AvgSell),
		})
	}
	return rows
}

// money renders a monetary amount rounded to whole currency units.
func money(v float64) string {
	if trade.Missing(v) {
		return ""
	}
	return strconv.FormatFloat(pnl.Round(v), 'f', 0, 64)
}

// price renders an average price rounded to two decimals, empty when
// undefined.
func price(v float64) string {
	if trade.Missing(v) {
		return ""
	}
	return strconv.FormatFloat(pnl.Round2(v), 'f', 2, 64)
}

// spread keeps one more decimal than prices.
func spread(v float64) string {
	if trade.Missing(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// num renders a raw numeric field, empty when missing.
func num(v float64) string {
	if trade.Missing(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
