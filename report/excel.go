package report

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"brokerpnl/pnl"
	"brokerpnl/summary"
)

// Workbook sheet names, in pipeline order.
var sheetOrder = []string{
	"branch_summary", "parent_summary", "avgcost_pnl", "fifo_ledger",
	"top_netbuy", "top_netsell",
}

// WriteWorkbook writes every result table into one xlsx workbook, one sheet
// per table.
func (w *Writer) WriteWorkbook(branch, parent []summary.Row, avg []pnl.AvgCostRow, ledgers, netBuy, netSell []pnl.Ledger) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetOrder[0]); err != nil {
		return err
	}
	for _, name := range sheetOrder[1:] {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	summaryHeader := []string{"broker", "buy_shares", "sell_shares", "buy_lots", "sell_lots", "net_lots", "avg_buy", "avg_sell"}
	avgHeader := []string{"broker", "matched_shares", "avg_buy", "avg_sell", "spread", "gross", "fee_buy", "fee_sell", "tax", "net"}
	tables := []struct {
		sheet  string
		header []string
		rows   [][]string
	}{
		{"branch_summary", summaryHeader, summaryRows(branch)},
		{"parent_summary", summaryHeader, summaryRows(parent)},
		{"avgcost_pnl", avgHeader, avgCostRows(avg)},
		{"fifo_ledger", ledgerHeader, ledgerRows(ledgers)},
		{"top_netbuy", netFlowHeader, netFlowRows(netBuy)},
		{"top_netsell", netFlowHeader, netFlowRows(netSell)},
	}
	for _, tab := range tables {
		if err := setRows(f, tab.sheet, tab.header, tab.rows); err != nil {
			return fmt.Errorf("sheet %s: %w", tab.sheet, err)
		}
	}

	return f.SaveAs(filepath.Join(w.dir, Workbook))
}

// setRows fills a sheet with a header row and data rows. Cells that look
// numeric are stored as numbers so spreadsheet formulas work on them;
// undefined values stay blank.
func setRows(f *excelize.File, sheet string, header []string, rows [][]string) error {
	cells := make([]any, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &cells); err != nil {
		return err
	}

	for i, row := range rows {
		vals := make([]any, len(row))
		for j, s := range row {
			switch {
			case s == "":
				vals[j] = nil
			default:
				if v, err := strconv.ParseFloat(s, 64); err == nil {
					vals[j] = v
				} else {
					vals[j] = s
				}
			}
		}
		ref, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, ref, &vals); err != nil {
			return err
		}
	}
	return nil
}

func summaryRows(rows []summary.Row) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Key,
			strconv.FormatInt(r.BuyShares, 10),
			strconv.FormatInt(r.SellShares, 10),
			strconv.FormatInt(r.BuyLots, 10),
			strconv.FormatInt(r.SellLots, 10),
			strconv.FormatInt(r.NetLots, 10),
			price(r.AvgBuy),
			price(r.AvgSell),
		})
	}
	return out
}

func avgCostRows(rows []pnl.AvgCostRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Broker,
			strconv.FormatInt(r.MatchedShares, 10),
			price(r.AvgBuy),
			price(r.AvgSell),
			spread(r.Spread),
			money(r.Gross),
			money(r.FeeBuy),
			money(r.FeeSell),
			money(r.Tax),
			money(r.Net),
		})
	}
	return out
}
