package report

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"brokerpnl/pnl"
	"brokerpnl/summary"
	"brokerpnl/trade"
)

func readArtifact(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\ufeff"), "missing UTF-8 BOM")

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), "\ufeff")))
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteSummaryArtifact(t *testing.T) {
	t.Parallel()

	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	rows := []summary.Row{
		{Key: "日盛", BuyShares: 3000, SellShares: 500, BuyLots: 3, SellLots: 1, NetLots: 2, AvgBuy: 10.675, AvgSell: math.NaN()},
	}
	require.NoError(t, w.WriteSummary(BranchSummaryCSV, rows))

	got := readArtifact(t, filepath.Join(w.Dir(), BranchSummaryCSV))
	require.Len(t, got, 2)
	assert.Equal(t, "broker", got[0][0])
	assert.Equal(t, "日盛", got[1][0])
	// Price rounds half to even at two decimals: 10.675 -> 10.68.
	assert.Equal(t, "10.68", got[1][6])
	// Undefined average is an empty cell, not zero.
	assert.Equal(t, "", got[1][7])
}

func TestWriteFlattenedMissingFields(t *testing.T) {
	t.Parallel()

	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	recs := []trade.Record{
		{Seq: 1, Broker: "元大", Price: math.NaN(), BuyQty: 1000, SellQty: math.NaN()},
	}
	require.NoError(t, w.WriteFlattened(recs))

	got := readArtifact(t, filepath.Join(w.Dir(), FlattenedCSV))
	require.Len(t, got, 2)
	assert.Equal(t, []string{"1", "元大", "", "1000", ""}, got[1])
}

func TestMoneyRoundsHalfToEven(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2", money(2.5))
	assert.Equal(t, "4", money(3.5))
	assert.Equal(t, "-2", money(-2.5))
	assert.Equal(t, "", money(math.NaN()))
}

func TestWriteLedgersAndRankings(t *testing.T) {
	t.Parallel()

	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	ledgers := []pnl.Ledger{
		{
			Broker: "日盛", MatchedShares: 1000, RealizedGross: 1600, Fee: 18.1, Tax: 17.4,
			BuyShares: 1000, SellShares: 1200, AvgBuy: 10, AvgSell: 11.5,
			RemainingShortQty: 200, RemainingShortAvg: 11,
			RemainingLongAvg: math.NaN(),
		},
	}
	require.NoError(t, w.WriteLedgers(ledgers))
	require.NoError(t, w.WriteRankings(ledgers, nil, nil, ledgers))

	got := readArtifact(t, filepath.Join(w.Dir(), LedgerCSV))
	require.Len(t, got, 2)
	row := got[1]
	assert.Equal(t, "日盛", row[0])
	assert.Equal(t, "1000", row[1]) // matched shares
	assert.Equal(t, "1", row[2])    // matched lots
	assert.Equal(t, "-200", row[17])
	assert.Equal(t, "short", row[18])
	assert.Equal(t, "11.00", row[19])

	loss := readArtifact(t, filepath.Join(w.Dir(), TopLossCSV))
	assert.Len(t, loss, 1) // header only

	sell := readArtifact(t, filepath.Join(w.Dir(), TopNetSellCSV))
	require.Len(t, sell, 2)
	assert.Equal(t, "-200", sell[1][3]) // net flow shares
}

func TestWriteWorkbook(t *testing.T) {
	t.Parallel()

	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	branch := []summary.Row{{Key: "9800日盛台北", BuyShares: 1000, BuyLots: 1, NetLots: 1, AvgBuy: 100.5, AvgSell: math.NaN()}}
	parent := []summary.Row{{Key: "日盛", BuyShares: 1000, BuyLots: 1, NetLots: 1, AvgBuy: 100.5, AvgSell: math.NaN()}}
	ledgers := []pnl.Ledger{{Broker: "日盛", BuyShares: 1000, AvgBuy: 100.5, AvgSell: math.NaN(), RemainingLongQty: 1000, RemainingLongAvg: 100.5, RemainingShortAvg: math.NaN()}}

	require.NoError(t, w.WriteWorkbook(branch, parent, nil, ledgers, ledgers, nil))

	f, err := excelize.OpenFile(filepath.Join(w.Dir(), Workbook))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.ElementsMatch(t, sheetOrder, sheets)

	v, err := f.GetCellValue("parent_summary", "A2")
	require.NoError(t, err)
	assert.Equal(t, "日盛", v)

	v, err = f.GetCellValue("branch_summary", "G2")
	require.NoError(t, err)
	assert.Equal(t, "100.5", v)
}
