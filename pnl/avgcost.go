package pnl

import (
	"math"
	"sort"

	"brokerpnl/trade"
)

// AvgCostRow is the blended average-cost P&L for one parent broker. The
// method ignores execution order entirely: all buys and all sells collapse
// to two transactions at their weighted average prices, and the matched
// volume is min(total buy, total sell).
type AvgCostRow struct {
	Broker        string
	MatchedShares int64
	AvgBuy        float64
	AvgSell       float64
	Spread        float64
	Gross         float64
	FeeBuy        float64
	FeeSell       float64
	Tax           float64
	Net           float64
}

// AvgCost computes one row per distinct broker key, sorted by net
// descending, stably. One-sided brokers get a zero-matched row with the
// empty side's average reported as NaN, not zero.
func AvgCost(recs []trade.Record, rates Rates) []AvgCostRow {
	type accum struct {
		buyShares, sellShares float64
		buyAmt, sellAmt       float64
	}
	groups := make(map[string]*accum)
	order := make([]string, 0)
	for _, r := range recs {
		g, ok := groups[r.Broker]
		if !ok {
			g = &accum{}
			groups[r.Broker] = g
			order = append(order, r.Broker)
		}
		buy := trade.OrZero(r.BuyQty)
		sell := trade.OrZero(r.SellQty)
		g.buyShares += buy
		g.sellShares += sell
		if !trade.Missing(r.Price) {
			g.buyAmt += r.Price * buy
			g.sellAmt += r.Price * sell
		}
	}

	feeRate := rates.FeeRate()
	rows := make([]AvgCostRow, 0, len(order))
	for _, k := range order {
		g := groups[k]
		row := AvgCostRow{
			Broker: k,
			AvgBuy: math.NaN(), AvgSell: math.NaN(), Spread: math.NaN(),
		}
		if g.buyShares > 0 {
			row.AvgBuy = g.buyAmt / g.buyShares
		}
		if g.sellShares > 0 {
			row.AvgSell = g.sellAmt / g.sellShares
		}
		matched := math.Min(g.buyShares, g.sellShares)
		row.MatchedShares = int64(matched)
		if matched > 0 {
			row.Spread = row.AvgSell - row.AvgBuy
			row.Gross = matched * row.Spread
			row.FeeBuy = matched * row.AvgBuy * feeRate
			row.FeeSell = matched * row.AvgSell * feeRate
			row.Tax = matched * row.AvgSell * rates.DayTradeTax
			row.Net = row.Gross - row.FeeBuy - row.FeeSell - row.Tax
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Net > rows[j].Net
	})
	return rows
}
