// Package summary rolls raw trade records up into per-broker volume rows:
// total shares, board lots, net lots and weighted average prices.
package summary

import (
	"math"
	"sort"

	"brokerpnl/trade"
)

// LotShares is the board-lot size: summaries report volume in units of 1000
// shares, rounded half to even.
const LotShares = 1000

// Row is an immutable volume rollup for one grouping key (a raw branch label
// or a canonical parent-broker key). Average prices are NaN when the side has
// no shares.
type Row struct {
	Key        string
	BuyShares  int64
	SellShares int64
	BuyLots    int64
	SellLots   int64
	NetLots    int64
	AvgBuy     float64
	AvgSell    float64
}

// KeyFunc extracts the grouping key from a record. trade.Record.Broker holds
// either the raw label or the canonical key depending on what the caller has
// already done to it.
type KeyFunc func(trade.Record) string

// ByBroker groups on the record's broker field as-is.
func ByBroker(r trade.Record) string { return r.Broker }

// Lots converts a share count to board lots, rounding half to even.
func Lots(shares int64) int64 {
	return int64(math.RoundToEven(float64(shares) / LotShares))
}

type accum struct {
	key                  string
	buyShares, sellShares float64
	buyAmt, sellAmt       float64
}

// Aggregate produces one Row per distinct key, ordered by net lots
// descending, then buy lots descending, then sell lots ascending, stably.
// Missing numeric fields contribute zero; a record with a missing price
// still adds its quantities to the share totals, so the averages divide the
// priced notional by the full share count, matching the source system.
func Aggregate(recs []trade.Record, key KeyFunc) []Row {
	groups := make(map[string]*accum)
	order := make([]string, 0)
	for _, r := range recs {
		k := key(r)
		g, ok := groups[k]
		if !ok {
			g = &accum{key: k}
			groups[k] = g
			order = append(order, k)
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

	rows := make([]Row, 0, len(order))
	for _, k := range order {
		g := groups[k]
		row := Row{
			Key:        k,
			BuyShares:  int64(g.buyShares),
			SellShares: int64(g.sellShares),
			AvgBuy:     math.NaN(),
			AvgSell:    math.NaN(),
		}
		row.BuyLots = Lots(row.BuyShares)
		row.SellLots = Lots(row.SellShares)
		row.NetLots = row.BuyLots - row.SellLots
		if g.buyShares > 0 {
			row.AvgBuy = g.buyAmt / g.buyShares
		}
		if g.sellShares > 0 {
			row.AvgSell = g.sellAmt / g.sellShares
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.NetLots != b.NetLots {
			return a.NetLots > b.NetLots
		}
		if a.BuyLots != b.BuyLots {
			return a.BuyLots > b.BuyLots
		}
		return a.SellLots < b.SellLots
	})
	return rows
}
