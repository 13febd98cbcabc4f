package pnl

import (
	"math"
	"sort"
	"sync"

	"brokerpnl/summary"
	"brokerpnl/trade"
)

// Ledger is the FIFO matching result for one parent broker: the realized
// accumulators, the whole-session (order-independent) totals, and the carry
// positions left open when the session's events ran out. Average-price
// fields are NaN when their side is empty.
type Ledger struct {
	Broker string

	MatchedShares int64
	RealizedGross float64
	Fee           float64
	Tax           float64

	BuyShares  int64
	SellShares int64
	AvgBuy     float64
	AvgSell    float64

	RemainingLongQty  int64
	RemainingLongAvg  float64
	RemainingShortQty int64
	RemainingShortAvg float64
}

// RealizedNet is realized gross minus fees and day-trade tax, full precision.
func (l Ledger) RealizedNet() float64 {
	return l.RealizedGross - l.Fee - l.Tax
}

// NetPosition is the signed carry in shares: positive long, negative short.
func (l Ledger) NetPosition() int64 {
	return l.RemainingLongQty - l.RemainingShortQty
}

// NetFlow is the whole-session share imbalance, independent of matching.
func (l Ledger) NetFlow() int64 {
	return l.BuyShares - l.SellShares
}

// MatchedLots is the matched volume in board lots.
func (l Ledger) MatchedLots() int64 {
	return summary.Lots(l.MatchedShares)
}

// NetSide names the carry direction: "long", "short" or "flat".
func (l Ledger) NetSide() string {
	switch {
	case l.NetPosition() > 0:
		return "long"
	case l.NetPosition() < 0:
		return "short"
	default:
		return "flat"
	}
}

// NetAvg is the volume-weighted average price of the carry side, NaN when
// flat.
func (l Ledger) NetAvg() float64 {
	switch {
	case l.NetPosition() > 0:
		return l.RemainingLongAvg
	case l.NetPosition() < 0:
		return l.RemainingShortAvg
	default:
		return math.NaN()
	}
}

// Match replays one broker's events in order and returns its ledger. Events
// must already be sorted by (seq, side) with buys first at equal sequence;
// trade.SplitEvents produces that order. The outcome is a pure function of
// the event sequence: identical input yields a bit-identical ledger.
//
// A buy covers the oldest open shorts first, then any residual opens a long
// lot; a sell closes the oldest open longs first, then any residual opens a
// short lot. Fees accrue on both legs of a match; the day-trade tax accrues
// on the sell leg's notional only (for a short cover that is the original
// short sale, for a long close the current event).
func Match(broker string, events []trade.Event, rates Rates) Ledger {
	led := Ledger{
		Broker: broker,
		AvgBuy: math.NaN(), AvgSell: math.NaN(),
		RemainingLongAvg: math.NaN(), RemainingShortAvg: math.NaN(),
	}
	feeRate := rates.FeeRate()

	var long, short lotQueue
	for _, ev := range events {
		qty := ev.Qty
		px := ev.Price
		switch ev.Side {
		case trade.Buy:
			for qty > 0 && !short.empty() {
				lot := short.front()
				m := min64(qty, lot.Qty)
				fm := float64(m)
				led.RealizedGross += fm * (lot.Price - px)
				led.Fee += fm*px*feeRate + fm*lot.Price*feeRate
				led.Tax += fm * lot.Price * rates.DayTradeTax
				led.MatchedShares += m
				qty -= m
				lot.Qty -= m
				if lot.Qty == 0 {
					short.pop()
				}
			}
			if qty > 0 {
				long.push(Lot{Qty: qty, Price: px})
			}
		case trade.Sell:
			for qty > 0 && !long.empty() {
				lot := long.front()
				m := min64(qty, lot.Qty)
				fm := float64(m)
				led.RealizedGross += fm * (px - lot.Price)
				led.Fee += fm*lot.Price*feeRate + fm*px*feeRate
				led.Tax += fm * px * rates.DayTradeTax
				led.MatchedShares += m
				qty -= m
				lot.Qty -= m
				if lot.Qty == 0 {
					long.pop()
				}
			}
			if qty > 0 {
				short.push(Lot{Qty: qty, Price: px})
			}
		}
	}

	var amt float64
	led.RemainingLongQty, amt = long.totals()
	if led.RemainingLongQty > 0 {
		led.RemainingLongAvg = amt / float64(led.RemainingLongQty)
	}
	led.RemainingShortQty, amt = short.totals()
	if led.RemainingShortQty > 0 {
		led.RemainingShortAvg = amt / float64(led.RemainingShortQty)
	}
	return led
}

// Options tunes MatchAll. Workers is the size of the matching pool; zero or
// one means sequential.
type Options struct {
	Workers int
}

// MatchAll groups records by broker, matches every broker's event stream and
// fills in the whole-session totals. Brokers are independent, so with
// Workers > 1 they are matched concurrently; each worker owns its brokers'
// queues outright and writes to a distinct result slot, so no locking is
// needed. Output is sorted by realized net descending, stably over the
// key-sorted broker order, and is identical regardless of worker count.
func MatchAll(recs []trade.Record, rates Rates, opts Options) []Ledger {
	byBroker := make(map[string][]trade.Record)
	keys := make([]string, 0)
	for _, r := range recs {
		if _, ok := byBroker[r.Broker]; !ok {
			keys = append(keys, r.Broker)
		}
		byBroker[r.Broker] = append(byBroker[r.Broker], r)
	}
	sort.Strings(keys)

	ledgers := make([]Ledger, len(keys))
	matchOne := func(i int) {
		key := keys[i]
		sub := byBroker[key]
		led := Match(key, trade.SplitEvents(sub), rates)
		fillSessionTotals(&led, sub)
		ledgers[i] = led
	}

	workers := opts.Workers
	if workers <= 1 || len(keys) < 2 {
		for i := range keys {
			matchOne(i)
		}
	} else {
		if workers > len(keys) {
			workers = len(keys)
		}
		idx := make(chan int)
		var wg sync.WaitGroup
		wg.Add(workers)
		for w := 0; w < workers; w++ {
			go func() {
				defer wg.Done()
				for i := range idx {
					matchOne(i)
				}
			}()
		}
		for i := range keys {
			idx <- i
		}
		close(idx)
		wg.Wait()
	}

	sort.SliceStable(ledgers, func(i, j int) bool {
		return ledgers[i].RealizedNet() > ledgers[j].RealizedNet()
	})
	return ledgers
}

// fillSessionTotals computes order-independent buy/sell totals and averages
// over all of the broker's records, including ones that produced no matcher
// events. A missing price contributes nothing to notional while its shares
// still count.
func fillSessionTotals(led *Ledger, recs []trade.Record) {
	var buyShares, sellShares, buyAmt, sellAmt float64
	for _, r := range recs {
		buy := trade.OrZero(r.BuyQty)
		sell := trade.OrZero(r.SellQty)
		buyShares += buy
		sellShares += sell
		if !trade.Missing(r.Price) {
			buyAmt += r.Price * buy
			sellAmt += r.Price * sell
		}
	}
	led.BuyShares = int64(buyShares)
	led.SellShares = int64(sellShares)
	if buyShares > 0 {
		led.AvgBuy = buyAmt / buyShares
	}
	if sellShares > 0 {
		led.AvgSell = sellAmt / sellShares
	}
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
