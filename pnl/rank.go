package pnl

import "sort"

// TopN is the leaderboard depth.
const TopN = 10

// TopProfit returns up to TopN ledgers with positive realized net, most
// profitable first. Ties beyond the sort key keep input order.
func TopProfit(ledgers []Ledger) []Ledger {
	kept := filter(ledgers, func(l Ledger) bool { return l.RealizedNet() > 0 })
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].RealizedNet() > kept[j].RealizedNet()
	})
	return head(kept)
}

// TopLoss returns up to TopN ledgers with negative realized net, most
// negative first.
func TopLoss(ledgers []Ledger) []Ledger {
	kept := filter(ledgers, func(l Ledger) bool { return l.RealizedNet() < 0 })
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].RealizedNet() < kept[j].RealizedNet()
	})
	return head(kept)
}

// TopNetBuy ranks brokers with a positive whole-session share imbalance by
// that imbalance descending, realized net descending on ties.
func TopNetBuy(ledgers []Ledger) []Ledger {
	kept := filter(ledgers, func(l Ledger) bool { return l.NetFlow() > 0 })
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].NetFlow() != kept[j].NetFlow() {
			return kept[i].NetFlow() > kept[j].NetFlow()
		}
		return kept[i].RealizedNet() > kept[j].RealizedNet()
	})
	return head(kept)
}

// TopNetSell is the mirror of TopNetBuy: negative imbalance, largest net
// sell first, realized net ascending on ties.
func TopNetSell(ledgers []Ledger) []Ledger {
	kept := filter(ledgers, func(l Ledger) bool { return l.NetFlow() < 0 })
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].NetFlow() != kept[j].NetFlow() {
			return kept[i].NetFlow() < kept[j].NetFlow()
		}
		return kept[i].RealizedNet() < kept[j].RealizedNet()
	})
	return head(kept)
}

func filter(ledgers []Ledger, keep func(Ledger) bool) []Ledger {
	out := make([]Ledger, 0, len(ledgers))
	for _, l := range ledgers {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}

func head(ledgers []Ledger) []Ledger {
	if len(ledgers) > TopN {
		return ledgers[:TopN]
	}
	return ledgers
}
