package trade

import "sort"

// Side distinguishes the two legs of a record. Buy sorts before Sell at
// equal sequence numbers.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "B"
	}
	return "S"
}

// Event is the atomic unit the lot matcher consumes: one side of one record.
type Event struct {
	Broker string
	Seq    int64
	Side   Side
	Qty    int64
	Price  float64
}

// SplitEvents derives up to two events per record, one per side with a
// positive quantity. An event needs a usable price; a record with a missing
// price still counts toward whole-session totals elsewhere but cannot be
// matched, so it yields no events. The result is sorted by (Seq, Side)
// ascending, buys before sells at equal sequence, stably.
func SplitEvents(recs []Record) []Event {
	evs := make([]Event, 0, len(recs))
	for _, r := range recs {
		if Missing(r.Price) {
			continue
		}
		if q := int64(OrZero(r.BuyQty)); q > 0 {
			evs = append(evs, Event{Broker: r.Broker, Seq: r.Seq, Side: Buy, Qty: q, Price: r.Price})
		}
		if q := int64(OrZero(r.SellQty)); q > 0 {
			evs = append(evs, Event{Broker: r.Broker, Seq: r.Seq, Side: Sell, Qty: q, Price: r.Price})
		}
	}
	SortEvents(evs)
	return evs
}

// SortEvents orders events by (Seq, Side) ascending, stably.
func SortEvents(evs []Event) {
	sort.SliceStable(evs, func(i, j int) bool {
		if evs[i].Seq != evs[j].Seq {
			return evs[i].Seq < evs[j].Seq
		}
		return evs[i].Side < evs[j].Side
	})
}
