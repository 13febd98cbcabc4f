package trade

import (
	"math"
	"sort"
)

// Record is one reported line of the session's order book: a broker label,
// an execution price and the buy/sell share quantities on that line. Numeric
// fields that failed to parse upstream are NaN; they contribute zero to sums
// but the record is still kept for its other fields.
type Record struct {
	Seq     int64
	Broker  string
	Price   float64
	BuyQty  float64
	SellQty float64
}

// Missing reports whether a numeric field is absent or unparsable.
func Missing(v float64) bool {
	return math.IsNaN(v)
}

// OrZero treats a missing field as zero for summation.
func OrZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// SortRecords orders records by (Seq, Broker, Price) ascending, stably.
// Missing prices sort after present ones at the same (Seq, Broker).
func SortRecords(recs []Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.Seq != b.Seq {
			return a.Seq < b.Seq
		}
		if a.Broker != b.Broker {
			return a.Broker < b.Broker
		}
		switch {
		case Missing(a.Price):
			return false
		case Missing(b.Price):
			return true
		default:
			return a.Price < b.Price
		}
	})
}
