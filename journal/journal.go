// Package journal persists completed analysis runs to SQLite so sessions
// can be compared after the fact: one row per run plus the full FIFO ledger
// table it produced. It is a convenience artifact store, not a system of
// record; the pipeline's CSV outputs remain authoritative.
package journal

import (
	"time"

	"brokerpnl/pnl"
)

// Run is the metadata for one completed analysis.
type Run struct {
	ID          string
	Source      string
	Encoding    string
	FeeRateBase float64
	FeeDiscount float64
	DayTradeTax float64
	Records     int
	Brokers     int
	CreatedAt   time.Time
}

// Rates reassembles the fee parameters the run was computed with.
func (r Run) Rates() pnl.Rates {
	return pnl.Rates{
		FeeRateBase: r.FeeRateBase,
		FeeDiscount: r.FeeDiscount,
		DayTradeTax: r.DayTradeTax,
	}
}
