// Package pnl computes realized profit and loss per parent broker, two ways:
// a blended average-cost method and chronological FIFO lot matching with
// carried positions, plus the top-10 leaderboards over the FIFO ledgers.
package pnl

import "math"

// FeeRateBase is the standard brokerage commission rate before discount.
const FeeRateBase = 0.001425

// Rates carries the fee and tax parameters for a run. The calculators take
// the values as given; range validation belongs to the caller.
type Rates struct {
	FeeRateBase float64
	FeeDiscount float64
	DayTradeTax float64
}

// DefaultRates returns the standard commission base with the usual retail
// discount and the half-rate day-trade transaction tax.
func DefaultRates() Rates {
	return Rates{
		FeeRateBase: FeeRateBase,
		FeeDiscount: 0.28,
		DayTradeTax: 0.0015,
	}
}

// FeeRate is the effective per-leg commission rate.
func (r Rates) FeeRate() float64 {
	return r.FeeRateBase * r.FeeDiscount
}

// Round rounds a monetary amount to the nearest whole currency unit, half to
// even. NaN passes through. Internal accumulation is full precision; this is
// applied at presentation time only.
func Round(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	return math.RoundToEven(v)
}

// Round2 rounds a price to two decimals, half to even, for presentation.
func Round2(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	return math.RoundToEven(v*100) / 100
}
