package trade

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitEventsBothSides(t *testing.T) {
	t.Parallel()

	recs := []Record{
		{Seq: 1, Broker: "日盛", Price: 10, BuyQty: 1000, SellQty: 500},
	}

	evs := SplitEvents(recs)
	assert.Len(t, evs, 2)
	assert.Equal(t, Buy, evs[0].Side)
	assert.Equal(t, int64(1000), evs[0].Qty)
	assert.Equal(t, Sell, evs[1].Side)
	assert.Equal(t, int64(500), evs[1].Qty)
}

func TestSplitEventsOrder(t *testing.T) {
	t.Parallel()

	recs := []Record{
		{Seq: 2, Broker: "凱基", Price: 11, SellQty: 100},
		{Seq: 1, Broker: "凱基", Price: 10, BuyQty: 200},
		{Seq: 2, Broker: "凱基", Price: 11.5, BuyQty: 300},
	}

	evs := SplitEvents(recs)
	assert.Len(t, evs, 3)
	// seq 1 buy, then at seq 2 the buy precedes the sell.
	assert.Equal(t, int64(1), evs[0].Seq)
	assert.Equal(t, Buy, evs[1].Side)
	assert.Equal(t, int64(2), evs[1].Seq)
	assert.Equal(t, Sell, evs[2].Side)
}

func TestSplitEventsSkipsMissingPrice(t *testing.T) {
	t.Parallel()

	recs := []Record{
		{Seq: 1, Broker: "元大", Price: math.NaN(), BuyQty: 1000},
		{Seq: 2, Broker: "元大", Price: 12, BuyQty: 0, SellQty: 0},
		{Seq: 3, Broker: "元大", Price: 12, BuyQty: math.NaN(), SellQty: 400},
	}

	evs := SplitEvents(recs)
	assert.Len(t, evs, 1)
	assert.Equal(t, Sell, evs[0].Side)
	assert.Equal(t, int64(400), evs[0].Qty)
}

func TestSplitEventsStable(t *testing.T) {
	t.Parallel()

	// Duplicate (seq, side) pairs from a dual-column source keep input order.
	recs := []Record{
		{Seq: 7, Broker: "統一", Price: 20, BuyQty: 100},
		{Seq: 7, Broker: "統一", Price: 21, BuyQty: 200},
	}

	evs := SplitEvents(recs)
	assert.Len(t, evs, 2)
	assert.Equal(t, 20.0, evs[0].Price)
	assert.Equal(t, 21.0, evs[1].Price)
}

func TestSortRecordsMissingPriceLast(t *testing.T) {
	t.Parallel()

	recs := []Record{
		{Seq: 1, Broker: "富邦", Price: math.NaN()},
		{Seq: 1, Broker: "富邦", Price: 9.5},
	}
	SortRecords(recs)
	assert.Equal(t, 9.5, recs[0].Price)
	assert.True(t, Missing(recs[1].Price))
}
