package pnl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledgerWithNet(broker string, net float64) Ledger {
	// Fee and tax zero so RealizedNet == RealizedGross.
	return Ledger{Broker: broker, RealizedGross: net}
}

func TestTopProfitAndLoss(t *testing.T) {
	t.Parallel()

	ledgers := []Ledger{
		ledgerWithNet("a", 500),
		ledgerWithNet("b", -200),
		ledgerWithNet("c", 1000),
		ledgerWithNet("d", 0),
	}

	profit := TopProfit(ledgers)
	require.Len(t, profit, 2)
	assert.Equal(t, "c", profit[0].Broker)
	assert.Equal(t, "a", profit[1].Broker)

	loss := TopLoss(ledgers)
	require.Len(t, loss, 1)
	assert.Equal(t, "b", loss[0].Broker)
}

func TestTopProfitCapsAtTopN(t *testing.T) {
	t.Parallel()

	var ledgers []Ledger
	for i := 1; i <= 15; i++ {
		ledgers = append(ledgers, ledgerWithNet(string(rune('a'+i)), float64(i)))
	}

	got := TopProfit(ledgers)
	assert.Len(t, got, TopN)
	assert.InDelta(t, 15.0, got[0].RealizedNet(), 1e-12)
	assert.InDelta(t, 6.0, got[TopN-1].RealizedNet(), 1e-12)
}

func TestTopNetBuyTieBreak(t *testing.T) {
	t.Parallel()

	ledgers := []Ledger{
		{Broker: "even", BuyShares: 5000, SellShares: 5000, RealizedGross: 99},
		{Broker: "rich", BuyShares: 8000, SellShares: 2000, RealizedGross: 10},
		{Broker: "poor", BuyShares: 8000, SellShares: 2000, RealizedGross: -10},
		{Broker: "huge", BuyShares: 20000, SellShares: 1000, RealizedGross: 0},
	}

	got := TopNetBuy(ledgers)
	require.Len(t, got, 3) // flat broker excluded
	assert.Equal(t, "huge", got[0].Broker)
	assert.Equal(t, "rich", got[1].Broker) // tie on flow, higher net first
	assert.Equal(t, "poor", got[2].Broker)
}

func TestTopNetSellTieBreak(t *testing.T) {
	t.Parallel()

	ledgers := []Ledger{
		{Broker: "dump", BuyShares: 1000, SellShares: 9000, RealizedGross: 5},
		{Broker: "bleed", BuyShares: 1000, SellShares: 9000, RealizedGross: -5},
		{Broker: "buyer", BuyShares: 9000, SellShares: 1000},
	}

	got := TopNetSell(ledgers)
	require.Len(t, got, 2)
	// Tie on flow: realized net ascending puts the loss first.
	assert.Equal(t, "bleed", got[0].Broker)
	assert.Equal(t, "dump", got[1].Broker)
}

func TestRankingStableBeyondTieBreak(t *testing.T) {
	t.Parallel()

	// Identical sort keys throughout: input order must survive.
	ledgers := []Ledger{
		{Broker: "first", BuyShares: 3000, SellShares: 1000, RealizedGross: 7},
		{Broker: "second", BuyShares: 3000, SellShares: 1000, RealizedGross: 7},
		{Broker: "third", BuyShares: 3000, SellShares: 1000, RealizedGross: 7},
	}

	got := TopNetBuy(ledgers)
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Broker)
	assert.Equal(t, "second", got[1].Broker)
	assert.Equal(t, "third", got[2].Broker)
}
