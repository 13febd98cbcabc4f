package pnl

// Lot is an open, unmatched slice of inventory: a quantity of shares at the
// price it was put on. Qty stays strictly positive while the lot is queued.
type Lot struct {
	Qty   int64
	Price float64
}

// lotQueue is an oldest-first FIFO of open lots, backed by a slice with a
// head cursor so consuming from the front never reallocates.
type lotQueue struct {
	lots []Lot
	head int
}

func (q *lotQueue) empty() bool {
	return q.head >= len(q.lots)
}

func (q *lotQueue) push(l Lot) {
	q.lots = append(q.lots, l)
}

// front returns the oldest open lot. Callers may decrement Qty in place for
// a partial fill; price never changes.
func (q *lotQueue) front() *Lot {
	return &q.lots[q.head]
}

// pop discards the oldest lot once fully consumed.
func (q *lotQueue) pop() {
	q.lots[q.head] = Lot{}
	q.head++
}

// totals returns the open quantity and notional across the queue.
func (q *lotQueue) totals() (qty int64, amount float64) {
	for _, l := range q.lots[q.head:] {
		qty += l.Qty
		amount += float64(l.Qty) * l.Price
	}
	return qty, amount
}
