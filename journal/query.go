package journal

import (
	"database/sql"
	"fmt"

	"brokerpnl/pnl"
)

// GetRun returns a single run's metadata by ID.
func (j *SQLite) GetRun(runID string) (Run, error) {
	var run Run

	row := j.db.QueryRow(`
		SELECT run_id, source, encoding, fee_rate_base, fee_discount, day_trade_tax, records, brokers, created_at
		FROM runs
		WHERE run_id = ?`, runID)

	err := row.Scan(
		&run.ID,
		&run.Source,
		&run.Encoding,
		&run.FeeRateBase,
		&run.FeeDiscount,
		&run.DayTradeTax,
		&run.Records,
		&run.Brokers,
		&run.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return Run{}, fmt.Errorf("run %q not found", runID)
		}
		return Run{}, err
	}
	return run, nil
}

// ListRuns returns every run, newest first. ULIDs sort by creation time, so
// the ID ordering is the chronological one.
func (j *SQLite) ListRuns() ([]Run, error) {
	rows, err := j.db.Query(`
		SELECT run_id, source, encoding, fee_rate_base, fee_discount, day_trade_tax, records, brokers, created_at
		FROM runs
		ORDER BY run_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(
			&run.ID,
			&run.Source,
			&run.Encoding,
			&run.FeeRateBase,
			&run.FeeDiscount,
			&run.DayTradeTax,
			&run.Records,
			&run.Brokers,
			&run.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListLedgersByRun returns a run's full ledger table, realized net
// descending as the pipeline emitted it.
func (j *SQLite) ListLedgersByRun(runID string) ([]pnl.Ledger, error) {
	return j.queryLedgers(`
		SELECT broker, matched_shares, realized_gross, fee, tax,
		       buy_shares, sell_shares, avg_buy, avg_sell,
		       remaining_long_qty, remaining_long_avg, remaining_short_qty, remaining_short_avg
		FROM ledgers
		WHERE run_id = ?
		ORDER BY realized_net DESC, broker ASC`, runID)
}

// TopByRealizedNet returns the run's best n ledgers by realized net.
func (j *SQLite) TopByRealizedNet(runID string, n int) ([]pnl.Ledger, error) {
	return j.queryLedgers(`
		SELECT broker, matched_shares, realized_gross, fee, tax,
		       buy_shares, sell_shares, avg_buy, avg_sell,
		       remaining_long_qty, remaining_long_avg, remaining_short_qty, remaining_short_avg
		FROM ledgers
		WHERE run_id = ?
		ORDER BY realized_net DESC, broker ASC
		LIMIT ?`, runID, n)
}

func (j *SQLite) queryLedgers(query string, args ...any) ([]pnl.Ledger, error) {
	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []pnl.Ledger
	for rows.Next() {
		var l pnl.Ledger
		var avgBuy, avgSell, longAvg, shortAvg sql.NullFloat64
		if err := rows.Scan(
			&l.Broker,
			&l.MatchedShares,
			&l.RealizedGross,
			&l.Fee,
			&l.Tax,
			&l.BuyShares,
			&l.SellShares,
			&avgBuy,
			&avgSell,
			&l.RemainingLongQty,
			&longAvg,
			&l.RemainingShortQty,
			&shortAvg,
		); err != nil {
			return nil, err
		}
		l.AvgBuy = fromNull(avgBuy)
		l.AvgSell = fromNull(avgSell)
		l.RemainingLongAvg = fromNull(longAvg)
		l.RemainingShortAvg = fromNull(shortAvg)
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
