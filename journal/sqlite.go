package journal

import (
	"database/sql"
	"fmt"
	"math"

	_ "github.com/mattn/go-sqlite3"

	"brokerpnl/pnl"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// RecordRun stores a run and its full ledger table in one transaction.
func (j *SQLite) RecordRun(run Run, ledgers []pnl.Ledger) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs
		(run_id, source, encoding, fee_rate_base, fee_discount, day_trade_tax, records, brokers, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.Encoding, run.FeeRateBase, run.FeeDiscount,
		run.DayTradeTax, run.Records, run.Brokers, run.CreatedAt,
	)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO ledgers
		(run_id, broker, matched_shares, realized_gross, fee, tax, realized_net,
		 buy_shares, sell_shares, avg_buy, avg_sell,
		 remaining_long_qty, remaining_long_avg, remaining_short_qty, remaining_short_avg)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, l := range ledgers {
		_, err = stmt.Exec(
			run.ID, l.Broker, l.MatchedShares, l.RealizedGross, l.Fee, l.Tax,
			l.RealizedNet(), l.BuyShares, l.SellShares,
			nullable(l.AvgBuy), nullable(l.AvgSell),
			l.RemainingLongQty, nullable(l.RemainingLongAvg),
			l.RemainingShortQty, nullable(l.RemainingShortAvg),
		)
		if err != nil {
			return fmt.Errorf("insert ledger for %q: %w", l.Broker, err)
		}
	}

	return tx.Commit()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

// nullable maps an undefined (NaN) average price to SQL NULL.
func nullable(v float64) sql.NullFloat64 {
	if math.IsNaN(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func fromNull(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
