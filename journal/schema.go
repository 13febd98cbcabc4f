// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	encoding TEXT NOT NULL,
	fee_rate_base REAL NOT NULL,
	fee_discount REAL NOT NULL,
	day_trade_tax REAL NOT NULL,
	records INTEGER NOT NULL,
	brokers INTEGER NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS ledgers (
	run_id TEXT NOT NULL,
	broker TEXT NOT NULL,
	matched_shares INTEGER NOT NULL,
	realized_gross REAL NOT NULL,
	fee REAL NOT NULL,
	tax REAL NOT NULL,
	realized_net REAL NOT NULL,
	buy_shares INTEGER NOT NULL,
	sell_shares INTEGER NOT NULL,
	avg_buy REAL,
	avg_sell REAL,
	remaining_long_qty INTEGER NOT NULL,
	remaining_long_avg REAL,
	remaining_short_qty INTEGER NOT NULL,
	remaining_short_avg REAL,
	PRIMARY KEY (run_id, broker)
);

CREATE INDEX IF NOT EXISTS idx_ledgers_run_net ON ledgers(run_id, realized_net);
`
