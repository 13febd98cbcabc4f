// Package pipeline wires the whole analysis together: read the raw session,
// canonicalize broker identities, build both summary levels, run the
// average-cost and FIFO calculators, rank the ledgers, and emit artifacts.
package pipeline

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"

	"brokerpnl/broker"
	"brokerpnl/config"
	"brokerpnl/journal"
	"brokerpnl/pkg/id"
	"brokerpnl/pnl"
	"brokerpnl/reader"
	"brokerpnl/report"
	"brokerpnl/summary"
	"brokerpnl/trade"
)

// Tables is every result table from one analysis, in memory. The aggregator
// and the matcher both consume the same normalized records independently.
type Tables struct {
	Flattened  []trade.Record // raw branch labels, (seq, broker, price) order
	Parent     []trade.Record // same rows with canonical parent-broker keys
	Branch     []summary.Row
	ParentSum  []summary.Row
	AvgCost    []pnl.AvgCostRow
	Ledgers    []pnl.Ledger
	TopProfit  []pnl.Ledger
	TopLoss    []pnl.Ledger
	TopNetBuy  []pnl.Ledger
	TopNetSell []pnl.Ledger
}

// Result is Tables plus run provenance.
type Result struct {
	Tables

	RunID     string
	Source    string
	Encoding  string
	OutputDir string
	Elapsed   time.Duration
}

// Analyze computes every table from an already-read record set. Pure: no
// I/O, deterministic for a given input and rates.
func Analyze(recs []trade.Record, norm broker.Normalizer, rates pnl.Rates, workers int) *Tables {
	parent := make([]trade.Record, len(recs))
	copy(parent, recs)
	for i := range parent {
		parent[i].Broker = norm.Normalize(parent[i].Broker)
	}

	t := &Tables{
		Flattened: recs,
		Parent:    parent,
		Branch:    summary.Aggregate(recs, summary.ByBroker),
		ParentSum: summary.Aggregate(parent, summary.ByBroker),
		AvgCost:   pnl.AvgCost(parent, rates),
		Ledgers:   pnl.MatchAll(parent, rates, pnl.Options{Workers: workers}),
	}
	t.TopProfit = pnl.TopProfit(t.Ledgers)
	t.TopLoss = pnl.TopLoss(t.Ledgers)
	t.TopNetBuy = pnl.TopNetBuy(t.Ledgers)
	t.TopNetSell = pnl.TopNetSell(t.Ledgers)
	return t
}

// Run executes a full analysis of one raw CSV file: read, analyze, write
// artifacts, and journal the run when configured.
func Run(cfg *config.Config, input string, log *zap.Logger) (*Result, error) {
	start := time.Now()

	tab, err := reader.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	log.Info("source read",
		zap.String("file", input),
		zap.String("encoding", tab.Encoding),
		zap.Bool("dual_column", tab.DualColumn),
		zap.Int("records", len(tab.Records)),
		zap.Int("dropped", tab.Dropped),
	)

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	rates := pnl.Rates{
		FeeRateBase: cfg.Fees.RateBase,
		FeeDiscount: cfg.Fees.Discount,
		DayTradeTax: cfg.Fees.DayTradeTax,
	}

	tables := Analyze(tab.Records, broker.New(cfg.Lexicon), rates, workers)
	log.Info("session analyzed",
		zap.Int("branches", len(tables.Branch)),
		zap.Int("brokers", len(tables.Ledgers)),
		zap.Int("workers", workers),
	)

	res := &Result{
		Tables:    *tables,
		RunID:     id.New(),
		Source:    input,
		Encoding:  tab.Encoding,
		OutputDir: outputDir(cfg.Output.Dir, input),
	}

	if err := writeArtifacts(cfg, res); err != nil {
		return nil, err
	}
	log.Info("artifacts written", zap.String("dir", res.OutputDir), zap.Bool("excel", cfg.Output.Excel))

	if cfg.Journal.Enabled {
		if err := journalRun(cfg.Journal.DBPath, rates, res); err != nil {
			return nil, fmt.Errorf("journal run: %w", err)
		}
		log.Info("run journaled", zap.String("run_id", res.RunID), zap.String("db", cfg.Journal.DBPath))
	}

	res.Elapsed = time.Since(start)
	return res, nil
}

// outputDir names a per-input directory under the configured root, so runs
// over different files never clobber each other.
func outputDir(root, input string) string {
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(root, "analysis_"+stem)
}

func writeArtifacts(cfg *config.Config, res *Result) error {
	w, err := report.NewWriter(res.OutputDir)
	if err != nil {
		return fmt.Errorf("output dir: %w", err)
	}

	if err := w.WriteFlattened(res.Flattened); err != nil {
		return err
	}
	if err := w.WriteSummary(report.BranchSummaryCSV, res.Branch); err != nil {
		return err
	}
	if err := w.WriteSummary(report.ParentSummaryCSV, res.ParentSum); err != nil {
		return err
	}
	if err := w.WriteAvgCost(res.AvgCost); err != nil {
		return err
	}
	if err := w.WriteLedgers(res.Ledgers); err != nil {
		return err
	}
	if err := w.WriteRankings(res.TopProfit, res.TopLoss, res.TopNetBuy, res.TopNetSell); err != nil {
		return err
	}
	if cfg.Output.Excel {
		if err := w.WriteWorkbook(res.Branch, res.ParentSum, res.AvgCost, res.Ledgers, res.TopNetBuy, res.TopNetSell); err != nil {
			return fmt.Errorf("workbook: %w", err)
		}
	}
	return nil
}

func journalRun(dbPath string, rates pnl.Rates, res *Result) error {
	j, err := journal.NewSQLite(dbPath)
	if err != nil {
		return err
	}
	defer j.Close()

	run := journal.Run{
		ID:          res.RunID,
		Source:      res.Source,
		Encoding:    res.Encoding,
		FeeRateBase: rates.FeeRateBase,
		FeeDiscount: rates.FeeDiscount,
		DayTradeTax: rates.DayTradeTax,
		Records:     len(res.Flattened),
		Brokers:     len(res.Ledgers),
		CreatedAt:   time.Now().UTC(),
	}
	return j.RecordRun(run, res.Ledgers)
}
