package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.InDelta(t, 0.001425, cfg.Fees.RateBase, 1e-12)
	assert.InDelta(t, 0.28, cfg.Fees.Discount, 1e-12)
	assert.InDelta(t, 0.0015, cfg.Fees.DayTradeTax, 1e-12)
}

func TestLoadFromFileYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	data := `
fees:
  rate_base: 0.001425
  discount: 0.5
  day_trade_tax: 0.0015
output:
  dir: results
workers: 4
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, cfg.Fees.Discount, 1e-12)
	assert.Equal(t, "results", cfg.Output.Dir)
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoadFromFileRejectsNegativeRate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	data := `
fees:
  rate_base: 0.001425
  discount: -0.28
  day_trade_tax: 0.0015
output:
  dir: out
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "discount")
}

func TestValidateJournalNeedsPath(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Journal.Enabled = true
	cfg.Journal.DBPath = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Workers = -1
	assert.Error(t, cfg.Validate())
	cfg.Workers = 0
	assert.NoError(t, cfg.Validate())
}

func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Fees.Discount = 0.6
	cfg.Lexicon = []string{"台北", "內湖"}

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, cfg.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, got.Fees.Discount, 1e-12)
	assert.Equal(t, []string{"台北", "內湖"}, got.Lexicon)
}

func TestLoadFromFileJSON(t *testing.T) {
	t.Parallel()

	cfg := Default()
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, cfg.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.InDelta(t, cfg.Fees.RateBase, got.Fees.RateBase, 1e-12)
}
