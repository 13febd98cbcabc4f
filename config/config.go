package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the complete analysis configuration
type Config struct {
	Fees    FeesConfig    `json:"fees" yaml:"fees"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Output  OutputConfig  `json:"output" yaml:"output"`

	// Workers sizes the per-broker matching pool; 0 picks one worker per
	// CPU at run time.
	Workers int `json:"workers,omitempty" yaml:"workers,omitempty"`

	// Lexicon optionally replaces the built-in branch-token table. Order
	// is significant and is used exactly as written.
	Lexicon []string `json:"lexicon,omitempty" yaml:"lexicon,omitempty"`
}

// FeesConfig contains the commission and tax parameters
type FeesConfig struct {
	RateBase    float64 `json:"rate_base" yaml:"rate_base"`
	Discount    float64 `json:"discount" yaml:"discount"`
	DayTradeTax float64 `json:"day_trade_tax" yaml:"day_trade_tax"`
}

// JournalConfig contains run-journaling parameters
type JournalConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	DBPath  string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// OutputConfig controls where and how artifacts are written
type OutputConfig struct {
	Dir   string `json:"dir" yaml:"dir"`
	Excel bool   `json:"excel" yaml:"excel"`
}

// LoadFromFile loads configuration from a file (YAML or JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if (len(path) > 5 && path[len(path)-5:] == ".yaml") || (len(path) > 4 && path[len(path)-4:] == ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid. The P&L core accepts
// whatever rates it is handed, so out-of-range rejection lives here.
func (c *Config) Validate() error {
	if c.Fees.RateBase < 0 {
		return fmt.Errorf("fees.rate_base must be non-negative")
	}
	if c.Fees.Discount < 0 {
		return fmt.Errorf("fees.discount must be non-negative")
	}
	if c.Fees.DayTradeTax < 0 {
		return fmt.Errorf("fees.day_trade_tax must be non-negative")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative")
	}
	if c.Journal.Enabled && c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path required when journal is enabled")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	for _, tok := range c.Lexicon {
		if tok == "" {
			return fmt.Errorf("lexicon entries must be non-empty")
		}
	}
	return nil
}

// Default returns a configuration with the standard fee schedule
func Default() *Config {
	return &Config{
		Fees: FeesConfig{
			RateBase:    0.001425,
			Discount:    0.28,
			DayTradeTax: 0.0015,
		},
		Journal: JournalConfig{
			Enabled: false,
			DBPath:  "./brokerpnl.sqlite",
		},
		Output: OutputConfig{
			Dir:   "output",
			Excel: true,
		},
	}
}
