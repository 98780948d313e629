package divtax

import (
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config is the file-backed configuration of the tool: the fallback
// exchange rate and the classification rule set, plus the default file
// locations. All values are optional; zero fields keep their defaults.
type Config struct {
	// DefaultRate is the USD→JPY rate applied when no historical rate
	// covers a date.
	DefaultRate float64 `yaml:"default_rate"`
	// RateFile is the historical prices CSV location.
	RateFile string `yaml:"rate_file"`
	// OutputDir is where the CSV reports are written.
	OutputDir string `yaml:"output_dir"`
	// Rules overrides the classification rule set.
	Rules Ruleset `yaml:"rules"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	rate, _ := DefaultRate.Float64()
	return Config{
		DefaultRate: rate,
		RateFile:    "data/HistoricalPrices.csv",
		OutputDir:   "output",
		Rules:       DefaultRuleset(),
	}
}

// DecodeConfig reads a YAML configuration from 'r' on top of the
// built-in defaults.
func DecodeConfig(r io.Reader) (Config, error) {
	c := DefaultConfig()
	data, err := io.ReadAll(r)
	if err != nil {
		return c, fmt.Errorf("cannot read config: %w", err)
	}
	var overlay Config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return c, fmt.Errorf("cannot parse config: %w", err)
	}
	if overlay.DefaultRate != 0 {
		c.DefaultRate = overlay.DefaultRate
	}
	if overlay.RateFile != "" {
		c.RateFile = overlay.RateFile
	}
	if overlay.OutputDir != "" {
		c.OutputDir = overlay.OutputDir
	}
	if len(overlay.Rules.IncomeActions) > 0 {
		c.Rules.IncomeActions = overlay.Rules.IncomeActions
	}
	if len(overlay.Rules.TaxActions) > 0 {
		c.Rules.TaxActions = overlay.Rules.TaxActions
	}
	if len(overlay.Rules.InterestWords) > 0 {
		c.Rules.InterestWords = overlay.Rules.InterestWords
	}
	if len(overlay.Rules.ReinvestActions) > 0 {
		c.Rules.ReinvestActions = overlay.Rules.ReinvestActions
	}
	if len(overlay.Rules.ReinvestKeywords) > 0 {
		c.Rules.ReinvestKeywords = overlay.Rules.ReinvestKeywords
	}
	return c, nil
}

// LoadConfig reads a YAML configuration file. An empty path returns
// the defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("cannot open config %q: %w", path, err)
	}
	defer f.Close()
	return DecodeConfig(f)
}

// Rate returns the configured default rate as a decimal.
func (c Config) Rate() decimal.Decimal { return decimal.NewFromFloat(c.DefaultRate) }
