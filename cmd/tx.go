package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/kyamaguchi/divtax/renderer"
)

// txCmd holds the flags for the 'tx' subcommand.
type txCmd struct {
	rates       string
	defaultRate float64
	symbols     bool
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "display the converted records without writing reports" }
func (*txCmd) Usage() string {
	return `dtx tx [-rates <csv>] [-by-symbol] [export.json ...]

  Converts the given exports and displays the resulting records (or
  the per-symbol summary with -by-symbol) on the console. Nothing is
  written to disk.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.rates, "rates", "", "Historical USD/JPY prices CSV. Defaults to the configured rate_file.")
	f.Float64Var(&c.defaultRate, "default-rate", 0, "USD/JPY rate for dates without historical data.")
	f.BoolVar(&c.symbols, "by-symbol", false, "Display the per-symbol summary instead of the record list.")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.rates != "" {
		cfg.RateFile = c.rates
	}
	if c.defaultRate != 0 {
		cfg.DefaultRate = c.defaultRate
	}

	files, err := exportArgs(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	report, status := process(cfg, files)
	if status != subcommands.ExitSuccess {
		return status
	}

	if c.symbols {
		printMarkdown(renderer.Symbols(report.Symbols))
	} else {
		printMarkdown(renderer.Records(report.Records))
	}
	return subcommands.ExitSuccess
}
