package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/kyamaguchi/divtax"
	"github.com/kyamaguchi/divtax/date"
	"github.com/kyamaguchi/divtax/renderer"
)

// rateCmd holds the flags for the 'rate' subcommand.
type rateCmd struct {
	rates       string
	defaultRate float64
}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "resolve the USD/JPY rate for one or more dates" }
func (*rateCmd) Usage() string {
	return `dtx rate [-rates <csv>] <date> [<date> ...]

  Shows the exchange rate that would be applied on each given date,
  together with the source date of the rate (the prior trading day for
  weekends and holidays) or the default marker when no data covers the
  date.
`
}

func (c *rateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.rates, "rates", "", "Historical USD/JPY prices CSV. Defaults to the configured rate_file.")
	f.Float64Var(&c.defaultRate, "default-rate", 0, "USD/JPY rate for dates without historical data.")
}

func (c *rateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one date is required")
		return subcommands.ExitUsageError
	}

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

	table, err := openRates(cfg.RateFile, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var days []date.Date
	for _, arg := range f.Args() {
		on, err := date.Parse(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		days = append(days, on)
	}
	quotes := make([]divtax.Quote, 0, len(days))
	for _, on := range days {
		quotes = append(quotes, table.RateFor(on))
	}

	printMarkdown(renderer.Quotes(days, quotes))
	return subcommands.ExitSuccess
}
